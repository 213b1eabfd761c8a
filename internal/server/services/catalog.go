package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avelov/shopapi/internal/server/models"
	"github.com/avelov/shopapi/internal/server/repositories/repomanager"
)

// CatalogService owns product CRUD. Product ids come from the store's
// sequence, so concurrent adds cannot collide.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager) *CatalogService {
	return &CatalogService{db: db, repomanager: m}
}

// AddProduct inserts a product and returns it with the assigned id.
func (s *CatalogService) AddProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	repo := s.repomanager.Products(s.db)

	product, err := repo.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("error creating product: %w", err)
	}
	return product, nil
}

// RemoveProduct deletes by application id; removing a missing id is a no-op.
func (s *CatalogService) RemoveProduct(ctx context.Context, id int64) error {
	repo := s.repomanager.Products(s.db)

	if err := repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting product: %w", err)
	}
	return nil
}

// ListProducts returns the whole catalog in id order.
func (s *CatalogService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	repo := s.repomanager.Products(s.db)

	products, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	return products, nil
}
