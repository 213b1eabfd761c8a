// Package products provides persistence for the catalog.
package products

import (
	"context"

	"github.com/avelov/shopapi/internal/server/models"
)

// Repository is the storage contract for catalog entries. Ids come from the
// store's sequence, so concurrent inserts can never collide.
type Repository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Product, error)
}
