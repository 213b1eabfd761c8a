package products

import (
	"context"
	"fmt"

	"github.com/avelov/shopapi/internal/dbx"
	"github.com/avelov/shopapi/internal/server/models"
)

// PostgresRepository implements catalog storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a product; the id is assigned by the products_id_seq
// sequence inside the statement and returned on the model.
func (r *PostgresRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {

	query :=
		`INSERT INTO products (name, image, category, new_price, old_price)
	     VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, available, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		product.Name, product.Image, product.Category, product.NewPrice, product.OldPrice).
		Scan(&product.ID, &product.Available, &product.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return product, nil
}

// Delete removes the product with the given application id. Deleting an id
// that does not exist succeeds silently.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query :=
		`DELETE FROM products
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// List returns all products in id (insertion) order.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Product, error) {
	query :=
		`SELECT id, name, image, category, new_price, old_price, available, created_at FROM products
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}
	defer rows.Close()

	var result []*models.Product
	for rows.Next() {
		var item models.Product
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Image, &item.Category, &item.NewPrice, &item.OldPrice,
			&item.Available, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
