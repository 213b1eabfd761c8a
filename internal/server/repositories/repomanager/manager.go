// Package repomanager vends repository implementations bound to a database
// handle and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/avelov/shopapi/internal/dbx"
	"github.com/avelov/shopapi/internal/server/repositories/products"
	"github.com/avelov/shopapi/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to the provided DBTX, so
// services can run several repositories inside one transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Products(db dbx.DBTX) products.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
