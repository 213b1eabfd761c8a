// Package users provides persistence for shopper accounts and their carts.
package users

import (
	"context"

	"github.com/avelov/shopapi/internal/server/models"
)

// Repository is the storage contract for user records. Cart slot updates are
// single atomic store operations, never read-modify-write in the application.
type Repository interface {
	Create(ctx context.Context, user *models.User, cart models.CartData) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetCart(ctx context.Context, userID string) (models.CartData, error)
	IncrementCartSlot(ctx context.Context, userID string, slot int) error
	DecrementCartSlot(ctx context.Context, userID string, slot int) error
}
