package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avelov/shopapi/internal/common"
	"github.com/avelov/shopapi/internal/server/models"
	"github.com/avelov/shopapi/internal/server/repositories/repomanager"
)

// CartService mutates and reads the per-user cart. All mutations are single
// atomic store operations keyed by slot, so two concurrent requests for the
// same user never lose an update.
type CartService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCartService(db *sql.DB, m repomanager.RepositoryManager) *CartService {
	return &CartService{db: db, repomanager: m}
}

func validSlot(slot int) bool {
	return slot >= 0 && slot < common.CartSlots
}

// AddItem increments the quantity at slot by 1. No upper bound is enforced.
func (s *CartService) AddItem(ctx context.Context, userID string, slot int) error {
	if !validSlot(slot) {
		return common.ErrInvalidCartSlot
	}

	repo := s.repomanager.Users(s.db)
	if err := repo.IncrementCartSlot(ctx, userID, slot); err != nil {
		return fmt.Errorf("error adding cart item: %w", err)
	}
	return nil
}

// RemoveItem decrements the quantity at slot by 1, never below zero.
// Removing from an empty slot silently succeeds.
func (s *CartService) RemoveItem(ctx context.Context, userID string, slot int) error {
	if !validSlot(slot) {
		return common.ErrInvalidCartSlot
	}

	repo := s.repomanager.Users(s.db)
	if err := repo.DecrementCartSlot(ctx, userID, slot); err != nil {
		return fmt.Errorf("error removing cart item: %w", err)
	}
	return nil
}

// GetCart returns the user's cart with exactly CartSlots entries; slots the
// store never touched come back as zero.
func (s *CartService) GetCart(ctx context.Context, userID string) (models.CartData, error) {
	repo := s.repomanager.Users(s.db)

	stored, err := repo.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error reading cart: %w", err)
	}

	cart := NewEmptyCart()
	for slot, qty := range stored {
		if _, ok := cart[slot]; ok {
			cart[slot] = qty
		}
	}
	return cart, nil
}
