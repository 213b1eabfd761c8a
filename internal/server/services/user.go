// Package services contains server-side business logic. This file implements
// UserService, which handles signup, login, and issuing JWTs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avelov/shopapi/internal/common"
	"github.com/avelov/shopapi/internal/server/auth"
	"github.com/avelov/shopapi/internal/server/config"
	"github.com/avelov/shopapi/internal/server/models"
	"github.com/avelov/shopapi/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// UserService provides authentication-related operations:
// - Signup: create users with a zero-initialized cart and mint a token
// - Login: verify credentials and mint a token
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	bcryptCost                  int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		bcryptCost:                  cfg.BcryptCost,
	}
}

// NewEmptyCart builds the fixed 300-slot cart every fresh account starts
// with, keyed "0".."299", all quantities zero.
func NewEmptyCart() models.CartData {
	cart := make(models.CartData, common.CartSlots)
	for i := 0; i < common.CartSlots; i++ {
		cart[fmt.Sprintf("%d", i)] = 0
	}
	return cart
}

// Signup registers a new user and returns a signed token for the created id.
// A taken email yields ErrorAlreadyExists; the password is stored only as a
// bcrypt hash.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetUserByEmail(ctx, email); err == nil {
		return "", common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return "", common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", common.ErrorInternal
	}

	user := &models.User{Name: name, Email: email, PasswordHash: string(hash)}

	user, err = repo.Create(ctx, user, NewEmptyCart())
	if err != nil {
		// the pre-check above can lose a race against a concurrent signup;
		// the store's uniqueness constraint is the authority
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrorAlreadyExists
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return s.generateAccessToken(user.ID)
}

// Login verifies the email/password pair and returns a signed token. An
// unknown email yields ErrorNotFound, a wrong password ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", common.ErrorUnauthorized
	}

	return s.generateAccessToken(user.ID)
}

func (s *UserService) generateAccessToken(userID string) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
