package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/avelov/shopapi/internal/common"
	"github.com/avelov/shopapi/internal/dbx"
	"github.com/avelov/shopapi/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PostgresRepository implements user storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user with the given initial cart. Email uniqueness is
// enforced by the store's constraint; a violation maps to ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User, cart models.CartData) (*models.User, error) {

	cartJSON, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("cart encode error: %w", err)
	}

	query :=
		`INSERT INTO users (name, email, password_hash, cart_data)
	     VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err = r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, cartJSON).Scan(&user.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash FROM users
		 WHERE email = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetCart returns the stored slot map as-is.
func (r *PostgresRepository) GetCart(ctx context.Context, userID string) (models.CartData, error) {
	query :=
		`SELECT cart_data FROM users
		 WHERE id = $1
		 `

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&raw)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	cart := models.CartData{}
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, fmt.Errorf("cart decode error: %w", err)
	}

	return cart, nil
}

// IncrementCartSlot bumps one slot by 1 in a single UPDATE, so concurrent
// mutations for the same user serialize at the store and no increment is lost.
func (r *PostgresRepository) IncrementCartSlot(ctx context.Context, userID string, slot int) error {
	query :=
		`UPDATE users
		 SET cart_data = jsonb_set(cart_data, ARRAY[$2], to_jsonb(COALESCE((cart_data->>$2)::bigint, 0) + 1))
		 WHERE id = $1
		 `

	return r.execCartUpdate(ctx, query, userID, slot)
}

// DecrementCartSlot lowers one slot by 1, floored at zero. Decrementing an
// empty slot is a silent no-op.
func (r *PostgresRepository) DecrementCartSlot(ctx context.Context, userID string, slot int) error {
	query :=
		`UPDATE users
		 SET cart_data = jsonb_set(cart_data, ARRAY[$2], to_jsonb(GREATEST(COALESCE((cart_data->>$2)::bigint, 0) - 1, 0)))
		 WHERE id = $1
		 `

	return r.execCartUpdate(ctx, query, userID, slot)
}

func (r *PostgresRepository) execCartUpdate(ctx context.Context, query, userID string, slot int) error {
	res, err := r.db.ExecContext(ctx, query, userID, strconv.Itoa(slot))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
