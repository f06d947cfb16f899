// Package auth implements the CMS login. Credentials are checked by direct
// equality against the cms_users row; the resulting session is nothing more
// than the presence of the cms_session cookie.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brandmetro/transit-ads-platform/internal/storage"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repository struct {
	db storage.Querier
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("auth: pgx pool required")
	}
	return &Repository{db: pool}
}

// NewRepositoryWithDB allows injecting a mock database for testing.
func NewRepositoryWithDB(db storage.Querier) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password, created_at FROM cms_users WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt)
	if storage.IsNoRows(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("auth: get user: %w", err)
	}
	return &u, nil
}
