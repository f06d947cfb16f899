// Package contact persists general contact-form messages from the public
// site. Unlike leads, these carry no master-data references.
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brandmetro/transit-ads-platform/internal/storage"
)

var (
	ErrNameRequired    = errors.New("name is required")
	ErrEmailRequired   = errors.New("email is required")
	ErrMessageRequired = errors.New("message is required")
	ErrNotFound        = errors.New("message not found")
)

type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (r *CreateMessageRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrEmailRequired
	}
	if strings.TrimSpace(r.Message) == "" {
		return ErrMessageRequired
	}
	return nil
}

type Repository struct {
	db storage.Querier
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("contact: pgx pool required")
	}
	return &Repository{db: pool}
}

// NewRepositoryWithDB allows injecting a mock database for testing.
func NewRepositoryWithDB(db storage.Querier) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, m *Message) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO contact_messages (name, email, phone, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		m.Name, m.Email, m.Phone, m.Subject, m.Message).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("contact: insert: %w", err)
	}
	return nil
}

// List returns messages newest first.
func (r *Repository) List(ctx context.Context) ([]Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, phone, subject, message, created_at
		FROM contact_messages ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("contact: list: %w", err)
	}
	defer rows.Close()

	out := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("contact: scan: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("contact: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
