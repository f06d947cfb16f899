package leads

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brandmetro/transit-ads-platform/internal/storage"
)

const leadColumns = `id, requirement, buyer_type, familiarity, company, name, email, phone,
	station_id, station_name, ad_format, budget_band, campaign_goal, audience, timeline, message, created_at`

// Repository stores leads. Leads are immutable after insert; there is no
// update path.
type Repository struct {
	db storage.Querier
}

// NewRepository initializes a repo backed by pgxpool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &Repository{db: pool}
}

// NewRepositoryWithDB allows injecting a mock database for testing.
func NewRepositoryWithDB(db storage.Querier) *Repository {
	return &Repository{db: db}
}

// Create persists a lead and fills in its ID and CreatedAt.
func (r *Repository) Create(ctx context.Context, l *Lead) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO leads (requirement, buyer_type, familiarity, company, name, email, phone,
			station_id, station_name, ad_format, budget_band, campaign_goal, audience, timeline, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at`,
		l.Requirement, l.BuyerType, l.Familiarity, l.Company, l.Name, l.Email, l.Phone,
		l.StationID, l.StationName, l.AdFormat, l.BudgetBand, l.CampaignGoal, l.Audience, l.Timeline, l.Message).
		Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("leads: insert: %w", err)
	}
	return nil
}

// List returns leads newest first.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Lead, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("leads: list: %w", err)
	}
	defer rows.Close()

	out := []Lead{}
	for rows.Next() {
		var l Lead
		if err := scanLead(rows.Scan, &l); err != nil {
			return nil, fmt.Errorf("leads: scan: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Get fetches one lead by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Lead, error) {
	var l Lead
	err := scanLead(r.db.QueryRow(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = $1`, id).Scan, &l)
	if storage.IsNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("leads: get: %w", err)
	}
	return &l, nil
}

// Delete removes a lead.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("leads: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanLead(scan func(dest ...any) error, l *Lead) error {
	return scan(&l.ID, &l.Requirement, &l.BuyerType, &l.Familiarity, &l.Company, &l.Name, &l.Email, &l.Phone,
		&l.StationID, &l.StationName, &l.AdFormat, &l.BudgetBand, &l.CampaignGoal, &l.Audience, &l.Timeline,
		&l.Message, &l.CreatedAt)
}
