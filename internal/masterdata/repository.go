package masterdata

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brandmetro/transit-ads-platform/internal/storage"
)

// LineRepository stores metro lines.
type LineRepository struct {
	db storage.Querier
}

// NewLineRepository initializes a repo backed by pgxpool.
func NewLineRepository(pool *pgxpool.Pool) *LineRepository {
	if pool == nil {
		panic("masterdata: pgx pool required")
	}
	return &LineRepository{db: pool}
}

// NewLineRepositoryWithDB allows injecting a mock database for testing.
func NewLineRepositoryWithDB(db storage.Querier) *LineRepository {
	return &LineRepository{db: db}
}

// List returns all lines ordered by name.
func (r *LineRepository) List(ctx context.Context) ([]Line, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, color, created_at FROM lines ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("masterdata: list lines: %w", err)
	}
	defer rows.Close()

	out := []Line{}
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.Name, &l.Color, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("masterdata: scan line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Get fetches one line by id.
func (r *LineRepository) Get(ctx context.Context, id int64) (*Line, error) {
	var l Line
	err := r.db.QueryRow(ctx,
		`SELECT id, name, color, created_at FROM lines WHERE id = $1`, id).
		Scan(&l.ID, &l.Name, &l.Color, &l.CreatedAt)
	if storage.IsNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("masterdata: get line: %w", err)
	}
	return &l, nil
}

// Create inserts a new line.
func (r *LineRepository) Create(ctx context.Context, req *CreateLineRequest) (*Line, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	l := Line{Name: strings.TrimSpace(req.Name), Color: req.Color}
	err := r.db.QueryRow(ctx,
		`INSERT INTO lines (name, color) VALUES ($1, $2) RETURNING id, created_at`,
		l.Name, l.Color).Scan(&l.ID, &l.CreatedAt)
	if storage.IsUniqueViolation(err) {
		return nil, ErrNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("masterdata: insert line: %w", err)
	}
	return &l, nil
}

// Update applies partial-update semantics over named fields.
func (r *LineRepository) Update(ctx context.Context, id int64, req *UpdateLineRequest) (*Line, error) {
	sets := []string{}
	args := []any{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		args = append(args, strings.TrimSpace(*req.Name))
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if req.Color != nil {
		args = append(args, *req.Color)
		sets = append(sets, fmt.Sprintf("color = $%d", len(args)))
	}
	if len(sets) == 0 {
		return r.Get(ctx, id)
	}
	args = append(args, id)

	var l Line
	query := fmt.Sprintf(
		`UPDATE lines SET %s WHERE id = $%d RETURNING id, name, color, created_at`,
		strings.Join(sets, ", "), len(args))
	err := r.db.QueryRow(ctx, query, args...).Scan(&l.ID, &l.Name, &l.Color, &l.CreatedAt)
	if storage.IsNoRows(err) {
		return nil, ErrNotFound
	}
	if storage.IsUniqueViolation(err) {
		return nil, ErrNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("masterdata: update line: %w", err)
	}
	return &l, nil
}

// Delete removes a line. Join rows cascade at the schema level.
func (r *LineRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM lines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("masterdata: delete line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// NameTableRepository serves the name-only master tables (audiences, types).
type NameTableRepository struct {
	db    storage.Querier
	table string
}

// NewAudienceRepository initializes the audiences repo.
func NewAudienceRepository(pool *pgxpool.Pool) *NameTableRepository {
	if pool == nil {
		panic("masterdata: pgx pool required")
	}
	return &NameTableRepository{db: pool, table: "audiences"}
}

// NewTypeRepository initializes the types repo.
func NewTypeRepository(pool *pgxpool.Pool) *NameTableRepository {
	if pool == nil {
		panic("masterdata: pgx pool required")
	}
	return &NameTableRepository{db: pool, table: "types"}
}

// NewNameTableRepositoryWithDB allows injecting a mock database for testing.
func NewNameTableRepositoryWithDB(db storage.Querier, table string) *NameTableRepository {
	return &NameTableRepository{db: db, table: table}
}

// List returns all rows ordered by name.
func (r *NameTableRepository) List(ctx context.Context) ([]NameRow, error) {
	rows, err := r.db.Query(ctx,
		fmt.Sprintf(`SELECT id, name, created_at FROM %s ORDER BY name`, r.table))
	if err != nil {
		return nil, fmt.Errorf("masterdata: list %s: %w", r.table, err)
	}
	defer rows.Close()

	out := []NameRow{}
	for rows.Next() {
		var n NameRow
		if err := rows.Scan(&n.ID, &n.Name, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("masterdata: scan %s: %w", r.table, err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Get fetches one row by id.
func (r *NameTableRepository) Get(ctx context.Context, id int64) (*NameRow, error) {
	var n NameRow
	err := r.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT id, name, created_at FROM %s WHERE id = $1`, r.table), id).
		Scan(&n.ID, &n.Name, &n.CreatedAt)
	if storage.IsNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("masterdata: get %s: %w", r.table, err)
	}
	return &n, nil
}

// Create inserts a new named row.
func (r *NameTableRepository) Create(ctx context.Context, req *CreateNameRequest) (*NameRow, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	n := NameRow{Name: strings.TrimSpace(req.Name)}
	err := r.db.QueryRow(ctx,
		fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) RETURNING id, created_at`, r.table),
		n.Name).Scan(&n.ID, &n.CreatedAt)
	if storage.IsUniqueViolation(err) {
		return nil, ErrNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("masterdata: insert %s: %w", r.table, err)
	}
	return &n, nil
}

// Update renames a row.
func (r *NameTableRepository) Update(ctx context.Context, id int64, req *UpdateNameRequest) (*NameRow, error) {
	if req.Name == nil {
		return r.Get(ctx, id)
	}
	if strings.TrimSpace(*req.Name) == "" {
		return nil, ErrNameRequired
	}

	var n NameRow
	err := r.db.QueryRow(ctx,
		fmt.Sprintf(`UPDATE %s SET name = $1 WHERE id = $2 RETURNING id, name, created_at`, r.table),
		strings.TrimSpace(*req.Name), id).Scan(&n.ID, &n.Name, &n.CreatedAt)
	if storage.IsNoRows(err) {
		return nil, ErrNotFound
	}
	if storage.IsUniqueViolation(err) {
		return nil, ErrNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("masterdata: update %s: %w", r.table, err)
	}
	return &n, nil
}

// Delete removes a row unconditionally.
func (r *NameTableRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table), id)
	if err != nil {
		return fmt.Errorf("masterdata: delete %s: %w", r.table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
