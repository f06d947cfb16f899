package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brandmetro/transit-ads-platform/internal/storage"
)

const productColumns = `id, name, format, price_per_unit_cents, unit, duration_days, created_at`

// Repository stores products.
type Repository struct {
	db storage.Querier
}

// NewRepository initializes a repo backed by pgxpool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("products: pgx pool required")
	}
	return &Repository{db: pool}
}

// NewRepositoryWithDB allows injecting a mock database for testing.
func NewRepositoryWithDB(db storage.Querier) *Repository {
	return &Repository{db: db}
}

// List returns all products ordered by name.
func (r *Repository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("products: list: %w", err)
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Format, &p.PricePerUnitCents, &p.Unit, &p.DurationDays, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("products: scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get fetches one product by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Format, &p.PricePerUnitCents, &p.Unit, &p.DurationDays, &p.CreatedAt)
	if storage.IsNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("products: get: %w", err)
	}
	return &p, nil
}

// GetStationRate fetches one product as offered at a station, including the
// station-specific rate from the join row.
func (r *Repository) GetStationRate(ctx context.Context, stationID, productID int64) (*StationRate, error) {
	var sr StationRate
	err := r.db.QueryRow(ctx, `
		SELECT p.id, p.name, p.format, p.price_per_unit_cents, p.unit, p.duration_days, p.created_at,
		       sp.station_id, sp.rate_cents
		FROM products p
		JOIN station_products sp ON sp.product_id = p.id
		WHERE sp.station_id = $1 AND p.id = $2`, stationID, productID).
		Scan(&sr.ID, &sr.Name, &sr.Format, &sr.PricePerUnitCents, &sr.Unit, &sr.DurationDays, &sr.CreatedAt,
			&sr.StationID, &sr.RateCents)
	if storage.IsNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("products: get station rate: %w", err)
	}
	return &sr, nil
}

// ListByStation returns every product offered at a station with its rate.
func (r *Repository) ListByStation(ctx context.Context, stationID int64) ([]StationRate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.name, p.format, p.price_per_unit_cents, p.unit, p.duration_days, p.created_at,
		       sp.station_id, sp.rate_cents
		FROM products p
		JOIN station_products sp ON sp.product_id = p.id
		WHERE sp.station_id = $1
		ORDER BY p.name`, stationID)
	if err != nil {
		return nil, fmt.Errorf("products: list by station: %w", err)
	}
	defer rows.Close()

	out := []StationRate{}
	for rows.Next() {
		var sr StationRate
		if err := rows.Scan(&sr.ID, &sr.Name, &sr.Format, &sr.PricePerUnitCents, &sr.Unit, &sr.DurationDays, &sr.CreatedAt,
			&sr.StationID, &sr.RateCents); err != nil {
			return nil, fmt.Errorf("products: scan station rate: %w", err)
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

// Create inserts a new product.
func (r *Repository) Create(ctx context.Context, req *CreateProductRequest) (*Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p := Product{
		Name:              strings.TrimSpace(req.Name),
		Format:            req.Format,
		PricePerUnitCents: req.PricePerUnitCents,
		Unit:              req.Unit,
		DurationDays:      req.DurationDays,
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO products (name, format, price_per_unit_cents, unit, duration_days)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		p.Name, p.Format, p.PricePerUnitCents, p.Unit, p.DurationDays).
		Scan(&p.ID, &p.CreatedAt)
	if storage.IsUniqueViolation(err) {
		return nil, ErrNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("products: insert: %w", err)
	}
	return &p, nil
}

// Update applies partial-update semantics over named fields.
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateProductRequest) (*Product, error) {
	sets := []string{}
	args := []any{}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		add("name", strings.TrimSpace(*req.Name))
	}
	if req.Format != nil {
		add("format", *req.Format)
	}
	if req.PricePerUnitCents != nil {
		add("price_per_unit_cents", *req.PricePerUnitCents)
	}
	if req.Unit != nil {
		add("unit", *req.Unit)
	}
	if req.DurationDays != nil {
		add("duration_days", *req.DurationDays)
	}
	if len(sets) == 0 {
		return r.Get(ctx, id)
	}
	args = append(args, id)

	var p Product
	query := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d RETURNING `+productColumns,
		strings.Join(sets, ", "), len(args))
	err := r.db.QueryRow(ctx, query, args...).
		Scan(&p.ID, &p.Name, &p.Format, &p.PricePerUnitCents, &p.Unit, &p.DurationDays, &p.CreatedAt)
	if storage.IsNoRows(err) {
		return nil, ErrNotFound
	}
	if storage.IsUniqueViolation(err) {
		return nil, ErrNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("products: update: %w", err)
	}
	return &p, nil
}

// Delete removes a product. Station join rows cascade at the schema level;
// leads keep their denormalized format snapshot.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("products: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
