package stations

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brandmetro/transit-ads-platform/internal/storage"
)

// Repository stores stations and their relations.
type Repository struct {
	db storage.TxBeginner
}

// NewRepository initializes a repo backed by pgxpool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("stations: pgx pool required")
	}
	return &Repository{db: pool}
}

// NewRepositoryWithDB allows injecting a mock database for testing.
func NewRepositoryWithDB(db storage.TxBeginner) *Repository {
	return &Repository{db: db}
}

const stationColumns = `id, name, address, city, description, daily_footfall, created_at, updated_at`

// List returns all stations with joined relations, ordered by name.
func (r *Repository) List(ctx context.Context) ([]Station, error) {
	rows, err := r.db.Query(ctx, `SELECT `+stationColumns+` FROM stations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("stations: list: %w", err)
	}
	defer rows.Close()

	out := []Station{}
	for rows.Next() {
		var s Station
		if err := scanStation(rows, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadRelations(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Get fetches one station with its relations.
func (r *Repository) Get(ctx context.Context, id int64) (*Station, error) {
	var s Station
	err := scanStation(r.db.QueryRow(ctx, `SELECT `+stationColumns+` FROM stations WHERE id = $1`, id), &s)
	if storage.IsNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("stations: get: %w", err)
	}
	if err := r.loadRelations(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a station and its relations in one transaction.
func (r *Repository) Create(ctx context.Context, req *CreateStationRequest) (*Station, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("stations: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	s := Station{
		Name:          strings.TrimSpace(req.Name),
		Address:       req.Address,
		City:          req.City,
		Description:   req.Description,
		DailyFootfall: req.DailyFootfall,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO stations (name, address, city, description, daily_footfall)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		s.Name, s.Address, s.City, s.Description, s.DailyFootfall).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if storage.IsUniqueViolation(err) {
		return nil, ErrNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("stations: insert: %w", err)
	}

	if err := insertRelations(ctx, tx, s.ID, req.LineIDs, req.AudienceIDs, req.TypeIDs, req.Images, req.Products); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("stations: commit: %w", err)
	}
	return r.Get(ctx, s.ID)
}

// Update applies partial-update semantics to the base row and replaces any
// relation list that is present in the request. The whole sequence runs in one
// transaction so a mid-sequence failure cannot leave relations half-replaced.
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateStationRequest) (*Station, error) {
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
	if req.Address != nil {
		add("address", *req.Address)
	}
	if req.City != nil {
		add("city", *req.City)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.DailyFootfall != nil {
		add("daily_footfall", *req.DailyFootfall)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("stations: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sets = append(sets, "updated_at = now()")
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE stations SET %s WHERE id = $%d RETURNING id`,
		strings.Join(sets, ", "), len(args))

	var updatedID int64
	err = tx.QueryRow(ctx, query, args...).Scan(&updatedID)
	if storage.IsNoRows(err) {
		return nil, ErrNotFound
	}
	if storage.IsUniqueViolation(err) {
		return nil, ErrNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("stations: update: %w", err)
	}

	if req.LineIDs != nil {
		if err := replaceJoin(ctx, tx, "station_lines", "line_id", id, *req.LineIDs); err != nil {
			return nil, err
		}
	}
	if req.AudienceIDs != nil {
		if err := replaceJoin(ctx, tx, "station_audiences", "audience_id", id, *req.AudienceIDs); err != nil {
			return nil, err
		}
	}
	if req.TypeIDs != nil {
		if err := replaceJoin(ctx, tx, "station_types", "type_id", id, *req.TypeIDs); err != nil {
			return nil, err
		}
	}
	if req.Images != nil {
		if err := replaceImages(ctx, tx, id, *req.Images); err != nil {
			return nil, err
		}
	}
	if req.Products != nil {
		if err := replaceProducts(ctx, tx, id, *req.Products); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("stations: commit: %w", err)
	}
	return r.Get(ctx, id)
}

// Delete removes a station unconditionally; join and image rows cascade.
// Leads keep their denormalized station-name snapshot.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM stations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("stations: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateFromImport creates a station from a spreadsheet row, resolving
// relation names to master rows (creating missing ones) inside the row's own
// transaction. Each import row is isolated: its failure never affects other
// rows.
func (r *Repository) CreateFromImport(ctx context.Context, row *ImportRow) error {
	if err := row.Validate(); err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("stations: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var stationID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO stations (name, address, city, description, daily_footfall)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		strings.TrimSpace(row.Name), row.Address, row.City, row.Description, row.DailyFootfall).
		Scan(&stationID)
	if storage.IsUniqueViolation(err) {
		return ErrNameTaken
	}
	if err != nil {
		return fmt.Errorf("stations: import insert: %w", err)
	}

	type rel struct {
		master string
		join   string
		col    string
		names  []string
	}
	for _, rel := range []rel{
		{"lines", "station_lines", "line_id", row.LineNames},
		{"audiences", "station_audiences", "audience_id", row.AudienceNames},
		{"types", "station_types", "type_id", row.TypeNames},
	} {
		for _, name := range rel.names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			refID, err := getOrCreateByName(ctx, tx, rel.master, name)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx,
				fmt.Sprintf(`INSERT INTO %s (station_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`, rel.join, rel.col),
				stationID, refID); err != nil {
				return fmt.Errorf("stations: import join %s: %w", rel.join, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("stations: commit: %w", err)
	}
	return nil
}

func scanStation(row pgx.Row, s *Station) error {
	return row.Scan(&s.ID, &s.Name, &s.Address, &s.City, &s.Description,
		&s.DailyFootfall, &s.CreatedAt, &s.UpdatedAt)
}

func (r *Repository) loadRelations(ctx context.Context, s *Station) error {
	var err error
	if s.Lines, err = r.namedRefs(ctx, `
		SELECT l.id, l.name FROM lines l
		JOIN station_lines sl ON sl.line_id = l.id
		WHERE sl.station_id = $1 ORDER BY l.name`, s.ID); err != nil {
		return err
	}
	if s.Audiences, err = r.namedRefs(ctx, `
		SELECT a.id, a.name FROM audiences a
		JOIN station_audiences sa ON sa.audience_id = a.id
		WHERE sa.station_id = $1 ORDER BY a.name`, s.ID); err != nil {
		return err
	}
	if s.Types, err = r.namedRefs(ctx, `
		SELECT t.id, t.name FROM types t
		JOIN station_types st ON st.type_id = t.id
		WHERE st.station_id = $1 ORDER BY t.name`, s.ID); err != nil {
		return err
	}

	rows, err := r.db.Query(ctx,
		`SELECT url, position FROM station_images WHERE station_id = $1 ORDER BY position`, s.ID)
	if err != nil {
		return fmt.Errorf("stations: load images: %w", err)
	}
	defer rows.Close()
	s.Images = []Image{}
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.URL, &img.Position); err != nil {
			return fmt.Errorf("stations: scan image: %w", err)
		}
		s.Images = append(s.Images, img)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	prows, err := r.db.Query(ctx,
		`SELECT product_id, rate_cents FROM station_products WHERE station_id = $1 ORDER BY product_id`, s.ID)
	if err != nil {
		return fmt.Errorf("stations: load products: %w", err)
	}
	defer prows.Close()
	s.Products = []RateRef{}
	for prows.Next() {
		var ref RateRef
		if err := prows.Scan(&ref.ProductID, &ref.RateCents); err != nil {
			return fmt.Errorf("stations: scan product ref: %w", err)
		}
		s.Products = append(s.Products, ref)
	}
	return prows.Err()
}

func (r *Repository) namedRefs(ctx context.Context, query string, stationID int64) ([]NamedRef, error) {
	rows, err := r.db.Query(ctx, query, stationID)
	if err != nil {
		return nil, fmt.Errorf("stations: load refs: %w", err)
	}
	defer rows.Close()

	out := []NamedRef{}
	for rows.Next() {
		var ref NamedRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("stations: scan ref: %w", err)
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

func insertRelations(ctx context.Context, tx pgx.Tx, stationID int64, lineIDs, audienceIDs, typeIDs []int64, images []Image, products []RateRef) error {
	if err := insertJoin(ctx, tx, "station_lines", "line_id", stationID, lineIDs); err != nil {
		return err
	}
	if err := insertJoin(ctx, tx, "station_audiences", "audience_id", stationID, audienceIDs); err != nil {
		return err
	}
	if err := insertJoin(ctx, tx, "station_types", "type_id", stationID, typeIDs); err != nil {
		return err
	}
	for _, img := range images {
		if _, err := tx.Exec(ctx,
			`INSERT INTO station_images (station_id, url, position) VALUES ($1, $2, $3)`,
			stationID, img.URL, img.Position); err != nil {
			return fmt.Errorf("stations: insert image: %w", err)
		}
	}
	for _, p := range products {
		if _, err := tx.Exec(ctx,
			`INSERT INTO station_products (station_id, product_id, rate_cents) VALUES ($1, $2, $3)`,
			stationID, p.ProductID, p.RateCents); err != nil {
			return fmt.Errorf("stations: insert product ref: %w", err)
		}
	}
	return nil
}

func insertJoin(ctx context.Context, tx pgx.Tx, table, col string, stationID int64, ids []int64) error {
	for _, id := range ids {
		if _, err := tx.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (station_id, %s) VALUES ($1, $2)`, table, col),
			stationID, id); err != nil {
			return fmt.Errorf("stations: insert %s: %w", table, err)
		}
	}
	return nil
}

func replaceJoin(ctx context.Context, tx pgx.Tx, table, col string, stationID int64, ids []int64) error {
	if _, err := tx.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE station_id = $1`, table), stationID); err != nil {
		return fmt.Errorf("stations: clear %s: %w", table, err)
	}
	return insertJoin(ctx, tx, table, col, stationID, ids)
}

func replaceImages(ctx context.Context, tx pgx.Tx, stationID int64, images []Image) error {
	if _, err := tx.Exec(ctx, `DELETE FROM station_images WHERE station_id = $1`, stationID); err != nil {
		return fmt.Errorf("stations: clear images: %w", err)
	}
	for _, img := range images {
		if _, err := tx.Exec(ctx,
			`INSERT INTO station_images (station_id, url, position) VALUES ($1, $2, $3)`,
			stationID, img.URL, img.Position); err != nil {
			return fmt.Errorf("stations: insert image: %w", err)
		}
	}
	return nil
}

func replaceProducts(ctx context.Context, tx pgx.Tx, stationID int64, products []RateRef) error {
	if _, err := tx.Exec(ctx, `DELETE FROM station_products WHERE station_id = $1`, stationID); err != nil {
		return fmt.Errorf("stations: clear products: %w", err)
	}
	for _, p := range products {
		if _, err := tx.Exec(ctx,
			`INSERT INTO station_products (station_id, product_id, rate_cents) VALUES ($1, $2, $3)`,
			stationID, p.ProductID, p.RateCents); err != nil {
			return fmt.Errorf("stations: insert product ref: %w", err)
		}
	}
	return nil
}

// MasterNames returns the current line/audience/type names, feeding the
// template workbook's dropdown lists.
func (r *Repository) MasterNames(ctx context.Context) (lines, audiences, types []string, err error) {
	if lines, err = r.names(ctx, "lines"); err != nil {
		return nil, nil, nil, err
	}
	if audiences, err = r.names(ctx, "audiences"); err != nil {
		return nil, nil, nil, err
	}
	if types, err = r.names(ctx, "types"); err != nil {
		return nil, nil, nil, err
	}
	return lines, audiences, types, nil
}

func (r *Repository) names(ctx context.Context, table string) ([]string, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`SELECT name FROM %s ORDER BY name`, table))
	if err != nil {
		return nil, fmt.Errorf("stations: list %s names: %w", table, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("stations: scan name: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func getOrCreateByName(ctx context.Context, tx pgx.Tx, table, name string) (int64, error) {
	var id int64
	// Upsert keeps this a single round trip whether or not the row exists.
	err := tx.QueryRow(ctx,
		fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`, table), name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("stations: resolve %s %q: %w", table, name, err)
	}
	return id, nil
}
