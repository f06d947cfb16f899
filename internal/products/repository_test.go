package products

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
)

func TestRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	created := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs("Backlit Panel", "panel", int64(450000), "per panel/month", 30).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(2), created))

	repo := NewRepositoryWithDB(mock)
	p, err := repo.Create(context.Background(), &CreateProductRequest{
		Name:              "Backlit Panel",
		Format:            "panel",
		PricePerUnitCents: 450000,
		Unit:              "per panel/month",
		DurationDays:      30,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.ID != 2 || p.CreatedAt != created {
		t.Errorf("product = %+v", p)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepository_Create_Duplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs("Backlit Panel", "", int64(0), "", 0).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "products_name_key"})

	repo := NewRepositoryWithDB(mock)
	_, err = repo.Create(context.Background(), &CreateProductRequest{Name: "Backlit Panel"})
	if err != ErrNameTaken {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
}

func TestRepository_GetStationRate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	created := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	cols := []string{"id", "name", "format", "price_per_unit_cents", "unit", "duration_days", "created_at", "station_id", "rate_cents"}
	mock.ExpectQuery(`SELECT p.id, p.name, p.format`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(int64(2), "Backlit Panel", "panel", int64(450000), "per panel/month", 30, created, int64(1), int64(500000)))

	repo := NewRepositoryWithDB(mock)
	sr, err := repo.GetStationRate(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("GetStationRate failed: %v", err)
	}
	if sr.RateCents != 500000 || sr.StationID != 1 || sr.Name != "Backlit Panel" {
		t.Errorf("station rate = %+v", sr)
	}
}

func TestRepository_GetStationRate_NotOffered(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	cols := []string{"id", "name", "format", "price_per_unit_cents", "unit", "duration_days", "created_at", "station_id", "rate_cents"}
	mock.ExpectQuery(`SELECT p.id, p.name, p.format`).
		WithArgs(int64(1), int64(99)).
		WillReturnRows(pgxmock.NewRows(cols))

	repo := NewRepositoryWithDB(mock)
	_, err = repo.GetStationRate(context.Background(), 1, 99)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_Update_PartialClearsExplicitZero(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	created := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	cols := []string{"id", "name", "format", "price_per_unit_cents", "unit", "duration_days", "created_at"}
	mock.ExpectQuery(`UPDATE products SET format = \$1 WHERE id = \$2`).
		WithArgs("", int64(2)).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(int64(2), "Backlit Panel", "", int64(450000), "per panel/month", 30, created))

	repo := NewRepositoryWithDB(mock)
	empty := ""
	p, err := repo.Update(context.Background(), 2, &UpdateProductRequest{Format: &empty})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if p.Format != "" || p.Name != "Backlit Panel" {
		t.Errorf("product = %+v", p)
	}
}

func TestRepository_Delete_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewRepositoryWithDB(mock)
	if err := repo.Delete(context.Background(), 7); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
