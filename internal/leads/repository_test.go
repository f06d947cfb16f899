package leads

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
)

func TestRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	stationID := int64(1)
	now := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO leads`).
		WithArgs("advertise", "brand", "heard-of-us", "Acme", "A", "a@b.com", "9999999999",
			&stationID, "Rajiv Chowk", "Platform Banner", "1-5L", "awareness", "commuters", "this-quarter", "").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	repo := NewRepositoryWithDB(mock)
	lead := &Lead{
		Requirement: RequirementAdvertise,
		BuyerType:   "brand",
		Familiarity: "heard-of-us",
		Company:     "Acme",
		Name:        "A",
		Email:       "a@b.com",
		Phone:       "9999999999",
		StationID:   &stationID,
		StationName: "Rajiv Chowk",
		AdFormat:    "Platform Banner",
		BudgetBand:  "1-5L",
		CampaignGoal: "awareness",
		Audience:    "commuters",
		Timeline:    "this-quarter",
	}
	if err := repo.Create(context.Background(), lead); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if lead.ID != 7 {
		t.Errorf("ID = %d, want 7", lead.ID)
	}
	if lead.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRepository_GetNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT .+ FROM leads WHERE id`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	repo := NewRepositoryWithDB(mock)
	_, err = repo.Get(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRepository_DeleteNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM leads`).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewRepositoryWithDB(mock)
	if err := repo.Delete(context.Background(), 4); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRepository_ListDefaultsLimit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT .+ FROM leads ORDER BY created_at DESC`).
		WithArgs(50, 0).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "requirement", "buyer_type", "familiarity", "company", "name", "email", "phone",
			"station_id", "station_name", "ad_format", "budget_band", "campaign_goal", "audience",
			"timeline", "message", "created_at",
		}))

	repo := NewRepositoryWithDB(mock)
	list, err := repo.List(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("len = %d, want 0", len(list))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
