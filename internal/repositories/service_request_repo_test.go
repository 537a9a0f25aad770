package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"careline-backend/internal/domain"
	"careline-backend/internal/domain/models"
)

var testRequestCols = []string{
	"id", "customer_id", "guest_name", "guest_phone",
	"service_type", "service_date", "start_time", "duration_minutes",
	"address", "address_detail", "phone", "details",
	"status", "estimated_price", "final_price", "manager_id", "designated_manager_id",
	"created_at", "confirmed_at", "completed_at",
}

func TestMarkCancelledGuardedOnState(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE service_requests SET status=").
		WithArgs("CANCELLED", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := ServiceRequestRepository{DB: db}
	ok, err := repo.MarkCancelled(9)
	if err != nil {
		t.Fatalf("mark cancelled error: %v", err)
	}
	if !ok {
		t.Fatal("expected guarded cancel to match")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE service_requests").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := ServiceRequestRepository{DB: db}
	if err := repo.SetStatus(404, domain.RequestMatching); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSetStatusConfirmedPromotesDesignation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`manager_id=COALESCE\(designated_manager_id`).
		WithArgs("CONFIRMED", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := ServiceRequestRepository{DB: db}
	if err := repo.SetStatus(9, domain.RequestConfirmed); err != nil {
		t.Fatalf("set status error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListDesignatedFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectQuery("manager_id IS NOT NULL").
		WillReturnRows(sqlmock.NewRows(testRequestCols).AddRow(
			9, nil, "Kim Guest", "01012345678",
			"home_care", "2026-09-01", "09:00", 120,
			"addr", "", "01012345678", "",
			"CONFIRMED", 40000, nil, 5, 5,
			time.Now(), nil, nil,
		))

	repo := ServiceRequestRepository{DB: db}
	out, total, err := repo.List(models.RequestFilter{Designated: true, Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 1 || len(out) != 1 {
		t.Fatalf("total=%d len=%d", total, len(out))
	}
	if out[0].ManagerID == nil || *out[0].ManagerID != 5 {
		t.Fatalf("manager id not scanned: %+v", out[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM service_requests WHERE id=").WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(testRequestCols))

	repo := ServiceRequestRepository{DB: db}
	if _, err := repo.GetByID(404); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
