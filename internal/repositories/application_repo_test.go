package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"careline-backend/internal/domain"
	"careline-backend/internal/domain/models"
)

func TestInsertIfAbsentClaimsSlot(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO manager_applications").
		WithArgs(int64(5), int64(9), "PENDING", nil, int64(9)).
		WillReturnResult(sqlmock.NewResult(31, 1))

	repo := ApplicationRepository{DB: db}
	id, inserted, err := repo.InsertIfAbsent(models.ManagerApplication{
		ManagerID:        5,
		ServiceRequestID: 9,
		Status:           domain.ApplicationPending,
	})
	if err != nil {
		t.Fatalf("insert error: %v", err)
	}
	if !inserted || id != 31 {
		t.Fatalf("inserted=%v id=%d", inserted, id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertIfAbsentLosesRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO manager_applications").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := ApplicationRepository{DB: db}
	_, inserted, err := repo.InsertIfAbsent(models.ManagerApplication{
		ManagerID:        6,
		ServiceRequestID: 9,
		Status:           domain.ApplicationPending,
	})
	if err != nil {
		t.Fatalf("insert error: %v", err)
	}
	if inserted {
		t.Fatal("second claim on the slot must not insert")
	}
}

func TestCountPendingByRequest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(9), "PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))

	repo := ApplicationRepository{DB: db}
	n, err := repo.CountPendingByRequest(9)
	if err != nil {
		t.Fatalf("count error: %v", err)
	}
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
}
