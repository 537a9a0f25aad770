package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAddRefundGuardArgs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE payments").
		WithArgs(int64(20000), "REFUNDED", "PARTIAL_REFUNDED", int64(11), "REFUNDED", int64(20000)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := PaymentRepository{DB: db}
	ok, err := repo.AddRefund(11, 20000)
	if err != nil {
		t.Fatalf("add refund error: %v", err)
	}
	if !ok {
		t.Fatal("expected the guarded update to match")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddRefundGuardRejectsOverdraw(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// the WHERE clause filtered the row out, refund would overdraw
	mock.ExpectExec("UPDATE payments").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := PaymentRepository{DB: db}
	ok, err := repo.AddRefund(11, 999999)
	if err != nil {
		t.Fatalf("add refund error: %v", err)
	}
	if ok {
		t.Fatal("guarded update must not match an overdraw")
	}
}

func TestSetFullyRefundedIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE payments").
		WithArgs("REFUNDED", int64(11), "REFUNDED").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := PaymentRepository{DB: db}
	ok, err := repo.SetFullyRefunded(11)
	if err != nil {
		t.Fatalf("set fully refunded error: %v", err)
	}
	if ok {
		t.Fatal("already refunded row must not match again")
	}
}

func TestGetRefundableByRequestNone(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM payments").WithArgs(int64(9), "PAID", "PARTIAL_REFUNDED").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := PaymentRepository{DB: db}
	p, err := repo.GetRefundableByRequest(9)
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil payment, got %+v", p)
	}
}
