package services

import (
	"bytes"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"careline-backend/internal/domain"
	"careline-backend/internal/repositories"
)

func TestTransitionLegalEdge(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM service_requests WHERE id=").WithArgs(int64(9)).
		WillReturnRows(requestRow(9, "MATCHED", 60000, int64(5)))
	mock.ExpectExec("UPDATE service_requests SET status=").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM service_requests WHERE id=").WithArgs(int64(9)).
		WillReturnRows(requestRow(9, "IN_PROGRESS", 60000, int64(5)))

	svc := LifecycleService{RequestRepo: repositories.ServiceRequestRepository{DB: db}}
	out, err := svc.Transition(9, domain.RequestInProgress)
	if err != nil {
		t.Fatalf("transition error: %v", err)
	}
	if out.Status != domain.RequestInProgress {
		t.Fatalf("status = %s, want IN_PROGRESS", out.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTransitionIllegalEdge(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM service_requests WHERE id=").WithArgs(int64(9)).
		WillReturnRows(requestRow(9, "COMPLETED", 60000, int64(5)))

	svc := LifecycleService{RequestRepo: repositories.ServiceRequestRepository{DB: db}}
	if _, err := svc.Transition(9, domain.RequestCancelled); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no write expected: %v", err)
	}
}

func TestReceiptForSettledPayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM payments WHERE id=").WithArgs(int64(11)).
		WillReturnRows(paymentRow(11, 9, 60000, 0, "PAID"))
	mock.ExpectQuery("FROM service_requests WHERE id=").WithArgs(int64(9), int64(7)).
		WillReturnRows(requestRow(9, "CONFIRMED", 60000, nil))

	svc := ReceiptService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		RequestRepo: repositories.ServiceRequestRepository{DB: db},
	}
	data, filename, err := svc.Generate(11, 7)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if filename != "receipt-777.pdf" {
		t.Fatalf("filename = %q", filename)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestReceiptRejectsUnsettledPayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM payments WHERE id=").WithArgs(int64(11)).
		WillReturnRows(paymentRow(11, 9, 60000, 0, "PENDING"))
	mock.ExpectQuery("FROM service_requests WHERE id=").WithArgs(int64(9), int64(7)).
		WillReturnRows(requestRow(9, "PENDING", 60000, nil))

	svc := ReceiptService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		RequestRepo: repositories.ServiceRequestRepository{DB: db},
	}
	if _, _, err := svc.Generate(11, 7); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestReceiptDeniedForAnotherCustomersPayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// payment 11 hangs off request 9, which customer 8 does not own
	mock.ExpectQuery("FROM payments WHERE id=").WithArgs(int64(11)).
		WillReturnRows(paymentRow(11, 9, 60000, 0, "PAID"))
	mock.ExpectQuery("FROM service_requests WHERE id=").WithArgs(int64(9), int64(8)).
		WillReturnRows(sqlmock.NewRows(requestCols))

	svc := ReceiptService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		RequestRepo: repositories.ServiceRequestRepository{DB: db},
	}
	if _, _, err := svc.Generate(11, 8); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
