package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"careline-backend/internal/domain"
	"careline-backend/internal/repositories"
)

func TestCancelMatchedRequestUnwindsEverything(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM service_requests WHERE id=").WithArgs(int64(9)).
		WillReturnRows(requestRow(9, "MATCHED", 60000, int64(5)))
	mock.ExpectExec("UPDATE service_requests SET status=").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE manager_applications SET status=").
		WithArgs("REJECTED", int64(9), "PENDING", "ACCEPTED").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM payments").WithArgs(int64(9), "PAID", "PARTIAL_REFUNDED").
		WillReturnRows(paymentRow(11, 9, 60000, 20000, "PARTIAL_REFUNDED"))
	mock.ExpectExec("UPDATE payments").
		WillReturnResult(sqlmock.NewResult(0, 1))

	gw := &fakeGateway{}
	svc := CancellationService{
		RequestRepo:     repositories.ServiceRequestRepository{DB: db},
		ApplicationRepo: repositories.ApplicationRepository{DB: db},
		PaymentRepo:     repositories.PaymentRepository{DB: db},
		Gateway:         gw,
	}
	if err := svc.Cancel(context.Background(), 9); err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if len(gw.cancelAmounts) != 1 || gw.cancelAmounts[0] != 40000 {
		t.Fatalf("gateway should be asked for the remaining 40000, got %v", gw.cancelAmounts)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelWithoutPayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM service_requests WHERE id=").WithArgs(int64(9)).
		WillReturnRows(requestRow(9, "PENDING", 60000, nil))
	mock.ExpectExec("UPDATE service_requests SET status=").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE manager_applications SET status=").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM payments").WithArgs(int64(9), "PAID", "PARTIAL_REFUNDED").
		WillReturnRows(sqlmock.NewRows(paymentCols))

	gw := &fakeGateway{}
	svc := CancellationService{
		RequestRepo:     repositories.ServiceRequestRepository{DB: db},
		ApplicationRepo: repositories.ApplicationRepository{DB: db},
		PaymentRepo:     repositories.PaymentRepository{DB: db},
		Gateway:         gw,
	}
	if err := svc.Cancel(context.Background(), 9); err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if len(gw.cancelAmounts) != 0 {
		t.Fatalf("no refund expected, got %v", gw.cancelAmounts)
	}
}

func TestCancelInProgressRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM service_requests WHERE id=").WithArgs(int64(9)).
		WillReturnRows(requestRow(9, "IN_PROGRESS", 60000, int64(5)))

	svc := CancellationService{RequestRepo: repositories.ServiceRequestRepository{DB: db}}
	err = svc.Cancel(context.Background(), 9)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("nothing may be written: %v", err)
	}
}

func TestCancelAlreadyCancelled(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM service_requests WHERE id=").WithArgs(int64(9)).
		WillReturnRows(requestRow(9, "CANCELLED", 60000, nil))

	svc := CancellationService{RequestRepo: repositories.ServiceRequestRepository{DB: db}}
	if err := svc.Cancel(context.Background(), 9); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCancelLosesRaceOnGuardedWrite(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM service_requests WHERE id=").WithArgs(int64(9)).
		WillReturnRows(requestRow(9, "MATCHED", 60000, int64(5)))
	// the request started in the meantime, so the guarded write matches nothing
	mock.ExpectExec("UPDATE service_requests SET status=").
		WillReturnResult(sqlmock.NewResult(0, 0))

	svc := CancellationService{RequestRepo: repositories.ServiceRequestRepository{DB: db}}
	if err := svc.Cancel(context.Background(), 9); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
