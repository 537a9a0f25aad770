package services

import (
	"context"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"careline-backend/internal/gateway"
)

var requestCols = []string{
	"id", "customer_id", "guest_name", "guest_phone",
	"service_type", "service_date", "start_time", "duration_minutes",
	"address", "address_detail", "phone", "details",
	"status", "estimated_price", "final_price", "manager_id", "designated_manager_id",
	"created_at", "confirmed_at", "completed_at",
}

func requestRow(id int64, status string, estimated int64, managerID any) *sqlmock.Rows {
	return sqlmock.NewRows(requestCols).AddRow(
		id, nil, "Kim Guest", "01012345678",
		"hospital_companion", "2026-09-01", "09:00", 180,
		"12 Teheran-ro, Gangnam-gu", "", "01012345678", "",
		status, estimated, nil, managerID, managerID,
		time.Now(), nil, nil,
	)
}

// pendingDesignatedRow is a PENDING booking with a staged designation:
// designated_manager_id set, manager_id still NULL.
func pendingDesignatedRow(id int64, estimated, designatedID int64) *sqlmock.Rows {
	return sqlmock.NewRows(requestCols).AddRow(
		id, nil, "Kim Guest", "01012345678",
		"hospital_companion", "2026-09-01", "09:00", 180,
		"12 Teheran-ro, Gangnam-gu", "", "01012345678", "",
		"PENDING", estimated, nil, nil, designatedID,
		time.Now(), nil, nil,
	)
}

var managerCols = []string{
	"id", "user_id", "name", "phone", "email", "photo_url",
	"specialty", "approval_status", "is_active",
	"bank_name", "bank_account", "created_at",
}

func managerRow(id int64, approval string, active bool) *sqlmock.Rows {
	return sqlmock.NewRows(managerCols).AddRow(
		id, id+100, "Lee Manager", "01099998888", "manager@example.com", "",
		"dementia,post-surgery", approval, active,
		"KB", "110-2222", time.Now(),
	)
}

var paymentCols = []string{
	"id", "service_request_id", "order_id", "payment_key", "amount", "refund_amount",
	"status", "method", "approved_at", "refunded_at", "partial_refunded", "created_at",
}

func paymentRow(id, requestID, amount, refunded int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows(paymentCols).AddRow(
		id, requestID, "777", "pay_key_abc", amount, refunded,
		status, "card", time.Now(), nil, refunded > 0 && refunded < amount, time.Now(),
	)
}

var applicationCols = []string{"id", "manager_id", "service_request_id", "status", "message", "created_at"}

func applicationRow(id, managerID, requestID int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows(applicationCols).AddRow(id, managerID, requestID, status, "", time.Now())
}

// fakeGateway records calls so tests can assert on refunded amounts.
type fakeGateway struct {
	confirmResult gateway.ConfirmResult
	confirmErr    error
	cancelErr     error
	confirmCalls  int
	cancelAmounts []int64
}

func (f *fakeGateway) Confirm(_ context.Context, paymentKey, orderID string, amount int64) (gateway.ConfirmResult, error) {
	f.confirmCalls++
	if f.confirmErr != nil {
		return gateway.ConfirmResult{}, f.confirmErr
	}
	if f.confirmResult.PaymentKey == "" {
		return gateway.ConfirmResult{
			PaymentKey: paymentKey,
			OrderID:    orderID,
			Amount:     amount,
			Method:     "card",
			ApprovedAt: time.Now(),
		}, nil
	}
	return f.confirmResult, nil
}

func (f *fakeGateway) Cancel(_ context.Context, _ string, amount int64, _ string) error {
	f.cancelAmounts = append(f.cancelAmounts, amount)
	return f.cancelErr
}
