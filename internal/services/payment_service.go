package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"careline-backend/internal/domain"
	"careline-backend/internal/domain/models"
	"careline-backend/internal/gateway"
	"careline-backend/internal/repositories"
	"careline-backend/internal/utils"
)

// PaymentService is the ledger: it records gateway confirmations and
// applies full/partial refunds under the refund_amount <= amount
// invariant.
type PaymentService struct {
	PaymentRepo repositories.PaymentRepository
	RequestRepo repositories.ServiceRequestRepository
	Gateway     gateway.PaymentGateway
	RequestID   string
}

// Confirm asks the gateway to settle the charge, inserts the ledger row
// with the gateway's canonical values, and moves the request to
// CONFIRMED. A gateway decline surfaces the gateway's own reason and
// writes nothing.
func (s PaymentService) Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (models.Payment, error) {
	paymentKey = strings.TrimSpace(paymentKey)
	if paymentKey == "" {
		return models.Payment{}, domain.ValidationError{Field: "payment_key", Msg: "required"}
	}
	if amount <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "amount", Msg: "must be positive"}
	}

	// order_id is the request id in this system, 1:1.
	requestID, err := strconv.ParseInt(strings.TrimSpace(orderID), 10, 64)
	if err != nil || requestID <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "order_id", Msg: "invalid order id"}
	}

	req, err := s.RequestRepo.GetByID(requestID)
	if err != nil {
		return models.Payment{}, err
	}
	if err := domain.CheckTransition(req.Status, domain.RequestConfirmed); err != nil {
		return models.Payment{}, err
	}
	if amount != req.EstimatedPrice {
		return models.Payment{}, domain.ValidationError{
			Field: "amount",
			Msg:   fmt.Sprintf("expected %s", utils.FormatWon(req.EstimatedPrice)),
		}
	}

	result, err := s.Gateway.Confirm(ctx, paymentKey, orderID, amount)
	if err != nil {
		utils.LogEvent(s.RequestID, "payment", "confirm", "gateway declined: "+err.Error())
		return models.Payment{}, err
	}

	approvedAt := result.ApprovedAt
	payment := models.Payment{
		ServiceRequestID: &requestID,
		OrderID:          orderID,
		PaymentKey:       result.PaymentKey,
		Amount:           result.Amount,
		RefundAmount:     0,
		Status:           domain.PaymentPaid,
		Method:           result.Method,
		ApprovedAt:       &approvedAt,
	}

	// The money already moved; ledger/status failures past this point
	// are logged but not surfaced as a payment failure to the caller.
	id, err := s.PaymentRepo.Insert(payment)
	if err != nil {
		utils.LogEvent(s.RequestID, "payment", "confirm",
			fmt.Sprintf("ledger insert failed after gateway approval: request_id=%d err=%v", requestID, err))
		return payment, nil
	}
	payment.ID = id

	if err := s.RequestRepo.SetStatus(requestID, domain.RequestConfirmed); err != nil {
		utils.LogEvent(s.RequestID, "payment", "confirm",
			fmt.Sprintf("request confirm failed: request_id=%d err=%v", requestID, err))
	}

	utils.LogEvent(s.RequestID, "payment", "confirm",
		fmt.Sprintf("payment_id=%d request_id=%d amount=%d method=%s", id, requestID, result.Amount, result.Method))
	return payment, nil
}

// FullRefund returns everything still held on the payment and marks
// the ledger REFUNDED.
func (s PaymentService) FullRefund(ctx context.Context, paymentID int64, reason string) (models.Payment, error) {
	p, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	if p.Status == domain.PaymentRefunded {
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "already fully refunded"}
	}

	if remaining := p.Remaining(); remaining > 0 {
		if err := s.Gateway.Cancel(ctx, p.PaymentKey, remaining, refundReason(reason)); err != nil {
			return models.Payment{}, err
		}
	}

	updated, err := s.PaymentRepo.SetFullyRefunded(paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	if !updated {
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "already fully refunded"}
	}

	utils.LogEvent(s.RequestID, "payment", "full_refund",
		fmt.Sprintf("payment_id=%d amount=%d", paymentID, p.Amount))
	return s.PaymentRepo.GetByID(paymentID)
}

// PartialRefund adds refundAmount to the running total. The repo write
// re-checks the invariant so a concurrent refund cannot overdraw.
func (s PaymentService) PartialRefund(ctx context.Context, paymentID, refundAmount int64, reason string) (models.Payment, error) {
	if refundAmount <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "refund_amount", Msg: "must be positive"}
	}
	p, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	if p.Status == domain.PaymentRefunded {
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "already fully refunded"}
	}
	if p.RefundAmount+refundAmount > p.Amount {
		return models.Payment{}, domain.ValidationError{
			Field: "refund_amount",
			Msg:   fmt.Sprintf("exceeds refundable balance of %s", utils.FormatWon(p.Remaining())),
		}
	}

	if err := s.Gateway.Cancel(ctx, p.PaymentKey, refundAmount, refundReason(reason)); err != nil {
		return models.Payment{}, err
	}

	updated, err := s.PaymentRepo.AddRefund(paymentID, refundAmount)
	if err != nil {
		return models.Payment{}, err
	}
	if !updated {
		// a concurrent refund won the race between our read and write
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "refund exceeds remaining balance"}
	}

	utils.LogEvent(s.RequestID, "payment", "partial_refund",
		fmt.Sprintf("payment_id=%d refund=%d", paymentID, refundAmount))
	return s.PaymentRepo.GetByID(paymentID)
}

func refundReason(reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "customer refund"
	}
	return reason
}
