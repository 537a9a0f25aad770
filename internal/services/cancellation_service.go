package services

import (
	"context"
	"fmt"

	"careline-backend/internal/domain"
	"careline-backend/internal/gateway"
	"careline-backend/internal/repositories"
	"careline-backend/internal/utils"
)

// CancellationService runs the cancel saga: request to CANCELLED with
// manager cleared, live applications rejected, money returned. The
// request write is the primary success condition; the later steps are
// best-effort cleanup that log failures and continue.
type CancellationService struct {
	RequestRepo     repositories.ServiceRequestRepository
	ApplicationRepo repositories.ApplicationRepository
	PaymentRepo     repositories.PaymentRepository
	Gateway         gateway.PaymentGateway
	Notifier        *gateway.SMSNotifier
	RequestID       string
}

// Cancel unwinds a request that has not started yet. IN_PROGRESS and
// the terminal states are rejected.
func (s CancellationService) Cancel(ctx context.Context, requestID int64) error {
	req, err := s.RequestRepo.GetByID(requestID)
	if err != nil {
		return err
	}
	if req.Status == domain.RequestCancelled {
		return domain.ConflictError{Resource: "request", Msg: "already cancelled"}
	}
	if !domain.Cancellable(req.Status) {
		return domain.ConflictError{
			Resource: "request",
			Msg:      fmt.Sprintf("cannot cancel a request in status %s", req.Status),
		}
	}

	// Step 1: status + manager cleared in one guarded write.
	cancelled, err := s.RequestRepo.MarkCancelled(requestID)
	if err != nil {
		return domain.InternalError{Msg: "failed to cancel request", Err: err}
	}
	if !cancelled {
		// the request moved to a non-cancellable state since our read
		return domain.ConflictError{Resource: "request", Msg: "request can no longer be cancelled"}
	}

	// Step 2: reject live applications.
	if err := s.ApplicationRepo.RejectLive(requestID); err != nil {
		utils.LogEvent(s.RequestID, "cancel", "reject_applications",
			fmt.Sprintf("request_id=%d err=%v", requestID, err))
	}

	// Step 3: full refund of the original amount. Kept compatible with
	// the historical behavior: prior partial refunds are overwritten,
	// not topped up (see DESIGN.md).
	payment, err := s.PaymentRepo.GetRefundableByRequest(requestID)
	if err != nil {
		utils.LogEvent(s.RequestID, "cancel", "lookup_payment",
			fmt.Sprintf("request_id=%d err=%v", requestID, err))
	} else if payment != nil {
		if remaining := payment.Remaining(); remaining > 0 && s.Gateway != nil {
			if err := s.Gateway.Cancel(ctx, payment.PaymentKey, remaining, "booking cancelled"); err != nil {
				utils.LogEvent(s.RequestID, "cancel", "gateway_refund",
					fmt.Sprintf("payment_id=%d err=%v", payment.ID, err))
			}
		}
		if _, err := s.PaymentRepo.SetFullyRefunded(payment.ID); err != nil {
			utils.LogEvent(s.RequestID, "cancel", "ledger_refund",
				fmt.Sprintf("payment_id=%d err=%v", payment.ID, err))
		}
	}

	utils.LogEvent(s.RequestID, "cancel", "done", fmt.Sprintf("request_id=%d was=%s", requestID, req.Status))

	if s.Notifier != nil {
		s.Notifier.Send(req.Phone,
			fmt.Sprintf("[CareLine] Your %s booking on %s was cancelled.", req.ServiceType, req.ServiceDate))
	}
	return nil
}
