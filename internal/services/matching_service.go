package services

import (
	"fmt"
	"strings"

	"careline-backend/internal/domain"
	"careline-backend/internal/domain/models"
	"careline-backend/internal/gateway"
	"careline-backend/internal/repositories"
	"careline-backend/internal/utils"
)

// MatchingService owns manager_applications: the first-come-first-served
// open marketplace and the designated-manager approval queue.
type MatchingService struct {
	RequestRepo     repositories.ServiceRequestRepository
	ApplicationRepo repositories.ApplicationRepository
	ManagerRepo     repositories.ManagerRepository
	Notifier        *gateway.SMSNotifier
	RequestID       string
}

// Apply registers a manager's claim on an open request. The slot is
// marketplace-wide: one live application per request, first come first
// served.
func (s MatchingService) Apply(managerID, requestID int64, message string) (models.ManagerApplication, error) {
	manager, err := s.ManagerRepo.GetByID(managerID)
	if err != nil {
		return models.ManagerApplication{}, err
	}
	if manager.ApprovalStatus != domain.ManagerApproved || !manager.IsActive {
		return models.ManagerApplication{}, domain.UnauthorizedError{Msg: "manager is not eligible for matching"}
	}

	req, err := s.RequestRepo.GetByID(requestID)
	if err != nil {
		return models.ManagerApplication{}, err
	}
	if req.Status != domain.RequestConfirmed && req.Status != domain.RequestMatching {
		return models.ManagerApplication{}, domain.ConflictError{
			Resource: "request",
			Msg:      fmt.Sprintf("cannot apply to a request in status %s", req.Status),
		}
	}

	// Friendly pre-check so the caller can tell "already applied" from
	// "slot taken". The conditional insert below is what actually
	// guards against the race.
	if existing, err := s.ApplicationRepo.GetAnyByRequest(requestID); err != nil {
		return models.ManagerApplication{}, err
	} else if existing != nil {
		if existing.ManagerID == managerID {
			return models.ManagerApplication{}, domain.ConflictError{Resource: "application", Msg: "already applied to this request"}
		}
		return models.ManagerApplication{}, domain.ConflictError{Resource: "application", Msg: "another manager already applied"}
	}

	app := models.ManagerApplication{
		ManagerID:        managerID,
		ServiceRequestID: requestID,
		Status:           domain.ApplicationPending,
		Message:          strings.TrimSpace(message),
	}
	id, inserted, err := s.ApplicationRepo.InsertIfAbsent(app)
	if err != nil {
		return models.ManagerApplication{}, domain.InternalError{Msg: "failed to save application", Err: err}
	}
	if !inserted {
		return models.ManagerApplication{}, domain.ConflictError{Resource: "application", Msg: "another manager already applied"}
	}
	app.ID = id

	if req.Status == domain.RequestConfirmed {
		if _, err := s.RequestRepo.SetStatusIf(requestID, domain.RequestConfirmed, domain.RequestMatching); err != nil {
			utils.LogEvent(s.RequestID, "matching", "apply", "status bump failed: "+err.Error())
		}
	}

	utils.LogEvent(s.RequestID, "matching", "apply",
		fmt.Sprintf("request_id=%d manager_id=%d application_id=%d", requestID, managerID, id))
	return app, nil
}

// Accept approves one application: target ACCEPTED, other PENDING rows
// REJECTED, request gets the manager and moves to MATCHED.
func (s MatchingService) Accept(applicationID int64) error {
	app, err := s.ApplicationRepo.GetByID(applicationID)
	if err != nil {
		return err
	}
	if app.Status == domain.ApplicationRejected {
		return domain.ConflictError{Resource: "application", Msg: "already processed"}
	}

	req, err := s.RequestRepo.GetByID(app.ServiceRequestID)
	if err != nil {
		return err
	}
	// An ACCEPTED application on a request that never reached MATCHED
	// means an earlier accept stalled after the application flip; a
	// retry picks up the remaining steps instead of dead-ending.
	resume := app.Status == domain.ApplicationAccepted
	if resume && req.Status == domain.RequestMatched {
		return domain.ConflictError{Resource: "application", Msg: "already processed"}
	}
	if err := domain.CheckTransition(req.Status, domain.RequestMatched); err != nil {
		return err
	}

	if !resume {
		moved, err := s.ApplicationRepo.SetStatusIf(applicationID, domain.ApplicationPending, domain.ApplicationAccepted)
		if err != nil {
			return err
		}
		if !moved {
			return domain.ConflictError{Resource: "application", Msg: "already processed"}
		}
	}

	if err := s.ApplicationRepo.RejectOthers(app.ServiceRequestID, applicationID); err != nil {
		utils.LogEvent(s.RequestID, "matching", "accept", "reject others failed: "+err.Error())
	}
	if err := s.RequestRepo.AssignManager(app.ServiceRequestID, app.ManagerID); err != nil {
		return err
	}

	utils.LogEvent(s.RequestID, "matching", "accept",
		fmt.Sprintf("request_id=%d application_id=%d manager_id=%d", app.ServiceRequestID, applicationID, app.ManagerID))
	s.notifyMatched(req, app.ManagerID)
	return nil
}

// Reject declines an application. When no PENDING applications remain
// on a MATCHING request it reverts to CONFIRMED and re-enters the pool.
func (s MatchingService) Reject(applicationID int64) error {
	app, err := s.ApplicationRepo.GetByID(applicationID)
	if err != nil {
		return err
	}
	if app.Status != domain.ApplicationPending {
		return domain.ConflictError{Resource: "application", Msg: "already processed"}
	}

	moved, err := s.ApplicationRepo.SetStatusIf(applicationID, domain.ApplicationPending, domain.ApplicationRejected)
	if err != nil {
		return err
	}
	if !moved {
		return domain.ConflictError{Resource: "application", Msg: "already processed"}
	}

	pending, err := s.ApplicationRepo.CountPendingByRequest(app.ServiceRequestID)
	if err != nil {
		return err
	}
	if pending == 0 {
		if _, err := s.RequestRepo.SetStatusIf(app.ServiceRequestID, domain.RequestMatching, domain.RequestConfirmed); err != nil {
			utils.LogEvent(s.RequestID, "matching", "reject", "revert failed: "+err.Error())
		}
	}

	utils.LogEvent(s.RequestID, "matching", "reject",
		fmt.Sprintf("request_id=%d application_id=%d pending_left=%d", app.ServiceRequestID, applicationID, pending))
	return nil
}

// ApproveDesignated confirms a pre-chosen manager: the designation
// overrides the open marketplace, so live applications are rejected.
func (s MatchingService) ApproveDesignated(requestID int64) error {
	req, err := s.RequestRepo.GetByID(requestID)
	if err != nil {
		return err
	}
	if req.ManagerID == nil {
		return domain.ValidationError{Field: "manager_id", Msg: "request has no designated manager"}
	}
	// Designation approval is a hard-coded edge: the queue only holds
	// CONFIRMED/MATCHING requests, and both jump straight to MATCHED.
	if req.Status != domain.RequestConfirmed && req.Status != domain.RequestMatching {
		return domain.ConflictError{
			Resource: "request",
			Msg:      fmt.Sprintf("cannot approve a designation in status %s", req.Status),
		}
	}

	if err := s.RequestRepo.SetStatus(requestID, domain.RequestMatched); err != nil {
		return err
	}
	if err := s.ApplicationRepo.RejectLive(requestID); err != nil {
		utils.LogEvent(s.RequestID, "matching", "approve_designated", "bulk reject failed: "+err.Error())
	}

	utils.LogEvent(s.RequestID, "matching", "approve_designated",
		fmt.Sprintf("request_id=%d manager_id=%d", requestID, *req.ManagerID))
	s.notifyMatched(req, *req.ManagerID)
	return nil
}

// RejectDesignated clears the designation; the request falls back to
// the open marketplace with its status untouched.
func (s MatchingService) RejectDesignated(requestID int64) error {
	req, err := s.RequestRepo.GetByID(requestID)
	if err != nil {
		return err
	}
	if req.ManagerID == nil {
		return domain.ValidationError{Field: "manager_id", Msg: "request has no designated manager"}
	}
	if err := s.RequestRepo.ClearManager(requestID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "matching", "reject_designated", fmt.Sprintf("request_id=%d", requestID))
	return nil
}

func (s MatchingService) notifyMatched(req models.ServiceRequest, managerID int64) {
	if s.Notifier == nil {
		return
	}
	body := fmt.Sprintf("[CareLine] A caregiver was matched for your %s booking on %s.", req.ServiceType, req.ServiceDate)
	s.Notifier.Send(req.Phone, body)
	if m, err := s.ManagerRepo.GetByID(managerID); err == nil {
		s.Notifier.Send(m.Phone, fmt.Sprintf("[CareLine] You were matched to a %s booking on %s %s.",
			req.ServiceType, req.ServiceDate, req.StartTime))
	}
}
