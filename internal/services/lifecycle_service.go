package services

import (
	"fmt"

	"careline-backend/internal/domain"
	"careline-backend/internal/domain/models"
	"careline-backend/internal/repositories"
	"careline-backend/internal/utils"
)

// LifecycleService owns service_requests.status. Every status write
// goes through the transition table; the matching engine and the
// cancellation coordinator perform pre-validated edges of the same
// table through their own repos.
type LifecycleService struct {
	RequestRepo repositories.ServiceRequestRepository
	RequestID   string
}

// Transition moves a request to the target status after checking the
// edge against the current state. COMPLETED and CONFIRMED stamp their
// timestamp columns in the repo write.
func (s LifecycleService) Transition(requestID int64, target domain.RequestStatus) (models.ServiceRequest, error) {
	req, err := s.RequestRepo.GetByID(requestID)
	if err != nil {
		return models.ServiceRequest{}, err
	}
	if err := domain.CheckTransition(req.Status, target); err != nil {
		return models.ServiceRequest{}, err
	}
	if err := s.RequestRepo.SetStatus(requestID, target); err != nil {
		return models.ServiceRequest{}, err
	}

	utils.LogEvent(s.RequestID, "lifecycle", "transition",
		fmt.Sprintf("request_id=%d %s->%s", requestID, req.Status, target))

	return s.RequestRepo.GetByID(requestID)
}
