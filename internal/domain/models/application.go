package models

import (
	"time"

	"careline-backend/internal/domain"
)

// ManagerApplication is one manager's claim on an open request.
// At most one non-rejected application may exist per request.
type ManagerApplication struct {
	ID               int64                    `json:"id"`
	ManagerID        int64                    `json:"manager_id"`
	ServiceRequestID int64                    `json:"service_request_id"`
	Status           domain.ApplicationStatus `json:"status"`
	Message          string                   `json:"message,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
}
