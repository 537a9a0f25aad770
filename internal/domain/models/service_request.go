package models

import (
	"time"

	"careline-backend/internal/domain"
)

// ServiceRequest is a care booking as stored in service_requests.
// CustomerID is nil for guest bookings; GuestName/GuestPhone carry the
// contact in that case. A designation chosen on the booking form is
// staged in DesignatedManagerID while the request is PENDING and only
// promoted into ManagerID once payment confirms the request, so
// ManagerID is never set on a PENDING or CANCELLED row.
type ServiceRequest struct {
	ID                  int64                `json:"id"`
	CustomerID          *int64               `json:"customer_id"`
	GuestName           string               `json:"guest_name,omitempty"`
	GuestPhone          string               `json:"guest_phone,omitempty"`
	ServiceType         string               `json:"service_type"`
	ServiceDate         string               `json:"service_date"` // YYYY-MM-DD
	StartTime           string               `json:"start_time"`   // HH:MM
	DurationMinutes     int                  `json:"duration_minutes"`
	Address             string               `json:"address"`
	AddressDetail       string               `json:"address_detail,omitempty"`
	Phone               string               `json:"phone"`
	Details             string               `json:"details,omitempty"`
	Status              domain.RequestStatus `json:"status"`
	EstimatedPrice      int64                `json:"estimated_price"`
	FinalPrice          *int64               `json:"final_price,omitempty"`
	ManagerID           *int64               `json:"manager_id,omitempty"`
	DesignatedManagerID *int64               `json:"designated_manager_id,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
	ConfirmedAt         *time.Time           `json:"confirmed_at,omitempty"`
	CompletedAt         *time.Time           `json:"completed_at,omitempty"`
}

// RequestFilter narrows admin request listings.
type RequestFilter struct {
	Status     domain.RequestStatus
	CustomerID int64
	Designated bool
	Page       int
	PageSize   int
}
