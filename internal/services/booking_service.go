package services

import (
	"fmt"
	"strings"

	"careline-backend/internal/domain"
	"careline-backend/internal/domain/models"
	"careline-backend/internal/repositories"
	"careline-backend/internal/utils"
)

// BookingInput is the booking form payload.
type BookingInput struct {
	CustomerID      *int64 `json:"-"`
	GuestName       string `json:"guest_name"`
	GuestPhone      string `json:"guest_phone"`
	ServiceType     string `json:"service_type"`
	ServiceDate     string `json:"service_date"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Address         string `json:"address"`
	AddressDetail   string `json:"address_detail"`
	Phone           string `json:"phone"`
	Details         string `json:"details"`
	ManagerID       *int64 `json:"manager_id"`
}

// BookingService creates service requests from the booking form.
// Requests start PENDING; payment confirmation moves them to CONFIRMED.
type BookingService struct {
	RequestRepo repositories.ServiceRequestRepository
	ManagerRepo repositories.ManagerRepository
	Pricing     PricingService
	RequestID   string
}

const maxDetailsLen = 1000

func (s BookingService) Create(in BookingInput) (models.ServiceRequest, error) {
	if err := s.validate(in); err != nil {
		return models.ServiceRequest{}, err
	}

	// Designation must point at a bookable manager.
	if in.ManagerID != nil {
		m, err := s.ManagerRepo.GetByID(*in.ManagerID)
		if err != nil {
			return models.ServiceRequest{}, err
		}
		if m.ApprovalStatus != domain.ManagerApproved || !m.IsActive {
			return models.ServiceRequest{}, domain.ValidationError{
				Field: "manager_id", Msg: "manager is not available for bookings",
			}
		}
	}

	estimated, err := s.Pricing.Estimate(in.ServiceType, in.DurationMinutes)
	if err != nil {
		return models.ServiceRequest{}, err
	}

	req := models.ServiceRequest{
		CustomerID:      in.CustomerID,
		GuestName:       strings.TrimSpace(in.GuestName),
		GuestPhone:      utils.NormalizePhone(in.GuestPhone),
		ServiceType:     in.ServiceType,
		ServiceDate:     strings.TrimSpace(in.ServiceDate),
		StartTime:       strings.TrimSpace(in.StartTime),
		DurationMinutes: in.DurationMinutes,
		Address:         strings.TrimSpace(in.Address),
		AddressDetail:   strings.TrimSpace(in.AddressDetail),
		Phone:           utils.NormalizePhone(in.Phone),
		Details:         strings.TrimSpace(in.Details),
		Status:          domain.RequestPending,
		EstimatedPrice:  estimated,
		// staged only; manager_id is written when payment confirms
		DesignatedManagerID: in.ManagerID,
	}

	id, err := s.RequestRepo.Create(req)
	if err != nil {
		return models.ServiceRequest{}, domain.InternalError{Msg: "failed to create request", Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("request_id=%d service_type=%s estimated=%d", id, in.ServiceType, estimated))

	return s.RequestRepo.GetByID(id)
}

func (s BookingService) validate(in BookingInput) error {
	if strings.TrimSpace(in.Address) == "" {
		return domain.ValidationError{Field: "address", Msg: "required"}
	}
	if utils.NormalizePhone(in.Phone) == "" {
		return domain.ValidationError{Field: "phone", Msg: "required"}
	}
	if _, err := utils.ParseDate(in.ServiceDate); err != nil {
		return domain.ValidationError{Field: "service_date", Msg: "expected YYYY-MM-DD"}
	}
	if _, err := utils.ParseClock(in.StartTime); err != nil {
		return domain.ValidationError{Field: "start_time", Msg: "expected HH:MM"}
	}
	if len([]rune(in.Details)) > maxDetailsLen {
		return domain.ValidationError{Field: "details", Msg: fmt.Sprintf("must be at most %d characters", maxDetailsLen)}
	}
	if in.CustomerID == nil {
		if strings.TrimSpace(in.GuestName) == "" || utils.NormalizePhone(in.GuestPhone) == "" {
			return domain.ValidationError{Field: "guest", Msg: "guest bookings need guest_name and guest_phone"}
		}
	}
	return nil
}
