package services

import (
	"fmt"

	"careline-backend/internal/domain"
	"careline-backend/internal/repositories"
)

// PricingService computes estimated prices from the service_prices
// table. The price repo is an injected dependency read per call; there
// is deliberately no process-wide price cache.
type PricingService struct {
	PriceRepo repositories.PriceRepository
}

const (
	minPricePerHour = 1_000
	maxPricePerHour = 100_000
)

// Estimate returns hourly rate x booked hours in whole KRW.
func (s PricingService) Estimate(serviceType string, durationMinutes int) (int64, error) {
	if serviceType == "" {
		return 0, domain.ValidationError{Field: "service_type", Msg: "required"}
	}
	if durationMinutes <= 0 || durationMinutes%60 != 0 {
		return 0, domain.ValidationError{Field: "duration_minutes", Msg: "must be a positive multiple of 60"}
	}
	price, err := s.PriceRepo.GetActiveByServiceType(serviceType)
	if err != nil {
		return 0, err
	}
	hours := int64(durationMinutes / 60)
	return price.PricePerHour * hours, nil
}

// ValidateRate enforces the admin write-path bound on hourly rates.
func ValidateRate(pricePerHour int64) error {
	if pricePerHour < minPricePerHour || pricePerHour > maxPricePerHour {
		return domain.ValidationError{
			Field: "price_per_hour",
			Msg:   fmt.Sprintf("must be between %d and %d", minPricePerHour, maxPricePerHour),
		}
	}
	return nil
}
