package models

// ServicePrice maps a service type to its hourly rate in whole KRW.
type ServicePrice struct {
	ID           int64  `json:"id"`
	ServiceType  string `json:"service_type"`
	PricePerHour int64  `json:"price_per_hour"`
	IsActive     bool   `json:"is_active"`
}
