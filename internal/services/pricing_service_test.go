package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"careline-backend/internal/domain"
	"careline-backend/internal/repositories"
)

func TestPricingEstimate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM service_prices").WithArgs("hospital_companion").
		WillReturnRows(sqlmock.NewRows([]string{"id", "service_type", "price_per_hour", "is_active"}).
			AddRow(1, "hospital_companion", 20000, true))

	svc := PricingService{PriceRepo: repositories.PriceRepository{DB: db}}
	got, err := svc.Estimate("hospital_companion", 180)
	if err != nil {
		t.Fatalf("estimate error: %v", err)
	}
	if got != 60000 {
		t.Fatalf("estimate = %d, want 60000", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPricingEstimateRejectsBadDuration(t *testing.T) {
	svc := PricingService{}
	for _, minutes := range []int{0, -60, 90, 45} {
		if _, err := svc.Estimate("home_care", minutes); !domain.IsValidation(err) {
			t.Fatalf("duration %d: expected validation error, got %v", minutes, err)
		}
	}
}

func TestPricingEstimateUnknownServiceType(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM service_prices").WithArgs("pet_sitting").
		WillReturnRows(sqlmock.NewRows([]string{"id", "service_type", "price_per_hour", "is_active"}))

	svc := PricingService{PriceRepo: repositories.PriceRepository{DB: db}}
	if _, err := svc.Estimate("pet_sitting", 60); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestValidateRateBounds(t *testing.T) {
	if err := ValidateRate(20000); err != nil {
		t.Fatalf("20000 should be valid: %v", err)
	}
	if err := ValidateRate(999); !domain.IsValidation(err) {
		t.Fatalf("999 should be rejected, got %v", err)
	}
	if err := ValidateRate(100001); !domain.IsValidation(err) {
		t.Fatalf("100001 should be rejected, got %v", err)
	}
}
