package models

import (
	"time"

	"careline-backend/internal/domain"
)

// Manager is a caregiver profile. Matching operations require
// ApprovalStatus approved and IsActive true.
type Manager struct {
	ID             int64                  `json:"id"`
	UserID         int64                  `json:"user_id"`
	Name           string                 `json:"name"`
	Phone          string                 `json:"phone"`
	Email          string                 `json:"email,omitempty"`
	PhotoURL       string                 `json:"photo_url,omitempty"`
	Specialty      []string               `json:"specialty"`
	ApprovalStatus domain.ManagerApproval `json:"approval_status"`
	IsActive       bool                   `json:"is_active"`
	BankName       string                 `json:"bank_name,omitempty"`
	BankAccount    string                 `json:"bank_account,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

// ManagerSummary is the shape returned by designation search.
type ManagerSummary struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	PhotoURL  string   `json:"photo_url,omitempty"`
	Specialty []string `json:"specialty"`
}
