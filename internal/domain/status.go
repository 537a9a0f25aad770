package domain

import "fmt"

// RequestStatus is the lifecycle state of a service request.
type RequestStatus string

const (
	RequestPending    RequestStatus = "PENDING"
	RequestConfirmed  RequestStatus = "CONFIRMED"
	RequestMatching   RequestStatus = "MATCHING"
	RequestMatched    RequestStatus = "MATCHED"
	RequestInProgress RequestStatus = "IN_PROGRESS"
	RequestCompleted  RequestStatus = "COMPLETED"
	RequestCancelled  RequestStatus = "CANCELLED"
)

// allowedTransitions is the single source of truth for status legality.
// COMPLETED and CANCELLED are terminal.
var allowedTransitions = map[RequestStatus][]RequestStatus{
	RequestPending:    {RequestConfirmed, RequestCancelled},
	RequestConfirmed:  {RequestMatching, RequestInProgress, RequestCancelled},
	RequestMatching:   {RequestConfirmed, RequestMatched, RequestCancelled},
	RequestMatched:    {RequestInProgress, RequestCancelled},
	RequestInProgress: {RequestCompleted},
	RequestCompleted:  {},
	RequestCancelled:  {},
}

// ValidRequestStatus reports whether s is a known lifecycle state.
func ValidRequestStatus(s RequestStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// AllowedNext returns the legal successor states for the given state.
func AllowedNext(from RequestStatus) []RequestStatus {
	return allowedTransitions[from]
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to RequestStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns a conflict error naming both states when the
// edge is illegal.
func CheckTransition(from, to RequestStatus) error {
	if !ValidRequestStatus(to) {
		return ValidationError{Field: "status", Msg: fmt.Sprintf("unknown status %q", to)}
	}
	if !CanTransition(from, to) {
		return ConflictError{
			Resource: "request",
			Msg:      fmt.Sprintf("cannot transition from %s to %s", from, to),
		}
	}
	return nil
}

// Cancellable reports whether a request in this state may still be
// cancelled. IN_PROGRESS and the terminal states are off-limits.
func Cancellable(s RequestStatus) bool {
	switch s {
	case RequestPending, RequestConfirmed, RequestMatching, RequestMatched:
		return true
	default:
		return false
	}
}

// ApplicationStatus is the state of a manager application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// PaymentStatus is the ledger state of a payment row.
type PaymentStatus string

const (
	PaymentPending         PaymentStatus = "PENDING"
	PaymentPaid            PaymentStatus = "PAID"
	PaymentRefunded        PaymentStatus = "REFUNDED"
	PaymentPartialRefunded PaymentStatus = "PARTIAL_REFUNDED"
	PaymentFailed          PaymentStatus = "FAILED"
	PaymentCancelled       PaymentStatus = "CANCELLED"
)

// ManagerApproval is the back-office vetting state of a manager signup.
type ManagerApproval string

const (
	ManagerPendingApproval ManagerApproval = "pending"
	ManagerApproved        ManagerApproval = "approved"
	ManagerRejected        ManagerApproval = "rejected"
)
