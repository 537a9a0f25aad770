package domain

// ID is used across domain entities.
type ID int64

// Principal identifies the authenticated caller of a handler.
type Principal struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"` // customer / manager / admin
	Name   string `json:"name,omitempty"`
	Phone  string `json:"phone,omitempty"`
}
