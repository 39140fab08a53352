package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// A nil ID means the user has never been persisted; the store assigns
// the ID and both timestamps on first save and refreshes UpdatedAt on
// every later save. Callers never supply these fields themselves.
type User struct {
	ID           *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Name         string // login name, unique
	EmailAddress string // unique
	FirstName    string
	LastName     string
}

// Persisted reports whether the user has been assigned an identity.
func (u *User) Persisted() bool {
	return u != nil && u.ID != nil
}
