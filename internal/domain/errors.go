// Package domain defines the error taxonomy shared by the service,
// repository, and HTTP layers. These errors express violations of
// business rules, not technical failures; infrastructure errors are
// wrapped and passed through untyped.
package domain

import (
	"fmt"
)

// NotFoundError indicates that the referenced user does not exist.
// Exactly one of ID or Name is set, depending on the lookup key.
type NotFoundError struct {
	ID   *int64
	Name string
}

func (e *NotFoundError) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("user with id %d not found", *e.ID)
	}
	if e.Name != "" {
		return fmt.Sprintf("user with name %q not found", e.Name)
	}
	return "user not found"
}

// NotFoundByID builds a NotFoundError for an ID lookup.
func NotFoundByID(id int64) *NotFoundError {
	return &NotFoundError{ID: &id}
}

// NotFoundByName builds a NotFoundError for a name lookup.
func NotFoundByName(name string) *NotFoundError {
	return &NotFoundError{Name: name}
}

// DuplicationError indicates that a uniqueness constraint was violated.
// Field names the wire-level field ("name" or "emailAddress") so the
// API layer can report which value collided.
type DuplicationError struct {
	Field string
	Value string
}

func (e *DuplicationError) Error() string {
	if e.Field == "" {
		return "user violates a uniqueness constraint"
	}
	return fmt.Sprintf("user with %s %q already exists", e.Field, e.Value)
}
