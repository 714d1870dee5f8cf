package models

import (
	"github.com/google/uuid"
)

// UserRefKind discriminates the two identifier namespaces a profile request
// may carry: the identity provider's ID or our internal primary key.
type UserRefKind int

const (
	// ExternalRef is an identity-provider user ID.
	ExternalRef UserRefKind = iota
	// InternalRef is an internal users.id primary key.
	InternalRef
)

// UserRef is a tagged user identifier, resolved exactly once at the API edge
// so downstream code never re-sniffs the string shape.
type UserRef struct {
	Kind     UserRefKind
	External string
	Internal uuid.UUID
}

// ParseUserRef classifies a path identifier. Anything that parses as a UUID
// is an internal ID; everything else is treated as an external identity.
func ParseUserRef(s string) (UserRef, error) {
	if s == "" {
		return UserRef{}, NewValidationError("User ID is required")
	}
	if id, err := uuid.Parse(s); err == nil {
		return UserRef{Kind: InternalRef, Internal: id}, nil
	}
	return UserRef{Kind: ExternalRef, External: s}, nil
}
