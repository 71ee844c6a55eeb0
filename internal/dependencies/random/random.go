package random

import "github.com/google/uuid"

// Random generates identifiers and can be mocked for testing
type Random interface {
	// NewID returns a new opaque identifier
	NewID() string
}

// UUIDRandom implements Random with version 4 UUIDs
type UUIDRandom struct{}

// New creates a new UUIDRandom
func New() *UUIDRandom {
	return &UUIDRandom{}
}

// NewID returns a random UUID string
func (r *UUIDRandom) NewID() string {
	return uuid.NewString()
}
