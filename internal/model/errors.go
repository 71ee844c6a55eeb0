package model

import "errors"

// Common errors used across the application
var (
	// Subscriber errors
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid subscriber role")
)
