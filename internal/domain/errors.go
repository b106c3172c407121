package domain

import "errors"

// Identity errors
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// Medication errors
var (
	ErrMedicationNotFound = errors.New("medication not found")
	ErrInvalidSlot        = errors.New("invalid medication time slot")
)

// Period tracker errors
var (
	ErrCycleNotFound = errors.New("no period cycle recorded")
)

// Upstream errors
var (
	ErrUpstream = errors.New("generative model unavailable")
)
