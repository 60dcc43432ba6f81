package domain

import "errors"

// Caller-input errors. They are wrapped with field detail by validation and
// should be surfaced to the user, never recovered.
var (
	ErrInvalidBucket           = errors.New("invalid bucket key")
	ErrDuplicateBucket         = errors.New("duplicate bucket key")
	ErrNegativeAge             = errors.New("age cannot be negative")
	ErrRetirementBeforeCurrent = errors.New("retirement age is before current age")
	ErrHorizonBeforeCurrent    = errors.New("horizon age is before current age")
	ErrInvalidStrategy         = errors.New("unknown strategy mode")
	ErrInvalidFilingStatus     = errors.New("unknown filing status")
	ErrInvalidAccountType      = errors.New("unknown account type")
	ErrTooManyPhases           = errors.New("at most three spending phases are supported")
	ErrNegativeAmount          = errors.New("amount cannot be negative")
)
