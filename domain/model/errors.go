package model

import (
	"errors"
	"fmt"
)

// Sentinel not-found errors, one per record kind.
var (
	ErrStreamNotFound  = errors.New("stream not found")
	ErrStatsNotFound   = errors.New("stats record not found")
	ErrGoalNotFound    = errors.New("goal not found")
	ErrChannelNotFound = errors.New("channel not found")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrStreamNotFound) ||
		errors.Is(err, ErrStatsNotFound) ||
		errors.Is(err, ErrGoalNotFound) ||
		errors.Is(err, ErrChannelNotFound)
}

// ValidationError rejects bad input before any mutation happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConflictError surfaces a concurrent-update collision that exhausted its retry
// budget. Safe to retry from the caller's side.
type ConflictError struct {
	Resource string
	Err      error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %v", e.Resource, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// ProvisioningError wraps a failure from the ingest provider. Fatal for the
// creation attempt it belongs to; nothing is persisted when it occurs.
type ProvisioningError struct {
	Op  string
	Err error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("provisioning %s: %v", e.Op, e.Err)
}

func (e *ProvisioningError) Unwrap() error { return e.Err }

func IsProvisioning(err error) bool {
	var pe *ProvisioningError
	return errors.As(err, &pe)
}
