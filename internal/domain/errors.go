package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a vehicle id has no record.
var ErrNotFound = errors.New("not found")

// DeclarationLockedError is the structured refusal returned when a
// declaration edit is attempted while the vehicle has an open claim. It
// carries enough claim detail for the caller to explain the block and link
// to the claim.
type DeclarationLockedError struct {
	ClaimID     string
	ClaimStatus ClaimStatus
	FiledAt     time.Time
}

func (e *DeclarationLockedError) Error() string {
	return fmt.Sprintf("declaration locked: claim %s is %s (filed %s)",
		e.ClaimID, e.ClaimStatus, e.FiledAt.Format("2006-01-02"))
}

// ValidationError rejects malformed input before any store is touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DataUnavailableError wraps a failed fetch from an authoritative store.
// It is always propagated, never masked as "zero trips" or "no claim",
// so callers can distinguish "we don't know" from "it's fine".
type DataUnavailableError struct {
	Store string
	Err   error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Store, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }
