package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into coded domain errors without
// inspecting driver-specific failures.
//
// These represent factual states about stored resources:
//   - ErrNotFound: entity does not exist in the store
//   - ErrConflict: a uniqueness constraint rejected the write
//   - ErrAlreadyResolved: the request left Pending before this attempt
//   - ErrInvalidState: entity in the wrong state for the requested operation
//   - ErrUnavailable: store temporarily unreachable; safe to retry once
//
// For validation failures (bad input, missing fields) use pkg/domain-errors
// directly.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrAlreadyResolved = errors.New("already resolved")
	ErrInvalidState    = errors.New("invalid state")
	ErrUnavailable     = errors.New("unavailable")
)
