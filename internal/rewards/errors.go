package rewards

import "errors"

var (
	// ErrPersistenceUnavailable wraps every ledger, progress or streak
	// store failure. Claims that fail with it can be retried with the same
	// claim context.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")

	// ErrUnknownRewardKind is returned for a kind missing from the catalog.
	ErrUnknownRewardKind = errors.New("unknown reward kind")

	// ErrInvalidClaimContext is returned when the claim context lacks a
	// field its scope needs.
	ErrInvalidClaimContext = errors.New("invalid claim context")
)
