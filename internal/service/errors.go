package service

import "errors"

// Error taxonomy shared by the services.
//
// Validation errors are never retried automatically and carry enough detail
// for a user-facing message. Remote failures are surfaced verbatim and any
// partial effects already applied are left as-is. Precondition errors mark
// states the UI should prevent; the API layer turns them into silent no-ops.
var (
	// Validation
	ErrInvalidAdvisoryReply = errors.New("advisory reply failed validation")
	ErrNegativeDuration     = errors.New("completion time precedes session start")
	ErrValidationFailed     = errors.New("validation failed")

	// Remote
	ErrAdvisorFailed      = errors.New("advisory service call failed")
	ErrPersistenceFailed  = errors.New("persistence failed")

	// Preconditions
	ErrProfileRequired = errors.New("no profile saved for user")
)
