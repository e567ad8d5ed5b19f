package entity

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound         = errors.New("session not found")
	ErrSessionCompleted        = errors.New("session is already completed")
	ErrSessionStateUnavailable = errors.New("session state unavailable")

	// Generation errors. Both are recoverable: no turn is appended until
	// generation succeeds, so the caller may retry the same submission.
	ErrGenerationTimeout = errors.New("generation timed out")
	ErrGenerationFailure = errors.New("generation failed")

	// File errors
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidExtension = errors.New("invalid file extension")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
