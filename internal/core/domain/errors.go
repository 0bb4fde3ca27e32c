package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidName indicates a group or file token failed validation.
	// Resolution stops before any file system access.
	ErrInvalidName = errors.New("invalid name")

	// ErrMissingField indicates a required request field was absent.
	ErrMissingField = errors.New("missing required field")

	// ErrStorageReadFailed indicates a document was missing, unreadable or unparseable.
	ErrStorageReadFailed = errors.New("storage read failed")

	// ErrStorageWriteFailed indicates a directory create or file write failed.
	ErrStorageWriteFailed = errors.New("storage write failed")

	// ErrUninitializedStore indicates the storage root does not exist yet.
	ErrUninitializedStore = errors.New("storage root not initialised")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidSetting indicates an unknown setting key or unparseable value.
	ErrInvalidSetting = errors.New("invalid setting")
)
