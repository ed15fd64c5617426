package model

import "errors"

var (
	// ErrInvalidInput marks user input that was rejected without any state change.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStorageRead marks a failed or unparseable read from a backend.
	ErrStorageRead = errors.New("storage read failure")
	// ErrStorageWrite marks a failed write to a backend.
	ErrStorageWrite = errors.New("storage write failure")

	ErrNotSignedIn    = errors.New("sign in required")
	ErrNotInCircle    = errors.New("user is not in a circle")
	ErrCircleNotFound = errors.New("circle not found")
	// ErrConflict marks a write rejected by a unique index.
	ErrConflict = errors.New("conflict")
)
