package loader

import "errors"

// Standard loader errors carried on a Handle's failure path.
var (
	// ErrLoadFailed marks a transport or resource error during a load.
	ErrLoadFailed = errors.New("loader: load failed")

	// ErrLoadTimeout marks a load whose timer elapsed before completion.
	ErrLoadTimeout = errors.New("loader: load timed out")

	// ErrVerifyMissing marks a loaded resource that never registered
	// its verification slot.
	ErrVerifyMissing = errors.New("loader: verification object missing")

	// ErrVerifyExists marks a verification slot name collision.
	ErrVerifyExists = errors.New("loader: verification object already exists")

	// ErrCancelled is returned by Wait on a handle that was cancelled.
	// Cancellation never settles the handle itself.
	ErrCancelled = errors.New("loader: load cancelled")
)
