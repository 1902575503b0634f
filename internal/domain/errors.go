package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrProfileRequired indicates an entry mutation was attempted before a
	// profile (height) was configured.
	ErrProfileRequired = errors.New("profile required")
	// ErrStoreNotReady indicates the store has not finished loading.
	ErrStoreNotReady = errors.New("store not ready")
	// ErrStoreDegraded indicates the record a mutation would overwrite could
	// not be loaded.
	ErrStoreDegraded = errors.New("store degraded: persisted data could not be loaded")
)

// ValidationError reports invalid user input. No state is mutated when one is
// returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageCorruptionError reports a stored value that could not be decoded.
type StorageCorruptionError struct {
	Key string
	Err error
}

func (e *StorageCorruptionError) Error() string {
	return fmt.Sprintf("corrupt value under key %q: %v", e.Key, e.Err)
}

func (e *StorageCorruptionError) Unwrap() error { return e.Err }

// StorageIOError reports a failure of the underlying key-value backend.
type StorageIOError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageIOError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageIOError) Unwrap() error { return e.Err }

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorage reports whether err is or wraps a storage corruption or IO error.
func IsStorage(err error) bool {
	var ce *StorageCorruptionError
	var ie *StorageIOError
	return errors.As(err, &ce) || errors.As(err, &ie)
}
