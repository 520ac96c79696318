package service

import (
	"errors"
	"fmt"
)

// ErrRemote is the only failure kind of the catalog: a remote operation
// did not complete.
var ErrRemote = errors.New("remote operation failed")

const (
	fallbackFetchProducts = "Failed to fetch products"
	fallbackFetchProduct  = "Failed to fetch product"
	fallbackSearch        = "Failed to search products"
)

// RemoteError carries a human-readable message for the UI next to the
// underlying cause.
type RemoteError struct {
	Op      string
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RemoteError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRemote}
	}
	return []error{ErrRemote, e.Err}
}

// remoteMessager is implemented by transport errors that know what the
// remote side said.
type remoteMessager interface {
	RemoteMessage() string
}

func newRemoteError(op string, err error, fallback string) *RemoteError {
	return &RemoteError{
		Op:      op,
		Message: messageOf(err, fallback),
		Err:     err,
	}
}

func messageOf(err error, fallback string) string {
	if err == nil {
		return fallback
	}

	var rm remoteMessager
	if errors.As(err, &rm) {
		if msg := rm.RemoteMessage(); msg != "" {
			return msg
		}
	}

	if msg := rootCause(err).Error(); msg != "" {
		return msg
	}
	return fallback
}

// rootCause follows the single-error Unwrap chain to its end.
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func opErr(err error, op string) error {
	return fmt.Errorf("%s: %w", op, err)
}
