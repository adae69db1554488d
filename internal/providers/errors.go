package providers

import (
	"errors"
	"fmt"
	"time"
)

// SourceError describes a failed roster fetch. Temporary errors are retried;
// RetryAfter, when set, overrides the computed backoff.
type SourceError struct {
	Provider   string
	Source     string
	Temporary  bool
	RetryAfter time.Duration
	Err        error
}

func (e *SourceError) Error() string {
	msg := "roster source failed"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Source != "" {
		return fmt.Sprintf("%s: %s: %s", e.Provider, e.Source, msg)
	}
	return fmt.Sprintf("%s: %s", e.Provider, msg)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Permanent wraps err as a non-retryable source error.
func Permanent(provider, source string, err error) error {
	return &SourceError{Provider: provider, Source: source, Err: err}
}

// Temporary wraps err as a retryable source error.
func Temporary(provider, source string, err error) error {
	return &SourceError{Provider: provider, Source: source, Temporary: true, Err: err}
}

// AsSourceError attempts to unwrap an error into a SourceError.
func AsSourceError(err error) (*SourceError, bool) {
	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		return srcErr, true
	}
	return nil, false
}

// Retryable reports whether a fetch error is worth another attempt. Errors
// that are not SourceErrors are assumed transient.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if srcErr, ok := AsSourceError(err); ok {
		return srcErr.Temporary
	}
	return true
}
