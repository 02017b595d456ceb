package api

import "fmt"

// DefaultSaveReason is shown when the server gives no reason for a failed save
const DefaultSaveReason = "Problem saving the results."

// TransportError wraps network failures and non-success responses
type TransportError struct {
	Op         string
	URL        string
	Status     int
	Underlying error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: status %d", e.Op, e.URL, e.Status)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Underlying)
}

func (e *TransportError) Unwrap() error {
	return e.Underlying
}

// SaveError carries the user-facing reason a save was rejected
type SaveError struct {
	Reason     string
	Underlying error
}

func (e *SaveError) Error() string {
	return e.Reason
}

func (e *SaveError) Unwrap() error {
	return e.Underlying
}

// WrapTransportError creates a TransportError for a failed request
func WrapTransportError(op, url string, err error) error {
	return &TransportError{Op: op, URL: url, Underlying: err}
}

// WrapSaveError creates a SaveError, falling back to DefaultSaveReason
func WrapSaveError(reason string, err error) error {
	if reason == "" {
		reason = DefaultSaveReason
	}
	return &SaveError{Reason: reason, Underlying: err}
}
