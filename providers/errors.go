package providers

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a provider failure so the dispatcher can decide
// whether fallback applies.
type ErrorKind string

const (
	// ErrKindUnavailable: the adapter could not initialize, or no
	// (provider, model) candidate survived selection.
	ErrKindUnavailable ErrorKind = "provider_unavailable"
	// ErrKindInvalidRequest: the vendor rejected the call (bad auth or
	// malformed payload).
	ErrKindInvalidRequest ErrorKind = "invalid_request"
	// ErrKindQuotaExceeded: the vendor rate limit was hit.
	ErrKindQuotaExceeded ErrorKind = "quota_exceeded"
	// ErrKindProvider: any other vendor or network failure.
	ErrKindProvider ErrorKind = "provider_error"
)

// Error is the classified provider error. Adapters reclassify vendor
// errors into this type and re-raise; they never swallow them.
type Error struct {
	Kind     ErrorKind
	Provider Provider
	Model    string
	Err      error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Provider != "" {
		msg = fmt.Sprintf("%s: %s", e.Provider, msg)
	}
	if e.Model != "" {
		msg = fmt.Sprintf("%s (model %s)", msg, e.Model)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a classified provider error
func NewError(kind ErrorKind, provider Provider, model string, err error) *Error {
	return &Error{
		Kind:     kind,
		Provider: provider,
		Model:    model,
		Err:      err,
	}
}

// KindOf returns the error's classification, or ErrKindProvider for
// unclassified errors.
func KindOf(err error) ErrorKind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return ErrKindProvider
}

// IsUnavailable reports whether err is a ProviderUnavailable error
func IsUnavailable(err error) bool {
	return KindOf(err) == ErrKindUnavailable
}

// IsInvalidRequest reports whether err is an InvalidRequest error
func IsInvalidRequest(err error) bool {
	return KindOf(err) == ErrKindInvalidRequest
}

// IsQuotaExceeded reports whether err is a QuotaExceeded error
func IsQuotaExceeded(err error) bool {
	return KindOf(err) == ErrKindQuotaExceeded
}

// ClassifyStatus maps a vendor HTTP status code to an error kind for
// request processing: bad auth is an invalid request, a rate limit is a
// quota problem, anything else is a generic provider failure.
func ClassifyStatus(statusCode int) ErrorKind {
	switch statusCode {
	case 401, 403:
		return ErrKindInvalidRequest
	case 429:
		return ErrKindQuotaExceeded
	default:
		return ErrKindProvider
	}
}
