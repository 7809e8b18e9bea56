package domain

import (
	"errors"
	"net/http"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrConfigMissing indicates no Google credential was resolved.
	ErrConfigMissing = errors.New("Google credentials not configured") //nolint:staticcheck // surfaced verbatim to clients

	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation failed")

	// ErrUpstream indicates the Google API call failed.
	ErrUpstream = errors.New("upstream call failed")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthorized indicates missing, unknown or expired credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidRole indicates an unknown Drive permission role.
	ErrInvalidRole = errors.New("Invalid role") //nolint:staticcheck // surfaced verbatim to clients

	// ErrInvalidRange indicates an A1 range that cannot be parsed.
	ErrInvalidRange = errors.New("invalid range")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")
)

// ErrorKind classifies an Error for transport mapping.
type ErrorKind int

const (
	// KindUnknown is an unclassified failure.
	KindUnknown ErrorKind = iota
	// KindConfigMissing means the proxy has no credential.
	KindConfigMissing
	// KindValidation means the caller sent bad input.
	KindValidation
	// KindUpstream means the Google API call failed.
	KindUpstream
	// KindNotFound means the entity does not exist.
	KindNotFound
	// KindUnauthorized means authentication failed.
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfigMissing:
		return "config_missing"
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// sentinel returns the package error matched by errors.Is for the kind.
func (k ErrorKind) sentinel() error {
	switch k {
	case KindConfigMissing:
		return ErrConfigMissing
	case KindValidation:
		return ErrValidation
	case KindUpstream:
		return ErrUpstream
	case KindNotFound:
		return ErrNotFound
	case KindUnauthorized:
		return ErrUnauthorized
	default:
		return nil
	}
}

// Error is a classified failure.
// Message is what callers see; Err keeps the underlying cause.
type Error struct {
	Kind ErrorKind
	// Status is the upstream HTTP status when known, otherwise 0.
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && s == target
}

// NewError builds an Error of the given kind.
func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Upstream wraps a failed API call as "Failed to <verb>: <message>".
// The status of an already classified cause is kept.
func Upstream(verb string, err error) *Error {
	return &Error{
		Kind:    KindUpstream,
		Status:  StatusOf(err),
		Message: "Failed to " + verb + ": " + MessageOf(err),
		Err:     err,
	}
}

// KindOf returns the kind of the first Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, ErrConfigMissing):
		return KindConfigMissing
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidRole), errors.Is(err, ErrInvalidRange):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	default:
		return KindUnknown
	}
}

// StatusOf returns the upstream HTTP status recorded in err's chain, or 0.
func StatusOf(err error) int {
	var e *Error
	for errors.As(err, &e) {
		if e.Status != 0 {
			return e.Status
		}
		err = e.Err
	}
	return 0
}

// MessageOf returns the caller-facing message of err.
// For an Error that is its Message; otherwise err.Error().
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps a failure to the status code returned to dashboard callers.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindConfigMissing:
		return http.StatusServiceUnavailable
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
