package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Failure kinds. Every error returned by this package unwraps to exactly one
// of them, so callers can branch with errors.Is.
var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrNetwork            = errors.New("server unavailable")
	ErrServer             = errors.New("server error")
)

// RequestError describes a failed request. Status is zero when no response
// was received. Message is the server's own text when it sent one.
type RequestError struct {
	Kind    error
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	switch {
	case e.Status > 0 && msg != "":
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.Status, msg)
	case e.Status > 0:
		return fmt.Sprintf("%s (HTTP %d)", e.Kind, e.Status)
	case msg != "":
		return fmt.Sprintf("%s: %s", e.Kind, msg)
	default:
		return e.Kind.Error()
	}
}

func (e *RequestError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// classify maps an HTTP status to a failure kind. credentialCheck marks
// endpoints where 401 means a wrong password rather than a dead session.
func classify(status int, credentialCheck bool) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusUnauthorized:
		if credentialCheck {
			return ErrInvalidCredentials
		}
		return ErrUnauthenticated
	// The service answers 403 for credentials owned by someone else; to the
	// caller that is indistinguishable from a missing one.
	case http.StatusForbidden, http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		return ErrServer
	}
}

// Reclassify rewrites err's kind from one sentinel to another, keeping status
// and message. Errors of other kinds are returned unchanged.
func Reclassify(err error, from, to error) error {
	var re *RequestError
	if !errors.As(err, &re) || !errors.Is(re.Kind, from) {
		return err
	}
	out := *re
	out.Kind = to
	return &out
}

// Message renders err as a single line suitable for showing to a user.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var detail string
	var re *RequestError
	if errors.As(err, &re) {
		detail = re.Message
	}

	withDetail := func(prefix string) string {
		if detail == "" || strings.EqualFold(detail, prefix) {
			return prefix
		}
		return prefix + ": " + detail
	}

	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "Your session has ended, please log in again"
	case errors.Is(err, ErrNetwork):
		return "Cannot reach the identity service"
	case errors.Is(err, ErrInvalidCredentials):
		return withDetail("Invalid credentials")
	case errors.Is(err, ErrNotFound):
		return withDetail("Not found")
	case errors.Is(err, ErrConflict):
		return withDetail("Conflict")
	case errors.Is(err, ErrServer):
		return withDetail("Server error")
	case errors.Is(err, ErrValidation) && re != nil:
		return withDetail("Rejected")
	default:
		return err.Error()
	}
}
