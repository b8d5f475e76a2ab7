package apierr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// Kind classifies failures surfaced by the platform clients. The staff
// reconciliation flow branches on this taxonomy; every other call site only
// surfaces the message.
type Kind int

const (
	// KindUnknown covers any other HTTP error or unexpected response shape.
	KindUnknown Kind = iota
	// KindDuplicateEmail marks a rejected write whose cause is an email
	// already registered on the platform.
	KindDuplicateEmail
	// KindValidation marks a 400 rejection other than a duplicate email.
	KindValidation
	// KindTimeout marks a request that exceeded the client timeout.
	KindTimeout
	// KindNetwork marks a transport-level failure with no response received.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindDuplicateEmail:
		return "duplicate_email"
	case KindValidation:
		return "validation"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Error is the normalized application error. Platform clients never let raw
// transport errors escape past this type.
type Error struct {
	Kind       Kind
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs an Error with an explicit kind.
func New(kind Kind, code, message string, status int) *Error {
	return &Error{Kind: kind, Code: code, Message: message, HTTPStatus: status}
}

func NewDuplicateEmail(email string) *Error {
	return &Error{
		Kind:       KindDuplicateEmail,
		Code:       "EMAIL_EXISTS",
		Message:    fmt.Sprintf("email %s already in use", email),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"email": email},
	}
}

func NewValidation(message string, details map[string]any) *Error {
	return &Error{
		Kind:       KindValidation,
		Code:       "VALIDATION_FAILED",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

func NewNotFound(resource string) *Error {
	return &Error{
		Kind:       KindUnknown,
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NewUnauthorized(message string) *Error {
	return &Error{Kind: KindUnknown, Code: "UNAUTHORIZED", Message: message, HTTPStatus: http.StatusUnauthorized}
}

func NewForbidden(message string) *Error {
	return &Error{Kind: KindUnknown, Code: "FORBIDDEN", Message: message, HTTPStatus: http.StatusForbidden}
}

func NewInternal(err error) *Error {
	return &Error{
		Kind:       KindUnknown,
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// KindOf extracts the taxonomy kind from any error chain.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// ToError normalizes an arbitrary error into *Error for response rendering.
func ToError(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewInternal(err)
}

// FromTransport classifies an error returned by http.Client.Do. Timeouts
// (client deadline or context deadline) and connection failures map to
// distinct kinds so the reconciliation flow can pick its delay.
func FromTransport(err error) *Error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{
			Kind:       KindTimeout,
			Code:       "TIMEOUT",
			Message:    "request to platform backend timed out",
			HTTPStatus: http.StatusGatewayTimeout,
			Err:        err,
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{
			Kind:       KindTimeout,
			Code:       "TIMEOUT",
			Message:    "request to platform backend timed out",
			HTTPStatus: http.StatusGatewayTimeout,
			Err:        err,
		}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &Error{
			Kind:       KindNetwork,
			Code:       "NETWORK_ERROR",
			Message:    "could not reach platform backend",
			HTTPStatus: http.StatusBadGateway,
			Err:        err,
		}
	}
	return &Error{
		Kind:       KindUnknown,
		Code:       "UNKNOWN_ERROR",
		Message:    "unexpected transport failure",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// FromStatus classifies a non-2xx backend response. A 400 carrying duplicate
// indicators becomes KindDuplicateEmail, other 400s KindValidation, anything
// else KindUnknown with the backend status preserved.
func FromStatus(status int, code, message string) *Error {
	switch {
	case status == http.StatusBadRequest || status == http.StatusConflict:
		if IsDuplicateIndicator(code, message) {
			return &Error{
				Kind:       KindDuplicateEmail,
				Code:       nonEmpty(code, "EMAIL_EXISTS"),
				Message:    message,
				HTTPStatus: http.StatusConflict,
			}
		}
		if status == http.StatusBadRequest {
			return &Error{
				Kind:       KindValidation,
				Code:       nonEmpty(code, "VALIDATION_FAILED"),
				Message:    message,
				HTTPStatus: http.StatusBadRequest,
			}
		}
	}
	return &Error{
		Kind:       KindUnknown,
		Code:       nonEmpty(code, "UPSTREAM_ERROR"),
		Message:    nonEmpty(message, fmt.Sprintf("platform backend returned status %d", status)),
		HTTPStatus: status,
	}
}

// duplicateCodes are the structured codes the backend is known to emit for
// an email collision. Preferred over message sniffing.
var duplicateCodes = map[string]struct{}{
	"EMAIL_EXISTS":    {},
	"DUPLICATE_EMAIL": {},
	"EMAIL_TAKEN":     {},
}

// duplicateKeywords is the legacy fallback: generic messages that indicate a
// duplicate email, in English and Vietnamese. Brittle and locale-dependent,
// kept only for backends that do not return a structured code.
var duplicateKeywords = []string{
	"already exists",
	"already registered",
	"already in use",
	"duplicate",
	"đã tồn tại",
	"đã được sử dụng",
	"đã được đăng ký",
}

// IsDuplicateIndicator reports whether a backend error denotes an email
// collision, checking the structured code first and falling back to
// case-insensitive keyword matching on the message.
func IsDuplicateIndicator(code, message string) bool {
	if _, ok := duplicateCodes[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return true
	}
	msg := strings.ToLower(message)
	if !strings.Contains(msg, "email") {
		return false
	}
	for _, kw := range duplicateKeywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

func nonEmpty(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
