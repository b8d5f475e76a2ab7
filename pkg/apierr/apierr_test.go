package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTransportClassifiesDeadline(t *testing.T) {
	err := FromTransport(fmt.Errorf("do request: %w", context.DeadlineExceeded))
	require.NotNil(t, err)
	assert.Equal(t, KindTimeout, err.Kind)
	assert.Equal(t, http.StatusGatewayTimeout, err.HTTPStatus)
}

func TestFromTransportClassifiesURLError(t *testing.T) {
	urlErr := &url.Error{Op: "Post", URL: "http://backend", Err: errors.New("connection refused")}
	err := FromTransport(urlErr)
	require.NotNil(t, err)
	assert.Equal(t, KindNetwork, err.Kind)
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus)
}

func TestFromTransportTimeoutInsideURLError(t *testing.T) {
	// A client timeout usually surfaces as a url.Error wrapping a timeout;
	// it must classify as timeout, not network.
	urlErr := &url.Error{Op: "Post", URL: "http://backend", Err: context.DeadlineExceeded}
	err := FromTransport(urlErr)
	require.NotNil(t, err)
	assert.Equal(t, KindTimeout, err.Kind)
}

func TestFromStatusDuplicateByCode(t *testing.T) {
	err := FromStatus(http.StatusBadRequest, "EMAIL_EXISTS", "whatever")
	assert.Equal(t, KindDuplicateEmail, err.Kind)
	assert.Equal(t, http.StatusConflict, err.HTTPStatus)
}

func TestFromStatusDuplicateByConflict(t *testing.T) {
	err := FromStatus(http.StatusConflict, "", "email already registered")
	assert.Equal(t, KindDuplicateEmail, err.Kind)
}

func TestFromStatusValidation(t *testing.T) {
	err := FromStatus(http.StatusBadRequest, "VALIDATION_FAILED", "phone is invalid")
	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
}

func TestFromStatusUnknownPreservesStatus(t *testing.T) {
	err := FromStatus(http.StatusInternalServerError, "", "")
	assert.Equal(t, KindUnknown, err.Kind)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
	assert.Equal(t, "UPSTREAM_ERROR", err.Code)
	assert.Contains(t, err.Message, "500")
}

func TestIsDuplicateIndicator(t *testing.T) {
	cases := []struct {
		name    string
		code    string
		message string
		want    bool
	}{
		{"structured code", "DUPLICATE_EMAIL", "", true},
		{"structured code lowercase", "email_taken", "", true},
		{"english keyword", "", "Email already exists", true},
		{"vietnamese keyword", "", "Email đã tồn tại", true},
		{"vietnamese in-use keyword", "", "Email đã được sử dụng", true},
		{"keyword without email context", "", "record already exists", false},
		{"unrelated message", "", "internal error", false},
		{"empty", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDuplicateIndicator(tc.code, tc.message))
		})
	}
}

func TestToErrorPassesThroughAndWraps(t *testing.T) {
	orig := NewValidation("bad input", map[string]any{"email": "invalid"})
	assert.Same(t, orig, ToError(orig))
	assert.Same(t, orig, ToError(fmt.Errorf("outer: %w", orig)))

	wrapped := ToError(errors.New("boom"))
	assert.Equal(t, KindUnknown, wrapped.Kind)
	assert.Equal(t, "INTERNAL_ERROR", wrapped.Code)
	assert.Equal(t, http.StatusInternalServerError, wrapped.HTTPStatus)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindDuplicateEmail, KindOf(NewDuplicateEmail("a@vinfast.vn")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}
