package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ev-admin-gateway/internal/config"
	"github.com/spec-kit/ev-admin-gateway/pkg/apierr"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.BackendConfig{
		BaseURL:        server.URL,
		TimeoutSeconds: 1,
	}, zap.NewNop(), nil)
	return client, server
}

func TestUsersClientCreateStaffSuccess(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/staff", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@vinfast.vn", body["email"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"user":{"id":"u-1","fullname":"Nguyen Van A","email":"a@vinfast.vn","role":"Station Staff","status":"ACTIVE"},"temporaryPassword":"tmp-123"}}`))
	})

	users := NewUsersClient(client)
	ctx := WithToken(context.Background(), "token-abc")
	created, err := users.CreateStaff(ctx, CreateStaffInput{
		FullName: "Nguyen Van A",
		Email:    "a@vinfast.vn",
		Phone:    "0912345678",
	})
	require.NoError(t, err)
	assert.Equal(t, "u-1", created.User.ID)
	assert.Equal(t, "tmp-123", created.TemporaryPassword)
}

func TestUsersClientCreateStaffDuplicate(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"EMAIL_EXISTS","message":"Email đã tồn tại"}}`))
	})

	users := NewUsersClient(client)
	_, err := users.CreateStaff(context.Background(), CreateStaffInput{Email: "a@vinfast.vn"})
	require.Error(t, err)

	apiErr := apierr.ToError(err)
	assert.Equal(t, apierr.KindDuplicateEmail, apiErr.Kind)
	assert.Equal(t, "EMAIL_EXISTS", apiErr.Code)
	assert.Equal(t, http.StatusConflict, apiErr.HTTPStatus)
}

func TestUsersClientCreateStaffValidation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"VALIDATION_FAILED","message":"phone is invalid","details":{"phone":"invalid"}}}`))
	})

	users := NewUsersClient(client)
	_, err := users.CreateStaff(context.Background(), CreateStaffInput{Email: "a@vinfast.vn"})
	require.Error(t, err)

	apiErr := apierr.ToError(err)
	assert.Equal(t, apierr.KindValidation, apiErr.Kind)
	assert.Equal(t, "invalid", apiErr.Details["phone"])
}

func TestClientClassifiesTimeout(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	})

	users := NewUsersClient(client)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := users.CreateStaff(ctx, CreateStaffInput{Email: "a@vinfast.vn"})
	require.Error(t, err)
	assert.Equal(t, apierr.KindTimeout, apierr.KindOf(err))
}

func TestClientClassifiesNetworkFailure(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	users := NewUsersClient(client)
	_, err := users.List(context.Background(), ListUsersParams{})
	require.Error(t, err)
	assert.Equal(t, apierr.KindNetwork, apierr.KindOf(err))
}

func TestClientUpstreamErrorPreservesStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	})

	users := NewUsersClient(client)
	_, err := users.List(context.Background(), ListUsersParams{})
	require.Error(t, err)

	apiErr := apierr.ToError(err)
	assert.Equal(t, apierr.KindUnknown, apiErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, apiErr.HTTPStatus)
	assert.Equal(t, "boom", apiErr.Message)
}

func TestClientListSendsQueryAndDecodesBareArray(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "a@vinfast.vn", r.URL.Query().Get("search"))
		assert.Equal(t, "Station Staff", r.URL.Query().Get("role"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		// No data envelope; the client must fall back to direct decoding.
		_, _ = w.Write([]byte(`[{"id":"u-1","email":"a@vinfast.vn"}]`))
	})

	users := NewUsersClient(client)
	list, err := users.List(context.Background(), ListUsersParams{
		Search: "a@vinfast.vn",
		Role:   "Station Staff",
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "u-1", list[0].ID)
}
