package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/spec-kit/ev-admin-gateway/internal/config"
	"github.com/spec-kit/ev-admin-gateway/internal/observability"
	"github.com/spec-kit/ev-admin-gateway/pkg/apierr"
)

type ctxKey int

const tokenKey ctxKey = iota

// WithToken stores the caller's bearer token for forwarding to the backend.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext retrieves the forwarded bearer token, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

// Client issues authenticated requests to the platform backend and
// normalizes every failure into the apierr taxonomy. Raw transport errors
// never escape this type.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewClient builds the backend client from config.
func NewClient(cfg config.BackendConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		logger:  logger,
		metrics: metrics,
	}
}

// envelope is the backend's standard response wrapper.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *errorBody      `json:"error"`
}

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (c *Client) get(ctx context.Context, resource, path string, query url.Values, out any) error {
	return c.do(ctx, resource, http.MethodGet, path, query, nil, out)
}

func (c *Client) do(ctx context.Context, resource, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apierr.NewInternal(fmt.Errorf("encode request body: %w", err))
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return apierr.NewInternal(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := apierr.FromTransport(err)
		c.observe(resource, apiErr.Kind.String())
		c.logger.Warn("backend call failed",
			zap.String("resource", resource),
			zap.String("method", method),
			zap.String("path", path),
			zap.String("kind", apiErr.Kind.String()),
			zap.Error(err),
		)
		return apiErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		apiErr := apierr.FromTransport(err)
		c.observe(resource, apiErr.Kind.String())
		return apiErr
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := c.classifyFailure(resp.StatusCode, raw)
		c.observe(resource, apiErr.Kind.String())
		return apiErr
	}

	c.observe(resource, "success")

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Data == nil {
		// Some endpoints respond without the data envelope.
		if err := json.Unmarshal(raw, out); err != nil {
			return &apierr.Error{
				Kind:       apierr.KindUnknown,
				Code:       "INVALID_RESPONSE",
				Message:    "unexpected response shape from platform backend",
				HTTPStatus: http.StatusBadGateway,
				Err:        err,
			}
		}
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &apierr.Error{
			Kind:       apierr.KindUnknown,
			Code:       "INVALID_RESPONSE",
			Message:    "unexpected response shape from platform backend",
			HTTPStatus: http.StatusBadGateway,
			Err:        err,
		}
	}
	return nil
}

func (c *Client) classifyFailure(status int, raw []byte) *apierr.Error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error != nil {
		apiErr := apierr.FromStatus(status, env.Error.Code, env.Error.Message)
		if apiErr.Details == nil {
			apiErr.Details = env.Error.Details
		}
		return apiErr
	}
	// Fall back to a bare {message} body or the raw text.
	var plain struct {
		Message string `json:"message"`
	}
	message := ""
	if err := json.Unmarshal(raw, &plain); err == nil {
		message = plain.Message
	}
	if message == "" {
		message = string(bytes.TrimSpace(raw))
	}
	return apierr.FromStatus(status, "", message)
}

func (c *Client) observe(resource, kind string) {
	if c.metrics != nil {
		c.metrics.RecordBackendCall(resource, kind)
	}
}
