// Package upstream is the typed client for the marketplace REST API. The
// backend owns all business logic; this package owns the HTTP plumbing, the
// strict per-endpoint response schemas, and the mapping of transport and HTTP
// failures onto the gateway's error taxonomy.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	pkgauth "github.com/dmarquez-dev/mercato-storefront/pkg/auth"
	"github.com/dmarquez-dev/mercato-storefront/pkg/config"
	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
	"github.com/dmarquez-dev/mercato-storefront/pkg/metrics"
)

// Client talks to the marketplace API. All methods attach the session bearer
// token from the context when present.
type Client struct {
	baseURL   string
	http      *http.Client
	logg      *logger.Logger
	metrics   *metrics.UpstreamMetrics
	retryWait time.Duration
}

// NewClient builds an API client from the upstream configuration.
func NewClient(cfg config.UpstreamConfig, logg *logger.Logger, m *metrics.UpstreamMetrics) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("upstream base url is required")
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		logg:      logg,
		metrics:   m,
		retryWait: cfg.RetryWait,
	}, nil
}

// do performs one round-trip and decodes the normalized payload into out.
func (c *Client) do(ctx context.Context, group, method, path string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := pkgauth.TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.observe(group, metrics.OutcomeNetwork, start)
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, fmt.Sprintf("%s %s", method, path))
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		c.observe(group, metrics.OutcomeNetwork, start)
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, fmt.Sprintf("read %s %s response", method, path))
	}

	if res.StatusCode >= 400 {
		c.observe(group, outcomeForStatus(res.StatusCode), start)
		return rejectionError(res.StatusCode, raw)
	}

	c.observe(group, metrics.OutcomeOK, start)

	if out == nil {
		return nil
	}
	normalized := normalizePayload(raw)
	if len(normalized) == 0 {
		return nil
	}
	if err := json.Unmarshal(normalized, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeBackend, err, fmt.Sprintf("decode %s %s response", method, path))
	}
	return nil
}

// get performs a read with at most one automatic retry on network failure.
// Mutations are never retried here; a duplicated write is worse than a
// surfaced error.
func (c *Client) get(ctx context.Context, group, path string, out any) error {
	wait := c.retryWait
	if wait <= 0 {
		wait = 250 * time.Millisecond
	}
	backoff := retry.WithMaxRetries(1, retry.NewConstant(wait))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.do(ctx, group, http.MethodGet, path, nil, out)
		if pkgerrors.IsCode(err, pkgerrors.CodeNetwork) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) observe(group, outcome string, start time.Time) {
	c.metrics.Observe(group, outcome, time.Since(start))
}

func outcomeForStatus(status int) string {
	if status == http.StatusUnauthorized {
		return metrics.OutcomeAuth
	}
	return metrics.OutcomeRejected
}

// rejectionError maps an upstream HTTP failure onto the gateway taxonomy,
// carrying the server-supplied message verbatim.
func rejectionError(status int, body []byte) error {
	message := extractMessage(body)

	switch status {
	case http.StatusUnauthorized:
		if message == "" {
			message = "session expired"
		}
		return newRejection(pkgerrors.CodeUnauthorized, status, message)
	case http.StatusForbidden:
		if message == "" {
			message = "access denied"
		}
		return newRejection(pkgerrors.CodeForbidden, status, message)
	case http.StatusNotFound:
		if message == "" {
			message = "resource not found"
		}
		return newRejection(pkgerrors.CodeNotFound, status, message)
	default:
		if message == "" {
			message = fmt.Sprintf("marketplace api returned status %d", status)
		}
		return newRejection(pkgerrors.CodeBackend, status, message)
	}
}

// RejectionError carries the upstream status and verbatim message alongside
// the typed gateway error.
type RejectionError struct {
	base    *pkgerrors.Error
	status  int
	message string
}

func newRejection(code pkgerrors.Code, status int, message string) *RejectionError {
	return &RejectionError{
		base:    pkgerrors.New(code, message),
		status:  status,
		message: message,
	}
}

func (r *RejectionError) Error() string {
	if r == nil || r.base == nil {
		return ""
	}
	return r.base.Error()
}

// Unwrap exposes the typed gateway error so errors.As sees the code.
func (r *RejectionError) Unwrap() error {
	if r == nil {
		return nil
	}
	return r.base
}

func (r *RejectionError) UpstreamStatus() int {
	if r == nil {
		return 0
	}
	return r.status
}

func (r *RejectionError) UpstreamMessage() string {
	if r == nil {
		return ""
	}
	return r.message
}

// extractMessage pulls the human-readable message out of an upstream error
// body. The backend is inconsistent about the field name.
func extractMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}
