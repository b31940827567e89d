package fortigate

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/vivekshiftai/integration-of-firewall/internal/config"
	"github.com/vivekshiftai/integration-of-firewall/internal/domain"
)

// PolicyClient defines the interface for fetching policies from a firewall.
type PolicyClient interface {
	FetchPolicies(ctx context.Context) ([]domain.RawPolicy, error)
}

// ErrorKind classifies client failures.
type ErrorKind string

const (
	ErrConnection ErrorKind = "connection"
	ErrAuth       ErrorKind = "auth"
	ErrTimeout    ErrorKind = "timeout"
	ErrProtocol   ErrorKind = "protocol"
)

// APIError is a failure talking to the firewall API.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("firewall api: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("firewall api: %s", e.Message)
}

const (
	maxRetries     = 3
	initialBackoff = 1 * time.Second
)

// Client fetches policies from a FortiGate REST API.
type Client struct {
	cfg        config.FortiGateConfig
	httpClient *http.Client
}

// Ensure Client implements PolicyClient.
var _ PolicyClient = (*Client)(nil)

// New creates a firewall API client. Certificate verification follows
// cfg.VerifySSL; FortiGate units commonly serve self-signed certificates.
func New(cfg config.FortiGateConfig) *Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: !cfg.VerifySSL},
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}
}

// FetchPolicies retrieves every firewall policy from the configured unit.
// Transport errors, 429 and 5xx responses are retried with exponential
// backoff; auth and protocol errors fail immediately.
func (c *Client) FetchPolicies(ctx context.Context) ([]domain.RawPolicy, error) {
	endpoint := c.cfg.APIEndpoint()

	var policies []domain.RawPolicy
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(initialBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var attemptErr error
		policies, attemptErr = c.fetchOnce(ctx, endpoint)
		if attemptErr != nil {
			slog.Debug("firewall fetch attempt failed", "endpoint", endpoint, "error", attemptErr)
		}
		return attemptErr
	})
	if err != nil {
		return nil, err
	}
	return policies, nil
}

func (c *Client) fetchOnce(ctx context.Context, endpoint string) ([]domain.RawPolicy, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &APIError{Kind: ErrProtocol, Message: fmt.Sprintf("building request: %v", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := ErrConnection
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			kind = ErrTimeout
		}
		return nil, retry.RetryableError(&APIError{Kind: kind, Message: err.Error()})
	}
	defer resp.Body.Close()

	if err := validateStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, retry.RetryableError(&APIError{Kind: ErrConnection, Message: fmt.Sprintf("reading response: %v", err)})
	}

	return extractPolicies(body)
}

// validateStatus maps HTTP statuses to errors. 429 and 5xx are marked
// retryable.
func validateStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return &APIError{Kind: ErrAuth, StatusCode: status, Message: "authentication failed, check the API token"}
	case status == http.StatusForbidden:
		return &APIError{Kind: ErrAuth, StatusCode: status, Message: "access forbidden, the token lacks permission"}
	case status == http.StatusNotFound:
		return &APIError{Kind: ErrProtocol, StatusCode: status, Message: "policy endpoint not found, check the API version"}
	case status == http.StatusTooManyRequests || status >= 500:
		return retry.RetryableError(&APIError{Kind: ErrConnection, StatusCode: status, Message: "transient upstream failure"})
	default:
		return &APIError{Kind: ErrProtocol, StatusCode: status, Message: fmt.Sprintf("unexpected status %d", status)}
	}
}

// extractPolicies unwraps the response envelope. FortiGate-family firmware
// answers with a bare array, {"results": [...]}, {"data": ...}, or a single
// policy object depending on version.
func extractPolicies(body []byte) ([]domain.RawPolicy, error) {
	var list []domain.RawPolicy
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &APIError{Kind: ErrProtocol, Message: "response is neither a policy list nor an object"}
	}

	if results, ok := envelope["results"]; ok {
		return policiesFromValue(results)
	}
	if data, ok := envelope["data"]; ok {
		return policiesFromValue(data)
	}

	// A bare object is a single policy.
	return []domain.RawPolicy{envelope}, nil
}

// policiesFromValue accepts a decoded policy list or a single policy object.
func policiesFromValue(v any) ([]domain.RawPolicy, error) {
	policies, ok := domain.RawPoliciesFrom(v)
	if !ok {
		return nil, &APIError{Kind: ErrProtocol, Message: "policy envelope has an unexpected shape"}
	}
	return policies, nil
}
