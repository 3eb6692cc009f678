// Package api implements the HTTP gateway to the remote sweet-shop service.
//
// All endpoints speak JSON. The current bearer credential is attached to
// every outgoing request when present and omitted entirely when absent; the
// remote service decides what an anonymous caller may see.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/sweetshop/storefront/internal/core/domain"
	"github.com/sweetshop/storefront/internal/core/ports"
)

const (
	defaultTimeout           = 10 * time.Second
	defaultRequestsPerSecond = 5
	maxErrorBody             = 16 << 10
)

// Client talks to the remote sweet-shop service. It implements both
// ports.AuthGateway and ports.CatalogGateway.
type Client struct {
	http    *http.Client
	baseURL string
	creds   ports.CredentialStore
	limiter *rate.Limiter
	logger  zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, requestsPerSecond float64, creds ports.CredentialStore, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = defaultRequestsPerSecond
	}
	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		logger:  logger,
	}
}

// newRequest builds an outgoing request, waiting on the rate limiter first.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cred, err := c.creds.Get(); err == nil && cred != "" {
		req.Header.Set("Authorization", "Bearer "+cred)
	}
	return req, nil
}

// do executes a catalog request and decodes the JSON response into out when
// out is non-nil. A 403 maps to domain.ErrForbidden; any other non-2xx
// status surfaces the server's own message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("api call")

	if resp.StatusCode == http.StatusForbidden {
		return domain.ErrForbidden
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.responseError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// responseError extracts the most useful message a failed response offers:
// a JSON envelope field when present, otherwise the raw body text.
func (c *Client) responseError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &envelope) == nil {
		if envelope.Message != "" {
			return errors.New(envelope.Message)
		}
		if envelope.Error != "" {
			return errors.New(envelope.Error)
		}
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" {
		return errors.New(msg)
	}
	return fmt.Errorf("unexpected status %s", resp.Status)
}
