package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sweetshop/storefront/internal/core/domain"
	"github.com/sweetshop/storefront/internal/metrics"
)

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges username and password for a bearer credential.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.doAuth(ctx, "login", "/auth/login", credentialsPayload{Username: username, Password: password}, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		metrics.AuthFailuresTotal.WithLabelValues("login").Inc()
		return "", fmt.Errorf("%w: no token in response", domain.ErrAuthRejected)
	}
	return out.Token, nil
}

// Register creates an account. The response body is ignored on success;
// the caller authenticates separately.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.doAuth(ctx, "register", "/auth/register", credentialsPayload{Username: username, Password: password}, nil)
}

// doAuth posts to an identity endpoint. Rejections carry a {"message": ...}
// body whose text is surfaced verbatim; identity calls are never retried.
func (c *Client) doAuth(ctx context.Context, operation, path string, body, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug().Str("path", path).Int("status", resp.StatusCode).Msg("auth call")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(raw))
		var envelope struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &envelope) == nil && envelope.Message != "" {
			msg = envelope.Message
		}
		if msg == "" {
			msg = resp.Status
		}
		metrics.AuthFailuresTotal.WithLabelValues(operation).Inc()
		return fmt.Errorf("%w: %s", domain.ErrAuthRejected, msg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
