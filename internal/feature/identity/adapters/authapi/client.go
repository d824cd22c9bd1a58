package authapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"stockwatch/internal/feature/identity/domain"
	"stockwatch/internal/feature/identity/domain/entity"
)

// validateTokenPath is the identity service endpoint that checks a credential.
const validateTokenPath = "/api/auth/validateToken"

// validateResponse is the JSON body returned by the identity service.
type validateResponse struct {
	Valid bool             `json:"valid"`
	User  *entity.Identity `json:"user"`
}

// Client validates opaque credentials against the remote identity service.
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient creates a Client with the given configuration and HTTP client.
// The HTTP client's timeout bounds each validation call.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// Validate forwards the Authorization header value verbatim to the identity
// service and returns the resolved identity.
//
// Failures are classified for the request gate:
//   - transport errors and timeouts wrap domain.ErrAuthServiceUnavailable
//   - rejection by the service (non-2xx, or a body whose validity flag is
//     false or absent) wraps domain.ErrInvalidToken
//   - anything else (e.g. an unparseable body) is returned unclassified
func (c *Client) Validate(ctx context.Context, authorization string) (*entity.Identity, error) {
	u := c.cfg.BaseURL + validateTokenPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", authorization)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthServiceUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: identity service returned %d", domain.ErrInvalidToken, res.StatusCode)
	}

	var body validateResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode validation response: %w", err)
	}
	if !body.Valid || body.User == nil {
		return nil, domain.ErrInvalidToken
	}

	return body.User, nil
}
