package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// request is the wire shape of every backend call.
type request struct {
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload"`
}

// SessionTokenSource adapts the current backend session token to
// oauth2.TokenSource so the HTTP client attaches it as a bearer token.
// The token is swapped after login and cleared on logout.
type SessionTokenSource struct {
	mu    sync.RWMutex
	token string
}

func (s *SessionTokenSource) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *SessionTokenSource) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &oauth2.Token{AccessToken: s.token}, nil
}

// Client posts action calls to the backend's single request endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(endpoint string, source oauth2.TokenSource, timeout time.Duration, logger *slog.Logger) *Client {
	httpClient := oauth2.NewClient(context.Background(), source)
	httpClient.Timeout = timeout
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Call issues exactly one request. Payload may be nil for actions without
// parameters. HTTP-level details never leak past this method: callers see
// either a decoded envelope or a transport error.
func (c *Client) Call(ctx context.Context, action string, payload map[string]any) (*Envelope, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	body, err := json.Marshal(request{Action: action, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend call failed", slog.String("action", action), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Warn("backend returned malformed response",
			slog.String("action", action),
			slog.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("%w: malformed response (HTTP %d)", ErrTransport, resp.StatusCode)
	}
	return &env, nil
}
