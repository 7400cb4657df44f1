// internal/api/client.go
//
// HTTP client for the CodeWordle API.
// Responsibilities:
//   - JSON request/response plumbing with a request id per call.
//   - Bearer authentication from the token store on /api/* calls.
//   - Shared session-expiry handling: 401/403 clears the token and tells the
//     navigator to go back to login; a missing token does the same without
//     touching the network.
//   - Mapping of transport and HTTP failures onto the errors in errors.go.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/EmmanuelRendon01/CodeWordle/internal/tokenstore"
)

// ExpiryHandler is called when an authenticated call cannot proceed.
// sessionExpired is true when the server rejected the token and false when
// there was no token to send.
type ExpiryHandler func(sessionExpired bool)

// Client talks to one API server.
type Client struct {
	baseURL  string
	http     *http.Client
	tokens   tokenstore.Store
	onExpiry ExpiryHandler
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

// WithExpiryHandler installs the shared session-expiry handler.
func WithExpiryHandler(fn ExpiryHandler) Option {
	return func(c *Client) { c.onExpiry = fn }
}

// NewClient constructs a Client for baseURL (e.g. http://localhost:8080).
func NewClient(baseURL string, tokens tokenstore.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Tokens exposes the token store the client authenticates with.
func (c *Client) Tokens() tokenstore.Store { return c.tokens }

// ---------------------------------------------------------------------------
// auth endpoints (no bearer)

// Login exchanges credentials for a token and stores it.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var res loginResponse
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", false, loginRequest{Email: email, Password: password}, &res); err != nil {
		return "", err
	}
	if res.Token == "" {
		return "", &Error{Status: http.StatusOK, Message: "login response carried no token"}
	}
	if err := c.tokens.SetToken(ctx, res.Token); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	return res.Token, nil
}

// Register creates an account. Only 201 Created counts as success; any
// other status comes back as *Error carrying the server's message.
func (c *Client) Register(ctx context.Context, r Registration) error {
	status, err := c.do(ctx, http.MethodPost, "/auth/register", false, r, nil)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return &Error{Status: status}
	}
	return nil
}

// ---------------------------------------------------------------------------
// game endpoints (bearer)

// ActiveGame returns the caller's in-progress game, or nil when the server
// answers 204 No Content.
func (c *Client) ActiveGame(ctx context.Context) (*ActiveGame, error) {
	var g ActiveGame
	status, err := c.do(ctx, http.MethodGet, "/api/games/active", true, nil, &g)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent {
		return nil, nil
	}
	return &g, nil
}

// StartGame starts a game on topic.
func (c *Client) StartGame(ctx context.Context, topic string) (*GameState, error) {
	var g GameState
	status, err := c.do(ctx, http.MethodPost, "/api/games/start", true, startRequest{Topic: topic}, &g)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent {
		return nil, &Error{Status: status, Message: "server returned no game"}
	}
	return &g, nil
}

// Guess submits word for game id.
func (c *Client) Guess(ctx context.Context, id GameID, word string) (*GuessResult, error) {
	var res GuessResult
	path := "/api/games/" + url.PathEscape(id.String()) + "/guess"
	status, err := c.do(ctx, http.MethodPost, path, true, guessRequest{Word: word}, &res)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent {
		return nil, &Error{Status: status, Message: "server returned no result"}
	}
	return &res, nil
}

// ---------------------------------------------------------------------------
// plumbing

// do performs one JSON round trip and returns the HTTP status. out is left
// untouched on 204.
func (c *Client) do(ctx context.Context, method, path string, auth bool, in, out any) (int, error) {
	var token string
	if auth {
		var err error
		if token, err = c.tokens.Token(ctx); err != nil {
			return 0, fmt.Errorf("load token: %w", err)
		}
		if token == "" {
			c.expired(false)
			return 0, ErrNoToken
		}
		if exp, ok := TokenExpiry(token); ok && time.Now().After(exp) {
			log.Debug().Time("exp", exp).Msg("sending a token that looks expired")
		}
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("encode %s: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, err
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("reqId", reqID).Str("path", path).Msg("request failed")
		return 0, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	log.Debug().
		Str("reqId", reqID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("api call")

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return resp.StatusCode, nil
	case auth && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden):
		if err := c.tokens.Clear(ctx); err != nil {
			log.Warn().Err(err).Msg("clear rejected token")
		}
		c.expired(true)
		return resp.StatusCode, ErrSessionExpired
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return resp.StatusCode, decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) expired(sessionExpired bool) {
	if c.onExpiry != nil {
		c.onExpiry(sessionExpired)
	}
}
