package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// ErrNoToken means no session token is stored; nothing was sent.
	ErrNoToken = errors.New("api: not logged in")

	// ErrSessionExpired means the server rejected the token (401/403).
	// The token has already been cleared.
	ErrSessionExpired = errors.New("api: session expired")

	// ErrUnreachable wraps transport failures (DNS, refused, timeout).
	ErrUnreachable = errors.New("api: server unreachable")
)

// Error is a non-2xx answer from the server.
type Error struct {
	Status  int
	Message string // server-supplied text, may be empty
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// Message returns the server-supplied message carried by err, if any.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return ""
}

// errorBody covers both {"message": ...} (validation) and {"error": ...}.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func decodeError(resp *http.Response) error {
	e := &Error{Status: resp.StatusCode}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(b) == 0 {
		return e
	}
	var body errorBody
	if json.Unmarshal(b, &body) == nil {
		e.Message = body.Message
		if e.Message == "" {
			e.Message = body.Error
		}
		return e
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "json") {
		e.Message = strings.TrimSpace(string(b))
	}
	return e
}
