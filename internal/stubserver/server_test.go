package stubserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/EmmanuelRendon01/CodeWordle/assets"
	"github.com/EmmanuelRendon01/CodeWordle/internal/words"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	wl := words.New([]assets.TopicEntry{{Topic: "Java", Word: "CLASS"}})
	s := New(wl, Config{Secret: []byte("test-secret"), TokenTTL: time.Hour})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func call(t *testing.T, ts *httptest.Server, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, _ := http.NewRequest(method, ts.URL+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

var alice = map[string]string{
	"name": "alice", "email": "alice@example.com",
	"password": "correct horse", "confirmPassword": "correct horse",
}

func login(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	if resp, body := call(t, ts, http.MethodPost, "/auth/register", "", alice); resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: %d %v", resp.StatusCode, body)
	}
	resp, body := call(t, ts, http.MethodPost, "/auth/login", "", map[string]string{"email": alice["email"], "password": alice["password"]})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: %d %v", resp.StatusCode, body)
	}
	tok, _ := body["token"].(string)
	if tok == "" {
		t.Fatalf("no token in %v", body)
	}
	return tok
}

func TestRegisterValidation(t *testing.T) {
	_, ts := newTestServer(t)
	tests := []struct {
		mutate func(m map[string]string)
		want   string
	}{
		{func(m map[string]string) { m["name"] = "al" }, "Name must be between 3 and 30 characters."},
		{func(m map[string]string) { m["email"] = "not-an-email" }, "Email format is not valid."},
		{func(m map[string]string) { m["password"], m["confirmPassword"] = "short", "short" }, "Password must be between 8 and 100 characters."},
		{func(m map[string]string) { m["confirmPassword"] = "something else" }, "Passwords do not match."},
	}
	for _, tt := range tests {
		body := map[string]string{}
		for k, v := range alice {
			body[k] = v
		}
		tt.mutate(body)
		resp, out := call(t, ts, http.MethodPost, "/auth/register", "", body)
		if resp.StatusCode != http.StatusBadRequest || out["message"] != tt.want {
			t.Errorf("got %d %v, want 400 %q", resp.StatusCode, out["message"], tt.want)
		}
	}

	if resp, _ := call(t, ts, http.MethodPost, "/auth/register", "", alice); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first register: %d", resp.StatusCode)
	}
	if resp, _ := call(t, ts, http.MethodPost, "/auth/register", "", alice); resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register: %d", resp.StatusCode)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	_, ts := newTestServer(t)
	login(t, ts)
	resp, out := call(t, ts, http.MethodPost, "/auth/login", "", map[string]string{"email": alice["email"], "password": "wrong"})
	if resp.StatusCode != http.StatusUnauthorized || out["message"] == "" {
		t.Fatalf("got %d %v", resp.StatusCode, out)
	}
}

func TestGameFlow(t *testing.T) {
	_, ts := newTestServer(t)
	tok := login(t, ts)

	if resp, _ := call(t, ts, http.MethodGet, "/api/games/active", tok, nil); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("active before start: %d", resp.StatusCode)
	}
	if resp, _ := call(t, ts, http.MethodPost, "/api/games/start", tok, map[string]string{"topic": "Cobol"}); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown topic: %d", resp.StatusCode)
	}

	resp, st := call(t, ts, http.MethodPost, "/api/games/start", tok, map[string]string{"topic": "java"})
	if resp.StatusCode != http.StatusOK || st["wordLength"] != float64(5) || st["maxAttempts"] != float64(6) {
		t.Fatalf("start: %d %v", resp.StatusCode, st)
	}
	if resp, _ := call(t, ts, http.MethodPost, "/api/games/start", tok, map[string]string{"topic": "java"}); resp.StatusCode != http.StatusConflict {
		t.Fatalf("second start: %d", resp.StatusCode)
	}

	path := "/api/games/" + jsonNumber(st["gameId"]) + "/guess"
	resp, g := call(t, ts, http.MethodPost, path, tok, map[string]string{"word": "CLASH"})
	if resp.StatusCode != http.StatusOK || g["gameStatus"] != "IN_PROGRESS" || g["correctWord"] != nil {
		t.Fatalf("guess: %d %v", resp.StatusCode, g)
	}
	if g["remainingAttempts"] != float64(5) {
		t.Fatalf("remainingAttempts = %v", g["remainingAttempts"])
	}

	resp, active := call(t, ts, http.MethodGet, "/api/games/active", tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("active: %d", resp.StatusCode)
	}
	if prev, _ := active["previousGuesses"].([]any); len(prev) != 1 {
		t.Fatalf("previousGuesses = %v", active["previousGuesses"])
	}

	if resp, _ := call(t, ts, http.MethodPost, path, tok, map[string]string{"word": "CLA"}); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("short guess: %d", resp.StatusCode)
	}
	_, g = call(t, ts, http.MethodPost, path, tok, map[string]string{"word": "class"})
	if g["gameStatus"] != "WON" || g["correctWord"] != "CLASS" {
		t.Fatalf("winning guess: %v", g)
	}
	if resp, _ := call(t, ts, http.MethodPost, path, tok, map[string]string{"word": "CLASS"}); resp.StatusCode != http.StatusConflict {
		t.Fatalf("guess after win: %d", resp.StatusCode)
	}
}

func TestRequireAuth(t *testing.T) {
	s, ts := newTestServer(t)
	if resp, _ := call(t, ts, http.MethodGet, "/api/games/active", "", nil); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: %d", resp.StatusCode)
	}
	if resp, _ := call(t, ts, http.MethodGet, "/api/games/active", "garbage", nil); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("garbage token: %d", resp.StatusCode)
	}
	expired, _ := s.IssueToken("alice@example.com", -time.Minute)
	if resp, _ := call(t, ts, http.MethodGet, "/api/games/active", expired, nil); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expired token: %d", resp.StatusCode)
	}
	ghost, _ := s.IssueToken("ghost@example.com", time.Minute)
	if resp, _ := call(t, ts, http.MethodGet, "/api/games/active", ghost, nil); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("unknown account: %d", resp.StatusCode)
	}
}

func jsonNumber(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestServeStopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, "127.0.0.1:0") }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
