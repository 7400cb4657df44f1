package app

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/EmmanuelRendon01/CodeWordle/assets"
	"github.com/EmmanuelRendon01/CodeWordle/internal/api"
	"github.com/EmmanuelRendon01/CodeWordle/internal/auth"
	"github.com/EmmanuelRendon01/CodeWordle/internal/config"
	"github.com/EmmanuelRendon01/CodeWordle/internal/game"
	"github.com/EmmanuelRendon01/CodeWordle/internal/render"
	"github.com/EmmanuelRendon01/CodeWordle/internal/stubserver"
	"github.com/EmmanuelRendon01/CodeWordle/internal/tokenstore"
	"github.com/EmmanuelRendon01/CodeWordle/internal/words"
)

// script feeds lines and passwords in order.
type script struct {
	lines     []string
	passwords []string
	cmds      []string
}

func (s *script) ReadLine(prompt string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	l := s.lines[0]
	s.lines = s.lines[1:]
	return l, nil
}

func (s *script) ReadPassword(prompt string) (string, error) {
	if len(s.passwords) == 0 {
		return "", io.EOF
	}
	p := s.passwords[0]
	s.passwords = s.passwords[1:]
	return p, nil
}

func (s *script) SetCompletions(cmds []string, args map[string][]string) { s.cmds = cmds }

type harness struct {
	app    *App
	out    *bytes.Buffer
	router *Router
	client *api.Client
	in     *script
	stub   *stubserver.Server
}

func newHarness(t *testing.T, start string) *harness {
	t.Helper()
	wl := words.New([]assets.TopicEntry{{Topic: "Git", Word: "MERGE"}})
	stub := stubserver.New(wl, stubserver.Config{Secret: []byte("app-test"), TokenTTL: time.Hour})
	ts := httptest.NewServer(stub.Handler())
	t.Cleanup(ts.Close)

	router := NewRouter(start)
	client := api.NewClient(ts.URL, tokenstore.NewMemory(), api.WithExpiryHandler(router.Expire))
	out := &bytes.Buffer{}
	in := &script{}
	a := New(Deps{
		Config:    config.Config{Topics: []string{"Git", "Java"}, NoColor: true},
		Client:    client,
		Router:    router,
		Out:       out,
		Prompt:    in,
		Scheduler: &render.Immediate{},
	})
	return &harness{app: a, out: out, router: router, client: client, in: in, stub: stub}
}

func (h *harness) run(t *testing.T, lines ...string) {
	t.Helper()
	for _, l := range lines {
		_ = h.app.Dispatch(context.Background(), l)
	}
}

func (h *harness) page() string {
	p, _ := h.router.Page()
	return p
}

func TestRouter(t *testing.T) {
	r := NewRouter(auth.PageLogin)
	if !r.entered() || r.entered() {
		t.Fatal("entered should fire once for the start page")
	}
	r.Navigate(auth.PageLogin, auth.FlagRegistrationSuccess)
	page, flags := r.Page()
	if page != auth.PageLogin || !flags[auth.FlagRegistrationSuccess] || !r.entered() {
		t.Fatalf("page %q flags %v", page, flags)
	}
	r.Expire(true)
	if _, flags := r.Page(); !flags[auth.FlagSessionExpired] || flags[auth.FlagRegistrationSuccess] {
		t.Fatalf("flags after expiry = %v", flags)
	}
	r.Expire(false)
	if _, flags := r.Page(); len(flags) != 0 {
		t.Fatalf("flags after missing token = %v", flags)
	}
}

func TestFullSession(t *testing.T) {
	h := newHarness(t, auth.PageLogin)
	h.in.passwords = []string{"longpassword", "longpassword", "longpassword"}
	h.in.lines = []string{"dave", "dave@example.com"}

	h.run(t, "register", "submit")
	if h.page() != auth.PageLogin || !strings.Contains(h.out.String(), "Registration successful") {
		t.Fatalf("after register on %q:\n%s", h.page(), h.out.String())
	}

	h.run(t, "login dave@example.com")
	if h.page() != auth.PageDashboard {
		t.Fatalf("after login on %q:\n%s", h.page(), h.out.String())
	}
	if !strings.Contains(h.out.String(), "Logged in as dave@example.com.") {
		t.Errorf("no greeting:\n%s", h.out.String())
	}
	if !strings.Contains(h.out.String(), "start <topic>") {
		t.Errorf("topics not offered:\n%s", h.out.String())
	}

	h.run(t, "start git")
	snap := h.app.game.Snapshot()
	if snap.View != game.ViewPlaying || snap.Session.WordLength != 5 {
		t.Fatalf("after start: %+v", snap)
	}

	h.out.Reset()
	h.run(t, "merit")
	if got := h.app.game.Snapshot().Session.CurrentAttempt; got != 1 {
		t.Fatalf("attempt = %d", got)
	}
	if !strings.Contains(h.out.String(), "[M=][E=][R=][I.][T.]") {
		t.Errorf("grid not drawn:\n%s", h.out.String())
	}

	h.run(t, "toolong")
	if !strings.Contains(h.out.String(), "Unknown command") {
		t.Errorf("long word treated as guess:\n%s", h.out.String())
	}
	h.run(t, "guess abc")
	if !strings.Contains(h.out.String(), "The word has 5 letters.") {
		t.Errorf("no length alert:\n%s", h.out.String())
	}

	h.run(t, "guess merge")
	snap = h.app.game.Snapshot()
	if snap.View != game.ViewGameOver || snap.InputEnabled {
		t.Fatalf("after win: %+v", snap)
	}
	if !strings.Contains(h.out.String(), "Congratulations, you won!") || !strings.Contains(h.out.String(), "The word was: MERGE") {
		t.Errorf("no result:\n%s", h.out.String())
	}

	h.run(t, "again")
	if h.app.game.Snapshot().View != game.ViewTopics {
		t.Fatal("again did not return to topics")
	}

	h.run(t, "logout")
	if h.page() != auth.PageLogin {
		t.Fatalf("after logout on %q", h.page())
	}
	if tok, _ := h.client.Tokens().Token(context.Background()); tok != "" {
		t.Error("token survived logout")
	}
}

func TestDashboardResumesGame(t *testing.T) {
	h := newHarness(t, auth.PageLogin)
	ctx := context.Background()
	if err := h.client.Register(ctx, api.Registration{Name: "erin", Email: "erin@example.com", Password: "longpassword", ConfirmPassword: "longpassword"}); err != nil {
		t.Fatal(err)
	}
	if _, err := h.client.Login(ctx, "erin@example.com", "longpassword"); err != nil {
		t.Fatal(err)
	}
	st, err := h.client.StartGame(ctx, "Git")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := h.client.Guess(ctx, st.GameID, "MERIT"); err != nil {
		t.Fatal(err)
	}

	h.router.Navigate(auth.PageDashboard)
	h.run(t, "status")
	snap := h.app.game.Snapshot()
	if snap.View != game.ViewPlaying || snap.Session.CurrentAttempt != 1 || !snap.InputEnabled {
		t.Fatalf("resume: %+v", snap)
	}
	if !strings.Contains(h.out.String(), "1 of 6 attempts used") {
		t.Errorf("status:\n%s", h.out.String())
	}
	if p := h.app.prompt(); p != "codewordle 2/6» " {
		t.Errorf("prompt = %q", p)
	}
}

func TestExpiredSessionReturnsToLogin(t *testing.T) {
	h := newHarness(t, auth.PageDashboard)
	_ = h.client.Tokens().SetToken(context.Background(), "stale")

	h.run(t, "help")
	page, flags := h.router.Page()
	if page != auth.PageLogin || !flags[auth.FlagSessionExpired] {
		t.Fatalf("page %q flags %v", page, flags)
	}
	if !strings.Contains(h.out.String(), "session has expired") {
		t.Errorf("no expiry notice:\n%s", h.out.String())
	}
	if strings.Contains(h.out.String(), "!") {
		t.Errorf("expiry raised an alert:\n%s", h.out.String())
	}
}

func TestMissingTokenReturnsToLogin(t *testing.T) {
	h := newHarness(t, auth.PageDashboard)
	h.run(t, "help")
	if h.page() != auth.PageLogin {
		t.Fatalf("page = %q", h.page())
	}
	if len(h.in.cmds) == 0 || h.in.cmds[0] != "help" {
		t.Errorf("completions = %v", h.in.cmds)
	}
}

func TestLoginFailureStaysOnPage(t *testing.T) {
	h := newHarness(t, auth.PageLogin)
	h.in.passwords = []string{"whatever123"}
	h.run(t, "login nobody@example.com")
	if h.page() != auth.PageLogin || !strings.Contains(h.out.String(), auth.MsgBadCredentials) {
		t.Fatalf("page %q:\n%s", h.page(), h.out.String())
	}
	h.run(t, "login")
	if !strings.Contains(h.out.String(), "Usage: login <email>") {
		t.Errorf("no usage:\n%s", h.out.String())
	}
}

func TestRunStopsOnQuitAndEOF(t *testing.T) {
	h := newHarness(t, auth.PageLogin)
	h.in.lines = []string{"help", "quit", "register"}
	if err := h.app.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.page() != auth.PageLogin || len(h.in.lines) != 1 {
		t.Fatalf("page %q, unread %v", h.page(), h.in.lines)
	}

	h.in.lines = nil
	if err := h.app.Run(context.Background()); err != nil {
		t.Fatalf("Run at EOF: %v", err)
	}
}
