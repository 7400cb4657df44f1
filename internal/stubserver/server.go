// internal/stubserver/server.go
//
// In-process stand-in for the CodeWordle API.
// Used by the client's integration tests and by `codewordle stub` for local
// play without the real backend.
// Responsibilities:
//   - Router + middleware (request IDs, panic recovery, timeouts, JSON).
//   - Public endpoints: /health, POST /auth/register, POST /auth/login.
//   - Bearer-protected game endpoints under /api/games.
//
// Notes:
//   - Accounts and games live in memory and vanish on restart.
//   - Error bodies are {"error": code, "message": text}; the client shows
//     "message" verbatim.

package stubserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/EmmanuelRendon01/CodeWordle/internal/store"
	"github.com/EmmanuelRendon01/CodeWordle/internal/words"
)

// Config tunes a Server. Zero values fall back to environment/defaults.
type Config struct {
	Secret   []byte        // HS256 key; JWT_SECRET or a dev default
	TokenTTL time.Duration // JWT_EXPIRES_DAYS or 1 day

	// PickWord overrides random word selection (tests).
	PickWord func(topic string) (string, bool)
}

// Server bundles router, game store, accounts and word lists.
type Server struct {
	r        *chi.Mux
	games    store.Store
	accounts *accounts
	words    *words.List
	cfg      Config

	// play serialises start/guess so a game is never mutated concurrently.
	play sync.Mutex
}

// New constructs a Server, installs middleware, and registers routes.
func New(wl *words.List, cfg Config) *Server {
	if len(cfg.Secret) == 0 {
		cfg.Secret = []byte(getEnv("JWT_SECRET", "dev_secret_change_me"))
	}
	if cfg.TokenTTL == 0 {
		days := 1
		if n, err := strconv.Atoi(os.Getenv("JWT_EXPIRES_DAYS")); err == nil && n > 0 {
			days = n
		}
		cfg.TokenTTL = time.Duration(days) * 24 * time.Hour
	}
	if cfg.PickWord == nil {
		cfg.PickWord = wl.Random
	}

	s := &Server{
		r:        chi.NewRouter(),
		games:    store.NewMemoryStore(),
		accounts: newAccounts(),
		words:    wl,
		cfg:      cfg,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(requestLogger)
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		topics, n := s.words.Stats()
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "topics": topics, "words": n})
	})

	s.r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
	})

	s.r.Route("/api/games", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/active", s.handleActive)
		r.Post("/start", s.handleStart)
		r.Post("/{id}/guess", s.handleGuess)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "No route for "+r.URL.Path)
	})
	return s
}

// Serve runs the server on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := hs.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("stub server shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return hs.Shutdown(sctx)
	})
	return g.Wait()
}

// Handler exposes the router (httptest servers).
func (s *Server) Handler() http.Handler { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("clientReqId", r.Header.Get("X-Request-ID")).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("stub request")
	})
}

// ------------------------------ helpers ------------------------------------

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
