// internal/stubserver/auth.go
//
// Accounts, JWT issuing and bearer-auth middleware for the stub API.
// Passwords are bcrypt hashed; tokens are HS256 JWTs whose subject is the
// account email.

package stubserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// accounts is the in-memory user table keyed by lower-cased email.
type accounts struct {
	mu   sync.RWMutex
	byID map[string]*account
}

func newAccounts() *accounts {
	return &accounts{byID: map[string]*account{}}
}

var errEmailTaken = errors.New("Email is already registered.")

func (a *accounts) create(name, email, pw string) (*account, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	key := strings.ToLower(email)
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.byID[key]; ok {
		return nil, errEmailTaken
	}
	u := &account{Name: name, Email: email, PasswordHash: string(h), CreatedAt: time.Now().UTC()}
	a.byID[key] = u
	return u, nil
}

func (a *accounts) find(email string) (*account, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	u, ok := a.byID[strings.ToLower(strings.TrimSpace(email))]
	return u, ok
}

// ------------------------------- handlers ----------------------------------

type registerReq struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// validateRegistration enforces the account form rules and returns the
// first violation.
func validateRegistration(r registerReq) error {
	name := strings.TrimSpace(r.Name)
	switch {
	case name == "":
		return errors.New("Name is required.")
	case len(name) < 3 || len(name) > 30:
		return errors.New("Name must be between 3 and 30 characters.")
	case strings.TrimSpace(r.Email) == "":
		return errors.New("Email is required.")
	case len(r.Email) > 100:
		return errors.New("Email cannot exceed 100 characters.")
	case r.Password == "":
		return errors.New("Password is required.")
	case len(r.Password) < 8 || len(r.Password) > 100:
		return errors.New("Password must be between 8 and 100 characters.")
	case r.ConfirmPassword == "":
		return errors.New("Password confirmation is required.")
	case r.Password != r.ConfirmPassword:
		return errors.New("Passwords do not match.")
	}
	if addr, err := mail.ParseAddress(r.Email); err != nil || addr.Address != strings.TrimSpace(r.Email) {
		return errors.New("Email format is not valid.")
	}
	return nil
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body registerReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON.")
		return
	}
	if err := validateRegistration(body); err != nil {
		writeError(w, http.StatusBadRequest, "validation", err.Error())
		return
	}
	u, err := s.accounts.create(strings.TrimSpace(body.Name), strings.TrimSpace(body.Email), body.Password)
	if errors.Is(err, errEmailTaken) {
		writeError(w, http.StatusConflict, "conflict", err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hash_failed", "Could not create the account.")
		return
	}
	w.Header().Set("Location", "/api/users/"+u.Email)
	writeJSON(w, http.StatusCreated, map[string]any{"name": u.Name, "email": u.Email})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON.")
		return
	}
	u, ok := s.accounts.find(body.Email)
	if !ok || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(body.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "bad_credentials", "Invalid email or password.")
		return
	}
	tok, err := s.IssueToken(u.Email, s.cfg.TokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed", "Could not sign the token.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

// ------------------------------ JWT & middleware ---------------------------

// IssueToken signs an HS256 token for email valid for ttl. A negative ttl
// yields an already expired token.
func (s *Server) IssueToken(email string, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return t.SignedString(s.cfg.Secret)
}

type ctxEmailKey struct{}

// requireAuth enforces a valid bearer token. Missing or invalid tokens get
// 401; a valid token for an unknown account gets 403.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a := r.Header.Get("Authorization")
		if !strings.HasPrefix(strings.ToLower(a), "bearer ") {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token.")
			return
		}
		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimSpace(a[7:]), claims, func(t *jwt.Token) (interface{}, error) {
			return s.cfg.Secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid || claims.Subject == "" {
			writeError(w, http.StatusUnauthorized, "invalid_token", "Invalid token.")
			return
		}
		u, ok := s.accounts.find(claims.Subject)
		if !ok {
			writeError(w, http.StatusForbidden, "forbidden", "Unknown account.")
			return
		}
		ctx := context.WithValue(r.Context(), ctxEmailKey{}, u.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentEmail(r *http.Request) string {
	e, _ := r.Context().Value(ctxEmailKey{}).(string)
	return e
}
