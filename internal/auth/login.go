// internal/auth/login.go
//
// Login and registration page controllers.
// Responsibilities:
//   - Login: exchange credentials for a token and go to the dashboard.
//   - Register: create an account and go back to login with a notice.
//   - Turn API failures into the messages shown on each form.

package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/EmmanuelRendon01/CodeWordle/internal/api"
)

// Pages and query flags used for navigation.
const (
	PageLogin     = "login"
	PageRegister  = "register"
	PageDashboard = "dashboard"

	FlagRegistrationSuccess = "registrationSuccess=true"
	FlagSessionExpired      = "sessionExpired=true"
)

// Form messages.
const (
	MsgBadCredentials    = "Invalid email or password."
	MsgLoginUnreachable  = "Could not reach the server."
	MsgRegisterFailed    = "Registration failed: "
	MsgRegisterDefault   = "Please check your details."
	MsgRegisterUnreached = "Could not reach the server to register."
	MsgMissingFields     = "Email and password are required."
)

// API is the part of *api.Client the forms need.
type API interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, r api.Registration) error
}

// Alerter shows a message on the current form.
type Alerter interface {
	Alert(msg string)
}

// Navigator leaves the current page.
type Navigator interface {
	Navigate(page string, flags ...string)
}

var errMissing = errors.New("missing credentials")

// LoginController backs the login form.
type LoginController struct {
	API   API
	Out   Alerter
	Pages Navigator
}

// Submit logs in. On success the token is stored by the API client and
// the dashboard is opened; on failure the form stays with a message.
func (c *LoginController) Submit(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		c.Out.Alert(MsgMissingFields)
		return errMissing
	}
	if _, err := c.API.Login(ctx, email, password); err != nil {
		log.Debug().Err(err).Str("email", email).Msg("login failed")
		if errors.Is(err, api.ErrUnreachable) {
			c.Out.Alert(MsgLoginUnreachable)
		} else {
			c.Out.Alert(MsgBadCredentials)
		}
		return err
	}
	log.Info().Str("email", email).Msg("logged in")
	c.Pages.Navigate(PageDashboard)
	return nil
}

// Notice returns the banner the login page shows for the flags it was
// opened with, or "".
func Notice(flags map[string]bool) string {
	switch {
	case flags[FlagSessionExpired]:
		return "Your session has expired. Please log in again."
	case flags[FlagRegistrationSuccess]:
		return "Registration successful. You can now log in."
	}
	return ""
}
