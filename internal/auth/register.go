package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/EmmanuelRendon01/CodeWordle/internal/api"
)

// RegisterController backs the registration form. Field validation is
// left to the server; its message is shown verbatim.
type RegisterController struct {
	API   API
	Out   Alerter
	Pages Navigator
}

// Submit creates the account. Only 201 Created counts as success.
func (c *RegisterController) Submit(ctx context.Context, r api.Registration) error {
	err := c.API.Register(ctx, r)
	switch {
	case err == nil:
		log.Info().Str("email", r.Email).Msg("account registered")
		c.Pages.Navigate(PageLogin, FlagRegistrationSuccess)
		return nil
	case errors.Is(err, api.ErrUnreachable):
		c.Out.Alert(MsgRegisterUnreached)
	default:
		msg := api.Message(err)
		if msg == "" {
			msg = MsgRegisterDefault
		}
		c.Out.Alert(MsgRegisterFailed + msg)
	}
	log.Debug().Err(err).Msg("registration failed")
	return err
}
