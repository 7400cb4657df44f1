package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/EmmanuelRendon01/CodeWordle/internal/api"
	"github.com/EmmanuelRendon01/CodeWordle/internal/auth"
	"github.com/EmmanuelRendon01/CodeWordle/internal/game"
)

func (a *App) loginCommands() map[string]*Command {
	return map[string]*Command{
		"login": {
			Usage: "login <email>",
			Help:  "log in; the password is asked for without echo",
			Run: func(ctx context.Context, args string) error {
				if args == "" {
					a.console.Alert("Usage: login <email>")
					return nil
				}
				pw, err := a.d.Prompt.ReadPassword("Password: ")
				if err != nil {
					return err
				}
				return a.login.Submit(ctx, args, pw)
			},
		},
		"register": {
			Usage: "register",
			Help:  "create an account",
			Run: func(ctx context.Context, args string) error {
				a.d.Router.Navigate(auth.PageRegister)
				return nil
			},
		},
		"help": {Usage: "help", Help: "list commands", Run: a.help(auth.PageLogin)},
		"quit": {Usage: "quit", Help: "exit", Run: quit},
	}
}

func (a *App) registerCommands() map[string]*Command {
	return map[string]*Command{
		"submit": {
			Usage: "submit",
			Help:  "fill in name, email and password",
			Run: func(ctx context.Context, args string) error {
				var r api.Registration
				var err error
				if r.Name, err = a.d.Prompt.ReadLine("Name: "); err != nil {
					return err
				}
				if r.Email, err = a.d.Prompt.ReadLine("Email: "); err != nil {
					return err
				}
				if r.Password, err = a.d.Prompt.ReadPassword("Password: "); err != nil {
					return err
				}
				if r.ConfirmPassword, err = a.d.Prompt.ReadPassword("Confirm password: "); err != nil {
					return err
				}
				r.Name, r.Email = strings.TrimSpace(r.Name), strings.TrimSpace(r.Email)
				return a.register.Submit(ctx, r)
			},
		},
		"back": {
			Usage: "back",
			Help:  "return to login",
			Run: func(ctx context.Context, args string) error {
				a.d.Router.Navigate(auth.PageLogin)
				return nil
			},
		},
		"help": {Usage: "help", Help: "list commands", Run: a.help(auth.PageRegister)},
		"quit": {Usage: "quit", Help: "exit", Run: quit},
	}
}

func (a *App) dashboardCommands() map[string]*Command {
	return map[string]*Command{
		"topics": {
			Usage: "topics",
			Help:  "list topics",
			Run: func(ctx context.Context, args string) error {
				a.console.Topics()
				return nil
			},
		},
		"start": {
			Usage: "start <topic>",
			Help:  "start a game",
			Run: func(ctx context.Context, args string) error {
				return a.game.Start(ctx, a.topic(args))
			},
		},
		"guess": {
			Usage: "guess <word>",
			Help:  "submit a guess (a bare word works too)",
			Run:   a.guess,
		},
		"board": {
			Usage: "board",
			Help:  "show the grid",
			Run: func(ctx context.Context, args string) error {
				a.game.Redraw()
				return nil
			},
		},
		"again": {
			Usage: "again",
			Help:  "back to topic selection",
			Run: func(ctx context.Context, args string) error {
				a.game.PlayAgain()
				return nil
			},
		},
		"status": {
			Usage: "status",
			Help:  "show game and session details",
			Run:   a.status,
		},
		"logout": {
			Usage: "logout",
			Help:  "forget the session",
			Run: func(ctx context.Context, args string) error {
				return a.game.Logout(ctx)
			},
		},
		"help": {Usage: "help", Help: "list commands", Run: a.help(auth.PageDashboard)},
		"quit": {Usage: "quit", Help: "exit", Run: quit},
	}
}

// topic returns the configured spelling of name, or name itself.
func (a *App) topic(name string) string {
	for _, t := range a.d.Config.Topics {
		if strings.EqualFold(t, name) {
			return t
		}
	}
	return name
}

func (a *App) guess(ctx context.Context, word string) error {
	err := a.game.SubmitGuess(ctx, word)
	switch {
	case errors.Is(err, game.ErrLength):
		if s := a.game.Snapshot().Session; s != nil {
			a.console.Alert(fmt.Sprintf("The word has %d letters.", s.WordLength))
		}
	case errors.Is(err, game.ErrBusy):
		a.console.Alert("Wait for the previous guess.")
	case errors.Is(err, game.ErrLocked):
		a.console.Alert("The game is over. Type 'again' to play another game.")
	case errors.Is(err, game.ErrNoGame):
		a.console.Alert("No game in progress. Use 'start <topic>'.")
	}
	a.game.Wait()
	return err
}

func (a *App) status(ctx context.Context, args string) error {
	if tok, _ := a.d.Client.Tokens().Token(ctx); tok != "" {
		who := api.TokenSubject(tok)
		if who == "" {
			who = "unknown account"
		}
		if exp, ok := api.TokenExpiry(tok); ok {
			a.console.Say("Session: %s, valid until %s", who, exp.Local().Format(time.DateTime))
		} else {
			a.console.Say("Session: %s", who)
		}
	}
	snap := a.game.Snapshot()
	if snap.Session == nil {
		a.console.Say("No game in progress.")
		return nil
	}
	s := snap.Session
	a.console.Say("Game %s (%s): %d of %d attempts used, %d letters.",
		s.GameID, snap.View, s.CurrentAttempt, s.MaxAttempts, s.WordLength)
	return nil
}
