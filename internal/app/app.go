// internal/app/app.go
//
// Terminal front end.
// Responsibilities:
//   - One command table per page; lines typed at the prompt are dispatched
//     to the table of the current page.
//   - Page entry: login shows its notice, dashboard builds a fresh game
//     controller and runs Bootstrap.
//   - Wiring of the auth and game controllers to the console.

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/EmmanuelRendon01/CodeWordle/internal/api"
	"github.com/EmmanuelRendon01/CodeWordle/internal/auth"
	"github.com/EmmanuelRendon01/CodeWordle/internal/config"
	"github.com/EmmanuelRendon01/CodeWordle/internal/game"
	"github.com/EmmanuelRendon01/CodeWordle/internal/render"
)

// Prompter reads user input.
type Prompter interface {
	ReadLine(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	// SetCompletions installs tab completion for the current page.
	SetCompletions(cmds []string, args map[string][]string)
}

// Handler runs one command; args is the rest of the line.
type Handler func(ctx context.Context, args string) error

// Command is an entry of a page's command table.
type Command struct {
	Usage string
	Help  string
	Run   Handler
}

// Deps are the collaborators of an App.
type Deps struct {
	Config    config.Config
	Client    *api.Client
	Router    *Router
	Out       io.Writer
	Prompt    Prompter
	Scheduler render.Scheduler // nil: realtime when RevealDelay > 0
}

// App is the running terminal client.
type App struct {
	d       Deps
	term    *render.Terminal
	console *Console
	pages   map[string]map[string]*Command

	login    *auth.LoginController
	register *auth.RegisterController
	game     *game.Controller
}

var errQuit = errors.New("quit")

// New builds an App. The router decides the first page.
func New(d Deps) *App {
	if d.Scheduler == nil {
		if d.Config.RevealDelay > 0 {
			d.Scheduler = render.NewRealtime()
		} else {
			d.Scheduler = &render.Immediate{}
		}
	}
	term := render.NewTerminal(d.Out, !d.Config.NoColor)
	a := &App{
		d:       d,
		term:    term,
		console: NewConsole(term, d.Config.Topics),
	}
	a.login = &auth.LoginController{API: d.Client, Out: a.console, Pages: d.Router}
	a.register = &auth.RegisterController{API: d.Client, Out: a.console, Pages: d.Router}
	a.game = a.newGame()
	a.pages = map[string]map[string]*Command{
		auth.PageLogin:     a.loginCommands(),
		auth.PageRegister:  a.registerCommands(),
		auth.PageDashboard: a.dashboardCommands(),
	}
	return a
}

func (a *App) newGame() *game.Controller {
	return game.NewController(game.Deps{
		API:        a.d.Client,
		Display:    a.console,
		Scheduler:  a.d.Scheduler,
		Tokens:     a.d.Client.Tokens(),
		Navigator:  a.d.Router,
		RevealStep: a.d.Config.RevealDelay,
	})
}

// Run reads and dispatches lines until quit or end of input.
func (a *App) Run(ctx context.Context) error {
	for {
		a.enter(ctx)
		line, err := a.d.Prompt.ReadLine(a.prompt())
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		a.term.Detach()
		if err := a.Dispatch(ctx, line); errors.Is(err, errQuit) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// Dispatch runs line against the current page. Errors have already been
// shown to the user; they are returned for callers that care.
func (a *App) Dispatch(ctx context.Context, line string) error {
	a.enter(ctx)
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name := strings.ToLower(fields[0])
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	page, _ := a.d.Router.Page()
	cmd, ok := a.pages[page][name]
	if !ok {
		if page == auth.PageDashboard && len(fields) == 1 && a.looksLikeGuess(fields[0]) {
			return a.guess(ctx, fields[0])
		}
		a.console.Alert(fmt.Sprintf("Unknown command %q. Type 'help'.", fields[0]))
		return nil
	}
	err := cmd.Run(ctx, rest)
	if err != nil && !errors.Is(err, errQuit) {
		log.Debug().Err(err).Str("page", page).Str("cmd", name).Msg("command failed")
	}
	a.enter(ctx)
	return err
}

// enter runs page entry actions for every navigation since the last call.
func (a *App) enter(ctx context.Context) {
	for a.d.Router.entered() {
		page, flags := a.d.Router.Page()
		a.d.Prompt.SetCompletions(a.completions(page))
		switch page {
		case auth.PageLogin:
			a.game = a.newGame()
			if n := auth.Notice(flags); n != "" {
				a.console.Say(n)
			}
			a.console.Say("Log in with 'login <email>' or create an account with 'register'.")
		case auth.PageRegister:
			a.console.Say("Type 'submit' to fill in the registration form, 'back' to return.")
		case auth.PageDashboard:
			a.game = a.newGame()
			if tok, _ := a.d.Client.Tokens().Token(ctx); tok != "" {
				if sub := api.TokenSubject(tok); sub != "" {
					a.console.Say("Logged in as %s.", sub)
				}
			}
			_ = a.game.Bootstrap(ctx)
		}
	}
}

func (a *App) prompt() string {
	page, _ := a.d.Router.Page()
	if page == auth.PageDashboard {
		snap := a.game.Snapshot()
		if snap.Session != nil && snap.View == game.ViewPlaying {
			return fmt.Sprintf("codewordle %d/%d» ", snap.Session.CurrentAttempt+1, snap.Session.MaxAttempts)
		}
	}
	return "codewordle:" + page + "» "
}

func (a *App) completions(page string) ([]string, map[string][]string) {
	cmds := make([]string, 0, len(a.pages[page]))
	for name := range a.pages[page] {
		cmds = append(cmds, name)
	}
	sort.Strings(cmds)
	args := map[string][]string{}
	if page == auth.PageDashboard {
		args["start"] = a.d.Config.Topics
	}
	return cmds, args
}

func (a *App) looksLikeGuess(word string) bool {
	snap := a.game.Snapshot()
	if snap.Session == nil || snap.View != game.ViewPlaying {
		return false
	}
	if len([]rune(word)) != snap.Session.WordLength {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func (a *App) help(page string) Handler {
	return func(ctx context.Context, args string) error {
		cmds, _ := a.completions(page)
		for _, name := range cmds {
			c := a.pages[page][name]
			a.console.Say("  %-18s %s", c.Usage, c.Help)
		}
		return nil
	}
}

func quit(ctx context.Context, args string) error { return errQuit }
