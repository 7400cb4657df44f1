// internal/game/controller.go
//
// Game page controller.
// Responsibilities:
//   - Bootstrap: resume the server's active game or show topic selection.
//   - Start: begin a game on a topic and build a fresh grid.
//   - SubmitGuess: Idle → Submitting → (Idle | Terminal), one guess in flight.
//   - PlayAgain / Logout.
//
// Notes:
//   - The server's gameStatus decides when a game is over. Reaching
//     MaxAttempts locally also locks input in case the server disagrees.
//   - A Terminal session never unlocks, whatever happens to requests that
//     were still in flight.
//   - Results of a request that outlived its session (PlayAgain or Start
//     happened meanwhile) are dropped.

package game

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/EmmanuelRendon01/CodeWordle/internal/api"
	"github.com/EmmanuelRendon01/CodeWordle/internal/render"
	"github.com/EmmanuelRendon01/CodeWordle/internal/tokenstore"
)

// API is the part of *api.Client the controller needs.
type API interface {
	ActiveGame(ctx context.Context) (*api.ActiveGame, error)
	StartGame(ctx context.Context, topic string) (*api.GameState, error)
	Guess(ctx context.Context, id api.GameID, word string) (*api.GuessResult, error)
}

// Display is where the controller shows things.
type Display interface {
	Draw(g *render.Grid)
	ShowView(v View)
	ShowResult(status api.GameStatus, correctWord string)
	Alert(msg string)
}

// Navigator leaves the current page.
type Navigator interface {
	Navigate(page string, flags ...string)
}

// Deps are the collaborators of a Controller.
type Deps struct {
	API        API
	Display    Display
	Scheduler  render.Scheduler
	Tokens     tokenstore.Store
	Navigator  Navigator
	RevealStep time.Duration // delay between tile flips
}

// Controller owns the game state of one game page visit.
type Controller struct {
	d Deps

	mu   sync.Mutex
	view View
	sess *Session
	grid *render.Grid
}

// NewController creates a controller showing topic selection.
func NewController(d Deps) *Controller {
	if d.Scheduler == nil {
		d.Scheduler = &render.Immediate{}
	}
	return &Controller{d: d, view: ViewTopics}
}

// Bootstrap reconciles local state with the server's active game. A 204
// yields topic selection. Errors are returned for logging only: the view
// is left as it was and session expiry has already been handled by the
// API client.
func (c *Controller) Bootstrap(ctx context.Context) error {
	g, err := c.d.API.ActiveGame(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("active game check failed")
		return err
	}
	if g == nil {
		c.mu.Lock()
		c.sess, c.grid, c.view = nil, nil, ViewTopics
		c.mu.Unlock()
		c.d.Display.ShowView(ViewTopics)
		return nil
	}

	s := &Session{
		GameID:      g.GameID,
		WordLength:  g.WordLength,
		MaxAttempts: g.MaxAttempts,
		Status:      api.GameInProgress,
	}
	grid := render.NewGrid(s.WordLength, s.MaxAttempts)
	for i, fb := range g.PreviousGuesses {
		if i >= s.MaxAttempts {
			break
		}
		letters, outcomes := split(fb, "")
		grid.Write(i, letters)
		for j, o := range outcomes {
			grid.Flip(i, j, o)
		}
		s.CurrentAttempt++
	}
	s.RemainingAttempts = s.MaxAttempts - s.CurrentAttempt
	if s.CurrentAttempt >= s.MaxAttempts {
		s.Terminal, s.Submitting = true, true
	}
	log.Info().Str("gameId", s.GameID.String()).Int("attempt", s.CurrentAttempt).Msg("resuming active game")

	c.mu.Lock()
	c.sess, c.grid, c.view = s, grid, ViewPlaying
	c.mu.Unlock()

	c.d.Display.ShowView(ViewPlaying)
	c.d.Display.Draw(grid)
	return nil
}

// Start begins a game on topic. On failure the previous view is kept.
func (c *Controller) Start(ctx context.Context, topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		c.d.Display.Alert("Choose a topic first.")
		return errors.New("empty topic")
	}
	st, err := c.d.API.StartGame(ctx, topic)
	if err != nil {
		c.alert("Could not start the game. Try again.", err)
		return err
	}

	s := &Session{
		GameID:            st.GameID,
		WordLength:        st.WordLength,
		MaxAttempts:       st.MaxAttempts,
		Status:            api.GameInProgress,
		RemainingAttempts: st.MaxAttempts,
	}
	grid := render.NewGrid(s.WordLength, s.MaxAttempts)

	c.mu.Lock()
	c.sess, c.grid, c.view = s, grid, ViewPlaying
	c.mu.Unlock()

	log.Info().Str("gameId", s.GameID.String()).Str("topic", topic).Msg("game started")
	c.d.Display.ShowView(ViewPlaying)
	c.d.Display.Draw(grid)
	return nil
}

// SubmitGuess sends word for the current game. Guard failures (ErrNoGame,
// ErrBusy, ErrLength, ErrLocked) return without any network call.
func (c *Controller) SubmitGuess(ctx context.Context, word string) error {
	word = strings.ToUpper(strings.TrimSpace(word))

	c.mu.Lock()
	s, grid := c.sess, c.grid
	if s == nil || c.view != ViewPlaying {
		c.mu.Unlock()
		return ErrNoGame
	}
	if err := s.accepts(word); err != nil {
		c.mu.Unlock()
		return err
	}
	s.Submitting = true
	id, row := s.GameID, s.CurrentAttempt
	c.mu.Unlock()

	res, err := c.d.API.Guess(ctx, id, word)

	c.mu.Lock()
	if c.sess != s {
		c.mu.Unlock()
		log.Debug().Str("gameId", id.String()).Msg("dropping guess result of a discarded session")
		return err
	}
	if err != nil {
		if !s.Terminal {
			s.Submitting = false
		}
		c.mu.Unlock()
		c.alert("Could not submit the guess.", err)
		return err
	}

	s.CurrentAttempt++
	s.Status = res.GameStatus
	s.RemainingAttempts = res.RemainingAttempts
	over := res.GameStatus.Terminal() || s.CurrentAttempt >= s.MaxAttempts
	if over {
		s.Terminal = true
		s.CorrectWord = res.CorrectWord
	} else {
		s.Submitting = false
	}
	wordLength := s.WordLength
	c.mu.Unlock()

	letters, outcomes := split(res.Feedback, word)
	if len(letters) == 0 {
		letters = strings.Split(word, "")
	}
	grid.Write(row, letters)
	c.d.Display.Draw(grid)

	tasks := render.RevealTasks(grid, row, outcomes, c.d.RevealStep, func() { c.d.Display.Draw(grid) })
	if over {
		tasks = append(tasks, render.Task{
			Index: len(tasks),
			Delay: render.GameOverDelay(wordLength, c.d.RevealStep),
			Apply: func() { c.finish(s, res.GameStatus, res.CorrectWord) },
		})
	}
	c.d.Scheduler.Schedule(tasks...)
	return nil
}

// finish switches to the game-over view if s is still the current session.
func (c *Controller) finish(s *Session, status api.GameStatus, word string) {
	c.mu.Lock()
	if c.sess != s {
		c.mu.Unlock()
		return
	}
	c.view = ViewGameOver
	c.mu.Unlock()

	if !status.Terminal() {
		c.d.Display.Alert("No attempts left.")
	}
	c.d.Display.ShowView(ViewGameOver)
	c.d.Display.ShowResult(status, word)
}

// PlayAgain discards the local session and returns to topic selection.
// The server-side game is left alone.
func (c *Controller) PlayAgain() {
	c.mu.Lock()
	c.sess, c.grid, c.view = nil, nil, ViewTopics
	c.mu.Unlock()
	c.d.Display.ShowView(ViewTopics)
}

// Logout forgets the token and goes to the login page.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.sess, c.grid, c.view = nil, nil, ViewTopics
	c.mu.Unlock()
	if err := c.d.Tokens.Clear(ctx); err != nil {
		return err
	}
	c.d.Navigator.Navigate("login")
	return nil
}

// Redraw draws the current grid, if any.
func (c *Controller) Redraw() {
	c.mu.Lock()
	g := c.grid
	c.mu.Unlock()
	if g != nil {
		c.d.Display.Draw(g)
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{View: c.view}
	if c.sess != nil {
		cp := *c.sess
		snap.Session = &cp
		snap.InputEnabled = c.view == ViewPlaying && !cp.Submitting && !cp.Terminal
	}
	if c.grid != nil {
		snap.Rows = c.grid.Rows()
	}
	return snap
}

// Wait blocks until scheduled reveal effects have run.
func (c *Controller) Wait() { c.d.Scheduler.Wait() }

// alert tells the user about err. Session problems are silent: the API
// client has already redirected to login.
func (c *Controller) alert(generic string, err error) {
	switch {
	case errors.Is(err, api.ErrNoToken), errors.Is(err, api.ErrSessionExpired):
		return
	case errors.Is(err, api.ErrUnreachable):
		c.d.Display.Alert(generic + " The server could not be reached.")
	default:
		if msg := api.Message(err); msg != "" {
			c.d.Display.Alert(generic + " " + msg)
			return
		}
		c.d.Display.Alert(generic)
	}
}
