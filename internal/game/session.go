// internal/game/session.go
//
// Client view of a game.
// Defines:
//   - View: which part of the game page is showing.
//   - Session: the state reconciled from the server for one game.
//   - Snapshot: a read-only copy for display and tests.

package game

import (
	"errors"
	"strings"

	"github.com/EmmanuelRendon01/CodeWordle/internal/api"
	"github.com/EmmanuelRendon01/CodeWordle/internal/render"
)

// View is the visible section of the game page.
type View int

const (
	ViewTopics   View = iota // topic selection
	ViewPlaying              // grid + guess input
	ViewGameOver             // result and correct word
)

func (v View) String() string {
	switch v {
	case ViewPlaying:
		return "playing"
	case ViewGameOver:
		return "game over"
	default:
		return "topics"
	}
}

// Session holds the state of the game being played.
//
// Invariant: CurrentAttempt <= MaxAttempts. Once Terminal is set,
// Submitting stays true until the session is discarded.
type Session struct {
	GameID         api.GameID
	WordLength     int
	MaxAttempts    int
	CurrentAttempt int
	Submitting     bool

	Terminal          bool
	Status            api.GameStatus
	RemainingAttempts int
	CorrectWord       string
}

// accepts reports whether word may be submitted now.
func (s *Session) accepts(word string) error {
	switch {
	case s.Terminal:
		return ErrLocked
	case s.Submitting:
		return ErrBusy
	case len([]rune(word)) != s.WordLength:
		return ErrLength
	}
	return nil
}

// Snapshot is a copy of the controller state.
type Snapshot struct {
	View         View
	Session      *Session // nil on topic selection
	InputEnabled bool
	Rows         []render.Row
}

// Guard rejections. None of them reach the network.
var (
	ErrNoGame = errors.New("no game in progress")
	ErrBusy   = errors.New("a guess is already being submitted")
	ErrLength = errors.New("guess length does not match the word")
	ErrLocked = errors.New("the game is over")
)

// outcomeOf maps a server verdict onto a tile colour.
func outcomeOf(s api.FeedbackStatus) render.Outcome {
	switch s {
	case api.StatusCorrectPosition:
		return render.Exact
	case api.StatusWrongPosition:
		return render.Misplaced
	default:
		return render.Absent
	}
}

// split returns the letters and outcomes of a feedback row. Letters
// missing from the server answer are taken from fallback.
func split(fb []api.LetterFeedback, fallback string) ([]string, []render.Outcome) {
	fr := []rune(fallback)
	letters := make([]string, len(fb))
	outcomes := make([]render.Outcome, len(fb))
	for i, f := range fb {
		letters[i] = strings.ToUpper(f.Letter)
		if letters[i] == "" && i < len(fr) {
			letters[i] = string(fr[i])
		}
		outcomes[i] = outcomeOf(f.Status)
	}
	return letters, outcomes
}
