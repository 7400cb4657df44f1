// internal/stubserver/engine/engine.go
//
// Server-side game engine used by the stub API.
// Responsibilities:
//   - Create games for an owner with a fixed attempt budget (6).
//   - Validate and apply guesses (finished games, length).
//   - Score guesses with the two-pass algorithm so repeated letters are
//     claimed at most once.
//   - Track IN_PROGRESS → WON | LOST.

package engine

import (
	"errors"
	"strings"
	"time"
)

// MaxAttempts is the guess budget of every game.
const MaxAttempts = 6

// Status is the lifecycle of a game.
type Status string

const (
	InProgress Status = "IN_PROGRESS"
	Won        Status = "WON"
	Lost       Status = "LOST"
)

// Verdict is the evaluation of one letter.
type Verdict string

const (
	CorrectPosition Verdict = "CORRECT_POSITION"
	WrongPosition   Verdict = "WRONG_POSITION"
	Incorrect       Verdict = "INCORRECT"
)

// Letter pairs a guessed letter with its verdict.
type Letter struct {
	Letter  string  `json:"letter"`
	Verdict Verdict `json:"status"`
}

var (
	ErrNotInProgress = errors.New("game is not in progress")
	ErrLength        = errors.New("guess has an incorrect length")
)

// Game holds the state of a single game.
type Game struct {
	ID        int64
	Owner     string // account email
	Topic     string
	Answer    string // upper-case
	Guesses   []string
	Status    Status
	StartedAt time.Time
	EndedAt   time.Time
}

// New constructs an in-progress game. The ID is assigned by the store.
func New(owner, topic, answer string) *Game {
	return &Game{
		Owner:     owner,
		Topic:     topic,
		Answer:    strings.ToUpper(answer),
		Guesses:   []string{},
		Status:    InProgress,
		StartedAt: time.Now().UTC(),
	}
}

// WordLength is the number of letters of the answer.
func (g *Game) WordLength() int { return len([]rune(g.Answer)) }

// Remaining is the number of guesses still allowed.
func (g *Game) Remaining() int { return MaxAttempts - len(g.Guesses) }

// ApplyGuess scores guess, records it and updates the status.
func (g *Game) ApplyGuess(guess string) ([]Letter, error) {
	if g.Status != InProgress {
		return nil, ErrNotInProgress
	}
	guess = strings.ToUpper(strings.TrimSpace(guess))
	if len([]rune(guess)) != g.WordLength() {
		return nil, ErrLength
	}

	g.Guesses = append(g.Guesses, guess)
	letters := Score(g.Answer, guess)

	switch {
	case guess == g.Answer:
		g.Status = Won
	case len(g.Guesses) >= MaxAttempts:
		g.Status = Lost
	}
	if g.Status != InProgress {
		g.EndedAt = time.Now().UTC()
	}
	return letters, nil
}

// History re-scores every recorded guess, oldest first.
func (g *Game) History() [][]Letter {
	out := make([][]Letter, 0, len(g.Guesses))
	for _, guess := range g.Guesses {
		out = append(out, Score(g.Answer, guess))
	}
	return out
}

// Score evaluates guess against answer (both upper-case, same length).
//
// Pass 1 marks exact matches and counts the answer letters left unmatched.
// Pass 2 marks a remaining guess letter WrongPosition while unmatched
// copies of it remain, Incorrect otherwise.
func Score(answer, guess string) []Letter {
	a, gr := []rune(answer), []rune(guess)
	res := make([]Letter, len(gr))
	counts := make(map[rune]int, len(a))

	for i, r := range gr {
		res[i].Letter = string(r)
		if i < len(a) && r == a[i] {
			res[i].Verdict = CorrectPosition
		} else if i < len(a) {
			counts[a[i]]++
		}
	}
	for i, r := range gr {
		if res[i].Verdict == CorrectPosition {
			continue
		}
		if counts[r] > 0 {
			res[i].Verdict = WrongPosition
			counts[r]--
		} else {
			res[i].Verdict = Incorrect
		}
	}
	return res
}
