// internal/api/types.go
//
// Wire types for the CodeWordle HTTP API.
// Defines:
//   - FeedbackStatus: per-letter evaluation of a guess.
//   - GameStatus: lifecycle of a server-side game.
//   - GameID: game identifier, a JSON number on the wire.
//   - Request/response payloads for the auth and game endpoints.

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FeedbackStatus is the server's verdict for one letter of a guess.
type FeedbackStatus string

const (
	StatusCorrectPosition FeedbackStatus = "CORRECT_POSITION" // right letter, right place
	StatusWrongPosition   FeedbackStatus = "WRONG_POSITION"   // in the word, elsewhere
	StatusIncorrect       FeedbackStatus = "INCORRECT"        // not in the word
)

// GameStatus is the state of a game as reported by the server.
type GameStatus string

const (
	GameInProgress GameStatus = "IN_PROGRESS"
	GameWon        GameStatus = "WON"
	GameLost       GameStatus = "LOST"
)

// Terminal reports whether no further guesses are accepted.
func (s GameStatus) Terminal() bool { return s != GameInProgress }

// GameID identifies a game. The server sends a number; strings are accepted
// too so the client does not care how the id is generated.
type GameID string

func (id *GameID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = GameID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("gameId: %w", err)
	}
	*id = GameID(n.String())
	return nil
}

func (id GameID) String() string { return string(id) }

// LetterFeedback is one letter of an evaluated guess.
type LetterFeedback struct {
	Letter string         `json:"letter"`
	Status FeedbackStatus `json:"status"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Registration is the new-account form.
type Registration struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type startRequest struct {
	Topic string `json:"topic"`
}

// GameState is returned when a game starts.
type GameState struct {
	GameID      GameID `json:"gameId"`
	WordLength  int    `json:"wordLength"`
	MaxAttempts int    `json:"maxAttempts"`
}

// ActiveGame is an in-progress game with the feedback of every guess so far,
// oldest first.
type ActiveGame struct {
	GameState
	PreviousGuesses [][]LetterFeedback `json:"previousGuesses"`
}

type guessRequest struct {
	Word string `json:"word"`
}

// GuessResult is the evaluation of one guess. CorrectWord is only set once
// the game is over.
type GuessResult struct {
	GameStatus        GameStatus       `json:"gameStatus"`
	Feedback          []LetterFeedback `json:"feedback"`
	RemainingAttempts int              `json:"remainingAttempts"`
	CorrectWord       string           `json:"correctWord,omitempty"`
}
