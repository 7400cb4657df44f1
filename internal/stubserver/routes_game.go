// internal/stubserver/routes_game.go
//
// Game routes, mounted under /api/games behind requireAuth:
//   - GET  /active      → in-progress game with previous feedback, or 204
//   - POST /start       → start a game on a topic (one active game per user)
//   - POST /{id}/guess  → score a guess for the caller's game

package stubserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/EmmanuelRendon01/CodeWordle/internal/stubserver/engine"
)

type gameStateRes struct {
	GameID      int64 `json:"gameId"`
	WordLength  int   `json:"wordLength"`
	MaxAttempts int   `json:"maxAttempts"`
}

type activeGameRes struct {
	gameStateRes
	PreviousGuesses [][]engine.Letter `json:"previousGuesses"`
}

type startReq struct {
	Topic string `json:"topic"`
}

type guessReq struct {
	Word string `json:"word"`
}

type guessRes struct {
	GameStatus        engine.Status   `json:"gameStatus"`
	Feedback          []engine.Letter `json:"feedback"`
	RemainingAttempts int             `json:"remainingAttempts"`
	CorrectWord       string          `json:"correctWord,omitempty"`
}

func stateOf(g *engine.Game) gameStateRes {
	return gameStateRes{GameID: g.ID, WordLength: g.WordLength(), MaxAttempts: engine.MaxAttempts}
}

func (s *Server) handleActive(w http.ResponseWriter, r *http.Request) {
	s.play.Lock()
	defer s.play.Unlock()

	g, err := s.games.Active(r.Context(), currentEmail(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store_failed", "Could not load games.")
		return
	}
	if g == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, activeGameRes{gameStateRes: stateOf(g), PreviousGuesses: g.History()})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Topic) == "" {
		writeError(w, http.StatusBadRequest, "validation", "Topic cannot be blank")
		return
	}
	owner := currentEmail(r)

	s.play.Lock()
	defer s.play.Unlock()

	if g, _ := s.games.Active(r.Context(), owner); g != nil {
		writeError(w, http.StatusConflict, "in_progress", "User already has a game in progress.")
		return
	}
	answer, ok := s.cfg.PickWord(req.Topic)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_topic", "No words found for the topic: "+req.Topic)
		return
	}
	g := engine.New(owner, req.Topic, answer)
	if err := s.games.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed", "Could not save the game.")
		return
	}
	log.Debug().Int64("gameId", g.ID).Str("topic", g.Topic).Msg("game started")
	writeJSON(w, http.StatusOK, stateOf(g))
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_id", "Game id must be a number.")
		return
	}
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Word) == "" {
		writeError(w, http.StatusBadRequest, "validation", "Guessed word cannot be blank")
		return
	}

	s.play.Lock()
	defer s.play.Unlock()

	g, err := s.games.Get(r.Context(), id)
	if err != nil || g.Owner != currentEmail(r) {
		writeError(w, http.StatusNotFound, "not_found", "Game not found with id: "+strconv.FormatInt(id, 10))
		return
	}
	letters, err := g.ApplyGuess(req.Word)
	switch {
	case errors.Is(err, engine.ErrNotInProgress):
		writeError(w, http.StatusConflict, "finished", "Game is not in progress. Its status is "+string(g.Status))
		return
	case errors.Is(err, engine.ErrLength):
		writeError(w, http.StatusBadRequest, "length",
			"Guess has an incorrect length. Expected "+strconv.Itoa(g.WordLength())+" but got "+strconv.Itoa(len([]rune(req.Word))))
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, "invalid", err.Error())
		return
	}
	if err := s.games.Save(r.Context(), g); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed", "Could not save the game.")
		return
	}

	res := guessRes{GameStatus: g.Status, Feedback: letters, RemainingAttempts: g.Remaining()}
	if g.Status != engine.InProgress {
		res.CorrectWord = g.Answer
	}
	writeJSON(w, http.StatusOK, res)
}
