package app

import (
	"github.com/EmmanuelRendon01/CodeWordle/internal/api"
	"github.com/EmmanuelRendon01/CodeWordle/internal/game"
	"github.com/EmmanuelRendon01/CodeWordle/internal/render"
)

// Console implements game.Display and auth.Alerter on a terminal.
type Console struct {
	term   *render.Terminal
	topics []string
}

func NewConsole(term *render.Terminal, topics []string) *Console {
	return &Console{term: term, topics: topics}
}

// Draw writes g. Without colours only settled grids are drawn, once per
// guess instead of once per flip.
func (c *Console) Draw(g *render.Grid) {
	if !c.term.Color() && !g.Settled() {
		return
	}
	c.term.Draw(g)
}

func (c *Console) ShowView(v game.View) {
	switch v {
	case game.ViewTopics:
		c.Topics()
	case game.ViewPlaying:
		c.term.Line("Type a guess, or 'board' to see the grid.")
	}
}

// Topics lists the topics a game can be started on.
func (c *Console) Topics() {
	c.term.Line("Choose a topic with 'start <topic>':")
	for _, t := range c.topics {
		c.term.Line("  %s", t)
	}
}

func (c *Console) ShowResult(status api.GameStatus, correctWord string) {
	if status == api.GameWon {
		c.term.Line("Congratulations, you won!")
	} else {
		c.term.Line("You lost!")
	}
	if correctWord != "" {
		c.term.Line("The word was: %s", correctWord)
	}
	c.term.Line("Type 'again' to play another game.")
}

func (c *Console) Alert(msg string) { c.term.Line("! %s", msg) }

// Say writes an informational line.
func (c *Console) Say(format string, args ...any) { c.term.Line(format, args...) }
