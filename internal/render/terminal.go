package render

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

const (
	reset    = "\033[0m"
	bold     = "\033[1m"
	bgGreen  = "\033[42;30m"
	bgYellow = "\033[43;30m"
	bgGrey   = "\033[100;37m"
	fgDimmed = "\033[2m"
	clearLn  = "\033[2K"
)

func col(o Outcome) string {
	switch o {
	case Exact:
		return bgGreen
	case Misplaced:
		return bgYellow
	case Absent:
		return bgGrey
	default:
		return bold
	}
}

// Terminal draws grids as text. With colour off, outcomes are written as
// marks after each letter: '=' exact, '~' misplaced, '.' absent.
//
// In colour mode a grid drawn right after another one overwrites it, so
// reveals animate in place.
type Terminal struct {
	mu    sync.Mutex
	w     io.Writer
	color bool

	gridLines int // lines of the last Draw, 0 once anything else is written
}

// NewTerminal returns a Terminal writing to w.
func NewTerminal(w io.Writer, color bool) *Terminal {
	return &Terminal{w: w, color: color}
}

// Color reports whether ANSI colours are used.
func (t *Terminal) Color() bool { return t.color }

// Draw writes the whole grid.
func (t *Terminal) Draw(g *Grid) {
	rows := g.Rows()

	t.mu.Lock()
	defer t.mu.Unlock()
	var b strings.Builder
	overwrite := t.color && t.gridLines == len(rows)
	if overwrite {
		fmt.Fprintf(&b, "\033[%dA", len(rows))
	}
	for _, r := range rows {
		if overwrite {
			b.WriteString(clearLn)
		}
		b.WriteString("  ")
		for _, c := range r.Cells {
			b.WriteString(t.cell(c, r.Locked))
		}
		b.WriteByte('\n')
	}
	_, _ = io.WriteString(t.w, b.String())
	t.gridLines = len(rows)
}

// Line writes a single line of text.
func (t *Terminal) Line(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, format+"\n", args...)
	t.gridLines = 0
}

// Detach forgets the last grid, e.g. after the user typed a line.
func (t *Terminal) Detach() {
	t.mu.Lock()
	t.gridLines = 0
	t.mu.Unlock()
}

func (t *Terminal) cell(c Cell, locked bool) string {
	letter := c.Front
	if letter == "" {
		letter = " "
	}
	if !t.color {
		mark := " "
		if c.Flipped {
			mark = map[Outcome]string{Exact: "=", Misplaced: "~", Absent: "."}[c.Back]
		}
		return "[" + letter + mark + "]"
	}
	switch {
	case c.Flipped:
		return col(c.Back) + " " + letter + " " + reset + " "
	case locked:
		return bold + "[" + letter + "]" + reset + " "
	default:
		return fgDimmed + "[" + letter + "]" + reset + " "
	}
}
