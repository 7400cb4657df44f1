// internal/render/grid.go
//
// Guess grid model.
// A Grid has MaxAttempts rows of WordLength cells. Each cell is two-sided:
// the front shows the typed letter as soon as a guess is written, the back
// shows the outcome once the cell has been flipped.

package render

import "sync"

// Outcome is the colour of a cell's back side.
type Outcome int

const (
	Pending   Outcome = iota // not evaluated yet
	Exact                    // right letter, right place
	Misplaced                // in the word, elsewhere
	Absent                   // not in the word
)

func (o Outcome) String() string {
	switch o {
	case Exact:
		return "exact"
	case Misplaced:
		return "misplaced"
	case Absent:
		return "absent"
	default:
		return "pending"
	}
}

// Cell is one tile.
type Cell struct {
	Front   string
	Back    Outcome
	Flipped bool
}

// Row is one attempt. Locked rows already hold a submitted guess.
type Row struct {
	Cells  []Cell
	Locked bool
}

// Grid is safe for concurrent use; reveal tasks flip cells from timer
// goroutines while the REPL redraws.
type Grid struct {
	mu   sync.Mutex
	rows []Row
}

// NewGrid builds an empty wordLength × maxAttempts grid.
func NewGrid(wordLength, maxAttempts int) *Grid {
	rows := make([]Row, maxAttempts)
	for i := range rows {
		rows[i].Cells = make([]Cell, wordLength)
	}
	return &Grid{rows: rows}
}

// Dims returns (wordLength, maxAttempts).
func (g *Grid) Dims() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.rows) == 0 {
		return 0, 0
	}
	return len(g.rows[0].Cells), len(g.rows)
}

// Write puts letters on the fronts of row and locks it. Out-of-range rows
// and extra letters are ignored.
func (g *Grid) Write(row int, letters []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if row < 0 || row >= len(g.rows) {
		return
	}
	r := &g.rows[row]
	for i := 0; i < len(letters) && i < len(r.Cells); i++ {
		r.Cells[i].Front = letters[i]
	}
	r.Locked = true
}

// Flip turns cell (row, col) over to show o.
func (g *Grid) Flip(row, col int, o Outcome) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if row < 0 || row >= len(g.rows) || col < 0 || col >= len(g.rows[row].Cells) {
		return
	}
	c := &g.rows[row].Cells[col]
	c.Back = o
	c.Flipped = true
}

// Rows returns a deep copy of the grid.
func (g *Grid) Rows() []Row {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Row, len(g.rows))
	for i, r := range g.rows {
		out[i] = Row{Cells: append([]Cell(nil), r.Cells...), Locked: r.Locked}
	}
	return out
}

// Settled reports whether every written cell has been flipped.
func (g *Grid) Settled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range g.rows {
		if !r.Locked {
			continue
		}
		for _, c := range r.Cells {
			if !c.Flipped {
				return false
			}
		}
	}
	return true
}
