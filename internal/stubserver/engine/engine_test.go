package engine

import (
	"reflect"
	"testing"
)

func verdicts(ls []Letter) []Verdict {
	out := make([]Verdict, len(ls))
	for i, l := range ls {
		out[i] = l.Verdict
	}
	return out
}

func TestScore(t *testing.T) {
	C, W, I := CorrectPosition, WrongPosition, Incorrect
	tests := []struct {
		answer, guess string
		want          []Verdict
	}{
		{"CRANE", "CRANE", []Verdict{C, C, C, C, C}},
		{"CRATE", "CLANE", []Verdict{C, I, C, I, C}},
		{"CRANE", "NACRE", []Verdict{W, W, W, W, C}},
		// Only one E left unmatched after the exact hit.
		{"THEME", "EERIE", []Verdict{W, I, I, I, C}},
		{"ABBEY", "BABES", []Verdict{W, W, C, C, I}},
	}
	for _, tt := range tests {
		got := verdicts(Score(tt.answer, tt.guess))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Score(%s, %s) = %v, want %v", tt.answer, tt.guess, got, tt.want)
		}
	}
}

func TestApplyGuessWin(t *testing.T) {
	g := New("a@b.c", "Java", "class")
	if g.WordLength() != 5 {
		t.Fatalf("WordLength = %d", g.WordLength())
	}
	if _, err := g.ApplyGuess("cla"); err != ErrLength {
		t.Fatalf("short guess err = %v", err)
	}
	ls, err := g.ApplyGuess("class")
	if err != nil {
		t.Fatalf("ApplyGuess: %v", err)
	}
	if g.Status != Won || ls[0].Letter != "C" || g.EndedAt.IsZero() {
		t.Fatalf("status %s, letters %v", g.Status, ls)
	}
	if _, err := g.ApplyGuess("class"); err != ErrNotInProgress {
		t.Fatalf("guess after win err = %v", err)
	}
}

func TestApplyGuessLoss(t *testing.T) {
	g := New("a@b.c", "Java", "CLASS")
	for i := 0; i < MaxAttempts; i++ {
		if g.Status != InProgress {
			t.Fatalf("finished early after %d guesses", i)
		}
		if _, err := g.ApplyGuess("FINAL"); err != nil {
			t.Fatalf("guess %d: %v", i, err)
		}
	}
	if g.Status != Lost || g.Remaining() != 0 {
		t.Fatalf("status %s remaining %d", g.Status, g.Remaining())
	}
	if h := g.History(); len(h) != MaxAttempts || h[0][1].Verdict != Incorrect {
		t.Fatalf("History = %v", h)
	}
}
