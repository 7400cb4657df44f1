package store

import (
	"context"
	"errors"
	"testing"

	"github.com/EmmanuelRendon01/CodeWordle/internal/stubserver/engine"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	a := engine.New("a@x.io", "Git", "MERGE")
	b := engine.New("b@x.io", "Git", "STASH")
	for _, g := range []*engine.Game{a, b} {
		if err := s.Save(ctx, g); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	if a.ID == 0 || b.ID == 0 || a.ID == b.ID {
		t.Fatalf("ids not assigned: %d %d", a.ID, b.ID)
	}
	if got, err := s.Get(ctx, b.ID); err != nil || got != b {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if _, err := s.Get(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get unknown err = %v", err)
	}

	if g, _ := s.Active(ctx, "a@x.io"); g != a {
		t.Fatalf("Active = %v", g)
	}
	a.Status = engine.Won
	if err := s.Save(ctx, a); err != nil {
		t.Fatal(err)
	}
	if g, _ := s.Active(ctx, "a@x.io"); g != nil {
		t.Fatalf("finished game reported active: %v", g)
	}
}
