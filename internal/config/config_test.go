package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"WORDLE_API_URL", "WORDLE_TOPICS", "WORDLE_HTTP_TIMEOUT", "WORDLE_REVEAL_DELAY", "NO_COLOR"} {
		t.Setenv(k, "")
	}
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.APIURL != defaultAPIURL {
		t.Errorf("APIURL = %q", c.APIURL)
	}
	if c.HTTPTimeout != 15*time.Second || c.RevealDelay != 250*time.Millisecond {
		t.Errorf("durations = %v, %v", c.HTTPTimeout, c.RevealDelay)
	}
	if len(c.Topics) != 5 || c.Topics[0] != "Java" {
		t.Errorf("Topics = %v", c.Topics)
	}
	if c.NoColor {
		t.Error("NoColor should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WORDLE_API_URL", "http://example.test:9000/")
	t.Setenv("WORDLE_TOPICS", " Go , ,Rust ")
	t.Setenv("WORDLE_REVEAL_DELAY", "0s")
	t.Setenv("WORDLE_TOKEN_DB", ":memory:")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.APIURL != "http://example.test:9000" {
		t.Errorf("APIURL = %q, want trailing slash trimmed", c.APIURL)
	}
	if len(c.Topics) != 2 || c.Topics[0] != "Go" || c.Topics[1] != "Rust" {
		t.Errorf("Topics = %q", c.Topics)
	}
	if c.RevealDelay != 0 {
		t.Errorf("RevealDelay = %v", c.RevealDelay)
	}
	if c.TokenDB != ":memory:" {
		t.Errorf("TokenDB = %q", c.TokenDB)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("WORDLE_HTTP_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparsable duration")
	}
	t.Setenv("WORDLE_HTTP_TIMEOUT", "-1s")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative duration")
	}
}
