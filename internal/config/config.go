// internal/config/config.go
//
// Runtime configuration for the codewordle client and the local stub server.
// Values come from the process environment; main loads a .env file first
// (godotenv), so both sources work the same way.
//
// Environment variables:
//   WORDLE_API_URL       base URL of the game API (default http://localhost:8080)
//   WORDLE_TOKEN_DB      sqlite file holding the session token (":memory:" = no file)
//   WORDLE_TOKEN_KEY     optional passphrase used to seal the stored token
//   WORDLE_HTTP_TIMEOUT  per-request timeout (default 15s, 0 disables)
//   WORDLE_REVEAL_DELAY  delay between tile flips (default 250ms)
//   WORDLE_TOPICS        comma separated topics offered by "topics"
//   WORDLE_HISTORY_FILE  readline history file
//   LOG_LEVEL            zerolog level
//   NO_COLOR             disables ANSI colours when set
//   PORT                 stub server port (default 8080)

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config is the resolved client configuration.
type Config struct {
	APIURL      string
	TokenDB     string
	TokenKey    string
	HTTPTimeout time.Duration
	RevealDelay time.Duration
	Topics      []string
	HistoryFile string
	LogLevel    string
	NoColor     bool
	Port        string
}

const (
	defaultAPIURL      = "http://localhost:8080"
	defaultTopics      = "Java,Spring,SQL,Git,Docker"
	defaultHTTPTimeout = 15 * time.Second
	defaultRevealDelay = 250 * time.Millisecond
)

// Load reads the configuration from the environment.
func Load() (Config, error) {
	c := Config{
		APIURL:      strings.TrimRight(getEnv("WORDLE_API_URL", defaultAPIURL), "/"),
		TokenDB:     expandHome(getEnv("WORDLE_TOKEN_DB", "~/.codewordle/session.db")),
		TokenKey:    os.Getenv("WORDLE_TOKEN_KEY"),
		Topics:      splitTopics(getEnv("WORDLE_TOPICS", defaultTopics)),
		HistoryFile: expandHome(getEnv("WORDLE_HISTORY_FILE", "~/.codewordle/history")),
		LogLevel:    getEnv("LOG_LEVEL", "warn"),
		NoColor:     os.Getenv("NO_COLOR") != "",
		Port:        getEnv("PORT", "8080"),
	}

	var err error
	if c.HTTPTimeout, err = durationEnv("WORDLE_HTTP_TIMEOUT", defaultHTTPTimeout); err != nil {
		return Config{}, err
	}
	if c.RevealDelay, err = durationEnv("WORDLE_REVEAL_DELAY", defaultRevealDelay); err != nil {
		return Config{}, err
	}
	if len(c.Topics) == 0 {
		return Config{}, fmt.Errorf("WORDLE_TOPICS: no topics configured")
	}
	return c, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func durationEnv(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: negative duration %s", k, v)
	}
	return d, nil
}

func splitTopics(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// expandHome replaces a leading "~/" with the user's home directory.
// Special sqlite names such as ":memory:" pass through untouched.
func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
