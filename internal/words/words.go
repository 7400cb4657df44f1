// internal/words/words.go
//
// Topic word lists for the stub API.
//
// Responsibilities:
//   - Load "topic word" entries from WORDS_TOPICS_FILE or the embedded
//     assets/topics.txt.
//   - Index words by topic (case-insensitive) for word selection.
//   - Supply Random, Words, Topics and Stats.
//
// Constraints:
//   • Words are upper-case A–Z; other entries are dropped.
//   • A topic keeps the spelling of its first entry for display.

package words

import (
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"sort"
	"strings"

	"github.com/EmmanuelRendon01/CodeWordle/assets"
)

// List is an immutable topic → words index.
type List struct {
	byTopic map[string][]string // keyed by lower-cased topic
	names   map[string]string   // lower-cased topic → display name
}

// Load reads WORDS_TOPICS_FILE when set, otherwise the embedded defaults.
// Returns an error if no usable word is found.
func Load() (*List, error) {
	var (
		entries []assets.TopicEntry
		err     error
	)
	if path := os.Getenv("WORDS_TOPICS_FILE"); path != "" {
		f, ferr := os.Open(path)
		if ferr != nil {
			return nil, ferr
		}
		defer f.Close()
		entries, err = assets.ParseTopics(f)
	} else {
		entries, err = assets.Topics()
	}
	if err != nil {
		return nil, err
	}
	l := New(entries)
	if len(l.byTopic) == 0 {
		return nil, errors.New("words: topic list is empty")
	}
	return l, nil
}

// New builds a List from entries, skipping duplicates and invalid words.
func New(entries []assets.TopicEntry) *List {
	l := &List{byTopic: map[string][]string{}, names: map[string]string{}}
	seen := map[string]struct{}{}
	for _, e := range entries {
		w := strings.ToUpper(strings.TrimSpace(e.Word))
		key := strings.ToLower(strings.TrimSpace(e.Topic))
		if key == "" || w == "" || !isAlpha(w) {
			continue
		}
		if _, dup := seen[key+"|"+w]; dup {
			continue
		}
		seen[key+"|"+w] = struct{}{}
		if _, ok := l.names[key]; !ok {
			l.names[key] = strings.TrimSpace(e.Topic)
		}
		l.byTopic[key] = append(l.byTopic[key], w)
	}
	return l
}

// isAlpha reports whether s is all upper-case ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Words returns the words of topic (nil if unknown).
func (l *List) Words(topic string) []string {
	return l.byTopic[strings.ToLower(strings.TrimSpace(topic))]
}

// Random returns a cryptographically random word of topic.
func (l *List) Random(topic string) (string, bool) {
	ws := l.Words(topic)
	if len(ws) == 0 {
		return "", false
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(ws))))
	if err != nil {
		return ws[0], true
	}
	return ws[n.Int64()], true
}

// Topics returns the display names of all topics, sorted.
func (l *List) Topics() []string {
	out := make([]string, 0, len(l.names))
	for _, n := range l.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Stats returns counts of loaded topics and words.
func (l *List) Stats() (topics int, words int) {
	for _, ws := range l.byTopic {
		words += len(ws)
	}
	return len(l.byTopic), words
}
