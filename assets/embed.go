// Package assets embeds the default topic word list served by the stub API.
package assets

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"strings"
)

//go:embed topics.txt
var FS embed.FS

// TopicEntry is one "topic word" line.
type TopicEntry struct {
	Topic string
	Word  string
}

// ParseTopics reads "topic word" lines. Blank lines and lines starting with
// '#' are skipped; words are upper-cased.
func ParseTopics(r io.Reader) ([]TopicEntry, error) {
	var out []TopicEntry
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		fields := strings.Fields(s)
		if len(fields) != 2 {
			return nil, fmt.Errorf("topics line %d: want \"topic word\", got %q", line, s)
		}
		out = append(out, TopicEntry{Topic: fields[0], Word: strings.ToUpper(fields[1])})
	}
	return out, sc.Err()
}

// Topics returns the embedded topic list.
func Topics() ([]TopicEntry, error) {
	f, err := FS.Open("topics.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTopics(f)
}
