package assets

import (
	"strings"
	"testing"
)

func TestParseTopics(t *testing.T) {
	got, err := ParseTopics(strings.NewReader("# comment\n\nGit  merge\nSQL\tjoin\n"))
	if err != nil {
		t.Fatalf("ParseTopics: %v", err)
	}
	if len(got) != 2 || got[0] != (TopicEntry{Topic: "Git", Word: "MERGE"}) || got[1].Word != "JOIN" {
		t.Fatalf("got %+v", got)
	}

	if _, err := ParseTopics(strings.NewReader("Git merge\nDocker\n")); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("err = %v", err)
	}
}

func TestEmbeddedTopics(t *testing.T) {
	entries, err := Topics()
	if err != nil {
		t.Fatalf("Topics: %v", err)
	}
	seen := map[string]bool{}
	for _, e := range entries {
		seen[e.Topic] = true
	}
	for _, want := range []string{"Java", "Spring", "SQL", "Git", "Docker"} {
		if !seen[want] {
			t.Errorf("topic %s missing", want)
		}
	}
}
