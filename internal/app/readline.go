package app

import (
	"io"
	"os"
	"path/filepath"

	rl "github.com/chzyer/readline"
)

// LineReader is the readline-backed Prompter.
type LineReader struct {
	l *rl.Instance
}

// NewLineReader opens the terminal with history kept in historyFile
// ("" disables history).
func NewLineReader(historyFile string) (*LineReader, error) {
	if historyFile != "" {
		if err := os.MkdirAll(filepath.Dir(historyFile), 0o700); err != nil {
			return nil, err
		}
	}
	l, err := rl.NewEx(&rl.Config{
		Prompt:            "» ",
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, err
	}
	return &LineReader{l: l}, nil
}

// ReadLine reads one line. ^C on an empty line ends input like ^D; ^C
// with text discards the line.
func (r *LineReader) ReadLine(prompt string) (string, error) {
	r.l.SetPrompt(prompt)
	line, err := r.l.Readline()
	if err == rl.ErrInterrupt {
		if len(line) == 0 {
			return "", io.EOF
		}
		return "", nil
	}
	return line, err
}

func (r *LineReader) ReadPassword(prompt string) (string, error) {
	b, err := r.l.ReadPassword(prompt)
	if err == rl.ErrInterrupt {
		return "", io.EOF
	}
	return string(b), err
}

// SetCompletions replaces the tab completer.
func (r *LineReader) SetCompletions(cmds []string, args map[string][]string) {
	items := make([]rl.PrefixCompleterInterface, 0, len(cmds))
	for _, c := range cmds {
		var children []rl.PrefixCompleterInterface
		for _, a := range args[c] {
			children = append(children, rl.PcItem(a))
		}
		items = append(items, rl.PcItem(c, children...))
	}
	r.l.Config.AutoComplete = rl.NewPrefixCompleter(items...)
}

// Stdout writes above the prompt without garbling it.
func (r *LineReader) Stdout() io.Writer { return r.l.Stdout() }

func (r *LineReader) Close() error { return r.l.Close() }
