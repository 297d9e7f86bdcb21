package cache

import (
	"os"
	"path/filepath"
	"strings"
)

// Session holds the state shared across invocations within one shell
// session, currently just the most recent fuzzy-file match. It backs
// argument completion for the run/show commands.
type Session struct {
	Dir string // same storage directory as the snapshots
}

func (s *Session) path() string {
	return filepath.Join(s.Dir, "lastmatch")
}

// SetLastMatch records a successful fuzzy-file result. Never cleared;
// each successful query overwrites the previous one.
func (s *Session) SetLastMatch(match string) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path(), []byte(match+"\n"), 0644)
}

// LastMatch returns the recorded result, or ok false when no query has
// succeeded yet.
func (s *Session) LastMatch() (string, bool) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return "", false
	}
	match := strings.TrimRight(string(data), "\n")
	if match == "" {
		return "", false
	}
	return match, true
}
