// Package modes holds the command line: the session it runs against, the
// dispatcher that turns a line into a Result, and the line editor that
// collects keystrokes while in command mode.
package modes

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/lixenwraith/photowall/constants"
)

// Session is the state commands run against
// Not safe for concurrent use; owned by the frame goroutine
type Session struct {
	cwd        string
	fs         map[string][]string
	history    []string
	maxHistory int
	now        func() time.Time
	user       string
}

// NewSession starts at the filesystem root with an empty history
func NewSession() *Session {
	return &Session{
		cwd: "/",
		fs: map[string][]string{
			"/":               {"home", "projects", "about.txt"},
			"/home":           {"documents", "pictures"},
			"/projects":       {"web-terminal", "portfolio", "blog"},
			"/home/documents": {"resume.pdf", "notes.txt"},
		},
		maxHistory: constants.MaxHistory,
		now:        time.Now,
		user:       "user",
	}
}

// Cwd returns the current directory
func (s *Session) Cwd() string {
	return s.cwd
}

// History returns a copy of the recorded command lines, oldest first
func (s *Session) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Record appends a non-blank line to the history, dropping the oldest
// entry beyond the cap
func (s *Session) Record(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	s.history = append(s.history, line)
	if over := len(s.history) - s.maxHistory; over > 0 {
		s.history = append(s.history[:0], s.history[over:]...)
	}
}

// Resolve turns p into an absolute path relative to the current directory
func (s *Session) Resolve(p string) string {
	if p == "" {
		return s.cwd
	}
	if !strings.HasPrefix(p, "/") {
		p = s.cwd + "/" + p
	}
	return path.Clean(p)
}

// List returns the entries of directory p
func (s *Session) List(p string) ([]string, error) {
	target := s.Resolve(p)
	entries, ok := s.fs[target]
	if !ok {
		return nil, fmt.Errorf("ls: cannot access '%s': No such file or directory", target)
	}
	return entries, nil
}

// Chdir changes the current directory; an empty path returns to the root
func (s *Session) Chdir(p string) error {
	if p == "" {
		s.cwd = "/"
		return nil
	}
	target := s.Resolve(p)
	if _, ok := s.fs[target]; !ok {
		return fmt.Errorf("cd: no such directory: %s", p)
	}
	s.cwd = target
	return nil
}
