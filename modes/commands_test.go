package modes

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/photowall/constants"
	"github.com/lixenwraith/photowall/grid"
)

func newDispatcher() *Dispatcher {
	return NewDispatcher(NewSession())
}

func TestExecuteText(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"echo Hello   World", "Hello World"},
		{"pwd", "/"},
		{"whoami", "user"},
		{"ls", "home  projects  about.txt"},
		{"ls /home/documents", "resume.pdf  notes.txt"},
		{"ECHO loud", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			r := newDispatcher().Execute(tt.line)
			assert.Equal(t, KindText, r.Kind)
			assert.False(t, r.Err)
			assert.Equal(t, tt.want, r.Text)
		})
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	r := newDispatcher().Execute("frobnicate now")
	assert.True(t, r.Err)
	assert.Equal(t, "Command not found: frobnicate. Type 'help' to see available commands.", r.Text)
}

func TestExecuteBlankLine(t *testing.T) {
	d := newDispatcher()
	r := d.Execute("   ")
	assert.Equal(t, KindText, r.Kind)
	assert.Empty(t, r.Lines())
	assert.Empty(t, d.Session().History())
}

func TestDirectoryNavigation(t *testing.T) {
	d := newDispatcher()

	require.False(t, d.Execute("cd home").Err)
	assert.Equal(t, "/home", d.Execute("pwd").Text)
	assert.Equal(t, "documents  pictures", d.Execute("ls").Text)

	require.False(t, d.Execute("cd documents").Err)
	assert.Equal(t, "/home/documents", d.Session().Cwd())

	require.False(t, d.Execute("cd ..").Err)
	assert.Equal(t, "/home", d.Session().Cwd())

	require.False(t, d.Execute("cd ../projects").Err)
	assert.Equal(t, "/projects", d.Session().Cwd())

	r := d.Execute("cd nowhere")
	assert.True(t, r.Err)
	assert.Equal(t, "cd: no such directory: nowhere", r.Text)
	assert.Equal(t, "/projects", d.Session().Cwd(), "failed cd keeps cwd")

	r = d.Execute("ls /tmp")
	assert.True(t, r.Err)
	assert.Equal(t, "ls: cannot access '/tmp': No such file or directory", r.Text)

	require.False(t, d.Execute("cd").Err)
	assert.Equal(t, "/", d.Session().Cwd())

	require.False(t, d.Execute("cd ..").Err)
	assert.Equal(t, "/", d.Session().Cwd(), "parent of root is root")
}

func TestOpenAddsScheme(t *testing.T) {
	d := newDispatcher()

	r := d.Execute("open example.com")
	assert.Equal(t, KindNavigate, r.Kind)
	assert.Equal(t, "https://example.com", r.URL)
	assert.Equal(t, []string{"Opening https://example.com..."}, r.Lines())

	assert.Equal(t, "http://plain.org", d.Execute("open http://plain.org").URL)
	assert.Equal(t, "https://github.com", d.Execute("github").URL)
	assert.Equal(t, "https://linkedin.com", d.Execute("linkedin").URL)
	assert.Equal(t, "https://example.com/portfolio", d.Execute("portfolio").URL)

	r = d.Execute("open")
	assert.True(t, r.Err)
	assert.Contains(t, r.Text, "URL is required")
}

func TestWallEffects(t *testing.T) {
	d := newDispatcher()

	tests := []struct {
		line string
		want Effect
	}{
		{"clear", EffectClear},
		{"home", EffectHome},
		{"stats", EffectStats},
		{"mute", EffectMute},
		{"q", EffectQuit},
		{"quit", EffectQuit},
	}
	for _, tt := range tests {
		r := d.Execute(tt.line)
		assert.Equal(t, KindEffect, r.Kind, tt.line)
		assert.Equal(t, tt.want, r.Effect, tt.line)
		assert.Nil(t, r.Lines(), tt.line)
	}

	r := d.Execute("goto 3 -2")
	assert.Equal(t, EffectGoto, r.Effect)
	assert.Equal(t, grid.Cell{X: 3, Y: -2}, r.Cell)

	for _, bad := range []string{"goto", "goto 1", "goto a b", "goto 1 2 3"} {
		assert.True(t, d.Execute(bad).Err, bad)
	}

	r = d.Execute("search  red   flowers")
	assert.Equal(t, EffectSearch, r.Effect)
	assert.Equal(t, "red flowers", r.Query)
	assert.True(t, d.Execute("search").Err)
}

func TestHelpListsEveryCommand(t *testing.T) {
	lines := newDispatcher().Execute("help").Lines()
	require.NotEmpty(t, lines)
	assert.Equal(t, "Available commands:", lines[0])

	joined := strings.Join(lines, "\n")
	for _, h := range commandHelps {
		assert.Contains(t, joined, fmt.Sprintf("%-10s - %s", h.name, h.desc))
	}
}

func TestAboutRendersHTML(t *testing.T) {
	r := newDispatcher().Execute("about")
	require.Equal(t, KindHTML, r.Kind)
	assert.Equal(t, []string{
		"photowall v" + Version,
		"An infinite wall of photos in your terminal.",
		"- drag to explore, release to fling",
		"- click a photo to preview it",
		"- press : for commands",
	}, r.Lines())
}

func TestDate(t *testing.T) {
	s := NewSession()
	s.now = func() time.Time {
		return time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	}
	r := NewDispatcher(s).Execute("date")
	assert.Equal(t, "Sat Mar 09 2024 14:05:06 GMT+0000 (UTC)", r.Text)
}

func TestHistory(t *testing.T) {
	d := newDispatcher()
	d.Execute("echo one")
	d.Execute("bogus")
	r := d.Execute("history")
	assert.Equal(t, []string{
		"    1  echo one",
		"    2  bogus",
		"    3  history",
	}, r.Lines())
}

func TestHistoryIsCapped(t *testing.T) {
	s := NewSession()
	for i := 0; i < constants.MaxHistory+5; i++ {
		s.Record(fmt.Sprintf("echo %d", i))
	}
	h := s.History()
	require.Len(t, h, constants.MaxHistory)
	assert.Equal(t, "echo 5", h[0])
	assert.Equal(t, fmt.Sprintf("echo %d", constants.MaxHistory+4), h[len(h)-1])
}
