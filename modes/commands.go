package modes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lixenwraith/photowall/grid"
)

// Version is reported by the about command
const Version = "1.0.0"

type commandHelp struct {
	name string
	desc string
}

var commandHelps = []commandHelp{
	{"help", "Show available commands"},
	{"clear", "Clear the message line"},
	{"open", "Open a URL (usage: open https://example.com)"},
	{"echo", "Display a line of text (usage: echo Hello World)"},
	{"date", "Display the current date and time"},
	{"history", "Show command history"},
	{"about", "About photowall"},
	{"ls", "List directory contents (simulated)"},
	{"cd", "Change directory (simulated)"},
	{"pwd", "Print working directory (simulated)"},
	{"whoami", "Display current user"},
	{"github", "Open GitHub profile"},
	{"linkedin", "Open LinkedIn profile"},
	{"portfolio", "Open portfolio website"},
	{"goto", "Center the wall on a cell (usage: goto 3 -2)"},
	{"home", "Return to the first tile"},
	{"search", "Reload the wall with new photos (usage: search red flowers)"},
	{"stats", "Show wall statistics"},
	{"mute", "Toggle sound"},
	{"q", "Quit (also: quit)"},
}

// Dispatcher runs command lines against a session
type Dispatcher struct {
	session *Session
}

// NewDispatcher creates a dispatcher over s
func NewDispatcher(s *Session) *Dispatcher {
	return &Dispatcher{session: s}
}

// Session returns the session commands run against
func (d *Dispatcher) Session() *Session {
	return d.session
}

// Execute parses and runs one command line
// Blank input yields an empty text result and is not recorded
func (d *Dispatcher) Execute(line string) Result {
	line = strings.TrimSpace(line)
	if line == "" {
		return text("")
	}
	d.session.Record(line)

	parts := strings.Fields(line)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		return handleHelpCommand()
	case "clear":
		return effect(EffectClear)
	case "open":
		return handleOpenCommand(args)
	case "echo":
		return text(strings.Join(args, " "))
	case "date":
		return text(d.session.now().Format("Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"))
	case "history":
		return d.handleHistoryCommand()
	case "about":
		return handleAboutCommand()
	case "ls":
		return d.handleLsCommand(args)
	case "cd":
		return d.handleCdCommand(args)
	case "pwd":
		return text(d.session.Cwd())
	case "whoami":
		return text(d.session.user)
	case "github":
		return navigate("https://github.com")
	case "linkedin":
		return navigate("https://linkedin.com")
	case "portfolio":
		return navigate("https://example.com/portfolio")
	case "goto":
		return handleGotoCommand(args)
	case "home":
		return effect(EffectHome)
	case "search":
		return handleSearchCommand(args)
	case "stats":
		return effect(EffectStats)
	case "mute":
		return effect(EffectMute)
	case "q", "quit":
		return effect(EffectQuit)
	default:
		return failure(fmt.Sprintf("Command not found: %s. Type 'help' to see available commands.", cmd))
	}
}

func navigate(url string) Result {
	return Result{Kind: KindNavigate, URL: url}
}

func handleHelpCommand() Result {
	var b strings.Builder
	b.WriteString("Available commands:\n\n")
	for _, h := range commandHelps {
		fmt.Fprintf(&b, "%-10s - %s\n", h.name, h.desc)
	}
	return text(b.String())
}

// handleOpenCommand adds a scheme when the URL has none
func handleOpenCommand(args []string) Result {
	if len(args) == 0 {
		return failure("Error: URL is required (usage: open https://example.com)")
	}
	url := args[0]
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return navigate(url)
}

func handleAboutCommand() Result {
	return Result{Kind: KindHTML, Text: "<h1>photowall v" + Version + "</h1>" +
		"<p>An infinite wall of photos in your terminal.</p>" +
		"<ul><li>drag to explore, release to fling</li>" +
		"<li>click a photo to preview it</li>" +
		"<li>press <b>:</b> for commands</li></ul>"}
}

func (d *Dispatcher) handleHistoryCommand() Result {
	var b strings.Builder
	for i, line := range d.session.History() {
		fmt.Fprintf(&b, "%5d  %s\n", i+1, line)
	}
	return text(b.String())
}

func (d *Dispatcher) handleLsCommand(args []string) Result {
	var p string
	if len(args) > 0 {
		p = args[0]
	}
	entries, err := d.session.List(p)
	if err != nil {
		return failure(err.Error())
	}
	return text(strings.Join(entries, "  "))
}

func (d *Dispatcher) handleCdCommand(args []string) Result {
	var p string
	if len(args) > 0 {
		p = args[0]
	}
	if err := d.session.Chdir(p); err != nil {
		return failure(err.Error())
	}
	return text("")
}

func handleGotoCommand(args []string) Result {
	if len(args) != 2 {
		return failure("Invalid arguments for goto (usage: goto 3 -2)")
	}
	gx, errX := strconv.Atoi(args[0])
	gy, errY := strconv.Atoi(args[1])
	if errX != nil || errY != nil {
		return failure("Invalid arguments for goto (usage: goto 3 -2)")
	}
	r := effect(EffectGoto)
	r.Cell = grid.Cell{X: gx, Y: gy}
	return r
}

func handleSearchCommand(args []string) Result {
	if len(args) == 0 {
		return failure("Error: search terms are required (usage: search red flowers)")
	}
	r := effect(EffectSearch)
	r.Query = strings.Join(args, " ")
	return r
}
