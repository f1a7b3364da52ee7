package modes

import (
	"strings"

	"github.com/lixenwraith/photowall/grid"
)

// Kind tags the payload of a Result
type Kind uint8

const (
	KindText Kind = iota
	KindHTML
	KindNavigate
	KindEffect
)

// Effect is an action the application performs on the wall or itself
type Effect uint8

const (
	EffectNone Effect = iota
	EffectClear
	EffectQuit
	EffectGoto
	EffectHome
	EffectSearch
	EffectStats
	EffectMute
)

// Result is the outcome of one command line
type Result struct {
	Kind   Kind
	Text   string // KindText and KindHTML
	URL    string // KindNavigate
	Effect Effect // KindEffect
	Cell   grid.Cell
	Query  string
	Err    bool
}

func text(s string) Result {
	return Result{Kind: KindText, Text: s}
}

func failure(s string) Result {
	return Result{Kind: KindText, Text: s, Err: true}
}

func effect(e Effect) Result {
	return Result{Kind: KindEffect, Effect: e}
}

// Lines returns the result as plain terminal text, one entry per line
// Effects and empty text yield nothing
func (r Result) Lines() []string {
	var s string
	switch r.Kind {
	case KindText:
		s = r.Text
	case KindHTML:
		s = HTMLToText(r.Text)
	case KindNavigate:
		s = "Opening " + r.URL + "..."
	default:
		return nil
	}
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
