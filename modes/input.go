package modes

import (
	"github.com/gdamore/tcell/v2"
)

// EditOutcome tells the caller what a key did to the command line
type EditOutcome uint8

const (
	EditContinue EditOutcome = iota
	EditSubmit
	EditCancel
)

// LineEditor collects the command line typed after ':'
type LineEditor struct {
	text    []rune
	session *Session
	recall  int // index into history while browsing, len(history) when not
}

// NewLineEditor creates an editor that browses s's history with Up/Down
func NewLineEditor(s *Session) *LineEditor {
	e := &LineEditor{session: s}
	e.Reset()
	return e
}

// Text returns the current input
func (e *LineEditor) Text() string {
	return string(e.text)
}

// Reset clears the input and stops browsing history
func (e *LineEditor) Reset() {
	e.text = e.text[:0]
	e.recall = len(e.session.history)
}

// HandleKey applies one key press
// On EditSubmit the caller reads Text before calling Reset
func (e *LineEditor) HandleKey(ev *tcell.EventKey) EditOutcome {
	switch ev.Key() {
	case tcell.KeyEnter:
		return EditSubmit
	case tcell.KeyEscape, tcell.KeyCtrlC:
		e.Reset()
		return EditCancel
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(e.text) == 0 {
			// Backspace on an empty line leaves command mode, like vi
			return EditCancel
		}
		e.text = e.text[:len(e.text)-1]
	case tcell.KeyCtrlU:
		e.text = e.text[:0]
	case tcell.KeyUp:
		if e.recall > 0 {
			e.recall--
			e.text = []rune(e.session.history[e.recall])
		}
	case tcell.KeyDown:
		h := e.session.history
		if e.recall < len(h)-1 {
			e.recall++
			e.text = []rune(h[e.recall])
		} else {
			e.recall = len(h)
			e.text = e.text[:0]
		}
	case tcell.KeyRune:
		e.text = append(e.text, ev.Rune())
	}
	return EditContinue
}
