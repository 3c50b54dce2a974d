package display

import (
	"strings"
	"unicode/utf8"
)

// Frame is one full screen of text
type Frame struct {
	Screen    string   `json:"screen"`
	Lines     []string `json:"lines"`
	Highlight int      `json:"highlight"` // inverted row, -1 for none
}

// newFrame returns a cleared frame of rows empty lines
func newFrame(screen string, rows int) Frame {
	return Frame{
		Screen:    screen,
		Lines:     make([]string, rows),
		Highlight: -1,
	}
}

// set writes text to row, truncated to cols. Rows outside the frame are ignored.
func (f *Frame) set(row, cols int, text string) {
	if row < 0 || row >= len(f.Lines) {
		return
	}
	f.Lines[row] = truncate(text, cols)
}

// center writes text centered in row
func (f *Frame) center(row, cols int, text string) {
	n := utf8.RuneCountInString(text)
	if n < cols {
		text = strings.Repeat(" ", (cols-n)/2) + text
	}
	f.set(row, cols, text)
}

// Text returns the frame as newline-separated plain text
func (f Frame) Text() string {
	return strings.Join(f.Lines, "\n")
}

func truncate(s string, cols int) string {
	if utf8.RuneCountInString(s) <= cols {
		return s
	}
	r := []rune(s)
	return string(r[:cols])
}

// pad right-pads s with spaces to cols runes
func pad(s string, cols int) string {
	n := utf8.RuneCountInString(s)
	if n >= cols {
		return truncate(s, cols)
	}
	return s + strings.Repeat(" ", cols-n)
}
