package input

import "fmt"

// Event is a debounced button event. At most one is produced per tick.
type Event int

const (
	None Event = iota
	Button1
	Button2
	BothHeldLong
)

// String returns the event name
func (e Event) String() string {
	switch e {
	case None:
		return "none"
	case Button1:
		return "button1"
	case Button2:
		return "button2"
	case BothHeldLong:
		return "both_held_long"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// Line is a single button input. Pressed reports the logical state, after
// any active-low inversion.
type Line interface {
	Pressed() bool
}

type anyLine []Line

func (a anyLine) Pressed() bool {
	for _, l := range a {
		if l.Pressed() {
			return true
		}
	}
	return false
}

// AnyOf returns a Line that is pressed while any of lines is pressed.
// It lets a hardware button and a remote button drive the same input.
func AnyOf(lines ...Line) Line {
	return anyLine(lines)
}
