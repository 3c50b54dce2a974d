package input

import (
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	// DefaultDebounce is the minimum interval between two accepted presses of one button
	DefaultDebounce = 200 * time.Millisecond

	// DefaultLongPress is how long both buttons must be held for BothHeldLong
	DefaultLongPress = 1000 * time.Millisecond
)

// Debouncer converts two sampled lines into Events.
// It is not safe for concurrent use; the main loop owns it.
type Debouncer struct {
	clock   clockwork.Clock
	lines   [2]Line
	prev    [2]bool
	last    [2]time.Time
	seen    [2]bool
	hold    time.Time
	held    bool
	latched bool

	// Debounce is the per-button acceptance interval
	Debounce time.Duration

	// LongPress is the both-held duration that must be exceeded
	LongPress time.Duration
}

// NewDebouncer creates a debouncer over two lines using the given clock.
// A nil clock means the real clock.
func NewDebouncer(clock clockwork.Clock, button1, button2 Line) *Debouncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Debouncer{
		clock:     clock,
		lines:     [2]Line{button1, button2},
		Debounce:  DefaultDebounce,
		LongPress: DefaultLongPress,
	}
}

// Poll samples both lines at the clock's current time.
func (d *Debouncer) Poll() Event {
	return d.Sample(d.lines[0].Pressed(), d.lines[1].Pressed(), d.clock.Now())
}

// Sample feeds one pair of line states taken at now.
func (d *Debouncer) Sample(p1, p2 bool, now time.Time) Event {
	defer func() { d.prev = [2]bool{p1, p2} }()

	if p1 && p2 {
		if !d.held {
			d.held = true
			d.hold = now
		}
		if !d.latched && now.Sub(d.hold) > d.LongPress {
			d.latched = true
			return BothHeldLong
		}
		return None
	}

	d.held = false
	if !p1 && !p2 {
		d.latched = false
	}
	if d.latched {
		// One button still down after the gesture.
		return None
	}

	if p1 && !d.prev[0] && d.accept(0, now) {
		return Button1
	}
	if p2 && !d.prev[1] && d.accept(1, now) {
		return Button2
	}
	return None
}

func (d *Debouncer) accept(i int, now time.Time) bool {
	if d.seen[i] && now.Sub(d.last[i]) < d.Debounce {
		return false
	}
	d.last[i] = now
	d.seen[i] = true
	return true
}
