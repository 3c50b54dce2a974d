package input

import (
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	// DefaultTap is how long a software tap holds a line
	DefaultTap = 80 * time.Millisecond

	// HoldMargin is added to the long-press threshold by TapBoth
	HoldMargin = 300 * time.Millisecond
)

// SimLine is a software button. It can be held, released, or tapped for a
// fixed duration. It is safe to drive from another goroutine while the main
// loop samples it.
type SimLine struct {
	clock clockwork.Clock
	down  atomic.Bool
	until atomic.Int64 // unix nanos; pressed while clock is before this
}

// NewSimLine creates a released software button
func NewSimLine(clock clockwork.Clock) *SimLine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SimLine{clock: clock}
}

// Pressed implements Line
func (l *SimLine) Pressed() bool {
	if l.down.Load() {
		return true
	}
	return l.clock.Now().UnixNano() < l.until.Load()
}

// Press holds the button down until Release
func (l *SimLine) Press() {
	l.down.Store(true)
}

// Release lets go of the button and cancels any running tap
func (l *SimLine) Release() {
	l.down.Store(false)
	l.until.Store(0)
}

// Tap holds the button for d
func (l *SimLine) Tap(d time.Duration) {
	l.until.Store(l.clock.Now().Add(d).UnixNano())
}

// TapBoth holds both lines just past the long-press threshold
func TapBoth(b1, b2 *SimLine, longPress time.Duration) {
	b1.Tap(longPress + HoldMargin)
	b2.Tap(longPress + HoldMargin)
}
