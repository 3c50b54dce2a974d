package display

// Feed buffers frames for one slow consumer. Push never blocks: when the
// buffer is full the oldest frame is dropped. Frames are complete
// snapshots, so a consumer that falls behind only skips intermediate ones.
type Feed struct {
	ch chan Frame
}

// NewFeed creates a feed holding up to size frames
func NewFeed(size int) *Feed {
	if size < 1 {
		size = 1
	}
	return &Feed{ch: make(chan Frame, size)}
}

// Push queues f. Safe for a single producer; Panel.Watch serializes its
// deliveries so a subscribed feed has one.
func (f *Feed) Push(frame Frame) {
	for {
		select {
		case f.ch <- frame:
			return
		default:
		}
		select {
		case <-f.ch:
		default:
		}
	}
}

// C returns the receive side of the feed
func (f *Feed) C() <-chan Frame {
	return f.ch
}
