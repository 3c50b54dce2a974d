package remote

import (
	"encoding/json"
	"fmt"

	"github.com/muurk/weatherpanel/internal/display"
)

// Message types
const (
	TypeFrame = "frame"
	TypePress = "press"
	TypeError = "error"
)

// Button names accepted in press messages
const (
	Button1    = "1"
	Button2    = "2"
	ButtonBoth = "both"
)

// FrameMessage is sent for every rendered frame
type FrameMessage struct {
	Type      string   `json:"type"`
	Screen    string   `json:"screen"`
	Lines     []string `json:"lines"`
	Highlight int      `json:"highlight"`
}

// PressMessage is sent by clients to press a button
type PressMessage struct {
	Type   string `json:"type"`
	Button string `json:"button"`
}

// ErrorMessage answers a malformed client message
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewFrameMessage converts a panel frame
func NewFrameMessage(f display.Frame) FrameMessage {
	return FrameMessage{
		Type:      TypeFrame,
		Screen:    f.Screen,
		Lines:     f.Lines,
		Highlight: f.Highlight,
	}
}

// ParsePress decodes and validates a client message
func ParsePress(data []byte) (PressMessage, error) {
	var msg PressMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("invalid JSON: %w", err)
	}
	if msg.Type != TypePress {
		return msg, fmt.Errorf("unsupported message type %q", msg.Type)
	}
	switch msg.Button {
	case Button1, Button2, ButtonBoth:
		return msg, nil
	}
	return msg, fmt.Errorf("unknown button %q", msg.Button)
}
