package sim

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/weatherpanel/internal/display"
	"github.com/muurk/weatherpanel/internal/input"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#43BF6D"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// frameMsg carries a newly rendered panel frame
type frameMsg display.Frame

// Model is the bubbletea model of the simulator
type Model struct {
	b1        *input.SimLine
	b2        *input.SimLine
	longPress time.Duration
	cols      int

	feed   *display.Feed
	frame  display.Frame
	status string
	footer string

	keys keyMap
	help help.Model

	Width  int
	Height int
}

// NewModel creates a simulator for panel. longPress is the long-press
// threshold of the debouncer sampling b1 and b2.
func NewModel(panel *display.Panel, b1, b2 *input.SimLine, longPress time.Duration) Model {
	cols, _ := panel.Size()
	return Model{
		b1:        b1,
		b2:        b2,
		longPress: longPress,
		cols:      cols,
		feed:      display.NewFeed(8),
		frame:     panel.Frame(),
		keys:      newKeyMap(),
		help:      help.New(),
	}
}

// WithFooter sets a line shown under the help, such as the remote panel URL
func (m Model) WithFooter(footer string) Model {
	m.footer = footer
	return m
}

// Feed returns the frame feed the model listens on. Subscribe the panel to it.
func (m Model) Feed() *display.Feed {
	return m.feed
}

// Init starts listening for frames
func (m Model) Init() tea.Cmd {
	return waitForFrame(m.feed)
}

func waitForFrame(feed *display.Feed) tea.Cmd {
	return func() tea.Msg {
		return frameMsg(<-feed.C())
	}
}

// Update handles key presses and frames
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		m.frame = display.Frame(msg)
		return m, waitForFrame(m.feed)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Button1):
			m.b1.Tap(input.DefaultTap)
			m.status = "button 1"
		case key.Matches(msg, m.keys.Button2):
			m.b2.Tap(input.DefaultTap)
			m.status = "button 2"
		case key.Matches(msg, m.keys.Both):
			input.TapBoth(m.b1, m.b2, m.longPress)
			m.status = fmt.Sprintf("both held %s", m.longPress+input.HoldMargin)
		}
		return m, nil
	}

	return m, nil
}

// View renders the panel with the status line and key help
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("WEATHER PANEL SIMULATOR"))
	b.WriteString("\n")
	b.WriteString(display.RenderFrame(m.frame, m.cols))
	b.WriteString("\n")

	status := m.status
	if status == "" {
		status = "ready"
	}
	b.WriteString(statusStyle.Render("last input: " + status))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	if m.footer != "" {
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render(m.footer))
	}
	b.WriteString("\n")

	return b.String()
}

// Run shows the simulator until the user quits or ctx is canceled.
func Run(ctx context.Context, panel *display.Panel, model Model) error {
	unsubscribe := panel.Watch(model.Feed().Push)
	defer unsubscribe()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("simulator: %w", err)
	}
	return nil
}
