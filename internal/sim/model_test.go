package sim

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/weatherpanel/internal/display"
	"github.com/muurk/weatherpanel/internal/input"
	"github.com/muurk/weatherpanel/internal/screen"
)

func newTestModel() (Model, *display.Panel, *input.SimLine, *input.SimLine, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClock()
	b1 := input.NewSimLine(clock)
	b2 := input.NewSimLine(clock)
	panel := display.NewPanel("WEATHER", screen.MenuItems)
	return NewModel(panel, b1, b2, time.Second), panel, b1, b2, clock
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ButtonKeysTapLines(t *testing.T) {
	m, _, b1, b2, clock := newTestModel()

	updated, _ := m.Update(runes("1"))
	m = updated.(Model)
	assert.True(t, b1.Pressed())
	assert.False(t, b2.Pressed())
	assert.Equal(t, "button 1", m.status)

	clock.Advance(input.DefaultTap)
	assert.False(t, b1.Pressed())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(Model)
	assert.True(t, b2.Pressed())
	assert.Equal(t, "button 2", m.status)
}

func TestModel_BothKeyHoldsPastLongPress(t *testing.T) {
	m, _, b1, b2, clock := newTestModel()

	m.Update(runes("b"))
	clock.Advance(time.Second + 100*time.Millisecond)
	assert.True(t, b1.Pressed())
	assert.True(t, b2.Pressed())

	clock.Advance(input.HoldMargin)
	assert.False(t, b1.Pressed())
	assert.False(t, b2.Pressed())
}

func TestModel_QuitKey(t *testing.T) {
	m, _, _, _, _ := newTestModel()

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_FramesFromPanel(t *testing.T) {
	m, panel, _, _, _ := newTestModel()
	unsubscribe := panel.Subscribe(m.Feed().Push)
	defer unsubscribe()

	panel.RenderMenu(1)

	msg := m.Init()()
	updated, cmd := m.Update(msg)
	m = updated.(Model)
	assert.NotNil(t, cmd, "model keeps listening for frames")
	assert.Equal(t, "menu", m.frame.Screen)

	view := m.View()
	assert.Contains(t, view, "> Historical")
	assert.Contains(t, view, "WEATHER PANEL SIMULATOR")
	assert.Contains(t, view, "hold both")
}

func TestModel_Footer(t *testing.T) {
	m, _, _, _, _ := newTestModel()
	m = m.WithFooter("remote panel on :8080")
	assert.Contains(t, m.View(), "remote panel on :8080")
}
