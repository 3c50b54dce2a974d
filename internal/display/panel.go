package display

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/weatherpanel/internal/weather"
)

// Panel geometry: a 160x128 TFT with a 6x10 font
const (
	DefaultCols = 26
	DefaultRows = 12
)

// SettingsOptions is the static settings list. Only the first entry works.
var SettingsOptions = []string{"Change city", "Brightness", "About"}

// Panel is a text-mode Renderer. It is safe for concurrent use: the main
// loop renders while subscribers (terminal, remote clients) read frames.
type Panel struct {
	cols      int
	rows      int
	title     string
	menuItems []string

	// delivery serializes fan-out so each subscriber sees frames in order
	delivery sync.Mutex

	mu          sync.RWMutex
	frame       Frame
	subscribers map[int]func(Frame)
	nextID      int
}

// NewPanel creates a panel of the default size for the given menu entries
func NewPanel(title string, menuItems []string) *Panel {
	return NewPanelSize(title, menuItems, DefaultCols, DefaultRows)
}

// NewPanelSize creates a panel with an explicit grid size
func NewPanelSize(title string, menuItems []string, cols, rows int) *Panel {
	return &Panel{
		cols:        cols,
		rows:        rows,
		title:       title,
		menuItems:   menuItems,
		frame:       newFrame("", rows),
		subscribers: make(map[int]func(Frame)),
	}
}

// Size returns the grid size in character cells
func (p *Panel) Size() (cols, rows int) {
	return p.cols, p.rows
}

// Frame returns a copy of the current frame
func (p *Panel) Frame() Frame {
	p.mu.RLock()
	defer p.mu.RUnlock()
	f := p.frame
	f.Lines = append([]string(nil), p.frame.Lines...)
	return f
}

// Subscribe registers fn to receive every new frame. The returned function
// removes the subscription. fn runs on the rendering goroutine and must not block.
func (p *Panel) Subscribe(fn func(Frame)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subscribers[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subscribers, id)
		p.mu.Unlock()
	}
}

// Watch is Subscribe that first delivers the current frame. No render can
// slip between the current frame and the subscription.
func (p *Panel) Watch(fn func(Frame)) func() {
	p.delivery.Lock()
	defer p.delivery.Unlock()

	unsubscribe := p.Subscribe(fn)
	fn(p.Frame())
	return unsubscribe
}

func (p *Panel) show(f Frame) {
	p.delivery.Lock()
	defer p.delivery.Unlock()

	p.mu.Lock()
	p.frame = f
	subs := make([]func(Frame), 0, len(p.subscribers))
	for _, fn := range p.subscribers {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(p.Frame())
	}
}

// RenderBoot implements Renderer
func (p *Panel) RenderBoot() {
	f := newFrame("boot", p.rows)
	mid := p.rows / 2
	f.center(mid-2, p.cols, p.title)
	f.center(mid, p.cols, "SMHI open data")
	f.center(mid+2, p.cols, "starting...")
	p.show(f)
}

// RenderMenu implements Renderer
func (p *Panel) RenderMenu(selected int) {
	f := newFrame("menu", p.rows)
	f.set(0, p.cols, "MENU")
	for i, item := range p.menuItems {
		marker := "  "
		if i == selected {
			marker = "> "
		}
		f.set(2+i, p.cols, marker+item)
	}
	if selected >= 0 && selected < len(p.menuItems) {
		f.Highlight = 2 + selected
	}
	f.set(p.rows-1, p.cols, "B1 next  B2 open")
	p.show(f)
}

// RenderForecast implements Renderer
func (p *Panel) RenderForecast(city string, reading weather.ForecastReading, err error) {
	f := newFrame("forecast", p.rows)
	f.set(0, p.cols, "FORECAST "+city)
	if err != nil {
		f.set(2, p.cols, weather.ShortMessage(err))
		p.show(f)
		return
	}
	f.set(2, p.cols, fmt.Sprintf("Temp:     %6.1f C", reading.TemperatureC))
	f.set(3, p.cols, fmt.Sprintf("Wind:     %6.1f m/s", reading.WindSpeedMs))
	f.set(4, p.cols, fmt.Sprintf("Humidity: %6.0f %%", reading.HumidityPct))
	p.show(f)
}

// RenderHistorical implements Renderer
func (p *Panel) RenderHistorical(city string, date time.Time, samples []weather.HistoricalSample, err error) {
	f := newFrame("historical", p.rows)
	f.set(0, p.cols, "HISTORY "+city)
	if err != nil {
		f.set(2, p.cols, weather.ShortMessage(err))
		p.show(f)
		return
	}
	f.set(1, p.cols, date.Format(time.DateOnly))
	if len(samples) == 0 {
		f.set(3, p.cols, "No data")
		p.show(f)
		return
	}
	for i, s := range samples {
		f.set(3+i, p.cols, fmt.Sprintf("%02d:%02d  %6.1f C", s.Hour, s.Minute, s.TemperatureC))
	}
	p.show(f)
}

// RenderSettings implements Renderer
func (p *Panel) RenderSettings() {
	f := newFrame("settings", p.rows)
	f.set(0, p.cols, "SETTINGS")
	for i, opt := range SettingsOptions {
		f.set(2+i, p.cols, fmt.Sprintf("%d. %s", i+1, opt))
	}
	f.Highlight = 2
	p.show(f)
}

// RenderCitySelect implements Renderer
func (p *Panel) RenderCitySelect(city string) {
	f := newFrame("city_select", p.rows)
	f.set(0, p.cols, "SELECT CITY")
	f.center(p.rows/2-1, p.cols, "< "+city+" >")
	f.Highlight = p.rows/2 - 1
	f.set(p.rows-1, p.cols, "B1 next  B2 save")
	p.show(f)
}

// RenderLoading implements Renderer
func (p *Panel) RenderLoading(text string) {
	f := newFrame("loading", p.rows)
	f.center(p.rows/2, p.cols, text)
	p.show(f)
}

// View renders the current frame as a bordered terminal box
func (p *Panel) View() string {
	return RenderFrame(p.Frame(), p.cols)
}

// RenderFrame styles a frame for the terminal
func RenderFrame(f Frame, cols int) string {
	lines := make([]string, len(f.Lines))
	for i, line := range f.Lines {
		cell := pad(line, cols)
		if i == f.Highlight {
			lines[i] = HighlightRowStyle.Render(cell)
		} else {
			lines[i] = RowStyle.Render(cell)
		}
	}
	return ScreenBorderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// String implements fmt.Stringer with the plain text of the current frame
func (p *Panel) String() string {
	return strings.TrimRight(p.Frame().Text(), "\n")
}
