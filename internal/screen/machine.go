package screen

import (
	"time"

	"github.com/muurk/weatherpanel/internal/input"
	"github.com/muurk/weatherpanel/internal/weather"
)

// Machine applies transitions for a fixed Config
type Machine struct {
	cfg Config
}

// NewMachine creates a state machine. Zero durations and an empty loading
// text fall back to the defaults; an empty city list falls back to the
// compiled-in catalog.
func NewMachine(cfg Config) *Machine {
	def := DefaultConfig()
	if len(cfg.Cities) == 0 {
		cfg.Cities = def.Cities
	}
	if cfg.Splash <= 0 {
		cfg.Splash = def.Splash
	}
	if cfg.ForecastHold <= 0 {
		cfg.ForecastHold = def.ForecastHold
	}
	if cfg.LoadingText == "" {
		cfg.LoadingText = def.LoadingText
	}
	return &Machine{cfg: cfg}
}

// Config returns the effective configuration
func (m *Machine) Config() Config {
	return m.cfg
}

// CityCount returns the size of the city catalog
func (m *Machine) CityCount() int {
	return len(m.cfg.Cities)
}

// NewState returns the initial Boot state with a persisted city index
// clamped into range.
func (m *Machine) NewState(cityIndex int) State {
	return State{
		Screen:    Boot,
		CityIndex: ClampCityIndex(cityIndex, len(m.cfg.Cities)),
	}
}

// Step applies one event.
func (m *Machine) Step(s State, ev Event) (State, []Action) {
	switch ev := ev.(type) {
	case Start:
		s.Screen = Boot
		s.Pending = PendingNone
		s.Deadline = ev.Now.Add(m.cfg.Splash)
		return s, []Action{RenderBoot{}}

	case Press:
		if ev.Button == input.BothHeldLong {
			return m.resetToMenu(s)
		}
		return m.press(s, ev.Button)

	case Tick:
		return m.tick(s, ev.Now)

	case ForecastLoaded:
		if s.Screen != Forecast || s.Pending != PendingForecast {
			return s, nil
		}
		s.Pending = PendingNone
		s.Deadline = ev.Now.Add(m.cfg.ForecastHold)
		if ev.Err != nil {
			return s, []Action{RenderForecast{City: m.city(s).Name, Err: ev.Err}}
		}
		return s, []Action{RenderForecast{
			City:    m.city(s).Name,
			Reading: ev.Reading,
		}}

	case HistoricalLoaded:
		if s.Screen != Historical || s.Pending != PendingHistorical {
			return s, nil
		}
		s.Pending = PendingNone
		if ev.Err != nil {
			return s, []Action{RenderHistorical{
				City: m.city(s).Name,
				Date: weather.Yesterday(ev.Now),
				Err:  ev.Err,
			}}
		}
		return s, []Action{RenderHistorical{
			City:    m.city(s).Name,
			Date:    ev.Report.Date,
			Samples: ev.Report.Samples,
		}}
	}
	return s, nil
}

func (m *Machine) press(s State, button input.Event) (State, []Action) {
	switch s.Screen {
	case Menu:
		switch button {
		case input.Button1:
			s.MenuIndex = (s.MenuIndex + 1) % MenuItemCount
			return s, []Action{RenderMenu{Selected: s.MenuIndex}}
		case input.Button2:
			return m.open(s)
		}

	case CitySelect:
		switch button {
		case input.Button1:
			s.CityIndex = (s.CityIndex + 1) % len(m.cfg.Cities)
			return s, []Action{RenderCitySelect{City: m.city(s).Name}}
		case input.Button2:
			s.Screen = Menu
			return s, []Action{
				PersistCity{Index: s.CityIndex},
				RenderMenu{Selected: s.MenuIndex},
			}
		}
	}
	// Boot, Forecast and Historical only react to the long-press.
	return s, nil
}

// open enters the highlighted menu entry
func (m *Machine) open(s State) (State, []Action) {
	actions := []Action{RenderLoading{Text: m.cfg.LoadingText}}
	s.Deadline = time.Time{}

	switch s.MenuIndex {
	case menuForecast:
		s.Screen = Forecast
		s.Pending = PendingForecastDue

	case menuHistorical:
		s.Screen = Historical
		s.Pending = PendingHistorical
		actions = append(actions, FetchHistorical{City: m.city(s)})

	case menuSettings:
		s.Screen = CitySelect
		s.Pending = PendingNone
		actions = append(actions,
			RenderSettings{},
			RenderCitySelect{City: m.city(s).Name},
		)
	}
	return s, actions
}

func (m *Machine) tick(s State, now time.Time) (State, []Action) {
	switch s.Screen {
	case Boot:
		if !s.Deadline.IsZero() && !now.Before(s.Deadline) {
			s.Screen = Menu
			s.Deadline = time.Time{}
			return s, []Action{RenderMenu{Selected: s.MenuIndex}}
		}

	case Forecast:
		switch {
		case s.Pending == PendingForecastDue:
			s.Pending = PendingForecast
			return s, []Action{FetchForecast{City: m.city(s)}}
		case s.Pending == PendingNone && !s.Deadline.IsZero() && !now.Before(s.Deadline):
			s.Screen = Menu
			s.Deadline = time.Time{}
			return s, []Action{RenderMenu{Selected: s.MenuIndex}}
		}
	}
	return s, nil
}

func (m *Machine) resetToMenu(s State) (State, []Action) {
	s.Screen = Menu
	s.MenuIndex = 0
	s.Pending = PendingNone
	s.Deadline = time.Time{}
	return s, []Action{RenderMenu{Selected: 0}}
}

func (m *Machine) city(s State) weather.City {
	return m.cfg.Cities[ClampCityIndex(s.CityIndex, len(m.cfg.Cities))]
}
