package screen

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/weatherpanel/internal/input"
	"github.com/muurk/weatherpanel/internal/weather"
)

var (
	t0     = time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	cities = []weather.City{
		{Name: "Alpha", Latitude: 1, Longitude: 2, StationID: "1"},
		{Name: "Beta", Latitude: 3, Longitude: 4, StationID: "2"},
		{Name: "Gamma", Latitude: 5, Longitude: 6, StationID: "3"},
	}
)

func newTestMachine() *Machine {
	return NewMachine(Config{Cities: cities})
}

func press(b input.Event) Press { return Press{Button: b, Now: t0} }

// atMenu returns a state sitting on the menu with the given highlight.
func atMenu(index int) State {
	return State{Screen: Menu, MenuIndex: index}
}

func TestNewMachine_Defaults(t *testing.T) {
	m := NewMachine(Config{})
	cfg := m.Config()

	assert.Equal(t, DefaultSplash, cfg.Splash)
	assert.Equal(t, DefaultForecastHold, cfg.ForecastHold)
	assert.Equal(t, DefaultLoadingText, cfg.LoadingText)
	assert.Equal(t, len(weather.DefaultCities), m.CityCount())
}

func TestNewState_ClampsCityIndex(t *testing.T) {
	m := newTestMachine()

	assert.Equal(t, 1, m.NewState(1).CityIndex)
	assert.Equal(t, 2, m.NewState(99).CityIndex)
	assert.Equal(t, 0, m.NewState(-4).CityIndex)
	assert.Equal(t, Boot, m.NewState(0).Screen)
}

func TestBootSplashThenMenu(t *testing.T) {
	m := newTestMachine()

	s, actions := m.Step(m.NewState(0), Start{Now: t0})
	require.Equal(t, []Action{RenderBoot{}}, actions)

	s, actions = m.Step(s, Tick{Now: t0.Add(2999 * time.Millisecond)})
	assert.Equal(t, Boot, s.Screen)
	assert.Empty(t, actions)

	s, actions = m.Step(s, Tick{Now: t0.Add(3 * time.Second)})
	assert.Equal(t, Menu, s.Screen)
	assert.Equal(t, []Action{RenderMenu{Selected: 0}}, actions)

	// One-time only: later ticks on the menu do nothing.
	_, actions = m.Step(s, Tick{Now: t0.Add(time.Hour)})
	assert.Empty(t, actions)
}

func TestBootIgnoresSingleButtons(t *testing.T) {
	m := newTestMachine()
	s, _ := m.Step(m.NewState(0), Start{Now: t0})

	for _, b := range []input.Event{input.Button1, input.Button2} {
		next, actions := m.Step(s, press(b))
		assert.Equal(t, s, next)
		assert.Empty(t, actions)
	}
}

func TestMenuIndexCycles(t *testing.T) {
	m := newTestMachine()
	s := atMenu(0)

	seen := map[int]bool{}
	for i := 0; i < MenuItemCount; i++ {
		var actions []Action
		s, actions = m.Step(s, press(input.Button1))
		require.Len(t, actions, 1)
		assert.Equal(t, RenderMenu{Selected: s.MenuIndex}, actions[0], "highlight matches index")
		assert.True(t, s.MenuIndex >= 0 && s.MenuIndex < MenuItemCount)
		seen[s.MenuIndex] = true
	}
	assert.Len(t, seen, MenuItemCount)
	assert.Equal(t, 0, s.MenuIndex, "wraps back to the first item")
}

func TestOpenForecast_FetchOnNextTickThenHold(t *testing.T) {
	m := newTestMachine()
	s := atMenu(0)
	s.CityIndex = 1

	s, actions := m.Step(s, press(input.Button2))
	assert.Equal(t, Forecast, s.Screen)
	assert.Equal(t, []Action{RenderLoading{Text: DefaultLoadingText}}, actions, "entry only sets state")

	s, actions = m.Step(s, Tick{Now: t0})
	require.Equal(t, []Action{FetchForecast{City: cities[1]}}, actions)

	// Further ticks while the fetch is outstanding do not fetch again.
	s, actions = m.Step(s, Tick{Now: t0.Add(time.Millisecond)})
	assert.Empty(t, actions)

	reading := weather.ForecastReading{TemperatureC: 5.5, WindSpeedMs: 3.2}
	s, actions = m.Step(s, ForecastLoaded{Reading: reading, Now: t0.Add(time.Second)})
	require.Equal(t, []Action{RenderForecast{City: "Beta", Reading: reading}}, actions)

	// Held for ForecastHold, no refetch meanwhile.
	for _, d := range []time.Duration{2 * time.Second, 5 * time.Second, 10999 * time.Millisecond} {
		s, actions = m.Step(s, Tick{Now: t0.Add(d)})
		assert.Empty(t, actions)
		assert.Equal(t, Forecast, s.Screen)
	}

	s, actions = m.Step(s, Tick{Now: t0.Add(11 * time.Second)})
	assert.Equal(t, Menu, s.Screen)
	assert.Equal(t, []Action{RenderMenu{Selected: 0}}, actions)
}

func TestForecastErrorIsRenderedAndHeld(t *testing.T) {
	m := newTestMachine()
	s, _ := m.Step(atMenu(0), press(input.Button2))
	s, _ = m.Step(s, Tick{Now: t0})

	fetchErr := errors.New("boom")
	s, actions := m.Step(s, ForecastLoaded{Err: fetchErr, Now: t0})
	require.Len(t, actions, 1)
	rendered := actions[0].(RenderForecast)
	assert.Equal(t, fetchErr, rendered.Err)
	assert.Equal(t, weather.ForecastReading{}, rendered.Reading)

	s, _ = m.Step(s, Tick{Now: t0.Add(DefaultForecastHold)})
	assert.Equal(t, Menu, s.Screen)
}

func TestFetchErrorDropsPartialData(t *testing.T) {
	m := newTestMachine()
	fetchErr := errors.New("truncated body")

	s, _ := m.Step(atMenu(0), press(input.Button2))
	s, _ = m.Step(s, Tick{Now: t0})
	_, actions := m.Step(s, ForecastLoaded{
		Reading: weather.ForecastReading{TemperatureC: 5.5, WindSpeedMs: 2},
		Err:     fetchErr,
		Now:     t0,
	})
	assert.Equal(t, []Action{RenderForecast{City: "Alpha", Err: fetchErr}}, actions)

	s, _ = m.Step(atMenu(1), press(input.Button2))
	_, actions = m.Step(s, HistoricalLoaded{
		Report: weather.HistoricalReport{Samples: []weather.HistoricalSample{{Hour: 6, TemperatureC: 1}}},
		Err:    fetchErr,
		Now:    t0,
	})
	assert.Equal(t, []Action{RenderHistorical{
		City: "Alpha",
		Date: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		Err:  fetchErr,
	}}, actions)
}

func TestForecastHoldIgnoresSingleButtons(t *testing.T) {
	m := newTestMachine()
	s, _ := m.Step(atMenu(0), press(input.Button2))
	s, _ = m.Step(s, Tick{Now: t0})
	s, _ = m.Step(s, ForecastLoaded{Now: t0})

	next, actions := m.Step(s, press(input.Button1))
	assert.Equal(t, s, next)
	assert.Empty(t, actions)
}

func TestOpenHistorical(t *testing.T) {
	m := newTestMachine()
	s := atMenu(1)
	s.CityIndex = 2

	s, actions := m.Step(s, press(input.Button2))
	assert.Equal(t, Historical, s.Screen)
	assert.Equal(t, []Action{
		RenderLoading{Text: DefaultLoadingText},
		FetchHistorical{City: cities[2]},
	}, actions)

	date := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	samples := []weather.HistoricalSample{{Hour: 6, TemperatureC: 4.5}}
	s, actions = m.Step(s, HistoricalLoaded{Report: weather.HistoricalReport{Date: date, Samples: samples}})
	assert.Equal(t, []Action{RenderHistorical{City: "Gamma", Date: date, Samples: samples}}, actions)

	// Idles: ticks and single buttons do nothing.
	for _, ev := range []Event{Tick{Now: t0.Add(time.Hour)}, press(input.Button1), press(input.Button2)} {
		next, actions := m.Step(s, ev)
		assert.Equal(t, s, next)
		assert.Empty(t, actions)
	}
}

func TestOpenSettingsDelegatesToCitySelect(t *testing.T) {
	m := newTestMachine()

	s, actions := m.Step(atMenu(2), press(input.Button2))
	assert.Equal(t, CitySelect, s.Screen)
	assert.Equal(t, []Action{
		RenderLoading{Text: DefaultLoadingText},
		RenderSettings{},
		RenderCitySelect{City: "Alpha"},
	}, actions)
}

func TestCitySelectCyclesAndPersists(t *testing.T) {
	m := newTestMachine()
	s := State{Screen: CitySelect, MenuIndex: 2}

	seen := map[int]bool{}
	for i := 0; i < len(cities); i++ {
		var actions []Action
		s, actions = m.Step(s, press(input.Button1))
		require.Len(t, actions, 1)
		assert.Equal(t, RenderCitySelect{City: cities[s.CityIndex].Name}, actions[0])
		seen[s.CityIndex] = true
	}
	assert.Len(t, seen, len(cities))
	assert.Equal(t, 0, s.CityIndex)

	s, _ = m.Step(s, press(input.Button1))
	s, actions := m.Step(s, press(input.Button2))
	assert.Equal(t, Menu, s.Screen)
	assert.Equal(t, []Action{PersistCity{Index: 1}, RenderMenu{Selected: 2}}, actions)
}

func TestLongPressResetsFromAnyScreen(t *testing.T) {
	m := newTestMachine()
	long := press(input.BothHeldLong)

	states := []State{
		{Screen: Boot, Deadline: t0.Add(time.Second)},
		atMenu(2),
		{Screen: Forecast, MenuIndex: 0, Pending: PendingForecastDue},
		{Screen: Forecast, MenuIndex: 0, Deadline: t0.Add(5 * time.Second)},
		{Screen: Historical, MenuIndex: 1, Pending: PendingHistorical},
		{Screen: CitySelect, MenuIndex: 2, CityIndex: 2},
	}

	for _, st := range states {
		t.Run(st.Screen.String(), func(t *testing.T) {
			s, actions := m.Step(st, long)
			assert.Equal(t, Menu, s.Screen)
			assert.Equal(t, 0, s.MenuIndex)
			assert.Equal(t, PendingNone, s.Pending)
			assert.Equal(t, st.CityIndex, s.CityIndex, "city selection is kept")
			assert.Equal(t, []Action{RenderMenu{Selected: 0}}, actions)
		})
	}
}

func TestLongPressDuringBootCancelsSplash(t *testing.T) {
	m := newTestMachine()
	s, _ := m.Step(m.NewState(0), Start{Now: t0})
	s, _ = m.Step(s, press(input.BothHeldLong))
	s, _ = m.Step(s, press(input.Button1))

	_, actions := m.Step(s, Tick{Now: t0.Add(time.Hour)})
	assert.Empty(t, actions, "splash deadline must not fire after reset")
}

func TestStaleFetchResultsAreDropped(t *testing.T) {
	m := newTestMachine()

	s, _ := m.Step(atMenu(1), press(input.Button2))
	s, _ = m.Step(s, press(input.BothHeldLong))

	next, actions := m.Step(s, HistoricalLoaded{Report: weather.HistoricalReport{}})
	assert.Equal(t, s, next)
	assert.Empty(t, actions)

	next, actions = m.Step(s, ForecastLoaded{Now: t0})
	assert.Equal(t, s, next)
	assert.Empty(t, actions)
}

func TestClampCityIndex(t *testing.T) {
	tests := []struct {
		index, count, want int
	}{
		{0, 3, 0},
		{2, 3, 2},
		{3, 3, 2},
		{-1, 3, 0},
		{5, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampCityIndex(tt.index, tt.count), "ClampCityIndex(%d, %d)", tt.index, tt.count)
	}
}

func TestScreen_String(t *testing.T) {
	assert.Equal(t, "city_select", CitySelect.String())
	assert.Equal(t, "Screen(9)", Screen(9).String())
}
