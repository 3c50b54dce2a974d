package device

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/weatherpanel/internal/input"
	"github.com/muurk/weatherpanel/internal/metrics"
	"github.com/muurk/weatherpanel/internal/screen"
	"github.com/muurk/weatherpanel/internal/weather"
)

const tick = 10 * time.Millisecond

// recorder is a display.Renderer that records calls as short strings.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) RenderBoot()             { r.add("boot") }
func (r *recorder) RenderMenu(selected int) { r.add("menu:%d", selected) }
func (r *recorder) RenderSettings()         { r.add("settings") }
func (r *recorder) RenderLoading(string)    { r.add("loading") }
func (r *recorder) RenderCitySelect(city string) {
	r.add("city:%s", city)
}
func (r *recorder) RenderForecast(city string, reading weather.ForecastReading, err error) {
	r.add("forecast:%s:%.1f:%v", city, reading.TemperatureC, err != nil)
}
func (r *recorder) RenderHistorical(city string, date time.Time, samples []weather.HistoricalSample, err error) {
	r.add("historical:%s:%d:%v", city, len(samples), err != nil)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) last() string {
	calls := r.all()
	if len(calls) == 0 {
		return ""
	}
	return calls[len(calls)-1]
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

type fakeFetcher struct {
	reading       weather.ForecastReading
	forecastErr   error
	report        weather.HistoricalReport
	historicalErr error

	forecastCities   []string
	historicalCities []string
}

func (f *fakeFetcher) FetchForecast(_ context.Context, city weather.City) (weather.ForecastReading, error) {
	f.forecastCities = append(f.forecastCities, city.Name)
	return f.reading, f.forecastErr
}

func (f *fakeFetcher) FetchHistorical(_ context.Context, city weather.City, _ time.Time) (weather.HistoricalReport, error) {
	f.historicalCities = append(f.historicalCities, city.Name)
	return f.report, f.historicalErr
}

type memStore struct {
	index   int
	saves   int
	loadErr error
}

func (s *memStore) LoadCityIndex() (int, error) { return s.index, s.loadErr }
func (s *memStore) SaveCityIndex(index int) error {
	s.index = index
	s.saves++
	return nil
}

type rig struct {
	clock   *clockwork.FakeClock
	b1      *input.SimLine
	b2      *input.SimLine
	render  *recorder
	fetch   *fakeFetcher
	store   *memStore
	metrics *metrics.Metrics
	runner  *Runner
}

func newRig(t *testing.T, store *memStore) *rig {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 18, 6, 0, 0, 0, time.UTC))
	b1 := input.NewSimLine(clock)
	b2 := input.NewSimLine(clock)

	r := &rig{
		clock:   clock,
		b1:      b1,
		b2:      b2,
		render:  &recorder{},
		fetch:   &fakeFetcher{reading: weather.ForecastReading{TemperatureC: 5.5, WindSpeedMs: 3.2}},
		store:   store,
		metrics: metrics.New(nil),
	}

	runner, err := New(Options{
		Machine:  screen.NewMachine(screen.DefaultConfig()),
		Input:    input.NewDebouncer(clock, b1, b2),
		Fetcher:  r.fetch,
		Renderer: r.render,
		Store:    store,
		Clock:    clock,
		Metrics:  r.metrics,
		Tick:     tick,
	})
	require.NoError(t, err)
	r.runner = runner
	return r
}

// run steps the loop tick by tick for d.
func (r *rig) run(d time.Duration) {
	ctx := context.Background()
	for elapsed := time.Duration(0); elapsed < d; elapsed += tick {
		r.runner.Step(ctx)
		r.clock.Advance(tick)
	}
}

func (r *rig) boot() {
	r.runner.Start(context.Background())
	r.run(3100 * time.Millisecond)
}

func (r *rig) tap1() {
	r.b1.Tap(50 * time.Millisecond)
	r.run(300 * time.Millisecond)
}

func (r *rig) tap2() {
	r.b2.Tap(50 * time.Millisecond)
	r.run(300 * time.Millisecond)
}

func (r *rig) longPress() {
	r.b1.Press()
	r.b2.Press()
	r.run(1200 * time.Millisecond)
	r.b1.Release()
	r.b2.Release()
	r.run(300 * time.Millisecond)
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	_, err = New(Options{
		Machine: screen.NewMachine(screen.DefaultConfig()),
		Input:   input.NewDebouncer(nil, input.NewSimLine(nil), input.NewSimLine(nil)),
		Fetcher: &fakeFetcher{},
	})
	assert.ErrorContains(t, err, "renderer")
}

func TestRunner_BootSplashThenMenu(t *testing.T) {
	r := newRig(t, &memStore{})

	r.runner.Start(context.Background())
	r.run(2900 * time.Millisecond)
	assert.Equal(t, []string{"boot"}, r.render.all())
	assert.Equal(t, screen.Boot, r.runner.State().Screen)

	r.run(200 * time.Millisecond)
	assert.Equal(t, []string{"boot", "menu:0"}, r.render.all())
	assert.Equal(t, screen.Menu, r.runner.State().Screen)
}

func TestRunner_ForecastFetchedOncePerEntry(t *testing.T) {
	r := newRig(t, &memStore{})
	r.boot()
	r.render.reset()

	r.tap2()
	assert.Equal(t, []string{"loading", "forecast:Stockholm:5.5:false"}, r.render.all())
	assert.Equal(t, []string{"Stockholm"}, r.fetch.forecastCities)

	// Buttons are ignored during the hold and nothing is refetched.
	r.tap1()
	r.run(9 * time.Second)
	assert.Equal(t, screen.Forecast, r.runner.State().Screen)
	assert.Len(t, r.fetch.forecastCities, 1)

	r.run(time.Second)
	assert.Equal(t, screen.Menu, r.runner.State().Screen)
	assert.Equal(t, "menu:0", r.render.last())

	// A second entry fetches again.
	r.tap2()
	assert.Len(t, r.fetch.forecastCities, 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.metrics.FetchRequests.WithLabelValues("forecast", metrics.OutcomeSuccess)))
}

func TestRunner_ForecastErrorIsRendered(t *testing.T) {
	r := newRig(t, &memStore{})
	r.fetch.forecastErr = errors.New("boom")
	r.boot()

	r.tap2()
	assert.Equal(t, "forecast:Stockholm:0.0:true", r.render.last())
	assert.Equal(t, 1.0, testutil.ToFloat64(r.metrics.FetchRequests.WithLabelValues("forecast", metrics.OutcomeNetworkError)))

	r.run(10 * time.Second)
	assert.Equal(t, screen.Menu, r.runner.State().Screen)
}

func TestRunner_HistoricalErrorHidesPartialReport(t *testing.T) {
	r := newRig(t, &memStore{})
	r.fetch.report = weather.HistoricalReport{Samples: []weather.HistoricalSample{{Hour: 0}}}
	r.fetch.historicalErr = errors.New("truncated")
	r.boot()

	r.tap1()
	r.tap2()
	assert.Equal(t, "historical:Stockholm:0:true", r.render.last())
}

func TestRunner_HistoricalIdlesUntilLongPress(t *testing.T) {
	r := newRig(t, &memStore{})
	r.fetch.report = weather.HistoricalReport{Samples: []weather.HistoricalSample{{Hour: 0}, {Hour: 6}}}
	r.boot()

	r.tap1()
	r.tap2()
	assert.Equal(t, "historical:Stockholm:2:false", r.render.last())
	assert.Equal(t, []string{"Stockholm"}, r.fetch.historicalCities)

	r.tap1()
	r.tap2()
	r.run(30 * time.Second)
	assert.Equal(t, screen.Historical, r.runner.State().Screen)
	assert.Len(t, r.fetch.historicalCities, 1)

	r.longPress()
	st := r.runner.State()
	assert.Equal(t, screen.Menu, st.Screen)
	assert.Equal(t, 0, st.MenuIndex)
	assert.Equal(t, "menu:0", r.render.last())
}

func TestRunner_CitySelectionPersistsAcrossRestart(t *testing.T) {
	store := &memStore{}
	r := newRig(t, store)
	r.boot()

	r.tap1()
	r.tap1()
	r.render.reset()
	r.tap2()
	assert.Equal(t, []string{"loading", "settings", "city:Stockholm"}, r.render.all())
	assert.Equal(t, screen.CitySelect, r.runner.State().Screen)

	r.tap1()
	assert.Equal(t, "city:Goteborg", r.render.last())
	assert.Equal(t, 0, store.saves)

	r.tap2()
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, 1, store.index)
	assert.Equal(t, screen.Menu, r.runner.State().Screen)
	assert.Equal(t, "menu:2", r.render.last())

	restarted := newRig(t, store)
	restarted.boot()
	assert.Equal(t, 1, restarted.runner.State().CityIndex)

	restarted.tap2()
	assert.Equal(t, []string{"Goteborg"}, restarted.fetch.forecastCities)
	assert.Equal(t, 1.0, testutil.ToFloat64(restarted.metrics.CityIndex))
}

func TestRunner_PersistedIndexOutOfRange(t *testing.T) {
	r := newRig(t, &memStore{index: 99})
	r.runner.Start(context.Background())
	assert.Equal(t, len(weather.DefaultCities)-1, r.runner.State().CityIndex)
}

func TestRunner_StoreLoadErrorUsesFirstCity(t *testing.T) {
	r := newRig(t, &memStore{index: 3, loadErr: errors.New("disk gone")})
	r.boot()
	assert.Equal(t, 0, r.runner.State().CityIndex)
	assert.Equal(t, screen.Menu, r.runner.State().Screen)
}

func TestRunner_LongPressDuringBoot(t *testing.T) {
	r := newRig(t, &memStore{})
	r.runner.Start(context.Background())

	r.longPress()
	assert.Equal(t, screen.Menu, r.runner.State().Screen)
	assert.Equal(t, 1.0, testutil.ToFloat64(r.metrics.ButtonEvents.WithLabelValues("both_held_long")))
}

func TestRunner_RunStopsOnCancel(t *testing.T) {
	r := newRig(t, &memStore{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.runner.Run(ctx) }()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	require.NoError(t, r.clock.BlockUntilContext(waitCtx, 1))

	r.clock.Advance(3100 * time.Millisecond)
	require.Eventually(t, func() bool { return r.render.last() == "menu:0" }, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestEventName(t *testing.T) {
	assert.Equal(t, "start", eventName(screen.Start{}))
	assert.Equal(t, "tick", eventName(screen.Tick{}))
	assert.Equal(t, "button2", eventName(screen.Press{Button: input.Button2}))
	assert.Equal(t, "forecast_loaded", eventName(screen.ForecastLoaded{}))
	assert.Equal(t, "historical_loaded", eventName(screen.HistoricalLoaded{}))
}
