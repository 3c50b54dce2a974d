package device

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/muurk/weatherpanel/internal/display"
	"github.com/muurk/weatherpanel/internal/input"
	"github.com/muurk/weatherpanel/internal/logging"
	"github.com/muurk/weatherpanel/internal/metrics"
	"github.com/muurk/weatherpanel/internal/screen"
	"github.com/muurk/weatherpanel/internal/weather"
)

// DefaultTick is the main loop period
const DefaultTick = 20 * time.Millisecond

// Fetcher retrieves forecast and observation data. weather.Client
// implements it.
type Fetcher interface {
	FetchForecast(ctx context.Context, city weather.City) (weather.ForecastReading, error)
	FetchHistorical(ctx context.Context, city weather.City, now time.Time) (weather.HistoricalReport, error)
}

// CityStore persists the selected city index. config.StateStore
// implements it.
type CityStore interface {
	LoadCityIndex() (int, error)
	SaveCityIndex(index int) error
}

// InputSource yields at most one debounced event per poll.
// input.Debouncer implements it.
type InputSource interface {
	Poll() input.Event
}

// Options configures a Runner. Machine, Input, Fetcher and Renderer are
// required.
type Options struct {
	Machine  *screen.Machine
	Input    InputSource
	Fetcher  Fetcher
	Renderer display.Renderer
	Store    CityStore        // optional; nil keeps the city in memory only
	Clock    clockwork.Clock  // optional; defaults to the real clock
	Metrics  *metrics.Metrics // optional
	Tick     time.Duration    // optional; defaults to DefaultTick
}

// Runner is the main loop driver
type Runner struct {
	machine  *screen.Machine
	input    InputSource
	fetcher  Fetcher
	renderer display.Renderer
	store    CityStore
	clock    clockwork.Clock
	metrics  *metrics.Metrics
	tick     time.Duration

	mu      sync.Mutex
	state   screen.State
	started bool
}

// New creates a Runner. The persisted city is loaded by Start.
func New(opts Options) (*Runner, error) {
	if opts.Machine == nil {
		return nil, errors.New("device: machine is required")
	}
	if opts.Input == nil {
		return nil, errors.New("device: input source is required")
	}
	if opts.Fetcher == nil {
		return nil, errors.New("device: fetcher is required")
	}
	if opts.Renderer == nil {
		return nil, errors.New("device: renderer is required")
	}

	r := &Runner{
		machine:  opts.Machine,
		input:    opts.Input,
		fetcher:  opts.Fetcher,
		renderer: opts.Renderer,
		store:    opts.Store,
		clock:    opts.Clock,
		metrics:  opts.Metrics,
		tick:     opts.Tick,
	}
	if r.clock == nil {
		r.clock = clockwork.NewRealClock()
	}
	if r.tick <= 0 {
		r.tick = DefaultTick
	}
	return r, nil
}

// State returns a snapshot of the current screen state
func (r *Runner) State() screen.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Start restores the persisted city and shows the boot splash. A store read
// failure is logged and the first city is used.
func (r *Runner) Start(ctx context.Context) {
	index := 0
	if r.store != nil {
		i, err := r.store.LoadCityIndex()
		if err != nil {
			logging.Warn("Failed to load persisted city, using default", zap.Error(err))
		} else {
			index = i
		}
	}

	state := r.machine.NewState(index)
	r.mu.Lock()
	r.state = state
	r.started = true
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.CityIndex.Set(float64(state.CityIndex))
		r.metrics.ActiveScreen.WithLabelValues(state.Screen.String()).Set(1)
	}
	logging.Info("Device starting",
		zap.Int("city_index", state.CityIndex),
		zap.String("city", r.machine.Config().Cities[state.CityIndex].Name),
	)

	r.dispatch(ctx, screen.Start{Now: r.clock.Now()})
}

// Step runs one loop iteration: poll input, then tick.
func (r *Runner) Step(ctx context.Context) {
	now := r.clock.Now()

	if ev := r.input.Poll(); ev != input.None {
		logging.LogButton(ev.String(), r.State().Screen.String())
		if r.metrics != nil {
			r.metrics.ButtonEvents.WithLabelValues(ev.String()).Inc()
		}
		r.dispatch(ctx, screen.Press{Button: ev, Now: now})
	}

	r.dispatch(ctx, screen.Tick{Now: now})
}

// Run starts the device if needed and loops until ctx is canceled.
func (r *Runner) Run(ctx context.Context) error {
	r.mu.Lock()
	started := r.started
	r.mu.Unlock()
	if !started {
		r.Start(ctx)
	}

	ticker := r.clock.NewTicker(r.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info("Device stopped")
			return nil
		case <-ticker.Chan():
			r.Step(ctx)
		}
	}
}

// dispatch feeds ev to the state machine and performs the resulting actions.
// Fetch results are fed back in order before dispatch returns.
func (r *Runner) dispatch(ctx context.Context, ev screen.Event) {
	queue := []screen.Event{ev}

	for len(queue) > 0 {
		ev := queue[0]
		queue = queue[1:]

		r.mu.Lock()
		prev := r.state
		next, actions := r.machine.Step(prev, ev)
		r.state = next
		r.mu.Unlock()

		if prev.Screen != next.Screen {
			logging.LogTransition(prev.Screen.String(), next.Screen.String(), eventName(ev))
			if r.metrics != nil {
				r.metrics.ObserveTransition(prev.Screen.String(), next.Screen.String())
			}
		}

		for _, a := range actions {
			if follow := r.perform(ctx, a); follow != nil {
				queue = append(queue, follow)
			}
		}
	}
}

// perform executes one action. Fetch actions return the event carrying
// their result.
func (r *Runner) perform(ctx context.Context, a screen.Action) screen.Event {
	switch a := a.(type) {
	case screen.RenderBoot:
		r.renderer.RenderBoot()
	case screen.RenderMenu:
		r.renderer.RenderMenu(a.Selected)
	case screen.RenderLoading:
		r.renderer.RenderLoading(a.Text)
	case screen.RenderForecast:
		r.renderer.RenderForecast(a.City, a.Reading, a.Err)
	case screen.RenderHistorical:
		r.renderer.RenderHistorical(a.City, a.Date, a.Samples, a.Err)
	case screen.RenderSettings:
		r.renderer.RenderSettings()
	case screen.RenderCitySelect:
		r.renderer.RenderCitySelect(a.City)

	case screen.FetchForecast:
		start := r.clock.Now()
		reading, err := r.fetcher.FetchForecast(ctx, a.City)
		r.observeFetch(weather.SourceForecast, a.City, start, err)
		return screen.ForecastLoaded{Reading: reading, Err: err, Now: r.clock.Now()}

	case screen.FetchHistorical:
		start := r.clock.Now()
		report, err := r.fetcher.FetchHistorical(ctx, a.City, start)
		r.observeFetch(weather.SourceHistorical, a.City, start, err)
		return screen.HistoricalLoaded{Report: report, Err: err, Now: start}

	case screen.PersistCity:
		r.persist(a.Index)

	default:
		logging.Warn("Unknown action", zap.String("type", fmt.Sprintf("%T", a)))
	}
	return nil
}

func (r *Runner) observeFetch(src weather.Source, city weather.City, start time.Time, err error) {
	elapsed := r.clock.Since(start)
	logging.LogFetch(string(src), city.Name, elapsed, err)

	if r.metrics == nil {
		return
	}
	outcome := metrics.OutcomeSuccess
	switch {
	case weather.IsParseError(err):
		outcome = metrics.OutcomeParseError
	case err != nil:
		outcome = metrics.OutcomeNetworkError
	}
	r.metrics.ObserveFetch(string(src), outcome, elapsed.Seconds())
}

func (r *Runner) persist(index int) {
	if r.metrics != nil {
		r.metrics.CityIndex.Set(float64(index))
	}
	if r.store == nil {
		return
	}
	if err := r.store.SaveCityIndex(index); err != nil {
		logging.Warn("Failed to persist city", zap.Int("city_index", index), zap.Error(err))
		return
	}
	logging.Info("City saved", zap.Int("city_index", index))
}

func eventName(ev screen.Event) string {
	switch ev := ev.(type) {
	case screen.Start:
		return "start"
	case screen.Tick:
		return "tick"
	case screen.Press:
		return ev.Button.String()
	case screen.ForecastLoaded:
		return "forecast_loaded"
	case screen.HistoricalLoaded:
		return "historical_loaded"
	}
	return "unknown"
}
