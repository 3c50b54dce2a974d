package screen

import (
	"time"

	"github.com/muurk/weatherpanel/internal/input"
	"github.com/muurk/weatherpanel/internal/weather"
)

// Event is an input to Step
type Event interface {
	isEvent()
}

// Start begins the boot splash
type Start struct {
	Now time.Time
}

// Tick is delivered once per main loop iteration
type Tick struct {
	Now time.Time
}

// Press is a debounced button event
type Press struct {
	Button input.Event
	Now    time.Time
}

// ForecastLoaded answers a FetchForecast action
type ForecastLoaded struct {
	Reading weather.ForecastReading
	Err     error
	Now     time.Time
}

// HistoricalLoaded answers a FetchHistorical action
type HistoricalLoaded struct {
	Report weather.HistoricalReport
	Err    error
	Now    time.Time
}

func (Start) isEvent()            {}
func (Tick) isEvent()             {}
func (Press) isEvent()            {}
func (ForecastLoaded) isEvent()   {}
func (HistoricalLoaded) isEvent() {}
