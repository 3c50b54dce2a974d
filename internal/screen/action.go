package screen

import (
	"time"

	"github.com/muurk/weatherpanel/internal/weather"
)

// Action is an effect the driver performs for Step
type Action interface {
	isAction()
}

// RenderBoot shows the splash screen
type RenderBoot struct{}

// RenderMenu draws the menu with Selected highlighted
type RenderMenu struct {
	Selected int
}

// RenderLoading shows a transient loading line
type RenderLoading struct {
	Text string
}

// RenderForecast shows a reading, or only Err when the fetch failed
type RenderForecast struct {
	City    string
	Reading weather.ForecastReading
	Err     error
}

// RenderHistorical shows the day's samples, or only Err when the fetch failed
type RenderHistorical struct {
	City    string
	Date    time.Time
	Samples []weather.HistoricalSample
	Err     error
}

// RenderSettings draws the settings list
type RenderSettings struct{}

// RenderCitySelect shows the city being chosen
type RenderCitySelect struct {
	City string
}

// FetchForecast asks the driver for a forecast; answer with ForecastLoaded.
type FetchForecast struct {
	City weather.City
}

// FetchHistorical asks the driver for observations; answer with HistoricalLoaded.
type FetchHistorical struct {
	City weather.City
}

// PersistCity stores the confirmed city index
type PersistCity struct {
	Index int
}

func (RenderBoot) isAction()       {}
func (RenderMenu) isAction()       {}
func (RenderLoading) isAction()    {}
func (RenderForecast) isAction()   {}
func (RenderHistorical) isAction() {}
func (RenderSettings) isAction()   {}
func (RenderCitySelect) isAction() {}
func (FetchForecast) isAction()    {}
func (FetchHistorical) isAction()  {}
func (PersistCity) isAction()      {}
