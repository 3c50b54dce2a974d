// Package display draws the panel screens.
//
// Renderer is the boundary the driver calls for every screen. Panel is the
// implementation used by the simulator, the GPIO runner and the remote panel:
// a fixed grid of character cells that is cleared and redrawn in full on
// every call.
package display

import (
	"time"

	"github.com/muurk/weatherpanel/internal/weather"
)

// Renderer draws one screen per call. Calls are fire-and-forget.
type Renderer interface {
	RenderBoot()
	RenderMenu(selected int)
	RenderForecast(city string, reading weather.ForecastReading, err error)
	RenderHistorical(city string, date time.Time, samples []weather.HistoricalSample, err error)
	RenderSettings()
	RenderCitySelect(city string)
	RenderLoading(text string)
}
