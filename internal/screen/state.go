package screen

import (
	"fmt"
	"time"

	"github.com/muurk/weatherpanel/internal/weather"
)

// Screen identifies the active screen
type Screen int

const (
	Boot Screen = iota
	Menu
	Forecast
	Historical
	Settings
	CitySelect
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case Boot:
		return "boot"
	case Menu:
		return "menu"
	case Forecast:
		return "forecast"
	case Historical:
		return "historical"
	case Settings:
		return "settings"
	case CitySelect:
		return "city_select"
	default:
		return fmt.Sprintf("Screen(%d)", int(s))
	}
}

// Menu entries, in display order. The index of an entry is the menu index
// that opens it.
var MenuItems = []string{"Forecast", "Historical", "Settings"}

// MenuItemCount is the number of menu entries
var MenuItemCount = len(MenuItems)

const (
	menuForecast = iota
	menuHistorical
	menuSettings
)

// Pending tracks an outstanding fetch
type Pending int

const (
	PendingNone Pending = iota
	// PendingForecastDue means the forecast fetch starts on the next tick
	PendingForecastDue
	PendingForecast
	PendingHistorical
)

// State is everything the state machine owns
type State struct {
	Screen    Screen
	MenuIndex int
	CityIndex int

	// Deadline ends the boot splash or the forecast hold
	Deadline time.Time

	Pending Pending
}

// Config holds the fixed inputs of the state machine
type Config struct {
	Cities       []weather.City
	Splash       time.Duration
	ForecastHold time.Duration
	LoadingText  string
}

const (
	DefaultSplash       = 3000 * time.Millisecond
	DefaultForecastHold = 10000 * time.Millisecond
	DefaultLoadingText  = "Loading..."
)

// DefaultConfig returns a config for the compiled-in city catalog
func DefaultConfig() Config {
	return Config{
		Cities:       weather.DefaultCities,
		Splash:       DefaultSplash,
		ForecastHold: DefaultForecastHold,
		LoadingText:  DefaultLoadingText,
	}
}

// ClampCityIndex maps a persisted city index into range. Negative values
// become 0, values past the end become the last city.
func ClampCityIndex(index, cityCount int) int {
	if cityCount <= 0 || index < 0 {
		return 0
	}
	if index >= cityCount {
		return cityCount - 1
	}
	return index
}
