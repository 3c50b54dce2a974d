package config

import (
	"time"

	"github.com/muurk/weatherpanel/internal/input"
	"github.com/muurk/weatherpanel/internal/screen"
	"github.com/muurk/weatherpanel/internal/weather"
)

// CurrentVersion is the only config file version understood by Load
const CurrentVersion = 1

// Config represents the entire device configuration file.
type Config struct {
	Version   int            `yaml:"version"`
	LogLevel  string         `yaml:"log_level,omitempty"`
	Cities    []weather.City `yaml:"cities"`
	Endpoints Endpoints      `yaml:"endpoints"`
	Timing    Timing         `yaml:"timing"`
	Buttons   Buttons        `yaml:"buttons"`
	Remote    Remote         `yaml:"remote"`
}

// Endpoints configures the two remote data sources.
type Endpoints struct {
	ForecastURL         string        `yaml:"forecast_url"`          // Template with {lat} and {lon}
	HistoricalURL       string        `yaml:"historical_url"`        // Template with {station}
	Timeout             time.Duration `yaml:"timeout"`               // Per-request transport timeout
	ForecastBodyLimit   int64         `yaml:"forecast_body_limit"`   // Bytes
	HistoricalBodyLimit int64         `yaml:"historical_body_limit"` // Bytes
	UserAgent           string        `yaml:"user_agent,omitempty"`
}

// Timing holds every duration the device loop and state machine use.
type Timing struct {
	Splash       time.Duration `yaml:"splash"`
	ForecastHold time.Duration `yaml:"forecast_hold"`
	Debounce     time.Duration `yaml:"debounce"`
	LongPress    time.Duration `yaml:"long_press"`
	Tick         time.Duration `yaml:"tick"`
}

// Buttons names the GPIO pins wired to the two buttons.
type Buttons struct {
	Button1Pin string `yaml:"button1_pin"`
	Button2Pin string `yaml:"button2_pin"`
}

// Remote configures the websocket remote panel.
type Remote struct {
	Addr     string `yaml:"addr"`
	Announce bool   `yaml:"announce"` // Announce via mDNS while running
	Name     string `yaml:"name"`     // mDNS instance name
}

const (
	DefaultTick       = 20 * time.Millisecond
	DefaultButton1Pin = "GPIO17"
	DefaultButton2Pin = "GPIO27"
	DefaultRemoteAddr = ":8080"
	DefaultRemoteName = "weatherpanel"
)

// Default returns a configuration with every value at its compiled-in default.
func Default() *Config {
	cities := make([]weather.City, len(weather.DefaultCities))
	copy(cities, weather.DefaultCities)

	return &Config{
		Version: CurrentVersion,
		Cities:  cities,
		Endpoints: Endpoints{
			ForecastURL:         weather.DefaultForecastURL,
			HistoricalURL:       weather.DefaultHistoricalURL,
			Timeout:             weather.DefaultTimeout,
			ForecastBodyLimit:   weather.DefaultForecastBodyLimit,
			HistoricalBodyLimit: weather.DefaultHistoricalBodyLimit,
		},
		Timing: Timing{
			Splash:       screen.DefaultSplash,
			ForecastHold: screen.DefaultForecastHold,
			Debounce:     input.DefaultDebounce,
			LongPress:    input.DefaultLongPress,
			Tick:         DefaultTick,
		},
		Buttons: Buttons{
			Button1Pin: DefaultButton1Pin,
			Button2Pin: DefaultButton2Pin,
		},
		Remote: Remote{
			Addr:     DefaultRemoteAddr,
			Announce: true,
			Name:     DefaultRemoteName,
		},
	}
}

// ScreenConfig returns the state machine configuration.
func (c *Config) ScreenConfig() screen.Config {
	cfg := screen.DefaultConfig()
	cfg.Cities = c.Cities
	cfg.Splash = c.Timing.Splash
	cfg.ForecastHold = c.Timing.ForecastHold
	return cfg
}

// WeatherClient returns a fetch client for the configured endpoints.
func (c *Config) WeatherClient() *weather.Client {
	client := weather.NewClient()
	client.ForecastURL = c.Endpoints.ForecastURL
	client.HistoricalURL = c.Endpoints.HistoricalURL
	client.ForecastBodyLimit = c.Endpoints.ForecastBodyLimit
	client.HistoricalBodyLimit = c.Endpoints.HistoricalBodyLimit
	client.UserAgent = c.Endpoints.UserAgent
	if c.Endpoints.Timeout > 0 {
		client.SetTimeout(c.Endpoints.Timeout)
	}
	return client
}
