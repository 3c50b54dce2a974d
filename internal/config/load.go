package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override config file values
const (
	EnvLogLevel      = "WEATHERPANEL_LOG_LEVEL"
	EnvForecastURL   = "WEATHERPANEL_FORECAST_URL"
	EnvHistoricalURL = "WEATHERPANEL_HISTORICAL_URL"
	EnvHTTPTimeout   = "WEATHERPANEL_HTTP_TIMEOUT"
	EnvButton1Pin    = "WEATHERPANEL_BUTTON1_PIN"
	EnvButton2Pin    = "WEATHERPANEL_BUTTON2_PIN"
	EnvTick          = "WEATHERPANEL_TICK"
	EnvRemoteAddr    = "WEATHERPANEL_REMOTE_ADDR"
	EnvRemoteName    = "WEATHERPANEL_REMOTE_NAME"
	EnvAnnounce      = "WEATHERPANEL_ANNOUNCE"
)

// Load reads the configuration file at path. An empty path means the
// default location. A missing file yields the defaults.
//
// Values absent from the file keep their defaults. Load does not validate;
// call Validate after applying environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return parse(data)
}

func parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported config version: %d (expected %d)", cfg.Version, CurrentVersion)
	}

	return cfg, nil
}

// ApplyEnv overrides values with WEATHERPANEL_* variables. Variables are
// looked up in the process environment first, then in the given dotenv
// files in order. Missing dotenv files are skipped.
func (c *Config) ApplyEnv(dotenvFiles ...string) error {
	fileVars := make(map[string]string)
	for i := len(dotenvFiles) - 1; i >= 0; i-- {
		vars, err := godotenv.Read(dotenvFiles[i])
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", dotenvFiles[i], err)
		}
		for k, v := range vars {
			fileVars[k] = v
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}

	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	setDuration := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = d
		return nil
	}

	setString(EnvLogLevel, &c.LogLevel)
	setString(EnvForecastURL, &c.Endpoints.ForecastURL)
	setString(EnvHistoricalURL, &c.Endpoints.HistoricalURL)
	setString(EnvButton1Pin, &c.Buttons.Button1Pin)
	setString(EnvButton2Pin, &c.Buttons.Button2Pin)
	setString(EnvRemoteAddr, &c.Remote.Addr)
	setString(EnvRemoteName, &c.Remote.Name)

	if err := setDuration(EnvHTTPTimeout, &c.Endpoints.Timeout); err != nil {
		return err
	}
	if err := setDuration(EnvTick, &c.Timing.Tick); err != nil {
		return err
	}

	if v, ok := lookup(EnvAnnounce); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvAnnounce, v, err)
		}
		c.Remote.Announce = b
	}

	return nil
}

// Validate checks the configuration for values the device cannot run with.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, CurrentVersion)
	}

	if len(c.Cities) == 0 {
		return fmt.Errorf("at least one city is required")
	}
	for i, city := range c.Cities {
		if strings.TrimSpace(city.Name) == "" {
			return fmt.Errorf("city %d: name is required", i)
		}
		if city.Latitude < -90 || city.Latitude > 90 {
			return fmt.Errorf("city %q: latitude %.4f out of range", city.Name, city.Latitude)
		}
		if city.Longitude < -180 || city.Longitude > 180 {
			return fmt.Errorf("city %q: longitude %.4f out of range", city.Name, city.Longitude)
		}
		if city.StationID == "" {
			return fmt.Errorf("city %q: station_id is required", city.Name)
		}
	}

	if !strings.Contains(c.Endpoints.ForecastURL, "{lat}") || !strings.Contains(c.Endpoints.ForecastURL, "{lon}") {
		return fmt.Errorf("forecast_url must contain {lat} and {lon}")
	}
	if !strings.Contains(c.Endpoints.HistoricalURL, "{station}") {
		return fmt.Errorf("historical_url must contain {station}")
	}
	if c.Endpoints.ForecastBodyLimit < 0 || c.Endpoints.HistoricalBodyLimit < 0 {
		return fmt.Errorf("body limits must not be negative")
	}

	durations := []struct {
		name string
		d    time.Duration
	}{
		{"splash", c.Timing.Splash},
		{"forecast_hold", c.Timing.ForecastHold},
		{"debounce", c.Timing.Debounce},
		{"long_press", c.Timing.LongPress},
		{"tick", c.Timing.Tick},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("timing.%s must be positive, got %s", d.name, d.d)
		}
	}
	if c.Timing.Tick > c.Timing.Debounce {
		return fmt.Errorf("timing.tick (%s) must not exceed timing.debounce (%s)", c.Timing.Tick, c.Timing.Debounce)
	}

	if c.Buttons.Button1Pin == "" || c.Buttons.Button2Pin == "" {
		return fmt.Errorf("both button pins are required")
	}
	if c.Buttons.Button1Pin == c.Buttons.Button2Pin {
		return fmt.Errorf("button pins must differ, both are %s", c.Buttons.Button1Pin)
	}

	return nil
}

// Save writes the configuration to path atomically. An empty path means the
// default location.
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Weather Panel Configuration File
# Durations use Go syntax (e.g. 3s, 200ms).
# WEATHERPANEL_* environment variables override these values.
#
# Location: ` + path + `

`)

	return writeFileAtomic(path, append(header, data...))
}
