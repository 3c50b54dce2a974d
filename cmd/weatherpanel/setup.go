package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/muurk/weatherpanel/internal/config"
	"github.com/muurk/weatherpanel/internal/device"
	"github.com/muurk/weatherpanel/internal/display"
	"github.com/muurk/weatherpanel/internal/input"
	"github.com/muurk/weatherpanel/internal/logging"
	"github.com/muurk/weatherpanel/internal/metrics"
	"github.com/muurk/weatherpanel/internal/screen"
	"github.com/muurk/weatherpanel/internal/version"
	"github.com/muurk/weatherpanel/internal/weather"
)

// dotenvFile is read from the working directory when present
const dotenvFile = ".env"

// panelTitle is shown on the boot splash
const panelTitle = "Weather Panel"

// loadConfig reads the config file, applies .env and environment overrides
// and the --log-level flag, then validates the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(dotenvFile); err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// initLogging configures the global logger. When the terminal is owned by
// the simulator, logs without --log-file go to a file in the config
// directory.
func initLogging(cfg *config.Config, terminalOwned bool) error {
	path := logFile
	if path == "" && !terminalOwned {
		return logging.Initialize(cfg.LogLevel)
	}
	if path == "" && cfg.LogLevel != "" {
		dir, err := config.GetConfigDir()
		if err != nil {
			return fmt.Errorf("failed to resolve log directory: %w", err)
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		path = filepath.Join(dir, "weatherpanel.log")
	}
	return logging.InitializeWithOutput(cfg.LogLevel, path)
}

// openStateStore returns the --state store or the default one
func openStateStore() (*config.StateStore, error) {
	if statePath != "" {
		return config.NewStateStore(statePath), nil
	}
	return config.DefaultStateStore()
}

// newWeatherClient builds the fetcher from config, defaulting the User-Agent
func newWeatherClient(cfg *config.Config) *weather.Client {
	client := cfg.WeatherClient()
	if client.UserAgent == "" {
		client.UserAgent = version.UserAgent()
	}
	return client
}

// newRunner wires the device loop for two button lines and a renderer
func newRunner(cfg *config.Config, b1, b2 input.Line, renderer display.Renderer, m *metrics.Metrics) (*device.Runner, error) {
	store, err := openStateStore()
	if err != nil {
		return nil, err
	}

	debouncer := input.NewDebouncer(nil, b1, b2)
	debouncer.Debounce = cfg.Timing.Debounce
	debouncer.LongPress = cfg.Timing.LongPress

	return device.New(device.Options{
		Machine:  screen.NewMachine(cfg.ScreenConfig()),
		Input:    debouncer,
		Fetcher:  newWeatherClient(cfg),
		Renderer: renderer,
		Store:    store,
		Metrics:  m,
		Tick:     cfg.Timing.Tick,
	})
}

// newPanel creates the character panel for the configured menu
func newPanel() *display.Panel {
	return display.NewPanel(panelTitle, screen.MenuItems)
}
