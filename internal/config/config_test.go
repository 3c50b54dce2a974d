package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/muurk/weatherpanel/internal/weather"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux")
	}

	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "weatherpanel") {
		t.Errorf("GetConfigDir() = %s", dir)
	}

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("GetConfigPath() = %s, want config.yaml", path)
	}

	statePath, err := GetStatePath()
	if err != nil {
		t.Fatalf("GetStatePath() error = %v", err)
	}
	if filepath.Base(statePath) != "state.yaml" {
		t.Errorf("GetStatePath() = %s, want state.yaml", statePath)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", cfg.Version, CurrentVersion)
	}
	if len(cfg.Cities) != len(weather.DefaultCities) {
		t.Errorf("Cities = %d, want %d", len(cfg.Cities), len(weather.DefaultCities))
	}
	if cfg.Timing.Splash != 3*time.Second {
		t.Errorf("Splash = %v, want 3s", cfg.Timing.Splash)
	}
	if cfg.Timing.ForecastHold != 10*time.Second {
		t.Errorf("ForecastHold = %v, want 10s", cfg.Timing.ForecastHold)
	}
	if cfg.Timing.Debounce != 200*time.Millisecond {
		t.Errorf("Debounce = %v, want 200ms", cfg.Timing.Debounce)
	}
	if cfg.Timing.LongPress != time.Second {
		t.Errorf("LongPress = %v, want 1s", cfg.Timing.LongPress)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}

	// Default must not alias the package catalog
	cfg.Cities[0].Name = "changed"
	if weather.DefaultCities[0].Name == "changed" {
		t.Error("Default() shares the city slice with weather.DefaultCities")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Remote.Addr != DefaultRemoteAddr {
		t.Errorf("Remote.Addr = %s, want default", cfg.Remote.Addr)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `version: 1
cities:
  - name: Lund
    latitude: 55.7047
    longitude: 13.1910
    station_id: "53430"
timing:
  forecast_hold: 5s
buttons:
  button1_pin: GPIO5
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Cities) != 1 || cfg.Cities[0].Name != "Lund" || cfg.Cities[0].StationID != "53430" {
		t.Errorf("Cities = %+v", cfg.Cities)
	}
	if cfg.Timing.ForecastHold != 5*time.Second {
		t.Errorf("ForecastHold = %v, want 5s", cfg.Timing.ForecastHold)
	}
	if cfg.Timing.Splash != 3*time.Second {
		t.Errorf("Splash = %v, want default 3s", cfg.Timing.Splash)
	}
	if cfg.Buttons.Button1Pin != "GPIO5" || cfg.Buttons.Button2Pin != DefaultButton2Pin {
		t.Errorf("Buttons = %+v", cfg.Buttons)
	}
	if cfg.Endpoints.ForecastURL != weather.DefaultForecastURL {
		t.Errorf("ForecastURL = %s, want default", cfg.Endpoints.ForecastURL)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "version: [", "failed to parse"},
		{"wrong version", "version: 7\n", "unsupported config version"},
		{"bad duration", "version: 1\ntiming:\n  tick: soon\n", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := Default()
	cfg.Timing.Tick = 10 * time.Millisecond
	cfg.Remote.Announce = false
	cfg.Cities = cfg.Cities[:2]

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Timing.Tick != 10*time.Millisecond {
		t.Errorf("Tick = %v, want 10ms", loaded.Timing.Tick)
	}
	if loaded.Remote.Announce {
		t.Error("Announce = true, want false")
	}
	if len(loaded.Cities) != 2 || loaded.Cities[1] != weather.DefaultCities[1] {
		t.Errorf("Cities = %+v", loaded.Cities)
	}
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	content := "WEATHERPANEL_FORECAST_URL=http://file/{lat}/{lon}\nWEATHERPANEL_BUTTON1_PIN=GPIO6\nWEATHERPANEL_TICK=5ms\n"
	if err := os.WriteFile(dotenv, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvButton1Pin, "GPIO22")
	t.Setenv(EnvRemoteAddr, ":9999")
	t.Setenv(EnvAnnounce, "false")
	t.Setenv(EnvLogLevel, "debug")

	cfg := Default()
	if err := cfg.ApplyEnv(filepath.Join(dir, "missing.env"), dotenv); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.Endpoints.ForecastURL != "http://file/{lat}/{lon}" {
		t.Errorf("ForecastURL = %s, want value from dotenv", cfg.Endpoints.ForecastURL)
	}
	if cfg.Buttons.Button1Pin != "GPIO22" {
		t.Errorf("Button1Pin = %s, process env should win over dotenv", cfg.Buttons.Button1Pin)
	}
	if cfg.Timing.Tick != 5*time.Millisecond {
		t.Errorf("Tick = %v, want 5ms", cfg.Timing.Tick)
	}
	if cfg.Remote.Addr != ":9999" {
		t.Errorf("Remote.Addr = %s", cfg.Remote.Addr)
	}
	if cfg.Remote.Announce {
		t.Error("Announce should be false")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv(EnvHTTPTimeout, "forever")
	if err := Default().ApplyEnv(); err == nil {
		t.Error("ApplyEnv() should reject an invalid duration")
	}

	t.Setenv(EnvHTTPTimeout, "")
	t.Setenv(EnvAnnounce, "maybe")
	if err := Default().ApplyEnv(); err == nil {
		t.Error("ApplyEnv() should reject an invalid bool")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"no cities", func(c *Config) { c.Cities = nil }, "at least one city"},
		{"empty name", func(c *Config) { c.Cities[0].Name = " " }, "name is required"},
		{"latitude", func(c *Config) { c.Cities[0].Latitude = 91 }, "latitude"},
		{"longitude", func(c *Config) { c.Cities[0].Longitude = -181 }, "longitude"},
		{"station", func(c *Config) { c.Cities[0].StationID = "" }, "station_id"},
		{"forecast template", func(c *Config) { c.Endpoints.ForecastURL = "http://x/{lat}" }, "forecast_url"},
		{"historical template", func(c *Config) { c.Endpoints.HistoricalURL = "http://x" }, "historical_url"},
		{"negative limit", func(c *Config) { c.Endpoints.ForecastBodyLimit = -1 }, "body limits"},
		{"zero splash", func(c *Config) { c.Timing.Splash = 0 }, "timing.splash"},
		{"slow tick", func(c *Config) { c.Timing.Tick = time.Second }, "timing.tick"},
		{"missing pin", func(c *Config) { c.Buttons.Button2Pin = "" }, "button pins"},
		{"same pin", func(c *Config) { c.Buttons.Button2Pin = c.Buttons.Button1Pin }, "must differ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestScreenConfigAndClient(t *testing.T) {
	cfg := Default()
	cfg.Timing.ForecastHold = 2 * time.Second
	cfg.Endpoints.Timeout = 3 * time.Second
	cfg.Endpoints.UserAgent = "panel/1"

	sc := cfg.ScreenConfig()
	if sc.ForecastHold != 2*time.Second || len(sc.Cities) != len(cfg.Cities) {
		t.Errorf("ScreenConfig() = %+v", sc)
	}

	client := cfg.WeatherClient()
	if client.HTTPClient.Timeout != 3*time.Second {
		t.Errorf("client timeout = %v, want 3s", client.HTTPClient.Timeout)
	}
	if client.UserAgent != "panel/1" {
		t.Errorf("UserAgent = %s", client.UserAgent)
	}
}
