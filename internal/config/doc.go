// Package config provides device configuration and persisted state for the
// weather panel.
//
// Two YAML files live in the OS-specific configuration directory:
//   - config.yaml holds the city catalog, endpoint templates, timings, GPIO
//     pin names and remote panel settings. It is optional; a missing file
//     means compiled-in defaults.
//   - state.yaml holds the selected city index. It is written by the device
//     whenever a city is confirmed.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/weatherpanel or $HOME/.config/weatherpanel
//   - macOS: $HOME/.config/weatherpanel
//   - Windows: %LOCALAPPDATA%\weatherpanel
//
// # Environment Overrides
//
// WEATHERPANEL_* variables override values from config.yaml. Variables may
// also come from a .env file; the process environment wins over the file.
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.ApplyEnv(".env"); err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// File writes are protected by a mutex and performed atomically through a
// temporary file and rename.
package config
