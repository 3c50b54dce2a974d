// Package logging provides structured logging for the weather panel.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the device loop, the fetchers and the remote panel.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Button events, websocket message contents
//   - Info: Screen transitions, completed fetches, connections
//   - Warn: Failed fetches, failed state writes
//   - Error: Startup failures
//
// # Silent Mode
//
// Logging is silent unless a level is given on the command line or in
// WEATHERPANEL_LOG_LEVEL. The terminal simulator draws on stdout, so when it
// runs the logger writes to a file instead:
//
//	if err := logging.InitializeWithOutput("debug", "/tmp/weatherpanel.log"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Specialized Logging
//
//	logging.LogFetch("forecast", "Stockholm", elapsed, err)
//	logging.LogTransition("menu", "forecast", "button2")
//	logging.LogButton("button1", "menu")
package logging
