// Package ui provides terminal output components for the weatherpanel CLI.
//
// These components follow a "print once and exit" pattern for the one-shot
// commands (forecast, historical, cities, scan, config). The interactive
// simulator lives in the sim package.
//
// # Components
//
//   - Header: command banner showing the operation and its parameters
//   - Result: success, failure and warning boxes
//   - Weather tables: forecast readings, historical samples, city catalog
//
// # Usage Pattern
//
//	p := ui.NewPrinter(os.Stdout)
//	p.Println(ui.NewHeader("FORECAST", "weatherpanel forecast", []ui.Param{
//	    {Key: "City", Value: city.Name},
//	}).Render())
//	p.Println(ui.RenderForecast(city, reading))
//
// Widths follow the terminal (golang.org/x/term) and are clamped between
// MinTerminalWidth and MaxContentWidth.
package ui
