// Package urls holds the documentation links printed by the CLI when a
// fetch fails or the configuration needs attention.
//
// Usage:
//
//	import "github.com/muurk/weatherpanel/internal/urls"
//
//	fmt.Printf("Forecast API reference: %s\n", urls.ForecastAPI)
package urls
