// Package weather fetches and parses the two remote data sources shown on the panel.
//
// The forecast source returns a time-ordered series of forecast points for a
// coordinate; only the first point is used. The observation source returns the
// latest day of hourly temperature observations for a weather station; only
// yesterday's samples at a fixed set of hours are kept.
//
// # Usage Example
//
//	client := weather.NewClient()
//	city := weather.DefaultCities[0]
//
//	reading, err := client.FetchForecast(ctx, city)
//	if err != nil {
//	    fmt.Println(weather.ShortMessage(err))
//	}
//
// # Compatibility
//
// The JSON key names (timeSeries, parameters, name, values, value, date) and
// the parameter codes "t", "ws" and "r" are those of the upstream providers and
// must not change.
//
// Every fetch is a single blocking request. There is no retry and no cache:
// a failure is returned as a *FetchError and shown to the user as is.
package weather
