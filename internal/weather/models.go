package weather

import (
	"fmt"
	"time"
)

// City is an entry in the fixed city catalog.
type City struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	StationID string  `yaml:"station_id"`
}

// String returns the city name with its coordinates
func (c City) String() string {
	return fmt.Sprintf("%s (%.4f, %.4f, station %s)", c.Name, c.Latitude, c.Longitude, c.StationID)
}

// DefaultCities is the catalog compiled into the binary. A config file may
// replace it.
var DefaultCities = []City{
	{Name: "Stockholm", Latitude: 59.3293, Longitude: 18.0686, StationID: "98230"},
	{Name: "Goteborg", Latitude: 57.7089, Longitude: 11.9746, StationID: "71420"},
	{Name: "Malmo", Latitude: 55.6050, Longitude: 13.0038, StationID: "52350"},
	{Name: "Uppsala", Latitude: 59.8586, Longitude: 17.6389, StationID: "97510"},
	{Name: "Kiruna", Latitude: 67.8558, Longitude: 20.2253, StationID: "180940"},
}

// ForecastReading holds the values shown on the forecast screen.
// Fields absent from the response stay at zero.
type ForecastReading struct {
	TemperatureC float64
	WindSpeedMs  float64
	HumidityPct  float64
}

// HistoricalSample is one observation kept for the historical screen.
type HistoricalSample struct {
	Hour         int
	Minute       int
	TemperatureC float64
}

// HistoricalReport is the filtered observation set for one calendar day.
type HistoricalReport struct {
	Date    time.Time // midnight UTC of the reported day
	Samples []HistoricalSample
}

// DateString formats the report date as YYYY-MM-DD
func (r HistoricalReport) DateString() string {
	return r.Date.Format(time.DateOnly)
}

// ReportedHours is the allow-list of observation hours (UTC).
var ReportedHours = map[int]bool{
	0: true, 1: true,
	6: true, 7: true,
	12: true, 13: true,
	18: true, 19: true,
}

// Yesterday returns midnight UTC of the calendar day before now.
func Yesterday(now time.Time) time.Time {
	y := now.UTC().Add(-24 * time.Hour)
	return time.Date(y.Year(), y.Month(), y.Day(), 0, 0, 0, 0, time.UTC)
}
