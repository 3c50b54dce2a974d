package weather

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Forecast parameter codes
const (
	ParamTemperature = "t"
	ParamWindSpeed   = "ws"
	ParamHumidity    = "r"
)

type forecastDocument struct {
	TimeSeries *[]forecastPoint `json:"timeSeries"`
}

type forecastPoint struct {
	ValidTime  string              `json:"validTime"`
	Parameters []forecastParameter `json:"parameters"`
}

type forecastParameter struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// ParseForecast extracts the reading from the first point of a forecast document.
func ParseForecast(data []byte) (ForecastReading, error) {
	var doc forecastDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ForecastReading{}, err
	}
	if doc.TimeSeries == nil {
		return ForecastReading{}, errors.New("missing timeSeries")
	}
	if len(*doc.TimeSeries) == 0 {
		return ForecastReading{}, errors.New("empty timeSeries")
	}

	var reading ForecastReading
	for _, p := range (*doc.TimeSeries)[0].Parameters {
		if len(p.Values) == 0 {
			continue
		}
		switch p.Name {
		case ParamTemperature:
			reading.TemperatureC = p.Values[0]
		case ParamWindSpeed:
			reading.WindSpeedMs = p.Values[0]
		case ParamHumidity:
			reading.HumidityPct = p.Values[0]
		}
	}
	return reading, nil
}

type observationDocument struct {
	Value *[]observation `json:"value"`
}

type observation struct {
	Date  int64  `json:"date"`
	Value scalar `json:"value"`
}

// scalar accepts a JSON number or a numeric string. Null and "" leave it unset.
type scalar struct {
	v  float64
	ok bool
}

func (s *scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		if str == "" {
			return nil
		}
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return fmt.Errorf("invalid observation value %q: %w", str, err)
		}
		s.v, s.ok = f, true
		return nil
	}
	if err := json.Unmarshal(b, &s.v); err != nil {
		return err
	}
	s.ok = true
	return nil
}

// ParseHistorical keeps yesterday's observations (relative to now, UTC) taken
// at one of the ReportedHours. Source order is preserved.
func ParseHistorical(data []byte, now time.Time) (HistoricalReport, error) {
	var doc observationDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return HistoricalReport{}, err
	}
	if doc.Value == nil {
		return HistoricalReport{}, errors.New("missing value list")
	}

	day := Yesterday(now)
	report := HistoricalReport{Date: day}
	for _, o := range *doc.Value {
		if !o.Value.ok {
			continue
		}
		ts := time.UnixMilli(o.Date).UTC()
		if ts.Year() != day.Year() || ts.Month() != day.Month() || ts.Day() != day.Day() {
			continue
		}
		if !ReportedHours[ts.Hour()] {
			continue
		}
		report.Samples = append(report.Samples, HistoricalSample{
			Hour:         ts.Hour(),
			Minute:       ts.Minute(),
			TemperatureC: o.Value.v,
		})
	}
	return report, nil
}
