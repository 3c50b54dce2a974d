package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/muurk/weatherpanel/internal/weather"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(PrimaryColor)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle.Padding(0, 1)
			}
			if col == 0 {
				return ResultKeyStyle.UnsetWidth().Padding(0, 1)
			}
			return ReadingValueStyle.Padding(0, 1)
		})
}

// RenderForecast renders the current forecast reading for city
func RenderForecast(city weather.City, reading weather.ForecastReading) string {
	t := newTable("Reading", "Value").
		Row("Temperature", fmt.Sprintf("%.1f °C", reading.TemperatureC)).
		Row("Wind", fmt.Sprintf("%.1f m/s", reading.WindSpeedMs)).
		Row("Humidity", fmt.Sprintf("%.0f %%", reading.HumidityPct))

	title := HeaderTitleStyle.Render(fmt.Sprintf("%s  %s", city.Name, lipgloss.NewStyle().Foreground(MutedColor).Render(fmt.Sprintf("%.4f, %.4f", city.Latitude, city.Longitude))))
	return lipgloss.JoinVertical(lipgloss.Left, title, t.Render())
}

// RenderHistorical renders yesterday's filtered observations for city.
// An empty report renders a single "no observations" line.
func RenderHistorical(city weather.City, report weather.HistoricalReport) string {
	title := HeaderTitleStyle.Render(fmt.Sprintf("%s  %s", city.Name, lipgloss.NewStyle().Foreground(MutedColor).Render(report.DateString()+" UTC")))

	if len(report.Samples) == 0 {
		empty := TroubleshootingItemStyle.PaddingLeft(2).Render("No observations for the reported hours.")
		return lipgloss.JoinVertical(lipgloss.Left, title, empty)
	}

	t := newTable("Time", "Temperature")
	for _, s := range report.Samples {
		t.Row(fmt.Sprintf("%02d:%02d", s.Hour, s.Minute), fmt.Sprintf("%.1f °C", s.TemperatureC))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, t.Render())
}

// RenderCities renders the city catalog, marking the selected index.
// selected may be out of range, in which case nothing is marked.
func RenderCities(cities []weather.City, selected int) string {
	lines := make([]string, 0, len(cities))
	for i, c := range cities {
		marker := " "
		style := ResultValueStyle
		if i == selected {
			marker = SelectedMarker
			style = SelectedRowStyle
		}
		line := fmt.Sprintf("  %s %d  %-12s %9.4f %9.4f  station %s", marker, i, c.Name, c.Latitude, c.Longitude, c.StationID)
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}
