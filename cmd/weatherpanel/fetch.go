package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/weatherpanel/internal/config"
	"github.com/muurk/weatherpanel/internal/logging"
	"github.com/muurk/weatherpanel/internal/screen"
	"github.com/muurk/weatherpanel/internal/ui"
	"github.com/muurk/weatherpanel/internal/urls"
	"github.com/muurk/weatherpanel/internal/weather"
)

// Fetch command flags
var cityFlag string

func init() {
	for _, cmd := range []*cobra.Command{forecastCmd, historicalCmd} {
		cmd.Flags().StringVar(&cityFlag, "city", "", "City name or catalog index (default is the selected city)")
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(citiesCmd)
}

// forecastCmd prints the current forecast once
var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Fetch and print the current forecast",
	Long: `Fetch the point forecast for a city and print the values shown on
the forecast screen: temperature, wind speed and relative humidity.`,
	Example: `  # Forecast for the selected city
  weatherpanel forecast

  # Forecast for Kiruna
  weatherpanel forecast --city Kiruna`,
	RunE: runForecast,
}

// historicalCmd prints yesterday's observations once
var historicalCmd = &cobra.Command{
	Use:   "historical",
	Short: "Fetch and print yesterday's observations",
	Long: `Fetch the latest-day temperature observations from the city's
weather station and print the samples from yesterday (UTC) at
00, 01, 06, 07, 12, 13, 18 and 19 o'clock.`,
	Example: `  weatherpanel historical --city Goteborg`,
	RunE:    runHistorical,
}

// citiesCmd lists the catalog
var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List the city catalog",
	Long:  `List the configured cities and mark the one selected on the panel.`,
	RunE:  runCities,
}

func runForecast(cmd *cobra.Command, args []string) error {
	cfg, city, err := prepareFetch()
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Forecast", "weatherpanel forecast", cityParams(city)...)

	start := time.Now()
	reading, err := newWeatherClient(cfg).FetchForecast(cmd.Context(), city)
	logging.LogFetch(string(weather.SourceForecast), city.Name, time.Since(start), err)
	if err != nil {
		p.PrintFailure(weather.ShortMessage(err), err,
			"Check your network connection",
			"Verify endpoints.forecast_url in the config file",
			"API reference: "+urls.ForecastAPI,
		)
		return fmt.Errorf("forecast failed: %w", err)
	}

	p.Println(ui.RenderForecast(city, reading))
	return nil
}

func runHistorical(cmd *cobra.Command, args []string) error {
	cfg, city, err := prepareFetch()
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Historical", "weatherpanel historical", cityParams(city)...)

	start := time.Now()
	report, err := newWeatherClient(cfg).FetchHistorical(cmd.Context(), city, time.Now())
	logging.LogFetch(string(weather.SourceHistorical), city.Name, time.Since(start), err)
	if err != nil {
		p.PrintFailure(weather.ShortMessage(err), err,
			"Check your network connection",
			"Verify the station_id of "+city.Name,
			"Station list: "+urls.StationList,
			"API reference: "+urls.ObservationsAPI,
		)
		return fmt.Errorf("historical fetch failed: %w", err)
	}

	p.Println(ui.RenderHistorical(city, report))
	return nil
}

func runCities(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := initLogging(cfg, false); err != nil {
		return err
	}

	selected, _ := selectedIndex(cfg)

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Cities", "weatherpanel cities",
		ui.Param{Key: "Selected", Value: cfg.Cities[selected].Name},
	)
	p.Println(ui.RenderCities(cfg.Cities, selected))
	return nil
}

// prepareFetch loads config and resolves the --city flag
func prepareFetch() (*config.Config, weather.City, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, weather.City{}, err
	}
	if err := initLogging(cfg, false); err != nil {
		return nil, weather.City{}, err
	}

	city, err := resolveCity(cfg, cityFlag)
	if err != nil {
		return nil, weather.City{}, err
	}
	return cfg, city, nil
}

// resolveCity picks a city by name (case-insensitive) or catalog index.
// An empty selector means the persisted selection.
func resolveCity(cfg *config.Config, selector string) (weather.City, error) {
	if selector == "" {
		index, err := selectedIndex(cfg)
		if err != nil {
			logging.Warn("Failed to read selected city, using first city", zap.Error(err))
		}
		return cfg.Cities[index], nil
	}

	if i, err := strconv.Atoi(selector); err == nil {
		if i < 0 || i >= len(cfg.Cities) {
			return weather.City{}, fmt.Errorf("city index %d out of range (0-%d)", i, len(cfg.Cities)-1)
		}
		return cfg.Cities[i], nil
	}

	for _, c := range cfg.Cities {
		if strings.EqualFold(c.Name, selector) {
			return c, nil
		}
	}
	return weather.City{}, fmt.Errorf("unknown city %q (see 'weatherpanel cities')", selector)
}

// selectedIndex returns the persisted city index clamped into the catalog.
// A read failure yields the first city together with the error.
func selectedIndex(cfg *config.Config) (int, error) {
	store, err := openStateStore()
	if err != nil {
		return 0, err
	}
	index, err := store.LoadCityIndex()
	if err != nil {
		return 0, err
	}
	return screen.ClampCityIndex(index, len(cfg.Cities)), nil
}

func cityParams(city weather.City) []ui.Param {
	return []ui.Param{
		{Key: "City", Value: city.Name},
		{Key: "Position", Value: fmt.Sprintf("%.4f, %.4f", city.Latitude, city.Longitude)},
		{Key: "Station", Value: city.StationID},
	}
}
