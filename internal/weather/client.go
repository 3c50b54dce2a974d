package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultForecastURL is the point forecast endpoint; {lat} and {lon} are substituted
	DefaultForecastURL = "https://opendata-download-metfcst.smhi.se/api/category/pmp3g/version/2/geotype/point/lon/{lon}/lat/{lat}/data.json"

	// DefaultHistoricalURL is the station observation endpoint; {station} is substituted
	DefaultHistoricalURL = "https://opendata-download-metobs.smhi.se/api/version/latest/parameter/1/station/{station}/period/latest-day/data.json"

	// DefaultTimeout is the transport timeout for a single request
	DefaultTimeout = 15 * time.Second

	// MinForecastBodyLimit is the smallest forecast document the parser must accept
	MinForecastBodyLimit = 16 << 10
	// MinHistoricalBodyLimit is the smallest observation document the parser must accept
	MinHistoricalBodyLimit = 32 << 10

	DefaultForecastBodyLimit   = 1 << 20
	DefaultHistoricalBodyLimit = 512 << 10
)

// Client performs the forecast and observation requests
type Client struct {
	// ForecastURL is the forecast URL template ({lat}, {lon})
	ForecastURL string

	// HistoricalURL is the observation URL template ({station})
	HistoricalURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// ForecastBodyLimit bounds the forecast document size in bytes
	ForecastBodyLimit int64

	// HistoricalBodyLimit bounds the observation document size in bytes
	HistoricalBodyLimit int64

	// UserAgent is sent with every request when non-empty
	UserAgent string
}

// NewClient creates a client for the default endpoints
func NewClient() *Client {
	return &Client{
		ForecastURL:         DefaultForecastURL,
		HistoricalURL:       DefaultHistoricalURL,
		HTTPClient:          &http.Client{Timeout: DefaultTimeout},
		ForecastBodyLimit:   DefaultForecastBodyLimit,
		HistoricalBodyLimit: DefaultHistoricalBodyLimit,
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// ForecastRequestURL expands the forecast template for a city
func (c *Client) ForecastRequestURL(city City) string {
	r := strings.NewReplacer(
		"{lat}", formatCoordinate(city.Latitude),
		"{lon}", formatCoordinate(city.Longitude),
	)
	return r.Replace(c.ForecastURL)
}

// HistoricalRequestURL expands the observation template for a city
func (c *Client) HistoricalRequestURL(city City) string {
	return strings.ReplaceAll(c.HistoricalURL, "{station}", city.StationID)
}

// FetchForecast retrieves the first forecast point for the city.
// On failure the returned error is a *FetchError and the reading is zero.
func (c *Client) FetchForecast(ctx context.Context, city City) (ForecastReading, error) {
	body, err := c.get(ctx, SourceForecast, c.ForecastRequestURL(city), bodyLimit(c.ForecastBodyLimit, MinForecastBodyLimit))
	if err != nil {
		return ForecastReading{}, err
	}

	reading, err := ParseForecast(body)
	if err != nil {
		return ForecastReading{}, newParseError(SourceForecast, "failed to parse forecast", err)
	}
	return reading, nil
}

// FetchHistorical retrieves yesterday's observations for the city's station.
// now is the device wall clock; "yesterday" is derived from it.
func (c *Client) FetchHistorical(ctx context.Context, city City, now time.Time) (HistoricalReport, error) {
	body, err := c.get(ctx, SourceHistorical, c.HistoricalRequestURL(city), bodyLimit(c.HistoricalBodyLimit, MinHistoricalBodyLimit))
	if err != nil {
		return HistoricalReport{}, err
	}

	report, err := ParseHistorical(body, now)
	if err != nil {
		return HistoricalReport{}, newParseError(SourceHistorical, "failed to parse observations", err)
	}
	return report, nil
}

// get performs a single GET and returns the body of a 200 response
func (c *Client) get(ctx context.Context, src Source, rawURL string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, newNetworkError(src, "failed to create GET request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, newNetworkError(src, "GET request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError(src, resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, newNetworkError(src, "failed to read response body", err)
	}
	if int64(len(body)) > limit {
		return nil, newParseError(src, fmt.Sprintf("response exceeds %d bytes", limit), nil)
	}
	return body, nil
}

func bodyLimit(configured, min int64) int64 {
	if configured < min {
		return min
	}
	return configured
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
