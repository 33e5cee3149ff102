package airnow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"airnow-hass/internal/netutil"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the AirNow current-observations-by-coordinates endpoint.
const DefaultBaseURL = "https://www.airnowapi.org/aq/observation/latLong/current/"

// DefaultDistance is the search radius (miles) passed to the API when the
// requested coordinates have no reporting area of their own.
const DefaultDistance = 50

// Client handles communication with the AirNow observation API.
type Client struct {
	baseURL    string
	apiKey     string
	distance   int
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new AirNow API client.
func NewClient(apiKey string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:  DefaultBaseURL,
		apiKey:   apiKey,
		distance: DefaultDistance,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: netutil.NewTransport(logger),
		},
		logger: logger,
	}
}

// SetTimeout configures the HTTP client timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

// SetBaseURL overrides the API endpoint. Used by tests and by deployments
// that proxy the AirNow API.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// SetDistance overrides the search radius in miles.
func (c *Client) SetDistance(miles int) {
	c.distance = miles
}

// Observations fetches the current per-pollutant observations for the given
// coordinates. The API returns one entry per pollutant; an empty slice means
// AirNow has no reporting area within the configured distance.
func (c *Client) Observations(ctx context.Context, latitude, longitude float64) ([]Observation, error) {
	query := url.Values{}
	query.Set("format", "application/json")
	query.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	query.Set("distance", strconv.Itoa(c.distance))
	query.Set("API_KEY", c.apiKey)

	fullURL := fmt.Sprintf("%s?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build AirNow request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("AirNow API returned status %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var observations []Observation
	if err := json.Unmarshal(body, &observations); err != nil {
		return nil, fmt.Errorf("failed to parse AirNow response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"status_code":  resp.StatusCode,
		"observations": len(observations),
	}).Debug("Received AirNow response")

	return observations, nil
}
