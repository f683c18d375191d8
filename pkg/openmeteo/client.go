// Package openmeteo fetches short-range daily forecasts from the Open-Meteo API
// and reduces them to the rain and temperature signals used for advice.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/mandi-advisor/internal/model"
)

const (
	defaultBaseURL = "https://api.open-meteo.com"
	defaultDays    = 3

	// RainThreshold is the daily precipitation probability (percent) above
	// which rain is expected.
	RainThreshold = 40
)

var dailyFields = []string{
	"temperature_2m_max",
	"temperature_2m_min",
	"precipitation_sum",
	"precipitation_probability_max",
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithForecastDays sets how many days are aggregated.
func WithForecastDays(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.days = n
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// Client calls the Open-Meteo forecast endpoint. No API key is needed.
type Client struct {
	baseURL string
	days    int
	http    *http.Client
}

// NewClient creates an Open-Meteo client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		days:    defaultDays,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type forecastResponse struct {
	Daily struct {
		Time          []string   `json:"time"`
		TempMax       []*float64 `json:"temperature_2m_max"`
		TempMin       []*float64 `json:"temperature_2m_min"`
		PrecipSum     []*float64 `json:"precipitation_sum"`
		PrecipProbMax []*float64 `json:"precipitation_probability_max"`
	} `json:"daily"`
}

// Forecast returns the aggregated forecast for the coordinates.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (*model.Weather, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("daily", strings.Join(dailyFields, ","))
	params.Set("timezone", "auto")
	params.Set("forecast_days", strconv.Itoa(c.days))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "openmeteo: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "openmeteo: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "openmeteo: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("openmeteo: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var fr forecastResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return nil, eris.Wrap(err, "openmeteo: decode response")
	}
	return aggregate(fr), nil
}

func aggregate(fr forecastResponse) *model.Weather {
	w := &model.Weather{}

	for _, p := range fr.Daily.PrecipProbMax {
		if p != nil && *p > w.MaxRainProbability {
			w.MaxRainProbability = *p
		}
	}
	w.RainNext3Days = w.MaxRainProbability > RainThreshold

	var sum float64
	var n int
	for _, t := range fr.Daily.TempMax {
		if t != nil {
			sum += *t
			n++
		}
	}
	if n > 0 {
		w.AvgMaxTemp = math.Round(sum/float64(n)*10) / 10
	}

	w.ForecastText = fmt.Sprintf("Max Rain Prob: %s%%, Temp: %sC",
		strconv.FormatFloat(w.MaxRainProbability, 'f', -1, 64),
		strconv.FormatFloat(w.AvgMaxTemp, 'f', -1, 64))
	return w
}
