package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecast(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		rain     bool
		maxProb  float64
		avgTemp  float64
		wantText string
	}{
		{
			name:     "rain expected",
			body:     `{"daily":{"time":["2024-06-01","2024-06-02","2024-06-03"],"temperature_2m_max":[31.2,30.1,29.4],"precipitation_probability_max":[20,65,41]}}`,
			rain:     true,
			maxProb:  65,
			avgTemp:  30.2,
			wantText: "Max Rain Prob: 65%, Temp: 30.2C",
		},
		{
			name:     "threshold is exclusive",
			body:     `{"daily":{"temperature_2m_max":[35,36,37],"precipitation_probability_max":[40,10,0]}}`,
			rain:     false,
			maxProb:  40,
			avgTemp:  36,
			wantText: "Max Rain Prob: 40%, Temp: 36C",
		},
		{
			name:    "nulls ignored",
			body:    `{"daily":{"temperature_2m_max":[null,30],"precipitation_probability_max":[null,null]}}`,
			rain:    false,
			maxProb: 0,
			avgTemp: 30,
		},
		{
			name: "missing daily block",
			body: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/forecast", r.URL.Path)
				q := r.URL.Query()
				assert.Equal(t, "18.5204", q.Get("latitude"))
				assert.Equal(t, "73.8567", q.Get("longitude"))
				assert.Equal(t, "3", q.Get("forecast_days"))
				assert.Equal(t, "auto", q.Get("timezone"))
				assert.Contains(t, q.Get("daily"), "precipitation_probability_max")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			w, err := NewClient(WithBaseURL(ts.URL)).Forecast(context.Background(), 18.5204, 73.8567)
			require.NoError(t, err)
			assert.Equal(t, tt.rain, w.RainNext3Days)
			assert.Equal(t, tt.maxProb, w.MaxRainProbability)
			assert.InDelta(t, tt.avgTemp, w.AvgMaxTemp, 0.001)
			if tt.wantText != "" {
				assert.Equal(t, tt.wantText, w.ForecastText)
			}
			assert.Empty(t, w.Error)
		})
	}
}

func TestForecast_ForecastDaysOption(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("forecast_days"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	_, err := NewClient(WithBaseURL(ts.URL), WithForecastDays(7)).Forecast(context.Background(), 1, 2)
	require.NoError(t, err)
}

func TestForecast_Errors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("latitude") == "0.0000" {
			_, _ = w.Write([]byte("not json"))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":true,"reason":"Latitude must be in range"}`))
	}))
	defer ts.Close()

	c := NewClient(WithBaseURL(ts.URL))

	_, err := c.Forecast(context.Background(), 999, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 400")

	_, err = c.Forecast(context.Background(), 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openmeteo: decode response")
}
