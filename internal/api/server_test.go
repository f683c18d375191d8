package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/mandi-advisor/internal/advisory"
	"github.com/sells-group/mandi-advisor/internal/history"
	"github.com/sells-group/mandi-advisor/internal/model"
)

type fakeHistory struct {
	crop, market string
	days         int
}

func (f *fakeHistory) Resolve(_ context.Context, crop, market string, days int) []model.HistoryPoint {
	f.crop, f.market, f.days = crop, market, days
	return []model.HistoryPoint{
		{Date: "2024-01-01", Open: 1500, High: 2200, Low: 1500, Close: 1800, Market: "Pune", Source: model.SourceDataset},
		{Date: "2024-01-02", Open: 1600, High: 2300, Low: 1600, Close: 1900, Market: "Pune", Source: model.SourceDataset},
	}
}

type fakePrices struct{}

func (fakePrices) Resolve(_ context.Context, market, crop string) model.ResolvedPrice {
	return model.NewResolvedPrice(market, crop, 1600, 2000, 2400, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), model.SourceSynthetic)
}

type fakeAdvisor struct{ req advisory.Request }

func (f *fakeAdvisor) Get(_ context.Context, req advisory.Request) *model.Advisory {
	f.req = req
	return &model.Advisory{ID: "abc", Crop: "Tomato", Location: model.ResolvedLocation{District: req.District, Market: "Pune"}}
}

func newTestServer() (*Server, *fakeHistory, *fakeAdvisor) {
	h, a := &fakeHistory{}, &fakeAdvisor{}
	s := NewServer(Deps{
		Filters: model.FilterIndex{"Pune": {"Pune": {"Onion", "Tomato"}}},
		History: h,
		Prices:  fakePrices{},
		Advisor: a,
	}, Options{})
	return s, h, a
}

func do(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRootAndHealth(t *testing.T) {
	s, _, _ := newTestServer()

	rec := do(t, s, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))

	rec = do(t, s, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mandi-advisor")
}

func TestFilters(t *testing.T) {
	s, _, _ := newTestServer()
	rec := do(t, s, "/filters")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"Pune":{"Pune":["Onion","Tomato"]}}`, rec.Body.String())
}

func TestHistory(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		status   int
		wantDays int
		wantMkt  string
	}{
		{"defaults", "/history?crop=Tomato", http.StatusOK, 30, ""},
		{"with mandi and days", "/history?crop=Tomato&mandi=Pune&days=2", http.StatusOK, 2, "Pune"},
		{"missing crop", "/history?mandi=Pune", http.StatusBadRequest, 0, ""},
		{"bad days", "/history?crop=Tomato&days=ten", http.StatusBadRequest, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, h, _ := newTestServer()
			rec := do(t, s, tt.target)
			require.Equal(t, tt.status, rec.Code)
			if tt.status != http.StatusOK {
				assert.Contains(t, rec.Body.String(), "detail")
				return
			}
			assert.Equal(t, tt.wantDays, h.days)
			assert.Equal(t, tt.wantMkt, h.market)

			var points []model.HistoryPoint
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
			require.Len(t, points, 2)
			assert.Equal(t, 1800.0, points[0].Close)
			assert.Equal(t, model.SourceDataset, points[1].Source)
		})
	}
	assert.Equal(t, 30, history.DefaultDays)
}

type failingGenerator struct{}

func (failingGenerator) GenerateHistory(context.Context, string, string, int) ([]model.HistoryPoint, error) {
	return nil, errors.New("model unavailable")
}

func TestHistory_OversizedDaysClamped(t *testing.T) {
	resolver := history.NewDefaultResolver(model.NewHistoryIndex(nil), failingGenerator{}, nil).WithMaxDays(45)
	s := NewServer(Deps{History: resolver, Prices: fakePrices{}, Advisor: &fakeAdvisor{}}, Options{})

	rec := do(t, s, "/history?crop=Tomato&days=4611686018427387904")
	require.Equal(t, http.StatusOK, rec.Code)

	var points []model.HistoryPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	require.Len(t, points, 45)
	assert.Equal(t, model.SourceSynthetic, points[44].Source)

	rec = do(t, s, "/history?crop=Tomato&days=30")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	assert.Len(t, points, 30)

	rec = do(t, s, "/history?crop=Tomato&days=99999999999999999999999")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestData(t *testing.T) {
	s, _, a := newTestServer()

	rec := do(t, s, "/data")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, "/data?district=Nashik&taluka=Niphad&crop=Onion")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, advisory.Request{District: "Nashik", Taluka: "Niphad", Crop: "Onion"}, a.req)

	var adv model.Advisory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &adv))
	assert.Equal(t, "abc", adv.ID)
	assert.Equal(t, "Nashik", adv.Location.District)
}

func TestPrice(t *testing.T) {
	s, _, _ := newTestServer()

	rec := do(t, s, "/price?market=Pune")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, "/price?market=Pune&crop=Okra")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"market": "Pune", "crop": "Okra",
		"min_price_quintal": 1600, "modal_price_quintal": 2000, "max_price_quintal": 2400,
		"min_price_kg": 16, "modal_price_kg": 20, "max_price_kg": 24,
		"date": "2024-05-01", "found": true, "source": "synthetic"
	}`, rec.Body.String())
}

func TestLocationsAndTranslations(t *testing.T) {
	s, _, _ := newTestServer()

	rec := do(t, s, "/locations")
	require.Equal(t, http.StatusOK, rec.Code)
	var locs []model.Location
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &locs))
	assert.Len(t, locs, 3)

	rec = do(t, s, "/translations")
	require.Equal(t, http.StatusOK, rec.Code)
	var tr map[string]map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tr))
	assert.Equal(t, "पुणे", tr["districts"]["Pune"])
	assert.Equal(t, "कांदा", tr["commodities"]["Onion"])
}

func TestCORS(t *testing.T) {
	s, _, _ := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
