package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/mandi-advisor/internal/advice"
	"github.com/sells-group/mandi-advisor/internal/advisory"
	"github.com/sells-group/mandi-advisor/internal/dataset"
	"github.com/sells-group/mandi-advisor/internal/estimate"
	"github.com/sells-group/mandi-advisor/internal/history"
	"github.com/sells-group/mandi-advisor/internal/location"
	"github.com/sells-group/mandi-advisor/internal/model"
	"github.com/sells-group/mandi-advisor/internal/price"
	"github.com/sells-group/mandi-advisor/internal/resilience"
	"github.com/sells-group/mandi-advisor/pkg/anthropic"
	"github.com/sells-group/mandi-advisor/pkg/datagov"
	"github.com/sells-group/mandi-advisor/pkg/openmeteo"
	"github.com/sells-group/mandi-advisor/pkg/tts"
)

// appEnv owns every piece of process-wide state: the loaded indexes, the
// estimate caches inside the resolvers, and the collaborator clients.
type appEnv struct {
	Dataset   *dataset.Dataset
	Filters   model.FilterIndex
	Locations *location.Directory
	Prices    *price.Resolver
	History   *history.Resolver
	Advisory  *advisory.Service
}

func secs(n int) time.Duration { return time.Duration(n) * time.Second }

// initEnv loads the dataset and wires the resolvers and collaborators from cfg.
func initEnv(ctx context.Context, mode string) (*appEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	ds, err := dataset.Load(ctx, cfg.Dataset.Path)
	if err != nil {
		return nil, eris.Wrap(err, "init: load dataset")
	}
	st := ds.Stats()
	zap.L().Info("dataset loaded",
		zap.String("path", st.Path),
		zap.Int("rows", st.Rows),
		zap.Int("skipped_missing", st.SkippedMissing),
		zap.Int("skipped_invalid", st.SkippedInvalid),
		zap.Int("series", st.Series),
		zap.Bool("fallback", st.Fallback),
	)

	locs, err := location.Load(cfg.Locations.File)
	if err != nil {
		return nil, eris.Wrap(err, "init: load locations")
	}

	var llm anthropic.Client
	if cfg.Anthropic.Key != "" {
		llm = anthropic.NewClient(cfg.Anthropic.Key, anthropic.WithTimeout(secs(cfg.Anthropic.TimeoutSecs)))
	} else {
		zap.L().Warn("anthropic key not set; AI estimates and advice are disabled")
	}

	breaker := resilience.NewCircuitBreaker("anthropic", cfg.Anthropic.FailureThreshold, secs(cfg.Anthropic.ResetTimeoutSecs))
	est := estimate.New(llm, estimate.Config{
		Model:     cfg.Anthropic.Model,
		MaxTokens: cfg.Anthropic.MaxTokens,
		Timeout:   secs(cfg.Anthropic.TimeoutSecs),
	}, breaker)

	strategies := []price.Strategy{price.NewDatasetStrategy(ds.History())}
	filters := ds.Filters()

	if cfg.DataGov.Enabled {
		live := datagov.NewClient(cfg.DataGov.Key, cfg.DataGov.ResourceID,
			datagov.WithBaseURL(cfg.DataGov.BaseURL),
			datagov.WithTimeout(secs(cfg.DataGov.TimeoutSecs)),
			datagov.WithRateLimit(cfg.DataGov.RateLimit),
			datagov.WithRetry(resilience.RetryConfig{MaxAttempts: cfg.DataGov.MaxAttempts}),
		)
		strategies = append(strategies, price.NewLiveAPIStrategy(live, cfg.DataGov.State, secs(cfg.DataGov.TimeoutSecs)))
		if cfg.DataGov.MergeFilters {
			filters = mergeLiveFilters(ctx, live, filters)
		}
	}

	var gen history.Generator
	if est.Available() {
		strategies = append(strategies, price.NewAIEstimateStrategy(est, nil))
		gen = est
	}
	strategies = append(strategies, price.NewSyntheticStrategy())

	prices := price.NewResolver(strategies...)
	zap.L().Info("price chain ready", zap.Strings("strategies", prices.Strategies()))

	weather := openmeteo.NewClient(
		openmeteo.WithBaseURL(cfg.Weather.BaseURL),
		openmeteo.WithForecastDays(cfg.Weather.ForecastDays),
		openmeteo.WithTimeout(secs(cfg.Weather.TimeoutSecs)),
	)
	speech := tts.NewClient(
		tts.WithBaseURL(cfg.TTS.BaseURL),
		tts.WithLang(cfg.TTS.Lang),
		tts.WithTimeout(secs(cfg.TTS.TimeoutSecs)),
		tts.WithRateLimit(cfg.TTS.RateLimit),
	)

	svc := advisory.NewService(advisory.Deps{
		Prices:    prices,
		Weather:   weather,
		Advice:    advice.NewGenerator(llm, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens, secs(cfg.Anthropic.TimeoutSecs)),
		Speech:    speech,
		Locations: locs,
		Filters:   filters,
	}, advisory.Defaults{
		Market: cfg.Advisory.DefaultMarket,
		Crop:   cfg.Advisory.DefaultCrop,
		Point:  location.Point{Lat: cfg.Advisory.DefaultLat, Lon: cfg.Advisory.DefaultLon},
	})

	return &appEnv{
		Dataset:   ds,
		Filters:   filters,
		Locations: locs,
		Prices:    prices,
		History:   history.NewDefaultResolver(ds.History(), gen, nil).WithMaxDays(cfg.History.MaxDays),
		Advisory:  svc,
	}, nil
}

// mergeLiveFilters adds the live feed's (district, market, commodity) triples
// to base. Feed failures leave base unchanged.
func mergeLiveFilters(ctx context.Context, src price.RecordSource, base model.FilterIndex) model.FilterIndex {
	recs, err := src.Records(ctx, datagov.Query{
		Filters: map[string]string{"state": cfg.DataGov.State},
		Limit:   cfg.DataGov.FilterLimit,
	})
	if err != nil {
		zap.L().Warn("live filters unavailable; using dataset filters", zap.Error(err))
		return base
	}

	entries := make([]dataset.FilterEntry, 0, len(recs))
	for _, r := range recs {
		entries = append(entries, dataset.FilterEntry{District: r.District, Market: r.Market, Commodity: r.Commodity})
	}
	merged := dataset.MergeFilters(base, entries)
	zap.L().Info("merged live filters", zap.Int("records", len(recs)), zap.Int("districts", len(merged)))
	return merged
}
