// Package estimate asks the language model for a price band or a price
// history when no observed data exists for a market and crop.
package estimate

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/mandi-advisor/internal/model"
	"github.com/sells-group/mandi-advisor/internal/resilience"
	"github.com/sells-group/mandi-advisor/pkg/anthropic"
)

var (
	// ErrUnavailable means no model is configured or the breaker is open.
	ErrUnavailable = eris.New("estimate: unavailable")
	// ErrMalformed means the model answered but the answer failed validation.
	ErrMalformed = eris.New("estimate: malformed response")
)

// Band is a quintal price band.
type Band struct {
	Min   float64
	Modal float64
	Max   float64
}

// Config tunes the estimator.
type Config struct {
	Model          string
	MaxTokens      int64
	Timeout        time.Duration
	MaxHistoryDays int
}

// Estimator produces AI price estimates. A nil client makes every call
// return ErrUnavailable.
type Estimator struct {
	client  anthropic.Client
	cfg     Config
	breaker *resilience.CircuitBreaker
	now     func() time.Time
}

// New creates an Estimator. breaker may be nil.
func New(client anthropic.Client, cfg Config, breaker *resilience.CircuitBreaker) *Estimator {
	if cfg.Model == "" {
		cfg.Model = "claude-haiku-4-5-20251001"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxHistoryDays <= 0 {
		cfg.MaxHistoryDays = 60
	}
	return &Estimator{client: client, cfg: cfg, breaker: breaker, now: time.Now}
}

// Available reports whether a model client is configured.
func (e *Estimator) Available() bool {
	return e != nil && e.client != nil
}

// EstimatePrice returns a plausible min/modal/max band for crop in market.
// The band is sorted so that Min <= Modal <= Max.
func (e *Estimator) EstimatePrice(ctx context.Context, market, crop string) (Band, error) {
	prompt := fmt.Sprintf(
		"Estimate the current agricultural market price for %q in %q, Maharashtra, India. "+
			"Give a realistic estimate for today's date (%s) based on seasonality and typical trends. "+
			"Return ONLY a JSON object in this format, without markdown:\n"+
			`{"min_price_quintal": 1000, "modal_price_quintal": 1200, "max_price_quintal": 1500}`,
		crop, market, e.now().Format(model.DateLayout))

	text, err := e.complete(ctx, "price", prompt, e.cfg.MaxTokens)
	if err != nil {
		return Band{}, err
	}

	band, err := parseBand(text)
	if err != nil {
		zap.L().Debug("estimate: rejected price answer",
			zap.String("market", market),
			zap.String("crop", crop),
			zap.Error(err),
		)
		return Band{}, err
	}
	return band, nil
}

// GenerateHistory returns exactly days plausible daily OHLC points ending
// today, oldest first. market is treated as a region name.
func (e *Estimator) GenerateHistory(ctx context.Context, crop, market string, days int) ([]model.HistoryPoint, error) {
	if days < 1 {
		return nil, eris.Wrapf(ErrMalformed, "estimate: days must be positive, got %d", days)
	}
	if days > e.cfg.MaxHistoryDays {
		return nil, eris.Wrapf(ErrUnavailable, "estimate: %d days exceeds generation limit %d", days, e.cfg.MaxHistoryDays)
	}

	prompt := fmt.Sprintf(
		"Generate a realistic daily wholesale price history for %q in %q, Maharashtra, India, "+
			"covering the last %d days up to %s. Prices are in rupees per quintal. "+
			"Return ONLY a JSON object in this format, without markdown, oldest day first:\n"+
			`{"points": [{"date": "YYYY-MM-DD", "open": 1000, "high": 1100, "low": 950, "close": 1050}]}`,
		crop, market, days, e.now().Format(model.DateLayout))

	// Roughly 40 output tokens per point plus framing.
	maxTokens := max(e.cfg.MaxTokens, int64(days)*48+256)
	text, err := e.complete(ctx, "history", prompt, maxTokens)
	if err != nil {
		return nil, err
	}

	points, err := parseHistory(text, days, e.now())
	if err != nil {
		zap.L().Debug("estimate: rejected history answer",
			zap.String("market", market),
			zap.String("crop", crop),
			zap.Int("days", days),
			zap.Error(err),
		)
		return nil, err
	}
	return points, nil
}

func (e *Estimator) complete(ctx context.Context, kind, prompt string, maxTokens int64) (string, error) {
	if !e.Available() {
		return "", ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	call := func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return e.client.CreateMessage(ctx, anthropic.UserMessage(e.cfg.Model, maxTokens, prompt))
	}

	var resp *anthropic.MessageResponse
	var err error
	if e.breaker != nil {
		resp, err = resilience.ExecuteVal(ctx, e.breaker, call)
	} else {
		resp, err = call(ctx)
	}
	if err != nil {
		if eris.Is(err, resilience.ErrCircuitOpen) {
			return "", eris.Wrap(ErrUnavailable, "estimate: circuit open")
		}
		return "", eris.Wrapf(err, "estimate: %s request", kind)
	}

	text := resp.Text()
	if text == "" {
		return "", eris.Wrapf(ErrMalformed, "estimate: empty %s answer", kind)
	}
	return text, nil
}

// sortBand orders three prices ascending.
func sortBand(a, b, c float64) Band {
	p := []float64{a, b, c}
	sort.Float64s(p)
	return Band{Min: p[0], Modal: p[1], Max: p[2]}
}
