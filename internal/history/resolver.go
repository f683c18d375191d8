// Package history builds a bounded, ascending daily price series for a crop,
// falling back from observed data to an AI-generated series and finally to a
// local random walk.
package history

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/mandi-advisor/internal/cache"
	"github.com/sells-group/mandi-advisor/internal/match"
	"github.com/sells-group/mandi-advisor/internal/model"
)

// DefaultDays is used when the caller asks for fewer than one day.
const DefaultDays = 30

// DefaultMaxDays caps the series length a caller may request.
const DefaultMaxDays = 365

// DefaultRegion stands in for the market when generating a series without one.
const DefaultRegion = "Maharashtra"

// substitutePriority lists markets preferred when the requested market has no
// series for the crop.
var substitutePriority = []string{"Pune", "Mumbai", "Nashik", "Lasalgaon", "Rahata", "Nagpur", "Solapur", "Kolhapur"}

// Source is one tier of the history chain.
type Source interface {
	Name() string
	Series(ctx context.Context, crop, market string, days int) ([]model.HistoryPoint, bool)
}

// Generator is the AI collaborator that invents a plausible series.
type Generator interface {
	GenerateHistory(ctx context.Context, crop, market string, days int) ([]model.HistoryPoint, error)
}

// Resolver walks its sources in order.
type Resolver struct {
	sources []Source
	maxDays int
}

// NewResolver creates a Resolver over explicit sources, capped at
// DefaultMaxDays.
func NewResolver(sources ...Source) *Resolver {
	return &Resolver{sources: sources, maxDays: DefaultMaxDays}
}

// WithMaxDays sets the largest number of days Resolve will return. n < 1
// keeps the current cap.
func (r *Resolver) WithMaxDays(n int) *Resolver {
	if n >= 1 {
		r.maxDays = n
	}
	return r
}

// MaxDays returns the current cap.
func (r *Resolver) MaxDays() int { return r.maxDays }

// NewDefaultResolver wires the standard chain: exact key, substitute market,
// generated series, random walk.
func NewDefaultResolver(index *model.HistoryIndex, gen Generator, memo *cache.Memo[string, []model.HistoryPoint]) *Resolver {
	sources := []Source{
		&ExactSource{Index: index},
		&SubstituteSource{Index: index},
	}
	if gen != nil {
		sources = append(sources, NewGeneratedSource(gen, memo))
	}
	sources = append(sources, NewRandomWalk(nil))
	return NewResolver(sources...)
}

// Resolve returns at most days points, ascending by date. days < 1 means
// DefaultDays and days above the cap are clamped to it. An empty slice is only possible with a chain that has no
// random walk tier.
func (r *Resolver) Resolve(ctx context.Context, crop, market string, days int) []model.HistoryPoint {
	if days < 1 {
		days = DefaultDays
	}
	if days > r.maxDays {
		days = r.maxDays
	}
	for _, s := range r.sources {
		points, ok := s.Series(ctx, crop, market, days)
		if ok && len(points) > 0 {
			zap.L().Debug("history: resolved",
				zap.String("source", s.Name()),
				zap.String("crop", crop),
				zap.String("market", market),
				zap.Int("points", len(points)),
			)
			return model.Tail(points, days)
		}
	}
	return []model.HistoryPoint{}
}

// ExactSource returns the series stored under the case-folded
// (crop, market) key.
type ExactSource struct {
	Index *model.HistoryIndex
}

func (s *ExactSource) Name() string { return "exact" }

func (s *ExactSource) Series(_ context.Context, crop, market string, days int) ([]model.HistoryPoint, bool) {
	if market == "" {
		return nil, false
	}
	series, ok := s.Index.Lookup(crop, market)
	if !ok || len(series.Records) == 0 {
		return nil, false
	}
	return toPoints(model.Tail(series.Records, days)), true
}

// SubstituteSource picks another market's series for the same crop.
type SubstituteSource struct {
	Index *model.HistoryIndex
}

func (s *SubstituteSource) Name() string { return "substitute" }

func (s *SubstituteSource) Series(_ context.Context, crop, _ string, days int) ([]model.HistoryPoint, bool) {
	var candidates []model.Series
	for _, series := range s.Index.All() {
		if len(series.Records) > 0 && match.Exact(series.Commodity, crop) {
			candidates = append(candidates, series)
		}
	}
	best, ok := pickSubstitute(candidates)
	if !ok {
		return nil, false
	}
	return toPoints(model.Tail(best.Records, days)), true
}

func pickSubstitute(candidates []model.Series) (model.Series, bool) {
	if len(candidates) == 0 {
		return model.Series{}, false
	}
	for _, preferred := range substitutePriority {
		for _, c := range candidates {
			if match.Exact(c.Market, preferred) {
				return c, true
			}
		}
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if len(c.Records) > len(best.Records) ||
			(len(c.Records) == len(best.Records) && c.Market < best.Market) {
			best = c
		}
	}
	return best, true
}

func toPoints(recs []model.PriceRecord) []model.HistoryPoint {
	out := make([]model.HistoryPoint, len(recs))
	for i, r := range recs {
		out[i] = r.Point(model.SourceDataset)
	}
	return out
}

// GeneratedSource asks the AI collaborator for a series and memoizes valid
// answers by (crop, market, days).
type GeneratedSource struct {
	gen  Generator
	memo *cache.Memo[string, []model.HistoryPoint]
	now  func() time.Time
}

// NewGeneratedSource creates the AI tier. memo may be nil.
func NewGeneratedSource(gen Generator, memo *cache.Memo[string, []model.HistoryPoint]) *GeneratedSource {
	if memo == nil {
		memo = cache.NewMemo[string, []model.HistoryPoint]()
	}
	return &GeneratedSource{gen: gen, memo: memo, now: time.Now}
}

func (s *GeneratedSource) Name() string { return string(model.SourceAIEstimate) }

func (s *GeneratedSource) Series(ctx context.Context, crop, market string, days int) ([]model.HistoryPoint, bool) {
	if market == "" {
		market = DefaultRegion
	}
	key := fmt.Sprintf("%s|%s|%d", match.Fold(crop), match.Fold(market), days)
	if points, ok := s.memo.Get(key); ok {
		return clonePoints(points), true
	}

	points, err := s.gen.GenerateHistory(ctx, crop, market, days)
	if err != nil {
		zap.L().Debug("history: generation failed", zap.String("crop", crop), zap.String("market", market), zap.Error(err))
		return nil, false
	}
	if !s.valid(points, days) {
		zap.L().Debug("history: generated series rejected", zap.String("crop", crop), zap.Int("points", len(points)))
		return nil, false
	}
	s.memo.Set(key, clonePoints(points))
	return points, true
}

// valid requires exactly days positive points with strictly ascending dates.
func (s *GeneratedSource) valid(points []model.HistoryPoint, days int) bool {
	if len(points) != days {
		return false
	}
	var prev time.Time
	for i, p := range points {
		if p.Close <= 0 || p.Open <= 0 || p.High <= 0 || p.Low <= 0 {
			return false
		}
		d, err := time.Parse(model.DateLayout, p.Date)
		if err != nil || (i > 0 && !d.After(prev)) {
			return false
		}
		prev = d
	}
	return true
}

func clonePoints(p []model.HistoryPoint) []model.HistoryPoint {
	return append([]model.HistoryPoint(nil), p...)
}
