package price

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sells-group/mandi-advisor/internal/cache"
	"github.com/sells-group/mandi-advisor/internal/estimate"
	"github.com/sells-group/mandi-advisor/internal/match"
	"github.com/sells-group/mandi-advisor/internal/model"
	"github.com/sells-group/mandi-advisor/pkg/datagov"
)

// DatasetStrategy answers from the loaded snapshot: among every series whose
// commodity and market loosely match, the most recent record wins.
type DatasetStrategy struct {
	index *model.HistoryIndex
}

// NewDatasetStrategy creates the snapshot tier.
func NewDatasetStrategy(index *model.HistoryIndex) *DatasetStrategy {
	return &DatasetStrategy{index: index}
}

func (s *DatasetStrategy) Name() string { return string(model.SourceDataset) }

func (s *DatasetStrategy) Resolve(_ context.Context, market, crop string) (*model.ResolvedPrice, bool) {
	var best model.PriceRecord
	found := false
	for _, series := range s.index.All() {
		if len(series.Records) == 0 {
			continue
		}
		if !match.Loose(crop, series.Commodity) || !match.Loose(market, series.Market) {
			continue
		}
		latest := series.Records[len(series.Records)-1]
		if !found || newer(latest, best) {
			best, found = latest, true
		}
	}
	if !found {
		return nil, false
	}
	res := model.NewResolvedPrice(best.Market, best.Commodity,
		best.MinPrice, best.ModalPrice, best.MaxPrice, best.Date, model.SourceDataset)
	return &res, true
}

// newer orders candidates by date, then by the same-date tie-break.
func newer(a, b model.PriceRecord) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return a.Outranks(b)
}

// RecordSource is the live price feed consulted by LiveAPIStrategy.
type RecordSource interface {
	Records(ctx context.Context, q datagov.Query) ([]datagov.Record, error)
}

// LiveAPIStrategy queries the government price feed.
type LiveAPIStrategy struct {
	source  RecordSource
	state   string
	timeout time.Duration
}

// NewLiveAPIStrategy creates the live tier. state filters the feed.
func NewLiveAPIStrategy(source RecordSource, state string, timeout time.Duration) *LiveAPIStrategy {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &LiveAPIStrategy{source: source, state: state, timeout: timeout}
}

func (s *LiveAPIStrategy) Name() string { return string(model.SourceLiveAPI) }

func (s *LiveAPIStrategy) Resolve(ctx context.Context, market, crop string) (*model.ResolvedPrice, bool) {
	if market == "" || crop == "" {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	recs, err := s.source.Records(ctx, datagov.Query{
		Filters: map[string]string{"state": s.state, "market": market, "commodity": crop},
		Limit:   10,
	})
	if err != nil {
		zap.L().Debug("price: live feed failed", zap.String("market", market), zap.String("crop", crop), zap.Error(err))
		return nil, false
	}

	var best model.PriceRecord
	found := false
	for _, r := range recs {
		rec, ok := FromLiveRecord(r)
		if !ok {
			continue
		}
		if !found || newer(rec, best) {
			best, found = rec, true
		}
	}
	if !found {
		return nil, false
	}
	res := model.NewResolvedPrice(best.Market, best.Commodity,
		best.MinPrice, best.ModalPrice, best.MaxPrice, best.Date, model.SourceLiveAPI)
	return &res, true
}

// FromLiveRecord converts a feed row into a PriceRecord. Rows with an
// unparseable date or price are rejected.
func FromLiveRecord(r datagov.Record) (model.PriceRecord, bool) {
	d, err := r.Date()
	if err != nil {
		return model.PriceRecord{}, false
	}
	var prices [3]float64
	for i, s := range []string{r.MinPrice, r.ModalPrice, r.MaxPrice} {
		v, err := decimal.NewFromString(s)
		if err != nil || v.IsNegative() {
			return model.PriceRecord{}, false
		}
		prices[i] = v.InexactFloat64()
	}
	return model.PriceRecord{
		Market:     r.Market,
		Commodity:  r.Commodity,
		Date:       d,
		MinPrice:   prices[0],
		ModalPrice: prices[1],
		MaxPrice:   prices[2],
	}, true
}

// PriceEstimator is the AI collaborator behind the estimate tier.
type PriceEstimator interface {
	EstimatePrice(ctx context.Context, market, crop string) (estimate.Band, error)
}

// AIEstimateStrategy asks the model for a band and memoizes valid answers per
// case-folded (market, crop).
type AIEstimateStrategy struct {
	estimator PriceEstimator
	memo      *cache.Memo[string, estimate.Band]
	now       func() time.Time
}

// NewAIEstimateStrategy creates the estimate tier. memo may be shared.
func NewAIEstimateStrategy(e PriceEstimator, memo *cache.Memo[string, estimate.Band]) *AIEstimateStrategy {
	if memo == nil {
		memo = cache.NewMemo[string, estimate.Band]()
	}
	return &AIEstimateStrategy{estimator: e, memo: memo, now: time.Now}
}

func (s *AIEstimateStrategy) Name() string { return string(model.SourceAIEstimate) }

func (s *AIEstimateStrategy) Resolve(ctx context.Context, market, crop string) (*model.ResolvedPrice, bool) {
	key := match.Fold(market) + "|" + match.Fold(crop)
	band, ok := s.memo.Get(key)
	if !ok {
		var err error
		band, err = s.estimator.EstimatePrice(ctx, market, crop)
		if err != nil {
			zap.L().Debug("price: estimate failed", zap.String("market", market), zap.String("crop", crop), zap.Error(err))
			return nil, false
		}
		if !validBand(band) {
			return nil, false
		}
		s.memo.Set(key, band)
		zap.L().Debug("price: estimate cached", zap.String("key", key), zap.Int("entries", s.memo.Len()))
	}
	res := model.NewResolvedPrice(market, crop, band.Min, band.Modal, band.Max, s.now(), model.SourceAIEstimate)
	return &res, true
}

func validBand(b estimate.Band) bool {
	return b.Min > 0 && b.Modal > 0 && b.Max > 0 && b.Min <= b.Modal && b.Modal <= b.Max
}

// SyntheticStrategy answers every query from the base price table.
type SyntheticStrategy struct {
	now func() time.Time
}

// NewSyntheticStrategy creates the last-resort tier.
func NewSyntheticStrategy() *SyntheticStrategy {
	return &SyntheticStrategy{now: time.Now}
}

func (s *SyntheticStrategy) Name() string { return string(model.SourceSynthetic) }

func (s *SyntheticStrategy) Resolve(_ context.Context, market, crop string) (*model.ResolvedPrice, bool) {
	lo, modal, hi := SyntheticBand(crop)
	res := model.NewResolvedPrice(market, crop, lo, modal, hi, s.now(), model.SourceSynthetic)
	return &res, true
}
