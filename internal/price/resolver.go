// Package price resolves a (market, crop) pair to a price through an ordered
// chain of strategies. The chain always ends in a synthetic tier, so callers
// never see an error.
package price

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/mandi-advisor/internal/model"
)

// Strategy is one tier of the fallback chain. Resolve reports false on a miss;
// strategies swallow their own errors.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, market, crop string) (*model.ResolvedPrice, bool)
}

// Resolver tries each strategy in order and returns the first hit.
type Resolver struct {
	strategies []Strategy
	now        func() time.Time
}

// NewResolver creates a Resolver over the given strategies.
func NewResolver(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies, now: time.Now}
}

// Strategies returns the configured tier names in order.
func (r *Resolver) Strategies() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.Name()
	}
	return names
}

// Resolve returns the first tier's answer. If every tier misses the result is
// zero-priced with source not-found.
func (r *Resolver) Resolve(ctx context.Context, market, crop string) model.ResolvedPrice {
	for _, s := range r.strategies {
		res, ok := s.Resolve(ctx, market, crop)
		if ok && res != nil {
			zap.L().Debug("price: resolved",
				zap.String("strategy", s.Name()),
				zap.String("market", market),
				zap.String("crop", crop),
				zap.Float64("modal", res.ModalPriceQuintal),
			)
			return *res
		}
		zap.L().Debug("price: strategy miss",
			zap.String("strategy", s.Name()),
			zap.String("market", market),
			zap.String("crop", crop),
		)
	}
	return model.NotFound(market, crop, r.now())
}
