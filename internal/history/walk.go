package history

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sells-group/mandi-advisor/internal/model"
	"github.com/sells-group/mandi-advisor/internal/price"
)

const (
	walkStep   = 0.05
	walkSpread = 0.05
	walkBand   = 0.30
	smoothKeep = 0.7
)

// RandomWalk synthesizes a smoothed, bounded series around the crop's base
// price. It always succeeds.
type RandomWalk struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewRandomWalk creates the last-resort tier. A nil rng uses a time-seeded PCG.
func NewRandomWalk(rng *rand.Rand) *RandomWalk {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &RandomWalk{rng: rng, now: time.Now}
}

func (w *RandomWalk) Name() string { return string(model.SourceSynthetic) }

func (w *RandomWalk) Series(_ context.Context, crop, market string, days int) ([]model.HistoryPoint, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	base := price.BasePrice(crop)
	lo, hi := base*(1-walkBand), base*(1+walkBand)
	clamp := func(v float64) float64 { return math.Max(lo, math.Min(hi, v)) }

	now := w.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	points := make([]model.HistoryPoint, days)
	current, smooth := base, base
	var prevClose float64
	for i := range days {
		current = clamp(current * (1 + w.uniform(-walkStep, walkStep)))
		smooth = clamp(smoothKeep*smooth + (1-smoothKeep)*current)

		closeP := math.Round(smooth)
		openP := prevClose
		if i == 0 {
			openP = clamp(math.Round(closeP * 0.98))
		}
		high := clamp(math.Round(math.Max(openP, closeP) * (1 + w.uniform(0, walkSpread))))
		low := clamp(math.Round(math.Min(openP, closeP) * (1 - w.uniform(0, walkSpread))))

		points[i] = model.HistoryPoint{
			Date:   today.AddDate(0, 0, i-days+1).Format(model.DateLayout),
			Open:   openP,
			High:   high,
			Low:    low,
			Close:  closeP,
			Market: market,
			Source: model.SourceSynthetic,
		}
		prevClose = closeP
	}
	return points, true
}

func (w *RandomWalk) uniform(a, b float64) float64 {
	return a + w.rng.Float64()*(b-a)
}
