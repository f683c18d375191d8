package model

import (
	"sort"

	"github.com/sells-group/mandi-advisor/internal/match"
)

// FilterIndex maps district → market → sorted commodity names observed for
// that market.
type FilterIndex map[string]map[string][]string

// Districts returns the district names in sorted order.
func (f FilterIndex) Districts() []string {
	out := make([]string, 0, len(f))
	for d := range f {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Markets returns the sorted market names for a district. The district is
// matched exactly first, then case-insensitively.
func (f FilterIndex) Markets(district string) []string {
	markets, ok := f[district]
	if !ok {
		for d, m := range f {
			if match.Exact(d, district) {
				markets, ok = m, true
				break
			}
		}
	}
	if !ok {
		return nil
	}
	out := make([]string, 0, len(markets))
	for m := range markets {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Contains reports whether the exact (district, market, commodity) triple is
// present.
func (f FilterIndex) Contains(district, market, commodity string) bool {
	for _, c := range f[district][market] {
		if c == commodity {
			return true
		}
	}
	return false
}

// Series is the deduplicated, ascending price history for one
// (commodity, market) pair.
type Series struct {
	Commodity string
	Market    string
	Records   []PriceRecord
}

// HistoryIndex maps a case-folded (commodity, market) key to its Series. It is
// read-only once built.
type HistoryIndex struct {
	series map[string]Series
	keys   []string
}

// SeriesKey builds the case-insensitive lookup key.
func SeriesKey(commodity, market string) string {
	return match.Fold(commodity) + "|" + match.Fold(market)
}

// NewHistoryIndex indexes the given series. Callers provide records already
// sorted and deduplicated; later entries with the same key replace earlier ones.
func NewHistoryIndex(series []Series) *HistoryIndex {
	h := &HistoryIndex{series: make(map[string]Series, len(series))}
	for _, s := range series {
		h.series[SeriesKey(s.Commodity, s.Market)] = s
	}
	h.keys = make([]string, 0, len(h.series))
	for k := range h.series {
		h.keys = append(h.keys, k)
	}
	sort.Strings(h.keys)
	return h
}

// Lookup returns the series for the case-insensitive (commodity, market) key.
func (h *HistoryIndex) Lookup(commodity, market string) (Series, bool) {
	if h == nil {
		return Series{}, false
	}
	s, ok := h.series[SeriesKey(commodity, market)]
	return s, ok
}

// All returns every series ordered by key.
func (h *HistoryIndex) All() []Series {
	if h == nil {
		return nil
	}
	out := make([]Series, 0, len(h.keys))
	for _, k := range h.keys {
		out = append(out, h.series[k])
	}
	return out
}

// Len returns the number of series.
func (h *HistoryIndex) Len() int {
	if h == nil {
		return 0
	}
	return len(h.series)
}
