// Package dataset loads the historical mandi price snapshot into the
// read-only filter and history indexes used by the resolvers.
package dataset

import (
	"sort"

	"github.com/sells-group/mandi-advisor/internal/model"
)

// Stats summarizes a load.
type Stats struct {
	Path           string `json:"path"`
	Rows           int    `json:"rows"`
	SkippedMissing int    `json:"skipped_missing"`
	SkippedInvalid int    `json:"skipped_invalid"`
	Districts      int    `json:"districts"`
	Markets        int    `json:"markets"`
	Series         int    `json:"series"`
	Fallback       bool   `json:"fallback"`
}

// Dataset holds the indexes built from one snapshot. It is immutable after
// Load returns and safe for concurrent readers.
type Dataset struct {
	filters model.FilterIndex
	history *model.HistoryIndex
	stats   Stats
}

// Filters returns the district → market → commodities index.
func (d *Dataset) Filters() model.FilterIndex { return d.filters }

// History returns the per-(commodity, market) price series index.
func (d *Dataset) History() *model.HistoryIndex { return d.history }

// Stats returns load counters.
func (d *Dataset) Stats() Stats { return d.stats }

// fallbackFilters keeps the service queryable when the snapshot is missing.
var fallbackFilters = map[string]map[string][]string{
	"Pune":   {"Pune": {"Tomato", "Onion", "Potato"}},
	"Nashik": {"Nashik": {"Onion", "Tomato", "Grapes"}},
	"Mumbai": {"Mumbai": {"Tomato", "Onion", "Potato"}},
}

// Fallback returns the built-in dataset: a handful of district/market/commodity
// entries and no price history.
func Fallback() *Dataset {
	acc := newFilterAccumulator()
	for district, markets := range fallbackFilters {
		for market, crops := range markets {
			for _, crop := range crops {
				acc.add(district, market, crop)
			}
		}
	}
	filters := acc.build()
	return &Dataset{
		filters: filters,
		history: model.NewHistoryIndex(nil),
		stats:   Stats{Fallback: true, Districts: len(filters), Markets: countMarkets(filters)},
	}
}

// FilterEntry is one observed (district, market, commodity) triple.
type FilterEntry struct {
	District  string
	Market    string
	Commodity string
}

// MergeFilters returns a new index holding base plus the given entries. Entries
// with an empty name are ignored. base is not modified.
func MergeFilters(base model.FilterIndex, entries []FilterEntry) model.FilterIndex {
	acc := newFilterAccumulator()
	for district, markets := range base {
		for market, crops := range markets {
			for _, crop := range crops {
				acc.add(district, market, crop)
			}
		}
	}
	for _, e := range entries {
		if e.District == "" || e.Market == "" || e.Commodity == "" {
			continue
		}
		acc.add(e.District, e.Market, e.Commodity)
	}
	return acc.build()
}

type filterAccumulator map[string]map[string]map[string]struct{}

func newFilterAccumulator() filterAccumulator {
	return make(filterAccumulator)
}

func (a filterAccumulator) add(district, market, commodity string) {
	markets, ok := a[district]
	if !ok {
		markets = make(map[string]map[string]struct{})
		a[district] = markets
	}
	crops, ok := markets[market]
	if !ok {
		crops = make(map[string]struct{})
		markets[market] = crops
	}
	crops[commodity] = struct{}{}
}

// build converts the sets to sorted slices.
func (a filterAccumulator) build() model.FilterIndex {
	out := make(model.FilterIndex, len(a))
	for district, markets := range a {
		out[district] = make(map[string][]string, len(markets))
		for market, crops := range markets {
			list := make([]string, 0, len(crops))
			for c := range crops {
				list = append(list, c)
			}
			sort.Strings(list)
			out[district][market] = list
		}
	}
	return out
}

func countMarkets(f model.FilterIndex) int {
	n := 0
	for _, m := range f {
		n += len(m)
	}
	return n
}
