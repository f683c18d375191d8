package dataset

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sells-group/mandi-advisor/internal/fetcher"
	"github.com/sells-group/mandi-advisor/internal/model"
)

// Column headers of the snapshot.
const (
	colDistrict  = "District"
	colMarket    = "Market"
	colCommodity = "Commodity"
	colDate      = "Arrival_Date"
	colMin       = "Min_Price"
	colMax       = "Max_Price"
	colModal     = "Modal_Price"
)

// Load reads the snapshot at path (CSV, or XLSX by extension) and builds the
// indexes. A missing, unreadable or headerless file yields Fallback() and a
// warning; the only error returned is context cancellation.
func Load(ctx context.Context, path string) (*Dataset, error) {
	log := zap.L().With(zap.String("path", path))

	rows, errs, err := fetcher.StreamFile(ctx, path)
	if err != nil {
		log.Warn("dataset: snapshot unavailable, using built-in fallback", zap.Error(err))
		return Fallback(), nil
	}

	ds, err := Build(ctx, rows, errs)
	if err != nil {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "dataset: load cancelled")
		}
		log.Warn("dataset: snapshot unreadable, using built-in fallback", zap.Error(err))
		return Fallback(), nil
	}
	ds.stats.Path = path

	log.Info("dataset: loaded",
		zap.Int("rows", ds.stats.Rows),
		zap.Int("skipped_missing", ds.stats.SkippedMissing),
		zap.Int("skipped_invalid", ds.stats.SkippedInvalid),
		zap.Int("districts", ds.stats.Districts),
		zap.Int("markets", ds.stats.Markets),
		zap.Int("series", ds.stats.Series),
	)
	return ds, nil
}

// Build consumes a row stream whose first row is the header. Rows missing a
// district, market or commodity are skipped; rows with an unparseable date or
// price are kept out of the history index but still feed the filter index.
func Build(ctx context.Context, rows <-chan []string, errs <-chan error) (*Dataset, error) {
	var (
		cols    columns
		header  = true
		stats   Stats
		filters = newFilterAccumulator()
		series  = make(map[string]*model.Series)
		headErr error
	)

	for row := range rows {
		if header {
			header = false
			cols, headErr = parseHeader(row)
			continue
		}
		if headErr != nil {
			// Keep draining so the producer can exit.
			continue
		}
		stats.Rows++

		district, market, commodity := cols.get(row, cols.district), cols.get(row, cols.market), cols.get(row, cols.commodity)
		if district == "" || market == "" || commodity == "" {
			stats.SkippedMissing++
			continue
		}
		filters.add(district, market, commodity)

		rec, ok := cols.record(row, market, commodity)
		if !ok {
			stats.SkippedInvalid++
			continue
		}

		key := model.SeriesKey(commodity, market)
		s, ok := series[key]
		if !ok {
			s = &model.Series{Commodity: commodity, Market: market}
			series[key] = s
		}
		s.Records = append(s.Records, rec)
	}

	for err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if ctx.Err() != nil {
		return nil, eris.Wrap(ctx.Err(), "dataset: build cancelled")
	}
	if header {
		return nil, eris.New("dataset: empty snapshot")
	}
	if headErr != nil {
		return nil, headErr
	}

	built := make([]model.Series, 0, len(series))
	for _, s := range series {
		s.Records = dedupeByDate(s.Records)
		built = append(built, *s)
	}

	fi := filters.build()
	stats.Districts = len(fi)
	stats.Markets = countMarkets(fi)
	idx := model.NewHistoryIndex(built)
	stats.Series = idx.Len()

	return &Dataset{
		filters: fi,
		history: idx,
		stats:   stats,
	}, nil
}

// dedupeByDate sorts ascending by date and keeps one record per date, the one
// that Outranks the others.
func dedupeByDate(recs []model.PriceRecord) []model.PriceRecord {
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Date.Before(recs[j].Date) })

	out := recs[:0]
	for _, r := range recs {
		n := len(out)
		if n > 0 && out[n-1].Date.Equal(r.Date) {
			if r.Outranks(out[n-1]) {
				out[n-1] = r
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

type columns struct {
	district, market, commodity int
	date, min, max, modal       int
}

func parseHeader(row []string) (columns, error) {
	idx := make(map[string]int, len(row))
	for i, name := range row {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	lookup := func(name string) int {
		if i, ok := idx[name]; ok {
			return i
		}
		return -1
	}

	c := columns{
		district:  lookup(colDistrict),
		market:    lookup(colMarket),
		commodity: lookup(colCommodity),
		date:      lookup(colDate),
		min:       lookup(colMin),
		max:       lookup(colMax),
		modal:     lookup(colModal),
	}
	if c.district < 0 || c.market < 0 || c.commodity < 0 {
		return c, eris.Errorf("dataset: header missing %s/%s/%s columns", colDistrict, colMarket, colCommodity)
	}
	return c, nil
}

func (c columns) get(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (c columns) record(row []string, market, commodity string) (model.PriceRecord, bool) {
	date, err := time.Parse(model.ArrivalDateLayout, c.get(row, c.date))
	if err != nil {
		return model.PriceRecord{}, false
	}
	minP, ok1 := parsePrice(c.get(row, c.min))
	maxP, ok2 := parsePrice(c.get(row, c.max))
	modalP, ok3 := parsePrice(c.get(row, c.modal))
	if !ok1 || !ok2 || !ok3 {
		return model.PriceRecord{}, false
	}
	return model.PriceRecord{
		Market:     market,
		Commodity:  commodity,
		Date:       date,
		MinPrice:   minP,
		MaxPrice:   maxP,
		ModalPrice: modalP,
	}, true
}

// parsePrice parses a plain decimal string. An empty cell is 0.
func parsePrice(s string) (float64, bool) {
	if s == "" {
		return 0, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return 0, false
	}
	return d.InexactFloat64(), true
}
