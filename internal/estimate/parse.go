package estimate

import (
	"math"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"

	"github.com/sells-group/mandi-advisor/internal/model"
)

// cleanJSON strips markdown fences and surrounding prose, returning the
// outermost JSON object in text.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func parseBand(text string) (Band, error) {
	raw := cleanJSON(text)
	if !gjson.Valid(raw) {
		return Band{}, eris.Wrap(ErrMalformed, "estimate: price answer is not JSON")
	}

	res := gjson.GetMany(raw, "min_price_quintal", "modal_price_quintal", "max_price_quintal")
	vals := make([]float64, len(res))
	for i, r := range res {
		if !r.Exists() {
			return Band{}, eris.Wrap(ErrMalformed, "estimate: price answer missing field")
		}
		v := r.Float()
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return Band{}, eris.Wrapf(ErrMalformed, "estimate: non-positive price %v", v)
		}
		vals[i] = v
	}
	return sortBand(vals[0], vals[1], vals[2]), nil
}

// parseHistory validates a generated series. Model-supplied dates are
// ignored; points are re-dated so the series ends at now.
func parseHistory(text string, days int, now time.Time) ([]model.HistoryPoint, error) {
	raw := cleanJSON(text)
	if !gjson.Valid(raw) {
		return nil, eris.Wrap(ErrMalformed, "estimate: history answer is not JSON")
	}

	arr := gjson.Get(raw, "points")
	if !arr.IsArray() {
		return nil, eris.Wrap(ErrMalformed, "estimate: history answer has no points array")
	}

	var points []model.HistoryPoint
	var bad error
	arr.ForEach(func(_, v gjson.Result) bool {
		o, h, l, c := v.Get("open").Float(), v.Get("high").Float(), v.Get("low").Float(), v.Get("close").Float()
		if o <= 0 || h <= 0 || l <= 0 || c <= 0 {
			bad = eris.Wrap(ErrMalformed, "estimate: history point has non-positive price")
			return false
		}
		points = append(points, model.HistoryPoint{
			Open:  math.Round(o),
			High:  math.Round(math.Max(h, math.Max(o, c))),
			Low:   math.Round(math.Min(l, math.Min(o, c))),
			Close: math.Round(c),
		})
		return true
	})
	if bad != nil {
		return nil, bad
	}
	if len(points) < days {
		return nil, eris.Wrapf(ErrMalformed, "estimate: history has %d points, want %d", len(points), days)
	}

	points = model.Tail(points, days)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for i := range points {
		points[i].Date = today.AddDate(0, 0, i-len(points)+1).Format(model.DateLayout)
		points[i].Source = model.SourceAIEstimate
	}
	return points, nil
}
