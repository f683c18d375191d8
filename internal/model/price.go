// Package model defines the price, history, weather and advisory types shared
// across the resolvers, collaborators and the HTTP API.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DateLayout is the ISO date format used in API output.
	DateLayout = "2006-01-02"
	// ArrivalDateLayout is the DD-MM-YYYY format of the dataset's Arrival_Date column.
	ArrivalDateLayout = "02-01-2006"
)

// Source is the provenance tag naming the fallback tier that produced a value.
type Source string

const (
	SourceDataset    Source = "dataset"
	SourceLiveAPI    Source = "live-api"
	SourceAIEstimate Source = "ai-estimate"
	SourceSynthetic  Source = "synthetic"
	SourceNotFound   Source = "not-found"
)

// Label returns a human-readable description of the source for display.
func (s Source) Label() string {
	switch s {
	case SourceDataset:
		return "Historical market data (Dataset.csv)"
	case SourceLiveAPI:
		return "data.gov.in (Government of India, live)"
	case SourceAIEstimate:
		return "AI estimate"
	case SourceSynthetic:
		return "Synthetic base price"
	default:
		return "No data available"
	}
}

// PriceRecord is a single dataset row for one commodity in one market on one
// day. Prices are currency per quintal.
type PriceRecord struct {
	Market     string    `json:"market"`
	Commodity  string    `json:"commodity"`
	Date       time.Time `json:"date"`
	MinPrice   float64   `json:"min_price"`
	MaxPrice   float64   `json:"max_price"`
	ModalPrice float64   `json:"modal_price"`
}

// Point renders the record as an OHLC history point.
func (r PriceRecord) Point(source Source) HistoryPoint {
	return HistoryPoint{
		Date:   r.Date.Format(DateLayout),
		Open:   r.MinPrice,
		High:   r.MaxPrice,
		Low:    r.MinPrice,
		Close:  r.ModalPrice,
		Market: r.Market,
		Source: source,
	}
}

// Outranks reports whether r should be kept over other when both fall on the
// same date: highest max price, then modal, then min.
func (r PriceRecord) Outranks(other PriceRecord) bool {
	if r.MaxPrice != other.MaxPrice {
		return r.MaxPrice > other.MaxPrice
	}
	if r.ModalPrice != other.ModalPrice {
		return r.ModalPrice > other.ModalPrice
	}
	return r.MinPrice > other.MinPrice
}

// ResolvedPrice is the price resolver's output.
type ResolvedPrice struct {
	Market            string  `json:"market"`
	Crop              string  `json:"crop"`
	MinPriceQuintal   float64 `json:"min_price_quintal"`
	ModalPriceQuintal float64 `json:"modal_price_quintal"`
	MaxPriceQuintal   float64 `json:"max_price_quintal"`
	MinPriceKg        float64 `json:"min_price_kg"`
	ModalPriceKg      float64 `json:"modal_price_kg"`
	MaxPriceKg        float64 `json:"max_price_kg"`
	Date              string  `json:"date"`
	Found             bool    `json:"found"`
	Source            Source  `json:"source"`
}

// NewResolvedPrice builds a ResolvedPrice from per-quintal values, deriving the
// per-kilogram fields. Found is true for every source except SourceNotFound.
func NewResolvedPrice(market, crop string, minQ, modalQ, maxQ float64, date time.Time, source Source) ResolvedPrice {
	return ResolvedPrice{
		Market:            market,
		Crop:              crop,
		MinPriceQuintal:   minQ,
		ModalPriceQuintal: modalQ,
		MaxPriceQuintal:   maxQ,
		MinPriceKg:        PerKg(minQ),
		ModalPriceKg:      PerKg(modalQ),
		MaxPriceKg:        PerKg(maxQ),
		Date:              date.Format(DateLayout),
		Found:             source != SourceNotFound,
		Source:            source,
	}
}

// NotFound returns the degraded zero-price result.
func NotFound(market, crop string, now time.Time) ResolvedPrice {
	return NewResolvedPrice(market, crop, 0, 0, 0, now, SourceNotFound)
}

var quintalKg = decimal.NewFromInt(100)

// PerKg converts a per-quintal price to per-kilogram, rounded to paise.
func PerKg(quintal float64) float64 {
	return decimal.NewFromFloat(quintal).Div(quintalKg).Round(2).InexactFloat64()
}
