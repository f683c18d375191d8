package model

// HistoryPoint is one day of a price series in OHLC shape: open and low carry
// the min price, high the max price and close the modal price.
type HistoryPoint struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Market string  `json:"market,omitempty"`
	Source Source  `json:"source"`
}

// Tail returns the last n points of an ascending series, or all of them when
// the series is shorter.
func Tail[T any](s []T, n int) []T {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
