package price

import (
	"math"

	"github.com/sells-group/mandi-advisor/internal/match"
)

// DefaultBasePrice is the modal quintal price assumed for unknown crops.
const DefaultBasePrice = 2000

// basePrices are typical modal quintal prices in Maharashtra mandis. Order
// matters: the first loose match wins, so specific names precede generic ones.
var basePrices = []struct {
	crop  string
	modal float64
}{
	{"Green Chilli", 3500},
	{"Sugarcane", 350},
	{"Pomegranate", 8000},
	{"Cauliflower", 1800},
	{"Cabbage", 1200},
	{"Brinjal", 2000},
	{"Coriander", 3000},
	{"Tomato", 2500},
	{"Onion", 1500},
	{"Potato", 1200},
	{"Garlic", 8000},
	{"Ginger", 5000},
	{"Grapes", 6000},
	{"Banana", 1800},
	{"Orange", 4000},
	{"Soybean", 5000},
	{"Cotton", 7000},
	{"Turmeric", 12000},
	{"Groundnut", 6000},
	{"Wheat", 2800},
	{"Rice", 3500},
	{"Maize", 2200},
	{"Jowar", 2500},
	{"Bajra", 2400},
	{"Tur", 7000},
	{"Moong", 7500},
	{"Urad", 7000},
	{"Gram", 5500},
}

// BasePrice returns the base modal quintal price for crop, or
// DefaultBasePrice when the table has no match. Exact names are tried before
// loose ones so "Tur" does not resolve to "Turmeric".
func BasePrice(crop string) float64 {
	for _, b := range basePrices {
		if match.Exact(crop, b.crop) {
			return b.modal
		}
	}
	for _, b := range basePrices {
		if match.Loose(crop, b.crop) {
			return b.modal
		}
	}
	return DefaultBasePrice
}

// SyntheticBand returns the (min, modal, max) band around crop's base price.
func SyntheticBand(crop string) (lo, modal, hi float64) {
	modal = BasePrice(crop)
	return math.Round(modal * 0.8), modal, math.Round(modal * 1.2)
}
