package location

// Translations is the payload served to clients that localize names.
type Translations struct {
	Districts   map[string]string `json:"districts"`
	Commodities map[string]string `json:"commodities"`
	States      map[string]string `json:"states"`
}

// AllTranslations returns copies of the English to Marathi tables.
func AllTranslations() Translations {
	return Translations{
		Districts:   clone(districtNames),
		Commodities: clone(commodityNames),
		States:      clone(stateNames),
	}
}

// District returns the Marathi district name, or name when unknown.
func District(name string) string { return lookup(districtNames, name) }

// Commodity returns the Marathi commodity name, or name when unknown.
func Commodity(name string) string { return lookup(commodityNames, name) }

// State returns the Marathi state name, or name when unknown.
func State(name string) string { return lookup(stateNames, name) }

// DistrictEnglish reverses District. Several spellings share one Marathi
// name, so the alphabetically first English spelling is returned.
func DistrictEnglish(marathi string) string { return reverse(districtNames, marathi) }

// CommodityEnglish reverses Commodity.
func CommodityEnglish(marathi string) string { return reverse(commodityNames, marathi) }

func lookup(table map[string]string, name string) string {
	if v, ok := table[name]; ok {
		return v
	}
	return name
}

func reverse(table map[string]string, marathi string) string {
	best := ""
	for eng, mr := range table {
		if mr == marathi && (best == "" || eng < best) {
			best = eng
		}
	}
	if best == "" {
		return marathi
	}
	return best
}

func clone(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
