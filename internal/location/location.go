// Package location holds the static geography used by the advisory: district
// coordinates, taluka entries with their nearest mandi, and Marathi names.
package location

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/mandi-advisor/internal/match"
	"github.com/sells-group/mandi-advisor/internal/model"
)

// Point is a latitude/longitude pair.
type Point struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

var districtCoords = map[string]Point{
	"Pune":       {18.5204, 73.8567},
	"Mumbai":     {19.0760, 72.8777},
	"Nashik":     {20.0063, 73.7909},
	"Ahmednagar": {19.0948, 74.7500},
	"Nagpur":     {21.1458, 79.0882},
	"Aurangabad": {19.8762, 75.3433},
	"Solapur":    {17.6599, 75.9064},
	"Kolhapur":   {16.7050, 74.2433},
	"Dhule":      {20.9042, 74.7749},
	"Jalgaon":    {21.0077, 75.5626},
	"Thane":      {19.2183, 72.9781},
	"Raigad":     {18.5158, 73.1822},
	"Satara":     {17.6805, 74.0183},
	"Sangli":     {16.8524, 74.5815},
	"Ratnagiri":  {16.9902, 73.3120},
}

var talukas = []model.Location{
	{District: "Ahmednagar", Taluka: "Rahata", Village: "Shirdi", NearestMandi: "Rahata", Lat: 19.7667, Lon: 74.4762},
	{District: "Pune", Taluka: "Haveli", Village: "Khadakwasla", NearestMandi: "Pune", Lat: 18.4382, Lon: 73.7732},
	{District: "Nashik", Taluka: "Niphad", Village: "Pimpalgaon", NearestMandi: "Pimpalgaon Baswant", Lat: 20.1738, Lon: 73.9877},
}

// Directory answers location lookups. It is read-only after construction.
type Directory struct {
	districts map[string]Point
	locations []model.Location
}

// Builtin returns the directory compiled into the binary.
func Builtin() *Directory {
	d := &Directory{districts: make(map[string]Point, len(districtCoords))}
	for k, v := range districtCoords {
		d.districts[k] = v
	}
	d.locations = append(d.locations, talukas...)
	return d
}

type fileFormat struct {
	Districts map[string]Point `yaml:"districts"`
	Locations []model.Location `yaml:"locations"`
}

// Load returns the builtin directory extended by a YAML file. Districts in the
// file replace builtin coordinates; locations replace entries with the same
// district and taluka. An empty path returns Builtin.
func Load(path string) (*Directory, error) {
	d := Builtin()
	if path == "" {
		return d, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "location: read %s", path)
	}
	var f fileFormat
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, eris.Wrapf(err, "location: parse %s", path)
	}

	for name, p := range f.Districts {
		d.districts[name] = p
	}
	for _, loc := range f.Locations {
		if loc.District == "" || loc.Taluka == "" {
			return nil, eris.Errorf("location: entry %q needs district and taluka", loc.Village)
		}
		replaced := false
		for i, existing := range d.locations {
			if match.Exact(existing.District, loc.District) && match.Exact(existing.Taluka, loc.Taluka) {
				d.locations[i] = loc
				replaced = true
				break
			}
		}
		if !replaced {
			d.locations = append(d.locations, loc)
		}
	}
	return d, nil
}

// Coordinates returns the district's coordinates, matched case-insensitively.
func (d *Directory) Coordinates(district string) (Point, bool) {
	if p, ok := d.districts[district]; ok {
		return p, true
	}
	for name, p := range d.districts {
		if match.Exact(name, district) {
			return p, true
		}
	}
	return Point{}, false
}

// Find returns the taluka entry for (district, taluka), matched case-insensitively.
func (d *Directory) Find(district, taluka string) (model.Location, bool) {
	for _, loc := range d.locations {
		if match.Exact(loc.District, district) && match.Exact(loc.Taluka, taluka) {
			return loc, true
		}
	}
	return model.Location{}, false
}

// Locations returns every taluka entry ordered by district then taluka.
func (d *Directory) Locations() []model.Location {
	out := append([]model.Location(nil), d.locations...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].District != out[j].District {
			return out[i].District < out[j].District
		}
		return out[i].Taluka < out[j].Taluka
	})
	return out
}

// Districts returns the names with known coordinates, sorted.
func (d *Directory) Districts() []string {
	out := make([]string, 0, len(d.districts))
	for name := range d.districts {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
