// Package advisory composes price, weather, advice and speech into a single
// response for a farmer's location and crop.
package advisory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/mandi-advisor/internal/location"
	"github.com/sells-group/mandi-advisor/internal/model"
)

// PriceResolver answers (market, crop) price queries without failing.
type PriceResolver interface {
	Resolve(ctx context.Context, market, crop string) model.ResolvedPrice
}

// WeatherSource fetches a forecast for coordinates.
type WeatherSource interface {
	Forecast(ctx context.Context, lat, lon float64) (*model.Weather, error)
}

// AdviceWriter produces advice text. It reports problems in the text itself.
type AdviceWriter interface {
	Generate(ctx context.Context, price model.ResolvedPrice, weather model.Weather) string
}

// Speaker converts text to base64 audio.
type Speaker interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// Request identifies the place and crop to advise on. Only District is required.
type Request struct {
	District string
	Market   string
	Crop     string
	Taluka   string
}

// Defaults are used when a request leaves a field unresolved.
type Defaults struct {
	Market string
	Crop   string
	Point  location.Point
}

// Deps bundles the collaborators of a Service.
type Deps struct {
	Prices    PriceResolver
	Weather   WeatherSource
	Advice    AdviceWriter
	Speech    Speaker
	Locations *location.Directory
	Filters   model.FilterIndex
}

// Service builds advisories. It is safe for concurrent use.
type Service struct {
	deps     Deps
	defaults Defaults
	newID    func() string
}

// NewService creates a Service. Empty defaults fall back to Pune, Tomato and
// Mumbai's coordinates.
func NewService(deps Deps, defaults Defaults) *Service {
	if defaults.Market == "" {
		defaults.Market = "Pune"
	}
	if defaults.Crop == "" {
		defaults.Crop = "Tomato"
	}
	if defaults.Point == (location.Point{}) {
		defaults.Point = location.Point{Lat: 19.0760, Lon: 72.8777}
	}
	if deps.Locations == nil {
		deps.Locations = location.Builtin()
	}
	return &Service{deps: deps, defaults: defaults, newID: uuid.NewString}
}

// Get never fails: collaborator errors degrade the matching field.
func (s *Service) Get(ctx context.Context, req Request) *model.Advisory {
	crop := strings.TrimSpace(req.Crop)
	if crop == "" {
		crop = s.defaults.Crop
	}
	loc := s.resolveLocation(req)

	var price model.ResolvedPrice
	var weather model.Weather

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		price = s.deps.Prices.Resolve(gctx, loc.Market, crop)
		return nil
	})
	g.Go(func() error {
		weather = s.forecast(gctx, loc)
		return nil
	})
	_ = g.Wait()

	text := s.advise(ctx, price, weather)
	audio := s.speak(ctx, text)

	zap.L().Info("advisory: built",
		zap.String("district", loc.District),
		zap.String("market", loc.Market),
		zap.String("crop", crop),
		zap.String("price_source", string(price.Source)),
		zap.Bool("weather_ok", weather.Error == ""),
		zap.Bool("audio", audio != ""),
	)

	return &model.Advisory{
		ID:            s.newID(),
		Location:      loc,
		Crop:          crop,
		PriceData:     price,
		WeatherData:   weather,
		AdviceMarathi: text,
		AudioBase64:   audio,
		DataSource:    price.Source.Label(),
	}
}

// resolveLocation picks coordinates and a market. Coordinates come from the
// taluka entry, then the district table, then the default. The market comes
// from the request, then the taluka's nearest mandi, then the first market
// listed for the district, then the default.
func (s *Service) resolveLocation(req Request) model.ResolvedLocation {
	out := model.ResolvedLocation{
		District: req.District,
		Taluka:   req.Taluka,
		Lat:      s.defaults.Point.Lat,
		Lon:      s.defaults.Point.Lon,
	}

	var nearest string
	if entry, ok := s.deps.Locations.Find(req.District, req.Taluka); req.Taluka != "" && ok {
		out.Lat, out.Lon = entry.Lat, entry.Lon
		nearest = entry.NearestMandi
	} else if p, ok := s.deps.Locations.Coordinates(req.District); ok {
		out.Lat, out.Lon = p.Lat, p.Lon
	}

	switch {
	case strings.TrimSpace(req.Market) != "":
		out.Market = strings.TrimSpace(req.Market)
	case nearest != "":
		out.Market = nearest
	default:
		if markets := s.deps.Filters.Markets(req.District); len(markets) > 0 {
			out.Market = markets[0]
		} else {
			out.Market = s.defaults.Market
		}
	}
	return out
}

func (s *Service) forecast(ctx context.Context, loc model.ResolvedLocation) model.Weather {
	if s.deps.Weather == nil {
		return model.Weather{Error: "weather: not configured"}
	}
	w, err := s.deps.Weather.Forecast(ctx, loc.Lat, loc.Lon)
	if err != nil || w == nil {
		zap.L().Warn("advisory: weather unavailable", zap.String("district", loc.District), zap.Error(err))
		msg := "weather: empty forecast"
		if err != nil {
			msg = err.Error()
		}
		return model.Weather{Error: msg}
	}
	return *w
}

func (s *Service) advise(ctx context.Context, price model.ResolvedPrice, weather model.Weather) string {
	if s.deps.Advice == nil {
		return ""
	}
	return s.deps.Advice.Generate(ctx, price, weather)
}

func (s *Service) speak(ctx context.Context, text string) string {
	if s.deps.Speech == nil || text == "" {
		return ""
	}
	audio, err := s.deps.Speech.Synthesize(ctx, text)
	if err != nil {
		zap.L().Warn("advisory: speech unavailable", zap.Error(err))
		return ""
	}
	return audio
}
