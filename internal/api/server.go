// Package api exposes the advisory, price, history and lookup endpoints over
// HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/mandi-advisor/internal/advisory"
	"github.com/sells-group/mandi-advisor/internal/history"
	"github.com/sells-group/mandi-advisor/internal/location"
	"github.com/sells-group/mandi-advisor/internal/model"
)

// Advisor builds a full advisory.
type Advisor interface {
	Get(ctx context.Context, req advisory.Request) *model.Advisory
}

// HistoryResolver returns a bounded price series.
type HistoryResolver interface {
	Resolve(ctx context.Context, crop, market string, days int) []model.HistoryPoint
}

// PriceResolver returns a single resolved price.
type PriceResolver interface {
	Resolve(ctx context.Context, market, crop string) model.ResolvedPrice
}

// Deps bundles what the handlers read.
type Deps struct {
	Filters   model.FilterIndex
	History   HistoryResolver
	Prices    PriceResolver
	Advisor   Advisor
	Locations *location.Directory
}

// Options tunes middleware.
type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// Server is the HTTP API.
type Server struct {
	deps   Deps
	opts   Options
	router chi.Router
}

// NewServer builds the router.
func NewServer(deps Deps, opts Options) *Server {
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 120 * time.Second
	}
	if deps.Locations == nil {
		deps.Locations = location.Builtin()
	}
	s := &Server{deps: deps, opts: opts}
	s.router = s.buildRouter()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/filters", s.handleFilters)
	r.Get("/history", s.handleHistory)
	r.Get("/data", s.handleData)
	r.Get("/price", s.handlePrice)
	r.Get("/locations", s.handleLocations)
	r.Get("/translations", s.handleTranslations)

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "mandi-advisor",
		"message": "Mandi price and advisory API for Maharashtra",
		"endpoints": []string{
			"/health", "/filters", "/history", "/data", "/price", "/locations", "/translations",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFilters(w http.ResponseWriter, _ *http.Request) {
	f := s.deps.Filters
	if f == nil {
		f = model.FilterIndex{}
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	crop := strings.TrimSpace(q.Get("crop"))
	if crop == "" {
		writeError(w, http.StatusBadRequest, "crop is required")
		return
	}

	days := history.DefaultDays
	if raw := strings.TrimSpace(q.Get("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "days must be an integer")
			return
		}
		days = n
	}

	points := s.deps.History.Resolve(r.Context(), crop, strings.TrimSpace(q.Get("mandi")), days)
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	district := strings.TrimSpace(q.Get("district"))
	if district == "" {
		writeError(w, http.StatusBadRequest, "district is required")
		return
	}

	adv := s.deps.Advisor.Get(r.Context(), advisory.Request{
		District: district,
		Market:   strings.TrimSpace(q.Get("market")),
		Crop:     strings.TrimSpace(q.Get("crop")),
		Taluka:   strings.TrimSpace(q.Get("taluka")),
	})
	writeJSON(w, http.StatusOK, adv)
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	market := strings.TrimSpace(q.Get("market"))
	crop := strings.TrimSpace(q.Get("crop"))
	if market == "" || crop == "" {
		writeError(w, http.StatusBadRequest, "market and crop are required")
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Prices.Resolve(r.Context(), market, crop))
}

func (s *Server) handleLocations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Locations.Locations())
}

func (s *Server) handleTranslations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, location.AllTranslations())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("api: write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

// requestLogger logs one line per request through the global zap logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
