package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/KaramelBytes/mhdash/internal/dashboard"
	"github.com/KaramelBytes/mhdash/internal/render"
	"github.com/KaramelBytes/mhdash/internal/survey"
	"github.com/KaramelBytes/mhdash/internal/utils"
)

var errUnknownPage = errors.New("unknown page")

// Pages served under /charts and /export.
var Pages = []string{"summary", "country", "occupation", "overview"}

// Config holds the server settings.
type Config struct {
	DataFile  string
	Addr      string
	ChartSize render.Size
}

// Server serves the dashboard pages as JSON, charts and workbooks. Every
// request reloads the data file.
type Server struct {
	cfg    Config
	dash   *dashboard.Dashboard
	logger *zap.Logger
	load   func(string) (*survey.Table, error)
}

// New builds a Server. A nil logger disables logging.
func New(cfg Config, dash *dashboard.Dashboard, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ChartSize.Width <= 0 || cfg.ChartSize.Height <= 0 {
		cfg.ChartSize = render.DefaultSize
	}
	return &Server{cfg: cfg, dash: dash, logger: logger, load: survey.Load}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5, "application/json", "image/svg+xml"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/filters", s.handleFilters)
		r.Get("/summary", s.handlePage("summary"))
		r.Get("/countries", s.handlePage("country"))
		r.Get("/occupations", s.handlePage("occupation"))
		r.Get("/overview", s.handlePage("overview"))
		r.Get("/overview/map", s.handleMap)
	})
	r.Get("/charts/{page}", s.handleChart)
	r.Get("/export/{page}.xlsx", s.handleExport)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", zap.String("addr", s.cfg.Addr), zap.String("data_file", s.cfg.DataFile))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// filtersResponse is the /api/filters payload.
type filtersResponse struct {
	dashboard.FilterOptions
	DefaultCountries   []string `json:"default_countries"`
	DefaultOccupations []string `json:"default_occupations"`
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	t, err := s.table(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, filtersResponse{
		FilterOptions:      s.dash.Filters(t),
		DefaultCountries:   s.dash.DefaultCountries(t),
		DefaultOccupations: s.dash.DefaultOccupations(t),
	})
}

func (s *Server) handlePage(page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := s.view(r, page)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	v, err := s.view(r, "overview")
	if err != nil {
		writeError(w, r, err)
		return
	}
	ov := v.(*dashboard.OverviewView)
	if ov.Map == nil {
		writeJSON(w, http.StatusOK, map[string]any{"status": dashboard.StatusNoData, "warnings": ov.Warnings})
		return
	}
	writeJSON(w, http.StatusOK, ov.Map)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind, err := render.ParseKind(q.Get("kind"))
	if err != nil {
		writeError(w, r, &dashboard.QueryError{Field: "kind", Value: q.Get("kind"), Allowed: []string{string(render.Bar), string(render.Pie)}})
		return
	}
	format, err := render.ParseFormat(q.Get("format"))
	if err != nil {
		writeError(w, r, &dashboard.QueryError{Field: "format", Value: q.Get("format"), Allowed: []string{string(render.SVG), string(render.PNG)}})
		return
	}
	v, err := s.view(r, chi.URLParam(r, "page"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := render.Chart(&buf, v, kind, format, s.cfg.ChartSize); err != nil {
		if errors.Is(err, render.ErrNotDrawable) {
			status, code := classify(err)
			writeJSON(w, status, apiError{Code: code, Message: pageMessage(v), Status: status, RequestID: RequestID(r.Context()), PageStatus: pageStatus(v)})
			return
		}
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	page := chi.URLParam(r, "page")
	v, err := s.view(r, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := render.WriteWorkbook(&buf, v); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", page+".xlsx"))
	_, _ = buf.WriteTo(w)
}

func (s *Server) table(r *http.Request) (*survey.Table, error) {
	t, err := s.load(s.cfg.DataFile)
	if err != nil {
		s.logger.Warn("load survey data", zap.String("request_id", RequestID(r.Context())), zap.Error(err))
		return nil, err
	}
	return t, nil
}

// view loads the data and builds the named page from the request query.
func (s *Server) view(r *http.Request, page string) (any, error) {
	var known bool
	for _, p := range Pages {
		known = known || p == page
	}
	if !known {
		return nil, fmt.Errorf("%w: %s", errUnknownPage, page)
	}
	t, err := s.table(r)
	if err != nil {
		return nil, err
	}
	q := r.URL.Query()
	var (
		v        any
		warnings []string
	)
	switch page {
	case "summary":
		sv := s.dash.Summary(t)
		v, warnings = sv, sv.Warnings
	case "country":
		countries, ok := list(q, "countries")
		if !ok {
			countries = s.dash.DefaultCountries(t)
		}
		fv, err := s.dash.Country(t, dashboard.CountryQuery{Countries: countries, Factor: q.Get("factor")})
		if err != nil {
			return nil, err
		}
		v, warnings = fv, fv.Warnings
	case "occupation":
		occupations, ok := list(q, "occupations")
		if !ok {
			occupations = s.dash.DefaultOccupations(t)
		}
		fv, err := s.dash.Occupation(t, dashboard.OccupationQuery{Occupations: occupations, Factor: q.Get("factor"), Gender: q.Get("gender")})
		if err != nil {
			return nil, err
		}
		v, warnings = fv, fv.Warnings
	case "overview":
		oq := dashboard.OverviewQuery{Factor: q.Get("factor"), Projection: q.Get("projection")}
		if raw := q.Get("intensity"); raw != "" {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &dashboard.QueryError{Field: "intensity", Value: raw, Allowed: []string{"0.5..1.5"}}
			}
			oq.Intensity = &f
		}
		if raw := q.Get("rotate"); raw != "" {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, &dashboard.QueryError{Field: "rotate", Value: raw, Allowed: []string{"true", "false"}}
			}
			oq.Rotate = b
		}
		ov, err := s.dash.Overview(t, oq)
		if err != nil {
			return nil, err
		}
		v, warnings = ov, ov.Warnings
	}
	for _, w := range warnings {
		s.logger.Warn(w, zap.String("request_id", RequestID(r.Context())), zap.String("page", page))
	}
	return v, nil
}

// list reads a multi-valued parameter given repeated or comma separated.
// ok is false when the parameter is absent, so callers can apply defaults.
func list(q url.Values, key string) ([]string, bool) {
	raw, ok := q[key]
	if !ok {
		return nil, false
	}
	var out []string
	for _, r := range raw {
		out = append(out, utils.SplitList(r)...)
	}
	return out, true
}

func pageStatus(v any) dashboard.Status {
	switch x := v.(type) {
	case *dashboard.FactorView:
		return x.Status
	case *dashboard.SummaryView:
		return x.Status
	case *dashboard.OverviewView:
		return x.Status
	}
	return ""
}

func pageMessage(v any) string {
	if fv, ok := v.(*dashboard.FactorView); ok && fv.Message != "" {
		return fv.Message
	}
	return "nothing to draw for this selection"
}
