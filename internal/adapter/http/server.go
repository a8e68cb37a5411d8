package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/air-quality-forecast/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ZoneQuerier exposes the latest known state of zones and reports.
type ZoneQuerier interface {
	Assessment(zone string) (domain.Assessment, bool)
	Assessments() []domain.Assessment
	LatestReport() (domain.Report, bool)
	Report(month int) (domain.Report, bool)
}

// Server exposes health, readiness, metrics and zone query HTTP endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and the
// read-only /zones and /reports routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, zones ZoneQuerier, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /zones", handleListZones(zones))
	mux.HandleFunc("GET /zones/{name}", handleGetZone(zones))
	mux.HandleFunc("GET /reports/latest", handleLatestReport(zones))
	mux.HandleFunc("GET /reports/{month}", handleGetReport(zones))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func handleListZones(zones ZoneQuerier) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"zones": zones.Assessments()})
	}
}

func handleGetZone(zones ZoneQuerier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		a, ok := zones.Assessment(name)
		if !ok {
			writeError(w, http.StatusNotFound, "zone not found: "+name)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func handleLatestReport(zones ZoneQuerier) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		report, ok := zones.LatestReport()
		if !ok {
			writeError(w, http.StatusNotFound, "no report generated yet")
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func handleGetReport(zones ZoneQuerier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month, err := strconv.Atoi(r.PathValue("month"))
		if err != nil || month < 1 || month > 12 {
			writeError(w, http.StatusBadRequest, "month must be an integer between 1 and 12")
			return
		}
		report, ok := zones.Report(month)
		if !ok {
			writeError(w, http.StatusNotFound, "no report for month "+strconv.Itoa(month))
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
