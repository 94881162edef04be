package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/storm-incident-reports/internal/domain"
	"github.com/couchcryptid/storm-incident-reports/internal/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// ReportStore is the persistence surface the report routes depend on.
type ReportStore interface {
	CreateReport(ctx context.Context, in domain.NewReport) (domain.Report, error)
	ListReports(ctx context.Context) ([]domain.Report, error)
	GetReport(ctx context.Context, id int64) (domain.Report, error)
	ListActiveEventTypes(ctx context.Context) ([]domain.EventType, error)
}

// ReportPublisher receives every report after its transaction commits.
// Enqueue must not block; it reports whether the report was accepted.
type ReportPublisher interface {
	Enqueue(r domain.Report) bool
}

// Deps wires the server to the rest of the service. Publisher may be nil.
type Deps struct {
	Store          ReportStore
	Ready          sharedobs.ReadinessChecker
	Publisher      ReportPublisher
	AllowedOrigins []string
	Logger         *slog.Logger
	Metrics        *observability.Metrics
}

// Server exposes the report API alongside health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	store      ReportStore
	publisher  ReportPublisher
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with the /api routes plus /healthz, /readyz, and /metrics.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	s := &Server{
		store:     deps.Store,
		publisher: deps.Publisher,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
	}

	s.handle(mux, "POST /api/eventos", s.handleCreateReport)
	s.handle(mux, "GET /api/eventos", s.handleListReports)
	s.handle(mux, "GET /api/eventos/{id}", s.handleGetReport)
	s.handle(mux, "GET /api/tipos-eventos", s.handleListEventTypes)

	// Known paths with an unsupported method, and everything else, still
	// answer with the JSON error envelope.
	mux.Handle("/api/eventos", methodNotAllowed(http.MethodGet, http.MethodPost))
	mux.Handle("/api/eventos/{id}", methodNotAllowed(http.MethodGet))
	mux.Handle("/api/tipos-eventos", methodNotAllowed(http.MethodGet))
	mux.HandleFunc("/", handleNotFound)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(deps.Ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins: deps.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      c.Handler(s.recoverer(mux)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
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

// handle registers fn under pattern, recording request count and latency
// labelled by the pattern rather than the concrete path.
func (s *Server) handle(mux *http.ServeMux, pattern string, fn http.HandlerFunc) {
	mux.Handle(pattern, s.instrument(pattern, fn))
}
