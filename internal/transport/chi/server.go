// Package chi implements the HTTP transport: hand-written handlers over a
// chi router, one uniform JSON error shape, sentinel-to-status mapping.
package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mcplookup/mcplookup/internal/domain"
	"github.com/mcplookup/mcplookup/internal/domain/query"
	"github.com/mcplookup/mcplookup/internal/domain/server"
	"github.com/mcplookup/mcplookup/internal/metrics"
	discoveryuc "github.com/mcplookup/mcplookup/internal/usecase/discovery"
	healthuc "github.com/mcplookup/mcplookup/internal/usecase/health"
	registryuc "github.com/mcplookup/mcplookup/internal/usecase/registry"
)

// Error codes surfaced in the "error" field of error responses.
const (
	codeInvalidQuery       = "invalid_query"
	codeBadRequest         = "bad_request"
	codeNotFound           = "not_found"
	codeAlreadyExists      = "already_exists"
	codeCatalogUnavailable = "catalog_unavailable"
	codeInternalError      = "internal_error"
)

const defaultListLimit = 50

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server hosts the discovery and registry HTTP API.
type Server struct {
	discovery     *discoveryuc.Service
	registry      *registryuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	discovery *discoveryuc.Service,
	registry *registryuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		discovery: discovery,
		registry:  registry,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		invalidQueryHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, codeAlreadyExists),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, codeCatalogUnavailable),
	}
	return s
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/discover", s.Discover)
	r.Route("/v1/servers", func(r chi.Router) {
		r.Get("/", s.ListServers)
		r.Get("/{domain}", s.GetServer)
		r.Put("/{domain}", s.PutServer)
		r.Delete("/{domain}", s.DeleteServer)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Discover handles POST /v1/discover. An empty body is legal and returns the
// default top-N page.
func (s *Server) Discover(w http.ResponseWriter, r *http.Request) {
	var req discoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	q, err := query.Normalize(req.toInput())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	report, err := s.discovery.Discover(r.Context(), &q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	metrics.ObserveDiscovery(
		report.Timing.Selection, report.Timing.Scoring,
		report.Timing.Filtering, report.Timing.Ranking,
		report.TotalResults,
	)

	writeJSON(w, http.StatusOK, reportToWire(&q, report))
}

// GetServer handles GET /v1/servers/{domain}.
func (s *Server) GetServer(w http.ResponseWriter, r *http.Request) {
	dom := chi.URLParam(r, "domain")

	rec, err := s.registry.Get(r.Context(), dom)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recordToWire(rec))
}

// ListServers handles GET /v1/servers?category=...&limit=...
func (s *Server) ListServers(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "category query parameter is required")
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, codeBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	recs, err := s.registry.ListByCategory(r.Context(), server.ParseCategory(category))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	total := len(recs)
	if len(recs) > limit {
		recs = recs[:limit]
	}

	servers := make([]serverPayload, len(recs))
	for i, rec := range recs {
		servers[i] = recordToWire(rec)
	}

	writeJSON(w, http.StatusOK, listResponse{Servers: servers, Total: total})
}

// PutServer handles PUT /v1/servers/{domain}.
func (s *Server) PutServer(w http.ResponseWriter, r *http.Request) {
	dom := chi.URLParam(r, "domain")

	var payload serverPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	if payload.Domain != "" && payload.Domain != dom {
		writeError(w, http.StatusBadRequest, codeBadRequest, "body domain does not match path")
		return
	}
	payload.Domain = dom

	if payload.Name == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "name is required")
		return
	}

	rec, err := s.registry.Register(r.Context(), recordFromWire(payload))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recordToWire(rec))
}

// DeleteServer handles DELETE /v1/servers/{domain}.
func (s *Server) DeleteServer(w http.ResponseWriter, r *http.Request) {
	dom := chi.URLParam(r, "domain")

	if err := s.registry.Unregister(r.Context(), dom); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:      string(report.Status),
		Checks:      checks,
		ServerCount: report.ServerCount,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrInvalidQuery,
		domain.ErrCatalogUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, safeDomainMessage(err))
		return true
	}
}

// invalidQueryHandler names the offending field when the normalizer rejects.
func invalidQueryHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrInvalidQuery) {
		return false
	}
	var iqe *domain.InvalidQueryError
	if errors.As(err, &iqe) {
		writeError(w, http.StatusBadRequest, codeInvalidQuery, iqe.Error())
		return true
	}
	writeError(w, http.StatusBadRequest, codeInvalidQuery, safeDomainMessage(err))
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
