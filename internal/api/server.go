// Package api exposes the forge over HTTP. The surface is intentionally
// small: generation, morphing, registry listing, and a health probe. All
// responses are JSON and every request carries a generated request ID for
// log correlation.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/glyphforge/glyphforge/pkg/buildinfo"
	"github.com/glyphforge/glyphforge/pkg/errors"
	"github.com/glyphforge/glyphforge/pkg/forge"
	"github.com/glyphforge/glyphforge/pkg/registry"
)

// ctxKey is the private type for request-scoped context values.
type ctxKey int

const requestIDKey ctxKey = iota

// Server wires the forge and registry behind an HTTP router.
type Server struct {
	forge  *forge.Forge
	reg    registry.Registry
	logger *log.Logger
	router chi.Router
}

// NewServer builds the router. reg may be nil, in which case the registry
// endpoint reports 404.
func NewServer(f *forge.Forge, reg registry.Registry, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{forge: f, reg: reg, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Post("/morph", s.handleMorph)
		r.Get("/registry", s.handleRegistry)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestID assigns a UUID to each request and echoes it in the response.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// logRequests emits one structured line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", RequestID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req forge.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidRequest, err, "decode request body"))
		return
	}

	set, err := s.forge.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer set.Close()

	writeJSON(w, http.StatusOK, newSetResponse(set))
}

func (s *Server) handleMorph(w http.ResponseWriter, r *http.Request) {
	var req forge.MorphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidRequest, err, "decode request body"))
		return
	}

	c, err := s.forge.Morph(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer c.Close()

	writeJSON(w, http.StatusOK, newCapsuleResponse(c))
}

func (s *Server) handleRegistry(w http.ResponseWriter, r *http.Request) {
	if s.reg == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "no registry configured"))
		return
	}
	recs, err := s.reg.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": recs, "count": len(recs)})
}
