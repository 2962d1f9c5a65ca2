// Package api exposes stored pipeline artifacts over HTTP so reviewers can
// browse a processed document without touching the CLI.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/docsift/docsift/store"
)

// Server serves read-only artifact endpoints backed by a Store.
type Server struct {
	router chi.Router
	store  *store.Store
	log    *slog.Logger
}

// NewServer creates and configures the HTTP server.
func NewServer(st *store.Store, log *slog.Logger) *Server {
	s := &Server{store: st, log: log}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/toc", s.handleTOC)
	r.Get("/api/toc/{chapter}", s.handleTOCChapter)
	r.Get("/api/chunks", s.handleChunks)
	r.Get("/api/chunks/{sectionID}", s.handleChunk)
	r.Get("/api/validation", s.handleValidation)
	r.Get("/api/metrics", s.handleMetrics)
	r.Get("/api/sections/without/{kind}", s.handleWithoutCaptions)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.TOC(r.Context())
	if err != nil {
		jsonError(w, "failed to load toc: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"entries": entries, "count": len(entries)})
}

func (s *Server) handleTOCChapter(w http.ResponseWriter, r *http.Request) {
	chapter := chi.URLParam(r, "chapter")
	entries, err := s.store.TOCByChapter(r.Context(), chapter)
	if err != nil {
		jsonError(w, "failed to load toc: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(entries) == 0 {
		jsonError(w, "chapter not found: "+chapter, http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{"entries": entries, "count": len(entries)})
}

func (s *Server) handleChunks(w http.ResponseWriter, r *http.Request) {
	chunks, err := s.store.Chunks(r.Context())
	if err != nil {
		jsonError(w, "failed to load chunks: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"chunks": chunks, "count": len(chunks)})
}

func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	sectionID := chi.URLParam(r, "sectionID")
	chunks, err := s.store.Chunks(r.Context())
	if err != nil {
		jsonError(w, "failed to load chunks: "+err.Error(), http.StatusInternalServerError)
		return
	}
	for _, c := range chunks {
		if c.SectionID == sectionID {
			writeJSON(w, c)
			return
		}
	}
	jsonError(w, "section not found: "+sectionID, http.StatusNotFound)
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	report, err := s.store.Validation(r.Context())
	if errors.Is(err, sql.ErrNoRows) {
		jsonError(w, "no validation report stored", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to load validation: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, report)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.Metrics(r.Context())
	if errors.Is(err, sql.ErrNoRows) {
		jsonError(w, "no metrics stored", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to load metrics: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, m)
}

func (s *Server) handleWithoutCaptions(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	if kind != "figure" && kind != "table" {
		jsonError(w, "kind must be figure or table", http.StatusBadRequest)
		return
	}
	paths, err := s.store.SectionsWithoutCaptions(r.Context(), kind)
	if err != nil {
		jsonError(w, "failed to query sections: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if paths == nil {
		paths = []string{}
	}
	writeJSON(w, map[string]any{"sections": paths, "count": len(paths)})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: 200}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
