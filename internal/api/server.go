// Package api serves the interop layer over HTTP for editor and CI
// integrations. Every endpoint is read-only: nothing on disk is modified
// and no package manager is executed.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/audit"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/deps"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/env"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/risk"
)

// MaxTranscript bounds the audit transcript accepted by POST /v1/audit.
const MaxTranscript = 8 << 20

const shutdownTimeout = 5 * time.Second

// Server holds the handlers' dependencies.
type Server struct {
	resolver *env.Resolver
	logger   *log.Logger
}

// New returns a server resolving projects with r. A nil logger falls back
// to log.Default().
func New(r *env.Resolver, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{resolver: r, logger: logger}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/v1", func(r chi.Router) {
		r.Get("/env", s.handleEnv)
		r.Get("/cpf", s.handleCPF)
		r.Post("/audit/{manager}", s.handleAudit)
		r.Post("/risk/score", s.handleScore)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"took", time.Since(start),
			"id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request) (*env.Environment, bool) {
	path := r.URL.Query().Get("path")
	if path == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "missing path query parameter"))
		return nil, false
	}
	e, err := s.resolver.Resolve(path)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return e, true
}

func (s *Server) handleEnv(w http.ResponseWriter, r *http.Request) {
	if e, ok := s.resolve(w, r); ok {
		writeJSON(w, http.StatusOK, e)
	}
}

func (s *Server) handleCPF(w http.ResponseWriter, r *http.Request) {
	if e, ok := s.resolve(w, r); ok {
		writeJSON(w, http.StatusOK, e.Manifest.Package)
	}
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	m, err := deps.ParseManager(chi.URLParam(r, "manager"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	exitCode := 0
	if h := r.Header.Get("X-Exit-Code"); h != "" {
		if exitCode, err = strconv.Atoi(strings.TrimSpace(h)); err != nil {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "X-Exit-Code must be an integer, got %q", h))
			return
		}
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxTranscript))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read transcript"))
		return
	}

	report, err := audit.Normalize(m, string(body), exitCode)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ScoreRequest is the body of POST /v1/risk/score.
type ScoreRequest struct {
	Positives int            `json:"positives"`
	Negatives int            `json:"negatives"`
	Risk      audit.Severity `json:"risk"`
	Strict    bool           `json:"strict"`
}

// ScoreResponse carries both scores; Percentage is the one selected by
// Strict.
type ScoreResponse struct {
	Positives        int            `json:"positives"`
	Negatives        int            `json:"negatives"`
	Risk             audit.Severity `json:"risk,omitempty"`
	Strict           bool           `json:"strict"`
	Classic          float64        `json:"classicPercentage"`
	StrictPercentage float64        `json:"strictPercentage"`
	Percentage       float64        `json:"percentage"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode score request"))
		return
	}
	if req.Positives < 0 || req.Negatives < 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "answer counts must not be negative"))
		return
	}
	if req.Risk != "" {
		sev, ok := audit.ParseSeverity(string(req.Risk))
		if !ok {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "unknown severity %q", req.Risk))
			return
		}
		req.Risk = sev
	}

	a := risk.Assessment{Positives: req.Positives, Negatives: req.Negatives, Risk: req.Risk, Strict: req.Strict}
	writeJSON(w, http.StatusOK, ScoreResponse{
		Positives:        a.Positives,
		Negatives:        a.Negatives,
		Risk:             a.Risk,
		Strict:           a.Strict,
		Classic:          a.Classic(),
		StrictPercentage: a.StrictPercentage(),
		Percentage:       a.Percentage(),
	})
}
