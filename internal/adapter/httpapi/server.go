// Package httpapi exposes the recitation scoring service over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/escalopa/quran-recite-api/internal/application"
	"github.com/escalopa/quran-recite-api/internal/domain"
)

const maxUploadBytes = 25 << 20

// Server serves the recitation API: submission, lookup, history and progress.
type Server struct {
	service *application.RecitationService
	apiKey  string
	log     *logrus.Logger
	srv     *http.Server
}

func NewServer(addr string, service *application.RecitationService, apiKey string, metricsHandler http.Handler, log *logrus.Logger) *Server {
	s := &Server{
		service: service,
		apiKey:  apiKey,
		log:     log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /recitations", s.withAuth(s.handleSubmit))
	mux.HandleFunc("GET /recitations", s.withAuth(s.handleGet))
	mux.HandleFunc("GET /recitations/{learner_id}", s.withAuth(s.handleList))
	mux.HandleFunc("GET /progress/{learner_id}", s.withAuth(s.handleProgress))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the routed handler, used directly in tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start runs the server until the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.WithField("addr", s.srv.Addr).Info("http server started")

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}

// withAuth rejects requests whose x-api-key does not match the configured key.
// An empty configured key disables the check.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" && r.Header.Get("x-api-key") != s.apiKey {
			writeError(w, http.StatusUnauthorized, "invalid api key")
			return
		}
		next(w, r)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyAudio), errors.Is(err, domain.ErrEmptyExpectedText):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.log.WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
