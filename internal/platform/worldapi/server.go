package worldapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/knight-skies/internal/leaderboard"
	"github.com/vovakirdan/knight-skies/internal/storage"
)

// MaxLimit caps the number of rows a single request may read.
const MaxLimit = 100

// TableStore is the persistence the server needs.
type TableStore interface {
	TopEntries(ctx context.Context, table string, limit int) ([]storage.WorldEntry, error)
	InsertEntry(ctx context.Context, table string, r leaderboard.Record) (storage.WorldEntry, error)
}

// Server handles world leaderboard requests.
type Server struct {
	store     TableStore
	logger    *log.Logger
	startTime time.Time
}

// NewServer creates a new API server.
func NewServer(store TableStore, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:     store,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Routes sets up the HTTP routes with their middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1/tables/{table}", func(r chi.Router) {
		r.Get("/", s.handleTop)
		r.Post("/", s.handleInsert)
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting world leaderboard", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Stopping world leaderboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	limit := leaderboard.Capacity
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, MaxLimit)
	}

	entries, err := s.store.TopEntries(r.Context(), table, limit)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	resp := TopResponse{Table: table, Entries: make([]EntryJSON, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, entryFromStorage(e))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	var req InsertRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entry, err := s.store.InsertEntry(r.Context(), table, leaderboard.Record{Name: req.Name, Score: req.Score})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.logger.Info("world score submitted", "table", table, "name", entry.Name, "score", entry.Score, "id", entry.ID)
	s.writeJSON(w, http.StatusCreated, entryFromStorage(entry))
}

// writeStoreError maps storage and validation errors to status codes.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrUnknownTable):
		s.writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, leaderboard.ErrInvalidName), errors.Is(err, leaderboard.ErrInvalidScore):
		s.writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("store failure", "err", err, "request_id", middleware.GetReqID(r.Context()))
		s.writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("cannot encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.writeJSON(w, status, ErrorResponse{
		Error:     msg,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// logRequests logs one line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
