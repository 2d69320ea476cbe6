package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/multitimer/multitimer-go/pkg/board"
	"github.com/multitimer/multitimer-go/pkg/config"
	"github.com/multitimer/multitimer-go/pkg/countdown"
	"github.com/multitimer/multitimer-go/pkg/entry"
	"github.com/multitimer/multitimer-go/pkg/history"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/netutil"
)

//go:embed static/*
var staticFiles embed.FS

// InvalidTimeMessage is shown when the entered time adds up to zero.
const InvalidTimeMessage = "Please enter a valid time"

// KeepAliveInterval is how often an idle event stream gets a comment line.
var KeepAliveInterval = 15 * time.Second

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 5 * time.Second

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	// MaxConnections caps concurrent connections; 0 means no cap.
	MaxConnections int

	Auth    config.Auth
	Labels  config.Labels
	Version string
}

// Server is the HTTP front end of one registry.
type Server struct {
	config   ServerConfig
	router   chi.Router
	registry *countdown.Registry
	board    *board.Board
	history  history.Repository
	logger   logrus.FieldLogger
}

// NewServer creates the server. hist may be nil.
func NewServer(cfg ServerConfig, reg *countdown.Registry, b *board.Board, hist history.Repository, logger logrus.FieldLogger) *Server {
	s := &Server{
		config:   cfg,
		router:   chi.NewRouter(),
		registry: reg,
		board:    b,
		history:  hist,
		logger:   logger,
	}
	s.registerRoutes()
	return s
}

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/api/v1/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.config.Auth.Enabled() {
			r.Use(BasicAuth(s.config.Auth, s.logger))
		}

		r.Get("/api/v1/info", s.handleInfo)

		r.Get("/api/v1/timers", s.handleListTimers)
		r.Post("/api/v1/timers", s.handleStartTimer)
		r.Get("/api/v1/timers/{id}", s.handleGetTimer)
		r.Delete("/api/v1/timers/{id}", s.handleDeleteTimer)
		r.Post("/api/v1/timers/{id}/complete", s.handleCompleteTimer)

		r.Get("/api/v1/events", s.handleEvents)

		r.Get("/api/v1/history", s.handleHistory)
		r.Get("/api/v1/history/stats", s.handleHistoryStats)

		r.Get("/*", s.handleStatic)
	})
}

// ServeHTTP lets the server be used as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Serve accepts connections on ln until ctx is done, then shuts down. It
// returns once in-flight requests have finished or ShutdownTimeout passed.
// Open event streams end with ctx.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.config.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.config.MaxConnections)
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.WithError(err).Warn("shutdown")
		}
	}()

	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		// Serve returns as soon as Shutdown starts; handlers may still be
		// using the registry.
		<-drained
		return nil
	}
	return err
}

// timerView is a timer plus its card text.
type timerView struct {
	countdown.Timer
	Text string `json:"text"`
}

func (s *Server) view(t countdown.Timer) timerView {
	return timerView{Timer: t, Text: t.Display(s.registry.Labels())}
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	version := s.config.Version
	if version == "" {
		version = "dev"
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version,
	})
}

// handleInfo returns what the page needs to render cards.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	labels := s.registry.Labels()
	respondJSON(w, http.StatusOK, map[string]any{
		"session": s.registry.SessionID(),
		"timers":  s.registry.Len(),
		"history": s.history != nil,
		"labels": map[string]string{
			"timeUp":  labels.TimeUp,
			"dismiss": labels.Dismiss,
			"delete":  s.config.Labels.Delete,
		},
	})
}

func (s *Server) handleListTimers(w http.ResponseWriter, r *http.Request) {
	timers := s.registry.List()
	out := make([]timerView, 0, len(timers))
	for _, t := range timers {
		out = append(out, s.view(t))
	}
	respondJSON(w, http.StatusOK, out)
}

// inputField accepts a JSON number or string, the way a form field
// arrives from the page.
type inputField string

func (f *inputField) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = inputField(s)
		return nil
	}
	if string(data) == "null" {
		*f = ""
		return nil
	}
	*f = inputField(data)
	return nil
}

// startRequest is either the three widget fields or a duration string
// ("90", "1:30", "1h30m").
type startRequest struct {
	Hours    inputField `json:"hours"`
	Minutes  inputField `json:"minutes"`
	Seconds  inputField `json:"seconds"`
	Duration string     `json:"duration"`
}

func (req startRequest) total() (int, error) {
	if req.Duration != "" {
		return entry.ParseDuration(req.Duration)
	}
	return entry.FromFields(string(req.Hours), string(req.Minutes), string(req.Seconds)).Total(), nil
}

func (s *Server) handleStartTimer(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	total, err := req.total()
	if err != nil {
		respondError(w, InvalidTimeMessage, http.StatusBadRequest)
		return
	}

	id, err := s.registry.StartTimer(total)
	if errors.Is(err, countdown.ErrInvalidDuration) {
		respondError(w, InvalidTimeMessage, http.StatusBadRequest)
		return
	}
	if err != nil {
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	t, ok := s.registry.Get(id)
	if !ok {
		// deleted between start and lookup
		respondJSON(w, http.StatusCreated, map[string]uint64{"id": uint64(id)})
		return
	}
	respondJSON(w, http.StatusCreated, s.view(t))
}

// timerID parses the {id} URL parameter, writing 400 on failure.
func timerID(w http.ResponseWriter, r *http.Request) (countdown.ID, bool) {
	n, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "invalid timer id", http.StatusBadRequest)
		return 0, false
	}
	return countdown.ID(n), true
}

func (s *Server) handleGetTimer(w http.ResponseWriter, r *http.Request) {
	id, ok := timerID(w, r)
	if !ok {
		return
	}
	t, ok := s.registry.Get(id)
	if !ok {
		respondError(w, "timer not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, s.view(t))
}

func (s *Server) handleDeleteTimer(w http.ResponseWriter, r *http.Request) {
	id, ok := timerID(w, r)
	if !ok {
		return
	}
	if _, ok := s.registry.Get(id); !ok {
		respondError(w, "timer not found", http.StatusNotFound)
		return
	}
	s.registry.DeleteTimer(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCompleteTimer(w http.ResponseWriter, r *http.Request) {
	id, ok := timerID(w, r)
	if !ok {
		return
	}
	if _, ok := s.registry.Get(id); !ok {
		respondError(w, "timer not found", http.StatusNotFound)
		return
	}
	s.registry.CompleteTimer(id)

	t, ok := s.registry.Get(id)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, s.view(t))
}

// handleEvents streams board updates. The first event is a snapshot of
// all cards.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sub, cancel := s.board.Subscribe(board.DefaultBuffer)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, "snapshot", s.board.Snapshot()); err != nil {
		return
	}
	flusher.Flush()

	keepAlive := time.NewTicker(KeepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case u, ok := <-sub.C:
			if !ok {
				return
			}
			if err := writeEvent(w, string(u.Type), u); err != nil {
				return
			}
			flusher.Flush()

		case <-keepAlive.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(name)
	b.WriteString("\ndata: ")
	b.Write(payload)
	b.WriteString("\n\n")
	_, err = w.Write([]byte(b.String()))
	return err
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		respondError(w, "history disabled", http.StatusNotFound)
		return
	}

	// Session queries return the whole session; limit applies to the
	// newest-first listing only.
	session := r.URL.Query().Get("session")
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if session != "" {
			respondError(w, "limit cannot be combined with session", http.StatusBadRequest)
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	var (
		recs []history.Record
		err  error
	)
	if session != "" {
		recs, err = s.history.BySession(r.Context(), session)
	} else {
		recs, err = s.history.Recent(r.Context(), limit)
	}
	if err != nil {
		s.logger.WithError(err).Error("history query failed")
		respondError(w, "history query failed", http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []history.Record{}
	}
	respondJSON(w, http.StatusOK, recs)
}

func (s *Server) handleHistoryStats(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		respondError(w, "history disabled", http.StatusNotFound)
		return
	}
	stats, err := s.history.Stats(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("history stats failed")
		respondError(w, "history query failed", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// handleStatic serves the embedded page. Unknown paths fall back to
// index.html; unknown API paths get a JSON 404.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		respondError(w, "not found", http.StatusNotFound)
		return
	}

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	filePath := strings.TrimPrefix(r.URL.Path, "/")
	if filePath == "" {
		filePath = "index.html"
	}
	if file, err := staticFS.Open(filePath); err != nil {
		filePath = "index.html"
	} else {
		file.Close()
	}

	switch {
	case strings.HasSuffix(filePath, ".html"):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	case strings.HasSuffix(filePath, ".css"):
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
	case strings.HasSuffix(filePath, ".js"):
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	}

	http.ServeFileFS(w, r, staticFS, filePath)
}

// requestLogger logs each request through logrus.
func requestLogger(logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.WithFields(logrus.Fields{
					"method":     r.Method,
					"path":       r.URL.Path,
					"status":     ww.Status(),
					"bytes":      ww.BytesWritten(),
					"duration":   time.Since(start),
					"request_id": middleware.GetReqID(r.Context()),
				}).Debug("request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}
