package inspect

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/scene/internal/errors"
	"github.com/vango-dev/scene/pkg/elements"
	"github.com/vango-dev/scene/pkg/runtime"
	"github.com/vango-dev/scene/pkg/scene"
)

// shutdownTimeout bounds graceful shutdown in ListenAndServe.
const shutdownTimeout = 5 * time.Second

// Server is the inspection HTTP server for one runtime.
type Server struct {
	rt          *runtime.Runtime
	logger      *slog.Logger
	gatherer    prometheus.Gatherer
	hub         *Hub
	router      chi.Router
	unsubscribe func()
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithGatherer sets the registry served at /metrics.
// Default: prometheus.DefaultGatherer
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// New creates an inspector for rt and subscribes it to new frames.
// Call Close to unsubscribe.
func New(rt *runtime.Runtime, opts ...Option) *Server {
	s := &Server{
		rt:       rt,
		logger:   slog.Default(),
		gatherer: prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "inspect")
	s.hub = NewHub(s.logger)
	s.router = s.routes()
	s.unsubscribe = rt.Subscribe(func(f *runtime.Frame) {
		s.hub.Broadcast(NewSnapshot(f))
	})
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "ok")
	})
	r.Get("/frame", s.handleFrame)
	r.Get("/frame/layout", s.handleLayout)
	r.Get("/frame/paint", s.handlePaint)
	r.Get("/stats", s.handleStats)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/ws", s.hub.HandleWebSocket)
	r.Post("/dispatch", s.handleDispatch)
	return r
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.New("E141").WithDetail("listen " + addr).Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("inspector listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.New("E141").Wrap(err)
		}
		return nil
	case <-ctx.Done():
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New("E141").WithDetail("shutdown").Wrap(err)
	}
	s.logger.Info("inspector stopped")
	return nil
}

// Close unsubscribes from the runtime and disconnects all clients.
func (s *Server) Close() {
	s.unsubscribe()
	s.hub.Close()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	f := s.rt.Last()
	if f == nil {
		writeError(w, http.StatusNotFound, "no frame yet")
		return
	}
	writeJSON(w, http.StatusOK, NewSnapshot(f))
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	f := s.rt.Last()
	if f == nil {
		writeError(w, http.StatusNotFound, "no frame yet")
		return
	}
	writeJSON(w, http.StatusOK, NewLayoutTree(f.Layout))
}

func (s *Server) handlePaint(w http.ResponseWriter, r *http.Request) {
	f := s.rt.Last()
	if f == nil {
		writeError(w, http.StatusNotFound, "no frame yet")
		return
	}
	out := make([]PaintView, 0, len(f.Paints))
	for _, p := range f.Paints {
		out = append(out, paintView(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// StatsView is the JSON form of runtime.Stats.
type StatsView struct {
	Frames   uint64 `json:"frames"`
	Failures uint64 `json:"failures"`
	Hits     uint64 `json:"hits"`
	Misses   uint64 `json:"misses"`
	Slots    int    `json:"slots"`
	Clients  int    `json:"clients"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st := s.rt.Stats()
	writeJSON(w, http.StatusOK, StatsView{
		Frames:   st.Frames,
		Failures: st.Failures,
		Hits:     st.Hits,
		Misses:   st.Misses,
		Slots:    st.Slots,
		Clients:  s.hub.ClientCount(),
	})
}

// DispatchRequest is the body of POST /dispatch.
type DispatchRequest struct {
	Path    string  `json:"path"`
	Event   string  `json:"event"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Entered bool    `json:"entered,omitempty"`
	Key     string  `json:"key,omitempty"`
}

// DispatchResponse reports whether a handler ran.
type DispatchResponse struct {
	Handled bool `json:"handled"`
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	var req DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	path, err := scene.ParsePath(req.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ev, ok := decodeEvent(req)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown event "+req.Event)
		return
	}
	writeJSON(w, http.StatusOK, DispatchResponse{Handled: s.rt.Dispatch(path, ev)})
}

func decodeEvent(req DispatchRequest) (scene.Event, bool) {
	switch req.Event {
	case elements.Click{}.EventKind():
		return elements.Click{X: req.X, Y: req.Y}, true
	case elements.Hover{}.EventKind():
		return elements.Hover{Entered: req.Entered}, true
	case elements.KeyPress{}.EventKind():
		return elements.KeyPress{Key: req.Key}, true
	default:
		return nil, false
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
