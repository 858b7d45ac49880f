// Package server implements the HTTP preview server for tonekit serve.
package server

import (
	"context"
	"fmt"
	"image/color"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wethinkt/go-tonekit/internal/palette"
	"github.com/wethinkt/go-tonekit/internal/preview"
	"github.com/wethinkt/go-tonekit/internal/tonelog"
)

// Config holds server configuration.
type Config struct {
	Host          string
	Port          int
	PreviewWidth  int
	PreviewHeight int
	Preview       preview.Options
	Background    color.Color
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Host:          "localhost",
		Port:          7480,
		PreviewWidth:  960,
		PreviewHeight: 160,
		Preview:       preview.DefaultOptions(),
		Background:    color.White,
	}
}

// Server serves the palette state, a live preview image and an event stream.
// All access to the manager goes through one mutex.
type Server struct {
	mu  sync.Mutex
	m   *palette.Manager
	hub *Hub

	router chi.Router
	config Config
}

// New creates a server for m. Events published to hub are streamed on /ws;
// the manager should be built with palette.WithObserver(hub.Publish).
func New(m *palette.Manager, hub *Hub, config Config) *Server {
	if hub == nil {
		hub = NewHub()
	}
	if config.Background == nil {
		config.Background = color.White
	}
	s := &Server{m: m, hub: hub, config: config}
	s.router = s.setupRouter()
	return s
}

// setupRouter configures all routes.
func (s *Server) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(corsMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/palette", s.handleGetPalette)
		r.Get("/palettes", s.handleGetPalettes)
	})
	r.Get("/preview.png", s.handleGetPreview)
	r.Get("/ws", s.handleEventsWS)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/", s.handleIndex)

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router {
	return s.router
}

// Do runs fn with exclusive access to the manager.
func (s *Server) Do(fn func(m *palette.Manager)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.m)
}

// Reload rereads the config file and rebuilds the palette.
func (s *Server) Reload() {
	s.Do(func(m *palette.Manager) { m.Reload() })
}

// Addr returns the server address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// ListenAndServe starts the HTTP server and shuts it down when ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	if s.config.Port == 0 {
		s.config.Port = ln.Addr().(*net.TCPAddr).Port
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	tonelog.Log.Info("HTTP server listening", "addr", s.Addr())
	fmt.Printf("Preview server running at http://%s\n", s.Addr())
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
