package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wethinkt/go-tonekit/internal/palette"
	"github.com/wethinkt/go-tonekit/internal/server"
	"github.com/wethinkt/go-tonekit/internal/tonelog"
	"github.com/wethinkt/go-tonekit/internal/watch"
)

var (
	servePort    int
	serveHost    string
	serveNoWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a live palette preview over HTTP",
	Long: `Serve the palette preview and state over HTTP.

Endpoints:
  GET /                    preview page that refreshes on every change
  GET /preview.png?w=&h=   preview image
  GET /api/v1/palette      palette state as JSON
  GET /api/v1/palettes     catalog listing (?offset=&limit=)
  GET /ws                  WebSocket stream of palette events
  GET /metrics             Prometheus metrics

The server is read-only. Edit the config file (or use 'tonekit palette ...'
in another terminal) and the server reloads it.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := server.NewHub()
	m, err := openManager(palette.WithObserver(hub.Publish))
	if err != nil {
		return err
	}

	cfg := server.DefaultConfig()
	cfg.Host = serveHost
	cfg.Port = servePort
	cfg.PreviewWidth = previewWidth
	cfg.PreviewHeight = previewHeight
	cfg.Preview = previewOptions()
	srv := server.New(m, hub, cfg)

	var w *watch.Watcher
	if !serveNoWatch {
		if w, err = watch.New(configPath, watch.DefaultDebounce); err != nil {
			return fmt.Errorf("watch config: %w", err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(ctx)
	})
	if w != nil {
		g.Go(func() error {
			return w.Run(ctx, func() {
				tonelog.Log.Info("Config changed, reloading", "path", w.Path())
				srv.Reload()
			})
		})
	}
	return g.Wait()
}
