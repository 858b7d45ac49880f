package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-tonekit/internal/tonelog"
	"github.com/wethinkt/go-tonekit/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the preview whenever the config changes",
	Long: `Render the preview once, then again every time the config file is saved.

Examples:
  tonekit watch -o palette.png
  tonekit watch -c show.toml -o show.png --width 1200`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m, err := openManager()
	if err != nil {
		return err
	}
	if err := writePreview(m, previewOut); err != nil {
		return err
	}

	w, err := watch.New(configPath, watch.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Watching %s, writing %s (Ctrl-C to stop)\n", w.Path(), previewOut)

	return w.Run(ctx, func() {
		m.Reload()
		if err := writePreview(m, previewOut); err != nil {
			tonelog.Log.Error("Preview render failed", "error", err)
			fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
			return
		}
		fmt.Fprintf(os.Stderr, "Updated %s (%s, %d colors)\n", previewOut, m.Name(), m.Len())
	})
}
