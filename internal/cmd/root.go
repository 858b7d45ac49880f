// Package cmd provides the CLI commands for tonekit.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wethinkt/go-tonekit/internal/catalog"
	"github.com/wethinkt/go-tonekit/internal/config"
	"github.com/wethinkt/go-tonekit/internal/palette"
	"github.com/wethinkt/go-tonekit/internal/tonelog"
)

// global flags
var (
	configPath string
	catalogCSV string
	logPath    string
	verbose    bool
	outputJSON bool
)

// rootCmd is the root command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "tonekit",
	Short: "Deterministic color palettes for generative work",
	Long: `tonekit loads a palette from a catalog, reorders it deterministically
(seeded shuffle, rotation), names colors by position, and renders previews.

The palette is chosen and transformed by a config file (palette_config.json
by default). Running without a subcommand shows the current palette.

Commands:
  palette   Show, list, select and transform the palette
  preview   Render the palette preview to a PNG file
  serve     Serve a live preview over HTTP
  watch     Re-render the preview whenever the config changes
  import    Import an iTerm2 color scheme as a user palette

Examples:
  tonekit                          # Show the current palette
  tonekit palette list             # List catalog palettes
  tonekit palette use 628          # Select palette 628
  tonekit palette shuffle 155      # Reorder with seed 155
  tonekit preview -o palette.png   # Write a preview image`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return tonelog.Log.Close()
	},
	RunE: runPaletteShow,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initLogging directs the global logger to --log, or to stderr with --verbose.
func initLogging() error {
	if logPath != "" {
		if err := tonelog.Init(logPath); err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		return nil
	}
	if verbose {
		tonelog.Log.SetOutput(os.Stderr, true)
	}
	return nil
}

func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// loadCatalog joins the catalogs in index order: the --catalog-csv file when
// given, the built-in palettes, then user palettes from ~/.tonekit/palettes.
func loadCatalog() (catalog.Catalog, error) {
	var cats []catalog.Catalog
	if catalogCSV != "" {
		csvCat, err := catalog.LoadCSV(catalogCSV)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		tonelog.Log.Debug("Loaded CSV catalog", "path", catalogCSV, "palettes", csvCat.Len())
		cats = append(cats, csvCat)
	}
	cats = append(cats, catalog.Builtin())
	if dir, err := config.PalettesDir(); err == nil {
		cats = append(cats, catalog.Dir(dir))
	}
	return catalog.Multi(cats...), nil
}

// openManager builds the manager from --config and the catalogs, with the
// config transforms applied.
func openManager(opts ...palette.Option) (*palette.Manager, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	opts = append([]palette.Option{palette.WithLogger(tonelog.Log)}, opts...)
	m := palette.New(config.NewStore(configPath), cat, opts...)
	return m.ApplyConfigTransforms(), nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "palette config file (.json, .toml or .yaml)")
	rootCmd.PersistentFlags().StringVar(&catalogCSV, "catalog-csv", "", "CSV palette catalog to index before the built-in palettes")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write debug log to file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON")

	paletteCmd.AddCommand(paletteShowCmd)
	paletteCmd.AddCommand(paletteListCmd)
	paletteCmd.AddCommand(paletteUseCmd)
	paletteCmd.AddCommand(paletteShuffleCmd)
	paletteCmd.AddCommand(paletteRotateCmd)
	paletteCmd.AddCommand(paletteSetCmd)
	paletteCmd.AddCommand(paletteResetCmd)

	paletteListCmd.Flags().IntVar(&listOffset, "offset", 0, "first catalog index to list")
	paletteListCmd.Flags().IntVar(&listLimit, "limit", 50, "palettes per page (0 for all)")

	previewCmd.Flags().StringVarP(&previewOut, "output", "o", "palette.png", "output PNG file (- for stdout)")
	addPreviewFlags(previewCmd)
	watchCmd.Flags().StringVarP(&previewOut, "output", "o", "palette.png", "output PNG file")
	addPreviewFlags(watchCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 7480, "server port")
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "server host")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "don't reload when the config file changes")
	addPreviewFlags(serveCmd)

	rootCmd.AddCommand(paletteCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
}
