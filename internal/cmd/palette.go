package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-tonekit/internal/catalog"
	"github.com/wethinkt/go-tonekit/internal/cli"
	"github.com/wethinkt/go-tonekit/internal/config"
	"github.com/wethinkt/go-tonekit/internal/palette"
)

var errSaveFailed = errors.New("saving the config failed")

var (
	listOffset int
	listLimit  int
)

// Palette command
var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Show and change the active palette",
	Long: `Show and change the active palette.

Running without a subcommand shows the current palette. Commands that change
the palette (use, shuffle, rotate, set, reset) save the config afterwards, so
the next run reproduces the same colors in the same order.

Examples:
  tonekit palette                  # Show the current palette
  tonekit palette show --json      # Output palette state as JSON
  tonekit palette list --offset 600
  tonekit palette use 628          # Select by catalog index
  tonekit palette use "Okabe-Ito"  # Select by name
  tonekit palette shuffle 155      # Set the shuffle seed
  tonekit palette rotate 6         # Rotate six more positions
  tonekit palette set max_colors 8
  tonekit palette set color_indices "bg=0.06,fg=0.62,accent=0.3"`,
	Args: cobra.NoArgs,
	RunE: runPaletteShow,
}

var paletteShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the palette with its named colors",
	Args:  cobra.NoArgs,
	RunE:  runPaletteShow,
}

var paletteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog palettes",
	Long:  `List catalog palettes by index. The active palette is marked with *.`,
	Args:  cobra.NoArgs,
	RunE:  runPaletteList,
}

var paletteUseCmd = &cobra.Command{
	Use:   "use <index|name>",
	Short: "Select a palette by catalog index or name",
	Args:  cobra.ExactArgs(1),
	RunE:  runPaletteUse,
}

var paletteShuffleCmd = &cobra.Command{
	Use:   "shuffle [seed]",
	Short: "Set the shuffle seed (random when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPaletteShuffle,
}

var paletteRotateCmd = &cobra.Command{
	Use:   "rotate [amount]",
	Short: "Rotate the palette right by amount (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPaletteRotate,
}

var paletteSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config key",
	Long: `Set a config key and save the config.

Keys: palette_idx, seed, rotate_amount, max_colors, color_indices.
color_indices takes comma-separated name=ratio pairs and replaces the whole table.`,
	Args: cobra.ExactArgs(2),
	RunE: runPaletteSet,
}

var paletteResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default config",
	Args:  cobra.NoArgs,
	RunE:  runPaletteReset,
}

// showPalette prints m as JSON or as a display, plain when stdout is not a terminal.
func showPalette(m *palette.Manager) error {
	display := cli.NewPaletteDisplay(os.Stdout, m, !isTTY())
	if outputJSON {
		return display.ShowJSON()
	}
	return display.Show()
}

func runPaletteShow(cmd *cobra.Command, args []string) error {
	m, err := openManager()
	if err != nil {
		return err
	}
	return showPalette(m)
}

func runPaletteList(cmd *cobra.Command, args []string) error {
	m, err := openManager()
	if err != nil {
		return err
	}
	if outputJSON {
		return cli.ListPalettesJSON(os.Stdout, m.Catalog(), m.Index(), listOffset, listLimit)
	}
	return cli.ListPalettes(os.Stdout, m.Catalog(), m.Index(), listOffset, listLimit)
}

// resolveIndex accepts a catalog index or a case-insensitive palette name.
func resolveIndex(cat catalog.Catalog, arg string) (int, error) {
	total := len(cat.Names())
	if i, err := strconv.Atoi(arg); err == nil {
		if i < 0 || i >= total {
			return 0, fmt.Errorf("index %d out of range (catalog has %d palettes)", i, total)
		}
		return i, nil
	}
	if i := catalog.Find(cat, arg); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("palette %q: %w", arg, catalog.ErrNotFound)
}

// commit applies the config transforms to a freshly loaded base, saves, and shows the result.
func commit(m *palette.Manager) error {
	m.LoadBase()
	m.ApplyConfigTransforms()
	if !m.SaveConfig() {
		return fmt.Errorf("%s: %w", configPath, errSaveFailed)
	}
	return showPalette(m)
}

// setKey validates value against a copy of the config before applying it,
// so the user sees why a value was rejected.
func setKey(m *palette.Manager, key string, value any) error {
	cfg := m.Config()
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	m.UpdateConfig(key, value)
	return nil
}

func runPaletteUse(cmd *cobra.Command, args []string) error {
	m, err := openManager()
	if err != nil {
		return err
	}
	idx, err := resolveIndex(m.Catalog(), args[0])
	if err != nil {
		return err
	}
	m.LoadPaletteByIndex(idx)
	if !m.SaveConfig() {
		return fmt.Errorf("%s: %w", configPath, errSaveFailed)
	}
	return showPalette(m)
}

func runPaletteShuffle(cmd *cobra.Command, args []string) error {
	m, err := openManager()
	if err != nil {
		return err
	}
	var seed any = rand.Int64N(1 << 31)
	if len(args) == 1 {
		seed = args[0]
	}
	if err := setKey(m, config.KeySeed, seed); err != nil {
		return err
	}
	return commit(m)
}

func runPaletteRotate(cmd *cobra.Command, args []string) error {
	m, err := openManager()
	if err != nil {
		return err
	}
	amount := 1
	if len(args) == 1 {
		if amount, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("amount %q: %w", args[0], config.ErrInvalidValue)
		}
	}
	if err := setKey(m, config.KeyRotateAmount, m.Config().RotateAmount+amount); err != nil {
		return err
	}
	return commit(m)
}

func runPaletteSet(cmd *cobra.Command, args []string) error {
	m, err := openManager()
	if err != nil {
		return err
	}
	if err := setKey(m, args[0], args[1]); err != nil {
		return err
	}
	return commit(m)
}

func runPaletteReset(cmd *cobra.Command, args []string) error {
	m, err := openManager()
	if err != nil {
		return err
	}
	def := config.Default()
	for _, key := range config.Keys() {
		if err := setKey(m, key, fieldValue(def, key)); err != nil {
			return err
		}
	}
	return commit(m)
}

func fieldValue(cfg config.Config, key string) any {
	switch key {
	case config.KeyPaletteIdx:
		return cfg.PaletteIdx
	case config.KeySeed:
		return cfg.Seed
	case config.KeyRotateAmount:
		return cfg.RotateAmount
	case config.KeyMaxColors:
		return cfg.MaxColors
	default:
		return cfg.ColorIndices
	}
}
