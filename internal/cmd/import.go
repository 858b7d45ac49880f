package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-tonekit/internal/catalog"
	"github.com/wethinkt/go-tonekit/internal/config"
)

var importCmd = &cobra.Command{
	Use:   "import <file.itermcolors> [name]",
	Short: "Import an iTerm2 color scheme as a user palette",
	Long: `Import an iTerm2 .itermcolors file as an 18-color palette: background,
foreground, then ANSI colors 0-15.

The palette is saved to ~/.tonekit/palettes/ and is listed after the
built-in palettes.

Examples:
  tonekit import ~/Downloads/Dracula.itermcolors
  tonekit import scheme.itermcolors my-scheme`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var name string
	if len(args) > 1 {
		name = args[1]
	} else {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
		name = strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	}

	colors, err := catalog.ImportIterm(f)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	dir, err := config.PalettesDir()
	if err != nil {
		return err
	}
	if err := catalog.SavePalette(dir, name, colors); err != nil {
		return fmt.Errorf("save palette: %w", err)
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	fmt.Printf("Palette %q imported (%d colors).\n", name, len(colors))
	if idx := catalog.Find(cat, name); idx >= 0 {
		fmt.Printf("Activate it with: tonekit palette use %d\n", idx)
	}
	return nil
}
