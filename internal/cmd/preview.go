package cmd

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-tonekit/internal/palette"
	"github.com/wethinkt/go-tonekit/internal/preview"
	"github.com/wethinkt/go-tonekit/internal/raster"
	"github.com/wethinkt/go-tonekit/internal/tonelog"
)

var (
	previewOut    string
	previewWidth  int
	previewHeight int
	previewFont   string
	previewSize   float64
	previewOffset int
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the palette preview to a PNG file",
	Long: `Render the palette preview: the palette name, one stroked swatch per
color, and each swatch's hex label drawn in the color a few positions later.

--font takes "Go", "Go Mono", or a path to a .ttf/.otf file.

Examples:
  tonekit preview -o palette.png
  tonekit preview -o - --width 1200 --height 200 > palette.png
  tonekit preview --font ./AzeretMono.ttf --size 14`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func addPreviewFlags(c *cobra.Command) {
	c.Flags().IntVar(&previewWidth, "width", 960, "image width in pixels")
	c.Flags().IntVar(&previewHeight, "height", 160, "image height in pixels")
	c.Flags().StringVar(&previewFont, "font", preview.DefaultFont, "label font family or font file")
	c.Flags().Float64Var(&previewSize, "size", preview.DefaultSize, "label font size in points")
	c.Flags().IntVar(&previewOffset, "label-offset", preview.DefaultLabelOffset, "palette positions between a swatch and its label color")
}

func previewOptions() preview.Options {
	opts := preview.DefaultOptions()
	opts.Font = previewFont
	opts.Size = previewSize
	opts.LabelOffset = previewOffset
	opts.Log = tonelog.Log
	return opts
}

// writePreview renders m to path, or to stdout when path is "-".
func writePreview(m *palette.Manager, path string) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	if err := raster.RenderPreview(w, m, previewWidth, previewHeight, previewOptions(), color.White); err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	m, err := openManager()
	if err != nil {
		return err
	}
	if err := writePreview(m, previewOut); err != nil {
		return err
	}
	if previewOut != "-" {
		fmt.Fprintf(os.Stderr, "Wrote %s (%s, %d colors)\n", previewOut, m.Name(), m.Len())
	}
	return nil
}
