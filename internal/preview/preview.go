// Package preview lays out a palette as a row of labelled swatches on any
// Canvas. The canvas decides what a drawable is; the raster package provides
// one that paints to an image.
package preview

import (
	"image/color"

	"github.com/wethinkt/go-tonekit/internal/palette"
	"github.com/wethinkt/go-tonekit/internal/tonelog"
)

// Font selects a face by family name, size in points and weight in [0,1].
type Font struct {
	Name   string
	Size   float64
	Weight float64
}

// Canvas builds and combines drawables of type D.
type Canvas[D any] interface {
	Rect(r Rect) D
	Text(s string, f Font) (D, error)
	Fill(d D, c color.Color) D
	Stroke(d D, c color.Color, width float64) D
	Align(d D, r Rect, a Anchor) D
	Compose(ds []D) D
}

// Source is a palette the preview can read. At and HexAt wrap modulo Len.
// *palette.Manager satisfies it.
type Source interface {
	Name() string
	Len() int
	At(i int) palette.Color
	HexAt(i int) string
}

var _ Source = (*palette.Manager)(nil)

const (
	DefaultFont        = "Go"
	DefaultSize        = 12
	DefaultLabelOffset = 3
	DefaultPadding     = 10

	nameScale   = 1.2
	nameWeight  = 0.4
	labelWeight = 0.6
	strokeWidth = 3
)

// Options controls the preview layout.
type Options struct {
	Font        string
	Size        float64
	LabelOffset int
	Padding     float64
	Log         palette.Logger // nil uses tonelog.Log
}

// DefaultOptions returns the standard preview settings.
func DefaultOptions() Options {
	return Options{
		Font:        DefaultFont,
		Size:        DefaultSize,
		LabelOffset: DefaultLabelOffset,
		Padding:     DefaultPadding,
	}
}

// Render composes the palette preview inside r: the palette name in the top
// left corner colored with the middle color, then one stroked swatch per color
// with its hex label drawn in the color LabelOffset positions later. An empty
// palette yields an empty composite. A label the canvas cannot build is
// logged and left out.
func Render[D any](c Canvas[D], r Rect, src Source, opts Options) D {
	n := src.Len()
	if n == 0 {
		return c.Compose(nil)
	}
	if opts.Font == "" {
		opts.Font = DefaultFont
	}
	var log palette.Logger = tonelog.Log
	if opts.Log != nil {
		log = opts.Log
	}

	area := r.Inset(opts.Padding)
	cells := area.Grid(1, n)
	parts := make([]D, 0, 2*n+1)

	name, err := c.Text(src.Name(), Font{Name: opts.Font, Size: opts.Size * nameScale, Weight: nameWeight})
	if err != nil {
		log.Warn("Could not render palette name", "palette", src.Name(), "error", err)
	} else {
		parts = append(parts, c.Align(c.Fill(name, src.At(n/2)), area, NW))
	}

	label := Font{Name: opts.Font, Size: opts.Size, Weight: labelWeight}
	for i, cell := range cells {
		swatch := c.Stroke(c.Fill(c.Rect(cell), src.At(i)), color.Black, strokeWidth)
		parts = append(parts, swatch)

		hex := src.HexAt(i)
		text, err := c.Text(hex, label)
		if err != nil {
			log.Warn("Could not render hex label", "hex", hex, "error", err)
			continue
		}
		parts = append(parts, c.Align(c.Fill(text, src.At(i+opts.LabelOffset)), cell, Center))
	}
	return c.Compose(parts)
}
