// Package cli provides CLI output formatting utilities.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wethinkt/go-tonekit/internal/catalog"
	"github.com/wethinkt/go-tonekit/internal/palette"
)

const swatchBlock = "    "

var titleCaser = cases.Title(language.Und, cases.NoLower)

// DisplayName title-cases a catalog name without lowering existing capitals,
// so "pico-8" reads "Pico-8" and "PICO-8" is left alone.
func DisplayName(name string) string {
	return titleCaser.String(name)
}

// PaletteDisplay renders the manager's current palette in the terminal.
// Plain mode drops all styling, for pipes and dumb terminals.
type PaletteDisplay struct {
	w     io.Writer
	m     *palette.Manager
	plain bool
}

// NewPaletteDisplay creates a new palette display formatter.
func NewPaletteDisplay(w io.Writer, m *palette.Manager, plain bool) *PaletteDisplay {
	return &PaletteDisplay{w: w, m: m, plain: plain}
}

func (d *PaletteDisplay) swatch(c palette.Color) string {
	if d.plain {
		return ""
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render(swatchBlock) + " "
}

func (d *PaletteDisplay) heading(s string) string {
	if d.plain {
		return s
	}
	accent := d.m.At(d.m.Len() / 2)
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent.Hex())).Render(s)
}

// Show prints the palette name, a strip of every color, one line per color
// with its hex and HSL, then the named colors.
func (d *PaletteDisplay) Show() error {
	m := d.m
	cfg := m.Config()

	fmt.Fprintf(d.w, "Palette:  %s (#%d)\n", DisplayName(m.Name()), m.Index())
	fmt.Fprintf(d.w, "Colors:   %d (max %d, seed %d, rotation %d)\n\n", m.Len(), cfg.MaxColors, cfg.Seed, cfg.RotateAmount)

	if m.Len() == 0 {
		fmt.Fprintln(d.w, "  (empty palette)")
		return nil
	}

	if !d.plain {
		var strip strings.Builder
		for _, s := range m.Palette() {
			strip.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(s.Color.Hex())).Render("  "))
		}
		fmt.Fprintf(d.w, "  %s\n\n", strip.String())
	}

	fmt.Fprintf(d.w, "%s\n%s\n", d.heading("Colors"), strings.Repeat("─", 8))
	for i, s := range m.Palette() {
		fmt.Fprintf(d.w, "  %2d  %s%-8s %s\n", i, d.swatch(s.Color), s.Hex, s.Color)
	}

	names := cfg.Names()
	if len(names) == 0 {
		return nil
	}
	named := m.Named()
	width := 0
	for _, name := range names {
		width = max(width, ansi.StringWidth(name))
	}

	fmt.Fprintf(d.w, "\n%s\n%s\n", d.heading("Named"), strings.Repeat("─", 7))
	for _, name := range names {
		c, ok := named[name]
		if !ok {
			fmt.Fprintf(d.w, "  %s  (unassigned, ratio %.2f)\n", pad(name, width), cfg.ColorIndices[name])
			continue
		}
		fmt.Fprintf(d.w, "  %s  %s%-8s ratio %.2f\n", pad(name, width), d.swatch(c), c.Hex(), cfg.ColorIndices[name])
	}
	return nil
}

// ShowJSON prints the palette state as JSON.
func (d *PaletteDisplay) ShowJSON() error {
	enc := json.NewEncoder(d.w)
	enc.SetIndent("", "  ")
	return enc.Encode(d.m.State())
}

// ListPalettes prints one page of catalog names, numbered by catalog index,
// with the active index marked by *.
func ListPalettes(w io.Writer, cat catalog.Catalog, active, offset, limit int) error {
	list := catalog.List(cat, active, offset, limit)

	fmt.Fprintf(w, "Palettes %d-%d of %d:\n\n", min(list.Offset+1, list.Total), list.Offset+len(list.Palettes), list.Total)
	digits := len(fmt.Sprint(max(list.Total-1, 0)))
	for _, e := range list.Palettes {
		marker := "  "
		if e.Active {
			marker = "* "
		}
		fmt.Fprintf(w, "%s%*d  %s\n", marker, digits, e.Index, e.Name)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Active palette marked with *\n")
	fmt.Fprintf(w, "Use 'tonekit palette use <index>' to change palette\n")
	return nil
}

// ListPalettesJSON prints one page of catalog names as JSON.
func ListPalettesJSON(w io.Writer, cat catalog.Catalog, active, offset, limit int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(catalog.List(cat, active, offset, limit))
}

func pad(s string, width int) string {
	if n := ansi.StringWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
