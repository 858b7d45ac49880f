// Command gen-palettes downloads iTerm2 color schemes and converts them to the
// built-in tonekit palette file.
//
// Usage:
//
//	go run ./cmd/gen-palettes
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/wethinkt/go-tonekit/internal/catalog"
)

// scheme defines an iTerm2 color scheme to import.
type scheme struct {
	itermName   string // filename in the iTerm2-Color-Schemes repo (without .itermcolors)
	paletteName string // display name in the catalog
}

var curated = []scheme{
	{"Catppuccin Mocha", "Catppuccin Mocha"},
	{"Dracula", "Dracula"},
	{"Nord", "Nord"},
	{"Gruvbox Dark", "Gruvbox Dark"},
	{"TokyoNight", "Tokyo Night"},
	{"Solarized Dark Patched", "Solarized"},
	{"Rose Pine", "Rose Pine"},
	{"Monokai Soda", "Monokai"},
}

const baseURL = "https://raw.githubusercontent.com/mbadolato/iTerm2-Color-Schemes/master/schemes/"

// fetch downloads one scheme and returns its ANSI 0-15 colors.
func fetch(s scheme) ([]string, error) {
	url := baseURL + strings.ReplaceAll(s.itermName, " ", "%20") + ".itermcolors"

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	colors, err := catalog.ImportIterm(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(colors) < 3 {
		return nil, fmt.Errorf("only %d colors", len(colors))
	}
	// Drop background and foreground; the catalog keeps the ANSI colors.
	return colors[2:], nil
}

func main() {
	out := filepath.Join("internal", "catalog", "palettes", "iterm.json")

	var entries []catalog.Entry
	for _, s := range curated {
		fmt.Printf("%-20s ", s.paletteName)
		colors, err := fetch(s)
		if err != nil {
			fmt.Printf("ERROR: %v\n", err)
			continue
		}
		entries = append(entries, catalog.Entry{Name: s.paletteName, Colors: colors})
		fmt.Printf("OK\n")
	}

	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "no schemes imported")
		os.Exit(1)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "JSON ERROR: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(out, append(data, '\n'), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "WRITE ERROR: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d palettes to %s\n", len(entries), out)
}
