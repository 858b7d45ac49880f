package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DirCatalog serves palettes stored as one JSON file per palette in a
// directory, e.g. ~/.tonekit/palettes/sunset.json. The file stem is the name.
type DirCatalog struct {
	path string
}

// Dir returns a catalog over path. A missing directory is an empty catalog.
func Dir(path string) *DirCatalog {
	return &DirCatalog{path: path}
}

// Path returns the directory this catalog reads.
func (d *DirCatalog) Path() string {
	return d.path
}

// Names returns the palette names sorted by file name.
func (d *DirCatalog) Names() []string {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return names
}

// Fetch reads the named palette file.
func (d *DirCatalog) Fetch(name string) ([]string, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(d.path, name+".json"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	} else if err != nil {
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("palette %q: %w", name, err)
	}
	return slices.Clone(entry.Colors), nil
}

// SavePalette writes colors to dir/name.json, creating dir if needed.
func SavePalette(dir, name string, colors []string) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(Entry{Name: name, Colors: colors}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name+".json"), append(data, '\n'), 0644)
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid palette name %q", name)
	}
	return nil
}
