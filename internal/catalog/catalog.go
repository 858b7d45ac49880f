// Package catalog adapts named-palette collections to the palette engine.
//
// A Catalog is an ordered list of palette names plus a way to fetch each
// palette's colors as hex strings. The engine indexes into Names(), so the
// order must be stable across calls.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrNotFound is returned by Fetch for names the catalog does not hold.
var ErrNotFound = errors.New("palette not found")

// Catalog is a read-only source of named palettes.
type Catalog interface {
	// Names returns every palette name in catalog order.
	Names() []string
	// Fetch returns a copy of the named palette's hex colors.
	Fetch(name string) ([]string, error)
}

// Entry is one named palette.
type Entry struct {
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
}

// Static is an in-memory catalog. It is immutable once built.
type Static struct {
	entries []Entry
	index   map[string]int
}

// NewStatic builds a catalog from entries. Later entries with a duplicate
// name are dropped.
func NewStatic(entries []Entry) *Static {
	s := &Static{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		if _, dup := s.index[e.Name]; dup {
			continue
		}
		s.index[e.Name] = len(s.entries)
		s.entries = append(s.entries, Entry{Name: e.Name, Colors: slices.Clone(e.Colors)})
	}
	return s
}

// Names returns palette names in insertion order.
func (s *Static) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	return names
}

// Fetch returns a copy of the named palette.
func (s *Static) Fetch(name string) ([]string, error) {
	i, ok := s.index[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return slices.Clone(s.entries[i].Colors), nil
}

// Len returns the number of palettes.
func (s *Static) Len() int {
	return len(s.entries)
}

// multi is an ordered union of catalogs.
type multi struct {
	cats []Catalog
}

// Multi joins catalogs in order. When two catalogs define the same name the
// first one wins and the later definition is hidden.
func Multi(cats ...Catalog) Catalog {
	var kept []Catalog
	for _, c := range cats {
		if c != nil {
			kept = append(kept, c)
		}
	}
	return &multi{cats: kept}
}

func (m *multi) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range m.cats {
		for _, name := range c.Names() {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func (m *multi) Fetch(name string) ([]string, error) {
	for _, c := range m.cats {
		if slices.Contains(c.Names(), name) {
			return c.Fetch(name)
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
}

// Find returns the catalog index of name, matching case-insensitively, or -1.
func Find(c Catalog, name string) int {
	for i, n := range c.Names() {
		if strings.EqualFold(n, name) {
			return i
		}
	}
	return -1
}

// Page returns names[offset:offset+limit] clamped to the catalog, plus the
// total count. A limit <= 0 means everything from offset on.
func Page(names []string, offset, limit int) ([]string, int) {
	total := len(names)
	offset = max(0, min(offset, total))
	end := total
	if limit > 0 {
		end = min(offset+limit, total)
	}
	return names[offset:end], total
}

// ListEntry is one row of a Listing.
type ListEntry struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Active bool   `json:"active,omitempty"`
}

// Listing is a page of catalog names with their indexes.
type Listing struct {
	Total    int         `json:"total"`
	Offset   int         `json:"offset"`
	Active   int         `json:"active"`
	Palettes []ListEntry `json:"palettes"`
}

// List builds one page of c, marking the entry at active.
func List(c Catalog, active, offset, limit int) Listing {
	page, total := Page(c.Names(), offset, limit)
	start := max(0, min(offset, total))
	out := Listing{Total: total, Offset: start, Active: active, Palettes: make([]ListEntry, 0, len(page))}
	for i, name := range page {
		idx := start + i
		out.Palettes = append(out.Palettes, ListEntry{Index: idx, Name: name, Active: idx == active})
	}
	return out
}
