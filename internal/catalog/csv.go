package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// hexToken matches #rrggbb with an optional alpha pair.
var hexToken = regexp.MustCompile(`#[0-9A-Fa-f]{6}(?:[0-9A-Fa-f]{2})?\b`)

// LoadCSV reads a palette table such as the pypalettes palettes.csv.
func LoadCSV(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cat, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// ReadCSV parses a CSV with a header row. The "name" and "palette" columns
// are used when present, otherwise the first two columns. Every hex color
// in the palette cell is kept in order; alpha pairs are dropped. Rows
// without colors are skipped.
func ReadCSV(r io.Reader) (*Static, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return NewStatic(nil), nil
	} else if err != nil {
		return nil, err
	}

	nameCol, paletteCol := 0, 1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "name":
			nameCol = i
		case "palette", "colors":
			paletteCol = i
		}
	}

	var entries []Entry
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if nameCol >= len(record) || paletteCol >= len(record) {
			continue
		}

		var colors []string
		for _, tok := range hexToken.FindAllString(record[paletteCol], -1) {
			colors = append(colors, strings.ToLower(tok[:7]))
		}
		if len(colors) == 0 {
			continue
		}
		entries = append(entries, Entry{Name: strings.TrimSpace(record[nameCol]), Colors: colors})
	}
	return NewStatic(entries), nil
}
