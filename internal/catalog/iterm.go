package catalog

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseItermColors parses an iTerm2 .itermcolors plist and returns a map of
// color names to RGB components in [0,1].
func ParseItermColors(r io.Reader) (map[string][3]float64, error) {
	decoder := xml.NewDecoder(r)
	colors := make(map[string][3]float64)

	if err := seekElement(decoder, "dict"); err != nil {
		return nil, fmt.Errorf("plist: missing top-level dict: %w", err)
	}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("plist: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "key" {
			continue
		}

		name, err := readText(decoder)
		if err != nil {
			return nil, err
		}
		if err := seekElement(decoder, "dict"); err != nil {
			continue
		}
		rgb, err := parseColorDict(decoder)
		if err != nil {
			return nil, fmt.Errorf("plist: color %q: %w", name, err)
		}
		colors[name] = rgb
	}

	if len(colors) == 0 {
		return nil, fmt.Errorf("plist: no colors found")
	}
	return colors, nil
}

// parseColorDict reads the Red/Green/Blue Component reals from a color dict.
func parseColorDict(decoder *xml.Decoder) ([3]float64, error) {
	var rgb [3]float64
	depth := 1

	for depth > 0 {
		tok, err := decoder.Token()
		if err != nil {
			return rgb, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "key" {
				continue
			}
			key, err := readText(decoder)
			if err != nil {
				return rgb, err
			}
			valTag, err := nextStartElement(decoder)
			if err != nil {
				return rgb, err
			}
			valStr, err := readText(decoder)
			if err != nil {
				return rgb, err
			}
			if valTag != "real" {
				continue
			}
			val, err := strconv.ParseFloat(valStr, 64)
			if err != nil {
				continue
			}
			switch key {
			case "Red Component":
				rgb[0] = val
			case "Green Component":
				rgb[1] = val
			case "Blue Component":
				rgb[2] = val
			}
		case xml.EndElement:
			if t.Name.Local == "dict" {
				depth--
			}
		}
	}
	return rgb, nil
}

func nextStartElement(decoder *xml.Decoder) (string, error) {
	for {
		tok, err := decoder.Token()
		if err != nil {
			return "", err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

func seekElement(decoder *xml.Decoder, name string) error {
	for {
		tok, err := decoder.Token()
		if err != nil {
			return err
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == name {
			return nil
		}
	}
}

func readText(decoder *xml.Decoder) (string, error) {
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			return strings.TrimSpace(buf.String()), nil
		}
	}
}

// ImportIterm converts an iTerm2 color scheme into a palette: background,
// foreground, then ANSI 0-15. Colors missing from the scheme are skipped.
func ImportIterm(r io.Reader) ([]string, error) {
	colors, err := ParseItermColors(r)
	if err != nil {
		return nil, err
	}

	keys := []string{"Background Color", "Foreground Color"}
	for n := 0; n < 16; n++ {
		keys = append(keys, fmt.Sprintf("Ansi %d Color", n))
	}

	var out []string
	for _, key := range keys {
		c, ok := colors[key]
		if !ok {
			continue
		}
		out = append(out, colorful.Color{R: c[0], G: c[1], B: c[2]}.Clamped().Hex())
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("plist: no palette colors found")
	}
	return out, nil
}
