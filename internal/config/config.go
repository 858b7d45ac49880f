// Package config provides the palette configuration document and its store.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file used when no --config flag is given.
const DefaultPath = "palette_config.json"

// Config keys accepted by Set.
const (
	KeyPaletteIdx   = "palette_idx"
	KeySeed         = "seed"
	KeyRotateAmount = "rotate_amount"
	KeyMaxColors    = "max_colors"
	KeyColorIndices = "color_indices"
)

var (
	// ErrUnknownKey is returned by Set for keys that are not part of the document.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned by Set when a value has the wrong type or range.
	ErrInvalidValue = errors.New("invalid config value")
	// ErrMalformed is returned by Load when the file exists but cannot be decoded.
	ErrMalformed = errors.New("malformed config file")
)

// Config holds the palette selection and transform settings.
type Config struct {
	PaletteIdx   int                `json:"palette_idx" toml:"palette_idx" yaml:"palette_idx"`
	Seed         int64              `json:"seed" toml:"seed" yaml:"seed"`
	RotateAmount int                `json:"rotate_amount" toml:"rotate_amount" yaml:"rotate_amount"`
	MaxColors    int                `json:"max_colors" toml:"max_colors" yaml:"max_colors"`
	ColorIndices map[string]float64 `json:"color_indices" toml:"color_indices" yaml:"color_indices"` // name -> position ratio
}

// document is the on-disk shape. Pointer fields tell absent keys apart from zero values.
type document struct {
	PaletteIdx   *int               `json:"palette_idx" toml:"palette_idx" yaml:"palette_idx"`
	Seed         *int64             `json:"seed" toml:"seed" yaml:"seed"`
	RotateAmount *int               `json:"rotate_amount" toml:"rotate_amount" yaml:"rotate_amount"`
	MaxColors    *int               `json:"max_colors" toml:"max_colors" yaml:"max_colors"`
	ColorIndices map[string]float64 `json:"color_indices" toml:"color_indices" yaml:"color_indices"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		PaletteIdx:   836,
		Seed:         42,
		RotateAmount: 0,
		MaxColors:    16,
		ColorIndices: map[string]float64{
			"bg": 0.06,
			"fg": 0.62,
		},
	}
}

// Keys returns the document keys in file order.
func Keys() []string {
	return []string{KeyPaletteIdx, KeySeed, KeyRotateAmount, KeyMaxColors, KeyColorIndices}
}

// merge fills every key the document left out from Default.
// A present color_indices table replaces the default table; it is not merged key by key.
func (d document) merge() Config {
	cfg := Default()
	if d.PaletteIdx != nil {
		cfg.PaletteIdx = *d.PaletteIdx
	}
	if d.Seed != nil {
		cfg.Seed = *d.Seed
	}
	if d.RotateAmount != nil {
		cfg.RotateAmount = *d.RotateAmount
	}
	if d.MaxColors != nil {
		cfg.MaxColors = *d.MaxColors
	}
	if d.ColorIndices != nil {
		cfg.ColorIndices = d.ColorIndices
	}
	return cfg
}

// Clone returns a deep copy.
func (c Config) Clone() Config {
	out := c
	if c.ColorIndices != nil {
		out.ColorIndices = make(map[string]float64, len(c.ColorIndices))
		for k, v := range c.ColorIndices {
			out.ColorIndices[k] = v
		}
	}
	return out
}

// Names returns the color_indices names sorted alphabetically.
func (c Config) Names() []string {
	names := make([]string, 0, len(c.ColorIndices))
	for name := range c.ColorIndices {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Set assigns value to key. Integers, integral float64s (decoded JSON) and strings
// (command-line input) are accepted for the integer keys. color_indices takes a
// map[string]float64, a map[string]any of numbers, or a "bg=0.06,fg=0.62" string.
func (c *Config) Set(key string, value any) error {
	switch key {
	case KeyPaletteIdx:
		n, err := toInt(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.PaletteIdx = int(n)
	case KeySeed:
		n, err := toInt(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.Seed = n
	case KeyRotateAmount:
		n, err := toInt(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.RotateAmount = int(n)
	case KeyMaxColors:
		n, err := toInt(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if n < 1 {
			return fmt.Errorf("%s must be >= 1, got %d: %w", key, n, ErrInvalidValue)
		}
		c.MaxColors = int(n)
	case KeyColorIndices:
		m, err := toRatios(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.ColorIndices = m
	default:
		return fmt.Errorf("%q: %w", key, ErrUnknownKey)
	}
	return nil
}

func toInt(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%v is not an integer: %w", v, ErrInvalidValue)
		}
		return int64(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%q: %w", v, ErrInvalidValue)
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer: %w", v, ErrInvalidValue)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported type %T: %w", value, ErrInvalidValue)
	}
}

func toRatios(value any) (map[string]float64, error) {
	out := make(map[string]float64)
	switch v := value.(type) {
	case map[string]float64:
		for name, r := range v {
			out[name] = r
		}
	case map[string]any:
		for name, raw := range v {
			r, ok := raw.(float64)
			if !ok {
				return nil, fmt.Errorf("ratio for %q has type %T: %w", name, raw, ErrInvalidValue)
			}
			out[name] = r
		}
	case string:
		for _, pair := range strings.Split(v, ",") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			name, raw, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, fmt.Errorf("expected name=ratio, got %q: %w", pair, ErrInvalidValue)
			}
			r, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("ratio for %q: %w", name, ErrInvalidValue)
			}
			out[strings.TrimSpace(name)] = r
		}
	default:
		return nil, fmt.Errorf("unsupported type %T: %w", value, ErrInvalidValue)
	}
	for name, r := range out {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return nil, fmt.Errorf("ratio for %q is not finite: %w", name, ErrInvalidValue)
		}
	}
	return out, nil
}

// Dir returns the path to the .tonekit directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tonekit"), nil
}

// PalettesDir returns the directory holding user palettes.
func PalettesDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "palettes"), nil
}

// Store reads and writes a Config at Path. The encoding follows the file
// extension: .toml, .yaml/.yml, anything else is JSON.
type Store struct {
	Path string
}

// NewStore returns a store for path, or DefaultPath when path is empty.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{Path: path}
}

type format int

const (
	formatJSON format = iota
	formatTOML
	formatYAML
)

func (s *Store) format() format {
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".toml":
		return formatTOML
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

// Load reads the config file. A missing file yields Default() and no error.
// A file that cannot be read or decoded yields Default() and an error wrapping
// ErrMalformed, so callers can report it and carry on.
func (s *Store) Load() (Config, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	} else if err != nil {
		return Default(), fmt.Errorf("read %s: %w", s.Path, err)
	}

	var doc document
	switch s.format() {
	case formatTOML:
		err = toml.Unmarshal(data, &doc)
	case formatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return Default(), fmt.Errorf("%w %s: %v", ErrMalformed, s.Path, err)
	}

	cfg := doc.merge()
	if cfg.MaxColors < 1 {
		bad := cfg.MaxColors
		cfg.MaxColors = 1
		return cfg, fmt.Errorf("max_colors %d corrected to 1: %w", bad, ErrInvalidValue)
	}
	return cfg, nil
}

// Save writes cfg to the config file, creating its directory if needed.
func (s *Store) Save(cfg Config) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := s.encode(cfg)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.Path, err)
	}
	return os.WriteFile(s.Path, data, 0644)
}

func (s *Store) encode(cfg Config) ([]byte, error) {
	switch s.format() {
	case formatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case formatYAML:
		return yaml.Marshal(cfg)
	default:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}
