package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.PaletteIdx != 836 {
		t.Errorf("default palette_idx should be 836, got %d", cfg.PaletteIdx)
	}
	if cfg.Seed != 42 {
		t.Errorf("default seed should be 42, got %d", cfg.Seed)
	}
	if cfg.RotateAmount != 0 {
		t.Errorf("default rotate_amount should be 0, got %d", cfg.RotateAmount)
	}
	if cfg.MaxColors != 16 {
		t.Errorf("default max_colors should be 16, got %d", cfg.MaxColors)
	}
	want := map[string]float64{"bg": 0.06, "fg": 0.62}
	if !reflect.DeepEqual(cfg.ColorIndices, want) {
		t.Errorf("default color_indices = %v, want %v", cfg.ColorIndices, want)
	}
}

func TestDefaultReturnsFreshMap(t *testing.T) {
	a := Default()
	a.ColorIndices["accent"] = 0.9
	if _, ok := Default().ColorIndices["accent"]; ok {
		t.Error("Default() shares its color_indices map between calls")
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.json"))

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("Load on missing file should not error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load on missing file = %+v, want defaults", cfg)
	}
}

func TestLoadPartialFileMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette_config.json")
	if err := os.WriteFile(path, []byte(`{"seed": 155, "rotate_amount": 6}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 155 || cfg.RotateAmount != 6 {
		t.Errorf("file values lost: %+v", cfg)
	}
	if cfg.PaletteIdx != 836 || cfg.MaxColors != 16 {
		t.Errorf("missing keys not defaulted: %+v", cfg)
	}
	if len(cfg.ColorIndices) != 2 {
		t.Errorf("color_indices should default to bg/fg, got %v", cfg.ColorIndices)
	}
}

func TestLoadExplicitZeroIsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette_config.json")
	if err := os.WriteFile(path, []byte(`{"palette_idx": 0, "seed": 0}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PaletteIdx != 0 || cfg.Seed != 0 {
		t.Errorf("explicit zero values replaced by defaults: %+v", cfg)
	}
}

func TestLoadColorIndicesReplacesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette_config.json")
	if err := os.WriteFile(path, []byte(`{"color_indices": {"accent": 0.9}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := map[string]float64{"accent": 0.9}
	if !reflect.DeepEqual(cfg.ColorIndices, want) {
		t.Errorf("color_indices = %v, want %v", cfg.ColorIndices, want)
	}
}

func TestLoadMalformedFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette_config.json")
	if err := os.WriteFile(path, []byte(`{"seed": `), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewStore(path).Load()
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("malformed file should yield defaults, got %+v", cfg)
	}
}

func TestLoadCorrectsMaxColors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette_config.json")
	if err := os.WriteFile(path, []byte(`{"max_colors": 0}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewStore(path).Load()
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if cfg.MaxColors != 1 {
		t.Errorf("max_colors = %d, want 1", cfg.MaxColors)
	}
}

func TestSaveAndLoadFormats(t *testing.T) {
	for _, name := range []string{"cfg.json", "cfg.toml", "cfg.yaml", "nested/dir/cfg.yml"} {
		t.Run(name, func(t *testing.T) {
			store := NewStore(filepath.Join(t.TempDir(), name))

			cfg := Default()
			cfg.PaletteIdx = 628
			cfg.Seed = 155
			cfg.RotateAmount = 6
			cfg.MaxColors = 8
			cfg.ColorIndices["accent"] = 0.9

			if err := store.Save(cfg); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := store.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !reflect.DeepEqual(got, cfg) {
				t.Errorf("loaded %+v, want %+v", got, cfg)
			}
		})
	}
}

func TestSaveFailureIsReturned(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	// The parent "directory" is a regular file, so MkdirAll fails.
	store := NewStore(filepath.Join(blocker, "cfg.json"))
	if err := store.Save(Default()); err == nil {
		t.Error("expected Save to fail")
	}
}

func TestNewStoreDefaultPath(t *testing.T) {
	if got := NewStore("").Path; got != DefaultPath {
		t.Errorf("NewStore(\"\").Path = %q, want %q", got, DefaultPath)
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		check func(Config) bool
	}{
		{"int index", KeyPaletteIdx, 628, func(c Config) bool { return c.PaletteIdx == 628 }},
		{"json float seed", KeySeed, float64(155), func(c Config) bool { return c.Seed == 155 }},
		{"string rotation", KeyRotateAmount, "-3", func(c Config) bool { return c.RotateAmount == -3 }},
		{"int64 max", KeyMaxColors, int64(8), func(c Config) bool { return c.MaxColors == 8 }},
		{"ratio string", KeyColorIndices, "bg=0.1, accent=0.5", func(c Config) bool {
			return len(c.ColorIndices) == 2 && c.ColorIndices["accent"] == 0.5
		}},
		{"ratio map", KeyColorIndices, map[string]any{"fg": 0.25}, func(c Config) bool {
			return len(c.ColorIndices) == 1 && c.ColorIndices["fg"] == 0.25
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%q, %v): %v", tt.key, tt.value, err)
			}
			if !tt.check(cfg) {
				t.Errorf("Set(%q, %v) produced %+v", tt.key, tt.value, cfg)
			}
		})
	}
}

func TestSetRejects(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  error
	}{
		{"unknown key", "palette", 1, ErrUnknownKey},
		{"fractional", KeySeed, 1.5, ErrInvalidValue},
		{"not a number", KeyPaletteIdx, "abc", ErrInvalidValue},
		{"zero max", KeyMaxColors, 0, ErrInvalidValue},
		{"bad pair", KeyColorIndices, "bg", ErrInvalidValue},
		{"wrong type", KeyRotateAmount, true, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			before := cfg.Clone()
			err := cfg.Set(tt.key, tt.value)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Set(%q, %v) error = %v, want %v", tt.key, tt.value, err, tt.want)
			}
			if !reflect.DeepEqual(cfg, before) {
				t.Errorf("rejected Set mutated config: %+v", cfg)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	a := Default()
	b := a.Clone()
	b.ColorIndices["bg"] = 0.5
	if a.ColorIndices["bg"] != 0.06 {
		t.Error("Clone shares color_indices")
	}
}

func TestNamesSorted(t *testing.T) {
	cfg := Default()
	cfg.ColorIndices["accent"] = 0.3
	want := []string{"accent", "bg", "fg"}
	if got := cfg.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
