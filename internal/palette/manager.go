package palette

import (
	"errors"
	"maps"

	"github.com/wethinkt/go-tonekit/internal/catalog"
	"github.com/wethinkt/go-tonekit/internal/config"
)

// Logger receives status narration. *tonelog.Logger satisfies it.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}

// ConfigStore loads and saves the palette configuration. *config.Store satisfies it.
type ConfigStore interface {
	Load() (config.Config, error)
	Save(config.Config) error
}

// Event describes the manager state after a status-changing call.
type Event struct {
	Action   string   `json:"action"`
	Palette  string   `json:"palette"`
	Index    int      `json:"index"`
	Colors   int      `json:"colors"`
	Seed     int64    `json:"seed"`     // config seed, not necessarily the last seed used
	Rotation int      `json:"rotation"` // config rotation
	Named    []string `json:"named"`
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger directs status messages to l.
func WithLogger(l Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithObserver registers fn to receive an Event after each state change.
func WithObserver(fn func(Event)) Option {
	return func(m *Manager) {
		m.observe = fn
	}
}

// Manager owns one palette: its config, the catalog it loads from, the
// current color order and the derived named colors. It is not safe for
// concurrent use.
type Manager struct {
	store   ConfigStore
	catalog catalog.Catalog
	log     Logger
	observe func(Event)

	cfg     config.Config
	name    string
	palette Palette
	named   map[string]Color
}

// New loads the config and the base palette. Config transforms are not
// applied; call ApplyConfigTransforms for that.
func New(store ConfigStore, cat catalog.Catalog, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		catalog: cat,
		log:     nopLogger{},
		named:   map[string]Color{},
	}
	for _, opt := range opts {
		opt(m)
	}

	m.cfg = m.loadConfig()
	m.LoadBase()
	m.emit("init")
	return m
}

func (m *Manager) loadConfig() config.Config {
	cfg, err := m.store.Load()
	if err != nil {
		if errors.Is(err, config.ErrMalformed) {
			m.log.Warn("Config unreadable, using defaults", "error", err)
		} else {
			m.log.Warn("Config load problem", "error", err)
		}
	}
	if cfg.ColorIndices == nil {
		cfg.ColorIndices = map[string]float64{}
	}
	return cfg
}

// LoadBase loads the palette named by the config index, downsampled to
// max_colors and converted to HSL. Named colors are cleared until the next
// transform. An out-of-range index is corrected to 0 in the config; a fetch
// failure leaves an empty palette.
func (m *Manager) LoadBase() {
	m.named = map[string]Color{}
	m.palette = nil

	names := m.catalog.Names()
	if len(names) == 0 {
		m.name = ""
		m.log.Warn("Palette catalog is empty")
		paletteLoads.WithLabelValues("empty_catalog").Inc()
		activeColors.Set(0)
		return
	}

	idx := m.cfg.PaletteIdx
	if idx < 0 || idx >= len(names) {
		m.log.Warn("Palette index out of bounds, correcting to 0", "index", idx, "palettes", len(names))
		indexClamped.Inc()
		idx = 0
		m.cfg.PaletteIdx = 0
	}

	m.name = names[idx]
	hexes, err := m.catalog.Fetch(m.name)
	if err != nil {
		m.log.Warn("Palette fetch failed, using empty palette", "palette", m.name, "error", err)
		paletteLoads.WithLabelValues("fetch_error").Inc()
		activeColors.Set(0)
		return
	}

	if len(hexes) > m.cfg.MaxColors {
		m.log.Debug("Downsampling palette", "palette", m.name, "colors", len(hexes), "max", m.cfg.MaxColors)
	}
	p, bad := FromHex(Downsample(hexes, m.cfg.MaxColors))
	for _, h := range bad {
		m.log.Warn("Malformed hex color, using black", "palette", m.name, "hex", h)
		malformedColors.Inc()
	}

	m.palette = p
	paletteLoads.WithLabelValues("ok").Inc()
	activeColors.Set(float64(len(p)))
}

// Apply runs ts over the palette in order and recomputes the named colors.
func (m *Manager) Apply(ts ...Transform) *Manager {
	m.palette = Apply(m.palette, ts...)
	m.assignNamed()
	return m
}

// ApplyConfigTransforms shuffles with the config seed, rotates by the config
// amount, then assigns named colors.
func (m *Manager) ApplyConfigTransforms() *Manager {
	m.applyConfig()
	m.emit("apply")
	return m
}

func (m *Manager) applyConfig() {
	m.log.Debug("Applying config transforms", "seed", m.cfg.Seed, "rotation", m.cfg.RotateAmount)
	m.Apply(Shuffle(m.cfg.Seed), Rotate(m.cfg.RotateAmount))
	paletteTransforms.WithLabelValues("config").Inc()
}

// Shuffle reorders the palette with seed and reassigns named colors.
func (m *Manager) Shuffle(seed int64) *Manager {
	m.Apply(Shuffle(seed))
	paletteTransforms.WithLabelValues("shuffle").Inc()
	m.log.Debug("Shuffled palette", "seed", seed)
	m.emit("shuffle")
	return m
}

// ShuffleConfigured shuffles with the config seed.
func (m *Manager) ShuffleConfigured() *Manager {
	return m.Shuffle(m.cfg.Seed)
}

// Rotate shifts the palette right by k and reassigns named colors.
func (m *Manager) Rotate(k int) *Manager {
	m.Apply(Rotate(k))
	paletteTransforms.WithLabelValues("rotate").Inc()
	m.log.Debug("Rotated palette", "amount", k)
	m.emit("rotate")
	return m
}

// RotateConfigured rotates by the config amount.
func (m *Manager) RotateConfigured() *Manager {
	return m.Rotate(m.cfg.RotateAmount)
}

// LoadPaletteByIndex switches to catalog palette i and applies the config transforms.
func (m *Manager) LoadPaletteByIndex(i int) *Manager {
	m.UpdateConfig(config.KeyPaletteIdx, i)
	m.LoadBase()
	return m.ApplyConfigTransforms()
}

// Reload rereads the config, reloads the base palette and applies the config
// transforms. Observers see a single "reload" event.
func (m *Manager) Reload() *Manager {
	m.log.Info("Reloading configuration")
	m.cfg = m.loadConfig()
	m.LoadBase()
	m.applyConfig()
	m.emit("reload")
	return m
}

// SaveConfig writes the in-memory config. Failures are logged and reported
// through the return value.
func (m *Manager) SaveConfig() bool {
	if err := m.store.Save(m.cfg); err != nil {
		m.log.Warn("Saving configuration failed", "error", err)
		return false
	}
	m.log.Info("Configuration saved")
	return true
}

// UpdateConfig sets one config key in memory. Unknown keys and bad values are
// logged and ignored. Nothing is reloaded or saved.
func (m *Manager) UpdateConfig(key string, value any) bool {
	if err := m.cfg.Set(key, value); err != nil {
		m.log.Warn("Config update rejected", "key", key, "value", value, "error", err)
		return false
	}
	m.log.Debug("Config updated", "key", key, "value", value)
	return true
}

func (m *Manager) assignNamed() {
	m.named = AssignNamed(m.palette, m.cfg.ColorIndices)
}

func (m *Manager) emit(action string) {
	ev := m.Status(action)
	m.log.Info("Palette "+action, "palette", ev.Palette, "index", ev.Index, "colors", ev.Colors,
		"seed", ev.Seed, "rotation", ev.Rotation, "named", ev.Named)
	if m.observe != nil {
		m.observe(ev)
	}
}

// Status reports the current state as an Event tagged with action.
func (m *Manager) Status(action string) Event {
	names := make([]string, 0, len(m.named))
	for _, name := range m.cfg.Names() {
		if _, ok := m.named[name]; ok {
			names = append(names, name)
		}
	}
	return Event{
		Action:   action,
		Palette:  m.name,
		Index:    m.cfg.PaletteIdx,
		Colors:   len(m.palette),
		Seed:     m.cfg.Seed,
		Rotation: m.cfg.RotateAmount,
		Named:    names,
	}
}

// Color returns the named color, or black when the name is not assigned.
func (m *Manager) Color(name string) Color {
	if c, ok := m.named[name]; ok {
		return c
	}
	return Black
}

// At returns the palette color at i, wrapping around; black when empty.
func (m *Manager) At(i int) Color {
	return m.palette.At(i)
}

// HexAt returns the palette hex string at i, wrapping around; "" when empty.
func (m *Manager) HexAt(i int) string {
	return m.palette.HexAt(i)
}

// Len returns the number of colors in the palette.
func (m *Manager) Len() int {
	return len(m.palette)
}

// Name returns the catalog name of the loaded palette.
func (m *Manager) Name() string {
	return m.name
}

// Index returns the config palette index.
func (m *Manager) Index() int {
	return m.cfg.PaletteIdx
}

// Palette returns a copy of the current palette.
func (m *Manager) Palette() Palette {
	return m.palette.Clone()
}

// Named returns a copy of the named colors.
func (m *Manager) Named() map[string]Color {
	return maps.Clone(m.named)
}

// Config returns a copy of the in-memory config.
func (m *Manager) Config() config.Config {
	return m.cfg.Clone()
}

// Catalog returns the catalog the manager loads from.
func (m *Manager) Catalog() catalog.Catalog {
	return m.catalog
}
