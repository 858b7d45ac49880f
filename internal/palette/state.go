package palette

// SwatchState is one color in a State document.
type SwatchState struct {
	Hex string `json:"hex"`
	HSL Color  `json:"hsl"`
}

// State is a serializable snapshot of a Manager.
type State struct {
	Name         string                 `json:"name"`
	Index        int                    `json:"index"`
	Seed         int64                  `json:"seed"`
	RotateAmount int                    `json:"rotate_amount"`
	MaxColors    int                    `json:"max_colors"`
	Colors       []SwatchState          `json:"colors"`
	Named        map[string]SwatchState `json:"named"`
}

// State returns a snapshot of the current palette, config and named colors.
func (m *Manager) State() State {
	out := State{
		Name:         m.name,
		Index:        m.cfg.PaletteIdx,
		Seed:         m.cfg.Seed,
		RotateAmount: m.cfg.RotateAmount,
		MaxColors:    m.cfg.MaxColors,
		Colors:       make([]SwatchState, 0, len(m.palette)),
		Named:        make(map[string]SwatchState, len(m.named)),
	}
	for _, s := range m.palette {
		out.Colors = append(out.Colors, SwatchState{Hex: s.Hex, HSL: s.Color})
	}
	for name, c := range m.named {
		out.Named[name] = SwatchState{Hex: c.Hex(), HSL: c}
	}
	return out
}
