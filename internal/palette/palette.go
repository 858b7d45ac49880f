package palette

import (
	"math"
	"slices"
	"sort"
)

// Swatch pairs a catalog hex string with its HSL conversion. Keeping both in
// one element keeps the two views index-aligned through every reorder.
type Swatch struct {
	Hex   string `json:"hex"`
	Color Color  `json:"hsl"`
}

// Palette is an ordered list of swatches.
type Palette []Swatch

// FromHex converts hex strings to a palette. Malformed entries become black
// and are returned in bad so the caller can report them.
func FromHex(hexes []string) (p Palette, bad []string) {
	p = make(Palette, 0, len(hexes))
	for _, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			bad = append(bad, h)
		}
		p = append(p, Swatch{Hex: h, Color: c})
	}
	return p, bad
}

// Len returns the number of colors.
func (p Palette) Len() int {
	return len(p)
}

// At returns the color at i modulo the palette length, or black when empty.
func (p Palette) At(i int) Color {
	if len(p) == 0 {
		return Black
	}
	return p[mod(i, len(p))].Color
}

// HexAt returns the hex string at i modulo the palette length, or "" when empty.
func (p Palette) HexAt(i int) string {
	if len(p) == 0 {
		return ""
	}
	return p[mod(i, len(p))].Hex
}

// Hexes returns the hex view of the palette.
func (p Palette) Hexes() []string {
	out := make([]string, len(p))
	for i, s := range p {
		out[i] = s.Hex
	}
	return out
}

// Colors returns the HSL view of the palette.
func (p Palette) Colors() []Color {
	out := make([]Color, len(p))
	for i, s := range p {
		out[i] = s.Color
	}
	return out
}

// Clone returns a copy that shares nothing with p.
func (p Palette) Clone() Palette {
	return slices.Clone(p)
}

// Downsample reduces hexes to at most max colors while keeping both hue
// extremes. Short lists are returned unchanged in catalog order. Longer lists
// are stable-sorted by hue (unparseable colors sort as hue 0) and sampled every
// len/(max-1) positions. The final slot holds the last sorted color unless
// that value was already sampled, in which case the strided sample stays.
func Downsample(hexes []string, max int) []string {
	if max < 1 {
		max = 1
	}
	if len(hexes) <= max {
		return slices.Clone(hexes)
	}

	sorted := slices.Clone(hexes)
	hues := make(map[string]float64, len(sorted))
	for _, h := range sorted {
		if _, ok := hues[h]; !ok {
			hues[h] = Hue(h)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return hues[sorted[i]] < hues[sorted[j]]
	})

	stride := 1
	if max > 1 {
		stride = len(sorted) / (max - 1)
	}

	// For i < max-1, i*stride <= len - len/(max-1) < len-1, so striding never
	// reaches the last sorted index on its own. A duplicate value can.
	out := make([]string, max)
	for i := 0; i < max-1; i++ {
		out[i] = sorted[i*stride]
	}
	last := sorted[len(sorted)-1]
	out[max-1] = last
	if tail := (max - 1) * stride; tail < len(sorted) && slices.Contains(out[:max-1], last) {
		out[max-1] = sorted[tail]
	}
	return out
}

// AssignNamed maps each name to the color at floor(ratio*n) mod n.
func AssignNamed(p Palette, indices map[string]float64) map[string]Color {
	named := make(map[string]Color, len(indices))
	n := len(p)
	if n == 0 {
		return named
	}
	for name, ratio := range indices {
		idx := int(math.Floor(ratio * float64(n)))
		named[name] = p[mod(idx, n)].Color
	}
	return named
}

func mod(i, n int) int {
	return ((i % n) + n) % n
}
