package palette

import (
	"math/rand/v2"
)

// Transform maps a palette to a reordered palette without touching its input.
type Transform func(Palette) Palette

// Apply runs ts over p in order.
func Apply(p Palette, ts ...Transform) Palette {
	out := p.Clone()
	for _, t := range ts {
		out = t(out)
	}
	return out
}

// Shuffle permutes the palette with a Fisher-Yates pass from the tail,
// drawing from a PCG generator seeded with (seed, seed). The same seed and
// input order always give the same output order.
func Shuffle(seed int64) Transform {
	return func(p Palette) Palette {
		out := p.Clone()
		rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
		for i := len(out) - 1; i > 0; i-- {
			j := int(rng.Uint64N(uint64(i + 1)))
			out[i], out[j] = out[j], out[i]
		}
		return out
	}
}

// Rotate shifts the palette right by k: the color at i moves to (i+k) mod n.
// Negative k rotates left.
func Rotate(k int) Transform {
	return func(p Palette) Palette {
		n := len(p)
		if n == 0 {
			return p.Clone()
		}
		k = mod(k, n)
		if k == 0 {
			return p.Clone()
		}
		out := make(Palette, n)
		for i, s := range p {
			out[(i+k)%n] = s
		}
		return out
	}
}
