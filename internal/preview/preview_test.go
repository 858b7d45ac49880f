package preview

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/wethinkt/go-tonekit/internal/palette"
)

type op struct {
	kind     string // rect, text, group
	text     string
	font     Font
	bounds   Rect
	fill     color.Color
	stroke   color.Color
	width    float64
	anchor   Anchor
	children []*op
}

type fakeCanvas struct {
	failText map[string]bool
}

func (c *fakeCanvas) Rect(r Rect) *op { return &op{kind: "rect", bounds: r} }

func (c *fakeCanvas) Text(s string, f Font) (*op, error) {
	if c.failText[s] {
		return nil, errors.New("no glyphs")
	}
	return &op{kind: "text", text: s, font: f}, nil
}

func (c *fakeCanvas) Fill(d *op, col color.Color) *op {
	d.fill = col
	return d
}

func (c *fakeCanvas) Stroke(d *op, col color.Color, width float64) *op {
	d.stroke, d.width = col, width
	return d
}

func (c *fakeCanvas) Align(d *op, r Rect, a Anchor) *op {
	d.bounds, d.anchor = r, a
	return d
}

func (c *fakeCanvas) Compose(ds []*op) *op { return &op{kind: "group", children: ds} }

type fakeSource struct {
	name string
	p    palette.Palette
}

func (s fakeSource) Name() string           { return s.name }
func (s fakeSource) Len() int               { return s.p.Len() }
func (s fakeSource) At(i int) palette.Color { return s.p.At(i) }
func (s fakeSource) HexAt(i int) string     { return s.p.HexAt(i) }

var sixColors = []string{"#ff0000", "#ffff00", "#00ff00", "#00ffff", "#0000ff", "#ff00ff"}

func newSource(hexes []string) fakeSource {
	p, _ := palette.FromHex(hexes)
	return fakeSource{name: "Primary Wheel", p: p}
}

func TestRenderLayout(t *testing.T) {
	src := newSource(sixColors)
	root := Render[*op](&fakeCanvas{}, Rect{W: 620, H: 120}, src, DefaultOptions())

	if root.kind != "group" {
		t.Fatalf("root kind = %s", root.kind)
	}
	// name + (swatch + label) per color
	if len(root.children) != 1+2*len(sixColors) {
		t.Fatalf("children = %d, want %d", len(root.children), 1+2*len(sixColors))
	}

	name := root.children[0]
	if name.text != "Primary Wheel" || name.anchor != NW {
		t.Errorf("name label = %+v", name)
	}
	if math.Abs(name.font.Size-DefaultSize*1.2) > 1e-9 || name.font.Weight != 0.4 || name.font.Name != DefaultFont {
		t.Errorf("name font = %+v", name.font)
	}
	if name.fill != src.At(3) {
		t.Errorf("name fill = %v, want middle color %v", name.fill, src.At(3))
	}
	if name.bounds != (Rect{X: 10, Y: 10, W: 600, H: 100}) {
		t.Errorf("name aligned to %+v, want padded area", name.bounds)
	}

	for i := range sixColors {
		swatch := root.children[1+2*i]
		label := root.children[2+2*i]

		wantCell := Rect{X: 10 + float64(i)*100, Y: 10, W: 100, H: 100}
		if swatch.kind != "rect" || swatch.bounds != wantCell {
			t.Errorf("swatch %d = %+v, want cell %+v", i, swatch.bounds, wantCell)
		}
		if swatch.fill != src.At(i) || swatch.stroke != color.Black || swatch.width != 3 {
			t.Errorf("swatch %d style = fill %v stroke %v width %v", i, swatch.fill, swatch.stroke, swatch.width)
		}

		if label.text != sixColors[i] || label.anchor != Center || label.bounds != wantCell {
			t.Errorf("label %d = %+v", i, label)
		}
		if label.font.Weight != 0.6 || label.font.Size != DefaultSize {
			t.Errorf("label %d font = %+v", i, label.font)
		}
		if want := src.At((i + 3) % len(sixColors)); label.fill != want {
			t.Errorf("label %d fill = %v, want %v", i, label.fill, want)
		}
	}
}

func TestRenderEmptyPalette(t *testing.T) {
	root := Render[*op](&fakeCanvas{}, Rect{W: 100, H: 100}, fakeSource{name: "none"}, DefaultOptions())
	if root.kind != "group" || len(root.children) != 0 {
		t.Errorf("empty palette rendered %+v", root)
	}
}

func TestRenderSkipsFailedLabels(t *testing.T) {
	c := &fakeCanvas{failText: map[string]bool{"#00ff00": true, "Primary Wheel": true}}
	root := Render[*op](c, Rect{W: 620, H: 120}, newSource(sixColors), DefaultOptions())

	// six swatches, five labels, no name
	if len(root.children) != 11 {
		t.Fatalf("children = %d, want 11", len(root.children))
	}
	var swatches, labels int
	for _, d := range root.children {
		switch d.kind {
		case "rect":
			swatches++
		case "text":
			labels++
			if d.text == "#00ff00" || d.text == "Primary Wheel" {
				t.Errorf("failed label %q rendered", d.text)
			}
		}
	}
	if swatches != 6 || labels != 5 {
		t.Errorf("swatches=%d labels=%d", swatches, labels)
	}
}

type warnLog struct {
	warns []string
}

func (l *warnLog) Debug(string, ...any)      {}
func (l *warnLog) Info(string, ...any)       {}
func (l *warnLog) Warn(msg string, _ ...any) { l.warns = append(l.warns, msg) }

func TestRenderReportsFailedLabelsToLogger(t *testing.T) {
	c := &fakeCanvas{failText: map[string]bool{"#00ff00": true, "Primary Wheel": true}}
	log := &warnLog{}
	opts := DefaultOptions()
	opts.Log = log
	Render[*op](c, Rect{W: 620, H: 120}, newSource(sixColors), opts)

	if len(log.warns) != 2 {
		t.Errorf("warnings = %v, want one for the name and one for #00ff00", log.warns)
	}
}

func TestRenderLabelOffsetWraps(t *testing.T) {
	src := newSource(sixColors[:2])
	opts := DefaultOptions()
	opts.LabelOffset = 5
	root := Render[*op](&fakeCanvas{}, Rect{W: 100, H: 50}, src, opts)

	label := root.children[2]
	if label.fill != src.At(1) {
		t.Errorf("label 0 fill = %v, want color 1", label.fill)
	}
}

func TestRenderDefaultsFontName(t *testing.T) {
	opts := DefaultOptions()
	opts.Font = ""
	root := Render[*op](&fakeCanvas{}, Rect{W: 100, H: 50}, newSource(sixColors[:1]), opts)
	for _, d := range root.children {
		if d.kind == "text" && d.font.Name != DefaultFont {
			t.Errorf("font = %q, want %q", d.font.Name, DefaultFont)
		}
	}
}

func TestInsetAndGrid(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 40}.Inset(10)
	if r != (Rect{X: 10, Y: 10, W: 80, H: 20}) {
		t.Errorf("Inset = %+v", r)
	}
	if got := (Rect{W: 10, H: 10}).Inset(20); got.W != 0 || got.H != 0 {
		t.Errorf("over-inset = %+v, want zero size", got)
	}

	cells := Rect{X: 0, Y: 0, W: 90, H: 60}.Grid(2, 3)
	if len(cells) != 6 {
		t.Fatalf("cells = %d", len(cells))
	}
	if cells[4] != (Rect{X: 30, Y: 30, W: 30, H: 30}) {
		t.Errorf("cells[4] = %+v", cells[4])
	}
	if (Rect{W: 1, H: 1}).Grid(0, 3) != nil {
		t.Error("zero rows should give no cells")
	}
}

func TestAnchorPlace(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}
	tests := []struct {
		a    Anchor
		x, y float64
	}{
		{NW, 10, 20},
		{NE, 90, 20},
		{Center, 50, 40},
		{SE, 90, 60},
		{S, 50, 60},
		{W, 10, 40},
		{Anchor("bogus"), 50, 40},
	}
	for _, tt := range tests {
		x, y := tt.a.Place(r, 20, 10)
		if x != tt.x || y != tt.y {
			t.Errorf("%s: (%v,%v), want (%v,%v)", tt.a, x, y, tt.x, tt.y)
		}
	}
}

func TestUnion(t *testing.T) {
	got := Rect{X: 0, Y: 0, W: 10, H: 10}.Union(Rect{X: 5, Y: -5, W: 10, H: 10})
	if got != (Rect{X: 0, Y: -5, W: 15, H: 15}) {
		t.Errorf("Union = %+v", got)
	}
}
