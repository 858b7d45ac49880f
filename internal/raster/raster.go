// Package raster implements preview.Canvas as a small retained scene graph
// that is painted onto an image. Text is set with the Go font family or any
// TrueType/OpenType file.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/wethinkt/go-tonekit/internal/preview"
)

var (
	// ErrUnknownFont is returned by Text for names that are neither a bundled
	// family nor a .ttf/.otf path.
	ErrUnknownFont = errors.New("unknown font")
	// ErrFontSize is returned by Text for sizes <= 0.
	ErrFontSize = errors.New("font size must be positive")
)

// Kind is the node type.
type Kind int

const (
	KindGroup Kind = iota
	KindRect
	KindText
)

// Node is one element of the scene. Nodes are values once built: every
// Canvas method returns a new node rather than changing its argument.
type Node struct {
	Kind        Kind
	Bounds      preview.Rect
	Text        string
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64
	Children    []*Node

	face   font.Face
	ascent float64
}

func (n *Node) clone() *Node {
	cp := *n
	if n.Children != nil {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = c.clone()
		}
	}
	return &cp
}

func (n *Node) translate(dx, dy float64) {
	n.Bounds.X += dx
	n.Bounds.Y += dy
	for _, c := range n.Children {
		c.translate(dx, dy)
	}
}

func (n *Node) paint(fill color.Color) {
	n.Fill = fill
	for _, c := range n.Children {
		c.paint(fill)
	}
}

type faceKey struct {
	name string
	bold bool
	size float64
}

// Canvas builds Nodes. Faces are cached per canvas; a Canvas is not safe for
// concurrent use.
type Canvas struct {
	fonts map[string]*opentype.Font
	faces map[faceKey]font.Face
}

var _ preview.Canvas[*Node] = (*Canvas)(nil)

// New returns an empty canvas.
func New() *Canvas {
	return &Canvas{
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

// Bold reports whether weight selects the bold face.
func Bold(weight float64) bool {
	return weight >= 0.5
}

func fontData(name string, bold bool) ([]byte, error) {
	switch strings.ToLower(name) {
	case "go", "go regular", "go bold":
		if bold {
			return gobold.TTF, nil
		}
		return goregular.TTF, nil
	case "go mono":
		if bold {
			return gomonobold.TTF, nil
		}
		return gomono.TTF, nil
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf":
		return os.ReadFile(name)
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownFont)
}

func (c *Canvas) face(f preview.Font) (font.Face, error) {
	if f.Size <= 0 || math.IsNaN(f.Size) {
		return nil, fmt.Errorf("%v: %w", f.Size, ErrFontSize)
	}
	key := faceKey{name: f.Name, bold: Bold(f.Weight), size: f.Size}
	if face, ok := c.faces[key]; ok {
		return face, nil
	}

	fontID := fmt.Sprintf("%s/%t", key.name, key.bold)
	parsed, ok := c.fonts[fontID]
	if !ok {
		data, err := fontData(key.name, key.bold)
		if err != nil {
			return nil, err
		}
		parsed, err = opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse font %q: %w", key.name, err)
		}
		c.fonts[fontID] = parsed
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("face %q %vpt: %w", key.name, f.Size, err)
	}
	c.faces[key] = face
	return face, nil
}

// Rect returns an unfilled rectangle node.
func (c *Canvas) Rect(r preview.Rect) *Node {
	return &Node{Kind: KindRect, Bounds: r}
}

// Text sets s in font f at the origin. Its bounds span the advance width and
// the face's ascent plus descent.
func (c *Canvas) Text(s string, f preview.Font) (*Node, error) {
	face, err := c.face(f)
	if err != nil {
		return nil, err
	}
	m := face.Metrics()
	ascent := fromFixed(m.Ascent)
	return &Node{
		Kind:   KindText,
		Text:   s,
		Bounds: preview.Rect{W: fromFixed(font.MeasureString(face, s)), H: ascent + fromFixed(m.Descent)},
		face:   face,
		ascent: ascent,
	}, nil
}

// Fill colors d and, for groups, every descendant.
func (c *Canvas) Fill(d *Node, col color.Color) *Node {
	out := d.clone()
	out.paint(col)
	return out
}

// Stroke outlines a rectangle node. Strokes on other kinds are kept but not drawn.
func (c *Canvas) Stroke(d *Node, col color.Color, width float64) *Node {
	out := d.clone()
	out.Stroke = col
	out.StrokeWidth = width
	return out
}

// Align moves d so its bounds sit at anchor a inside r.
func (c *Canvas) Align(d *Node, r preview.Rect, a preview.Anchor) *Node {
	out := d.clone()
	x, y := a.Place(r, d.Bounds.W, d.Bounds.H)
	out.translate(x-d.Bounds.X, y-d.Bounds.Y)
	return out
}

// Compose groups ds in paint order. Nil entries are skipped.
func (c *Canvas) Compose(ds []*Node) *Node {
	g := &Node{Kind: KindGroup}
	for _, d := range ds {
		if d == nil {
			continue
		}
		g.Children = append(g.Children, d)
		g.Bounds = g.Bounds.Union(d.Bounds)
	}
	return g
}

// Draw paints n onto dst. Nodes without a fill draw only their stroke.
func Draw(dst draw.Image, n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindGroup:
		for _, c := range n.Children {
			Draw(dst, c)
		}
	case KindRect:
		if n.Fill != nil {
			fillRect(dst, n.Bounds, n.Fill)
		}
		if n.Stroke != nil && n.StrokeWidth > 0 {
			strokeRect(dst, n.Bounds, n.Stroke, n.StrokeWidth)
		}
	case KindText:
		if n.face == nil {
			return
		}
		var fill color.Color = color.Black
		if n.Fill != nil {
			fill = n.Fill
		}
		d := font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(fill),
			Face: n.face,
			Dot:  fixed.Point26_6{X: toFixed(n.Bounds.X), Y: toFixed(n.Bounds.Y + n.ascent)},
		}
		d.DrawString(n.Text)
	}
}

func fillRect(dst draw.Image, r preview.Rect, col color.Color) {
	draw.Draw(dst, pixelRect(r), image.NewUniform(col), image.Point{}, draw.Over)
}

// strokeRect draws an outline of width w centered on the edges of r.
func strokeRect(dst draw.Image, r preview.Rect, col color.Color, w float64) {
	outer := r.Inset(-w / 2)
	bands := []preview.Rect{
		{X: outer.X, Y: outer.Y, W: outer.W, H: w},
		{X: outer.X, Y: outer.Y + outer.H - w, W: outer.W, H: w},
		{X: outer.X, Y: outer.Y + w, W: w, H: outer.H - 2*w},
		{X: outer.X + outer.W - w, Y: outer.Y + w, W: w, H: outer.H - 2*w},
	}
	for _, b := range bands {
		fillRect(dst, b, col)
	}
}

func pixelRect(r preview.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.X+r.W)), int(math.Round(r.Y+r.H)),
	)
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// Rasterize paints n onto a new width x height image cleared to bg.
func Rasterize(n *Node, width, height int, bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	Draw(img, n)
	return img
}

// RenderPNG rasterizes n and writes it to w as PNG.
func RenderPNG(w io.Writer, n *Node, width, height int, bg color.Color) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	return png.Encode(w, Rasterize(n, width, height, bg))
}

// RenderPreview lays out src with preview.Render on a fresh canvas and
// writes the result to w as a width x height PNG.
func RenderPreview(w io.Writer, src preview.Source, width, height int, opts preview.Options, bg color.Color) error {
	root := preview.Render[*Node](New(), preview.Rect{W: float64(width), H: float64(height)}, src, opts)
	return RenderPNG(w, root, width, height, bg)
}
