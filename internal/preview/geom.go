package preview

// Rect is an axis-aligned rectangle in image coordinates: X grows right, Y grows down.
type Rect struct {
	X, Y, W, H float64
}

// Inset shrinks r by d on every side. The result never has negative size.
func (r Rect) Inset(d float64) Rect {
	out := Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
	if out.W < 0 {
		out.X += out.W / 2
		out.W = 0
	}
	if out.H < 0 {
		out.Y += out.H / 2
		out.H = 0
	}
	return out
}

// Grid splits r into rows*cols equal cells, returned row by row, left to right.
func (r Rect) Grid(rows, cols int) []Rect {
	if rows < 1 || cols < 1 {
		return nil
	}
	cw, ch := r.W/float64(cols), r.H/float64(rows)
	cells := make([]Rect, 0, rows*cols)
	for row := range rows {
		for col := range cols {
			cells = append(cells, Rect{
				X: r.X + float64(col)*cw,
				Y: r.Y + float64(row)*ch,
				W: cw,
				H: ch,
			})
		}
	}
	return cells
}

// Union returns the smallest rectangle containing r and o. Zero rects are ignored.
func (r Rect) Union(o Rect) Rect {
	if r == (Rect{}) {
		return o
	}
	if o == (Rect{}) {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.W, o.X+o.W), max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Anchor names a compass point of a rectangle.
type Anchor string

const (
	NW     Anchor = "NW"
	N      Anchor = "N"
	NE     Anchor = "NE"
	W      Anchor = "W"
	Center Anchor = "C"
	E      Anchor = "E"
	SW     Anchor = "SW"
	S      Anchor = "S"
	SE     Anchor = "SE"
)

// Place returns where a box of size w*h lands when anchored at a inside r.
// Unknown anchors center the box.
func (a Anchor) Place(r Rect, w, h float64) (x, y float64) {
	x = r.X + (r.W-w)/2
	y = r.Y + (r.H-h)/2
	switch a {
	case NW, W, SW:
		x = r.X
	case NE, E, SE:
		x = r.X + r.W - w
	}
	switch a {
	case NW, N, NE:
		y = r.Y
	case SW, S, SE:
		y = r.Y + r.H - h
	}
	return x, y
}
