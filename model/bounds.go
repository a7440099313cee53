package model

// ResolvedBounds is the axis-aligned box the layout solver assigns a node,
// in canvas coordinates.
type ResolvedBounds struct {
	X, Y float64
	W, H float64
}

func (b ResolvedBounds) Right() float64  { return b.X + b.W }
func (b ResolvedBounds) Bottom() float64 { return b.Y + b.H }

func (b ResolvedBounds) CenterX() float64 { return b.X + b.W/2 }
func (b ResolvedBounds) CenterY() float64 { return b.Y + b.H/2 }

// Contains reports whether the point (x, y) lies within b, inclusive of
// its top-left edge and exclusive of its bottom-right edge.
func (b ResolvedBounds) Contains(x, y float64) bool {
	return x >= b.X && x < b.Right() && y >= b.Y && y < b.Bottom()
}

// Intersects reports whether b and o overlap by any positive area.
func (b ResolvedBounds) Intersects(o ResolvedBounds) bool {
	return b.X < o.Right() && o.X < b.Right() && b.Y < o.Bottom() && o.Y < b.Bottom()
}

// Union returns the smallest bounds containing both b and o. A bounds with
// zero width and height counts as empty and is ignored. Used by the group
// auto-size pass to fold children bounds into a parent's extent.
func (b ResolvedBounds) Union(o ResolvedBounds) ResolvedBounds {
	if o.W == 0 && o.H == 0 {
		return b
	}
	if b.W == 0 && b.H == 0 {
		return o
	}
	minX := min(b.X, o.X)
	minY := min(b.Y, o.Y)
	maxX := max(b.Right(), o.Right())
	maxY := max(b.Bottom(), o.Bottom())
	return ResolvedBounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
