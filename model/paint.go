package model

// PaintKind discriminates the Paint tagged union.
type PaintKind int

const (
	PaintSolid PaintKind = iota
	PaintLinearGradient
	PaintRadialGradient
)

// GradientStop is one color stop in a gradient, ordered by Offset.
type GradientStop struct {
	Offset float64 // 0..1
	Color  Color
}

// Paint is fill/stroke paint: a solid color, a linear gradient (with an
// angle in degrees) or a radial gradient. Only the fields relevant to
// Kind are meaningful.
type Paint struct {
	Kind  PaintKind
	Solid Color

	Angle float64 // degrees, LinearGradient only
	Stops []GradientStop
}

// SolidPaint builds a Paint of kind PaintSolid.
func SolidPaint(c Color) Paint {
	return Paint{Kind: PaintSolid, Solid: c}
}

// LinearGradient builds a Paint of kind PaintLinearGradient.
func LinearGradient(angle float64, stops []GradientStop) Paint {
	return Paint{Kind: PaintLinearGradient, Angle: angle, Stops: stops}
}

// RadialGradient builds a Paint of kind PaintRadialGradient.
func RadialGradient(stops []GradientStop) Paint {
	return Paint{Kind: PaintRadialGradient, Stops: stops}
}

// Equal reports whether two paints carry the same value, used by the
// hoist-styles transform's style fingerprinting.
func (p Paint) Equal(o Paint) bool {
	if p.Kind != o.Kind {
		return false
	}
	switch p.Kind {
	case PaintSolid:
		return p.Solid == o.Solid
	case PaintLinearGradient:
		if p.Angle != o.Angle || len(p.Stops) != len(o.Stops) {
			return false
		}
	case PaintRadialGradient:
		if len(p.Stops) != len(o.Stops) {
			return false
		}
	}
	for i := range p.Stops {
		if p.Stops[i] != o.Stops[i] {
			return false
		}
	}
	return true
}
