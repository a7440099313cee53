package model

// Shadow is a single drop shadow applied behind a node's fill.
type Shadow struct {
	OffsetX float64
	OffsetY float64
	Blur    float64
	Color   Color
}

func DefaultShadow() Shadow {
	return Shadow{OffsetX: 0, OffsetY: 2, Blur: 4, Color: Color{R: 0, G: 0, B: 0, A: 0.25}}
}
