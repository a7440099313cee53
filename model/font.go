package model

// FontSpec names a typeface, weight and pixel size.
type FontSpec struct {
	Family string
	Weight int // 100..900
	Size   float64
}

// DefaultFontSpec is a sane fallback for hosts that need a font even when
// a node has none resolved. The parser only ever constructs a FontSpec
// from an explicit `font:` property.
var DefaultFontSpec = FontSpec{Family: "Inter", Weight: 400, Size: 14}
