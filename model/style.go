package model

// TextAlign is horizontal text alignment within a node's box.
type TextAlign int

const (
	AlignStart TextAlign = iota
	AlignCenter
	AlignEnd
)

// TextVAlign is vertical text alignment within a node's box.
type TextVAlign int

const (
	VAlignTop TextVAlign = iota
	VAlignMiddle
	VAlignBottom
)

// Style holds every visually-resolvable property a node can carry, either
// directly or via use_styles. Every field is a pointer so that "unset" is
// distinguishable from "set to the zero value" — resolution is a layered
// merge where only non-nil fields from a more specific source overwrite an
// already-resolved value.
type Style struct {
	Fill         *Paint
	Stroke       *Stroke
	Font         *FontSpec
	CornerRadius *float64
	Opacity      *float64
	Shadow       *Shadow
	TextAlign    *TextAlign
	TextVAlign   *TextVAlign
	Scale        *float64
}

// mergeStyle overwrites fields of dst with any non-nil field of src,
// returning dst. src always wins: callers merge in specificity order,
// weakest first (use_styles in declaration order, then inline, then any
// active animation-trigger override last).
func mergeStyle(dst, src Style) Style {
	if src.Fill != nil {
		dst.Fill = src.Fill
	}
	if src.Stroke != nil {
		dst.Stroke = src.Stroke
	}
	if src.Font != nil {
		dst.Font = src.Font
	}
	if src.CornerRadius != nil {
		dst.CornerRadius = src.CornerRadius
	}
	if src.Opacity != nil {
		dst.Opacity = src.Opacity
	}
	if src.Shadow != nil {
		dst.Shadow = src.Shadow
	}
	if src.TextAlign != nil {
		dst.TextAlign = src.TextAlign
	}
	if src.TextVAlign != nil {
		dst.TextVAlign = src.TextVAlign
	}
	if src.Scale != nil {
		dst.Scale = src.Scale
	}
	return dst
}

func Float64Ptr(v float64) *float64 { return &v }
func PaintPtr(v Paint) *Paint       { return &v }
func StrokePtr(v Stroke) *Stroke    { return &v }
func FontPtr(v FontSpec) *FontSpec  { return &v }
func ShadowPtr(v Shadow) *Shadow    { return &v }

func TextAlignPtr(v TextAlign) *TextAlign    { return &v }
func TextVAlignPtr(v TextVAlign) *TextVAlign { return &v }
