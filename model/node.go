package model

import "github.com/flowdesign/fd/id"

// NodeKind discriminates the shapes a SceneNode may take. Every kind shares
// the same struct; fields meaningful only to specific kinds are documented
// on SceneNode.
type NodeKind int

const (
	KindFrame NodeKind = iota
	KindGroup
	KindRect
	KindEllipse
	KindText
	KindPath
	KindImage
)

func (k NodeKind) String() string {
	switch k {
	case KindFrame:
		return "frame"
	case KindGroup:
		return "group"
	case KindRect:
		return "rect"
	case KindEllipse:
		return "ellipse"
	case KindText:
		return "text"
	case KindPath:
		return "path"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// TextMetrics overrides the engine's built-in text size estimate with a
// real measurement, e.g. from a host's font rasterizer. When nil, the
// layout package falls back to its own heuristic.
type TextMetrics struct {
	Width   float64
	Height  float64
	Ascent  float64
	Descent float64
}

// SceneNode is one element of a SceneGraph: a shape, container, or text run.
type SceneNode struct {
	Id   id.NodeId
	Kind NodeKind

	Parent   id.NodeId // zero value (invalid) for roots
	Children []id.NodeId

	W, H float64 // explicit size; 0 means "use intrinsic size"

	Clip bool

	UseStyles []string
	Style     Style // inline style, merged last among non-animation sources

	Constraints []Constraint

	// Frame, Group
	Layout LayoutMode

	// Text
	Text        string
	TextMetrics *TextMetrics

	// Path
	Path []PathCmd

	// Image
	Src string

	Label       string
	Annotations []Annotation
	Animations  []Animation

	// Bounds is filled in by the layout solver; it is not part of the
	// textual representation and is recomputed on every resolve pass.
	Bounds ResolvedBounds
}

// IsContainer reports whether the node kind may have children.
func (n *SceneNode) IsContainer() bool {
	return n.Kind == KindFrame || n.Kind == KindGroup
}
