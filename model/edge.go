package model

import "github.com/flowdesign/fd/id"

// EdgeAnchorKind discriminates EdgeAnchor.
type EdgeAnchorKind int

const (
	// AnchorNode attaches the edge endpoint to a node, by id.
	AnchorNode EdgeAnchorKind = iota
	// AnchorPoint attaches the edge endpoint to a fixed canvas coordinate,
	// independent of any node. Import resolution passes Point anchors
	// through unchanged — unlike node ids, a raw coordinate has no
	// namespace to prefix.
	AnchorPoint
)

// EdgeAnchor is one end of an Edge: either a node (by id) or a fixed point.
type EdgeAnchor struct {
	Kind EdgeAnchorKind
	Node id.NodeId
	X, Y float64
}

func NodeAnchor(n id.NodeId) EdgeAnchor      { return EdgeAnchor{Kind: AnchorNode, Node: n} }
func PointAnchor(x, y float64) EdgeAnchor    { return EdgeAnchor{Kind: AnchorPoint, X: x, Y: y} }

// ArrowKind is the terminal decoration drawn at an edge endpoint.
type ArrowKind int

const (
	ArrowNone ArrowKind = iota
	ArrowOpen
	ArrowFilled
	ArrowDiamond
)

// CurveKind is the path shape an edge takes between its anchors.
type CurveKind int

const (
	CurveStraight CurveKind = iota
	CurveOrthogonal
	CurveBezier
)

// FlowKind selects the decoration animated along an edge by FlowAnim.
type FlowKind int

const (
	FlowDot FlowKind = iota
	FlowDash
)

// FlowAnim animates a traveling decoration along an edge's path, used to
// depict data or control flow direction.
type FlowAnim struct {
	Kind     FlowKind
	Duration float64 // seconds per full traversal
	Reverse  bool
}

// Edge is a connection between two anchors, rendered independently of the
// node tree's parent/child structure.
type Edge struct {
	Id    id.NodeId
	From  EdgeAnchor
	To    EdgeAnchor
	Curve CurveKind
	Start ArrowKind
	End   ArrowKind

	Stroke      *Stroke
	UseStyles   []string
	Label       string
	Flow        *FlowAnim
	Annotations []Annotation
}
