package model

import "github.com/flowdesign/fd/id"

// ConstraintKind discriminates the Constraint tagged union.
type ConstraintKind int

const (
	// ConstraintCenterIn centers the node within Target's bounds, or the
	// viewport when Target is the literal "canvas".
	ConstraintCenterIn ConstraintKind = iota
	// ConstraintOffset places the node's origin at From's origin plus (DX, DY).
	ConstraintOffset
	// ConstraintFillParent sets the node's bounds to parent-minus-Pad.
	ConstraintFillParent
	// ConstraintAbsolute is a parent-relative position: the layout solver
	// resolves it as parent.origin + (X, Y). This is the single unified
	// replacement for what appeared as both "Absolute" and "Position" in
	// earlier versions of this data model — drag-placed and pinned nodes
	// both use this variant.
	ConstraintAbsolute
)

// CanvasTarget is the reserved target name meaning "the viewport" in a
// center_in constraint.
const CanvasTarget = "canvas"

// Constraint is a positional rule attached to a node, resolved by the
// layout solver after the base layout pass has assigned intrinsic bounds.
type Constraint struct {
	Kind ConstraintKind

	Target id.NodeId // ConstraintCenterIn
	From   id.NodeId // ConstraintOffset
	DX, DY float64   // ConstraintOffset
	Pad    float64   // ConstraintFillParent
	X, Y   float64   // ConstraintAbsolute
}

func CenterIn(target id.NodeId) Constraint {
	return Constraint{Kind: ConstraintCenterIn, Target: target}
}

func Offset(from id.NodeId, dx, dy float64) Constraint {
	return Constraint{Kind: ConstraintOffset, From: from, DX: dx, DY: dy}
}

func FillParent(pad float64) Constraint {
	return Constraint{Kind: ConstraintFillParent, Pad: pad}
}

func Absolute(x, y float64) Constraint {
	return Constraint{Kind: ConstraintAbsolute, X: x, Y: y}
}

// IsPositional reports whether the constraint determines a node's origin
// (as opposed to only its extent). All four current kinds are positional;
// this predicate exists so callers that must "strip all positional
// constraints" (e.g. the sync engine's MoveNode handling) have a single
// place to extend if a non-positional constraint kind is ever added.
func (c Constraint) IsPositional() bool {
	return true
}
