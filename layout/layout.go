// Package layout resolves a SceneGraph's relative layout modes and
// constraints into absolute ResolvedBounds for every node.
package layout

import (
	"github.com/flowdesign/fd/id"
	"github.com/flowdesign/fd/model"
)

// Viewport is the canvas a document is laid out against.
type Viewport struct {
	Width  float64
	Height float64
}

// DefaultViewport matches the engine's default canvas size.
var DefaultViewport = Viewport{Width: 800, Height: 600}

// Resolve computes absolute bounds for every node in g against viewport,
// writing them directly into each SceneNode's Bounds field. It runs three
// passes: intrinsic sizing and layout-mode placement top-down, group
// auto-sizing bottom-up as each subtree completes, then constraint
// application top-down so a parent's final position is settled before its
// children's constraints (e.g. fill_parent) are applied.
func Resolve(g *model.SceneGraph, viewport Viewport) {
	root := id.NodeId(0)
	for _, rid := range g.Children(root) {
		if n, ok := g.GetByID(rid); ok {
			w, h := intrinsicSize(g, n)
			n.Bounds = model.ResolvedBounds{X: 0, Y: 0, W: w, H: h}
		}
		resolveChildren(g, rid, viewport)
	}
	for _, rid := range g.Children(root) {
		resolveConstraintsTopDown(g, rid, viewport)
	}
}

// resolveChildren places nid's children per its layout mode, recurses into
// each, then auto-sizes nid (if it is a Group) to the union of its
// children's bounds.
func resolveChildren(g *model.SceneGraph, nid id.NodeId, viewport Viewport) {
	parent, ok := g.GetByID(nid)
	if !ok {
		return
	}
	children := g.Children(nid)
	if len(children) == 0 {
		return
	}

	switch parent.Layout.Kind {
	case model.LayoutColumn:
		y := parent.Bounds.Y + parent.Layout.Pad
		for _, cid := range children {
			cn, ok := g.GetByID(cid)
			if !ok {
				continue
			}
			w, h := intrinsicSize(g, cn)
			cn.Bounds = model.ResolvedBounds{X: parent.Bounds.X + parent.Layout.Pad, Y: y, W: w, H: h}
			y += h + parent.Layout.Gap
		}
	case model.LayoutRow:
		x := parent.Bounds.X + parent.Layout.Pad
		for _, cid := range children {
			cn, ok := g.GetByID(cid)
			if !ok {
				continue
			}
			w, h := intrinsicSize(g, cn)
			cn.Bounds = model.ResolvedBounds{X: x, Y: parent.Bounds.Y + parent.Layout.Pad, W: w, H: h}
			x += w + parent.Layout.Gap
		}
	case model.LayoutGrid:
		cols := parent.Layout.Cols
		if cols < 1 {
			cols = 1
		}
		x := parent.Bounds.X + parent.Layout.Pad
		y := parent.Bounds.Y + parent.Layout.Pad
		col := 0
		rowHeight := 0.0
		for _, cid := range children {
			cn, ok := g.GetByID(cid)
			if !ok {
				continue
			}
			w, h := intrinsicSize(g, cn)
			cn.Bounds = model.ResolvedBounds{X: x, Y: y, W: w, H: h}
			if h > rowHeight {
				rowHeight = h
			}
			col++
			if col >= cols {
				col = 0
				x = parent.Bounds.X + parent.Layout.Pad
				y += rowHeight + parent.Layout.Gap
				rowHeight = 0
			} else {
				x += w + parent.Layout.Gap
			}
		}
	default: // LayoutFree
		for _, cid := range children {
			cn, ok := g.GetByID(cid)
			if !ok {
				continue
			}
			w, h := intrinsicSize(g, cn)
			cn.Bounds = model.ResolvedBounds{X: parent.Bounds.X, Y: parent.Bounds.Y, W: w, H: h}
		}
	}

	for _, cid := range children {
		resolveChildren(g, cid, viewport)
	}

	if parent.Kind == model.KindGroup {
		autoSizeGroup(g, nid, children)
	}
}

// autoSizeGroup sets nid's bounds to the union of its children's bounds,
// shifted by any absolute-constraint offset a child carries, matching the
// original relative-positioning rule for groups whose extent isn't
// declared explicitly.
func autoSizeGroup(g *model.SceneGraph, nid id.NodeId, children []id.NodeId) {
	parent, ok := g.GetByID(nid)
	if !ok {
		return
	}
	var union model.ResolvedBounds
	first := true
	for _, cid := range children {
		cn, ok := g.GetByID(cid)
		if !ok {
			continue
		}
		b := cn.Bounds
		for _, c := range cn.Constraints {
			if c.Kind == model.ConstraintAbsolute {
				b.X += c.X
				b.Y += c.Y
			}
		}
		if first {
			union = b
			first = false
		} else {
			union = union.Union(b)
		}
	}
	if !first {
		parent.Bounds = union
	}
}

// intrinsicSize returns a node's declared or estimated (width, height)
// before any constraint or layout-mode override is applied.
func intrinsicSize(g *model.SceneGraph, n *model.SceneNode) (float64, float64) {
	switch n.Kind {
	case model.KindRect, model.KindFrame:
		return n.W, n.H
	case model.KindEllipse:
		return n.W, n.H
	case model.KindText:
		if n.TextMetrics != nil {
			return n.TextMetrics.Width, n.TextMetrics.Height
		}
		return float64(len(n.Text)) * 8, 20
	case model.KindGroup:
		return 0, 0 // auto-sized once its children have resolved
	case model.KindPath:
		if n.W != 0 || n.H != 0 {
			return n.W, n.H
		}
		return 100, 100
	case model.KindImage:
		if n.W != 0 || n.H != 0 {
			return n.W, n.H
		}
		return 120, 80
	default:
		return 120, 40
	}
}

func resolveConstraintsTopDown(g *model.SceneGraph, nid id.NodeId, viewport Viewport) {
	n, ok := g.GetByID(nid)
	if !ok {
		return
	}
	for _, c := range n.Constraints {
		applyConstraint(g, nid, c, viewport)
	}
	for _, cid := range g.Children(nid) {
		resolveConstraintsTopDown(g, cid, viewport)
	}
}

func applyConstraint(g *model.SceneGraph, nid id.NodeId, c model.Constraint, viewport Viewport) {
	n, ok := g.GetByID(nid)
	if !ok {
		return
	}

	switch c.Kind {
	case model.ConstraintCenterIn:
		container, ok := g.EffectiveTarget(c.Target, model.ResolvedBounds{X: 0, Y: 0, W: viewport.Width, H: viewport.Height})
		if !ok {
			return
		}
		n.Bounds.X = container.X + (container.W-n.Bounds.W)/2
		n.Bounds.Y = container.Y + (container.H-n.Bounds.H)/2

	case model.ConstraintOffset:
		from, ok := g.GetByID(c.From)
		if !ok {
			return
		}
		n.Bounds.X = from.Bounds.X + c.DX
		n.Bounds.Y = from.Bounds.Y + c.DY

	case model.ConstraintFillParent:
		parentID, ok := g.ParentOf(nid)
		var parentBounds model.ResolvedBounds
		if ok {
			parent, _ := g.GetByID(parentID)
			parentBounds = parent.Bounds
		} else {
			parentBounds = model.ResolvedBounds{X: 0, Y: 0, W: viewport.Width, H: viewport.Height}
		}
		n.Bounds = model.ResolvedBounds{
			X: parentBounds.X + c.Pad,
			Y: parentBounds.Y + c.Pad,
			W: parentBounds.W - 2*c.Pad,
			H: parentBounds.H - 2*c.Pad,
		}

	case model.ConstraintAbsolute:
		px, py := 0.0, 0.0
		if parentID, ok := g.ParentOf(nid); ok {
			parent, _ := g.GetByID(parentID)
			px, py = parent.Bounds.X, parent.Bounds.Y
		}
		n.Bounds.X = px + c.X
		n.Bounds.Y = py + c.Y
	}
}
