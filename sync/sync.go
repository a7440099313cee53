// Package sync is the bidirectional sync engine: it holds the
// authoritative SceneGraph, applies canvas-originated mutations to it,
// and keeps a canonical text representation in sync on demand.
package sync

import (
	"math"

	"github.com/flowdesign/fd/emitter"
	"github.com/flowdesign/fd/id"
	"github.com/flowdesign/fd/layout"
	"github.com/flowdesign/fd/model"
	"github.com/flowdesign/fd/parser"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Engine holds the graph/text/bounds triple and the dirty flags that
// decide when each needs to be refreshed from the others.
type Engine struct {
	Graph    *model.SceneGraph
	Text     string
	Viewport layout.Viewport

	textDirty bool
}

// FromText parses text into a new Engine, resolving layout immediately.
func FromText(text string, viewport layout.Viewport) (*Engine, error) {
	g, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	layout.Resolve(g, viewport)
	return &Engine{Graph: g, Text: emitter.Emit(g), Viewport: viewport}, nil
}

// New creates an Engine over an empty document.
func New(viewport layout.Viewport) *Engine {
	g := model.NewSceneGraph()
	layout.Resolve(g, viewport)
	return &Engine{Graph: g, Text: emitter.Emit(g), Viewport: viewport}
}

// MutationKind selects which edit a GraphMutation carries. Only the
// GraphMutation fields used by that kind are meaningful.
type MutationKind int

const (
	MutationMoveNode MutationKind = iota
	MutationResizeNode
	MutationAddNode
	MutationRemoveNode
	MutationSetStyle
	MutationSetText
	MutationSetAnnotations
	MutationDuplicateNode
	MutationUpdatePath
	MutationGroupNodes
	MutationUngroupNode
	MutationSetAnimations
	MutationAddEdge
	MutationRemoveEdge
)

type GraphMutation struct {
	Kind MutationKind

	ID     id.NodeId   // most mutations
	DX, DY float64     // MoveNode
	W, H   float64     // ResizeNode
	Parent id.NodeId   // AddNode
	Node   *model.SceneNode // AddNode
	Style  model.Style // SetStyle
	Text   string      // SetText
	Annotations []model.Annotation // SetAnnotations
	Path   []model.PathCmd        // UpdatePath
	IDs    []id.NodeId            // GroupNodes
	NewGroupID id.NodeId          // GroupNodes
	Animations []model.Animation  // SetAnimations
	Edge   model.Edge             // AddEdge
}

// Apply applies mutation to e.Graph, marking text dirty. This is the hot
// path during drag/draw interactions — it never re-emits text itself;
// call FlushToText once a gesture ends.
func (e *Engine) Apply(m GraphMutation) {
	switch m.Kind {
	case MutationMoveNode:
		e.moveNode(m.ID, m.DX, m.DY)
	case MutationResizeNode:
		e.resizeNode(m.ID, m.W, m.H)
	case MutationAddNode:
		if m.Node != nil {
			e.Graph.AddNode(m.Parent, m.Node)
		}
	case MutationRemoveNode:
		e.Graph.RemoveNode(m.ID)
	case MutationSetStyle:
		if n, ok := e.Graph.GetByID(m.ID); ok {
			n.Style = m.Style
		}
	case MutationSetText:
		if n, ok := e.Graph.GetByID(m.ID); ok && n.Kind == model.KindText {
			n.Text = m.Text
		}
	case MutationSetAnnotations:
		if n, ok := e.Graph.GetByID(m.ID); ok {
			n.Annotations = m.Annotations
		}
	case MutationDuplicateNode:
		e.duplicateNode(m.ID)
	case MutationUpdatePath:
		if n, ok := e.Graph.GetByID(m.ID); ok && n.Kind == model.KindPath {
			n.Path = m.Path
		}
	case MutationGroupNodes:
		e.groupNodes(m.IDs, m.NewGroupID)
	case MutationUngroupNode:
		e.ungroupNode(m.ID)
	case MutationSetAnimations:
		if n, ok := e.Graph.GetByID(m.ID); ok {
			n.Animations = m.Animations
		}
	case MutationAddEdge:
		e.Graph.AddEdge(m.Edge)
	case MutationRemoveEdge:
		e.Graph.RemoveEdge(m.ID)
	}
	e.textDirty = true
}

// moveNode strips every positional constraint from nid and pins it to an
// Absolute constraint holding its new parent-relative offset, so a dragged
// node stays where it was dropped instead of snapping back to e.g. a
// center_in rule.
func (e *Engine) moveNode(nid id.NodeId, dx, dy float64) {
	n, ok := e.Graph.GetByID(nid)
	if !ok {
		return
	}
	n.Bounds.X += dx
	n.Bounds.Y += dy

	px, py := 0.0, 0.0
	if parentID, ok := e.Graph.ParentOf(nid); ok {
		if parent, ok := e.Graph.GetByID(parentID); ok {
			px, py = parent.Bounds.X, parent.Bounds.Y
		}
	}
	relX, relY := n.Bounds.X-px, n.Bounds.Y-py

	kept := n.Constraints[:0]
	for _, c := range n.Constraints {
		if !c.IsPositional() {
			kept = append(kept, c)
		}
	}
	n.Constraints = append(kept, model.Absolute(relX, relY))
}

func (e *Engine) resizeNode(nid id.NodeId, w, h float64) {
	n, ok := e.Graph.GetByID(nid)
	if !ok {
		return
	}
	switch n.Kind {
	case model.KindRect, model.KindFrame, model.KindEllipse, model.KindImage:
		n.W, n.H = w, h
	}
}

func (e *Engine) duplicateNode(nid id.NodeId) {
	original, ok := e.Graph.GetByID(nid)
	if !ok {
		return
	}
	cloned := *original
	cloned.Id = id.Anonymous(cloned.Kind.String())
	cloned.Children = nil
	cloned.Constraints = append(append([]model.Constraint(nil), original.Constraints...), model.Offset(nid, 20, 20))
	e.Graph.AddNode(id.NodeId(0), &cloned)
}

func (e *Engine) groupNodes(ids []id.NodeId, newGroupID id.NodeId) {
	if len(ids) == 0 {
		return
	}
	if _, ok := e.Graph.GetByID(ids[0]); !ok {
		return
	}
	parentID, hasParent := e.Graph.ParentOf(ids[0])

	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64
	for _, nid := range ids {
		n, ok := e.Graph.GetByID(nid)
		if !ok {
			continue
		}
		minX = math.Min(minX, n.Bounds.X)
		minY = math.Min(minY, n.Bounds.Y)
		maxX = math.Max(maxX, n.Bounds.Right())
		maxY = math.Max(maxY, n.Bounds.Bottom())
	}

	px, py := 0.0, 0.0
	if hasParent {
		if parent, ok := e.Graph.GetByID(parentID); ok {
			px, py = parent.Bounds.X, parent.Bounds.Y
		}
	}
	relX, relY := minX-px, minY-py

	group := &model.SceneNode{
		Id:          newGroupID,
		Kind:        model.KindGroup,
		Layout:      model.FreeLayout,
		Constraints: []model.Constraint{model.Absolute(relX, relY)},
		Bounds:      model.ResolvedBounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY},
	}
	parent := id.NodeId(0)
	if hasParent {
		parent = parentID
	}
	if err := e.Graph.AddNode(parent, group); err != nil {
		return
	}

	for _, nid := range ids {
		e.Graph.Reparent(nid, newGroupID, -1)
		if n, ok := e.Graph.GetByID(nid); ok {
			for i, c := range n.Constraints {
				if c.Kind == model.ConstraintAbsolute {
					n.Constraints[i].X -= relX
					n.Constraints[i].Y -= relY
				}
			}
		}
	}
}

func (e *Engine) ungroupNode(groupID id.NodeId) {
	group, ok := e.Graph.GetByID(groupID)
	if !ok {
		return
	}
	parentID, hasParent := e.Graph.ParentOf(groupID)

	groupRelX, groupRelY := 0.0, 0.0
	for _, c := range group.Constraints {
		if c.Kind == model.ConstraintAbsolute {
			groupRelX, groupRelY = c.X, c.Y
		}
	}

	children := append([]id.NodeId(nil), e.Graph.Children(groupID)...)
	for _, cid := range children {
		newParent := id.NodeId(0)
		if hasParent {
			newParent = parentID
		}
		e.Graph.Reparent(cid, newParent, -1)
		if cn, ok := e.Graph.GetByID(cid); ok {
			for i, c := range cn.Constraints {
				if c.Kind == model.ConstraintAbsolute {
					cn.Constraints[i].X += groupRelX
					cn.Constraints[i].Y += groupRelY
				}
			}
		}
	}
	e.Graph.RemoveNode(groupID)
}

// FlushToText re-emits Text from the current graph if it is dirty.
func (e *Engine) FlushToText() string {
	if e.textDirty {
		e.Text = emitter.Emit(e.Graph)
		e.textDirty = false
	}
	return e.Text
}

// Resolve recomputes every node's Bounds. Needed after a batch of
// mutations since Apply does not itself keep downstream bounds (e.g. an
// auto-sized group's ancestors) up to date.
func (e *Engine) Resolve() {
	layout.Resolve(e.Graph, e.Viewport)
}

// SetText replaces the document text wholesale and re-parses it,
// discarding the current graph. Used when an editor delivers a full
// document update rather than an incremental range.
func (e *Engine) SetText(text string) error {
	g, err := parser.Parse(text)
	if err != nil {
		return err
	}
	e.Graph = g
	layout.Resolve(e.Graph, e.Viewport)
	e.Text = text
	e.textDirty = false
	return nil
}

// HitTest returns the top-most leaf whose resolved bounds contain (x, y),
// searching in reverse document order so later (visually on-top) siblings
// win ties. A sibling whose bounds contain the point is only returned once
// none of its own descendants also match, so a containing group never
// shadows the leaf actually under the cursor.
func (e *Engine) HitTest(x, y float64) (id.NodeId, bool) {
	var found id.NodeId
	var ok bool
	var walk func(id.NodeId)
	walk = func(nid id.NodeId) {
		children := e.Graph.Children(nid)
		for i := len(children) - 1; i >= 0; i-- {
			cid := children[i]
			n, exists := e.Graph.GetByID(cid)
			if !exists {
				continue
			}
			walk(cid)
			if ok {
				return
			}
			if n.Bounds.Contains(x, y) {
				found, ok = cid, true
				return
			}
		}
	}
	walk(id.NodeId(0))
	return found, ok
}

// easeFunc maps a keyframe's Easing to the gween curve function it names.
func easeFunc(e model.Easing) ease.TweenFunc {
	switch e {
	case model.EaseLinear:
		return ease.Linear
	case model.EaseInQuad:
		return ease.InQuad
	case model.EaseOutQuad:
		return ease.OutQuad
	case model.EaseInOutQuad:
		return ease.InOutQuad
	case model.EaseInCubic:
		return ease.InCubic
	case model.EaseOutCubic:
		return ease.OutCubic
	default:
		return ease.InOutCubic
	}
}

// EaseValue shapes linear progress (as produced by a keyframe timeline)
// through the keyframe's named easing curve, using a one-shot gween.Tween
// rather than raw ease-function calls so a future caller driving this from
// a real per-frame clock only has to keep the *gween.Tween around and call
// Update per tick instead of recomputing progress itself.
func EaseValue(k model.AnimKeyframe, progress float64) float64 {
	tw := gween.New(0, 1, 1, easeFunc(k.Easing))
	v, _ := tw.Update(float32(progress))
	return float64(v)
}
