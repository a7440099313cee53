// Package tool translates pointer input into sync.GraphMutation commands,
// one implementation per canvas drawing tool (select, rect, ellipse, pen,
// text). Tools hold only interaction state (what's being dragged, the
// in-progress node's id); the SceneGraph itself is never touched directly
// — every effect flows out as a mutation for the caller to Execute.
package tool

import (
	"math"

	"github.com/flowdesign/fd/id"
	"github.com/flowdesign/fd/model"
	"github.com/flowdesign/fd/sync"
)

// Kind names which tool is active.
type Kind int

const (
	KindSelect Kind = iota
	KindRect
	KindEllipse
	KindPen
	KindText
)

// Tool handles one InputEvent at a time and reports the mutations, if
// any, the canvas should apply in response.
type Tool interface {
	Kind() Kind
	Handle(event InputEvent, hitNode id.NodeId, hit bool) []sync.GraphMutation
}

// rootID is the parent id new shape tools add top-level nodes under.
var rootID = id.NodeId(0)

// ─── Select ──────────────────────────────────────────────────────────────

// SelectTool tracks selection and drags selected nodes.
type SelectTool struct {
	Selected []id.NodeId

	dragging bool
	lastX    float64
	lastY    float64

	MarqueeStart *[2]float64
	MarqueeRect  *[4]float64 // x, y, w, h
}

func NewSelectTool() *SelectTool { return &SelectTool{} }

func (t *SelectTool) Kind() Kind { return KindSelect }

// FirstSelected returns the primary selected node, if any.
func (t *SelectTool) FirstSelected() (id.NodeId, bool) {
	if len(t.Selected) == 0 {
		return id.NodeId(0), false
	}
	return t.Selected[0], true
}

func normalizeRect(x1, y1, x2, y2 float64) [4]float64 {
	rx, ry := math.Min(x1, x2), math.Min(y1, y2)
	rw, rh := math.Abs(x2-x1), math.Abs(y2-y1)
	return [4]float64{rx, ry, rw, rh}
}

func containsID(ids []id.NodeId, target id.NodeId) (int, bool) {
	for i, v := range ids {
		if v == target {
			return i, true
		}
	}
	return -1, false
}

func (t *SelectTool) Handle(event InputEvent, hitNode id.NodeId, hit bool) []sync.GraphMutation {
	switch event.Kind {
	case PointerDown:
		t.MarqueeStart = nil
		t.MarqueeRect = nil

		if hit {
			if event.Modifiers.Shift {
				if idx, ok := containsID(t.Selected, hitNode); ok {
					t.Selected = append(t.Selected[:idx], t.Selected[idx+1:]...)
				} else {
					t.Selected = append(t.Selected, hitNode)
				}
			} else if _, ok := containsID(t.Selected, hitNode); !ok {
				t.Selected = []id.NodeId{hitNode}
			}

			t.dragging = true
			t.lastX, t.lastY = event.X, event.Y

			if event.Modifiers.Alt && len(t.Selected) == 1 {
				return []sync.GraphMutation{{Kind: sync.MutationDuplicateNode, ID: hitNode}}
			}
			return nil
		}

		if !event.Modifiers.Shift {
			t.Selected = nil
		}
		t.dragging = false
		t.MarqueeStart = &[2]float64{event.X, event.Y}
		rect := normalizeRect(event.X, event.Y, event.X, event.Y)
		t.MarqueeRect = &rect
		return nil

	case PointerMove:
		if t.MarqueeStart != nil {
			rect := normalizeRect(t.MarqueeStart[0], t.MarqueeStart[1], event.X, event.Y)
			t.MarqueeRect = &rect
			return nil
		}

		if t.dragging && len(t.Selected) > 0 {
			dx, dy := event.X-t.lastX, event.Y-t.lastY
			t.lastX, t.lastY = event.X, event.Y

			if event.Modifiers.Shift {
				if math.Abs(dx) > math.Abs(dy) {
					dy = 0
				} else {
					dx = 0
				}
			}

			muts := make([]sync.GraphMutation, len(t.Selected))
			for i, nid := range t.Selected {
				muts[i] = sync.GraphMutation{Kind: sync.MutationMoveNode, ID: nid, DX: dx, DY: dy}
			}
			return muts
		}
		return nil

	case PointerUp:
		t.dragging = false
		return nil
	}
	return nil
}

// ─── Rect ────────────────────────────────────────────────────────────────

type RectTool struct {
	drawing   bool
	dragged   bool
	startX    float64
	startY    float64
	currentID id.NodeId
	hasID     bool
}

func NewRectTool() *RectTool { return &RectTool{} }

func (t *RectTool) Kind() Kind { return KindRect }

func (t *RectTool) Handle(event InputEvent, hitNode id.NodeId, hit bool) []sync.GraphMutation {
	switch event.Kind {
	case PointerDown:
		t.drawing, t.dragged = true, false
		t.startX, t.startY = event.X, event.Y
		t.currentID = id.Anonymous("rect")
		t.hasID = true

		node := &model.SceneNode{
			Id:          t.currentID,
			Kind:        model.KindRect,
			Constraints: []model.Constraint{model.Absolute(event.X, event.Y)},
		}
		return []sync.GraphMutation{{Kind: sync.MutationAddNode, Parent: rootID, Node: node}}

	case PointerMove:
		if t.drawing && t.hasID {
			t.dragged = true
			w, h := math.Abs(event.X-t.startX), math.Abs(event.Y-t.startY)
			if event.Modifiers.Shift {
				side := math.Max(w, h)
				w, h = side, side
			}
			return []sync.GraphMutation{{Kind: sync.MutationResizeNode, ID: t.currentID, W: w, H: h}}
		}
		return nil

	case PointerUp:
		t.drawing = false
		if !t.dragged && t.hasID {
			t.hasID = false
			return []sync.GraphMutation{{Kind: sync.MutationResizeNode, ID: t.currentID, W: 100, H: 100}}
		}
		t.hasID = false
		return nil
	}
	return nil
}

// ─── Ellipse ─────────────────────────────────────────────────────────────

type EllipseTool struct {
	drawing   bool
	dragged   bool
	startX    float64
	startY    float64
	currentID id.NodeId
	hasID     bool
}

func NewEllipseTool() *EllipseTool { return &EllipseTool{} }

func (t *EllipseTool) Kind() Kind { return KindEllipse }

func (t *EllipseTool) Handle(event InputEvent, hitNode id.NodeId, hit bool) []sync.GraphMutation {
	switch event.Kind {
	case PointerDown:
		t.drawing, t.dragged = true, false
		t.startX, t.startY = event.X, event.Y
		t.currentID = id.Anonymous("ellipse")
		t.hasID = true

		node := &model.SceneNode{
			Id:          t.currentID,
			Kind:        model.KindEllipse,
			Constraints: []model.Constraint{model.Absolute(event.X, event.Y)},
		}
		return []sync.GraphMutation{{Kind: sync.MutationAddNode, Parent: rootID, Node: node}}

	case PointerMove:
		if t.drawing && t.hasID {
			t.dragged = true
			w, h := math.Abs(event.X-t.startX), math.Abs(event.Y-t.startY)
			if event.Modifiers.Shift {
				side := math.Max(w, h)
				w, h = side, side
			}
			return []sync.GraphMutation{{Kind: sync.MutationResizeNode, ID: t.currentID, W: w, H: h}}
		}
		return nil

	case PointerUp:
		t.drawing = false
		if !t.dragged && t.hasID {
			t.hasID = false
			return []sync.GraphMutation{{Kind: sync.MutationResizeNode, ID: t.currentID, W: 100, H: 100}}
		}
		t.hasID = false
		return nil
	}
	return nil
}

// ─── Pen ─────────────────────────────────────────────────────────────────

// PenTool collects raw pointer samples while drawing and, on release,
// smooths them into a Catmull-Rom-derived cubic bezier spline.
type PenTool struct {
	drawing   bool
	points    [][2]float64
	currentID id.NodeId
	hasID     bool
}

func NewPenTool() *PenTool { return &PenTool{} }

func (t *PenTool) Kind() Kind { return KindPen }

func (t *PenTool) Handle(event InputEvent, hitNode id.NodeId, hit bool) []sync.GraphMutation {
	switch event.Kind {
	case PointerDown:
		t.drawing = true
		t.points = t.points[:0]
		t.points = append(t.points, [2]float64{event.X, event.Y})
		t.currentID = id.Anonymous("path")
		t.hasID = true

		node := &model.SceneNode{
			Id:   t.currentID,
			Kind: model.KindPath,
			Path: []model.PathCmd{{Kind: model.CmdMove, X: event.X, Y: event.Y}},
		}
		return []sync.GraphMutation{{Kind: sync.MutationAddNode, Parent: rootID, Node: node}}

	case PointerMove:
		if t.drawing && t.hasID {
			t.points = append(t.points, [2]float64{event.X, event.Y})
			return []sync.GraphMutation{{Kind: sync.MutationUpdatePath, ID: t.currentID, Path: rawPointsToLineTo(t.points)}}
		}
		return nil

	case PointerUp:
		t.drawing = false
		if t.hasID {
			t.hasID = false
			cmds := pointsToSmoothBezier(t.points)
			t.points = t.points[:0]
			return []sync.GraphMutation{{Kind: sync.MutationUpdatePath, ID: t.currentID, Path: cmds}}
		}
		t.points = t.points[:0]
		return nil
	}
	return nil
}

func rawPointsToLineTo(points [][2]float64) []model.PathCmd {
	if len(points) == 0 {
		return nil
	}
	cmds := make([]model.PathCmd, 0, len(points))
	cmds = append(cmds, model.PathCmd{Kind: model.CmdMove, X: points[0][0], Y: points[0][1]})
	for _, p := range points[1:] {
		cmds = append(cmds, model.PathCmd{Kind: model.CmdLine, X: p[0], Y: p[1]})
	}
	return cmds
}

// pointsToSmoothBezier converts raw pointer samples into a C1-continuous
// cubic bezier spline via Catmull-Rom control-point derivation (tension
// fixed at the classic 1/6), after first thinning the sample down to at
// most 64 points so the emitted path commands stay a reasonable size.
func pointsToSmoothBezier(points [][2]float64) []model.PathCmd {
	if len(points) < 2 {
		return rawPointsToLineTo(points)
	}
	if len(points) == 2 {
		return []model.PathCmd{
			{Kind: model.CmdMove, X: points[0][0], Y: points[0][1]},
			{Kind: model.CmdLine, X: points[1][0], Y: points[1][1]},
		}
	}

	pts := subsamplePoints(points, 64)
	n := len(pts)
	cmds := make([]model.PathCmd, 0, n)
	cmds = append(cmds, model.PathCmd{Kind: model.CmdMove, X: pts[0][0], Y: pts[0][1]})

	for i := 0; i < n-1; i++ {
		p0 := pts[0]
		if i > 0 {
			p0 = pts[i-1]
		}
		p1 := pts[i]
		p2 := pts[i+1]
		p3 := pts[n-1]
		if i+2 < n {
			p3 = pts[i+2]
		}

		c1x := p1[0] + (p2[0]-p0[0])/6
		c1y := p1[1] + (p2[1]-p0[1])/6
		c2x := p2[0] - (p3[0]-p1[0])/6
		c2y := p2[1] - (p3[1]-p1[1])/6

		cmds = append(cmds, model.PathCmd{
			Kind: model.CmdCubic,
			CX1:  c1x, CY1: c1y,
			CX2: c2x, CY2: c2y,
			X: p2[0], Y: p2[1],
		})
	}
	return cmds
}

// subsamplePoints reduces pts to at most maxPts evenly-spaced samples,
// keeping generated path commands concise for long strokes.
func subsamplePoints(pts [][2]float64, maxPts int) [][2]float64 {
	if len(pts) <= maxPts {
		return pts
	}
	step := float64(len(pts)) / float64(maxPts)
	out := make([][2]float64, maxPts)
	for i := 0; i < maxPts; i++ {
		idx := int(math.Round(float64(i) * step))
		if idx >= len(pts) {
			idx = len(pts) - 1
		}
		out[i] = pts[idx]
	}
	return out
}

// ─── Text ────────────────────────────────────────────────────────────────

// TextTool places one text node per press-release cycle; a second press
// before release is a no-op so a held pointer can't stamp duplicates.
type TextTool struct {
	placed bool
}

func NewTextTool() *TextTool { return &TextTool{} }

func (t *TextTool) Kind() Kind { return KindText }

func (t *TextTool) Handle(event InputEvent, hitNode id.NodeId, hit bool) []sync.GraphMutation {
	switch event.Kind {
	case PointerDown:
		if t.placed {
			return nil
		}
		t.placed = true
		nid := id.Anonymous("text")
		node := &model.SceneNode{
			Id:          nid,
			Kind:        model.KindText,
			Text:        "Text",
			Constraints: []model.Constraint{model.Absolute(event.X, event.Y)},
		}
		return []sync.GraphMutation{{Kind: sync.MutationAddNode, Parent: rootID, Node: node}}

	case PointerUp:
		t.placed = false
		return nil
	}
	return nil
}
