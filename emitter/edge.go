package emitter

import (
	"strings"

	"github.com/flowdesign/fd/id"
	"github.com/flowdesign/fd/model"
)

// emitConstraints writes one `@id -> kind: args` line per constraint, over
// every node in document order, after all node blocks and before edges.
func emitConstraints(b *strings.Builder, g *model.SceneGraph) {
	var walk func(id.NodeId)
	walk = func(nid id.NodeId) {
		n, ok := g.GetByID(nid)
		if !ok {
			return
		}
		for _, c := range n.Constraints {
			emitConstraintLine(b, nid, c)
		}
		for _, cid := range g.EmitOrder(nid) {
			walk(cid)
		}
	}
	for _, rid := range g.EmitOrder(id.NodeId(0)) {
		walk(rid)
	}
}

func emitConstraintLine(b *strings.Builder, nid id.NodeId, c model.Constraint) {
	b.WriteByte('@')
	b.WriteString(id.Resolve(nid))
	b.WriteString(" -> ")
	switch c.Kind {
	case model.ConstraintCenterIn:
		b.WriteString("center_in: ")
		b.WriteString(id.Resolve(c.Target))
	case model.ConstraintOffset:
		b.WriteString("offset: @")
		b.WriteString(id.Resolve(c.From))
		b.WriteByte(' ')
		b.WriteString(formatNum(c.DX))
		b.WriteString(", ")
		b.WriteString(formatNum(c.DY))
	case model.ConstraintFillParent:
		b.WriteString("fill_parent: ")
		b.WriteString(formatNum(c.Pad))
	case model.ConstraintAbsolute:
		b.WriteString("absolute: ")
		b.WriteString(formatNum(c.X))
		b.WriteString(", ")
		b.WriteString(formatNum(c.Y))
	}
	b.WriteByte('\n')
}

func emitEdgeBlock(b *strings.Builder, e model.Edge, depth int) {
	indent(b, depth)
	b.WriteString("edge")
	if !id.IsAnonymous(e.Id) {
		b.WriteString(" @")
		b.WriteString(id.Resolve(e.Id))
	}
	b.WriteString(" {\n")

	emitAnnotations(b, e.Annotations, depth+1)

	indent(b, depth+1)
	b.WriteString("from: ")
	b.WriteString(emitEdgeAnchor(e.From))
	b.WriteByte('\n')

	indent(b, depth+1)
	b.WriteString("to: ")
	b.WriteString(emitEdgeAnchor(e.To))
	b.WriteByte('\n')

	if e.Curve != model.CurveStraight {
		indent(b, depth+1)
		b.WriteString("curve: ")
		b.WriteString(emitCurveKind(e.Curve))
		b.WriteByte('\n')
	}

	if e.End != model.ArrowNone {
		indent(b, depth+1)
		b.WriteString("arrow: ")
		b.WriteString(emitArrowKind(e.End))
		b.WriteByte('\n')
	}

	if e.Stroke != nil {
		indent(b, depth+1)
		b.WriteString("stroke: ")
		b.WriteString(emitStroke(*e.Stroke))
		b.WriteByte('\n')
	}

	for _, ref := range e.UseStyles {
		indent(b, depth+1)
		b.WriteString("use: ")
		b.WriteString(ref)
		b.WriteByte('\n')
	}

	if e.Label != "" {
		indent(b, depth+1)
		b.WriteString("label: ")
		b.WriteString(quote(e.Label))
		b.WriteByte('\n')
	}

	indent(b, depth)
	b.WriteString("}\n")
}

func emitEdgeAnchor(a model.EdgeAnchor) string {
	if a.Kind == model.AnchorPoint {
		return "(" + formatNum(a.X) + ", " + formatNum(a.Y) + ")"
	}
	return "@" + id.Resolve(a.Node)
}

func emitArrowKind(k model.ArrowKind) string {
	switch k {
	case model.ArrowOpen:
		return "open"
	case model.ArrowFilled:
		return "filled"
	case model.ArrowDiamond:
		return "diamond"
	default:
		return "none"
	}
}

func emitCurveKind(k model.CurveKind) string {
	switch k {
	case model.CurveOrthogonal:
		return "orthogonal"
	case model.CurveBezier:
		return "bezier"
	default:
		return "straight"
	}
}
