package emitter

import (
	"strings"

	"github.com/flowdesign/fd/id"
	"github.com/flowdesign/fd/model"
)

// emitNode writes n and its subtree at depth. Property order mirrors the
// document grammar: annotations, layout mode, dimensions, clip, use refs,
// inline style, label, text alignment, children, animations.
func emitNode(b *strings.Builder, g *model.SceneGraph, nid id.NodeId, depth int) {
	n, ok := g.GetByID(nid)
	if !ok {
		return
	}

	indent(b, depth)
	b.WriteString(n.Kind.String())
	if !id.IsAnonymous(nid) {
		b.WriteString(" @")
		b.WriteString(id.Resolve(nid))
	}
	if n.Kind == model.KindText && n.Text != "" {
		b.WriteByte(' ')
		b.WriteString(quote(n.Text))
	}
	if n.Kind == model.KindImage && n.Src != "" {
		b.WriteByte(' ')
		b.WriteString(quote(n.Src))
	}
	b.WriteString(" {\n")

	emitAnnotations(b, n.Annotations, depth+1)

	if n.Layout.Kind != model.LayoutFree {
		indent(b, depth+1)
		b.WriteString("layout: ")
		b.WriteString(emitLayoutMode(n.Layout))
		b.WriteByte('\n')
	}

	if n.W != 0 {
		indent(b, depth+1)
		b.WriteString("w: ")
		b.WriteString(formatNum(n.W))
		b.WriteByte('\n')
	}
	if n.H != 0 {
		indent(b, depth+1)
		b.WriteString("h: ")
		b.WriteString(formatNum(n.H))
		b.WriteByte('\n')
	}

	if n.Clip {
		indent(b, depth+1)
		b.WriteString("clip: true\n")
	}

	for _, ref := range n.UseStyles {
		indent(b, depth+1)
		b.WriteString("use: ")
		b.WriteString(ref)
		b.WriteByte('\n')
	}

	emitStyleProps(b, n.Style, depth+1)

	if n.Label != "" {
		indent(b, depth+1)
		b.WriteString("label: ")
		b.WriteString(quote(n.Label))
		b.WriteByte('\n')
	}

	emitAlignProps(b, n.Style, depth+1)

	for _, cid := range g.EmitOrder(nid) {
		emitNode(b, g, cid, depth+1)
	}

	for _, anim := range n.Animations {
		emitAnimBlock(b, anim, depth+1)
	}

	indent(b, depth)
	b.WriteString("}\n")
}

func emitLayoutMode(l model.LayoutMode) string {
	var sb strings.Builder
	switch l.Kind {
	case model.LayoutColumn:
		sb.WriteString("column")
	case model.LayoutRow:
		sb.WriteString("row")
	case model.LayoutGrid:
		sb.WriteString("grid")
	default:
		return "free"
	}
	if l.Kind == model.LayoutGrid {
		sb.WriteString(" cols=")
		sb.WriteString(formatNum(float64(l.Cols)))
	}
	sb.WriteString(" gap=")
	sb.WriteString(formatNum(l.Gap))
	sb.WriteString(" pad=")
	sb.WriteString(formatNum(l.Pad))
	return sb.String()
}

// emitAnnotations writes anns as a `spec "…"` shorthand when it holds
// exactly one plain Description, otherwise as a `spec { … }` block with one
// line per entry, matching the grammar's annotation production.
func emitAnnotations(b *strings.Builder, anns []model.Annotation, depth int) {
	if len(anns) == 0 {
		return
	}
	if len(anns) == 1 && anns[0].Kind == model.AnnotationDescription {
		indent(b, depth)
		b.WriteString("spec ")
		b.WriteString(quote(anns[0].Value))
		b.WriteByte('\n')
		return
	}
	indent(b, depth)
	b.WriteString("spec {\n")
	for _, a := range anns {
		indent(b, depth+1)
		switch a.Kind {
		case model.AnnotationAccept:
			b.WriteString("accept: ")
			b.WriteString(quote(a.Value))
		case model.AnnotationStatus:
			b.WriteString("status: ")
			b.WriteString(a.Value)
		case model.AnnotationPriority:
			b.WriteString("priority: ")
			b.WriteString(a.Value)
		case model.AnnotationTag:
			b.WriteString("tag: ")
			b.WriteString(a.Value)
		default:
			b.WriteString(quote(a.Value))
		}
		b.WriteByte('\n')
	}
	indent(b, depth)
	b.WriteString("}\n")
}

func emitAnimBlock(b *strings.Builder, a model.Animation, depth int) {
	indent(b, depth)
	b.WriteString("anim :")
	b.WriteString(emitTrigger(a.Trigger))
	b.WriteString(" {\n")
	if len(a.Keyframes) > 0 {
		kf := a.Keyframes[len(a.Keyframes)-1]
		if kf.Properties.Fill != nil {
			indent(b, depth+1)
			b.WriteString("fill: ")
			b.WriteString(emitPaint(*kf.Properties.Fill))
			b.WriteByte('\n')
		}
		if kf.Properties.Opacity != nil {
			indent(b, depth+1)
			b.WriteString("opacity: ")
			b.WriteString(formatNum(*kf.Properties.Opacity))
			b.WriteByte('\n')
		}
		if kf.Properties.Scale != nil {
			indent(b, depth+1)
			b.WriteString("scale: ")
			b.WriteString(formatNum(*kf.Properties.Scale))
			b.WriteByte('\n')
		}
		indent(b, depth+1)
		b.WriteString("ease: ")
		b.WriteString(emitEasing(kf.Easing))
		b.WriteByte(' ')
		b.WriteString(formatNum(kf.T * 1000))
		b.WriteString("ms\n")
	}
	indent(b, depth)
	b.WriteString("}\n")
}

func emitTrigger(t model.AnimTrigger) string {
	switch t {
	case model.TriggerPress:
		return "press"
	case model.TriggerFocus:
		return "focus"
	case model.TriggerOpen:
		return "open"
	default:
		return "hover"
	}
}

func emitEasing(e model.Easing) string {
	switch e {
	case model.EaseLinear:
		return "linear"
	case model.EaseInCubic, model.EaseInQuad:
		return "ease_in"
	case model.EaseOutCubic, model.EaseOutQuad:
		return "ease_out"
	default:
		return "ease_in_out"
	}
}
