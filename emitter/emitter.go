// Package emitter renders a SceneGraph back to FD document text. Emission
// is canonical: formatting the output of a previous emission reproduces it
// byte for byte, and re-parsing emitted text round-trips the graph.
package emitter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/flowdesign/fd/id"
	"github.com/flowdesign/fd/model"
)

// Emit renders g as FD document text: imports, then styles sorted by name,
// then root nodes in emit order (recursively), then every node's
// constraints, then edges.
func Emit(g *model.SceneGraph) string {
	var b strings.Builder

	for _, imp := range g.Imports() {
		b.WriteString("import ")
		b.WriteString(quote(imp.Path))
		if imp.Namespace != "" {
			b.WriteString(" as ")
			b.WriteString(imp.Namespace)
		}
		b.WriteByte('\n')
	}
	if len(g.Imports()) > 0 {
		b.WriteByte('\n')
	}

	names := append([]string(nil), g.StyleNames()...)
	sort.Strings(names)
	for _, name := range names {
		s, ok := g.Style(name)
		if !ok {
			continue
		}
		emitStyleBlock(&b, name, s)
		b.WriteByte('\n')
	}

	for _, rid := range g.EmitOrder(id.NodeId(0)) {
		emitNode(&b, g, rid, 0)
		b.WriteByte('\n')
	}

	emitConstraints(&b, g)

	for _, eid := range g.Edges() {
		e, ok := g.GetEdge(eid)
		if !ok {
			continue
		}
		emitEdgeBlock(&b, *e, 0)
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// quote wraps s in double quotes. The parser's string literal has no
// escape syntax, so this mirrors it exactly rather than using Go's quoting
// rules.
func quote(s string) string {
	return `"` + s + `"`
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func emitStyleBlock(b *strings.Builder, name string, s model.Style) {
	b.WriteString("style ")
	b.WriteString(name)
	b.WriteString(" {\n")
	emitStyleProps(b, s, 1)
	emitAlignProps(b, s, 1)
	b.WriteString("}\n")
}

// emitStyleProps writes the shared subset of style properties in the
// canonical order: fill, stroke, corner, font, opacity, shadow. Text
// alignment is written separately by emitAlignProps, since a node body
// places it after label while a style block has no such constraint.
func emitStyleProps(b *strings.Builder, s model.Style, depth int) {
	if s.Fill != nil {
		indent(b, depth)
		b.WriteString("fill: ")
		b.WriteString(emitPaint(*s.Fill))
		b.WriteByte('\n')
	}
	if s.Stroke != nil {
		indent(b, depth)
		b.WriteString("stroke: ")
		b.WriteString(emitStroke(*s.Stroke))
		b.WriteByte('\n')
	}
	if s.CornerRadius != nil {
		indent(b, depth)
		b.WriteString("corner: ")
		b.WriteString(formatNum(*s.CornerRadius))
		b.WriteByte('\n')
	}
	if s.Font != nil {
		indent(b, depth)
		b.WriteString("font: ")
		b.WriteString(emitFont(*s.Font))
		b.WriteByte('\n')
	}
	if s.Opacity != nil {
		indent(b, depth)
		b.WriteString("opacity: ")
		b.WriteString(formatNum(*s.Opacity))
		b.WriteByte('\n')
	}
	if s.Shadow != nil {
		indent(b, depth)
		b.WriteString("shadow: ")
		b.WriteString(emitShadow(*s.Shadow))
		b.WriteByte('\n')
	}
}

// emitAlignProps writes the text_align/text_valign properties. Kept apart
// from emitStyleProps so a node body can place them after label per the
// grammar's fixed property order, while a style block emits them right
// after the rest of its properties.
func emitAlignProps(b *strings.Builder, s model.Style, depth int) {
	if s.TextAlign != nil {
		indent(b, depth)
		b.WriteString("text_align: ")
		b.WriteString(emitTextAlign(*s.TextAlign))
		b.WriteByte('\n')
	}
	if s.TextVAlign != nil {
		indent(b, depth)
		b.WriteString("text_valign: ")
		b.WriteString(emitTextVAlign(*s.TextVAlign))
		b.WriteByte('\n')
	}
}

func emitPaint(p model.Paint) string {
	switch p.Kind {
	case model.PaintLinearGradient:
		var sb strings.Builder
		sb.WriteString("linear(")
		sb.WriteString(formatNum(p.Angle))
		sb.WriteString("deg")
		for _, st := range p.Stops {
			sb.WriteString(", ")
			sb.WriteString(st.Color.ToHex())
			sb.WriteByte(' ')
			sb.WriteString(formatNum(st.Offset))
		}
		sb.WriteByte(')')
		return sb.String()
	case model.PaintRadialGradient:
		var sb strings.Builder
		sb.WriteString("radial(")
		for i, st := range p.Stops {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(st.Color.ToHex())
			sb.WriteByte(' ')
			sb.WriteString(formatNum(st.Offset))
		}
		sb.WriteByte(')')
		return sb.String()
	default:
		return p.Solid.ToHex()
	}
}

func emitStroke(s model.Stroke) string {
	var sb strings.Builder
	sb.WriteString(emitPaint(s.Paint))
	sb.WriteByte(' ')
	sb.WriteString(formatNum(s.Width))
	return sb.String()
}

func emitFont(f model.FontSpec) string {
	var sb strings.Builder
	sb.WriteString(quote(f.Family))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(f.Weight))
	sb.WriteByte(' ')
	sb.WriteString(formatNum(f.Size))
	return sb.String()
}

func emitShadow(s model.Shadow) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(formatNum(s.OffsetX))
	sb.WriteString(", ")
	sb.WriteString(formatNum(s.OffsetY))
	sb.WriteString(", ")
	sb.WriteString(formatNum(s.Blur))
	sb.WriteString(", ")
	sb.WriteString(s.Color.ToHex())
	sb.WriteByte(')')
	return sb.String()
}

func emitTextAlign(a model.TextAlign) string {
	switch a {
	case model.AlignCenter:
		return "center"
	case model.AlignEnd:
		return "end"
	default:
		return "start"
	}
}

func emitTextVAlign(v model.TextVAlign) string {
	switch v {
	case model.VAlignMiddle:
		return "middle"
	case model.VAlignBottom:
		return "bottom"
	default:
		return "top"
	}
}

// formatNum renders a float as an integer literal when it has no
// fractional part, otherwise rounded to two decimal places with trailing
// zeros and then any trailing decimal point trimmed.
func formatNum(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
