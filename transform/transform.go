// Package transform holds in-place SceneGraph passes that the format
// pipeline composes before final emission: deduplicating use_styles,
// hoisting repeated inline styles into shared style blocks, and sorting
// sibling nodes by kind.
package transform

import (
	"fmt"

	"github.com/flowdesign/fd/id"
	"github.com/flowdesign/fd/model"
)

// DedupUseStyles removes duplicate use_styles entries from every node and
// edge in g, preserving first occurrence and relative order.
func DedupUseStyles(g *model.SceneGraph) {
	var walk func(id.NodeId)
	walk = func(nid id.NodeId) {
		if nid.IsValid() {
			if n, ok := g.GetByID(nid); ok {
				n.UseStyles = dedupStrings(n.UseStyles)
			}
		}
		for _, cid := range g.Children(nid) {
			walk(cid)
		}
	}
	walk(id.NodeId(0))

	for _, eid := range g.Edges() {
		if e, ok := g.GetEdge(eid); ok {
			e.UseStyles = dedupStrings(e.UseStyles)
		}
	}
}

func dedupStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// HoistStyles promotes any inline style shared verbatim by two or more
// nodes into a new top-level `_auto_N` style, replacing each node's inline
// style with a use_styles reference. Structurally destructive (introduces
// new style names and clears inline fields), so the format pipeline only
// runs it when a caller opts in.
func HoistStyles(g *model.SceneGraph) {
	type group struct {
		ids   []id.NodeId
		style model.Style
	}
	byFingerprint := make(map[string]*group)
	var order []string

	var walk func(id.NodeId)
	walk = func(nid id.NodeId) {
		if nid.IsValid() {
			if n, ok := g.GetByID(nid); ok && !isStyleEmpty(n.Style) {
				fp := styleFingerprint(n.Style)
				grp, exists := byFingerprint[fp]
				if !exists {
					grp = &group{style: n.Style}
					byFingerprint[fp] = grp
					order = append(order, fp)
				}
				grp.ids = append(grp.ids, nid)
			}
		}
		for _, cid := range g.Children(nid) {
			walk(cid)
		}
	}
	walk(id.NodeId(0))

	counter := 0
	for _, fp := range order {
		grp := byFingerprint[fp]
		if len(grp.ids) < 2 {
			continue
		}
		counter++
		name := fmt.Sprintf("_auto_%d", counter)
		g.DefineStyle(name, grp.style)

		for _, nid := range grp.ids {
			n, ok := g.GetByID(nid)
			if !ok {
				continue
			}
			n.Style = model.Style{}
			if !containsString(n.UseStyles, name) {
				n.UseStyles = append([]string{name}, n.UseStyles...)
			}
		}
	}
}

func containsString(in []string, s string) bool {
	for _, v := range in {
		if v == s {
			return true
		}
	}
	return false
}

func isStyleEmpty(s model.Style) bool {
	return s.Fill == nil && s.Stroke == nil && s.Font == nil &&
		s.CornerRadius == nil && s.Opacity == nil && s.Shadow == nil
}

// styleFingerprint is a deterministic string key for a Style, used to
// find nodes sharing an identical inline style during hoisting. Every
// Style field takes part, since hoisting clears the whole inline style.
func styleFingerprint(s model.Style) string {
	out := ""
	if s.Scale != nil {
		out += fmt.Sprintf("scale=%v|", *s.Scale)
	}
	if s.TextAlign != nil {
		out += fmt.Sprintf("align=%d|", *s.TextAlign)
	}
	if s.TextVAlign != nil {
		out += fmt.Sprintf("valign=%d|", *s.TextVAlign)
	}
	if s.Fill != nil {
		out += "fill=" + paintKey(*s.Fill) + "|"
	}
	if s.Stroke != nil {
		out += fmt.Sprintf("stroke=%s,%v|", paintKey(s.Stroke.Paint), s.Stroke.Width)
	}
	if s.Font != nil {
		out += fmt.Sprintf("font=%s,%d,%v|", s.Font.Family, s.Font.Weight, s.Font.Size)
	}
	if s.CornerRadius != nil {
		out += fmt.Sprintf("corner=%v|", *s.CornerRadius)
	}
	if s.Opacity != nil {
		out += fmt.Sprintf("opacity=%v|", *s.Opacity)
	}
	if s.Shadow != nil {
		out += fmt.Sprintf("shadow=%v,%v,%v,%s|", s.Shadow.OffsetX, s.Shadow.OffsetY, s.Shadow.Blur, s.Shadow.Color.ToHex())
	}
	return out
}

func paintKey(p model.Paint) string {
	switch p.Kind {
	case model.PaintLinearGradient:
		out := fmt.Sprintf("linear(%vdeg", p.Angle)
		for _, st := range p.Stops {
			out += fmt.Sprintf(",%s/%v", st.Color.ToHex(), st.Offset)
		}
		return out + ")"
	case model.PaintRadialGradient:
		out := "radial("
		for i, st := range p.Stops {
			if i > 0 {
				out += ","
			}
			out += fmt.Sprintf("%s/%v", st.Color.ToHex(), st.Offset)
		}
		return out + ")"
	default:
		return p.Solid.ToHex()
	}
}

// kindPriority orders sibling nodes for SortNodes: containers first, then
// shapes roughly by how the original format groups them, generic/unknown
// kinds last.
func kindPriority(k model.NodeKind) int {
	switch k {
	case model.KindFrame, model.KindGroup:
		return 0
	case model.KindRect:
		return 1
	case model.KindEllipse:
		return 2
	case model.KindText:
		return 3
	case model.KindPath:
		return 4
	case model.KindImage:
		return 5
	default:
		return 6
	}
}

// SortNodes reorders every container's children by kind priority
// (Group/Frame, Rect, Ellipse, Text, Path, Image), stably preserving
// relative order within a kind, and records the result via
// SceneGraph.SetSortedChildOrder so the emitter follows it without the
// underlying Children slices themselves being mutated.
func SortNodes(g *model.SceneGraph) {
	var walk func(id.NodeId)
	walk = func(nid id.NodeId) {
		children := g.Children(nid)
		if len(children) > 1 {
			sorted := append([]id.NodeId(nil), children...)
			stableSortByKind(g, sorted)
			g.SetSortedChildOrder(nid, sorted)
		}
		for _, cid := range children {
			walk(cid)
		}
	}
	walk(id.NodeId(0))
}

func stableSortByKind(g *model.SceneGraph, ids []id.NodeId) {
	priority := make([]int, len(ids))
	for i, nid := range ids {
		if n, ok := g.GetByID(nid); ok {
			priority[i] = kindPriority(n.Kind)
		}
	}
	// insertion sort: stable, and the slices here are small (sibling
	// lists), so no need for sort.Slice's extra allocation.
	for i := 1; i < len(ids); i++ {
		j := i
		for j > 0 && priority[j-1] > priority[j] {
			priority[j-1], priority[j] = priority[j], priority[j-1]
			ids[j-1], ids[j] = ids[j], ids[j-1]
			j--
		}
	}
}
