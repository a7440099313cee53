package model

import (
	"fmt"

	"github.com/flowdesign/fd/id"
)

// SceneGraph is the full in-memory representation of one design file: a
// forest of SceneNodes, a table of named styles, and a flat list of Edges
// that connect nodes (or fixed points) independently of the tree shape.
type SceneGraph struct {
	nodes map[id.NodeId]*SceneNode
	roots []id.NodeId

	styles     map[string]Style
	styleOrder []string

	edges   map[id.NodeId]*Edge
	edgeOrder []id.NodeId

	imports []Import

	// sortedChildOrder records, per container, a child ordering override
	// computed by the format package's sort_nodes pass. It is not part of
	// a node's own fields because it is a transform-time cache, not a
	// document property — see transform.SortNodes.
	sortedChildOrder map[id.NodeId][]id.NodeId
}

func NewSceneGraph() *SceneGraph {
	return &SceneGraph{
		nodes:            make(map[id.NodeId]*SceneNode),
		styles:           make(map[string]Style),
		edges:            make(map[id.NodeId]*Edge),
		sortedChildOrder: make(map[id.NodeId][]id.NodeId),
	}
}

// AddNode inserts n as a child of parent (or as a root when parent is the
// zero NodeId), appending it to the end of the sibling list. It returns an
// error if n.Id is already present or parent is non-zero but unknown.
func (g *SceneGraph) AddNode(parent id.NodeId, n *SceneNode) error {
	if _, exists := g.nodes[n.Id]; exists {
		return fmt.Errorf("model: node %q already exists", n.Id)
	}
	if parent.IsValid() {
		p, ok := g.nodes[parent]
		if !ok {
			return fmt.Errorf("model: parent %q not found", parent)
		}
		if !p.IsContainer() {
			return fmt.Errorf("model: %q is not a container", parent)
		}
		n.Parent = parent
		p.Children = append(p.Children, n.Id)
	} else {
		n.Parent = id.NodeId(0)
		g.roots = append(g.roots, n.Id)
	}
	g.nodes[n.Id] = n
	return nil
}

// RemoveNode deletes nid and its entire subtree, unlinking it from its
// parent's (or the graph's root) sibling list. Edges that reference a
// removed node are left in place.
func (g *SceneGraph) RemoveNode(nid id.NodeId) {
	n, ok := g.nodes[nid]
	if !ok {
		return
	}
	for _, c := range append([]id.NodeId(nil), n.Children...) {
		g.RemoveNode(c)
	}
	if n.Parent.IsValid() {
		if p, ok := g.nodes[n.Parent]; ok {
			p.Children = removeID(p.Children, nid)
		}
	} else {
		g.roots = removeID(g.roots, nid)
	}
	delete(g.nodes, nid)
	delete(g.sortedChildOrder, nid)
}

func removeID(s []id.NodeId, target id.NodeId) []id.NodeId {
	out := s[:0]
	for _, v := range s {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}

func (g *SceneGraph) GetByID(nid id.NodeId) (*SceneNode, bool) {
	n, ok := g.nodes[nid]
	return n, ok
}

// IndexOf returns nid's position within its sibling list.
func (g *SceneGraph) IndexOf(nid id.NodeId) (int, bool) {
	sibs := g.siblingsOf(nid)
	for i, s := range sibs {
		if s == nid {
			return i, true
		}
	}
	return -1, false
}

// ParentOf returns the parent of nid. ok is false for unknown or root nodes.
func (g *SceneGraph) ParentOf(nid id.NodeId) (id.NodeId, bool) {
	n, ok := g.nodes[nid]
	if !ok || !n.Parent.IsValid() {
		return id.NodeId(0), false
	}
	return n.Parent, true
}

// Children returns nid's direct children, or the graph's roots when nid is
// the zero NodeId.
func (g *SceneGraph) Children(nid id.NodeId) []id.NodeId {
	if !nid.IsValid() {
		return g.roots
	}
	if n, ok := g.nodes[nid]; ok {
		return n.Children
	}
	return nil
}

func (g *SceneGraph) Roots() []id.NodeId { return g.roots }

func (g *SceneGraph) siblingsOf(nid id.NodeId) []id.NodeId {
	n, ok := g.nodes[nid]
	if !ok {
		return nil
	}
	if n.Parent.IsValid() {
		return g.nodes[n.Parent].Children
	}
	return g.roots
}

func (g *SceneGraph) siblingsSlicePtr(nid id.NodeId) *[]id.NodeId {
	n, ok := g.nodes[nid]
	if !ok {
		return nil
	}
	if n.Parent.IsValid() {
		p := g.nodes[n.Parent]
		return &p.Children
	}
	return &g.roots
}

// Reparent moves nid to become a child of newParent (zero NodeId for root)
// at sibling position index, unlinking it from its previous parent first.
func (g *SceneGraph) Reparent(nid, newParent id.NodeId, index int) error {
	n, ok := g.nodes[nid]
	if !ok {
		return fmt.Errorf("model: node %q not found", nid)
	}
	if newParent.IsValid() {
		p, ok := g.nodes[newParent]
		if !ok {
			return fmt.Errorf("model: parent %q not found", newParent)
		}
		if !p.IsContainer() {
			return fmt.Errorf("model: %q is not a container", newParent)
		}
		if g.IsAncestorOf(nid, newParent) {
			return fmt.Errorf("model: cannot reparent %q under its own descendant %q", nid, newParent)
		}
	}

	if old := g.siblingsSlicePtr(nid); old != nil {
		*old = removeID(*old, nid)
	}

	n.Parent = newParent
	var dest *[]id.NodeId
	if newParent.IsValid() {
		dest = &g.nodes[newParent].Children
	} else {
		dest = &g.roots
	}
	if index < 0 || index > len(*dest) {
		index = len(*dest)
	}
	*dest = append(*dest, id.NodeId(0))
	copy((*dest)[index+1:], (*dest)[index:])
	(*dest)[index] = nid
	return nil
}

// IsAncestorOf reports whether a is an ancestor of b (strict: a == b is
// false unless a node were its own parent, which cannot occur).
func (g *SceneGraph) IsAncestorOf(a, b id.NodeId) bool {
	cur, ok := g.ParentOf(b)
	for ok {
		if cur == a {
			return true
		}
		cur, ok = g.ParentOf(cur)
	}
	return false
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func moveWithinSlice(s []id.NodeId, from, to int) {
	v := s[from]
	if from < to {
		copy(s[from:to], s[from+1:to+1])
	} else {
		copy(s[to+1:from+1], s[to:from])
	}
	s[to] = v
}

// SendBackward moves nid one position toward the front of its sibling list
// (index 0), i.e. further back in draw order.
func (g *SceneGraph) SendBackward(nid id.NodeId) {
	sibs := g.siblingsSlicePtr(nid)
	if sibs == nil {
		return
	}
	idx, ok := g.IndexOf(nid)
	if !ok || idx == 0 {
		return
	}
	moveWithinSlice(*sibs, idx, idx-1)
}

// BringForward moves nid one position toward the end of its sibling list,
// i.e. further forward in draw order.
func (g *SceneGraph) BringForward(nid id.NodeId) {
	sibs := g.siblingsSlicePtr(nid)
	if sibs == nil {
		return
	}
	idx, ok := g.IndexOf(nid)
	if !ok || idx == len(*sibs)-1 {
		return
	}
	moveWithinSlice(*sibs, idx, idx+1)
}

func (g *SceneGraph) SendToBack(nid id.NodeId) {
	sibs := g.siblingsSlicePtr(nid)
	if sibs == nil {
		return
	}
	idx, ok := g.IndexOf(nid)
	if !ok || idx == 0 {
		return
	}
	moveWithinSlice(*sibs, idx, 0)
}

func (g *SceneGraph) BringToFront(nid id.NodeId) {
	sibs := g.siblingsSlicePtr(nid)
	if sibs == nil {
		return
	}
	idx, ok := g.IndexOf(nid)
	if !ok || idx == len(*sibs)-1 {
		return
	}
	moveWithinSlice(*sibs, idx, len(*sibs)-1)
}

// DefineStyle registers or replaces a named style, recording first-seen
// declaration order in styleOrder for deterministic re-emission.
func (g *SceneGraph) DefineStyle(name string, s Style) {
	if _, exists := g.styles[name]; !exists {
		g.styleOrder = append(g.styleOrder, name)
	}
	g.styles[name] = s
}

func (g *SceneGraph) Style(name string) (Style, bool) {
	s, ok := g.styles[name]
	return s, ok
}

func (g *SceneGraph) StyleNames() []string { return g.styleOrder }

// ResolveStyle computes nid's effective style: named use_styles merged in
// declaration order (weakest first), then the node's own inline style,
// then — if trigger names an animation on the node whose keyframe timeline
// covers t — that animation's properties at t, restricted to fill/opacity/
// scale only.
func (g *SceneGraph) ResolveStyle(nid id.NodeId, trigger *AnimTrigger, t float64) (Style, bool) {
	n, ok := g.nodes[nid]
	if !ok {
		return Style{}, false
	}
	var out Style
	for _, name := range n.UseStyles {
		if s, ok := g.styles[name]; ok {
			out = mergeStyle(out, s)
		}
	}
	out = mergeStyle(out, n.Style)

	if trigger != nil {
		for _, anim := range n.Animations {
			if anim.Trigger != *trigger {
				continue
			}
			lo, hi, progress, ok := anim.segmentAt(t)
			if !ok {
				continue
			}
			props := interpolateAnimProperties(lo.Properties, hi.Properties, progress)
			out = applyAnimProperties(out, props)
		}
	}
	return out, true
}

// interpolateAnimProperties linearly blends two keyframes' properties by
// progress in [0, 1]. Easing shaping of progress is the sync package's
// responsibility (it owns the gween dependency); this is the raw lerp.
func interpolateAnimProperties(lo, hi AnimProperties, progress float64) AnimProperties {
	out := lo
	if hi.Opacity != nil {
		base := 0.0
		if lo.Opacity != nil {
			base = *lo.Opacity
		}
		v := base + (*hi.Opacity-base)*progress
		out.Opacity = &v
	}
	if hi.Scale != nil {
		base := 1.0
		if lo.Scale != nil {
			base = *lo.Scale
		}
		v := base + (*hi.Scale-base)*progress
		out.Scale = &v
	}
	if hi.Fill != nil {
		out.Fill = hi.Fill
	}
	return out
}

func applyAnimProperties(s Style, p AnimProperties) Style {
	if p.Fill != nil {
		s.Fill = p.Fill
	}
	if p.Opacity != nil {
		s.Opacity = p.Opacity
	}
	if p.Scale != nil {
		s.Scale = p.Scale
	}
	return s
}

func (g *SceneGraph) AddEdge(e Edge) {
	if _, exists := g.edges[e.Id]; !exists {
		g.edgeOrder = append(g.edgeOrder, e.Id)
	}
	cp := e
	g.edges[e.Id] = &cp
}

func (g *SceneGraph) RemoveEdge(eid id.NodeId) {
	delete(g.edges, eid)
	g.edgeOrder = removeID(g.edgeOrder, eid)
}

func (g *SceneGraph) GetEdge(eid id.NodeId) (*Edge, bool) {
	e, ok := g.edges[eid]
	return e, ok
}

func (g *SceneGraph) Edges() []id.NodeId { return g.edgeOrder }

// AddImport records an import directive in declaration order.
func (g *SceneGraph) AddImport(imp Import) { g.imports = append(g.imports, imp) }

// Imports returns the document's import directives in declaration order.
func (g *SceneGraph) Imports() []Import { return g.imports }

// ResolveStyleForEdge mirrors ResolveStyle but for an Edge's use_styles;
// edges carry only Stroke directly, so only that field is meaningful, but
// the merge still runs over the full Style for symmetry with ResolveStyle.
func (g *SceneGraph) ResolveStyleForEdge(eid id.NodeId) (Style, bool) {
	e, ok := g.edges[eid]
	if !ok {
		return Style{}, false
	}
	var out Style
	for _, name := range e.UseStyles {
		if s, ok := g.styles[name]; ok {
			out = mergeStyle(out, s)
		}
	}
	if e.Stroke != nil {
		out.Stroke = e.Stroke
	}
	return out, true
}

// EffectiveTarget resolves a center_in constraint's Target field to the
// bounds it should center within: the viewport when Target is
// CanvasTarget, otherwise the named node's resolved Bounds.
func (g *SceneGraph) EffectiveTarget(target id.NodeId, viewport ResolvedBounds) (ResolvedBounds, bool) {
	if id.Resolve(target) == CanvasTarget {
		return viewport, true
	}
	n, ok := g.nodes[target]
	if !ok {
		return ResolvedBounds{}, false
	}
	return n.Bounds, true
}

// RebuildIndex recomputes derived lookup state after bulk external
// mutation of node fields (e.g. after a format pass rewrites Children
// slices directly). The nodes map itself never needs rebuilding since it
// holds pointers; this exists to keep styleOrder/edgeOrder consistent if
// callers mutate styles/edges maps directly instead of through the
// Define/Add methods.
func (g *SceneGraph) RebuildIndex() {
	newStyleOrder := g.styleOrder[:0]
	seen := make(map[string]bool, len(g.styles))
	for _, name := range g.styleOrder {
		if _, ok := g.styles[name]; ok && !seen[name] {
			newStyleOrder = append(newStyleOrder, name)
			seen[name] = true
		}
	}
	for name := range g.styles {
		if !seen[name] {
			newStyleOrder = append(newStyleOrder, name)
			seen[name] = true
		}
	}
	g.styleOrder = newStyleOrder

	newEdgeOrder := g.edgeOrder[:0]
	eseen := make(map[id.NodeId]bool, len(g.edges))
	for _, eid := range g.edgeOrder {
		if _, ok := g.edges[eid]; ok && !eseen[eid] {
			newEdgeOrder = append(newEdgeOrder, eid)
			eseen[eid] = true
		}
	}
	for eid := range g.edges {
		if !eseen[eid] {
			newEdgeOrder = append(newEdgeOrder, eid)
			eseen[eid] = true
		}
	}
	g.edgeOrder = newEdgeOrder
}

// SetSortedChildOrder records a container's override ordering, computed by
// transform.SortNodes, for the emitter to follow instead of Children.
func (g *SceneGraph) SetSortedChildOrder(parent id.NodeId, order []id.NodeId) {
	g.sortedChildOrder[parent] = order
}

// EmitOrder returns the order children of parent should be emitted in: the
// sort override if one was set, otherwise natural Children order.
func (g *SceneGraph) EmitOrder(parent id.NodeId) []id.NodeId {
	if order, ok := g.sortedChildOrder[parent]; ok {
		return order
	}
	return g.Children(parent)
}
