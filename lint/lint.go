// Package lint reports structural diagnostics over a SceneGraph without
// modifying it.
package lint

import (
	"fmt"

	"github.com/flowdesign/fd/id"
	"github.com/flowdesign/fd/model"
)

// Severity is how urgently a diagnostic should be acted on.
type Severity int

const (
	// SeverityWarning marks a likely mistake that should be fixed.
	SeverityWarning Severity = iota
	// SeverityInfo is a style suggestion, not a correctness issue.
	SeverityInfo
)

// Diagnostic is a single lint finding attached to a node (by id) or a
// style (by name, carried in NodeID as the interned style name).
type Diagnostic struct {
	NodeID   id.NodeId
	Message  string
	Severity Severity
	Rule     string
}

// Document runs every rule over g and returns their combined diagnostics.
func Document(g *model.SceneGraph) []Diagnostic {
	var diags []Diagnostic
	anonymousIDs(g, &diags)
	duplicateUse(g, &diags)
	unusedStyles(g, &diags)
	danglingUse(g, &diags)
	return diags
}

// anonymousIDs warns on any node whose id matches the auto-generated
// "_kind_N" pattern minted by id.Anonymous.
func anonymousIDs(g *model.SceneGraph, diags *[]Diagnostic) {
	var walk func(id.NodeId)
	walk = func(nid id.NodeId) {
		if nid.IsValid() {
			if id.IsAnonymous(nid) {
				*diags = append(*diags, Diagnostic{
					NodeID:   nid,
					Message:  fmt.Sprintf("Anonymous node `@%s` — consider giving it a semantic name.", id.Resolve(nid)),
					Severity: SeverityWarning,
					Rule:     "anonymous-id",
				})
			}
		}
		for _, cid := range g.Children(nid) {
			walk(cid)
		}
	}
	walk(id.NodeId(0))
}

// duplicateUse warns when the same style name appears more than once in a
// node's use_styles list.
func duplicateUse(g *model.SceneGraph, diags *[]Diagnostic) {
	var walk func(id.NodeId)
	walk = func(nid id.NodeId) {
		if n, ok := g.GetByID(nid); ok {
			seen := make(map[string]bool, len(n.UseStyles))
			for _, ref := range n.UseStyles {
				if seen[ref] {
					*diags = append(*diags, Diagnostic{
						NodeID:   nid,
						Message:  fmt.Sprintf("Duplicate `use: %s` on `@%s` — remove the extra reference.", ref, id.Resolve(nid)),
						Severity: SeverityWarning,
						Rule:     "duplicate-use",
					})
				}
				seen[ref] = true
			}
		}
		for _, cid := range g.Children(nid) {
			walk(cid)
		}
	}
	walk(id.NodeId(0))
}

// unusedStyles reports a style defined at the top level but never
// referenced by any node or edge's use_styles.
func unusedStyles(g *model.SceneGraph, diags *[]Diagnostic) {
	referenced := make(map[string]bool)
	var walk func(id.NodeId)
	walk = func(nid id.NodeId) {
		if n, ok := g.GetByID(nid); ok {
			for _, ref := range n.UseStyles {
				referenced[ref] = true
			}
		}
		for _, cid := range g.Children(nid) {
			walk(cid)
		}
	}
	walk(id.NodeId(0))
	for _, eid := range g.Edges() {
		if e, ok := g.GetEdge(eid); ok {
			for _, ref := range e.UseStyles {
				referenced[ref] = true
			}
		}
	}

	for _, name := range g.StyleNames() {
		if !referenced[name] {
			*diags = append(*diags, Diagnostic{
				NodeID:   id.Intern(name),
				Message:  fmt.Sprintf("Style `%s` is defined but never used.", name),
				Severity: SeverityInfo,
				Rule:     "unused-style",
			})
		}
	}
}

// danglingUse warns when a node or edge references a style name that has
// no top-level `style {}` definition. This complements unusedStyles, which
// only catches the opposite direction (defined but unreferenced).
func danglingUse(g *model.SceneGraph, diags *[]Diagnostic) {
	var walk func(id.NodeId)
	walk = func(nid id.NodeId) {
		if n, ok := g.GetByID(nid); ok {
			for _, ref := range n.UseStyles {
				if _, ok := g.Style(ref); !ok {
					*diags = append(*diags, Diagnostic{
						NodeID:   nid,
						Message:  fmt.Sprintf("`use: %s` on `@%s` has no matching style definition.", ref, id.Resolve(nid)),
						Severity: SeverityWarning,
						Rule:     "dangling-use",
					})
				}
			}
		}
		for _, cid := range g.Children(nid) {
			walk(cid)
		}
	}
	walk(id.NodeId(0))

	for _, eid := range g.Edges() {
		e, ok := g.GetEdge(eid)
		if !ok {
			continue
		}
		for _, ref := range e.UseStyles {
			if _, ok := g.Style(ref); !ok {
				*diags = append(*diags, Diagnostic{
					NodeID:   eid,
					Message:  fmt.Sprintf("`use: %s` on edge `@%s` has no matching style definition.", ref, id.Resolve(eid)),
					Severity: SeverityWarning,
					Rule:     "dangling-use",
				})
			}
		}
	}
}
