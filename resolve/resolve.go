// Package resolve merges a document's `import` directives into its
// SceneGraph, namespace-prefixing every id, style name, use_styles
// reference and edge anchor the imported file defines.
package resolve

import (
	"fmt"

	"github.com/flowdesign/fd/id"
	"github.com/flowdesign/fd/model"
	"github.com/flowdesign/fd/parser"
)

// Loader loads the text of an FD file by path. Implementations vary by
// host: disk access for a CLI, an in-memory map for tests, a workspace
// RPC for an editor extension. Kept deliberately out of this package so
// parsing and resolution stay decoupled from file I/O.
type Loader interface {
	Load(path string) (string, error)
}

// Imports resolves every import declared on g, merging each imported
// document's nodes, styles and edges into g under its declared namespace.
func Imports(g *model.SceneGraph, loader Loader) error {
	visited := make(map[string]bool)
	return resolveRecursive(g, g.Imports(), loader, visited)
}

func resolveRecursive(g *model.SceneGraph, imports []model.Import, loader Loader, visited map[string]bool) error {
	for _, imp := range imports {
		if visited[imp.Path] {
			return fmt.Errorf("resolve: circular import detected: %q was already imported", imp.Path)
		}
		visited[imp.Path] = true

		source, err := loader.Load(imp.Path)
		if err != nil {
			return fmt.Errorf("resolve: %w", err)
		}
		imported, err := parser.Parse(source)
		if err != nil {
			return fmt.Errorf("resolve: error parsing %q: %w", imp.Path, err)
		}

		if nested := imported.Imports(); len(nested) > 0 {
			if err := resolveRecursive(imported, nested, loader, visited); err != nil {
				return err
			}
		}

		if err := mergeStyles(g, imported, imp.Namespace); err != nil {
			return err
		}
		if err := mergeNodes(g, imported, imp.Namespace); err != nil {
			return err
		}
		mergeEdges(g, imported, imp.Namespace)
	}
	return nil
}

func prefixName(namespace, name string) string {
	return namespace + "." + name
}

func prefixID(namespace string, nid id.NodeId) id.NodeId {
	return id.Intern(prefixName(namespace, id.Resolve(nid)))
}

func mergeStyles(g, imported *model.SceneGraph, namespace string) error {
	for _, name := range imported.StyleNames() {
		s, ok := imported.Style(name)
		if !ok {
			continue
		}
		nsName := prefixName(namespace, name)
		if _, exists := g.Style(nsName); exists {
			return fmt.Errorf("resolve: style conflict: %q already exists", nsName)
		}
		g.DefineStyle(nsName, s)
	}
	return nil
}

func mergeNodes(g, imported *model.SceneGraph, namespace string) error {
	for _, cid := range imported.Children(id.NodeId(0)) {
		if err := mergeNodeRecursive(g, id.NodeId(0), imported, cid, namespace); err != nil {
			return err
		}
	}
	return nil
}

func mergeNodeRecursive(g *model.SceneGraph, parent id.NodeId, imported *model.SceneGraph, srcID id.NodeId, namespace string) error {
	src, ok := imported.GetByID(srcID)
	if !ok {
		return nil
	}

	nsID := prefixID(namespace, srcID)
	if _, exists := g.GetByID(nsID); exists {
		return fmt.Errorf("resolve: node id conflict: %q already exists", id.Resolve(nsID))
	}

	cloned := *src
	cloned.Id = nsID
	cloned.Children = nil
	cloned.Parent = id.NodeId(0)
	for i, ref := range cloned.UseStyles {
		cloned.UseStyles[i] = prefixName(namespace, ref)
	}

	if err := g.AddNode(parent, &cloned); err != nil {
		return fmt.Errorf("resolve: %w", err)
	}

	for _, childID := range imported.Children(srcID) {
		if err := mergeNodeRecursive(g, nsID, imported, childID, namespace); err != nil {
			return err
		}
	}
	return nil
}

func mergeEdges(g, imported *model.SceneGraph, namespace string) {
	for _, eid := range imported.Edges() {
		e, ok := imported.GetEdge(eid)
		if !ok {
			continue
		}
		cloned := *e
		cloned.Id = prefixID(namespace, eid)
		cloned.From = prefixAnchor(cloned.From, namespace)
		cloned.To = prefixAnchor(cloned.To, namespace)
		for i, ref := range cloned.UseStyles {
			cloned.UseStyles[i] = prefixName(namespace, ref)
		}
		g.AddEdge(cloned)
	}
}

// prefixAnchor namespace-prefixes a node anchor; point anchors pass
// through unchanged since a raw coordinate has no namespace to prefix.
func prefixAnchor(a model.EdgeAnchor, namespace string) model.EdgeAnchor {
	if a.Kind == model.AnchorPoint {
		return a
	}
	return model.NodeAnchor(prefixID(namespace, a.Node))
}
