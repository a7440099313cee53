package model

import (
	"testing"

	"github.com/flowdesign/fd/id"
	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func rect(name string) *SceneNode {
	return &SceneNode{Id: id.Intern(name), Kind: KindRect}
}

func frame(name string) *SceneNode {
	return &SceneNode{Id: id.Intern(name), Kind: KindFrame}
}

func TestSceneGraphAddAndChildren(t *testing.T) {
	g := NewSceneGraph()
	root := frame("graph_root")
	require.Nil(t, g.AddNode(id.NodeId(0), root))

	child := rect("graph_child")
	require.Nil(t, g.AddNode(root.Id, child))

	got := g.Children(root.Id)
	assert.Equals(t, len(got), 1, "Children count")
	assert.Equals(t, got[0], child.Id, "Children[0]")

	parent, ok := g.ParentOf(child.Id)
	assert.Truef(t, ok, "ParentOf should find a parent")
	assert.Equals(t, parent, root.Id, "ParentOf")
}

func TestSceneGraphAddNodeErrors(t *testing.T) {
	g := NewSceneGraph()
	r := rect("graph_err_leaf")
	require.Nil(t, g.AddNode(id.NodeId(0), r))

	dup := rect("graph_err_leaf")
	err := g.AddNode(id.NodeId(0), dup)
	require.NotNil(t, err)

	child := rect("graph_err_child")
	err = g.AddNode(r.Id, child)
	require.NotNil(t, err)
}

func TestSceneGraphRemoveNodeRemovesSubtree(t *testing.T) {
	g := NewSceneGraph()
	root := frame("graph_rm_root")
	require.Nil(t, g.AddNode(id.NodeId(0), root))
	child := frame("graph_rm_child")
	require.Nil(t, g.AddNode(root.Id, child))
	grandchild := rect("graph_rm_grandchild")
	require.Nil(t, g.AddNode(child.Id, grandchild))

	g.RemoveNode(child.Id)

	_, ok := g.GetByID(child.Id)
	assert.Truef(t, !ok, "child should be removed")
	_, ok = g.GetByID(grandchild.Id)
	assert.Truef(t, !ok, "grandchild should be removed with its parent")
	assert.Equals(t, len(g.Children(root.Id)), 0, "root should have no children left")
}

func TestSceneGraphZOrder(t *testing.T) {
	g := NewSceneGraph()
	root := frame("graph_z_root")
	require.Nil(t, g.AddNode(id.NodeId(0), root))

	a := rect("graph_z_a")
	b := rect("graph_z_b")
	c := rect("graph_z_c")
	require.Nil(t, g.AddNode(root.Id, a))
	require.Nil(t, g.AddNode(root.Id, b))
	require.Nil(t, g.AddNode(root.Id, c))

	g.BringToFront(a.Id)
	assert.Equals(t, g.Children(root.Id), []id.NodeId{b.Id, c.Id, a.Id}, "after BringToFront")

	g.SendToBack(a.Id)
	assert.Equals(t, g.Children(root.Id), []id.NodeId{a.Id, b.Id, c.Id}, "after SendToBack")

	g.BringForward(a.Id)
	assert.Equals(t, g.Children(root.Id), []id.NodeId{b.Id, a.Id, c.Id}, "after BringForward")

	g.SendBackward(a.Id)
	assert.Equals(t, g.Children(root.Id), []id.NodeId{a.Id, b.Id, c.Id}, "after SendBackward")
}

func TestSceneGraphReparentRejectsCycle(t *testing.T) {
	g := NewSceneGraph()
	root := frame("graph_cycle_root")
	require.Nil(t, g.AddNode(id.NodeId(0), root))
	child := frame("graph_cycle_child")
	require.Nil(t, g.AddNode(root.Id, child))

	err := g.Reparent(root.Id, child.Id, 0)
	require.NotNil(t, err)
}

func TestSceneGraphResolveStyleLayering(t *testing.T) {
	g := NewSceneGraph()
	g.DefineStyle("base", Style{Fill: PaintPtr(SolidPaint(Opaque(1, 0, 0))), Opacity: Float64Ptr(1)})

	n := rect("graph_style_n")
	n.UseStyles = []string{"base"}
	n.Style = Style{Opacity: Float64Ptr(0.5)}
	require.Nil(t, g.AddNode(id.NodeId(0), n))

	resolved, ok := g.ResolveStyle(n.Id, nil, 0)
	assert.Truef(t, ok, "ResolveStyle should find the node")
	require.NotNil(t, resolved.Fill)
	assert.Truef(t, resolved.Fill.Equal(SolidPaint(Opaque(1, 0, 0))), "fill should come from use_styles")
	require.NotNil(t, resolved.Opacity)
	assert.Equals(t, *resolved.Opacity, 0.5, "inline opacity should win over use_styles")
}

func TestSceneGraphIsAncestorOf(t *testing.T) {
	g := NewSceneGraph()
	root := frame("graph_anc_root")
	require.Nil(t, g.AddNode(id.NodeId(0), root))
	child := frame("graph_anc_child")
	require.Nil(t, g.AddNode(root.Id, child))
	grandchild := rect("graph_anc_grandchild")
	require.Nil(t, g.AddNode(child.Id, grandchild))

	assert.Truef(t, g.IsAncestorOf(root.Id, grandchild.Id), "root should be an ancestor of grandchild")
	assert.Truef(t, !g.IsAncestorOf(grandchild.Id, root.Id), "grandchild should not be an ancestor of root")
}
