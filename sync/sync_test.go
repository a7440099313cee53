package sync

import (
	"strings"
	"testing"

	"github.com/flowdesign/fd/id"
	"github.com/flowdesign/fd/layout"
	"github.com/flowdesign/fd/model"
	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

var viewport = layout.Viewport{Width: 800, Height: 600}

const minimalFD = "rect @box {\n  w: 200\n  h: 100\n  fill: #FF0000\n}\n"

func TestFromTextCreatesNodes(t *testing.T) {
	e, err := FromText(minimalFD, viewport)
	require.Nil(t, err)
	_, ok := e.Graph.GetByID(id.Intern("box"))
	assert.Truef(t, ok, "box node should exist after parse")
}

func TestFromTextResolvesBounds(t *testing.T) {
	e, err := FromText(minimalFD, viewport)
	require.Nil(t, err)
	n, ok := e.Graph.GetByID(id.Intern("box"))
	require.NotNilf(t, n, "box node should exist")
	assert.Truef(t, ok, "box node found")
	assert.Truef(t, n.Bounds.W > 0 && n.Bounds.H > 0, "box should have resolved bounds, got %+v", n.Bounds)
}

func TestApplyResizeReflectsInText(t *testing.T) {
	e, err := FromText(minimalFD, viewport)
	require.Nil(t, err)

	e.Apply(GraphMutation{Kind: MutationResizeNode, ID: id.Intern("box"), W: 250, H: 120})
	text := e.FlushToText()

	assert.Truef(t, strings.Contains(text, "250"), "resized width should appear in text, got %q", text)
	assert.Truef(t, strings.Contains(text, "120"), "resized height should appear in text, got %q", text)
}

func TestApplySetTextReflectsInText(t *testing.T) {
	src := "rect @box {\n  w: 100 h: 50\n}\ntext @title \"Old\" { }\n"
	e, err := FromText(src, viewport)
	require.Nil(t, err)

	e.Apply(GraphMutation{Kind: MutationSetText, ID: id.Intern("title"), Text: "Hello World"})
	text := e.FlushToText()

	assert.Truef(t, strings.Contains(text, "Hello World"), "updated text should appear in emitted document, got %q", text)
}

func TestBidiRoundTripResizeAndReparse(t *testing.T) {
	e, err := FromText(minimalFD, viewport)
	require.Nil(t, err)

	e.Apply(GraphMutation{Kind: MutationResizeNode, ID: id.Intern("box"), W: 300, H: 150})
	textAfter := e.FlushToText()

	e2, err := FromText(textAfter, viewport)
	require.Nil(t, err)
	n, ok := e2.Graph.GetByID(id.Intern("box"))
	require.NotNilf(t, n, "box should exist in reparsed engine")
	assert.Truef(t, ok, "box found")
	assert.Equals(t, n.W, 300.0, "width preserved across bidi round-trip")
	assert.Equals(t, n.H, 150.0, "height preserved across bidi round-trip")
}

func TestBidiRoundTripTextEditAndReparse(t *testing.T) {
	e, err := FromText(minimalFD, viewport)
	require.Nil(t, err)

	modified := "rect @box {\n  w: 500 h: 250\n  fill: #00FF00\n}\n"
	err = e.SetText(modified)
	require.Nil(t, err)

	n, ok := e.Graph.GetByID(id.Intern("box"))
	require.NotNilf(t, n, "box should exist after SetText")
	assert.Truef(t, ok, "box found")
	assert.Equals(t, n.W, 500.0, "width from replaced text")
	assert.Equals(t, n.H, 250.0, "height from replaced text")
}

func TestApplyMoveNodePinsAbsolute(t *testing.T) {
	e, err := FromText(minimalFD, viewport)
	require.Nil(t, err)

	e.Apply(GraphMutation{Kind: MutationMoveNode, ID: id.Intern("box"), DX: 10, DY: 20})

	n, ok := e.Graph.GetByID(id.Intern("box"))
	require.NotNilf(t, n, "box should exist")
	assert.Truef(t, ok, "box found")

	found := false
	for _, c := range n.Constraints {
		if c.Kind == model.ConstraintAbsolute {
			found = true
		}
	}
	assert.Truef(t, found, "moved node should carry an absolute constraint, got %+v", n.Constraints)
}

func TestApplyAddAndRemoveNode(t *testing.T) {
	e := New(viewport)

	newNode := &model.SceneNode{Id: id.Intern("sync_added"), Kind: model.KindRect, W: 40, H: 40}
	e.Apply(GraphMutation{Kind: MutationAddNode, Parent: id.NodeId(0), Node: newNode})

	_, ok := e.Graph.GetByID(id.Intern("sync_added"))
	assert.Truef(t, ok, "added node should exist")

	e.Apply(GraphMutation{Kind: MutationRemoveNode, ID: id.Intern("sync_added")})
	_, ok = e.Graph.GetByID(id.Intern("sync_added"))
	assert.Falsef(t, ok, "removed node should no longer exist")
}

func TestApplyGroupAndUngroupNodes(t *testing.T) {
	src := "rect @sync_a { w: 10 h: 10 }\nrect @sync_b { w: 10 h: 10 }\n"
	e, err := FromText(src, viewport)
	require.Nil(t, err)

	groupID := id.Intern("sync_group")
	e.Apply(GraphMutation{
		Kind:       MutationGroupNodes,
		IDs:        []id.NodeId{id.Intern("sync_a"), id.Intern("sync_b")},
		NewGroupID: groupID,
	})

	g, ok := e.Graph.GetByID(groupID)
	require.NotNilf(t, g, "group node should exist")
	assert.Truef(t, ok, "group found")
	assert.Equals(t, len(e.Graph.Children(groupID)), 2, "group should have both children")

	e.Apply(GraphMutation{Kind: MutationUngroupNode, ID: groupID})
	_, ok = e.Graph.GetByID(groupID)
	assert.Falsef(t, ok, "group should be gone after ungroup")

	_, aOk := e.Graph.GetByID(id.Intern("sync_a"))
	assert.Truef(t, aOk, "sync_a should survive ungroup")
}

func TestHitTestFindsTopmostNode(t *testing.T) {
	src := "rect @sync_hit { w: 100 h: 100 }\n"
	e, err := FromText(src, viewport)
	require.Nil(t, err)

	nid, ok := e.HitTest(10, 10)
	assert.Truef(t, ok, "hit test should find a node at (10, 10)")
	assert.Equals(t, nid, id.Intern("sync_hit"), "hit node id")

	_, ok = e.HitTest(5000, 5000)
	assert.Falsef(t, ok, "hit test outside any node's bounds should miss")
}

func TestHitTestFindsLeafInsideGroup(t *testing.T) {
	src := `
group @sync_hit_group {
  layout: free

  rect @sync_hit_leaf {
    w: 50
    h: 50
  }
}
`
	e, err := FromText(src, viewport)
	require.Nil(t, err)

	leaf, ok := e.Graph.GetByID(id.Intern("sync_hit_leaf"))
	require.NotNilf(t, leaf, "leaf node should exist")
	assert.Truef(t, ok, "leaf node found")

	x := leaf.Bounds.X + leaf.Bounds.W/2
	y := leaf.Bounds.Y + leaf.Bounds.H/2

	nid, ok := e.HitTest(x, y)
	assert.Truef(t, ok, "hit test should find a node inside the group")
	assert.Equals(t, nid, id.Intern("sync_hit_leaf"), "hit test should return the leaf, not the containing group")
}

func TestEaseValueLinearIsIdentity(t *testing.T) {
	v := EaseValue(model.AnimKeyframe{Easing: model.EaseLinear}, 0.5)
	assert.Truef(t, v > 0.45 && v < 0.55, "linear easing at progress 0.5 should be ~0.5, got %v", v)
}
