package command

import (
	"testing"

	"github.com/flowdesign/fd/id"
	"github.com/flowdesign/fd/layout"
	"github.com/flowdesign/fd/model"
	"github.com/flowdesign/fd/sync"
	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

var viewport = layout.Viewport{Width: 800, Height: 600}

func TestUndoRedoMove(t *testing.T) {
	e, err := sync.FromText("rect @cmd_box { w: 100 h: 50 }\n", viewport)
	require.Nil(t, err)
	s := NewStack(100)

	s.Execute(e, sync.GraphMutation{Kind: sync.MutationMoveNode, ID: id.Intern("cmd_box"), DX: 50, DY: 30}, "Move box")

	n, _ := e.Graph.GetByID(id.Intern("cmd_box"))
	movedX := n.Bounds.X

	desc, ok := s.Undo(e)
	assert.Truef(t, ok, "undo should succeed")
	assert.Equals(t, desc, "Move box", "undo description")

	e.Resolve()
	n, _ = e.Graph.GetByID(id.Intern("cmd_box"))
	assert.Truef(t, inDelta(n.Bounds.X, movedX-50, 0.1), "x should return to pre-move position, got %v", n.Bounds.X)

	desc, ok = s.Redo(e)
	assert.Truef(t, ok, "redo should succeed")
	assert.Equals(t, desc, "Move box", "redo description")

	e.Resolve()
	n, _ = e.Graph.GetByID(id.Intern("cmd_box"))
	assert.Truef(t, inDelta(n.Bounds.X, movedX, 0.1), "x should return to moved position, got %v", n.Bounds.X)
}

func TestRedoClearsOnNewAction(t *testing.T) {
	e, err := sync.FromText("rect @cmd_a { w: 10 h: 10 }\n", viewport)
	require.Nil(t, err)
	s := NewStack(100)

	s.Execute(e, sync.GraphMutation{Kind: sync.MutationMoveNode, ID: id.Intern("cmd_a"), DX: 5}, "move")
	s.Undo(e)
	assert.Truef(t, s.CanRedo(), "redo should be available after undo")

	s.Execute(e, sync.GraphMutation{Kind: sync.MutationMoveNode, ID: id.Intern("cmd_a"), DX: 1}, "move2")
	assert.Falsef(t, s.CanRedo(), "new action should clear redo stack")
}

func TestMaxDepthTrimsOldest(t *testing.T) {
	e, err := sync.FromText("rect @cmd_trim { w: 10 h: 10 }\n", viewport)
	require.Nil(t, err)
	s := NewStack(3)

	for i := 0; i < 5; i++ {
		s.Execute(e, sync.GraphMutation{Kind: sync.MutationMoveNode, ID: id.Intern("cmd_trim"), DX: float64(i + 1)}, "move")
	}

	count := 0
	for {
		if _, ok := s.Undo(e); !ok {
			break
		}
		count++
	}
	assert.Equals(t, count, 3, "only maxDepth entries should be undoable")
}

func TestRemoveAddRoundTrip(t *testing.T) {
	e, err := sync.FromText("rect @cmd_rm_box { w: 40 h: 20 }\n", viewport)
	require.Nil(t, err)
	s := NewStack(100)

	s.Execute(e, sync.GraphMutation{Kind: sync.MutationRemoveNode, ID: id.Intern("cmd_rm_box")}, "Delete box")
	_, ok := e.Graph.GetByID(id.Intern("cmd_rm_box"))
	assert.Falsef(t, ok, "node should be gone after remove")

	s.Undo(e)
	_, ok = e.Graph.GetByID(id.Intern("cmd_rm_box"))
	assert.Truef(t, ok, "undo should re-add the removed node")
}

func TestSetStyleRoundTrip(t *testing.T) {
	e, err := sync.FromText("rect @cmd_r { w: 10 h: 10 fill: #FF0000 }\n", viewport)
	require.Nil(t, err)
	s := NewStack(100)

	n, _ := e.Graph.GetByID(id.Intern("cmd_r"))
	require.NotNilf(t, n.Style.Fill, "fill should be set")
	assert.Equals(t, n.Style.Fill.Solid.ToHex(), "#FF0000", "original fill")

	newStyle := n.Style
	newStyle.Fill = &model.Paint{Kind: model.PaintSolid, Solid: model.Color{G: 1, A: 1}}

	s.Execute(e, sync.GraphMutation{Kind: sync.MutationSetStyle, ID: id.Intern("cmd_r"), Style: newStyle}, "change fill")

	n, _ = e.Graph.GetByID(id.Intern("cmd_r"))
	assert.Equals(t, n.Style.Fill.Solid.ToHex(), "#00FF00", "fill after execute")

	s.Undo(e)
	n, _ = e.Graph.GetByID(id.Intern("cmd_r"))
	assert.Equals(t, n.Style.Fill.Solid.ToHex(), "#FF0000", "fill restored by undo")
}

func TestBatchUndoIsSingleStep(t *testing.T) {
	e, err := sync.FromText("rect @cmd_batch_box { w: 100 h: 50 }\n", viewport)
	require.Nil(t, err)
	s := NewStack(100)

	s.BeginBatch(e)
	for i := 0; i < 5; i++ {
		s.Execute(e, sync.GraphMutation{Kind: sync.MutationMoveNode, ID: id.Intern("cmd_batch_box"), DX: 10, DY: 5}, "drag")
	}
	s.EndBatch(e)

	desc, ok := s.Undo(e)
	assert.Truef(t, ok, "one undo should reverse the whole gesture")
	assert.Truef(t, desc != "", "undo should have a description")

	e.Resolve()
	n, _ := e.Graph.GetByID(id.Intern("cmd_batch_box"))
	assert.Truef(t, inDelta(n.Bounds.X, 0, 1.0), "x should be back near 0, got %v", n.Bounds.X)
	assert.Falsef(t, s.CanUndo(), "no more undo steps after the batch's single undo")
}

func TestBatchRedoReappliesAll(t *testing.T) {
	e, err := sync.FromText("rect @cmd_batch_box2 { w: 100 h: 50 }\n", viewport)
	require.Nil(t, err)
	s := NewStack(100)

	s.BeginBatch(e)
	for i := 0; i < 5; i++ {
		s.Execute(e, sync.GraphMutation{Kind: sync.MutationMoveNode, ID: id.Intern("cmd_batch_box2"), DX: 10, DY: 5}, "drag")
	}
	s.EndBatch(e)

	s.Undo(e)
	e.Resolve()
	_, ok := s.Redo(e)
	assert.Truef(t, ok, "redo should succeed")
	e.Resolve()

	n, _ := e.Graph.GetByID(id.Intern("cmd_batch_box2"))
	assert.Truef(t, inDelta(n.Bounds.X, 50, 1.0), "x should be at the dragged location, got %v", n.Bounds.X)
	assert.Truef(t, inDelta(n.Bounds.Y, 25, 1.0), "y should be at the dragged location, got %v", n.Bounds.Y)
}

func TestEmptyBatchNoUndoEntry(t *testing.T) {
	e, err := sync.FromText("rect @cmd_empty_box { w: 100 h: 50 }\n", viewport)
	require.Nil(t, err)
	s := NewStack(100)

	s.BeginBatch(e)
	s.EndBatch(e)

	assert.Falsef(t, s.CanUndo(), "a batch where nothing happened should not push an undo entry")
}

func inDelta(got, want, delta float64) bool {
	d := got - want
	if d < 0 {
		d = -d
	}
	return d <= delta
}
