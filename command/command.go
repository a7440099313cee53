// Package command implements the undo/redo stack that sits above
// sync.Engine: every canvas edit is wrapped in a Command capturing both
// its forward mutation and its inverse, or — for a drag gesture — a
// before/after text snapshot batched into one atomic step.
package command

import (
	"github.com/flowdesign/fd/id"
	"github.com/flowdesign/fd/model"
	"github.com/flowdesign/fd/sync"
	"github.com/google/uuid"
)

// kind discriminates the two Command shapes: a single reversible
// mutation, or a snapshot spanning a whole batched gesture.
type kind int

const (
	kindSingle kind = iota
	kindSnapshot
)

// Command is a reversible unit of edit history.
type Command struct {
	kind kind

	forward     sync.GraphMutation // kindSingle
	inverse     sync.GraphMutation // kindSingle
	textBefore  string             // kindSnapshot
	textAfter   string             // kindSnapshot
	description string
	batchID     uuid.UUID // kindSnapshot; correlates the gesture this snapshot came from
}

// Description is the human-readable label shown next to an undo/redo
// entry, e.g. in an editor's History panel.
func (c Command) Description() string { return c.description }

// Stack manages the undo/redo history with batch grouping for drag
// gestures, mirroring the text-snapshot batching the original editor
// uses: a dragged node's intermediate positions are never individually
// undoable, only the gesture as a whole.
type Stack struct {
	undo []Command
	redo []Command

	maxDepth int

	batchDepth    int
	batchSnapshot string
	batchDirty    bool
	batchID       uuid.UUID
}

// NewStack creates an empty Stack retaining at most maxDepth undo entries.
func NewStack(maxDepth int) *Stack {
	return &Stack{maxDepth: maxDepth}
}

// BeginBatch opens (or nests into) a batch group. The outermost call
// captures engine's current text as the snapshot baseline.
func (s *Stack) BeginBatch(e *sync.Engine) {
	if s.batchDepth == 0 {
		s.batchSnapshot = e.FlushToText()
		s.batchDirty = false
		s.batchID = uuid.New()
	}
	s.batchDepth++
}

// EndBatch closes a batch group. When the outermost batch closes and any
// mutation occurred, one Snapshot command is pushed covering the whole
// gesture.
func (s *Stack) EndBatch(e *sync.Engine) {
	if s.batchDepth == 0 {
		return
	}
	s.batchDepth--
	if s.batchDepth != 0 {
		return
	}
	if s.batchDirty {
		textAfter := e.FlushToText()
		textBefore := s.batchSnapshot
		if textBefore != textAfter {
			s.push(Command{
				kind:        kindSnapshot,
				textBefore:  textBefore,
				textAfter:   textAfter,
				description: "canvas edit",
				batchID:     s.batchID,
			})
		}
	}
	s.batchSnapshot = ""
	s.batchDirty = false
}

// Execute applies mutation to e and records it on the undo stack. Inside
// a batch, the mutation is applied live but not individually tracked —
// EndBatch's snapshot covers it instead.
func (s *Stack) Execute(e *sync.Engine, mutation sync.GraphMutation, description string) {
	if s.batchDepth > 0 {
		e.Apply(mutation)
		s.batchDirty = true
		return
	}

	if mutation.Kind == sync.MutationDuplicateNode {
		// The duplicate's id is minted inside Apply, so a duplicate is
		// recorded as a before/after text snapshot: undo restores the
		// document as it was, original node included.
		textBefore := e.FlushToText()
		e.Apply(mutation)
		s.push(Command{kind: kindSnapshot, textBefore: textBefore, textAfter: e.FlushToText(), description: description})
		return
	}

	inverse := computeInverse(e, mutation)
	e.Apply(mutation)

	s.push(Command{
		kind:        kindSingle,
		forward:     mutation,
		inverse:     inverse,
		description: description,
	})
}

func (s *Stack) push(c Command) {
	s.undo = append(s.undo, c)
	if len(s.undo) > s.maxDepth {
		s.undo = s.undo[1:]
	}
	s.redo = s.redo[:0]
}

// Undo reverses the most recent command, returning its description, or
// ("", false) if there is nothing to undo.
func (s *Stack) Undo(e *sync.Engine) (string, bool) {
	if len(s.undo) == 0 {
		return "", false
	}
	c := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]

	switch c.kind {
	case kindSingle:
		e.Apply(c.inverse)
	case kindSnapshot:
		e.SetText(c.textBefore)
	}

	s.redo = append(s.redo, c)
	return c.description, true
}

// Redo reapplies the most recently undone command.
func (s *Stack) Redo(e *sync.Engine) (string, bool) {
	if len(s.redo) == 0 {
		return "", false
	}
	c := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]

	switch c.kind {
	case kindSingle:
		e.Apply(c.forward)
	case kindSnapshot:
		e.SetText(c.textAfter)
	}

	s.undo = append(s.undo, c)
	return c.description, true
}

func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// computeInverse builds the mutation that reverses mutation, capturing
// whatever pre-mutation state from e.Graph it needs before the forward
// mutation applies.
func computeInverse(e *sync.Engine, mutation sync.GraphMutation) sync.GraphMutation {
	switch mutation.Kind {
	case sync.MutationMoveNode:
		return sync.GraphMutation{Kind: sync.MutationMoveNode, ID: mutation.ID, DX: -mutation.DX, DY: -mutation.DY}

	case sync.MutationResizeNode:
		oldW, oldH := 0.0, 0.0
		if n, ok := e.Graph.GetByID(mutation.ID); ok {
			oldW, oldH = n.W, n.H
		}
		return sync.GraphMutation{Kind: sync.MutationResizeNode, ID: mutation.ID, W: oldW, H: oldH}

	case sync.MutationRemoveNode:
		if n, ok := e.Graph.GetByID(mutation.ID); ok {
			parent, _ := e.Graph.ParentOf(mutation.ID)
			clone := *n
			return sync.GraphMutation{Kind: sync.MutationAddNode, Parent: parent, Node: &clone}
		}
		return sync.GraphMutation{Kind: sync.MutationRemoveNode, ID: mutation.ID}

	case sync.MutationAddNode:
		if mutation.Node != nil {
			return sync.GraphMutation{Kind: sync.MutationRemoveNode, ID: mutation.Node.Id}
		}
		return sync.GraphMutation{Kind: sync.MutationRemoveNode}

	case sync.MutationSetStyle:
		var oldStyle model.Style
		if n, ok := e.Graph.GetByID(mutation.ID); ok {
			oldStyle = n.Style
		}
		return sync.GraphMutation{Kind: sync.MutationSetStyle, ID: mutation.ID, Style: oldStyle}

	case sync.MutationSetText:
		oldText := ""
		if n, ok := e.Graph.GetByID(mutation.ID); ok {
			oldText = n.Text
		}
		return sync.GraphMutation{Kind: sync.MutationSetText, ID: mutation.ID, Text: oldText}

	case sync.MutationSetAnnotations:
		var oldAnnotations []model.Annotation
		if n, ok := e.Graph.GetByID(mutation.ID); ok {
			oldAnnotations = n.Annotations
		}
		return sync.GraphMutation{Kind: sync.MutationSetAnnotations, ID: mutation.ID, Annotations: oldAnnotations}

	case sync.MutationDuplicateNode:
		// Execute records a duplicate as a text snapshot and never reaches
		// this case. The duplicate's id is only minted inside Apply, so the
		// only id available here is the original's.
		return sync.GraphMutation{Kind: sync.MutationRemoveNode, ID: mutation.ID}

	case sync.MutationUpdatePath:
		var oldPath []model.PathCmd
		if n, ok := e.Graph.GetByID(mutation.ID); ok {
			oldPath = n.Path
		}
		return sync.GraphMutation{Kind: sync.MutationUpdatePath, ID: mutation.ID, Path: oldPath}

	case sync.MutationGroupNodes:
		return sync.GraphMutation{Kind: sync.MutationUngroupNode, ID: mutation.NewGroupID}

	case sync.MutationUngroupNode:
		return sync.GraphMutation{
			Kind:       sync.MutationGroupNodes,
			IDs:        append([]id.NodeId(nil), e.Graph.Children(mutation.ID)...),
			NewGroupID: mutation.ID,
		}

	case sync.MutationSetAnimations:
		var oldAnimations []model.Animation
		if n, ok := e.Graph.GetByID(mutation.ID); ok {
			oldAnimations = n.Animations
		}
		return sync.GraphMutation{Kind: sync.MutationSetAnimations, ID: mutation.ID, Animations: oldAnimations}

	case sync.MutationAddEdge:
		return sync.GraphMutation{Kind: sync.MutationRemoveEdge, ID: mutation.Edge.Id}

	case sync.MutationRemoveEdge:
		if ed, ok := e.Graph.GetEdge(mutation.ID); ok {
			return sync.GraphMutation{Kind: sync.MutationAddEdge, Edge: *ed}
		}
		return sync.GraphMutation{Kind: sync.MutationRemoveEdge, ID: mutation.ID}

	default:
		return mutation
	}
}
