// Package parser turns FD document text directly into a model.SceneGraph.
//
// Parsing is permissive, line-oriented and single-pass: there is no
// intermediate token stream or AST. Unknown properties and unknown
// top-level lines are skipped rather than rejected, so a document written
// against a newer version of the format still loads as much as this
// version understands.
package parser

import "fmt"

// Position is a 1-based line/column location in the source document, used
// to annotate parse errors.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}
