// Package format combines parsing, transform passes and canonical
// emission into the single idempotent pipeline the fdfmt command and the
// editor's "format on save" action both call.
package format

import (
	"github.com/flowdesign/fd/emitter"
	"github.com/flowdesign/fd/parser"
	"github.com/flowdesign/fd/transform"
)

// Config selects which transform passes Pipeline runs. Every field
// defaults to the original engine's safe, non-destructive subset when
// constructed with DefaultConfig.
type Config struct {
	// DedupUse removes duplicate use_styles entries from every node/edge.
	DedupUse bool

	// HoistStyles promotes repeated identical inline styles into shared
	// top-level style blocks. Structurally destructive (introduces new
	// style names), so it is opt-in.
	HoistStyles bool

	// SortNodes reorders each container's children by kind.
	SortNodes bool
}

// DefaultConfig mirrors the original pipeline's defaults: dedup and sort
// on, hoist off.
func DefaultConfig() Config {
	return Config{DedupUse: true, HoistStyles: false, SortNodes: true}
}

// Pipeline parses text, applies the transforms config selects, and
// re-emits canonical document text. The result is idempotent:
// Pipeline(Pipeline(s, c), c) == Pipeline(s, c).
func Pipeline(text string, cfg Config) (string, error) {
	g, err := parser.Parse(text)
	if err != nil {
		return "", err
	}

	if cfg.DedupUse {
		transform.DedupUseStyles(g)
	}
	if cfg.HoistStyles {
		transform.HoistStyles(g)
	}
	if cfg.SortNodes {
		transform.SortNodes(g)
	}

	return emitter.Emit(g), nil
}
