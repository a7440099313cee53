package format

import (
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func TestPipelineDefaultIsIdempotent(t *testing.T) {
	src := `
style fmt_accent {
  fill: #6C5CE7
  corner: 10
}

rect @fmt_primary_btn {
  w: 200
  h: 48
  use: fmt_accent
}
`
	cfg := DefaultConfig()
	first, err := Pipeline(src, cfg)
	require.Nil(t, err)
	second, err := Pipeline(first, cfg)
	require.Nil(t, err)
	assert.Equals(t, second, first, "format must be idempotent")
}

func TestPipelineDedupesUseStyles(t *testing.T) {
	src := `
style fmt_card {
  fill: #FFFFFF
}
rect @fmt_box {
  w: 100
  h: 50
  use: fmt_card
  use: fmt_card
}
`
	out, err := Pipeline(src, DefaultConfig())
	require.Nil(t, err)
	assert.Equals(t, strings.Count(out, "use: fmt_card"), 1, "duplicate use: should be removed")
}

func TestPipelineSortsNodesByKind(t *testing.T) {
	src := `
text @fmt_label "World" {
  font: "Inter" 400 14
}
rect @fmt_box {
  w: 100
  h: 50
}
group @fmt_wrapper {
  rect @fmt_child {
    w: 50
    h: 50
  }
}
`
	out, err := Pipeline(src, DefaultConfig())
	require.Nil(t, err)

	groupPos := strings.Index(out, "group @fmt_wrapper")
	rectPos := strings.Index(out, "rect @fmt_box")
	textPos := strings.Index(out, "text @fmt_label")
	require.Truef(t, groupPos >= 0 && rectPos >= 0 && textPos >= 0, "all three nodes present")
	assert.Truef(t, groupPos < rectPos, "group should come before rect")
	assert.Truef(t, rectPos < textPos, "rect should come before text")
}

func TestPipelineSortIsIdempotent(t *testing.T) {
	src := `
text @fmt_label2 "Hello" {
  font: "Inter" 400 14
}
ellipse @fmt_circle {
  w: 60
  h: 60
}
rect @fmt_box2 {
  w: 100
  h: 50
}
group @fmt_container {
  rect @fmt_inner {
    w: 50
    h: 50
  }
}
`
	cfg := DefaultConfig()
	first, err := Pipeline(src, cfg)
	require.Nil(t, err)
	second, err := Pipeline(first, cfg)
	require.Nil(t, err)
	assert.Equals(t, second, first, "sort + format must be idempotent")
}
