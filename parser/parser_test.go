package parser

import (
	"testing"

	"github.com/flowdesign/fd/id"
	"github.com/flowdesign/fd/model"
	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func TestParseMinimalDocument(t *testing.T) {
	src := `
# Comment
rect @parse_box {
  w: 100
  h: 50
  fill: #FF0000
}
`
	g, err := Parse(src)
	require.Nil(t, err)

	n, ok := g.GetByID(id.Intern("parse_box"))
	require.NotNil(t, n)
	assert.Truef(t, ok, "node should be found")
	assert.Equals(t, n.Kind, model.KindRect, "kind")
	assert.Equals(t, n.W, 100.0, "width")
	assert.Equals(t, n.H, 50.0, "height")
	require.NotNil(t, n.Style.Fill)
}

func TestParseStyleAndUse(t *testing.T) {
	src := `
style parse_accent {
  fill: #6C5CE7
}

rect @parse_btn {
  w: 200
  h: 48
  use: parse_accent
}
`
	g, err := Parse(src)
	require.Nil(t, err)

	_, ok := g.Style("parse_accent")
	assert.Truef(t, ok, "style should be defined")

	btn, ok := g.GetByID(id.Intern("parse_btn"))
	require.NotNil(t, btn)
	assert.Truef(t, ok, "node should be found")
	assert.Equals(t, len(btn.UseStyles), 1, "use_styles count")
}

func TestParseNestedGroup(t *testing.T) {
	src := `
group @parse_form {
  layout: column gap=16 pad=32

  text @parse_title "Hello" {
    fill: #333333
  }

  rect @parse_field {
    w: 280
    h: 44
  }
}
`
	g, err := Parse(src)
	require.Nil(t, err)

	children := g.Children(id.Intern("parse_form"))
	assert.Equals(t, len(children), 2, "children count")

	title, ok := g.GetByID(id.Intern("parse_title"))
	require.NotNil(t, title)
	assert.Truef(t, ok, "title node should be found")
	assert.Equals(t, title.Text, "Hello", "inline text content")
}

func TestParseAnimation(t *testing.T) {
	src := `
rect @parse_anim_btn {
  w: 100
  h: 40
  fill: #6C5CE7

  anim :hover {
    fill: #5A4BD1
    scale: 1.02
    ease: spring 300ms
  }
}
`
	g, err := Parse(src)
	require.Nil(t, err)

	n, ok := g.GetByID(id.Intern("parse_anim_btn"))
	require.NotNil(t, n)
	assert.Truef(t, ok, "node should be found")
	require.NotNil(t, n.Animations)
	assert.Equals(t, len(n.Animations), 1, "animation count")
	assert.Equals(t, n.Animations[0].Trigger, model.TriggerHover, "trigger")
	require.NotNil(t, n.Animations[0].Keyframes)
	assert.EqualValuesf(t, n.Animations[0].Keyframes[0].T, 0.3, "duration in seconds")
}

func TestParseConstraint(t *testing.T) {
	src := `
rect @parse_constraint_box { w: 100 h: 100 }

@parse_constraint_box -> center_in: canvas
`
	g, err := Parse(src)
	require.Nil(t, err)

	n, ok := g.GetByID(id.Intern("parse_constraint_box"))
	require.NotNil(t, n)
	assert.Truef(t, ok, "node should be found")
	require.NotNil(t, n.Constraints)
	assert.Equals(t, len(n.Constraints), 1, "constraint count")
	assert.Equals(t, n.Constraints[0].Kind, model.ConstraintCenterIn, "constraint kind")
}

func TestParseEdge(t *testing.T) {
	src := `
rect @parse_edge_a { w: 10 h: 10 }
rect @parse_edge_b { w: 10 h: 10 }

edge @parse_edge_e {
  from: @parse_edge_a
  to: @parse_edge_b
  label: "flows to"
  arrow: filled
}
`
	g, err := Parse(src)
	require.Nil(t, err)

	e, ok := g.GetEdge(id.Intern("parse_edge_e"))
	require.NotNil(t, e)
	assert.Truef(t, ok, "edge should be found")
	assert.Equals(t, e.Label, "flows to", "label")
	assert.Equals(t, e.End, model.ArrowFilled, "arrow kind")
}

func TestParseSpecShorthand(t *testing.T) {
	src := `
rect @parse_spec_short {
  w: 10
  h: 10
  spec "a short description"
}
`
	g, err := Parse(src)
	require.Nil(t, err)

	n, ok := g.GetByID(id.Intern("parse_spec_short"))
	require.NotNil(t, n)
	assert.Truef(t, ok, "node should be found")
	require.NotNil(t, n.Annotations)
	assert.Equals(t, len(n.Annotations), 1, "annotation count")
	assert.Equals(t, n.Annotations[0].Kind, model.AnnotationDescription, "annotation kind")
	assert.Equals(t, n.Annotations[0].Value, "a short description", "annotation value")
}

func TestParseSpecBlock(t *testing.T) {
	src := `
rect @parse_spec_block {
  w: 10
  h: 10
  spec {
    "implements the login button"
    accept: "shows spinner while pending"
    status: in_progress
    priority: high
    tag: auth
  }
}
`
	g, err := Parse(src)
	require.Nil(t, err)

	n, ok := g.GetByID(id.Intern("parse_spec_block"))
	require.NotNil(t, n)
	assert.Truef(t, ok, "node should be found")
	require.NotNil(t, n.Annotations)
	assert.Equals(t, len(n.Annotations), 5, "annotation count")
	assert.Equals(t, n.Annotations[0].Kind, model.AnnotationDescription, "bare string kind")
	assert.Equals(t, n.Annotations[1].Kind, model.AnnotationAccept, "accept kind")
	assert.Equals(t, n.Annotations[1].Value, "shows spinner while pending", "accept value")
	assert.Equals(t, n.Annotations[2].Kind, model.AnnotationStatus, "status kind")
	assert.Equals(t, n.Annotations[2].Value, "in_progress", "status value")
	assert.Equals(t, n.Annotations[3].Kind, model.AnnotationPriority, "priority kind")
	assert.Equals(t, n.Annotations[4].Kind, model.AnnotationTag, "tag kind")
}

func TestParseEdgeSpecAnnotation(t *testing.T) {
	src := `
rect @parse_spec_edge_a { w: 10 h: 10 }
rect @parse_spec_edge_b { w: 10 h: 10 }

edge @parse_spec_edge_e {
  spec "connects the two boxes"
  from: @parse_spec_edge_a
  to: @parse_spec_edge_b
}
`
	g, err := Parse(src)
	require.Nil(t, err)

	e, ok := g.GetEdge(id.Intern("parse_spec_edge_e"))
	require.NotNil(t, e)
	assert.Truef(t, ok, "edge should be found")
	assert.Equals(t, len(e.Annotations), 1, "annotation count")
	assert.Equals(t, e.Annotations[0].Value, "connects the two boxes", "annotation value")
}

func TestParseAnonymousNode(t *testing.T) {
	src := `rect { w: 50 h: 50 }`
	g, err := Parse(src)
	require.Nil(t, err)
	assert.Equals(t, len(g.Roots()), 1, "root count")
}

func TestParseEmptyDocument(t *testing.T) {
	g, err := Parse("")
	require.Nil(t, err)
	assert.Equals(t, len(g.Roots()), 0, "root count")
}
