package transform

import (
	"testing"

	"github.com/flowdesign/fd/id"
	"github.com/flowdesign/fd/parser"
	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func TestDedupUseRemovesDuplicates(t *testing.T) {
	src := `
style tf_card {
  fill: #FFFFFF
}
rect @tf_box {
  w: 100
  h: 50
  use: tf_card
  use: tf_card
}
`
	g, err := parser.Parse(src)
	require.Nil(t, err)
	DedupUseStyles(g)

	n, ok := g.GetByID(id.Intern("tf_box"))
	require.NotNil(t, n)
	assert.Truef(t, ok, "node found")
	assert.Equals(t, len(n.UseStyles), 1, "duplicate use should be removed")
}

func TestDedupUsePreservesOrder(t *testing.T) {
	src := `
style tf_a { fill: #111111 }
style tf_b { fill: #222222 }
rect @tf_box2 {
  w: 100
  h: 50
  use: tf_a
  use: tf_b
  use: tf_a
}
`
	g, err := parser.Parse(src)
	require.Nil(t, err)
	DedupUseStyles(g)

	n, _ := g.GetByID(id.Intern("tf_box2"))
	require.NotNil(t, n)
	assert.Equals(t, len(n.UseStyles), 2, "use count")
	assert.Equals(t, n.UseStyles[0], "tf_a", "first use preserved")
	assert.Equals(t, n.UseStyles[1], "tf_b", "second use preserved")
}

func TestHoistCreatesSharedStyle(t *testing.T) {
	src := `
rect @tf_box_a {
  w: 100
  h: 50
  fill: #FF0000
  corner: 8
}
rect @tf_box_b {
  w: 200
  h: 100
  fill: #FF0000
  corner: 8
}
`
	g, err := parser.Parse(src)
	require.Nil(t, err)
	HoistStyles(g)

	assert.Truef(t, len(g.StyleNames()) > 0, "hoist should create a style block")

	a, _ := g.GetByID(id.Intern("tf_box_a"))
	b, _ := g.GetByID(id.Intern("tf_box_b"))
	require.NotNil(t, a)
	require.NotNil(t, b)

	assert.Truef(t, len(a.UseStyles) > 0, "box_a should reference hoisted style")
	assert.Truef(t, len(b.UseStyles) > 0, "box_b should reference hoisted style")
	assert.Equals(t, a.UseStyles[0], b.UseStyles[0], "both nodes reference same style")
	assert.Nilf(t, a.Style.Fill, "inline fill cleared after hoist")
	assert.Nilf(t, b.Style.Fill, "inline fill cleared after hoist")
}

func TestSortNodesOrdersByKind(t *testing.T) {
	src := `
text @tf_label "World" {
  font: "Inter" 400 14
}
rect @tf_box3 {
  w: 100
  h: 50
}
group @tf_wrapper {
  rect @tf_child {
    w: 50
    h: 50
  }
}
`
	g, err := parser.Parse(src)
	require.Nil(t, err)
	SortNodes(g)

	order := g.EmitOrder(id.NodeId(0))
	require.NotNil(t, order)
	assert.Equals(t, len(order), 3, "root count")
	assert.Equals(t, order[0], id.Intern("tf_wrapper"), "group sorts first")
	assert.Equals(t, order[1], id.Intern("tf_box3"), "rect sorts second")
	assert.Equals(t, order[2], id.Intern("tf_label"), "text sorts last")
}
