package layout

import (
	"math"
	"testing"

	"github.com/flowdesign/fd/id"
	"github.com/flowdesign/fd/parser"
	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func near(a, b float64) bool { return math.Abs(a-b) < 0.01 }

func TestResolveColumnLayout(t *testing.T) {
	src := `
group @layout_form {
  layout: column gap=10 pad=20

  rect @layout_a { w: 100 h: 40 }
  rect @layout_b { w: 100 h: 30 }
}
`
	g, err := parser.Parse(src)
	require.Nil(t, err)
	Resolve(g, DefaultViewport)

	a, _ := g.GetByID(id.Intern("layout_a"))
	b, _ := g.GetByID(id.Intern("layout_b"))

	assert.Truef(t, near(a.Bounds.X, 20), "a.x should be pad (20), got %v", a.Bounds.X)
	assert.Truef(t, near(b.Bounds.X, 20), "b.x should be pad (20), got %v", b.Bounds.X)
	assert.Truef(t, near(b.Bounds.Y-a.Bounds.Y, 50), "b.y should be a.y + height + gap, got diff %v", b.Bounds.Y-a.Bounds.Y)
}

func TestResolveCenterInCanvas(t *testing.T) {
	src := `
rect @layout_box { w: 200 h: 100 }

@layout_box -> center_in: canvas
`
	g, err := parser.Parse(src)
	require.Nil(t, err)
	Resolve(g, DefaultViewport)

	box, _ := g.GetByID(id.Intern("layout_box"))
	assert.Truef(t, near(box.Bounds.X, 300), "expected x=300, got %v", box.Bounds.X)
	assert.Truef(t, near(box.Bounds.Y, 250), "expected y=250, got %v", box.Bounds.Y)
}

func TestResolveGroupAutoBounds(t *testing.T) {
	src := `
group @layout_container {
  layout: column gap=10 pad=0

  rect @layout_ga { w: 100 h: 40 }
  rect @layout_gb { w: 80 h: 30 }
}
`
	g, err := parser.Parse(src)
	require.Nil(t, err)
	Resolve(g, DefaultViewport)

	container, _ := g.GetByID(id.Intern("layout_container"))
	assert.Truef(t, container.Bounds.W >= 100, "group width (%v) should be >= 100", container.Bounds.W)
	assert.Truef(t, container.Bounds.H >= 80, "group height (%v) should be >= 80", container.Bounds.H)
}

func TestResolveFrameDeclaredSize(t *testing.T) {
	src := `
frame @layout_card {
  w: 480
  h: 320
}
`
	g, err := parser.Parse(src)
	require.Nil(t, err)
	Resolve(g, DefaultViewport)

	card, _ := g.GetByID(id.Intern("layout_card"))
	assert.Equals(t, card.Bounds.W, 480.0, "frame should use declared width")
	assert.Equals(t, card.Bounds.H, 320.0, "frame should use declared height")
}

func TestResolveFillParent(t *testing.T) {
	src := `
frame @layout_outer {
  w: 400
  h: 300

  rect @layout_inner { w: 1 h: 1 }
}

@layout_inner -> fill_parent: 10
`
	g, err := parser.Parse(src)
	require.Nil(t, err)
	Resolve(g, DefaultViewport)

	inner, _ := g.GetByID(id.Intern("layout_inner"))
	assert.Equals(t, inner.Bounds.W, 380.0, "fill_parent width shrinks by 2*pad")
	assert.Equals(t, inner.Bounds.H, 280.0, "fill_parent height shrinks by 2*pad")
}
