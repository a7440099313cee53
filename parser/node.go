package parser

import (
	"github.com/flowdesign/fd/id"
	"github.com/flowdesign/fd/model"
)

// nodeBuild is the parser's working representation of a node and its
// not-yet-attached subtree, kept separate from model.SceneNode so recursive
// parsing never has to reach into a live SceneGraph.
type nodeBuild struct {
	node     *model.SceneNode
	children []*nodeBuild
}

// installTree adds nb and its entire subtree into g, parenting nb under
// parent.
func installTree(g *model.SceneGraph, parent id.NodeId, nb *nodeBuild) error {
	if err := g.AddNode(parent, nb.node); err != nil {
		return err
	}
	for _, child := range nb.children {
		if err := installTree(g, nb.node.Id, child); err != nil {
			return err
		}
	}
	return nil
}

func parseNode(c *cursor) (*nodeBuild, error) {
	kindStr, err := c.parseIdentifier()
	if err != nil {
		return nil, err
	}
	c.skipSpace()

	var nid id.NodeId
	if c.peek() == '@' {
		nid, err = parseNodeID(c)
		if err != nil {
			return nil, err
		}
	} else {
		nid = id.Anonymous(kindStr)
	}
	c.skipSpace()

	var inlineText string
	hasInlineText := false
	if kindStr == "text" && c.peek() == '"' {
		inlineText, err = c.parseQuotedString()
		if err != nil {
			return nil, err
		}
		hasInlineText = true
	}
	c.skipSpace()

	var inlineSrc string
	if kindStr == "image" && c.peek() == '"' {
		inlineSrc, err = c.parseQuotedString()
		if err != nil {
			return nil, err
		}
	}
	c.skipSpace()

	if err := c.expect("{"); err != nil {
		return nil, err
	}

	n := &model.SceneNode{Id: nid, Layout: model.FreeLayout}
	var width, height *float64
	var children []*nodeBuild

	c.skipWSAndComments()
	for c.peek() != '}' {
		if c.eof() {
			return nil, newError(c.position(), "unterminated node block %q", id.Resolve(nid))
		}
		switch {
		case c.startsWith("##"):
			ann, err := parseAnnotation(c)
			if err != nil {
				return nil, err
			}
			n.Annotations = append(n.Annotations, ann)
		case startsWithSpecKeyword(c):
			anns, err := parseSpecAnnotations(c)
			if err != nil {
				return nil, err
			}
			n.Annotations = append(n.Annotations, anns...)
		case startsWithNodeKeyword(c.rest()):
			child, err := parseNode(c)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child.node.Id)
			children = append(children, child)
		case c.startsWith("anim"):
			anim, err := parseAnimBlock(c)
			if err != nil {
				return nil, err
			}
			n.Animations = append(n.Animations, anim)
		default:
			if err := parseNodeProperty(c, n, &width, &height); err != nil {
				return nil, err
			}
		}
		c.skipWSAndComments()
	}
	c.advance(1) // '}'

	switch kindStr {
	case "frame":
		n.Kind = model.KindFrame
	case "group":
		n.Kind = model.KindGroup
	case "rect":
		n.Kind = model.KindRect
	case "ellipse":
		n.Kind = model.KindEllipse
	case "path":
		n.Kind = model.KindPath
	case "image":
		n.Kind = model.KindImage
		n.Src = inlineSrc
	case "text":
		n.Kind = model.KindText
		if hasInlineText {
			n.Text = inlineText
		}
	}
	if width != nil {
		n.W = *width
	}
	if height != nil {
		n.H = *height
	}

	return &nodeBuild{node: n, children: children}, nil
}

func parseNodeProperty(c *cursor, n *model.SceneNode, width, height **float64) error {
	name, err := c.parseIdentifier()
	if err != nil {
		return err
	}
	c.skipSpace()
	if err := c.expect(":"); err != nil {
		return err
	}
	c.skipSpace()

	switch name {
	case "w", "width":
		v, err := c.parseNumber()
		if err != nil {
			return err
		}
		*width = &v
		c.skipSpace()
		if c.startsWith("h:") || c.startsWith("h :") {
			c.parseIdentifier()
			c.skipSpace()
			c.expect(":")
			c.skipSpace()
			hv, err := c.parseNumber()
			if err != nil {
				return err
			}
			*height = &hv
		}
	case "h", "height":
		v, err := c.parseNumber()
		if err != nil {
			return err
		}
		*height = &v
	case "fill":
		col, err := parseColorValue(c)
		if err != nil {
			return err
		}
		n.Style.Fill = model.PaintPtr(model.SolidPaint(col))
	case "bg":
		col, err := parseColorValue(c)
		if err != nil {
			return err
		}
		n.Style.Fill = model.PaintPtr(model.SolidPaint(col))
	bgModifiers:
		for {
			c.skipSpace()
			switch {
			case c.startsWith("corner="):
				c.advance(len("corner="))
				v, err := c.parseNumber()
				if err != nil {
					return err
				}
				n.Style.CornerRadius = model.Float64Ptr(v)
			case c.startsWith("shadow=("):
				c.advance(len("shadow=("))
				s, err := parseShadowArgs(c)
				if err != nil {
					return err
				}
				n.Style.Shadow = model.ShadowPtr(s)
			default:
				break bgModifiers
			}
		}
	case "stroke":
		s, err := parseStrokeValue(c)
		if err != nil {
			return err
		}
		n.Style.Stroke = model.StrokePtr(s)
	case "corner":
		v, err := c.parseNumber()
		if err != nil {
			return err
		}
		n.Style.CornerRadius = model.Float64Ptr(v)
	case "opacity":
		v, err := c.parseNumber()
		if err != nil {
			return err
		}
		n.Style.Opacity = model.Float64Ptr(v)
	case "shadow":
		s, err := parseShadowValue(c)
		if err != nil {
			return err
		}
		n.Style.Shadow = model.ShadowPtr(s)
	case "use":
		ref, err := c.parseIdentifier()
		if err != nil {
			return err
		}
		n.UseStyles = append(n.UseStyles, ref)
	case "font":
		if err := parseFontValue(c, &n.Style); err != nil {
			return err
		}
	case "clip":
		ident, err := c.parseIdentifier()
		if err != nil {
			return err
		}
		n.Clip = ident == "true"
	case "label":
		s, err := c.parseQuotedString()
		if err != nil {
			return err
		}
		n.Label = s
	case "text_align":
		v, err := c.parseIdentifier()
		if err != nil {
			return err
		}
		align := parseTextAlign(v)
		n.Style.TextAlign = model.TextAlignPtr(align)
	case "text_valign":
		v, err := c.parseIdentifier()
		if err != nil {
			return err
		}
		n.Style.TextVAlign = model.TextVAlignPtr(parseTextVAlign(v))
	case "src":
		s, err := c.parseQuotedString()
		if err != nil {
			return err
		}
		n.Src = s
	case "layout":
		mode, err := c.parseIdentifier()
		if err != nil {
			return err
		}
		c.skipSpace()
		gap, pad, cols := 0.0, 0.0, 2
	layoutModifiers:
		for {
			c.skipSpace()
			switch {
			case c.startsWith("gap="):
				c.advance(len("gap="))
				v, err := c.parseNumber()
				if err != nil {
					return err
				}
				gap = v
			case c.startsWith("pad="):
				c.advance(len("pad="))
				v, err := c.parseNumber()
				if err != nil {
					return err
				}
				pad = v
			case c.startsWith("cols="):
				c.advance(len("cols="))
				v, err := c.parseNumber()
				if err != nil {
					return err
				}
				cols = int(v)
			default:
				break layoutModifiers
			}
		}
		switch mode {
		case "column":
			n.Layout = model.ColumnLayout(gap, pad)
		case "row":
			n.Layout = model.RowLayout(gap, pad)
		case "grid":
			n.Layout = model.GridLayout(cols, gap, pad)
		default:
			n.Layout = model.FreeLayout
		}
	default:
		c.skipUnknownValue()
	}

	c.skipOptSeparator()
	return nil
}

func parseShadowArgs(c *cursor) (model.Shadow, error) {
	ox, err := c.parseNumber()
	if err != nil {
		return model.Shadow{}, err
	}
	if err := c.expect(","); err != nil {
		return model.Shadow{}, err
	}
	oy, err := c.parseNumber()
	if err != nil {
		return model.Shadow{}, err
	}
	if err := c.expect(","); err != nil {
		return model.Shadow{}, err
	}
	blur, err := c.parseNumber()
	if err != nil {
		return model.Shadow{}, err
	}
	if err := c.expect(","); err != nil {
		return model.Shadow{}, err
	}
	col, err := parseColorValue(c)
	if err != nil {
		return model.Shadow{}, err
	}
	if err := c.expect(")"); err != nil {
		return model.Shadow{}, err
	}
	return model.Shadow{OffsetX: ox, OffsetY: oy, Blur: blur, Color: col}, nil
}

func parseTextAlign(s string) model.TextAlign {
	switch s {
	case "center":
		return model.AlignCenter
	case "end":
		return model.AlignEnd
	default:
		return model.AlignStart
	}
}

func parseTextVAlign(s string) model.TextVAlign {
	switch s {
	case "middle":
		return model.VAlignMiddle
	case "bottom":
		return model.VAlignBottom
	default:
		return model.VAlignTop
	}
}
