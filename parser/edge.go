package parser

import (
	"github.com/flowdesign/fd/id"
	"github.com/flowdesign/fd/model"
)

func parseEdgeBlock(c *cursor) (model.Edge, error) {
	if err := c.expect("edge"); err != nil {
		return model.Edge{}, err
	}
	c.skipSpace()

	var eid id.NodeId
	var err error
	if c.peek() == '@' {
		eid, err = parseNodeID(c)
		if err != nil {
			return model.Edge{}, err
		}
	} else {
		eid = id.Anonymous("edge")
	}
	c.skipSpace()
	if err := c.expect("{"); err != nil {
		return model.Edge{}, err
	}

	e := model.Edge{Id: eid}
	var fromSet, toSet bool

	c.skipWSAndComments()
	for c.peek() != '}' {
		if c.eof() {
			return model.Edge{}, newError(c.position(), "unterminated edge block %q", id.Resolve(eid))
		}
		if c.startsWith("##") {
			ann, err := parseAnnotation(c)
			if err != nil {
				return model.Edge{}, err
			}
			e.Annotations = append(e.Annotations, ann)
			c.skipWSAndComments()
			continue
		}
		if startsWithSpecKeyword(c) {
			anns, err := parseSpecAnnotations(c)
			if err != nil {
				return model.Edge{}, err
			}
			e.Annotations = append(e.Annotations, anns...)
			c.skipWSAndComments()
			continue
		}

		prop, err := c.parseIdentifier()
		if err != nil {
			return model.Edge{}, err
		}
		c.skipSpace()
		if err := c.expect(":"); err != nil {
			return model.Edge{}, err
		}
		c.skipSpace()

		switch prop {
		case "from":
			anchor, err := parseEdgeAnchor(c)
			if err != nil {
				return model.Edge{}, err
			}
			e.From = anchor
			fromSet = true
		case "to":
			anchor, err := parseEdgeAnchor(c)
			if err != nil {
				return model.Edge{}, err
			}
			e.To = anchor
			toSet = true
		case "label":
			s, err := c.parseQuotedString()
			if err != nil {
				return model.Edge{}, err
			}
			e.Label = s
		case "stroke":
			s, err := parseStrokeValue(c)
			if err != nil {
				return model.Edge{}, err
			}
			e.Stroke = model.StrokePtr(s)
		case "arrow":
			kind, err := c.parseIdentifier()
			if err != nil {
				return model.Edge{}, err
			}
			e.End = parseArrowKind(kind)
		case "curve":
			kind, err := c.parseIdentifier()
			if err != nil {
				return model.Edge{}, err
			}
			e.Curve = parseCurveKind(kind)
		case "use":
			ref, err := c.parseIdentifier()
			if err != nil {
				return model.Edge{}, err
			}
			e.UseStyles = append(e.UseStyles, ref)
		case "opacity":
			// Edges have no opacity field: the number is parsed so the
			// block parser stays in sync, and then discarded.
			if _, err := c.parseNumber(); err != nil {
				return model.Edge{}, err
			}
		default:
			c.skipUnknownValue()
		}
		c.skipOptSeparator()
		c.skipWSAndComments()
	}
	c.advance(1) // '}'

	if !fromSet {
		e.From = model.NodeAnchor(id.Intern("_missing"))
	}
	if !toSet {
		e.To = model.NodeAnchor(id.Intern("_missing"))
	}
	if e.Stroke == nil {
		e.Stroke = model.StrokePtr(model.DefaultStroke(model.Opaque(0.42, 0.44, 0.5), 1.5))
	}

	return e, nil
}

// parseEdgeAnchor parses either a `@node_id` node anchor or a `(x, y)`
// fixed-point anchor.
func parseEdgeAnchor(c *cursor) (model.EdgeAnchor, error) {
	if c.peek() == '(' {
		c.advance(1)
		c.skipSpace()
		x, err := c.parseNumber()
		if err != nil {
			return model.EdgeAnchor{}, err
		}
		c.skipSpace()
		if err := c.expect(","); err != nil {
			return model.EdgeAnchor{}, err
		}
		c.skipSpace()
		y, err := c.parseNumber()
		if err != nil {
			return model.EdgeAnchor{}, err
		}
		c.skipSpace()
		if err := c.expect(")"); err != nil {
			return model.EdgeAnchor{}, err
		}
		return model.PointAnchor(x, y), nil
	}
	nid, err := parseNodeID(c)
	if err != nil {
		return model.EdgeAnchor{}, err
	}
	return model.NodeAnchor(nid), nil
}

func parseArrowKind(s string) model.ArrowKind {
	switch s {
	case "open":
		return model.ArrowOpen
	case "filled":
		return model.ArrowFilled
	case "diamond":
		return model.ArrowDiamond
	default:
		return model.ArrowNone
	}
}

func parseCurveKind(s string) model.CurveKind {
	switch s {
	case "orthogonal", "step":
		return model.CurveOrthogonal
	case "bezier", "smooth":
		return model.CurveBezier
	default:
		return model.CurveStraight
	}
}
