package parser

import (
	"github.com/flowdesign/fd/id"
	"github.com/flowdesign/fd/model"
)

// Parse turns FD document text into a SceneGraph.
func Parse(src string) (*model.SceneGraph, error) {
	g := model.NewSceneGraph()
	c := newCursor(src)
	c.skipWSAndComments()

	for !c.eof() {
		switch {
		case c.startsWith("import "):
			imp, err := parseImportLine(c)
			if err != nil {
				return nil, err
			}
			g.AddImport(imp)

		case c.startsWith("style "):
			name, style, err := parseStyleBlock(c)
			if err != nil {
				return nil, err
			}
			g.DefineStyle(name, style)

		case c.startsWith("##"):
			// Top-level annotations only make sense attached to a node or
			// edge; at document scope they are inert and skipped.
			c.skipToEOL()

		case startsWithSpecKeyword(c):
			// Same as above: a spec block only means something attached to
			// a node or edge body.
			if _, err := parseSpecAnnotations(c); err != nil {
				return nil, err
			}

		case c.peek() == '@':
			nid, constraint, err := parseConstraintLine(c)
			if err != nil {
				return nil, err
			}
			if n, ok := g.GetByID(nid); ok {
				n.Constraints = append(n.Constraints, constraint)
			}

		case c.startsWith("edge "):
			e, err := parseEdgeBlock(c)
			if err != nil {
				return nil, err
			}
			g.AddEdge(e)

		case startsWithNodeKeyword(c.rest()):
			nb, err := parseNode(c)
			if err != nil {
				return nil, err
			}
			if err := installTree(g, id.NodeId(0), nb); err != nil {
				return nil, newError(c.position(), "%s", err)
			}

		default:
			c.skipToEOL()
		}
		c.skipWSAndComments()
	}

	return g, nil
}

var nodeKeywords = []string{"frame", "group", "rect", "ellipse", "text", "path", "image"}

func startsWithNodeKeyword(rest string) bool {
	for _, kw := range nodeKeywords {
		if len(rest) < len(kw) || rest[:len(kw)] != kw {
			continue
		}
		after := rest[len(kw):]
		if kw == "text" && len(after) > 0 && after[0] == '_' {
			continue // e.g. "text_align" is a property, not a node
		}
		if after == "" || isBoundary(after[0]) {
			return true
		}
	}
	return false
}

func isBoundary(b byte) bool {
	return b == ' ' || b == '\t' || b == '@' || b == '{' || b == '"'
}

// startsWithSpecKeyword reports whether the cursor sits at a `spec "…"` or
// `spec { … }` annotation block, as opposed to an identifier that merely
// begins with "spec".
func startsWithSpecKeyword(c *cursor) bool {
	const kw = "spec"
	rest := c.rest()
	if len(rest) < len(kw) || rest[:len(kw)] != kw {
		return false
	}
	after := rest[len(kw):]
	return after == "" || isBoundary(after[0])
}

// parseImportLine parses `import "path"` or `import "path" as ns`.
func parseImportLine(c *cursor) (model.Import, error) {
	if err := c.expect("import"); err != nil {
		return model.Import{}, err
	}
	c.skipSpace()
	path, err := c.parseQuotedString()
	if err != nil {
		return model.Import{}, err
	}
	c.skipSpace()
	ns := ""
	if c.startsWith("as") {
		c.advance(2)
		c.skipSpace()
		ns, err = c.parseIdentifier()
		if err != nil {
			return model.Import{}, err
		}
	}
	c.skipOptSeparator()
	return model.Import{Path: path, Namespace: ns}, nil
}

func parseStyleBlock(c *cursor) (string, model.Style, error) {
	if err := c.expect("style"); err != nil {
		return "", model.Style{}, err
	}
	c.skipSpace()
	name, err := c.parseIdentifier()
	if err != nil {
		return "", model.Style{}, err
	}
	c.skipSpace()
	if err := c.expect("{"); err != nil {
		return "", model.Style{}, err
	}

	var style model.Style
	c.skipWSAndComments()
	for c.peek() != '}' {
		if c.eof() {
			return "", model.Style{}, newError(c.position(), "unterminated style block %q", name)
		}
		if err := parseStyleProperty(c, &style); err != nil {
			return "", model.Style{}, err
		}
		c.skipWSAndComments()
	}
	c.advance(1) // '}'
	return name, style, nil
}

func parseStyleProperty(c *cursor, style *model.Style) error {
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
	case "fill":
		col, err := parseColorValue(c)
		if err != nil {
			return err
		}
		style.Fill = model.PaintPtr(model.SolidPaint(col))
	case "stroke":
		s, err := parseStrokeValue(c)
		if err != nil {
			return err
		}
		style.Stroke = model.StrokePtr(s)
	case "font":
		if err := parseFontValue(c, style); err != nil {
			return err
		}
	case "corner":
		v, err := c.parseNumber()
		if err != nil {
			return err
		}
		style.CornerRadius = model.Float64Ptr(v)
	case "opacity":
		v, err := c.parseNumber()
		if err != nil {
			return err
		}
		style.Opacity = model.Float64Ptr(v)
	case "shadow":
		s, err := parseShadowValue(c)
		if err != nil {
			return err
		}
		style.Shadow = model.ShadowPtr(s)
	case "text_align":
		v, err := c.parseIdentifier()
		if err != nil {
			return err
		}
		style.TextAlign = model.TextAlignPtr(parseTextAlign(v))
	case "text_valign":
		v, err := c.parseIdentifier()
		if err != nil {
			return err
		}
		style.TextVAlign = model.TextVAlignPtr(parseTextVAlign(v))
	default:
		c.skipUnknownValue()
	}
	c.skipOptSeparator()
	return nil
}

// skipUnknownValue discards the rest of an unrecognized property's value,
// stopping at a separator or block close so the surrounding block parser
// stays in sync.
func (c *cursor) skipUnknownValue() {
	for !c.eof() && c.peek() != '\n' && c.peek() != ';' && c.peek() != '}' {
		c.advance(1)
	}
}

func parseColorValue(c *cursor) (model.Color, error) {
	pos := c.position()
	tok, err := c.parseHexToken()
	if err != nil {
		return model.Color{}, err
	}
	col, ok := model.ParseColor(tok)
	if !ok {
		return model.Color{}, newError(pos, "invalid color %q", tok)
	}
	return col, nil
}

func parseStrokeValue(c *cursor) (model.Stroke, error) {
	col, err := parseColorValue(c)
	if err != nil {
		return model.Stroke{}, err
	}
	c.skipSpace()
	width, err := c.parseNumber()
	if err != nil {
		width = 1
	}
	return model.DefaultStroke(col, width), nil
}

func parseFontValue(c *cursor, style *model.Style) error {
	font := model.DefaultFontSpec
	if style.Font != nil {
		font = *style.Font
	}
	if c.peek() == '"' {
		family, err := c.parseQuotedString()
		if err != nil {
			return err
		}
		font.Family = family
		c.skipSpace()
	}
	if n1, err := c.parseNumber(); err == nil {
		c.skipSpace()
		if n2, err := c.parseNumber(); err == nil {
			font.Weight = int(n1)
			font.Size = n2
		} else {
			font.Size = n1
		}
	}
	style.Font = &font
	return nil
}

func parseShadowValue(c *cursor) (model.Shadow, error) {
	if err := c.expect("("); err != nil {
		return model.Shadow{}, err
	}
	ox, err := c.parseNumber()
	if err != nil {
		return model.Shadow{}, err
	}
	c.skipSpace()
	if err := c.expect(","); err != nil {
		return model.Shadow{}, err
	}
	c.skipSpace()
	oy, err := c.parseNumber()
	if err != nil {
		return model.Shadow{}, err
	}
	c.skipSpace()
	if err := c.expect(","); err != nil {
		return model.Shadow{}, err
	}
	c.skipSpace()
	blur, err := c.parseNumber()
	if err != nil {
		return model.Shadow{}, err
	}
	c.skipSpace()
	if err := c.expect(","); err != nil {
		return model.Shadow{}, err
	}
	c.skipSpace()
	col, err := parseColorValue(c)
	if err != nil {
		return model.Shadow{}, err
	}
	c.skipSpace()
	if err := c.expect(")"); err != nil {
		return model.Shadow{}, err
	}
	return model.Shadow{OffsetX: ox, OffsetY: oy, Blur: blur, Color: col}, nil
}

func parseNodeID(c *cursor) (id.NodeId, error) {
	if err := c.expect("@"); err != nil {
		return 0, err
	}
	name, err := c.parseIdentifier()
	if err != nil {
		return 0, err
	}
	return id.Intern(name), nil
}

func parseAnnotation(c *cursor) (model.Annotation, error) {
	if err := c.expect("##"); err != nil {
		return model.Annotation{}, err
	}
	c.skipSpace()

	checkpoint := *c
	if kw, err := c.parseIdentifier(); err == nil {
		c.skipSpace()
		if c.peek() == ':' {
			c.advance(1)
			c.skipSpace()
			value, err := parseAnnotationValue(c)
			if err != nil {
				return model.Annotation{}, err
			}
			c.skipOptSeparator()
			switch kw {
			case "accept":
				return model.Accept(value), nil
			case "status":
				return model.Status(value), nil
			case "priority":
				return model.Priority(value), nil
			case "tag":
				return model.Tag(value), nil
			default:
				return model.Description(kw + ": " + value), nil
			}
		}
		*c = checkpoint
	} else {
		*c = checkpoint
	}

	c.skipSpace()
	desc, err := parseAnnotationValue(c)
	if err != nil {
		return model.Annotation{}, err
	}
	c.skipOptSeparator()
	return model.Description(desc), nil
}

// parseSpecAnnotations parses the `spec "…"` single-description shorthand or
// a `spec { ann-item* }` block, returning every annotation it produces.
func parseSpecAnnotations(c *cursor) ([]model.Annotation, error) {
	if err := c.expect("spec"); err != nil {
		return nil, err
	}
	c.skipSpace()

	if c.peek() == '"' {
		desc, err := c.parseQuotedString()
		if err != nil {
			return nil, err
		}
		c.skipOptSeparator()
		return []model.Annotation{model.Description(desc)}, nil
	}

	if err := c.expect("{"); err != nil {
		return nil, err
	}
	var anns []model.Annotation
	c.skipWSAndComments()
	for c.peek() != '}' {
		if c.eof() {
			return nil, newError(c.position(), "unterminated spec block")
		}
		ann, err := parseSpecItem(c)
		if err != nil {
			return nil, err
		}
		anns = append(anns, ann)
		c.skipWSAndComments()
	}
	c.advance(1) // '}'
	c.skipOptSeparator()
	return anns, nil
}

// parseSpecItem parses one entry inside a `spec { … }` block: a bare quoted
// description, or a keyed accept/status/priority/tag line.
func parseSpecItem(c *cursor) (model.Annotation, error) {
	if c.peek() == '"' {
		s, err := c.parseQuotedString()
		if err != nil {
			return model.Annotation{}, err
		}
		c.skipOptSeparator()
		return model.Description(s), nil
	}

	kw, err := c.parseIdentifier()
	if err != nil {
		return model.Annotation{}, err
	}
	c.skipSpace()
	if err := c.expect(":"); err != nil {
		return model.Annotation{}, err
	}
	c.skipSpace()
	value, err := parseAnnotationValue(c)
	if err != nil {
		return model.Annotation{}, err
	}
	c.skipOptSeparator()
	switch kw {
	case "accept":
		return model.Accept(value), nil
	case "status":
		return model.Status(value), nil
	case "priority":
		return model.Priority(value), nil
	case "tag":
		return model.Tag(value), nil
	default:
		return model.Description(kw + ": " + value), nil
	}
}

func parseAnnotationValue(c *cursor) (string, error) {
	if c.peek() == '"' {
		return c.parseQuotedString()
	}
	start := c.pos
	for !c.eof() && c.peek() != '\n' && c.peek() != ';' {
		c.advance(1)
	}
	return trimSpace(c.src[start:c.pos]), nil
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpaceByte(s[start]) {
		start++
	}
	for end > start && isSpaceByte(s[end-1]) {
		end--
	}
	return s[start:end]
}

func parseConstraintLine(c *cursor) (id.NodeId, model.Constraint, error) {
	nid, err := parseNodeID(c)
	if err != nil {
		return 0, model.Constraint{}, err
	}
	c.skipSpace()
	if err := c.expect("->"); err != nil {
		return 0, model.Constraint{}, err
	}
	c.skipSpace()
	kind, err := c.parseIdentifier()
	if err != nil {
		return 0, model.Constraint{}, err
	}
	c.skipSpace()
	if err := c.expect(":"); err != nil {
		return 0, model.Constraint{}, err
	}
	c.skipSpace()

	var constraint model.Constraint
	switch kind {
	case "center_in":
		target, err := c.parseIdentifier()
		if err != nil {
			return 0, model.Constraint{}, err
		}
		constraint = model.CenterIn(id.Intern(target))
	case "offset":
		from, err := parseNodeID(c)
		if err != nil {
			return 0, model.Constraint{}, err
		}
		c.skipSpace()
		dx, err := c.parseNumber()
		if err != nil {
			return 0, model.Constraint{}, err
		}
		c.skipSpace()
		if err := c.expect(","); err != nil {
			return 0, model.Constraint{}, err
		}
		c.skipSpace()
		dy, err := c.parseNumber()
		if err != nil {
			return 0, model.Constraint{}, err
		}
		constraint = model.Offset(from, dx, dy)
	case "fill_parent":
		pad := 0.0
		if v, err := c.parseNumber(); err == nil {
			pad = v
		}
		constraint = model.FillParent(pad)
	case "absolute":
		x, err := c.parseNumber()
		if err != nil {
			return 0, model.Constraint{}, err
		}
		c.skipSpace()
		if err := c.expect(","); err != nil {
			return 0, model.Constraint{}, err
		}
		c.skipSpace()
		y, err := c.parseNumber()
		if err != nil {
			return 0, model.Constraint{}, err
		}
		constraint = model.Absolute(x, y)
	default:
		// Unknown constraint kind: skip the line and report no node, so
		// Parse attaches nothing.
		c.skipToEOL()
		return 0, model.Constraint{}, nil
	}

	c.skipOptSeparator()
	return nid, constraint, nil
}
