package parser

import "github.com/flowdesign/fd/model"

func parseAnimBlock(c *cursor) (model.Animation, error) {
	if err := c.expect("anim"); err != nil {
		return model.Animation{}, err
	}
	c.skipSpace()
	if err := c.expect(":"); err != nil {
		return model.Animation{}, err
	}
	triggerStr, err := c.parseIdentifier()
	if err != nil {
		return model.Animation{}, err
	}
	trigger := parseAnimTrigger(triggerStr)

	c.skipSpace()
	if err := c.expect("{"); err != nil {
		return model.Animation{}, err
	}

	var props model.AnimProperties
	durationSeconds := 0.3
	easing := model.EaseInOutCubic

	c.skipWSAndComments()
	for c.peek() != '}' {
		if c.eof() {
			return model.Animation{}, newError(c.position(), "unterminated anim block")
		}
		prop, err := c.parseIdentifier()
		if err != nil {
			return model.Animation{}, err
		}
		c.skipSpace()
		if err := c.expect(":"); err != nil {
			return model.Animation{}, err
		}
		c.skipSpace()

		switch prop {
		case "fill":
			col, err := parseColorValue(c)
			if err != nil {
				return model.Animation{}, err
			}
			p := model.SolidPaint(col)
			props.Fill = &p
		case "opacity":
			v, err := c.parseNumber()
			if err != nil {
				return model.Animation{}, err
			}
			props.Opacity = &v
		case "scale":
			v, err := c.parseNumber()
			if err != nil {
				return model.Animation{}, err
			}
			props.Scale = &v
		case "rotate", "translate":
			// Rotation/translation are layout concerns (see constraints),
			// not style; the value is consumed so the block stays in sync
			// but intentionally has nowhere to land.
			if _, err := c.parseNumber(); err != nil {
				return model.Animation{}, err
			}
		case "ease":
			name, err := c.parseIdentifier()
			if err != nil {
				return model.Animation{}, err
			}
			easing = parseEasing(name)
			c.skipSpace()
			if d, err := c.parseNumber(); err == nil {
				if c.startsWith("ms") {
					c.advance(2)
					durationSeconds = d / 1000
				} else {
					durationSeconds = d
				}
			}
		default:
			c.skipUnknownValue()
		}
		c.skipOptSeparator()
		c.skipWSAndComments()
	}
	c.advance(1) // '}'

	return model.Animation{
		Trigger: trigger,
		Keyframes: []model.AnimKeyframe{
			{T: durationSeconds, Easing: easing, Properties: props},
		},
	}, nil
}

func parseAnimTrigger(s string) model.AnimTrigger {
	switch s {
	case "press":
		return model.TriggerPress
	case "focus":
		return model.TriggerFocus
	case "open", "enter":
		return model.TriggerOpen
	default:
		return model.TriggerHover
	}
}

func parseEasing(s string) model.Easing {
	switch s {
	case "linear":
		return model.EaseLinear
	case "ease_in", "easeIn":
		return model.EaseInCubic
	case "ease_out", "easeOut":
		return model.EaseOutCubic
	case "ease_in_out", "easeInOut", "spring":
		return model.EaseInOutCubic
	default:
		return model.EaseInOutCubic
	}
}
