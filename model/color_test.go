package model

import (
	"testing"

	"github.com/teleivo/assertive/assert"
)

func TestParseColor(t *testing.T) {
	tests := map[string]struct {
		in   string
		want Color
		ok   bool
	}{
		"ThreeDigit": {
			in:   "#fff",
			want: Color{R: 1, G: 1, B: 1, A: 1},
			ok:   true,
		},
		"FourDigit": {
			in:   "#0000",
			want: Color{R: 0, G: 0, B: 0, A: 0},
			ok:   true,
		},
		"SixDigit": {
			in:   "#ff0000",
			want: Color{R: 1, G: 0, B: 0, A: 1},
			ok:   true,
		},
		"EightDigit": {
			in:   "#ff000080",
			want: Color{R: 1, G: 0, B: 0, A: float64(0x80) / 255},
			ok:   true,
		},
		"NoHash": {
			in: "ff0000",
			ok: false,
		},
		"WrongLength": {
			in: "#ff000",
			ok: false,
		},
		"NotHex": {
			in: "#zzzzzz",
			ok: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			assert.Equals(t, ok, tt.ok, "ParseColor(%q) ok", tt.in)
			if tt.ok {
				assert.Equals(t, got, tt.want, "ParseColor(%q)", tt.in)
			}
		})
	}
}

func TestColorToHex(t *testing.T) {
	tests := map[string]struct {
		in   Color
		want string
	}{
		"Opaque": {
			in:   Color{R: 1, G: 0, B: 0, A: 1},
			want: "#FF0000",
		},
		"Transparent": {
			in:   Color{R: 0, G: 0, B: 0, A: 0},
			want: "#00000000",
		},
		"HalfAlpha": {
			in:   Color{R: 1, G: 1, B: 1, A: 0.5},
			want: "#FFFFFF80",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := tt.in.ToHex()
			assert.Equals(t, got, tt.want, "ToHex()")
		})
	}
}

func TestColorRoundTrip(t *testing.T) {
	tests := []string{"#000000", "#FFFFFF", "#112233", "#AABBCC80"}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			c, ok := ParseColor(in)
			assert.Truef(t, ok, "ParseColor(%q) should succeed", in)
			got := c.ToHex()
			assert.Equals(t, got, in, "round trip of %q", in)
		})
	}
}
