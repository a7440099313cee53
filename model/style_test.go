package model

import (
	"testing"

	"github.com/teleivo/assertive/assert"
)

func TestMergeStyle(t *testing.T) {
	red := PaintPtr(SolidPaint(Opaque(1, 0, 0)))
	blue := PaintPtr(SolidPaint(Opaque(0, 0, 1)))

	tests := map[string]struct {
		dst  Style
		src  Style
		want Style
	}{
		"EmptySrcKeepsDst": {
			dst:  Style{Fill: red},
			src:  Style{},
			want: Style{Fill: red},
		},
		"SrcOverwritesDst": {
			dst:  Style{Fill: red},
			src:  Style{Fill: blue},
			want: Style{Fill: blue},
		},
		"SrcAddsUnsetField": {
			dst:  Style{Fill: red},
			src:  Style{Opacity: Float64Ptr(0.5)},
			want: Style{Fill: red, Opacity: Float64Ptr(0.5)},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := mergeStyle(tt.dst, tt.src)
			assert.Truef(t, stylesEqual(got, tt.want), "mergeStyle() = %+v, want %+v", got, tt.want)
		})
	}
}

func stylesEqual(a, b Style) bool {
	if (a.Fill == nil) != (b.Fill == nil) {
		return false
	}
	if a.Fill != nil && !a.Fill.Equal(*b.Fill) {
		return false
	}
	if (a.Opacity == nil) != (b.Opacity == nil) {
		return false
	}
	if a.Opacity != nil && *a.Opacity != *b.Opacity {
		return false
	}
	return true
}
