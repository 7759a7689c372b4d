package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildGradientDirections(t *testing.T) {
	tests := []struct {
		dir    GradientDirection
		radial bool
		x2, y2 float64
	}{
		{GradientHorizontal, false, 1, 0},
		{GradientVertical, false, 0, 1},
		{GradientDiagonal, false, 1, 1},
		{GradientRadial, true, 0, 0},
		{"", false, 1, 0},
		{"swirl", false, 1, 0},
	}
	for _, tt := range tests {
		g := BuildGradient(&StyleSettings{GradientDirection: tt.dir})
		assert.Equal(t, tt.radial, g.Radial, "direction %q", tt.dir)
		if !tt.radial {
			assert.Equal(t, tt.x2, g.X2, "direction %q", tt.dir)
			assert.Equal(t, tt.y2, g.Y2, "direction %q", tt.dir)
		}
	}
}

func TestBuildGradientColorDefaults(t *testing.T) {
	g := BuildGradient(&StyleSettings{})
	assert.Equal(t, DefaultGradientStart, g.Start)
	assert.Equal(t, DefaultGradientEnd, g.End)

	g = BuildGradient(&StyleSettings{GradientStartColor: "#123456", GradientEndColor: "#abc"})
	assert.Equal(t, "#123456", g.Start)
	assert.Equal(t, "#abc", g.End)

	g = BuildGradient(&StyleSettings{GradientStartColor: "blue", GradientEndColor: "#12345g"})
	assert.Equal(t, DefaultGradientStart, g.Start, "non-hex colors fall back")
	assert.Equal(t, DefaultGradientEnd, g.End)
}

func TestGradientDefs(t *testing.T) {
	linear := BuildGradient(&StyleSettings{GradientDirection: GradientDiagonal})
	def := linear.Def()
	assert.Contains(t, def, `<linearGradient id="qr-gradient" x1="0%" y1="0%" x2="100%" y2="100%">`)
	assert.Contains(t, def, `<stop offset="0%" stop-color="`+DefaultGradientStart+`"/>`)
	assert.Contains(t, def, `<stop offset="100%" stop-color="`+DefaultGradientEnd+`"/>`)

	radial := BuildGradient(&StyleSettings{GradientDirection: GradientRadial})
	def = radial.Def()
	assert.Contains(t, def, `<radialGradient id="qr-gradient" cx="50%" cy="50%" r="50%">`)
	assert.Equal(t, "url(#qr-gradient)", radial.FillRef())
}
