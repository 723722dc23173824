package viz

import (
	"image/color"
	"math"

	"github.com/Garsondee/Pass-Sense/internal/pass"
)

// UtilityColor maps a utility onto a red to green ramp; values outside [0,1]
// are clamped.
func UtilityColor(u float64) color.RGBA {
	if u < 0 || math.IsNaN(u) {
		u = 0
	}
	if u > 1 {
		u = 1
	}
	return color.RGBA{R: uint8(255 * (1 - u)), G: uint8(255 * u), A: 255}
}

// view maps field millimetres onto screen pixels. Field +x points right and
// +y (the left sideline) points up.
type view struct {
	field  pass.Field
	scale  float32 // pixels per millimetre
	border float32
}

func newView(f pass.Field, widthPx int, border float32) view {
	span := float32(2 * f.XOpponentGroundLine)
	return view{field: f, scale: (float32(widthPx) - 2*border) / span, border: border}
}

// toScreen returns the pixel position of p.
func (v view) toScreen(p pass.Vec2) (float32, float32) {
	x := v.border + float32(p.X+v.field.XOpponentGroundLine)*v.scale
	y := v.border + float32(v.field.YLeftSideline-p.Y)*v.scale
	return x, y
}

// length converts a field distance to pixels.
func (v view) length(mm float64) float32 {
	return float32(mm) * v.scale
}

// size is the window size needed to show the whole field.
func (v view) size() (int, int) {
	w := 2*v.border + v.length(2*v.field.XOpponentGroundLine)
	h := 2*v.border + v.length(v.field.YLeftSideline-v.field.YRightSideline)
	return int(w + 0.5), int(h + 0.5)
}
