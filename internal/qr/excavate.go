package qr

import "math"

// Rect is a rectangle in module-grid coordinates.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Placement is a resolved logo overlay: position and extent in module
// units (margin excluded), plus the excavation rectangle when the overlay
// requests one.
type Placement struct {
	X, Y       float64
	W, H       float64
	Excavation *Rect
}

// PlanOverlay converts an overlay's pixel geometry into module units for a
// matrix of the given side rendered at sizePx pixels. Omitted width and
// height default to a fixed fraction of the rendered size; an omitted
// position centers the logo.
//
// The excavation floors the origin and ceils the extent so the cleared
// region always fully covers the scaled logo footprint; it may over-cover
// by up to one module per axis. The rectangle is clamped to the matrix
// bounds, which preserves full coverage for any logo that fits inside the
// symbol.
func PlanOverlay(side, sizePx int, is *ImageSettings) Placement {
	scale := float64(side) / float64(sizePx)
	defaultPx := math.Floor(float64(sizePx) * defaultLogoFraction)

	wPx := defaultPx
	if is.Width > 0 {
		wPx = float64(is.Width)
	}
	hPx := defaultPx
	if is.Height > 0 {
		hPx = float64(is.Height)
	}
	w := wPx * scale
	h := hPx * scale

	var x, y float64
	if is.X == nil {
		x = float64(side)/2 - w/2
	} else {
		x = float64(*is.X) * scale
	}
	if is.Y == nil {
		y = float64(side)/2 - h/2
	} else {
		y = float64(*is.Y) * scale
	}

	p := Placement{X: x, Y: y, W: w, H: h}
	if is.Excavate {
		floorX := int(math.Floor(x))
		floorY := int(math.Floor(y))
		ceilW := int(math.Ceil(w + x - float64(floorX)))
		ceilH := int(math.Ceil(h + y - float64(floorY)))
		r := clampRect(Rect{X: floorX, Y: floorY, W: ceilW, H: ceilH}, side)
		p.Excavation = &r
	}
	return p
}

// clampRect trims r to the side*side grid. Zero-area results are legal;
// excavating them is a no-op.
func clampRect(r Rect, side int) Rect {
	if r.X < 0 {
		r.W += r.X
		r.X = 0
	}
	if r.Y < 0 {
		r.H += r.Y
		r.Y = 0
	}
	if r.X+r.W > side {
		r.W = side - r.X
	}
	if r.Y+r.H > side {
		r.H = side - r.Y
	}
	if r.W < 0 {
		r.W = 0
	}
	if r.H < 0 {
		r.H = 0
	}
	return r
}

// EffectiveLevel resolves the error-correction level actually requested
// from the encoder. L and M escalate to Q when a raster context carries an
// excavating overlay, and unconditionally for the custom and holographic
// types. Levels only ever escalate; overflow at the escalated level
// surfaces as-is.
func EffectiveLevel(l Level, qt QRType, excavating, raster bool) Level {
	if l != LevelL && l != LevelM {
		return l
	}
	if qt == TypeCustom || qt == TypeHolographic {
		return LevelQ
	}
	if raster && excavating {
		return LevelQ
	}
	return l
}
