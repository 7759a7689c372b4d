package qr

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"

	xdraw "golang.org/x/image/draw"
)

const jpegQuality = 95

// RenderRaster converts a request to bitmap bytes by redrawing the same
// primitives the vector form uses, in the same order: background, then
// foreground, then logo. Module boundaries land on exact integer
// multiples of the computed cell size, so exported assets scan as well as
// the preview. The context bounds the logo fetch only; the drawing itself
// is pure computation.
func (r *Renderer) RenderRaster(ctx context.Context, req RenderRequest, format RasterFormat) ([]byte, error) {
	l, err := r.resolve(req, true)
	if err != nil {
		return nil, err
	}

	img, err := r.drawRaster(ctx, l)
	if err != nil {
		return nil, newError(KindRasterFailure, "raster conversion failed", err)
	}

	var buf bytes.Buffer
	switch format {
	case FormatJPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, newError(KindRasterFailure, "encode bitmap", err)
	}
	return buf.Bytes(), nil
}

// rasterGrid is the pixel geometry of one raster render: an integer cell
// size and the offset that centers the symbol on the canvas.
type rasterGrid struct {
	size   int // canvas edge, pixels
	cells  int // side + 2*margin
	cell   int // pixels per module, integer
	offset int // top-left of the symbol region
}

func newRasterGrid(size, side, margin int) rasterGrid {
	cells := side + 2*margin
	cell := size / cells
	if cell < 1 {
		cell = 1
	}
	return rasterGrid{
		size:   size,
		cells:  cells,
		cell:   cell,
		offset: (size - cells*cell) / 2,
	}
}

func (g rasterGrid) symbolPx() int { return g.cells * g.cell }

func (r *Renderer) drawRaster(ctx context.Context, l *layout) (image.Image, error) {
	req := l.req
	grid := newRasterGrid(req.Size, l.matrix.Side(), l.margin)

	img := image.NewNRGBA(image.Rect(0, 0, grid.size, grid.size))
	fillRect(img, img.Bounds(), parseHexColor(req.BgColor))

	paint := newModulePaint(l, grid)
	if l.styled {
		for _, p := range StyledModules(l.matrix, l.margin, req.StyleSettings) {
			drawPrimitive(img, grid, p, paint)
		}
	} else {
		fg := parseHexColor(req.FgColor)
		side := l.matrix.Side()
		for y := 0; y < side; y++ {
			for x := 0; x < side; x++ {
				if !l.matrix.Dark(x, y) {
					continue
				}
				px := grid.offset + (x+l.margin)*grid.cell
				py := grid.offset + (y+l.margin)*grid.cell
				fillRect(img, image.Rect(px, py, px+grid.cell, py+grid.cell), fg)
			}
		}
	}

	if l.logo != nil {
		if err := r.drawLogo(ctx, img, grid, l); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// drawLogo fetches, scales and composites the overlay at the placement
// computed by the excavation planner, in absolute pixel coordinates.
func (r *Renderer) drawLogo(ctx context.Context, img *image.NRGBA, grid rasterGrid, l *layout) error {
	logo, err := r.logos.Fetch(ctx, l.logoSrc)
	if err != nil {
		return err
	}
	x0 := grid.offset + int(math.Round((l.logo.X+float64(l.margin))*float64(grid.cell)))
	y0 := grid.offset + int(math.Round((l.logo.Y+float64(l.margin))*float64(grid.cell)))
	w := int(math.Round(l.logo.W * float64(grid.cell)))
	h := int(math.Round(l.logo.H * float64(grid.cell)))
	dst := image.Rect(x0, y0, x0+w, y0+h)
	xdraw.ApproxBiLinear.Scale(img, dst, logo, logo.Bounds(), xdraw.Over, nil)
	return nil
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// modulePaint resolves the foreground color for a pixel. Solid fills
// return one color; holographic fills interpolate the configured gradient
// across the symbol region, matching the vector gradient geometry.
type modulePaint func(px, py int) color.NRGBA

func newModulePaint(l *layout, grid rasterGrid) modulePaint {
	req := l.req
	if !(l.styled && req.QRType == TypeHolographic) {
		fg := parseHexColor(req.FgColor)
		return func(int, int) color.NRGBA { return fg }
	}

	g := BuildGradient(req.StyleSettings)
	start := parseHexColor(g.Start)
	end := parseHexColor(g.End)
	extent := float64(grid.symbolPx())
	origin := float64(grid.offset)

	return func(px, py int) color.NRGBA {
		fx := float64(px) - origin
		fy := float64(py) - origin
		var t float64
		if g.Radial {
			cx := extent / 2
			dx := fx - cx
			dy := fy - cx
			t = math.Sqrt(dx*dx+dy*dy) / cx
		} else {
			// Project onto the gradient axis given by the coordinate
			// fraction pair.
			dx := g.X2 - g.X1
			dy := g.Y2 - g.Y1
			t = (fx*dx + fy*dy) / (extent * (dx*dx + dy*dy))
		}
		return lerpColor(start, end, clamp01(t))
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: 0xFF,
	}
}

// drawPrimitive redraws one styled-mode primitive with per-pixel coverage
// so the bitmap matches the vector shapes.
func drawPrimitive(img *image.NRGBA, grid rasterGrid, p Primitive, paint modulePaint) {
	x0 := grid.offset + int(math.Floor(p.X*float64(grid.cell)))
	y0 := grid.offset + int(math.Floor(p.Y*float64(grid.cell)))
	x1 := grid.offset + int(math.Ceil((p.X+p.W)*float64(grid.cell)))
	y1 := grid.offset + int(math.Ceil((p.Y+p.H)*float64(grid.cell)))

	bounds := image.Rect(x0, y0, x1, y1).Intersect(img.Bounds())
	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			// Pixel center in primitive-local unit coordinates.
			u := ((float64(px) + 0.5 - float64(grid.offset)) / float64(grid.cell)) - p.X
			v := ((float64(py) + 0.5 - float64(grid.offset)) / float64(grid.cell)) - p.Y
			if coversUnit(p, u/p.W, v/p.H) {
				img.SetNRGBA(px, py, paint(px, py))
			}
		}
	}
}

// coversUnit tests whether the unit-square point (u, v) in [0,1]^2 is
// inside the primitive's shape.
func coversUnit(p Primitive, u, v float64) bool {
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return false
	}
	switch p.Kind {
	case ShapeCircle:
		du := u - 0.5
		dv := v - 0.5
		return du*du+dv*dv <= 0.25
	case ShapeDiamond:
		return math.Abs(u-0.5)+math.Abs(v-0.5) <= 0.5
	case ShapeRoundedRect:
		r := p.Rx / p.W // radius back in unit-square terms
		du := math.Max(math.Max(r-u, u-(1-r)), 0)
		dv := math.Max(math.Max(r-v, v-(1-r)), 0)
		return du*du+dv*dv <= r*r || du == 0 || dv == 0
	default:
		return true
	}
}
