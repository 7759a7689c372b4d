package qr

import (
	"fmt"
	"strings"
)

// ShapeKind identifies the primitive emitted for one dark module.
type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeRoundedRect
	ShapeCircle
	ShapeDiamond
)

// Primitive is one drawable mark in styled mode. Coordinates are in
// module units with the margin already applied. Rx is the corner radius
// for rounded rects; Finder marks take the finder fill treatment.
type Primitive struct {
	Kind   ShapeKind
	X, Y   float64
	W, H   float64
	Rx     float64
	Finder bool
}

// isFinder reports whether the module at (x, y) of an unmargined matrix
// with the given side falls inside one of the three fixed 7x7 finder
// blocks: top-left, top-right, bottom-left. Finder size and placement are
// fixed for every symbol version, so no pattern search is needed.
func isFinder(x, y, side int) bool {
	if x < 7 && y < 7 {
		return true
	}
	if x >= side-7 && y < 7 {
		return true
	}
	if x < 7 && y >= side-7 {
		return true
	}
	return false
}

// StyledModules emits one primitive per dark module, row-major so the
// ordering is deterministic for snapshot comparisons. Finder modules take
// the corner style at full module size; all other modules take the dot
// style inset by a fixed padding.
func StyledModules(m Matrix, margin int, settings *StyleSettings) []Primitive {
	dot := settings.dotStyle()
	corner := settings.cornerStyle()
	side := m.Side()

	var prims []Primitive
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			if !m.Dark(x, y) {
				continue
			}
			fx := float64(x + margin)
			fy := float64(y + margin)
			if isFinder(x, y, side) {
				prims = append(prims, finderPrimitive(fx, fy, corner))
			} else {
				prims = append(prims, dotPrimitive(fx, fy, dot))
			}
		}
	}
	return prims
}

func finderPrimitive(x, y float64, style CornerStyle) Primitive {
	p := Primitive{X: x, Y: y, W: 1, H: 1, Finder: true}
	switch style {
	case CornerRounded:
		p.Kind = ShapeRoundedRect
		p.Rx = 0.3
	case CornerCircle:
		p.Kind = ShapeCircle
	default:
		p.Kind = ShapeRect
	}
	return p
}

func dotPrimitive(x, y float64, style DotStyle) Primitive {
	p := Primitive{
		X: x + dotPadding,
		Y: y + dotPadding,
		W: 1 - 2*dotPadding,
		H: 1 - 2*dotPadding,
	}
	switch style {
	case DotRounded:
		p.Kind = ShapeRoundedRect
		p.Rx = 0.25
	case DotCircle:
		p.Kind = ShapeCircle
	case DotDiamond:
		p.Kind = ShapeDiamond
	default:
		p.Kind = ShapeRect
	}
	return p
}

// svgElement renders the primitive as one SVG element with the given fill
// attribute value.
func (p Primitive) svgElement(fill string) string {
	switch p.Kind {
	case ShapeCircle:
		r := p.W / 2
		return fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="%s"/>`,
			ftoa(p.X+p.W/2), ftoa(p.Y+p.H/2), ftoa(r), fill)
	case ShapeRoundedRect:
		return fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s"/>`,
			ftoa(p.X), ftoa(p.Y), ftoa(p.W), ftoa(p.H), ftoa(p.Rx), fill)
	case ShapeDiamond:
		cx := p.X + p.W/2
		cy := p.Y + p.H/2
		return fmt.Sprintf(`<path d="M%s %sL%s %sL%s %sL%s %sZ" fill="%s"/>`,
			ftoa(cx), ftoa(p.Y), ftoa(p.X+p.W), ftoa(cy), ftoa(cx), ftoa(p.Y+p.H), ftoa(p.X), ftoa(cy), fill)
	default:
		return fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
			ftoa(p.X), ftoa(p.Y), ftoa(p.W), ftoa(p.H), fill)
	}
}

// ftoa formats module-unit coordinates compactly: integers stay bare,
// fractions keep two decimals. Stable formatting keeps identical requests
// byte-identical.
func ftoa(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
