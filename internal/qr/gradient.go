package qr

import "fmt"

// gradientID is the defs id referenced by every styled primitive fill in
// holographic mode.
const gradientID = "qr-gradient"

// Gradient is a two-stop gradient definition for holographic rendering.
// Linear directions map to fixed start/end coordinate fractions; radial
// ignores them and fills from the symbol center.
type Gradient struct {
	ID         string
	Radial     bool
	X1, Y1     float64 // start point, as fractions of the bounding box
	X2, Y2     float64 // end point
	Start, End string  // stop colors at 0% and 100%
}

// BuildGradient resolves the gradient definition for the given settings,
// applying per-field defaults at consumption time.
func BuildGradient(settings *StyleSettings) Gradient {
	g := Gradient{
		ID:    gradientID,
		Start: settings.gradientStart(),
		End:   settings.gradientEnd(),
	}
	switch settings.gradientDirection() {
	case GradientVertical:
		g.X2, g.Y2 = 0, 1
	case GradientDiagonal:
		g.X2, g.Y2 = 1, 1
	case GradientRadial:
		g.Radial = true
	default: // horizontal
		g.X2, g.Y2 = 1, 0
	}
	return g
}

// FillRef is the paint value primitives use to reference the gradient.
func (g Gradient) FillRef() string {
	return fmt.Sprintf("url(#%s)", g.ID)
}

// Def renders the <defs> entry for the gradient.
func (g Gradient) Def() string {
	stops := fmt.Sprintf(`<stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/>`,
		g.Start, g.End)
	if g.Radial {
		return fmt.Sprintf(`<radialGradient id="%s" cx="50%%" cy="50%%" r="50%%">%s</radialGradient>`, g.ID, stops)
	}
	return fmt.Sprintf(`<linearGradient id="%s" x1="%d%%" y1="%d%%" x2="%d%%" y2="%d%%">%s</linearGradient>`,
		g.ID, int(g.X1*100), int(g.Y1*100), int(g.X2*100), int(g.Y2*100), stops)
}
