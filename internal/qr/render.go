package qr

import (
	"fmt"
	"strings"
)

// Renderer turns render requests into documents and bitmaps. The zero
// value is not usable; construct with New. Renderers are stateless and
// safe for concurrent use: every call is a pure function of its request.
type Renderer struct {
	encode EncodeFunc
	logos  LogoFetcher
}

// Option customizes a Renderer.
type Option func(*Renderer)

// WithEncoder overrides the symbol encoder. Used by tests to supply
// deterministic matrices.
func WithEncoder(fn EncodeFunc) Option {
	return func(r *Renderer) { r.encode = fn }
}

// WithLogoFetcher overrides how raster export resolves logo sources.
func WithLogoFetcher(f LogoFetcher) Option {
	return func(r *Renderer) { r.logos = f }
}

// New constructs a Renderer backed by the default encoder and logo
// fetcher.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		encode: Encode,
		logos:  newLogoFetcher(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// layout is the resolved geometry shared by vector and raster output.
type layout struct {
	req     RenderRequest
	matrix  Matrix
	margin  int
	level   Level
	styled  bool
	logo    *Placement // nil when no logo is composited
	logoSrc string
}

// resolve runs the full pipeline up to drawing: effective level, encode,
// overlay planning, excavation, and the per-type overrides. The raster
// flag selects the raster escalation rule.
func (r *Renderer) resolve(req RenderRequest, raster bool) (*layout, error) {
	req = req.normalized()

	excavating := req.ImageSettings != nil && req.ImageSettings.Excavate
	level := EffectiveLevel(req.Level, req.QRType, excavating, raster)

	matrix, err := r.encode(req.Value, level)
	if err != nil {
		return nil, err
	}

	margin := req.Margin
	logoAllowed := true
	switch req.QRType {
	case TypeMicro:
		// Micro trades quiet zone for footprint and is too small to
		// host a logo.
		if margin > 1 {
			margin = 1
		}
		logoAllowed = false
	case TypeCompact:
		logoAllowed = false
	}

	l := &layout{
		req:    req,
		matrix: matrix,
		margin: margin,
		level:  level,
		styled: req.styled(),
	}

	if logoAllowed && req.ImageSettings != nil && req.ImageSettings.Src != "" {
		placement := PlanOverlay(matrix.Side(), req.Size, req.ImageSettings)
		if placement.Excavation != nil {
			l.matrix = matrix.excavated(*placement.Excavation)
		}
		l.logo = &placement
		l.logoSrc = req.ImageSettings.Src
	}
	return l, nil
}

// Render assembles the vector document for a request: background,
// foreground (compressed path, or styled primitives plus gradient defs),
// and the optional logo, inside a viewBox of side+2*margin module units.
func (r *Renderer) Render(req RenderRequest) (*Document, error) {
	l, err := r.resolve(req, false)
	if err != nil {
		return nil, err
	}
	return composeSVG(l), nil
}

func composeSVG(l *layout) *Document {
	side := l.matrix.Side()
	cells := side + 2*l.margin
	req := l.req

	var sb strings.Builder
	fmt.Fprintf(&sb,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`,
		req.Size, req.Size, cells, cells)

	fill := req.FgColor
	if l.styled && req.QRType == TypeHolographic {
		g := BuildGradient(req.StyleSettings)
		fmt.Fprintf(&sb, `<defs>%s</defs>`, g.Def())
		fill = g.FillRef()
	}

	// Background covers the symbol plus quiet zone.
	fmt.Fprintf(&sb, `<path fill="%s" d="M0,0h%dv%dH0z"/>`, req.BgColor, cells, cells)

	if l.styled {
		for _, p := range StyledModules(l.matrix, l.margin, req.StyleSettings) {
			sb.WriteString(p.svgElement(fill))
		}
	} else {
		fmt.Fprintf(&sb, `<path fill="%s" d="%s"/>`, req.FgColor, GeneratePath(l.matrix, l.margin))
	}

	if l.logo != nil {
		// Vector-relative coordinates: the logo lives in module units so
		// the document scales as one piece.
		fmt.Fprintf(&sb,
			`<image href="%s" x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="none"/>`,
			escapeAttr(l.logoSrc),
			ftoa(l.logo.X+float64(l.margin)), ftoa(l.logo.Y+float64(l.margin)),
			ftoa(l.logo.W), ftoa(l.logo.H))
	}

	sb.WriteString(`</svg>`)
	return &Document{
		SVG:    sb.String(),
		Side:   side,
		Margin: l.margin,
		Size:   req.Size,
		Level:  l.level,
		QRType: req.QRType,
	}
}

// escapeAttr escapes the handful of characters that would break an XML
// attribute value.
func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
