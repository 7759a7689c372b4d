// Package qr converts an encoded QR module matrix into styled vector and
// raster artifacts. The symbol encoder itself is an external collaborator;
// everything here is geometry, styling and composition over its output.
package qr

import (
	"fmt"
	"image/color"
	"regexp"
)

// Level is a QR error-correction level, low to high.
type Level string

const (
	LevelL Level = "L"
	LevelM Level = "M"
	LevelQ Level = "Q"
	LevelH Level = "H"
)

// ParseLevel maps a level name to a Level, falling back to L for anything
// unrecognized rather than erroring.
func ParseLevel(s string) Level {
	switch s {
	case "L", "M", "Q", "H":
		return Level(s)
	}
	return LevelL
}

// QRType selects the rendering variant for a request.
type QRType string

const (
	TypeStandard    QRType = "standard"
	TypeMicro       QRType = "micro"
	TypeCompact     QRType = "compact"
	TypeCustom      QRType = "custom"
	TypeHolographic QRType = "holographic"
	TypeCube3D      QRType = "cube3d"
)

// ParseQRType returns the QRType for a name, defaulting to standard.
func ParseQRType(s string) QRType {
	switch QRType(s) {
	case TypeStandard, TypeMicro, TypeCompact, TypeCustom, TypeHolographic, TypeCube3D:
		return QRType(s)
	}
	return TypeStandard
}

// DotStyle shapes the non-finder dark modules in styled mode.
type DotStyle string

const (
	DotSquare  DotStyle = "square"
	DotRounded DotStyle = "rounded"
	DotCircle  DotStyle = "circle"
	DotDiamond DotStyle = "diamond"
)

// CornerStyle shapes the three finder patterns in styled mode.
type CornerStyle string

const (
	CornerSquare  CornerStyle = "square"
	CornerRounded CornerStyle = "rounded"
	CornerCircle  CornerStyle = "circle"
)

// GradientDirection selects the gradient geometry for holographic mode.
type GradientDirection string

const (
	GradientHorizontal GradientDirection = "horizontal"
	GradientVertical   GradientDirection = "vertical"
	GradientDiagonal   GradientDirection = "diagonal"
	GradientRadial     GradientDirection = "radial"
)

// Rendering defaults. The HTTP layer and the renderer share these so a
// request with identical fields always produces byte-identical output.
const (
	DefaultSize          = 600
	DefaultMargin        = 2
	DefaultFgColor       = "#000000"
	DefaultBgColor       = "#FFFFFF"
	DefaultGradientStart = "#8A2BE2"
	DefaultGradientEnd   = "#00CED1"

	// Logo width/height default to this fraction of the rendered size
	// when ImageSettings omits them.
	defaultLogoFraction = 0.1

	// Inset applied to each non-finder dark module in styled mode, in
	// module units, so adjacent dots read as separate marks.
	dotPadding = 0.1
)

// StyleSettings carries per-module styling overrides. Every field is
// optional; zero values are defaulted where they are consumed, not at
// construction, so serialized settings only ever store overrides.
type StyleSettings struct {
	DotStyle           DotStyle          `json:"dotStyle,omitempty"`
	CornerStyle        CornerStyle       `json:"cornerStyle,omitempty"`
	GradientDirection  GradientDirection `json:"gradientDirection,omitempty"`
	GradientStartColor string            `json:"gradientStartColor,omitempty"`
	GradientEndColor   string            `json:"gradientEndColor,omitempty"`
}

func (s *StyleSettings) dotStyle() DotStyle {
	if s == nil {
		return DotSquare
	}
	switch s.DotStyle {
	case DotRounded, DotCircle, DotDiamond:
		return s.DotStyle
	}
	return DotSquare
}

func (s *StyleSettings) cornerStyle() CornerStyle {
	if s == nil {
		return CornerSquare
	}
	switch s.CornerStyle {
	case CornerRounded, CornerCircle:
		return s.CornerStyle
	}
	return CornerSquare
}

func (s *StyleSettings) gradientDirection() GradientDirection {
	if s == nil {
		return GradientHorizontal
	}
	switch s.GradientDirection {
	case GradientVertical, GradientDiagonal, GradientRadial:
		return s.GradientDirection
	}
	return GradientHorizontal
}

func (s *StyleSettings) gradientStart() string {
	if s == nil || !validHexColor(s.GradientStartColor) {
		return DefaultGradientStart
	}
	return s.GradientStartColor
}

func (s *StyleSettings) gradientEnd() string {
	if s == nil || !validHexColor(s.GradientEndColor) {
		return DefaultGradientEnd
	}
	return s.GradientEndColor
}

// ImageSettings describes an overlay logo. X and Y are pixel positions in
// the rendered image; when nil the logo is centered. Width and Height of 0
// select the proportional default.
type ImageSettings struct {
	Src      string `json:"src"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	X        *int   `json:"x,omitempty"`
	Y        *int   `json:"y,omitempty"`
	Excavate bool   `json:"excavate"`
}

// RenderRequest is one complete render invocation. All fields are value
// types; two requests with equal fields render byte-identical output.
type RenderRequest struct {
	Value         string         `json:"value"`
	Size          int            `json:"size"`
	Level         Level          `json:"level"`
	FgColor       string         `json:"fgColor"`
	BgColor       string         `json:"bgColor"`
	Margin        int            `json:"margin"`
	QRType        QRType         `json:"qrType"`
	StyleSettings *StyleSettings `json:"styleSettings,omitempty"`
	ImageSettings *ImageSettings `json:"imageSettings,omitempty"`
}

// normalized returns a copy with every defaultable field resolved. The
// original request is never mutated.
func (r RenderRequest) normalized() RenderRequest {
	if r.Size <= 0 {
		r.Size = DefaultSize
	}
	if r.Margin < 0 {
		r.Margin = DefaultMargin
	}
	r.Level = ParseLevel(string(r.Level))
	r.QRType = ParseQRType(string(r.QRType))
	if !validHexColor(r.FgColor) {
		r.FgColor = DefaultFgColor
	}
	if !validHexColor(r.BgColor) {
		r.BgColor = DefaultBgColor
	}
	return r
}

// styled reports whether the request renders per-module primitives rather
// than one compressed path. Styling on any other type is an invalid
// combination and silently degrades to path mode.
func (r RenderRequest) styled() bool {
	return (r.QRType == TypeCustom || r.QRType == TypeHolographic) && r.StyleSettings != nil
}

// RasterFormat selects the bitmap encoding for raster export.
type RasterFormat string

const (
	FormatPNG  RasterFormat = "png"
	FormatJPEG RasterFormat = "jpeg"
)

// ParseRasterFormat defaults unknown formats to PNG.
func ParseRasterFormat(s string) RasterFormat {
	switch RasterFormat(s) {
	case FormatPNG, FormatJPEG:
		return RasterFormat(s)
	}
	return FormatPNG
}

// Document is a rendered vector artifact plus the layout facts a caller
// needs to reason about it.
type Document struct {
	SVG    string
	Side   int
	Margin int
	Size   int
	Level  Level
	QRType QRType
}

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func validHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// parseHexColor converts #RGB or #RRGGBB to an opaque NRGBA. Invalid input
// yields opaque black; callers validate first when they care.
func parseHexColor(s string) color.NRGBA {
	c := color.NRGBA{A: 0xFF}
	if !validHexColor(s) {
		return c
	}
	if len(s) == 4 {
		fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
		return c
	}
	fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	return c
}
