package api

import (
	"net/url"
	"strconv"

	"qrforge/internal/qr"
)

// imageFormat is the requested output encoding for the image endpoint.
type imageFormat string

const (
	formatSVG  imageFormat = "svg"
	formatPNG  imageFormat = "png"
	formatJPEG imageFormat = "jpeg"
)

// minImageSize keeps the rendered output large enough to stay scannable.
const minImageSize = 64

// parseRenderParams builds a render request from query parameters. Every
// parameter except url is optional, and unsupported values degrade to
// their defaults rather than erroring.
func parseRenderParams(q url.Values, maxSize int) (qr.RenderRequest, imageFormat) {
	req := qr.RenderRequest{
		Value:   q.Get("url"),
		Size:    clampInt(intParam(q, "size", qr.DefaultSize), minImageSize, maxSize),
		Level:   qr.ParseLevel(q.Get("level")),
		FgColor: colorParam(q, "fgColor", qr.DefaultFgColor),
		BgColor: colorParam(q, "bgColor", qr.DefaultBgColor),
		Margin:  intParam(q, "margin", qr.DefaultMargin),
		QRType:  qr.ParseQRType(q.Get("qrType")),
	}
	if req.Margin < 0 {
		req.Margin = qr.DefaultMargin
	}

	// Styled types always carry settings so per-module styling triggers;
	// each field still falls back to its own default at consumption time.
	if req.QRType == qr.TypeCustom || req.QRType == qr.TypeHolographic {
		req.StyleSettings = &qr.StyleSettings{
			DotStyle:           qr.DotStyle(q.Get("dotStyle")),
			CornerStyle:        qr.CornerStyle(q.Get("cornerStyle")),
			GradientDirection:  qr.GradientDirection(q.Get("gradientDirection")),
			GradientStartColor: q.Get("gradientStartColor"),
			GradientEndColor:   q.Get("gradientEndColor"),
		}
	}

	if logo := q.Get("logo"); logo != "" {
		excavate := true
		if v := q.Get("excavate"); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				excavate = b
			}
		}
		req.ImageSettings = &qr.ImageSettings{Src: logo, Excavate: excavate}
	}

	format := formatPNG
	switch imageFormat(q.Get("format")) {
	case formatSVG:
		format = formatSVG
	case formatJPEG:
		format = formatJPEG
	}
	// The cube composition is vector-only; any requested raster format
	// degrades to SVG.
	if req.QRType == qr.TypeCube3D {
		format = formatSVG
	}
	return req, format
}

func (f imageFormat) contentType() string {
	switch f {
	case formatSVG:
		return "image/svg+xml"
	case formatJPEG:
		return "image/jpeg"
	default:
		return "image/png"
	}
}

func intParam(q url.Values, key string, def int) int {
	v := q.Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func colorParam(q url.Values, key, def string) string {
	v := q.Get(key)
	if v == "" {
		return def
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
