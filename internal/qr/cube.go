package qr

import (
	"fmt"
	"strings"
)

// Cube layout constants. The projection is a fixed rotation baked into
// three transform matrices; there is no camera or projection math. Each
// visible face is an independently rendered standard-mode symbol, and the
// three hidden faces are flat placeholders.
const (
	cubeCanvas   = 320.0 // composite viewBox side
	cubeFace     = 100.0 // rendered face edge before transform
	cubeShadow   = "#1F2937"
	cubeIsoX     = 0.866 // cos(30deg)
	cubeIsoY     = 0.5   // sin(30deg)
	cubeApexX    = 160.0
	cubeApexY    = 28.0
	cubeJointY   = cubeApexY + cubeFace*cubeIsoY*2 // shared vertex of the three faces
	cubeLeftX    = cubeApexX - cubeFace*cubeIsoX
	cubeLeftTopY = cubeApexY + cubeFace*cubeIsoY
)

// RenderCube composes three standard-mode renders of the request into a
// fixed pseudo-3D cube. Logos are always suppressed on the faces; they
// are too small to host one.
func (r *Renderer) RenderCube(req RenderRequest) (*Document, error) {
	face := req.normalized()
	size := face.Size
	face.QRType = TypeStandard
	face.ImageSettings = nil
	face.StyleSettings = nil
	face.Size = int(cubeFace)

	top, err := r.Render(face)
	if err != nil {
		return nil, err
	}
	// Each visible face is its own render.
	left, err := r.Render(face)
	if err != nil {
		return nil, err
	}
	right, err := r.Render(face)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		size, size, int(cubeCanvas), int(cubeCanvas))

	// Hidden faces: flat-colored placeholders behind the visible ones,
	// offset down-right to suggest depth. Not re-rendered content.
	sb.WriteString(hiddenFaces())

	// Top face: x axis toward lower-right, y axis toward lower-left.
	fmt.Fprintf(&sb, `<g transform="matrix(%v,%v,%v,%v,%v,%v)">%s</g>`,
		cubeIsoX, cubeIsoY, -cubeIsoX, cubeIsoY, cubeApexX, cubeApexY, top.SVG)
	// Left face: sheared downward along the left edge.
	fmt.Fprintf(&sb, `<g transform="matrix(%v,%v,%v,%v,%v,%v)">%s</g>`,
		cubeIsoX, cubeIsoY, 0.0, 1.0, cubeLeftX, cubeLeftTopY, left.SVG)
	// Right face: mirror shear from the bottom vertex of the top face.
	fmt.Fprintf(&sb, `<g transform="matrix(%v,%v,%v,%v,%v,%v)">%s</g>`,
		cubeIsoX, -cubeIsoY, 0.0, 1.0, cubeApexX, cubeJointY, right.SVG)

	sb.WriteString(`</svg>`)
	return &Document{
		SVG:    sb.String(),
		Side:   top.Side,
		Margin: top.Margin,
		Size:   size,
		Level:  top.Level,
		QRType: TypeCube3D,
	}, nil
}

func hiddenFaces() string {
	var sb strings.Builder
	// Back-right, back-left and bottom faces, drawn as flat rhombi offset
	// behind the cube body.
	offset := 10.0
	fmt.Fprintf(&sb, `<g fill="%s" opacity="0.35">`, cubeShadow)
	fmt.Fprintf(&sb, `<path d="M%s %sL%s %sL%s %sL%s %sZ"/>`,
		ftoa(cubeApexX+offset), ftoa(cubeApexY+offset),
		ftoa(cubeApexX+offset+cubeFace*cubeIsoX), ftoa(cubeApexY+offset+cubeFace*cubeIsoY),
		ftoa(cubeApexX+offset), ftoa(cubeApexY+offset+cubeFace*cubeIsoY*2),
		ftoa(cubeApexX+offset-cubeFace*cubeIsoX), ftoa(cubeApexY+offset+cubeFace*cubeIsoY))
	fmt.Fprintf(&sb, `<path d="M%s %sL%s %sL%s %sL%s %sZ"/>`,
		ftoa(cubeLeftX+offset), ftoa(cubeLeftTopY+offset),
		ftoa(cubeApexX+offset), ftoa(cubeJointY+offset),
		ftoa(cubeApexX+offset), ftoa(cubeJointY+offset+cubeFace),
		ftoa(cubeLeftX+offset), ftoa(cubeLeftTopY+offset+cubeFace))
	fmt.Fprintf(&sb, `<path d="M%s %sL%s %sL%s %sL%s %sZ"/>`,
		ftoa(cubeApexX+offset), ftoa(cubeJointY+offset),
		ftoa(cubeApexX+offset+cubeFace*cubeIsoX), ftoa(cubeLeftTopY+offset),
		ftoa(cubeApexX+offset+cubeFace*cubeIsoX), ftoa(cubeLeftTopY+offset+cubeFace),
		ftoa(cubeApexX+offset), ftoa(cubeJointY+offset+cubeFace))
	sb.WriteString(`</g>`)
	return sb.String()
}
