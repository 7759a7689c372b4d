package qr

import (
	qrcode "github.com/skip2/go-qrcode"
)

// Matrix is an immutable square grid of modules. Row-major: m[y][x] is
// true for a dark module. No quiet zone is baked in; margins are applied
// at composition time.
type Matrix [][]bool

// Side returns the matrix side length in modules.
func (m Matrix) Side() int { return len(m) }

// Dark reports whether the module at (x, y) is dark. Out-of-range
// coordinates are light.
func (m Matrix) Dark(x, y int) bool {
	if y < 0 || y >= len(m) || x < 0 || x >= len(m[y]) {
		return false
	}
	return m[y][x]
}

// excavated returns a copy of m with every module inside r forced light.
// The receiver is never mutated; each render recomputes its excavation
// from scratch.
func (m Matrix) excavated(r Rect) Matrix {
	out := make(Matrix, len(m))
	for y := range m {
		row := make([]bool, len(m[y]))
		copy(row, m[y])
		out[y] = row
	}
	for y := r.Y; y < r.Y+r.H; y++ {
		if y < 0 || y >= len(out) {
			continue
		}
		for x := r.X; x < r.X+r.W; x++ {
			if x < 0 || x >= len(out[y]) {
				continue
			}
			out[y][x] = false
		}
	}
	return out
}

// EncodeFunc produces the module matrix for a value at a level. It is the
// seam to the external symbol encoder; the renderer treats it as opaque.
type EncodeFunc func(value string, level Level) (Matrix, error)

// Encode is the default encoder, backed by skip2/go-qrcode. The library's
// quiet zone is disabled so the matrix carries no margin. Capacity
// overflow surfaces as KindEncodingOverflow; the level is never downgraded
// to make content fit.
func Encode(value string, level Level) (Matrix, error) {
	code, err := qrcode.New(value, recoveryLevel(level))
	if err != nil {
		return nil, newError(KindEncodingOverflow, "content too long for selected type", err)
	}
	code.DisableBorder = true
	return Matrix(code.Bitmap()), nil
}

func recoveryLevel(l Level) qrcode.RecoveryLevel {
	switch l {
	case LevelM:
		return qrcode.Medium
	case LevelQ:
		return qrcode.High
	case LevelH:
		return qrcode.Highest
	default:
		return qrcode.Low
	}
}
