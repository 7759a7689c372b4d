package qr

import (
	"fmt"
	"strings"
)

// GeneratePath compresses the dark modules of m into a single SVG path
// string, offset by margin modules on both axes.
//
// Each row is scanned left to right, tracking the start of a contiguous
// dark run. A run closed by a light cell emits one horizontal-then-
// vertical-then-close op, which keeps the string far shorter than one
// rectangle per module. Runs never merge across rows.
//
// The last column needs its own handling: a run still open there closes
// back to the run's start column, and an isolated dark cell at row end
// emits a one-cell op of its own.
func GeneratePath(m Matrix, margin int) string {
	var sb strings.Builder
	side := m.Side()
	for y := 0; y < side; y++ {
		start := -1
		for x := 0; x < side; x++ {
			cell := m.Dark(x, y)
			if !cell && start >= 0 {
				fmt.Fprintf(&sb, "M%d %dh%dv1H%dz", start+margin, y+margin, x-start, start+margin)
				start = -1
				continue
			}
			if x == side-1 {
				if !cell {
					continue
				}
				if start < 0 {
					// Single dark module at the end of the row.
					fmt.Fprintf(&sb, "M%d,%d h1v1H%dz", x+margin, y+margin, x+margin)
				} else {
					fmt.Fprintf(&sb, "M%d,%d h%dv1H%dz", start+margin, y+margin, x+1-start, start+margin)
				}
				continue
			}
			if cell && start < 0 {
				start = x
			}
		}
	}
	return sb.String()
}
