package search

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Mate is the sentinel magnitude for a proven forced mate; MateBand is the
// width of the reserved score range around it. The evaluator must never
// return a value inside [Mate-MateBand, Mate] or [-Mate, -Mate+MateBand].
const (
	Mate     = 1 << 20
	MateBand = 256
)

func isMateScore(v int) bool {
	return v >= Mate-MateBand || v <= -Mate+MateBand
}

// FormatScore renders a score the way the reference implementation's
// evaluation::to_string does: mate scores as "#N"/"#-N" (plies to mate,
// divided by two and rounded up), everything else as pawns with two
// decimals (the centipawn score divided by 100).
func FormatScore(v int) string {
	switch {
	case v >= Mate-MateBand:
		return fmt.Sprintf("#%d", (Mate-v+1)/2)
	case v <= -Mate+MateBand:
		return fmt.Sprintf("#-%d", (v+Mate+1)/2)
	default:
		return fmt.Sprintf("%.2f", float64(v)/100)
	}
}

func min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
