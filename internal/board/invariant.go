package board

import "fmt"

// invariant panics when cond is false. It exists for "can't happen" internal
// consistency checks (hash drift, occupancy-mask mismatches) rather than for
// ordinary error handling — callers never recover from it. Grounded on
// ChizhovVadim-CounterGo's engine/position.go, which panics on an
// inconsistent square rather than returning an error for the same class of
// bug.
func invariant(cond bool, msg string) {
	if !cond {
		panic(fmt.Sprintf("board: invariant violated: %s", msg))
	}
}
