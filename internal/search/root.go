package search

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/oliverans/mateline/internal/board"
)

// searchRootParallel implements §4.6.12/§5: up to hardware-concurrency root
// moves search concurrently, each on its own cloned Position, merged back
// in move order; a cutoff discovered during the merge means remaining
// results are simply not applied (their clones are discarded, not
// cancelled mid-flight — negamax has already returned by the time we
// merge). errgroup gives us the same bounded fan-out and first-error
// propagation the reference implementation gets from its OpenMP parallel
// region, without inventing a hand-rolled worker pool.
func (c *Context) searchRootParallel(pos *board.Position, depth, alpha, beta int, moves []scoredMove, out *Move) (int, bool) {
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	if workers > len(moves) {
		workers = len(moves)
	}

	type rootResult struct {
		value    int
		timedOut bool
	}
	results := make([]rootResult, len(moves))

	g := new(errgroup.Group)
	g.SetLimit(workers)

	for i, sm := range moves {
		i, m := i, sm.move
		g.Go(func() error {
			clone := pos.Clone()
			m.apply(clone)
			value, timedOut := c.negamax(clone, depth-1, -beta, -alpha, false, nil)
			results[i] = rootResult{value: -value, timedOut: timedOut}
			return nil
		})
	}
	_ = g.Wait()

	best := -Mate - 1
	var bestMove Move
	localAlpha := alpha
	anyTimedOut := false
	for i, sm := range moves {
		r := results[i]
		if r.timedOut {
			anyTimedOut = true
			continue
		}
		if r.value > best {
			best = r.value
			bestMove = sm.move
		}
		if best > localAlpha {
			localAlpha = best
		}
		if localAlpha >= beta {
			break
		}
	}

	if anyTimedOut {
		return 0, true
	}

	if out != nil {
		*out = bestMove
	}
	return best, false
}
