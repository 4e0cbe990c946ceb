package search

import "github.com/oliverans/mateline/internal/board"

// Search is the core's single entry point: iterative-deepening negamax
// from depth 1 up to limits.MaxDepth, or until limits.MaxSeconds elapses,
// or until a forced mate is proven. The caller has already replayed
// move_history into pos via board.Position.Make.
func (c *Context) Search(pos *board.Position, limits Limits) Result {
	pos.AppendedMoves = 0
	c.resetForSearch(limits.MaxSeconds)

	var best Move
	var bestScore int
	deepestCompleted := 0
	ranOutOfTime := false

	maxDepth := limits.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 64
	}

	for d := 1; d <= maxDepth; d++ {
		c.currentRootDepth = d
		var candidate Move
		score, timedOut := c.negamax(pos, d, -Mate-1, Mate+1, false, &candidate)
		if timedOut {
			ranOutOfTime = true
			break
		}
		best = candidate
		bestScore = score
		deepestCompleted = d

		if c.Progress != nil {
			c.Progress(SearchInfo{
				Depth:  d,
				Score:  bestScore,
				Nodes:  c.nodes,
				TTHits: c.ttHits,
				PV:     c.pv(pos, best, d),
			})
		}

		if isMateScore(bestScore) {
			break
		}
	}

	return Result{
		Move:       best,
		Score:      bestScore,
		Nodes:      c.nodes,
		PlyReached: deepestCompleted,
		PV:         c.pv(pos, best, deepestCompleted),
		TimedOut:   ranOutOfTime,
	}
}
