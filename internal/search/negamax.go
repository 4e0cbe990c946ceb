package search

import (
	"sync/atomic"

	"github.com/oliverans/mateline/internal/board"
	"github.com/oliverans/mateline/internal/movegen"
	"github.com/oliverans/mateline/internal/tt"
)

// negamax is the single recursive search procedure: it drives quiescence,
// null-move pruning, principal-variation search with late-move reductions,
// transposition-table probing/storing, and (only at the root, via
// searchRootParallel) the bounded parallel fan-out over cloned positions.
//
// out is non-nil only at the root: supplying it skips the TT short-circuit
// so the root always re-searches far enough to reconstruct a best move.
func (c *Context) negamax(pos *board.Position, depth, alpha, beta int, quiescence bool, out *Move) (int, bool) {
	atomic.AddInt64(&c.nodes, 1)
	ply := pos.AppendedMoves
	isRoot := out != nil

	if pos.RepetitionCounts[pos.Hash] >= 2 {
		return 0, false
	}

	alphaOrig := alpha
	if !isRoot {
		if score, storedDepth, bound, move, ok := c.TT.Probe(pos.Hash); ok && storedDepth >= depth {
			atomic.AddInt64(&c.ttHits, 1)
			adjusted := adjustMateScoreOnProbe(score, ply)
			switch bound {
			case tt.Exact:
				return adjusted, false
			case tt.Lower:
				alpha = max(alpha, adjusted)
			case tt.Upper:
				beta = min(beta, adjusted)
			}
			if alpha >= beta {
				return adjusted, false
			}
			_ = move
		}
	}

	if depth >= 2 && c.timeUp() {
		return 0, true
	}

	side := pos.SideToMove
	inCheck := movegen.InCheck(pos, side)
	if !quiescence {
		if !movegen.AnyMoves(pos, side) {
			if inCheck {
				return -Mate + ply, false
			}
			return 0, false
		}
	}

	standPat := c.Evaluator(pos, side)

	if quiescence && !inCheck {
		if standPat >= beta {
			return beta, false
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	if depth <= 0 && !quiescence {
		return c.negamax(pos, 12, alpha, beta, true, nil)
	}

	if quiescence {
		if !inCheck && !anyCapture(pos, side) {
			return standPat, false
		}
	}

	if !quiescence && !inCheck && depth >= 2 && !isRoot &&
		gamePhase(pos) > endgamePhaseThreshold &&
		ply > c.currentRootDepth/4 {
		pos.Make(0, 0, 0, 0)
		value, timedOut := c.negamax(pos, depth-3, -beta, -beta+1, false, nil)
		pos.Unmake()
		if timedOut {
			return 0, true
		}
		if -value >= beta {
			return beta, false
		}
	}

	mask := movegen.AllSquares
	if quiescence {
		mask = pos.SideSets[board.Opponent(side)]
	}
	moves := c.orderedMoves(pos, side, mask, ply)
	if len(moves) == 0 {
		return standPat, false
	}

	if isRoot {
		return c.searchRootParallel(pos, depth, alpha, beta, moves, out)
	}

	best := -Mate - 1
	var bestMove Move
	for i, sm := range moves {
		m := sm.move
		isCap := captureVictim(pos, m) != board.None
		m.apply(pos)

		childDepth := depth - 1
		var value int
		var timedOut bool

		if i == 0 {
			value, timedOut = c.negamax(pos, childDepth, -beta, -alpha, quiescence, nil)
			value = -value
		} else {
			reduction := 0
			if !quiescence && depth >= 3 && i >= 3 && !inCheck && !isCap {
				giveCheck := movegen.InCheck(pos, pos.SideToMove)
				if !giveCheck {
					reduction = 1
					if i >= 9 {
						reduction = depth / 3
					}
				}
			}
			value, timedOut = c.negamax(pos, childDepth-reduction, -alpha-1, -alpha, quiescence, nil)
			value = -value
			if !timedOut && value > alpha && reduction > 0 {
				value, timedOut = c.negamax(pos, childDepth, -alpha-1, -alpha, quiescence, nil)
				value = -value
			}
			if !timedOut && value > alpha && value < beta {
				value, timedOut = c.negamax(pos, childDepth, -beta, -alpha, quiescence, nil)
				value = -value
			}
		}

		pos.Unmake()

		if timedOut {
			return 0, true
		}

		if value > best {
			best = value
			bestMove = m
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			if !isCap {
				c.addKiller(ply, m)
			}
			break
		}
	}

	if !quiescence {
		bound := tt.Exact
		if best <= alphaOrig {
			bound = tt.Upper
		} else if best >= beta {
			bound = tt.Lower
		}
		c.TT.Store(pos.Hash, adjustMateScoreOnStore(best, ply), depth, bound, bestMove.encode())
	}

	return best, false
}

func anyCapture(pos *board.Position, side int) bool {
	var out [64]uint64
	return movegen.GenerateMoves(pos, side, &out, movegen.Options{
		Mask:             pos.SideSets[board.Opponent(side)],
		ExitOnFirstLegal: true,
	})
}

const endgamePhaseThreshold = 6

func gamePhase(pos *board.Position) int {
	return 4*board.PopCount(pos.PieceSets[board.Queen]) +
		2*board.PopCount(pos.PieceSets[board.Rook]) +
		board.PopCount(pos.PieceSets[board.Bishop]) +
		board.PopCount(pos.PieceSets[board.Knight])
}

// adjustMateScoreOnProbe re-centers a stored mate score to the current
// node's distance from the search root.
func adjustMateScoreOnProbe(score, ply int) int {
	if score >= Mate-MateBand {
		return score - ply
	}
	if score <= -Mate+MateBand {
		return score + ply
	}
	return score
}

// adjustMateScoreOnStore is the inverse: store mate scores normalized to
// the root, regardless of which node reported them.
func adjustMateScoreOnStore(score, ply int) int {
	if score >= Mate-MateBand {
		return score + ply
	}
	if score <= -Mate+MateBand {
		return score - ply
	}
	return score
}
