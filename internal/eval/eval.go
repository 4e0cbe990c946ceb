// Package eval implements the reference static evaluator: material plus a
// per-piece-type positional term, grounded on eval_proper.cc's
// eval_pieces<side,type> template — material weights, isolation/doubling
// penalties, and the king piece-square table are lifted verbatim from
// there. It is intentionally simple; search treats any function matching
// this signature as interchangeable.
package eval

import "github.com/oliverans/mateline/internal/board"

// Func is the evaluator signature search depends on. It must be
// deterministic and pure, and must never return a value inside the mate
// score bands the search reserves (see search.Mate and search.MateBand).
type Func func(pos *board.Position, side int) int

var kingTable = [64]int{
	-65, 23, 16, -15, -56, -34, 2, 13,
	29, -1, -20, -7, -8, -4, -38, -29,
	-9, 24, 2, -16, -20, 6, 22, -22,
	-17, -20, -12, -27, -30, -25, -14, -36,
	-49, -1, -27, -39, -46, -44, -33, -51,
	-14, -14, -22, -46, -44, -30, -15, -27,
	1, 7, -8, -64, -43, -16, 9, 8,
	-15, 36, 12, -54, 8, -28, 24, 14,
}

const fileA = uint64(0x0101010101010101)

// Evaluate returns a centipawn-like score from side's perspective: positive
// means better for side.
func Evaluate(pos *board.Position, side int) int {
	white := evalSide(pos, board.White)
	black := evalSide(pos, board.Black)
	score := white - black
	if side == board.Black {
		score = -score
	}
	return score
}

func evalSide(pos *board.Position, side int) int {
	score := 0
	score += evalPawns(pos, side)
	score += evalKnights(pos, side)
	score += evalBishops(pos, side)
	score += evalRooks(pos, side)
	score += 1000 * board.PopCount(pos.PieceSets[board.Queen]&pos.SideSets[side])
	score += evalKing(pos, side)
	return score
}

func evalPawns(pos *board.Position, side int) int {
	score := 0
	own := pos.SideSets[side]
	pawns := pos.PieceSets[board.Pawn] & own
	b := pawns
	for b != 0 {
		var sq int
		sq, b = board.PopLSB(b)
		x, y := board.File(sq), board.Rank(sq)
		score += 80

		isolated := true
		if x > 0 && fileA<<uint(x-1)&pawns != 0 {
			isolated = false
		}
		if x < 7 && fileA<<uint(x+1)&pawns != 0 {
			isolated = false
		}
		if isolated {
			score -= 20
		}

		aheadSq := sq + 8
		if side == board.Black {
			aheadSq = sq - 8
		}
		if aheadSq >= 0 && aheadSq < 64 && pawns&(uint64(1)<<uint(aheadSq)) != 0 {
			score -= 20
		}

		relY := y
		if side == board.Black {
			relY = 7 - y
		}
		score += 4 * (relY - 1) * (relY - 1)
		score -= 4 * (x - 4) * (x - 4)
	}
	return score
}

func evalKnights(pos *board.Position, side int) int {
	score := 0
	notFriendly := ^pos.SideSets[side]
	b := pos.PieceSets[board.Knight] & pos.SideSets[side]
	for b != 0 {
		var sq int
		sq, b = board.PopLSB(b)
		score += 320
		score += -80 + 10*board.PopCount(board.Tables.KnightAttacks[sq]&notFriendly)
	}
	return score
}

func evalBishops(pos *board.Position, side int) int {
	score := 0
	occ := pos.SideSets[board.White] | pos.SideSets[board.Black]
	notFriendly := ^pos.SideSets[side]
	b := pos.PieceSets[board.Bishop] & pos.SideSets[side]
	for b != 0 {
		var sq int
		sq, b = board.PopLSB(b)
		score += 360
		score += board.PopCount(board.Tables.BishopAttacks(sq, occ) & notFriendly)
	}
	return score
}

func evalRooks(pos *board.Position, side int) int {
	score := 0
	b := pos.PieceSets[board.Rook] & pos.SideSets[side]
	for b != 0 {
		var sq int
		sq, b = board.PopLSB(b)
		score += 470
		x := board.File(sq)
		fileMask := fileA << uint(x)
		pawnsOnFile := fileMask & pos.PieceSets[board.Pawn]
		theirPawns := pawnsOnFile & pos.SideSets[board.Opponent(side)]
		ourPawns := pawnsOnFile & pos.SideSets[side]
		if ourPawns == 0 {
			if theirPawns != 0 {
				score += 10
			} else {
				score += 30
			}
		}
	}
	return score
}

func evalKing(pos *board.Position, side int) int {
	b := pos.PieceSets[board.King] & pos.SideSets[side]
	if b == 0 {
		return 0
	}
	sq, _ := board.PopLSB(b)
	idx := sq
	if side == board.White {
		idx = sq ^ 0b111000
	}
	return kingTable[idx]
}
