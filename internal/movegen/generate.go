package movegen

import "github.com/oliverans/mateline/internal/board"

// AllSquares is the identity mask for Options.Mask: no restriction on
// destination squares.
const AllSquares = ^uint64(0)

// Options governs move generation.
type Options struct {
	// PseudoOnly skips the king-safety legality filter.
	PseudoOnly bool
	// ExitOnFirstLegal short-circuits generation as soon as one legal
	// move is found, returning true immediately. Used by AnyMoves.
	ExitOnFirstLegal bool
	// Mask restricts every destination set to these squares (used to
	// reduce quiescence generation to captures only).
	Mask uint64
}

// GenerateMoves fills out[origin] with a bitboard of legal (or, if
// PseudoOnly, pseudo-legal) destination squares for every piece of side,
// and reports whether at least one such move exists.
func GenerateMoves(pos *board.Position, side int, out *[64]uint64, opts Options) bool {
	for i := range out {
		out[i] = 0
	}
	mask := opts.Mask
	if mask == 0 {
		mask = AllSquares
	}

	generatePseudo(pos, side, out, mask)

	if opts.PseudoOnly {
		return anySet(out)
	}
	return legalize(pos, side, out, opts.ExitOnFirstLegal)
}

// AnyMoves is a cheap legality existence test used for checkmate/stalemate
// detection.
func AnyMoves(pos *board.Position, side int) bool {
	var out [64]uint64
	return GenerateMoves(pos, side, &out, Options{ExitOnFirstLegal: true})
}

func anySet(out *[64]uint64) bool {
	for _, b := range out {
		if b != 0 {
			return true
		}
	}
	return false
}

func generatePseudo(pos *board.Position, side int, out *[64]uint64, mask uint64) {
	occ := pos.SideSets[board.White] | pos.SideSets[board.Black]
	empty := ^occ
	enemy := pos.SideSets[board.Opponent(side)]
	friendly := pos.SideSets[side]

	generatePawns(pos, side, out, mask, occ, empty, enemy)

	knights := pos.PieceSets[board.Knight] & friendly
	for knights != 0 {
		var sq int
		sq, knights = board.PopLSB(knights)
		out[sq] = board.Tables.KnightAttacks[sq] & ^friendly & mask
	}

	kings := pos.PieceSets[board.King] & friendly
	for kings != 0 {
		var sq int
		sq, kings = board.PopLSB(kings)
		out[sq] = board.Tables.KingAttacks[sq] & ^friendly & mask
		out[sq] |= generateCastling(pos, side, sq) & mask
	}

	bishops := pos.PieceSets[board.Bishop] & friendly
	for bishops != 0 {
		var sq int
		sq, bishops = board.PopLSB(bishops)
		out[sq] = board.Tables.BishopAttacks(sq, occ) & ^friendly & mask
	}

	rooks := pos.PieceSets[board.Rook] & friendly
	for rooks != 0 {
		var sq int
		sq, rooks = board.PopLSB(rooks)
		out[sq] = board.Tables.RookAttacks(sq, occ) & ^friendly & mask
	}

	queens := pos.PieceSets[board.Queen] & friendly
	for queens != 0 {
		var sq int
		sq, queens = board.PopLSB(queens)
		out[sq] = board.Tables.QueenAttacks(sq, occ) & ^friendly & mask
	}
}

func generatePawns(pos *board.Position, side int, out *[64]uint64, mask, occ, empty, enemy uint64) {
	pawns := pos.PieceSets[board.Pawn] & pos.SideSets[side]
	dir := 1
	if side == board.Black {
		dir = -1
	}

	epOK, epX, epY := pos.EnPassantTarget()

	for pawns != 0 {
		var sq int
		sq, pawns = board.PopLSB(pawns)
		x, y := board.File(sq), board.Rank(sq)

		var dests uint64
		dests |= board.Tables.PawnAttacks[side][sq] & enemy

		oneStep := y + dir
		if oneStep >= 0 && oneStep < 8 {
			oneSq := board.Sq(x, oneStep)
			if empty&(uint64(1)<<uint(oneSq)) != 0 {
				dests |= uint64(1) << uint(oneSq)

				twoStep := y + 2*dir
				neverMoved := pos.HasMoved&(uint64(1)<<uint(sq)) == 0
				if neverMoved && twoStep >= 0 && twoStep < 8 {
					twoSq := board.Sq(x, twoStep)
					if empty&(uint64(1)<<uint(twoSq)) != 0 {
						dests |= uint64(1) << uint(twoSq)
					}
				}
			}
		}

		// En passant: the last move was an enemy pawn double-step and it
		// landed on the same rank, adjacent file, to this pawn.
		if epOK && epY == y && absInt(epX-x) == 1 {
			capRank := y + dir
			if capRank >= 0 && capRank < 8 {
				dests |= uint64(1) << uint(board.Sq(epX, capRank))
			}
		}

		out[sq] = dests & mask
	}
}

// generateCastling returns the extra destination bits available to the king
// at sq (0 if none). The king's current square, the square it passes over
// and its destination must all be unattacked; the ordinary legality filter
// then also makes the move (including the rook relocation) and tests check
// on the resulting position.
func generateCastling(pos *board.Position, side, kingSq int) uint64 {
	if InCheck(pos, side) {
		return 0
	}
	homeRank := 0
	if side == board.Black {
		homeRank = 7
	}
	if board.Rank(kingSq) != homeRank || board.File(kingSq) != 4 {
		return 0
	}
	if pos.HasMoved&(uint64(1)<<uint(kingSq)) != 0 {
		return 0
	}

	occ := pos.SideSets[board.White] | pos.SideSets[board.Black]
	var out uint64

	tryCastle := func(rookX, betweenLo, betweenHi, kingToX, rookToX int) {
		rookSq := board.Sq(rookX, homeRank)
		if pos.PieceSets[board.Rook]&pos.SideSets[side]&(uint64(1)<<uint(rookSq)) == 0 {
			return
		}
		if pos.HasMoved&(uint64(1)<<uint(rookSq)) != 0 {
			return
		}
		for x := betweenLo; x <= betweenHi; x++ {
			if occ&(uint64(1)<<uint(board.Sq(x, homeRank))) != 0 {
				return
			}
		}
		_ = rookToX
		travelLo, travelHi := 4, kingToX
		if kingToX < 4 {
			travelLo, travelHi = kingToX, 4
		}
		for x := travelLo; x <= travelHi; x++ {
			if SquareAttacked(pos, board.Sq(x, homeRank), board.Opponent(side)) {
				return
			}
		}
		out |= uint64(1) << uint(board.Sq(kingToX, homeRank))
	}

	// Kingside: rook on h-file, king travels e->f->g, squares f/g empty.
	tryCastle(7, 5, 6, 6, 5)
	// Queenside: rook on a-file, king travels e->d->c, squares b/c/d empty.
	tryCastle(0, 1, 3, 2, 3)

	return out
}

func legalize(pos *board.Position, side int, out *[64]uint64, exitOnFirst bool) bool {
	found := false
	for sq := 0; sq < 64; sq++ {
		dests := out[sq]
		if dests == 0 {
			continue
		}
		var legal uint64
		x, y := board.File(sq), board.Rank(sq)
		remaining := dests
		for remaining != 0 {
			var dsq int
			dsq, remaining = board.PopLSB(remaining)
			dx, dy := board.File(dsq), board.Rank(dsq)
			pos.Make(x, y, dx, dy)
			ok := !InCheck(pos, side)
			pos.Unmake()
			if ok {
				legal |= uint64(1) << uint(dsq)
				found = true
				if exitOnFirst {
					out[sq] = legal
					return true
				}
			}
		}
		out[sq] = legal
	}
	return found
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
