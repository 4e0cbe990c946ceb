// Package movegen implements pseudo-legal and legal move generation, and
// the make/unmake-based king-safety filter, over an internal/board
// Position.
package movegen

import "github.com/oliverans/mateline/internal/board"

// AnyPseudoCaptures reports whether any piece of attackingSide pseudo-attacks
// any square set in target. It is the reduced generator in_check is built
// on: it walks every enemy piece kind and returns on the first hit, without
// building an output move array.
func AnyPseudoCaptures(pos *board.Position, attackingSide int, target uint64) bool {
	if target == 0 {
		return false
	}
	occ := pos.SideSets[board.White] | pos.SideSets[board.Black]
	own := pos.SideSets[attackingSide]

	pawns := pos.PieceSets[board.Pawn] & own
	for pawns != 0 {
		var sq int
		sq, pawns = board.PopLSB(pawns)
		if board.Tables.PawnAttacks[attackingSide][sq]&target != 0 {
			return true
		}
	}

	knights := pos.PieceSets[board.Knight] & own
	for knights != 0 {
		var sq int
		sq, knights = board.PopLSB(knights)
		if board.Tables.KnightAttacks[sq]&target != 0 {
			return true
		}
	}

	kings := pos.PieceSets[board.King] & own
	for kings != 0 {
		var sq int
		sq, kings = board.PopLSB(kings)
		if board.Tables.KingAttacks[sq]&target != 0 {
			return true
		}
	}

	bishops := (pos.PieceSets[board.Bishop] | pos.PieceSets[board.Queen]) & own
	for bishops != 0 {
		var sq int
		sq, bishops = board.PopLSB(bishops)
		if board.Tables.BishopAttacks(sq, occ)&target != 0 {
			return true
		}
	}

	rooks := (pos.PieceSets[board.Rook] | pos.PieceSets[board.Queen]) & own
	for rooks != 0 {
		var sq int
		sq, rooks = board.PopLSB(rooks)
		if board.Tables.RookAttacks(sq, occ)&target != 0 {
			return true
		}
	}

	return false
}

// InCheck reports whether side's king is currently attacked.
func InCheck(pos *board.Position, side int) bool {
	kingBB := pos.PieceSets[board.King] & pos.SideSets[side]
	return AnyPseudoCaptures(pos, board.Opponent(side), kingBB)
}

// SquareAttacked reports whether attackingSide pseudo-attacks sq, regardless
// of what (if anything) occupies sq. Used to validate the squares a
// castling king travels through.
func SquareAttacked(pos *board.Position, sq int, attackingSide int) bool {
	return AnyPseudoCaptures(pos, attackingSide, uint64(1)<<uint(sq))
}
