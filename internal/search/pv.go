package search

import (
	"github.com/oliverans/mateline/internal/board"
	"github.com/oliverans/mateline/internal/movegen"
	"github.com/oliverans/mateline/internal/tt"
)

// pv walks the transposition table forward from pos, following the best
// move at each ply, to reconstruct the principal variation for reporting.
// It never mutates pos beyond the walk itself (every Make is unmade before
// returning). A stale or collided TT entry simply truncates the line early
// rather than corrupting it.
func (c *Context) pv(pos *board.Position, first Move, maxLen int) []Move {
	if first.IsNull() || maxLen <= 0 {
		return nil
	}
	line := []Move{first}
	first.apply(pos)
	defer func() {
		for range line {
			pos.Unmake()
		}
	}()

	for i := 1; i < maxLen; i++ {
		_, _, bound, encoded, ok := c.TT.Probe(pos.Hash)
		if !ok || bound != tt.Exact {
			break
		}
		m := decodeMove(encoded)
		if m.IsNull() || !isLegalMove(pos, m) {
			break
		}
		line = append(line, m)
		m.apply(pos)
	}
	return line
}

func isLegalMove(pos *board.Position, m Move) bool {
	var out [64]uint64
	movegen.GenerateMoves(pos, pos.SideToMove, &out, movegen.Options{})
	sq := board.Sq(int(m.OX), int(m.OY))
	return out[sq]&(uint64(1)<<uint(board.Sq(int(m.DX), int(m.DY)))) != 0
}
