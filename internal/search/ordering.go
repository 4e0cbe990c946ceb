package search

import (
	"github.com/oliverans/mateline/internal/board"
	"github.com/oliverans/mateline/internal/movegen"
	"github.com/oliverans/mateline/internal/tt"
)

var pieceValue = [7]int{
	board.None:   0,
	board.King:   20000,
	board.Queen:  900,
	board.Bishop: 330,
	board.Knight: 320,
	board.Rook:   500,
	board.Pawn:   100,
}

type scoredMove struct {
	move  Move
	order int
}

// captureVictim reports the piece captured by m, if any (0 for none),
// accounting for en passant.
func captureVictim(pos *board.Position, m Move) int8 {
	dst := board.Sq(int(m.DX), int(m.DY))
	if pos.Pieces[dst] != board.None {
		return pos.Pieces[dst]
	}
	org := board.Sq(int(m.OX), int(m.OY))
	moving := pos.Pieces[org]
	if board.Type(moving) == board.Pawn && m.OX != m.DX {
		capSq := board.Sq(int(m.DX), int(m.OY))
		return pos.Pieces[capSq]
	}
	return board.None
}

// orderedMoves collects the legal moves for side and scores them per the
// ordering scheme: TT-exact child position first, then winning or equal
// MVV-LVA captures, then killer moves, then losing captures, then quiet
// moves ordered by static evaluation of the resulting position.
func (c *Context) orderedMoves(pos *board.Position, side int, mask uint64, ply int) []scoredMove {
	var raw [64]uint64
	movegen.GenerateMoves(pos, side, &raw, movegen.Options{Mask: mask})

	var list []scoredMove
	for sq := 0; sq < 64; sq++ {
		dests := raw[sq]
		if dests == 0 {
			continue
		}
		x, y := board.File(sq), board.Rank(sq)
		remaining := dests
		for remaining != 0 {
			var dsq int
			dsq, remaining = board.PopLSB(remaining)
			m := newMove(x, y, board.File(dsq), board.Rank(dsq))
			list = append(list, scoredMove{move: m, order: c.orderScore(pos, m, ply)})
		}
	}

	insertionSortDesc(list)
	return list
}

func (c *Context) orderScore(pos *board.Position, m Move, ply int) int {
	m.apply(pos)
	_, depth, bound, _, ok := c.TT.Probe(pos.Hash)
	if ok && bound == tt.Exact {
		pos.Unmake()
		return (1 << 30) - MateBand + depth
	}
	pos.Unmake()

	victim := captureVictim(pos, m)
	if victim != board.None {
		org := board.Sq(int(m.OX), int(m.OY))
		attacker := pos.Pieces[org]
		diff := pieceValue[board.Type(victim)] - pieceValue[board.Type(attacker)]
		if diff >= 0 {
			return 100000 + diff
		}
		return 40000 + diff
	}

	if c.isKiller(ply, m) {
		return 50000
	}

	m.apply(pos)
	s := c.Evaluator(pos, pos.SideToMove)
	pos.Unmake()
	return -s
}

func insertionSortDesc(list []scoredMove) {
	for i := 1; i < len(list); i++ {
		v := list[i]
		j := i - 1
		for j >= 0 && list[j].order < v.order {
			list[j+1] = list[j]
			j--
		}
		list[j+1] = v
	}
}
