package search

import (
	"fmt"

	"github.com/oliverans/mateline/internal/board"
)

// Move names one half-move as an (origin, destination) coordinate pair.
// The zero Move is the null move.
type Move struct {
	OX, OY, DX, DY int8
}

func (m Move) IsNull() bool {
	return m == Move{}
}

func newMove(ox, oy, dx, dy int) Move {
	return Move{int8(ox), int8(oy), int8(dx), int8(dy)}
}

func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	return fmt.Sprintf("%c%d%c%d",
		'a'+m.OX, m.OY+1, 'a'+m.DX, m.DY+1)
}

// encode packs a move into 12 bits for compact transposition-table storage.
func (m Move) encode() uint32 {
	return uint32(m.OX) | uint32(m.OY)<<3 | uint32(m.DX)<<6 | uint32(m.DY)<<9
}

func decodeMove(v uint32) Move {
	return Move{
		OX: int8(v & 0x7),
		OY: int8((v >> 3) & 0x7),
		DX: int8((v >> 6) & 0x7),
		DY: int8((v >> 9) & 0x7),
	}
}

func (m Move) apply(pos *board.Position) {
	pos.Make(int(m.OX), int(m.OY), int(m.DX), int(m.DY))
}
