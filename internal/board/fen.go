package board

import (
	"fmt"
	"strings"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var fenPieces = map[rune][2]int{
	'K': {King, White}, 'Q': {Queen, White}, 'B': {Bishop, White},
	'N': {Knight, White}, 'R': {Rook, White}, 'P': {Pawn, White},
	'k': {King, Black}, 'q': {Queen, Black}, 'b': {Bishop, Black},
	'n': {Knight, Black}, 'r': {Rook, Black}, 'p': {Pawn, Black},
}

// FromFEN builds a Position from Forsyth-Edwards notation. Castling rights
// absent from the FEN are represented by marking the corresponding king or
// rook home square as already moved, since this engine derives castling
// legality from HasMoved rather than a dedicated rights field.
func FromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, fmt.Errorf("board: invalid FEN %q: too few fields", fen)
	}

	p := New()
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("board: invalid FEN %q: expected 8 ranks", fen)
	}
	for i, rankStr := range ranks {
		y := 7 - i
		x := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				x += int(ch - '0')
				continue
			}
			spec, ok := fenPieces[ch]
			if !ok {
				return nil, fmt.Errorf("board: invalid FEN %q: bad piece %q", fen, ch)
			}
			if x >= 8 {
				return nil, fmt.Errorf("board: invalid FEN %q: rank overflow", fen)
			}
			p.SetPiece(Sq(x, y), Encode(spec[0], spec[1]))
			x++
		}
		if x != 8 {
			return nil, fmt.Errorf("board: invalid FEN %q: rank %d has %d files", fen, i, x)
		}
	}

	switch fields[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return nil, fmt.Errorf("board: invalid FEN %q: bad side to move", fen)
	}

	// Mark every king/rook home square as moved, then clear the bit for
	// each right the FEN actually grants.
	homeSquares := map[byte]int{
		'K': Sq(4, 0), 'Q': Sq(4, 0),
		'k': Sq(4, 7), 'q': Sq(4, 7),
	}
	rookSquares := map[byte]int{
		'K': Sq(7, 0), 'Q': Sq(0, 0),
		'k': Sq(7, 7), 'q': Sq(0, 7),
	}
	for _, sq := range homeSquares {
		p.HasMoved |= bit(sq)
	}
	for _, sq := range rookSquares {
		p.HasMoved |= bit(sq)
	}
	if len(fields) > 2 && fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			c := fields[2][i]
			if sq, ok := homeSquares[c]; ok {
				p.HasMoved &^= bit(sq)
			}
			if sq, ok := rookSquares[c]; ok {
				p.HasMoved &^= bit(sq)
			}
		}
	}

	epAvailable := false
	if len(fields) > 3 && fields[3] != "-" {
		ep := fields[3]
		if len(ep) == 2 {
			x := int(ep[0] - 'a')
			targetY := int(ep[1] - '1')
			// Represent the pending en-passant right as a synthetic prior
			// move: the enemy pawn that just double-stepped past the
			// target square.
			mover := Opponent(p.SideToMove)
			var destY, originY int
			if mover == White {
				destY = targetY + 1
				originY = destY - 2
			} else {
				destY = targetY - 1
				originY = destY + 2
			}
			p.MoveStack = append(p.MoveStack, UndoRecord{
				OX: int8(x), OY: int8(originY), DX: int8(x), DY: int8(destY),
			})
			epAvailable = true
		}
	}

	p.Hash = p.RecomputeHash(epAvailable)
	return p, nil
}
