package board

import "fmt"

// UndoRecord captures everything needed to reverse exactly one half-move.
// A null-move record has every coordinate field zero and represents a
// side-to-move flip only.
type UndoRecord struct {
	OX, OY, DX, DY int8

	OrgHadMoved bool

	CapturedX, CapturedY int8
	CapturedPiece        int8
	CapturedHadMoved     bool

	PromotionPiece int8

	EPFlagChanged bool
}

func (u UndoRecord) isNull() bool {
	return u.OX == 0 && u.OY == 0 && u.DX == 0 && u.DY == 0
}

// Position is the mutable bitboard position state. It is constructed once
// per search request, mutated in place by Make/Unmake, and discarded.
type Position struct {
	Pieces    [64]int8
	SideSets  [2]uint64
	PieceSets [7]uint64
	HasMoved  uint64

	SideToMove int
	Hash       uint64

	MoveStack []UndoRecord

	RepetitionCounts map[uint64]int

	// AppendedMoves is the number of moves made inside the current search
	// invocation (distance from the search root); used to normalize mate
	// scores and as the ply index for killer moves and null-move pruning.
	AppendedMoves int

	tables *LookupTables
}

// New returns an empty position bound to the shared lookup tables.
func New() *Position {
	return &Position{
		MoveStack:        make([]UndoRecord, 0, 64),
		RepetitionCounts: make(map[uint64]int, 64),
		tables:           Tables,
	}
}

// SetPiece places an encoded piece value on sq, updating occupancy masks
// but not the hash or HasMoved bit. Used only during initial position
// construction, never on the hot path.
func (p *Position) SetPiece(sq int, piece int8) {
	if piece == None {
		return
	}
	p.Pieces[sq] = piece
	side := Side(piece)
	ptype := Type(piece)
	p.SideSets[side] |= bit(sq)
	p.PieceSets[ptype] |= bit(sq)
}

// RecomputeHash recomputes the Zobrist digest from scratch: one of the
// invariants (§8 property 2) is that this always equals the incrementally
// maintained Hash field.
func (p *Position) RecomputeHash(epAvailable bool) uint64 {
	var h uint64
	for sq := 0; sq < 64; sq++ {
		if p.Pieces[sq] != None {
			h ^= p.tables.Zobrist[sq][p.Pieces[sq]]
		}
	}
	if epAvailable {
		h ^= p.tables.Zobrist[0][8]
	}
	if p.SideToMove == Black {
		h ^= p.tables.Zobrist[1][8]
	}
	return h
}

// Clone returns a deep, independent copy suitable for a parallel search
// worker: every field is copied, including a fresh move stack and
// repetition map, so no mutable state is shared between clones.
func (p *Position) Clone() *Position {
	c := &Position{
		Pieces:           p.Pieces,
		SideSets:         p.SideSets,
		PieceSets:        p.PieceSets,
		HasMoved:         p.HasMoved,
		SideToMove:       p.SideToMove,
		Hash:             p.Hash,
		AppendedMoves:    p.AppendedMoves,
		tables:           p.tables,
		MoveStack:        make([]UndoRecord, len(p.MoveStack), cap(p.MoveStack)),
		RepetitionCounts: make(map[uint64]int, len(p.RepetitionCounts)),
	}
	copy(c.MoveStack, p.MoveStack)
	for k, v := range p.RepetitionCounts {
		c.RepetitionCounts[k] = v
	}
	epAvailable, _, _ := c.EnPassantTarget()
	invariant(c.Hash == c.RecomputeHash(epAvailable), "Clone: incrementally maintained hash has drifted")
	return c
}

// lastMoveWasPawnDoubleStep reports whether the previous applied move (the
// current top of the move stack) was a two-square pawn advance.
func (p *Position) lastMoveWasPawnDoubleStep() bool {
	ok, _, _ := p.EnPassantTarget()
	return ok
}

// EnPassantTarget reports whether the move on top of the stack was a
// two-square pawn advance and, if so, the file/rank that pawn landed on.
// The enemy pawn must have just advanced two squares — origin and
// destination ranks differ by 2 — which is the from-first-principles
// condition this engine uses in place of the source's two (mutually
// contradictory) sign conventions for the same test.
func (p *Position) EnPassantTarget() (ok bool, x, y int) {
	if len(p.MoveStack) == 0 {
		return false, 0, 0
	}
	last := p.MoveStack[len(p.MoveStack)-1]
	if last.isNull() {
		return false, 0, 0
	}
	dx, dy := int(last.DX), int(last.DY)
	moved := p.Pieces[Sq(dx, dy)]
	if Type(moved) != Pawn {
		return false, 0, 0
	}
	if absInt(int(last.DY)-int(last.OY)) != 2 {
		return false, 0, 0
	}
	return true, dx, dy
}

func (p *Position) String() string {
	var s string
	for y := 7; y >= 0; y-- {
		for x := 0; x < 8; x++ {
			pc := p.Pieces[Sq(x, y)]
			s += fmt.Sprintf("%2d", pc)
		}
		s += "\n"
	}
	return s
}
