package board

// Make applies exactly one half-move and pushes one UndoRecord. The caller
// guarantees the move is pseudo-legal; Make itself performs no legality
// checking. A null move is requested by passing ox=oy=dx=dy=0.
func (p *Position) Make(ox, oy, dx, dy int) {
	if ox == 0 && oy == 0 && dx == 0 && dy == 0 {
		p.makeNull()
		return
	}

	var rec UndoRecord
	rec.OX, rec.OY, rec.DX, rec.DY = int8(ox), int8(oy), int8(dx), int8(dy)

	oldEP := p.lastMoveWasPawnDoubleStep()

	org := Sq(ox, oy)
	dst := Sq(dx, dy)

	piece := p.Pieces[org]
	pieceType := Type(piece)
	side := Side(piece)

	invariant(piece != None, "Make: origin square is empty")
	invariant(p.SideSets[side]&bit(org) != 0, "Make: origin square occupied in Pieces but not side_sets")
	invariant(p.PieceSets[pieceType]&bit(org) != 0, "Make: origin square occupied in Pieces but not piece_sets")

	rec.OrgHadMoved = p.HasMoved&bit(org) != 0
	p.HasMoved &^= bit(org)

	newEP := pieceType == Pawn && absInt(dy-oy) == 2
	if newEP != oldEP {
		p.Hash ^= p.tables.Zobrist[0][8]
		rec.EPFlagChanged = true
	}

	// Castling: relocate the rook before the general move/capture logic
	// touches the king's own squares.
	if pieceType == King && absInt(dx-ox) == 2 {
		rookFromX, rookToX := 7, 5
		if dx < ox {
			rookFromX, rookToX = 0, 3
		}
		rookFrom := Sq(rookFromX, oy)
		rookTo := Sq(rookToX, oy)
		rook := p.Pieces[rookFrom]
		p.HasMoved |= bit(rookFrom)
		p.SideSets[side] ^= bit(rookFrom) | bit(rookTo)
		p.PieceSets[Rook] ^= bit(rookFrom) | bit(rookTo)
		p.Pieces[rookFrom] = None
		p.Pieces[rookTo] = rook
		p.Hash ^= p.tables.Zobrist[rookFrom][rook]
		p.Hash ^= p.tables.Zobrist[rookTo][rook]
	}

	// Capture resolution: default capture square is the destination; an
	// en-passant capture lands on an empty destination one file over from
	// a pawn, with the captured pawn sitting on the origin's rank.
	capX, capY := dx, dy
	isEnPassant := p.Pieces[dst] == None && pieceType == Pawn && absInt(dx-ox) == 1
	if isEnPassant {
		capX, capY = dx, oy
	}
	capSq := Sq(capX, capY)
	captured := p.Pieces[capSq]
	// Recorded even when capSq (then the destination) is empty, so Unmake
	// can restore the destination's HasMoved bit exactly.
	rec.CapturedHadMoved = p.HasMoved&bit(capSq) != 0
	if captured != None {
		rec.CapturedX, rec.CapturedY = int8(capX), int8(capY)
		rec.CapturedPiece = captured
		p.HasMoved &^= bit(capSq)

		capSide := Side(captured)
		capType := Type(captured)
		p.SideSets[capSide] &^= bit(capSq)
		p.PieceSets[capType] &^= bit(capSq)
		p.Pieces[capSq] = None
		p.Hash ^= p.tables.Zobrist[capSq][captured]
	}

	// Move the piece.
	p.HasMoved |= bit(dst)
	p.SideSets[side] ^= bit(org) | bit(dst)
	p.PieceSets[pieceType] ^= bit(org) | bit(dst)
	p.Pieces[org] = None
	p.Pieces[dst] = piece
	p.Hash ^= p.tables.Zobrist[org][piece]
	p.Hash ^= p.tables.Zobrist[dst][piece]

	// Promotion: this engine promotes only to queen.
	lastRank := 7
	if side == Black {
		lastRank = 0
	}
	if pieceType == Pawn && dy == lastRank {
		queen := Encode(Queen, side)
		p.PieceSets[Pawn] &^= bit(dst)
		p.PieceSets[Queen] |= bit(dst)
		p.Pieces[dst] = queen
		p.Hash ^= p.tables.Zobrist[dst][piece]
		p.Hash ^= p.tables.Zobrist[dst][queen]
		rec.PromotionPiece = queen
	}

	p.SideToMove = Opponent(p.SideToMove)
	p.Hash ^= p.tables.Zobrist[1][8]
	p.RepetitionCounts[p.Hash]++
	p.AppendedMoves++

	p.MoveStack = append(p.MoveStack, rec)
}

func (p *Position) makeNull() {
	p.SideToMove = Opponent(p.SideToMove)
	p.Hash ^= p.tables.Zobrist[1][8]
	p.AppendedMoves++
	p.MoveStack = append(p.MoveStack, UndoRecord{})
}

// Unmake pops the most recently pushed UndoRecord and reverses it exactly.
func (p *Position) Unmake() {
	n := len(p.MoveStack)
	rec := p.MoveStack[n-1]
	p.MoveStack = p.MoveStack[:n-1]
	p.AppendedMoves--

	// The count was incremented under the post-move hash, so it is
	// decremented before the side-to-move key is toggled back.
	if !rec.isNull() {
		p.RepetitionCounts[p.Hash]--
		if p.RepetitionCounts[p.Hash] == 0 {
			delete(p.RepetitionCounts, p.Hash)
		}
	}

	p.SideToMove = Opponent(p.SideToMove)
	p.Hash ^= p.tables.Zobrist[1][8]

	if rec.isNull() {
		return
	}

	if rec.EPFlagChanged {
		p.Hash ^= p.tables.Zobrist[0][8]
	}

	ox, oy, dx, dy := int(rec.OX), int(rec.OY), int(rec.DX), int(rec.DY)
	org := Sq(ox, oy)
	dst := Sq(dx, dy)

	piece := p.Pieces[dst]
	side := Side(piece)

	// Undo promotion: downgrade the queen back into the pawn that made
	// the move, so the rest of this function can treat it uniformly.
	if rec.PromotionPiece != None {
		pawn := Encode(Pawn, side)
		p.Hash ^= p.tables.Zobrist[dst][piece]
		p.Hash ^= p.tables.Zobrist[dst][pawn]
		p.PieceSets[Queen] &^= bit(dst)
		p.PieceSets[Pawn] |= bit(dst)
		piece = pawn
		p.Pieces[dst] = piece
	}

	pieceType := Type(piece)

	// Move the piece back.
	p.Hash ^= p.tables.Zobrist[org][piece]
	p.Hash ^= p.tables.Zobrist[dst][piece]
	p.SideSets[side] ^= bit(org) | bit(dst)
	p.PieceSets[pieceType] ^= bit(org) | bit(dst)
	p.Pieces[dst] = None
	p.Pieces[org] = piece
	if rec.OrgHadMoved {
		p.HasMoved |= bit(org)
	} else {
		p.HasMoved &^= bit(org)
	}
	p.HasMoved &^= bit(dst)
	if rec.CapturedPiece == None && rec.CapturedHadMoved {
		p.HasMoved |= bit(dst)
	}

	// Restore the captured piece, if any.
	if rec.CapturedPiece != None {
		capSq := Sq(int(rec.CapturedX), int(rec.CapturedY))
		captured := rec.CapturedPiece
		capSide := Side(captured)
		capType := Type(captured)
		p.SideSets[capSide] |= bit(capSq)
		p.PieceSets[capType] |= bit(capSq)
		p.Pieces[capSq] = captured
		p.Hash ^= p.tables.Zobrist[capSq][captured]
		if rec.CapturedHadMoved {
			p.HasMoved |= bit(capSq)
		} else {
			p.HasMoved &^= bit(capSq)
		}
	}

	// Undo castling: put the rook back.
	if pieceType == King && absInt(dx-ox) == 2 {
		rookFromX, rookToX := 7, 5
		if dx < ox {
			rookFromX, rookToX = 0, 3
		}
		rookFrom := Sq(rookFromX, oy)
		rookTo := Sq(rookToX, oy)
		rook := p.Pieces[rookTo]
		p.SideSets[side] ^= bit(rookFrom) | bit(rookTo)
		p.PieceSets[Rook] ^= bit(rookFrom) | bit(rookTo)
		p.Pieces[rookTo] = None
		p.Pieces[rookFrom] = rook
		p.Hash ^= p.tables.Zobrist[rookFrom][rook]
		p.Hash ^= p.tables.Zobrist[rookTo][rook]
		p.HasMoved &^= bit(rookFrom)
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
