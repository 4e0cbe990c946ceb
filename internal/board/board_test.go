package board_test

import (
	"testing"

	"github.com/oliverans/mateline/internal/board"
)

func TestMakeUnmakeRoundTrip(t *testing.T) {
	pos, err := board.FromFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	before := *pos
	beforeHash := pos.Hash

	pos.Make(4, 1, 4, 3) // e2e4
	if pos.Hash == beforeHash {
		t.Fatalf("expected hash to change after a move")
	}
	pos.Unmake()

	if pos.Hash != beforeHash {
		t.Fatalf("hash not restored: got %#x want %#x", pos.Hash, beforeHash)
	}
	if pos.Pieces != before.Pieces {
		t.Fatalf("pieces not restored")
	}
	if pos.SideSets != before.SideSets || pos.PieceSets != before.PieceSets {
		t.Fatalf("occupancy masks not restored")
	}
	if pos.HasMoved != before.HasMoved {
		t.Fatalf("HasMoved not restored")
	}
	if pos.SideToMove != before.SideToMove {
		t.Fatalf("side to move not restored")
	}
}

func TestHashMatchesFromScratch(t *testing.T) {
	pos, err := board.FromFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	moves := [][4]int{{4, 1, 4, 3}, {4, 6, 4, 4}, {6, 0, 5, 2}, {1, 7, 2, 5}}
	for _, m := range moves {
		pos.Make(m[0], m[1], m[2], m[3])
		ok, _, _ := pos.EnPassantTarget()
		if got, want := pos.Hash, pos.RecomputeHash(ok); got != want {
			t.Fatalf("hash drift after move %v: got %#x want %#x", m, got, want)
		}
	}
	for range moves {
		pos.Unmake()
	}
	ok, _, _ := pos.EnPassantTarget()
	if got, want := pos.Hash, pos.RecomputeHash(ok); got != want {
		t.Fatalf("hash drift after full unwind: got %#x want %#x", got, want)
	}
}

func TestTwoPathHashEquivalence(t *testing.T) {
	p1, _ := board.FromFEN(board.StartFEN)
	p1.Make(4, 1, 4, 3) // e4
	p1.Make(0, 6, 0, 5) // a6
	p1.Make(1, 0, 2, 2) // Nc3
	p1.Make(0, 5, 0, 4) // a5

	// The final single-step a5 leaves neither position with en passant
	// available, so only the move order differs.
	p2, _ := board.FromFEN(board.StartFEN)
	p2.Make(1, 0, 2, 2) // Nc3
	p2.Make(0, 6, 0, 5) // a6
	p2.Make(4, 1, 4, 3) // e4
	p2.Make(0, 5, 0, 4) // a5

	if p1.Hash != p2.Hash {
		t.Fatalf("expected equal hashes for transposed move orders: %#x vs %#x", p1.Hash, p2.Hash)
	}
}
