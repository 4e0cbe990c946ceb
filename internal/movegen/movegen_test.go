package movegen_test

import (
	"testing"

	"github.com/oliverans/mateline/internal/board"
	"github.com/oliverans/mateline/internal/movegen"
)

func perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var out [64]uint64
	movegen.GenerateMoves(pos, pos.SideToMove, &out, movegen.Options{})
	var nodes uint64
	for sq := 0; sq < 64; sq++ {
		dests := out[sq]
		x, y := board.File(sq), board.Rank(sq)
		for dests != 0 {
			var dsq int
			dsq, dests = board.PopLSB(dests)
			pos.Make(x, y, board.File(dsq), board.Rank(dsq))
			nodes += perft(pos, depth-1)
			pos.Unmake()
		}
	}
	return nodes
}

func TestPerftInitialPosition(t *testing.T) {
	want := []uint64{20, 400, 8902, 197281, 4865609}
	for depth, w := range want {
		pos, err := board.FromFEN(board.StartFEN)
		if err != nil {
			t.Fatalf("FromFEN: %v", err)
		}
		if got := perft(pos, depth+1); got != w {
			t.Errorf("perft depth %d: got %d want %d", depth+1, got, w)
		}
	}
}

func TestEnPassantCapture(t *testing.T) {
	pos, err := board.FromFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	play(t, pos, "e2e4", "a7a6", "e4e5", "d7d5")

	var out [64]uint64
	movegen.GenerateMoves(pos, board.White, &out, movegen.Options{})
	e5 := board.Sq(4, 4)
	d6 := board.Sq(3, 5)
	if out[e5]&(uint64(1)<<uint(d6)) == 0 {
		t.Fatalf("expected e5 pawn to have en passant capture to d6")
	}

	pos.Make(4, 4, 3, 5)
	d5 := board.Sq(3, 4)
	if pos.Pieces[d5] != board.None {
		t.Fatalf("expected black pawn on d5 to be captured en passant")
	}
}

func TestCastlingRightsLostAfterRookMoves(t *testing.T) {
	pos, err := board.FromFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	play(t, pos, "e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6")

	var out [64]uint64
	movegen.GenerateMoves(pos, board.White, &out, movegen.Options{})
	e1 := board.Sq(4, 0)
	g1 := board.Sq(6, 0)
	if out[e1]&(uint64(1)<<uint(g1)) == 0 {
		t.Fatalf("expected kingside castle to be available")
	}

	play(t, pos, "h1g1", "f6g8", "g1h1", "g8f6")

	movegen.GenerateMoves(pos, board.White, &out, movegen.Options{})
	if out[e1]&(uint64(1)<<uint(g1)) != 0 {
		t.Fatalf("expected kingside castle to be unavailable after rook moved")
	}
}

func TestStalemateDetection(t *testing.T) {
	pos, err := board.FromFEN("8/8/8/8/8/p7/P1k5/K7 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	if movegen.AnyMoves(pos, board.White) {
		t.Fatalf("expected no legal moves in stalemate position")
	}
	if movegen.InCheck(pos, board.White) {
		t.Fatalf("expected stalemate, not check")
	}
}

func TestPromotionToQueen(t *testing.T) {
	pos, err := board.FromFEN("7k/1P6/8/8/8/8/8/7K w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	pos.Make(1, 6, 1, 7)
	b8 := board.Sq(1, 7)
	if got := pos.Pieces[b8]; board.Type(got) != board.Queen || board.Side(got) != board.White {
		t.Fatalf("expected white queen on b8, got %v", got)
	}
	want := pos.RecomputeHash(false)
	if pos.Hash != want {
		t.Fatalf("hash mismatch after promotion: got %#x want %#x", pos.Hash, want)
	}
}

func play(t *testing.T, pos *board.Position, moves ...string) {
	t.Helper()
	for _, mv := range moves {
		ox := int(mv[0] - 'a')
		oy := int(mv[1] - '1')
		dx := int(mv[2] - 'a')
		dy := int(mv[3] - '1')
		var out [64]uint64
		movegen.GenerateMoves(pos, pos.SideToMove, &out, movegen.Options{})
		sq := board.Sq(ox, oy)
		if out[sq]&(uint64(1)<<uint(board.Sq(dx, dy))) == 0 {
			t.Fatalf("move %s is not legal in current position", mv)
		}
		pos.Make(ox, oy, dx, dy)
	}
}
