package search_test

import (
	"testing"

	"github.com/oliverans/mateline/internal/board"
	"github.com/oliverans/mateline/internal/eval"
	"github.com/oliverans/mateline/internal/search"
	"github.com/oliverans/mateline/internal/tt"
)

func newContext() *search.Context {
	return search.NewContext(tt.New(1<<16), eval.Evaluate, search.Halt())
}

func TestMateInOne(t *testing.T) {
	// White king f6, white queen g6, black king h8: Qg7# is a king-and-queen
	// corner mate — g8 and h7 are covered by the queen and g7 itself is
	// defended by the king, so the black king has no escape.
	pos, err := board.FromFEN("7k/8/5KQ1/8/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	ctx := newContext()
	result := ctx.Search(pos, search.Limits{MaxDepth: 4, MaxSeconds: 5})

	want := search.Move{OX: 6, OY: 5, DX: 6, DY: 6}
	if result.Move != want {
		t.Fatalf("expected mating move %v, got %v", want, result.Move)
	}
	if got := search.FormatScore(result.Score); got != "#1" {
		t.Fatalf("expected mate-in-1 score, got %s", got)
	}
}

func TestStalemateScoresZero(t *testing.T) {
	pos, err := board.FromFEN("8/8/8/8/8/p7/P1k5/K7 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	ctx := newContext()
	result := ctx.Search(pos, search.Limits{MaxDepth: 3, MaxSeconds: 5})
	if !result.Move.IsNull() {
		t.Fatalf("expected no legal move in stalemate, got %v", result.Move)
	}
	if result.Score != 0 {
		t.Fatalf("expected score 0 for stalemate, got %d", result.Score)
	}
}

func TestThreefoldRepetitionScoresZero(t *testing.T) {
	pos, err := board.FromFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	seq := [][4]int{
		{6, 0, 5, 2}, {6, 7, 5, 5},
		{5, 2, 6, 0}, {5, 5, 6, 7},
		{6, 0, 5, 2}, {6, 7, 5, 5},
		{5, 2, 6, 0}, {5, 5, 6, 7},
	}
	for _, m := range seq {
		pos.Make(m[0], m[1], m[2], m[3])
	}

	ctx := newContext()
	result := ctx.Search(pos, search.Limits{MaxDepth: 3, MaxSeconds: 5})
	if result.Score != 0 {
		t.Fatalf("expected draw score 0 by repetition, got %d", result.Score)
	}
}
