// Command enginectl is a small demonstration driver for the search core: it
// loads a position (defaulting to the standard start position), optionally
// replays a move history, runs a bounded search, and prints the result.
// It exists to exercise the package boundary described in the core's
// external-interface section; it is not a UCI engine, a perft tool, or a
// game server — those are explicitly out of scope.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/oliverans/mateline/internal/board"
	"github.com/oliverans/mateline/internal/eval"
	"github.com/oliverans/mateline/internal/search"
	"github.com/oliverans/mateline/internal/tt"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "FEN string for the starting position")
	moves := flag.String("moves", "", "comma-separated coordinate moves to replay first, e.g. e2e4,e7e5")
	depth := flag.Int("depth", 8, "maximum search depth")
	seconds := flag.Float64("seconds", 5, "maximum wall-clock search time in seconds")
	ttMB := flag.Int("tt-mb", 64, "transposition table size in megabytes")
	verbose := flag.Bool("v", false, "print one progress line per completed depth")
	flag.Parse()

	pos, err := board.FromFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "enginectl: %v\n", err)
		os.Exit(2)
	}

	if *moves != "" {
		for _, mv := range strings.Split(*moves, ",") {
			ox, oy, dx, dy, err := parseCoordMove(mv)
			if err != nil {
				fmt.Fprintf(os.Stderr, "enginectl: %v\n", err)
				os.Exit(2)
			}
			pos.Make(ox, oy, dx, dy)
		}
	}

	table := tt.New(1024 * 1024 * (*ttMB) / 32)
	ctx := search.NewContext(table, eval.Evaluate, search.Halt())
	if *verbose {
		ctx.Progress = func(info search.SearchInfo) {
			log.Printf("depth=%d score=%s nodes=%d ttHits=%d pv=%v",
				info.Depth, search.FormatScore(info.Score), info.Nodes, info.TTHits, info.PV)
		}
	}

	result := ctx.Search(pos, search.Limits{MaxDepth: *depth, MaxSeconds: *seconds})

	if result.Move.IsNull() {
		fmt.Println("no legal move")
		return
	}
	fmt.Printf("bestmove %s score %s nodes %d depth %d\n",
		result.Move, search.FormatScore(result.Score), result.Nodes, result.PlyReached)
}

func parseCoordMove(s string) (ox, oy, dx, dy int, err error) {
	if len(s) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("bad move %q: expected 4 characters", s)
	}
	ox = int(s[0] - 'a')
	oy = int(s[1] - '1')
	dx = int(s[2] - 'a')
	dy = int(s[3] - '1')
	if ox < 0 || ox > 7 || dx < 0 || dx > 7 || oy < 0 || oy > 7 || dy < 0 || dy > 7 {
		return 0, 0, 0, 0, fmt.Errorf("bad move %q: out of range", s)
	}
	return ox, oy, dx, dy, nil
}
