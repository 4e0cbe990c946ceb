package search

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/oliverans/mateline/internal/eval"
	"github.com/oliverans/mateline/internal/tt"
)

// maxPly bounds the killer-move table: plies at or beyond it record and
// match no killers. It keeps the table a fixed array rather than a growing
// slice; the search recursion itself is not limited by it.
const maxPly = 128

// Limits bounds one search invocation.
type Limits struct {
	MaxDepth   int
	MaxSeconds float64
}

// SearchInfo is handed to the optional progress callback once per
// completed iterative-deepening depth.
type SearchInfo struct {
	Depth  int
	Score  int
	Nodes  int64
	TTHits int64
	PV     []Move
}

// Result is what the top-level driver returns.
type Result struct {
	Move       Move
	Score      int
	Nodes      int64
	PlyReached int
	PV         []Move
	TimedOut   bool
}

// Context is the "engine context" the redesign calls for in place of
// process-wide mutable singletons: everything Search mutates or reads
// during one invocation — other than the immutable lookup tables in
// internal/board, which are a once-initialized resource — is reached
// through this struct, explicitly threaded through every call instead of
// living in package-level variables.
type Context struct {
	TT        *tt.Table
	Evaluator eval.Func
	Progress  func(SearchInfo)

	deadline         time.Time
	halt             *int32
	currentRootDepth int

	killersMu sync.Mutex
	killers   [maxPly][2]Move

	nodes  int64
	ttHits int64
}

// NewContext builds a fresh per-search context. halt may be nil, in which
// case only the wall-clock deadline can cancel the search.
func NewContext(table *tt.Table, evaluator eval.Func, halt *int32) *Context {
	if halt == nil {
		var z int32
		halt = &z
	}
	return &Context{TT: table, Evaluator: evaluator, halt: halt}
}

func (c *Context) resetForSearch(maxSeconds float64) {
	c.deadline = time.Now().Add(time.Duration(maxSeconds * float64(time.Second)))
	c.nodes = 0
	c.ttHits = 0
	for i := range c.killers {
		c.killers[i] = [2]Move{}
	}
}

func (c *Context) timeUp() bool {
	return time.Now().After(c.deadline) || atomic.LoadInt32(c.halt) != 0
}

func (c *Context) addKiller(ply int, m Move) {
	if ply >= maxPly {
		return
	}
	c.killersMu.Lock()
	defer c.killersMu.Unlock()
	if c.killers[ply][0] == m {
		return
	}
	c.killers[ply][1] = c.killers[ply][0]
	c.killers[ply][0] = m
}

func (c *Context) isKiller(ply int, m Move) bool {
	if ply >= maxPly {
		return false
	}
	c.killersMu.Lock()
	defer c.killersMu.Unlock()
	return c.killers[ply][0] == m || c.killers[ply][1] == m
}

// Halt is the caller-owned cancellation flag: setting it non-zero (via
// atomic.StoreInt32) makes the running search unwind and return the best
// result found at the last fully completed depth. Mirrors the reference
// implementation's polled halt_search boolean.
func Halt() *int32 {
	var h int32
	return &h
}
