package search

import (
	"sync/atomic"

	"github.com/corvidchess/lucid/internal/board"
)

// EvalFunc is the static evaluation collaborator named in spec.md §6:
// centipawns, from the side-to-move's perspective.
type EvalFunc func(*board.Position) int32

// Context is the re-architected replacement for the source's file-scope
// globals (search_cancelled, nodes_searched, can_do_null_move,
// start_time, iteration-best fields), per the Design Notes: one struct
// owned by the Iterative-Deepening Driver and threaded through the
// recursion by reference. Cancelled is the only field a goroutine other
// than the searcher itself ever touches, so it alone needs atomic
// visibility; everything else is single-writer.
type Context struct {
	TT      *TransTable
	Killers *KillerTable
	Cont    *ContinuationHistory
	Orderer *Orderer
	Eval    EvalFunc

	Stack     []StackEntry
	Positions []board.Position

	// HistoryKeys counts how many times each Zobrist key occurred in
	// the game up to and including the search root, supplied by the caller so
	// repetitions that happened outside the search tree still count
	// toward a draw (supplemented feature, grounded on the teacher's
	// isRepeat/isDraw and PositionsToHistoryKeys).
	HistoryKeys map[uint64]int

	Nodes       int64
	CanNullMove bool
	Cancelled   atomic.Bool

	IterBestMove  board.Move
	IterBestScore int32
}

// NewContext builds a Context around the given root position and
// shared, cross-iteration tables. The caller installs the root
// position into ctx.Positions[0] via SetRootPosition before the first
// call to Negamax.
func NewContext(tt *TransTable, killers *KillerTable, cont *ContinuationHistory, eval EvalFunc) *Context {
	return &Context{
		TT:          tt,
		Killers:     killers,
		Cont:        cont,
		Orderer:     NewOrderer(killers, cont),
		Eval:        eval,
		Stack:       NewStack(),
		Positions:   make([]board.Position, MaxPly+1),
		HistoryKeys: make(map[uint64]int),
		CanNullMove: true,
	}
}

// SetRootPosition installs pos as ply 0 and clears the per-search stack
// state (but not the cross-iteration TT, killer and continuation
// tables, which persist by design).
func (ctx *Context) SetRootPosition(pos board.Position, historyKeys map[uint64]int) {
	ctx.Positions[0] = pos
	ctx.Stack = NewStack()
	ctx.HistoryKeys = historyKeys
	ctx.CanNullMove = true
}

func (ctx *Context) isCancelled() bool {
	return ctx.Cancelled.Load()
}

// isDraw reports whether the position at ply is a fifty-move-rule draw
// or repeats an earlier position either within the current search path
// or in the game history the caller supplied.
func (ctx *Context) isDraw(ply int) bool {
	var pos = &ctx.Positions[ply]
	if pos.Rule50 >= 100 {
		return true
	}
	for p := ply - 2; p >= 0; p -= 2 {
		if ctx.Positions[p].Key == pos.Key {
			return true
		}
	}
	return ctx.HistoryKeys[pos.Key] > 0
}
