package search

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/corvidchess/lucid/internal/board"
)

// Limits bounds a single search call: Depth caps the iterative
// deepening loop (0 means MaxDepth), Movetime caps wall-clock time (0
// means no time-based deadline — the caller's ctx is the only way to
// stop it).
type Limits struct {
	Depth    int
	Movetime time.Duration
}

// Result is one completed iteration of the Iterative-Deepening Driver.
type Result struct {
	Move  board.Move
	Score int32
	Depth int
	Nodes int64
}

// ProgressFunc receives a Result after every completed iteration (and,
// mid-iteration, a Result carrying only Nodes updated so far — callers
// distinguish the two by Depth being 0).
type ProgressFunc func(Result)

// Driver owns the tables that persist across a game (transposition
// table, killer table, continuation history) and drives the
// iterative-deepening loop described in §4.8. One Driver searches one
// position at a time.
type Driver struct {
	tt      *TransTable
	killers *KillerTable
	cont    *ContinuationHistory
	eval    EvalFunc
}

func NewDriver(eval EvalFunc) *Driver {
	return NewDriverWithCapacity(eval, TTCapacity)
}

// NewDriverWithCapacity builds a Driver whose transposition table holds
// at least capacity entries (rounded up to a power of two), for a UCI
// front-end that wants the table's size to follow the Hash option
// rather than the fixed default.
func NewDriverWithCapacity(eval EvalFunc, capacity int) *Driver {
	if capacity < 1 {
		capacity = 1
	}
	return &Driver{
		tt:      NewTransTable(capacity),
		killers: NewKillerTable(),
		cont:    NewContinuationHistory(),
		eval:    eval,
	}
}

// NewGame resets every cross-iteration table, per the UCI ucinewgame
// contract (new opponent, new game: history so far is no longer
// relevant).
func (d *Driver) NewGame() {
	d.tt.Clear()
	d.killers.Clear()
	d.cont.Clear()
}

// Search runs iterative deepening from depth 1 up to limits.Depth (or
// MaxDepth), returning the deepest fully-completed iteration's result.
// A cancelled iteration never overwrites the previous one's best move:
// the driver keeps the result of the last iteration that ran to
// completion and discards the one interrupted mid-search.
//
// The deadline is enforced by a dedicated watcher goroutine coordinated
// with the searching goroutine via errgroup, per the data model's
// "asynchronous deadline observer" description: the watcher writes only
// sc.Cancelled, and reads only sc.Nodes for progress reports; it never
// mutates search state.
func (d *Driver) Search(parent context.Context, pos board.Position, historyKeys map[uint64]int, limits Limits, onProgress ProgressFunc) Result {
	var maxDepth = limits.Depth
	if maxDepth <= 0 || maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}

	var searchCtx context.Context
	var cancel context.CancelFunc
	if limits.Movetime > 0 {
		searchCtx, cancel = context.WithTimeout(parent, limits.Movetime)
	} else {
		searchCtx, cancel = context.WithCancel(parent)
	}
	defer cancel()

	var sc = NewContext(d.tt, d.killers, d.cont, d.eval)
	sc.SetRootPosition(pos, historyKeys)

	var group, groupCtx = errgroup.WithContext(searchCtx)
	var best Result

	group.Go(func() error {
		var ticker = time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		var nextReport int64 = NodeTimecheckPeriod
		for {
			select {
			case <-groupCtx.Done():
				sc.Cancelled.Store(true)
				return nil
			case <-ticker.C:
				if onProgress != nil && sc.Nodes >= nextReport {
					onProgress(Result{Nodes: sc.Nodes})
					nextReport = sc.Nodes + NodeTimecheckPeriod
				}
			}
		}
	})

	group.Go(func() error {
		defer cancel()
		for depth := 1; depth <= maxDepth; depth++ {
			var score = sc.Negamax(depth, 0, -Mate, Mate)
			if sc.isCancelled() {
				break
			}
			best = Result{Move: sc.IterBestMove, Score: score, Depth: depth, Nodes: sc.Nodes}
			if onProgress != nil {
				onProgress(best)
			}
			if score >= MateThreshold || score <= -MateThreshold {
				break
			}
		}
		return nil
	})

	_ = group.Wait()
	return best
}

// PrincipalVariation walks the transposition table forward from pos,
// playing first and then each subsequent entry's stored best move,
// until a probe misses, an entry carries no move, or a position
// repeats (guarding against a cycle of always-replace entries pointing
// back into themselves). The table only ever stores one move per
// position, so this reconstruction is best-effort: a concurrent search
// of a later depth can overwrite an ancestor's entry before the PV is
// read back.
func (d *Driver) PrincipalVariation(pos board.Position, first board.Move, maxLen int) []board.Move {
	if first == board.MoveEmpty {
		return nil
	}
	var line = make([]board.Move, 0, maxLen)
	var seen = make(map[uint64]bool)
	var current = pos
	var move = first
	for len(line) < maxLen {
		var child board.Position
		if !current.MakeMove(move, &child) {
			break
		}
		line = append(line, move)
		if seen[child.Key] {
			break
		}
		seen[child.Key] = true
		current = child

		var entry, ok = d.tt.Probe(current.Key)
		if !ok || entry.Move == board.MoveEmpty {
			break
		}
		move = entry.Move
	}
	return line
}
