// Package engine adapts the internal/search core to the UCI protocol's
// vocabulary (options, limits, iteration info), the way the teacher's
// own engine package sits between its search tree and shell/uci.
package engine

import (
	"context"
	"time"

	"github.com/corvidchess/lucid/internal/board"
	"github.com/corvidchess/lucid/internal/eval"
	"github.com/corvidchess/lucid/internal/search"
)

// UciOption is the minimal option-reporting interface the uci package
// consults to print "option name ... type ..." lines.
type UciOption interface {
	Name() string
}

type BoolUciOption struct {
	name  string
	Value bool
}

func (o *BoolUciOption) Name() string { return o.name }

type IntUciOption struct {
	name            string
	Value, Min, Max int
}

func (o *IntUciOption) Name() string { return o.name }

// LimitsType mirrors the fields a UCI "go" command can carry.
type LimitsType struct {
	Ponder         bool
	Infinite       bool
	WhiteTime      int
	BlackTime      int
	WhiteIncrement int
	BlackIncrement int
	MoveTime       int
	MovesToGo      int
	Depth          int
	Nodes          int
	Mate           int
}

// UciScore is either a centipawn score or, near a forced mate, a
// distance-to-mate in moves (positive: the side to move mates;
// negative: the side to move gets mated).
type UciScore struct {
	Centipawns int
	Mate       int
}

// SearchInfo is one reportable line of search progress: a completed
// iteration, or the final result.
type SearchInfo struct {
	Score    UciScore
	Depth    int
	Nodes    int64
	Time     int64
	MainLine []board.Move
}

// SearchParams bundles a game's position history (used for repetition
// detection) with the limits and progress callback for one search call.
type SearchParams struct {
	Positions []board.Position
	Limits    LimitsType
	Progress  func(SearchInfo)
}

// Engine implements the uci.Engine contract around a search.Driver.
type Engine struct {
	Hash IntUciOption

	driver      *search.Driver
	hashApplied int
}

func NewEngine() *Engine {
	return &Engine{
		Hash:   IntUciOption{"Hash", 128, 1, 4096},
		driver: search.NewDriver(eval.Evaluate),
	}
}

func (e *Engine) GetInfo() (name, version, author string) {
	return "Lucid", "1.0", "corvidchess"
}

func (e *Engine) GetOptions() []UciOption {
	return []UciOption{&e.Hash}
}

// Prepare rebuilds the transposition table if the Hash option changed
// since the last call, mirroring the teacher's lazy-rebuild-on-resize
// pattern for its own transTable.
func (e *Engine) Prepare() {
	if e.Hash.Value != e.hashApplied {
		const bytesPerEntry = 24
		var entries = e.Hash.Value * 1024 * 1024 / bytesPerEntry
		e.driver = search.NewDriverWithCapacity(eval.Evaluate, entries)
		e.hashApplied = e.Hash.Value
	}
}

// Clear resets every cross-game table, serving UCI's ucinewgame.
func (e *Engine) Clear() {
	e.driver.NewGame()
}

// Search runs one position to completion (or cancellation/deadline)
// and returns the final iteration's SearchInfo.
func (e *Engine) Search(ctx context.Context, params SearchParams) SearchInfo {
	e.Prepare()

	var pos = params.Positions[len(params.Positions)-1]
	var historyKeys = positionsToHistoryKeys(params.Positions)

	var limits search.Limits
	limits.Depth = params.Limits.Depth
	if millis := computeThinkTime(params.Limits, pos.WhiteMove); millis > 0 {
		limits.Movetime = time.Duration(millis) * time.Millisecond
	}

	var start = time.Now()
	var onProgress search.ProgressFunc
	if params.Progress != nil {
		onProgress = func(r search.Result) {
			if r.Depth == 0 {
				return
			}
			params.Progress(e.toSearchInfo(pos, r, start))
		}
	}

	var result = e.driver.Search(ctx, pos, historyKeys, limits, onProgress)
	return e.toSearchInfo(pos, result, start)
}

func (e *Engine) toSearchInfo(pos board.Position, r search.Result, start time.Time) SearchInfo {
	return SearchInfo{
		Score:    toUciScore(r.Score),
		Depth:    r.Depth,
		Nodes:    r.Nodes,
		Time:     int64(time.Since(start) / time.Millisecond),
		MainLine: e.driver.PrincipalVariation(pos, r.Move, search.MaxDepth),
	}
}

func toUciScore(score int32) UciScore {
	if score >= search.MateThreshold {
		var plies = search.Mate - score
		return UciScore{Mate: int((plies + 1) / 2)}
	}
	if score <= -search.MateThreshold {
		var plies = search.Mate + score
		return UciScore{Mate: -int((plies + 1) / 2)}
	}
	return UciScore{Centipawns: int(score)}
}

// positionsToHistoryKeys turns a game's position list into the
// repetition-lookup map internal/search.Context consults, restarting
// the count whenever the fifty-move counter resets — a rule50 reset
// means no earlier position in the list can ever repeat again.
func positionsToHistoryKeys(positions []board.Position) map[uint64]int {
	var result = make(map[uint64]int)
	for _, p := range positions {
		if p.Rule50 == 0 {
			for k := range result {
				delete(result, k)
			}
		}
		result[p.Key]++
	}
	return result
}
