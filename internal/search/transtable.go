package search

import "github.com/corvidchess/lucid/internal/board"

// Bound records which side of [alpha, beta] a stored score was cut off
// against, per the flag semantics in §4.5.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

// Entry is a single transposition-table slot. A zero-value Entry (Key
// 0) is treated as empty on probe.
type Entry struct {
	Key   uint64
	Depth int16
	Score int32
	Move  board.Move
	Bound Bound
}

// TransTable is a fixed-capacity, always-replace transposition table:
// the simplest correct replacement policy named in the data model, and
// adequate given the core never runs more than one search thread at a
// time (spec.md's no-parallel-search non-goal).
type TransTable struct {
	entries []Entry
	mask    uint64
}

// NewTransTable builds a table with capacity rounded up to the next
// power of two (at least one slot).
func NewTransTable(capacity int) *TransTable {
	var n = 1
	for n < capacity {
		n <<= 1
	}
	return &TransTable{
		entries: make([]Entry, n),
		mask:    uint64(n - 1),
	}
}

func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = Entry{}
	}
}

// Probe returns the slot key mod N maps to, plus whether its key
// matches (the caller must not trust a mismatched slot's contents).
func (tt *TransTable) Probe(key uint64) (Entry, bool) {
	var e = tt.entries[key&tt.mask]
	return e, e.Key == key && e.Key != 0
}

// Save writes entry's fields into the slot key maps to, applying the
// mate-distance normalization from §4.5 so a mate score found N plies
// deep in one probe reads back correctly from a shallower or deeper
// probe of the same entry.
func (tt *TransTable) Save(key uint64, depth int, score int32, move board.Move, bound Bound, ply int) {
	tt.entries[key&tt.mask] = Entry{
		Key:   key,
		Depth: int16(depth),
		Score: valueToTT(score, ply),
		Move:  move,
		Bound: bound,
	}
}

// ScoreFromTT reverses the mate-distance normalization Save applied,
// given the ply the probe happens at.
func ScoreFromTT(score int32, ply int) int32 {
	return valueFromTT(score, ply)
}

func valueToTT(score int32, ply int) int32 {
	if score >= MateThreshold {
		return score + int32(ply)
	}
	if score <= -MateThreshold {
		return score - int32(ply)
	}
	return score
}

func valueFromTT(score int32, ply int) int32 {
	if score >= MateThreshold {
		return score - int32(ply)
	}
	if score <= -MateThreshold {
		return score + int32(ply)
	}
	return score
}
