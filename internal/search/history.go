package search

import "github.com/corvidchess/lucid/internal/board"

// stackPad is the number of sentinel frames at the head of a search
// stack, wide enough to satisfy every reference offset used by the
// continuation history (up to 4 plies back) without a bounds check at
// the call site: reading stack[ply-4] at ply 0 lands on a zero-value
// sentinel whose Cont is nil, per the stack-underflow invariant.
const stackPad = 4

// StackEntry is one per ply of recursion: the move that led into the
// ply (zero at the root and at the padding sentinels) and the
// continuation-history sub-table that move addresses.
type StackEntry struct {
	Move board.Move
	Cont *ContinuationEntry
}

// NewStack allocates a search stack sized for MaxPly plies plus its
// sentinel padding, ready to index as stack[ply+stackPad].
func NewStack() []StackEntry {
	return make([]StackEntry, MaxPly+1+stackPad)
}

// ContinuationEntry is the three-dimensional [side][pieceType][toSquare]
// table referenced by a single (prior side, prior piece, prior
// to-square) combination.
type ContinuationEntry [2][7][64]int32

func colorIndex(whiteToMove bool) int {
	if whiteToMove {
		return 0
	}
	return 1
}

// ContinuationHistory is the four-dimensional table
// table[side][pieceType][toSquare] -> ContinuationEntry described in
// the data model: one sub-table per (side-to-move, piece, to-square)
// that made a move, each scoring how the move that followed it fared.
type ContinuationHistory struct {
	table [2][7][64]ContinuationEntry
}

func NewContinuationHistory() *ContinuationHistory {
	return &ContinuationHistory{}
}

func (ch *ContinuationHistory) Clear() {
	*ch = ContinuationHistory{}
}

// GetEntry returns the sub-table addressed by the side to move, the
// piece standing on move's from-square, and move's to-square. Callers
// install the result into the child ply's stack entry before
// descending, per the negamax ordering in §4.7 step 7.
func (ch *ContinuationHistory) GetEntry(pos *board.Position, move board.Move) *ContinuationEntry {
	var side = colorIndex(pos.WhiteMove)
	var piece = pos.WhatPiece(move.From())
	return &ch.table[side][piece][move.To()]
}

// GetScore reads entry using the current position's side to move, the
// piece on move's from-square, and move's to-square. A nil entry
// (stack underflow, or no move led into that ply) reads as zero.
func GetScore(entry *ContinuationEntry, whiteToMove bool, pieceAtFrom, to int) int32 {
	if entry == nil {
		return 0
	}
	return entry[colorIndex(whiteToMove)][pieceAtFrom][to]
}

func addScore(entry *ContinuationEntry, whiteToMove bool, pieceAtFrom, to int, delta int32) {
	if entry == nil {
		return
	}
	entry[colorIndex(whiteToMove)][pieceAtFrom][to] += delta
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// HistoryBonus maps a search depth to an unsigned update magnitude,
// growing quadratically at shallow depth and saturating at a cap so a
// single cutoff deep in the tree can't dominate the table.
func HistoryBonus(depth int) int32 {
	var b = int32(4*depth*depth + 120*depth - 120)
	if b < 0 {
		b = 0
	}
	if b > 1896 {
		b = 1896
	}
	return b
}

// ScaleBonus implements the gravity rule: the magnitude of the update
// shrinks as the current score approaches ±ScoreCap, so repeated
// cutoffs asymptote toward the cap instead of overflowing past it.
func ScaleBonus(currentScore, bonus int32) int32 {
	return bonus - currentScore*abs32(bonus)/ScoreCap
}

// referenceOffsets are the stack-relative distances (in plies) that
// continuation history reads and updates at, per the data model.
var referenceOffsets = [3]int{1, 2, 4}

func continuationRefs(stack []StackEntry, ply int) [3]*ContinuationEntry {
	var refs [3]*ContinuationEntry
	for i, d := range referenceOffsets {
		var idx = ply - d + stackPad
		if idx >= 0 {
			refs[i] = stack[idx].Cont
		}
	}
	return refs
}

// QuietScore sums the continuation-history contribution of playing
// move at ply, across the three reference offsets; this is the key the
// move orderer sorts remaining quiets by.
func (ch *ContinuationHistory) QuietScore(stack []StackEntry, ply int, pos *board.Position, move board.Move) int32 {
	var refs = continuationRefs(stack, ply)
	var piece = pos.WhatPiece(move.From())
	var to = move.To()
	var s int32
	for _, ref := range refs {
		s += GetScore(ref, pos.WhiteMove, piece, to)
	}
	return s
}

// UpdateScore is called on a quiet-move beta cutoff: cutoff is the move
// that caused it, quiets is every quiet move tried at this node
// (including cutoff) in the order tried. Each quiet other than cutoff
// is pushed away from its own current score while cutoff is pulled
// toward it, at every one of the three reference offsets.
func (ch *ContinuationHistory) UpdateScore(stack []StackEntry, ply int, depth int, pos *board.Position, cutoff board.Move, quiets []board.Move) {
	var refs = continuationRefs(stack, ply)
	var bonus = HistoryBonus(depth)

	apply := func(move board.Move, sign int32) {
		var piece = pos.WhatPiece(move.From())
		var to = move.To()
		var s int32
		for _, ref := range refs {
			s += GetScore(ref, pos.WhiteMove, piece, to)
		}
		var delta = sign * ScaleBonus(s, bonus)
		for _, ref := range refs {
			addScore(ref, pos.WhiteMove, piece, to, delta)
		}
	}

	apply(cutoff, 1)
	for _, q := range quiets {
		if q == cutoff {
			continue
		}
		apply(q, -1)
	}
}
