package search

import "github.com/corvidchess/lucid/internal/board"

// KillerTable is a two-slot FIFO per ply of recently cutting-off quiet
// moves, grounded on the teacher's node.killer1/killer2 fields but
// reorganized as an explicit table indexed by ply rather than fields
// carried on a recursion-node object.
type KillerTable struct {
	moves [MaxPly + 1][KillerSlots]board.Move
}

func NewKillerTable() *KillerTable {
	return &KillerTable{}
}

func (k *KillerTable) Clear() {
	*k = KillerTable{}
}

// Moves returns the two killer slots recorded for ply, in priority
// order (slot 0 first).
func (k *KillerTable) Moves(ply int) [KillerSlots]board.Move {
	return k.moves[ply]
}

// Update records move as the newest killer at ply. Captures are never
// inserted: a capture already outranks every quiet in the move orderer,
// so a killer slot spent on one would never be consulted.
func (k *KillerTable) Update(ply int, move board.Move) {
	if move.IsCapture() {
		return
	}
	if k.moves[ply][0] == move {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = move
}
