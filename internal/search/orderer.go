package search

import "github.com/corvidchess/lucid/internal/board"

// pieceOrderValue is a coarse material scale used only for move
// ordering (MVV-LVA), distinct from internal/eval's evaluation weights.
var pieceOrderValue = [7]int{
	board.Empty:  0,
	board.Pawn:   100,
	board.Knight: 300,
	board.Bishop: 300,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   10000,
}

func mvvlva(move board.Move) int {
	return pieceOrderValue[move.CapturedPiece()]*64 - pieceOrderValue[move.MovingPiece()]
}

// Sort-key bands, highest priority first: a TT-hinted move always
// sorts above every capture; every capture (scored by MVV-LVA) sorts
// above both killer slots; killers sort above every quiet, which are
// then ordered among themselves by continuation-history score. Bands
// are spaced so no quiet's continuation-history sum (bounded by three
// ScoreCap-clamped terms) can climb into the killer band or above.
const (
	keyTTMove    = 1 << 30
	keyCaptureBase = 1 << 21
	keyKiller0   = 1 << 16
	keyKiller1   = keyKiller0 - 1
)

// Orderer produces move lists in descending heuristic priority,
// consulting the TT hint, killer table and continuation history the
// way the teacher's move-sort stage does, generalized to the table
// shapes spec.md's data model defines.
type Orderer struct {
	Killers *KillerTable
	Cont    *ContinuationHistory
}

func NewOrderer(killers *KillerTable, cont *ContinuationHistory) *Orderer {
	return &Orderer{Killers: killers, Cont: cont}
}

// OrderCaptures returns every pseudo-legal capture and queen promotion
// in pos (board.GenerateCaptures emits no under-promotions), ordered by
// MVV-LVA (Captures mode, §4.4).
func (o *Orderer) OrderCaptures(pos *board.Position) []board.Move {
	var buffer [board.MaxMoves]board.Move
	var moves = board.GenerateCaptures(buffer[:], pos)
	var keyed = make([]board.OrderedMove, len(moves))
	for i, m := range moves {
		keyed[i] = board.OrderedMove{Move: m, Key: mvvlva(m)}
	}
	stableSortDesc(keyed)
	var out = make([]board.Move, len(keyed))
	for i, om := range keyed {
		out[i] = om.Move
	}
	return out
}

// OrderMoves returns every pseudo-legal move in pos (All mode, §4.4),
// ordered: ttMove first if present among the legal candidates, then
// captures by MVV-LVA, then killer-slot matches, then remaining quiets
// by continuation-history score at ply.
func (o *Orderer) OrderMoves(pos *board.Position, stack []StackEntry, ply int, ttMove board.Move) []board.Move {
	var buffer [board.MaxMoves]board.Move
	var moves = board.GenerateMoves(buffer[:], pos)
	var killers = o.Killers.Moves(ply)

	var keyed = make([]board.OrderedMove, len(moves))
	for i, m := range moves {
		var key int
		switch {
		case ttMove != board.MoveEmpty && m == ttMove:
			key = keyTTMove
		case m.IsCapture():
			key = keyCaptureBase + mvvlva(m)
		case m == killers[0]:
			key = keyKiller0
		case m == killers[1]:
			key = keyKiller1
		default:
			key = int(o.Cont.QuietScore(stack, ply, pos, m))
		}
		keyed[i] = board.OrderedMove{Move: m, Key: key}
	}
	stableSortDesc(keyed)

	var out = make([]board.Move, len(keyed))
	for i, om := range keyed {
		out[i] = om.Move
	}
	return out
}

// stableSortDesc sorts in place by descending Key, preserving the
// relative order of equal keys (the stability requirement in §4.4).
// Move lists are short (rarely above forty), so insertion sort in the
// teacher's shell-sort style outperforms a general-purpose sort and
// needs no allocation.
func stableSortDesc(ml []board.OrderedMove) {
	for i := 1; i < len(ml); i++ {
		var v = ml[i]
		var j = i - 1
		for j >= 0 && ml[j].Key < v.Key {
			ml[j+1] = ml[j]
			j--
		}
		ml[j+1] = v
	}
}
