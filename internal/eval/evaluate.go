// Package eval supplies the static evaluation function the search core
// treats as an external collaborator (spec §1): a tapered
// material-plus-piece-square evaluator in the style of the teacher's
// midgame/endgame scoring, condensed down to the handful of terms that
// matter for exercising the search rather than for playing strength.
package eval

import "github.com/corvidchess/lucid/internal/board"

// score pairs a midgame and an endgame term the way the teacher's own
// evaluator does, so a single table lookup contributes to both phases
// at once and Evaluate blends them by game phase at the end.
type score struct {
	midgame, endgame int32
}

func (s score) add(o score) score {
	return score{s.midgame + o.midgame, s.endgame + o.endgame}
}

func (s score) sub(o score) score {
	return score{s.midgame - o.midgame, s.endgame - o.endgame}
}

var materialValue = [7]score{
	board.Empty:  {0, 0},
	board.Pawn:   {100, 120},
	board.Knight: {320, 320},
	board.Bishop: {330, 330},
	board.Rook:   {500, 550},
	board.Queen:  {950, 970},
	board.King:   {0, 0},
}

// phaseWeight approximates how much of the midgame character each piece
// type contributes; summing over the board and normalizing against
// totalPhase gives a 0 (pure endgame) .. totalPhase (pure midgame)
// blend factor.
var phaseWeight = [7]int32{
	board.Empty:  0,
	board.Pawn:   0,
	board.Knight: 1,
	board.Bishop: 1,
	board.Rook:   2,
	board.Queen:  4,
	board.King:   0,
}

const totalPhase = 4*1 + 4*1 + 4*2 + 2*4

// pst holds, per piece type, a white-oriented 64-square table; black's
// contribution is read through the mirrored square via board.FlipSquare.
var pst = [7][64]score{
	board.Pawn: tapered(pawnPST, pawnPSTEnd),
	board.Knight: tapered(knightPST, knightPST),
	board.Bishop: tapered(bishopPST, bishopPST),
	board.Rook: tapered(rookPST, rookPST),
	board.Queen: tapered(queenPST, queenPST),
	board.King: tapered(kingPSTMid, kingPSTEnd),
}

func tapered(mid, end [64]int32) [64]score {
	var out [64]score
	for i := range out {
		out[i] = score{mid[i], end[i]}
	}
	return out
}

var pawnPST = [64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var pawnPSTEnd = [64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	10, 10, 10, 10, 10, 10, 10, 10,
	15, 15, 15, 15, 15, 15, 15, 15,
	25, 25, 25, 25, 25, 25, 25, 25,
	40, 40, 40, 40, 40, 40, 40, 40,
	60, 60, 60, 60, 60, 60, 60, 60,
	80, 80, 80, 80, 80, 80, 80, 80,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int32{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int32{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenPST = [64]int32{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingPSTMid = [64]int32{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

var kingPSTEnd = [64]int32{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50,
}

const bishopPairBonus int32 = 30

// Evaluate scores pos from the side-to-move's perspective in
// centipawns, positive meaning better for the side to move. It is the
// evaluate(state) -> i32 collaborator the search core's quiescence
// stand-pat and negamax horizon call.
func Evaluate(pos *board.Position) int32 {
	var white, black score
	var phase int32

	for sq := 0; sq < 64; sq++ {
		var piece = pos.WhatPiece(sq)
		if piece == board.Empty {
			continue
		}
		var isWhite = pos.White&board.SquareMask[sq] != 0
		var pstSq = sq
		if !isWhite {
			pstSq = board.FlipSquare(sq)
		}
		var s = materialValue[piece].add(pst[piece][pstSq])
		if isWhite {
			white = white.add(s)
		} else {
			black = black.add(s)
		}
		phase += phaseWeight[piece]
	}

	if board.PopCount(pos.Bishops&pos.White) >= 2 {
		white.midgame += bishopPairBonus
		white.endgame += bishopPairBonus
	}
	if board.PopCount(pos.Bishops&pos.Black) >= 2 {
		black.midgame += bishopPairBonus
		black.endgame += bishopPairBonus
	}

	var total = white.sub(black)
	if phase > totalPhase {
		phase = totalPhase
	}
	var blended = (total.midgame*phase + total.endgame*(totalPhase-phase)) / totalPhase

	if !pos.WhiteMove {
		blended = -blended
	}
	return blended
}
