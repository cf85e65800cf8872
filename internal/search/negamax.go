package search

import "github.com/corvidchess/lucid/internal/board"

// Quiescence resolves a position to a "quiet" horizon by searching
// captures only, per §4.6: stand-pat, delta pruning against a single
// queen's value, then a fail-hard capture search ordered by MVV-LVA.
func (ctx *Context) Quiescence(alpha, beta int32, ply int) int32 {
	var pos = &ctx.Positions[ply]
	var standPat = ctx.Eval(pos)

	if standPat >= beta {
		return beta
	}
	if standPat+QueenValue < alpha {
		return alpha
	}
	if standPat > alpha {
		alpha = standPat
	}
	if ply >= MaxPly {
		return alpha
	}

	var moves = ctx.Orderer.OrderCaptures(pos)
	var child board.Position
	for _, m := range moves {
		if !pos.MakeMove(m, &child) {
			continue
		}
		ctx.Positions[ply+1] = child

		var score = -ctx.Quiescence(-beta, -alpha, ply+1)

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// Negamax is the recursive core described in §4.7: TT probe, check
// extension, mate-distance pruning and draw detection, null-move
// pruning, ordered move search with continuation-history and killer
// bookkeeping on a quiet cutoff, and a TT store on the way out. The
// best score found is stored and returned as is (fail-soft), even when
// it lies outside [alpha, beta].
func (ctx *Context) Negamax(depth, ply int, alpha, beta int32) int32 {
	var alphaOrig = alpha

	var pos = &ctx.Positions[ply]

	// Step 1/2: TT probe.
	var ttMove = board.MoveEmpty
	if entry, ok := ctx.TT.Probe(pos.Key); ok {
		ttMove = entry.Move
		if int(entry.Depth) >= depth {
			var score = ScoreFromTT(entry.Score, ply)
			switch entry.Bound {
			case BoundExact:
				if ply == 0 {
					ctx.IterBestMove = entry.Move
					ctx.IterBestScore = score
				}
				return score
			case BoundLower:
				if score > alpha {
					alpha = score
				}
			case BoundUpper:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				if ply == 0 {
					ctx.IterBestMove = entry.Move
					ctx.IterBestScore = score
				}
				return score
			}
		}
	}

	// Step 3: cancellation.
	if ctx.isCancelled() {
		return 0
	}

	// Step 4: check extension.
	var inCheck = pos.IsCheck()
	if inCheck {
		depth++
	}

	// Mate-distance pruning: a mate score any shorter than the distance
	// already implied by ply can't change the result, so the window can
	// be clamped before doing any more work at this node.
	var mateAlpha = -Mate + int32(ply)
	var mateBeta = Mate - int32(ply)
	if alpha < mateAlpha {
		alpha = mateAlpha
	}
	if beta > mateBeta {
		beta = mateBeta
	}
	if alpha >= beta {
		return alpha
	}

	// Draw detection: fifty-move rule or a repetition against the
	// search path or the caller-supplied game history.
	if ply > 0 && ctx.isDraw(ply) {
		return Draw
	}

	// Step 5: horizon.
	if depth <= 0 || ply >= MaxPly {
		ctx.Nodes++
		return ctx.Quiescence(alpha, beta, ply)
	}

	// Step 6: null-move pruning.
	if ctx.CanNullMove && !inCheck && ply > 0 && depth > 2 && hasNonPawnMaterial(pos) {
		var r = 2
		if depth > 6 {
			r = 3
		}
		var child board.Position
		pos.MakeNullMove(&child)
		ctx.Positions[ply+1] = child
		ctx.Stack[ply+1+stackPad] = StackEntry{Move: board.MoveEmpty, Cont: nil}

		ctx.CanNullMove = false
		var score = -ctx.Negamax(depth-r, ply+1, -beta, -alpha)
		ctx.CanNullMove = true

		if ctx.isCancelled() {
			return 0
		}
		if score >= beta {
			return beta
		}
	}

	// Step 7: generate, order and search every move.
	var moves = ctx.Orderer.OrderMoves(pos, ctx.Stack, ply, ttMove)

	var bestScore = -Mate - 1
	var bestMove = board.MoveEmpty
	var legalMoves = 0
	var quietsTried []board.Move

	var child board.Position
	for _, m := range moves {
		if !pos.MakeMove(m, &child) {
			continue
		}
		legalMoves++

		ctx.Positions[ply+1] = child
		ctx.Stack[ply+1+stackPad] = StackEntry{Move: m, Cont: ctx.Cont.GetEntry(pos, m)}

		var isQuiet = !m.IsCapture()
		if isQuiet {
			quietsTried = append(quietsTried, m)
		}

		var score = -ctx.Negamax(depth-1, ply+1, -beta, -alpha)

		if ctx.isCancelled() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if isQuiet {
				ctx.Killers.Update(ply, m)
				ctx.Cont.UpdateScore(ctx.Stack, ply, depth, pos, m, quietsTried)
			}
			break
		}
	}

	// Step 8: no legal move.
	if legalMoves == 0 {
		if inCheck {
			return -Mate + int32(ply)
		}
		return Draw
	}

	// Step 9: store and return.
	var bound Bound
	switch {
	case bestScore <= alphaOrig:
		bound = BoundUpper
	case bestScore >= beta:
		bound = BoundLower
	default:
		bound = BoundExact
	}
	ctx.TT.Save(pos.Key, depth, bestScore, bestMove, bound, ply)

	if ply == 0 {
		ctx.IterBestMove = bestMove
		ctx.IterBestScore = bestScore
	}

	return bestScore
}

// hasNonPawnMaterial guards null-move pruning against zugzwang-prone
// positions (king and pawns only), where passing is not a safe lower
// bound on the side to move's options.
func hasNonPawnMaterial(pos *board.Position) bool {
	var side = pos.White
	if !pos.WhiteMove {
		side = pos.Black
	}
	return side&(pos.Knights|pos.Bishops|pos.Rooks|pos.Queens) != 0
}
