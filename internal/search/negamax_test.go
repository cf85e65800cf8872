package search

import (
	"testing"

	"github.com/corvidchess/lucid/internal/board"
	"github.com/corvidchess/lucid/internal/eval"
)

func newTestContext() *Context {
	return NewContext(NewTransTable(1<<10), NewKillerTable(), NewContinuationHistory(), eval.Evaluate)
}

func mustFEN(t *testing.T, fen string) board.Position {
	t.Helper()
	var pos, err = board.NewPositionFromFEN(fen)
	if err != nil {
		t.Fatalf("parse fen %q: %v", fen, err)
	}
	return pos
}

func TestNegamaxFindsMateInOne(t *testing.T) {
	// A back-rank-style mate in one: black king boxed in on g8 by the
	// white king on g6, white rook delivers mate on the back rank.
	var pos = mustFEN(t, "6k1/8/6K1/8/8/8/8/R7 w - - 0 1")
	var ctx = newTestContext()
	ctx.SetRootPosition(pos, nil)

	var score = ctx.Negamax(4, 0, -Mate, Mate)
	if score < MateThreshold {
		t.Fatalf("expected a mate score, got %d", score)
	}
	if ctx.IterBestMove == board.MoveEmpty {
		t.Fatalf("expected a best move to be recorded")
	}
}

func TestNegamaxStalemateIsDraw(t *testing.T) {
	// Classic stalemate: black king on a8 has no legal move, not in check.
	var pos = mustFEN(t, "k7/8/1Q6/8/8/8/8/K7 b - - 0 1")
	var ctx = newTestContext()
	ctx.SetRootPosition(pos, nil)

	var score = ctx.Negamax(2, 0, -Mate, Mate)
	if score != Draw {
		t.Fatalf("expected stalemate to score as a draw, got %d", score)
	}
}

func TestNegamaxBackRankMateInOne(t *testing.T) {
	var pos = mustFEN(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	var ctx = newTestContext()
	ctx.SetRootPosition(pos, nil)

	var score = ctx.Negamax(6, 0, -Mate, Mate)
	if score < MateThreshold {
		t.Fatalf("expected a mate score within the search horizon, got %d", score)
	}
}

func TestQuiescenceAvoidsLosingTheExchange(t *testing.T) {
	// A loud capture sequence where taking loses material nets a worse
	// score than standing pat; quiescence must not simply take material
	// without weighing the recapture.
	var pos = mustFEN(t, "4k3/8/2p5/3p4/8/5Q2/8/4K3 w - - 0 1")
	var ctx = newTestContext()
	ctx.Positions[0] = pos
	var standPat = ctx.Eval(&pos)
	var score = ctx.Quiescence(-Mate, Mate, 0)
	if score < standPat-50 {
		t.Fatalf("quiescence score %d fell far below stand-pat %d", score, standPat)
	}
}

func TestTranspositionTableRoundTripsMateScore(t *testing.T) {
	var tt = NewTransTable(1 << 8)
	var mateScore = Mate - 3
	tt.Save(0xabc, 10, mateScore, board.MoveEmpty, BoundExact, 5)

	var entry, ok = tt.Probe(0xabc)
	if !ok {
		t.Fatalf("expected a hit")
	}
	var got = ScoreFromTT(entry.Score, 5)
	if got != mateScore {
		t.Fatalf("expected mate score %d to round-trip, got %d", mateScore, got)
	}

	// Probed again as if found three plies deeper, it should read out
	// as a mate three plies further from the root (a score three lower).
	var gotDeeper = ScoreFromTT(entry.Score, 8)
	if gotDeeper != mateScore-3 {
		t.Fatalf("expected %d at a deeper ply, got %d", mateScore-3, gotDeeper)
	}
}

func TestHistoryBonusIsMonotonicAndCapped(t *testing.T) {
	var prev int32 = -1
	for d := 1; d <= 20; d++ {
		var b = HistoryBonus(d)
		if b < prev {
			t.Fatalf("expected HistoryBonus to be non-decreasing, depth %d gave %d after %d", d, b, prev)
		}
		if b > 1896 {
			t.Fatalf("expected HistoryBonus to saturate at 1896, depth %d gave %d", d, b)
		}
		prev = b
	}
}

func TestScaleBonusSaturatesTowardCap(t *testing.T) {
	var score int32 = 0
	for i := 0; i < 10000; i++ {
		score += ScaleBonus(score, HistoryBonus(10))
	}
	if score > ScoreCap {
		t.Fatalf("expected repeated updates to stay within the cap, got %d", score)
	}
	if score < ScoreCap/2 {
		t.Fatalf("expected repeated positive updates to approach the cap, got %d", score)
	}
}

func TestKillerTableSkipsCaptures(t *testing.T) {
	var k = NewKillerTable()
	var capture = board.ParseMoveLAN(posPtr(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1"), "e4d5")
	var quiet = board.Move(0)
	var quietFromFen = board.ParseMoveLAN(posPtr(t, board.InitialPositionFen), "g1f3")
	quiet = quietFromFen

	k.Update(3, quiet)
	if k.Moves(3)[0] != quiet {
		t.Fatalf("expected quiet move to be recorded as a killer")
	}
	k.Update(3, capture)
	if k.Moves(3)[0] != quiet || k.Moves(3)[1] == capture {
		t.Fatalf("expected capture not to be recorded as a killer")
	}
}

func posPtr(t *testing.T, fen string) *board.Position {
	t.Helper()
	var pos = mustFEN(t, fen)
	return &pos
}
