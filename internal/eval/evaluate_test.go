package eval

import (
	"testing"

	"github.com/corvidchess/lucid/internal/board"
)

func mustFEN(t *testing.T, fen string) board.Position {
	t.Helper()
	var p, err = board.NewPositionFromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestEvaluateStartPositionIsSymmetric(t *testing.T) {
	var p = mustFEN(t, board.InitialPositionFen)
	if got := Evaluate(&p); got != 0 {
		t.Errorf("Evaluate(startpos) = %d, want 0", got)
	}
}

func TestEvaluateRewardsMaterialAdvantage(t *testing.T) {
	var down = mustFEN(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPP1/RNBQKBNR w KQkq - 0 1")
	var even = mustFEN(t, board.InitialPositionFen)
	if Evaluate(&down) >= Evaluate(&even) {
		t.Errorf("a missing pawn should score worse than the start position")
	}
}

func TestEvaluateIsSideToMoveRelative(t *testing.T) {
	var white = mustFEN(t, "4k3/8/8/8/8/8/3Q4/4K3 w - - 0 1")
	var black = mustFEN(t, "4k3/3q4/8/8/8/8/8/4K3 b - - 0 1")
	if Evaluate(&white) <= 0 {
		t.Errorf("side to move up a queen should evaluate positive, got %d", Evaluate(&white))
	}
	if Evaluate(&black) <= 0 {
		t.Errorf("side to move up a queen (mirrored) should evaluate positive, got %d", Evaluate(&black))
	}
}
