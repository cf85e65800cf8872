package search

import (
	"context"
	"testing"
	"time"

	"github.com/corvidchess/lucid/internal/board"
	"github.com/corvidchess/lucid/internal/eval"
)

func TestDriverFindsMateInOneWithinDepthLimit(t *testing.T) {
	var pos, err = board.NewPositionFromFEN("6k1/8/6K1/8/8/8/8/R7 w - - 0 1")
	if err != nil {
		t.Fatalf("parse fen: %v", err)
	}

	var d = NewDriver(eval.Evaluate)
	var result = d.Search(context.Background(), pos, nil, Limits{Depth: 4}, nil)

	if result.Score < MateThreshold {
		t.Fatalf("expected mate score, got %d", result.Score)
	}
	if result.Move == board.MoveEmpty {
		t.Fatalf("expected a move")
	}
}

func TestDriverRespectsMovetime(t *testing.T) {
	var pos, _ = board.NewPositionFromFEN(board.InitialPositionFen)

	var d = NewDriver(eval.Evaluate)
	var start = time.Now()
	var result = d.Search(context.Background(), pos, nil, Limits{Movetime: 50 * time.Millisecond}, nil)
	var elapsed = time.Since(start)

	if result.Move == board.MoveEmpty {
		t.Fatalf("expected a move even under a tight deadline")
	}
	if elapsed > time.Second {
		t.Fatalf("search overran its deadline by too much: %s", elapsed)
	}
}

func TestDriverNewGameClearsTables(t *testing.T) {
	var pos, _ = board.NewPositionFromFEN(board.InitialPositionFen)
	var d = NewDriver(eval.Evaluate)
	d.Search(context.Background(), pos, nil, Limits{Depth: 3}, nil)
	d.NewGame()
	if _, ok := d.tt.Probe(pos.Key); ok {
		t.Fatalf("expected transposition table to be empty after NewGame")
	}
}
