package search

import (
	"context"
	"testing"

	"github.com/corvidchess/lucid/internal/board"
	"github.com/corvidchess/lucid/internal/eval"
)

// tactic is a condensed stand-in for an EPD test line: a FEN and the
// move (in UCI long-algebraic form) that wins material or mates.
type tactic struct {
	fen  string
	best string
}

var tacticSuite = []tactic{
	// A hanging bishop, undefended, one capture away.
	{"3k4/8/8/8/3b4/4Q3/8/4K3 w - - 0 1", "e3d4"},
	// Back-rank mate in one.
	{"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "a1a8"},
	// Simple hanging-piece capture.
	{"4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1", "e4d5"},
}

func TestDriverSolvesTacticSuite(t *testing.T) {
	for _, tc := range tacticSuite {
		var pos, err = board.NewPositionFromFEN(tc.fen)
		if err != nil {
			t.Fatalf("parse fen %q: %v", tc.fen, err)
		}

		var d = NewDriver(eval.Evaluate)
		var result = d.Search(context.Background(), pos, nil, Limits{Depth: 6}, nil)

		var want = board.ParseMoveLAN(&pos, tc.best)
		if want == board.MoveEmpty {
			t.Fatalf("test position itself has an unparseable best move %q", tc.best)
		}
		if result.Move != want {
			t.Errorf("fen %q: got %s, want %s", tc.fen, result.Move.String(), want.String())
		}
	}
}
