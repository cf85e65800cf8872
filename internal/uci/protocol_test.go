package uci

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/corvidchess/lucid/internal/board"
	"github.com/corvidchess/lucid/internal/engine"
)

type stubEngine struct {
	hash engine.IntUciOption
}

func newStubEngine() *stubEngine {
	return &stubEngine{hash: engine.IntUciOption{}}
}

func (s *stubEngine) GetInfo() (string, string, string) { return "Stub", "0.0", "test" }
func (s *stubEngine) GetOptions() []engine.UciOption     { return nil }
func (s *stubEngine) Prepare()                           {}
func (s *stubEngine) Clear()                             {}
func (s *stubEngine) Search(ctx context.Context, params engine.SearchParams) engine.SearchInfo {
	var pos = params.Positions[len(params.Positions)-1]
	var moves = board.GenerateLegalMoves(&pos)
	if len(moves) == 0 {
		return engine.SearchInfo{}
	}
	return engine.SearchInfo{Depth: 1, MainLine: moves[:1]}
}

func TestProtocolHandlesUciHandshake(t *testing.T) {
	var out bytes.Buffer
	var p = newProtocol(newStubEngine(), &out)
	if err := p.handle("uci"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var text = out.String()
	if !strings.Contains(text, "uciok") {
		t.Fatalf("expected uciok in output, got %q", text)
	}
}

func TestProtocolPositionStartpos(t *testing.T) {
	var out bytes.Buffer
	var p = newProtocol(newStubEngine(), &out)
	if err := p.handle("position startpos moves e2e4 e7e5"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.positions) != 3 {
		t.Fatalf("expected 3 positions after two moves, got %d", len(p.positions))
	}
}

func TestProtocolGoEmitsBestmove(t *testing.T) {
	var out bytes.Buffer
	var p = newProtocol(newStubEngine(), &out)
	if err := p.handle("go depth 1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var deadline = time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		select {
		case <-p.done:
			if strings.Contains(out.String(), "bestmove") {
				return
			}
		default:
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("expected a bestmove line, got %q", out.String())
}
