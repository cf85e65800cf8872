package board

import "testing"

func TestGenerateMovesStartPosition(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var ml = GenerateLegalMoves(&p)
	if len(ml) != 20 {
		t.Errorf("got %d legal moves from the start position, want 20", len(ml))
	}
}

func TestGenerateCapturesIsSubsetOfLegalMoves(t *testing.T) {
	var p, err = NewPositionFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatal(err)
	}
	var legal = make(map[Move]bool)
	for _, m := range GenerateLegalMoves(&p) {
		legal[m] = true
	}

	var buffer [MaxMoves]Move
	var child Position
	for _, m := range GenerateCaptures(buffer[:], &p) {
		if !p.MakeMove(m, &child) {
			continue
		}
		if !legal[m] {
			t.Errorf("capture %v not found among legal moves", m)
		}
		if m.CapturedPiece() == Empty && m.Promotion() == Empty {
			t.Errorf("capture %v is neither a capture nor a promotion", m)
		}
	}
}

func TestMakeMoveRejectsMoveIntoCheck(t *testing.T) {
	var p, err = NewPositionFromFEN("4k3/8/8/8/8/4r3/8/4K3 w - -")
	if err != nil {
		t.Fatal(err)
	}
	var buffer [MaxMoves]Move
	var child Position
	for _, m := range GenerateMoves(buffer[:], &p) {
		if m.From() == SquareE1 && m.To() == SquareE2 {
			if p.MakeMove(m, &child) {
				t.Errorf("Ke1-e2 should be illegal (king remains on the e-file attacked by the rook on e3)")
			}
		}
	}
}

func TestMakeMoveIsPure(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var before = p
	var child Position
	var buffer [MaxMoves]Move
	var ml = GenerateMoves(buffer[:], &p)
	p.MakeMove(ml[0], &child)
	if p != before {
		t.Errorf("MakeMove mutated its receiver")
	}
}
