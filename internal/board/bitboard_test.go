package board

import "testing"

func TestFirstOneMatchesTrailingZeros(t *testing.T) {
	var masks = []uint64{
		FileAMask, FileBMask, FileCMask, FileDMask,
		FileEMask, FileFMask, FileGMask, FileHMask,
		Rank1Mask, Rank2Mask, Rank3Mask, Rank4Mask,
		Rank5Mask, Rank6Mask, Rank7Mask, Rank8Mask,
		0x0004085000500800,
	}
	for _, m := range masks {
		var want = trailingZeros(m)
		if got := FirstOne(m); got != want {
			t.Errorf("FirstOne(%064b) = %d, want %d", m, got, want)
		}
	}
}

func trailingZeros(b uint64) int {
	for sq := 0; sq < 64; sq++ {
		if b&(uint64(1)<<uint(sq)) != 0 {
			return sq
		}
	}
	return 64
}

func TestMoreThanOne(t *testing.T) {
	var tests = []struct {
		value uint64
		want  bool
	}{
		{0, false},
		{1, false},
		{1 << 5, false},
		{1 << 60, false},
		{3, true},
		{1<<6 | 1<<25, true},
		{1<<6 | 1<<25 | 1<<36, true},
	}
	for _, tt := range tests {
		if got := MoreThanOne(tt.value); got != tt.want {
			t.Errorf("MoreThanOne(%b) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestPawnAttacksSymmetry(t *testing.T) {
	for sq := 0; sq < 64; sq++ {
		var white = PawnAttacks(sq, true)
		var black = PawnAttacks(sq, false)
		if white == 0 && Rank(sq) != Rank8 {
			t.Errorf("square %s: white pawn attacks empty", SquareName(sq))
		}
		if black == 0 && Rank(sq) != Rank1 {
			t.Errorf("square %s: black pawn attacks empty", SquareName(sq))
		}
	}
}

func TestRookAttacksOpenBoard(t *testing.T) {
	var got = RookAttacks(SquareD4, 0)
	var want = FileMask[FileD] | Rank4Mask
	want &^= SquareMask[SquareD4]
	if got != want {
		t.Errorf("RookAttacks(d4, empty) = %s, want %s", BitboardString(got), BitboardString(want))
	}
}

func TestBishopAttacksBlockedByOccupancy(t *testing.T) {
	var occ = SquareMask[SquareF6]
	var got = BishopAttacks(SquareD4, occ)
	if got&SquareMask[SquareG7] != 0 {
		t.Errorf("BishopAttacks(d4) should not see past blocker on f6")
	}
	if got&SquareMask[SquareF6] == 0 {
		t.Errorf("BishopAttacks(d4) should include the blocking square f6 itself")
	}
}
