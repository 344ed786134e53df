package fit

import "testing"

func TestEpochToTime(t *testing.T) {
	tm := Epoch{}.ToTime(0)
	if tm.Year() != 1989 || tm.Month() != 12 || tm.Day() != 31 {
		t.Fatalf("unexpected time for timestamp 0: %v", tm)
	}
}

func TestApplyCompressedOffsetNoRollover(t *testing.T) {
	got := applyCompressedOffset(100, 10)
	// previous & 0x1F = 100 & 31 = 4; offset 10 >= 4, no rollover
	want := uint32(100) - 4 + 10
	if got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}

func TestApplyCompressedOffsetRollsOver(t *testing.T) {
	// previous & 0x1F = 20; offset 5 < 20, rolls over by 32
	got := applyCompressedOffset(20, 5)
	want := uint32(20) - 20 + 5 + 32
	if got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}
