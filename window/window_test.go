package window

import "testing"

func TestPartitionDecomposition(t *testing.T) {
	// spec.md S4: scalars [182, 255, 129] at c=2 decompose per-window to
	// [2,3,1], [1,3,0], [3,3,0], [2,3,2], with zero in every higher window.
	scalars := []uint32{182, 255, 129}
	ws := Partition(scalars, 2)

	want := [][]uint32{
		{2, 3, 1},
		{1, 3, 0},
		{3, 3, 0},
		{2, 3, 2},
	}
	if len(ws.Windows) != NumWindows(2) {
		t.Fatalf("got %d windows, want %d", len(ws.Windows), NumWindows(2))
	}
	for j := 0; j < 4; j++ {
		for i := range scalars {
			if ws.Windows[j].Values[i] != want[j][i] {
				t.Errorf("window %d value %d: got %d want %d", j, i, ws.Windows[j].Values[i], want[j][i])
			}
		}
	}
	for j := 4; j < len(ws.Windows); j++ {
		for i := range scalars {
			if ws.Windows[j].Values[i] != 0 {
				t.Errorf("window %d value %d: got %d, want 0", j, i, ws.Windows[j].Values[i])
			}
		}
	}
}

func TestPartitionBitIndices(t *testing.T) {
	ws := Partition([]uint32{0}, 3)
	for j, w := range ws.Windows {
		if w.BitIndex != j*3 {
			t.Errorf("window %d: got bit_index %d, want %d", j, w.BitIndex, j*3)
		}
	}
}

func TestPartitionReconstructsScalar(t *testing.T) {
	// Invariant I3: sum_j w_ji * 2^bit_index_j == s_i.
	scalars := []uint32{0, 1, 42, 1 << 30, 0xFFFFFFFF}
	for c := 1; c <= 16; c++ {
		ws := Partition(scalars, c)
		for i, s := range scalars {
			var rebuilt uint64
			for _, w := range ws.Windows {
				rebuilt += uint64(w.Values[i]) << uint(w.BitIndex)
			}
			if uint32(rebuilt) != s {
				t.Errorf("c=%d scalar %d: rebuilt %d, want %d", c, s, rebuilt, s)
			}
		}
	}
}

func TestPartitionWindowCount(t *testing.T) {
	for c := 1; c <= 16; c++ {
		ws := Partition([]uint32{1}, c)
		want := (32 + c - 1) / c
		if len(ws.Windows) != want {
			t.Errorf("c=%d: got %d windows, want %d", c, len(ws.Windows), want)
		}
	}
}
