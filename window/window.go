// Package window implements the Windowing stage of the MSM pipeline: it
// splits each 32-bit scalar into fixed-width c-bit digits, one per window,
// per spec.md §4.2.
package window

// Window is one c-bit slice of every scalar, at a fixed bit offset.
// Values[i] is the bit_index-th window of the i-th scalar, in [0, 2^c).
type Window struct {
	BitIndex int
	Values   []uint32
}

// WindowSet is the ordered collection of Windows covering all 32 bits of
// every scalar, indexed low-to-high by BitIndex.
type WindowSet struct {
	C       int
	Windows []Window
}

// NumWindows returns ceil(32/c), the unsigned-variant window count.
func NumWindows(c int) int {
	return (32 + c - 1) / c
}

// Partition splits scalars into ceil(32/c) windows of width c bits each.
// The mask-and-shift behaves as if scalars were zero-padded to a multiple
// of c, so the top window is well-defined even when c does not divide 32.
func Partition(scalars []uint32, c int) WindowSet {
	numWindows := NumWindows(c)
	mask := uint32(1)<<uint(c) - 1

	windows := make([]Window, numWindows)
	for j := 0; j < numWindows; j++ {
		bitIndex := j * c
		values := make([]uint32, len(scalars))
		for i, s := range scalars {
			values[i] = (s >> uint(bitIndex)) & mask
		}
		windows[j] = Window{BitIndex: bitIndex, Values: values}
	}
	return WindowSet{C: c, Windows: windows}
}
