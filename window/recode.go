package window

// SignedWindow is a Window whose values have been recoded into signed
// digits in [-2^(c-1), 2^(c-1)-1].
type SignedWindow struct {
	BitIndex int
	Values   []int64
}

// SignedWindowSet is the ordered collection of SignedWindows, with one
// extra overflow window appended at the end (spec.md §4.3, invariant I2).
type SignedWindowSet struct {
	C       int
	Windows []SignedWindow
}

// Recode rewrites an unsigned WindowSet into signed digits with carry
// propagation across windows, per spec.md §4.3. For every scalar index i,
// the carry starts at 0; each window's value v = unsigned + carry is left
// as-is if v < 2^(c-1), otherwise recoded to v-2^c and a carry of 1 is
// forwarded to the next window. After the last window the remaining carry
// (0 or 1) is emitted into an appended overflow window at bit_index = last
// bit_index + c.
//
// This is the well-formed recoding spec.md §9 calls for; it does not
// attempt to reproduce the malformed 2-NAF-like helper observed in one
// source variant, whose bucket-building used a carry variable only
// defensively without keeping it internally consistent.
func Recode(ws WindowSet, c int) SignedWindowSet {
	n := 0
	if len(ws.Windows) > 0 {
		n = len(ws.Windows[0].Values)
	}

	threshold := int64(1) << uint(c-1)
	base := int64(1) << uint(c)

	out := make([]SignedWindow, len(ws.Windows)+1)
	for j, w := range ws.Windows {
		out[j] = SignedWindow{BitIndex: w.BitIndex, Values: make([]int64, n)}
	}
	overflowBitIndex := 0
	if len(ws.Windows) > 0 {
		overflowBitIndex = ws.Windows[len(ws.Windows)-1].BitIndex + c
	}
	out[len(ws.Windows)] = SignedWindow{BitIndex: overflowBitIndex, Values: make([]int64, n)}

	for i := 0; i < n; i++ {
		carry := int64(0)
		for j, w := range ws.Windows {
			v := int64(w.Values[i]) + carry
			if v >= threshold {
				out[j].Values[i] = v - base
				carry = 1
			} else {
				out[j].Values[i] = v
				carry = 0
			}
		}
		out[len(ws.Windows)].Values[i] = carry
	}

	return SignedWindowSet{C: c, Windows: out}
}
