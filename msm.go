// Package msm is the root package of the MSM engine: it implements the
// Orchestrator (spec.md §4.7), the top-level entry points that select and
// run one of the naive, trivial, or Pippenger-family variants. Every
// variant returns the same group element for the same inputs (I5).
package msm

import (
	"github.com/aaneelshalman/msm/bucket"
	"github.com/aaneelshalman/msm/combine"
	"github.com/aaneelshalman/msm/curve"
	"github.com/aaneelshalman/msm/msmerr"
	"github.com/aaneelshalman/msm/window"
)

// DefaultWindowWidth is the recommended window width c when the caller has
// no specific reason to pick another (spec.md §6.3).
const DefaultWindowWidth = 2

func checkLengths[P any](points []P, scalars []uint32) error {
	if len(points) != len(scalars) {
		return msmerr.ErrLengthMismatch
	}
	return nil
}

// Naive computes R = sum(s_i * P_i) with one scalar_mul and one add per
// pair; it is the reference oracle every other variant is checked against
// (spec.md §4.7, P1).
func Naive[P any, S any](g curve.Group[P, S], points []P, scalars []uint32) (P, error) {
	var zero P
	if err := checkLengths(points, scalars); err != nil {
		return zero, err
	}
	result := g.Zero()
	for i, s := range scalars {
		result = g.Add(result, g.ScalarMulUint64(points[i], uint64(s)))
	}
	return result, nil
}

// Trivial computes the same result via per-pair double-and-add over the
// 32 scalar bits, independent of the windowing machinery (spec.md §4.7,
// secondary oracle).
func Trivial[P any, S any](g curve.Group[P, S], points []P, scalars []uint32) (P, error) {
	var zero P
	if err := checkLengths(points, scalars); err != nil {
		return zero, err
	}

	result := g.Zero()
	for i, point := range points {
		contribution := g.Zero()
		current := point
		s := scalars[i]
		for s != 0 {
			if s&1 == 1 {
				contribution = g.Add(contribution, current)
			}
			current = g.Double(current)
			s >>= 1
		}
		result = g.Add(result, contribution)
	}
	return result, nil
}

// unsignedMaxDigit returns D = 2^c - 1, the top digit of an unsigned
// c-bit window.
func unsignedMaxDigit(c int) uint32 {
	return uint32(1)<<uint(c) - 1
}

// signedMaxDigit returns D = 2^(c-1), the top digit magnitude of a signed
// c-bit window.
func signedMaxDigit(c int) uint32 {
	return uint32(1) << uint(c-1)
}

// descending reverses a slice of combine.PartialSum so windows are folded
// from the highest bit_index down, as Sequential and ParallelDoubleAndAdd
// both require.
func descending[P any](in []combine.PartialSum[P]) []combine.PartialSum[P] {
	out := make([]combine.PartialSum[P], len(in))
	for i, p := range in {
		out[len(in)-1-i] = p
	}
	return out
}

// Pippenger is Windowing + unsigned rev-scan Bucketizer/Reducer +
// sequential Combiner (spec.md §4.7).
func Pippenger[P any, S any](g curve.Group[P, S], points []P, scalars []uint32, c int) (P, error) {
	var zero P
	if err := checkLengths(points, scalars); err != nil {
		return zero, err
	}

	ws := window.Partition(scalars, c)
	maxDigit := unsignedMaxDigit(c)

	partials := make([]combine.PartialSum[P], len(ws.Windows))
	for j, w := range ws.Windows {
		buckets := bucket.BuildUnsigned(w.Values)
		partials[j] = combine.PartialSum[P]{
			BitIndex: w.BitIndex,
			Width:    c,
			Sum:      bucket.ReduceRevScan(g, points, buckets, maxDigit),
		}
	}

	return combine.Sequential(g, descending(partials)), nil
}

// PippengerSubSum is Windowing + unsigned sub-sum Bucketizer/Reducer +
// sequential Combiner.
func PippengerSubSum[P any, S any](g curve.Group[P, S], points []P, scalars []uint32, c int) (P, error) {
	var zero P
	if err := checkLengths(points, scalars); err != nil {
		return zero, err
	}

	ws := window.Partition(scalars, c)
	maxDigit := unsignedMaxDigit(c)

	partials := make([]combine.PartialSum[P], len(ws.Windows))
	for j, w := range ws.Windows {
		keysDesc, buckets := bucket.BuildUnsignedOrdered(w.Values, maxDigit)
		partials[j] = combine.PartialSum[P]{
			BitIndex: w.BitIndex,
			Width:    c,
			Sum:      bucket.ReduceSubSum(g, points, keysDesc, buckets),
		}
	}

	return combine.Sequential(g, descending(partials)), nil
}

// PippengerSigned is Windowing + SignedRecode + signed rev-scan +
// sequential Combiner.
func PippengerSigned[P any, S any](g curve.Group[P, S], points []P, scalars []uint32, c int) (P, error) {
	var zero P
	if err := checkLengths(points, scalars); err != nil {
		return zero, err
	}

	sws := window.Recode(window.Partition(scalars, c), c)
	regularMaxDigit := signedMaxDigit(c)

	partials := make([]combine.PartialSum[P], len(sws.Windows))
	lastIdx := len(sws.Windows) - 1
	for j, w := range sws.Windows {
		maxDigit := regularMaxDigit
		if j == lastIdx {
			maxDigit = 1
		}
		buckets := bucket.BuildSigned(w.Values)
		partials[j] = combine.PartialSum[P]{
			BitIndex: w.BitIndex,
			Width:    c,
			Sum:      bucket.ReduceSignedRevScan(g, points, buckets, maxDigit),
		}
	}

	return combine.Sequential(g, descending(partials)), nil
}

// PippengerSignedSubSum is Windowing + SignedRecode + signed sub-sum +
// sequential Combiner.
func PippengerSignedSubSum[P any, S any](g curve.Group[P, S], points []P, scalars []uint32, c int) (P, error) {
	var zero P
	if err := checkLengths(points, scalars); err != nil {
		return zero, err
	}

	sws := window.Recode(window.Partition(scalars, c), c)
	regularMaxDigit := signedMaxDigit(c)

	partials := make([]combine.PartialSum[P], len(sws.Windows))
	lastIdx := len(sws.Windows) - 1
	for j, w := range sws.Windows {
		maxDigit := regularMaxDigit
		if j == lastIdx {
			maxDigit = 1
		}
		keysDesc, buckets := bucket.BuildSignedOrdered(w.Values, maxDigit)
		partials[j] = combine.PartialSum[P]{
			BitIndex: w.BitIndex,
			Width:    c,
			Sum:      bucket.ReduceSignedSubSum(g, points, keysDesc, buckets),
		}
	}

	return combine.Sequential(g, descending(partials)), nil
}

// PippengerParallel is Pippenger's parallel twin: one worker per window,
// combined with strategy (a) (field-valued scalar_mul fold).
func PippengerParallel[P any, S any](g curve.Group[P, S], points []P, scalars []uint32, c int) (P, error) {
	var zero P
	if err := checkLengths(points, scalars); err != nil {
		return zero, err
	}
	ws := window.Partition(scalars, c)
	maxDigit := unsignedMaxDigit(c)

	work := make([]combine.PartialSumWork[P], len(ws.Windows))
	for j, w := range ws.Windows {
		w := w
		work[j] = combine.PartialSumWork[P]{
			BitIndex: w.BitIndex,
			Width:    c,
			Compute: func() P {
				buckets := bucket.BuildUnsigned(w.Values)
				return bucket.ReduceRevScan(g, points, buckets, maxDigit)
			},
		}
	}
	return combine.ParallelFieldMul(g, work)
}

// PippengerSubSumParallel is PippengerSubSum's parallel twin, also
// combined with strategy (a).
func PippengerSubSumParallel[P any, S any](g curve.Group[P, S], points []P, scalars []uint32, c int) (P, error) {
	var zero P
	if err := checkLengths(points, scalars); err != nil {
		return zero, err
	}
	ws := window.Partition(scalars, c)
	maxDigit := unsignedMaxDigit(c)

	work := make([]combine.PartialSumWork[P], len(ws.Windows))
	for j, w := range ws.Windows {
		w := w
		work[j] = combine.PartialSumWork[P]{
			BitIndex: w.BitIndex,
			Width:    c,
			Compute: func() P {
				keysDesc, buckets := bucket.BuildUnsignedOrdered(w.Values, maxDigit)
				return bucket.ReduceSubSum(g, points, keysDesc, buckets)
			},
		}
	}
	return combine.ParallelFieldMul(g, work)
}

// PippengerSignedParallel is PippengerSigned's parallel twin, combined
// with strategy (b) (descending double-and-add fold) since the signed
// variant is the doubling-based one spec.md §4.6 recommends it for.
func PippengerSignedParallel[P any, S any](g curve.Group[P, S], points []P, scalars []uint32, c int) (P, error) {
	var zero P
	if err := checkLengths(points, scalars); err != nil {
		return zero, err
	}
	sws := window.Recode(window.Partition(scalars, c), c)
	regularMaxDigit := signedMaxDigit(c)
	lastIdx := len(sws.Windows) - 1

	// Built high-to-low so ParallelDoubleAndAdd's join can fold directly.
	work := make([]combine.PartialSumWork[P], len(sws.Windows))
	for j := len(sws.Windows) - 1; j >= 0; j-- {
		w := sws.Windows[j]
		maxDigit := regularMaxDigit
		if j == lastIdx {
			maxDigit = 1
		}
		outIdx := len(sws.Windows) - 1 - j
		work[outIdx] = combine.PartialSumWork[P]{
			BitIndex: w.BitIndex,
			Width:    c,
			Compute: func() P {
				buckets := bucket.BuildSigned(w.Values)
				return bucket.ReduceSignedRevScan(g, points, buckets, maxDigit)
			},
		}
	}
	return combine.ParallelDoubleAndAdd(g, work)
}

// PippengerSignedSubSumParallel is PippengerSignedSubSum's parallel twin,
// also combined with strategy (b).
func PippengerSignedSubSumParallel[P any, S any](g curve.Group[P, S], points []P, scalars []uint32, c int) (P, error) {
	var zero P
	if err := checkLengths(points, scalars); err != nil {
		return zero, err
	}
	sws := window.Recode(window.Partition(scalars, c), c)
	regularMaxDigit := signedMaxDigit(c)
	lastIdx := len(sws.Windows) - 1

	work := make([]combine.PartialSumWork[P], len(sws.Windows))
	for j := len(sws.Windows) - 1; j >= 0; j-- {
		w := sws.Windows[j]
		maxDigit := regularMaxDigit
		if j == lastIdx {
			maxDigit = 1
		}
		outIdx := len(sws.Windows) - 1 - j
		work[outIdx] = combine.PartialSumWork[P]{
			BitIndex: w.BitIndex,
			Width:    c,
			Compute: func() P {
				keysDesc, buckets := bucket.BuildSignedOrdered(w.Values, maxDigit)
				return bucket.ReduceSignedSubSum(g, points, keysDesc, buckets)
			},
		}
	}
	return combine.ParallelDoubleAndAdd(g, work)
}

