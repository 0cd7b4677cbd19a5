package bucket

import "github.com/aaneelshalman/msm/curve"

// sumPoints adds together the points at the given indices, substituting the
// group identity for any index that falls outside the points slice
// (spec.md §7: OverflowWindowOutOfRange — the signed overflow window may
// reference an index beyond the scalar range, and must be defensively
// ignored rather than faulted).
func sumPoints[P any, S any](g curve.Group[P, S], points []P, indexes []int) P {
	sum := g.Zero()
	for _, i := range indexes {
		if i < 0 || i >= len(points) {
			continue
		}
		sum = g.Add(sum, points[i])
	}
	return sum
}

// sumSignedPoints is sumPoints' signed-entry counterpart: each point is
// negated individually according to its own entry, never per-bucket,
// since a bucket may mix positive and negative entries sharing an
// absolute-value key.
func sumSignedPoints[P any, S any](g curve.Group[P, S], points []P, entries []Entry) P {
	sum := g.Zero()
	for _, e := range entries {
		if e.Index < 0 || e.Index >= len(points) {
			continue
		}
		p := points[e.Index]
		if e.Negative {
			p = g.Negate(p)
		}
		sum = g.Add(sum, p)
	}
	return sum
}

// ReduceRevScan is the unsigned rev-scan bucket reducer (spec.md §4.5):
// for d = D..1, accumulate a running `temp` of everything seen so far and
// fold it into `result` at every step, computing sum_d d*S_d with at most
// two group additions per digit (plus the additions inside each bucket).
func ReduceRevScan[P any, S any](g curve.Group[P, S], points []P, buckets map[uint32][]int, maxDigit uint32) P {
	temp := g.Zero()
	result := g.Zero()
	for d := maxDigit; d >= 1; d-- {
		if idxs, ok := buckets[d]; ok {
			temp = g.Add(temp, sumPoints(g, points, idxs))
		}
		result = g.Add(result, temp)
	}
	return result
}

// ReduceSignedRevScan is ReduceRevScan's signed counterpart: buckets are
// keyed on digit magnitude, and each entry's sign dictates whether its
// point is negated before summing.
func ReduceSignedRevScan[P any, S any](g curve.Group[P, S], points []P, buckets map[uint32][]Entry, maxDigit uint32) P {
	temp := g.Zero()
	result := g.Zero()
	for d := maxDigit; d >= 1; d-- {
		if entries, ok := buckets[d]; ok {
			temp = g.Add(temp, sumSignedPoints(g, points, entries))
		}
		result = g.Add(result, temp)
	}
	return result
}

// ReduceSubSum is the linear-in-bucket-count reducer (spec.md §4.5): keys
// must arrive in descending order with a trailing 0 sentinel (see
// BuildUnsignedOrdered). Contributions are placed into a gap-indexed
// temporary array sized to the largest gap between consecutive present
// digits, then collapsed with the same reverse-scan recurrence as
// ReduceRevScan. The placement loop visits len(keysDesc) buckets rather
// than all D digits; the final collapse runs over the maxGap entries of
// the temporary array.
func ReduceSubSum[P any, S any](g curve.Group[P, S], points []P, keysDesc []uint32, buckets map[uint32][]int) P {
	if len(keysDesc) == 0 {
		return g.Zero()
	}

	maxGap := uint32(1)
	for t := 0; t+1 < len(keysDesc); t++ {
		if gap := keysDesc[t] - keysDesc[t+1]; gap > maxGap {
			maxGap = gap
		}
	}

	tmp := make([]P, maxGap+1)
	for i := range tmp {
		tmp[i] = g.Zero()
	}

	for t := 0; t < len(keysDesc); t++ {
		k := keysDesc[t]
		s := sumPoints(g, points, buckets[k])
		tmp[0] = g.Add(tmp[0], s)
		if t+1 < len(keysDesc) {
			gap := k - keysDesc[t+1]
			if gap >= 1 && gap <= maxGap {
				tmp[gap] = g.Add(tmp[gap], tmp[0])
			}
		}
	}

	temp := g.Zero()
	result := g.Zero()
	for i := len(tmp) - 1; i >= 1; i-- {
		temp = g.Add(temp, tmp[i])
		result = g.Add(result, temp)
	}
	return result
}

// ReduceSignedSubSum is ReduceSubSum's signed counterpart.
func ReduceSignedSubSum[P any, S any](g curve.Group[P, S], points []P, keysDesc []uint32, buckets map[uint32][]Entry) P {
	if len(keysDesc) == 0 {
		return g.Zero()
	}

	maxGap := uint32(1)
	for t := 0; t+1 < len(keysDesc); t++ {
		if gap := keysDesc[t] - keysDesc[t+1]; gap > maxGap {
			maxGap = gap
		}
	}

	tmp := make([]P, maxGap+1)
	for i := range tmp {
		tmp[i] = g.Zero()
	}

	for t := 0; t < len(keysDesc); t++ {
		k := keysDesc[t]
		s := sumSignedPoints(g, points, buckets[k])
		tmp[0] = g.Add(tmp[0], s)
		if t+1 < len(keysDesc) {
			gap := k - keysDesc[t+1]
			if gap >= 1 && gap <= maxGap {
				tmp[gap] = g.Add(tmp[gap], tmp[0])
			}
		}
	}

	temp := g.Zero()
	result := g.Zero()
	for i := len(tmp) - 1; i >= 1; i-- {
		temp = g.Add(temp, tmp[i])
		result = g.Add(result, temp)
	}
	return result
}
