// Package bucket implements the Bucketizer stage: grouping point indices
// by window digit, per spec.md §4.4.
package bucket

import "github.com/bits-and-blooms/bitset"

// Entry is one point index assigned to a bucket. Negative records, for the
// signed variant, whether the point must be negated before being summed
// (spec.md §4.5(b): negation is per-entry, never per-bucket, since a
// bucket may hold mixed signs sharing an absolute value).
type Entry struct {
	Index    int
	Negative bool
}

// BuildUnsigned groups indices of values by their digit. Digit 0 is
// skipped (invariant I4); iteration order over the returned map is
// unspecified, matching the unordered container the rev-scan reducer
// expects.
func BuildUnsigned(values []uint32) map[uint32][]int {
	buckets := make(map[uint32][]int)
	for i, v := range values {
		if v == 0 {
			continue
		}
		buckets[v] = append(buckets[v], i)
	}
	return buckets
}

// BuildSigned groups indices of signed values by their absolute value,
// recording the sign alongside each index.
func BuildSigned(values []int64) map[uint32][]Entry {
	buckets := make(map[uint32][]Entry)
	for i, v := range values {
		if v == 0 {
			continue
		}
		abs := v
		negative := false
		if abs < 0 {
			abs = -abs
			negative = true
		}
		key := uint32(abs)
		buckets[key] = append(buckets[key], Entry{Index: i, Negative: negative})
	}
	return buckets
}

// BuildUnsignedOrdered groups indices of values by digit and additionally
// returns the distinct digits present, in descending order, with a
// trailing sentinel 0 always appended (spec.md §4.4, §4.5 sub-sum
// algorithm). maxDigit bounds the digit range (D = 2^c - 1 for the
// unsigned variant); a bitset tracks which of the 0..maxDigit digits are
// present so the descending key scan below only visits real work once per
// present digit, the same skip-table role bits-and-blooms/bitset plays in
// the teacher's fixed-basis MSM for nonzero-scalar tracking.
func BuildUnsignedOrdered(values []uint32, maxDigit uint32) (keysDesc []uint32, buckets map[uint32][]int) {
	present := bitset.New(uint(maxDigit) + 1)
	buckets = make(map[uint32][]int)
	for i, v := range values {
		if v == 0 {
			continue
		}
		buckets[v] = append(buckets[v], i)
		present.Set(uint(v))
	}

	for d := maxDigit; d >= 1; d-- {
		if present.Test(uint(d)) {
			keysDesc = append(keysDesc, d)
		}
	}
	keysDesc = append(keysDesc, 0)
	return keysDesc, buckets
}

// BuildSignedOrdered is the signed-variant counterpart of
// BuildUnsignedOrdered: it buckets on the digit's absolute value, keeping
// the sign per entry, and returns the present absolute values in
// descending order with a trailing sentinel 0.
func BuildSignedOrdered(values []int64, maxDigit uint32) (keysDesc []uint32, buckets map[uint32][]Entry) {
	present := bitset.New(uint(maxDigit) + 1)
	buckets = make(map[uint32][]Entry)
	for i, v := range values {
		if v == 0 {
			continue
		}
		abs := v
		negative := false
		if abs < 0 {
			abs = -abs
			negative = true
		}
		key := uint32(abs)
		buckets[key] = append(buckets[key], Entry{Index: i, Negative: negative})
		present.Set(uint(key))
	}

	for d := maxDigit; d >= 1; d-- {
		if present.Test(uint(d)) {
			keysDesc = append(keysDesc, d)
		}
	}
	keysDesc = append(keysDesc, 0)
	return keysDesc, buckets
}
