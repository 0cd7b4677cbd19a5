package bucket

import (
	"testing"

	"github.com/aaneelshalman/msm/curve"
)

func naiveWeightedSum(g curve.Secp256k1Group, points []curve.Secp256k1Point, values []uint32) curve.Secp256k1Point {
	result := g.Zero()
	for i, v := range values {
		if v == 0 {
			continue
		}
		result = g.Add(result, g.ScalarMulUint64(points[i], uint64(v)))
	}
	return result
}

func naiveSignedWeightedSum(g curve.Secp256k1Group, points []curve.Secp256k1Point, values []int64) curve.Secp256k1Point {
	result := g.Zero()
	for i, v := range values {
		if v == 0 {
			continue
		}
		abs := v
		p := points[i]
		if abs < 0 {
			abs = -abs
			p = g.Negate(p)
		}
		result = g.Add(result, g.ScalarMulUint64(p, uint64(abs)))
	}
	return result
}

func TestReduceRevScanMatchesNaive(t *testing.T) {
	g := curve.Secp256k1Group{}
	points := curve.Secp256k1TestPoints("bucket-revscan", 6)
	values := []uint32{3, 0, 7, 3, 1, 7}
	maxDigit := uint32(7)

	buckets := BuildUnsigned(values)
	got := ReduceRevScan(g, points, buckets, maxDigit)
	want := naiveWeightedSum(g, points, values)

	if !g.Equal(got, want) {
		t.Errorf("ReduceRevScan result does not match naive weighted sum")
	}
}

func TestReduceSubSumMatchesRevScan(t *testing.T) {
	g := curve.Secp256k1Group{}
	points := curve.Secp256k1TestPoints("bucket-subsum", 10)
	values := []uint32{5, 2, 0, 5, 1, 9, 2, 0, 9, 5}
	maxDigit := uint32(15)

	revscanBuckets := BuildUnsigned(values)
	wantRevScan := ReduceRevScan(g, points, revscanBuckets, maxDigit)

	keysDesc, subsumBuckets := BuildUnsignedOrdered(values, maxDigit)
	gotSubSum := ReduceSubSum(g, points, keysDesc, subsumBuckets)

	if !g.Equal(gotSubSum, wantRevScan) {
		t.Errorf("ReduceSubSum does not match ReduceRevScan")
	}
}

func TestReduceSignedRevScanMatchesNaive(t *testing.T) {
	g := curve.Secp256k1Group{}
	points := curve.Secp256k1TestPoints("bucket-signed-revscan", 6)
	values := []int64{-3, 0, 3, -1, 2, -2}
	maxDigit := uint32(3)

	buckets := BuildSigned(values)
	got := ReduceSignedRevScan(g, points, buckets, maxDigit)
	want := naiveSignedWeightedSum(g, points, values)

	if !g.Equal(got, want) {
		t.Errorf("ReduceSignedRevScan result does not match naive signed weighted sum")
	}
}

func TestReduceSignedSubSumMatchesSignedRevScan(t *testing.T) {
	g := curve.Secp256k1Group{}
	points := curve.Secp256k1TestPoints("bucket-signed-subsum", 10)
	values := []int64{-5, 2, 0, 5, -1, 9, -2, 0, -9, 5}
	maxDigit := uint32(9)

	revscanBuckets := BuildSigned(values)
	wantRevScan := ReduceSignedRevScan(g, points, revscanBuckets, maxDigit)

	keysDesc, subsumBuckets := BuildSignedOrdered(values, maxDigit)
	gotSubSum := ReduceSignedSubSum(g, points, keysDesc, subsumBuckets)

	if !g.Equal(gotSubSum, wantRevScan) {
		t.Errorf("ReduceSignedSubSum does not match ReduceSignedRevScan")
	}
}

func TestReduceOverflowIndexIgnored(t *testing.T) {
	// spec.md §7: OverflowWindowOutOfRange — any index >= len(points) in a
	// decomposed digit contributes zero rather than faulting.
	g := curve.Secp256k1Group{}
	points := curve.Secp256k1TestPoints("bucket-overflow-guard", 2)

	buckets := map[uint32][]int{1: {0, 5}}
	got := ReduceRevScan(g, points, buckets, 1)
	want := points[0]
	if !g.Equal(got, want) {
		t.Errorf("out-of-range index must contribute zero")
	}
}

func TestReduceEmptyPointsYieldsIdentity(t *testing.T) {
	g := curve.Secp256k1Group{}
	var points []curve.Secp256k1Point
	buckets := BuildUnsigned(nil)
	got := ReduceRevScan(g, points, buckets, 3)
	if !g.Equal(got, g.Zero()) {
		t.Errorf("empty input must reduce to identity")
	}
}
