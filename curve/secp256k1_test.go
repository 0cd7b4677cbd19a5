package curve

import (
	"math/big"
	"testing"
)

func TestGeneratorIsOnCurve(t *testing.T) {
	g := Secp256k1Generator()
	lhs := new(big.Int).Mul(g.Y, g.Y)
	lhs.Mod(lhs, secp256k1P)

	rhs := new(big.Int).Mul(g.X, g.X)
	rhs.Mul(rhs, g.X)
	rhs.Add(rhs, big.NewInt(7))
	rhs.Mod(rhs, secp256k1P)

	if lhs.Cmp(rhs) != 0 {
		t.Fatalf("generator does not satisfy y^2 = x^3 + 7 mod p")
	}
}

func TestAddIdentity(t *testing.T) {
	g := Secp256k1Group{}
	gen := Secp256k1Generator()

	if !g.Equal(g.Add(gen, g.Zero()), gen) {
		t.Error("P + 0 != P")
	}
	if !g.Equal(g.Add(g.Zero(), gen), gen) {
		t.Error("0 + P != P")
	}
}

func TestAddNegationIsIdentity(t *testing.T) {
	g := Secp256k1Group{}
	gen := Secp256k1Generator()
	neg := g.Negate(gen)

	if !g.Equal(g.Add(gen, neg), g.Zero()) {
		t.Error("P + (-P) != 0")
	}
}

func TestDoubleMatchesSelfAdd(t *testing.T) {
	g := Secp256k1Group{}
	gen := Secp256k1Generator()

	if !g.Equal(g.Double(gen), g.Add(gen, gen)) {
		t.Error("double(P) != P + P")
	}
}

func TestAddIsCommutative(t *testing.T) {
	g := Secp256k1Group{}
	p := Secp256k1TestPoints("commutative-a", 1)[0]
	q := Secp256k1TestPoints("commutative-b", 1)[0]

	if !g.Equal(g.Add(p, q), g.Add(q, p)) {
		t.Error("P + Q != Q + P")
	}
}

func TestAddIsAssociative(t *testing.T) {
	g := Secp256k1Group{}
	pts := Secp256k1TestPoints("associative", 3)

	lhs := g.Add(g.Add(pts[0], pts[1]), pts[2])
	rhs := g.Add(pts[0], g.Add(pts[1], pts[2]))
	if !g.Equal(lhs, rhs) {
		t.Error("(P+Q)+R != P+(Q+R)")
	}
}

func TestScalarMulMatchesRepeatedAdd(t *testing.T) {
	g := Secp256k1Group{}
	gen := Secp256k1Generator()

	repeated := g.Zero()
	for i := 0; i < 9; i++ {
		repeated = g.Add(repeated, gen)
	}
	if !g.Equal(g.ScalarMulUint64(gen, 9), repeated) {
		t.Error("9*P != P+P+...+P (9 times)")
	}
}

func TestScalarMulScalarMatchesScalarMulUint64(t *testing.T) {
	g := Secp256k1Group{}
	gen := Secp256k1Generator()

	s := g.ScalarFromUint64(17)
	if !g.Equal(g.ScalarMulScalar(gen, s), g.ScalarMulUint64(gen, 17)) {
		t.Error("ScalarMulScalar(17) != ScalarMulUint64(17)")
	}
}

func TestTestPointsDeterministic(t *testing.T) {
	a := Secp256k1TestPoints("seed", 5)
	b := Secp256k1TestPoints("seed", 5)
	g := Secp256k1Group{}
	for i := range a {
		if !g.Equal(a[i], b[i]) {
			t.Errorf("point %d differs between runs with the same seed", i)
		}
	}
}

func TestTestPointsDistinctFromDifferentSeeds(t *testing.T) {
	a := Secp256k1TestPoints("seed-a", 1)[0]
	b := Secp256k1TestPoints("seed-b", 1)[0]
	g := Secp256k1Group{}
	if g.Equal(a, b) {
		t.Error("different seeds produced the same point")
	}
}
