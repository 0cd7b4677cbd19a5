package curve

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"
)

// Secp256k1Point is a point on the secp256k1 short-Weierstrass curve
// y^2 = x^3 + 7 over F_p, in affine coordinates. It exists to give the msm
// engine something concrete to exercise in tests and benchmarks; the curve
// arithmetic itself is out of this module's scope (spec.md §1) and is kept
// deliberately minimal rather than hardened for production use (no
// side-channel resistance, no Jacobian/projective optimization).
type Secp256k1Point struct {
	X, Y     *big.Int
	Infinity bool
}

// Secp256k1Scalar is an element of the secp256k1 scalar field (mod the
// group order n), used for the field-valued weighting path of the
// parallel window combiner (spec.md §4.6, strategy a).
type Secp256k1Scalar struct {
	v *big.Int
}

var (
	secp256k1P, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F", 16)
	secp256k1N, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)
	secp256k1Gx, _ = new(big.Int).SetString("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798", 16)
	secp256k1Gy, _ = new(big.Int).SetString("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8", 16)
)

// Secp256k1Generator returns the standard secp256k1 base point.
func Secp256k1Generator() Secp256k1Point {
	return Secp256k1Point{X: new(big.Int).Set(secp256k1Gx), Y: new(big.Int).Set(secp256k1Gy)}
}

// Secp256k1Group implements curve.Group over Secp256k1Point/Secp256k1Scalar.
type Secp256k1Group struct{}

func (Secp256k1Group) Zero() Secp256k1Point {
	return Secp256k1Point{X: new(big.Int), Y: new(big.Int), Infinity: true}
}

func (Secp256k1Group) Add(a, b Secp256k1Point) Secp256k1Point {
	if a.Infinity {
		return clonePoint(b)
	}
	if b.Infinity {
		return clonePoint(a)
	}
	if a.X.Cmp(b.X) == 0 {
		if a.Y.Cmp(b.Y) != 0 {
			// a == -b
			return Secp256k1Point{X: new(big.Int), Y: new(big.Int), Infinity: true}
		}
		return Secp256k1Group{}.Double(a)
	}

	// lambda = (y2 - y1) / (x2 - x1) mod p
	num := new(big.Int).Sub(b.Y, a.Y)
	den := new(big.Int).Sub(b.X, a.X)
	den.ModInverse(den, secp256k1P)
	lambda := num.Mul(num, den)
	lambda.Mod(lambda, secp256k1P)

	return addFromLambda(a, b.X, lambda)
}

func (Secp256k1Group) Double(a Secp256k1Point) Secp256k1Point {
	if a.Infinity || a.Y.Sign() == 0 {
		return Secp256k1Point{X: new(big.Int), Y: new(big.Int), Infinity: true}
	}

	// lambda = 3*x1^2 / (2*y1) mod p   (curve parameter a == 0)
	num := new(big.Int).Mul(a.X, a.X)
	num.Mul(num, big.NewInt(3))
	den := new(big.Int).Lsh(a.Y, 1)
	den.ModInverse(den, secp256k1P)
	lambda := num.Mul(num, den)
	lambda.Mod(lambda, secp256k1P)

	return addFromLambda(a, a.X, lambda)
}

// addFromLambda finishes point addition given the slope lambda and the
// other point's x-coordinate; shared by Add and Double.
func addFromLambda(a Secp256k1Point, bx *big.Int, lambda *big.Int) Secp256k1Point {
	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, a.X)
	x3.Sub(x3, bx)
	x3.Mod(x3, secp256k1P)

	y3 := new(big.Int).Sub(a.X, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, a.Y)
	y3.Mod(y3, secp256k1P)

	return Secp256k1Point{X: x3, Y: y3}
}

func (Secp256k1Group) Negate(a Secp256k1Point) Secp256k1Point {
	if a.Infinity {
		return clonePoint(a)
	}
	y := new(big.Int).Neg(a.Y)
	y.Mod(y, secp256k1P)
	return Secp256k1Point{X: new(big.Int).Set(a.X), Y: y}
}

func (g Secp256k1Group) ScalarMulUint64(a Secp256k1Point, k uint64) Secp256k1Point {
	result := g.Zero()
	addend := clonePoint(a)
	for k != 0 {
		if k&1 == 1 {
			result = g.Add(result, addend)
		}
		addend = g.Double(addend)
		k >>= 1
	}
	return result
}

func (g Secp256k1Group) ScalarMulScalar(a Secp256k1Point, k Secp256k1Scalar) Secp256k1Point {
	result := g.Zero()
	addend := clonePoint(a)
	v := new(big.Int).Set(k.v)
	for v.Sign() != 0 {
		if v.Bit(0) == 1 {
			result = g.Add(result, addend)
		}
		addend = g.Double(addend)
		v.Rsh(v, 1)
	}
	return result
}

func (Secp256k1Group) ScalarFromUint64(k uint64) Secp256k1Scalar {
	v := new(big.Int).SetUint64(k)
	v.Mod(v, secp256k1N)
	return Secp256k1Scalar{v: v}
}

func (Secp256k1Group) Equal(a, b Secp256k1Point) bool {
	if a.Infinity || b.Infinity {
		return a.Infinity == b.Infinity
	}
	return a.X.Cmp(b.X) == 0 && a.Y.Cmp(b.Y) == 0
}

func clonePoint(p Secp256k1Point) Secp256k1Point {
	if p.Infinity {
		return Secp256k1Point{X: new(big.Int), Y: new(big.Int), Infinity: true}
	}
	return Secp256k1Point{X: new(big.Int).Set(p.X), Y: new(big.Int).Set(p.Y)}
}

// Secp256k1TestPoints deterministically derives n points on the curve from
// a seed, in the style of banderwagon's GenerateRandomPoints: hash
// seed||counter to a scalar and multiply the generator by it. This keeps
// test and benchmark fixtures reproducible without a shared RNG.
func Secp256k1TestPoints(seed string, n int) []Secp256k1Point {
	g := Secp256k1Generator()
	group := Secp256k1Group{}
	points := make([]Secp256k1Point, n)
	for i := 0; i < n; i++ {
		digest := sha256.New()
		digest.Write([]byte(seed))
		var ctr [8]byte
		binary.BigEndian.PutUint64(ctr[:], uint64(i))
		digest.Write(ctr[:])
		h := digest.Sum(nil)

		scalar := new(big.Int).SetBytes(h)
		scalar.Mod(scalar, secp256k1N)
		if scalar.Sign() == 0 {
			scalar.SetUint64(1)
		}
		points[i] = group.ScalarMulScalar(g, Secp256k1Scalar{v: scalar})
	}
	return points
}
