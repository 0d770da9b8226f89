// Package curve names the bilinear-group vocabulary used by the rest of
// this module. It does not implement field arithmetic, the Miller loop, or
// the final exponentiation: those are assumed given, provided by
// gnark-crypto's BLS12-381 instantiation. The aliases exist so that the
// aggregation packages can speak in Scalar/G1/G2/GT rather than repeating
// the curve import everywhere.
package curve

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc"
)

var multiExpConfig = ecc.MultiExpConfig{}

type (
	// Scalar is an element of the scalar field Fr.
	Scalar = fr.Element
	// G1 is an affine point of the first source group.
	G1 = bls12381.G1Affine
	// G1Jac is the Jacobian (projective) form used for accumulation.
	G1Jac = bls12381.G1Jac
	// G2 is an affine point of the second source group.
	G2 = bls12381.G2Affine
	// G2Jac is the Jacobian form of G2.
	G2Jac = bls12381.G2Jac
	// GT is an element of the target group, the image of the pairing.
	GT = bls12381.GT
)

// Pair computes the full pairing e(a,b) = FinalExponentiation(MillerLoop(a,b))
// for equal-length slices, i.e. Π e(a[i],b[i]).
func Pair(a []G1, b []G2) (GT, error) {
	return bls12381.Pair(a, b)
}

// MillerLoop computes the Miller loop only, without the final
// exponentiation, so that several loops can be batched before paying for a
// single final exponentiation (the pairing accumulator, Component I).
func MillerLoop(a []G1, b []G2) (GT, error) {
	return bls12381.MillerLoop(a, b)
}

// FinalExponentiation raises a Miller-loop output (optionally pre-multiplied
// by more loop outputs) to the final-exponentiation power.
func FinalExponentiation(z *GT, zs ...*GT) GT {
	return bls12381.FinalExponentiation(z, zs...)
}

// PairingCheck reports whether Π e(a[i],b[i]) == 1.
func PairingCheck(a []G1, b []G2) (bool, error) {
	return bls12381.PairingCheck(a, b)
}

// Generators returns the standard G1 and G2 generators of the curve.
func Generators() (G1, G2) {
	_, _, g1, g2 := bls12381.Generators()
	return g1, g2
}

// ScalarMulG1 returns base^s (written additively: s*base).
func ScalarMulG1(base *G1, s *Scalar) G1 {
	var bi big.Int
	s.BigInt(&bi)
	var out G1
	out.ScalarMultiplication(base, &bi)
	return out
}

// ScalarMulG2 returns base^s.
func ScalarMulG2(base *G2, s *Scalar) G2 {
	var bi big.Int
	s.BigInt(&bi)
	var out G2
	out.ScalarMultiplication(base, &bi)
	return out
}

// MultiExpG1 computes Σ scalars[i]*points[i].
func MultiExpG1(points []G1, scalars []Scalar) (G1, error) {
	var out G1
	_, err := out.MultiExp(points, scalars, multiExpConfig)
	return out, err
}

// MultiExpG2 computes Σ scalars[i]*points[i].
func MultiExpG2(points []G2, scalars []Scalar) (G2, error) {
	var out G2
	_, err := out.MultiExp(points, scalars, multiExpConfig)
	return out, err
}

// G1Bytes serializes a G1 point in canonical compressed form.
func G1Bytes(p G1) []byte {
	b := p.Bytes()
	return b[:]
}

// G2Bytes serializes a G2 point in canonical compressed form.
func G2Bytes(p G2) []byte {
	b := p.Bytes()
	return b[:]
}

// ScalarBytes serializes a scalar in canonical big-endian form.
func ScalarBytes(s Scalar) []byte {
	b := s.Bytes()
	return b[:]
}

// ExpGT raises a target-group element to a scalar power.
func ExpGT(z GT, s Scalar) GT {
	var bi big.Int
	s.BigInt(&bi)
	var out GT
	out.Exp(z, &bi)
	return out
}

// GTBytes serializes a target-group element in canonical form: the twelve
// Fp coefficients of the E12 tower representation, each as a 48-byte
// big-endian integer, in C0.B0.A0 .. C1.B2.A1 order.
func GTBytes(z GT) []byte {
	limbs := [12]fp.Element{
		z.C0.B0.A0, z.C0.B0.A1,
		z.C0.B1.A0, z.C0.B1.A1,
		z.C0.B2.A0, z.C0.B2.A1,
		z.C1.B0.A0, z.C1.B0.A1,
		z.C1.B1.A0, z.C1.B1.A1,
		z.C1.B2.A0, z.C1.B2.A1,
	}
	out := make([]byte, 0, 12*48)
	var bi big.Int
	for i := range limbs {
		limbs[i].BigInt(&bi)
		buf := make([]byte, 48)
		bi.FillBytes(buf)
		out = append(out, buf...)
	}
	return out
}
