// Package srs holds the structured reference string types consumed by the
// aggregator (spec Component A/external: "SRS/verifier-SRS structs...
// treated as providers of typed inputs"). Production deployments source
// these from a trusted-setup ceremony, which is out of scope for this
// module; Generate below builds a self-consistent SRS from caller-supplied
// secret exponents for testing, exactly the role the teacher's api package
// plays for the KZG trusted setup (deserialize/validate, never run the
// ceremony itself).
package srs

import (
	"math/big"

	"github.com/crate-crypto/go-groth16-aggregate/internal/commitment"
	"github.com/crate-crypto/go-groth16-aggregate/internal/curve"
)

// SRS is the prover-side structured reference string: the commitment keys
// v (in G2, unshifted powers of α,β) and w (in G1, powers shifted by n),
// plus the unshifted G1 power tables used to open w's KZG proof.
type SRS struct {
	N int
	// VKey.A[i] = h^{α^i}, VKey.B[i] = h^{β^i}, i=0..n-1. Doubles as the
	// opening table for the v arm of a KZG proof.
	VKey commitment.VKey
	// WKey.A[i] = g^{α^{n+i}}, WKey.B[i] = g^{β^{n+i}}, i=0..n-1.
	WKey commitment.WKey
	// GAlphaPowers[i] = g^{α^i}, GBetaPowers[i] = g^{β^i}, i=0..n-1: the
	// unshifted opening tables for the w arm of a KZG proof.
	GAlphaPowers []curve.G1
	GBetaPowers  []curve.G1
}

// VerifierSRS holds only the constant-size elements the verifier needs.
type VerifierSRS struct {
	N int
	G curve.G1
	H curve.G2
	// GAlpha = g^α, GBeta = g^β.
	GAlpha, GBeta curve.G1
	// HAlpha = h^α, HBeta = h^β.
	HAlpha, HBeta curve.G2
	// GAlphaN1 = g^{α^{n+1}}, GBetaN1 = g^{β^{n+1}}: needed to check the w
	// arm, whose commitment key is shifted by n powers.
	GAlphaN1, GBetaN1 curve.G1
}

// Generate builds a self-consistent (SRS, VerifierSRS) pair of size n from
// caller-supplied secret exponents alpha, beta. It is explicitly NOT a
// trusted-setup ceremony — alpha and beta must be discarded by the real
// production path; this function exists so that tests and toy end-to-end
// exercises can construct reproducible structured reference strings without
// an external ceremony, matching the "out of scope" boundary in spec §1.
func Generate(n int, alpha, beta curve.Scalar) (*SRS, *VerifierSRS, error) {
	g, h := curve.Generators()

	powersOf := func(x curve.Scalar, count int) []curve.Scalar {
		out := make([]curve.Scalar, count)
		out[0].SetOne()
		for i := 1; i < count; i++ {
			out[i].Mul(&out[i-1], &x)
		}
		return out
	}

	alphaPowers := powersOf(alpha, 2*n+2)
	betaPowers := powersOf(beta, 2*n+2)

	vkey := commitment.VKey{A: make([]curve.G2, n), B: make([]curve.G2, n)}
	gAlphaPowers := make([]curve.G1, n)
	gBetaPowers := make([]curve.G1, n)
	for i := 0; i < n; i++ {
		vkey.A[i] = curve.ScalarMulG2(&h, &alphaPowers[i])
		vkey.B[i] = curve.ScalarMulG2(&h, &betaPowers[i])
		gAlphaPowers[i] = curve.ScalarMulG1(&g, &alphaPowers[i])
		gBetaPowers[i] = curve.ScalarMulG1(&g, &betaPowers[i])
	}

	wkey := commitment.WKey{A: make([]curve.G1, n), B: make([]curve.G1, n)}
	for i := 0; i < n; i++ {
		wkey.A[i] = curve.ScalarMulG1(&g, &alphaPowers[n+i])
		wkey.B[i] = curve.ScalarMulG1(&g, &betaPowers[n+i])
	}

	out := &SRS{
		N:            n,
		VKey:         vkey,
		WKey:         wkey,
		GAlphaPowers: gAlphaPowers,
		GBetaPowers:  gBetaPowers,
	}

	vsrs := &VerifierSRS{
		N:        n,
		G:        g,
		H:        h,
		GAlpha:   curve.ScalarMulG1(&g, &alphaPowers[1]),
		GBeta:    curve.ScalarMulG1(&g, &betaPowers[1]),
		HAlpha:   curve.ScalarMulG2(&h, &alphaPowers[1]),
		HBeta:    curve.ScalarMulG2(&h, &betaPowers[1]),
		GAlphaN1: curve.ScalarMulG1(&g, &alphaPowers[n+1]),
		GBetaN1:  curve.ScalarMulG1(&g, &betaPowers[n+1]),
	}

	return out, vsrs, nil
}

// ScalarFromInt64 is a small convenience used by tests and toy setups to
// build secret exponents from fixed seeds without touching math/big at
// every call site.
func ScalarFromInt64(v int64) curve.Scalar {
	var s curve.Scalar
	s.SetBigInt(big.NewInt(v))
	return s
}
