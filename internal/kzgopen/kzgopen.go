// Package kzgopen implements the KZG-style opening of the collapsed
// commitment keys produced by GIPA (spec Component F): proving that the
// final single-element v* and w* equal f(z) for a Fiat-Shamir challenge
// point z, where f is the structured transcript polynomial from package
// polyeval.
package kzgopen

import (
	"github.com/crate-crypto/go-groth16-aggregate/internal/aggerrors"
	"github.com/crate-crypto/go-groth16-aggregate/internal/curve"
	"github.com/crate-crypto/go-groth16-aggregate/internal/pairing"
	"github.com/crate-crypto/go-groth16-aggregate/internal/polyeval"
	"github.com/crate-crypto/go-groth16-aggregate/internal/srs"
)

// ErrMalformedSRS is returned when a precomputed SRS power table does not
// match the polynomial's coefficient count (2^ℓ).
var ErrMalformedSRS = aggerrors.ErrMalformedSRS

// OpeningG2 is a KZG opening for a polynomial committed in G2 (the v arm).
type OpeningG2 struct {
	Alpha, Beta curve.G2
}

// OpeningG1 is a KZG opening for a polynomial committed in G1 (the w arm).
type OpeningG1 struct {
	Alpha, Beta curve.G1
}

func quotientScalars(transcript []curve.Scalar, rShift, z curve.Scalar, tableLen int) ([]curve.Scalar, curve.Scalar, error) {
	coeffs := polyeval.CoefficientsFromTranscript(transcript, rShift)
	if len(coeffs) != tableLen {
		return nil, curve.Scalar{}, ErrMalformedSRS
	}
	y := polyeval.EvaluationFromTranscript(transcript, z, rShift)

	shifted := make([]curve.Scalar, len(coeffs))
	copy(shifted, coeffs)
	shifted[0].Sub(&shifted[0], &y)

	quotient := polyeval.DivideByLinear(shifted, z)
	padded := make([]curve.Scalar, tableLen)
	copy(padded, quotient)
	return padded, y, nil
}

// ProveV opens the v (G2) commitment key's transcript polynomial against
// the SRS's h-power tables.
func ProveV(transcript []curve.Scalar, rShift, z curve.Scalar, alphaTable, betaTable []curve.G2) (OpeningG2, error) {
	scalars, _, err := quotientScalars(transcript, rShift, z, len(alphaTable))
	if err != nil {
		return OpeningG2{}, err
	}
	if len(betaTable) != len(alphaTable) {
		return OpeningG2{}, ErrMalformedSRS
	}
	alpha, err := curve.MultiExpG2(alphaTable, scalars)
	if err != nil {
		return OpeningG2{}, err
	}
	beta, err := curve.MultiExpG2(betaTable, scalars)
	if err != nil {
		return OpeningG2{}, err
	}
	return OpeningG2{Alpha: alpha, Beta: beta}, nil
}

// ProveW opens the w (G1) commitment key's transcript polynomial against
// the SRS's unshifted g-power tables.
func ProveW(transcript []curve.Scalar, rShift, z curve.Scalar, alphaTable, betaTable []curve.G1) (OpeningG1, error) {
	scalars, _, err := quotientScalars(transcript, rShift, z, len(alphaTable))
	if err != nil {
		return OpeningG1{}, err
	}
	if len(betaTable) != len(alphaTable) {
		return OpeningG1{}, ErrMalformedSRS
	}
	alpha, err := curve.MultiExpG1(alphaTable, scalars)
	if err != nil {
		return OpeningG1{}, err
	}
	beta, err := curve.MultiExpG1(betaTable, scalars)
	if err != nil {
		return OpeningG1{}, err
	}
	return OpeningG1{Alpha: alpha, Beta: beta}, nil
}

// VerifyV checks the v-arm KZG opening and returns a pairing accumulator
// contribution (constant 1): for each of the α and β sub-checks (s = α or β),
//
//	e(g, final_v · h^{-f_v(z)}) · e(g^s - g^z, π)⁻¹ ≟ 1
func VerifyV(vsrs *srs.VerifierSRS, finalV OpeningG2, opening OpeningG2, transcript []curve.Scalar, rShift, z curve.Scalar) (pairing.Tuple, error) {
	y := polyeval.EvaluationFromTranscript(transcript, z, rShift)

	alphaY := curve.ScalarMulG2(&vsrs.H, &y)
	var lhsAlpha curve.G2
	lhsAlpha.Sub(&finalV.Alpha, &alphaY)
	p1, err := curve.MillerLoop([]curve.G1{vsrs.G}, []curve.G2{lhsAlpha})
	if err != nil {
		return pairing.Tuple{}, err
	}

	gz := curve.ScalarMulG1(&vsrs.G, &z)
	var lhsG1Alpha curve.G1
	lhsG1Alpha.Sub(&vsrs.GAlpha, &gz)
	p2, err := curve.MillerLoop([]curve.G1{lhsG1Alpha}, []curve.G2{opening.Alpha})
	if err != nil {
		return pairing.Tuple{}, err
	}

	betaY := curve.ScalarMulG2(&vsrs.H, &y)
	var lhsBeta curve.G2
	lhsBeta.Sub(&finalV.Beta, &betaY)
	q1, err := curve.MillerLoop([]curve.G1{vsrs.G}, []curve.G2{lhsBeta})
	if err != nil {
		return pairing.Tuple{}, err
	}

	var lhsG1Beta curve.G1
	lhsG1Beta.Sub(&vsrs.GBeta, &gz)
	q2, err := curve.MillerLoop([]curve.G1{lhsG1Beta}, []curve.G2{opening.Beta})
	if err != nil {
		return pairing.Tuple{}, err
	}

	var ip1, iq1, combined curve.GT
	ip1.Inverse(&p1)
	iq1.Inverse(&q1)
	combined.Mul(&ip1, &p2)
	var combined2 curve.GT
	combined2.Mul(&iq1, &q2)
	combined.Mul(&combined, &combined2)

	var one curve.GT
	one.SetOne()
	return pairing.NewTuple(combined, one), nil
}

// VerifyW checks the w-arm KZG opening, symmetric to VerifyV with G1/G2
// roles swapped and the shift-by-(n+1) constants GAlphaN1/GBetaN1 in place
// of VerifyV's h in the evaluation term.
func VerifyW(vsrs *srs.VerifierSRS, finalW OpeningG1, opening OpeningG1, transcript []curve.Scalar, rShift, z curve.Scalar) (pairing.Tuple, error) {
	y := polyeval.EvaluationFromTranscript(transcript, z, rShift)

	alphaY := curve.ScalarMulG1(&vsrs.GAlphaN1, &y)
	var lhsAlpha curve.G1
	lhsAlpha.Sub(&finalW.Alpha, &alphaY)
	p1, err := curve.MillerLoop([]curve.G1{lhsAlpha}, []curve.G2{vsrs.H})
	if err != nil {
		return pairing.Tuple{}, err
	}

	hz := curve.ScalarMulG2(&vsrs.H, &z)
	var lhsG2Alpha curve.G2
	lhsG2Alpha.Sub(&vsrs.HAlpha, &hz)
	p2, err := curve.MillerLoop([]curve.G1{opening.Alpha}, []curve.G2{lhsG2Alpha})
	if err != nil {
		return pairing.Tuple{}, err
	}

	betaY := curve.ScalarMulG1(&vsrs.GBetaN1, &y)
	var lhsBeta curve.G1
	lhsBeta.Sub(&finalW.Beta, &betaY)
	q1, err := curve.MillerLoop([]curve.G1{lhsBeta}, []curve.G2{vsrs.H})
	if err != nil {
		return pairing.Tuple{}, err
	}

	var lhsG2Beta curve.G2
	lhsG2Beta.Sub(&vsrs.HBeta, &hz)
	q2, err := curve.MillerLoop([]curve.G1{opening.Beta}, []curve.G2{lhsG2Beta})
	if err != nil {
		return pairing.Tuple{}, err
	}

	var ip1, iq1, combined curve.GT
	ip1.Inverse(&p1)
	iq1.Inverse(&q1)
	combined.Mul(&ip1, &p2)
	var combined2 curve.GT
	combined2.Mul(&iq1, &q2)
	combined.Mul(&combined, &combined2)

	var one curve.GT
	one.SetOne()
	return pairing.NewTuple(combined, one), nil
}
