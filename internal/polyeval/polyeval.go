// Package polyeval builds and evaluates the structured polynomial implicit
// in a GIPA Fiat-Shamir transcript:
//
//	f(X) = Π_{i=0}^{ℓ-1} (1 + transcript[i] · (rX)^{2^i})
//
// where transcript is the challenge list in reversed order (transcript[i] =
// x_{ℓ-i}). CoefficientsFromTranscript and EvaluationFromTranscript must be
// bit-exact mirrors of each other: evaluating the coefficient list at z
// equals the direct evaluation (spec §8, property 4; §9 "transcript
// reversal").
package polyeval

import (
	"github.com/crate-crypto/go-groth16-aggregate/internal/curve"
)

// EvaluationFromTranscript computes f(z) directly, by repeated squaring of
// r*z through the product, in O(len(transcript)) field operations.
func EvaluationFromTranscript(transcript []curve.Scalar, z, r curve.Scalar) curve.Scalar {
	var result curve.Scalar
	result.SetOne()

	var rz curve.Scalar
	rz.Mul(&r, &z)

	power := rz
	for i := 0; i < len(transcript); i++ {
		var term curve.Scalar
		term.Mul(&transcript[i], &power)
		var factor curve.Scalar
		factor.SetOne()
		factor.Add(&factor, &term)
		result.Mul(&result, &factor)
		power.Mul(&power, &power)
	}
	return result
}

// CoefficientsFromTranscript expands f(X) into its length-2^ℓ coefficient
// vector, doubling the running coefficient list at each step: starting
// from [1], step i appends x_i · r^{2^i} · c_j for every existing
// coefficient c_j, then squares the running power r^{2^i}.
func CoefficientsFromTranscript(transcript []curve.Scalar, r curve.Scalar) []curve.Scalar {
	coeffs := make([]curve.Scalar, 1, 1<<uint(len(transcript)))
	coeffs[0].SetOne()

	power := r
	for i := 0; i < len(transcript); i++ {
		n := len(coeffs)
		extended := make([]curve.Scalar, n, n*2)
		copy(extended, coeffs)
		for j := 0; j < n; j++ {
			var term curve.Scalar
			term.Mul(&transcript[i], &power)
			term.Mul(&term, &coeffs[j])
			extended = append(extended, term)
		}
		coeffs = extended
		power.Mul(&power, &power)
	}
	return coeffs
}

// EvaluatePolynomial evaluates a coefficient vector (lowest degree first)
// at a point via Horner's method. Used by the tests to check
// CoefficientsFromTranscript against EvaluationFromTranscript and to check
// DivideByLinear; package kzgopen does not call it.
func EvaluatePolynomial(coeffs []curve.Scalar, z curve.Scalar) curve.Scalar {
	var result curve.Scalar
	for i := len(coeffs) - 1; i >= 0; i-- {
		result.Mul(&result, &z)
		result.Add(&result, &coeffs[i])
	}
	return result
}

// DivideByLinear divides a polynomial p(X) (lowest-degree-first
// coefficients) by the monic linear factor (X - z), returning the quotient
// q(X) such that p(X) = q(X)·(X - z) + p(z). Used to build the KZG
// quotient polynomial; the remainder is discarded by the caller, which must
// have already checked p(z) equals the claimed evaluation so the remainder
// is zero by construction.
func DivideByLinear(coeffs []curve.Scalar, z curve.Scalar) []curve.Scalar {
	n := len(coeffs)
	if n == 0 {
		return nil
	}
	quotient := make([]curve.Scalar, n-1)
	var carry curve.Scalar
	carry.Set(&coeffs[n-1])
	for i := n - 2; i >= 0; i-- {
		quotient[i].Set(&carry)
		var term curve.Scalar
		term.Mul(&carry, &z)
		carry.Add(&coeffs[i], &term)
	}
	return quotient
}
