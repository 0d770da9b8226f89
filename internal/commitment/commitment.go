// Package commitment implements the structured commitment keys and the
// pair-commitment scheme (spec Component B): two parallel power-vectors v
// (in G2) and w (in G1), and the operations GIPA folds them with —
// PairCommit, SingleCommit, Scale, Split, and Compress.
package commitment

import (
	"github.com/crate-crypto/go-groth16-aggregate/internal/aggerrors"
	"github.com/crate-crypto/go-groth16-aggregate/internal/curve"
)

// VKey is the structured G2 commitment key: vkey.A[i] = h^{α^i},
// vkey.B[i] = h^{β^i}.
type VKey struct {
	A []curve.G2
	B []curve.G2
}

// WKey is the structured G1 commitment key: wkey.A[i] = g^{α^{n+i}},
// wkey.B[i] = g^{β^{n+i}}.
type WKey struct {
	A []curve.G1
	B []curve.G1
}

func (v VKey) Len() int { return len(v.A) }
func (w WKey) Len() int { return len(w.A) }

// Output is a pair-commitment value (T, U) ∈ Gt × Gt.
type Output struct {
	T, U curve.GT
}

// ErrLengthMismatch is returned when a key's vector lengths disagree with
// the expected batch size.
var ErrLengthMismatch = aggerrors.ErrMalformedSRS

// PairCommit computes the simultaneous commitment to (A,B) under (v,w):
//
//	T = Π e(A[i], v.A[i]) · Π e(w.A[i], B[i])
//	U = Π e(A[i], v.B[i]) · Π e(w.B[i], B[i])
func PairCommit(v VKey, w WKey, a []curve.G1, b []curve.G2) (Output, error) {
	n := len(a)
	if v.Len() != n || w.Len() != n || len(b) != n {
		return Output{}, ErrLengthMismatch
	}

	tLeft, err := curve.MillerLoop(a, v.A)
	if err != nil {
		return Output{}, err
	}
	tRight, err := curve.MillerLoop(w.A, b)
	if err != nil {
		return Output{}, err
	}
	var t curve.GT
	t.Mul(&tLeft, &tRight)
	t = curve.FinalExponentiation(&t)

	uLeft, err := curve.MillerLoop(a, v.B)
	if err != nil {
		return Output{}, err
	}
	uRight, err := curve.MillerLoop(w.B, b)
	if err != nil {
		return Output{}, err
	}
	var u curve.GT
	u.Mul(&uLeft, &uRight)
	u = curve.FinalExponentiation(&u)

	return Output{T: t, U: u}, nil
}

// SingleCommit computes the commitment to C under v only (the w term
// omitted), used by MIPP.
func SingleCommit(v VKey, c []curve.G1) (Output, error) {
	n := len(c)
	if v.Len() != n {
		return Output{}, ErrLengthMismatch
	}
	t, err := curve.Pair(c, v.A)
	if err != nil {
		return Output{}, err
	}
	u, err := curve.Pair(c, v.B)
	if err != nil {
		return Output{}, err
	}
	return Output{T: t, U: u}, nil
}

// Scale returns a new key where every power is raised to the corresponding
// scalar: new.A[i] = v.A[i]^{s[i]}, identically for .B.
func (v VKey) Scale(s []curve.Scalar) (VKey, error) {
	if len(s) != v.Len() {
		return VKey{}, ErrLengthMismatch
	}
	out := VKey{A: make([]curve.G2, len(s)), B: make([]curve.G2, len(s))}
	for i := range s {
		out.A[i] = curve.ScalarMulG2(&v.A[i], &s[i])
		out.B[i] = curve.ScalarMulG2(&v.B[i], &s[i])
	}
	return out, nil
}

// Scale returns a new key where every power is raised to the corresponding
// scalar.
func (w WKey) Scale(s []curve.Scalar) (WKey, error) {
	if len(s) != w.Len() {
		return WKey{}, ErrLengthMismatch
	}
	out := WKey{A: make([]curve.G1, len(s)), B: make([]curve.G1, len(s))}
	for i := range s {
		out.A[i] = curve.ScalarMulG1(&w.A[i], &s[i])
		out.B[i] = curve.ScalarMulG1(&w.B[i], &s[i])
	}
	return out, nil
}

// Split returns the left ([0,k)) and right ([k,n)) halves of the key.
func (v VKey) Split(k int) (left, right VKey) {
	return VKey{A: v.A[:k], B: v.B[:k]}, VKey{A: v.A[k:], B: v.B[k:]}
}

// Split returns the left and right halves of the key.
func (w WKey) Split(k int) (left, right WKey) {
	return WKey{A: w.A[:k], B: w.B[:k]}, WKey{A: w.A[k:], B: w.B[k:]}
}

// CompressVKey folds two half-size keys into one: new.A[i] = left.A[i] ·
// right.A[i]^c, identically for .B. When c is the inverse GIPA challenge
// this is the standard GIPA key-folding step.
func CompressVKey(left, right VKey, c curve.Scalar) VKey {
	n := left.Len()
	out := VKey{A: make([]curve.G2, n), B: make([]curve.G2, n)}
	for i := 0; i < n; i++ {
		scaledA := curve.ScalarMulG2(&right.A[i], &c)
		out.A[i].Add(&left.A[i], &scaledA)
		scaledB := curve.ScalarMulG2(&right.B[i], &c)
		out.B[i].Add(&left.B[i], &scaledB)
	}
	return out
}

// CompressWKey folds two half-size keys into one, symmetric to
// CompressVKey.
func CompressWKey(left, right WKey, c curve.Scalar) WKey {
	n := left.Len()
	out := WKey{A: make([]curve.G1, n), B: make([]curve.G1, n)}
	for i := 0; i < n; i++ {
		scaledA := curve.ScalarMulG1(&right.A[i], &c)
		out.A[i].Add(&left.A[i], &scaledA)
		scaledB := curve.ScalarMulG1(&right.B[i], &c)
		out.B[i].Add(&left.B[i], &scaledB)
	}
	return out
}

// FoldG1 folds left += c*right element-wise, the analogous operation GIPA
// applies to the A/B vectors themselves (not the keys).
func FoldG1(left, right []curve.G1, c curve.Scalar) []curve.G1 {
	out := make([]curve.G1, len(left))
	for i := range left {
		scaled := curve.ScalarMulG1(&right[i], &c)
		out[i].Add(&left[i], &scaled)
	}
	return out
}

// FoldG2 folds left += c*right element-wise.
func FoldG2(left, right []curve.G2, c curve.Scalar) []curve.G2 {
	out := make([]curve.G2, len(left))
	for i := range left {
		scaled := curve.ScalarMulG2(&right[i], &c)
		out[i].Add(&left[i], &scaled)
	}
	return out
}

// FoldScalar folds left += c*right element-wise, used by MIPP for the r
// vector.
func FoldScalar(left, right []curve.Scalar, c curve.Scalar) []curve.Scalar {
	out := make([]curve.Scalar, len(left))
	for i := range left {
		var scaled curve.Scalar
		scaled.Mul(&right[i], &c)
		out[i].Add(&left[i], &scaled)
	}
	return out
}
