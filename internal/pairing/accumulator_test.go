package pairing

import (
	"math/big"
	"testing"

	"github.com/crate-crypto/go-groth16-aggregate/internal/curve"
)

func scalar(v int64) curve.Scalar {
	var s curve.Scalar
	s.SetBigInt(big.NewInt(v))
	return s
}

func ptrScalar(s curve.Scalar) *curve.Scalar { return &s }

func TestTupleVerifyAcceptsGenuinePairing(t *testing.T) {
	g, h := curve.Generators()
	a := curve.ScalarMulG1(&g, ptrScalar(scalar(3)))
	b := curve.ScalarMulG2(&h, ptrScalar(scalar(5)))

	target, err := curve.Pair([]curve.G1{a}, []curve.G2{b})
	if err != nil {
		t.Fatal(err)
	}

	tuple, err := FromPair([]curve.G1{a}, []curve.G2{b}, target)
	if err != nil {
		t.Fatal(err)
	}
	if !tuple.Verify() {
		t.Fatal("genuine pairing equation rejected")
	}
}

func TestTupleVerifyRejectsWrongTarget(t *testing.T) {
	g, h := curve.Generators()
	a := curve.ScalarMulG1(&g, ptrScalar(scalar(3)))
	b := curve.ScalarMulG2(&h, ptrScalar(scalar(5)))

	wrongTarget, err := curve.Pair([]curve.G1{a}, []curve.G2{b})
	if err != nil {
		t.Fatal(err)
	}
	wrongTarget.Mul(&wrongTarget, &wrongTarget)

	tuple, err := FromPair([]curve.G1{a}, []curve.G2{b}, wrongTarget)
	if err != nil {
		t.Fatal(err)
	}
	if tuple.Verify() {
		t.Fatal("mismatched target was accepted")
	}
}

func TestMergeIsOrderIndependentAndInvalidIsContagious(t *testing.T) {
	g, h := curve.Generators()
	a := curve.ScalarMulG1(&g, ptrScalar(scalar(2)))
	b := curve.ScalarMulG2(&h, ptrScalar(scalar(4)))
	target, err := curve.Pair([]curve.G1{a}, []curve.G2{b})
	if err != nil {
		t.Fatal(err)
	}
	tuple, err := FromPair([]curve.G1{a}, []curve.G2{b}, target)
	if err != nil {
		t.Fatal(err)
	}

	var one curve.GT
	one.SetOne()
	identity := NewTuple(one, one)

	if !tuple.Merge(identity).Verify() {
		t.Fatal("merging with identity tuple should preserve validity")
	}
	if !identity.Merge(tuple).Verify() {
		t.Fatal("merge should be commutative")
	}

	if tuple.Merge(Invalid()).Verify() {
		t.Fatal("merging with Invalid() must stay invalid")
	}
}
