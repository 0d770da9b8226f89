package commitment

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

func toyKeys(n int) (VKey, WKey) {
	_, h := curve.Generators()
	g, _ := curve.Generators()
	vkey := VKey{A: make([]curve.G2, n), B: make([]curve.G2, n)}
	wkey := WKey{A: make([]curve.G1, n), B: make([]curve.G1, n)}
	for i := 0; i < n; i++ {
		s := scalar(int64(i + 2))
		vkey.A[i] = curve.ScalarMulG2(&h, &s)
		vkey.B[i] = curve.ScalarMulG2(&h, &s)
		wkey.A[i] = curve.ScalarMulG1(&g, &s)
		wkey.B[i] = curve.ScalarMulG1(&g, &s)
	}
	return vkey, wkey
}

// TestScaleIsUndoneByInverse confirms the rescaling invariant the
// aggregation scheme relies on: committing to A rescaled by r under v
// rescaled by r⁻¹ reproduces the original commitment to A under v.
func TestScaleIsUndoneByInverse(t *testing.T) {
	n := 4
	vkey, wkey := toyKeys(n)
	g, _ := curve.Generators()

	a := make([]curve.G1, n)
	b := make([]curve.G2, n)
	_, h := curve.Generators()
	for i := 0; i < n; i++ {
		s := scalar(int64(i + 1))
		a[i] = curve.ScalarMulG1(&g, &s)
		b[i] = curve.ScalarMulG2(&h, &s)
	}

	want, err := PairCommit(vkey, wkey, a, b)
	if err != nil {
		t.Fatal(err)
	}

	r := scalar(9)
	rVec := make([]curve.Scalar, n)
	rInvVec := make([]curve.Scalar, n)
	rVec[0].SetOne()
	var rInv curve.Scalar
	rInv.Inverse(&r)
	rInvVec[0].SetOne()
	for i := 1; i < n; i++ {
		rVec[i].Mul(&rVec[i-1], &r)
		rInvVec[i].Mul(&rInvVec[i-1], &rInv)
	}

	aR := make([]curve.G1, n)
	for i := range a {
		aR[i] = curve.ScalarMulG1(&a[i], &rVec[i])
	}
	vkeyRInv, err := vkey.Scale(rInvVec)
	if err != nil {
		t.Fatal(err)
	}

	got, err := PairCommit(vkeyRInv, wkey, aR, b)
	if err != nil {
		t.Fatal(err)
	}

	if !got.T.Equal(&want.T) || !got.U.Equal(&want.U) {
		t.Fatal("rescaled commitment does not match original")
	}
}

func TestSplitCompressRoundTrip(t *testing.T) {
	n := 4
	vkey, _ := toyKeys(n)
	left, right := vkey.Split(n / 2)

	c := scalar(3)
	folded := CompressVKey(left, right, c)
	if folded.Len() != n/2 {
		t.Fatalf("expected folded length %d, got %d", n/2, folded.Len())
	}

	for i := 0; i < n/2; i++ {
		scaled := curve.ScalarMulG2(&right.A[i], &c)
		var want curve.G2
		want.Add(&left.A[i], &scaled)
		if !folded.A[i].Equal(&want) {
			t.Fatalf("fold mismatch at index %d", i)
		}
	}
}

func TestPairCommitRejectsLengthMismatch(t *testing.T) {
	vkey, wkey := toyKeys(4)
	_, err := PairCommit(vkey, wkey, make([]curve.G1, 3), make([]curve.G2, 4))
	if err != ErrLengthMismatch {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}
