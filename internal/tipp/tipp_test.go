package tipp

import (
	"math/big"
	"testing"

	"github.com/crate-crypto/go-groth16-aggregate/internal/commitment"
	"github.com/crate-crypto/go-groth16-aggregate/internal/curve"
	"github.com/crate-crypto/go-groth16-aggregate/internal/srs"
)

func scalar(v int64) curve.Scalar {
	var s curve.Scalar
	s.SetBigInt(big.NewInt(v))
	return s
}

func setup(t *testing.T, n int) (*srs.SRS, *srs.VerifierSRS, []curve.G1, []curve.G2) {
	t.Helper()
	precomp, vsrs, err := srs.Generate(n, scalar(5), scalar(8))
	if err != nil {
		t.Fatal(err)
	}
	g, h := curve.Generators()
	a := make([]curve.G1, n)
	b := make([]curve.G2, n)
	for i := 0; i < n; i++ {
		s := scalar(int64(i + 2))
		a[i] = curve.ScalarMulG1(&g, &s)
		b[i] = curve.ScalarMulG2(&h, &s)
	}
	return precomp, vsrs, a, b
}

func TestProveVerifyRoundTrip(t *testing.T) {
	n := 4
	precomp, vsrs, a, b := setup(t, n)

	var rShift curve.Scalar
	rShift.SetOne()

	comAB, err := commitment.PairCommit(precomp.VKey, precomp.WKey, a, b)
	if err != nil {
		t.Fatal(err)
	}
	ipAB, err := curve.Pair(a, b)
	if err != nil {
		t.Fatal(err)
	}

	proof, err := Prove(precomp, a, b, precomp.VKey, precomp.WKey, rShift)
	if err != nil {
		t.Fatal(err)
	}

	tuple, err := Verify(vsrs, comAB, ipAB, proof, rShift)
	if err != nil {
		t.Fatal(err)
	}
	if !tuple.Verify() {
		t.Fatal("genuine TIPP proof rejected")
	}
}

func TestVerifyRejectsTamperedIPAB(t *testing.T) {
	n := 4
	precomp, vsrs, a, b := setup(t, n)

	var rShift curve.Scalar
	rShift.SetOne()

	comAB, err := commitment.PairCommit(precomp.VKey, precomp.WKey, a, b)
	if err != nil {
		t.Fatal(err)
	}
	ipAB, err := curve.Pair(a, b)
	if err != nil {
		t.Fatal(err)
	}

	proof, err := Prove(precomp, a, b, precomp.VKey, precomp.WKey, rShift)
	if err != nil {
		t.Fatal(err)
	}

	tamperedIPAB := ipAB
	tamperedIPAB.Mul(&tamperedIPAB, &tamperedIPAB)

	tuple, err := Verify(vsrs, comAB, tamperedIPAB, proof, rShift)
	if err != nil {
		t.Fatal(err)
	}
	if tuple.Verify() {
		t.Fatal("tampered ip_ab was accepted")
	}
}

func TestRejectsNonPowerOfTwoBatch(t *testing.T) {
	n := 3
	precomp, _, a, b := setup(t, n)
	var rShift curve.Scalar
	rShift.SetOne()
	if _, err := Prove(precomp, a, b, precomp.VKey, precomp.WKey, rShift); err == nil {
		t.Fatal("expected an error for a non-power-of-two batch size")
	}
}
