package groth16aggregate

import (
	"math/big"
	"testing"

	"github.com/crate-crypto/go-groth16-aggregate/internal/curve"
	"github.com/crate-crypto/go-groth16-aggregate/internal/srs"
)

func scalar(v int64) curve.Scalar {
	var s curve.Scalar
	s.SetBigInt(big.NewInt(v))
	return s
}

// toyRelation builds a self-consistent Groth16 verifying key and n proofs
// that genuinely satisfy e(A,B) = e(alpha,beta)·e(vk_x,gamma)·e(C,delta),
// one public input per proof, by picking every secret exponent ourselves
// and solving the base equation in the scalar field: a·b = alpha·beta +
// vk_x·gamma + c·delta. This exercises the real aggregate verification
// equation without needing an R1CS circuit and an external prover.
func toyRelation(t *testing.T, n int) (*PreparedVerifyingKey, []Groth16Proof, [][]curve.Scalar) {
	t.Helper()
	return toyRelationWithSecrets(t, n, 101, 103, 107, 109, 3, 5)
}

// toyRelationWithSecrets is the parameterized form of toyRelation, used by
// the reproducible scenario table in aggregate_vectors_test.go so that each
// scenario can pick its own secret exponents without duplicating the
// relation-construction logic.
func toyRelationWithSecrets(t *testing.T, n int, alphaV, betaV, gammaV, deltaV, ic0V, ic1V int64) (*PreparedVerifyingKey, []Groth16Proof, [][]curve.Scalar) {
	t.Helper()
	g, h := curve.Generators()

	alpha := scalar(alphaV)
	beta := scalar(betaV)
	gamma := scalar(gammaV)
	delta := scalar(deltaV)
	ic0 := scalar(ic0V)
	ic1 := scalar(ic1V)

	var deltaInv curve.Scalar
	deltaInv.Inverse(&delta)

	var alphaBeta curve.Scalar
	alphaBeta.Mul(&alpha, &beta)

	pvk := &PreparedVerifyingKey{
		AlphaG1: curve.ScalarMulG1(&g, &alpha),
		BetaG2:  curve.ScalarMulG2(&h, &beta),
		GammaG2: curve.ScalarMulG2(&h, &gamma),
		DeltaG2: curve.ScalarMulG2(&h, &delta),
		IC:      []curve.G1{curve.ScalarMulG1(&g, &ic0), curve.ScalarMulG1(&g, &ic1)},
	}

	proofs := make([]Groth16Proof, n)
	publicInputs := make([][]curve.Scalar, n)
	for i := 0; i < n; i++ {
		x := scalar(int64(i + 1))
		a := scalar(int64(1000 + i))
		b := scalar(int64(2000 + i*3))

		var vkx curve.Scalar
		vkx.Mul(&x, &ic1)
		vkx.Add(&vkx, &ic0)
		var vkxGamma curve.Scalar
		vkxGamma.Mul(&vkx, &gamma)

		var ab curve.Scalar
		ab.Mul(&a, &b)
		var numerator curve.Scalar
		numerator.Sub(&ab, &alphaBeta)
		numerator.Sub(&numerator, &vkxGamma)
		var c curve.Scalar
		c.Mul(&numerator, &deltaInv)

		proofs[i] = Groth16Proof{
			A: curve.ScalarMulG1(&g, &a),
			B: curve.ScalarMulG2(&h, &b),
			C: curve.ScalarMulG1(&g, &c),
		}
		publicInputs[i] = []curve.Scalar{x}
	}

	return pvk, proofs, publicInputs
}

func genAggSRS(t *testing.T, n int) (*srs.SRS, *srs.VerifierSRS) {
	t.Helper()
	return genAggSRSWithSecrets(t, n, 211, 223)
}

func genAggSRSWithSecrets(t *testing.T, n int, alphaV, betaV int64) (*srs.SRS, *srs.VerifierSRS) {
	t.Helper()
	precomp, vsrs, err := srs.Generate(n, scalar(alphaV), scalar(betaV))
	if err != nil {
		t.Fatal(err)
	}
	return precomp, vsrs
}

func TestAggregateAndVerifyRoundTrip(t *testing.T) {
	for _, n := range []int{2, 4, 8, 16} {
		n := n
		t.Run("", func(t *testing.T) {
			pvk, proofs, publicInputs := toyRelation(t, n)
			precomp, vsrs := genAggSRS(t, n)

			aggProof, err := AggregateProofs(precomp, proofs)
			if err != nil {
				t.Fatal(err)
			}

			ok, err := VerifyAggregateProof(vsrs, pvk, publicInputs, aggProof)
			if err != nil {
				t.Fatal(err)
			}
			if !ok {
				t.Fatalf("n=%d: genuine aggregate proof rejected", n)
			}
		})
	}
}

func TestAggregateRejectsSingleProof(t *testing.T) {
	_, proofs, _ := toyRelation(t, 2)
	precomp, _, err := srs.Generate(1, scalar(5), scalar(7))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := AggregateProofs(precomp, proofs[:1]); err == nil {
		t.Fatal("expected an error aggregating a single proof")
	}
}

func TestVerifyRejectsWrongPublicInput(t *testing.T) {
	pvk, proofs, publicInputs := toyRelation(t, 4)
	precomp, vsrs := genAggSRS(t, 4)

	aggProof, err := AggregateProofs(precomp, proofs)
	if err != nil {
		t.Fatal(err)
	}

	publicInputs[0][0] = scalar(99999)
	ok, err := VerifyAggregateProof(vsrs, pvk, publicInputs, aggProof)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("verification accepted a mutated public input")
	}
}

func TestVerifyRejectsTamperedAggC(t *testing.T) {
	pvk, proofs, publicInputs := toyRelation(t, 4)
	precomp, vsrs := genAggSRS(t, 4)

	aggProof, err := AggregateProofs(precomp, proofs)
	if err != nil {
		t.Fatal(err)
	}

	g, _ := curve.Generators()
	var tamperedJac curve.G1Jac
	tamperedJac.FromAffine(&aggProof.AggC)
	var gJac curve.G1Jac
	gJac.FromAffine(&g)
	tamperedJac.AddAssign(&gJac)
	aggProof.AggC.FromJacobian(&tamperedJac)

	ok, err := VerifyAggregateProof(vsrs, pvk, publicInputs, aggProof)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("verification accepted a tampered agg_c")
	}
}

func TestVerifyAcceptsMatchingReordering(t *testing.T) {
	pvk, proofs, publicInputs := toyRelation(t, 4)
	precomp, vsrs := genAggSRS(t, 4)

	reordered := []Groth16Proof{proofs[2], proofs[0], proofs[3], proofs[1]}
	reorderedInputs := [][]curve.Scalar{publicInputs[2], publicInputs[0], publicInputs[3], publicInputs[1]}

	aggProof, err := AggregateProofs(precomp, reordered)
	if err != nil {
		t.Fatal(err)
	}
	ok, err := VerifyAggregateProof(vsrs, pvk, reorderedInputs, aggProof)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("matching reordering of proofs and public inputs should still verify")
	}
}

func TestAggregateProofsBytesIsDeterministic(t *testing.T) {
	_, proofs, _ := toyRelation(t, 4)
	precomp, _ := genAggSRS(t, 4)

	p1, err := AggregateProofs(precomp, proofs)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := AggregateProofs(precomp, proofs)
	if err != nil {
		t.Fatal(err)
	}

	b1, b2 := p1.Bytes(), p2.Bytes()
	if len(b1) != len(b2) {
		t.Fatalf("serialized lengths differ: %d vs %d", len(b1), len(b2))
	}
	for i := range b1 {
		if b1[i] != b2[i] {
			t.Fatal("AggregateProofs is not deterministic over identical inputs")
		}
	}
}
