package groth16aggregate

import (
	"golang.org/x/sync/errgroup"

	"github.com/crate-crypto/go-groth16-aggregate/internal/aggerrors"
	"github.com/crate-crypto/go-groth16-aggregate/internal/curve"
	"github.com/crate-crypto/go-groth16-aggregate/internal/fiatshamir"
	"github.com/crate-crypto/go-groth16-aggregate/internal/mipp"
	"github.com/crate-crypto/go-groth16-aggregate/internal/pairing"
	"github.com/crate-crypto/go-groth16-aggregate/internal/srs"
	"github.com/crate-crypto/go-groth16-aggregate/internal/tipp"
)

// VerifyAggregateProof checks an AggregateProof against n sets of public
// inputs, one per aggregated Groth16 proof (spec Component H). It fans out
// the TIPP check, the MIPP check, and the three fused Groth16 equation
// terms concurrently, then folds every contribution into a single pairing
// accumulator paid for with one final exponentiation.
func VerifyAggregateProof(vsrs *srs.VerifierSRS, pvk *PreparedVerifyingKey, publicInputs [][]curve.Scalar, proof *AggregateProof) (bool, error) {
	n := len(publicInputs)
	if n < 2 || n&(n-1) != 0 {
		return false, aggerrors.ErrMalformedProofs
	}
	if vsrs.N != n {
		return false, aggerrors.ErrMalformedSRS
	}
	k := len(pvk.IC) - 1
	for _, pub := range publicInputs {
		if len(pub) != k {
			return false, aggerrors.ErrMalformedVerifyingKey
		}
	}

	var zero curve.Scalar
	_, r := fiatshamir.DeriveChallenge(fiatshamir.DomainBatching, zero,
		curve.GTBytes(proof.ComAB.T), curve.GTBytes(proof.ComAB.U),
		curve.GTBytes(proof.ComC.T), curve.GTBytes(proof.ComC.U),
	)
	rVec := powers(r, n)

	var rSum curve.Scalar
	for i := range rVec {
		rSum.Add(&rSum, &rVec[i])
	}

	// Σ_i r^i · vk_x_i = r_sum·IC[0] + Σ_j (Σ_i r^i·pub_i[j])·IC[j+1].
	weighted := make([]curve.Scalar, k)
	for j := 0; j < k; j++ {
		for i := 0; i < n; i++ {
			var term curve.Scalar
			term.Mul(&rVec[i], &publicInputs[i][j])
			weighted[j].Add(&weighted[j], &term)
		}
	}

	var tippTuple, mippTuple, p1Tuple, p2Tuple, p3Tuple pairing.Tuple
	var g errgroup.Group
	g.Go(func() error {
		t, err := tipp.Verify(vsrs, proof.ComAB, proof.IPAB, proof.ProofAB, r)
		if err != nil {
			return err
		}
		tippTuple = t
		return nil
	})
	g.Go(func() error {
		t, err := mipp.Verify(vsrs, proof.ComC, proof.AggC, proof.ProofC)
		if err != nil {
			return err
		}
		mippTuple = t
		return nil
	})
	g.Go(func() error {
		alphaRSum := curve.ScalarMulG1(&pvk.AlphaG1, &rSum)
		t, err := pairing.FromPair([]curve.G1{alphaRSum}, []curve.G2{pvk.BetaG2}, one())
		if err != nil {
			return err
		}
		p1Tuple = t
		return nil
	})
	g.Go(func() error {
		vkx, err := curve.MultiExpG1(pvk.IC[1:], weighted)
		if err != nil {
			return err
		}
		icSum := curve.ScalarMulG1(&pvk.IC[0], &rSum)
		var vkxTotal curve.G1
		vkxTotal.Add(&vkx, &icSum)
		t, err := pairing.FromPair([]curve.G1{vkxTotal}, []curve.G2{pvk.GammaG2}, one())
		if err != nil {
			return err
		}
		p2Tuple = t
		return nil
	})
	g.Go(func() error {
		t, err := pairing.FromPair([]curve.G1{proof.AggC}, []curve.G2{pvk.DeltaG2}, one())
		if err != nil {
			return err
		}
		p3Tuple = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return false, err
	}

	acc := pairing.NewTuple(one(), proof.IPAB)
	acc = acc.Merge(tippTuple).Merge(mippTuple).Merge(p1Tuple).Merge(p2Tuple).Merge(p3Tuple)
	return acc.Verify(), nil
}

func one() curve.GT {
	var g curve.GT
	g.SetOne()
	return g
}
