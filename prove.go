package groth16aggregate

import (
	"golang.org/x/sync/errgroup"

	"github.com/crate-crypto/go-groth16-aggregate/internal/aggerrors"
	"github.com/crate-crypto/go-groth16-aggregate/internal/commitment"
	"github.com/crate-crypto/go-groth16-aggregate/internal/curve"
	"github.com/crate-crypto/go-groth16-aggregate/internal/fiatshamir"
	"github.com/crate-crypto/go-groth16-aggregate/internal/mipp"
	"github.com/crate-crypto/go-groth16-aggregate/internal/srs"
	"github.com/crate-crypto/go-groth16-aggregate/internal/tipp"
)

// AggregateProofs combines n Groth16 proofs attesting to the same relation
// into one AggregateProof (spec Component G). n must be a power of two and
// at least 2; precomp must have been generated for exactly this batch size.
func AggregateProofs(precomp *srs.SRS, proofs []Groth16Proof) (*AggregateProof, error) {
	n := len(proofs)
	if n < 2 || n&(n-1) != 0 {
		return nil, aggerrors.ErrMalformedProofs
	}
	if precomp.N != n {
		return nil, aggerrors.ErrMalformedSRS
	}

	a := make([]curve.G1, n)
	b := make([]curve.G2, n)
	c := make([]curve.G1, n)
	for i, p := range proofs {
		a[i], b[i], c[i] = p.A, p.B, p.C
	}

	comAB, err := commitment.PairCommit(precomp.VKey, precomp.WKey, a, b)
	if err != nil {
		return nil, err
	}
	comC, err := commitment.SingleCommit(precomp.VKey, c)
	if err != nil {
		return nil, err
	}

	// The outer batching randomness ties the n independent Groth16 checks
	// together into the single rescaled inner product the GIPA recursions
	// operate on. It is bound to the two transcript commitments so a prover
	// cannot choose r after seeing how the batch collapses.
	var zero curve.Scalar
	_, r := fiatshamir.DeriveChallenge(fiatshamir.DomainBatching, zero,
		curve.GTBytes(comAB.T), curve.GTBytes(comAB.U),
		curve.GTBytes(comC.T), curve.GTBytes(comC.U),
	)

	rVec := powers(r, n)
	var rInv curve.Scalar
	rInv.Inverse(&r)
	rInvVec := powers(rInv, n)

	aR := make([]curve.G1, n)
	for i := range a {
		aR[i] = curve.ScalarMulG1(&a[i], &rVec[i])
	}
	vkeyRInv, err := precomp.VKey.Scale(rInvVec)
	if err != nil {
		return nil, err
	}

	ipAB, err := curve.Pair(aR, b)
	if err != nil {
		return nil, err
	}
	aggC, err := curve.MultiExpG1(c, rVec)
	if err != nil {
		return nil, err
	}

	var proofAB *tipp.Proof
	var proofC *mipp.Proof
	var g errgroup.Group
	g.Go(func() error {
		p, err := tipp.Prove(precomp, aR, b, vkeyRInv, precomp.WKey, r)
		if err != nil {
			return err
		}
		proofAB = p
		return nil
	})
	g.Go(func() error {
		p, err := mipp.Prove(precomp, c, rVec, precomp.VKey)
		if err != nil {
			return err
		}
		proofC = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &AggregateProof{
		ComAB:   comAB,
		ComC:    comC,
		IPAB:    ipAB,
		AggC:    aggC,
		ProofAB: proofAB,
		ProofC:  proofC,
	}, nil
}

func powers(x curve.Scalar, n int) []curve.Scalar {
	out := make([]curve.Scalar, n)
	out[0].SetOne()
	for i := 1; i < n; i++ {
		out[i].Mul(&out[i-1], &x)
	}
	return out
}
