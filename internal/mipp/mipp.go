// Package mipp implements the GIPA recursion for the Multi-exponentiation
// Inner-Product argument (spec Component E): it halves a G1 vector C
// against a scalar vector r, committed under v only (no w), then opens the
// collapsed v key via package kzgopen.
package mipp

import (
	"github.com/crate-crypto/go-groth16-aggregate/internal/aggerrors"
	"github.com/crate-crypto/go-groth16-aggregate/internal/commitment"
	"github.com/crate-crypto/go-groth16-aggregate/internal/curve"
	"github.com/crate-crypto/go-groth16-aggregate/internal/fiatshamir"
	"github.com/crate-crypto/go-groth16-aggregate/internal/kzgopen"
	"github.com/crate-crypto/go-groth16-aggregate/internal/pairing"
	"github.com/crate-crypto/go-groth16-aggregate/internal/srs"
)

// KeyPairG2 is a collapsed (v1, v2) commitment-key leaf.
type KeyPairG2 struct{ First, Second curve.G2 }

// CommPair is the (left, right) single-commitment cross term of one round.
type CommPair struct{ L, R commitment.Output }

// ZPair is the (left, right) cross multi-exponentiation term of one round.
type ZPair struct{ L, R curve.G1 }

// GipaProof is the round-by-round transcript produced by the MIPP
// recursion.
type GipaProof struct {
	Comms     []CommPair
	ZVec      []ZPair
	FinalC    curve.G1
	FinalR    curve.Scalar
	FinalVKey KeyPairG2
}

// Proof bundles the GIPA transcript with the KZG opening of its collapsed
// v key.
type Proof struct {
	Gipa        GipaProof
	VKeyOpening kzgopen.OpeningG2
}

func deriveRoundChallenge(prev curve.Scalar, cL, cR commitment.Output, zL, zR curve.G1) (c, cInv curve.Scalar) {
	return fiatshamir.DeriveChallenge(fiatshamir.DomainGipa, prev,
		curve.GTBytes(cR.T), curve.GTBytes(cR.U),
		curve.GTBytes(cL.T), curve.GTBytes(cL.U),
		curve.G1Bytes(zR), curve.G1Bytes(zL),
	)
}

func gipa(c []curve.G1, r []curve.Scalar, vkey commitment.VKey) (GipaProof, []curve.Scalar, []curve.Scalar, error) {
	mC := append([]curve.G1(nil), c...)
	mR := append([]curve.Scalar(nil), r...)

	var comms []CommPair
	var zVec []ZPair
	var challenges, challengesInv []curve.Scalar

	for len(mC) > 1 {
		split := len(mC) / 2
		cLeft, cRight := mC[:split], mC[split:]
		rLeft, rRight := mR[:split], mR[split:]
		vkLeft, vkRight := vkey.Split(split)

		zR, err := curve.MultiExpG1(cLeft, rRight)
		if err != nil {
			return GipaProof{}, nil, nil, err
		}
		zL, err := curve.MultiExpG1(cRight, rLeft)
		if err != nil {
			return GipaProof{}, nil, nil, err
		}
		tuR, err := commitment.SingleCommit(vkRight, cLeft)
		if err != nil {
			return GipaProof{}, nil, nil, err
		}
		tuL, err := commitment.SingleCommit(vkLeft, cRight)
		if err != nil {
			return GipaProof{}, nil, nil, err
		}

		var prev curve.Scalar
		if len(challenges) > 0 {
			prev = challenges[len(challenges)-1]
		}
		x, xInv := deriveRoundChallenge(prev, tuL, tuR, zL, zR)

		mC = commitment.FoldG1(cLeft, cRight, x)
		mR = commitment.FoldScalar(rLeft, rRight, xInv)
		vkey = commitment.CompressVKey(vkLeft, vkRight, xInv)

		comms = append(comms, CommPair{L: tuL, R: tuR})
		zVec = append(zVec, ZPair{L: zL, R: zR})
		challenges = append(challenges, x)
		challengesInv = append(challengesInv, xInv)
	}

	proof := GipaProof{
		Comms:     comms,
		ZVec:      zVec,
		FinalC:    mC[0],
		FinalR:    mR[0],
		FinalVKey: KeyPairG2{First: vkey.A[0], Second: vkey.B[0]},
	}
	return proof, challenges, challengesInv, nil
}

// Prove runs the MIPP GIPA recursion over (c,r) with key vkey and opens the
// collapsed v key. vkey is not rescaled by the outer batching randomness —
// MIPP commits to C directly.
func Prove(precomp *srs.SRS, c []curve.G1, r []curve.Scalar, vkey commitment.VKey) (*Proof, error) {
	n := len(c)
	if n == 0 || n&(n-1) != 0 || len(r) != n {
		return nil, aggerrors.ErrMalformedProofs
	}

	proof, _, challengesInv, err := gipa(c, r, vkey)
	if err != nil {
		return nil, err
	}

	reverse(challengesInv)

	var one curve.Scalar
	one.SetOne()

	kc, _ := fiatshamir.DeriveChallenge(fiatshamir.DomainKZG, challengesInv[0],
		curve.G2Bytes(proof.FinalVKey.First), curve.G2Bytes(proof.FinalVKey.Second),
	)

	vOpening, err := kzgopen.ProveV(challengesInv, one, kc, precomp.VKey.A, precomp.VKey.B)
	if err != nil {
		return nil, err
	}

	return &Proof{Gipa: proof, VKeyOpening: vOpening}, nil
}

func reverse(s []curve.Scalar) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Verify replays the GIPA challenges, checks the scalar equation final_c ·
// final_r == Z* (returning the invalid sentinel immediately if it fails,
// per spec §4.H), checks the KZG opening, and returns a single pairing
// accumulator contribution for the base MIPP equation.
func Verify(vsrs *srs.VerifierSRS, comC commitment.Output, aggC curve.G1, proof *Proof) (pairing.Tuple, error) {
	t, u := comC.T, comC.U
	var z curve.G1Jac
	z.FromAffine(&aggC)

	var challenges, challengesInv []curve.Scalar
	for _, round := range proof.Gipa.Comms {
		var prev curve.Scalar
		if len(challenges) > 0 {
			prev = challenges[len(challenges)-1]
		}
		zRound := proof.Gipa.ZVec[len(challenges)]
		c, cInv := deriveRoundChallenge(prev, round.L, round.R, zRound.L, zRound.R)
		challenges = append(challenges, c)
		challengesInv = append(challengesInv, cInv)
	}

	for i, round := range proof.Gipa.Comms {
		c, cInv := challenges[i], challengesInv[i]
		zRound := proof.Gipa.ZVec[i]

		t.Mul(&t, ptr(curve.ExpGT(round.L.T, c)))
		t.Mul(&t, ptr(curve.ExpGT(round.R.T, cInv)))
		u.Mul(&u, ptr(curve.ExpGT(round.L.U, c)))
		u.Mul(&u, ptr(curve.ExpGT(round.R.U, cInv)))

		zLAffine := curve.ScalarMulG1(&zRound.L, &c)
		zRAffine := curve.ScalarMulG1(&zRound.R, &cInv)
		var zL, zR curve.G1Jac
		zL.FromAffine(&zLAffine)
		zR.FromAffine(&zRAffine)
		z.AddAssign(&zL)
		z.AddAssign(&zR)
	}

	reverse(challengesInv)

	finalVKey := proof.Gipa.FinalVKey

	kc, _ := fiatshamir.DeriveChallenge(fiatshamir.DomainKZG, challengesInv[0],
		curve.G2Bytes(finalVKey.First), curve.G2Bytes(finalVKey.Second),
	)

	finalC := proof.Gipa.FinalC
	finalR := proof.Gipa.FinalR
	finalZ := curve.ScalarMulG1(&finalC, &finalR)

	var zAffine curve.G1
	zAffine.FromJacobian(&z)

	if !finalZ.Equal(&zAffine) {
		return pairing.Invalid(), nil
	}

	var one curve.Scalar
	one.SetOne()
	vTuple, err := kzgopen.VerifyV(vsrs, kzgopen.OpeningG2{Alpha: finalVKey.First, Beta: finalVKey.Second}, proof.VKeyOpening, challengesInv, one, kc)
	if err != nil {
		return pairing.Tuple{}, err
	}

	miller, err := curve.MillerLoop([]curve.G1{finalC, finalC}, []curve.G2{finalVKey.First, finalVKey.Second})
	if err != nil {
		return pairing.Tuple{}, err
	}
	var target curve.GT
	target.Mul(&t, &u)
	checkTuple := pairing.NewTuple(miller, target)

	return vTuple.Merge(checkTuple), nil
}

func ptr(x curve.GT) *curve.GT { return &x }
