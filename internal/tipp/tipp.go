// Package tipp implements the GIPA recursion for the Target-Inner-Product
// Pairing argument (spec Component D): it halves two paired vectors A∈G1ⁿ,
// B∈G2ⁿ together with their commitment keys v,w over log n rounds, then
// opens the two collapsed keys via package kzgopen.
package tipp

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

// KeyPairG1 is a collapsed (w1, w2) commitment-key leaf.
type KeyPairG1 struct{ First, Second curve.G1 }

// CommPair is the (left, right) pair-commitment cross term of one round.
type CommPair struct{ L, R commitment.Output }

// ZPair is the (left, right) cross inner-product term of one round.
type ZPair struct{ L, R curve.GT }

// GipaProof is the round-by-round transcript produced by the TIPP
// recursion.
type GipaProof struct {
	Comms     []CommPair
	ZVec      []ZPair
	FinalA    curve.G1
	FinalB    curve.G2
	FinalVKey KeyPairG2
	FinalWKey KeyPairG1
}

// Proof bundles the GIPA transcript with the two KZG openings of its
// collapsed commitment keys.
type Proof struct {
	Gipa        GipaProof
	VKeyOpening kzgopen.OpeningG2
	WKeyOpening kzgopen.OpeningG1
}

func deriveRoundChallenge(prev curve.Scalar, cL, cR commitment.Output, zL, zR curve.GT) (c, cInv curve.Scalar) {
	return fiatshamir.DeriveChallenge(fiatshamir.DomainGipa, prev,
		curve.GTBytes(cL.T), curve.GTBytes(cL.U),
		curve.GTBytes(cR.T), curve.GTBytes(cR.U),
		curve.GTBytes(zR), curve.GTBytes(zL),
	)
}

func gipa(a []curve.G1, b []curve.G2, vkey commitment.VKey, wkey commitment.WKey) (GipaProof, []curve.Scalar, []curve.Scalar, error) {
	mA := append([]curve.G1(nil), a...)
	mB := append([]curve.G2(nil), b...)

	var comms []CommPair
	var zVec []ZPair
	var challenges, challengesInv []curve.Scalar

	for len(mA) > 1 {
		split := len(mA) / 2
		aLeft, aRight := mA[:split], mA[split:]
		bLeft, bRight := mB[:split], mB[split:]
		vkLeft, vkRight := vkey.Split(split)
		wkLeft, wkRight := wkey.Split(split)

		cL, err := commitment.PairCommit(vkLeft, wkRight, aRight, bLeft)
		if err != nil {
			return GipaProof{}, nil, nil, err
		}
		cR, err := commitment.PairCommit(vkRight, wkLeft, aLeft, bRight)
		if err != nil {
			return GipaProof{}, nil, nil, err
		}
		zL, err := curve.Pair(aRight, bLeft)
		if err != nil {
			return GipaProof{}, nil, nil, err
		}
		zR, err := curve.Pair(aLeft, bRight)
		if err != nil {
			return GipaProof{}, nil, nil, err
		}

		var prev curve.Scalar
		if len(challenges) > 0 {
			prev = challenges[len(challenges)-1]
		}
		c, cInv := deriveRoundChallenge(prev, cL, cR, zL, zR)

		mA = commitment.FoldG1(aLeft, aRight, c)
		mB = commitment.FoldG2(bLeft, bRight, cInv)
		vkey = commitment.CompressVKey(vkLeft, vkRight, cInv)
		wkey = commitment.CompressWKey(wkLeft, wkRight, c)

		comms = append(comms, CommPair{L: cL, R: cR})
		zVec = append(zVec, ZPair{L: zL, R: zR})
		challenges = append(challenges, c)
		challengesInv = append(challengesInv, cInv)
	}

	proof := GipaProof{
		Comms:     comms,
		ZVec:      zVec,
		FinalA:    mA[0],
		FinalB:    mB[0],
		FinalVKey: KeyPairG2{First: vkey.A[0], Second: vkey.B[0]},
		FinalWKey: KeyPairG1{First: wkey.A[0], Second: wkey.B[0]},
	}
	return proof, challenges, challengesInv, nil
}

// Prove runs the TIPP GIPA recursion over (a,b) with keys (vkey,wkey) — in
// the aggregation scheme a is already rescaled by r and vkey by r⁻¹ — and
// opens the two collapsed commitment keys. rShift is the outer batching
// randomness r; the v-arm polynomial is opened with shift rShift⁻¹, and the
// w-arm is always opened with shift 1.
func Prove(precomp *srs.SRS, a []curve.G1, b []curve.G2, vkey commitment.VKey, wkey commitment.WKey, rShift curve.Scalar) (*Proof, error) {
	n := len(a)
	if n == 0 || n&(n-1) != 0 || len(b) != n {
		return nil, aggerrors.ErrMalformedProofs
	}

	proof, challenges, challengesInv, err := gipa(a, b, vkey, wkey)
	if err != nil {
		return nil, err
	}

	// Reverse both challenge lists before building the KZG polynomial, per
	// spec §9: coefficient x_{ℓ-j} must align with power (rX)^{2^j}.
	reverse(challenges)
	reverse(challengesInv)

	c, _ := fiatshamir.DeriveChallenge(fiatshamir.DomainKZG, challenges[0],
		curve.G2Bytes(proof.FinalVKey.First), curve.G2Bytes(proof.FinalVKey.Second),
		curve.G1Bytes(proof.FinalWKey.First), curve.G1Bytes(proof.FinalWKey.Second),
	)

	var rInv curve.Scalar
	rInv.Inverse(&rShift)

	vOpening, err := kzgopen.ProveV(challengesInv, rInv, c, precomp.VKey.A, precomp.VKey.B)
	if err != nil {
		return nil, err
	}
	var one curve.Scalar
	one.SetOne()
	wOpening, err := kzgopen.ProveW(challenges, one, c, precomp.GAlphaPowers, precomp.GBetaPowers)
	if err != nil {
		return nil, err
	}

	return &Proof{Gipa: proof, VKeyOpening: vOpening, WKeyOpening: wOpening}, nil
}

func reverse(s []curve.Scalar) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Verify replays the GIPA challenges in the scalar field only, checks the
// two KZG openings, and returns a single pairing accumulator contribution
// encoding the base TIPP equation plus both KZG checks.
func Verify(vsrs *srs.VerifierSRS, commAB commitment.Output, ipAB curve.GT, proof *Proof, rShift curve.Scalar) (pairing.Tuple, error) {
	t, u := commAB.T, commAB.U
	z := ipAB

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
		z.Mul(&z, ptr(curve.ExpGT(zRound.L, c)))
		z.Mul(&z, ptr(curve.ExpGT(zRound.R, cInv)))
	}

	reverse(challenges)
	reverse(challengesInv)

	fvkey := proof.Gipa.FinalVKey
	fwkey := proof.Gipa.FinalWKey

	c, _ := fiatshamir.DeriveChallenge(fiatshamir.DomainKZG, challenges[0],
		curve.G2Bytes(fvkey.First), curve.G2Bytes(fvkey.Second),
		curve.G1Bytes(fwkey.First), curve.G1Bytes(fwkey.Second),
	)

	var rInv curve.Scalar
	rInv.Inverse(&rShift)

	vTuple, err := kzgopen.VerifyV(vsrs, kzgopen.OpeningG2{Alpha: fvkey.First, Beta: fvkey.Second}, proof.VKeyOpening, challengesInv, rInv, c)
	if err != nil {
		return pairing.Tuple{}, err
	}
	var one curve.Scalar
	one.SetOne()
	wTuple, err := kzgopen.VerifyW(vsrs, kzgopen.OpeningG1{Alpha: fwkey.First, Beta: fwkey.Second}, proof.WKeyOpening, challenges, one, c)
	if err != nil {
		return pairing.Tuple{}, err
	}

	// Base TIPP equation: e(A*,B*)·e(A*,v1*)·e(w1*,B*)·e(A*,v2*)·e(w2*,B*),
	// encoded as 5 Miller loops whose product must equal Z*·T*·U*.
	left := []curve.G1{proof.Gipa.FinalA, proof.Gipa.FinalA, fwkey.First, proof.Gipa.FinalA, fwkey.Second}
	right := []curve.G2{proof.Gipa.FinalB, fvkey.First, proof.Gipa.FinalB, fvkey.Second, proof.Gipa.FinalB}
	miller, err := curve.MillerLoop(left, right)
	if err != nil {
		return pairing.Tuple{}, err
	}
	var target curve.GT
	target.Mul(&z, &t)
	target.Mul(&target, &u)

	checkTuple := pairing.NewTuple(miller, target)

	merged := vTuple.Merge(wTuple).Merge(checkTuple)
	return merged, nil
}

func ptr(x curve.GT) *curve.GT { return &x }
