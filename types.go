// Package groth16aggregate aggregates many Groth16 proofs attesting to the
// same relation into one succinct proof whose verification cost is
// logarithmic in the number of aggregated proofs. The heavy lifting — the
// pair-commitment scheme, the GIPA/TIPP/MIPP recursions, the KZG opening of
// collapsed commitment keys, and the batched pairing check — lives under
// internal/; this file and prove.go/verify.go/errors.go are the public
// surface a host links against.
package groth16aggregate

import (
	"github.com/crate-crypto/go-groth16-aggregate/internal/commitment"
	"github.com/crate-crypto/go-groth16-aggregate/internal/curve"
	"github.com/crate-crypto/go-groth16-aggregate/internal/mipp"
	"github.com/crate-crypto/go-groth16-aggregate/internal/tipp"
)

// Groth16Proof is the triple (A,B,C) produced by an individual Groth16
// prover, satisfying e(A,B) = e(α,β)·e(Σ pubᵢ·ICᵢ,γ)·e(C,δ). Synthesising
// this triple from a circuit is out of scope; it is consumed here as a
// typed input.
type Groth16Proof struct {
	A curve.G1
	B curve.G2
	C curve.G1
}

// PreparedVerifyingKey holds the Groth16 verifying key fields needed by the
// fused aggregate equation, plus the IC vector (one entry per public input
// plus the constant term).
type PreparedVerifyingKey struct {
	AlphaG1 curve.G1
	BetaG2  curve.G2
	GammaG2 curve.G2
	DeltaG2 curve.G2
	IC      []curve.G1
}

// AggregateProof is the constant-size transcript plus the two logarithmic
// GIPA/KZG openings produced by AggregateProofs.
type AggregateProof struct {
	ComAB   commitment.Output
	ComC    commitment.Output
	IPAB    curve.GT
	AggC    curve.G1
	ProofAB *tipp.Proof
	ProofC  *mipp.Proof
}

// Bytes serializes the proof in canonical compressed form, concatenating
// every field in the order named by spec §6: com_ab, com_c, ip_ab, agg_c,
// then for TIPP and MIPP in turn: the log n commitment pairs, the log n
// cross-products, the final leaves, and the KZG openings. The Fiat-Shamir
// derivations hash the individual field encodings directly and do not read
// this byte string.
func (p *AggregateProof) Bytes() []byte {
	var out []byte
	app := func(b []byte) { out = append(out, b...) }

	app(curve.GTBytes(p.ComAB.T))
	app(curve.GTBytes(p.ComAB.U))
	app(curve.GTBytes(p.ComC.T))
	app(curve.GTBytes(p.ComC.U))
	app(curve.GTBytes(p.IPAB))
	app(curve.G1Bytes(p.AggC))

	for _, round := range p.ProofAB.Gipa.Comms {
		app(curve.GTBytes(round.L.T))
		app(curve.GTBytes(round.L.U))
		app(curve.GTBytes(round.R.T))
		app(curve.GTBytes(round.R.U))
	}
	for _, z := range p.ProofAB.Gipa.ZVec {
		app(curve.GTBytes(z.L))
		app(curve.GTBytes(z.R))
	}
	app(curve.G1Bytes(p.ProofAB.Gipa.FinalA))
	app(curve.G2Bytes(p.ProofAB.Gipa.FinalB))
	app(curve.G2Bytes(p.ProofAB.Gipa.FinalVKey.First))
	app(curve.G2Bytes(p.ProofAB.Gipa.FinalVKey.Second))
	app(curve.G1Bytes(p.ProofAB.Gipa.FinalWKey.First))
	app(curve.G1Bytes(p.ProofAB.Gipa.FinalWKey.Second))
	app(curve.G2Bytes(p.ProofAB.VKeyOpening.Alpha))
	app(curve.G2Bytes(p.ProofAB.VKeyOpening.Beta))
	app(curve.G1Bytes(p.ProofAB.WKeyOpening.Alpha))
	app(curve.G1Bytes(p.ProofAB.WKeyOpening.Beta))

	for _, round := range p.ProofC.Gipa.Comms {
		app(curve.GTBytes(round.L.T))
		app(curve.GTBytes(round.L.U))
		app(curve.GTBytes(round.R.T))
		app(curve.GTBytes(round.R.U))
	}
	for _, z := range p.ProofC.Gipa.ZVec {
		app(curve.G1Bytes(z.L))
		app(curve.G1Bytes(z.R))
	}
	app(curve.G1Bytes(p.ProofC.Gipa.FinalC))
	app(curve.ScalarBytes(p.ProofC.Gipa.FinalR))
	app(curve.G2Bytes(p.ProofC.Gipa.FinalVKey.First))
	app(curve.G2Bytes(p.ProofC.Gipa.FinalVKey.Second))
	app(curve.G2Bytes(p.ProofC.VKeyOpening.Alpha))
	app(curve.G2Bytes(p.ProofC.VKeyOpening.Beta))

	return out
}
