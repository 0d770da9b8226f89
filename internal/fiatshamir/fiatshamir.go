// Package fiatshamir implements the deterministic challenge-derivation
// discipline shared by the prover and the verifier (spec Component J). Both
// sides call exactly the same function over exactly the same serialized
// inputs, so the derived challenges never diverge.
package fiatshamir

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/crate-crypto/go-groth16-aggregate/internal/curve"
)

// Domain separation tags for the distinct challenge draws made across the
// system. A single-byte tag is mixed into every hash so that the outer
// batching challenge, GIPA round challenges, and KZG evaluation points can
// never collide even if their serialized field inputs happened to agree.
const (
	DomainBatching byte = 'r'
	DomainGipa     byte = 'g'
	DomainKZG      byte = 'z'
)

// DeriveChallenge derives a Fiat-Shamir challenge pair from a domain tag,
// the previous transcript scalar (zero for the first draw), and a list of
// serialized field elements to absorb. It retries with an incremented
// 64-bit nonce until the hash output reduces to a non-zero field element,
// per spec invariant 4 ("challenges are non-zero, retried on hash
// failure").
//
// The returned pair is already challenge/inverse-swapped per the wire
// contract documented in spec §9: the 128-bit hash-derived value (narrow)
// is returned as cInv, destined for the G2 side of a GIPA fold, and its
// full-width field inverse is returned as c, destined for the G1 side.
func DeriveChallenge(domain byte, prev curve.Scalar, fields ...[]byte) (c, cInv curve.Scalar) {
	var nonce uint64
	for {
		h := sha256.New()
		h.Write([]byte{domain})
		prevBytes := prev.Bytes()
		h.Write(prevBytes[:])
		for _, f := range fields {
			h.Write(f)
		}
		var nonceBuf [8]byte
		binary.BigEndian.PutUint64(nonceBuf[:], nonce)
		h.Write(nonceBuf[:])
		digest := h.Sum(nil)

		// Place the low 64 bits of the 16-byte digest prefix into limb 0
		// and the high 64 bits into limb 1.
		lo := binary.BigEndian.Uint64(digest[8:16])
		hi := binary.BigEndian.Uint64(digest[0:8])

		var two64 curve.Scalar
		two64.SetUint64(1 << 32)
		two64.Mul(&two64, &two64) // 2^64

		var raw curve.Scalar
		raw.SetUint64(hi)
		raw.Mul(&raw, &two64)
		var loElem curve.Scalar
		loElem.SetUint64(lo)
		raw.Add(&raw, &loElem)

		if raw.IsZero() {
			nonce++
			continue
		}

		var rawInv curve.Scalar
		rawInv.Inverse(&raw)

		return rawInv, raw
	}
}
