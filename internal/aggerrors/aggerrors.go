// Package aggerrors holds the flat sentinel error values shared by every
// internal package and re-exported at the module root (spec §7: "Error
// kinds (flat, not exceptions)"). Centralizing them here means a single
// `errors.Is` comparison works whether the failure surfaced inside
// commitment folding, KZG opening, or the top-level entry points.
package aggerrors

import "errors"

var (
	// ErrMalformedSRS is returned when an SRS vector length disagrees
	// with the expected batch size.
	ErrMalformedSRS = errors.New("groth16aggregate: SRS vector length disagrees with batch size")
	// ErrMalformedProofs is returned when the batch size is not a power
	// of two, or when parallel input vectors disagree in length.
	ErrMalformedProofs = errors.New("groth16aggregate: batch size is not a power of two, or input vectors disagree in length")
	// ErrMalformedVerifyingKey is returned when a public-input vector's
	// length is inconsistent with the prepared verifying key's IC.
	ErrMalformedVerifyingKey = errors.New("groth16aggregate: public input length does not match prepared verifying key")
	// ErrUnexpectedIdentity flags a subverted CRS: delta_g1 or delta_g2
	// is the group identity. Used only by the underlying Groth16 prover
	// path, carried here so the sentinel lives in one place.
	ErrUnexpectedIdentity = errors.New("groth16aggregate: delta is the identity element")
)
