package groth16aggregate

import "github.com/crate-crypto/go-groth16-aggregate/internal/aggerrors"

// Sentinel errors returned by AggregateProofs and VerifyAggregateProof,
// re-exported at the module root so callers never need to import the
// internal package to compare against them with errors.Is.
var (
	ErrMalformedSRS          = aggerrors.ErrMalformedSRS
	ErrMalformedProofs       = aggerrors.ErrMalformedProofs
	ErrMalformedVerifyingKey = aggerrors.ErrMalformedVerifyingKey
	ErrUnexpectedIdentity    = aggerrors.ErrUnexpectedIdentity
)
