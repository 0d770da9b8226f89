// Package pairing implements the pairing accumulator (spec Component I):
// batching many (miller-loop output, target constant) equations into a
// single final exponentiation. Merging is multiplicative in Gt in both
// slots, so merge order never matters — only the seed and the invalid
// sentinel are meaningful (spec §5 "ordering guarantees").
package pairing

import (
	"github.com/crate-crypto/go-groth16-aggregate/internal/curve"
)

// Tuple holds one accumulated (miller-loop output, target constant) pair.
type Tuple struct {
	miller   curve.GT
	constant curve.GT
	invalid  bool
}

// NewTuple seeds an accumulator with an already-computed Miller-loop output
// and the target constant it is claimed to equal.
func NewTuple(miller, constant curve.GT) Tuple {
	return Tuple{miller: miller, constant: constant}
}

// FromPair seeds an accumulator from raw point slices, computing their
// Miller loop (but not yet the final exponentiation).
func FromPair(a []curve.G1, b []curve.G2, constant curve.GT) (Tuple, error) {
	m, err := curve.MillerLoop(a, b)
	if err != nil {
		return Tuple{}, err
	}
	return NewTuple(m, constant), nil
}

// Invalid returns a sentinel tuple that forces Verify to return false
// regardless of any further merges.
func Invalid() Tuple {
	return Tuple{invalid: true}
}

// Merge combines two accumulators: miller *= other.miller, constant *=
// other.constant. An invalid sentinel is contagious.
func (t Tuple) Merge(other Tuple) Tuple {
	if t.invalid || other.invalid {
		return Tuple{invalid: true}
	}
	out := Tuple{}
	out.miller.Mul(&t.miller, &other.miller)
	out.constant.Mul(&t.constant, &other.constant)
	return out
}

// Verify performs the single final exponentiation and checks the result
// equals the accumulated constant.
func (t Tuple) Verify() bool {
	if t.invalid {
		return false
	}
	result := curve.FinalExponentiation(&t.miller)
	return result.Equal(&t.constant)
}
