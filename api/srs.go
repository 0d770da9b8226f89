// Package api provides the JSON loading and well-formedness checks for the
// structured reference string (spec §1 ambient stack: "api does JSON SRS
// loading/validation"), the role the teacher's trusted-setup JSON loader
// plays for the KZG ceremony output. Generating an SRS from a ceremony is
// out of scope; this package only deserializes and validates one that
// already exists.
package api

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/crate-crypto/go-groth16-aggregate/internal/aggerrors"
	"github.com/crate-crypto/go-groth16-aggregate/internal/commitment"
	"github.com/crate-crypto/go-groth16-aggregate/internal/curve"
	"github.com/crate-crypto/go-groth16-aggregate/internal/srs"
)

// JSONSRS is the wire format for a prover-side structured reference string:
// every group element hex-encoded in compressed form. Field names mirror
// the internal/srs.SRS layout directly so no renaming is needed across the
// JSON boundary.
type JSONSRS struct {
	VKeyA        []string `json:"v_key_a"`
	VKeyB        []string `json:"v_key_b"`
	WKeyA        []string `json:"w_key_a"`
	WKeyB        []string `json:"w_key_b"`
	GAlphaPowers []string `json:"g_alpha_powers"`
	GBetaPowers  []string `json:"g_beta_powers"`
}

// JSONVerifierSRS is the wire format for the constant-size verifier SRS.
type JSONVerifierSRS struct {
	G        string `json:"g"`
	H        string `json:"h"`
	GAlpha   string `json:"g_alpha"`
	GBeta    string `json:"g_beta"`
	HAlpha   string `json:"h_alpha"`
	HBeta    string `json:"h_beta"`
	GAlphaN1 string `json:"g_alpha_n1"`
	GBetaN1  string `json:"g_beta_n1"`
}

// ParseJSONSRS unmarshals raw JSON bytes into a JSONSRS without validating
// it; callers must call CheckSRSIsWellFormed before trusting the result.
func ParseJSONSRS(data []byte) (*JSONSRS, error) {
	var out JSONSRS
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckSRSIsWellFormed validates that every array in j has the same
// power-of-two length and that every hex string decodes to a valid,
// non-identity curve point.
func CheckSRSIsWellFormed(j *JSONSRS) error {
	n := len(j.VKeyA)
	if n == 0 || n&(n-1) != 0 {
		return aggerrors.ErrMalformedSRS
	}
	lengths := []int{len(j.VKeyB), len(j.WKeyA), len(j.WKeyB), len(j.GAlphaPowers), len(j.GBetaPowers)}
	for _, l := range lengths {
		if l != n {
			return aggerrors.ErrMalformedSRS
		}
	}

	for _, hexStr := range j.VKeyA {
		if _, err := decodeG2(hexStr); err != nil {
			return err
		}
	}
	for _, hexStr := range j.VKeyB {
		if _, err := decodeG2(hexStr); err != nil {
			return err
		}
	}
	for _, hexStr := range j.WKeyA {
		if _, err := decodeG1(hexStr); err != nil {
			return err
		}
	}
	for _, hexStr := range j.WKeyB {
		if _, err := decodeG1(hexStr); err != nil {
			return err
		}
	}
	for _, hexStr := range j.GAlphaPowers {
		if _, err := decodeG1(hexStr); err != nil {
			return err
		}
	}
	for _, hexStr := range j.GBetaPowers {
		if _, err := decodeG1(hexStr); err != nil {
			return err
		}
	}
	return nil
}

// ToSRS validates j with CheckSRSIsWellFormed and decodes it into the
// internal representation used by AggregateProofs.
func ToSRS(j *JSONSRS) (*srs.SRS, error) {
	if err := CheckSRSIsWellFormed(j); err != nil {
		return nil, err
	}
	n := len(j.VKeyA)

	vkey := commitment.VKey{A: make([]curve.G2, n), B: make([]curve.G2, n)}
	wkey := commitment.WKey{A: make([]curve.G1, n), B: make([]curve.G1, n)}
	gAlpha := make([]curve.G1, n)
	gBeta := make([]curve.G1, n)

	for i := 0; i < n; i++ {
		var err error
		if vkey.A[i], err = decodeG2(j.VKeyA[i]); err != nil {
			return nil, err
		}
		if vkey.B[i], err = decodeG2(j.VKeyB[i]); err != nil {
			return nil, err
		}
		if wkey.A[i], err = decodeG1(j.WKeyA[i]); err != nil {
			return nil, err
		}
		if wkey.B[i], err = decodeG1(j.WKeyB[i]); err != nil {
			return nil, err
		}
		if gAlpha[i], err = decodeG1(j.GAlphaPowers[i]); err != nil {
			return nil, err
		}
		if gBeta[i], err = decodeG1(j.GBetaPowers[i]); err != nil {
			return nil, err
		}
	}

	return &srs.SRS{
		N:            n,
		VKey:         vkey,
		WKey:         wkey,
		GAlphaPowers: gAlpha,
		GBetaPowers:  gBeta,
	}, nil
}

// ToVerifierSRS decodes a JSONVerifierSRS into the internal representation
// used by VerifyAggregateProof.
func ToVerifierSRS(n int, j *JSONVerifierSRS) (*srs.VerifierSRS, error) {
	g, err := decodeG1(j.G)
	if err != nil {
		return nil, err
	}
	h, err := decodeG2(j.H)
	if err != nil {
		return nil, err
	}
	gAlpha, err := decodeG1(j.GAlpha)
	if err != nil {
		return nil, err
	}
	gBeta, err := decodeG1(j.GBeta)
	if err != nil {
		return nil, err
	}
	hAlpha, err := decodeG2(j.HAlpha)
	if err != nil {
		return nil, err
	}
	hBeta, err := decodeG2(j.HBeta)
	if err != nil {
		return nil, err
	}
	gAlphaN1, err := decodeG1(j.GAlphaN1)
	if err != nil {
		return nil, err
	}
	gBetaN1, err := decodeG1(j.GBetaN1)
	if err != nil {
		return nil, err
	}

	return &srs.VerifierSRS{
		N:        n,
		G:        g,
		H:        h,
		GAlpha:   gAlpha,
		GBeta:    gBeta,
		HAlpha:   hAlpha,
		HBeta:    hBeta,
		GAlphaN1: gAlphaN1,
		GBetaN1:  gBetaN1,
	}, nil
}

func decodeG1(s string) (curve.G1, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return curve.G1{}, fmt.Errorf("groth16aggregate/api: decoding g1 hex: %w", err)
	}
	var p curve.G1
	if _, err := p.SetBytes(b); err != nil || p.IsInfinity() {
		return curve.G1{}, aggerrors.ErrMalformedSRS
	}
	return p, nil
}

func decodeG2(s string) (curve.G2, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return curve.G2{}, fmt.Errorf("groth16aggregate/api: decoding g2 hex: %w", err)
	}
	var p curve.G2
	if _, err := p.SetBytes(b); err != nil || p.IsInfinity() {
		return curve.G2{}, aggerrors.ErrMalformedSRS
	}
	return p, nil
}
