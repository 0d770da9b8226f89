package srs

import "testing"

func TestGenerateProducesConsistentPowers(t *testing.T) {
	n := 4
	alpha := ScalarFromInt64(7)
	beta := ScalarFromInt64(11)

	s, v, err := Generate(n, alpha, beta)
	if err != nil {
		t.Fatal(err)
	}
	if s.N != n || v.N != n {
		t.Fatalf("unexpected N: prover=%d verifier=%d", s.N, v.N)
	}

	// v.GAlpha = g^alpha must agree with s.GAlphaPowers[1] = g^{alpha^1}.
	if v.GAlpha != s.GAlphaPowers[1] {
		t.Fatal("VerifierSRS.GAlpha disagrees with SRS.GAlphaPowers[1]")
	}
	// The w-arm's shifted table must not equal the unshifted table.
	if s.WKey.A[0] == s.GAlphaPowers[0] {
		t.Fatal("shifted and unshifted alpha tables collided unexpectedly")
	}
}

func TestGenerateDifferentSecretsGiveDifferentKeys(t *testing.T) {
	s1, _, err := Generate(4, ScalarFromInt64(2), ScalarFromInt64(3))
	if err != nil {
		t.Fatal(err)
	}
	s2, _, err := Generate(4, ScalarFromInt64(5), ScalarFromInt64(9))
	if err != nil {
		t.Fatal(err)
	}
	if s1.VKey.A[1] == s2.VKey.A[1] {
		t.Fatal("distinct secret exponents produced identical keys")
	}
}
