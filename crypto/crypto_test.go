package crypto

import (
	"encoding/json"
	"testing"
)

func TestDigest_Deterministic(t *testing.T) {
	h := NewSuiteHasher("Ed25519")

	a := h.Digest([]byte("alpha"), []byte("beta"))
	b := h.Digest([]byte("alpha"), []byte("beta"))
	if a != b {
		t.Fatalf("same input produced different digests: %s vs %s", a, b)
	}
}

func TestDigest_OrderSensitive(t *testing.T) {
	h := NewSuiteHasher("Ed25519")

	a := h.Digest([]byte("alpha"), []byte("beta"))
	b := h.Digest([]byte("beta"), []byte("alpha"))
	if a == b {
		t.Fatal("digest must depend on part order")
	}
}

func TestDigest_PartBoundariesMatter(t *testing.T) {
	h := NewSuiteHasher("Ed25519")

	a := h.Digest([]byte("a"), []byte("bc"))
	b := h.Digest([]byte("ab"), []byte("c"))
	if a == b {
		t.Fatal("shifting bytes across part boundaries must change the digest")
	}
}

func TestGenKeyPair_DistinctKeys(t *testing.T) {
	first, _, err := GenKeyPair()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _, err := GenKeyPair()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Fatal("two generated key pairs share a public key")
	}
	if first.IsZero() || second.IsZero() {
		t.Fatal("generated public key is zero")
	}
}

func TestHash_JSONRoundTrip(t *testing.T) {
	h := NewSuiteHasher("Ed25519")
	orig := h.Digest([]byte("payload"))

	b, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var back Hash
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back != orig {
		t.Fatalf("round trip changed hash: %s vs %s", back, orig)
	}
}

func TestPublicKey_JSONRoundTrip(t *testing.T) {
	pk, _, err := GenKeyPair()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := json.Marshal(pk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var back PublicKey
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back != pk {
		t.Fatalf("round trip changed key: %s vs %s", back, pk)
	}
}
