// Package crypto holds the primitive types shared by every ledger component:
// transaction and history digests, wallet public keys and the digest
// capability used for history chaining. The concrete hash function lives
// behind the Hasher interface so it can be swapped without touching the
// executor logic.
package crypto

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/suites"
)

// HashSize is the digest width in bytes.
const HashSize = 32

// KeySize is the public key width in bytes.
const KeySize = 32

// Hash identifies a transaction or summarizes a wallet's history chain.
type Hash [HashSize]byte

// PublicKey identifies a wallet. Keys arrive already authenticated; the
// ledger core never verifies signatures itself.
type PublicKey [KeySize]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether the hash is the zero digest, used as the genesis
// value of every history chain.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(h[:])), nil
}

func (h *Hash) UnmarshalText(b []byte) error {
	decoded, err := hex.DecodeString(string(b))
	if err != nil {
		return err
	}
	if len(decoded) != HashSize {
		return fmt.Errorf("invalid hash length %d", len(decoded))
	}
	copy(h[:], decoded)
	return nil
}

func (p PublicKey) String() string {
	return hex.EncodeToString(p[:])
}

// IsZero reports whether the key is the all-zero key. A zero approver on a
// transfer payload means no approver was named.
func (p PublicKey) IsZero() bool {
	return p == PublicKey{}
}

func (p PublicKey) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(p[:])), nil
}

func (p *PublicKey) UnmarshalText(b []byte) error {
	decoded, err := hex.DecodeString(string(b))
	if err != nil {
		return err
	}
	if len(decoded) != KeySize {
		return fmt.Errorf("invalid public key length %d", len(decoded))
	}
	copy(p[:], decoded)
	return nil
}

// Hasher digests byte sequences into a Hash. Implementations must be
// deterministic: the same parts in the same order always yield the same
// digest, which is what makes history replay reproducible across nodes.
// Part boundaries are part of the preimage, so shifting bytes between
// adjacent parts changes the digest.
type Hasher interface {
	Digest(parts ...[]byte) Hash
}

var suite suites.Suite = suites.MustFind("Ed25519")

// SuiteHasher hashes with the configured kyber suite.
type SuiteHasher struct {
	suite suites.Suite
}

// NewSuiteHasher returns a Hasher backed by the named kyber suite.
// It panics if the suite is unknown.
func NewSuiteHasher(name string) SuiteHasher {
	return SuiteHasher{suite: suites.MustFind(name)}
}

func (s SuiteHasher) Digest(parts ...[]byte) Hash {
	h := s.suite.Hash()
	var length [8]byte
	for _, p := range parts {
		// Length-prefix each part so part boundaries cannot collide.
		binary.BigEndian.PutUint64(length[:], uint64(len(p)))
		h.Write(length[:])
		h.Write(p)
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// GenKeyPair derives a fresh key pair on the Ed25519 group, independent of
// the digest suite configured for history chaining: the ledger core never
// interprets keys cryptographically, it only needs 32 distinct bytes per
// identity. The private scalar is returned for callers that simulate the
// authentication collaborator.
func GenKeyPair() (PublicKey, kyber.Scalar, error) {
	priv := suite.Scalar().Pick(suite.RandomStream())
	pub := suite.Point().Mul(priv, nil)
	b, err := pub.MarshalBinary()
	if err != nil {
		return PublicKey{}, nil, err
	}
	if len(b) != KeySize {
		return PublicKey{}, nil, fmt.Errorf("unexpected public key length %d", len(b))
	}
	var pk PublicKey
	copy(pk[:], b)
	return pk, priv, nil
}
