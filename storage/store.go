// Package storage defines the boundary with the authenticated key-value
// collaborator the ledger persists into, plus an in-memory implementation
// used by tests and the demo binary. The production engine (a Merkle-tree
// store with real inclusion proofs) lives outside this repo.
package storage

import (
	"github.com/coinledger/coinledger/crypto"
)

// Store is the key-value namespace the ledger schema writes wallet records,
// history entries and pending transfers into. Implementations must be
// deterministic: the root depends only on the stored content, never on
// insertion order.
type Store interface {
	// Get returns the value stored under key, if any.
	Get(key string) ([]byte, bool)

	// Put stores value under key, overwriting any previous value.
	Put(key string, value []byte)

	// Keys returns all stored keys with the given prefix, sorted.
	Keys(prefix string) []string

	// Root returns a digest authenticating the entire store content.
	Root() crypto.Hash
}

// Prover is implemented by stores that can prove a key's value against
// their root, so clients can verify balances and history without trusting
// the node.
type Prover interface {
	// Proof produces an inclusion proof for key, or false if the key is
	// not present.
	Proof(key string) (Proof, bool)
}
