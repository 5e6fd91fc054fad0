package storage

import (
	"sort"
	"strings"

	"github.com/coinledger/coinledger/crypto"
)

// MemStore is an in-memory Store. Its root is a fold over the digests of
// all entries in key order, and its proofs carry the full leaf list, which
// is fine for the test and demo workloads it exists for.
type MemStore struct {
	hasher crypto.Hasher
	data   map[string][]byte
}

// NewMemStore returns an empty store hashing with h.
func NewMemStore(h crypto.Hasher) *MemStore {
	return &MemStore{
		hasher: h,
		data:   make(map[string][]byte),
	}
}

func (m *MemStore) Get(key string) ([]byte, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *MemStore) Put(key string, value []byte) {
	buf := make([]byte, len(value))
	copy(buf, value)
	m.data[key] = buf
}

func (m *MemStore) Keys(prefix string) []string {
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func (m *MemStore) Root() crypto.Hash {
	return foldLeaves(m.hasher, m.leaves())
}

// Proof returns an inclusion proof for key. The proof lists every leaf
// digest, so Verify can both recompute the root and check the claimed
// entry sits at the claimed position.
func (m *MemStore) Proof(key string) (Proof, bool) {
	value, ok := m.data[key]
	if !ok {
		return Proof{}, false
	}
	keys := m.Keys("")
	index := sort.SearchStrings(keys, key)
	return Proof{
		Key:    key,
		Value:  value,
		Index:  index,
		Leaves: m.leaves(),
	}, true
}

func (m *MemStore) leaves() []crypto.Hash {
	keys := m.Keys("")
	leaves := make([]crypto.Hash, len(keys))
	for i, k := range keys {
		leaves[i] = leafDigest(m.hasher, k, m.data[k])
	}
	return leaves
}

// Proof ties a single key-value entry to a store root.
type Proof struct {
	Key    string        `json:"key"`
	Value  []byte        `json:"value"`
	Index  int           `json:"index"`
	Leaves []crypto.Hash `json:"leaves"`
}

// Verify checks the proof against root using h. It fails if the leaves do
// not reproduce the root or if the claimed entry does not match its leaf.
func (p Proof) Verify(h crypto.Hasher, root crypto.Hash) bool {
	if p.Index < 0 || p.Index >= len(p.Leaves) {
		return false
	}
	if leafDigest(h, p.Key, p.Value) != p.Leaves[p.Index] {
		return false
	}
	return foldLeaves(h, p.Leaves) == root
}

func leafDigest(h crypto.Hasher, key string, value []byte) crypto.Hash {
	return h.Digest([]byte(key), value)
}

func foldLeaves(h crypto.Hasher, leaves []crypto.Hash) crypto.Hash {
	acc := crypto.Hash{}
	for _, leaf := range leaves {
		acc = h.Digest(acc[:], leaf[:])
	}
	return acc
}
