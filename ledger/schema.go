package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/coinledger/coinledger/crypto"
	"github.com/coinledger/coinledger/domain/wallet"
	"github.com/coinledger/coinledger/storage"
)

// Key namespaces inside the storage collaborator. Changing them changes the
// store root, so they are part of the persisted format.
const (
	walletPrefix  = "coinledger.wallets/"
	historyPrefix = "coinledger.wallet_history/"
	pendingPrefix = "coinledger.pending_transfers/"
)

// Schema bundles the typed indexes over one backing store. Independent
// ledger instances just use independent stores; nothing here is global.
type Schema struct {
	store storage.Store

	Wallets *WalletStore
	History *HistoryLedger
	Escrow  *EscrowTable
}

// NewSchema returns a schema reading and writing through st, chaining
// history digests with h.
func NewSchema(st storage.Store, h crypto.Hasher) *Schema {
	return &Schema{
		store:   st,
		Wallets: &WalletStore{store: st},
		History: &HistoryLedger{store: st, hasher: h},
		Escrow:  &EscrowTable{store: st},
	}
}

// Root returns the store root over all ledger records.
func (s *Schema) Root() crypto.Hash {
	return s.store.Root()
}

// CreateWallet writes a fresh zero-balance wallet for key and appends the
// creation transaction as its first history entry. It fails with
// ErrAlreadyExists before anything is written if the key is taken.
func (s *Schema) CreateWallet(key crypto.PublicKey, name string, txHash crypto.Hash) (wallet.Wallet, error) {
	if _, ok := s.Wallets.Get(key); ok {
		return wallet.Wallet{}, fmt.Errorf("%w: %s", wallet.ErrAlreadyExists, key)
	}
	w := wallet.Wallet{
		PubKey: key,
		Name:   name,
	}
	return s.record(w, txHash), nil
}

// IncreaseBalance credits the wallet and appends the transaction to its
// history. The caller has already checked for overflow.
func (s *Schema) IncreaseBalance(w wallet.Wallet, amount uint64, txHash crypto.Hash) wallet.Wallet {
	w.Balance += int64(amount)
	return s.record(w, txHash)
}

// DecreaseBalance debits the wallet and appends the transaction to its
// history. The caller has already checked the available balance.
func (s *Schema) DecreaseBalance(w wallet.Wallet, amount uint64, txHash crypto.Hash) wallet.Wallet {
	w.Balance -= int64(amount)
	return s.record(w, txHash)
}

// FreezeBalance debits the wallet and parks the amount as frozen, appending
// the transaction to its history. Used when an escrowed transfer opens.
func (s *Schema) FreezeBalance(w wallet.Wallet, amount uint64, txHash crypto.Hash) wallet.Wallet {
	w.Balance -= int64(amount)
	w.FrozenAmount += amount
	return s.record(w, txHash)
}

// ReleaseFrozen drops the amount from the wallet's frozen bookkeeping,
// appending the transaction to its history. Used when an escrowed transfer
// is confirmed; the matching credit goes to the receiver.
func (s *Schema) ReleaseFrozen(w wallet.Wallet, amount uint64, txHash crypto.Hash) wallet.Wallet {
	w.FrozenAmount -= amount
	return s.record(w, txHash)
}

// Touch appends the transaction to the wallet's history without changing
// any balance. Self-transfers use it to stay auditable.
func (s *Schema) Touch(w wallet.Wallet, txHash crypto.Hash) wallet.Wallet {
	return s.record(w, txHash)
}

func (s *Schema) record(w wallet.Wallet, txHash crypto.Hash) wallet.Wallet {
	newHash := s.History.Append(w.PubKey, w.HistoryLen, w.HistoryHash, txHash)
	w.HistoryLen++
	w.HistoryHash = newHash
	s.Wallets.Put(w)
	return w
}

// WalletStore is the typed adapter over wallet records. It does not enforce
// business invariants.
type WalletStore struct {
	store storage.Store
}

// Get returns the wallet stored under key, if any.
func (ws *WalletStore) Get(key crypto.PublicKey) (wallet.Wallet, bool) {
	b, ok := ws.store.Get(walletPrefix + key.String())
	if !ok {
		return wallet.Wallet{}, false
	}
	var w wallet.Wallet
	if err := json.Unmarshal(b, &w); err != nil {
		return wallet.Wallet{}, false
	}
	return w, true
}

// Put overwrites the wallet record under its public key.
func (ws *WalletStore) Put(w wallet.Wallet) {
	b, _ := json.Marshal(w)
	ws.store.Put(walletPrefix+w.PubKey.String(), b)
}

// All returns every stored wallet in key order.
func (ws *WalletStore) All() []wallet.Wallet {
	keys := ws.store.Keys(walletPrefix)
	wallets := make([]wallet.Wallet, 0, len(keys))
	for _, k := range keys {
		b, ok := ws.store.Get(k)
		if !ok {
			continue
		}
		var w wallet.Wallet
		if err := json.Unmarshal(b, &w); err != nil {
			continue
		}
		wallets = append(wallets, w)
	}
	return wallets
}
