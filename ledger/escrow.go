package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/coinledger/coinledger/crypto"
	"github.com/coinledger/coinledger/domain/wallet"
	"github.com/coinledger/coinledger/storage"
)

// EscrowTable tracks in-flight approver-confirmed transfers keyed by the
// hash of the transaction that opened them. Records survive fulfillment as
// audit history and are never deleted.
type EscrowTable struct {
	store storage.Store
}

// Get returns the pending transfer recorded under txHash, if any.
func (et *EscrowTable) Get(txHash crypto.Hash) (wallet.PendingTransfer, bool) {
	b, ok := et.store.Get(pendingPrefix + txHash.String())
	if !ok {
		return wallet.PendingTransfer{}, false
	}
	var p wallet.PendingTransfer
	if err := json.Unmarshal(b, &p); err != nil {
		return wallet.PendingTransfer{}, false
	}
	return p, true
}

// Open records a new unfulfilled pending transfer under txHash. The caller
// freezes the sender's funds before opening. Opening the same hash twice
// fails with ErrDuplicateTransfer.
func (et *EscrowTable) Open(txHash crypto.Hash, from, to, approver crypto.PublicKey, amount uint64) error {
	if _, ok := et.Get(txHash); ok {
		return fmt.Errorf("%w: %s", wallet.ErrDuplicateTransfer, txHash)
	}
	et.put(wallet.PendingTransfer{
		TxHash:   txHash,
		From:     from,
		To:       to,
		Approver: approver,
		Amount:   amount,
	})
	return nil
}

// Fulfill flips the pending transfer under txHash to fulfilled and returns
// it so the caller can settle the funds. It fails with ErrNotFound,
// ErrApproverMismatch or ErrAlreadyFulfilled without mutating anything.
func (et *EscrowTable) Fulfill(txHash crypto.Hash, approver crypto.PublicKey) (wallet.PendingTransfer, error) {
	p, ok := et.Get(txHash)
	if !ok {
		return wallet.PendingTransfer{}, fmt.Errorf("%w: pending transfer %s", wallet.ErrNotFound, txHash)
	}
	if p.Approver != approver {
		return wallet.PendingTransfer{}, fmt.Errorf("%w: %s", wallet.ErrApproverMismatch, approver)
	}
	if p.Fulfilled {
		return wallet.PendingTransfer{}, fmt.Errorf("%w: %s", wallet.ErrAlreadyFulfilled, txHash)
	}
	p = p.Fulfill()
	et.put(p)
	return p, nil
}

func (et *EscrowTable) put(p wallet.PendingTransfer) {
	b, _ := json.Marshal(p)
	et.store.Put(pendingPrefix+p.TxHash.String(), b)
}

// All returns every pending transfer in key order, fulfilled ones included.
func (et *EscrowTable) All() []wallet.PendingTransfer {
	keys := et.store.Keys(pendingPrefix)
	transfers := make([]wallet.PendingTransfer, 0, len(keys))
	for _, k := range keys {
		b, ok := et.store.Get(k)
		if !ok {
			continue
		}
		var p wallet.PendingTransfer
		if err := json.Unmarshal(b, &p); err != nil {
			continue
		}
		transfers = append(transfers, p)
	}
	return transfers
}
