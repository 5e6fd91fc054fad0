// Package wallet defines the persisted account records and the transaction
// payloads the executor accepts. All types are plain values; behavior lives
// in the ledger and executor packages.
package wallet

import (
	"github.com/coinledger/coinledger/crypto"
)

// Wallet is the account record stored under its public key.
//
// Balance never goes negative, not even transiently. FrozenAmount is the sum
// of this wallet's pending outgoing escrowed transfers; those funds have
// already been debited from Balance and sit in limbo until confirmation.
// HistoryLen and HistoryHash authenticate the ordered sequence of
// transactions applied to this wallet.
type Wallet struct {
	PubKey       crypto.PublicKey `json:"pub_key"`
	Name         string           `json:"name"`
	Balance      int64            `json:"balance"`
	HistoryLen   uint64           `json:"history_len"`
	HistoryHash  crypto.Hash      `json:"history_hash"`
	FrozenAmount uint64           `json:"frozen_amount"`
}

// Available returns the balance spendable by a new transfer.
func (w Wallet) Available() int64 {
	return w.Balance - int64(w.FrozenAmount)
}
