package wallet

import (
	"github.com/coinledger/coinledger/crypto"
)

// PendingTransfer is the escrow record for an approver-confirmed transfer,
// keyed by the hash of the originating Transfer transaction. It is retained
// forever as an audit record; Fulfilled flips to true at most once and the
// record is never re-opened.
type PendingTransfer struct {
	TxHash    crypto.Hash      `json:"tx_hash"`
	From      crypto.PublicKey `json:"from"`
	To        crypto.PublicKey `json:"to"`
	Approver  crypto.PublicKey `json:"approver"`
	Amount    uint64           `json:"amount"`
	Fulfilled bool             `json:"fulfilled"`
}

// Fulfill returns a copy of the pending transfer with the fulfilled flag set.
func (p PendingTransfer) Fulfill() PendingTransfer {
	p.Fulfilled = true
	return p
}
