package wallet

import (
	"github.com/coinledger/coinledger/crypto"
)

// Kind names a transaction payload type. It is part of the transaction hash
// preimage, so renaming a kind changes every hash derived from it.
type Kind string

const (
	KindCreateWallet    Kind = "create_wallet"
	KindIssue           Kind = "issue"
	KindTransfer        Kind = "transfer"
	KindConfirmTransfer Kind = "confirm_transfer"
)

// Payload is an immutable, single-use transaction body. The acting public
// key is not part of the payload; it comes from the authentication
// collaborator alongside it.
type Payload interface {
	Kind() Kind
}

// CreateWallet creates a wallet for the acting public key.
type CreateWallet struct {
	Name string `json:"name"`
}

// Issue credits the acting wallet with newly issued currency.
//
// Seed only makes otherwise-identical requests hash-distinct. It carries no
// meaning and is never validated.
type Issue struct {
	Amount uint64 `json:"amount"`
	Seed   uint64 `json:"seed"`
}

// Transfer moves Amount from the acting wallet to To. A zero Approver, or
// one equal to the sender, settles immediately; any other Approver opens an
// escrowed transfer that settles on the approver's ConfirmTransfer.
type Transfer struct {
	To       crypto.PublicKey `json:"to"`
	Approver crypto.PublicKey `json:"approver"`
	Amount   uint64           `json:"amount"`
	Seed     uint64           `json:"seed"`
}

// ConfirmTransfer settles the pending transfer opened by the transaction
// with hash TxHash. Only the recorded approver may confirm. Seed exists for
// hash uniqueness and is ignored when matching the pending transfer.
type ConfirmTransfer struct {
	TxHash crypto.Hash `json:"tx_hash"`
	Seed   uint64      `json:"seed"`
}

func (CreateWallet) Kind() Kind    { return KindCreateWallet }
func (Issue) Kind() Kind           { return KindIssue }
func (Transfer) Kind() Kind        { return KindTransfer }
func (ConfirmTransfer) Kind() Kind { return KindConfirmTransfer }
