// Package executor is the transaction state machine. It validates one
// already-authenticated transaction at a time against the ledger schema and
// applies it atomically: every check runs before the first write, so a
// rejected transaction leaves no partial mutation behind. Multi-wallet
// writes happen sender before receiver, keeping replay byte-identical
// across nodes.
package executor

import (
	"fmt"
	"math"

	"github.com/coinledger/coinledger/crypto"
	"github.com/coinledger/coinledger/domain/wallet"
	"github.com/coinledger/coinledger/ledger"
)

// Executor applies validated transactions to a schema. It holds no state of
// its own; independent ledgers just use independent schemas.
type Executor struct {
	schema *ledger.Schema
}

// New returns an executor writing through schema.
func New(schema *ledger.Schema) *Executor {
	return &Executor{schema: schema}
}

// Apply validates and applies one transaction. author is the acting public
// key from the authentication collaborator, txHash the hash the ordering
// collaborator committed the transaction under. A non-nil error means the
// transaction was rejected and no state changed.
func (e *Executor) Apply(author crypto.PublicKey, txHash crypto.Hash, p wallet.Payload) error {
	switch tx := p.(type) {
	case wallet.CreateWallet:
		return e.createWallet(author, txHash, tx)
	case wallet.Issue:
		return e.issue(author, txHash, tx)
	case wallet.Transfer:
		return e.transfer(author, txHash, tx)
	case wallet.ConfirmTransfer:
		return e.confirmTransfer(author, txHash, tx)
	default:
		return fmt.Errorf("unknown payload type %T", p)
	}
}

func (e *Executor) createWallet(author crypto.PublicKey, txHash crypto.Hash, tx wallet.CreateWallet) error {
	_, err := e.schema.CreateWallet(author, tx.Name, txHash)
	return err
}

func (e *Executor) issue(author crypto.PublicKey, txHash crypto.Hash, tx wallet.Issue) error {
	w, ok := e.schema.Wallets.Get(author)
	if !ok {
		return fmt.Errorf("%w: wallet %s", wallet.ErrNotFound, author)
	}
	if creditOverflows(w.Balance, tx.Amount) {
		return fmt.Errorf("%w: issuing %d to balance %d", wallet.ErrOverflow, tx.Amount, w.Balance)
	}
	e.schema.IncreaseBalance(w, tx.Amount, txHash)
	return nil
}

func (e *Executor) transfer(author crypto.PublicKey, txHash crypto.Hash, tx wallet.Transfer) error {
	// A zero approver, or the sender approving itself, settles directly.
	direct := tx.Approver.IsZero() || tx.Approver == author

	if !direct && tx.To == author {
		return fmt.Errorf("%w: %s", wallet.ErrInvalidSelfEscrow, author)
	}

	sender, ok := e.schema.Wallets.Get(author)
	if !ok {
		return fmt.Errorf("%w: sender %s", wallet.ErrNotFound, author)
	}
	receiver, ok := e.schema.Wallets.Get(tx.To)
	if !ok {
		return fmt.Errorf("%w: receiver %s", wallet.ErrNotFound, tx.To)
	}
	if !direct {
		if _, ok := e.schema.Wallets.Get(tx.Approver); !ok {
			return fmt.Errorf("%w: approver %s", wallet.ErrNotFound, tx.Approver)
		}
	}

	if tx.Amount > math.MaxInt64 || sender.Available() < int64(tx.Amount) {
		return fmt.Errorf("%w: available %d, transfer %d", wallet.ErrInsufficientFunds, sender.Available(), tx.Amount)
	}

	if direct {
		if tx.To == author {
			// Balance no-op, but the transaction still lands in the
			// history so replays stay non-idempotent.
			e.schema.Touch(sender, txHash)
			return nil
		}
		if creditOverflows(receiver.Balance, tx.Amount) {
			return fmt.Errorf("%w: crediting %d to balance %d", wallet.ErrOverflow, tx.Amount, receiver.Balance)
		}
		e.schema.DecreaseBalance(sender, tx.Amount, txHash)
		e.schema.IncreaseBalance(receiver, tx.Amount, txHash)
		return nil
	}

	if _, ok := e.schema.Escrow.Get(txHash); ok {
		return fmt.Errorf("%w: %s", wallet.ErrDuplicateTransfer, txHash)
	}
	e.schema.FreezeBalance(sender, tx.Amount, txHash)
	return e.schema.Escrow.Open(txHash, author, tx.To, tx.Approver, tx.Amount)
}

func (e *Executor) confirmTransfer(author crypto.PublicKey, txHash crypto.Hash, tx wallet.ConfirmTransfer) error {
	pending, ok := e.schema.Escrow.Get(tx.TxHash)
	if !ok {
		return fmt.Errorf("%w: pending transfer %s", wallet.ErrNotFound, tx.TxHash)
	}
	if pending.Approver != author {
		return fmt.Errorf("%w: %s", wallet.ErrApproverMismatch, author)
	}
	if pending.Fulfilled {
		return fmt.Errorf("%w: %s", wallet.ErrAlreadyFulfilled, tx.TxHash)
	}

	sender, ok := e.schema.Wallets.Get(pending.From)
	if !ok {
		return fmt.Errorf("%w: sender %s", wallet.ErrNotFound, pending.From)
	}
	receiver, ok := e.schema.Wallets.Get(pending.To)
	if !ok {
		return fmt.Errorf("%w: receiver %s", wallet.ErrNotFound, pending.To)
	}

	if !CanConfirmWithdrawal(sender.Balance, sender.FrozenAmount, pending.Amount) {
		return fmt.Errorf("%w: frozen %d, balance %d, confirming %d",
			wallet.ErrInsufficientFunds, sender.FrozenAmount, sender.Balance, pending.Amount)
	}
	if creditOverflows(receiver.Balance, pending.Amount) {
		return fmt.Errorf("%w: crediting %d to balance %d", wallet.ErrOverflow, pending.Amount, receiver.Balance)
	}

	// The pre-checks above make Fulfill infallible here, so flipping the
	// flag first keeps the wallet writes free of error paths.
	if _, err := e.schema.Escrow.Fulfill(tx.TxHash, author); err != nil {
		return err
	}
	e.schema.ReleaseFrozen(sender, pending.Amount, txHash)
	e.schema.IncreaseBalance(receiver, pending.Amount, txHash)
	return nil
}

// CanConfirmWithdrawal reports whether a pending transfer of amount can be
// settled against the sender's frozen bookkeeping: the frozen amount must
// cover it, and frozen plus balance must cover it even if the two have
// drifted apart. The executor's own invariants keep both true; the guard
// stays as defense in depth.
func CanConfirmWithdrawal(balance int64, frozen, amount uint64) bool {
	if frozen < amount || frozen > math.MaxInt64 {
		return false
	}
	// With a non-negative balance the sum check is implied by frozen
	// covering the amount, and actually computing it could wrap.
	return balance >= 0 || int64(frozen)+balance >= int64(amount)
}

func creditOverflows(balance int64, amount uint64) bool {
	return amount > math.MaxInt64 || balance > math.MaxInt64-int64(amount)
}
