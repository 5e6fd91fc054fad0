package wallet

import "errors"

// Every validation failure maps to one of these sentinels. Callers match
// with errors.Is; the executor wraps them with the offending key or hash.
// All of them are detected before any mutation, so a rejected transaction
// leaves no trace beyond its outcome.
var (
	// ErrNotFound is returned when a referenced wallet or pending
	// transfer does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when creating a wallet whose public
	// key is already taken.
	ErrAlreadyExists = errors.New("wallet already exists")

	// ErrDuplicateTransfer is returned when a transaction hash is reused
	// as a pending-transfer key. The ordering collaborator already
	// rejects replayed hashes; this check is defense in depth.
	ErrDuplicateTransfer = errors.New("pending transfer already exists")

	// ErrInsufficientFunds is returned when the sender's available
	// balance cannot cover a transfer or a confirmation.
	ErrInsufficientFunds = errors.New("insufficient available balance")

	// ErrAlreadyFulfilled is returned when confirming a pending transfer
	// a second time.
	ErrAlreadyFulfilled = errors.New("pending transfer already fulfilled")

	// ErrApproverMismatch is returned when the confirming key is not the
	// approver recorded on the pending transfer.
	ErrApproverMismatch = errors.New("confirming key is not the recorded approver")

	// ErrInvalidSelfEscrow is returned for an escrowed transfer whose
	// receiver is the sender itself.
	ErrInvalidSelfEscrow = errors.New("escrowed transfer to self")

	// ErrOverflow is returned when a balance credit would exceed the
	// representable range.
	ErrOverflow = errors.New("balance overflow")
)
