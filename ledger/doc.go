// Package ledger is the typed view over the storage collaborator: the
// wallet store adapter, the per-wallet history ledger and the escrow table,
// plus the compound mutators that pair every balance change with a history
// append.
//
// # Core Components
//
// Schema: Bundles the typed indexes over one backing store and exposes the
// compound mutators the executor settles transactions through.
//
// WalletStore: Typed read/write access to wallet records keyed by public
// key. It enforces no business invariants; that is the executor's job.
//
// HistoryLedger: Append-only log of transaction hashes per wallet, chained
// into a running history hash.
//
// EscrowTable: In-flight approver-confirmed transfers keyed by the hash of
// the transaction that opened them.
//
// # Security Properties
//
// The history chain provides:
//   - Verifiability: Replaying the stored entries reproduces the wallet's
//     published history hash without re-executing business logic
//   - Auditability: Every balance mutation leaves exactly one entry
//   - Tamper detection: Any rewritten entry breaks the chain
//
// # Usage
//
// Create a schema over a store, then let the executor drive all mutation.
// The Audit method on the history ledger can be called at any time to check
// a wallet's stored history against its record.
package ledger
