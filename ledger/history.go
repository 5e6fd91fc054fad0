package ledger

import (
	"fmt"
	"strconv"

	"github.com/coinledger/coinledger/crypto"
	"github.com/coinledger/coinledger/domain/wallet"
	"github.com/coinledger/coinledger/storage"
)

// HistoryLedger is the append-only log of transaction hashes per wallet.
// Each append chains the running history hash:
//
//	new = H(old || txHash)
//
// so replaying the stored entries from genesis always reproduces the
// wallet's published history hash, and a light client can verify the full
// history without re-executing the business logic.
type HistoryLedger struct {
	store  storage.Store
	hasher crypto.Hasher
}

// Append stores txHash as entry n of the wallet's history and returns the
// new running history hash chained onto prev. The caller updates the wallet
// record with the returned hash and the incremented length.
func (hl *HistoryLedger) Append(key crypto.PublicKey, n uint64, prev, txHash crypto.Hash) crypto.Hash {
	hl.store.Put(historyKey(key, n), txHash[:])
	return hl.hasher.Digest(prev[:], txHash[:])
}

// Entry returns the transaction hash stored at position n of the wallet's
// history.
func (hl *HistoryLedger) Entry(key crypto.PublicKey, n uint64) (crypto.Hash, bool) {
	b, ok := hl.store.Get(historyKey(key, n))
	if !ok || len(b) != crypto.HashSize {
		return crypto.Hash{}, false
	}
	var h crypto.Hash
	copy(h[:], b)
	return h, true
}

// Audit replays the wallet's stored history entries and checks they
// reproduce its history length and hash. It returns an error describing the
// first inconsistency found.
func (hl *HistoryLedger) Audit(w wallet.Wallet) error {
	acc := crypto.Hash{}
	for n := uint64(0); n < w.HistoryLen; n++ {
		entry, ok := hl.Entry(w.PubKey, n)
		if !ok {
			return fmt.Errorf("wallet %s: missing history entry %d", w.PubKey, n)
		}
		acc = hl.hasher.Digest(acc[:], entry[:])
	}
	if acc != w.HistoryHash {
		return fmt.Errorf("wallet %s: history hash mismatch: stored %s, replayed %s",
			w.PubKey, w.HistoryHash, acc)
	}
	return nil
}

func historyKey(key crypto.PublicKey, n uint64) string {
	return historyPrefix + key.String() + "/" + strconv.FormatUint(n, 10)
}
