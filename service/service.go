// Package service is the façade the ordering collaborator hands committed
// transactions to. It derives the deterministic transaction hash, dispatches
// to the executor and reports per-transaction outcomes plus block-level
// accounting. Rejections are recorded, never retried: a retry is a new
// transaction with a new seed and therefore a new hash.
package service

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/coinledger/coinledger/crypto"
	"github.com/coinledger/coinledger/domain/wallet"
	"github.com/coinledger/coinledger/executor"
	"github.com/coinledger/coinledger/ledger"
	"github.com/coinledger/coinledger/storage"
)

// Transaction is one authenticated payload: the signature was already
// verified upstream and Author is the proven acting key.
type Transaction struct {
	Author  crypto.PublicKey
	Payload wallet.Payload
}

// Outcome is the result of one transaction, kept for block-inclusion
// accounting. A rejected transaction still lands in the block with its
// error as the outcome.
type Outcome struct {
	Hash crypto.Hash
	Kind wallet.Kind
	Err  error
}

// Applied reports whether the transaction mutated the ledger.
func (o Outcome) Applied() bool {
	return o.Err == nil
}

// BlockResult summarizes one block's execution.
type BlockResult struct {
	Outcomes []Outcome
	Applied  int
	Rejected int
	Root     crypto.Hash
}

// Service wires a storage collaborator to the executor. Transactions must
// arrive one at a time in committed order; the service adds no concurrency
// of its own.
type Service struct {
	schema *ledger.Schema
	exec   *executor.Executor
	hasher crypto.Hasher
	log    *logrus.Entry
}

// New returns a service executing against st, hashing with h.
func New(st storage.Store, h crypto.Hasher) *Service {
	schema := ledger.NewSchema(st, h)
	return &Service{
		schema: schema,
		exec:   executor.New(schema),
		hasher: h,
		log:    logrus.WithField("component", "coinledger"),
	}
}

// Schema exposes the ledger views for queries, audits and tests.
func (s *Service) Schema() *ledger.Schema {
	return s.schema
}

// TxHash derives the transaction hash from the payload kind, the acting key
// and the JSON-encoded payload. Identical requests differ only through
// their seeds, which is exactly what the seeds are for.
func (s *Service) TxHash(tx Transaction) (crypto.Hash, error) {
	if tx.Payload == nil {
		return crypto.Hash{}, fmt.Errorf("transaction without payload")
	}
	b, err := json.Marshal(tx.Payload)
	if err != nil {
		return crypto.Hash{}, err
	}
	return s.hasher.Digest([]byte(tx.Payload.Kind()), tx.Author[:], b), nil
}

// Apply executes one committed transaction and returns its outcome.
func (s *Service) Apply(tx Transaction) Outcome {
	hash, err := s.TxHash(tx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"author": tx.Author,
			"error":  err.Error(),
		}).Error("Transaction not hashable")
		return Outcome{Err: err}
	}

	kind := tx.Payload.Kind()
	if err := s.exec.Apply(tx.Author, hash, tx.Payload); err != nil {
		s.log.WithFields(logrus.Fields{
			"tx_hash": hash,
			"kind":    kind,
			"author":  tx.Author,
			"error":   err.Error(),
		}).Warn("Transaction rejected")
		return Outcome{Hash: hash, Kind: kind, Err: err}
	}

	s.log.WithFields(logrus.Fields{
		"tx_hash": hash,
		"kind":    kind,
		"author":  tx.Author,
	}).Info("Transaction applied")
	return Outcome{Hash: hash, Kind: kind}
}

// ExecuteBlock applies the transactions in order. A rejection never halts
// the block; it only counts against it.
func (s *Service) ExecuteBlock(txs []Transaction) BlockResult {
	result := BlockResult{
		Outcomes: make([]Outcome, 0, len(txs)),
	}
	for _, tx := range txs {
		outcome := s.Apply(tx)
		result.Outcomes = append(result.Outcomes, outcome)
		if outcome.Applied() {
			result.Applied++
		} else {
			result.Rejected++
		}
	}
	result.Root = s.schema.Root()

	s.log.WithFields(logrus.Fields{
		"applied":  result.Applied,
		"rejected": result.Rejected,
		"root":     result.Root,
	}).Info("Block executed")
	return result
}
