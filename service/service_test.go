package service

import (
	"errors"
	"testing"

	"github.com/coinledger/coinledger/crypto"
	"github.com/coinledger/coinledger/domain/wallet"
	"github.com/coinledger/coinledger/storage"
)

func newTestService() *Service {
	h := crypto.NewSuiteHasher("Ed25519")
	return New(storage.NewMemStore(h), h)
}

func keyOf(b byte) crypto.PublicKey {
	var k crypto.PublicKey
	k[0] = b
	return k
}

func TestTxHash_SeedMakesRequestsDistinct(t *testing.T) {
	s := newTestService()
	author := keyOf(1)

	first, err := s.TxHash(Transaction{Author: author, Payload: wallet.Issue{Amount: 100, Seed: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.TxHash(Transaction{Author: author, Payload: wallet.Issue{Amount: 100, Seed: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Fatal("different seeds must produce different transaction hashes")
	}
}

func TestTxHash_Deterministic(t *testing.T) {
	s := newTestService()
	tx := Transaction{Author: keyOf(1), Payload: wallet.Issue{Amount: 100, Seed: 1}}

	first, err := s.TxHash(tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.TxHash(tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatal("identical transactions must hash identically")
	}
}

func TestTxHash_AuthorChangesHash(t *testing.T) {
	s := newTestService()
	payload := wallet.Issue{Amount: 100, Seed: 1}

	first, _ := s.TxHash(Transaction{Author: keyOf(1), Payload: payload})
	second, _ := s.TxHash(Transaction{Author: keyOf(2), Payload: payload})
	if first == second {
		t.Fatal("the acting key must be part of the hash preimage")
	}
}

func TestExecuteBlock_Accounting(t *testing.T) {
	s := newTestService()
	alice, bob := keyOf(1), keyOf(2)

	result := s.ExecuteBlock([]Transaction{
		{Author: alice, Payload: wallet.CreateWallet{Name: "Alice"}},
		{Author: alice, Payload: wallet.Issue{Amount: 100, Seed: 1}},
		{Author: alice, Payload: wallet.Transfer{To: bob, Amount: 30, Seed: 1}}, // no Bob yet
		{Author: bob, Payload: wallet.CreateWallet{Name: "Bob"}},
		{Author: alice, Payload: wallet.Transfer{To: bob, Amount: 30, Seed: 2}},
	})

	if result.Applied != 4 || result.Rejected != 1 {
		t.Fatalf("expected 4 applied / 1 rejected, got %d/%d", result.Applied, result.Rejected)
	}
	if !errors.Is(result.Outcomes[2].Err, wallet.ErrNotFound) {
		t.Fatalf("expected the third transaction to fail with ErrNotFound, got %v", result.Outcomes[2].Err)
	}

	a, _ := s.Schema().Wallets.Get(alice)
	b, _ := s.Schema().Wallets.Get(bob)
	if a.Balance != 70 || b.Balance != 30 {
		t.Fatalf("rejection must not halt the block: got %d/%d", a.Balance, b.Balance)
	}
}

func TestExecuteBlock_RootMatchesSchema(t *testing.T) {
	s := newTestService()
	alice := keyOf(1)

	result := s.ExecuteBlock([]Transaction{
		{Author: alice, Payload: wallet.CreateWallet{Name: "Alice"}},
	})
	if result.Root != s.Schema().Root() {
		t.Fatal("block root must be the store root after execution")
	}
}

func TestApply_EscrowRoundTrip(t *testing.T) {
	s := newTestService()
	alice, bob, carol := keyOf(1), keyOf(2), keyOf(3)

	for _, tx := range []Transaction{
		{Author: alice, Payload: wallet.CreateWallet{Name: "Alice"}},
		{Author: bob, Payload: wallet.CreateWallet{Name: "Bob"}},
		{Author: carol, Payload: wallet.CreateWallet{Name: "Carol"}},
		{Author: alice, Payload: wallet.Issue{Amount: 100, Seed: 1}},
	} {
		if outcome := s.Apply(tx); !outcome.Applied() {
			t.Fatalf("setup transaction rejected: %v", outcome.Err)
		}
	}

	escrow := s.Apply(Transaction{
		Author:  alice,
		Payload: wallet.Transfer{To: bob, Approver: carol, Amount: 40, Seed: 1},
	})
	if !escrow.Applied() {
		t.Fatalf("escrow transfer rejected: %v", escrow.Err)
	}

	confirm := s.Apply(Transaction{
		Author:  carol,
		Payload: wallet.ConfirmTransfer{TxHash: escrow.Hash, Seed: 1},
	})
	if !confirm.Applied() {
		t.Fatalf("confirmation rejected: %v", confirm.Err)
	}

	b, _ := s.Schema().Wallets.Get(bob)
	if b.Balance != 40 {
		t.Fatalf("expected receiver credited 40, got %d", b.Balance)
	}
}
