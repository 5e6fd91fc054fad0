package main

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/sirupsen/logrus"

	"github.com/coinledger/coinledger/config"
	"github.com/coinledger/coinledger/crypto"
	"github.com/coinledger/coinledger/domain/wallet"
	"github.com/coinledger/coinledger/service"
	"github.com/coinledger/coinledger/storage"
)

// The demo plays the ordering and authentication collaborators: it makes up
// identities, commits a block of transactions in a fixed order and renders
// the resulting ledger state.
func main() {
	cfg := config.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Coin", pterm.FgYellow.ToStyle()),
		putils.LettersFromStringWithStyle("Ledger", pterm.FgDarkGray.ToStyle()),
	).Render()

	hasher := crypto.NewSuiteHasher(cfg.HashSuite)
	svc := service.New(storage.NewMemStore(hasher), hasher)

	names := []string{"Alice", "Bob", "Carol"}
	keys := make([]crypto.PublicKey, len(names))
	for i := range names {
		pk, _, err := crypto.GenKeyPair()
		if err != nil {
			pterm.Error.Printfln("key generation failed: %v", err)
			os.Exit(1)
		}
		keys[i] = pk
		pterm.Info.Printfln("%s acts as %s", names[i], shortKey(pk))
	}
	alice, bob, carol := keys[0], keys[1], keys[2]

	spinner, _ := pterm.DefaultSpinner.Start("Executing block...")
	result := svc.ExecuteBlock([]service.Transaction{
		{Author: alice, Payload: wallet.CreateWallet{Name: "Alice"}},
		{Author: bob, Payload: wallet.CreateWallet{Name: "Bob"}},
		{Author: carol, Payload: wallet.CreateWallet{Name: "Carol"}},
		{Author: alice, Payload: wallet.Issue{Amount: cfg.IssueAmount, Seed: 1}},
		{Author: alice, Payload: wallet.Transfer{To: bob, Amount: cfg.IssueAmount / 4, Seed: 1}},
		{Author: alice, Payload: wallet.Transfer{To: bob, Approver: carol, Amount: cfg.IssueAmount / 4, Seed: 2}},
		// Rejected on purpose: nothing is pending under the zero hash.
		{Author: bob, Payload: wallet.ConfirmTransfer{TxHash: crypto.Hash{}, Seed: 1}},
	})
	spinner.Success("Block executed")

	renderOutcomes(result)
	renderWallets(svc)
	renderPending(svc)

	// The approver settles the escrow in the next block.
	var escrowHash crypto.Hash
	for _, outcome := range result.Outcomes {
		if outcome.Kind == wallet.KindTransfer && outcome.Applied() {
			escrowHash = outcome.Hash
		}
	}
	confirm := svc.ExecuteBlock([]service.Transaction{
		{Author: carol, Payload: wallet.ConfirmTransfer{TxHash: escrowHash, Seed: 2}},
	})

	pterm.Println()
	pterm.Info.Printfln("Confirmation block: %d applied, %d rejected", confirm.Applied, confirm.Rejected)
	renderWallets(svc)
	renderPending(svc)
	pterm.Info.Printfln("State root: %s", svc.Schema().Root())
}
