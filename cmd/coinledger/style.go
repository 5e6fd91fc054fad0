package main

import (
	"strconv"

	"github.com/pterm/pterm"

	"github.com/coinledger/coinledger/crypto"
	"github.com/coinledger/coinledger/service"
)

func shortKey(pk crypto.PublicKey) string {
	s := pk.String()
	return s[:8] + "…"
}

func shortHash(h crypto.Hash) string {
	if h.IsZero() {
		return "-"
	}
	s := h.String()
	return s[:8] + "…"
}

func renderOutcomes(result service.BlockResult) {
	data := pterm.TableData{{"Tx", "Kind", "Status"}}
	for _, outcome := range result.Outcomes {
		status := pterm.LightGreen("applied")
		if !outcome.Applied() {
			status = pterm.LightRed(outcome.Err.Error())
		}
		data = append(data, []string{shortHash(outcome.Hash), string(outcome.Kind), status})
	}
	pterm.Println()
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Info.Printfln("Block: %d applied, %d rejected, root %s",
		result.Applied, result.Rejected, shortHash(result.Root))
}

func renderWallets(svc *service.Service) {
	data := pterm.TableData{{"Wallet", "Balance", "Frozen", "History", "History hash"}}
	for _, w := range svc.Schema().Wallets.All() {
		data = append(data, []string{
			w.Name + " (" + shortKey(w.PubKey) + ")",
			strconv.FormatInt(w.Balance, 10),
			strconv.FormatUint(w.FrozenAmount, 10),
			strconv.FormatUint(w.HistoryLen, 10),
			shortHash(w.HistoryHash),
		})
	}
	pterm.Println()
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func renderPending(svc *service.Service) {
	transfers := svc.Schema().Escrow.All()
	if len(transfers) == 0 {
		return
	}
	pbox := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2)
	content := ""
	for _, p := range transfers {
		status := pterm.LightYellow("pending")
		if p.Fulfilled {
			status = pterm.LightGreen("fulfilled")
		}
		content += pterm.Sprintfln("%s  %s → %s  amount %d  approver %s  %s",
			shortHash(p.TxHash), shortKey(p.From), shortKey(p.To), p.Amount, shortKey(p.Approver), status)
	}
	pterm.Println()
	pterm.Println(pbox.WithTitle(pterm.LightYellow("|ESCROW|")).WithTitleTopCenter().Sprint(content))
}
