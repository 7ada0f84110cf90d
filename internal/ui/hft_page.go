package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/polyscope/dashboard/internal/api"
	"github.com/polyscope/dashboard/internal/control"
	"github.com/polyscope/dashboard/internal/view"
)

// walletConfigPage is the modal page name for the wallet config form.
const walletConfigPage = "hft-wallet-config"

// HFTPage is the hft module page: status, wallets, markets, and the
// live signal feed.
type HFTPage struct {
	app *App

	root       *tview.Flex
	status     *tview.TextView
	toggleBtn  *tview.Button
	refreshBtn *tview.Button
	addForm    *tview.Form
	wallets    *tview.Table
	markets    *tview.Table
	signals    *tview.Table

	walletRows []view.WalletRow
}

// NewHFTPage builds the hft page.
func NewHFTPage(app *App) *HFTPage {
	p := &HFTPage{app: app}

	p.status = tview.NewTextView().SetDynamicColors(true)
	p.status.SetBorder(true).SetTitle(" Scanner ")

	p.toggleBtn = tview.NewButton("Start").SetSelectedFunc(p.onToggle)
	p.refreshBtn = tview.NewButton("Refresh Markets").SetSelectedFunc(p.onRefreshMarkets)

	p.addForm = tview.NewForm().
		AddInputField("Address", "", 44, nil, nil).
		AddInputField("Nickname", "", 20, nil, nil).
		AddButton("Add Wallet", p.onAddWallet)
	p.addForm.SetBorder(true).SetTitle(" Add Wallet ")

	p.wallets = tview.NewTable().SetFixed(1, 0).SetSelectable(true, false)
	p.wallets.SetBorder(true).SetTitle(" Wallets ")
	p.wallets.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune {
			switch event.Rune() {
			case 'e':
				p.openWalletConfig()
				return nil
			case 'd':
				p.onRemoveWallet()
				return nil
			}
		}
		return event
	})

	p.markets = tview.NewTable().SetFixed(1, 0)
	p.markets.SetBorder(true).SetTitle(" 15-min Markets ")

	p.signals = tview.NewTable().SetFixed(1, 0)
	p.signals.SetBorder(true).SetTitle(" Signal Feed ")

	buttons := tview.NewFlex().
		AddItem(p.toggleBtn, 0, 1, false).
		AddItem(nil, 1, 0, false).
		AddItem(p.refreshBtn, 0, 1, false)

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.status, 9, 0, false).
		AddItem(buttons, 1, 0, false).
		AddItem(p.addForm, 7, 0, false).
		AddItem(p.wallets, 0, 1, true)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.markets, 0, 1, false).
		AddItem(p.signals, 0, 2, false)

	p.root = tview.NewFlex().
		AddItem(left, 0, 1, true).
		AddItem(right, 0, 2, false)

	return p
}

// Root returns the page's root primitive.
func (p *HFTPage) Root() tview.Primitive {
	return p.root
}

// ApplyStatus renders the scanner status panel.
func (p *HFTPage) ApplyStatus(v view.ScannerStatusView) {
	color := "red"
	if v.Running {
		color = "green"
	}
	p.status.SetText(fmt.Sprintf(
		"Status: [%s]%s[-]\nSignals: %d\nExecuted: %d\nRate: %s\nMarkets: %s\nLatency: %s",
		color, v.RunningLabel, v.SignalsReceived, v.SignalsExecuted,
		v.ExecutionRate, v.ActiveMarkets, v.AvgLatency))

	if v.Running {
		p.toggleBtn.SetLabel("Stop")
	} else {
		p.toggleBtn.SetLabel("Start")
	}
}

// ApplyWallets renders the wallet table.
func (p *HFTPage) ApplyWallets(v view.WalletsView) {
	p.walletRows = v.Rows
	p.wallets.Clear()

	headers := []string{"Name", "Address", "Allocation", "Status"}
	for col, header := range headers {
		cell := tview.NewTableCell(header).
			SetTextColor(tview.Styles.SecondaryTextColor).
			SetAlign(tview.AlignLeft).
			SetSelectable(false)
		p.wallets.SetCell(0, col, cell)
	}

	if v.Empty != "" {
		p.wallets.SetCell(1, 0, tview.NewTableCell(v.Empty).SetSelectable(false))
		p.wallets.SetTitle(" Wallets ")
		return
	}

	for i, row := range v.Rows {
		statusColor := tcell.ColorRed
		if row.Enabled {
			statusColor = tcell.ColorGreen
		}
		cells := []*tview.TableCell{
			tview.NewTableCell(tview.Escape(row.Name)),
			tview.NewTableCell(tview.Escape(row.Address)),
			tview.NewTableCell(row.Allocation),
			tview.NewTableCell(row.StatusLabel).SetTextColor(statusColor),
		}
		for col, cell := range cells {
			p.wallets.SetCell(i+1, col, cell.SetAlign(tview.AlignLeft))
		}
	}
	p.wallets.SetTitle(fmt.Sprintf(" Wallets (%d) [e:edit d:remove] ", len(v.Rows)))
}

// ApplyMarkets renders the market table.
func (p *HFTPage) ApplyMarkets(v view.MarketsView) {
	p.markets.Clear()

	headers := []string{"Asset", "Question", "Remaining", "YES"}
	for col, header := range headers {
		cell := tview.NewTableCell(header).
			SetTextColor(tview.Styles.SecondaryTextColor).
			SetAlign(tview.AlignLeft).
			SetSelectable(false)
		p.markets.SetCell(0, col, cell)
	}

	if v.Empty != "" {
		p.markets.SetCell(1, 0, tview.NewTableCell(v.Empty).SetSelectable(false))
		p.markets.SetTitle(" 15-min Markets ")
		return
	}

	for i, row := range v.Rows {
		cells := []string{row.Asset, tview.Escape(row.Question), row.TimeRemaining, row.YesPrice}
		for col, text := range cells {
			p.markets.SetCell(i+1, col, tview.NewTableCell(text).SetAlign(tview.AlignLeft))
		}
	}
	p.markets.SetTitle(fmt.Sprintf(" 15-min Markets (%d) ", len(v.Rows)))
}

// ApplySignals renders the signal feed.
func (p *HFTPage) ApplySignals(v view.SignalsView) {
	p.signals.Clear()

	headers := []string{"Time", "Wallet", "Side", "Asset", "Value", "Latency"}
	for col, header := range headers {
		cell := tview.NewTableCell(header).
			SetTextColor(tview.Styles.SecondaryTextColor).
			SetAlign(tview.AlignLeft).
			SetSelectable(false)
		p.signals.SetCell(0, col, cell)
	}

	if v.Empty != "" {
		p.signals.SetCell(1, 0, tview.NewTableCell(v.Empty).SetSelectable(false))
		p.signals.SetTitle(" Signal Feed ")
		return
	}

	for i, row := range v.Rows {
		sideColor := tcell.ColorRed
		if row.Buy {
			sideColor = tcell.ColorGreen
		}
		cells := []*tview.TableCell{
			tview.NewTableCell(row.Time),
			tview.NewTableCell(tview.Escape(row.Wallet)),
			tview.NewTableCell(row.Side).SetTextColor(sideColor),
			tview.NewTableCell(row.Asset),
			tview.NewTableCell(row.Value),
			tview.NewTableCell(row.Latency),
		}
		for col, cell := range cells {
			p.signals.SetCell(i+1, col, cell.SetAlign(tview.AlignLeft))
		}
	}
	p.signals.SetTitle(fmt.Sprintf(" Signal Feed (%d retained) ", v.Retained))
}

// onToggle flips the scanner. The button is locked for the in-flight
// duration; the rendered status reflects the server's answer.
func (p *HFTPage) onToggle() {
	p.toggleBtn.SetDisabled(true)
	p.app.dispatcher.ToggleHFT(p.app.ctx, func(error) {
		p.app.queueUI(func() { p.toggleBtn.SetDisabled(false) })
	})
}

// onRefreshMarkets triggers server-side market discovery.
func (p *HFTPage) onRefreshMarkets() {
	p.refreshBtn.SetDisabled(true)
	p.app.dispatcher.RefreshMarkets(p.app.ctx, func(error) {
		p.app.queueUI(func() { p.refreshBtn.SetDisabled(false) })
	})
}

// onAddWallet submits the add form. The form clears only on success.
func (p *HFTPage) onAddWallet() {
	addressField := p.addForm.GetFormItemByLabel("Address").(*tview.InputField)
	nicknameField := p.addForm.GetFormItemByLabel("Nickname").(*tview.InputField)

	address := strings.TrimSpace(addressField.GetText())
	nickname := strings.TrimSpace(nicknameField.GetText())
	if address == "" {
		p.app.ShowNotice(control.NoticeError, "address is required")
		return
	}

	btn := p.addForm.GetButton(0)
	btn.SetDisabled(true)
	p.app.dispatcher.AddWallet(p.app.ctx, address, nickname, func(err error) {
		p.app.queueUI(func() {
			btn.SetDisabled(false)
			if err == nil {
				addressField.SetText("")
				nicknameField.SetText("")
			}
		})
	})
}

// selectedWallet returns the wallet row under the cursor.
func (p *HFTPage) selectedWallet() (view.WalletRow, bool) {
	row, _ := p.wallets.GetSelection()
	idx := row - 1 // header offset
	if idx < 0 || idx >= len(p.walletRows) {
		return view.WalletRow{}, false
	}
	return p.walletRows[idx], true
}

// onRemoveWallet removes the selected wallet.
func (p *HFTPage) onRemoveWallet() {
	w, ok := p.selectedWallet()
	if !ok {
		return
	}
	p.app.dispatcher.RemoveWallet(p.app.ctx, w.Address, nil)
}

// openWalletConfig opens the config form for the selected wallet.
func (p *HFTPage) openWalletConfig() {
	w, ok := p.selectedWallet()
	if !ok {
		return
	}

	form := tview.NewForm().
		AddInputField("Capital ($)", w.Capital, 10, nil, nil).
		AddInputField("Percent/trade", w.Percent, 10, nil, nil).
		AddInputField("Max daily trades", w.MaxTrades, 10, nil, nil).
		AddInputField("Stop loss %", w.StopLoss, 10, nil, nil).
		AddInputField("Take profit %", w.TakeProfit, 10, nil, nil).
		AddCheckbox("Enabled", w.Enabled, nil)
	form.SetBorder(true).SetTitle(fmt.Sprintf(" %s - %s ", tview.Escape(w.Name), shortAddr(w.Address)))

	form.AddButton("Save", func() {
		req := api.UpdateWalletRequest{
			Address:          w.Address,
			CapitalAllocated: parseFloatOr(fieldText(form, "Capital ($)"), 100),
			PercentPerTrade:  parseFloatOr(fieldText(form, "Percent/trade"), 10),
			MaxDailyTrades:   parseIntOr(fieldText(form, "Max daily trades"), 50),
			StopLossPercent:  parseOptionalFloat(fieldText(form, "Stop loss %")),
			TakeProfitPct:    parseOptionalFloat(fieldText(form, "Take profit %")),
			Enabled:          form.GetFormItemByLabel("Enabled").(*tview.Checkbox).IsChecked(),
		}
		p.closeWalletConfig()
		p.app.dispatcher.UpdateWallet(p.app.ctx, req, nil)
	})
	form.AddButton("Cancel", p.closeWalletConfig)

	modal := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(form, 17, 0, true).
			AddItem(nil, 0, 1, false), 44, 0, true).
		AddItem(nil, 0, 1, false)

	p.app.pages.AddPage(walletConfigPage, modal, true, true)
	p.app.app.SetFocus(form)
}

// closeWalletConfig dismisses the config form.
func (p *HFTPage) closeWalletConfig() {
	p.app.pages.RemovePage(walletConfigPage)
	p.app.app.SetFocus(p.wallets)
}

// fieldText reads an input field by label.
func fieldText(form *tview.Form, label string) string {
	return strings.TrimSpace(form.GetFormItemByLabel(label).(*tview.InputField).GetText())
}

// parseFloatOr coerces text to a float, falling back to a default.
func parseFloatOr(s string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return fallback
}

// parseIntOr coerces text to an int, falling back to a default.
func parseIntOr(s string, fallback int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return fallback
}

// parseOptionalFloat coerces text to an optional float. Empty means not
// configured, which is distinct from zero.
func parseOptionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return &f
	}
	return nil
}

// shortAddr shortens an address for titles.
func shortAddr(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:10] + "..."
}
