package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/polyscope/dashboard/internal/store"
	"github.com/polyscope/dashboard/internal/view"
)

// InsiderPage is the insider module page: status, alert feed, tracked
// wallets, and the trigger configuration form.
type InsiderPage struct {
	app *App

	root      *tview.Flex
	status    *tview.TextView
	toggleBtn *tview.Button
	scanBtn   *tview.Button
	config    *tview.Form
	alerts    *tview.Table
	saved     *tview.Table

	running    bool
	alertCards []view.AlertCard
	savedRows  []view.SavedWalletRow
}

// NewInsiderPage builds the insider page.
func NewInsiderPage(app *App) *InsiderPage {
	p := &InsiderPage{app: app}

	p.status = tview.NewTextView().SetDynamicColors(true)
	p.status.SetBorder(true).SetTitle(" Insider Scanner ")

	p.toggleBtn = tview.NewButton("Start").SetSelectedFunc(p.onToggle)
	p.scanBtn = tview.NewButton("Scan Now").SetSelectedFunc(p.onScanNow)

	p.config = p.buildConfigForm()

	p.alerts = tview.NewTable().SetFixed(1, 0).SetSelectable(true, false)
	p.alerts.SetBorder(true).SetTitle(" Alerts ")
	p.alerts.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune {
			switch event.Rune() {
			case 's':
				p.onSaveAlertWallet()
				return nil
			case 'f':
				p.onFollowAlertWallet()
				return nil
			case 'w':
				p.onAlertWalletStats()
				return nil
			}
		}
		return event
	})

	p.saved = tview.NewTable().SetFixed(1, 0).SetSelectable(true, false)
	p.saved.SetBorder(true).SetTitle(" Tracked Wallets ")
	p.saved.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune {
			switch event.Rune() {
			case 'd':
				p.onRemoveSaved()
				return nil
			case 'f':
				p.onFollowSaved()
				return nil
			case 'w':
				p.onSavedWalletStats()
				return nil
			}
		}
		return event
	})

	buttons := tview.NewFlex().
		AddItem(p.toggleBtn, 0, 1, false).
		AddItem(nil, 1, 0, false).
		AddItem(p.scanBtn, 0, 1, false)

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.status, 8, 0, false).
		AddItem(buttons, 1, 0, false).
		AddItem(p.config, 0, 1, false)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.alerts, 0, 2, true).
		AddItem(p.saved, 0, 1, false)

	p.root = tview.NewFlex().
		AddItem(left, 0, 1, false).
		AddItem(right, 0, 2, true)

	return p
}

// Root returns the page's root primitive.
func (p *InsiderPage) Root() tview.Primitive {
	return p.root
}

// ApplyStatus renders the insider status panel.
func (p *InsiderPage) ApplyStatus(v view.InsiderStatusView) {
	p.running = v.Running

	color := "red"
	if v.Running {
		color = "green"
	}
	p.status.SetText(fmt.Sprintf(
		"Status: [%s]%s[-]\nAlerts: %d\nMarkets scanned: %d\nLast scan: %s",
		color, v.RunningLabel, v.AlertsGenerated, v.MarketsScanned, v.LastScan))

	if v.Running {
		p.toggleBtn.SetLabel("Stop")
	} else {
		p.toggleBtn.SetLabel("Start")
	}
}

// ApplyAlerts renders the alert feed.
func (p *InsiderPage) ApplyAlerts(v view.AlertsView) {
	p.alertCards = v.Cards
	p.alerts.Clear()

	headers := []string{"Time", "Type", "Wallet", "Market", "Bet", "PnL", "WR"}
	for col, header := range headers {
		cell := tview.NewTableCell(header).
			SetTextColor(tview.Styles.SecondaryTextColor).
			SetAlign(tview.AlignLeft).
			SetSelectable(false)
		p.alerts.SetCell(0, col, cell)
	}

	if v.Empty != "" {
		p.alerts.SetCell(1, 0, tview.NewTableCell(v.Empty).SetSelectable(false))
		p.alerts.SetTitle(" Alerts ")
		return
	}

	for i, card := range v.Cards {
		wallet := card.Wallet
		if card.Nickname != "" {
			wallet = card.Nickname
		}
		pnlColor := tcell.ColorRed
		if card.PnLPositive {
			pnlColor = tcell.ColorGreen
		}
		cells := []*tview.TableCell{
			tview.NewTableCell(card.Time),
			tview.NewTableCell(card.TypeLabel).SetTextColor(tcell.ColorYellow),
			tview.NewTableCell(tview.Escape(wallet)),
			tview.NewTableCell(tview.Escape(truncateCell(card.Market, 40))),
			tview.NewTableCell(tview.Escape(truncateCell(card.Bet, 30))),
			tview.NewTableCell(card.PnL).SetTextColor(pnlColor),
			tview.NewTableCell(card.WinRate),
		}
		for col, cell := range cells {
			p.alerts.SetCell(i+1, col, cell.SetAlign(tview.AlignLeft))
		}
	}
	p.alerts.SetTitle(fmt.Sprintf(" Alerts (%d) [s:save f:follow w:stats] ", len(v.Cards)))
}

// ApplySaved renders the tracked wallet table.
func (p *InsiderPage) ApplySaved(v view.SavedWalletsView) {
	p.savedRows = v.Rows
	p.saved.Clear()

	headers := []string{"Nickname", "Wallet", "Source", "PnL", "Win rate", "Alerts", "Saved"}
	for col, header := range headers {
		cell := tview.NewTableCell(header).
			SetTextColor(tview.Styles.SecondaryTextColor).
			SetAlign(tview.AlignLeft).
			SetSelectable(false)
		p.saved.SetCell(0, col, cell)
	}

	if v.Empty != "" {
		p.saved.SetCell(1, 0, tview.NewTableCell(v.Empty).SetSelectable(false))
		p.saved.SetTitle(" Tracked Wallets ")
		return
	}

	for i, row := range v.Rows {
		pnlColor := tcell.ColorRed
		if row.PnLPositive {
			pnlColor = tcell.ColorGreen
		}
		cells := []*tview.TableCell{
			tview.NewTableCell(tview.Escape(row.Nickname)),
			tview.NewTableCell(tview.Escape(truncateCell(row.Address, 14))),
			tview.NewTableCell(row.Source),
			tview.NewTableCell(row.PnL).SetTextColor(pnlColor),
			tview.NewTableCell(row.WinRate),
			tview.NewTableCell(row.Alerts),
			tview.NewTableCell(row.SavedAt),
		}
		for col, cell := range cells {
			p.saved.SetCell(i+1, col, cell.SetAlign(tview.AlignLeft))
		}
	}
	p.saved.SetTitle(fmt.Sprintf(" Tracked Wallets (%d) [d:remove f:follow w:stats] ", len(v.Rows)))
}

// ApplyConfig overwrites the trigger configuration form with the latest
// snapshot, discarding unsaved edits. Configuration reloads happen only
// on page entry and manual refresh, not on a poll.
func (p *InsiderPage) ApplyConfig(v view.TriggerConfigView) {
	p.setInput("Categories", strings.Join(v.Categories, ","))
	p.setCheck("Risky bet", v.RiskyBet.Enabled)
	p.setInput("  Min amount ($)", v.RiskyBet.MinAmount)
	p.setInput("  Max odds (%)", v.RiskyBet.MaxOddsPct)
	p.setCheck("Whale wakeup", v.WhaleWakeup.Enabled)
	p.setInput("  Min amount ($) ", v.WhaleWakeup.MinAmount)
	p.setInput("  Dormant days", v.WhaleWakeup.DormantDays)
	p.setCheck("Fresh wallet", v.FreshWallet.Enabled)
	p.setInput("  Min amount ($)  ", v.FreshWallet.MinAmount)
	p.setInput("  Max transactions", v.FreshWallet.MaxTx)
}

func (p *InsiderPage) setInput(label, text string) {
	p.config.GetFormItemByLabel(label).(*tview.InputField).SetText(text)
}

func (p *InsiderPage) setCheck(label string, checked bool) {
	p.config.GetFormItemByLabel(label).(*tview.Checkbox).SetChecked(checked)
}

// buildConfigForm creates the empty trigger configuration form. Labels
// for the per-rule amount fields differ by trailing spaces so lookups
// by label stay unambiguous.
func (p *InsiderPage) buildConfigForm() *tview.Form {
	form := tview.NewForm().
		AddInputField("Categories", "", 30, nil, nil).
		AddCheckbox("Risky bet", false, nil).
		AddInputField("  Min amount ($)", "", 10, nil, nil).
		AddInputField("  Max odds (%)", "", 10, nil, nil).
		AddCheckbox("Whale wakeup", false, nil).
		AddInputField("  Min amount ($) ", "", 10, nil, nil).
		AddInputField("  Dormant days", "", 10, nil, nil).
		AddCheckbox("Fresh wallet", false, nil).
		AddInputField("  Min amount ($)  ", "", 10, nil, nil).
		AddInputField("  Max transactions", "", 10, nil, nil).
		AddButton("Save Config", p.onSaveConfig)
	form.SetBorder(true).SetTitle(" Trigger Configuration ")
	return form
}

// onToggle starts or stops the insider scanner, requesting the opposite
// of the last rendered state.
func (p *InsiderPage) onToggle() {
	target := !p.running
	p.toggleBtn.SetDisabled(true)
	p.app.dispatcher.ToggleInsider(p.app.ctx, target, func(error) {
		p.app.queueUI(func() { p.toggleBtn.SetDisabled(false) })
	})
}

// onScanNow triggers a manual scan.
func (p *InsiderPage) onScanNow() {
	p.scanBtn.SetDisabled(true)
	p.app.dispatcher.ScanNow(p.app.ctx, func(error) {
		p.app.queueUI(func() { p.scanBtn.SetDisabled(false) })
	})
}

// onSaveConfig reads the form into a configuration value and submits it
// wholesale. Unparseable numbers fall back to the field's zero.
func (p *InsiderPage) onSaveConfig() {
	cfg := store.TriggerConfig{
		RiskyBet: store.TriggerRule{
			Enabled:   p.configChecked("Risky bet"),
			MinAmount: parseFloatOr(fieldText(p.config, "  Min amount ($)"), 0),
			MaxOdds:   parseFloatOr(fieldText(p.config, "  Max odds (%)"), 0) / 100,
		},
		WhaleWakeup: store.TriggerRule{
			Enabled:     p.configChecked("Whale wakeup"),
			MinAmount:   parseFloatOr(fieldText(p.config, "  Min amount ($) "), 0),
			DormantDays: parseIntOr(fieldText(p.config, "  Dormant days"), 0),
		},
		FreshWallet: store.TriggerRule{
			Enabled:   p.configChecked("Fresh wallet"),
			MinAmount: parseFloatOr(fieldText(p.config, "  Min amount ($)  "), 0),
			MaxTx:     parseIntOr(fieldText(p.config, "  Max transactions"), 0),
		},
	}
	for _, c := range strings.Split(fieldText(p.config, "Categories"), ",") {
		if c = strings.TrimSpace(c); c != "" {
			cfg.Categories = append(cfg.Categories, c)
		}
	}

	btn := p.config.GetButton(0)
	btn.SetDisabled(true)
	p.app.dispatcher.SaveTriggerConfig(p.app.ctx, cfg, func(error) {
		p.app.queueUI(func() { btn.SetDisabled(false) })
	})
}

func (p *InsiderPage) configChecked(label string) bool {
	return p.config.GetFormItemByLabel(label).(*tview.Checkbox).IsChecked()
}

// selectedAlert returns the alert card under the cursor.
func (p *InsiderPage) selectedAlert() (view.AlertCard, bool) {
	row, _ := p.alerts.GetSelection()
	idx := row - 1 // header offset
	if idx < 0 || idx >= len(p.alertCards) {
		return view.AlertCard{}, false
	}
	return p.alertCards[idx], true
}

// selectedSaved returns the tracked wallet row under the cursor.
func (p *InsiderPage) selectedSaved() (view.SavedWalletRow, bool) {
	row, _ := p.saved.GetSelection()
	idx := row - 1
	if idx < 0 || idx >= len(p.savedRows) {
		return view.SavedWalletRow{}, false
	}
	return p.savedRows[idx], true
}

// onSaveAlertWallet tracks the wallet behind the selected alert.
func (p *InsiderPage) onSaveAlertWallet() {
	card, ok := p.selectedAlert()
	if !ok {
		return
	}
	p.app.dispatcher.SaveInsiderWallet(p.app.ctx, card.Address, card.Nickname, nil)
}

// onFollowAlertWallet copies the alert's wallet into the hft module.
func (p *InsiderPage) onFollowAlertWallet() {
	card, ok := p.selectedAlert()
	if !ok {
		return
	}
	p.app.dispatcher.FollowWallet(p.app.ctx, card.Address, nil)
}

// onAlertWalletStats fetches stats for the alert's wallet.
func (p *InsiderPage) onAlertWalletStats() {
	card, ok := p.selectedAlert()
	if !ok {
		return
	}
	p.app.dispatcher.FetchWalletStats(p.app.ctx, card.Address, nil)
}

// onRemoveSaved stops tracking the selected wallet.
func (p *InsiderPage) onRemoveSaved() {
	row, ok := p.selectedSaved()
	if !ok {
		return
	}
	p.app.dispatcher.RemoveSavedWallet(p.app.ctx, row.Address, nil)
}

// onFollowSaved copies the selected tracked wallet into the hft module.
func (p *InsiderPage) onFollowSaved() {
	row, ok := p.selectedSaved()
	if !ok {
		return
	}
	p.app.dispatcher.FollowWallet(p.app.ctx, row.Address, nil)
}

// onSavedWalletStats fetches stats for the selected tracked wallet.
func (p *InsiderPage) onSavedWalletStats() {
	row, ok := p.selectedSaved()
	if !ok {
		return
	}
	p.app.dispatcher.FetchWalletStats(p.app.ctx, row.Address, nil)
}

// truncateCell shortens text for a table cell.
func truncateCell(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
