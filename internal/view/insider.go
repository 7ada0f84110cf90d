package view

import (
	"fmt"
	"strings"

	"github.com/polyscope/dashboard/internal/store"
)

// Insider empty-state messages.
const (
	EmptyAlerts = "No alerts yet"
	EmptySaved  = "No saved wallets. Save one from an alert to start tracking."
)

// InsiderStatusView is the insider status panel projection.
type InsiderStatusView struct {
	Loaded          bool
	Running         bool
	RunningLabel    string
	AlertsGenerated int
	MarketsScanned  int
	LastScan        string
}

// InsiderStatus projects the insider stats singleton.
func InsiderStatus(stats *store.InsiderStats) InsiderStatusView {
	v := InsiderStatusView{RunningLabel: "Stopped", LastScan: "Never"}
	if stats == nil {
		return v
	}

	v.Loaded = true
	v.Running = stats.Running
	if stats.Running {
		v.RunningLabel = "Running"
	}
	v.AlertsGenerated = stats.AlertsGenerated
	v.MarketsScanned = stats.MarketsScanned
	if stats.LastScan != nil {
		v.LastScan = formatClock(stats.LastScan.Time)
	}
	return v
}

// AlertCard is one rendered insider alert.
type AlertCard struct {
	TypeLabel   string
	Address     string
	Wallet      string
	Nickname    string
	Time        string
	Market      string
	MarketURL   string
	Trigger     string
	Bet         string
	PnL         string
	PnLPositive bool
	WinRate     string
	Trades      string
}

// AlertsView is the alert feed projection, in server order.
type AlertsView struct {
	Cards []AlertCard
	Empty string
}

// Alerts projects the insider alert feed.
func Alerts(alerts []store.Alert) AlertsView {
	if len(alerts) == 0 {
		return AlertsView{Empty: EmptyAlerts}
	}

	cards := make([]AlertCard, 0, len(alerts))
	for _, a := range alerts {
		typeLabel := a.AlertType
		if typeLabel == "" {
			typeLabel = "UNKNOWN"
		}
		typeLabel = strings.ReplaceAll(typeLabel, "_", " ")

		market := sanitize(a.MarketQuestion)
		if market == "" {
			market = "Unknown Market"
		}

		cards = append(cards, AlertCard{
			TypeLabel:   typeLabel,
			Address:     a.WalletAddress,
			Wallet:      truncateAddress(a.WalletAddress),
			Nickname:    sanitize(a.Nickname),
			Time:        formatDateTime(a.Timestamp.Time),
			Market:      market,
			MarketURL:   a.MarketURL,
			Trigger:     sanitize(a.TriggerDetails),
			Bet:         sanitize(a.BetDetails),
			PnL:         fmt.Sprintf("$%.0f", a.WalletStats.PnL),
			PnLPositive: a.WalletStats.PnL >= 0,
			WinRate:     fmt.Sprintf("%.0f%%", a.WalletStats.WinRate),
			Trades:      fmt.Sprintf("%d", a.WalletStats.TotalTrades),
		})
	}
	return AlertsView{Cards: cards}
}

// SavedWalletRow is one rendered tracked wallet.
type SavedWalletRow struct {
	Address     string
	Nickname    string
	Source      string
	PnL         string
	PnLPositive bool
	WinRate     string
	SavedAt     string
	Alerts      string
}

// SavedWalletsView is the tracked wallet list projection.
type SavedWalletsView struct {
	Rows  []SavedWalletRow
	Empty string
}

// SavedWallets projects the saved-wallet store in snapshot order.
func SavedWallets(wallets []store.SavedWallet) SavedWalletsView {
	if len(wallets) == 0 {
		return SavedWalletsView{Empty: EmptySaved}
	}

	rows := make([]SavedWalletRow, 0, len(wallets))
	for _, w := range wallets {
		nickname := sanitize(w.Nickname)
		if nickname == "" {
			nickname = "Unnamed Wallet"
		}
		source := w.Source
		if source == "" {
			source = store.SourceScanner
		}
		rows = append(rows, SavedWalletRow{
			Address:     w.Address,
			Nickname:    nickname,
			Source:      source,
			PnL:         fmt.Sprintf("$%.2f", w.PnL),
			PnLPositive: w.PnL >= 0,
			WinRate:     fmt.Sprintf("%.1f%% WR", w.WinRate),
			SavedAt:     formatDateTime(w.SavedAt.Time),
			Alerts:      fmt.Sprintf("%d", w.TotalAlerts),
		})
	}
	return SavedWalletsView{Rows: rows}
}

// TriggerRuleView is one trigger rule as editable form fields.
type TriggerRuleView struct {
	Enabled     bool
	MinAmount   string
	MaxOddsPct  string
	DormantDays string
	MaxTx       string
}

// TriggerConfigView is the trigger configuration form projection.
type TriggerConfigView struct {
	Loaded      bool
	Categories  []string
	RiskyBet    TriggerRuleView
	WhaleWakeup TriggerRuleView
	FreshWallet TriggerRuleView
}

// TriggerConfig projects the trigger configuration. Odds are stored as a
// fraction and displayed as a percentage.
func TriggerConfig(cfg *store.TriggerConfig) TriggerConfigView {
	if cfg == nil {
		return TriggerConfigView{}
	}

	return TriggerConfigView{
		Loaded:     true,
		Categories: append([]string(nil), cfg.Categories...),
		RiskyBet: TriggerRuleView{
			Enabled:    cfg.RiskyBet.Enabled,
			MinAmount:  fmt.Sprintf("%.0f", cfg.RiskyBet.MinAmount),
			MaxOddsPct: fmt.Sprintf("%.0f", cfg.RiskyBet.MaxOdds*100),
		},
		WhaleWakeup: TriggerRuleView{
			Enabled:     cfg.WhaleWakeup.Enabled,
			MinAmount:   fmt.Sprintf("%.0f", cfg.WhaleWakeup.MinAmount),
			DormantDays: fmt.Sprintf("%d", cfg.WhaleWakeup.DormantDays),
		},
		FreshWallet: TriggerRuleView{
			Enabled:   cfg.FreshWallet.Enabled,
			MinAmount: fmt.Sprintf("%.0f", cfg.FreshWallet.MinAmount),
			MaxTx:     fmt.Sprintf("%d", cfg.FreshWallet.MaxTx),
		},
	}
}
