package view

import (
	"fmt"
	"strconv"

	"github.com/polyscope/dashboard/internal/store"
)

// SignalDisplayLimit caps the rendered signal feed to the most recent
// entries of the up-to-100 retained.
const SignalDisplayLimit = 20

// Empty-state messages. An empty collection and a never-loaded one render
// identically; no separate loading state is modeled.
const (
	EmptyWallets = "No wallets configured"
	EmptyMarkets = "No active 15-min markets"
	EmptySignals = "Waiting for signals..."
)

// ScannerStatusView is the hft status panel projection.
type ScannerStatusView struct {
	Loaded          bool
	Running         bool
	RunningLabel    string
	SignalsReceived int
	SignalsExecuted int
	ExecutionRate   string
	ActiveMarkets   string
	AvgLatency      string
}

// ScannerStatus projects the hft stats singleton. A nil snapshot renders
// as stopped with placeholder counters.
func ScannerStatus(stats *store.ScannerStats) ScannerStatusView {
	v := ScannerStatusView{
		RunningLabel:  "STOPPED",
		ExecutionRate: "0%",
		ActiveMarkets: "-",
		AvgLatency:    "-",
	}
	if stats == nil {
		return v
	}

	v.Loaded = true
	v.Running = stats.Running
	if stats.Running {
		v.RunningLabel = "RUNNING"
	}
	v.SignalsReceived = stats.SignalsReceived
	v.SignalsExecuted = stats.SignalsExecuted
	v.ExecutionRate = fmt.Sprintf("%.1f%%", stats.ExecutionRate)
	if stats.MarketDiscovery != nil {
		v.ActiveMarkets = fmt.Sprintf("%d", stats.MarketDiscovery.ActiveMarkets)
	}
	if stats.Executor != nil && stats.Executor.AvgLatencyMS != nil {
		v.AvgLatency = fmt.Sprintf("%dms", *stats.Executor.AvgLatencyMS)
	}
	return v
}

// WalletRow is one rendered wallet entry. The trailing string fields are
// the editable form values for the config dialog; optional fields render
// as empty strings when not configured, never as zero.
type WalletRow struct {
	Address     string
	Name        string
	Allocation  string
	StatusLabel string
	Enabled     bool

	Capital    string
	Percent    string
	MaxTrades  string
	StopLoss   string
	TakeProfit string
}

// WalletsView is the wallet list projection.
type WalletsView struct {
	Rows  []WalletRow
	Empty string
}

// Wallets projects the wallet store in snapshot order.
func Wallets(wallets []store.Wallet) WalletsView {
	if len(wallets) == 0 {
		return WalletsView{Empty: EmptyWallets}
	}

	rows := make([]WalletRow, 0, len(wallets))
	for _, w := range wallets {
		name := sanitize(w.Nickname)
		if name == "" {
			name = "HFT Wallet"
		}
		status := "Inactive"
		if w.Enabled {
			status = "Active"
		}
		row := WalletRow{
			Address:     w.Address,
			Name:        name,
			Allocation:  fmt.Sprintf("$%.0f | %.0f%% per trade", w.CapitalAllocated, w.PercentPerTrade),
			StatusLabel: status,
			Enabled:     w.Enabled,
			Capital:     strconv.FormatFloat(w.CapitalAllocated, 'f', -1, 64),
			Percent:     strconv.FormatFloat(w.PercentPerTrade, 'f', -1, 64),
			MaxTrades:   strconv.Itoa(w.MaxDailyTrades),
		}
		if w.StopLossPercent != nil {
			row.StopLoss = strconv.FormatFloat(*w.StopLossPercent, 'f', -1, 64)
		}
		if w.TakeProfitPct != nil {
			row.TakeProfit = strconv.FormatFloat(*w.TakeProfitPct, 'f', -1, 64)
		}
		rows = append(rows, row)
	}
	return WalletsView{Rows: rows}
}

// MarketRow is one rendered market entry.
type MarketRow struct {
	Asset         string
	Question      string
	TimeRemaining string
	YesPrice      string
}

// MarketsView is the market table projection.
type MarketsView struct {
	Rows  []MarketRow
	Empty string
}

// Markets projects the market store in snapshot order.
func Markets(markets []store.Market) MarketsView {
	if len(markets) == 0 {
		return MarketsView{Empty: EmptyMarkets}
	}

	rows := make([]MarketRow, 0, len(markets))
	for _, m := range markets {
		rows = append(rows, MarketRow{
			Asset:         fmt.Sprintf("%s %s", m.CryptoAsset, m.Direction),
			Question:      truncateText(sanitize(m.Question), 60),
			TimeRemaining: formatTimeRemaining(m.TimeRemainingSeconds),
			YesPrice:      fmt.Sprintf("%.1f%%", m.YesPrice*100),
		})
	}
	return MarketsView{Rows: rows}
}

// SignalRow is one rendered signal feed entry.
type SignalRow struct {
	Time    string
	Wallet  string
	Side    string
	Asset   string
	Value   string
	Latency string
	Buy     bool
}

// SignalsView is the signal feed projection.
type SignalsView struct {
	Rows     []SignalRow
	Retained int
	Empty    string
}

// Signals projects the signal store, newest first, display capped.
func Signals(signals []store.Signal) SignalsView {
	if len(signals) == 0 {
		return SignalsView{Empty: EmptySignals}
	}

	limit := len(signals)
	if limit > SignalDisplayLimit {
		limit = SignalDisplayLimit
	}

	rows := make([]SignalRow, 0, limit)
	for _, s := range signals[:limit] {
		wallet := sanitize(s.WalletName)
		if wallet == "" {
			wallet = truncateAddress(s.WalletAddress)
		}
		row := SignalRow{
			Time:   formatClock(s.Timestamp.Time),
			Wallet: wallet,
			Side:   s.Side,
			Asset:  s.CryptoAsset,
			Buy:    s.Side == "BUY",
		}
		if s.ValueUSD != nil {
			row.Value = fmt.Sprintf("$%.2f", *s.ValueUSD)
		}
		if s.LatencyMS != nil {
			row.Latency = fmt.Sprintf("%dms", *s.LatencyMS)
		}
		rows = append(rows, row)
	}
	return SignalsView{Rows: rows, Retained: len(signals)}
}
