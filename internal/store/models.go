// Package store holds the per-domain in-memory state of the dashboard.
package store

// Wallet is a copied-wallet configuration tracked by the hft scanner.
// Address is the identity key, case-sensitive and unique.
type Wallet struct {
	Address          string   `json:"address"`
	Nickname         string   `json:"nickname"`
	CapitalAllocated float64  `json:"capital_allocated"`
	PercentPerTrade  float64  `json:"percent_per_trade"`
	MaxDailyTrades   int      `json:"max_daily_trades"`
	StopLossPercent  *float64 `json:"sl_percent,omitempty"`
	TakeProfitPct    *float64 `json:"tp_percent,omitempty"`
	Enabled          bool     `json:"enabled"`
}

// Market is a tradeable 15-minute market snapshot row. Markets carry no
// stable client-side identity; each snapshot replaces the full sequence.
type Market struct {
	CryptoAsset          string  `json:"crypto_asset"`
	Direction            string  `json:"direction"`
	Question             string  `json:"question"`
	TimeRemainingSeconds int     `json:"time_remaining_seconds"`
	YesPrice             float64 `json:"yes_price"`
}

// Signal is an immutable trade-signal event. Optional fields stay nil when
// the server did not provide them; nil is distinct from zero.
type Signal struct {
	Timestamp     Time     `json:"timestamp"`
	WalletAddress string   `json:"wallet_address"`
	WalletName    string   `json:"wallet_name"`
	Side          string   `json:"side"`
	CryptoAsset   string   `json:"crypto_asset,omitempty"`
	ValueUSD      *float64 `json:"value_usd,omitempty"`
	LatencyMS     *int     `json:"latency_ms,omitempty"`
}

// SignalCapacity bounds the signal ring buffer. Events beyond capacity are
// evicted from the tail, never the head.
const SignalCapacity = 100

// MarketDiscoveryStats is the market-discovery sub-bundle of ScannerStats.
type MarketDiscoveryStats struct {
	ActiveMarkets int `json:"active_markets"`
}

// ExecutorStats is the executor sub-bundle of ScannerStats.
type ExecutorStats struct {
	TradesExecuted int  `json:"trades_executed"`
	AvgLatencyMS   *int `json:"avg_latency_ms,omitempty"`
}

// ScannerStats is the singleton aggregate counter bundle for the hft
// module. It is always replaced wholesale, never field-merged.
type ScannerStats struct {
	Running         bool                  `json:"running"`
	SignalsReceived int                   `json:"signals_received"`
	SignalsExecuted int                   `json:"signals_executed"`
	ExecutionRate   float64               `json:"execution_rate"`
	MarketDiscovery *MarketDiscoveryStats `json:"market_discovery,omitempty"`
	Executor        *ExecutorStats        `json:"executor,omitempty"`
}

// WalletStats is the nested performance bundle attached to alerts and
// saved wallets.
type WalletStats struct {
	PnL         float64 `json:"pnl"`
	WinRate     float64 `json:"win_rate"`
	ROI         float64 `json:"roi,omitempty"`
	TotalTrades int     `json:"total_trades"`
}

// Alert is an insider-detection alert as served by the insider module.
type Alert struct {
	AlertType      string      `json:"alert_type"`
	WalletAddress  string      `json:"wallet_address"`
	Nickname       string      `json:"nickname,omitempty"`
	MarketQuestion string      `json:"market_question"`
	MarketURL      string      `json:"market_url"`
	TriggerDetails string      `json:"trigger_details"`
	BetDetails     string      `json:"bet_details"`
	WalletStats    WalletStats `json:"wallet_stats"`
	Timestamp      Time        `json:"timestamp"`
}

// Saved-wallet sources.
const (
	SourceManual  = "MANUAL"
	SourceScanner = "SCANNER"
)

// SavedWallet is a wallet tracked in the insider module, keyed by address.
type SavedWallet struct {
	Address     string    `json:"address"`
	Nickname    string    `json:"nickname"`
	Source      string    `json:"source"`
	PnL         float64   `json:"pnl"`
	WinRate     float64   `json:"win_rate"`
	TotalAlerts int    `json:"total_alerts"`
	SavedAt     Time   `json:"saved_at"`
}

// InsiderStats is the singleton counter bundle for the insider module.
type InsiderStats struct {
	Running         bool  `json:"running"`
	AlertsGenerated int   `json:"alerts_generated"`
	MarketsScanned  int   `json:"markets_scanned"`
	LastScan        *Time `json:"last_scan,omitempty"`
}

// TriggerRule is one insider-detection trigger with its thresholds.
type TriggerRule struct {
	Enabled     bool    `json:"enabled"`
	MinAmount   float64 `json:"min_amount"`
	MaxOdds     float64 `json:"max_odds,omitempty"`
	DormantDays int     `json:"dormant_days,omitempty"`
	MaxTx       int     `json:"max_tx,omitempty"`
}

// TriggerConfig is the full insider scanner configuration. It is a value
// object: loaded wholesale, edited locally, submitted wholesale. Running
// is echoed on GET but never persisted on POST; the server owns it.
type TriggerConfig struct {
	Categories  []string    `json:"categories"`
	RiskyBet    TriggerRule `json:"risky_bet"`
	WhaleWakeup TriggerRule `json:"whale_wakeup"`
	FreshWallet TriggerRule `json:"fresh_wallet"`
	Running     bool        `json:"running,omitempty"`
}
