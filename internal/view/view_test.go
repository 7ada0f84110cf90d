package view

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/polyscope/dashboard/internal/store"
)

func TestScannerStatusNeverLoaded(t *testing.T) {
	v := ScannerStatus(nil)
	if v.Loaded {
		t.Error("nil stats must render as not loaded")
	}
	if v.RunningLabel != "STOPPED" || v.ExecutionRate != "0%" || v.AvgLatency != "-" {
		t.Errorf("unexpected placeholders: %+v", v)
	}
}

func TestScannerStatusProjection(t *testing.T) {
	latency := 42
	v := ScannerStatus(&store.ScannerStats{
		Running:         true,
		SignalsReceived: 10,
		SignalsExecuted: 8,
		ExecutionRate:   80,
		MarketDiscovery: &store.MarketDiscoveryStats{ActiveMarkets: 4},
		Executor:        &store.ExecutorStats{AvgLatencyMS: &latency},
	})
	if v.RunningLabel != "RUNNING" {
		t.Errorf("expected RUNNING, got %s", v.RunningLabel)
	}
	if v.ExecutionRate != "80.0%" {
		t.Errorf("expected 80.0%%, got %s", v.ExecutionRate)
	}
	if v.ActiveMarkets != "4" || v.AvgLatency != "42ms" {
		t.Errorf("unexpected sub-bundle projection: %+v", v)
	}
}

func TestWalletsOptionalFieldsRenderEmpty(t *testing.T) {
	sl := 5.5
	v := Wallets([]store.Wallet{
		{Address: "0xa", CapitalAllocated: 100, PercentPerTrade: 10, StopLossPercent: &sl},
		{Address: "0xb", CapitalAllocated: 250, PercentPerTrade: 5},
	})
	if len(v.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(v.Rows))
	}
	if v.Rows[0].StopLoss != "5.5" {
		t.Errorf("expected configured stop loss 5.5, got %q", v.Rows[0].StopLoss)
	}
	if v.Rows[1].StopLoss != "" || v.Rows[1].TakeProfit != "" {
		t.Errorf("unset optionals must render empty, not zero: %+v", v.Rows[1])
	}
	if v.Rows[0].Name != "HFT Wallet" {
		t.Errorf("expected nickname fallback, got %q", v.Rows[0].Name)
	}
	if v.Rows[0].Allocation != "$100 | 10% per trade" {
		t.Errorf("unexpected allocation line %q", v.Rows[0].Allocation)
	}
}

func TestEmptyStates(t *testing.T) {
	if v := Wallets(nil); v.Empty != EmptyWallets {
		t.Errorf("unexpected wallets empty state %q", v.Empty)
	}
	if v := Markets(nil); v.Empty != EmptyMarkets {
		t.Errorf("unexpected markets empty state %q", v.Empty)
	}
	if v := Signals(nil); v.Empty != EmptySignals {
		t.Errorf("unexpected signals empty state %q", v.Empty)
	}
	if v := Alerts(nil); v.Empty != EmptyAlerts {
		t.Errorf("unexpected alerts empty state %q", v.Empty)
	}
	if v := SavedWallets(nil); v.Empty != EmptySaved {
		t.Errorf("unexpected saved empty state %q", v.Empty)
	}
}

func TestSignalsDisplayCap(t *testing.T) {
	signals := make([]store.Signal, 35)
	for i := range signals {
		signals[i] = store.Signal{WalletAddress: fmt.Sprintf("0x%02d", i), Side: "BUY"}
	}

	v := Signals(signals)
	if len(v.Rows) != SignalDisplayLimit {
		t.Fatalf("expected %d displayed rows, got %d", SignalDisplayLimit, len(v.Rows))
	}
	if v.Retained != 35 {
		t.Errorf("expected 35 retained, got %d", v.Retained)
	}
	if !v.Rows[0].Buy {
		t.Error("BUY side must flag the row")
	}
}

func TestSignalsWalletNameFallback(t *testing.T) {
	v := Signals([]store.Signal{
		{WalletAddress: "0x1234567890abcdef1234", Side: "SELL"},
	})
	if got := v.Rows[0].Wallet; got != "0x1234...1234" {
		t.Errorf("expected truncated address fallback, got %q", got)
	}
	if v.Rows[0].Buy {
		t.Error("SELL side must not flag the row as buy")
	}
}

func TestSignalsDeterministic(t *testing.T) {
	val := 99.5
	signals := []store.Signal{{
		Timestamp:     store.Time{Time: time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)},
		WalletAddress: "0xabc",
		WalletName:    "alpha",
		Side:          "BUY",
		ValueUSD:      &val,
	}}
	a := Signals(signals)
	b := Signals(signals)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical snapshots must render identical views")
	}
	if a.Rows[0].Value != "$99.50" {
		t.Errorf("unexpected value format %q", a.Rows[0].Value)
	}
	if a.Rows[0].Time != "09:30:00" {
		t.Errorf("unexpected clock format %q", a.Rows[0].Time)
	}
}

func TestMarketsProjection(t *testing.T) {
	v := Markets([]store.Market{{
		CryptoAsset:          "BTC",
		Direction:            "UP",
		Question:             "Will BTC rise in the next 15 minutes?",
		TimeRemainingSeconds: 125,
		YesPrice:             0.635,
	}})
	row := v.Rows[0]
	if row.Asset != "BTC UP" {
		t.Errorf("unexpected asset %q", row.Asset)
	}
	if row.TimeRemaining != "2m 5s" {
		t.Errorf("unexpected countdown %q", row.TimeRemaining)
	}
	if row.YesPrice != "63.5%" {
		t.Errorf("unexpected yes price %q", row.YesPrice)
	}
}

func TestAlertsFallbacksAndPnL(t *testing.T) {
	v := Alerts([]store.Alert{
		{
			AlertType:      "RISKY_BET",
			WalletAddress:  "0x1234567890abcdef1234",
			MarketQuestion: "Question?",
			WalletStats:    store.WalletStats{PnL: -120, WinRate: 33},
		},
		{WalletAddress: "0xb"},
	})
	if v.Cards[0].TypeLabel != "RISKY BET" {
		t.Errorf("expected underscore replaced, got %q", v.Cards[0].TypeLabel)
	}
	if v.Cards[0].PnLPositive {
		t.Error("negative pnl must not flag positive")
	}
	if v.Cards[1].TypeLabel != "UNKNOWN" || v.Cards[1].Market != "Unknown Market" {
		t.Errorf("missing-field fallbacks broken: %+v", v.Cards[1])
	}
}

func TestTriggerConfigOddsAsPercent(t *testing.T) {
	if v := TriggerConfig(nil); v.Loaded {
		t.Error("nil config must render as not loaded")
	}

	v := TriggerConfig(&store.TriggerConfig{
		RiskyBet:    store.TriggerRule{Enabled: true, MinAmount: 500, MaxOdds: 0.1},
		WhaleWakeup: store.TriggerRule{MinAmount: 10000, DormantDays: 30},
		FreshWallet: store.TriggerRule{MaxTx: 10},
	})
	if v.RiskyBet.MaxOddsPct != "10" {
		t.Errorf("expected fraction rendered as percent, got %q", v.RiskyBet.MaxOddsPct)
	}
	if v.WhaleWakeup.DormantDays != "30" || v.FreshWallet.MaxTx != "10" {
		t.Errorf("unexpected rule projection: %+v", v)
	}
}

func TestSanitizeStripsControlCharacters(t *testing.T) {
	in := "evil\x1b[31mname\r\n"
	if got := sanitize(in); got != "evil[31mname" {
		t.Errorf("sanitize(%q) = %q", in, got)
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("héllo wörld", 5); got != "héllo..." {
		t.Errorf("rune-safe truncation broken: %q", got)
	}
	if got := truncateText("short", 10); got != "short" {
		t.Errorf("expected unchanged text, got %q", got)
	}
}

func TestFormatTimeRemainingClamp(t *testing.T) {
	if got := formatTimeRemaining(-5); got != "ended" {
		t.Errorf("negative remaining must clamp, got %q", got)
	}
	if got := formatTimeRemaining(0); got != "ended" {
		t.Errorf("zero remaining must clamp, got %q", got)
	}
	if got := formatTimeRemaining(45); got != "45s" {
		t.Errorf("unexpected sub-minute format %q", got)
	}
}
