// Package ingest receives push events from the dashboard server and
// applies per-event merge rules to the domain stores.
package ingest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/polyscope/dashboard/internal/store"
)

// Named push-event channels. Payload shapes mirror the REST entities.
const (
	EventHFTSignal     = "hft_signal"
	EventTradeExecuted = "hft_trade_executed"
	EventHFTStatus     = "hft_status"
	EventInsiderAlert  = "insider_alert"
)

// Event is one push frame: a named event with a raw payload.
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ParseEvent parses a raw websocket frame.
func ParseEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("failed to unmarshal event frame: %w", err)
	}
	if ev.Name == "" {
		return Event{}, fmt.Errorf("event frame has no name")
	}
	return ev, nil
}

// signalPayload is the wire shape of an hft_signal payload. The timestamp
// arrives in whatever format the emitter used, so it is parsed leniently.
type signalPayload struct {
	Timestamp     string   `json:"timestamp"`
	WalletAddress string   `json:"wallet_address"`
	WalletName    string   `json:"wallet_name"`
	Side          string   `json:"side"`
	CryptoAsset   string   `json:"crypto_asset"`
	ValueUSD      *float64 `json:"value_usd"`
	LatencyMS     *int     `json:"latency_ms"`
}

// DecodeSignal decodes an hft_signal payload.
func DecodeSignal(data json.RawMessage) (store.Signal, error) {
	var p signalPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return store.Signal{}, fmt.Errorf("failed to decode signal: %w", err)
	}
	return store.Signal{
		Timestamp:     store.Time{Time: parseTimestamp(p.Timestamp)},
		WalletAddress: p.WalletAddress,
		WalletName:    p.WalletName,
		Side:          p.Side,
		CryptoAsset:   p.CryptoAsset,
		ValueUSD:      p.ValueUSD,
		LatencyMS:     p.LatencyMS,
	}, nil
}

// statusPayload is the wire shape of an hft_status payload.
type statusPayload struct {
	Running bool `json:"running"`
}

// DecodeStatus decodes a status payload into the running flag.
func DecodeStatus(data json.RawMessage) (bool, error) {
	var p statusPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return false, fmt.Errorf("failed to decode status: %w", err)
	}
	return p.Running, nil
}

// DecodeAlert decodes an insider_alert payload. The alert feed itself is
// refetched rather than merged; the decoded alert only feeds the optional
// notification path.
func DecodeAlert(data json.RawMessage) (store.Alert, error) {
	var a store.Alert
	if err := json.Unmarshal(data, &a); err != nil {
		return store.Alert{}, fmt.Errorf("failed to decode alert: %w", err)
	}
	return a, nil
}

// parseTimestamp accepts any server wire format, falling back to now so
// a signal with a mangled timestamp is still shown rather than dropped.
func parseTimestamp(v string) time.Time {
	if v == "" {
		return time.Now()
	}
	if t, err := store.ParseTime(v); err == nil {
		return t
	}
	return time.Now()
}
