package api

import (
	"context"
	"fmt"

	"github.com/polyscope/dashboard/internal/store"
)

// HFTStatus fetches the scanner stats bundle.
func (c *Client) HFTStatus(ctx context.Context) (store.ScannerStats, error) {
	var resp struct {
		envelope
		Stats store.ScannerStats `json:"stats"`
	}
	if err := c.get(ctx, "/api/hft/status", &resp); err != nil {
		return store.ScannerStats{}, err
	}
	return resp.Stats, nil
}

// HFTWallets fetches the full wallet list.
func (c *Client) HFTWallets(ctx context.Context) ([]store.Wallet, error) {
	var resp struct {
		envelope
		Wallets []store.Wallet `json:"wallets"`
	}
	if err := c.get(ctx, "/api/hft/wallets", &resp); err != nil {
		return nil, err
	}
	return resp.Wallets, nil
}

// HFTMarkets fetches the active 15-minute markets.
func (c *Client) HFTMarkets(ctx context.Context) ([]store.Market, error) {
	var resp struct {
		envelope
		Markets []store.Market `json:"markets"`
	}
	if err := c.get(ctx, "/api/hft/markets", &resp); err != nil {
		return nil, err
	}
	return resp.Markets, nil
}

// HFTSignals fetches the most recent signals, newest first.
func (c *Client) HFTSignals(ctx context.Context, limit int) ([]store.Signal, error) {
	var resp struct {
		envelope
		Signals []store.Signal `json:"signals"`
	}
	path := fmt.Sprintf("/api/hft/signals?limit=%d", limit)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Signals, nil
}

// HFTToggle flips the scanner and returns the authoritative running state.
func (c *Client) HFTToggle(ctx context.Context) (bool, error) {
	var resp struct {
		envelope
		Running bool `json:"running"`
	}
	if err := c.post(ctx, "/api/hft/toggle", nil, &resp); err != nil {
		return false, err
	}
	return resp.Running, nil
}

// RefreshMarkets asks the server to re-run market discovery. The response
// does not echo the market list; callers reload the snapshot afterwards.
func (c *Client) RefreshMarkets(ctx context.Context) error {
	var resp struct{ envelope }
	return c.post(ctx, "/api/hft/markets/refresh", nil, &resp)
}

// AddWalletRequest is the add-wallet command payload.
type AddWalletRequest struct {
	Address          string  `json:"address"`
	Nickname         string  `json:"nickname"`
	CapitalAllocated float64 `json:"capital_allocated"`
	PercentPerTrade  float64 `json:"percent_per_trade"`
}

// AddWallet registers a new copied wallet.
func (c *Client) AddWallet(ctx context.Context, req AddWalletRequest) error {
	var resp struct{ envelope }
	return c.post(ctx, "/api/hft/wallets/add", req, &resp)
}

// RemoveWallet unregisters a wallet by address.
func (c *Client) RemoveWallet(ctx context.Context, address string) error {
	var resp struct{ envelope }
	body := map[string]string{"address": address}
	return c.post(ctx, "/api/hft/wallets/remove", body, &resp)
}

// UpdateWalletRequest is the update-wallet command payload. Stop-loss and
// take-profit stay nil when not configured; nil is sent as null, distinct
// from zero.
type UpdateWalletRequest struct {
	Address          string   `json:"address"`
	CapitalAllocated float64  `json:"capital_allocated"`
	PercentPerTrade  float64  `json:"percent_per_trade"`
	MaxDailyTrades   int      `json:"max_daily_trades"`
	StopLossPercent  *float64 `json:"sl_percent"`
	TakeProfitPct    *float64 `json:"tp_percent"`
	Enabled          bool     `json:"enabled"`
}

// UpdateWallet submits a wallet configuration change.
func (c *Client) UpdateWallet(ctx context.Context, req UpdateWalletRequest) error {
	var resp struct{ envelope }
	return c.post(ctx, "/api/hft/wallets/update", req, &resp)
}
