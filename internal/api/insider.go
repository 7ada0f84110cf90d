package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/polyscope/dashboard/internal/store"
)

// InsiderStats fetches the insider scanner stats bundle.
func (c *Client) InsiderStats(ctx context.Context) (store.InsiderStats, error) {
	var resp struct {
		envelope
		Stats store.InsiderStats `json:"stats"`
	}
	if err := c.get(ctx, "/api/insider/stats", &resp); err != nil {
		return store.InsiderStats{}, err
	}
	return resp.Stats, nil
}

// InsiderAlerts fetches the alert feed in server-defined order.
func (c *Client) InsiderAlerts(ctx context.Context, limit int) ([]store.Alert, error) {
	var resp struct {
		envelope
		Alerts []store.Alert `json:"alerts"`
	}
	path := fmt.Sprintf("/api/insider/alerts?limit=%d", limit)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Alerts, nil
}

// SavedWallets fetches the tracked wallet list.
func (c *Client) SavedWallets(ctx context.Context) ([]store.SavedWallet, error) {
	var resp struct {
		envelope
		Wallets []store.SavedWallet `json:"wallets"`
	}
	if err := c.get(ctx, "/api/insider/saved", &resp); err != nil {
		return nil, err
	}
	return resp.Wallets, nil
}

// InsiderConfig fetches the trigger configuration. The server wraps it as
// {success, config} and includes the live running flag.
func (c *Client) InsiderConfig(ctx context.Context) (store.TriggerConfig, error) {
	var resp struct {
		envelope
		Config store.TriggerConfig `json:"config"`
	}
	if err := c.get(ctx, "/api/insider/config", &resp); err != nil {
		return store.TriggerConfig{}, err
	}
	return resp.Config, nil
}

// SaveInsiderConfig submits the trigger configuration wholesale. The
// running flag is owned by the server and stripped from the payload.
func (c *Client) SaveInsiderConfig(ctx context.Context, cfg store.TriggerConfig) error {
	payload := cfg
	payload.Running = false
	var resp struct{ envelope }
	return c.post(ctx, "/api/insider/config", payload, &resp)
}

// InsiderToggle starts or stops the scanner and returns the authoritative
// running state, which may differ from the requested one.
func (c *Client) InsiderToggle(ctx context.Context, enabled bool) (bool, error) {
	var resp struct {
		envelope
		Running bool `json:"running"`
	}
	body := map[string]bool{"enabled": enabled}
	if err := c.post(ctx, "/api/insider/toggle", body, &resp); err != nil {
		return false, err
	}
	return resp.Running, nil
}

// ScanNow triggers a manual scan and returns the number of alerts found.
func (c *Client) ScanNow(ctx context.Context) (int, error) {
	var resp struct {
		envelope
		AlertsFound int `json:"alerts_found"`
	}
	if err := c.post(ctx, "/api/insider/scan_now", nil, &resp); err != nil {
		return 0, err
	}
	return resp.AlertsFound, nil
}

// SaveWallet tracks a wallet in the insider module.
func (c *Client) SaveWallet(ctx context.Context, address, nickname string) error {
	var resp struct{ envelope }
	body := map[string]string{"address": address, "nickname": nickname}
	return c.post(ctx, "/api/insider/save_wallet", body, &resp)
}

// RemoveSavedWallet stops tracking a wallet.
func (c *Client) RemoveSavedWallet(ctx context.Context, address string) error {
	var resp struct{ envelope }
	path := "/api/insider/saved/" + url.PathEscape(address)
	return c.delete(ctx, path, &resp)
}

// WalletStatsResult is the one-shot wallet stats lookup result.
type WalletStatsResult struct {
	Stats       store.WalletStats
	AlertsCount int
}

// WalletStats fetches fresh performance stats for one wallet.
func (c *Client) WalletStats(ctx context.Context, address string) (WalletStatsResult, error) {
	var resp struct {
		envelope
		Stats       store.WalletStats `json:"stats"`
		AlertsCount int               `json:"alerts_count"`
	}
	path := "/api/insider/wallet_stats/" + url.PathEscape(address)
	if err := c.get(ctx, path, &resp); err != nil {
		return WalletStatsResult{}, err
	}
	return WalletStatsResult{Stats: resp.Stats, AlertsCount: resp.AlertsCount}, nil
}
