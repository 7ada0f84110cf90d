package control

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/polyscope/dashboard/internal/api"
	"github.com/polyscope/dashboard/internal/runtime"
	"github.com/polyscope/dashboard/internal/store"
)

// Severity classifies a user-facing notice.
type Severity int

// Notice severities.
const (
	NoticeInfo Severity = iota
	NoticeError
)

// NoticeFunc surfaces a message to the user. Called on the task loop.
type NoticeFunc func(severity Severity, message string)

// Wallet defaults applied by the add-wallet form.
const (
	DefaultCapitalAllocated = 100
	DefaultPercentPerTrade  = 10
)

// Dispatcher issues mutating commands. On success it either applies a
// targeted store mutation (when the server echoes the changed entity) or
// reloads the domain snapshot (re-synchronization over optimistic local
// mutation). On failure it surfaces the server message verbatim and
// mutates nothing. Commands are not queued or serialized against each
// other; duplicate submissions are the server's problem to reject.
//
// Every done callback runs on the task loop after the command settled,
// with a nil error on success. The UI uses it to unlock the triggering
// control and revert speculative visual state.
type Dispatcher struct {
	client *api.Client
	stores *store.Stores
	loader *Loader
	loop   *runtime.Loop
	notify NoticeFunc
}

// NewDispatcher creates a command dispatcher. notify may be nil.
func NewDispatcher(client *api.Client, stores *store.Stores, loader *Loader, loop *runtime.Loop, notify NoticeFunc) *Dispatcher {
	if notify == nil {
		notify = func(Severity, string) {}
	}
	return &Dispatcher{client: client, stores: stores, loader: loader, loop: loop, notify: notify}
}

// settle reports a command failure to the user and invokes done. Runs on
// the task loop.
func (d *Dispatcher) settle(op string, err error, done func(error)) {
	d.loop.Post(func() {
		if err != nil {
			slog.Warn("command_failed", "op", op, "error", err)
			d.notify(NoticeError, api.UserMessage(err))
		}
		if done != nil {
			done(err)
		}
	})
}

// AddWallet registers a copied wallet with form defaults, then reloads
// the wallet snapshot; the add response does not echo the wallet.
func (d *Dispatcher) AddWallet(ctx context.Context, address, nickname string, done func(error)) {
	go func() {
		req := api.AddWalletRequest{
			Address:          address,
			Nickname:         nickname,
			CapitalAllocated: DefaultCapitalAllocated,
			PercentPerTrade:  DefaultPercentPerTrade,
		}
		err := d.client.AddWallet(ctx, req)
		if err == nil {
			d.loader.LoadWallets(ctx)
		}
		d.settle("add_wallet", err, done)
	}()
}

// RemoveWallet unregisters a wallet, then reloads the wallet snapshot.
func (d *Dispatcher) RemoveWallet(ctx context.Context, address string, done func(error)) {
	go func() {
		err := d.client.RemoveWallet(ctx, address)
		if err == nil {
			d.loader.LoadWallets(ctx)
		}
		d.settle("remove_wallet", err, done)
	}()
}

// UpdateWallet submits a wallet configuration change, then reloads the
// wallet snapshot.
func (d *Dispatcher) UpdateWallet(ctx context.Context, req api.UpdateWalletRequest, done func(error)) {
	go func() {
		err := d.client.UpdateWallet(ctx, req)
		if err == nil {
			d.loader.LoadWallets(ctx)
		}
		d.settle("update_wallet", err, done)
	}()
}

// ToggleHFT flips the hft scanner. The server's running value is
// authoritative and applied as a targeted mutation, even if it differs
// from the locally expected toggle target.
func (d *Dispatcher) ToggleHFT(ctx context.Context, done func(error)) {
	go func() {
		running, err := d.client.HFTToggle(ctx)
		if err == nil {
			d.loop.Post(func() { d.stores.HFTStats.SetRunning(running) })
		}
		d.settle("toggle_hft", err, done)
	}()
}

// RefreshMarkets triggers server-side market discovery, then reloads the
// market snapshot.
func (d *Dispatcher) RefreshMarkets(ctx context.Context, done func(error)) {
	go func() {
		err := d.client.RefreshMarkets(ctx)
		if err == nil {
			d.loader.LoadMarkets(ctx)
		}
		d.settle("refresh_markets", err, done)
	}()
}

// ToggleInsider starts or stops the insider scanner. The echoed running
// value is authoritative.
func (d *Dispatcher) ToggleInsider(ctx context.Context, enabled bool, done func(error)) {
	go func() {
		running, err := d.client.InsiderToggle(ctx, enabled)
		if err == nil {
			d.loop.Post(func() { d.stores.InsiderStats.SetRunning(running) })
		}
		d.settle("toggle_insider", err, done)
	}()
}

// ScanNow triggers a manual insider scan, reports the alert count, and
// reloads the alert and stats snapshots.
func (d *Dispatcher) ScanNow(ctx context.Context, done func(error)) {
	go func() {
		found, err := d.client.ScanNow(ctx)
		if err == nil {
			d.loop.Post(func() {
				d.notify(NoticeInfo, fmt.Sprintf("scan complete: %d alert(s) found", found))
			})
			d.loader.LoadAlerts(ctx)
			d.loader.LoadInsiderStats(ctx)
		}
		d.settle("scan_now", err, done)
	}()
}

// SaveTriggerConfig submits the trigger configuration wholesale. On
// success the submitted value replaces the local store; the running flag
// keeps its last known value since the server does not echo it.
func (d *Dispatcher) SaveTriggerConfig(ctx context.Context, cfg store.TriggerConfig, done func(error)) {
	go func() {
		err := d.client.SaveInsiderConfig(ctx, cfg)
		if err == nil {
			d.loop.Post(func() {
				if cur := d.stores.TriggerConfig.Get(); cur != nil {
					cfg.Running = cur.Running
				}
				d.stores.TriggerConfig.Replace(cfg)
				d.notify(NoticeInfo, "configuration saved")
			})
		}
		d.settle("save_trigger_config", err, done)
	}()
}

// SaveInsiderWallet tracks a wallet, then reloads the saved list.
func (d *Dispatcher) SaveInsiderWallet(ctx context.Context, address, nickname string, done func(error)) {
	go func() {
		err := d.client.SaveWallet(ctx, address, nickname)
		if err == nil {
			d.loader.LoadSavedWallets(ctx)
		}
		d.settle("save_insider_wallet", err, done)
	}()
}

// RemoveSavedWallet stops tracking a wallet, then reloads the saved list.
func (d *Dispatcher) RemoveSavedWallet(ctx context.Context, address string, done func(error)) {
	go func() {
		err := d.client.RemoveSavedWallet(ctx, address)
		if err == nil {
			d.loader.LoadSavedWallets(ctx)
		}
		d.settle("remove_saved_wallet", err, done)
	}()
}

// FetchWalletStats performs a one-shot stats lookup and surfaces the
// result as a notice. No store is mutated.
func (d *Dispatcher) FetchWalletStats(ctx context.Context, address string, done func(error)) {
	go func() {
		res, err := d.client.WalletStats(ctx, address)
		if err == nil {
			d.loop.Post(func() {
				d.notify(NoticeInfo, fmt.Sprintf(
					"%s: pnl $%.2f, win rate %.1f%%, roi %.1f%%, %d trades, %d alert(s)",
					shortAddress(address), res.Stats.PnL, res.Stats.WinRate,
					res.Stats.ROI, res.Stats.TotalTrades, res.AlertsCount))
			})
		}
		d.settle("wallet_stats", err, done)
	}()
}

// FollowWallet copies an insider wallet address into the hft module with
// a derived nickname and the standard form defaults. The copy is by
// value; the two modules never share a record.
func (d *Dispatcher) FollowWallet(ctx context.Context, address string, done func(error)) {
	nickname := "Insider " + shortAddress(address)
	d.AddWallet(ctx, address, nickname, done)
}

// shortAddress shortens a wallet address for display.
func shortAddress(addr string) string {
	if len(addr) <= 8 {
		return addr
	}
	return addr[:8]
}
