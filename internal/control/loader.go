// Package control implements the snapshot loader and command dispatcher.
//
// Both layers share one consistency policy: the store is mutated only on
// the runtime task loop, a failed request leaves prior state intact, and
// the last mutation applied wins even if it corresponds to an older
// upstream fact. In-flight requests are never cancelled when superseded;
// completions apply in completion order.
package control

import (
	"context"
	"log/slog"

	"github.com/polyscope/dashboard/internal/api"
	"github.com/polyscope/dashboard/internal/runtime"
	"github.com/polyscope/dashboard/internal/store"
)

// Feed limits used for snapshot fetches.
const (
	SignalFetchLimit = 50
	AlertFetchLimit  = 50
)

// Loader issues one full-snapshot fetch per domain per call. A well-formed
// success envelope replaces the corresponding store wholesale; any failure
// is logged and leaves the store untouched. Stale-but-consistent data is
// preferred over a partial or empty overwrite. There is no retry; the
// poller's next tick is the only recovery mechanism.
type Loader struct {
	client *api.Client
	stores *store.Stores
	loop   *runtime.Loop
}

// NewLoader creates a snapshot loader.
func NewLoader(client *api.Client, stores *store.Stores, loop *runtime.Loop) *Loader {
	return &Loader{client: client, stores: stores, loop: loop}
}

// LoadHFTStatus refreshes the hft stats singleton.
func (l *Loader) LoadHFTStatus(ctx context.Context) {
	go func() {
		stats, err := l.client.HFTStatus(ctx)
		l.loop.Post(func() {
			if err != nil {
				slog.Warn("snapshot_failed", "domain", store.DomainHFTStats, "error", err)
				return
			}
			l.stores.HFTStats.Replace(stats)
		})
	}()
}

// LoadWallets refreshes the hft wallet list.
func (l *Loader) LoadWallets(ctx context.Context) {
	go func() {
		wallets, err := l.client.HFTWallets(ctx)
		l.loop.Post(func() {
			if err != nil {
				slog.Warn("snapshot_failed", "domain", store.DomainWallets, "error", err)
				return
			}
			l.stores.Wallets.ReplaceAll(wallets)
		})
	}()
}

// LoadMarkets refreshes the active market list.
func (l *Loader) LoadMarkets(ctx context.Context) {
	go func() {
		markets, err := l.client.HFTMarkets(ctx)
		l.loop.Post(func() {
			if err != nil {
				slog.Warn("snapshot_failed", "domain", store.DomainMarkets, "error", err)
				return
			}
			l.stores.Markets.ReplaceAll(markets)
		})
	}()
}

// LoadSignals refreshes the signal feed.
func (l *Loader) LoadSignals(ctx context.Context) {
	go func() {
		signals, err := l.client.HFTSignals(ctx, SignalFetchLimit)
		l.loop.Post(func() {
			if err != nil {
				slog.Warn("snapshot_failed", "domain", store.DomainSignals, "error", err)
				return
			}
			l.stores.Signals.ReplaceAll(signals)
		})
	}()
}

// LoadInsiderStats refreshes the insider stats singleton.
func (l *Loader) LoadInsiderStats(ctx context.Context) {
	go func() {
		stats, err := l.client.InsiderStats(ctx)
		l.loop.Post(func() {
			if err != nil {
				slog.Warn("snapshot_failed", "domain", store.DomainInsiderStats, "error", err)
				return
			}
			l.stores.InsiderStats.Replace(stats)
		})
	}()
}

// LoadAlerts refreshes the insider alert feed.
func (l *Loader) LoadAlerts(ctx context.Context) {
	go func() {
		alerts, err := l.client.InsiderAlerts(ctx, AlertFetchLimit)
		l.loop.Post(func() {
			if err != nil {
				slog.Warn("snapshot_failed", "domain", store.DomainAlerts, "error", err)
				return
			}
			l.stores.Alerts.ReplaceAll(alerts)
		})
	}()
}

// LoadSavedWallets refreshes the tracked wallet list.
func (l *Loader) LoadSavedWallets(ctx context.Context) {
	go func() {
		wallets, err := l.client.SavedWallets(ctx)
		l.loop.Post(func() {
			if err != nil {
				slog.Warn("snapshot_failed", "domain", store.DomainSavedWallets, "error", err)
				return
			}
			l.stores.SavedWallets.ReplaceAll(wallets)
		})
	}()
}

// LoadTriggerConfig refreshes the insider trigger configuration.
func (l *Loader) LoadTriggerConfig(ctx context.Context) {
	go func() {
		cfg, err := l.client.InsiderConfig(ctx)
		l.loop.Post(func() {
			if err != nil {
				slog.Warn("snapshot_failed", "domain", store.DomainTriggerConfig, "error", err)
				return
			}
			l.stores.TriggerConfig.Replace(cfg)
			// The config GET also carries the live running flag.
			l.stores.InsiderStats.SetRunning(cfg.Running)
		})
	}()
}

// LoadHFTModule fetches every hft domain, as on module activation.
func (l *Loader) LoadHFTModule(ctx context.Context) {
	l.LoadHFTStatus(ctx)
	l.LoadWallets(ctx)
	l.LoadMarkets(ctx)
	l.LoadSignals(ctx)
}

// LoadInsiderModule fetches every insider domain, as on module activation.
func (l *Loader) LoadInsiderModule(ctx context.Context) {
	l.LoadTriggerConfig(ctx)
	l.LoadInsiderStats(ctx)
	l.LoadAlerts(ctx)
	l.LoadSavedWallets(ctx)
}
