package runtime

import (
	"context"
	"log/slog"
	"time"
)

// Poller invokes a snapshot load on a fixed interval while its view is
// visible. Ticks while the view is hidden are skipped entirely, not
// queued; the poller is a sampling policy, not a correctness mechanism.
type Poller struct {
	name     string
	interval time.Duration
	visible  func() bool
	load     func()
}

// NewPoller creates a poller. visible reports whether the corresponding
// view is the active one; load issues the snapshot fetch.
func NewPoller(name string, interval time.Duration, visible func() bool, load func()) *Poller {
	return &Poller{name: name, interval: interval, visible: visible, load: load}
}

// Run ticks until the context is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	slog.Info("poller_started", "name", p.name, "interval", p.interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("poller_stopped", "name", p.name)
			return
		case <-ticker.C:
			if !p.visible() {
				continue
			}
			p.load()
		}
	}
}
