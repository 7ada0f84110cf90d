package ingest

import (
	"context"
	"log/slog"

	"github.com/polyscope/dashboard/internal/control"
	"github.com/polyscope/dashboard/internal/runtime"
	"github.com/polyscope/dashboard/internal/store"
)

// AlertNotifier raises an out-of-band user notification for an insider
// alert. Implementations must not block.
type AlertNotifier interface {
	NotifyAlert(ctx context.Context, alert store.Alert)
}

// Ingestor applies the fixed merge rule for each event type. Ingestion is
// purely additive or corrective: it never removes entries that a snapshot
// would still show, except through the signal ring's capacity eviction.
type Ingestor struct {
	stores   *store.Stores
	loader   *control.Loader
	loop     *runtime.Loop
	notifier AlertNotifier
}

// NewIngestor creates an ingestor. notifier may be nil.
func NewIngestor(stores *store.Stores, loader *control.Loader, loop *runtime.Loop, notifier AlertNotifier) *Ingestor {
	return &Ingestor{stores: stores, loader: loader, loop: loop, notifier: notifier}
}

// HandleFrame parses one websocket frame and applies its merge rule.
// Unknown or malformed frames are logged and dropped; the stream is
// at-least-once and unordered, so nothing depends on any single frame.
func (in *Ingestor) HandleFrame(ctx context.Context, data []byte) {
	ev, err := ParseEvent(data)
	if err != nil {
		slog.Debug("event_parse_error", "error", err, "raw", string(data))
		return
	}

	switch ev.Name {
	case EventHFTSignal:
		in.handleSignal(ctx, ev)
	case EventTradeExecuted:
		// Aggregates are never accumulated locally; the server is the
		// source of truth.
		in.loader.LoadHFTStatus(ctx)
	case EventHFTStatus:
		in.handleStatus(ev)
	case EventInsiderAlert:
		in.handleAlert(ctx, ev)
	default:
		slog.Debug("event_ignored", "event", ev.Name)
	}
}

func (in *Ingestor) handleSignal(ctx context.Context, ev Event) {
	sig, err := DecodeSignal(ev.Data)
	if err != nil {
		slog.Warn("signal_decode_failed", "error", err)
		return
	}
	in.loop.Post(func() {
		in.stores.Signals.Prepend(sig)
	})
	// Push events do not carry aggregate counters.
	in.loader.LoadHFTStatus(ctx)
}

func (in *Ingestor) handleStatus(ev Event) {
	running, err := DecodeStatus(ev.Data)
	if err != nil {
		slog.Warn("status_decode_failed", "error", err)
		return
	}
	in.loop.Post(func() {
		in.stores.HFTStats.SetRunning(running)
	})
}

func (in *Ingestor) handleAlert(ctx context.Context, ev Event) {
	// Alert ordering and filters are server-defined, so the feed is
	// refetched instead of merged incrementally.
	in.loader.LoadAlerts(ctx)
	in.loader.LoadInsiderStats(ctx)

	if in.notifier == nil {
		return
	}
	alert, err := DecodeAlert(ev.Data)
	if err != nil {
		slog.Debug("alert_decode_failed", "error", err)
		return
	}
	in.notifier.NotifyAlert(ctx, alert)
}
