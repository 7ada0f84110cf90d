package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyscope/dashboard/internal/api"
	"github.com/polyscope/dashboard/internal/control"
	"github.com/polyscope/dashboard/internal/runtime"
	"github.com/polyscope/dashboard/internal/store"
)

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []store.Alert
}

func (r *recordingNotifier) NotifyAlert(_ context.Context, alert store.Alert) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, alert)
}

func (r *recordingNotifier) list() []store.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]store.Alert(nil), r.alerts...)
}

type ingestHarness struct {
	stores   *store.Stores
	ingestor *Ingestor
	loop     *runtime.Loop
	changes  chan store.Domain
	notifier *recordingNotifier
}

func newIngestHarness(t *testing.T, handler http.Handler) *ingestHarness {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := &ingestHarness{
		loop:     runtime.NewLoop(),
		changes:  make(chan store.Domain, 64),
		notifier: &recordingNotifier{},
	}
	h.stores = store.New(func(d store.Domain) {
		select {
		case h.changes <- d:
		default:
		}
	})
	loader := control.NewLoader(api.NewClient(srv.URL, ""), h.stores, h.loop)
	h.ingestor = NewIngestor(h.stores, loader, h.loop, h.notifier)

	go h.loop.Run(ctx)
	return h
}

func (h *ingestHarness) waitChange(t *testing.T, want store.Domain) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case d := <-h.changes:
			if d == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s change", want)
		}
	}
}

func (h *ingestHarness) onLoop(t *testing.T, fn func()) {
	t.Helper()
	done := make(chan struct{})
	h.loop.Post(func() {
		fn()
		close(done)
	})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop task did not run")
	}
}

func TestSignalEventPrependsAndRefetchesStats(t *testing.T) {
	h := newIngestHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/hft/status", r.URL.Path)
		w.Write([]byte(`{"success":true,"stats":{"running":true,"signals_received":6}}`))
	}))

	frame := []byte(`{"event":"hft_signal","data":{
		"timestamp":"1700000000","wallet_address":"0xnew","side":"SELL","crypto_asset":"ETH"
	}}`)
	h.ingestor.HandleFrame(context.Background(), frame)

	h.waitChange(t, store.DomainSignals)
	h.waitChange(t, store.DomainHFTStats)

	var signals []store.Signal
	var stats *store.ScannerStats
	h.onLoop(t, func() {
		signals = h.stores.Signals.List()
		stats = h.stores.HFTStats.Get()
	})
	require.Len(t, signals, 1)
	assert.Equal(t, "0xnew", signals[0].WalletAddress)
	require.NotNil(t, stats)
	assert.Equal(t, 6, stats.SignalsReceived, "counters come from the refetch, never local math")
}

func TestSignalEventEvictsAtCapacity(t *testing.T) {
	h := newIngestHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"stats":{}}`))
	}))

	preload := make([]store.Signal, store.SignalCapacity)
	for i := range preload {
		preload[i] = store.Signal{WalletAddress: fmt.Sprintf("0x%03d", i)}
	}
	h.onLoop(t, func() { h.stores.Signals.ReplaceAll(preload) })
	h.waitChange(t, store.DomainSignals)

	frame := []byte(`{"event":"hft_signal","data":{"wallet_address":"0xfresh","side":"BUY"}}`)
	h.ingestor.HandleFrame(context.Background(), frame)
	h.waitChange(t, store.DomainSignals)

	var signals []store.Signal
	h.onLoop(t, func() { signals = h.stores.Signals.List() })
	require.Len(t, signals, store.SignalCapacity)
	assert.Equal(t, "0xfresh", signals[0].WalletAddress)
	assert.Equal(t, "0x098", signals[store.SignalCapacity-1].WalletAddress,
		"eviction must come from the tail")
}

func TestStatusEventUpdatesOnlyRunning(t *testing.T) {
	h := newIngestHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("status event must not trigger a fetch, got %s", r.URL.Path)
	}))

	h.onLoop(t, func() {
		h.stores.HFTStats.Replace(store.ScannerStats{Running: false, SignalsExecuted: 4})
	})
	h.waitChange(t, store.DomainHFTStats)

	h.ingestor.HandleFrame(context.Background(), []byte(`{"event":"hft_status","data":{"running":true}}`))
	h.waitChange(t, store.DomainHFTStats)

	var stats *store.ScannerStats
	h.onLoop(t, func() { stats = h.stores.HFTStats.Get() })
	require.NotNil(t, stats)
	assert.True(t, stats.Running)
	assert.Equal(t, 4, stats.SignalsExecuted)
}

func TestAlertEventRefetchesAndNotifies(t *testing.T) {
	h := newIngestHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/insider/alerts":
			w.Write([]byte(`{"success":true,"alerts":[{"alert_type":"FRESH_WALLET"}]}`))
		case "/api/insider/stats":
			w.Write([]byte(`{"success":true,"stats":{"alerts_generated":1}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	frame := []byte(`{"event":"insider_alert","data":{"alert_type":"FRESH_WALLET","wallet_address":"0xf"}}`)
	h.ingestor.HandleFrame(context.Background(), frame)

	h.waitChange(t, store.DomainAlerts)
	h.waitChange(t, store.DomainInsiderStats)

	var alerts []store.Alert
	h.onLoop(t, func() { alerts = h.stores.Alerts.List() })
	require.Len(t, alerts, 1)

	notified := h.notifier.list()
	require.Len(t, notified, 1)
	assert.Equal(t, "0xf", notified[0].WalletAddress)
}

func TestUnknownAndMalformedFramesAreDropped(t *testing.T) {
	h := newIngestHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected fetch for %s", r.URL.Path)
	}))

	h.ingestor.HandleFrame(context.Background(), []byte(`{"event":"mystery","data":{}}`))
	h.ingestor.HandleFrame(context.Background(), []byte(`garbage`))
	h.ingestor.HandleFrame(context.Background(), []byte(`{"event":"hft_signal","data":[1,2]}`))

	var signals []store.Signal
	h.onLoop(t, func() { signals = h.stores.Signals.List() })
	assert.Empty(t, signals)
}
