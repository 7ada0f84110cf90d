package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyscope/dashboard/internal/store"
)

func TestSuccessEnvelope(t *testing.T) {
	var gotRequestID, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"wallets":[{"address":"0xabc","nickname":"test","enabled":true}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-token")
	wallets, err := c.HFTWallets(context.Background())
	require.NoError(t, err)
	require.Len(t, wallets, 1)
	assert.Equal(t, "0xabc", wallets[0].Address)
	assert.True(t, wallets[0].Enabled)

	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestFailureEnvelopeIsAppError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"duplicate wallet address"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	err := c.AddWallet(context.Background(), AddWalletRequest{Address: "0xabc"})
	require.Error(t, err)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "duplicate wallet address", appErr.Message)
	assert.Equal(t, "duplicate wallet address", UserMessage(err))
}

func TestFailureEnvelopeMessageFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"scanner busy"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	err := c.RefreshMarkets(context.Background())
	require.Error(t, err)
	assert.Equal(t, "scanner busy", UserMessage(err))
}

func TestUndecodableBodyIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.HFTStatus(context.Background())
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, GenericFailureMessage, UserMessage(err))
}

func TestConnectionFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.HFTSignals(context.Background(), 50)
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestUpdateWalletSendsNullForUnsetOptionals(t *testing.T) {
	var body map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	sl := 5.0
	c := NewClient(srv.URL, "")
	err := c.UpdateWallet(context.Background(), UpdateWalletRequest{
		Address:         "0xabc",
		StopLossPercent: &sl,
	})
	require.NoError(t, err)

	assert.Equal(t, "5", string(body["sl_percent"]))
	assert.Equal(t, "null", string(body["tp_percent"]))
}

func TestInsiderConfigCarriesRunning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"config":{"categories":["crypto"],"risky_bet":{"enabled":true,"min_amount":500,"max_odds":0.1},"running":true}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	cfg, err := c.InsiderConfig(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.Running)
	assert.True(t, cfg.RiskyBet.Enabled)
	assert.Equal(t, 0.1, cfg.RiskyBet.MaxOdds)
}

func TestSaveInsiderConfigStripsRunning(t *testing.T) {
	var raw []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		raw = body["running"]
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	err := c.SaveInsiderConfig(context.Background(), store.TriggerConfig{
		Categories: []string{"crypto"},
		Running:    true,
	})
	require.NoError(t, err)
	assert.Nil(t, raw, "running must not be submitted")
}

func TestHFTToggleReturnsServerState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"success":true,"running":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	running, err := c.HFTToggle(context.Background())
	require.NoError(t, err)
	assert.True(t, running)
}

func TestSnapshotsDecodeNaiveTimestamps(t *testing.T) {
	// The server emits ISO timestamps with fractional seconds and no
	// zone offset, which the stock time.Time decoder rejects.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/hft/signals":
			w.Write([]byte(`{"success":true,"signals":[
				{"timestamp":"2026-08-28T12:34:56.789123","wallet_address":"0xa","side":"BUY"}
			]}`))
		case "/api/insider/alerts":
			w.Write([]byte(`{"success":true,"alerts":[
				{"alert_type":"RISKY_BET","timestamp":"2026-08-28T12:34:56.789123"}
			]}`))
		case "/api/insider/saved":
			w.Write([]byte(`{"success":true,"wallets":[
				{"address":"0xb","saved_at":"2026-08-28T09:00:00"}
			]}`))
		case "/api/insider/stats":
			w.Write([]byte(`{"success":true,"stats":{"running":true,"last_scan":"2026-08-28T10:30:00.5"}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")

	signals, err := c.HFTSignals(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, signals, 1)
	assert.Equal(t, 56, signals[0].Timestamp.Second())

	alerts, err := c.InsiderAlerts(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.False(t, alerts[0].Timestamp.IsZero())

	saved, err := c.SavedWallets(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, 9, saved[0].SavedAt.Hour())

	stats, err := c.InsiderStats(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stats.LastScan)
	assert.Equal(t, 30, stats.LastScan.Minute())
}

func TestRemoveSavedWalletEscapesAddress(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		assert.Equal(t, http.MethodDelete, r.Method)
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	err := c.RemoveSavedWallet(context.Background(), "0xabc/def")
	require.NoError(t, err)
	assert.Equal(t, "/api/insider/saved/0xabc%2Fdef", gotPath)
}
