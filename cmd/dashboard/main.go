// Package main is the entry point for the polyscope dashboard client.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/polyscope/dashboard/internal/api"
	"github.com/polyscope/dashboard/internal/config"
	"github.com/polyscope/dashboard/internal/control"
	"github.com/polyscope/dashboard/internal/ingest"
	"github.com/polyscope/dashboard/internal/notify"
	"github.com/polyscope/dashboard/internal/runtime"
	"github.com/polyscope/dashboard/internal/store"
	"github.com/polyscope/dashboard/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	slog.Info("dashboard starting", "version", "1.0.0")
	slog.Info("config_loaded",
		"server_base_url", cfg.ServerBaseURL,
		"server_ws_url", cfg.ServerWSURL,
		"api_token", cfg.MaskedAPIToken(),
		"poll_interval", cfg.PollInterval,
		"notify_webhook", cfg.MaskedWebhookURL(),
		"enable_tui", cfg.EnableTUI,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	loop := runtime.NewLoop()

	// Render and notice sinks default to log-only; the TUI replaces them
	// below, before the loop starts executing tasks.
	render := func(store.Domain) {}
	notice := control.NoticeFunc(func(severity control.Severity, message string) {
		if severity == control.NoticeError {
			slog.Warn("notice", "message", message)
			return
		}
		slog.Info("notice", "message", message)
	})

	stores := store.New(func(domain store.Domain) { render(domain) })

	client := api.NewClient(cfg.ServerBaseURL, cfg.APIToken)
	loader := control.NewLoader(client, stores, loop)
	dispatcher := control.NewDispatcher(client, stores, loader, loop,
		func(severity control.Severity, message string) { notice(severity, message) })

	var app *ui.App
	if cfg.EnableTUI {
		app = ui.NewApp(stores, loader, dispatcher, loop)
		render = app.Render
		notice = app.ShowNotice
	}

	go loop.Run(ctx)

	var notifier ingest.AlertNotifier
	if cfg.NotifyWebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.NotifyWebhookURL)
	}

	ingestor := ingest.NewIngestor(stores, loader, loop, notifier)
	listener := ingest.NewListener(cfg.ServerWSURL, []string{
		ingest.EventHFTSignal,
		ingest.EventTradeExecuted,
		ingest.EventHFTStatus,
		ingest.EventInsiderAlert,
	}, ingestor.HandleFrame)
	listener.Start(ctx)

	// Initial snapshots for the landing page.
	loader.LoadHFTModule(ctx)

	hftVisible := func() bool { return true }
	insiderVisible := func() bool { return false }
	if app != nil {
		hftVisible = func() bool { return app.ActivePage() == ui.PageHFT }
		insiderVisible = func() bool { return app.ActivePage() == ui.PageInsider }
	}

	// The config form is deliberately outside the insider poll cycle so a
	// refresh never clobbers an edit in progress.
	hftPoller := runtime.NewPoller("hft", cfg.PollInterval, hftVisible,
		func() { loader.LoadHFTModule(ctx) })
	insiderPoller := runtime.NewPoller("insider", cfg.PollInterval, insiderVisible,
		func() {
			loader.LoadInsiderStats(ctx)
			loader.LoadAlerts(ctx)
			loader.LoadSavedWallets(ctx)
		})
	go hftPoller.Run(ctx)
	go insiderPoller.Run(ctx)

	slog.Info("dashboard_started", "tui_enabled", cfg.EnableTUI)

	if app != nil {
		go func() {
			if err := app.Run(); err != nil {
				slog.Error("tui_error", "error", err)
			}
			cancel()
		}()

		select {
		case sig := <-sigChan:
			slog.Info("shutdown_signal_received", "signal", sig.String())
			app.Stop()
		case <-ctx.Done():
			app.Stop()
		}
	} else {
		sig := <-sigChan
		slog.Info("shutdown_signal_received", "signal", sig.String())
	}

	cancel()

	slog.Info("shutting_down", "status", "stopping listener")
	listener.Stop()

	slog.Info("shutdown_complete")
}

// setupLogger creates a structured logger with the specified level.
// Format: 2025-01-04 14:32:01 [INFO]  message key=value
func setupLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format("2006-01-02 15:04:05"))
				}
			}
			return a
		},
	}

	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}
