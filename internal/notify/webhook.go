// Package notify delivers out-of-band alert notifications.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/polyscope/dashboard/internal/store"
)

// WebhookNotifier posts insider alerts to a webhook (Discord-compatible
// payload). Delivery is best-effort: failures are logged, never retried,
// and never block ingestion.
type WebhookNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewWebhookNotifier creates a notifier for the given webhook URL.
func NewWebhookNotifier(webhookURL string) *WebhookNotifier {
	return &WebhookNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// NotifyAlert posts a summary of the alert. Runs the delivery in its own
// goroutine so the caller never blocks on the webhook.
func (n *WebhookNotifier) NotifyAlert(ctx context.Context, alert store.Alert) {
	go func() {
		if err := n.send(ctx, alert); err != nil {
			slog.Warn("notify_failed", "error", err)
		}
	}()
}

func (n *WebhookNotifier) send(ctx context.Context, alert store.Alert) error {
	question := alert.MarketQuestion
	if len(question) > 50 {
		question = question[:50] + "..."
	}
	content := fmt.Sprintf("**Insider Alert: %s**\n%s\n%s", alert.AlertType, question, alert.TriggerDetails)

	payload := map[string]string{"content": content}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("webhook: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("webhook: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
