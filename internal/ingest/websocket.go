package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Reconnection and heartbeat policy.
const (
	InitialBackoff = 1 * time.Second
	MaxBackoff     = 60 * time.Second
	BackoffFactor  = 2.0
	JitterPercent  = 0.2

	HeartbeatTimeout = 60 * time.Second
	PongTimeout      = 10 * time.Second

	WriteTimeout = 10 * time.Second
)

// FrameHandler consumes one raw websocket frame.
type FrameHandler func(ctx context.Context, data []byte)

// Listener maintains the push-event connection with automatic reconnect.
// The transport is best-effort: frames lost across a reconnect are
// recovered by the next snapshot poll, never replayed.
type Listener struct {
	url      string
	channels []string
	handler  FrameHandler

	conn      *websocket.Conn
	connMu    sync.Mutex
	backoff   time.Duration
	lastMsg   time.Time
	lastMsgMu sync.RWMutex
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// NewListener creates a listener that subscribes to the given event
// channels and hands every frame to handler.
func NewListener(url string, channels []string, handler FrameHandler) *Listener {
	return &Listener{
		url:      url,
		channels: channels,
		handler:  handler,
		backoff:  InitialBackoff,
		stopChan: make(chan struct{}),
	}
}

// Start begins the listener with automatic reconnection.
func (l *Listener) Start(ctx context.Context) {
	l.wg.Add(1)
	go l.runLoop(ctx)

	l.wg.Add(1)
	go l.heartbeatMonitor(ctx)
}

// Stop gracefully shuts down the listener.
func (l *Listener) Stop() {
	close(l.stopChan)
	l.closeConnection()
	l.wg.Wait()
}

// runLoop handles connection, reading, and reconnection.
func (l *Listener) runLoop(ctx context.Context) {
	defer l.wg.Done()

	for {
		select {
		case <-ctx.Done():
			slog.Info("ws_loop_stopping", "reason", "context cancelled")
			return
		case <-l.stopChan:
			slog.Info("ws_loop_stopping", "reason", "stop signal")
			return
		default:
		}

		if err := l.connect(ctx); err != nil {
			slog.Error("ws_connect_failed", "error", err, "backoff", l.backoff)
			l.waitBackoff(ctx)
			continue
		}

		if err := l.readLoop(ctx); err != nil {
			slog.Warn("ws_read_error", "error", err)
		}

		l.closeConnection()

		select {
		case <-ctx.Done():
			return
		case <-l.stopChan:
			return
		default:
			l.waitBackoff(ctx)
		}
	}
}

// connect establishes the connection and subscribes to the channels.
func (l *Listener) connect(ctx context.Context) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, resp, err := dialer.DialContext(ctx, l.url, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("dial failed with status %d: %w", resp.StatusCode, err)
		}
		return fmt.Errorf("dial failed: %w", err)
	}

	l.connMu.Lock()
	l.conn = conn
	l.connMu.Unlock()

	// Reset backoff on successful connection
	l.backoff = InitialBackoff

	slog.Info("ws_connected", "endpoint", l.url)

	if err := l.subscribe(); err != nil {
		return fmt.Errorf("subscribe failed: %w", err)
	}

	l.updateLastMsg()
	return nil
}

// subscribe sends the channel subscription message.
func (l *Listener) subscribe() error {
	msg := map[string]any{
		"type":     "subscribe",
		"channels": l.channels,
	}

	l.connMu.Lock()
	defer l.connMu.Unlock()

	if l.conn == nil {
		return fmt.Errorf("connection is nil")
	}

	l.conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
	if err := l.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to send subscribe message: %w", err)
	}

	slog.Info("ws_subscribed", "channels", l.channels)
	return nil
}

// readLoop reads frames until an error or shutdown.
func (l *Listener) readLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stopChan:
			return nil
		default:
		}

		l.connMu.Lock()
		conn := l.conn
		l.connMu.Unlock()

		if conn == nil {
			return fmt.Errorf("connection is nil")
		}

		conn.SetReadDeadline(time.Now().Add(HeartbeatTimeout + PongTimeout))

		_, message, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read error: %w", err)
		}

		l.updateLastMsg()
		l.handler(ctx, message)
	}
}

// heartbeatMonitor checks connection health.
func (l *Listener) heartbeatMonitor(ctx context.Context) {
	defer l.wg.Done()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.checkHeartbeat()
		}
	}
}

// checkHeartbeat pings the server when no frame arrived recently.
func (l *Listener) checkHeartbeat() {
	l.lastMsgMu.RLock()
	lastMsg := l.lastMsg
	l.lastMsgMu.RUnlock()

	if lastMsg.IsZero() {
		return
	}

	elapsed := time.Since(lastMsg)
	if elapsed > HeartbeatTimeout {
		slog.Warn("ws_heartbeat_timeout", "elapsed", elapsed)

		l.connMu.Lock()
		conn := l.conn
		l.connMu.Unlock()

		if conn != nil {
			conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				slog.Warn("ws_ping_failed", "error", err)
				l.closeConnection()
			}
		}
	}
}

// updateLastMsg updates the last frame timestamp.
func (l *Listener) updateLastMsg() {
	l.lastMsgMu.Lock()
	l.lastMsg = time.Now()
	l.lastMsgMu.Unlock()
}

// closeConnection safely closes the connection.
func (l *Listener) closeConnection() {
	l.connMu.Lock()
	defer l.connMu.Unlock()

	if l.conn != nil {
		l.conn.Close()
		l.conn = nil
		slog.Info("ws_disconnected")
	}
}

// waitBackoff waits for the backoff duration with jitter.
func (l *Listener) waitBackoff(ctx context.Context) {
	jitter := time.Duration(float64(l.backoff) * JitterPercent * (rand.Float64()*2 - 1))
	wait := l.backoff + jitter

	slog.Debug("ws_waiting_backoff", "duration", wait)

	select {
	case <-ctx.Done():
	case <-l.stopChan:
	case <-time.After(wait):
	}

	l.backoff = time.Duration(float64(l.backoff) * BackoffFactor)
	if l.backoff > MaxBackoff {
		l.backoff = MaxBackoff
	}
}
