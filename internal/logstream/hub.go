// Package logstream fans persisted system log entries out to websocket
// subscribers.
package logstream

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/linskybing/formbuilder-go/internal/domain/syslog"
	"go.uber.org/zap"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	batchSize      = 50
	flushFrequency = 100 * time.Millisecond
	sendBuffer     = 256
	maxReadBytes   = 4 * 1024
)

// Filter narrows a subscription. Empty fields match everything.
type Filter struct {
	Level    syslog.Level
	Category string
}

func (f Filter) Match(e syslog.Entry) bool {
	if f.Level != "" && f.Level != e.Level {
		return false
	}
	if f.Category != "" && !strings.EqualFold(f.Category, e.Category) {
		return false
	}
	return true
}

type subscriber struct {
	filter Filter
	send   chan []byte
}

type Hub struct {
	mu     sync.RWMutex
	subs   map[*subscriber]struct{}
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		subs:   map[*subscriber]struct{}{},
		logger: logger,
	}
}

// Publish never blocks. Slow subscribers lose entries.
func (h *Hub) Publish(e syslog.Entry) {
	msg, err := json.Marshal(e)
	if err != nil {
		h.logger.Warn("encode log entry for stream", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		if !sub.filter.Match(e) {
			continue
		}
		select {
		case sub.send <- msg:
		default:
			h.logger.Debug("log stream subscriber is full, entry dropped", zap.Uint("log_id", e.ID))
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) subscribe(f Filter) *subscriber {
	sub := &subscriber{filter: f, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
}

// Serve streams matching entries to conn as JSON arrays until the peer goes
// away or ctx is done. It owns conn and closes it.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, f Filter) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sub := h.subscribe(f)
	defer h.unsubscribe(sub)

	conn.SetReadLimit(maxReadBytes)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// The reader only drives pong handling and notices the close frame.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	h.writeLoop(ctx, conn, sub)
}

func (h *Hub) writeLoop(ctx context.Context, conn *websocket.Conn, sub *subscriber) {
	defer func() { _ = conn.Close() }()

	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()
	flushTicker := time.NewTicker(flushFrequency)
	defer flushTicker.Stop()

	var buffer []json.RawMessage
	flush := func() error {
		if len(buffer) == 0 {
			return nil
		}
		batch, err := json.Marshal(buffer)
		if err != nil {
			return err
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, batch); err != nil {
			return err
		}
		buffer = buffer[:0]
		return nil
	}

	for {
		select {
		case msg := <-sub.send:
			buffer = append(buffer, msg)
			if len(buffer) >= batchSize {
				if err := flush(); err != nil {
					return
				}
			}
		case <-flushTicker.C:
			if err := flush(); err != nil {
				return
			}
		case <-pingTicker.C:
			if err := flush(); err != nil {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
