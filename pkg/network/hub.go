// Package network streams gameplay events to spectators over websockets.
package network

import (
	"context"
	"net/http"
	"sync"
	"time"

	"birds/pkg/logging"
	protocol "birds/pkg/shared/network"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"
)

const (
	subscriberBuffer = 64
	writeTimeout     = 5 * time.Second
)

// Hub fans events out to every connected spectator.
// Publish never blocks: a spectator that falls behind loses events.
type Hub struct {
	log *zap.Logger

	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	hello  *protocol.Event
	closed bool
}

type subscriber struct {
	events  chan protocol.Event
	dropped int
}

var _ protocol.EventSink = (*Hub)(nil)

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:  logging.OrNop(log),
		subs: make(map[*subscriber]struct{}),
	}
}

func (h *Hub) Publish(ev protocol.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	if ev.Type == protocol.EventHello {
		h.hello = &ev
	}
	for sub := range h.subs {
		select {
		case sub.events <- ev:
		default:
			sub.dropped++
		}
	}
}

// Subscribers returns the number of connected spectators.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close disconnects every spectator. Later publishes are dropped.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		close(sub.events)
		delete(h.subs, sub)
	}
}

func (h *Hub) subscribe() (*subscriber, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	sub := &subscriber{events: make(chan protocol.Event, subscriberBuffer)}
	if h.hello != nil {
		sub.events <- *h.hello
	}
	h.subs[sub] = struct{}{}
	return sub, true
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	if sub.dropped > 0 {
		h.log.Warn("spectator dropped events", zap.Int("dropped", sub.dropped))
	}
}

// ServeHTTP upgrades the request to a websocket and streams events as JSON.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.Debug("websocket accept failed", zap.Error(err))
		return
	}
	defer c.CloseNow()

	sub, ok := h.subscribe()
	if !ok {
		c.Close(websocket.StatusGoingAway, "game over")
		return
	}
	defer h.unsubscribe(sub)

	h.log.Info("spectator connected", zap.String("remote", r.RemoteAddr))

	// Spectators only listen; CloseRead cancels ctx when they hang up.
	ctx := c.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			h.log.Info("spectator disconnected", zap.String("remote", r.RemoteAddr))
			return
		case ev, ok := <-sub.events:
			if !ok {
				c.Close(websocket.StatusNormalClosure, "game over")
				return
			}
			if err := write(ctx, c, ev); err != nil {
				h.log.Debug("spectator write failed", zap.Error(err))
				return
			}
		}
	}
}

func write(ctx context.Context, c *websocket.Conn, ev protocol.Event) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, c, ev)
}
