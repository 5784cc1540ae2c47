package stream

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"TokenPulse/internal/domain/models"
	"TokenPulse/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan *models.TokenAnalysis
}

// Hub fans fresh analyses out to websocket subscribers. Subscriptions are
// keyed by chain:address; the watched set doubles as the rescan worklist.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*client]struct{}
	log    *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		topics: make(map[string]map[*client]struct{}),
		log:    log,
	}
}

func topicKey(chain, address string) string { return chain + ":" + address }

// Subscribe attaches an upgraded connection to a token topic and pumps
// analyses until the peer goes away. Blocks; call from the HTTP handler.
func (h *Hub) Subscribe(conn *websocket.Conn, chain, address string) {
	c := &client{
		conn: conn,
		send: make(chan *models.TokenAnalysis, 8),
	}
	key := topicKey(chain, address)

	h.mu.Lock()
	if h.topics[key] == nil {
		h.topics[key] = make(map[*client]struct{})
	}
	h.topics[key][c] = struct{}{}
	h.mu.Unlock()

	h.log.Info("watch subscribed", logger.String("topic", key))
	defer h.drop(key, c)

	// Reader only exists to observe close frames.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(c.send)
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case a, ok := <-c.send:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(a); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) drop(key string, c *client) {
	h.mu.Lock()
	if subs, ok := h.topics[key]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.topics, key)
		}
	}
	h.mu.Unlock()
	c.conn.Close()
	h.log.Info("watch unsubscribed", logger.String("topic", key))
}

// Broadcast delivers an analysis to that token's subscribers. Slow readers
// are skipped rather than blocking the caller.
func (h *Hub) Broadcast(a *models.TokenAnalysis) {
	key := topicKey(a.ChainID, a.TokenAddress)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.topics[key] {
		select {
		case c.send <- a:
		default:
		}
	}
}

// Watched lists the chain:address topics with at least one subscriber.
func (h *Hub) Watched() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.topics))
	for key := range h.topics {
		out = append(out, key)
	}
	return out
}
