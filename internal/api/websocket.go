package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/goccy/go-json"
	"nhooyr.io/websocket"

	"github.com/JustinTDCT/CineCurator/internal/logging"
	"github.com/JustinTDCT/CineCurator/internal/metrics"
	"github.com/JustinTDCT/CineCurator/internal/search"
)

// ──────────────────── WebSocket Hub ────────────────────

type WSHub struct {
	mu      sync.RWMutex
	clients map[*WSClient]bool
}

type WSClient struct {
	conn *websocket.Conn
	send chan []byte
}

type WSMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type liveQuery struct {
	Query string `json:"query"`
}

func NewWSHub() *WSHub {
	return &WSHub{
		clients: make(map[*WSClient]bool),
	}
}

// Broadcast fans an event out to every connected client. Slow clients miss
// messages rather than block the sender.
func (h *WSHub) Broadcast(event string, data interface{}) {
	msg, err := json.Marshal(WSMessage{Event: event, Data: data})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
		}
	}
}

func (h *WSHub) addClient(c *WSClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
	metrics.WSClients.Inc()
}

func (h *WSHub) removeClient(c *WSClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		close(c.send)
		delete(h.clients, c)
		metrics.WSClients.Dec()
	}
}

func (h *WSHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// sendTo queues msg for one client unless it has already been removed.
func (h *WSHub) sendTo(c *WSClient, event string, data interface{}) {
	msg, err := json.Marshal(WSMessage{Event: event, Data: data})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.clients[c] {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

// ──────────────────── Live Search Handler ────────────────────

// handleLiveSearch upgrades to a websocket. Each inbound {"query": "..."}
// feeds the connection's debounced search session and results come back as
// {"event": "results"|"error"|"cleared", "data": ...}.
func (s *Server) handleLiveSearch(w http.ResponseWriter, r *http.Request) {
	log := logging.Ctx(r.Context())
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Warn().Err(err).Msg("websocket accept")
		return
	}

	client := &WSClient{
		conn: conn,
		send: make(chan []byte, 64),
	}
	s.wsHub.addClient(client)

	ctx, cancel := context.WithCancel(logging.WithRequestID(context.Background(), logging.RequestID(r.Context())))
	defer cancel()

	session := search.NewSession(ctx, s.deps.Search, s.config.Search.Debounce, func(ev search.Event) {
		s.wsHub.sendTo(client, string(ev.Kind), ev)
	})

	// Writer goroutine
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range client.send {
			if err := conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			break
		}
		var q liveQuery
		if err := json.Unmarshal(data, &q); err != nil {
			log.Debug().Err(err).Msg("ignoring malformed live search message")
			continue
		}
		session.Submit(q.Query)
	}

	session.Close()
	s.wsHub.removeClient(client)
	cancel()
	<-done
	conn.Close(websocket.StatusNormalClosure, "")
}
