package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) write(messages [][]byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, data := range messages {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return err
		}
	}
	return nil
}

// wsHub fans frames out to every connected display. A new connection gets
// the most recent frame before any later broadcast.
type wsHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]*wsClient
	last    [][]byte
	metrics *Metrics
	logger  *zap.Logger
}

func newWSHub(metrics *Metrics, logger *zap.Logger) *wsHub {
	return &wsHub{
		clients: make(map[*websocket.Conn]*wsClient),
		metrics: metrics,
		logger:  logger,
	}
}

func (h *wsHub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	client := &wsClient{conn: conn}
	h.clients[conn] = client
	h.metrics.IncrementConnections()
	if len(h.last) == 0 {
		return
	}
	if err := client.write(h.last); err != nil {
		h.metrics.IncrementBroadcastErrors()
		return
	}
	for range h.last {
		h.metrics.IncrementMessagesSent()
	}
}

func (h *wsHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; !ok {
		return
	}
	delete(h.clients, conn)
	h.metrics.DecrementConnections()
	_ = conn.Close()
}

func (h *wsHub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *wsHub) Broadcast(payloads ...any) {
	messages := make([][]byte, 0, len(payloads))
	for _, payload := range payloads {
		data, err := json.Marshal(payload)
		if err != nil {
			h.logger.Error("encode push message", zap.Error(err))
			return
		}
		messages = append(messages, data)
	}

	h.mu.Lock()
	h.last = messages
	clients := make([]*wsClient, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		if err := client.write(messages); err != nil {
			h.metrics.IncrementBroadcastErrors()
			h.logger.Info("ws write failed", zap.String("remote", client.conn.RemoteAddr().String()), zap.Error(err))
			h.Remove(client.conn)
			continue
		}
		for range messages {
			h.metrics.IncrementMessagesSent()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.logger.Info("ws connected", zap.String("remote", r.RemoteAddr))
	s.ws.Add(conn)
	go s.readWS(conn)
}

// readWS drains inbound frames; the display never acts on them.
func (s *Server) readWS(conn *websocket.Conn) {
	defer s.ws.Remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.logger.Info("ws disconnected", zap.Error(err))
			return
		}
	}
}
