package broadcast

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/xid"

	"auction_house/internal/domain/entity"
	"auction_house/pkg/contextx"
	"auction_house/pkg/logx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

const (
	defaultSendBuffer = 64
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = pongWait * 9 / 10
	maxMessageSize    = 4 << 10
)

var ErrClientGone = errors.New("client send buffer is closed or full")

// Hub рассылает события всем подключённым сокетам. Доставка без подтверждения:
// если буфер клиента полон, событие для него теряется, а остальные не ждут.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	sendBuffer int
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		sendBuffer: defaultSendBuffer,
	}
}

func (h *Hub) WithSendBuffer(size int) *Hub {
	if size > 0 {
		h.sendBuffer = size
	}
	return h
}

func (h *Hub) Register(conn *websocket.Conn) *Client {
	c := &Client{
		id:   xid.New().String(),
		conn: conn,
		send: make(chan []byte, h.sendBuffer),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	return c
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()

	c.close()
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// Publish реализует рассылку событий движка.
func (h *Hub) Publish(ctx context.Context, event entity.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger(ctx).Error("marshal event", slog.String(logx.FieldEvent, string(event.Kind)), logx.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	dropped := 0
	for c := range h.clients {
		if !c.enqueue(payload) {
			dropped++
		}
	}

	if dropped > 0 {
		logger(ctx).Warn("event dropped for slow clients",
			slog.String(logx.FieldEvent, string(event.Kind)),
			slog.Int("clients", dropped),
		)
	}
}

// Close отключает всех клиентов при остановке сервера.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*Client]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.close()
	}
}

// Client — одно соединение. Писать в сокет может только WritePump.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

func (c *Client) ID() string {
	return c.id
}

// Send отправляет событие только этому клиенту: ответы и ошибки обработки
// сообщений не рассылаются остальным.
func (c *Client) Send(event entity.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if !c.enqueue(payload) {
		return ErrClientGone
	}

	return nil
}

func (c *Client) enqueue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	close(c.send)
}

// PrepareRead выставляет лимиты чтения и продлевает дедлайн по pong.
func (c *Client) PrepareRead() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
}

// WritePump блокируется до закрытия клиента или ошибки записи.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger(ctx).Debug("socket write failed", logx.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
