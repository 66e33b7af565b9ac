package http

import (
	"errors"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/duquediazn/tabula-backend/internal/infrastructure/realtime"
	"github.com/duquediazn/tabula-backend/pkg/logger"
)

const wsWriteTimeout = 5 * time.Second

var errSessionClosed = errors.New("websocket: sesión cerrada")

// wsConn parte de *websocket.Conn que usa el observador.
type wsConn interface {
	SetWriteDeadline(t time.Time) error
	WriteMessage(messageType int, data []byte) error
}

// wsObserver adapta una conexión websocket a realtime.Observer.
// La conexión vuelve al pool de contrib/websocket al salir del handler:
// tras close() no se vuelve a escribir en ella.
type wsObserver struct {
	mu     sync.Mutex
	conn   wsConn
	closed bool
}

func newWSObserver(conn wsConn) *wsObserver {
	return &wsObserver{conn: conn}
}

func (o *wsObserver) SendText(msg string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return errSessionClosed
	}
	if err := o.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return o.conn.WriteMessage(websocket.TextMessage, []byte(msg))
}

// close espera a la escritura en curso y bloquea las siguientes.
func (o *wsObserver) close() {
	o.mu.Lock()
	o.closed = true
	o.conn = nil
	o.mu.Unlock()
}

// WebSocketHandler avisos de movimientos en tiempo real en /ws/movimientos.
type WebSocketHandler struct {
	hub *realtime.Hub
	log *logger.Logger
}

// NewWebSocketHandler construye el handler.
func NewWebSocketHandler(hub *realtime.Hub, log *logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, log: log.Component("websocket")}
}

// Upgrade rechaza con 426 las peticiones que no son upgrade a websocket.
func (h *WebSocketHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Movements registra la conexión en el hub; el bucle de lectura solo detecta la desconexión.
func (h *WebSocketHandler) Movements() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		obs := newWSObserver(conn)
		id := h.hub.Register(obs)
		h.log.Info().Str("session", id).Str("remote", conn.RemoteAddr().String()).Msg("cliente websocket conectado")
		defer func() {
			h.hub.Unregister(id)
			obs.close()
			h.log.Info().Str("session", id).Msg("cliente websocket desconectado")
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
