// Package realtime difunde avisos de movimientos confirmados a los observadores conectados.
package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/duquediazn/tabula-backend/internal/application/ports"
	"github.com/duquediazn/tabula-backend/pkg/logger"
)

// DefaultQueueSize capacidad de la cola de eventos si no se configura otra.
const DefaultQueueSize = 256

// Observer destino de los avisos (p. ej. una conexión websocket).
type Observer interface {
	SendText(msg string) error
}

var _ ports.Notifier = (*Hub)(nil)

// Hub registro de observadores con una cola acotada y un único consumidor.
// Broadcast nunca bloquea: si la cola está llena el evento se descarta.
type Hub struct {
	mu        sync.RWMutex
	observers map[string]Observer
	events    chan string
	log       *logger.Logger
}

// NewHub crea el hub; queueSize <= 0 usa DefaultQueueSize.
func NewHub(queueSize int, log *logger.Logger) *Hub {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Hub{
		observers: make(map[string]Observer),
		events:    make(chan string, queueSize),
		log:       log.Component("realtime"),
	}
}

// Register añade un observador y devuelve su id de sesión.
func (h *Hub) Register(o Observer) string {
	id := uuid.NewString()
	h.mu.Lock()
	h.observers[id] = o
	n := len(h.observers)
	h.mu.Unlock()
	h.log.Debug().Str("session", id).Int("observers", n).Msg("observador registrado")
	return id
}

// Unregister elimina un observador. Idempotente.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	_, ok := h.observers[id]
	delete(h.observers, id)
	h.mu.Unlock()
	if ok {
		h.log.Debug().Str("session", id).Msg("observador eliminado")
	}
}

// Count número de observadores registrados.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

// Broadcast encola el mensaje para su entrega asíncrona.
func (h *Hub) Broadcast(msg string) {
	select {
	case h.events <- msg:
	default:
		h.log.Warn().Str("msg", msg).Int("capacity", cap(h.events)).Msg("cola de notificaciones llena, evento descartado")
	}
}

// Run consume la cola hasta que se cancela ctx.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-h.events:
			h.Deliver(msg)
		}
	}
}

// Deliver envía msg a una copia del conjunto de observadores; los que fallan se eliminan
// y la entrega continúa con el resto. Devuelve cuántos lo recibieron.
func (h *Hub) Deliver(msg string) int {
	h.mu.RLock()
	snapshot := make(map[string]Observer, len(h.observers))
	for id, o := range h.observers {
		snapshot[id] = o
	}
	h.mu.RUnlock()

	delivered := 0
	for id, o := range snapshot {
		if err := o.SendText(msg); err != nil {
			h.log.Warn().Err(err).Str("session", id).Msg("fallo al notificar, se elimina el observador")
			h.Unregister(id)
			continue
		}
		delivered++
	}
	return delivered
}

// Close elimina todos los observadores.
func (h *Hub) Close() {
	h.mu.Lock()
	n := len(h.observers)
	h.observers = make(map[string]Observer)
	h.mu.Unlock()
	h.log.Info().Int("observers", n).Msg("hub cerrado")
}
