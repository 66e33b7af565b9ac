package http

import (
	"sync"
	"testing"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duquediazn/tabula-backend/internal/infrastructure/realtime"
	"github.com/duquediazn/tabula-backend/pkg/logger"
)

// ──── Helpers de test ────

type fakeWSConn struct {
	mu       sync.Mutex
	messages []string
	types    []int
	deadline time.Time
}

func (c *fakeWSConn) SetWriteDeadline(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deadline = t
	return nil
}

func (c *fakeWSConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types = append(c.types, messageType)
	c.messages = append(c.messages, string(data))
	return nil
}

func (c *fakeWSConn) written() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}

// ──── Tests ────

func TestWSObserver_EscribeTextoConDeadline(t *testing.T) {
	conn := &fakeWSConn{}
	obs := newWSObserver(conn)

	require.NoError(t, obs.SendText("Nuevo movimiento registrado: 5 (entrada)"))

	assert.Equal(t, []string{"Nuevo movimiento registrado: 5 (entrada)"}, conn.written())
	assert.Equal(t, []int{websocket.TextMessage}, conn.types)
	assert.WithinDuration(t, time.Now().Add(wsWriteTimeout), conn.deadline, time.Second)
}

func TestWSObserver_TrasCerrarNoEscribeEnLaConexion(t *testing.T) {
	conn := &fakeWSConn{}
	obs := newWSObserver(conn)
	obs.close()

	err := obs.SendText("tarde")

	assert.ErrorIs(t, err, errSessionClosed)
	assert.Empty(t, conn.written())
}

func TestWSObserver_CerradoEnSnapshotSeDesregistraDelHub(t *testing.T) {
	hub := realtime.NewHub(4, logger.Nop())
	vivo := &fakeWSConn{}
	cerrado := &fakeWSConn{}
	obsCerrado := newWSObserver(cerrado)
	hub.Register(newWSObserver(vivo))
	hub.Register(obsCerrado)
	obsCerrado.close()

	delivered := hub.Deliver("m1")

	assert.Equal(t, 1, delivered)
	assert.Equal(t, 1, hub.Count())
	assert.Equal(t, []string{"m1"}, vivo.written())
	assert.Empty(t, cerrado.written())
}

func TestWSObserver_CloseConcurrenteConEnvios(t *testing.T) {
	conn := &fakeWSConn{}
	obs := newWSObserver(conn)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = obs.SendText("x")
		}()
	}
	obs.close()
	wg.Wait()

	n := len(conn.written())
	assert.ErrorIs(t, obs.SendText("y"), errSessionClosed)
	assert.Len(t, conn.written(), n)
}
