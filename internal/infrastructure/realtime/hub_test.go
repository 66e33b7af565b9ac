package realtime_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duquediazn/tabula-backend/internal/infrastructure/realtime"
	"github.com/duquediazn/tabula-backend/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fakeObserver struct {
	mu   sync.Mutex
	msgs []string
	fail bool
}

func (f *fakeObserver) SendText(msg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("conexión cerrada")
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeObserver) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.msgs...)
}

func newHub(size int) *realtime.Hub {
	return realtime.NewHub(size, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestDeliver_TodosLosObservadoresRecibenElMensaje(t *testing.T) {
	h := newHub(4)
	a, b := &fakeObserver{}, &fakeObserver{}
	h.Register(a)
	h.Register(b)

	n := h.Deliver("Nuevo movimiento registrado: 1 (entrada)")

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"Nuevo movimiento registrado: 1 (entrada)"}, a.received())
	assert.Equal(t, []string{"Nuevo movimiento registrado: 1 (entrada)"}, b.received())
}

func TestDeliver_ObservadorQueFallaSeEliminaYElRestoRecibe(t *testing.T) {
	h := newHub(4)
	ok1, broken, ok2 := &fakeObserver{}, &fakeObserver{fail: true}, &fakeObserver{}
	h.Register(ok1)
	h.Register(broken)
	h.Register(ok2)

	n := h.Deliver("hola")

	assert.Equal(t, 2, n)
	assert.Len(t, ok1.received(), 1)
	assert.Len(t, ok2.received(), 1)
	assert.Equal(t, 2, h.Count(), "el observador roto debe desregistrarse")
}

func TestUnregister_Idempotente(t *testing.T) {
	h := newHub(4)
	id := h.Register(&fakeObserver{})

	h.Unregister(id)
	h.Unregister(id)
	h.Unregister("no-existe")

	assert.Equal(t, 0, h.Count())
}

func TestRegister_IDsUnicos(t *testing.T) {
	h := newHub(4)
	a := h.Register(&fakeObserver{})
	b := h.Register(&fakeObserver{})

	assert.NotEqual(t, a, b)
}

func TestBroadcast_NoBloqueaConColaLlena(t *testing.T) {
	h := newHub(1)
	done := make(chan struct{})

	go func() {
		h.Broadcast("uno")
		h.Broadcast("dos")
		h.Broadcast("tres")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast bloqueó con la cola llena")
	}
}

func TestRun_EntregaLoEncoladoYParaConElContexto(t *testing.T) {
	h := newHub(8)
	obs := &fakeObserver{}
	h.Register(obs)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	h.Broadcast("a")
	h.Broadcast("b")

	assert.Eventually(t, func() bool { return len(obs.received()) == 2 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, obs.received())

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run no terminó tras cancelar el contexto")
	}
}

func TestDeliver_ConcurrenteConRegistroYBaja(t *testing.T) {
	h := newHub(8)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			id := h.Register(&fakeObserver{})
			h.Unregister(id)
		}()
		go func(i int) {
			defer wg.Done()
			h.Deliver(fmt.Sprintf("msg %d", i))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, h.Count())
}

func TestClose_EliminaTodos(t *testing.T) {
	h := newHub(4)
	obs := &fakeObserver{}
	h.Register(obs)
	h.Register(&fakeObserver{})

	h.Close()

	require.Equal(t, 0, h.Count())
	assert.Equal(t, 0, h.Deliver("tras cerrar"))
	assert.Empty(t, obs.received())
}
