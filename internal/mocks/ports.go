package mocks

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/duquediazn/tabula-backend/internal/application/ports"
)

var (
	_ ports.Notifier    = (*Notifier)(nil)
	_ ports.ReportCache = (*ReportCache)(nil)
)

// Notifier registra los mensajes difundidos.
type Notifier struct {
	mu       sync.Mutex
	Messages []string
}

func (n *Notifier) Broadcast(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Messages = append(n.Messages, msg)
}

// Sent copia de los mensajes recibidos.
func (n *Notifier) Sent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.Messages...)
}

type ReportCache struct{ mock.Mock }

func (m *ReportCache) Get(ctx context.Context, key string, dest any) error {
	return m.Called(ctx, key, dest).Error(0)
}

func (m *ReportCache) Set(ctx context.Context, key string, value any) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *ReportCache) InvalidateReports(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
