package ports

// Notifier difunde eventos de texto a los observadores conectados.
// Broadcast nunca bloquea: encola y vuelve.
type Notifier interface {
	Broadcast(msg string)
}

// NopNotifier descarta los eventos.
type NopNotifier struct{}

func (NopNotifier) Broadcast(string) {}
