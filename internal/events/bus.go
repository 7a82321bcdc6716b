package events

import "sync"

// StorageChange is published whenever a local-store key is written or deleted.
// NewValue is the raw JSON written, empty when the key was deleted.
type StorageChange struct {
	Key      string
	NewValue string
}

type Listener func(change StorageChange)

// Bus is a small in-process publish/subscribe fan-out. Listeners run
// synchronously in Publish order; a listener must not block.
type Bus struct {
	mu        sync.RWMutex
	listeners []Listener
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(fn Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

func (b *Bus) Publish(change StorageChange) {
	b.mu.RLock()
	listeners := make([]Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.RUnlock()

	for _, fn := range listeners {
		fn(change)
	}
}
