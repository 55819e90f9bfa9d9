package services

import (
	"sync"

	"github.com/google/uuid"
)

// broadcaster is the change-notification primitive shared by the state
// containers: subscribers get a signal after every mutation and pull
// the current state themselves. Signals are coalesced; a slow consumer
// sees at most one pending signal.
type broadcaster struct {
	mu   sync.Mutex
	subs map[string]chan struct{}
}

func (b *broadcaster) Subscribe() (string, <-chan struct{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[string]chan struct{})
	}

	id := uuid.NewString()
	ch := make(chan struct{}, 1)
	b.subs[id] = ch
	return id, ch
}

func (b *broadcaster) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

func (b *broadcaster) notify() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
