package auth

import (
	"sync"
	"time"

	"github.com/fjod/storefront/internal/domain"
)

type EventType string

const (
	EventSignedIn    EventType = "signed_in"
	EventSignedOut   EventType = "signed_out"
	EventUserUpdated EventType = "user_updated"
)

type Event struct {
	Type   EventType    `json:"type"`
	UserID string       `json:"user_id"`
	User   *domain.User `json:"user,omitempty"`
	At     time.Time    `json:"at"`
}

// Broadcaster fans auth events out to subscribers. Handlers run on the
// publishing goroutine, outside the broadcaster lock.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[int]func(Event)
	next int
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]func(Event))}
}

// Subscribe registers fn and returns the func that removes it.
func (b *Broadcaster) Subscribe(fn func(Event)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

func (b *Broadcaster) Publish(e Event) {
	b.mu.RLock()
	handlers := make([]func(Event), 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(e)
	}
}

func (b *Broadcaster) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
