package notify

import (
	"context"
	"sync"
)

// Stream fan-outs accepted notifications to all active subscribers
// (the SSE handler on the local surface).
type Stream struct {
	mu   sync.RWMutex
	subs map[int]chan Notification
	next int
}

// NewStream initialises an empty stream.
func NewStream() *Stream {
	return &Stream{subs: make(map[int]chan Notification)}
}

// Subscribe registers a subscriber and returns a channel which will
// receive notifications. The channel is closed when the provided context
// ends.
func (s *Stream) Subscribe(ctx context.Context) <-chan Notification {
	ch := make(chan Notification, 16)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

// Publish fan-outs the notification to all subscribers.
func (s *Stream) Publish(n Notification) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- n:
		default:
			// Drop when subscriber is slow to avoid blocking.
		}
	}
}
