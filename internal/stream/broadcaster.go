// Package stream fans route status changes out to live subscribers.
package stream

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/shambhavi-kumar59/safenet/internal/models"
)

// Event describes a status change on a single route.
type Event struct {
	RouteID      string              `json:"route_id"`
	DisasterType models.DisasterType `json:"disaster_type"`
	Status       models.RouteStatus  `json:"status"`
	ReportedBy   string              `json:"reported_by,omitempty"`
	Timestamp    time.Time           `json:"timestamp"`
}

func NewEvent(r *models.Route, reportedBy string) Event {
	return Event{
		RouteID:      r.ID,
		DisasterType: r.DisasterType,
		Status:       r.Status,
		ReportedBy:   reportedBy,
		Timestamp:    r.LastUpdated,
	}
}

type Broadcaster struct {
	subscribers map[uint64]chan Event
	nextID      atomic.Uint64
	bufferSize  int
	mu          sync.RWMutex
}

func NewBroadcaster(bufferSize int) *Broadcaster {
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &Broadcaster{
		subscribers: make(map[uint64]chan Event),
		bufferSize:  bufferSize,
	}
}

func (b *Broadcaster) Subscribe() (uint64, <-chan Event) {
	id := b.nextID.Add(1)
	ch := make(chan Event, b.bufferSize)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	return id, ch
}

func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Broadcast(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- e:
		default:
			// Skip slow subscribers
		}
	}
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close closes all subscriber channels, causing streams to exit gracefully
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
