package live

import "sync"

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Event describes a committed mutation against one table. Subscribers use it
// as an invalidation signal to re-run their reads; it carries no row data.
type Event struct {
	Table string `json:"table"`
	Op    Op     `json:"op"`
	ID    string `json:"id"`
}

// Publisher is the write side of the change channel. Services publish after
// every committed mutation.
type Publisher interface {
	Publish(event Event)
}

// Discard is a Publisher that drops everything. Used by tests and seeding.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(Event) {}

const defaultBuffer = 64

// Hub fans mutation events out to table-scoped subscribers. Slow subscribers
// are dropped rather than back-pressuring publishers.
type Hub struct {
	mu   sync.RWMutex
	subs map[*Subscriber]struct{}
}

type Subscriber struct {
	hub    *Hub
	tables map[string]struct{}
	ch     chan Event

	closeOnce sync.Once
	closed    chan struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscriber]struct{})}
}

// Subscribe registers interest in the given tables. An empty table list
// subscribes to every table.
func (h *Hub) Subscribe(tables []string) *Subscriber {
	sub := &Subscriber{
		hub:    h,
		tables: make(map[string]struct{}, len(tables)),
		ch:     make(chan Event, defaultBuffer),
		closed: make(chan struct{}),
	}
	for _, table := range tables {
		sub.tables[table] = struct{}{}
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	var full []*Subscriber
	for sub := range h.subs {
		if !sub.wants(event.Table) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			full = append(full, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range full {
		sub.Close()
	}
}

func (h *Hub) remove(sub *Subscriber) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
}

func (s *Subscriber) wants(table string) bool {
	if len(s.tables) == 0 {
		return true
	}
	_, ok := s.tables[table]
	return ok
}

// Events delivers change notifications until the subscriber is closed.
func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

// Done is closed when the subscriber has been dropped.
func (s *Subscriber) Done() <-chan struct{} {
	return s.closed
}

func (s *Subscriber) Close() {
	s.closeOnce.Do(func() {
		s.hub.remove(s)
		close(s.closed)
	})
}
