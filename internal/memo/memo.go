// Package memo remembers recently handled message ids.
package memo

const DefaultCapacity = 200

// Memo is a bounded set of message ids. When it grows past its capacity the oldest half
// of the entries, by insertion order, is dropped. It is not safe for concurrent use.
type Memo struct {
	capacity int
	order    []string
	seen     map[string]struct{}
}

func New(capacity int) *Memo {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Memo{
		capacity: capacity,
		seen:     make(map[string]struct{}, capacity+1),
	}
}

// Seen reports whether id was recorded before. A new id is recorded.
func (m *Memo) Seen(id string) bool {
	if _, ok := m.seen[id]; ok {
		return true
	}
	m.seen[id] = struct{}{}
	m.order = append(m.order, id)
	if len(m.order) > m.capacity {
		m.evictOldestHalf()
	}
	return false
}

func (m *Memo) evictOldestHalf() {
	drop := len(m.order) / 2
	for _, id := range m.order[:drop] {
		delete(m.seen, id)
	}
	m.order = append([]string(nil), m.order[drop:]...)
}
