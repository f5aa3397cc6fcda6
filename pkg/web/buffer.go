package web

import (
	"sync"
)

// DefaultBufferSize is the default maximum number of events to keep in the buffer.
const DefaultBufferSize = 10000

// Buffer is a thread-safe ring buffer for storing events with scenario indexing.
// supports quick filtering by scenario for clients that join late.
type Buffer struct {
	mu       sync.RWMutex
	events   []Event
	maxSize  int
	writePos int // next position to write (wraps around)
	count    int // total events written (for full detection)

	// scenario index stores positions of events by scenario name
	scenarioIndex map[string][]int
}

// NewBuffer creates a new ring buffer with the specified max size.
// if maxSize is 0, DefaultBufferSize is used.
func NewBuffer(maxSize int) *Buffer {
	if maxSize <= 0 {
		maxSize = DefaultBufferSize
	}
	return &Buffer{
		events:        make([]Event, maxSize),
		maxSize:       maxSize,
		scenarioIndex: make(map[string][]int),
	}
}

// Add appends an event to the buffer, overwriting oldest if full.
func (b *Buffer) Add(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// if buffer is full, drop the index entry of the event being overwritten
	if b.count >= b.maxSize {
		b.cleanOldIndexEntry(b.writePos)
	}

	b.events[b.writePos] = e
	if e.Scenario != "" {
		b.scenarioIndex[e.Scenario] = append(b.scenarioIndex[e.Scenario], b.writePos)
	}

	b.writePos = (b.writePos + 1) % b.maxSize
	b.count++
}

// cleanOldIndexEntry removes stale index entries for the position being overwritten.
// must be called with lock held.
func (b *Buffer) cleanOldIndexEntry(pos int) {
	old := b.events[pos]
	indices, ok := b.scenarioIndex[old.Scenario]
	if !ok {
		return
	}
	kept := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx != pos {
			kept = append(kept, idx)
		}
	}
	if len(kept) == 0 {
		delete(b.scenarioIndex, old.Scenario)
		return
	}
	b.scenarioIndex[old.Scenario] = kept
}

// All returns all events in chronological order.
func (b *Buffer) All() []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return nil
	}

	result := make([]Event, min(b.count, b.maxSize))
	if b.count <= b.maxSize {
		copy(result, b.events[:b.count])
		return result
	}

	// buffer wrapped, read from writePos to end, then start to writePos
	tailLen := b.maxSize - b.writePos
	copy(result[:tailLen], b.events[b.writePos:])
	copy(result[tailLen:], b.events[:b.writePos])
	return result
}

// ByScenario returns all events of the named scenario in chronological order.
func (b *Buffer) ByScenario(name string) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	indices := b.scenarioIndex[name]
	if len(indices) == 0 {
		return nil
	}

	result := make([]Event, len(indices))
	for i, idx := range indices {
		result[i] = b.events[idx]
	}

	// insertion sort by timestamp, positions may have wrapped around
	for i := 1; i < len(result); i++ {
		for j := i; j > 0 && result[j].Timestamp.Before(result[j-1].Timestamp); j-- {
			result[j], result[j-1] = result[j-1], result[j]
		}
	}
	return result
}

// Count returns the total number of events currently in the buffer.
func (b *Buffer) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return min(b.count, b.maxSize)
}

// Clear removes all events from the buffer.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events = make([]Event, b.maxSize)
	b.writePos = 0
	b.count = 0
	b.scenarioIndex = make(map[string][]int)
}
