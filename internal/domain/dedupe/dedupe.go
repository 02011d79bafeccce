// Package dedupe tracks already-seen submission IDs so duplicate record
// submissions are acknowledged instead of stored twice.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen submission IDs for at-most-once record creation.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it
	// if not. Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes an ID, allowing the submission to be retried after
	// a failed store write.
	Unrecord(ctx context.Context, id string)

	// Size returns the number of tracked IDs.
	Size() int
}

// orderEntry pairs an ID with the sequence number of its insertion. An ID
// that was unrecorded and later re-added leaves a stale entry behind; the
// sequence number tells eviction which entry is the live one.
type orderEntry struct {
	id  string
	seq uint64
}

// memoryDeduper keeps IDs in a map with FIFO eviction once maxSize is
// reached. The order slice holds insertion order so eviction is O(1).
type memoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]uint64
	order   []orderEntry
	head    int
	nextSeq uint64
	maxSize int
}

// NewMemoryDeduper creates a bounded in-memory deduper.
func NewMemoryDeduper(opts ...Option) Deduper {
	d := &memoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]uint64, d.maxSize)
	d.order = make([]orderEntry, 0, d.maxSize)
	return d
}

func (d *memoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	if len(d.seen) >= d.maxSize {
		d.evictOldest()
	}
	d.seen[id] = d.nextSeq
	d.order = append(d.order, orderEntry{id: id, seq: d.nextSeq})
	d.nextSeq++
	return false
}

func (d *memoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, id)
}

func (d *memoryDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}

// evictOldest drops the oldest live ID. Entries removed via Unrecord or
// superseded by a later re-add of the same ID are skipped; the order slice
// is compacted once the dead prefix grows.
func (d *memoryDeduper) evictOldest() {
	for d.head < len(d.order) {
		e := d.order[d.head]
		d.head++
		if seq, ok := d.seen[e.id]; ok && seq == e.seq {
			delete(d.seen, e.id)
			break
		}
	}
	if d.head > d.maxSize {
		d.order = append([]orderEntry(nil), d.order[d.head:]...)
		d.head = 0
	}
}
