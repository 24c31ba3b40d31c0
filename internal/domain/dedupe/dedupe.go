// Package dedupe tracks registration idempotency keys.
package dedupe

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/laborconnect/internal/domain/model"
)

const defaultMaxSize = 50_000

// Record is what a key resolves to. Pending is true between SeenAndRecord and
// Complete, while the first request is still registering.
type Record struct {
	Worker  model.Worker
	Pending bool
}

// Deduper remembers idempotency keys and the worker each one produced.
type Deduper interface {
	// SeenAndRecord atomically checks whether key was seen. If it was, the
	// stored record is returned with seen=true. Otherwise key is recorded as
	// pending and seen=false.
	SeenAndRecord(ctx context.Context, key string) (rec Record, seen bool)

	// Complete attaches the registered worker to a pending key.
	Complete(ctx context.Context, key string, w model.Worker)

	// Unrecord forgets key so the request can be retried.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

type entry struct {
	key string
	rec Record
}

// inMemoryDeduper keeps at most maxSize keys and evicts the oldest completed
// key first. Pending keys are never evicted, so the cache can briefly hold
// more than maxSize keys while that many registrations are in flight.
// maxSize <= 0 means unbounded.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List // front = newest
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]*list.Element)
	d.order = list.New()

	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) (Record, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[key]; ok {
		return el.Value.(*entry).rec, true
	}

	if d.maxSize > 0 && d.order.Len() >= d.maxSize {
		d.evictOldest()
	}

	d.seen[key] = d.order.PushFront(&entry{key: key, rec: Record{Pending: true}})
	d.size.Add(1)
	return Record{}, false
}

func (d *inMemoryDeduper) Complete(_ context.Context, key string, w model.Worker) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[key]; ok {
		el.Value.(*entry).rec = Record{Worker: w}
	}
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[key]; ok {
		d.order.Remove(el)
		delete(d.seen, key)
		d.size.Add(-1)
	}
}

// evictOldest drops the least recently recorded completed key. Caller holds d.mu.
func (d *inMemoryDeduper) evictOldest() {
	for el := d.order.Back(); el != nil; el = el.Prev() {
		e := el.Value.(*entry)
		if e.rec.Pending {
			continue
		}
		d.order.Remove(el)
		delete(d.seen, e.key)
		d.size.Add(-1)
		return
	}
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
