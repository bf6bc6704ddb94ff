package fanout

import (
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/mvdberg/alertlog/core"
	"github.com/mvdberg/alertlog/handler"
)

// Queue decouples producers from slow sink I/O. Records are enqueued into a
// bounded channel and a single consumer goroutine dispatches each one to
// every handler in configured order, synchronously within the consumer.
//
// Ordering: the single channel and single consumer give strict FIFO — every
// handler observes records in arrival order, which preserves each
// producer's emission order.
//
// The consumer is the terminal owner of each dequeued record and returns it
// to the pool after dispatch.
type Queue struct {
	handlers []handler.Handler
	ch       chan *core.Record
	closing  chan struct{}
	wg       sync.WaitGroup
	once     sync.Once

	policies     map[core.Level]Policy
	blockTimeout time.Duration
	drainTimeout time.Duration
	stats        *Stats
}

// QueueConfig holds configuration for a fan-out queue
type QueueConfig struct {
	// Capacity is the queue bound (default: 1000)
	Capacity int
	// Policies overrides the per-level overflow behavior
	// (default: DefaultPolicies)
	Policies map[core.Level]Policy
	// BlockTimeout bounds how long a Block enqueue waits (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout bounds the drain on Close (default: 5s)
	DrainTimeout time.Duration
}

// NewQueue creates a queue dispatching to the given handlers and starts its
// consumer.
func NewQueue(cfg QueueConfig, handlers ...handler.Handler) *Queue {
	if cfg.Capacity <= 0 {
		cfg.Capacity = 1000
	}
	if cfg.Policies == nil {
		cfg.Policies = DefaultPolicies()
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}

	q := &Queue{
		handlers:     handlers,
		ch:           make(chan *core.Record, cfg.Capacity),
		closing:      make(chan struct{}),
		policies:     cfg.Policies,
		blockTimeout: cfg.BlockTimeout,
		drainTimeout: cfg.DrainTimeout,
		stats:        &Stats{},
	}

	q.wg.Add(1)
	go q.consume()

	return q
}

// Enqueue hands a record to the consumer. Producers never block on handler
// I/O: under the drop policies the call is non-blocking, and under Block it
// waits at most the block timeout before dispatching inline itself. After
// Close, records are dispatched inline so nothing already emitted is lost.
func (q *Queue) Enqueue(r *core.Record) {
	select {
	case <-q.closing:
		q.dispatch(r)
		return
	default:
	}

	policy, ok := q.policies[r.Level]
	if !ok {
		policy = DropNewest
	}

	switch policy {
	case Block:
		select {
		case q.ch <- r:
		default:
			select {
			case q.ch <- r:
			case <-time.After(q.blockTimeout):
				q.stats.incBlocked()
				q.dispatch(r)
			case <-q.closing:
				q.dispatch(r)
			}
		}

	case DropOldest:
		select {
		case q.ch <- r:
		default:
			// Evict one, then retry once.
			select {
			case old := <-q.ch:
				q.stats.incDropped(old.Level)
				core.PutRecord(old)
			default:
			}
			select {
			case q.ch <- r:
			default:
				q.stats.incDropped(r.Level)
				core.PutRecord(r)
			}
		}

	case DropNewest:
		fallthrough
	default:
		select {
		case q.ch <- r:
		default:
			q.stats.incDropped(r.Level)
			core.PutRecord(r)
		}
	}
}

// dispatch delivers a record to every handler in order, then recycles it
func (q *Queue) dispatch(r *core.Record) {
	for _, h := range q.handlers {
		if err := h.Handle(r); err != nil {
			q.stats.incFailed()
		}
	}
	q.stats.incProcessed()
	core.PutRecord(r)
}

// consume is the single consumer loop
func (q *Queue) consume() {
	defer q.wg.Done()

	for {
		select {
		case r := <-q.ch:
			q.dispatch(r)
		case <-q.closing:
			// Drain what producers already emitted, bounded in time.
			deadline := time.After(q.drainTimeout)
			for {
				select {
				case r := <-q.ch:
					q.dispatch(r)
				case <-deadline:
					return
				default:
					return
				}
			}
		}
	}
}

// Stats returns the queue's counters
func (q *Queue) Stats() *Stats {
	return q.stats
}

// Close stops the consumer after draining the queue, then closes every
// handler. Idempotent; safe to call concurrently with producers.
func (q *Queue) Close() error {
	var err error
	q.once.Do(func() {
		close(q.closing)
		q.wg.Wait()

		for _, h := range q.handlers {
			err = multierr.Append(err, h.Close())
		}
	})
	return err
}
