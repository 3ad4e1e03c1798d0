package mq

import (
	"sync"

	"github.com/dfischer/mosmq/internal/metrics"
	"github.com/dfischer/mosmq/internal/sched"
)

// Registry is the kernel-wide name table for message queues: a single
// namespace mapping a queue's name to its live *Queue, shared by every fd
// that opens it. It also owns the one sched.Tracker every Queue it creates
// is wired to, since a thread's single-queue-at-a-time rule is enforced
// globally, not per-queue.
type Registry struct {
	mu        sync.Mutex
	queues    map[string]*Queue
	tracker   *sched.Tracker
	collector *metrics.Collector
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		queues:  make(map[string]*Queue),
		tracker: sched.NewTracker(),
	}
}

// Lookup returns the queue registered under name, if any.
func (r *Registry) Lookup(name string) (*Queue, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.queues[name]
	return q, ok
}

// getOrCreate returns the existing queue named name, or creates one with
// attr if none exists. It reports whether a new queue was created.
func (r *Registry) getOrCreate(name string, attr Attr) (q *Queue, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if q, ok := r.queues[name]; ok {
		return q, false
	}

	q = newQueue(name, attr, r.tracker)
	r.queues[name] = q
	if r.collector != nil {
		r.collector.Register(name, q)
	}
	return q, true
}

// remove deletes name from the registry. It is a no-op if name is not
// present, or if q is no longer the registered queue for name (a new queue
// of the same name may have been created in between).
func (r *Registry) remove(name string, q *Queue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.queues[name]; ok && cur == q {
		delete(r.queues, name)
		if r.collector != nil {
			r.collector.Unregister(name)
		}
	}
}

// EnableMetrics arms collector to track every queue subsequently created
// via Open, registering each one as a metrics.Source and unregistering it
// on removal. It is opt-in and applies only going forward; existing queues
// are unaffected.
func (r *Registry) EnableMetrics(collector *metrics.Collector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collector = collector
}
