package sched

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ThreadID identifies a schedulable thread. The real kernel carries a
// pointer to its thread-control block; here a uuid is enough to log,
// compare, and key a Tracker entry by, without pulling in a full process
// model.
type ThreadID uuid.UUID

// NewThreadID mints a fresh thread identity.
func NewThreadID() ThreadID {
	return ThreadID(uuid.New())
}

func (t ThreadID) String() string {
	return uuid.UUID(t).String()
}

// Location records where a thread is currently enrolled: which queue name
// and which waiter-list token.
type Location struct {
	Queue string
	Token uint64
}

// Tracker enforces invariant I6: a thread appears in at most one waiter
// list, of at most one queue, at a time. A Registry owns one Tracker shared
// by every Queue it holds, since the invariant is global, not per-queue.
type Tracker struct {
	mu       sync.Mutex
	enrolled map[ThreadID]Location
}

// NewTracker returns a ready-to-use Tracker.
func NewTracker() *Tracker {
	return &Tracker{enrolled: make(map[ThreadID]Location)}
}

// MustEnroll records that id is now blocked in queue at token. It panics if
// id is already enrolled elsewhere. Like the original kernel's defensive
// assertions, this signals a caller bug (a thread trying to block twice),
// not a recoverable runtime condition.
func (t *Tracker) MustEnroll(id ThreadID, queue string, token uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if loc, ok := t.enrolled[id]; ok {
		panic(fmt.Sprintf("mosmq: thread %s already enrolled on queue %q (token %d)", id, loc.Queue, loc.Token))
	}
	t.enrolled[id] = Location{Queue: queue, Token: token}
}

// Release removes id's enrollment. It is a no-op if id is not enrolled.
func (t *Tracker) Release(id ThreadID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.enrolled, id)
}

// Location reports where id is currently enrolled, if anywhere.
func (t *Tracker) Location(id ThreadID) (Location, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	loc, ok := t.enrolled[id]
	return loc, ok
}
