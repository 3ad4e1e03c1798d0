package mq

import (
	"fmt"
	"sync"

	"github.com/dfischer/mosmq/internal/metrics"
	"github.com/dfischer/mosmq/internal/orderedlist"
	"github.com/dfischer/mosmq/internal/sched"
)

// outcome records why a blocked waiter's node was removed from its list,
// when that reason is anything other than "proceed normally." A token
// absent from Queue.outcomes simply means the wake was a normal
// handoff/promotion.
type outcome int

const (
	outcomeShutdown outcome = iota + 1
	outcomeCancelled
)

// senderWaiter is the node enrolled in Queue.senders while a blocked Send
// call waits for room.
type senderWaiter struct {
	thread sched.ThreadID
}

// receiverWaiter is the node enrolled in Queue.receivers while a blocked
// Receive call waits for a message. msg is filled in directly by a
// concurrent Send's fast-path handoff, the dual view of "enqueue then
// immediately dequeue."
type receiverWaiter struct {
	thread sched.ThreadID
	msg    *Msg
}

// Queue is a single named mailbox. Every field below is guarded by mu; an
// entire Send/Receive/Unlink call holds mu for its whole body except while
// actually parked in the Gate.
type Queue struct {
	name string

	mu   sync.Mutex
	gate sched.Gate

	tracker *sched.Tracker

	attr      Attr
	messages  orderedlist.List[*Msg]
	senders   orderedlist.List[*senderWaiter]
	receivers orderedlist.List[*receiverWaiter]
	outcomes  map[orderedlist.Token]outcome

	unlinked bool
	waitCh   chan struct{}
}

// newQueue constructs a Queue with attr's defaults applied. tracker is
// shared across every Queue in a Registry so that a thread blocking on at
// most one queue at a time can be enforced globally.
func newQueue(name string, attr Attr, tracker *sched.Tracker) *Queue {
	q := &Queue{
		name:     name,
		tracker:  tracker,
		attr:     attr.withDefaults(),
		outcomes: make(map[orderedlist.Token]outcome),
		waitCh:   make(chan struct{}),
	}
	q.gate.Init(&q.mu)
	return q
}

// Name returns the queue's registry key.
func (q *Queue) Name() string {
	return q.name
}

// Attr returns a snapshot of the queue's current attributes, including
// live CurMsgs.
func (q *Queue) Attr() Attr {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.attr
}

// Wait returns the queue's current generic wait-channel, for poll-style
// external observers: it closes the next time the queue's observable
// state changes (a message arrives, is consumed, or the queue is
// unlinked), at which point the caller should re-read Attr/Wait.
func (q *Queue) Wait() <-chan struct{} {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.waitCh
}

// signal closes the current wait channel and replaces it, waking anyone
// parked on the one just closed. Must be called with mu held.
func (q *Queue) signal() {
	close(q.waitCh)
	q.waitCh = make(chan struct{})
}

// MetricsSnapshot implements metrics.Source, reporting this queue's current
// depth and blocked-waiter counts for on-demand Prometheus scraping.
func (q *Queue) MetricsSnapshot() metrics.Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	return metrics.Snapshot{
		Name:      q.name,
		CurMsgs:   q.attr.CurMsgs,
		MaxMsgs:   q.attr.MaxMsgs,
		Senders:   q.senders.Len(),
		Receivers: q.receivers.Len(),
	}
}

// afterWait inspects and clears tok's recorded outcome, translating it to
// the corresponding error. A nil return means the wait ended normally and
// the caller should proceed with its operation.
func (q *Queue) afterWait(tok orderedlist.Token) error {
	o, ok := q.outcomes[tok]
	if !ok {
		return nil
	}
	delete(q.outcomes, tok)
	switch o {
	case outcomeShutdown:
		return ErrShutdown
	case outcomeCancelled:
		return errCancelled
	default:
		return nil
	}
}

// Cancel implements the scheduler's thread-teardown hook: it removes
// thread's waiter node from this queue, if it has one, and wakes it with
// errCancelled. It reports whether thread was found blocked here; it is a
// no-op otherwise.
func (q *Queue) Cancel(thread sched.ThreadID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	found := false

	if tok, ok := q.senders.RemoveMatch(func(w *senderWaiter) bool { return w.thread == thread }); ok {
		q.outcomes[tok] = outcomeCancelled
		found = true
	}
	if tok, ok := q.receivers.RemoveMatch(func(w *receiverWaiter) bool { return w.thread == thread }); ok {
		q.outcomes[tok] = outcomeCancelled
		found = true
	}

	if found {
		q.gate.Wake()
	}
	return found
}

// checkInvariantsLocked verifies the queue's structural invariants:
// cur_msgs matches the message list length, occupancy never exceeds
// max_msgs, waiters and messages are never both non-empty in a way that
// contradicts each other, no message exceeds msg_size, and every ordered
// list stays sorted by priority. Callers must hold mu.
func (q *Queue) checkInvariantsLocked() error {
	if int32(q.messages.Len()) != q.attr.CurMsgs {
		return fmt.Errorf("I1 violated: messages.Len()=%d, cur_msgs=%d", q.messages.Len(), q.attr.CurMsgs)
	}
	if q.attr.CurMsgs > q.attr.MaxMsgs {
		return fmt.Errorf("I2 violated: cur_msgs=%d > max_msgs=%d", q.attr.CurMsgs, q.attr.MaxMsgs)
	}
	if q.receivers.Len() > 0 && q.messages.Len() != 0 {
		return fmt.Errorf("I3 violated: %d receivers waiting but messages.Len()=%d", q.receivers.Len(), q.messages.Len())
	}
	if q.senders.Len() > 0 && int32(q.messages.Len()) != q.attr.MaxMsgs {
		return fmt.Errorf("I4 violated: %d senders waiting but messages.Len()=%d (max=%d)", q.senders.Len(), q.messages.Len(), q.attr.MaxMsgs)
	}
	for _, msg := range q.messages.Values() {
		if int32(len(msg.Payload)) > q.attr.MsgSize {
			return fmt.Errorf("I5 violated: message len=%d > msg_size=%d", len(msg.Payload), q.attr.MsgSize)
		}
	}
	if !nonIncreasing(q.messages.Priorities()) {
		return fmt.Errorf("I7 violated: messages not sorted by priority: %v", q.messages.Priorities())
	}
	if !nonIncreasing(q.senders.Priorities()) {
		return fmt.Errorf("I7 violated: senders not sorted by priority: %v", q.senders.Priorities())
	}
	if !nonIncreasing(q.receivers.Priorities()) {
		return fmt.Errorf("I7 violated: receivers not sorted by priority: %v", q.receivers.Priorities())
	}
	return nil
}

// CheckInvariants re-validates the queue's structural invariants against
// its current state. Intended for use from tests and debug tooling.
func (q *Queue) CheckInvariants() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.checkInvariantsLocked()
}

func nonIncreasing(ps []uint32) bool {
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[i-1] {
			return false
		}
	}
	return true
}
