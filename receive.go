package mq

import (
	"github.com/dfischer/mosmq/internal/orderedlist"
	"github.com/dfischer/mosmq/internal/sched"
)

// Receive dequeues the highest-priority message, blocking if the queue is
// empty unless O_NONBLOCK is set. buf must have capacity at least
// attr.MsgSize; it returns the number of bytes copied.
func (q *Queue) Receive(thread sched.ThreadID, buf []byte, priority uint32) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if int32(len(buf)) < q.attr.MsgSize {
		return 0, ErrInvalid
	}

	if q.attr.CurMsgs == q.attr.MaxMsgs {
		// Full-queue sender promotion: wake the highest-priority waiting
		// sender now. It will refill the queue once it reacquires the
		// lock this call is about to release, keeping I4 satisfied
		// without starving senders after a drain.
		if _, _, ok := q.senders.PopFront(); ok {
			q.gate.Wake()
		}
	} else if q.attr.CurMsgs == 0 {
		if q.attr.NonBlocking() {
			return 0, ErrWouldBlock
		}

		var tok orderedlist.Token
		rw := &receiverWaiter{thread: thread}
		q.gate.WaitUntil(
			func() bool { return !q.receivers.Contains(tok) },
			func() {
				tok = q.receivers.Insert(priority, rw)
				q.tracker.MustEnroll(thread, q.name, uint64(tok))
			},
			func() { q.tracker.Release(thread) },
		)

		if err := q.afterWait(tok); err != nil {
			return 0, err
		}

		// A blocked receiver is only ever woken by Send's direct
		// handoff: messages stays empty the whole time a receiver waits,
		// so there is never anything in messages for it to consume
		// instead.
		logger.Debug("receive", "queue", q.name, "handoff", true)
		n := copy(buf, rw.msg.Payload)
		if q.unlinked {
			return n, ErrShutdown
		}
		return n, nil
	}

	msg, _, ok := q.messages.PopFront()
	if !ok {
		// Unreachable under the invariants above; defensive only.
		return 0, ErrInvalid
	}
	q.attr.CurMsgs--
	n := copy(buf, msg.Payload)
	q.signal()

	logger.Debug("receive", "queue", q.name, "priority", msg.Priority, "len", n)

	if q.unlinked {
		return n, ErrShutdown
	}
	return n, nil
}
