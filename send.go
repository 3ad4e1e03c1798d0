package mq

import (
	"github.com/dfischer/mosmq/internal/orderedlist"
	"github.com/dfischer/mosmq/internal/sched"
)

// Send enqueues payload at priority, blocking if the queue is full unless
// O_NONBLOCK is set. thread identifies the calling goroutine for
// waiter-list bookkeeping; payload is copied, never retained by reference,
// so the caller's buffer is free to reuse immediately after Send returns.
func (q *Queue) Send(thread sched.ThreadID, payload []byte, priority uint32) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if int32(len(payload)) > q.attr.MsgSize {
		return ErrMsgSize
	}

	for q.attr.CurMsgs == q.attr.MaxMsgs {
		if q.attr.NonBlocking() {
			return ErrWouldBlock
		}

		var tok orderedlist.Token
		q.gate.WaitUntil(
			func() bool { return !q.senders.Contains(tok) },
			func() {
				tok = q.senders.Insert(priority, &senderWaiter{thread: thread})
				q.tracker.MustEnroll(thread, q.name, uint64(tok))
			},
			func() { q.tracker.Release(thread) },
		)

		if err := q.afterWait(tok); err != nil {
			return err
		}
		// Predicate held because a Receive call promoted us: cur_msgs
		// dropped below max_msgs in the same critical section that
		// removed our node (see Receive's "full-queue sender
		// promotion"). The lock was released while parked, so another
		// sender may have taken that slot since; the loop re-checks and
		// blocks again if the queue is full once more.
	}

	logger.Debug("send", "queue", q.name, "priority", priority, "len", len(payload))

	if rw, _, ok := q.receivers.PopFront(); ok {
		// Fast-path handoff: a receiver is already waiting, which means
		// messages is empty. Hand the message directly to it rather than
		// enqueuing and immediately dequeuing.
		rw.msg = newMsg(payload, priority)
		q.gate.Wake()
	} else {
		q.messages.Insert(priority, newMsg(payload, priority))
		q.attr.CurMsgs++
		q.signal()
	}

	if q.unlinked {
		return ErrShutdown
	}
	return nil
}
