package mq

import (
	"testing"

	"github.com/dfischer/mosmq/internal/sched"
	"pgregory.net/rapid"
)

// TestQueueInvariantsUnderRandomOps drives random non-blocking send/receive
// sequences against a single queue and checks I1, I2, I5, and I7 after every
// step. Blocking ops are excluded deliberately: a property test that can
// deadlock on its own queue is worse than no property test.
func TestQueueInvariantsUnderRandomOps(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		maxMsgs := rapid.Int32Range(1, 6).Draw(t, "maxMsgs")
		msgSize := rapid.Int32Range(1, 32).Draw(t, "msgSize")
		q := newQueue("rapid", Attr{MaxMsgs: maxMsgs, MsgSize: msgSize, Flags: NonBlock}, sched.NewTracker())
		thread := sched.NewThreadID()

		steps := rapid.SliceOfN(rapid.IntRange(0, 1), 1, 50).Draw(t, "steps")
		for _, step := range steps {
			switch step {
			case 0:
				n := rapid.Int32Range(0, msgSize).Draw(t, "payloadLen")
				priority := rapid.Uint32Range(0, 7).Draw(t, "priority")
				payload := make([]byte, n)
				_ = q.Send(thread, payload, priority)
			case 1:
				priority := rapid.Uint32Range(0, 7).Draw(t, "priority")
				buf := make([]byte, msgSize)
				_, _ = q.Receive(thread, buf, priority)
			}
			if err := q.CheckInvariants(); err != nil {
				t.Fatalf("invariant violated after step %d: %v", step, err)
			}
		}
	})
}

// TestSendExactMsgSizeAcceptedOneOverRejected pins the msg_size boundary: a
// payload of exactly msg_size is accepted, one byte more is ErrMsgSize.
func TestSendExactMsgSizeAcceptedOneOverRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		msgSize := rapid.Int32Range(1, 64).Draw(t, "msgSize")
		q := newQueue("rapid", Attr{MaxMsgs: 4, MsgSize: msgSize}, sched.NewTracker())
		thread := sched.NewThreadID()

		if err := q.Send(thread, make([]byte, msgSize), 0); err != nil {
			t.Fatalf("Send() at exactly msg_size error = %v, want nil", err)
		}
		if err := q.Send(thread, make([]byte, msgSize+1), 0); err != ErrMsgSize {
			t.Fatalf("Send() at msg_size+1 error = %v, want %v", err, ErrMsgSize)
		}
	})
}

// TestReceiveBufferMustBeAtLeastMsgSize pins the companion boundary on the
// receive side: a buffer shorter than msg_size is rejected regardless of
// whether a message is actually waiting.
func TestReceiveBufferMustBeAtLeastMsgSize(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		msgSize := rapid.Int32Range(1, 64).Draw(t, "msgSize")
		capacity := rapid.Int32Range(0, msgSize-1).Draw(t, "capacity")
		q := newQueue("rapid", Attr{MaxMsgs: 4, MsgSize: msgSize}, sched.NewTracker())
		thread := sched.NewThreadID()

		if _, err := q.Receive(thread, make([]byte, capacity), 0); err != ErrInvalid {
			t.Fatalf("Receive() with cap=%d < msg_size=%d error = %v, want %v", capacity, msgSize, err, ErrInvalid)
		}
	})
}
