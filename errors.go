package mq

import "errors"

// Sentinel errors returned by the message-queue core. The syscall dispatch
// layer (internal/dispatch) is responsible for turning these back into
// negative errno ints at the ABI boundary.
var (
	// ErrBadFd is returned when a descriptor does not resolve to a queue.
	ErrBadFd = errors.New("mosmq: bad file descriptor")

	// ErrInvalid is returned for a nil queue on receive, malformed
	// arguments, or unlink of an unknown name.
	ErrInvalid = errors.New("mosmq: invalid argument")

	// ErrMsgSize is returned when a send payload exceeds the queue's
	// configured message size.
	ErrMsgSize = errors.New("mosmq: message too large for queue")

	// ErrWouldBlock is returned instead of blocking when the queue's
	// O_NONBLOCK flag is set.
	ErrWouldBlock = errors.New("mosmq: operation would block")

	// ErrShutdown is returned when the queue was unlinked during the
	// operation. For a send that was blocked when the unlink happened, no
	// message was enqueued; a send on an already-unlinked queue still
	// enqueues (or hands off) its message before returning it. For
	// receive, any bytes already copied are still valid.
	ErrShutdown = errors.New("mosmq: queue was unlinked")
)

// errCancelled is returned internally when a waiter's thread was torn down
// while blocked (see internal/sched and Queue.Cancel). It never crosses
// the dispatch boundary, since there is no syscall caller left to observe
// it, but Send/Receive need a third outcome alongside "proceed" and
// "shutdown" to unwind cleanly. Tests exercise it directly against
// Queue.Cancel.
var errCancelled = errors.New("mosmq: thread cancelled while blocked")
