// Package dispatch provides the dense, numbered syscall table mapping
// syscall numbers 277-281 to the five mqueue operations. The original
// kernel dispatches through a function-pointer array indexed by syscall
// number; Go has no function-pointer array with heterogeneous signatures,
// so each slot here wraps its handler behind the same erased signature (a
// variadic arg slice in, an int64-or-negated-errno out), matching the
// untyped shape of a syscall ABI at the trap boundary.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/dfischer/mosmq"
	"github.com/dfischer/mosmq/internal/sched"
)

// Syscall numbers.
const (
	SysMqOpen    = 277
	SysMqClose   = 278
	SysMqUnlink  = 279
	SysMqSend    = 280
	SysMqReceive = 281
)

// Handler is the erased shape every table entry conforms to: args are the
// syscall's positional arguments in order, ret is the non-negative success
// value (e.g. a new fd), and errno is one of the negated values below (0 on
// success). mq_send and mq_receive take the calling thread's
// sched.ThreadID as their first argument, standing in for "current
// thread," which a real syscall gets implicitly from the CPU it traps on.
type Handler func(ctx *mq.Context, args ...any) (ret int64, errno int32)

// Negated errno values returned across the dispatch boundary. Success is
// >= 0, failure is a negative errno, matching the syscall ABI convention.
const (
	errnoOK       int32 = 0
	errnoBadFd    int32 = -1
	errnoInval    int32 = -2
	errnoMsgSize  int32 = -3
	errnoAgain    int32 = -4
	errnoShutdown int32 = -5
)

func errnoFor(err error) int32 {
	switch {
	case err == nil:
		return errnoOK
	case errors.Is(err, mq.ErrBadFd):
		return errnoBadFd
	case errors.Is(err, mq.ErrInvalid):
		return errnoInval
	case errors.Is(err, mq.ErrMsgSize):
		return errnoMsgSize
	case errors.Is(err, mq.ErrWouldBlock):
		return errnoAgain
	case errors.Is(err, mq.ErrShutdown):
		return errnoShutdown
	default:
		return errnoInval
	}
}

// Table is the dense dispatch table: a fixed array indexed by syscall
// number minus the table's base, matching the kernel's sys_call_table
// slice. Unused slots hold a nil Handler.
type Table [SysMqReceive - SysMqOpen + 1]Handler

// New builds the standard table wiring each of the five numbered syscalls
// to the mq package's Context methods.
func New() Table {
	var t Table
	t[SysMqOpen-SysMqOpen] = handleOpen
	t[SysMqClose-SysMqOpen] = handleClose
	t[SysMqUnlink-SysMqOpen] = handleUnlink
	t[SysMqSend-SysMqOpen] = handleSend
	t[SysMqReceive-SysMqOpen] = handleReceive
	return t
}

// Dispatch looks up num in t and invokes it with ctx and args. It panics on
// an unknown syscall number, mirroring a kernel trap into an invalid-opcode
// fault rather than a recoverable error. There is no well-formed errno for
// a syscall number that does not exist.
func (t Table) Dispatch(ctx *mq.Context, num int, args ...any) (int64, int32) {
	idx := num - SysMqOpen
	if idx < 0 || idx >= len(t) || t[idx] == nil {
		panic(fmt.Sprintf("dispatch: unknown syscall number %d", num))
	}
	return t[idx](ctx, args...)
}

func handleOpen(ctx *mq.Context, args ...any) (int64, int32) {
	name := args[0].(string)
	flags := args[1].(int32)
	var attr *mq.Attr
	if len(args) > 2 && args[2] != nil {
		a := args[2].(mq.Attr)
		attr = &a
	}
	fd, err := ctx.Open(name, flags, attr)
	if err != nil {
		return 0, errnoFor(err)
	}
	return int64(fd), errnoOK
}

func handleClose(ctx *mq.Context, args ...any) (int64, int32) {
	fd := args[0].(int)
	if err := ctx.Close(fd); err != nil {
		return 0, errnoFor(err)
	}
	return 0, errnoOK
}

func handleUnlink(ctx *mq.Context, args ...any) (int64, int32) {
	name := args[0].(string)
	if err := ctx.Unlink(name); err != nil {
		return 0, errnoFor(err)
	}
	return 0, errnoOK
}

func handleSend(ctx *mq.Context, args ...any) (int64, int32) {
	thread := args[0].(sched.ThreadID)
	fd := args[1].(int)
	buf := args[2].([]byte)
	priority := args[3].(uint32)

	f, err := ctx.Files.Get(fd)
	if err != nil {
		return 0, errnoFor(mq.ErrBadFd)
	}
	q, ok := f.PrivateData.(*mq.Queue)
	if !ok {
		return 0, errnoFor(mq.ErrBadFd)
	}

	if err := q.Send(thread, buf, priority); err != nil {
		return 0, errnoFor(err)
	}
	return 0, errnoOK
}

func handleReceive(ctx *mq.Context, args ...any) (int64, int32) {
	thread := args[0].(sched.ThreadID)
	fd := args[1].(int)
	buf := args[2].([]byte)
	priority := args[3].(uint32)

	f, err := ctx.Files.Get(fd)
	if err != nil {
		return 0, errnoFor(mq.ErrInvalid)
	}
	q, ok := f.PrivateData.(*mq.Queue)
	if !ok {
		return 0, errnoFor(mq.ErrInvalid)
	}

	n, err := q.Receive(thread, buf, priority)
	if err != nil && !errors.Is(err, mq.ErrShutdown) {
		return 0, errnoFor(err)
	}
	if errors.Is(err, mq.ErrShutdown) {
		return int64(n), errnoShutdown
	}
	return int64(n), errnoOK
}
