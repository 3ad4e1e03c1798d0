package dispatch

import (
	"testing"

	"github.com/dfischer/mosmq"
	"github.com/dfischer/mosmq/internal/sched"
)

func TestReceiveUnknownFdReturnsInval(t *testing.T) {
	ctx := mq.NewContext(mq.NewRegistry())
	tbl := New()

	_, errno := tbl.Dispatch(ctx, SysMqReceive, sched.NewThreadID(), 99, make([]byte, 64), uint32(0))
	if errno != errnoInval {
		t.Errorf("mq_receive on unknown fd: errno = %d, want %d (INVAL)", errno, errnoInval)
	}
}

func TestSendUnknownFdReturnsBadFd(t *testing.T) {
	ctx := mq.NewContext(mq.NewRegistry())
	tbl := New()

	_, errno := tbl.Dispatch(ctx, SysMqSend, sched.NewThreadID(), 99, []byte("x"), uint32(0))
	if errno != errnoBadFd {
		t.Errorf("mq_send on unknown fd: errno = %d, want %d (BADF)", errno, errnoBadFd)
	}
}

func TestOpenCloseRoundTrip(t *testing.T) {
	ctx := mq.NewContext(mq.NewRegistry())
	tbl := New()

	ret, errno := tbl.Dispatch(ctx, SysMqOpen, "/dispatch-test", int32(0), nil)
	if errno != errnoOK {
		t.Fatalf("mq_open errno = %d, want 0", errno)
	}
	fd := int(ret)

	_, errno = tbl.Dispatch(ctx, SysMqClose, fd)
	if errno != errnoOK {
		t.Errorf("mq_close errno = %d, want 0", errno)
	}
}
