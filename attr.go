package mq

import "golang.org/x/sys/unix"

// Default queue attributes, matching the original kernel's
// MAX_NUMBER_OF_MQ_MESSAGES / MAX_MQ_MESSAGE_SIZE constants.
const (
	DefaultMaxMsgs = 8
	DefaultMsgSize = 8192
)

// NonBlock is the O_NONBLOCK bit, resolved against the host's real flag
// value via golang.org/x/sys/unix rather than a hand-rolled constant, so it
// stays correct across build targets.
const NonBlock int32 = unix.O_NONBLOCK

// Attr describes a queue's configuration and current occupancy. Only the
// first three fields (Flags, MaxMsgs, MsgSize) are meaningful as input to
// Open; CurMsgs is derived state reported back to the caller.
type Attr struct {
	Flags   int32
	MaxMsgs int32
	MsgSize int32
	CurMsgs int32
}

// NonBlocking reports whether the O_NONBLOCK bit is set.
func (a Attr) NonBlocking() bool {
	return a.Flags&NonBlock != 0
}

// withDefaults fills MaxMsgs/MsgSize with the package defaults wherever the
// caller left them unset (zero or negative), leaving Flags as given.
func (a Attr) withDefaults() Attr {
	if a.MaxMsgs <= 0 {
		a.MaxMsgs = DefaultMaxMsgs
	}
	if a.MsgSize <= 0 {
		a.MsgSize = DefaultMsgSize
	}
	return a
}

// congruent reports whether two attribute sets describe compatible queue
// geometry for the purposes of opening an existing queue: max_msgs and
// msg_size must match. Flags is excluded because it was fixed by whichever
// open created the queue; cur_msgs is excluded because it's derived state,
// not caller input.
func (a Attr) congruent(b Attr) bool {
	return a.MaxMsgs == b.MaxMsgs && a.MsgSize == b.MsgSize
}
