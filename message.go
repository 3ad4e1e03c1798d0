package mq

// Msg is one message held in a queue. The queue owns the payload from the
// moment Send inserts it until Receive detaches and copies it out.
// Ownership transfers cleanly to the list on insert; Receive is the only
// place that ever lets go of it.
type Msg struct {
	Payload  []byte
	Priority uint32
}

// newMsg copies payload into a freshly allocated buffer and wraps it as a
// Msg, standing in for the kernel's kcalloc+memcpy into kernel memory.
func newMsg(payload []byte, priority uint32) *Msg {
	buf := make([]byte, len(payload))
	copy(buf, payload)
	return &Msg{Payload: buf, Priority: priority}
}
