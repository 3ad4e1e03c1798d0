package mq

import "github.com/dfischer/mosmq/internal/vfs"

// mqueueDir is the fixed directory prefix every queue name is canonicalized
// under before VFS lookup.
const mqueueDir = "/dev/mqueue/"

// Context bundles the two kernel-global collaborators Open/Close/Unlink
// need: the fd table and the queue name registry. A syscall dispatch
// adapter closes over one Context per simulated process.
type Context struct {
	Files    *vfs.Table
	Registry *Registry
}

// NewContext returns a Context with a fresh fd table, bound to registry.
// Multiple Contexts may share one Registry (simulating multiple processes
// opening the same system-wide queues), but each gets its own fd table.
func NewContext(registry *Registry) *Context {
	return &Context{
		Files:    vfs.NewTable(),
		Registry: registry,
	}
}

// Open resolves name to a queue, creating it with attr's geometry if it
// doesn't yet exist, and binds a new fd to it. attr is optional: pass nil
// to open an existing queue without asserting its geometry, or to create
// one with package defaults.
//
// The registry is consulted first (lookup-or-create, plus the geometry
// check); only then does the VFS allocate the fd, with the queue bound as
// its private data in the same step. No fd is allocated before the queue
// is resolved, so a conflicting re-open panics without consuming one.
func (c *Context) Open(name string, flags int32, attr *Attr) (int, error) {
	path := mqueueDir + name

	var want Attr
	if attr != nil {
		want = attr.withDefaults()
	} else {
		want = Attr{}.withDefaults()
	}

	q, created := c.Registry.getOrCreate(name, want)
	if !created && attr != nil {
		existing := q.Attr()
		if !existing.congruent(want) {
			// Matches the original's assertion-abort on a conflicting
			// re-open: this is a caller bug, not a recoverable runtime
			// condition.
			panic("mosmq: mq_open: conflicting attr for existing queue " + name)
		}
	}

	// Flags are fixed at creation, like max_msgs/msg_size. A reopen must
	// not let one fd's blocking mode overwrite the queue's behavior for
	// every other fd already bound to it.
	if created {
		q.mu.Lock()
		q.attr.Flags = flags
		q.mu.Unlock()
	}

	fd := c.Files.Open(path, q)
	logger.Info("open", "name", name, "fd", fd, "created", created)
	return fd, nil
}

// Close releases fd. If that was the last fd referencing an
// already-unlinked queue, it asks the registry to remove the queue; Unlink
// has already done so, so this is a no-op, and with the last fd gone
// nothing holds the queue any more.
func (c *Context) Close(fd int) error {
	f, err := c.Files.Close(fd)
	if err != nil {
		return ErrBadFd
	}

	q, ok := f.PrivateData.(*Queue)
	if !ok {
		return ErrBadFd
	}

	q.mu.Lock()
	unlinked := q.unlinked
	q.mu.Unlock()

	if unlinked && c.Files.RefCount(q) == 0 {
		c.Registry.remove(q.name, q)
	}

	logger.Debug("close", "fd", fd, "queue", q.name)
	return nil
}

// Unlink removes name from the registry immediately, so no new Open can
// find it, and drains every buffered message and every blocked
// sender/receiver, waking each one with the shutdown indicator. The queue
// object itself survives until the last fd referencing it is closed.
func (c *Context) Unlink(name string) error {
	q, ok := c.Registry.Lookup(name)
	if !ok {
		return ErrInvalid
	}
	c.Registry.remove(name, q)

	q.mu.Lock()
	q.unlinked = true
	q.messages.DrainTokens()
	q.attr.CurMsgs = 0
	for _, tok := range q.senders.DrainTokens() {
		q.outcomes[tok] = outcomeShutdown
	}
	for _, tok := range q.receivers.DrainTokens() {
		q.outcomes[tok] = outcomeShutdown
	}
	q.gate.Wake()
	q.signal()
	q.mu.Unlock()

	logger.Info("unlink", "queue", name)
	return nil
}
