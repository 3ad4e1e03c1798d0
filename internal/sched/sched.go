// Package sched provides the blocking engine the message-queue core relies
// on: enroll-and-sleep with no lost wakeups, plus thread-teardown cleanup
// for cancellation.
//
// The original kernel's wait_until_with_setup is a hand-rolled macro around
// a scheduler-private BLOCKED state. In Go the natural analogue is a
// sync.Cond paired with the caller's own mutex: enrollment happens while
// the lock is held, the lock is dropped for the duration of Cond.Wait, and
// the predicate is re-tested under the lock on every wake. This is the same
// shape as doismellburning-samoyed's tq_wait_while_empty/wake_up_cond
// transmit-queue wait, generalized from a single boolean flag to an
// arbitrary caller-supplied predicate.
package sched

import "sync"

// Gate is a condition-variable-backed wait point. A Gate is typically
// embedded in the struct whose mutex also guards the predicate it waits on.
type Gate struct {
	cond *sync.Cond
	once sync.Once
}

// Init binds the Gate to mu. mu must be the same mutex the caller holds
// while evaluating predicates passed to WaitUntil.
func (g *Gate) Init(mu *sync.Mutex) {
	g.once.Do(func() {
		g.cond = sync.NewCond(mu)
	})
}

// WaitUntil blocks the calling goroutine until predicate() returns true.
// The caller must hold mu (the mutex Init was called with) on entry; Wait
// atomically releases it while blocked and re-acquires it before
// re-evaluating predicate, so a Broadcast that happens between the last
// false check and the goroutine actually going to sleep is never lost.
//
// setup runs once, under the lock, before the first wait: this is where
// callers enroll a waiter node into a priority list. teardown runs exactly
// once, under the lock, after predicate finally returns true: this is
// where callers remove that node (if the wake path hasn't already done so)
// and release it.
func (g *Gate) WaitUntil(predicate func() bool, setup func(), teardown func()) {
	if setup != nil {
		setup()
	}
	for !predicate() {
		g.cond.Wait()
	}
	if teardown != nil {
		teardown()
	}
}

// Wake wakes every goroutine blocked in WaitUntil on this Gate. Each one
// re-checks its own predicate on wake; Gate does not track which waiter
// "belongs" to which wake event, because the queue core is responsible for
// ordering (it wakes exactly the waiter whose turn it is by popping that
// waiter's node from the priority list before calling Wake).
func (g *Gate) Wake() {
	g.cond.Broadcast()
}
