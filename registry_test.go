package mq

import "testing"

func TestRegistryGetOrCreateIsIdempotent(t *testing.T) {
	r := NewRegistry()
	q1, created1 := r.getOrCreate("/a", Attr{MaxMsgs: 2, MsgSize: 16})
	if !created1 {
		t.Error("getOrCreate() first call created = false, want true")
	}
	q2, created2 := r.getOrCreate("/a", Attr{MaxMsgs: 2, MsgSize: 16})
	if created2 {
		t.Error("getOrCreate() second call created = true, want false")
	}
	if q1 != q2 {
		t.Error("getOrCreate() returned different queues for the same name")
	}
}

func TestRegistryRemoveOnlyRemovesMatchingQueue(t *testing.T) {
	r := NewRegistry()
	q1, _ := r.getOrCreate("/a", Attr{})
	r.remove("/a", q1)
	if _, ok := r.Lookup("/a"); ok {
		t.Error("queue still present after remove()")
	}

	q2, _ := r.getOrCreate("/a", Attr{})
	r.remove("/a", q1) // stale reference, should be a no-op
	if _, ok := r.Lookup("/a"); !ok {
		t.Error("remove() with a stale queue reference deleted the current registration")
	}
	_ = q2
}
