package vfs

import "testing"

func TestOpenGetClose(t *testing.T) {
	tbl := NewTable()

	fd := tbl.Open("/dev/mqueue/q1", "payload")
	if fd == 0 {
		t.Fatal("Open() returned fd 0, which must never be issued")
	}

	f, err := tbl.Get(fd)
	if err != nil {
		t.Fatalf("Get(%d) error: %v", fd, err)
	}
	if f.PrivateData != "payload" {
		t.Fatalf("PrivateData = %v; want %q", f.PrivateData, "payload")
	}

	if _, err := tbl.Close(fd); err != nil {
		t.Fatalf("Close(%d) error: %v", fd, err)
	}
	if _, err := tbl.Get(fd); err != ErrBadFd {
		t.Fatalf("Get after Close: err = %v; want ErrBadFd", err)
	}
}

func TestGetUnknownFd(t *testing.T) {
	tbl := NewTable()
	if _, err := tbl.Get(99); err != ErrBadFd {
		t.Fatalf("Get(99) error = %v; want ErrBadFd", err)
	}
}

func TestRefCount(t *testing.T) {
	tbl := NewTable()
	q := "shared-queue-object"

	fd1 := tbl.Open("/dev/mqueue/q1", q)
	fd2 := tbl.Open("/dev/mqueue/q1", q)

	if got := tbl.RefCount(q); got != 2 {
		t.Fatalf("RefCount = %d; want 2", got)
	}

	tbl.Close(fd1)
	if got := tbl.RefCount(q); got != 1 {
		t.Fatalf("RefCount after one close = %d; want 1", got)
	}

	tbl.Close(fd2)
	if got := tbl.RefCount(q); got != 0 {
		t.Fatalf("RefCount after both closed = %d; want 0", got)
	}
}
