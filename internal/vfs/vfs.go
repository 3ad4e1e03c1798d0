// Package vfs provides the minimal file-descriptor table the message-queue
// core needs from the virtual file system: fd allocation and a per-file
// private-data slot. The real VFS's path resolution, permission checks,
// and inode machinery are out of scope; this package exposes exactly the
// contract mq_open/mq_close/mq_send/mq_receive consume.
package vfs

import (
	"errors"
	"sync"
)

// ErrBadFd is returned when a descriptor does not name an open file.
var ErrBadFd = errors.New("vfs: bad file descriptor")

// File is one open file-table entry. PrivateData resolves to whatever the
// opening subsystem bound to it: for mqueue, a *mq.Queue.
type File struct {
	Path        string
	PrivateData any
}

// Table is a process's open-file table: fd -> *File. Multiple fds may
// carry the same PrivateData (multiple opens of the same queue name).
type Table struct {
	mu    sync.Mutex
	files map[int]*File
	next  int
}

// NewTable returns an empty file-descriptor table. fd 0 is never issued,
// matching the convention that 0 is not a valid return from mq_open.
func NewTable() *Table {
	return &Table{files: make(map[int]*File), next: 1}
}

// Open allocates a new fd bound to path, with the given private data, and
// returns the fd.
func (t *Table) Open(path string, privateData any) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	fd := t.next
	t.next++
	t.files[fd] = &File{Path: path, PrivateData: privateData}
	return fd
}

// Get resolves fd to its File, or reports ErrBadFd.
func (t *Table) Get(fd int) (*File, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f, ok := t.files[fd]
	if !ok {
		return nil, ErrBadFd
	}
	return f, nil
}

// Close releases fd. It returns the File that was released (so the caller
// can decide whether that was the last reference to its private data), or
// ErrBadFd if fd was not open.
func (t *Table) Close(fd int) (*File, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f, ok := t.files[fd]
	if !ok {
		return nil, ErrBadFd
	}
	delete(t.files, fd)
	return f, nil
}

// RefCount reports how many open fds currently carry privateData. Used by
// mq_close to decide whether the last descriptor referencing a queue just
// went away.
func (t *Table) RefCount(privateData any) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, f := range t.files {
		if f.PrivateData == privateData {
			n++
		}
	}
	return n
}
