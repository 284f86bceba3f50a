package uid

import (
	"errors"
	"math"
)

// ErrExhausted is returned once every UID has been handed out.
var ErrExhausted = errors.New("uid space exhausted")

// UID identifies a unit or building for the whole session. Zero is never issued.
type UID uint32

// Allocator issues UIDs in increasing order and never reuses one. When the
// space runs out it saturates: every further call fails and no duplicate is
// ever produced.
type Allocator struct {
	next uint32
	last uint32
	done bool
}

// NewAllocator returns an allocator covering 1..MaxUint32.
func NewAllocator() *Allocator {
	return NewAllocatorRange(1, math.MaxUint32)
}

// NewAllocatorRange returns an allocator that issues first..last inclusive.
func NewAllocatorRange(first, last uint32) *Allocator {
	if first == 0 {
		first = 1
	}
	return &Allocator{next: first, last: last, done: first > last}
}

// Next returns a fresh UID, or ErrExhausted.
func (a *Allocator) Next() (UID, error) {
	if a.done {
		return 0, ErrExhausted
	}
	id := a.next
	if id == a.last {
		a.done = true
	} else {
		a.next++
	}
	return UID(id), nil
}
