// Package idalloc hands out process-unique, increasing integer identifiers.
package idalloc

import (
	"sync/atomic"
	"time"
)

// Allocator is a counter seeded from the clock. It is safe for concurrent use.
type Allocator struct {
	last atomic.Int64
}

// New returns an allocator seeded with the current time in microseconds, which
// keeps ids below 2^53 for JSON clients.
func New() *Allocator {
	return NewSeeded(time.Now().UnixMicro())
}

// NewMilli returns an allocator seeded with the current time in milliseconds,
// the scale of saved palette ids.
func NewMilli() *Allocator {
	return NewSeeded(time.Now().UnixMilli())
}

// NewSeeded returns an allocator whose first id is seed+1.
func NewSeeded(seed int64) *Allocator {
	a := &Allocator{}
	a.last.Store(seed)
	return a
}

// Next increments the counter and returns the new value.
func (a *Allocator) Next() int64 {
	return a.last.Add(1)
}
