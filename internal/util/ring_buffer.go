// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package util

import "sync"

// RingBuffer is a fixed-size circular buffer with FIFO eviction.
//
// # Description
//
// RingBuffer holds the most recent items pushed into it, silently dropping
// the oldest item when a Push would exceed capacity. metadag uses it to
// keep the rolling window of generator outputs that the health monitor
// computes its statistics over: the window grows by one per generation
// step and never shrinks once full.
//
// # Thread Safety
//
// RingBuffer is safe for concurrent use. All operations are protected by
// a mutex. The generator itself is single-threaded, but stats readers may
// snapshot the buffer from another goroutine (e.g. a metrics endpoint).
//
// # Limitations
//
//   - Fixed capacity; memory for the full window is allocated up front
//   - Dropped items are unrecoverable and produce no signal
type RingBuffer[T any] struct {
	buf  []T
	head int
	size int
	mu   sync.Mutex
}

// NewRingBuffer creates an empty ring buffer holding up to capacity items.
//
// Panics if capacity <= 0: a zero-capacity history window is a programming
// error, not a runtime condition.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity <= 0 {
		panic("ring buffer capacity must be positive")
	}
	return &RingBuffer[T]{buf: make([]T, capacity)}
}

// Push appends an item, evicting the oldest item if the buffer is full.
// Returns true if an item was evicted.
func (r *RingBuffer[T]) Push(item T) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := false
	if r.size == len(r.buf) {
		r.buf[r.head] = item
		r.head = (r.head + 1) % len(r.buf)
		evicted = true
	} else {
		r.buf[(r.head+r.size)%len(r.buf)] = item
		r.size++
	}
	return evicted
}

// Pop removes and returns the oldest item.
// Returns the zero value and false if the buffer is empty.
func (r *RingBuffer[T]) Pop() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.size == 0 {
		var zero T
		return zero, false
	}
	item := r.buf[r.head]
	var zero T
	r.buf[r.head] = zero
	r.head = (r.head + 1) % len(r.buf)
	r.size--
	return item, true
}

// ToSlice returns a copy of the buffered items, oldest first, without
// modifying the buffer. Returns nil if the buffer is empty.
func (r *RingBuffer[T]) ToSlice() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.size == 0 {
		return nil
	}
	out := make([]T, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}

// Size returns the current number of buffered items.
func (r *RingBuffer[T]) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Capacity returns the maximum number of items the buffer can hold.
func (r *RingBuffer[T]) Capacity() int {
	return len(r.buf) // immutable after construction, no lock needed
}

// IsFull reports whether the next Push will evict the oldest item.
func (r *RingBuffer[T]) IsFull() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size == len(r.buf)
}

// IsEmpty reports whether the buffer holds no items.
func (r *RingBuffer[T]) IsEmpty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size == 0
}
