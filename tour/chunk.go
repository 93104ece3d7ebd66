/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tour

import (
	"sync"
)

// DefaultChunkSize bounds how many rows materialize per render step.
// Filtered result sets reach the low thousands; rendering them whole
// in one pass costs too much per frame, so the list extends chunk by
// chunk as the reader nears the bottom.
const DefaultChunkSize = 200

// ChunkedList is a cursor over an immutable filtered/sorted sequence
// of row models. The first chunk materializes at construction; further
// chunks append through the LoadTrigger handle or Extend. The list
// owns only the cursor, never the row data: the render callback
// materializes rows [start, end) and must not call back into the list.
type ChunkedList struct {
	mu        sync.Mutex
	total     int
	rendered  int
	chunkSize int
	render    func(start, end int)
	trigger   *LoadTrigger
}

// NewChunkedList builds a list over total rows and renders the first
// chunk. chunkSize <= 0 selects DefaultChunkSize.
func NewChunkedList(total int, chunkSize int,
	render func(start, end int)) *ChunkedList {

	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if total < 0 {
		total = 0
	}

	c := &ChunkedList{
		total:     total,
		chunkSize: chunkSize,
		render:    render,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.extendLocked()

	return c
}

// Extend materializes up to one more chunk and returns the new
// rendered count. The live trigger is released once the list is
// exhausted.
func (c *ChunkedList) Extend() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.extendLocked()
}

func (c *ChunkedList) extendLocked() int {
	start := c.rendered
	end := start + c.chunkSize
	if end > c.total {
		end = c.total
	}
	if end > start && c.render != nil {
		c.render(start, end)
	}
	c.rendered = end

	c.syncTriggerLocked()

	return c.rendered
}

// syncTriggerLocked keeps exactly one trigger live while rows remain
// and none once exhausted. Triggers are never stacked.
func (c *ChunkedList) syncTriggerLocked() {
	if c.rendered >= c.total {
		c.releaseTriggerLocked()
		return
	}
	if c.trigger == nil {
		c.trigger = &LoadTrigger{list: c}
	}
}

func (c *ChunkedList) releaseTriggerLocked() {
	if c.trigger == nil {
		return
	}
	c.trigger.mu.Lock()
	c.trigger.disposed = true
	c.trigger.mu.Unlock()
	c.trigger = nil
}

// Rendered returns how many rows have materialized.
func (c *ChunkedList) Rendered() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rendered
}

// Remaining returns how many rows have not yet materialized.
func (c *ChunkedList) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total - c.rendered
}

// Total returns the current sequence length.
func (c *ChunkedList) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Trigger returns the live continuation handle, or nil once the list
// is exhausted.
func (c *ChunkedList) Trigger() *LoadTrigger {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trigger
}

// Resize clamps the cursor after the underlying sequence shrank or
// grew (filters changed). Appends never proceed beyond the new total.
// Any previously issued trigger is invalidated and a fresh one armed
// if rows remain.
func (c *ChunkedList) Resize(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n < 0 {
		n = 0
	}
	c.total = n
	if c.rendered > n {
		c.rendered = n
	}

	c.releaseTriggerLocked()
	c.syncTriggerLocked()
}

// Dispose releases the live trigger. Call when navigating away from
// the view that owns this list.
func (c *ChunkedList) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseTriggerLocked()
}

// LoadTrigger is the cancellable continuation handle for one
// ChunkedList. The view layer fires ScrollNear when the viewport
// approaches the bottom of the rendered rows.
type LoadTrigger struct {
	list *ChunkedList

	mu       sync.Mutex
	firing   bool
	disposed bool
}

// ScrollNear appends the next chunk. Re-entrant calls while an append
// is in flight are dropped, as are calls on a disposed trigger.
func (t *LoadTrigger) ScrollNear() {
	t.mu.Lock()
	if t.disposed || t.firing {
		t.mu.Unlock()
		return
	}
	t.firing = true
	t.mu.Unlock()

	t.list.Extend()

	t.mu.Lock()
	t.firing = false
	t.mu.Unlock()
}

// Dispose permanently deactivates the trigger; subsequent ScrollNear
// calls are no-ops.
func (t *LoadTrigger) Dispose() {
	c := t.list

	c.mu.Lock()
	defer c.mu.Unlock()

	t.mu.Lock()
	t.disposed = true
	t.mu.Unlock()

	if c.trigger == t {
		c.trigger = nil
	}
}
