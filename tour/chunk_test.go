/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tour

import (
	"reflect"
	"testing"
)

type span struct{ start, end int }

func TestChunkedListFirstChunk(t *testing.T) {
	var spans []span
	list := NewChunkedList(500, 0, func(start, end int) {
		spans = append(spans, span{start, end})
	})

	if list.Rendered() != DefaultChunkSize {
		t.Errorf("Rendered = %v; want %v", list.Rendered(), DefaultChunkSize)
	}
	if list.Remaining() != 300 {
		t.Errorf("Remaining = %v; want 300", list.Remaining())
	}
	if !reflect.DeepEqual(spans, []span{{0, 200}}) {
		t.Errorf("render spans = %v; want [{0 200}]", spans)
	}
	if list.Trigger() == nil {
		t.Error("expected a live trigger while rows remain")
	}
}

func TestChunkedListExtendToEnd(t *testing.T) {
	var spans []span
	list := NewChunkedList(500, 200, func(start, end int) {
		spans = append(spans, span{start, end})
	})

	if got := list.Extend(); got != 400 {
		t.Errorf("Extend = %v; want 400", got)
	}
	if got := list.Extend(); got != 500 {
		t.Errorf("Extend = %v; want 500", got)
	}

	want := []span{{0, 200}, {200, 400}, {400, 500}}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("render spans = %v; want %v", spans, want)
	}

	if list.Trigger() != nil {
		t.Error("trigger should be released once the list is exhausted")
	}

	// extending an exhausted list renders nothing further
	if got := list.Extend(); got != 500 {
		t.Errorf("Extend after exhaustion = %v; want 500", got)
	}
	if len(spans) != 3 {
		t.Errorf("render ran %v times; want 3", len(spans))
	}
}

func TestChunkedListShortTotal(t *testing.T) {
	var spans []span
	list := NewChunkedList(50, 200, func(start, end int) {
		spans = append(spans, span{start, end})
	})

	if list.Rendered() != 50 {
		t.Errorf("Rendered = %v; want 50", list.Rendered())
	}
	if list.Trigger() != nil {
		t.Error("no trigger should exist when the first chunk covers everything")
	}
	if !reflect.DeepEqual(spans, []span{{0, 50}}) {
		t.Errorf("render spans = %v; want [{0 50}]", spans)
	}
}

func TestTriggerSingleLive(t *testing.T) {
	list := NewChunkedList(600, 200, nil)

	tr := list.Trigger()
	if tr == nil {
		t.Fatal("expected a live trigger")
	}

	list.Extend()
	if got := list.Trigger(); got != tr {
		t.Error("extending should reuse the live trigger, not stack a new one")
	}

	tr.ScrollNear()
	if list.Rendered() != 600 {
		t.Errorf("Rendered = %v; want 600", list.Rendered())
	}
	if list.Trigger() != nil {
		t.Error("trigger should be released at the end of the list")
	}

	// the released handle is inert
	tr.ScrollNear()
	if list.Rendered() != 600 {
		t.Errorf("Rendered after disposed ScrollNear = %v; want 600",
			list.Rendered())
	}
}

func TestTriggerReentrancy(t *testing.T) {
	var tr *LoadTrigger
	var calls int
	list := NewChunkedList(600, 200, func(start, end int) {
		calls++
		if tr != nil {
			// a scroll event arriving while this append is still
			// rendering must be dropped, not queued
			tr.ScrollNear()
		}
	})

	tr = list.Trigger()
	tr.ScrollNear()

	if list.Rendered() != 400 {
		t.Errorf("Rendered = %v; want 400 (single append)", list.Rendered())
	}
	if calls != 2 {
		t.Errorf("render ran %v times; want 2", calls)
	}
}

func TestChunkedListResize(t *testing.T) {
	list := NewChunkedList(500, 200, nil)
	list.Extend()
	if list.Rendered() != 400 {
		t.Fatalf("Rendered = %v; want 400", list.Rendered())
	}

	old := list.Trigger()

	// shrink below the rendered count: cursor clamps
	list.Resize(250)
	if list.Rendered() != 250 || list.Total() != 250 {
		t.Errorf("after shrink Rendered, Total = %v, %v; want 250, 250",
			list.Rendered(), list.Total())
	}
	if list.Trigger() != nil {
		t.Error("no trigger should remain when the clamped list is exhausted")
	}

	// the pre-resize handle must not act on the new sequence
	old.ScrollNear()
	if list.Rendered() != 250 {
		t.Errorf("stale trigger extended the list to %v", list.Rendered())
	}

	// grow again: a fresh trigger is armed
	list.Resize(900)
	fresh := list.Trigger()
	if fresh == nil {
		t.Fatal("expected a fresh trigger after growing")
	}
	if fresh == old {
		t.Error("resize must issue a new trigger, not revive the old one")
	}
	fresh.ScrollNear()
	if list.Rendered() != 450 {
		t.Errorf("Rendered = %v; want 450", list.Rendered())
	}
}

func TestChunkedListDispose(t *testing.T) {
	list := NewChunkedList(500, 200, nil)
	tr := list.Trigger()

	list.Dispose()
	if list.Trigger() != nil {
		t.Error("Dispose should release the live trigger")
	}
	tr.ScrollNear()
	if list.Rendered() != 200 {
		t.Errorf("disposed trigger extended the list to %v", list.Rendered())
	}

	// disposing the trigger handle directly also detaches it
	list2 := NewChunkedList(500, 200, nil)
	tr2 := list2.Trigger()
	tr2.Dispose()
	if list2.Trigger() != nil {
		t.Error("trigger Dispose should detach it from the list")
	}
	tr2.ScrollNear()
	if list2.Rendered() != 200 {
		t.Errorf("disposed trigger extended the list to %v", list2.Rendered())
	}
}
