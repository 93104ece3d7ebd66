/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tour

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerSupersedes(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var calls atomic.Int32
	var last atomic.Int32
	for i := int32(1); i <= 3; i++ {
		i := i
		d.Trigger(func() {
			calls.Add(1)
			last.Store(i)
		})
	}

	time.Sleep(150 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %v; want 1 (burst collapses to the final trigger)", got)
	}
	if got := last.Load(); got != 3 {
		t.Errorf("ran trigger %v; want 3", got)
	}
}

func TestDebouncerSequentialBursts(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	time.Sleep(100 * time.Millisecond)
	d.Trigger(func() { calls.Add(1) })
	time.Sleep(100 * time.Millisecond)

	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %v; want 2 (separated triggers both run)", got)
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("calls = %v; want 0 after Stop", got)
	}
}

func TestDebouncerDefaultDelay(t *testing.T) {
	if d := NewDebouncer(0); d.delay != DefaultDebounce {
		t.Errorf("delay = %v; want %v", d.delay, DefaultDebounce)
	}
	if d := NewDebouncer(-time.Second); d.delay != DefaultDebounce {
		t.Errorf("negative delay = %v; want %v", d.delay, DefaultDebounce)
	}
}
