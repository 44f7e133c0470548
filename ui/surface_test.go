package ui

import "testing"

func TestMemory_Sweep(t *testing.T) {
	m := NewMemory()
	id := NewID("a")
	m.SetScrollOffset(id, Point{Y: 3})
	m.rects[id] = Rect{W: 1, H: 1}

	m.sweep()
	if _, ok := m.Rect(id); !ok {
		t.Fatal("rect dropped in the frame the node was built")
	}
	m.sweep()
	if _, ok := m.Rect(id); ok {
		t.Error("rect kept for a node missing from the last frame")
	}

	for range StaleFrames - 2 {
		m.sweep()
	}
	if got := m.ScrollOffset(id); got.Y != 3 {
		t.Fatalf("scroll offset = %v before going stale", got)
	}
	m.sweep()
	if got := m.ScrollOffset(id); got.Y != 0 {
		t.Errorf("scroll offset = %v after %d frames, want dropped", got, StaleFrames)
	}
}

func TestMemory_TouchKeepsScroll(t *testing.T) {
	m := NewMemory()
	id := NewID("a")
	m.SetValue(id, "state")
	for range 2 * StaleFrames {
		m.ScrollBy(id, 0, 1)
		m.sweep()
	}
	if got := m.ScrollOffset(id); got.Y != 2*StaleFrames {
		t.Errorf("scroll offset = %v, want %d", got, 2*StaleFrames)
	}
	if v, ok := m.Value(id); !ok || v != "state" {
		t.Errorf("value = %v, %v", v, ok)
	}
}
