package lru

import (
	"slices"
	"testing"
)

func TestOrderTouch(t *testing.T) {
	o := New[int]()
	o.Touch(1)
	o.Touch(2)
	o.Touch(3)

	if got := o.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	if got := o.Keys(); !slices.Equal(got, []int{3, 2, 1}) {
		t.Errorf("Keys() = %v, want [3 2 1]", got)
	}

	o.Touch(1)
	if got := o.Keys(); !slices.Equal(got, []int{1, 3, 2}) {
		t.Errorf("Keys() after Touch(1) = %v, want [1 3 2]", got)
	}
	if got, _ := o.Oldest(); got != 2 {
		t.Errorf("Oldest() = %d, want 2", got)
	}
}

func TestOrderTouchHeadIsNoop(t *testing.T) {
	o := New[int]()
	o.Touch(1)
	o.Touch(2)
	o.Touch(2)
	if got := o.Keys(); !slices.Equal(got, []int{2, 1}) {
		t.Errorf("Keys() = %v, want [2 1]", got)
	}
}

func TestOrderRemove(t *testing.T) {
	tests := []struct {
		name   string
		remove int
		want   []int
	}{
		{"head", 3, []int{2, 1}},
		{"middle", 2, []int{3, 1}},
		{"tail", 1, []int{3, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := New[int]()
			o.Touch(1)
			o.Touch(2)
			o.Touch(3)
			if !o.Remove(tt.remove) {
				t.Fatalf("Remove(%d) = false", tt.remove)
			}
			if got := o.Keys(); !slices.Equal(got, tt.want) {
				t.Errorf("Keys() = %v, want %v", got, tt.want)
			}
			if o.Contains(tt.remove) {
				t.Errorf("Contains(%d) = true after Remove", tt.remove)
			}
		})
	}
}

func TestOrderRemoveMissing(t *testing.T) {
	o := New[int]()
	if o.Remove(7) {
		t.Error("Remove on empty order = true, want false")
	}
}

func TestOrderRemoveOldest(t *testing.T) {
	o := New[string]()
	if _, ok := o.RemoveOldest(); ok {
		t.Fatal("RemoveOldest() on empty order returned ok")
	}

	o.Touch("a")
	o.Touch("b")
	key, ok := o.RemoveOldest()
	if !ok || key != "a" {
		t.Errorf("RemoveOldest() = %q, %v, want a, true", key, ok)
	}
	key, ok = o.RemoveOldest()
	if !ok || key != "b" {
		t.Errorf("RemoveOldest() = %q, %v, want b, true", key, ok)
	}
	if o.Len() != 0 {
		t.Errorf("Len() = %d, want 0", o.Len())
	}
}

func TestOrderClear(t *testing.T) {
	o := New[int]()
	o.Touch(1)
	o.Touch(2)
	o.Clear()
	if o.Len() != 0 {
		t.Errorf("Len() = %d, want 0", o.Len())
	}
	if _, ok := o.Oldest(); ok {
		t.Error("Oldest() after Clear returned ok")
	}
	o.Touch(5)
	if got := o.Keys(); !slices.Equal(got, []int{5}) {
		t.Errorf("Keys() = %v, want [5]", got)
	}
}
