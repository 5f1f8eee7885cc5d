package diffs_test

import (
	"testing"

	"github.com/veldtkamp/inferno/diffs"
)

func TestSeedBeforeFirstPush(t *testing.T) {
	d := diffs.New(3, 1.0)
	if d.Max() != 1.0 {
		t.Errorf("Max = %g; want seed 1.0", d.Max())
	}
	if d.Size() != 0 {
		t.Errorf("Size = %d; want 0", d.Size())
	}
}

func TestWindowEviction(t *testing.T) {
	d := diffs.New(2, 1.0)
	d.Push(0.5)
	if d.Max() != 0.5 {
		t.Errorf("Max = %g; want 0.5", d.Max())
	}
	d.Push(0.1)
	d.Push(0.2) // evicts 0.5
	if d.Max() != 0.2 {
		t.Errorf("Max = %g; want 0.2 after eviction", d.Max())
	}
	d.Push(0.05) // evicts 0.1
	d.Push(0.01) // evicts 0.2
	if d.Max() != 0.05 {
		t.Errorf("Max = %g; want 0.05", d.Max())
	}
	if d.Size() != 2 {
		t.Errorf("Size = %d; want capacity 2", d.Size())
	}
}

func TestDegenerateCapacity(t *testing.T) {
	d := diffs.New(0, 2.0)
	d.Push(0.7)
	if d.Max() != 0.7 {
		t.Errorf("Max = %g; want 0.7 with clamped capacity", d.Max())
	}
	d.Push(0.3)
	if d.Max() != 0.3 {
		t.Errorf("Max = %g; want 0.3", d.Max())
	}
}
