package scene

import (
	"reflect"
	"testing"
)

func TestLedgerReleasesInReverse(t *testing.T) {
	var order []string
	var l Ledger
	for _, name := range []string{"surface", "bloom", "tree"} {
		name := name
		l.Track(name, DisposeFunc(func() { order = append(order, name) }))
	}
	l.Track("nil", nil)

	if got := l.Names(); !reflect.DeepEqual(got, []string{"surface", "bloom", "tree"}) {
		t.Fatalf("unexpected names %v", got)
	}
	if n := l.Release(); n != 3 {
		t.Errorf("expected 3 released, got %d", n)
	}
	if !reflect.DeepEqual(order, []string{"tree", "bloom", "surface"}) {
		t.Errorf("unexpected release order %v", order)
	}
	if l.Len() != 0 || l.Release() != 0 {
		t.Error("ledger should be empty after release")
	}
}

func TestEventBus(t *testing.T) {
	bus := NewEventBus()
	var got []string
	a := bus.AddListener(Click, func(Event) { got = append(got, "a") })
	bus.AddListener(Click, func(Event) { got = append(got, "b") })
	bus.AddListener(Resize, func(Event) { got = append(got, "resize") })

	bus.Emit(Event{Kind: Click})
	bus.RemoveListener(a)
	bus.Emit(Event{Kind: Click})

	if want := []string{"a", "b", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if bus.Len() != 2 {
		t.Errorf("expected 2 listeners, got %d", bus.Len())
	}
}

func TestManualSchedulerDefersRequests(t *testing.T) {
	s := NewManualScheduler()
	runs := 0
	var loop func(float32)
	loop = func(float32) {
		runs++
		s.RequestFrame(loop)
	}
	s.RequestFrame(loop)

	for i := 0; i < 5; i++ {
		if n := s.Step(float32(i)); n != 1 {
			t.Fatalf("step %d ran %d callbacks", i, n)
		}
	}
	if runs != 5 {
		t.Errorf("expected 5 runs, got %d", runs)
	}

	id := s.RequestFrame(func(float32) { t.Error("cancelled frame ran") })
	s.CancelFrame(id)
	s.Step(6)
	if s.Pending() != 1 {
		t.Errorf("expected only the loop pending, got %d", s.Pending())
	}
}
