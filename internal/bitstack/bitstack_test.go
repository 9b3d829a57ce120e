package bitstack

import "testing"

func TestPushPopDepth(t *testing.T) {
	s := New(4)
	if !s.Empty() {
		t.Fatal("new stack should be empty")
	}
	if err := s.Push(true); err != nil { // object
		t.Fatal(err)
	}
	if err := s.Push(false); err != nil { // array
		t.Fatal(err)
	}
	if got := s.Depth(); got != 2 {
		t.Errorf("Depth() = %d, want 2", got)
	}
	top, err := s.Peek()
	if err != nil {
		t.Fatal(err)
	}
	if top != false {
		t.Errorf("Peek() = %v, want false (array)", top)
	}
	if err := s.Pop(false); err != nil {
		t.Fatalf("Pop(false): %v", err)
	}
	if err := s.Pop(true); err != nil {
		t.Fatalf("Pop(true): %v", err)
	}
	if !s.Empty() {
		t.Error("stack should be empty after popping everything pushed")
	}
}

func TestDepthExceeded(t *testing.T) {
	s := New(2)
	if err := s.Push(true); err != nil {
		t.Fatal(err)
	}
	if err := s.Push(true); err != nil {
		t.Fatal(err)
	}
	if err := s.Push(true); err == nil {
		t.Fatal("expected ErrDepthExceeded")
	} else if _, ok := err.(*ErrDepthExceeded); !ok {
		t.Errorf("got %T, want *ErrDepthExceeded", err)
	}
}

func TestMismatchedContainer(t *testing.T) {
	s := New(4)
	if err := s.Push(true); err != nil { // object
		t.Fatal(err)
	}
	if err := s.Pop(false); err == nil { // pop expecting array
		t.Fatal("expected ErrMismatchedContainer")
	} else if _, ok := err.(*ErrMismatchedContainer); !ok {
		t.Errorf("got %T, want *ErrMismatchedContainer", err)
	}
}

func TestPopEmpty(t *testing.T) {
	s := New(4)
	if err := s.Pop(true); err == nil {
		t.Fatal("expected error popping empty stack")
	}
}

func TestLargeCapacitySpanningWords(t *testing.T) {
	const n = 200 // spans more than 3 64-bit words
	s := New(n)
	for i := 0; i < n; i++ {
		isObject := i%3 == 0
		if err := s.Push(isObject); err != nil {
			t.Fatalf("Push #%d: %v", i, err)
		}
	}
	if err := s.Push(true); err == nil {
		t.Fatal("expected depth exceeded at capacity")
	}
	for i := n - 1; i >= 0; i-- {
		want := i%3 == 0
		if err := s.Pop(want); err != nil {
			t.Fatalf("Pop #%d: %v", i, err)
		}
	}
	if !s.Empty() {
		t.Error("expected empty after popping all")
	}
}
