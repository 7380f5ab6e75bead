package models

import (
	"sync"
	"testing"
)

func TestResourceStartsLoading(t *testing.T) {
	r := NewResource()
	status, _ := r.Status()
	if status != StatusLoading {
		t.Fatalf("expected loading, got %s", status)
	}
	select {
	case <-r.Done():
		t.Fatal("done channel closed before terminal state")
	default:
	}
}

func TestResourceTerminalOnce(t *testing.T) {
	r := NewResource()
	r.Fail("network down")
	r.Succeed()

	status, message := r.Status()
	if status != StatusError {
		t.Fatalf("terminal state revisited: %s", status)
	}
	if message != "network down" {
		t.Fatalf("expected original message, got %q", message)
	}
	select {
	case <-r.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestResourceConcurrentResolve(t *testing.T) {
	r := NewResource()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				r.Succeed()
			} else {
				r.Fail("late")
			}
		}(i)
	}
	wg.Wait()

	status, _ := r.Status()
	if status == StatusLoading {
		t.Fatal("expected a terminal state")
	}
	<-r.Done()
}
