package main

import (
	"sync"
	"testing"
	"time"
)

func TestSizeTracker(t *testing.T) {
	s := newSizeTracker(80, 24)
	if w, h, err := s.getSize(); w != 80 || h != 24 || err != nil {
		t.Fatalf("getSize = (%d, %d, %v)", w, h, err)
	}
	s.update(120, 40)
	if w, h, _ := s.getSize(); w != 120 || h != 40 {
		t.Fatalf("getSize after update = (%d, %d)", w, h)
	}
}

func TestWaitTimeout(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	start := time.Now()
	waitTimeout(&wg, 20*time.Millisecond)
	if time.Since(start) < 20*time.Millisecond {
		t.Fatal("waitTimeout returned before the deadline")
	}

	wg.Done()
	start = time.Now()
	waitTimeout(&wg, time.Second)
	if time.Since(start) > 500*time.Millisecond {
		t.Fatal("waitTimeout did not return once the group finished")
	}
}
