package status

import (
	"strings"
	"sync"
	"testing"
)

func TestMetricMapCachesPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(KeyFrames)
	b := r.Ints.Get(KeyFrames)
	if a != b {
		t.Fatal("Get returned different pointers for the same key")
	}
	a.Store(7)
	if b.Load() != 7 {
		t.Errorf("Expected 7, got %d", b.Load())
	}
}

func TestConcurrentRegistration(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Ints.Get(KeyThoughtsSpawned).Add(1)
		}()
	}
	wg.Wait()
	if got := r.Ints.Get(KeyThoughtsSpawned).Load(); got != 16 {
		t.Errorf("Expected 16, got %d", got)
	}
	if r.Ints.Count() != 1 {
		t.Errorf("Expected a single registered key, got %d", r.Ints.Count())
	}
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	if s.Load() != "" {
		t.Error("zero value should be empty")
	}
	s.Store(strings.Repeat("x", MaxStringLen+10))
	if len(s.Load()) != MaxStringLen {
		t.Errorf("Expected length %d, got %d", MaxStringLen, len(s.Load()))
	}
}

func TestAtomicStringKeepsRunes(t *testing.T) {
	var s AtomicString
	// 23 ASCII bytes then a 3-byte rune straddling the limit
	s.Store(strings.Repeat("a", MaxStringLen-1) + "…")
	if got := s.Load(); got != strings.Repeat("a", MaxStringLen-1) {
		t.Errorf("Expected cut before the rune, got %q", got)
	}
}

func TestTotalCount(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(KeyFrames)
	r.Bools.Get(KeyInputBusy)
	r.Strings.Get(KeySceneCurrent)
	r.Ints.Get(KeyFrames)
	if got := r.TotalCount(); got != 3 {
		t.Errorf("Expected 3 metrics, got %d", got)
	}
}

func TestFormatSorted(t *testing.T) {
	r := NewRegistry()
	r.Strings.Get(KeySceneCurrent).Store("active")
	r.Bools.Get(KeyInputBusy).Store(true)
	r.Ints.Get(KeyThoughtsLive).Store(3)
	r.Ints.Get(KeyFrames).Store(120)

	got := r.Format()
	want := "scene.current=active input.busy=true engine.frames=120 thoughts.live=3"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}
