package storage

import (
	"testing"
)

func TestMemoryStorageSetGet(t *testing.T) {
	s := NewMemoryStorage[string, int]()

	s.Set("a", 1)
	s.Set("b", 2)
	s.Set("a", 3)

	if v, ok := s.Get("a"); !ok || v != 3 {
		t.Errorf("expected a=3, got %v (ok=%v)", v, ok)
	}
	if s.Count() != 2 {
		t.Errorf("expected 2 items, got %d", s.Count())
	}

	if !s.Delete("b") {
		t.Error("expected delete of existing key to report true")
	}
	if s.Delete("b") {
		t.Error("expected delete of missing key to report false")
	}
}

func TestMemoryStorageReplaceAll(t *testing.T) {
	s := NewMemoryStorage[string, int]()
	s.Set("old1", 1)
	s.Set("old2", 2)

	s.ReplaceAll(map[string]int{"new": 10})

	if s.Count() != 1 {
		t.Fatalf("expected the snapshot replaced wholesale, got %d items", s.Count())
	}
	if _, ok := s.Get("old1"); ok {
		t.Error("expected previous contents discarded")
	}
	if v, ok := s.Get("new"); !ok || v != 10 {
		t.Errorf("expected new=10, got %v (ok=%v)", v, ok)
	}

	s.ReplaceAll(nil)
	if s.Count() != 0 {
		t.Errorf("expected empty storage after replacing with nothing, got %d", s.Count())
	}
}

func TestMemoryStorageForEach(t *testing.T) {
	s := NewMemoryStorage[string, int]()
	s.Set("a", 1)
	s.Set("b", 2)
	s.Set("c", 3)

	sum := 0
	s.ForEach(func(key string, value int) bool {
		sum += value
		return true
	})
	if sum != 6 {
		t.Errorf("expected sum 6, got %d", sum)
	}

	visits := 0
	s.ForEach(func(key string, value int) bool {
		visits++
		return false
	})
	if visits != 1 {
		t.Errorf("expected early stop after 1 visit, got %d", visits)
	}
}
