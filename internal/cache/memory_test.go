package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestLRU_BasicOperations(t *testing.T) {
	cache := NewLRU(10)

	cache.Put("KJV:Gen.1.1", "In the beginning")

	text, missing, ok := cache.Get("KJV:Gen.1.1")
	if !ok || missing {
		t.Fatalf("Get() = ok %v missing %v, want hit", ok, missing)
	}
	if text != "In the beginning" {
		t.Errorf("Get() = %q, want %q", text, "In the beginning")
	}

	if !cache.Contains("KJV:Gen.1.1") {
		t.Error("Contains returned false for existing key")
	}

	cache.Delete("KJV:Gen.1.1")
	if cache.Contains("KJV:Gen.1.1") {
		t.Error("Key still exists after delete")
	}
	if cache.Len() != 0 {
		t.Errorf("Len() = %d after delete, want 0", cache.Len())
	}
}

func TestLRU_Missing(t *testing.T) {
	cache := NewLRU(10)
	cache.PutMissing("KJV:Rom.16.27")

	_, missing, ok := cache.Get("KJV:Rom.16.27")
	if !ok || !missing {
		t.Errorf("Get() = ok %v missing %v, want cached as missing", ok, missing)
	}
}

func TestLRU_Eviction(t *testing.T) {
	cache := NewLRU(5)

	for i := 0; i < 5; i++ {
		cache.Put(fmt.Sprintf("key-%d", i), "v")
	}

	// Access key-0 and key-1 to make them recently used
	cache.Get("key-0")
	cache.Get("key-1")

	cache.Put("key-new", "v")

	if !cache.Contains("key-0") || !cache.Contains("key-1") {
		t.Error("recently used keys were evicted")
	}
	if cache.Contains("key-2") {
		t.Error("least recently used key-2 was not evicted")
	}
	if cache.Len() != 5 {
		t.Errorf("Len() = %d, want 5", cache.Len())
	}
	if got := cache.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestLRU_UpdateExisting(t *testing.T) {
	cache := NewLRU(2)
	cache.Put("a", "old")
	cache.Put("b", "b")
	cache.Put("a", "new")

	// a is now the most recent, so b goes first
	cache.Put("c", "c")

	if text, _, _ := cache.Get("a"); text != "new" {
		t.Errorf("Get(a) = %q, want new", text)
	}
	if cache.Contains("b") {
		t.Error("b should have been evicted")
	}
}

func TestLRU_DefaultCapacity(t *testing.T) {
	if got := NewLRU(0).Stats().Capacity; got != DefaultCapacity {
		t.Errorf("Capacity = %d, want %d", got, DefaultCapacity)
	}
}

func TestLRU_Stats(t *testing.T) {
	cache := NewLRU(10)
	cache.Put("a", "a")

	cache.Get("a")
	cache.Get("a")
	cache.Get("b")

	stats := cache.Stats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("Hits %d Misses %d, want 2 1", stats.Hits, stats.Misses)
	}
	if stats.ItemCount != 1 {
		t.Errorf("ItemCount = %d, want 1", stats.ItemCount)
	}
	if want := 2.0 / 3.0; stats.HitRate != want {
		t.Errorf("HitRate = %v, want %v", stats.HitRate, want)
	}
}

func TestLRU_Clear(t *testing.T) {
	cache := NewLRU(10)
	for i := 0; i < 5; i++ {
		cache.Put(fmt.Sprintf("key-%d", i), "v")
	}

	cache.Clear()

	if cache.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", cache.Len())
	}
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	cache := NewLRU(50)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("key-%d", (g*31+i)%80)
				if i%3 == 0 {
					cache.Put(key, key)
				} else {
					cache.Get(key)
				}
			}
		}(g)
	}
	wg.Wait()

	if cache.Len() > 50 {
		t.Errorf("Len() = %d exceeds capacity", cache.Len())
	}
}

func BenchmarkLRU_Get(b *testing.B) {
	cache := NewLRU(100)
	for i := 0; i < 100; i++ {
		cache.Put(fmt.Sprintf("key-%d", i), "v")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Get(fmt.Sprintf("key-%d", i%100))
	}
}
