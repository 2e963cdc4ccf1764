package cache

import (
	"testing"
	"time"
)

func TestIncrCountsWithinWindow(t *testing.T) {
	store := NewCounterStore()

	for want := 1; want <= 3; want++ {
		count, _ := store.Incr("user:abc", time.Minute)
		if count != want {
			t.Fatalf("count = %d, want %d", count, want)
		}
	}
}

func TestIncrKeysAreIndependent(t *testing.T) {
	store := NewCounterStore()

	store.Incr("user:a", time.Minute)
	store.Incr("user:a", time.Minute)
	count, _ := store.Incr("user:b", time.Minute)
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestIncrStartsNewWindowAfterExpiry(t *testing.T) {
	store := NewCounterStore()

	store.Incr("ip:1.2.3.4", 10*time.Millisecond)
	store.Incr("ip:1.2.3.4", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	count, start := store.Incr("ip:1.2.3.4", 10*time.Millisecond)
	if count != 1 {
		t.Fatalf("count = %d, want 1 after window reset", count)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("window start not refreshed: %v", start)
	}
}

func TestReset(t *testing.T) {
	store := NewCounterStore()

	store.Incr("user:x", time.Minute)
	store.Reset("user:x")
	count, _ := store.Incr("user:x", time.Minute)
	if count != 1 {
		t.Fatalf("count = %d, want 1 after reset", count)
	}
}
