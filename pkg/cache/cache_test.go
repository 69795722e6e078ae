package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestResultKey(t *testing.T) {
	base := ResultKey("mongolian_tent", 3, 0, "backtracking", "", 0, 0)

	// Deterministic
	if base != ResultKey("mongolian_tent", 3, 0, "backtracking", "", 0, 0) {
		t.Error("ResultKey should be deterministic")
	}

	// Every parameter participates in the key
	variants := []string{
		ResultKey("circulant", 3, 0, "backtracking", "", 0, 0),
		ResultKey("mongolian_tent", 4, 0, "backtracking", "", 0, 0),
		ResultKey("mongolian_tent", 3, 2, "backtracking", "", 0, 0),
		ResultKey("mongolian_tent", 3, 0, "heuristic", "", 0, 0),
		ResultKey("mongolian_tent", 3, 0, "heuristic", "fast", 0, 0),
		ResultKey("mongolian_tent", 3, 0, "heuristic", "", 50, 0),
		ResultKey("mongolian_tent", 3, 0, "heuristic", "", 0, 3),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d should differ from the base key", i)
		}
	}

	if base[:7] != "result:" {
		t.Errorf("ResultKey should be prefixed with \"result:\", got %s", base)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Get should miss before Set")
	}

	// Round trip
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("Get should hit after Set")
	}
	if string(data) != "value" {
		t.Errorf("Get = %q, want %q", data, "value")
	}

	// Delete
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("Get should miss after Delete")
	}

	// Deleting a missing key is not an error
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete of missing key should not error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	// Already-expired entry reports a miss
	if err := c.Set(ctx, "old", []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	_, hit, err := c.Get(ctx, "old")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("expired entry should be a miss")
	}

	// Zero ttl never expires
	if err := c.Set(ctx, "forever", []byte("keep"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "forever")
	if !hit {
		t.Error("zero-ttl entry should not expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// Corrupt the entry on disk
	fc := c.(*FileCache)
	if err := os.WriteFile(fc.path("key"), []byte("not json"), 0644); err != nil {
		t.Fatalf("corrupt write error: %v", err)
	}

	// Corrupt entries are removed and reported as misses
	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("corrupt entry should be a miss")
	}
	if _, err := os.Stat(fc.path("key")); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed from disk")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	for _, key := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, key, []byte(key), 0); err != nil {
			t.Fatalf("Set error: %v", err)
		}
	}

	if err := c.(*FileCache).Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}

	for _, key := range []string{"a", "b", "c"} {
		if _, hit, _ := c.Get(ctx, key); hit {
			t.Errorf("key %q should be gone after Clear", key)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir should be empty after Clear, found %d entries", len(entries))
	}

	// Path layout: two-char shard directory plus hash file name
	p := c.(*FileCache).path("key")
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		t.Fatalf("Rel error: %v", err)
	}
	if len(filepath.Dir(rel)) != 2 {
		t.Errorf("cache path %q should shard on a 2-char prefix", rel)
	}
}
