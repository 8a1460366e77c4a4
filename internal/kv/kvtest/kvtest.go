// Package kvtest holds a behavioural suite every kv.Store backend must pass.
package kvtest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/doublemarked/unload-test/internal/kv"
)

// Opener returns a fresh, empty store. The suite closes it.
type Opener func(t *testing.T) kv.Store

// Run exercises the kv.Store contract against the stores produced by open.
func Run(t *testing.T, open Opener) {
	t.Run("AbsentKey", func(t *testing.T) { testAbsentKey(t, open(t)) })
	t.Run("InsertIfAbsent", func(t *testing.T) { testInsertIfAbsent(t, open(t)) })
	t.Run("CompareAndSwap", func(t *testing.T) { testCompareAndSwap(t, open(t)) })
	t.Run("SetUnconditional", func(t *testing.T) { testSet(t, open(t)) })
	t.Run("KeysIsolated", func(t *testing.T) { testKeysIsolated(t, open(t)) })
	t.Run("ConcurrentSwapsSingleWinner", func(t *testing.T) { testSingleWinner(t, open(t)) })
	t.Run("Closed", func(t *testing.T) { testClosed(t, open(t)) })
}

var key = kv.Key{"events"}

func testAbsentKey(t *testing.T, s kv.Store) {
	defer s.Close()
	e, err := s.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e.Exists() || e.Value != nil {
		t.Fatalf("absent key should read empty, got %+v", e)
	}
}

func testInsertIfAbsent(t *testing.T, s kv.Store) {
	defer s.Close()
	ctx := context.Background()
	vs, ok, err := s.CompareAndSwap(ctx, key, "", []byte("a"))
	if err != nil || !ok {
		t.Fatalf("first insert: ok=%v err=%v", ok, err)
	}
	if vs.IsZero() {
		t.Fatalf("insert must return a versionstamp")
	}
	// A second must-not-exist write loses.
	if _, ok, err := s.CompareAndSwap(ctx, key, "", []byte("b")); err != nil || ok {
		t.Fatalf("second insert: ok=%v err=%v", ok, err)
	}
	e, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(e.Value) != "a" || e.Versionstamp != vs {
		t.Fatalf("unexpected entry %+v (want a@%s)", e, vs)
	}
}

func testCompareAndSwap(t *testing.T, s kv.Store) {
	defer s.Close()
	ctx := context.Background()
	v1, ok, err := s.CompareAndSwap(ctx, key, "", []byte("1"))
	if err != nil || !ok {
		t.Fatalf("seed: ok=%v err=%v", ok, err)
	}
	v2, ok, err := s.CompareAndSwap(ctx, key, v1, []byte("2"))
	if err != nil || !ok {
		t.Fatalf("swap: ok=%v err=%v", ok, err)
	}
	if v2 == v1 {
		t.Fatalf("versionstamp must change on write")
	}
	if v2 < v1 {
		t.Fatalf("versionstamps must increase: %s then %s", v1, v2)
	}
	// Stale expectation loses and leaves the value alone.
	if _, ok, err := s.CompareAndSwap(ctx, key, v1, []byte("3")); err != nil || ok {
		t.Fatalf("stale swap: ok=%v err=%v", ok, err)
	}
	e, _ := s.Get(ctx, key)
	if string(e.Value) != "2" || e.Versionstamp != v2 {
		t.Fatalf("unexpected entry %+v", e)
	}
}

func testSet(t *testing.T, s kv.Store) {
	defer s.Close()
	ctx := context.Background()
	v1, err := s.Set(ctx, key, []byte("x"))
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	v2, err := s.Set(ctx, key, []byte("[]"))
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if v1 == v2 {
		t.Fatalf("set must change versionstamp")
	}
	// A swap based on the first set is now stale.
	if _, ok, _ := s.CompareAndSwap(ctx, key, v1, []byte("y")); ok {
		t.Fatalf("swap on overwritten version should fail")
	}
	e, _ := s.Get(ctx, key)
	if string(e.Value) != "[]" {
		t.Fatalf("got %q", e.Value)
	}
}

func testKeysIsolated(t *testing.T, s kv.Store) {
	defer s.Close()
	ctx := context.Background()
	if _, err := s.Set(ctx, kv.Key{"a"}, []byte("1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	e, err := s.Get(ctx, kv.Key{"b"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e.Exists() {
		t.Fatalf("key b should be absent")
	}
}

func testSingleWinner(t *testing.T, s kv.Store) {
	defer s.Close()
	ctx := context.Background()
	base, err := s.Set(ctx, key, []byte("base"))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	const writers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, ok, err := s.CompareAndSwap(ctx, key, base, []byte{byte('a' + i)})
			if err != nil {
				t.Errorf("swap %d: %v", i, err)
				return
			}
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("exactly one writer should win against the same versionstamp, got %d", wins)
	}
}

func testClosed(t *testing.T, s kv.Store) {
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	_, err := s.Get(context.Background(), key)
	if !errors.Is(err, kv.ErrUnavailable) {
		t.Fatalf("get after close: want ErrUnavailable, got %v", err)
	}
}
