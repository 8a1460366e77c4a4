package pebblekv

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/doublemarked/unload-test/internal/kv"
	"github.com/doublemarked/unload-test/internal/kv/kvtest"
	pebblestore "github.com/doublemarked/unload-test/internal/storage/pebble"
)

func openTestStore(t *testing.T, dir string) *Store {
	t.Helper()
	s, err := Open(pebblestore.Options{DataDir: dir, Fsync: pebblestore.FsyncModeAlways})
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	return s
}

func TestStoreContract(t *testing.T) {
	kvtest.Run(t, func(t *testing.T) kv.Store { return openTestStore(t, t.TempDir()) })
}

func TestValueDurableAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	s := openTestStore(t, dir)
	vs, ok, err := s.CompareAndSwap(ctx, kv.Key{"events"}, "", []byte(`["a"]`))
	if err != nil || !ok {
		t.Fatalf("cas: ok=%v err=%v", ok, err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2 := openTestStore(t, dir)
	defer s2.Close()
	e, err := s2.Get(ctx, kv.Key{"events"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(e.Value) != `["a"]` || e.Versionstamp != vs {
		t.Fatalf("unexpected entry after reopen: %+v", e)
	}
	// Versionstamps issued after reopen must still supersede the stored one.
	vs2, err := s2.Set(ctx, kv.Key{"events"}, []byte(`[]`))
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if vs2 <= vs {
		t.Fatalf("stamp regressed across reopen: %s then %s", vs, vs2)
	}
}

func TestCorruptRecordIsUnavailable(t *testing.T) {
	records := map[string][]byte{
		"garbage":      []byte("not a record"),
		"length wraps": append(binary.AppendUvarint(nil, math.MaxUint64-2), make([]byte, 6)...),
	}
	for name, raw := range records {
		t.Run(name, func(t *testing.T) {
			db, err := pebblestore.Open(pebblestore.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways})
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer db.Close()
			ctx := context.Background()
			if err := db.Put(ctx, storageKey(kv.Key{"events"}), raw); err != nil {
				t.Fatalf("seed: %v", err)
			}
			s := New(db)
			if _, err := s.Get(ctx, kv.Key{"events"}); !errors.Is(err, kv.ErrUnavailable) {
				t.Fatalf("expected unavailable, got %v", err)
			}
		})
	}
}
