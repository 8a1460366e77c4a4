// Package memory is an in-process kv.Store. Writes are serialized by a mutex
// owned by the store, which plays the part of the remote store's own per-key
// atomicity. Nothing survives process exit.
package memory

import (
	"context"
	"sync"

	"github.com/doublemarked/unload-test/internal/kv"
)

type entry struct {
	value []byte
	vs    kv.Versionstamp
}

// Store is a map-backed kv.Store.
type Store struct {
	mu     sync.RWMutex
	data   map[string]entry
	gen    *kv.Generator
	closed bool
}

// New returns an empty store.
func New() *Store {
	return &Store{data: make(map[string]entry), gen: kv.NewGenerator()}
}

func (s *Store) Get(ctx context.Context, key kv.Key) (kv.Entry, error) {
	if err := ctx.Err(); err != nil {
		return kv.Entry{}, kv.Unavailable("get", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return kv.Entry{}, kv.ErrClosed
	}
	e, ok := s.data[key.String()]
	if !ok {
		return kv.Entry{Key: key}, nil
	}
	return kv.Entry{Key: key, Value: append([]byte(nil), e.value...), Versionstamp: e.vs}, nil
}

func (s *Store) CompareAndSwap(ctx context.Context, key kv.Key, expect kv.Versionstamp, value []byte) (kv.Versionstamp, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, kv.Unavailable("cas", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", false, kv.ErrClosed
	}
	cur := s.data[key.String()]
	if cur.vs != expect {
		return "", false, nil
	}
	vs := s.gen.Next()
	s.data[key.String()] = entry{value: append([]byte(nil), value...), vs: vs}
	return vs, true, nil
}

func (s *Store) Set(ctx context.Context, key kv.Key, value []byte) (kv.Versionstamp, error) {
	if err := ctx.Err(); err != nil {
		return "", kv.Unavailable("set", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", kv.ErrClosed
	}
	vs := s.gen.Next()
	s.data[key.String()] = entry{value: append([]byte(nil), value...), vs: vs}
	return vs, nil
}

// Close marks the store closed; later calls fail with kv.ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
