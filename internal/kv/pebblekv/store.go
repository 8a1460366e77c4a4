// Package pebblekv implements kv.Store on a local Pebble database.
//
// Each key is stored under "kv/{key}" as a CRC-framed record carrying the
// versionstamp and the value. Pebble has no conditional write, so the
// read-compare-write of CompareAndSwap runs under a per-key lock held by the
// store; only one process may open the data directory.
package pebblekv

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"github.com/doublemarked/unload-test/internal/kv"
	pebblestore "github.com/doublemarked/unload-test/internal/storage/pebble"
)

var (
	keyPrefix = []byte("kv/")

	errCorrupt = errors.New("pebblekv: corrupt record")
)

const lockStripes = 16

// Store is a Pebble-backed kv.Store.
type Store struct {
	db     *pebblestore.DB
	ownsDB bool
	gen    *kv.Generator

	stripes [lockStripes]sync.Mutex

	// mu guards closed; operations hold it shared so Close waits for them.
	mu     sync.RWMutex
	closed bool
}

// New wraps an already open database. Close does not close db.
func New(db *pebblestore.DB) *Store {
	return &Store{db: db, gen: kv.NewGenerator()}
}

// Open opens a Pebble database and returns a Store that owns it.
func Open(opts pebblestore.Options) (*Store, error) {
	db, err := pebblestore.Open(opts)
	if err != nil {
		return nil, kv.Unavailable("open", err)
	}
	s := New(db)
	s.ownsDB = true
	return s, nil
}

func storageKey(key kv.Key) []byte {
	enc := key.Bytes()
	k := make([]byte, 0, len(keyPrefix)+len(enc))
	k = append(k, keyPrefix...)
	return append(k, enc...)
}

func (s *Store) stripe(k []byte) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write(k)
	return &s.stripes[h.Sum32()%lockStripes]
}

func (s *Store) acquire() error {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return kv.ErrClosed
	}
	return nil
}

func (s *Store) release() { s.mu.RUnlock() }

func (s *Store) Get(ctx context.Context, key kv.Key) (kv.Entry, error) {
	if err := ctx.Err(); err != nil {
		return kv.Entry{}, kv.Unavailable("get", err)
	}
	if err := s.acquire(); err != nil {
		return kv.Entry{}, err
	}
	defer s.release()
	e, err := s.read(key, storageKey(key))
	if err != nil {
		return kv.Entry{}, kv.Unavailable("get", err)
	}
	return e, nil
}

func (s *Store) read(key kv.Key, sk []byte) (kv.Entry, error) {
	raw, found, err := s.db.Get(sk)
	if err != nil {
		return kv.Entry{}, err
	}
	if !found {
		return kv.Entry{Key: key}, nil
	}
	dec, ok := decodeRecord(raw)
	if !ok {
		return kv.Entry{}, errCorrupt
	}
	return kv.Entry{Key: key, Value: dec.Value, Versionstamp: kv.Versionstamp(dec.Stamp)}, nil
}

func (s *Store) CompareAndSwap(ctx context.Context, key kv.Key, expect kv.Versionstamp, value []byte) (kv.Versionstamp, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, kv.Unavailable("cas", err)
	}
	if err := s.acquire(); err != nil {
		return "", false, err
	}
	defer s.release()

	sk := storageKey(key)
	lock := s.stripe(sk)
	lock.Lock()
	defer lock.Unlock()

	cur, err := s.read(key, sk)
	if err != nil {
		return "", false, kv.Unavailable("cas", err)
	}
	if cur.Versionstamp != expect {
		return "", false, nil
	}
	vs, err := s.write(ctx, sk, value)
	if err != nil {
		return "", false, kv.Unavailable("cas", err)
	}
	return vs, true, nil
}

func (s *Store) Set(ctx context.Context, key kv.Key, value []byte) (kv.Versionstamp, error) {
	if err := ctx.Err(); err != nil {
		return "", kv.Unavailable("set", err)
	}
	if err := s.acquire(); err != nil {
		return "", err
	}
	defer s.release()

	sk := storageKey(key)
	lock := s.stripe(sk)
	lock.Lock()
	defer lock.Unlock()

	vs, err := s.write(ctx, sk, value)
	if err != nil {
		return "", kv.Unavailable("set", err)
	}
	return vs, nil
}

func (s *Store) write(ctx context.Context, sk, value []byte) (kv.Versionstamp, error) {
	vs := s.gen.Next()
	if err := s.db.Put(ctx, sk, encodeRecord([]byte(vs), value)); err != nil {
		return "", err
	}
	return vs, nil
}

// Close waits for in-flight operations, then closes the database if the
// store opened it.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}
