package kv

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Key is a tuple of string parts, e.g. Key{"events"}.
type Key []string

// String encodes the key as a slash separated path with each part escaped,
// so distinct tuples never collide.
func (k Key) String() string {
	parts := make([]string, len(k))
	for i, p := range k {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// Bytes returns the encoded key.
func (k Key) Bytes() []byte { return []byte(k.String()) }

// Versionstamp is an opaque revision token. It changes on every write of a
// key. The zero value means "the key does not exist".
type Versionstamp string

// IsZero reports whether v denotes an absent key.
func (v Versionstamp) IsZero() bool { return v == "" }

// Entry is the result of a point read.
type Entry struct {
	Key          Key
	Value        []byte
	Versionstamp Versionstamp
}

// Exists reports whether the key was present when read.
func (e Entry) Exists() bool { return !e.Versionstamp.IsZero() }

// Store is a single-key versioned store.
type Store interface {
	// Get returns the current value and versionstamp. An absent key is not an
	// error; the returned Entry has a zero Versionstamp and nil Value.
	Get(ctx context.Context, key Key) (Entry, error)
	// CompareAndSwap writes value only if the key's current versionstamp equals
	// expect (zero expect: the key must not exist). ok is false on mismatch.
	CompareAndSwap(ctx context.Context, key Key, expect Versionstamp, value []byte) (vs Versionstamp, ok bool, err error)
	// Set writes value unconditionally.
	Set(ctx context.Context, key Key, value []byte) (Versionstamp, error)
	Close() error
}

// ErrUnavailable marks failures to reach the store or internal store errors.
var ErrUnavailable = errors.New("kv: store unavailable")

// ErrClosed is returned by operations on a closed store. It also matches
// ErrUnavailable.
var ErrClosed = fmt.Errorf("%w: closed", ErrUnavailable)

// Unavailable wraps err so that it matches both ErrUnavailable and err.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("kv %s: %w: %w", op, ErrUnavailable, err)
}
