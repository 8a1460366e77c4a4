package rediskv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/doublemarked/unload-test/internal/kv"
	"github.com/doublemarked/unload-test/internal/kv/kvtest"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := New(context.Background(), Options{Addr: mr.Addr()})
	require.NoError(t, err)
	return s, mr
}

func TestStoreContract(t *testing.T) {
	kvtest.Run(t, func(t *testing.T) kv.Store {
		s, _ := newTestStore(t)
		return s
	})
}

func TestHashLayout(t *testing.T) {
	s, mr := newTestStore(t)
	defer s.Close()
	ctx := context.Background()

	vs, ok, err := s.CompareAndSwap(ctx, kv.Key{"events"}, "", []byte(`[]`))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, kv.CounterStamp(1), vs)

	assert.Equal(t, "1", mr.HGet("unload:kv:events", "v"))
	assert.Equal(t, "[]", mr.HGet("unload:kv:events", "d"))
}

func TestForeignStampNeverMatches(t *testing.T) {
	s, _ := newTestStore(t)
	defer s.Close()
	ctx := context.Background()

	_, err := s.Set(ctx, kv.Key{"events"}, []byte(`[]`))
	require.NoError(t, err)
	_, ok, err := s.CompareAndSwap(ctx, kv.Key{"events"}, "0000018c1f2e3d4c0000000000000001x", []byte(`["x"]`))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnreachableServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err := New(context.Background(), Options{Addr: addr})
	assert.ErrorIs(t, err, kv.ErrUnavailable)
}

func TestServerGoesAway(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	s := NewWithClient(client, "")
	defer s.Close()
	mr.Close()
	_, err := s.Get(context.Background(), kv.Key{"events"})
	assert.ErrorIs(t, err, kv.ErrUnavailable)
}
