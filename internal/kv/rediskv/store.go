// Package rediskv implements kv.Store on Redis. Each key is a hash with a
// version counter field "v" and a data field "d"; compare-and-swap runs as a
// single Lua script so the check and the write are atomic on the server.
package rediskv

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/doublemarked/unload-test/internal/kv"
	"github.com/redis/go-redis/v9"
)

// casScript writes ARGV[2] when the stored version equals ARGV[1] ("" means
// the key must not exist). ARGV[3] = "set" skips the check. Returns the new
// version, or 0 when the check failed.
var casScript = redis.NewScript(`
local cur = redis.call("HGET", KEYS[1], "v")
if ARGV[3] ~= "set" then
    if ARGV[1] == "" then
        if cur then
            return 0
        end
    elseif (not cur) or cur ~= ARGV[1] then
        return 0
    end
end
local nv = redis.call("HINCRBY", KEYS[1], "v", 1)
redis.call("HSET", KEYS[1], "d", ARGV[2])
return nv
`)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key. Defaults to "unload:kv:".
	Prefix string
}

// Store is a Redis-backed kv.Store.
type Store struct {
	client *redis.Client
	prefix string
}

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, kv.Unavailable("ping", err)
	}
	return NewWithClient(client, opts.Prefix), nil
}

// NewWithClient wraps an existing client. Close closes the client.
func NewWithClient(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "unload:kv:"
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) redisKey(key kv.Key) string { return s.prefix + key.String() }

func (s *Store) Get(ctx context.Context, key kv.Key) (kv.Entry, error) {
	vals, err := s.client.HMGet(ctx, s.redisKey(key), "v", "d").Result()
	if err != nil {
		return kv.Entry{}, kv.Unavailable("get", err)
	}
	if len(vals) != 2 || vals[0] == nil {
		return kv.Entry{Key: key}, nil
	}
	v, err := strconv.ParseInt(fmt.Sprint(vals[0]), 10, 64)
	if err != nil {
		return kv.Entry{}, kv.Unavailable("get", fmt.Errorf("bad version field: %w", err))
	}
	var data []byte
	if d, ok := vals[1].(string); ok {
		data = []byte(d)
	}
	return kv.Entry{Key: key, Value: data, Versionstamp: kv.CounterStamp(v)}, nil
}

func (s *Store) CompareAndSwap(ctx context.Context, key kv.Key, expect kv.Versionstamp, value []byte) (kv.Versionstamp, bool, error) {
	want := ""
	if !expect.IsZero() {
		n, err := kv.ParseCounterStamp(expect)
		if err != nil {
			// Not a stamp this backend issued, so it cannot match.
			return "", false, nil
		}
		want = strconv.FormatInt(n, 10)
	}
	nv, err := s.run(ctx, key, want, value, "cas")
	if err != nil {
		return "", false, kv.Unavailable("cas", err)
	}
	if nv == 0 {
		return "", false, nil
	}
	return kv.CounterStamp(nv), true, nil
}

func (s *Store) Set(ctx context.Context, key kv.Key, value []byte) (kv.Versionstamp, error) {
	nv, err := s.run(ctx, key, "", value, "set")
	if err != nil {
		return "", kv.Unavailable("set", err)
	}
	return kv.CounterStamp(nv), nil
}

func (s *Store) run(ctx context.Context, key kv.Key, want string, value []byte, mode string) (int64, error) {
	res, err := casScript.Run(ctx, s.client, []string{s.redisKey(key)}, want, value, mode).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return res, nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	if err := s.client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return err
	}
	return nil
}
