package eventlog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/doublemarked/unload-test/internal/kv"
	"github.com/doublemarked/unload-test/internal/kv/memory"
	"github.com/doublemarked/unload-test/internal/kv/pebblekv"
	pebblestore "github.com/doublemarked/unload-test/internal/storage/pebble"
)

// raceStore runs beforeCAS ahead of every CompareAndSwap, which lets a test
// commit a competing write between an appender's read and its write.
type raceStore struct {
	kv.Store
	mu        sync.Mutex
	calls     int
	beforeCAS func(call int)
}

func (s *raceStore) CompareAndSwap(ctx context.Context, key kv.Key, expect kv.Versionstamp, value []byte) (kv.Versionstamp, bool, error) {
	s.mu.Lock()
	s.calls++
	call := s.calls
	hook := s.beforeCAS
	s.mu.Unlock()
	if hook != nil {
		hook(call)
	}
	return s.Store.CompareAndSwap(ctx, key, expect, value)
}

// failStore fails the selected operations with a transport error.
type failStore struct {
	kv.Store
	failGet bool
	failCAS bool
	failSet bool
	gets    atomic.Int32
	swaps   atomic.Int32
}

var errNetwork = errors.New("connection reset by peer")

func (s *failStore) Get(ctx context.Context, key kv.Key) (kv.Entry, error) {
	s.gets.Add(1)
	if s.failGet {
		return kv.Entry{}, kv.Unavailable("get", errNetwork)
	}
	return s.Store.Get(ctx, key)
}

func (s *failStore) CompareAndSwap(ctx context.Context, key kv.Key, expect kv.Versionstamp, value []byte) (kv.Versionstamp, bool, error) {
	s.swaps.Add(1)
	if s.failCAS {
		return "", false, kv.Unavailable("cas", errNetwork)
	}
	return s.Store.CompareAndSwap(ctx, key, expect, value)
}

func (s *failStore) Set(ctx context.Context, key kv.Key, value []byte) (kv.Versionstamp, error) {
	if s.failSet {
		return "", kv.Unavailable("set", errNetwork)
	}
	return s.Store.Set(ctx, key, value)
}

type recordingObserver struct {
	mu        sync.Mutex
	committed []int
	conflicts []int
	exhausted int
	evicted   int
}

func (o *recordingObserver) AppendCommitted(n int) {
	o.mu.Lock()
	o.committed = append(o.committed, n)
	o.mu.Unlock()
}

func (o *recordingObserver) AppendConflict(n int) {
	o.mu.Lock()
	o.conflicts = append(o.conflicts, n)
	o.mu.Unlock()
}

func (o *recordingObserver) AppendExhausted() {
	o.mu.Lock()
	o.exhausted++
	o.mu.Unlock()
}

func (o *recordingObserver) Evicted(n int) {
	o.mu.Lock()
	o.evicted += n
	o.mu.Unlock()
}

// tickingClock returns a clock that advances one second per call, and the
// number of calls made so far.
func tickingClock(start time.Time) (func() time.Time, *atomic.Int32) {
	var calls atomic.Int32
	return func() time.Time {
		n := calls.Add(1)
		return start.Add(time.Duration(n-1) * time.Second)
	}, &calls
}

func ev(instance string) Event {
	return Event{Source: "test", Type: "beacon", Instance: instance}
}

func instances(events []Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Instance
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestReadAbsentIsEmpty(t *testing.T) {
	l := New(memory.New(), Options{})
	events, err := l.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if events == nil || len(events) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", events)
	}
}

func TestAppendStampsAndPrepends(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 3, 1, 12, 0, 0, 123_000_000, time.FixedZone("X", 3600))
	clock, _ := tickingClock(start)
	l := New(memory.New(), Options{Now: clock})

	in := ev("aaaaa")
	in.Timestamp = "client supplied"
	got, err := l.Append(ctx, in)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(got) != 1 || got[0].Timestamp != "2025-03-01T11:00:00.123Z" {
		t.Fatalf("unexpected first append result: %#v", got)
	}
	got, err = l.Append(ctx, ev("bbbbb"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if want := []string{"bbbbb", "aaaaa"}; !equalStrings(instances(got), want) {
		t.Fatalf("order: got %v want %v", instances(got), want)
	}
	read, err := l.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !equalStrings(instances(read), instances(got)) {
		t.Fatalf("read %v != append result %v", instances(read), instances(got))
	}
}

func TestAppendEvictsOldestAtCapacity(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	l := New(memory.New(), Options{Observer: obs})

	var last []Event
	for i := 0; i < Capacity+10; i++ {
		var err error
		last, err = l.Append(ctx, ev(fmt.Sprintf("i%03d", i)))
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if len(last) != Capacity {
		t.Fatalf("len=%d want %d", len(last), Capacity)
	}
	if last[0].Instance != fmt.Sprintf("i%03d", Capacity+9) {
		t.Fatalf("head=%s", last[0].Instance)
	}
	if last[Capacity-1].Instance != "i010" {
		t.Fatalf("tail=%s want i010", last[Capacity-1].Instance)
	}
	if obs.evicted != 10 {
		t.Fatalf("evicted=%d want 10", obs.evicted)
	}
}

func TestAppendRetriesAfterConflict(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()
	rival := New(inner, Options{})
	store := &raceStore{Store: inner}
	store.beforeCAS = func(call int) {
		if call == 1 {
			if _, err := rival.Append(ctx, ev("rival")); err != nil {
				t.Errorf("rival append: %v", err)
			}
		}
	}
	obs := &recordingObserver{}
	l := New(store, Options{Observer: obs})

	got, err := l.Append(ctx, ev("mine"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	// The retry must rebuild from a fresh read that includes the rival.
	if want := []string{"mine", "rival"}; !equalStrings(instances(got), want) {
		t.Fatalf("got %v want %v", instances(got), want)
	}
	if store.calls != 2 {
		t.Fatalf("cas calls=%d want 2", store.calls)
	}
	if len(obs.conflicts) != 1 || len(obs.committed) != 1 || obs.committed[0] != 2 {
		t.Fatalf("observer: %+v", obs)
	}
}

func TestAppendExhaustedAfterTwoConflicts(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()
	rival := New(inner, Options{})
	store := &raceStore{Store: inner}
	store.beforeCAS = func(call int) {
		if _, err := rival.Append(ctx, ev(fmt.Sprintf("rival%d", call))); err != nil {
			t.Errorf("rival append: %v", err)
		}
	}
	obs := &recordingObserver{}
	l := New(store, Options{Observer: obs})

	_, err := l.Append(ctx, ev("mine"))
	if !errors.Is(err, ErrConflictExhausted) {
		t.Fatalf("expected ErrConflictExhausted, got %v", err)
	}
	if store.calls != maxAttempts {
		t.Fatalf("cas calls=%d want %d", store.calls, maxAttempts)
	}
	events, err := New(inner, Options{}).Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if want := []string{"rival2", "rival1"}; !equalStrings(instances(events), want) {
		t.Fatalf("got %v want %v", instances(events), want)
	}
	if obs.exhausted != 1 || len(obs.committed) != 0 {
		t.Fatalf("observer: %+v", obs)
	}
}

func TestTimestampStableAcrossRetry(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()
	rival := New(inner, Options{})
	store := &raceStore{Store: inner}
	store.beforeCAS = func(call int) {
		if call == 1 {
			_, _ = rival.Append(ctx, ev("rival"))
		}
	}
	start := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	clock, calls := tickingClock(start)
	l := New(store, Options{Now: clock})

	got, err := l.Append(ctx, ev("mine"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("clock read %d times, want once", calls.Load())
	}
	if got[0].Timestamp != "2025-01-02T03:04:05.000Z" {
		t.Fatalf("timestamp changed across retry: %s", got[0].Timestamp)
	}
}

func TestConcurrentPairBothCommit(t *testing.T) {
	// With two writers each can lose at most once, so both must land.
	ctx := context.Background()
	store := memory.New()
	for round := 0; round < 20; round++ {
		l := New(store, Options{})
		if _, err := l.Clear(ctx); err != nil {
			t.Fatalf("clear: %v", err)
		}
		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = l.Append(ctx, ev(fmt.Sprintf("w%d", i)))
			}(i)
		}
		wg.Wait()
		for i, err := range errs {
			if err != nil {
				t.Fatalf("round %d writer %d: %v", round, i, err)
			}
		}
		events, err := l.Read(ctx)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("round %d: got %v", round, instances(events))
		}
	}
}

func TestConcurrentWritersNeverLoseCommitted(t *testing.T) {
	ctx := context.Background()
	l := New(memory.New(), Options{})
	const writers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       = map[string]bool{}
		dropped  int
		failures []error
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("w%d", i)
			_, err := l.Append(ctx, ev(id))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok[id] = true
			case errors.Is(err, ErrConflictExhausted):
				dropped++
			default:
				failures = append(failures, err)
			}
		}(i)
	}
	wg.Wait()
	if len(failures) > 0 {
		t.Fatalf("unexpected errors: %v", failures)
	}
	events, err := l.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(events) != len(ok) || len(ok)+dropped != writers {
		t.Fatalf("stored=%d committed=%d dropped=%d", len(events), len(ok), dropped)
	}
	for _, e := range events {
		if !ok[e.Instance] {
			t.Fatalf("stored event %s was reported as dropped", e.Instance)
		}
	}
}

func TestClearIdempotent(t *testing.T) {
	ctx := context.Background()
	l := New(memory.New(), Options{})
	for i := 0; i < 3; i++ {
		if _, err := l.Append(ctx, ev("x")); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	for i := 0; i < 2; i++ {
		got, err := l.Clear(ctx)
		if err != nil {
			t.Fatalf("clear: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("clear result: %#v", got)
		}
		events, err := l.Read(ctx)
		if err != nil || len(events) != 0 {
			t.Fatalf("after clear: %v %v", events, err)
		}
	}
}

func TestStoreUnavailableNoRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("read", func(t *testing.T) {
		fs := &failStore{Store: memory.New(), failGet: true}
		l := New(fs, Options{})
		_, err := l.Append(ctx, ev("x"))
		if !errors.Is(err, ErrStoreUnavailable) || !errors.Is(err, kv.ErrUnavailable) {
			t.Fatalf("expected unavailable, got %v", err)
		}
		if fs.gets.Load() != 1 || fs.swaps.Load() != 0 {
			t.Fatalf("gets=%d swaps=%d", fs.gets.Load(), fs.swaps.Load())
		}
		if _, err := l.Read(ctx); !errors.Is(err, ErrStoreUnavailable) {
			t.Fatalf("read: %v", err)
		}
	})

	t.Run("write", func(t *testing.T) {
		fs := &failStore{Store: memory.New(), failCAS: true}
		l := New(fs, Options{})
		_, err := l.Append(ctx, ev("x"))
		if !errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrConflictExhausted) {
			t.Fatalf("expected unavailable, got %v", err)
		}
		if fs.swaps.Load() != 1 {
			t.Fatalf("swaps=%d want 1", fs.swaps.Load())
		}
	})

	t.Run("clear", func(t *testing.T) {
		fs := &failStore{Store: memory.New(), failSet: true}
		if _, err := New(fs, Options{}).Clear(ctx); !errors.Is(err, ErrStoreUnavailable) {
			t.Fatalf("clear: %v", err)
		}
	})
}

func TestCorruptValueIsUnavailable(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	if _, err := store.Set(ctx, DefaultKey, []byte("{not json")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := New(store, Options{}).Read(ctx); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestScenarioCapOverflowThenClear(t *testing.T) {
	ctx := context.Background()
	l := New(memory.New(), Options{})

	// The log starts with 50 events, e0 newest.
	for i := Capacity - 1; i >= 0; i-- {
		if _, err := l.Append(ctx, ev(fmt.Sprintf("e%d", i))); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	got, err := l.Append(ctx, Event{Source: "manual", Type: "beacon", Instance: "new01"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(got) != Capacity || got[0].Instance != "new01" || got[1].Instance != "e0" || got[Capacity-1].Instance != "e48" {
		t.Fatalf("unexpected log after overflow: head=%v tail=%v", got[:2], got[Capacity-1])
	}
	if _, err := l.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	events, err := l.Read(ctx)
	if err != nil || len(events) != 0 {
		t.Fatalf("after clear: %v %v", events, err)
	}
}

func TestPebbleBackedLogSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	open := func() *pebblekv.Store {
		s, err := pebblekv.Open(pebblestore.Options{DataDir: dir, Fsync: pebblestore.FsyncModeAlways})
		if err != nil {
			t.Fatalf("open pebble: %v", err)
		}
		return s
	}
	s := open()
	l := New(s, Options{})
	for _, id := range []string{"a", "b", "c"} {
		if _, err := l.Append(ctx, ev(id)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s = open()
	t.Cleanup(func() { _ = s.Close() })
	events, err := New(s, Options{}).Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if want := []string{"c", "b", "a"}; !equalStrings(instances(events), want) {
		t.Fatalf("got %v want %v", instances(events), want)
	}
}
