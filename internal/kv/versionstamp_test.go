package kv

import (
	"testing"
	"time"
)

func TestOrderingMonotonic(t *testing.T) {
	g := NewGenerator()
	NowMs = func() int64 { return 1000 }
	defer func() { NowMs = func() int64 { return time.Now().UnixMilli() } }()

	a := g.Next()
	b := g.Next()
	if a >= b {
		t.Fatalf("expected %s < %s", a, b)
	}
	if len(a) != 32 {
		t.Fatalf("want 32 hex chars, got %d", len(a))
	}
}

func TestClockRegressionGuard(t *testing.T) {
	g := NewGenerator()
	seq := int64(1000)
	NowMs = func() int64 { return seq }
	defer func() { NowMs = func() int64 { return time.Now().UnixMilli() } }()

	a := g.Next()
	seq = 900 // clock went backwards
	b := g.Next()
	if a >= b {
		t.Fatalf("expected b>a despite clock regression")
	}
}

func TestCounterStampRoundTrip(t *testing.T) {
	if !CounterStamp(0).IsZero() {
		t.Fatalf("version 0 should be the absent stamp")
	}
	vs := CounterStamp(42)
	n, err := ParseCounterStamp(vs)
	if err != nil || n != 42 {
		t.Fatalf("parse %q: n=%d err=%v", vs, n, err)
	}
	if CounterStamp(9) >= CounterStamp(10) {
		t.Fatalf("counter stamps must sort numerically")
	}
	if _, err := ParseCounterStamp("garbage"); err == nil {
		t.Fatalf("expected malformed stamp error")
	}
}

func TestKeyEncoding(t *testing.T) {
	if got := (Key{"events"}).String(); got != "events" {
		t.Fatalf("got %q", got)
	}
	a := Key{"a/b"}.String()
	b := Key{"a", "b"}.String()
	if a == b {
		t.Fatalf("tuples with embedded separators must not collide: %q", a)
	}
}
