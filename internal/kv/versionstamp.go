package kv

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"
)

// Generator produces strictly increasing versionstamps per process. A stamp
// is 16 bytes, [8 bytes ms timestamp][8 bytes sequence], hex encoded so that
// string order matches issue order.
type Generator struct {
	mu       sync.Mutex
	lastMs   int64
	sequence uint64
}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator { return &Generator{} }

// NowMs returns current time in milliseconds since Unix epoch.
var NowMs = func() int64 { return time.Now().UnixMilli() }

// Next returns a new versionstamp. If the clock goes backwards it keeps the
// last observed millisecond and bumps the sequence. If the sequence would
// overflow within one millisecond it waits for the next one.
func (g *Generator) Next() Versionstamp {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := NowMs()
	if ms < g.lastMs {
		ms = g.lastMs
	}

	if ms == g.lastMs {
		if g.sequence == math.MaxUint64 {
			for {
				ms = NowMs()
				if ms > g.lastMs {
					break
				}
				time.Sleep(time.Millisecond / 8)
			}
			g.sequence = 0
		} else {
			g.sequence++
		}
	} else {
		g.sequence = 0
	}

	g.lastMs = ms
	return makeStamp(ms, g.sequence)
}

func makeStamp(ms int64, seq uint64) Versionstamp {
	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], uint64(ms))
	binary.BigEndian.PutUint64(b[8:16], seq)
	return Versionstamp(hex.EncodeToString(b[:]))
}

// CounterStamp formats a per-key integer revision as a fixed-width
// versionstamp. Backends that keep a version column use it so stamps from
// every backend sort the same way.
func CounterStamp(version int64) Versionstamp {
	if version <= 0 {
		return ""
	}
	return Versionstamp(fmt.Sprintf("%020d", version))
}

// ParseCounterStamp is the inverse of CounterStamp. A zero stamp yields 0.
func ParseCounterStamp(v Versionstamp) (int64, error) {
	if v.IsZero() {
		return 0, nil
	}
	n, err := strconv.ParseInt(string(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("kv: malformed versionstamp %q: %w", string(v), err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("kv: malformed versionstamp %q", string(v))
	}
	return n, nil
}
