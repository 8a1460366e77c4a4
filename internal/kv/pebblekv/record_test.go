package pebblekv

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func TestRecordRoundtrip(t *testing.T) {
	stamp := []byte("0000018c1f2e3d4c0000000000000001")
	value := []byte(`[{"source":"manual"}]`)
	dec, ok := decodeRecord(encodeRecord(stamp, value))
	if !ok {
		t.Fatalf("decode failed")
	}
	if string(dec.Stamp) != string(stamp) {
		t.Fatalf("stamp mismatch")
	}
	if string(dec.Value) != string(value) {
		t.Fatalf("value mismatch")
	}
}

func TestRecordEmptyValue(t *testing.T) {
	dec, ok := decodeRecord(encodeRecord([]byte("s"), nil))
	if !ok || len(dec.Value) != 0 || string(dec.Stamp) != "s" {
		t.Fatalf("unexpected decode %+v ok=%v", dec, ok)
	}
}

func TestRecordCRCFail(t *testing.T) {
	rec := encodeRecord([]byte("x"), []byte("y"))
	rec[len(rec)-1] ^= 0xFF // corrupt one byte
	if _, ok := decodeRecord(rec); ok {
		t.Fatalf("expected crc failure")
	}
}

func TestRecordRejectsCorruptLengths(t *testing.T) {
	huge := binary.AppendUvarint(nil, math.MaxUint64-2)
	tests := map[string][]byte{
		"length wraps int":     append(huge, make([]byte, 6)...),
		"length past end":      append(binary.AppendUvarint(nil, 100), make([]byte, 6)...),
		"varint overflows":     append(bytes.Repeat([]byte{0xFF}, 11), make([]byte, 4)...),
		"shorter than crc":     {0x01, 0x02},
		"length eats crc byte": append(binary.AppendUvarint(nil, 2), 'a', 'b', 0, 0, 0),
	}
	for name, rec := range tests {
		t.Run(name, func(t *testing.T) {
			if _, ok := decodeRecord(rec); ok {
				t.Fatalf("decoded corrupt record %x", rec)
			}
		})
	}
}
