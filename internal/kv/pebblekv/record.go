package pebblekv

import (
	"encoding/binary"
	"hash/crc32"
)

// Value encoding: varint stampLen | stamp | value | crc32c(stamp|value)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

func encodeRecord(stamp, value []byte) []byte {
	out := make([]byte, 0, 10+len(stamp)+len(value)+4)
	var tmp [10]byte
	n := binary.PutUvarint(tmp[:], uint64(len(stamp)))
	out = append(out, tmp[:n]...)
	out = append(out, stamp...)
	out = append(out, value...)

	crc := crc32.Update(0, castagnoli, stamp)
	crc = crc32.Update(crc, castagnoli, value)
	var crcb [4]byte
	binary.BigEndian.PutUint32(crcb[:], crc)
	return append(out, crcb[:]...)
}

type decoded struct {
	Stamp []byte
	Value []byte
}

func decodeRecord(b []byte) (decoded, bool) {
	if len(b) < 1+4 {
		return decoded{}, false
	}
	slen, n := binary.Uvarint(b)
	if n <= 0 {
		return decoded{}, false
	}
	// Compared in uint64 so a huge corrupt length cannot wrap past the check.
	if slen > uint64(len(b)-n-4) {
		return decoded{}, false
	}
	end := n + int(slen)
	stamp := b[n:end]
	value := b[end : len(b)-4]
	expect := binary.BigEndian.Uint32(b[len(b)-4:])
	crc := crc32.Update(0, castagnoli, stamp)
	crc = crc32.Update(crc, castagnoli, value)
	if crc != expect {
		return decoded{}, false
	}
	return decoded{Stamp: append([]byte(nil), stamp...), Value: append([]byte(nil), value...)}, true
}
