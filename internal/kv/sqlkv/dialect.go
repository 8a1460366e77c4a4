package sqlkv

import (
	"strconv"
	"strings"
)

// Dialect captures the differences between supported SQL engines.
type Dialect struct {
	Name       string
	DriverName string
	blobType   string
	dollar     bool
}

var (
	// SQLite uses modernc.org/sqlite (pure Go).
	SQLite = Dialect{Name: "sqlite", DriverName: "sqlite", blobType: "BLOB"}
	// Postgres uses github.com/lib/pq.
	Postgres = Dialect{Name: "postgres", DriverName: "postgres", blobType: "BYTEA", dollar: true}
)

// rebind rewrites ? placeholders to $n for dialects that need it.
func (d Dialect) rebind(q string) string {
	if !d.dollar {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d Dialect) schema() string {
	return `CREATE TABLE IF NOT EXISTS kv_entries (
	k TEXT PRIMARY KEY,
	v ` + d.blobType + ` NOT NULL,
	version BIGINT NOT NULL
)`
}

type queries struct {
	get    string
	insert string
	update string
	upsert string
}

func (d Dialect) queries() queries {
	return queries{
		get:    d.rebind(`SELECT v, version FROM kv_entries WHERE k = ?`),
		insert: d.rebind(`INSERT INTO kv_entries (k, v, version) VALUES (?, ?, 1) ON CONFLICT (k) DO NOTHING`),
		update: d.rebind(`UPDATE kv_entries SET v = ?, version = version + 1 WHERE k = ? AND version = ?`),
		upsert: d.rebind(`INSERT INTO kv_entries (k, v, version) VALUES (?, ?, 1) ON CONFLICT (k) DO UPDATE SET v = excluded.v, version = kv_entries.version + 1 RETURNING version`),
	}
}
