package sqlkv

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doublemarked/unload-test/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db, Postgres), mock
}

func TestRebindPostgres(t *testing.T) {
	q := Postgres.queries()
	assert.Equal(t, "UPDATE kv_entries SET v = $1, version = version + 1 WHERE k = $2 AND version = $3", q.update)
	assert.Equal(t, "SELECT v, version FROM kv_entries WHERE k = ?", SQLite.queries().get)
}

func TestPostgresGet(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT v, version FROM kv_entries WHERE k = $1")).
		WithArgs("events").
		WillReturnRows(sqlmock.NewRows([]string{"v", "version"}).AddRow([]byte(`[]`), 3))

	e, err := s.Get(ctx, kv.Key{"events"})
	require.NoError(t, err)
	assert.Equal(t, kv.CounterStamp(3), e.Versionstamp)
	assert.Equal(t, "[]", string(e.Value))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT v, version FROM kv_entries WHERE k = $1")).
		WithArgs("events").
		WillReturnError(sql.ErrNoRows)

	e, err = s.Get(ctx, kv.Key{"events"})
	require.NoError(t, err)
	assert.False(t, e.Exists())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCompareAndSwap(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_entries (k, v, version) VALUES ($1, $2, 1) ON CONFLICT (k) DO NOTHING")).
		WithArgs("events", []byte(`["a"]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	vs, ok, err := s.CompareAndSwap(ctx, kv.Key{"events"}, "", []byte(`["a"]`))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, kv.CounterStamp(1), vs)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE kv_entries SET v = $1, version = version + 1 WHERE k = $2 AND version = $3")).
		WithArgs([]byte(`["b","a"]`), "events", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	_, ok, err = s.CompareAndSwap(ctx, kv.Key{"events"}, kv.CounterStamp(1), []byte(`["b","a"]`))
	require.NoError(t, err)
	assert.False(t, ok, "zero rows affected is a conflict")

	mock.ExpectExec(regexp.QuoteMeta("UPDATE kv_entries")).
		WithArgs([]byte(`["c"]`), "events", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	vs, ok, err = s.CompareAndSwap(ctx, kv.Key{"events"}, kv.CounterStamp(1), []byte(`["c"]`))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, kv.CounterStamp(2), vs)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSetReturnsVersion(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO kv_entries (k, v, version) VALUES ($1, $2, 1) ON CONFLICT (k) DO UPDATE")).
		WithArgs("events", []byte(`[]`)).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(7))

	vs, err := s.Set(context.Background(), kv.Key{"events"}, []byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, kv.CounterStamp(7), vs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDriverErrorIsUnavailable(t *testing.T) {
	s, mock := newMockStore(t)
	boom := errors.New("connection reset by peer")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT v, version")).WillReturnError(boom)
	_, err := s.Get(context.Background(), kv.Key{"events"})
	assert.ErrorIs(t, err, kv.ErrUnavailable)
	assert.ErrorIs(t, err, boom)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_entries")).WillReturnError(boom)
	_, _, err = s.CompareAndSwap(context.Background(), kv.Key{"events"}, "", []byte(`[]`))
	assert.ErrorIs(t, err, kv.ErrUnavailable)
}
