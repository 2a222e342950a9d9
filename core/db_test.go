package core_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/saraswati/sdms/core"
)

func memDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec("CREATE TABLE notes (body TEXT NOT NULL)")
	require.NoError(t, err)
	return db
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	db := memDB(t)
	insert := func(tx core.DBExecutor) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO notes (body) VALUES (?)", "hello")
		return err
	}
	count := func() int {
		var n int
		require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM notes"))
		return n
	}

	require.NoError(t, core.WithTx(ctx, db, insert))
	assert.Equal(t, 1, count())

	errBoom := errors.New("boom")
	err := core.WithTx(ctx, db, func(tx core.DBExecutor) error {
		if err := insert(tx); err != nil {
			return err
		}
		return errBoom
	})
	assert.Equal(t, errBoom, err, "the error of fn is returned as is")
	assert.Equal(t, 1, count(), "rolled back")

	assert.Panics(t, func() {
		_ = core.WithTx(ctx, db, func(tx core.DBExecutor) error {
			_ = insert(tx)
			panic("lol")
		})
	})
	assert.Equal(t, 1, count(), "rolled back on panic")
}

func TestDBOrdering_String(t *testing.T) {
	assert.Equal(t, "s.name ASC", core.DBOrdering{Field: "s.name", Ascending: true}.String())
	assert.Equal(t, "s.student_id DESC", core.DBOrdering{Field: "s.student_id"}.String())
}
