package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn is a minimal database/sql/driver connection whose transaction
// outcomes are scripted per test.
type fakeConn struct {
	beginErr  error
	commitErr error

	commits   int
	rollbacks int
}

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	if c.beginErr != nil {
		return nil, c.beginErr
	}
	return &fakeTx{conn: c}, nil
}

type fakeTx struct {
	conn *fakeConn
}

func (t *fakeTx) Commit() error {
	t.conn.commits++
	return t.conn.commitErr
}

func (t *fakeTx) Rollback() error {
	t.conn.rollbacks++
	return nil
}

// fakeConnector hands the same scripted connection to the pool.
type fakeConnector struct {
	conn *fakeConn
}

func (c *fakeConnector) Connect(ctx context.Context) (driver.Conn, error) {
	return c.conn, nil
}

func (c *fakeConnector) Driver() driver.Driver { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(name string) (driver.Conn, error) {
	return nil, errors.New("open not supported")
}

func newFakeDB(conn *fakeConn) *sql.DB {
	return sql.OpenDB(&fakeConnector{conn: conn})
}

func TestRunInTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when fn succeeds", func(t *testing.T) {
		conn := &fakeConn{}
		db := newFakeDB(conn)
		defer db.Close()

		called := false
		err := RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			called = true
			return nil
		})

		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, 1, conn.commits)
		assert.Equal(t, 0, conn.rollbacks)
	})

	t.Run("rolls back and returns the fn error", func(t *testing.T) {
		conn := &fakeConn{}
		db := newFakeDB(conn)
		defer db.Close()

		cause := errors.New("update failed")
		err := RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return cause
		})

		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, ErrTransactionFailed)
		assert.Equal(t, 0, conn.commits)
		assert.Equal(t, 1, conn.rollbacks)
	})

	t.Run("begin failure maps to ErrTransactionFailed", func(t *testing.T) {
		conn := &fakeConn{beginErr: errors.New("too many connections")}
		db := newFakeDB(conn)
		defer db.Close()

		err := RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			t.Fatal("fn must not run when begin fails")
			return nil
		})

		assert.ErrorIs(t, err, ErrTransactionFailed)
	})

	t.Run("commit failure maps to ErrTransactionFailed", func(t *testing.T) {
		conn := &fakeConn{commitErr: errors.New("serialization failure")}
		db := newFakeDB(conn)
		defer db.Close()

		err := RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return nil
		})

		assert.ErrorIs(t, err, ErrTransactionFailed)
		assert.Equal(t, 1, conn.commits)
	})

	t.Run("panic rolls back and repanics", func(t *testing.T) {
		conn := &fakeConn{}
		db := newFakeDB(conn)
		defer db.Close()

		assert.PanicsWithValue(t, "boom", func() {
			_ = RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
				panic("boom")
			})
		})

		assert.Equal(t, 0, conn.commits)
		assert.Equal(t, 1, conn.rollbacks)
	})
}
