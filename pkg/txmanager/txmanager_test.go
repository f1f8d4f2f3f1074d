package txmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArenaSlots/pkg/dbmetrics"
)

func setup(t *testing.T) (*TransactionManager, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewTransactionManager(dbmetrics.Wrap(sqlDB, nil, 0, nil)), mock
}

func TestDo_Commit(t *testing.T) {
	tm, mock := setup(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.Do(context.Background(), func(ctx context.Context) error {
		require.True(t, dbmetrics.IsInTransaction(ctx))
		tx, _ := dbmetrics.GetTx(ctx)
		_, err := tx.ExecContext(ctx, "INSERT INTO bookings (id) VALUES ($1)", "b1")
		return err
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_RollbackOnError(t *testing.T) {
	tm, mock := setup(t)
	errBoom := errors.New("slot is full")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tm.Do(context.Background(), func(ctx context.Context) error {
		return errBoom
	})

	assert.ErrorIs(t, err, errBoom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_BeginFails(t *testing.T) {
	tm, mock := setup(t)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	err := tm.Do(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not be called")
		return nil
	})

	assert.ErrorIs(t, err, ErrBeginTx)
}

func TestDo_NestedReusesOuterTx(t *testing.T) {
	tm, mock := setup(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := tm.Do(context.Background(), func(ctx context.Context) error {
		outer, _ := dbmetrics.GetTx(ctx)
		return tm.DoSerializable(ctx, func(inner context.Context) error {
			calls++
			tx, _ := dbmetrics.GetTx(inner)
			assert.Equal(t, outer, tx)
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}
