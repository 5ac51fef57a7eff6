package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"community-lunch-backend/internal/repository"
	"community-lunch-backend/internal/repository/postgres"
)

func TestStore_ExecTx(t *testing.T) {
	ctx := context.Background()

	t.Run("Commit on success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := postgres.NewStore(db)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM lunches").WithArgs(int32(5)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = store.ExecTx(ctx, func(tx repository.Store) error {
			return tx.Lunches().Delete(ctx, 5)
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback on error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := postgres.NewStore(db)
		boom := errors.New("boom")

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM lunches").WithArgs(int32(5)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		err = store.ExecTx(ctx, func(tx repository.Store) error {
			if err := tx.Lunches().Delete(ctx, 5); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nested ExecTx reuses the open transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := postgres.NewStore(db)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM lunches").WithArgs(int32(5)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = store.ExecTx(ctx, func(outer repository.Store) error {
			return outer.ExecTx(ctx, func(inner repository.Store) error {
				return inner.Lunches().Delete(ctx, 5)
			})
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
