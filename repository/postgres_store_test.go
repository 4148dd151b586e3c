package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calc-hub/domain"
)

func setupPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresStore(db), mock
}

func TestPostgresStore_Migrate(t *testing.T) {
	store, mock := setupPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS users`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS calculations`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS calculations_user_created_idx`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Migrate(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCalculations(t *testing.T) {
	store, mock := setupPostgresStore(t)
	repo := store.Calculations()
	ctx := context.Background()
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("save assigns an id", func(t *testing.T) {
		calc := &domain.Calculation{
			UserID:     "user-1",
			Calculator: "loan",
			Input:      []byte(`{"amount":1000}`),
			Result:     []byte(`{"monthly_payment":100}`),
		}
		mock.ExpectExec(`INSERT INTO calculations`).
			WithArgs(
				sqlmock.AnyArg(), // id
				"user-1",
				"loan",
				[]byte(`{"amount":1000}`),
				[]byte(`{"monthly_payment":100}`),
				sqlmock.AnyArg(), // created_at
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Save(ctx, calc))
		assert.NotEmpty(t, calc.ID)
		assert.False(t, calc.CreatedAt.IsZero())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list newest first with limit", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "user_id", "calculator", "input", "result", "created_at"}).
			AddRow("c2", "user-1", "bmi", []byte(`{}`), []byte(`{"bmi":22.86}`), created.Add(time.Hour)).
			AddRow("c1", "user-1", "loan", []byte(`{}`), []byte(`{}`), created)
		mock.ExpectQuery(`SELECT id, user_id, calculator, input, result, created_at\s+FROM calculations\s+WHERE user_id = \$1`).
			WithArgs("user-1", int64(5)).
			WillReturnRows(rows)

		list, err := repo.ListByUser(ctx, "user-1", 5)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "c2", list[0].ID)
		assert.JSONEq(t, `{"bmi":22.86}`, string(list[0].Result))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get missing maps to not found", func(t *testing.T) {
		mock.ExpectQuery(`FROM calculations\s+WHERE id = \$1 AND user_id = \$2`).
			WithArgs("nope", "user-1").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, "user-1", "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete of another user's row is not found", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM calculations WHERE id = \$1 AND user_id = \$2`).
			WithArgs("c1", "user-2").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, "user-2", "c1"), domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("purge reports deleted rows", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM calculations WHERE created_at < \$1`).
			WithArgs(created).
			WillReturnResult(sqlmock.NewResult(0, 7))

		n, err := repo.PurgeOlderThan(ctx, created)
		require.NoError(t, err)
		assert.Equal(t, int64(7), n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure is wrapped", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM calculations WHERE created_at`).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.PurgeOlderThan(ctx, created)
		assert.ErrorContains(t, err, "failed to purge calculations")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUsers(t *testing.T) {
	store, mock := setupPostgresStore(t)
	repo := store.Users()
	ctx := context.Background()

	t.Run("duplicate login", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), "alice", "hash", sqlmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := repo.Create(ctx, &domain.User{Login: "alice", PasswordHash: "hash"})
		assert.ErrorIs(t, err, domain.ErrUserExists)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get by login", func(t *testing.T) {
		created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT id, login, password_hash, created_at FROM users WHERE login = \$1`).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"id", "login", "password_hash", "created_at"}).
				AddRow("u1", "alice", "hash", created))

		u, err := repo.GetByLogin(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
		assert.Equal(t, created, u.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id", func(t *testing.T) {
		mock.ExpectQuery(`FROM users WHERE id = \$1`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "login", "password_hash", "created_at"}))

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
