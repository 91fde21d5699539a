package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roam/infras/otel/mocks"
	"roam/infras/postgres"
	"roam/internal/domains/hotel/repository"
)

func newTestRepo(t *testing.T) (repository.Hotel, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	return repository.New(conn, mocks.NewOtel()), mock
}

func TestHotelRepository_ReserveRoomsTx(t *testing.T) {
	repo, mock := newTestRepo(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE hotels").
		WithArgs(2, "hotel-id-123", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	err = repo.ReserveRoomsTx(ctx, tx, "hotel-id-123", 2)
	assert.NoError(t, err)

	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelRepository_ReserveRoomsTxNoCapacity(t *testing.T) {
	repo, mock := newTestRepo(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE hotels").
		WithArgs(3, "hotel-id-123", 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	err = repo.ReserveRoomsTx(ctx, tx, "hotel-id-123", 3)
	assert.ErrorIs(t, err, repository.ErrNoCapacity)

	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two reservations racing for the last rooms: the conditional update lets the
// first one through and affects zero rows for the second.
func TestHotelRepository_ReserveRoomsTxLastRoomWinsOnce(t *testing.T) {
	repo, mock := newTestRepo(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE hotels").
		WithArgs(1, "hotel-id-123", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE hotels").
		WithArgs(1, "hotel-id-123", 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	assert.NoError(t, repo.ReserveRoomsTx(ctx, tx, "hotel-id-123", 1))
	assert.ErrorIs(t, repo.ReserveRoomsTx(ctx, tx, "hotel-id-123", 1), repository.ErrNoCapacity)

	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelRepository_ReleaseRoomsTx(t *testing.T) {
	repo, mock := newTestRepo(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE hotels").
		WithArgs(2, "hotel-id-123").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	err = repo.ReleaseRoomsTx(ctx, tx, "hotel-id-123", 2)
	assert.NoError(t, err)

	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
