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
	"roam/internal/domains/booking/model"
	"roam/internal/domains/booking/repository"
	"roam/shared/constant"
)

func newTestRepo(t *testing.T) (repository.Booking, *sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	return repository.New(conn, mocks.NewOtel()), sqlxDB, mock
}

func TestBookingRepository_UpdateWhereStatusTx(t *testing.T) {
	repo, db, mock := newTestRepo(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)

	err = repo.UpdateWhereStatusTx(ctx, tx, "booking-id-123",
		[]string{constant.BookingStatusPending, constant.BookingStatusConfirmed},
		map[string]any{model.FieldStatus: constant.BookingStatusCancelled})
	assert.NoError(t, err)

	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The booking moved out of the guarded statuses before the update ran: zero
// rows affected surfaces as ErrStaleStatus so the caller can roll back.
func TestBookingRepository_UpdateWhereStatusTxStale(t *testing.T) {
	repo, db, mock := newTestRepo(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := db.Beginx()
	require.NoError(t, err)

	err = repo.UpdateWhereStatusTx(ctx, tx, "booking-id-123",
		[]string{constant.BookingStatusPending, constant.BookingStatusConfirmed},
		map[string]any{model.FieldStatus: constant.BookingStatusCancelled})
	assert.ErrorIs(t, err, repository.ErrStaleStatus)

	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
