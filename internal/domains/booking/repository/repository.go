package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"roam/infras/otel"
	"roam/infras/postgres"
	"roam/internal/domains/booking/model"
	"roam/shared/constant"
	gDto "roam/shared/dto"
	"roam/shared/logger"
	gRepo "roam/shared/repository"
)

// ErrStaleStatus is returned when a status-guarded update affects zero rows:
// the booking left the expected status between the caller's read and the write.
var ErrStaleStatus = errors.New("booking status changed")

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	UpdateWhereStatusTx(ctx context.Context, tx *sqlx.Tx, id string, statuses []string, req map[string]any) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// UpdateWhereStatusTx applies the updates only while the booking still sits
// in one of the given statuses. The guard and the write are a single
// statement, so a concurrent transition cannot slip in between: the loser
// affects zero rows and gets ErrStaleStatus.
func (repo *repositoryImpl) UpdateWhereStatusTx(ctx context.Context, tx *sqlx.Tx, id string, statuses []string, req map[string]any) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateWhereStatusTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	assignments := make([]string, 0, len(req))
	args := map[string]any{
		"id":       id,
		"statuses": pq.Array(statuses),
	}

	for column, value := range req {
		assignments = append(assignments, fmt.Sprintf("%s = :%s", column, column))
		args[column] = value
	}

	query := fmt.Sprintf(`UPDATE bookings
		SET %s
		WHERE id = :id AND status = ANY(:statuses)`, strings.Join(assignments, ", "))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := tx.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to update booking (booking): %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to read update result (booking): %w", err)
	}

	if affected == 0 {
		return ErrStaleStatus
	}

	return nil
}
