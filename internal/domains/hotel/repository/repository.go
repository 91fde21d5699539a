package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"roam/infras/otel"
	"roam/infras/postgres"
	"roam/internal/domains/hotel/model"
	"roam/shared/constant"
	gDto "roam/shared/dto"
	"roam/shared/logger"
	gRepo "roam/shared/repository"
)

// ErrNoCapacity is returned when a conditional reservation affects zero rows:
// the hotel is missing, inactive, or short on rooms.
var ErrNoCapacity = errors.New("insufficient rooms available")

type Hotel interface {
	Insert(ctx context.Context, model model.Hotel) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Hotel, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Hotel, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	ReserveRoomsTx(ctx context.Context, tx *sqlx.Tx, hotelID string, rooms int) error
	ReleaseRoomsTx(ctx context.Context, tx *sqlx.Tx, hotelID string, rooms int) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Hotel]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Hotel {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Hotel](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ReserveRoomsTx takes rooms out of a hotel's inventory with a conditional
// update. The availability check and the decrement are a single statement, so
// two competing reservations for the last room cannot both pass: the second
// one affects zero rows and gets ErrNoCapacity.
func (repo *repositoryImpl) ReserveRoomsTx(ctx context.Context, tx *sqlx.Tx, hotelID string, rooms int) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".hotel.ReserveRoomsTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `UPDATE hotels
		SET available_rooms = available_rooms - :rooms
		WHERE id = :id AND active = true AND available_rooms >= :rooms`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := tx.NamedExecContext(ctx, query, map[string]any{
		"id":    hotelID,
		"rooms": rooms,
	})
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to reserve rooms (hotel): %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to read reservation result (hotel): %w", err)
	}

	if affected == 0 {
		return ErrNoCapacity
	}

	return nil
}

// ReleaseRoomsTx returns rooms to a hotel's inventory, clamped at total_rooms.
func (repo *repositoryImpl) ReleaseRoomsTx(ctx context.Context, tx *sqlx.Tx, hotelID string, rooms int) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".hotel.ReleaseRoomsTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `UPDATE hotels
		SET available_rooms = LEAST(available_rooms + :rooms, total_rooms)
		WHERE id = :id`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err = tx.NamedExecContext(ctx, query, map[string]any{
		"id":    hotelID,
		"rooms": rooms,
	})
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to release rooms (hotel): %w", err)
	}

	return nil
}
