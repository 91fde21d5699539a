package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"roam/config"
	"roam/infras/otel"
	"roam/internal/domains/favorite/model"
	"roam/internal/domains/favorite/model/dto"
	"roam/internal/domains/favorite/repository"
	hotelModel "roam/internal/domains/hotel/model"
	hotelRepo "roam/internal/domains/hotel/repository"
	"roam/shared"
	"roam/shared/cache"
	"roam/shared/constant"
	gDto "roam/shared/dto"
	"roam/shared/failure"
)

const (
	cacheGetAllFavorite = "favorite:gets"
	cacheCountFavorite  = "favorite:count"
)

type Favorite interface {
	Create(ctx context.Context, req dto.CreateFavoriteRequest) error
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetFavoritesResponse, error)
	Delete(ctx context.Context, hotelID string) error
}

type serviceImpl struct {
	repo      repository.Favorite
	hotelRepo hotelRepo.Hotel
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Favorite, hotelRepo hotelRepo.Hotel, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Favorite {
	return &serviceImpl{
		repo:      repo,
		hotelRepo: hotelRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFavoriteRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := shared.UserScope(ctx)

	hotel, err := s.hotelRepo.Get(ctx, shared.FilterByID(req.HotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty || !hotel.Active {
		return failure.NotFound("hotel not found")
	}

	exists, err := s.repo.Exist(ctx, s.pairFilter(user, req.HotelID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing favorite")

		return fmt.Errorf("failed to check existing favorite: %w", err)
	}

	if exists {
		return failure.Conflict("hotel already favorited")
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create favorite")

		return fmt.Errorf("failed to create favorite: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetFavoritesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := shared.UserScope(ctx)

	filter := shared.FilterByID(user, model.FieldUserID, model.TableName)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllFavorite, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for favorites")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count favorites")

		return res, fmt.Errorf("failed to count favorites: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get favorites")

		return res, fmt.Errorf("failed to get favorites: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save favorites to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, hotelID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := shared.UserScope(ctx)
	filter := s.pairFilter(user, hotelID)

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing favorite")

		return fmt.Errorf("failed to check existing favorite: %w", err)
	}

	if !exists {
		return failure.NotFound("favorite not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete favorite")

		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) pairFilter(user, hotelID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    user,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldHotelID,
				Operator: gDto.FilterOperatorEq,
				Value:    hotelID,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllFavorite)
		shared.InvalidateCaches(c, s.cache, cacheCountFavorite)
	}()
}
