package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"roam/config"
	"roam/infras/otel"
	bookingModel "roam/internal/domains/booking/model"
	bookingRepo "roam/internal/domains/booking/repository"
	hotelModel "roam/internal/domains/hotel/model"
	hotelRepo "roam/internal/domains/hotel/repository"
	"roam/internal/domains/review/model"
	"roam/internal/domains/review/model/dto"
	"roam/internal/domains/review/repository"
	"roam/shared"
	"roam/shared/cache"
	"roam/shared/constant"
	gDto "roam/shared/dto"
	"roam/shared/failure"
	"roam/shared/timezone"
)

const (
	cacheGetAllReview = "review:gets"
	cacheCountReview  = "review:count"
)

type Review interface {
	Create(ctx context.Context, req dto.CreateReviewRequest, hotelID string) error
	GetByHotel(ctx context.Context, req gDto.QueryParams, hotelID string) (dto.GetReviewsResponse, error)
	Update(ctx context.Context, req dto.UpdateReviewRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Review
	hotelRepo   hotelRepo.Hotel
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Review, hotelRepo hotelRepo.Hotel, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Review {
	return &serviceImpl{
		repo:        repo,
		hotelRepo:   hotelRepo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReviewRequest, hotelID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := shared.UserScope(ctx)

	hotel, err := s.hotelRepo.Get(ctx, shared.FilterByID(hotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty || !hotel.Active {
		return failure.NotFound("hotel not found")
	}

	if req.BookingID != nil {
		booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(*req.BookingID, bookingModel.FieldID, bookingModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get booking")

			return fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found")
		}

		if booking.UserID != user {
			return failure.ResourceRestrictedError
		}

		if booking.HotelID != hotelID {
			return failure.BadRequestFromString("booking does not belong to this hotel")
		}
	}

	exists, err := s.repo.Exist(ctx, s.duplicateFilter(user, hotelID, req.BookingID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing review")

		return fmt.Errorf("failed to check existing review: %w", err)
	}

	if exists {
		return failure.Conflict("review already exists for this stay")
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, hotelID)); err != nil {
		log.Error().Err(err).Msg("failed to create review")

		return fmt.Errorf("failed to create review: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) GetByHotel(ctx context.Context, req gDto.QueryParams, hotelID string) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByHotel")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(hotelID, model.FieldHotelID, model.TableName)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReview, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reviews")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reviews")

		return res, fmt.Errorf("failed to count reviews: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	avg, err := s.repo.AverageRating(ctx, hotelID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get average rating")

		return res, fmt.Errorf("failed to get average rating: %w", err)
	}

	res.FromModels(models, avg, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reviews to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReviewRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateReviewRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	user, _ := shared.UserScope(ctx)

	review, err := s.getAuthored(ctx, id, user)
	if err != nil {
		return err
	}

	if s.graceExpired(review) {
		return failure.Forbidden("review can no longer be edited")
	}

	updatedFields := shared.TransformFields(req, user)

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update review")

		return fmt.Errorf("failed to update review: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, role := shared.UserScope(ctx)

	review, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == constant.Empty {
		return failure.NotFound("review not found")
	}

	// Staff can moderate any review; the author can only remove their own
	// while it is still editable.
	if !shared.IsStaff(role) {
		if review.UserID != user {
			return failure.ResourceRestrictedError
		}

		if s.graceExpired(review) {
			return failure.Forbidden("review can no longer be deleted")
		}
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete review")

		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) getAuthored(ctx context.Context, id, user string) (model.Review, error) {
	review, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return review, fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == constant.Empty {
		return review, failure.NotFound("review not found")
	}

	if review.UserID != user {
		return review, failure.ResourceRestrictedError
	}

	return review, nil
}

func (s *serviceImpl) graceExpired(review model.Review) bool {
	deadline := review.CreatedAt.Add(time.Duration(s.cfg.Review.EditGraceHours) * time.Hour)

	return timezone.Now().After(deadline)
}

func (s *serviceImpl) duplicateFilter(user, hotelID string, bookingID *string) gDto.FilterGroup {
	filters := []any{
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
	}

	if bookingID != nil {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldBookingID,
			Operator: gDto.FilterOperatorEq,
			Value:    *bookingID,
			Table:    model.TableName,
		})
	} else {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldBookingID,
			Operator: gDto.FilterIsNull,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReview)
		shared.InvalidateCaches(c, s.cache, cacheCountReview)
	}()
}
