package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"roam/config"
	"roam/infras/otel"
	"roam/internal/domains/message/model"
	"roam/internal/domains/message/model/dto"
	"roam/internal/domains/message/repository"
	userModel "roam/internal/domains/user/model"
	userRepo "roam/internal/domains/user/repository"
	"roam/shared"
	"roam/shared/cache"
	"roam/shared/constant"
	gDto "roam/shared/dto"
	"roam/shared/failure"
	"roam/shared/timezone"
)

const (
	cacheGetAllMessage = "message:gets"
	cacheCountMessage  = "message:count"
)

type Message interface {
	Create(ctx context.Context, req dto.CreateMessageRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetMessagesResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetMessagesResponse, error)
	Update(ctx context.Context, req dto.UpdateMessageRequest, id string) error
}

type serviceImpl struct {
	repo     repository.Message
	userRepo userRepo.User
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Message, userRepo userRepo.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Message {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateMessageRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := shared.UserScope(ctx)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create message")

		return fmt.Errorf("failed to create message: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetMessagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllMessage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for messages")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count messages")

		return res, fmt.Errorf("failed to count messages: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get messages")

		return res, fmt.Errorf("failed to get messages: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save messages to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetMessagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := shared.UserScope(ctx)

	return s.GetAll(ctx, req, shared.FilterByID(user, model.FieldUserID, model.TableName))
}

// Update is the staff operation for working a ticket: assigning an employee,
// adjusting priority and moving it through the status flow.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateMessageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateMessageRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	user, _ := shared.UserScope(ctx)

	message, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get message")

		return fmt.Errorf("failed to get message: %w", err)
	}

	if message.ID == constant.Empty {
		return failure.NotFound("message not found")
	}

	updatedFields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if req.Status != nil {
		if !message.CanTransitionTo(*req.Status) {
			return failure.BadRequestFromString(fmt.Sprintf("cannot transition message from %q to %q", message.Status, *req.Status))
		}

		updatedFields[model.FieldStatus] = *req.Status
	}

	if req.EmployeeID != nil {
		employee, err := s.userRepo.Get(ctx, shared.FilterByID(*req.EmployeeID, userModel.FieldID, userModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get employee")

			return fmt.Errorf("failed to get employee: %w", err)
		}

		if employee.ID == constant.Empty || !shared.IsStaff(employee.Role) {
			return failure.BadRequestFromString("assignee must be an employee or admin")
		}

		updatedFields[model.FieldEmployeeID] = *req.EmployeeID
	}

	if req.Priority != nil {
		updatedFields[model.FieldPriority] = *req.Priority
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update message")

		return fmt.Errorf("failed to update message: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllMessage)
		shared.InvalidateCaches(c, s.cache, cacheCountMessage)
	}()
}
