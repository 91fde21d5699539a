package message

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"roam/infras/otel"
	"roam/internal/domains/message/model"
	"roam/internal/domains/message/model/dto"
	"roam/internal/domains/message/service"
	"roam/shared/constant"
	gDto "roam/shared/dto"
	"roam/shared/validator"
	"roam/transport/http/response"
)

type Handler struct {
	service service.Message
	otel    otel.Otel
}

func New(service service.Message, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/messages", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateMessage)
		routerGroup.Get("/", handler.GetMessages)
		routerGroup.Get("/mymessages", handler.GetMyMessages)
		routerGroup.Patch("/{id}", handler.UpdateMessage)
	})
}

// CreateMessage opens a support message.
// @Summary Create a message
// @Description Open a support message for the authenticated user.
// @Tags Message
// @Accept json
// @Produce json
// @Param request body dto.CreateMessageRequest true "Message payload"
// @Success 201 {object} response.Base "Message created successfully"
// @Failure 400 {object} response.Base
// @Failure 500 {object} response.Base
// @Router /v1/messages [post]
// @Security BearerAuth
func (handler *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMessage")
	defer scope.End()

	var req dto.CreateMessageRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create message")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Message created by user " + user)

	response.WithMessage(w, http.StatusCreated, "Message created successfully")
}

// GetMessages lists all support messages. Staff only.
// @Summary Get all messages
// @Description Retrieve support messages across all users with optional filters. Staff only.
// @Tags Message
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param category query string false "Filter by category"
// @Success 200 {object} response.Base "List of messages"
// @Failure 400 {object} response.Base
// @Failure 403 {object} response.Base
// @Failure 500 {object} response.Base
// @Router /v1/messages [get]
// @Security BearerAuth
func (handler *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMessages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := buildMessageFilters(r)

	messages, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get messages")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Messages retrieved successfully")

	response.WithJSON(w, http.StatusOK, "Messages retrieved successfully", messages)
}

// GetMyMessages lists the authenticated user's support messages.
// @Summary Get my messages
// @Description Retrieve the support messages opened by the authenticated user.
// @Tags Message
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Base "List of messages"
// @Failure 400 {object} response.Base
// @Failure 500 {object} response.Base
// @Router /v1/messages/mymessages [get]
// @Security BearerAuth
func (handler *Handler) GetMyMessages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyMessages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	messages, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my messages")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Messages retrieved successfully")

	response.WithJSON(w, http.StatusOK, "Messages retrieved successfully", messages)
}

func buildMessageFilters(r *http.Request) gDto.FilterGroup {
	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status := query.Get(model.FieldStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if priority := query.Get(model.FieldPriority); priority != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPriority,
			Operator: gDto.FilterOperatorEq,
			Value:    priority,
			Table:    model.TableName,
		})
	}

	if category := query.Get(model.FieldCategory); category != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCategory,
			Operator: gDto.FilterOperatorLike,
			Value:    category,
			Table:    model.TableName,
		})
	}

	return filterGroup
}

// UpdateMessage works a support message: status, assignee, priority. Staff only.
// @Summary Update a message by ID
// @Description Assign an employee, change priority or move the message through its status flow. Staff only.
// @Tags Message
// @Accept json
// @Produce json
// @Param id path string true "Message ID"
// @Param request body dto.UpdateMessageRequest true "Message payload"
// @Success 200 {object} response.Base "Message updated successfully"
// @Failure 400 {object} response.Base
// @Failure 403 {object} response.Base
// @Failure 404 {object} response.Base
// @Failure 500 {object} response.Base
// @Router /v1/messages/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMessage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateMessageRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update message")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Message updated by user " + user)

	response.WithMessage(w, http.StatusOK, "Message updated successfully")
}
