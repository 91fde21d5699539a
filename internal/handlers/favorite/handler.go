package favorite

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"roam/infras/otel"
	"roam/internal/domains/favorite/model/dto"
	"roam/internal/domains/favorite/service"
	"roam/shared/constant"
	gDto "roam/shared/dto"
	"roam/shared/validator"
	"roam/transport/http/response"
)

type Handler struct {
	service service.Favorite
	otel    otel.Otel
}

func New(service service.Favorite, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/favorites", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateFavorite)
		routerGroup.Get("/", handler.GetFavorites)
		routerGroup.Delete("/{hotelId}", handler.DeleteFavorite)
	})
}

// CreateFavorite saves a hotel to the user's favorites.
// @Summary Favorite a hotel
// @Description Add a hotel to the authenticated user's favorites. One favorite per hotel.
// @Tags Favorite
// @Accept json
// @Produce json
// @Param request body dto.CreateFavoriteRequest true "Favorite payload"
// @Success 201 {object} response.Base "Favorite created successfully"
// @Failure 400 {object} response.Base
// @Failure 404 {object} response.Base
// @Failure 409 {object} response.Base
// @Failure 500 {object} response.Base
// @Router /v1/favorites [post]
// @Security BearerAuth
func (handler *Handler) CreateFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFavorite")
	defer scope.End()

	var req dto.CreateFavoriteRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create favorite")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Favorite created by user " + user)

	response.WithMessage(w, http.StatusCreated, "Favorite created successfully")
}

// GetFavorites lists the authenticated user's favorite hotels.
// @Summary Get my favorites
// @Description Retrieve the authenticated user's favorite hotels with pagination.
// @Tags Favorite
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Base "List of favorites"
// @Failure 400 {object} response.Base
// @Failure 500 {object} response.Base
// @Router /v1/favorites [get]
// @Security BearerAuth
func (handler *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFavorites")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	favorites, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get favorites")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Favorites retrieved successfully")

	response.WithJSON(w, http.StatusOK, "Favorites retrieved successfully", favorites)
}

// DeleteFavorite removes a hotel from the user's favorites.
// @Summary Unfavorite a hotel
// @Description Remove a hotel from the authenticated user's favorites.
// @Tags Favorite
// @Produce json
// @Param hotelId path string true "Hotel ID"
// @Success 200 {object} response.Base "Favorite deleted successfully"
// @Failure 404 {object} response.Base
// @Failure 500 {object} response.Base
// @Router /v1/favorites/{hotelId} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFavorite")
	defer scope.End()

	hotelID := chi.URLParam(r, "hotelId")

	if err := handler.service.Delete(ctx, hotelID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete favorite")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Favorite deleted by user " + user)

	response.WithMessage(w, http.StatusOK, "Favorite deleted successfully")
}
