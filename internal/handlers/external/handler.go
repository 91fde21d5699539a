package external

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"roam/infras/otel"
	"roam/internal/external/model"
	"roam/internal/external/service"
	"roam/shared"
	"roam/shared/constant"
	"roam/shared/validator"
	"roam/transport/http/response"
)

type Handler struct {
	service service.External
	otel    otel.Otel
}

func New(service service.External, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/search", func(routerGroup chi.Router) {
		routerGroup.Get("/flights", handler.SearchFlights)
		routerGroup.Get("/hotels", handler.SearchHotels)
	})
}

// SearchFlights proxies a flight search to the configured provider.
// @Summary Search flights
// @Description Search flights through the third-party flight provider. Results are cached.
// @Tags Search
// @Produce json
// @Param origin query string true "Origin IATA code"
// @Param destination query string true "Destination IATA code"
// @Param date query string true "Departure date (YYYY-MM-DD)"
// @Param passengers query integer true "Number of passengers"
// @Success 200 {object} response.Base "Flight offers"
// @Failure 400 {object} response.Base
// @Failure 502 {object} response.Base
// @Router /v1/search/flights [get]
// @Security BearerAuth
func (handler *Handler) SearchFlights(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchFlights")
	defer scope.End()

	query := r.URL.Query()

	req := model.FlightSearchRequest{
		Origin:      query.Get("origin"),
		Destination: query.Get("destination"),
		Date:        query.Get("date"),
		Passengers:  1,
	}

	if passengers, err := shared.ConvertStringToInt(query.Get("passengers")); err == nil {
		req.Passengers = passengers
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SearchFlights(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search flights")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Flights searched successfully")

	response.WithJSON(w, http.StatusOK, "Flights retrieved successfully", res)
}

// SearchHotels proxies a hotel content search to the configured provider.
// @Summary Search hotels
// @Description Search hotel content through the third-party hotel provider. Results are cached.
// @Tags Search
// @Produce json
// @Param city query string true "City name"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} response.Base "Hotel content"
// @Failure 400 {object} response.Base
// @Failure 502 {object} response.Base
// @Router /v1/search/hotels [get]
// @Security BearerAuth
func (handler *Handler) SearchHotels(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchHotels")
	defer scope.End()

	query := r.URL.Query()

	req := model.HotelSearchRequest{
		City:     query.Get("city"),
		CheckIn:  query.Get("check_in"),
		CheckOut: query.Get("check_out"),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SearchHotels(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search hotels")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotels searched successfully")

	response.WithJSON(w, http.StatusOK, "Hotels retrieved successfully", res)
}
