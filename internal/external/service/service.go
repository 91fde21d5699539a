package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"roam/config"
	"roam/infras/otel"
	"roam/internal/external/model"
	"roam/shared"
	"roam/shared/cache"
	"roam/shared/constant"
	"roam/shared/failure"
)

const (
	cacheFlightSearch = "external:flights"
	cacheHotelSearch  = "external:hotels"

	apiKeyHeader = "X-Api-Key"
)

type External interface {
	SearchFlights(ctx context.Context, req model.FlightSearchRequest) (model.FlightSearchResponse, error)
	SearchHotels(ctx context.Context, req model.HotelSearchRequest) (model.HotelSearchResponse, error)
}

type serviceImpl struct {
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	flightClient *http.Client
	hotelClient  *http.Client
}

func New(cfg *config.Config, cache cache.RedisCache, otel otel.Otel) External {
	return &serviceImpl{
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		flightClient: &http.Client{
			Timeout: time.Duration(cfg.External.FlightAPI.TimeoutSeconds) * time.Second,
		},
		hotelClient: &http.Client{
			Timeout: time.Duration(cfg.External.HotelAPI.TimeoutSeconds) * time.Second,
		},
	}
}

func (s *serviceImpl) SearchFlights(ctx context.Context, req model.FlightSearchRequest) (res model.FlightSearchResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SearchFlights")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheFlightSearch, req.Origin, req.Destination, req.Date, strconv.Itoa(req.Passengers))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for flight search")

		return res, nil
	}

	params := url.Values{}
	params.Set("origin", req.Origin)
	params.Set("destination", req.Destination)
	params.Set("date", req.Date)
	params.Set("passengers", strconv.Itoa(req.Passengers))

	err = s.fetch(ctx, s.flightClient, s.cfg.External.FlightAPI.BaseURL+"/flights", s.cfg.External.FlightAPI.Key, params, &res)
	if err != nil {
		return res, err
	}

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) SearchHotels(ctx context.Context, req model.HotelSearchRequest) (res model.HotelSearchResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SearchHotels")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheHotelSearch, req.City, req.CheckIn, req.CheckOut)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotel search")

		return res, nil
	}

	params := url.Values{}
	params.Set("city", req.City)
	params.Set("check_in", req.CheckIn)
	params.Set("check_out", req.CheckOut)

	err = s.fetch(ctx, s.hotelClient, s.cfg.External.HotelAPI.BaseURL+"/hotels", s.cfg.External.HotelAPI.Key, params, &res)
	if err != nil {
		return res, err
	}

	s.save(ctx, cacheKey, res)

	return res, nil
}

// fetch proxies a GET to a provider. Any transport error or non-200 answer
// surfaces as a 502 so the caller never sees provider internals.
func (s *serviceImpl) fetch(ctx context.Context, client *http.Client, endpoint, apiKey string, params url.Values, out any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to build provider request")

		return fmt.Errorf("failed to build provider request: %w", err)
	}

	request.Header.Set(apiKeyHeader, apiKey)
	request.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := client.Do(request)
	if err != nil {
		log.Error().Err(err).Str("endpoint", endpoint).Msg("provider request failed")

		return failure.BadGateway("search provider unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("provider returned an error")

		return failure.BadGateway(fmt.Sprintf("search provider returned status %d", resp.StatusCode))
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error().Err(err).Str("endpoint", endpoint).Msg("failed to decode provider response")

		return failure.BadGateway("search provider returned an invalid response")
	}

	return nil
}

func (s *serviceImpl) save(ctx context.Context, cacheKey string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save search results to cache")
		}
	}()
}
