//go:build wireinject
// +build wireinject

package di

import (
	"roam/config"
	"roam/infras/jwt"
	"roam/infras/kafka"
	"roam/infras/otel"
	"roam/infras/postgres"
	"roam/infras/redis"
	"roam/infras/s3"
	"roam/permissions"
	"roam/shared/cache"
	"roam/transport/http"
	"roam/transport/http/middleware"
	"roam/transport/http/router"

	"github.com/google/wire"

	authService "roam/internal/domains/auth/service"
	bookingRepository "roam/internal/domains/booking/repository"
	bookingService "roam/internal/domains/booking/service"
	favoriteRepository "roam/internal/domains/favorite/repository"
	favoriteService "roam/internal/domains/favorite/service"
	hotelRepository "roam/internal/domains/hotel/repository"
	hotelService "roam/internal/domains/hotel/service"
	messageRepository "roam/internal/domains/message/repository"
	messageService "roam/internal/domains/message/service"
	reviewRepository "roam/internal/domains/review/repository"
	reviewService "roam/internal/domains/review/service"
	userRepository "roam/internal/domains/user/repository"
	userService "roam/internal/domains/user/service"
	externalService "roam/internal/external/service"

	authHandler "roam/internal/handlers/auth"
	bookingHandler "roam/internal/handlers/booking"
	externalHandler "roam/internal/handlers/external"
	favoriteHandler "roam/internal/handlers/favorite"
	hotelHandler "roam/internal/handlers/hotel"
	messageHandler "roam/internal/handlers/message"
	reviewHandler "roam/internal/handlers/review"
	userHandler "roam/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var hotelDomain = wire.NewSet(
	hotelRepository.New,
	hotelService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var favoriteDomain = wire.NewSet(
	favoriteRepository.New,
	favoriteService.New,
)

var messageDomain = wire.NewSet(
	messageRepository.New,
	messageService.New,
)

var externalDomain = wire.NewSet(
	externalService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	hotelDomain,
	bookingDomain,
	reviewDomain,
	favoriteDomain,
	messageDomain,
	externalDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	hotelHandler.New,
	bookingHandler.New,
	reviewHandler.New,
	favoriteHandler.New,
	messageHandler.New,
	externalHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
