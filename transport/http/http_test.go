package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roam/config"
	jwtMocks "roam/infras/jwt/mocks"
	"roam/infras/otel/mocks"
	"roam/permissions"
	cacheMocks "roam/shared/cache/mocks"
	transport "roam/transport/http"
	"roam/transport/http/middleware"
	"roam/transport/http/router"
)

// The serverless entrypoint serves requests through Adaptor rather than
// ListenAndServe, so the full mux setup has to work when invoked that way.
func TestHTTP_AdaptorServesHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	mockOtel := mocks.NewOtel()
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	appMiddleware := middleware.NewAppMiddleware(mockOtel, cfg, mockCache)
	authRole := middleware.NewAuthRoleMiddleware(mockJWT, mockOtel, permissions.Get(), cfg)

	r := router.New(router.DomainHandlers{}, appMiddleware, authRole)
	h := transport.New(cfg, r)

	handler := h.Adaptor()

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
