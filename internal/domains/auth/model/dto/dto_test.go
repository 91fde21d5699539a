package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roam/infras/jwt"
	"roam/internal/domains/auth/model/dto"
	userModel "roam/internal/domains/user/model"
	"roam/shared/constant"
	"roam/shared/timezone"
)

func TestRegisterRequest_ToUserModel(t *testing.T) {
	fullName := "Test User"

	req := dto.RegisterRequest{
		Email:    "test@example.com",
		Password: "plaintext",
		FullName: &fullName,
	}

	user := req.ToUserModel("guest", "hashed-password")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, req.Email, user.Email)
	assert.Equal(t, "hashed-password", user.Password)
	assert.Equal(t, constant.RoleCustomer, user.Role)
	assert.Equal(t, &fullName, user.FullName)
	assert.True(t, user.Active)
	assert.Equal(t, "guest", user.CreatedBy)
}

func TestRegisterRequest_ToUserModelKeepsRole(t *testing.T) {
	req := dto.RegisterRequest{
		Email:    "staff@example.com",
		Password: "plaintext",
		Role:     constant.RoleEmployee,
	}

	user := req.ToUserModel("guest", "hashed-password")

	assert.Equal(t, constant.RoleEmployee, user.Role)
}

func TestRegisterResponse_FromTokenPair(t *testing.T) {
	fullName := "Test User"

	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		ExpiresIn:    900,
	}

	user := userModel.User{
		ID:       "user-id-123",
		Email:    "test@example.com",
		Role:     constant.RoleCustomer,
		FullName: &fullName,
	}

	var response dto.RegisterResponse
	response.FromTokenPair(tokenPair, user)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
	assert.Equal(t, user.ID, response.UserID)
	assert.Equal(t, user.Email, response.Email)
	assert.Equal(t, user.Role, response.Role)
	assert.Equal(t, &fullName, response.FullName)
}

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		ExpiresIn:    900,
	}

	user := userModel.User{
		ID:    "user-id-123",
		Email: "test@example.com",
		Role:  constant.RoleCustomer,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair, user)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
	assert.Equal(t, user.ID, response.UserID)
	assert.Equal(t, user.Email, response.Email)
	assert.Equal(t, user.Role, response.Role)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestUpdateLastLoginRequest(t *testing.T) {
	now := timezone.Now()

	req := dto.UpdateLastLoginRequest{
		LastLogin: now,
	}

	assert.Equal(t, now, req.LastLogin)
}

func TestUpdatePasswordRequest(t *testing.T) {
	hashedPassword := "hashed-new-password"

	req := dto.UpdatePasswordRequest{
		Password: hashedPassword,
	}

	assert.Equal(t, hashedPassword, req.Password)
}
