package dto_test

import (
	"medimate/infras/jwt"
	"medimate/internal/domains/auth/model/dto"
	userModel "medimate/internal/domains/user/model"
	"medimate/shared/role"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterRequest{Email: " New.Patient@Example.com ", Password: "secret1"}

	user := req.ToUserModel("guest", "hashed")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "new.patient@example.com", user.Email)
	assert.Equal(t, role.Patient, user.Role)
	assert.Equal(t, "hashed", user.Password)
	assert.True(t, user.Active)
	assert.Equal(t, "guest", user.CreatedBy)
}

func TestLoginResponse_FromTokenPair(t *testing.T) {
	var response dto.LoginResponse
	response.FromTokenPair(
		&jwt.TokenPair{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 900},
		userModel.User{ID: "u1", Role: role.Doctor},
	)

	assert.Equal(t, dto.LoginResponse{
		AccessToken:  "a",
		RefreshToken: "r",
		TokenType:    "Bearer",
		ExpiresIn:    900,
		UserID:       "u1",
		Role:         "doctor",
	}, response)
}
