package jwt_test

import (
	"context"
	"medimate/config"
	"medimate/infras/jwt"
	"medimate/infras/otel/mocks"
	"medimate/shared/role"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "medimate"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg, mocks.NewOtel())
}

func TestService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "doc@example.com", role.Doctor)
	assert.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, role.Doctor, claims.Role)
	assert.NotEmpty(t, claims.TokenID)

	refresh, err := svc.ValidateToken(ctx, pair.RefreshToken, jwt.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, jwt.RefreshToken, refresh.Type)
}

func TestService_ValidateToken_Rejects(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "p@example.com", role.Patient)
	assert.NoError(t, err)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, "not.a.token", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.TokenType("other"))
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def.ghi")
	assert.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, jwt.ErrMissingHeader)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.ErrorIs(t, err, jwt.ErrInvalidHeader)

	_, err = jwt.ExtractTokenFromHeader("Bearer ")
	assert.ErrorIs(t, err, jwt.ErrInvalidHeader)
}
