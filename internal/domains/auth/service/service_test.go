package service_test

import (
	"context"
	"errors"
	"medimate/config"
	"medimate/infras/jwt"
	jwtMocks "medimate/infras/jwt/mocks"
	"medimate/infras/otel/mocks"
	"medimate/internal/domains/auth/model/dto"
	"medimate/internal/domains/auth/service"
	userMocks "medimate/internal/domains/user/mocks"
	userModel "medimate/internal/domains/user/model"
	userService "medimate/internal/domains/user/service"
	gDto "medimate/shared/dto"
	"medimate/shared/failure"
	"medimate/shared/password"
	"medimate/shared/role"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newUser(t *testing.T) userModel.User {
	t.Helper()

	hashed, err := password.Hash("password")
	require.NoError(t, err)

	return userModel.User{
		ID:       "user-id-123",
		Email:    "test@example.com",
		Password: hashed,
		Role:     role.Patient,
		Active:   true,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	tests := []struct {
		name      string
		setupMock func()
		wantErr   error
	}{
		{
			name: "registers a patient",
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockUserRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user userModel.User) error {
					assert.Equal(t, role.Patient, user.Role)

					return nil
				})
			},
		},
		{
			name: "email already registered",
			setupMock: func() {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr: userService.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Register(context.Background(), dto.RegisterRequest{Email: "test@example.com", Password: "secret1"})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

	validUser := newUser(t)
	tokens := &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer"}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, true, nil)
				mockJWT.EXPECT().GenerateTokenPair(gomock.Any(), validUser.ID, validUser.Email, role.Patient).Return(tokens, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
			},
		},
		{
			name: "last login failure does not block login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, true, nil)
				mockJWT.EXPECT().GenerateTokenPair(gomock.Any(), validUser.ID, validUser.Email, role.Patient).Return(tokens, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("update error"))
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, false, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "wrongpassword"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, true, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func() {
				inactive := validUser
				inactive.Active = false

				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, true, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, true, nil)
				mockJWT.EXPECT().GenerateTokenPair(gomock.Any(), validUser.ID, validUser.Email, role.Patient).Return(nil, errors.New("boom"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access-token", result.AccessToken)
			assert.Equal(t, "patient", result.Role)
			assert.Equal(t, validUser.ID, result.UserID)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

	promoted := newUser(t)
	promoted.Role = role.Doctor

	tests := []struct {
		name      string
		setupMock func()
		wantErr   error
	}{
		{
			name: "reissues with the current role",
			setupMock: func() {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).
					Return(&jwt.Claims{UserID: promoted.ID, Role: role.Patient}, nil)
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(promoted, true, nil)
				mockJWT.EXPECT().GenerateTokenPair(gomock.Any(), promoted.ID, promoted.Email, role.Doctor).
					Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)
			},
		},
		{
			name: "invalid token",
			setupMock: func() {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(nil, jwt.ErrInvalidToken)
			},
			wantErr: service.ErrInvalidRefresh,
		},
		{
			name: "user deleted since issue",
			setupMock: func() {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).
					Return(&jwt.Claims{UserID: promoted.ID}, nil)
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, false, nil)
			},
			wantErr: service.ErrInvalidRefresh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "doctor", result.Role)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	validUser := newUser(t)

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func()
		wantErr   error
	}{
		{
			name: "changes password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, true, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
						hashed, _ := fields[userModel.FieldPassword].(string)
						assert.NoError(t, password.Verify("newpassword", hashed))

						return 1, nil
					})
			},
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "newpassword"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, true, nil)
			},
			wantErr: service.ErrWrongPassword,
		},
		{
			name: "user not found",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, false, nil)
			},
			wantErr: userService.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.ChangePassword(context.Background(), tt.req, validUser.ID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}
