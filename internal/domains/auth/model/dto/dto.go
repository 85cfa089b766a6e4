package dto

import (
	"medimate/infras/jwt"
	userModel "medimate/internal/domains/user/model"
	userDto "medimate/internal/domains/user/model/dto"
	"medimate/shared/role"
	"time"
)

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ToUserModel builds a self-registered account, which is always a patient.
func (r *RegisterRequest) ToUserModel(actor, hashedPassword string) userModel.User {
	return userDto.NewUser(r.Email, hashedPassword, role.Patient, actor)
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLogin struct {
	LastLogin time.Time `db:"last_login"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	UserID       string `json:"user_id"`
	Role         string `json:"role"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair, user userModel.User) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
	l.UserID = user.ID
	l.Role = user.Role.String()
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse = LoginResponse

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6,nefield=CurrentPassword"`
}

type UpdatePassword struct {
	Password string `db:"password"`
}
