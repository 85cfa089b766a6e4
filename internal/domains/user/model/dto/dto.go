package dto

import (
	"medimate/internal/domains/user/model"
	"medimate/shared"
	"medimate/shared/constant"
	gDto "medimate/shared/dto"
	gModel "medimate/shared/model"
	"medimate/shared/role"
	"medimate/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=staff doctor patient"`
}

// ToModel builds an active user. Role must already be validated.
func (r *CreateUserRequest) ToModel(actor, hashedPassword string) model.User {
	userRole, _ := role.Parse(r.Role)

	return NewUser(r.Email, hashedPassword, userRole, actor)
}

// NewUser builds an active user with a fresh id. Emails are stored lower-cased.
func NewUser(email, hashedPassword string, userRole role.Role, actor string) model.User {
	return model.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: hashedPassword,
		Role:     userRole,
		Active:   true,
		Metadata: gModel.NewMetadata(actor, timezone.Now()),
	}
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=staff doctor patient"`
}

type UpdateRole struct {
	Role role.Role `db:"role"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Role = model.Role.String()
	r.LastLogin = timezone.FormatPtr(model.LastLogin, constant.DateFormat)
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
