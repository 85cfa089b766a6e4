package staff

import (
	"medimate/infras/otel"
	"medimate/internal/domains/profile/model"
	"medimate/internal/domains/profile/model/dto"
	"medimate/internal/domains/profile/service"
	userModel "medimate/internal/domains/user/model"
	userDto "medimate/internal/domains/user/model/dto"
	userService "medimate/internal/domains/user/service"
	"medimate/shared/caller"
	"medimate/shared/constant"
	gDto "medimate/shared/dto"
	"medimate/shared/validator"
	"medimate/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Handler serves the staff back office: staff profiles, the patient directory and account administration.
type Handler struct {
	staff    service.Profile[model.Staff]
	patients service.Profile[model.Patient]
	users    userService.User
	otel     otel.Otel
}

func New(staff service.Profile[model.Staff], patients service.Profile[model.Patient], users userService.User, otel otel.Otel) Handler {
	return Handler{
		staff:    staff,
		patients: patients,
		users:    users,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/staff", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetStaffList)
		routerGroup.Post("/", handler.CreateStaff)
		routerGroup.Get("/patients", handler.GetPatients)

		routerGroup.Route("/users", func(users chi.Router) {
			users.Post("/", handler.CreateUser)
			users.Get("/", handler.GetUsers)
			users.Patch("/{userId}/role", handler.UpdateUserRole)
		})

		routerGroup.Get("/{userId}", handler.GetStaff)
		routerGroup.Patch("/{userId}", handler.UpdateStaff)
		routerGroup.Delete("/{userId}", handler.DeleteStaff)
	})
}

func likeFilters(request *http.Request, table string, fields ...string) gDto.FilterGroup {
	filters := []any{}

	for _, field := range fields {
		if value := request.URL.Query().Get(field); value != "" {
			filters = append(filters, gDto.Like(table, field, value))
		}
	}

	return gDto.And(filters...)
}

// GetStaffList lists staff profiles.
// @Summary List staff
// @Tags Staff
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param first_name query string false "Filter by first name"
// @Param last_name query string false "Filter by last name"
// @Success 200 {object} response.Data[dto.ListResponse[model.Staff]]
// @Failure 500 {object} response.Error
// @Router /v1/staff [get]
// @Security BearerAuth
func (handler *Handler) GetStaffList(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStaffList")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(request, true)

	res, err := handler.staff.GetAll(ctx, params, likeFilters(request, model.KindStaff.TableName(), model.FieldFirstName, model.FieldLastName))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get staff")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateStaff creates the caller's own staff profile.
// @Summary Create my staff profile
// @Tags Staff
// @Accept json
// @Produce json
// @Param request body dto.CreateStaffRequest true "Create Staff Request"
// @Success 201 {object} response.Data[dto.CreateProfileResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/staff [post]
// @Security BearerAuth
func (handler *Handler) CreateStaff(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateStaff")
	defer scope.End()

	c, err := caller.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.CreateStaffRequest{}
	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	staff, err := handler.staff.Create(ctx, c.UserID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create staff profile")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Staff profile created")

	response.WithJSON(writer, http.StatusCreated, dto.CreateProfileResponse{UserID: staff.UserID})
}

// GetPatients is the staff patient directory.
// @Summary Search patients
// @Tags Staff
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param first_name query string false "Filter by first name"
// @Param last_name query string false "Filter by last name"
// @Param phone query string false "Filter by phone"
// @Success 200 {object} response.Data[dto.ListResponse[model.Patient]]
// @Failure 500 {object} response.Error
// @Router /v1/staff/patients [get]
// @Security BearerAuth
func (handler *Handler) GetPatients(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPatients")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(request, true)

	filter := likeFilters(request, model.KindPatient.TableName(), model.FieldFirstName, model.FieldLastName, model.FieldPhone)

	res, err := handler.patients.GetAll(ctx, params, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get patients")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetStaff retrieves one staff profile.
// @Summary Get a staff profile
// @Tags Staff
// @Produce json
// @Param userId path string true "Staff user ID"
// @Success 200 {object} response.Data[model.Staff]
// @Failure 404 {object} response.Error
// @Router /v1/staff/{userId} [get]
// @Security BearerAuth
func (handler *Handler) GetStaff(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStaff")
	defer scope.End()

	userID := chi.URLParam(request, constant.RequestParamUserID)

	staff, err := handler.staff.Get(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("userID", userID).Msg("failed to get staff profile")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, staff)
}

// UpdateStaff patches a staff profile.
// @Summary Update a staff profile
// @Tags Staff
// @Accept json
// @Produce json
// @Param userId path string true "Staff user ID"
// @Param request body dto.UpdateStaffRequest true "Update Staff Request"
// @Success 200 {object} response.Data[model.Staff]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/staff/{userId} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStaff(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStaff")
	defer scope.End()

	userID := chi.URLParam(request, constant.RequestParamUserID)

	req := dto.UpdateStaffRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	staff, err := handler.staff.Update(ctx, userID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("userID", userID).Msg("failed to update staff profile")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, staff)
}

// DeleteStaff removes a staff profile.
// @Summary Delete a staff profile
// @Tags Staff
// @Produce json
// @Param userId path string true "Staff user ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/staff/{userId} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteStaff(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteStaff")
	defer scope.End()

	userID := chi.URLParam(request, constant.RequestParamUserID)

	if err := handler.staff.Delete(ctx, userID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("userID", userID).Msg("failed to delete staff profile")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Staff profile deleted successfully")
}

// CreateUser opens an account of any role. The profile is created separately.
// @Summary Create a user account
// @Tags Staff
// @Accept json
// @Produce json
// @Param request body userDto.CreateUserRequest true "Create User Request"
// @Success 201 {object} response.Data[userDto.UserResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/staff/users [post]
// @Security BearerAuth
func (handler *Handler) CreateUser(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateUser")
	defer scope.End()

	req := userDto.CreateUserRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	user, err := handler.users.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create user")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("User created successfully")

	response.WithJSON(writer, http.StatusCreated, user)
}

// GetUsers lists accounts.
// @Summary List user accounts
// @Tags Staff
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param email query string false "Filter by email"
// @Success 200 {object} response.Data[userDto.GetUsersResponse]
// @Failure 500 {object} response.Error
// @Router /v1/staff/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(request, true)

	filter := gDto.And()
	if email := request.URL.Query().Get(userModel.FieldEmail); email != "" {
		filter = userService.EmailFilter(email)
	}

	users, err := handler.users.GetAll(ctx, params, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get users")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, users)
}

// UpdateUserRole changes the role of an account.
// @Summary Change a user's role
// @Tags Staff
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body userDto.UpdateRoleRequest true "Update Role Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/staff/users/{userId}/role [patch]
// @Security BearerAuth
func (handler *Handler) UpdateUserRole(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUserRole")
	defer scope.End()

	userID := chi.URLParam(request, constant.RequestParamUserID)

	req := userDto.UpdateRoleRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.users.UpdateRole(ctx, req, userID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("userID", userID).Msg("failed to update user role")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "User role updated successfully")
}
