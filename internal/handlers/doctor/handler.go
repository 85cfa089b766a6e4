package doctor

import (
	"medimate/infras/otel"
	"medimate/internal/domains/profile/access"
	"medimate/internal/domains/profile/model"
	"medimate/internal/domains/profile/model/dto"
	"medimate/internal/domains/profile/service"
	"medimate/shared/caller"
	"medimate/shared/constant"
	gDto "medimate/shared/dto"
	"medimate/shared/validator"
	"medimate/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Profile[model.Doctor]
	otel    otel.Otel
}

func New(service service.Profile[model.Doctor], otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/doctors", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetDoctors)
		routerGroup.Post("/", handler.CreateDoctor)
		routerGroup.Get("/{userId}", handler.GetDoctor)
		routerGroup.Patch("/{userId}", handler.UpdateDoctor)
		routerGroup.Delete("/{userId}", handler.DeleteDoctor)
	})
}

// GetDoctors lists doctor profiles.
// @Summary List doctors
// @Tags Doctor
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param first_name query string false "Filter by first name, case-insensitive substring"
// @Param last_name query string false "Filter by last name, case-insensitive substring"
// @Success 200 {object} response.Data[dto.ListResponse[model.Doctor]]
// @Failure 500 {object} response.Error
// @Router /v1/doctors [get]
// @Security BearerAuth
func (handler *Handler) GetDoctors(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDoctors")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(request, true)

	filters := []any{}

	for _, field := range []string{model.FieldFirstName, model.FieldLastName} {
		if value := request.URL.Query().Get(field); value != "" {
			filters = append(filters, gDto.Like(model.KindDoctor.TableName(), field, value))
		}
	}

	res, err := handler.service.GetAll(ctx, params, gDto.And(filters...))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get doctors")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateDoctor creates the profile of an existing doctor account.
// @Summary Create a doctor profile
// @Tags Doctor
// @Accept json
// @Produce json
// @Param request body dto.CreateDoctorRequest true "Create Doctor Request"
// @Success 201 {object} response.Data[dto.CreateProfileResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/doctors [post]
// @Security BearerAuth
func (handler *Handler) CreateDoctor(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDoctor")
	defer scope.End()

	req := dto.CreateDoctorRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	doctor, err := handler.service.Create(ctx, req.UserID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create doctor profile")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Doctor profile created")

	response.WithJSON(writer, http.StatusCreated, dto.CreateProfileResponse{UserID: doctor.UserID})
}

// GetDoctor retrieves one doctor profile. Doctors may only read their own.
// @Summary Get a doctor profile
// @Tags Doctor
// @Produce json
// @Param userId path string true "Doctor user ID"
// @Success 200 {object} response.Data[model.Doctor]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/doctors/{userId} [get]
// @Security BearerAuth
func (handler *Handler) GetDoctor(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDoctor")
	defer scope.End()

	userID := chi.URLParam(request, constant.RequestParamUserID)

	c, err := caller.Require(ctx)
	if err == nil {
		err = access.CanViewDoctor(c, userID)
	}

	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	doctor, err := handler.service.Get(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("userID", userID).Msg("failed to get doctor profile")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, doctor)
}

// UpdateDoctor patches a doctor profile.
// @Summary Update a doctor profile
// @Tags Doctor
// @Accept json
// @Produce json
// @Param userId path string true "Doctor user ID"
// @Param request body dto.UpdateDoctorRequest true "Update Doctor Request"
// @Success 200 {object} response.Data[model.Doctor]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/doctors/{userId} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDoctor(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDoctor")
	defer scope.End()

	userID := chi.URLParam(request, constant.RequestParamUserID)

	c, err := caller.Require(ctx)
	if err == nil {
		err = access.CanEditDoctor(c, userID)
	}

	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateDoctorRequest{}
	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	doctor, err := handler.service.Update(ctx, userID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("userID", userID).Msg("failed to update doctor profile")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, doctor)
}

// DeleteDoctor removes a doctor profile.
// @Summary Delete a doctor profile
// @Tags Doctor
// @Produce json
// @Param userId path string true "Doctor user ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/doctors/{userId} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDoctor(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDoctor")
	defer scope.End()

	userID := chi.URLParam(request, constant.RequestParamUserID)

	if err := handler.service.Delete(ctx, userID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("userID", userID).Msg("failed to delete doctor profile")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Doctor profile deleted successfully")
}
