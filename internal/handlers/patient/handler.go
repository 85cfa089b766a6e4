package patient

import (
	"medimate/infras/otel"
	"medimate/internal/domains/profile/access"
	"medimate/internal/domains/profile/model"
	"medimate/internal/domains/profile/model/dto"
	"medimate/internal/domains/profile/service"
	"medimate/shared/caller"
	"medimate/shared/constant"
	"medimate/shared/validator"
	"medimate/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Profile[model.Patient]
	linker  access.Linker
	otel    otel.Otel
}

// New takes the booking service as linker so doctors can read the patients they see.
func New(service service.Profile[model.Patient], linker access.Linker, otel otel.Otel) Handler {
	return Handler{
		service: service,
		linker:  linker,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/patients", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePatient)
		routerGroup.Get("/{userId}", handler.GetPatient)
		routerGroup.Patch("/{userId}", handler.UpdatePatient)
		routerGroup.Delete("/{userId}", handler.DeletePatient)
	})
}

// CreatePatient creates the caller's own patient profile.
// @Summary Create my patient profile
// @Tags Patient
// @Accept json
// @Produce json
// @Param request body dto.CreatePatientRequest true "Create Patient Request"
// @Success 201 {object} response.Data[dto.CreateProfileResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/patients [post]
// @Security BearerAuth
func (handler *Handler) CreatePatient(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePatient")
	defer scope.End()

	c, err := caller.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.CreatePatientRequest{}
	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	patient, err := handler.service.Create(ctx, c.UserID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create patient profile")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Patient profile created")

	response.WithJSON(writer, http.StatusCreated, dto.CreateProfileResponse{UserID: patient.UserID})
}

// GetPatient retrieves a patient profile.
// @Summary Get a patient profile
// @Description Staff see every patient, patients see themselves, doctors see patients who booked with them.
// @Tags Patient
// @Produce json
// @Param userId path string true "Patient user ID"
// @Success 200 {object} response.Data[model.Patient]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/patients/{userId} [get]
// @Security BearerAuth
func (handler *Handler) GetPatient(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPatient")
	defer scope.End()

	userID := chi.URLParam(request, constant.RequestParamUserID)

	c, err := caller.Require(ctx)
	if err == nil {
		err = access.CanViewPatient(ctx, c, userID, handler.linker)
	}

	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	patient, err := handler.service.Get(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("userID", userID).Msg("failed to get patient profile")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, patient)
}

// UpdatePatient patches a patient profile.
// @Summary Update a patient profile
// @Tags Patient
// @Accept json
// @Produce json
// @Param userId path string true "Patient user ID"
// @Param request body dto.UpdatePatientRequest true "Update Patient Request"
// @Success 200 {object} response.Data[model.Patient]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/patients/{userId} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePatient(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePatient")
	defer scope.End()

	userID := chi.URLParam(request, constant.RequestParamUserID)

	c, err := caller.Require(ctx)
	if err == nil {
		err = access.CanEditPatient(c, userID)
	}

	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.UpdatePatientRequest{}
	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	patient, err := handler.service.Update(ctx, userID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("userID", userID).Msg("failed to update patient profile")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, patient)
}

// DeletePatient removes a patient profile.
// @Summary Delete a patient profile
// @Tags Patient
// @Produce json
// @Param userId path string true "Patient user ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/patients/{userId} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePatient(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePatient")
	defer scope.End()

	userID := chi.URLParam(request, constant.RequestParamUserID)

	if err := handler.service.Delete(ctx, userID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("userID", userID).Msg("failed to delete patient profile")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Patient profile deleted successfully")
}
