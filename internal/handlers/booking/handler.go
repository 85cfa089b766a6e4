package booking

import (
	"medimate/infras/otel"
	"medimate/internal/domains/booking/model"
	"medimate/internal/domains/booking/model/dto"
	"medimate/internal/domains/booking/service"
	"medimate/shared/constant"
	gDto "medimate/shared/dto"
	"medimate/shared/failure"
	"medimate/shared/validator"
	"medimate/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/patients/{userId}", handler.GetPatientBookings)
		routerGroup.Get("/doctors/{userId}", handler.GetDoctorBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.UpdateBooking)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
		routerGroup.Get("/{id}/doctorNotes", handler.GetDoctorNotes)
		routerGroup.Patch("/{id}/doctorNotes", handler.UpdateDoctorNotes)
	})
}

// statusFilter narrows a listing to one status when the query names a known one.
func statusFilter(request *http.Request) (gDto.FilterGroup, error) {
	value := request.URL.Query().Get(model.FieldStatus)
	if value == "" {
		return gDto.FilterGroup{}, nil
	}

	status, err := model.ParseStatus(value)
	if err != nil {
		return gDto.FilterGroup{}, failure.BadRequest(err)
	}

	return gDto.And(gDto.Eq(model.TableName, model.FieldStatus, status)), nil
}

func listParams(request *http.Request) gDto.QueryParams {
	params := gDto.QueryParams{}
	params.FromRequest(request, true)

	return params
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a booking
// @Description Book a doctor for a patient. The slot must be in the future, 15 or 30 minutes long and free for both.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBookings lists every booking.
// @Summary List bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	filter, err := statusFilter(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.GetAll(ctx, listParams(request), filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetPatientBookings lists the bookings of one patient.
// @Summary List a patient's bookings
// @Tags Booking
// @Produce json
// @Param userId path string true "Patient user ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/patients/{userId} [get]
// @Security BearerAuth
func (handler *Handler) GetPatientBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPatientBookings")
	defer scope.End()

	filter, err := statusFilter(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	userID := chi.URLParam(request, constant.RequestParamUserID)

	res, err := handler.service.GetByPatient(ctx, userID, listParams(request), filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("patientID", userID).Msg("failed to get patient bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetDoctorBookings lists the bookings of one doctor.
// @Summary List a doctor's bookings
// @Tags Booking
// @Produce json
// @Param userId path string true "Doctor user ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/doctors/{userId} [get]
// @Security BearerAuth
func (handler *Handler) GetDoctorBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDoctorBookings")
	defer scope.End()

	filter, err := statusFilter(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	userID := chi.URLParam(request, constant.RequestParamUserID)

	res, err := handler.service.GetByDoctor(ctx, userID, listParams(request), filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("doctorID", userID).Msg("failed to get doctor bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBookingByID retrieves a booking.
// @Summary Get a booking
// @Description Doctor notes are only included for doctors.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("bookingID", id).Msg("failed to get booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateBooking changes status, patient notes or the slot of a booking.
// @Summary Update a booking
// @Description Moving or resizing the slot runs the same checks as creating one.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Update Booking Request"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateBookingRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("bookingID", id).Msg("failed to update booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking updated")

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteBooking removes a booking.
// @Summary Delete a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("bookingID", id).Msg("failed to delete booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking deleted")

	response.WithMessage(writer, http.StatusOK, "Booking deleted successfully")
}

// GetDoctorNotes returns the notes of the booking's doctor.
// @Summary Get doctor notes
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.DoctorNotesResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/doctorNotes [get]
// @Security BearerAuth
func (handler *Handler) GetDoctorNotes(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDoctorNotes")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.GetDoctorNotes(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("bookingID", id).Msg("failed to get doctor notes")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateDoctorNotes replaces the doctor notes of a booking.
// @Summary Update doctor notes
// @Description Only the booking's doctor may write notes. The slot is not re-validated.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateDoctorNotesRequest true "Doctor notes"
// @Success 200 {object} response.Data[dto.DoctorNotesResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/doctorNotes [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDoctorNotes(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDoctorNotes")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateDoctorNotesRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.UpdateDoctorNotes(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("bookingID", id).Msg("failed to update doctor notes")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Doctor notes updated")

	response.WithJSON(writer, http.StatusOK, res)
}
