package service

import (
	"context"
	"errors"
	"fmt"
	"medimate/config"
	"medimate/infras/kafka"
	"medimate/infras/otel"
	"medimate/internal/domains/booking/access"
	"medimate/internal/domains/booking/model"
	"medimate/internal/domains/booking/model/dto"
	"medimate/internal/domains/booking/repository"
	"medimate/shared"
	"medimate/shared/cache"
	"medimate/shared/caller"
	"medimate/shared/constant"
	gDto "medimate/shared/dto"
	"medimate/shared/failure"
	"medimate/shared/timezone"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
)

// SortColumns lists the columns booking listings may be ordered by. The first is the default.
var SortColumns = []string{model.FieldDatetimeStart, model.FieldCreatedAt, model.FieldStatus}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetByPatient(ctx context.Context, patientID string, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetByDoctor(ctx context.Context, doctorID string, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (dto.BookingResponse, error)
	UpdateDoctorNotes(ctx context.Context, id string, req dto.UpdateDoctorNotesRequest) (dto.DoctorNotesResponse, error)
	GetDoctorNotes(ctx context.Context, id string) (dto.DoctorNotesResponse, error)
	Delete(ctx context.Context, id string) error
	Linked(ctx context.Context, doctorID, patientID string) (bool, error)
}

type counters struct {
	created   metric.Int64Counter
	updated   metric.Int64Counter
	deleted   metric.Int64Counter
	conflicts metric.Int64Counter
}

type serviceImpl struct {
	repo      repository.Booking
	validator *Validator
	gate      access.Gate
	cfg       *config.Config
	cache     cache.RedisCache
	kafka     kafka.Client
	otel      otel.Otel
	clock     timezone.Clock
	counters  counters
}

func New(repo repository.Booking, cfg *config.Config, cache cache.RedisCache, kafka kafka.Client, otl otel.Otel) Booking {
	return NewWithClock(repo, cfg, cache, kafka, otl, timezone.Now)
}

// NewWithClock is New with an explicit notion of "now". A nil clock means timezone.Now.
func NewWithClock(repo repository.Booking, cfg *config.Config, cache cache.RedisCache, kafka kafka.Client, otl otel.Otel, clock timezone.Clock) Booking {
	if clock == nil {
		clock = timezone.Now
	}

	meter := otl.Meter("medimate/booking")

	return &serviceImpl{
		repo:      repo,
		validator: NewValidator(repo, clock),
		gate:      access.New(),
		cfg:       cfg,
		cache:     cache,
		kafka:     kafka,
		otel:      otl,
		clock:     clock,
		counters: counters{
			created:   otel.Int64Counter(meter, "bookings.created", "Bookings created"),
			updated:   otel.Int64Counter(meter, "bookings.updated", "Bookings updated or rescheduled"),
			deleted:   otel.Int64Counter(meter, "bookings.deleted", "Bookings deleted"),
			conflicts: otel.Int64Counter(meter, "bookings.conflicts", "Booking writes rejected for an overlapping slot"),
		},
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	c, err := caller.Require(ctx)
	if err != nil {
		return res, err
	}

	if err = s.gate.CanCreateFor(c, req.PatientID); err != nil {
		return res, err //nolint:wrapcheck
	}

	booking, err := s.validator.ValidateAndBuildBooking(ctx, req)
	if err != nil {
		s.countConflict(ctx, err)

		return res, err
	}

	if err = s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrDuplicateStart) {
			s.countConflict(ctx, ErrConflictOnPersist)

			return res, ErrConflictOnPersist
		}

		if errors.Is(err, repository.ErrUnknownParticipant) {
			return res, ErrUnknownPatient
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.counters.created.Add(ctx, 1)
	s.afterWrite(ctx, dto.EventBookingCreated, booking, "")

	res.FromModel(booking)

	return res.Redact(s.gate.SeesDoctorNotes(c)), nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	c, err := caller.Require(ctx)
	if err != nil {
		return res, err
	}

	res, err = s.list(ctx, req, filter)
	if err != nil {
		return res, err
	}

	return res.Redact(s.gate.SeesDoctorNotes(c)), nil
}

func (s *serviceImpl) GetByPatient(ctx context.Context, patientID string, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetByPatient")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	c, err := caller.Require(ctx)
	if err != nil {
		return res, err
	}

	if err = s.gate.CanListPatient(c, patientID); err != nil {
		return res, err //nolint:wrapcheck
	}

	res, err = s.list(ctx, req, gDto.And(repository.OwnerFilter(repository.AxisPatient, patientID), filter))
	if err != nil {
		return res, err
	}

	return res.Redact(s.gate.SeesDoctorNotes(c)), nil
}

func (s *serviceImpl) GetByDoctor(ctx context.Context, doctorID string, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetByDoctor")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	c, err := caller.Require(ctx)
	if err != nil {
		return res, err
	}

	if err = s.gate.CanListDoctor(c, doctorID); err != nil {
		return res, err //nolint:wrapcheck
	}

	res, err = s.list(ctx, req, gDto.And(repository.OwnerFilter(repository.AxisDoctor, doctorID), filter))
	if err != nil {
		return res, err
	}

	return res.Redact(s.gate.SeesDoctorNotes(c)), nil
}

// list serves unredacted pages, from the cache when possible.
func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	req.RestrictSort(SortColumns...)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	c, err := caller.Require(ctx)
	if err != nil {
		return res, err
	}

	res, err = s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.gate.CanView(c, res); err != nil {
		return dto.BookingResponse{}, err //nolint:wrapcheck
	}

	return res.Redact(s.gate.SeesDoctorNotes(c)), nil
}

// load returns the unredacted booking, from the cache when possible.
func (s *serviceImpl) load(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// find reads the booking straight from the store.
func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if !found {
		return booking, ErrBookingNotFound
	}

	return booking, nil
}

// Update applies a general update. Moving or resizing the slot re-runs the validator with
// the booking itself excluded from the overlap checks.
func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	c, err := caller.Require(ctx)
	if err != nil {
		return res, err
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.gate.CanUpdate(c, booking); err != nil {
		return res, err //nolint:wrapcheck
	}

	if req.PatientNotes != nil {
		if err = s.gate.CanWritePatientNotes(c); err != nil {
			return res, err //nolint:wrapcheck
		}
	}

	if req.Status != nil {
		if booking.Status, err = model.ParseStatus(*req.Status); err != nil {
			return res, failure.BadRequest(err) //nolint:wrapcheck
		}
	}

	if req.Reschedules() {
		start, duration := req.Slot(booking)

		if err = s.validator.ValidateReschedule(ctx, booking, start, duration); err != nil {
			s.countConflict(ctx, err)

			return res, err
		}

		booking.DatetimeStart, booking.DurationMinutes = start, duration
	}

	if req.PatientNotes != nil {
		booking.PatientNotes = req.PatientNotes
	}

	booking.Touch(c.UserID, s.clock())

	fields := map[string]any{
		model.FieldStatus:          booking.Status,
		model.FieldDatetimeStart:   booking.DatetimeStart,
		model.FieldDurationMinutes: booking.DurationMinutes,
		model.FieldPatientNotes:    booking.PatientNotes,
		constant.FieldModifiedAt:   booking.ModifiedAt,
		constant.FieldModifiedBy:   booking.ModifiedBy,
	}

	if err = s.write(ctx, id, fields); err != nil {
		return res, err
	}

	s.counters.updated.Add(ctx, 1)
	s.afterWrite(ctx, dto.EventBookingUpdated, booking, id)

	res.FromModel(booking)

	return res.Redact(s.gate.SeesDoctorNotes(c)), nil
}

// UpdateDoctorNotes writes the notes column only. The slot is not re-validated.
func (s *serviceImpl) UpdateDoctorNotes(ctx context.Context, id string, req dto.UpdateDoctorNotesRequest) (res dto.DoctorNotesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateDoctorNotes")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	c, err := caller.Require(ctx)
	if err != nil {
		return res, err
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.gate.CanManageDoctorNotes(c, booking); err != nil {
		return res, err //nolint:wrapcheck
	}

	booking.DoctorNotes = req.DoctorNotes
	booking.Touch(c.UserID, s.clock())

	fields := map[string]any{
		model.FieldDoctorNotes:   booking.DoctorNotes,
		constant.FieldModifiedAt: booking.ModifiedAt,
		constant.FieldModifiedBy: booking.ModifiedBy,
	}

	if err = s.write(ctx, id, fields); err != nil {
		return res, err
	}

	s.afterWrite(ctx, dto.EventBookingUpdated, booking, id)

	return dto.DoctorNotesResponse{BookingID: id, DoctorNotes: booking.DoctorNotes}, nil
}

func (s *serviceImpl) GetDoctorNotes(ctx context.Context, id string) (res dto.DoctorNotesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetDoctorNotes")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	c, err := caller.Require(ctx)
	if err != nil {
		return res, err
	}

	booking, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.gate.CanManageDoctorNotes(c, booking); err != nil {
		return res, err //nolint:wrapcheck
	}

	return dto.DoctorNotesResponse{BookingID: id, DoctorNotes: booking.DoctorNotes}, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	c, err := caller.Require(ctx)
	if err != nil {
		return err
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.gate.CanDelete(c, booking); err != nil {
		return err //nolint:wrapcheck
	}

	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if !deleted {
		return ErrBookingNotFound
	}

	s.counters.deleted.Add(ctx, 1)
	s.afterWrite(ctx, dto.EventBookingDeleted, booking, id)

	return nil
}

// Linked reports whether doctorID has ever been booked by patientID.
func (s *serviceImpl) Linked(ctx context.Context, doctorID, patientID string) (linked bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Linked")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	linked, err = s.repo.Exist(ctx, gDto.And(
		gDto.Eq(model.TableName, model.FieldDoctorID, doctorID),
		gDto.Eq(model.TableName, model.FieldPatientID, patientID),
	))
	if err != nil {
		log.Error().Err(err).Msg("failed to check doctor and patient bookings")

		return false, fmt.Errorf("failed to check doctor and patient bookings: %w", err)
	}

	return linked, nil
}

func (s *serviceImpl) write(ctx context.Context, id string, fields map[string]any) error {
	found, err := s.repo.UpdateByID(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateStart) {
			s.countConflict(ctx, ErrConflictOnPersist)

			return ErrConflictOnPersist
		}

		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	if !found {
		return ErrBookingNotFound
	}

	return nil
}

// afterWrite drops stale cache entries and publishes the event. Both run detached from the request.
func (s *serviceImpl) afterWrite(ctx context.Context, eventType string, booking model.Booking, id string) {
	detached := context.WithoutCancel(ctx)
	event := dto.NewBookingEvent(eventType, booking, caller.Actor(ctx), s.clock())

	go func() {
		if id != "" {
			if err := s.cache.Delete(detached, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking from cache")
			}
		}

		shared.InvalidateCaches(detached, s.cache, cacheGetAllBooking)
	}()

	go func() {
		message := kafka.Message{Key: booking.DoctorID, Value: event}

		if err := s.kafka.SendMessages(detached, s.cfg.Kafka.Topics.Booking, message); err != nil {
			log.Error().Err(err).Str("event", eventType).Str("booking", booking.ID).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) countConflict(ctx context.Context, err error) {
	var reason string

	switch {
	case errors.Is(err, ErrDoctorSlotTaken):
		reason = "doctor"
	case errors.Is(err, ErrPatientSlotTaken):
		reason = "patient"
	case errors.Is(err, ErrConflictOnPersist):
		reason = "persist"
	default:
		return
	}

	s.counters.conflicts.Add(ctx, 1, metric.WithAttributes(attribute.String("axis", reason)))
}
