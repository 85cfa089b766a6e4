package service

import (
	"context"
	"fmt"
	"medimate/config"
	"medimate/infras/otel"
	"medimate/internal/domains/profile/model"
	"medimate/internal/domains/profile/model/dto"
	"medimate/internal/domains/profile/repository"
	"medimate/shared"
	"medimate/shared/cache"
	"medimate/shared/caller"
	"medimate/shared/constant"
	gDto "medimate/shared/dto"
	"medimate/shared/failure"
	"medimate/shared/timezone"
	"net/http"

	"github.com/rs/zerolog/log"
)

var (
	ErrProfileExists   = failure.New(http.StatusConflict, "profile already exists")
	ErrProfileNotFound = failure.New(http.StatusNotFound, "profile not found")
	ErrProfileConflict = failure.New(http.StatusConflict, "profile conflicts with an existing record")
	ErrUnknownUser     = failure.New(http.StatusNotFound, "user not found")
)

// Profile is the CRUD surface shared by every profile kind.
type Profile[T model.Profile] interface {
	Create(ctx context.Context, userID string, req dto.Creator[T]) (T, error)
	Get(ctx context.Context, userID string) (T, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.ListResponse[T], error)
	Update(ctx context.Context, userID string, req dto.Patcher[T]) (T, error)
	Delete(ctx context.Context, userID string) error
}

type serviceImpl[T model.Profile] struct {
	repo  repository.Profile[T]
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	kind  model.Kind
}

func New[T model.Profile](repo repository.Profile[T], cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Profile[T] {
	var zero T

	return &serviceImpl[T]{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		kind:  zero.Kind(),
	}
}

func NewDoctor(repo repository.Profile[model.Doctor], cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Profile[model.Doctor] {
	return New(repo, cfg, cache, otel)
}

func NewPatient(repo repository.Profile[model.Patient], cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Profile[model.Patient] {
	return New(repo, cfg, cache, otel)
}

func NewStaff(repo repository.Profile[model.Staff], cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Profile[model.Staff] {
	return New(repo, cfg, cache, otel)
}

func (s *serviceImpl[T]) spanName(op string) string {
	return fmt.Sprintf("%s.%s.%s", constant.OtelServiceScopeName, s.kind.EntityName(), op)
}

func (s *serviceImpl[T]) cachePrefix(op string) string {
	return "profile:" + string(s.kind) + ":" + op
}

func (s *serviceImpl[T]) byUser(userID string) gDto.FilterGroup {
	return shared.FilterByID(userID, model.FieldUserID, s.kind.TableName())
}

func (s *serviceImpl[T]) Create(ctx context.Context, userID string, req dto.Creator[T]) (res T, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, s.spanName("Create"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exists, err := s.repo.Exist(ctx, s.byUser(userID))
	if err != nil {
		log.Error().Err(err).Str("kind", string(s.kind)).Msg("failed to check if profile exists")

		return res, fmt.Errorf("failed to check if profile exists: %w", err)
	}

	if exists {
		return res, ErrProfileExists
	}

	profile, err := req.ToModel(userID, caller.Actor(ctx))
	if err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, profile); err != nil {
		switch {
		case shared.IsPqError(err, constant.PqErrorCodeUniqueViolation):
			return res, ErrProfileConflict
		case shared.IsPqError(err, constant.PqErrorCodeFkViolation):
			return res, ErrUnknownUser
		}

		log.Error().Err(err).Str("kind", string(s.kind)).Msg("failed to create profile")

		return res, fmt.Errorf("failed to create profile: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), "")

	return profile, nil
}

func (s *serviceImpl[T]) Get(ctx context.Context, userID string) (res T, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, s.spanName("Get"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(s.cachePrefix("get"), userID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, found, err := s.repo.Get(ctx, s.byUser(userID))
	if err != nil {
		log.Error().Err(err).Str("kind", string(s.kind)).Msg("failed to get profile")

		return res, fmt.Errorf("failed to get profile: %w", err)
	}

	if !found {
		return res, ErrProfileNotFound
	}

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save profile to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl[T]) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.ListResponse[T], err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, s.spanName("GetAll"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.RestrictSort(s.kind.SortColumns()...)

	cacheKey := shared.BuildCacheKeyWithQuery(s.cachePrefix("gets"), req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("kind", string(s.kind)).Msg("failed to count profiles")

		return res, fmt.Errorf("failed to count profiles: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Str("kind", string(s.kind)).Msg("failed to get profiles")

		return res, fmt.Errorf("failed to get profiles: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save profiles to cache")
		}
	}()

	return res, nil
}

// Update reads the current row, merges req into it and rewrites every mutable column.
func (s *serviceImpl[T]) Update(ctx context.Context, userID string, req dto.Patcher[T]) (res T, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, s.spanName("Update"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, found, err := s.repo.Get(ctx, s.byUser(userID))
	if err != nil {
		log.Error().Err(err).Str("kind", string(s.kind)).Msg("failed to get profile")

		return res, fmt.Errorf("failed to get profile: %w", err)
	}

	if !found {
		return res, ErrProfileNotFound
	}

	now := timezone.Now()
	actor := caller.Actor(ctx)

	merged, err := req.Patch(current, actor, now)
	if err != nil {
		return res, err
	}

	fields := merged.Mutable()
	fields[constant.FieldModifiedAt] = now
	fields[constant.FieldModifiedBy] = actor

	updated, err := s.repo.Update(ctx, fields, s.byUser(userID))
	if err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, ErrProfileConflict
		}

		log.Error().Err(err).Str("kind", string(s.kind)).Msg("failed to update profile")

		return res, fmt.Errorf("failed to update profile: %w", err)
	}

	if updated == 0 {
		return res, ErrProfileNotFound
	}

	go s.invalidate(context.WithoutCancel(ctx), userID)

	return merged, nil
}

func (s *serviceImpl[T]) Delete(ctx context.Context, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, s.spanName("Delete"))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	deleted, err := s.repo.Delete(ctx, s.byUser(userID))
	if err != nil {
		log.Error().Err(err).Str("kind", string(s.kind)).Msg("failed to delete profile")

		return fmt.Errorf("failed to delete profile: %w", err)
	}

	if deleted == 0 {
		return ErrProfileNotFound
	}

	go s.invalidate(context.WithoutCancel(ctx), userID)

	return nil
}

func (s *serviceImpl[T]) invalidate(ctx context.Context, userID string) {
	if userID != "" {
		if err := s.cache.Delete(ctx, shared.BuildCacheKey(s.cachePrefix("get"), userID)); err != nil {
			log.Error().Err(err).Msg("failed to delete profile from cache")
		}
	}

	shared.InvalidateCaches(ctx, s.cache, s.cachePrefix("gets"))
}
