package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Appointment=MockAppointmentService

import (
	"context"
	"errors"
	"fmt"
	"garage/config"
	"garage/infras/metrics"
	"garage/infras/otel"
	"garage/internal/domains/appointment/model"
	"garage/internal/domains/appointment/model/dto"
	"garage/internal/domains/appointment/repository"
	"garage/internal/domains/appointment/schedule"
	"garage/internal/domains/catalog"
	notificationModel "garage/internal/domains/notification/model"
	notification "garage/internal/domains/notification/service"
	"garage/shared"
	"garage/shared/cache"
	"garage/shared/constant"
	gDto "garage/shared/dto"
	"garage/shared/failure"
	gRepo "garage/shared/repository"
	"garage/shared/timezone"
	"garage/shared/validator"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAppointment    = "appointment:get"
	cacheGetAllAppointment = "appointment:gets"
	cacheCountAppointment  = "appointment:count"
	cacheAvailability      = "appointment:availability"

	// cacheAvailabilityRevision holds a per-day token that every write replaces. Availability keys
	// embed it, so a result computed before a write can never be served after it.
	cacheAvailabilityRevision = "appointment:availability-revision"
	initialRevision           = "0"
	availabilityRevisionTTL   = 24 * 60 * 60
	defaultAvailabilityTTL    = 60
)

const (
	slotTakenPrecheck   = "precheck"
	slotTakenConstraint = "constraint"
)

type Appointment interface {
	Create(ctx context.Context, req dto.CreateAppointmentRequest) (dto.AppointmentResponse, error)
	Availability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	Get(ctx context.Context, id string) (dto.AppointmentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAppointmentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id string) (dto.AppointmentResponse, error)
	Reschedule(ctx context.Context, id string, req dto.RescheduleRequest) (dto.AppointmentResponse, error)
	SendReminders(ctx context.Context, date string) (int, error)
}

type serviceImpl struct {
	repo      repository.Appointment
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	catalog   *catalog.Catalog
	grid      schedule.Grid
	publisher notification.Publisher
	metrics   *metrics.Metrics
}

func New(
	repo repository.Appointment,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	catalog *catalog.Catalog,
	publisher notification.Publisher,
	metrics *metrics.Metrics,
) Appointment {
	grid, err := schedule.GridFromConfig(cfg)
	if err != nil {
		log.Error().Err(err).Msg("invalid booking grid configuration, using the default grid")

		grid = schedule.DefaultGrid()
	}

	return &serviceImpl{
		repo:      repo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		catalog:   catalog,
		grid:      grid,
		publisher: publisher,
		metrics:   metrics,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAppointmentRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	appointment, err := req.ToModel(shared.ActorFromContext(ctx))
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = s.validateSlot(appointment.Date, appointment.Time, appointment.Location); err != nil {
		return res, err
	}

	day := appointment.Date.Format(constant.DayFormat)

	if err = s.ensureFree(ctx, day, appointment.Location, appointment.Time, appointment.Service, ""); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, appointment); err != nil {
		if gRepo.IsUniqueViolation(err) {
			log.Warn().Str("date", day).Str("location", appointment.Location).Str("time", appointment.Time).Msg("slot taken by a concurrent booking")
			s.metrics.SlotTaken(appointment.Location, slotTakenConstraint)

			return res, failure.SlotTakenError
		}

		log.Error().Err(err).Msg("failed to create appointment")

		return res, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.metrics.AppointmentCreated(appointment.Location, appointment.Service)
	s.afterWrite(ctx, appointment, notificationModel.EventAppointmentBooked, day)

	res.FromModel(appointment)

	return res, nil
}

func (s *serviceImpl) Availability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	if !s.knownLocation(req.Location) {
		return res, failure.BadRequestFromString("unknown location: " + req.Location) // nolint:wrapcheck
	}

	revision, cacheable := s.availabilityRevision(ctx, req.Date)
	cacheKey := shared.BuildCacheKey(cacheAvailability, req.Date, req.Location, req.Service, revision)

	if cacheable {
		if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
			log.Info().Str("cacheKey", cacheKey).Msg("cache hit for availability")
			s.metrics.AvailabilityServed(true, false)

			return res, nil
		}
	}

	booked, complete := s.fetchBooked(ctx, req.Date, req.Location)

	bay := s.catalog.BayOf(req.Service)
	slotCount := s.catalog.SlotCount(req.Service)
	blocked := schedule.BlockedSlots(toBooked(booked), bay, slotCount, s.grid, s.grid.ClosingMinute(), s.catalog)

	if req.Date == timezone.Today().Format(constant.DayFormat) {
		blocked = s.blockStarted(blocked)
	}

	res = dto.AvailabilityResponse{
		Date:      req.Date,
		Location:  req.Location,
		Service:   req.Service,
		Bay:       bay,
		SlotCount: slotCount,
		Degraded:  !complete,
	}
	res.SetSlots(s.grid.Labels(), blocked)

	s.metrics.AvailabilityServed(false, res.Degraded)

	if res.Degraded || !cacheable {
		return res, nil
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.availabilityTTL()); err != nil {
			log.Error().Err(err).Msg("failed to save availability to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetAppointment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment")

		return res, nil
	}

	appointment, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(appointment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAppointment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointments")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments")

		return res, fmt.Errorf("failed to get appointments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountAppointment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	return s.transition(ctx, id, req.Status)
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.transition(ctx, id, model.StatusCancelled)
}

func (s *serviceImpl) Reschedule(ctx context.Context, id string, req dto.RescheduleRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reschedule")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Location = strings.TrimSpace(req.Location)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !model.CanReschedule(current.Status) {
		return res, failure.Conflict("a cancelled appointment cannot be rescheduled") // nolint:wrapcheck
	}

	updated := current
	if req.Location != "" {
		updated.Location = req.Location
	}

	if updated.Date, err = timezone.ParseDay(req.Date); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if updated.Time, err = schedule.NormalizeLabel(req.Time); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = s.validateSlot(updated.Date, updated.Time, updated.Location); err != nil {
		return res, err
	}

	oldDay := current.Date.Format(constant.DayFormat)
	newDay := updated.Date.Format(constant.DayFormat)

	exclude := ""
	if oldDay == newDay && current.Location == updated.Location {
		exclude = current.Time
	}

	if err = s.ensureFree(ctx, newDay, updated.Location, updated.Time, updated.Service, exclude); err != nil {
		return res, err
	}

	actor := shared.ActorFromContext(ctx)

	fields, err := req.Fields(actor)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if gRepo.IsUniqueViolation(err) {
			s.metrics.SlotTaken(updated.Location, slotTakenConstraint)

			return res, failure.SlotTakenError
		}

		log.Error().Err(err).Msg("failed to reschedule appointment")

		return res, fmt.Errorf("failed to reschedule appointment: %w", err)
	}

	updated.Status = model.StatusRescheduled
	updated.ModifiedBy = actor
	updated.ModifiedAt = timezone.Now()

	s.afterWrite(ctx, updated, notificationModel.EventAppointmentRescheduled, oldDay, newDay)

	res.FromModel(updated)

	return res, nil
}

// SendReminders publishes a reminder for every appointment on date that is not cancelled.
func (s *serviceImpl) SendReminders(ctx context.Context, date string) (sent int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SendReminders")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateVar(date, "isodate"); err != nil {
		return 0, err
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldDate, Operator: gDto.FilterOperatorEq, Value: date, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorNotEq, Value: model.StatusCancelled, Table: model.TableName},
		},
	}

	appointments, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("failed to load appointments for reminders")

		return 0, fmt.Errorf("failed to load appointments for reminders: %w", err)
	}

	if len(appointments) == 0 {
		return 0, nil
	}

	events := make([]notificationModel.Event, len(appointments))
	for i, appointment := range appointments {
		events[i] = notificationModel.NewEvent(notificationModel.EventAppointmentReminder, appointment)
	}

	if err = s.publisher.Publish(ctx, events...); err != nil {
		return 0, fmt.Errorf("failed to publish reminders: %w", err)
	}

	scope.SetAttribute("reminders", len(events))

	return len(events), nil
}

func (s *serviceImpl) transition(ctx context.Context, id, status string) (res dto.AppointmentResponse, err error) {
	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !model.CanTransition(current.Status, status) {
		return res, failure.Conflict(fmt.Sprintf("cannot change status from %s to %s", current.Status, status)) // nolint:wrapcheck
	}

	actor := shared.ActorFromContext(ctx)
	fields := shared.TransformFields(statusFields{Status: status}, actor)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update appointment status")

		return res, fmt.Errorf("failed to update appointment status: %w", err)
	}

	current.Status = status
	current.ModifiedBy = actor
	current.ModifiedAt = timezone.Now()

	if eventType, ok := notificationModel.EventForStatus(status); ok {
		s.afterWrite(ctx, current, eventType, current.Date.Format(constant.DayFormat))
	}

	res.FromModel(current)

	return res, nil
}

type statusFields struct {
	Status string `db:"status"`
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Appointment, error) {
	if err := validator.ValidateVar(id, "uuid"); err != nil {
		return model.Appointment{}, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return appointment, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return appointment, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	return appointment, nil
}

// fetchBooked fails open: on a storage error the day is reported empty and complete is false.
func (s *serviceImpl) fetchBooked(ctx context.Context, date, location string) (booked []model.BookedSlot, complete bool) {
	booked, err := s.repo.FetchBooked(ctx, date, location)
	if err != nil {
		log.Error().Err(err).Str("date", date).Str("location", location).Msg("failed to fetch booked slots, treating day as free")
		s.metrics.AvailabilityFetchError()

		return []model.BookedSlot{}, false
	}

	return booked, true
}

// ensureFree rejects label when another appointment already starts there. With the strict overlap flag
// it also rejects labels the blocked-slot calculation marks for the service's bay. exclude drops one
// booked start time, used when an appointment is rescheduled within the same day.
func (s *serviceImpl) ensureFree(ctx context.Context, date, location, label, service, exclude string) error {
	booked, _ := s.fetchBooked(ctx, date, location)

	if exclude != "" {
		booked = slices.DeleteFunc(booked, func(slot model.BookedSlot) bool {
			return slot.Time == exclude
		})
	}

	for _, slot := range booked {
		if normalized, err := schedule.NormalizeLabel(slot.Time); err == nil && normalized == label {
			s.metrics.SlotTaken(location, slotTakenPrecheck)

			return failure.SlotTakenError
		}
	}

	if !s.cfg.Booking.StrictOverlapCheck {
		return nil
	}

	blocked := schedule.BlockedSlots(toBooked(booked), s.catalog.BayOf(service), s.catalog.SlotCount(service), s.grid, s.grid.ClosingMinute(), s.catalog)
	if slices.Contains(blocked, label) {
		s.metrics.SlotTaken(location, slotTakenPrecheck)

		return failure.SlotTakenError
	}

	return nil
}

// validateSlot checks the location is served, the label is on the grid and the slot has not started yet.
func (s *serviceImpl) validateSlot(date time.Time, label, location string) error {
	if !s.knownLocation(location) {
		return failure.BadRequestFromString("unknown location: " + location) // nolint:wrapcheck
	}

	if !s.grid.Contains(label) {
		return failure.BadRequestFromString("time " + label + " is outside opening hours") // nolint:wrapcheck
	}

	today := timezone.Today()
	day := timezone.StartOfDay(date)

	if day.Before(today) {
		return failure.BadRequestFromString("date is in the past") // nolint:wrapcheck
	}

	if day.Equal(today) {
		minute, _ := schedule.ParseLabel(label)
		now := timezone.Now()

		if minute <= now.Hour()*constant.MinutesInHour+now.Minute() {
			return failure.BadRequestFromString("time " + label + " has already passed") // nolint:wrapcheck
		}
	}

	return nil
}

// availabilityRevision reads the day's revision token. cacheable is false when the token cannot be read,
// in which case the availability cache is bypassed entirely.
func (s *serviceImpl) availabilityRevision(ctx context.Context, date string) (revision string, cacheable bool) {
	err := s.cache.Get(ctx, shared.BuildCacheKey(cacheAvailabilityRevision, date), &revision)

	switch {
	case err == nil:
		return revision, true
	case errors.Is(err, cache.Nil):
		return initialRevision, true
	default:
		log.Warn().Err(err).Str("date", date).Msg("failed to read availability revision, skipping cache")

		return "", false
	}
}

// bumpAvailability replaces the revision token of each day so cached availability for it is never read again.
func (s *serviceImpl) bumpAvailability(ctx context.Context, days ...string) {
	for _, day := range slices.Compact(days) {
		key := shared.BuildCacheKey(cacheAvailabilityRevision, day)

		if err := s.cache.Save(ctx, key, uuid.NewString(), availabilityRevisionTTL); err != nil {
			log.Error().Err(err).Str("date", day).Msg("failed to bump availability revision")
		}
	}
}

func (s *serviceImpl) availabilityTTL() int {
	if s.cfg.Cache.AvailabilityTTL <= 0 {
		return defaultAvailabilityTTL
	}

	return s.cfg.Cache.AvailabilityTTL
}

// blockStarted adds the labels that have already started today, keeping grid order.
func (s *serviceImpl) blockStarted(blocked []string) []string {
	now := timezone.Now()
	started := s.grid.StartedBy(now.Hour()*constant.MinutesInHour + now.Minute())

	if len(started) == 0 {
		return blocked
	}

	merged := make([]string, 0, s.grid.Len())

	for _, label := range s.grid.Labels() {
		if slices.Contains(started, label) || slices.Contains(blocked, label) {
			merged = append(merged, label)
		}
	}

	return merged
}

func (s *serviceImpl) knownLocation(location string) bool {
	if len(s.cfg.Booking.Locations) == 0 {
		return location != ""
	}

	return slices.Contains(s.cfg.Booking.Locations, location)
}

// afterWrite bumps the availability revision of days before returning, then drops the caches the write
// touches and publishes event in the background. days are the calendar days whose availability changed.
// Failures are logged only.
func (s *serviceImpl) afterWrite(ctx context.Context, appointment model.Appointment, eventType string, days ...string) {
	event := notificationModel.NewEvent(eventType, appointment)

	s.bumpAvailability(ctx, days...)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAppointment, appointment.ID)); err != nil {
			log.Error().Err(err).Str("id", appointment.ID).Msg("failed to invalidate appointment cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)

		for _, day := range slices.Compact(days) {
			shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheAvailability, day))
		}

		if err := s.publisher.Publish(c, event); err != nil {
			log.Error().Err(err).Str("type", eventType).Str("id", appointment.ID).Msg("failed to publish appointment event")
		}
	}()
}

func toBooked(slots []model.BookedSlot) []schedule.Booked {
	booked := make([]schedule.Booked, len(slots))
	for i, slot := range slots {
		booked[i] = schedule.Booked{Time: slot.Time, Service: slot.Service}
	}

	return booked
}
