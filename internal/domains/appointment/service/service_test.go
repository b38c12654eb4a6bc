package service_test

import (
	"context"
	"errors"
	"garage/config"
	otelMocks "garage/infras/otel/mocks"
	"garage/internal/domains/appointment/mocks"
	"garage/internal/domains/appointment/model"
	"garage/internal/domains/appointment/model/dto"
	"garage/internal/domains/appointment/schedule"
	"garage/internal/domains/appointment/service"
	"garage/internal/domains/catalog"
	notificationMocks "garage/internal/domains/notification/mocks"
	notificationModel "garage/internal/domains/notification/model"
	"garage/shared/cache"
	cacheMocks "garage/shared/cache/mocks"
	"garage/shared/constant"
	gDto "garage/shared/dto"
	"garage/shared/failure"
	gModel "garage/shared/model"
	"garage/shared/timezone"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	location      = "nagytarcsa"
	appointmentID = "6f1c2a4e-8a57-4a53-9a43-2f4f0f3f8d11"
)

type fixture struct {
	repo      *mocks.MockAppointment
	cache     *cacheMocks.MockRedisCache
	publisher *notificationMocks.MockPublisher
	service   service.Appointment
}

func newConfig(strict bool) *config.Config {
	cfg := &config.Config{}
	cfg.Booking.Locations = []string{location, "budaors"}
	cfg.Booking.StrictOverlapCheck = strict
	cfg.Cache.TTL = 60
	cfg.Cache.AvailabilityTTL = 30

	return cfg
}

func newFixture(t *testing.T, strict bool) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	services, err := catalog.New()
	require.NoError(t, err)

	f := fixture{
		repo:      mocks.NewMockAppointment(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		publisher: notificationMocks.NewMockPublisher(ctrl),
	}
	f.service = service.New(f.repo, newConfig(strict), f.cache, otelMocks.NewOtel(), services, f.publisher, nil)

	return f
}

// expectAsync allows the cache writes and event publishing done after a response is returned.
func (f fixture) expectAsync() {
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func futureDay() string {
	return timezone.Today().AddDate(0, 0, 7).Format(constant.DayFormat)
}

func createRequest(day, slot, svc string) dto.CreateAppointmentRequest {
	return dto.CreateAppointmentRequest{
		Service:  svc,
		Vehicle:  "ABC-123 Skoda Octavia",
		Date:     day,
		Time:     slot,
		Location: location,
		Name:     "Kiss Anna",
		Email:    "anna@example.com",
		Phone:    "+36301234567",
	}
}

func existing(status string) model.Appointment {
	day, _ := timezone.ParseDay(futureDay())

	return model.Appointment{
		ID:       appointmentID,
		Service:  "wheel-alignment",
		Vehicle:  "ABC-123",
		Date:     day,
		Time:     "10:00",
		Location: location,
		Name:     "Kiss Anna",
		Email:    "anna@example.com",
		Phone:    "+36301234567",
		Status:   status,
		Metadata: gModel.Metadata{CreatedBy: constant.ActorCustomer},
	}
}

func TestService_Create(t *testing.T) {
	day := futureDay()

	tests := []struct {
		name     string
		strict   bool
		req      dto.CreateAppointmentRequest
		setup    func(f fixture)
		wantCode int
		wantTime string
	}{
		{
			name: "success",
			req:  createRequest(day, "10:00", "oil-change"),
			setup: func(f fixture) {
				f.repo.EXPECT().FetchBooked(gomock.Any(), day, location).
					Return([]model.BookedSlot{{Time: "11:00", Service: "oil-change"}}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantTime: "10:00",
		},
		{
			name: "zero padded time is normalized",
			req:  createRequest(day, "09:30", "oil-change"),
			setup: func(f fixture) {
				f.repo.EXPECT().FetchBooked(gomock.Any(), day, location).Return([]model.BookedSlot{}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, m model.Appointment) error {
						assert.Equal(t, "9:30", m.Time)
						assert.Equal(t, model.StatusPending, m.Status)

						return nil
					})
			},
			wantTime: "9:30",
		},
		{
			name: "precheck rejects booked start time",
			req:  createRequest(day, "10:00", "oil-change"),
			setup: func(f fixture) {
				f.repo.EXPECT().FetchBooked(gomock.Any(), day, location).
					Return([]model.BookedSlot{{Time: "10:00", Service: "ac-service"}}, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "unique violation maps to slot taken",
			req:  createRequest(day, "10:00", "oil-change"),
			setup: func(f fixture) {
				f.repo.EXPECT().FetchBooked(gomock.Any(), day, location).Return([]model.BookedSlot{}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "storage error on insert",
			req:  createRequest(day, "10:00", "oil-change"),
			setup: func(f fixture) {
				f.repo.EXPECT().FetchBooked(gomock.Any(), day, location).Return([]model.BookedSlot{}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "fetch failure fails open",
			req:  createRequest(day, "10:00", "oil-change"),
			setup: func(f fixture) {
				f.repo.EXPECT().FetchBooked(gomock.Any(), day, location).Return(nil, errors.New("timeout"))
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantTime: "10:00",
		},
		{
			name: "overlap allowed without strict check",
			req:  createRequest(day, "9:00", "full-service"),
			setup: func(f fixture) {
				f.repo.EXPECT().FetchBooked(gomock.Any(), day, location).
					Return([]model.BookedSlot{{Time: "10:00", Service: "wheel-alignment"}}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantTime: "9:00",
		},
		{
			name:   "strict check rejects overlapping span",
			strict: true,
			req:    createRequest(day, "9:00", "full-service"),
			setup: func(f fixture) {
				f.repo.EXPECT().FetchBooked(gomock.Any(), day, location).
					Return([]model.BookedSlot{{Time: "10:00", Service: "wheel-alignment"}}, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:   "strict check ignores other bay",
			strict: true,
			req:    createRequest(day, "9:00", "full-service"),
			setup: func(f fixture) {
				f.repo.EXPECT().FetchBooked(gomock.Any(), day, location).
					Return([]model.BookedSlot{{Time: "10:00", Service: "oil-change"}}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantTime: "9:00",
		},
		{
			name:     "unknown location",
			req:      func() dto.CreateAppointmentRequest { r := createRequest(day, "10:00", "oil-change"); r.Location = "debrecen"; return r }(),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "time outside opening hours",
			req:      createRequest(day, "17:00", "oil-change"),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "time not on the half hour",
			req:      createRequest(day, "10:15", "oil-change"),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "date in the past",
			req:      createRequest(timezone.Today().AddDate(0, 0, -1).Format(constant.DayFormat), "10:00", "oil-change"),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid email",
			req:      func() dto.CreateAppointmentRequest { r := createRequest(day, "10:00", "oil-change"); r.Email = "anna"; return r }(),
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.strict)
			f.expectAsync()

			if tt.setup != nil {
				tt.setup(f)
			}

			res, err := f.service.Create(context.Background(), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, tt.wantTime, res.Time)
			assert.Equal(t, day, res.Date)
			assert.Equal(t, model.StatusPending, res.Status)
			assert.Equal(t, constant.ActorCustomer, res.CreatedBy)
		})
	}
}

func TestService_CreateSlotTakenIsTyped(t *testing.T) {
	f := newFixture(t, false)
	day := futureDay()

	f.repo.EXPECT().FetchBooked(gomock.Any(), day, location).Return([]model.BookedSlot{{Time: "10:00", Service: "oil-change"}}, nil)

	_, err := f.service.Create(context.Background(), createRequest(day, "10:00", "oil-change"))

	assert.ErrorIs(t, err, failure.SlotTakenError)
}

func TestService_Availability(t *testing.T) {
	req := dto.AvailabilityRequest{Date: "2025-06-10", Location: location, Service: "wheel-alignment"}
	revisionKey := "appointment:availability-revision:2025-06-10"
	cacheKey := "appointment:availability:2025-06-10:nagytarcsa:wheel-alignment:0"

	t.Run("one hour booking blocks its own span only", func(t *testing.T) {
		f := newFixture(t, false)

		f.cache.EXPECT().Get(gomock.Any(), revisionKey, gomock.Any()).Return(cache.Nil)
		f.cache.EXPECT().Get(gomock.Any(), cacheKey, gomock.Any()).Return(cache.Nil)
		f.cache.EXPECT().Save(gomock.Any(), cacheKey, gomock.Any(), 30).Return(nil).AnyTimes()
		f.repo.EXPECT().FetchBooked(gomock.Any(), "2025-06-10", location).
			Return([]model.BookedSlot{{Time: "10:00", Service: "wheel-alignment"}}, nil)

		res, err := f.service.Availability(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, 2, res.Bay)
		assert.Equal(t, 2, res.SlotCount)
		assert.False(t, res.Degraded)
		assert.Contains(t, res.Blocked, "10:00")
		assert.Contains(t, res.Blocked, "10:30")
		assert.NotContains(t, res.Blocked, "11:00")

		available := map[string]bool{}
		for _, slot := range res.Slots {
			available[slot.Time] = slot.Available
		}

		assert.Len(t, res.Slots, 16)
		assert.True(t, available["11:00"])
		assert.False(t, available["10:00"])
		assert.False(t, available["16:30"])
	})

	t.Run("other bay bookings do not block", func(t *testing.T) {
		f := newFixture(t, false)

		f.cache.EXPECT().Get(gomock.Any(), revisionKey, gomock.Any()).Return(cache.Nil)
		f.cache.EXPECT().Get(gomock.Any(), cacheKey, gomock.Any()).Return(cache.Nil)
		f.cache.EXPECT().Save(gomock.Any(), cacheKey, gomock.Any(), 30).Return(nil).AnyTimes()
		f.repo.EXPECT().FetchBooked(gomock.Any(), "2025-06-10", location).
			Return([]model.BookedSlot{{Time: "10:00", Service: "oil-change"}}, nil)

		res, err := f.service.Availability(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, []string{"16:30"}, res.Blocked)
	})

	t.Run("fetch failure is degraded and not cached", func(t *testing.T) {
		f := newFixture(t, false)

		f.cache.EXPECT().Get(gomock.Any(), revisionKey, gomock.Any()).Return(cache.Nil)
		f.cache.EXPECT().Get(gomock.Any(), cacheKey, gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().FetchBooked(gomock.Any(), "2025-06-10", location).Return(nil, errors.New("timeout"))

		res, err := f.service.Availability(context.Background(), req)
		require.NoError(t, err)

		assert.True(t, res.Degraded)
		assert.Equal(t, []string{"16:30"}, res.Blocked)
	})

	t.Run("cache hit", func(t *testing.T) {
		f := newFixture(t, false)

		f.cache.EXPECT().Get(gomock.Any(), revisionKey, gomock.Any()).Return(cache.Nil)
		f.cache.EXPECT().Get(gomock.Any(), cacheKey, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, _ := value.(*dto.AvailabilityResponse)
				res.Date = "2025-06-10"
				res.Blocked = []string{"12:00"}

				return nil
			})

		res, err := f.service.Availability(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, []string{"12:00"}, res.Blocked)
	})

	t.Run("hit under the current revision", func(t *testing.T) {
		f := newFixture(t, false)

		f.cache.EXPECT().Get(gomock.Any(), revisionKey, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				revision, _ := value.(*string)
				*revision = "r2"

				return nil
			})
		f.cache.EXPECT().Get(gomock.Any(), "appointment:availability:2025-06-10:nagytarcsa:wheel-alignment:r2", gomock.Any()).
			Return(nil)

		_, err := f.service.Availability(context.Background(), req)
		require.NoError(t, err)
	})

	t.Run("unreadable revision bypasses the cache", func(t *testing.T) {
		f := newFixture(t, false)

		f.cache.EXPECT().Get(gomock.Any(), revisionKey, gomock.Any()).Return(errors.New("connection refused"))
		f.repo.EXPECT().FetchBooked(gomock.Any(), "2025-06-10", location).Return([]model.BookedSlot{}, nil)

		res, err := f.service.Availability(context.Background(), req)
		require.NoError(t, err)

		assert.False(t, res.Degraded)
		assert.Equal(t, []string{"16:30"}, res.Blocked)
	})

	t.Run("unknown location", func(t *testing.T) {
		f := newFixture(t, false)

		_, err := f.service.Availability(context.Background(), dto.AvailabilityRequest{Date: "2025-06-10", Location: "debrecen", Service: "oil-change"})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestService_AvailabilityHalfHourCandidate(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockAppointment(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	services := catalog.NewFromServices(2, []catalog.Service{
		{ID: "wheel-alignment", Duration: "1 óra", Bay: 2},
		{ID: "inspection", Duration: "30 perc", Bay: 2},
		{ID: "oil-change", Duration: "45 perc", Bay: 1},
	})

	redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
	redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	repo.EXPECT().FetchBooked(gomock.Any(), "2025-06-10", location).Return([]model.BookedSlot{
		{Time: "10:00", Service: "wheel-alignment"},
		{Time: "12:00", Service: "oil-change"},
	}, nil)

	svc := service.New(repo, newConfig(false), redisCache, otelMocks.NewOtel(), services, notificationMocks.NewMockPublisher(ctrl), nil)

	res, err := svc.Availability(context.Background(), dto.AvailabilityRequest{Date: "2025-06-10", Location: location, Service: "inspection"})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Bay)
	assert.Equal(t, 1, res.SlotCount)
	assert.Equal(t, []string{"10:00", "10:30"}, res.Blocked)
	assert.NotContains(t, res.Blocked, "9:30")
	assert.NotContains(t, res.Blocked, "11:00")
	assert.NotContains(t, res.Blocked, "12:00")
}

func TestService_AvailabilityBlocksStartedSlotsToday(t *testing.T) {
	f := newFixture(t, false)
	today := timezone.Today().Format(constant.DayFormat)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.repo.EXPECT().FetchBooked(gomock.Any(), today, location).Return([]model.BookedSlot{}, nil)

	minuteOf := func(at time.Time) int { return at.Hour()*60 + at.Minute() }

	before := minuteOf(timezone.Now())
	res, err := f.service.Availability(context.Background(), dto.AvailabilityRequest{Date: today, Location: location, Service: "diagnostics"})
	after := minuteOf(timezone.Now())

	require.NoError(t, err)

	unavailable := []string{}

	for _, slot := range res.Slots {
		minute, err := schedule.ParseLabel(slot.Time)
		require.NoError(t, err)

		switch {
		case minute <= before:
			assert.False(t, slot.Available, slot.Time)
		case minute > after:
			assert.True(t, slot.Available, slot.Time)
		}

		if !slot.Available {
			unavailable = append(unavailable, slot.Time)
		}
	}

	assert.Equal(t, unavailable, append([]string{}, res.Blocked...))
}

func TestService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t, false)
		f.expectAsync()

		f.cache.EXPECT().Get(gomock.Any(), "appointment:get:"+appointmentID, gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing(model.StatusPending), nil)

		res, err := f.service.Get(context.Background(), appointmentID)
		require.NoError(t, err)

		assert.Equal(t, appointmentID, res.ID)
		assert.Equal(t, futureDay(), res.Date)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t, false)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Appointment{}, nil)

		_, err := f.service.Get(context.Background(), appointmentID)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("malformed id", func(t *testing.T) {
		f := newFixture(t, false)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)

		_, err := f.service.Get(context.Background(), "not-a-uuid")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestService_GetAll(t *testing.T) {
	f := newFixture(t, false)
	f.expectAsync()

	params := gDto.QueryParams{Page: 1, Limit: 10}
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: []any{}}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), filter).Return(11, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, filter).Return([]model.Appointment{existing(model.StatusPending)}, nil)

	res, err := f.service.GetAll(context.Background(), params, filter)
	require.NoError(t, err)

	assert.Equal(t, 11, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Appointments, 1)
}

func TestService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		status   string
		wantCode int
	}{
		{name: "pending to confirmed", current: model.StatusPending, status: model.StatusConfirmed},
		{name: "rescheduled to confirmed", current: model.StatusRescheduled, status: model.StatusConfirmed},
		{name: "confirmed to cancelled", current: model.StatusConfirmed, status: model.StatusCancelled},
		{name: "cancelled is terminal", current: model.StatusCancelled, status: model.StatusConfirmed, wantCode: http.StatusConflict},
		{name: "confirmed to confirmed", current: model.StatusConfirmed, status: model.StatusConfirmed, wantCode: http.StatusConflict},
		{name: "unsupported status", current: model.StatusPending, status: model.StatusRescheduled, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			f.expectAsync()

			if tt.wantCode != http.StatusBadRequest {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing(tt.current), nil)
			}

			if tt.wantCode == 0 {
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, tt.status, fields[model.FieldStatus])
						assert.Equal(t, constant.ActorAdmin, fields[constant.FieldModifiedBy])

						return nil
					})
			}

			ctx := context.WithValue(context.Background(), constant.ContextKeyActor, constant.ActorAdmin)

			res, err := f.service.UpdateStatus(ctx, appointmentID, dto.UpdateStatusRequest{Status: tt.status})
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, constant.ActorAdmin, res.ModifiedBy)
		})
	}
}

func TestService_CancelPublishesEvent(t *testing.T) {
	f := newFixture(t, false)

	published := make(chan notificationModel.Event, 1)

	f.cache.EXPECT().Save(gomock.Any(), "appointment:availability-revision:"+futureDay(), gomock.Any(), 24*60*60).Return(nil)
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing(model.StatusPending), nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, events ...notificationModel.Event) error {
			published <- events[0]

			return nil
		})

	res, err := f.service.Cancel(context.Background(), appointmentID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, res.Status)

	select {
	case event := <-published:
		assert.Equal(t, notificationModel.EventAppointmentCancelled, event.Type)
		assert.Equal(t, appointmentID, event.Appointment.ID)
	case <-time.After(time.Second):
		t.Fatal("cancel event was not published")
	}
}

func TestService_Reschedule(t *testing.T) {
	day := futureDay()
	nextDay := timezone.Today().AddDate(0, 0, 8).Format(constant.DayFormat)

	tests := []struct {
		name     string
		current  string
		req      dto.RescheduleRequest
		setup    func(f fixture)
		wantCode int
	}{
		{
			name:    "same slot on same day ignores own booking",
			current: model.StatusConfirmed,
			req:     dto.RescheduleRequest{Date: day, Time: "10:00"},
			setup: func(f fixture) {
				f.repo.EXPECT().FetchBooked(gomock.Any(), day, location).
					Return([]model.BookedSlot{{Time: "10:00", Service: "wheel-alignment"}}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:    "move to another day",
			current: model.StatusPending,
			req:     dto.RescheduleRequest{Date: nextDay, Time: "14:30", Location: "budaors"},
			setup: func(f fixture) {
				f.repo.EXPECT().FetchBooked(gomock.Any(), nextDay, "budaors").
					Return([]model.BookedSlot{{Time: "10:00", Service: "wheel-alignment"}}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, nextDay, fields[model.FieldDate])
						assert.Equal(t, "14:30", fields[model.FieldTime])
						assert.Equal(t, "budaors", fields[model.FieldLocation])
						assert.Equal(t, model.StatusRescheduled, fields[model.FieldStatus])

						return nil
					})
			},
		},
		{
			name:    "location is trimmed before use",
			current: model.StatusPending,
			req:     dto.RescheduleRequest{Date: nextDay, Time: "11:00", Location: "  budaors "},
			setup: func(f fixture) {
				f.repo.EXPECT().FetchBooked(gomock.Any(), nextDay, "budaors").Return([]model.BookedSlot{}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "budaors", fields[model.FieldLocation])

						return nil
					})
			},
		},
		{
			name:    "target slot taken",
			current: model.StatusPending,
			req:     dto.RescheduleRequest{Date: nextDay, Time: "10:00"},
			setup: func(f fixture) {
				f.repo.EXPECT().FetchBooked(gomock.Any(), nextDay, location).
					Return([]model.BookedSlot{{Time: "10:00", Service: "oil-change"}}, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:    "unique violation on update",
			current: model.StatusPending,
			req:     dto.RescheduleRequest{Date: nextDay, Time: "11:00"},
			setup: func(f fixture) {
				f.repo.EXPECT().FetchBooked(gomock.Any(), nextDay, location).Return([]model.BookedSlot{}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
		{
			name:     "cancelled cannot be rescheduled",
			current:  model.StatusCancelled,
			req:      dto.RescheduleRequest{Date: nextDay, Time: "11:00"},
			wantCode: http.StatusConflict,
		},
		{
			name:     "off grid time",
			current:  model.StatusPending,
			req:      dto.RescheduleRequest{Date: nextDay, Time: "8:30"},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			f.expectAsync()

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing(tt.current), nil)

			if tt.setup != nil {
				tt.setup(f)
			}

			res, err := f.service.Reschedule(context.Background(), appointmentID, tt.req)
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.StatusRescheduled, res.Status)
			assert.Equal(t, tt.req.Date, res.Date)
		})
	}
}

func TestService_SendReminders(t *testing.T) {
	day := futureDay()

	t.Run("publishes one event per appointment", func(t *testing.T) {
		f := newFixture(t, false)

		first := existing(model.StatusConfirmed)
		second := existing(model.StatusPending)
		second.ID = "0b7e3f52-93c4-4a0e-a4a5-1c2d3e4f5a6b"
		second.Time = "13:00"

		f.repo.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).Return([]model.Appointment{first, second}, nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, events ...notificationModel.Event) error {
				for _, event := range events {
					assert.Equal(t, notificationModel.EventAppointmentReminder, event.Type)
				}

				return nil
			})

		sent, err := f.service.SendReminders(context.Background(), day)
		require.NoError(t, err)
		assert.Equal(t, 2, sent)
	})

	t.Run("nothing to remind", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Appointment{}, nil)

		sent, err := f.service.SendReminders(context.Background(), day)
		require.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("publish failure", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Appointment{existing(model.StatusPending)}, nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		_, err := f.service.SendReminders(context.Background(), day)
		assert.Error(t, err)
	})

	t.Run("invalid date", func(t *testing.T) {
		f := newFixture(t, false)

		_, err := f.service.SendReminders(context.Background(), "tomorrow")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
