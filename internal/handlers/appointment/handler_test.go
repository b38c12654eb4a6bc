package appointment

import (
	"encoding/json"
	"errors"
	"garage/infras/otel/mocks"
	serviceMocks "garage/internal/domains/appointment/mocks"
	"garage/internal/domains/appointment/model/dto"
	gDto "garage/shared/dto"
	"garage/shared/failure"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const createBody = `{"service":"oil-change","vehicle":"Skoda Octavia","date":"2025-06-10","time":"10:00",` +
	`"location":"nagytarcsa","name":"Kiss Anna","email":"anna@example.com","phone":"+36301234567"}`

func newRouter(service *serviceMocks.MockAppointmentService) chi.Router {
	handler := New(service, mocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/v1", func(r chi.Router) {
		handler.Router(r)
		r.Route("/admin", handler.AdminRouter)
	})

	return router
}

func decodeData[T any](t *testing.T, body string) T {
	t.Helper()

	var payload struct {
		Data T `json:"data"`
	}

	require.NoError(t, json.Unmarshal([]byte(body), &payload))

	return payload.Data
}

func TestHandler_CreateAppointment(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(s *serviceMocks.MockAppointmentService)
		wantStatus int
	}{
		{
			name: "created",
			body: createBody,
			setup: func(s *serviceMocks.MockAppointmentService) {
				s.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, req dto.CreateAppointmentRequest) (dto.AppointmentResponse, error) {
					assert.Equal(t, "10:00", req.Time)

					return dto.AppointmentResponse{ID: "a1", Time: req.Time, Status: "pending"}, nil
				})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "malformed json",
			body:       `{"service":`,
			setup:      func(*serviceMocks.MockAppointmentService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "time off the grid",
			body:       strings.Replace(createBody, `"10:00"`, `"10:15"`, 1),
			setup:      func(*serviceMocks.MockAppointmentService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "slot taken",
			body: createBody,
			setup: func(s *serviceMocks.MockAppointmentService) {
				s.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.AppointmentResponse{}, failure.SlotTakenError)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "storage failure",
			body: createBody,
			setup: func(s *serviceMocks.MockAppointmentService) {
				s.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.AppointmentResponse{}, errors.New("connection reset"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := serviceMocks.NewMockAppointmentService(ctrl)
			tt.setup(service)

			rec := httptest.NewRecorder()
			newRouter(service).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/appointments", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_GetAvailability(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := serviceMocks.NewMockAppointmentService(ctrl)

	service.EXPECT().
		Availability(gomock.Any(), dto.AvailabilityRequest{Date: "2025-06-10", Location: "nagytarcsa", Service: "wheel-alignment"}).
		Return(dto.AvailabilityResponse{
			Date:    "2025-06-10",
			Blocked: []string{"10:00", "10:30"},
			Slots:   []dto.SlotAvailability{{Time: "10:00"}, {Time: "11:00", Available: true}},
		}, nil)

	rec := httptest.NewRecorder()
	newRouter(service).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/availability?date=2025-06-10&location=nagytarcsa&service=wheel-alignment", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	res := decodeData[dto.AvailabilityResponse](t, rec.Body.String())
	assert.Equal(t, []string{"10:00", "10:30"}, res.Blocked)
	assert.Len(t, res.Slots, 2)
}

func TestHandler_GetAndCancel(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		setup      func(s *serviceMocks.MockAppointmentService)
		wantStatus int
	}{
		{
			name:   "get",
			method: http.MethodGet,
			path:   "/v1/appointments/a1",
			setup: func(s *serviceMocks.MockAppointmentService) {
				s.EXPECT().Get(gomock.Any(), "a1").Return(dto.AppointmentResponse{ID: "a1"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "get unknown",
			method: http.MethodGet,
			path:   "/v1/appointments/nope",
			setup: func(s *serviceMocks.MockAppointmentService) {
				s.EXPECT().Get(gomock.Any(), "nope").Return(dto.AppointmentResponse{}, failure.NotFound("appointment"))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "cancel",
			method: http.MethodPost,
			path:   "/v1/appointments/a1/cancel",
			setup: func(s *serviceMocks.MockAppointmentService) {
				s.EXPECT().Cancel(gomock.Any(), "a1").Return(dto.AppointmentResponse{ID: "a1", Status: "cancelled"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "cancel twice",
			method: http.MethodPost,
			path:   "/v1/appointments/a1/cancel",
			setup: func(s *serviceMocks.MockAppointmentService) {
				s.EXPECT().Cancel(gomock.Any(), "a1").Return(dto.AppointmentResponse{}, failure.Conflict("appointment is already cancelled"))
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := serviceMocks.NewMockAppointmentService(ctrl)
			tt.setup(service)

			rec := httptest.NewRecorder()
			newRouter(service).ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_GetAppointments(t *testing.T) {
	t.Run("filters and sanitized sort", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := serviceMocks.NewMockAppointmentService(ctrl)

		service.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAppointmentsResponse, error) {
				assert.Equal(t, "created_at", params.SortBy)
				assert.Equal(t, 2, params.Page)
				assert.Len(t, filter.Filters, 2)

				return dto.GetAppointmentsResponse{TotalData: 1, TotalPage: 1, Appointments: []dto.AppointmentResponse{{ID: "a1"}}}, nil
			})

		rec := httptest.NewRecorder()
		path := "/v1/admin/appointments?page=2&sort_by=name&sort_dir=asc&date=2025-06-10&status=pending"
		newRouter(service).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		require.Equal(t, http.StatusOK, rec.Code)

		res := decodeData[dto.GetAppointmentsResponse](t, rec.Body.String())
		assert.Equal(t, 1, res.TotalData)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := serviceMocks.NewMockAppointmentService(ctrl)

		rec := httptest.NewRecorder()
		newRouter(service).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/admin/appointments?status=done", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_AdminUpdates(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		setup      func(s *serviceMocks.MockAppointmentService)
		wantStatus int
	}{
		{
			name: "confirm",
			path: "/v1/admin/appointments/a1/status",
			body: `{"status":"confirmed"}`,
			setup: func(s *serviceMocks.MockAppointmentService) {
				s.EXPECT().UpdateStatus(gomock.Any(), "a1", dto.UpdateStatusRequest{Status: "confirmed"}).
					Return(dto.AppointmentResponse{ID: "a1", Status: "confirmed"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unsupported status",
			path:       "/v1/admin/appointments/a1/status",
			body:       `{"status":"rescheduled"}`,
			setup:      func(*serviceMocks.MockAppointmentService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "reschedule",
			path: "/v1/admin/appointments/a1/reschedule",
			body: `{"date":"2025-06-11","time":"9:00"}`,
			setup: func(s *serviceMocks.MockAppointmentService) {
				s.EXPECT().Reschedule(gomock.Any(), "a1", dto.RescheduleRequest{Date: "2025-06-11", Time: "9:00"}).
					Return(dto.AppointmentResponse{ID: "a1", Status: "rescheduled"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "reschedule into a taken slot",
			path: "/v1/admin/appointments/a1/reschedule",
			body: `{"date":"2025-06-11","time":"9:00"}`,
			setup: func(s *serviceMocks.MockAppointmentService) {
				s.EXPECT().Reschedule(gomock.Any(), "a1", gomock.Any()).Return(dto.AppointmentResponse{}, failure.SlotTakenError)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "reschedule with bad date",
			path:       "/v1/admin/appointments/a1/reschedule",
			body:       `{"date":"11/06/2025","time":"9:00"}`,
			setup:      func(*serviceMocks.MockAppointmentService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := serviceMocks.NewMockAppointmentService(ctrl)
			tt.setup(service)

			rec := httptest.NewRecorder()
			newRouter(service).ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, tt.path, strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
