package appointment

import (
	"garage/infras/otel"
	"garage/internal/domains/appointment/model/dto"
	"garage/internal/domains/appointment/service"
	"garage/shared/constant"
	gDto "garage/shared/dto"
	"garage/shared/validator"
	"garage/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Appointment
	otel    otel.Otel
}

func New(service service.Appointment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers the customer-facing routes.
func (handler *Handler) Router(router chi.Router) {
	router.Get("/availability", handler.GetAvailability)

	router.Route("/appointments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAppointment)
		routerGroup.Get("/{id}", handler.GetAppointmentByID)
		routerGroup.Post("/{id}/cancel", handler.CancelAppointment)
	})
}

// AdminRouter registers the back-office routes. The caller is responsible for guarding them.
func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/appointments", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetAppointments)
		routerGroup.Patch("/{id}/status", handler.UpdateAppointmentStatus)
		routerGroup.Patch("/{id}/reschedule", handler.RescheduleAppointment)
	})
}

// GetAvailability returns the slot grid for a day, location and service.
// @Summary Get slot availability
// @Description List every slot of the day with an availability flag for the service's bay.
// @Tags Appointment
// @Produce json
// @Param date query string true "Day (YYYY-MM-DD)"
// @Param location query string true "Location"
// @Param service query string true "Service ID"
// @Success 200 {object} response.Data[dto.AvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
func (handler *Handler) GetAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	req := dto.AvailabilityRequest{}
	req.FromRequest(request)

	res, err := handler.service.Availability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateAppointment books a slot.
// @Summary Book an appointment
// @Description Book a service slot. Answers 409 when the slot is already taken.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} response.Data[dto.AppointmentResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [post]
func (handler *Handler) CreateAppointment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAppointment")
	defer scope.End()

	req := dto.CreateAppointmentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create appointment")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Appointment created " + res.ID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetAppointmentByID retrieves an appointment.
// @Summary Get appointment by ID
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [get]
func (handler *Handler) GetAppointmentByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointmentByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get appointment")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CancelAppointment cancels an appointment on behalf of the customer.
// @Summary Cancel appointment
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/cancel [post]
func (handler *Handler) CancelAppointment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelAppointment")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Cancel(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to cancel appointment")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetAppointments lists appointments for the back office.
// @Summary List appointments
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param date query string false "Filter by day (YYYY-MM-DD)"
// @Param location query string false "Filter by location"
// @Param service query string false "Filter by service ID"
// @Param status query string false "Filter by status (pending, confirmed, rescheduled, cancelled)"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/appointments [get]
// @Security ApiKeyAuth
func (handler *Handler) GetAppointments(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)
	dto.SanitizeSort(&queryParams)

	listReq := dto.ListRequest{}
	listReq.FromRequest(request)

	if err := validator.ValidateStruct(&listReq); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate list filters")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.GetAll(ctx, queryParams, listReq.FilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointments")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateAppointmentStatus confirms or cancels an appointment.
// @Summary Update appointment status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Data[dto.AppointmentResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/appointments/{id}/status [patch]
// @Security ApiKeyAuth
func (handler *Handler) UpdateAppointmentStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAppointmentStatus")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	req := dto.UpdateStatusRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.UpdateStatus(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update appointment status")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// RescheduleAppointment moves an appointment to another slot.
// @Summary Reschedule appointment
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.RescheduleRequest true "Reschedule Request"
// @Success 200 {object} response.Data[dto.AppointmentResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/appointments/{id}/reschedule [patch]
// @Security ApiKeyAuth
func (handler *Handler) RescheduleAppointment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RescheduleAppointment")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	req := dto.RescheduleRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Reschedule(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to reschedule appointment")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
