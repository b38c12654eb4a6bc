package dto

import (
	"fmt"
	"garage/internal/domains/appointment/model"
	"garage/internal/domains/appointment/schedule"
	"garage/shared"
	"garage/shared/constant"
	gDto "garage/shared/dto"
	gModel "garage/shared/model"
	"garage/shared/timezone"
	"net/http"
	"slices"
	"strings"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	Service  string `json:"service"  validate:"required,max=64"`
	Vehicle  string `json:"vehicle"  validate:"required,max=100"`
	Date     string `json:"date"     validate:"required,isodate"`
	Time     string `json:"time"     validate:"required,timeslot"`
	Location string `json:"location" validate:"required,max=64"`
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Phone    string `json:"phone"    validate:"required,max=20"`
}

func (c *CreateAppointmentRequest) ToModel(actor string) (model.Appointment, error) {
	date, err := timezone.ParseDay(c.Date)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("invalid date: %w", err)
	}

	label, err := schedule.NormalizeLabel(c.Time)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("invalid time: %w", err)
	}

	now := timezone.Now()

	return model.Appointment{
		ID:       uuid.NewString(),
		Service:  strings.TrimSpace(c.Service),
		Vehicle:  strings.TrimSpace(c.Vehicle),
		Date:     date,
		Time:     label,
		Location: strings.TrimSpace(c.Location),
		Name:     strings.TrimSpace(c.Name),
		Email:    strings.TrimSpace(c.Email),
		Phone:    strings.TrimSpace(c.Phone),
		Status:   model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled"`
}

type RescheduleRequest struct {
	Date     string `json:"date"     validate:"required,isodate"`
	Time     string `json:"time"     validate:"required,timeslot"`
	Location string `json:"location" validate:"omitempty,max=64"`
}

// rescheduleFields holds the columns a reschedule rewrites. Zero values are dropped by TransformFields.
type rescheduleFields struct {
	Date     string `db:"date"`
	Time     string `db:"time"`
	Location string `db:"location"`
	Status   string `db:"status"`
}

// Fields returns the update map for a reschedule, normalizing the time label.
func (r *RescheduleRequest) Fields(actor string) (map[string]any, error) {
	label, err := schedule.NormalizeLabel(r.Time)
	if err != nil {
		return nil, fmt.Errorf("invalid time: %w", err)
	}

	return shared.TransformFields(rescheduleFields{
		Date:     r.Date,
		Time:     label,
		Location: strings.TrimSpace(r.Location),
		Status:   model.StatusRescheduled,
	}, actor), nil
}

type AvailabilityRequest struct {
	Date     string `json:"date"     validate:"required,isodate"`
	Location string `json:"location" validate:"required,max=64"`
	Service  string `json:"service"  validate:"required,max=64"`
}

func (a *AvailabilityRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	a.Date = query.Get(constant.RequestParamDate)
	a.Location = query.Get(constant.RequestParamLocation)
	a.Service = query.Get(constant.RequestParamService)
}

type SlotAvailability struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type AvailabilityResponse struct {
	Date      string             `json:"date"`
	Location  string             `json:"location"`
	Service   string             `json:"service"`
	Bay       int                `json:"bay"`
	SlotCount int                `json:"slot_count"`
	Slots     []SlotAvailability `json:"slots"`
	Blocked   []string           `json:"blocked"`
	Degraded  bool               `json:"degraded"`
}

// SetSlots marks every grid label available unless it appears in blocked.
func (a *AvailabilityResponse) SetSlots(labels, blocked []string) {
	taken := make(map[string]struct{}, len(blocked))
	for _, label := range blocked {
		taken[label] = struct{}{}
	}

	a.Blocked = blocked
	a.Slots = make([]SlotAvailability, len(labels))

	for i, label := range labels {
		_, isBlocked := taken[label]
		a.Slots[i] = SlotAvailability{Time: label, Available: !isBlocked}
	}
}

type AppointmentResponse struct {
	ID       string `json:"id"`
	Service  string `json:"service"`
	Vehicle  string `json:"vehicle"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Status   string `json:"status"`
	gDto.Metadata
}

func (r *AppointmentResponse) FromModel(model model.Appointment) {
	r.ID = model.ID
	r.Service = model.Service
	r.Vehicle = model.Vehicle
	r.Date = model.Date.Format(constant.DayFormat)
	r.Time = model.Time
	r.Location = model.Location
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].FromModel(mod)
	}
}

// sortable lists the columns the admin listing may sort by.
var sortable = []string{
	constant.FieldCreatedAt,
	model.FieldDate,
	model.FieldTime,
	model.FieldLocation,
	model.FieldService,
	model.FieldStatus,
}

// ListRequest holds the optional admin listing filters.
type ListRequest struct {
	Date     string `json:"date"     validate:"omitempty,isodate"`
	Location string `json:"location" validate:"omitempty,max=64"`
	Service  string `json:"service"  validate:"omitempty,max=64"`
	Status   string `json:"status"   validate:"omitempty,oneof=pending confirmed rescheduled cancelled"`
}

func (l *ListRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	l.Date = query.Get(constant.RequestParamDate)
	l.Location = query.Get(constant.RequestParamLocation)
	l.Service = query.Get(constant.RequestParamService)
	l.Status = query.Get(constant.RequestParamStatus)
}

func (l *ListRequest) FilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	fields := []struct {
		field string
		value string
	}{
		{field: model.FieldDate, value: l.Date},
		{field: model.FieldLocation, value: l.Location},
		{field: model.FieldService, value: l.Service},
		{field: model.FieldStatus, value: l.Status},
	}

	for _, f := range fields {
		if f.value == "" {
			continue
		}

		group.Filters = append(group.Filters, gDto.Filter{
			Field:    f.field,
			Operator: gDto.FilterOperatorEq,
			Value:    f.value,
			Table:    model.TableName,
		})
	}

	return group
}

// SanitizeSort resets an unknown sort column to the default so it never reaches ORDER BY.
func SanitizeSort(params *gDto.QueryParams) {
	if params.SortBy == "" {
		return
	}

	if !slices.Contains(sortable, params.SortBy) {
		params.SortBy = constant.DefaultValueSortBy
	}

	if params.SortDir == "" {
		params.SortDir = constant.DefaultValueSortDir
	}
}
