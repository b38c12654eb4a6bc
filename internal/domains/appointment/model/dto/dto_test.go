package dto

import (
	"garage/internal/domains/appointment/model"
	"garage/shared/constant"
	gDto "garage/shared/dto"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRequest_FilterGroup(t *testing.T) {
	req := ListRequest{}
	req.FromRequest(httptest.NewRequest("GET", "/v1/admin/appointments?date=2025-06-10&location=budaors&service=", nil))

	group := req.FilterGroup()

	require.Len(t, group.Filters, 2)
	assert.Equal(t, gDto.Filter{Field: model.FieldDate, Operator: gDto.FilterOperatorEq, Value: "2025-06-10", Table: model.TableName}, group.Filters[0])
	assert.Equal(t, gDto.Filter{Field: model.FieldLocation, Operator: gDto.FilterOperatorEq, Value: "budaors", Table: model.TableName}, group.Filters[1])
}

func TestSanitizeSort(t *testing.T) {
	tests := []struct {
		name string
		in   gDto.QueryParams
		want gDto.QueryParams
	}{
		{name: "unsorted stays unsorted", in: gDto.QueryParams{}, want: gDto.QueryParams{}},
		{name: "allowed column", in: gDto.QueryParams{SortBy: "date", SortDir: "ASC"}, want: gDto.QueryParams{SortBy: "date", SortDir: "ASC"}},
		{name: "unknown column", in: gDto.QueryParams{SortBy: "email", SortDir: "ASC"}, want: gDto.QueryParams{SortBy: "created_at", SortDir: "ASC"}},
		{name: "missing direction", in: gDto.QueryParams{SortBy: "time"}, want: gDto.QueryParams{SortBy: "time", SortDir: "DESC"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.in
			SanitizeSort(&params)

			assert.Equal(t, tt.want, params)
		})
	}
}

func TestRescheduleRequest_Fields(t *testing.T) {
	req := RescheduleRequest{Date: "2025-06-11", Time: "09:00"}

	fields, err := req.Fields("admin")
	require.NoError(t, err)

	assert.Equal(t, "9:00", fields[model.FieldTime])
	assert.Equal(t, model.StatusRescheduled, fields[model.FieldStatus])
	assert.NotContains(t, fields, model.FieldLocation)
	assert.Equal(t, "admin", fields[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, fields[constant.FieldModifiedAt])
}

func TestAvailabilityResponse_SetSlots(t *testing.T) {
	res := AvailabilityResponse{}
	res.SetSlots([]string{"9:00", "9:30", "10:00"}, []string{"9:30"})

	assert.Equal(t, []SlotAvailability{
		{Time: "9:00", Available: true},
		{Time: "9:30", Available: false},
		{Time: "10:00", Available: true},
	}, res.Slots)
}
