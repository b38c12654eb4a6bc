package metrics_test

import (
	"errors"
	"garage/infras/metrics"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.AppointmentCreated("nagytarcsa", "oil-change")
	m.AppointmentCreated("nagytarcsa", "oil-change")
	m.SlotTaken("nagytarcsa", "constraint")
	m.AvailabilityServed(true, false)
	m.AvailabilityFetchError()
	m.NotificationSent("email", nil)
	m.NotificationSent("sms", errors.New("down"))
	m.JobRun("reminders", nil)
	m.ObserveHTTP("GET", "/api/v1/availability", 200, 0.01)

	count, err := testutil.GatherAndCount(reg)
	assert.NoError(t, err)
	assert.Equal(t, 8, count)

	families, err := reg.Gather()
	assert.NoError(t, err)

	for _, family := range families {
		if family.GetName() != "garage_booking_appointments_created_total" {
			continue
		}

		assert.Len(t, family.GetMetric(), 1)
		assert.InDelta(t, 2, family.GetMetric()[0].GetCounter().GetValue(), 0)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *metrics.Metrics

	m.AppointmentCreated("a", "b")
	m.SlotTaken("a", "precheck")
	m.AvailabilityServed(false, true)
	m.AvailabilityFetchError()
	m.NotificationSent("email", nil)
	m.JobRun("worksheet", errors.New("x"))
	m.ObserveHTTP("GET", "/", 500, 1)
}
