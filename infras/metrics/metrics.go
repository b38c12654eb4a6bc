package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "garage"

// Metrics holds the booking counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	appointmentsCreated   *prometheus.CounterVec
	slotTaken             *prometheus.CounterVec
	availabilityRequests  *prometheus.CounterVec
	availabilityFetchErrs prometheus.Counter
	notificationsSent     *prometheus.CounterVec
	jobRuns               *prometheus.CounterVec
	httpLatency           *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		appointmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "appointments_created_total",
			Help:      "Appointments successfully inserted",
		}, []string{"location", "service"}),
		slotTaken: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "slot_taken_total",
			Help:      "Create or reschedule attempts rejected because the slot was already taken",
		}, []string{"location", "source"}),
		availabilityRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "availability_requests_total",
			Help:      "Availability lookups by cache outcome",
		}, []string{"cache", "degraded"}),
		availabilityFetchErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "availability_fetch_errors_total",
			Help:      "Booked-slot lookups that failed and were served as fully free",
		}),
		notificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notification",
			Name:      "sent_total",
			Help:      "Notification deliveries by channel and status",
		}, []string{"channel", "status"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "runs_total",
			Help:      "Scheduled job executions",
		}, []string{"job", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	reg.MustRegister(
		m.appointmentsCreated,
		m.slotTaken,
		m.availabilityRequests,
		m.availabilityFetchErrs,
		m.notificationsSent,
		m.jobRuns,
		m.httpLatency,
	)

	return m
}

func (m *Metrics) AppointmentCreated(location, service string) {
	if m == nil {
		return
	}

	m.appointmentsCreated.WithLabelValues(location, service).Inc()
}

// SlotTaken counts a rejected booking. source is "precheck" or "constraint".
func (m *Metrics) SlotTaken(location, source string) {
	if m == nil {
		return
	}

	m.slotTaken.WithLabelValues(location, source).Inc()
}

func (m *Metrics) AvailabilityServed(cacheHit, degraded bool) {
	if m == nil {
		return
	}

	cache := "miss"
	if cacheHit {
		cache = "hit"
	}

	m.availabilityRequests.WithLabelValues(cache, strconv.FormatBool(degraded)).Inc()
}

func (m *Metrics) AvailabilityFetchError() {
	if m == nil {
		return
	}

	m.availabilityFetchErrs.Inc()
}

func (m *Metrics) NotificationSent(channel string, err error) {
	if m == nil {
		return
	}

	m.notificationsSent.WithLabelValues(channel, status(err)).Inc()
}

func (m *Metrics) JobRun(job string, err error) {
	if m == nil {
		return
	}

	m.jobRuns.WithLabelValues(job, status(err)).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, statusCode int, seconds float64) {
	if m == nil {
		return
	}

	m.httpLatency.WithLabelValues(method, route, strconv.Itoa(statusCode)).Observe(seconds)
}

func status(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}
