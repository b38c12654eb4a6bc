package service

import (
	"fmt"
	"garage/internal/domains/notification/model"
	"strings"
)

type message struct {
	Subject string
	Body    string
	SMS     string
}

var subjects = map[string]string{
	model.EventAppointmentBooked:      "Booking received",
	model.EventAppointmentConfirmed:   "Booking confirmed",
	model.EventAppointmentRescheduled: "Booking rescheduled",
	model.EventAppointmentCancelled:   "Booking cancelled",
	model.EventAppointmentReminder:    "Reminder: your service appointment is tomorrow",
}

var leads = map[string]string{
	model.EventAppointmentBooked:      "we have received your booking. We will confirm it shortly.",
	model.EventAppointmentConfirmed:   "your booking is confirmed.",
	model.EventAppointmentRescheduled: "your booking has been moved to a new time.",
	model.EventAppointmentCancelled:   "your booking has been cancelled.",
	model.EventAppointmentReminder:    "this is a reminder of your appointment tomorrow.",
}

// render builds the plain-text email and SMS for event. serviceName is the catalog display name.
func render(event model.Event, serviceName string) (message, bool) {
	subject, ok := subjects[event.Type]
	if !ok {
		return message{}, false
	}

	appt := event.Appointment

	name := appt.Name
	if name == "" {
		name = "Customer"
	}

	var body strings.Builder

	fmt.Fprintf(&body, "Dear %s,\n\n%s\n\n", name, leads[event.Type])
	fmt.Fprintf(&body, "Service: %s\n", serviceName)
	fmt.Fprintf(&body, "Vehicle: %s\n", appt.Vehicle)
	fmt.Fprintf(&body, "Date: %s %s\n", appt.Date, appt.Time)
	fmt.Fprintf(&body, "Location: %s\n", appt.Location)
	fmt.Fprintf(&body, "Reference: %s\n", appt.ID)

	return message{
		Subject: subject,
		Body:    body.String(),
		SMS:     fmt.Sprintf("%s: %s, %s %s, %s.", subject, serviceName, appt.Date, appt.Time, appt.Location),
	}, true
}
