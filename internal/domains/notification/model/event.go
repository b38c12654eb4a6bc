package model

import (
	"garage/internal/domains/appointment/model"
	"garage/shared/constant"
	"garage/shared/timezone"
	"time"

	"github.com/google/uuid"
)

const (
	EventAppointmentBooked      = "appointment.booked"
	EventAppointmentConfirmed   = "appointment.confirmed"
	EventAppointmentRescheduled = "appointment.rescheduled"
	EventAppointmentCancelled   = "appointment.cancelled"
	EventAppointmentReminder    = "appointment.reminder"
)

// Event is the message written to the appointment events topic.
type Event struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	OccurredAt  time.Time   `json:"occurred_at"`
	Appointment Appointment `json:"appointment"`
}

// Appointment is a snapshot of the booking at the time the event was raised.
type Appointment struct {
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
}

func NewEvent(eventType string, appointment model.Appointment) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: timezone.Now(),
		Appointment: Appointment{
			ID:       appointment.ID,
			Service:  appointment.Service,
			Vehicle:  appointment.Vehicle,
			Date:     appointment.Date.Format(constant.DayFormat),
			Time:     appointment.Time,
			Location: appointment.Location,
			Name:     appointment.Name,
			Email:    appointment.Email,
			Phone:    appointment.Phone,
			Status:   appointment.Status,
		},
	}
}

// EventForStatus maps a status change to the event announcing it.
func EventForStatus(status string) (string, bool) {
	switch status {
	case model.StatusConfirmed:
		return EventAppointmentConfirmed, true
	case model.StatusCancelled:
		return EventAppointmentCancelled, true
	case model.StatusRescheduled:
		return EventAppointmentRescheduled, true
	default:
		return "", false
	}
}
