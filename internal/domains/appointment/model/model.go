package model

import (
	"garage/shared/model"
	"slices"
	"time"
)

const (
	TableName  = "appointments"
	EntityName = "appointment"

	FieldID       = "id"
	FieldService  = "service"
	FieldVehicle  = "vehicle"
	FieldDate     = "date"
	FieldTime     = "time"
	FieldLocation = "location"
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldStatus   = "status"
)

const (
	StatusPending     = "pending"
	StatusConfirmed   = "confirmed"
	StatusRescheduled = "rescheduled"
	StatusCancelled   = "cancelled"
)

var transitions = map[string][]string{
	StatusPending:     {StatusConfirmed, StatusCancelled},
	StatusConfirmed:   {StatusCancelled},
	StatusRescheduled: {StatusConfirmed, StatusCancelled},
}

type Appointment struct {
	ID       string    `db:"id"`
	Service  string    `db:"service"`
	Vehicle  string    `db:"vehicle"`
	Date     time.Time `db:"date"`
	Time     string    `db:"time"`
	Location string    `db:"location"`
	Name     string    `db:"name"`
	Email    string    `db:"email"`
	Phone    string    `db:"phone"`
	Status   string    `db:"status"`
	model.Metadata
}

// CanTransition reports whether an admin may move an appointment from one status to another.
func CanTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}

// CanReschedule is true for every status except cancelled.
func CanReschedule(status string) bool {
	return status != StatusCancelled
}

// BookedSlot is the projection the availability check reads.
type BookedSlot struct {
	Time    string `db:"time"`
	Service string `db:"service"`
}
