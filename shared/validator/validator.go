package validator

import (
	"encoding/json"
	"fmt"
	"garage/internal/domains/appointment/schedule"
	"garage/shared/constant"
	"garage/shared/failure"
	"io"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// timeslot accepts "H:MM" or "HH:MM" labels on the half-hour grid.
func registerTimeslotValidation(field val.FieldLevel) bool {
	label, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	minute, err := schedule.ParseLabel(label)
	if err != nil {
		return false
	}

	return minute%constant.SlotMinutes == 0
}

func registerISODateValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(constant.DayFormat, strings.TrimSpace(value))

	return err == nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		return fl.Field().IsZero()
	})
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("timeslot", registerTimeslotValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("isodate", registerISODateValidation)
	if err != nil {
		panic(err)
	}
}

// Validate decodes JSON from r into data and validates the result.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
