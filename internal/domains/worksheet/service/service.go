package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"bytes"
	"cmp"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"garage/config"
	"garage/infras/otel"
	"garage/infras/s3"
	"garage/internal/domains/appointment/model"
	"garage/internal/domains/appointment/repository"
	"garage/internal/domains/appointment/schedule"
	"garage/internal/domains/catalog"
	"garage/shared/constant"
	gDto "garage/shared/dto"
	"garage/shared/validator"
	"slices"
	"strconv"

	"github.com/rs/zerolog/log"
)

const directory = "worksheets"

var header = []string{"time", "end", "bay", "service", "vehicle", "customer", "phone", "status"}

type Worksheet interface {
	Export(ctx context.Context, date string) ([]string, error)
}

type serviceImpl struct {
	repo    repository.Appointment
	cfg     *config.Config
	catalog *catalog.Catalog
	s3      s3.S3
	otel    otel.Otel
}

func New(repo repository.Appointment, cfg *config.Config, catalog *catalog.Catalog, s3 s3.S3, otel otel.Otel) Worksheet {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		catalog: catalog,
		s3:      s3,
		otel:    otel,
	}
}

// Export writes one CSV work sheet per configured location for date and returns the uploaded URLs.
// A failing location does not stop the others.
func (s *serviceImpl) Export(ctx context.Context, date string) (urls []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".worksheet.Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateVar(date, "isodate"); err != nil {
		return nil, err
	}

	var errs []error

	for _, location := range s.cfg.Booking.Locations {
		url, exportErr := s.exportLocation(ctx, date, location)
		if exportErr != nil {
			log.Error().Err(exportErr).Str("date", date).Str("location", location).Msg("failed to export worksheet")
			errs = append(errs, exportErr)

			continue
		}

		urls = append(urls, url)
	}

	return urls, errors.Join(errs...)
}

func (s *serviceImpl) exportLocation(ctx context.Context, date, location string) (string, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldDate, Operator: gDto.FilterOperatorEq, Value: date, Table: model.TableName},
			gDto.Filter{Field: model.FieldLocation, Operator: gDto.FilterOperatorEq, Value: location, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorNotEq, Value: model.StatusCancelled, Table: model.TableName},
		},
	}

	appointments, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return "", fmt.Errorf("failed to load appointments for %s: %w", location, err)
	}

	data, err := s.render(appointments)
	if err != nil {
		return "", err
	}

	url, err := s.s3.UploadFileBytes(ctx, directory+"/"+location, date+".csv", constant.ContentTypeCSV, data)
	if err != nil {
		return "", fmt.Errorf("failed to upload worksheet for %s: %w", location, err)
	}

	log.Info().Str("date", date).Str("location", location).Int("appointments", len(appointments)).Str("url", url).Msg("worksheet exported")

	return url, nil
}

type row struct {
	bay    int
	start  int
	fields []string
}

// render lays out appointments ordered by bay, then start time.
func (s *serviceImpl) render(appointments []model.Appointment) ([]byte, error) {
	rows := make([]row, 0, len(appointments))

	for _, appointment := range appointments {
		start, err := schedule.ParseLabel(appointment.Time)
		if err != nil {
			log.Warn().Str("id", appointment.ID).Str("time", appointment.Time).Msg("skipping appointment with unparsable time")

			continue
		}

		bay := s.catalog.BayOf(appointment.Service)
		end := start + s.catalog.SlotCount(appointment.Service)*constant.SlotMinutes

		serviceName := appointment.Service
		if svc, ok := s.catalog.Find(appointment.Service); ok {
			serviceName = svc.Name
		}

		rows = append(rows, row{
			bay:   bay,
			start: start,
			fields: []string{
				schedule.FormatLabel(start),
				schedule.FormatLabel(end),
				strconv.Itoa(bay),
				serviceName,
				appointment.Vehicle,
				appointment.Name,
				appointment.Phone,
				appointment.Status,
			},
		})
	}

	slices.SortFunc(rows, func(a, b row) int {
		return cmp.Or(cmp.Compare(a.bay, b.bay), cmp.Compare(a.start, b.start))
	})

	var buf bytes.Buffer

	writer := csv.NewWriter(&buf)

	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write worksheet header: %w", err)
	}

	for _, r := range rows {
		if err := writer.Write(r.fields); err != nil {
			return nil, fmt.Errorf("failed to write worksheet row: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush worksheet: %w", err)
	}

	return buf.Bytes(), nil
}
