package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"garage/infras/otel"
	"garage/infras/postgres"
	"garage/internal/domains/appointment/model"
	"garage/shared/constant"
	gDto "garage/shared/dto"
	"garage/shared/logger"
	gRepo "garage/shared/repository"

	"github.com/Masterminds/squirrel"
)

type Appointment interface {
	Insert(ctx context.Context, model model.Appointment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Appointment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Appointment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	FetchBooked(ctx context.Context, date, location string) ([]model.BookedSlot, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Appointment]
	db   *postgres.Connection
	otel otel.Otel
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func New(db *postgres.Connection, otel otel.Otel) Appointment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Appointment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// FetchBooked returns start time and service of every non-cancelled appointment on date at location.
func (repo *repositoryImpl) FetchBooked(ctx context.Context, date, location string) ([]model.BookedSlot, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".appointment.FetchBooked")
	defer scope.End()

	query, args, err := psql.
		Select(model.FieldTime, model.FieldService).
		From(model.TableName).
		Where(squirrel.Eq{model.FieldDate: date}).
		Where(squirrel.Eq{model.FieldLocation: location}).
		Where(squirrel.NotEq{model.FieldStatus: model.StatusCancelled}).
		ToSql()
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to build booked slots query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	slots := []model.BookedSlot{}

	if err = repo.db.Read.SelectContext(ctx, &slots, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to fetch booked slots (%s): %w", model.EntityName, err)
	}

	return slots, nil
}
