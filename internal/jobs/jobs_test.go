package jobs

import (
	"context"
	"errors"
	"garage/config"
	otelMocks "garage/infras/otel/mocks"
	appointmentMocks "garage/internal/domains/appointment/mocks"
	worksheetMocks "garage/internal/domains/worksheet/mocks"
	"garage/shared/constant"
	"garage/shared/timezone"
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Jobs.ReminderSchedule = "0 18 * * *"
	cfg.Jobs.WorksheetSchedule = "0 6 * * *"

	return cfg
}

func TestNew_RegistersJobs(t *testing.T) {
	ctrl := gomock.NewController(t)

	scheduler, err := New(newConfig(), appointmentMocks.NewMockAppointmentService(ctrl), worksheetMocks.NewMockWorksheet(ctrl), nil, otelMocks.NewOtel())
	require.NoError(t, err)

	assert.Len(t, scheduler.cron.Entries(), 2)

	scheduler.Start()
	scheduler.Stop(context.Background())
}

func TestNew_InvalidSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)

	cfg := newConfig()
	cfg.Jobs.ReminderSchedule = "every evening"

	_, err := New(cfg, appointmentMocks.NewMockAppointmentService(ctrl), worksheetMocks.NewMockWorksheet(ctrl), nil, otelMocks.NewOtel())
	assert.Error(t, err)
}

func TestScheduler_Jobs(t *testing.T) {
	tomorrow := timezone.Today().AddDate(0, 0, 1).Format(constant.DayFormat)
	today := timezone.Today().Format(constant.DayFormat)

	tests := []struct {
		name    string
		job     string
		setup   func(a *appointmentMocks.MockAppointmentService, w *worksheetMocks.MockWorksheet)
		wantErr bool
	}{
		{
			name: "reminders for tomorrow",
			job:  JobReminders,
			setup: func(a *appointmentMocks.MockAppointmentService, _ *worksheetMocks.MockWorksheet) {
				a.EXPECT().SendReminders(gomock.Any(), tomorrow).Return(3, nil)
			},
		},
		{
			name: "reminder failure",
			job:  JobReminders,
			setup: func(a *appointmentMocks.MockAppointmentService, _ *worksheetMocks.MockWorksheet) {
				a.EXPECT().SendReminders(gomock.Any(), tomorrow).Return(0, errors.New("broker down"))
			},
			wantErr: true,
		},
		{
			name: "worksheets for today",
			job:  JobWorksheet,
			setup: func(_ *appointmentMocks.MockAppointmentService, w *worksheetMocks.MockWorksheet) {
				w.EXPECT().Export(gomock.Any(), today).Return([]string{"https://files.example.com/a.csv"}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			appointment := appointmentMocks.NewMockAppointmentService(ctrl)
			worksheet := worksheetMocks.NewMockWorksheet(ctrl)

			tt.setup(appointment, worksheet)

			scheduler, err := New(newConfig(), appointment, worksheet, nil, otelMocks.NewOtel())
			require.NoError(t, err)

			job := scheduler.SendReminders
			if tt.job == JobWorksheet {
				job = scheduler.ExportWorksheets
			}

			err = scheduler.run(tt.job, job)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCronLogger_RecoverChain(t *testing.T) {
	chain := cron.NewChain(cron.Recover(cronLogger{log: zerolog.Nop()}))

	assert.NotPanics(t, func() {
		chain.Then(cron.FuncJob(func() { panic("job exploded") })).Run()
	})
}
