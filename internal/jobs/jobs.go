package jobs

import (
	"context"
	"fmt"
	"garage/config"
	"garage/infras/metrics"
	"garage/infras/otel"
	appointmentService "garage/internal/domains/appointment/service"
	worksheetService "garage/internal/domains/worksheet/service"
	"garage/shared/constant"
	"garage/shared/logger"
	"garage/shared/timezone"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	JobReminders = "reminders"
	JobWorksheet = "worksheet"

	runTimeout = 5 * time.Minute
)

type Scheduler struct {
	cron        *cron.Cron
	appointment appointmentService.Appointment
	worksheet   worksheetService.Worksheet
	metrics     *metrics.Metrics
	otel        otel.Otel
	log         zerolog.Logger
}

func New(
	cfg *config.Config,
	appointment appointmentService.Appointment,
	worksheet worksheetService.Worksheet,
	metrics *metrics.Metrics,
	otel otel.Otel,
) (*Scheduler, error) {
	jobLog := logger.Component("jobs")
	cronLog := cronLogger{log: jobLog}

	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(timezone.GetLocation()),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		appointment: appointment,
		worksheet:   worksheet,
		metrics:     metrics,
		otel:        otel,
		log:         jobLog,
	}

	if _, err := s.cron.AddFunc(cfg.Jobs.ReminderSchedule, func() { _ = s.run(JobReminders, s.SendReminders) }); err != nil {
		return nil, fmt.Errorf("failed to schedule reminder job %q: %w", cfg.Jobs.ReminderSchedule, err)
	}

	if _, err := s.cron.AddFunc(cfg.Jobs.WorksheetSchedule, func() { _ = s.run(JobWorksheet, s.ExportWorksheets) }); err != nil {
		return nil, fmt.Errorf("failed to schedule worksheet job %q: %w", cfg.Jobs.WorksheetSchedule, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("jobs", len(s.cron.Entries())).Msg("job scheduler started")
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()

	select {
	case <-done.Done():
		s.log.Info().Msg("job scheduler stopped")
	case <-ctx.Done():
		s.log.Warn().Msg("job scheduler stop timed out, abandoning running jobs")
	}
}

// SendReminders announces tomorrow's appointments.
func (s *Scheduler) SendReminders(ctx context.Context) error {
	tomorrow := timezone.Today().AddDate(0, 0, 1).Format(constant.DayFormat)

	sent, err := s.appointment.SendReminders(ctx, tomorrow)
	if err != nil {
		return fmt.Errorf("failed to send reminders for %s: %w", tomorrow, err)
	}

	s.log.Info().Str("date", tomorrow).Int("sent", sent).Msg("reminders published")

	return nil
}

// ExportWorksheets uploads today's work sheets.
func (s *Scheduler) ExportWorksheets(ctx context.Context) error {
	today := timezone.Today().Format(constant.DayFormat)

	urls, err := s.worksheet.Export(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to export worksheets for %s: %w", today, err)
	}

	s.log.Info().Str("date", today).Strs("urls", urls).Msg("worksheets exported")

	return nil
}

func (s *Scheduler) run(name string, job func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	ctx = context.WithValue(ctx, constant.ContextKeyActor, constant.ActorSystem)

	ctx, scope := s.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+"."+name)
	defer scope.End()

	started := time.Now()

	err := job(ctx)
	s.metrics.JobRun(name, err)

	if err != nil {
		scope.TraceError(err)

		s.log.Error().Err(err).Str("job", name).Dur("took", time.Since(started)).Msg("job failed")

		return err
	}

	s.log.Info().Str("job", name).Dur("took", time.Since(started)).Msg("job finished")

	return nil
}

// cronLogger routes robfig/cron logs through zerolog.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
