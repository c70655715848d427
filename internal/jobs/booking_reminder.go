// File: internal/jobs/booking_reminder.go

// Package jobs schedules background batch work with robfig/cron.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"shortstay_backend/internal/booking"
	"shortstay_backend/internal/config"
)

// BookingReminderJob periodically sends check-in reminders for upcoming
// bookings.
type BookingReminderJob struct {
	bookingService booking.Service
	schedule       string
	logger         *zap.Logger
	cron           *cron.Cron
}

// NewBookingReminderJob creates the reminder job with the configured
// schedule.
func NewBookingReminderJob(bookingService booking.Service, cfg *config.Config, logger *zap.Logger) *BookingReminderJob {
	return &BookingReminderJob{
		bookingService: bookingService,
		schedule:       cfg.BookingReminderJobSchedule,
		logger:         logger.Named("booking_reminder_job"),
	}
}

// Start registers the cron entry and starts the scheduler.
func (j *BookingReminderJob) Start() error {
	j.cron = cron.New(cron.WithLogger(newCronLogger(j.logger)))

	_, err := j.cron.AddFunc(j.schedule, j.Run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Booking reminder job scheduled", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running invocation to finish.
func (j *BookingReminderJob) Stop() {
	if j.cron == nil {
		return
	}
	ctx := j.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(30 * time.Second):
		j.logger.Warn("Timed out waiting for booking reminder job to stop")
	}
}

// Run executes one reminder pass.
func (j *BookingReminderJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	summary, err := j.bookingService.SendCheckInReminders(ctx, time.Now().UTC())
	if err != nil {
		j.logger.Error("Booking reminder run failed", zap.Error(err))
		return
	}
	j.logger.Info("Booking reminder run finished",
		zap.Int("scanned", summary.Scanned),
		zap.Int("created", summary.Created),
		zap.Int("skipped", summary.Skipped),
		zap.Int("errored", summary.Errored),
	)
}

// cronLogger adapts zap to the cron.Logger interface.
type cronLogger struct {
	logger *zap.SugaredLogger
}

func newCronLogger(logger *zap.Logger) cron.Logger {
	return &cronLogger{logger: logger.Sugar()}
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Infow(msg, keysAndValues...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
