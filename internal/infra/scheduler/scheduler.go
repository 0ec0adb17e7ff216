package scheduler

import (
	"context"
	"time"

	"business_notification_service/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// TickScheduler drives the schedule service on a fixed cron interval
// (every minute by default). All job execution happens inside the tick
// callback; this type only owns the cron lifecycle.
type TickScheduler struct {
	cronEngine  *cron.Cron
	scheduleSvc *app.ScheduleService
	logger      *logrus.Logger
	cronSpec    string
}

func NewTickScheduler(scheduleSvc *app.ScheduleService, logger *logrus.Logger, cronSpec string) *TickScheduler {
	return &TickScheduler{
		cronEngine:  cron.New(cron.WithLocation(time.Local)),
		scheduleSvc: scheduleSvc,
		logger:      logger,
		cronSpec:    cronSpec,
	}
}

func (s *TickScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := s.scheduleSvc.Tick(ctx); err != nil {
			s.logger.WithError(err).Error("Scheduler tick failed")
		}
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Notification scheduler started")
	return nil
}

// Stop halts the cron engine and waits for a running tick to finish.
func (s *TickScheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("Notification scheduler stopped")
}
