package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic jobs: a daily suggestion refresh so the
// seasonal list tracks the calendar, and a daily command stats report.
type Scheduler struct {
	cron        *cron.Cron
	ctx         context.Context
	cancel      context.CancelFunc
	refreshFunc func(ctx context.Context)
	reportFunc  func(ctx context.Context) error
}

func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetRefreshFunction sets the daily suggestion refresh job.
func (s *Scheduler) SetRefreshFunction(f func(ctx context.Context)) {
	s.refreshFunc = f
}

// SetReportFunction sets the daily stats report job.
func (s *Scheduler) SetReportFunction(f func(ctx context.Context) error) {
	s.reportFunc = f
}

func (s *Scheduler) Start() error {
	if s.refreshFunc == nil && s.reportFunc == nil {
		log.Println("⚠️ No scheduled jobs configured, scheduler will not start")
		return nil
	}

	if s.refreshFunc != nil {
		// Daily at 06:00 UTC
		if _, err := s.cron.AddFunc("0 6 * * *", func() {
			log.Println("🕕 Triggered daily suggestion refresh at 06:00 UTC")
			s.refreshFunc(s.ctx)
		}); err != nil {
			return err
		}
	}

	if s.reportFunc != nil {
		// Daily at 21:00 UTC
		if _, err := s.cron.AddFunc("0 21 * * *", func() {
			log.Println("🕘 Triggered daily report generation at 21:00 UTC")
			if err := s.reportFunc(s.ctx); err != nil {
				log.Printf("❌ Daily report generation failed: %v", err)
			}
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	log.Println("📅 Scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Println("📅 Scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
