package service

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tubeshelf/tubeshelf-go/internal/model"
)

// ImportScheduler runs the watched-channel imports on cron schedules.
// Each watched channel declares a daily or weekly frequency; the matching
// job picks up every channel due for a check.
type ImportScheduler struct {
	importer *ImportService
	cron     *cron.Cron
}

// NewImportScheduler registers the daily and weekly jobs. Specs use the
// six-field cron format with a leading seconds column.
func NewImportScheduler(importer *ImportService, dailySpec, weeklySpec string) (*ImportScheduler, error) {
	s := &ImportScheduler{
		importer: importer,
		cron:     cron.New(cron.WithSeconds()),
	}

	if _, err := s.cron.AddFunc(dailySpec, func() { s.run(model.FrequencyDaily) }); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(weeklySpec, func() { s.run(model.FrequencyWeekly) }); err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the scheduler. A no-op when the importer is disabled.
func (s *ImportScheduler) Start() {
	if !s.importer.Enabled() {
		log.Println("scheduler: importer disabled, channel checks will not run")
		return
	}
	s.cron.Start()
	log.Println("scheduler: channel import jobs registered")
}

// Stop halts the scheduler and waits for any running job to finish.
func (s *ImportScheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(30 * time.Second):
		log.Println("scheduler: timed out waiting for running jobs")
	}
}

func (s *ImportScheduler) run(frequency string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	processed, err := s.importer.ImportDueChannels(ctx, frequency)
	if err != nil {
		log.Printf("scheduler: %s channel check failed: %v", frequency, err)
		return
	}
	log.Printf("scheduler: %s channel check done, %d channels in %s",
		frequency, processed, time.Since(start).Round(time.Millisecond))
}
