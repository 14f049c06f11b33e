package scheduler

import (
	"context"
	"time"

	"alcyxob/fitness-schedule/internal/logger"
	"alcyxob/fitness-schedule/internal/service"

	"github.com/robfig/cron/v3"
)

// RankScheduler drives the nightly rank recalculation: progression points are
// derived from completed schedule entries, so they only need to catch up once
// a day.
type RankScheduler struct {
	cronEngine  *cron.Cron
	rankService service.RankService
	cronSpec    string
}

// NewRankScheduler creates a scheduler running the rank sweep on cronSpec,
// e.g. "0 3 * * *" for 03:00 daily.
func NewRankScheduler(rankService service.RankService, cronSpec string) *RankScheduler {
	return &RankScheduler{
		cronEngine:  cron.New(cron.WithLocation(time.UTC)),
		rankService: rankService,
		cronSpec:    cronSpec,
	}
}

func (s *RankScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		logger.Log.Info("Rank recalculation job triggered")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := s.rankService.RecalculateAll(ctx); err != nil {
			logger.Log.WithError(err).Error("Rank recalculation sweep failed")
			return
		}
		logger.Log.Info("Rank recalculation sweep completed")
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	logger.Log.WithField("cron", s.cronSpec).Info("Rank scheduler started")
	return nil
}

// Stop halts the cron engine and waits for a running job to finish.
func (s *RankScheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	logger.Log.Info("Rank scheduler stopped")
}
