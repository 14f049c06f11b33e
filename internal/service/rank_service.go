package service

import (
	"context"
	"fmt"

	"alcyxob/fitness-schedule/internal/domain"
	"alcyxob/fitness-schedule/internal/logger"
	"alcyxob/fitness-schedule/internal/repository"

	"github.com/google/uuid"
)

// RankService recomputes user progression from completed schedule entries.
// Invoked by the nightly cron job and available ad hoc per user.
type RankService interface {
	RecalculateUser(ctx context.Context, userID uuid.UUID) (points int, title string, err error)
	RecalculateAll(ctx context.Context) error
}

// rankService implements the RankService interface.
type rankService struct {
	userRepo     repository.UserRepository
	scheduleRepo repository.ScheduleRepository
}

// NewRankService creates a new instance of rankService.
func NewRankService(userRepo repository.UserRepository, scheduleRepo repository.ScheduleRepository) RankService {
	return &rankService{
		userRepo:     userRepo,
		scheduleRepo: scheduleRepo,
	}
}

// RecalculateUser recomputes and persists one user's points and title.
func (s *rankService) RecalculateUser(ctx context.Context, userID uuid.UUID) (int, string, error) {
	completed, err := s.scheduleRepo.CountCompletedWorkouts(ctx, userID)
	if err != nil {
		return 0, "", fmt.Errorf("count completed workouts: %w", err)
	}

	points := domain.RankPoints(completed)
	title := domain.RankTitleFor(points)

	if err := s.userRepo.UpdateRank(ctx, userID, points, title); err != nil {
		return 0, "", fmt.Errorf("update rank for user %s: %w", userID, err)
	}
	return points, title, nil
}

// RecalculateAll recomputes every user's rank. A failure on one user is
// logged and does not stop the sweep.
func (s *rankService) RecalculateAll(ctx context.Context) error {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	for _, user := range users {
		if _, _, err := s.RecalculateUser(ctx, user.ID); err != nil {
			logger.Log.WithError(err).WithField("userId", user.ID).Warn("rank recalculation failed for user")
		}
	}
	return nil
}
