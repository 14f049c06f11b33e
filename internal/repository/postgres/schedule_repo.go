package postgres

import (
	"context"
	"errors"
	"time"

	"alcyxob/fitness-schedule/internal/domain"
	"alcyxob/fitness-schedule/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// postgresScheduleRepository implements repository.ScheduleRepository,
// the Schedule Store backing the calendar grid.
type postgresScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new Schedule Store backed by Postgres.
func NewScheduleRepository(db *gorm.DB) repository.ScheduleRepository {
	return &postgresScheduleRepository{db: db}
}

// FetchMonthSchedule loads all entries for the user in [start, end] with a
// single query and folds them into per-date schedule facts.
func (r *postgresScheduleRepository) FetchMonthSchedule(ctx context.Context, userID uuid.UUID, start, end time.Time) (map[time.Time]domain.DaySchedule, error) {
	var entries []domain.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND entry_date >= ? AND entry_date <= ?", userID, start, end).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	schedule := make(map[time.Time]domain.DaySchedule, len(entries))
	for _, entry := range entries {
		date := domain.DateOnly(entry.EntryDate)
		day := schedule[date]
		switch entry.Kind {
		case domain.EntryWorkout:
			day.HasWorkout = true
			day.WorkoutCompleted = entry.Completed
		case domain.EntryClass:
			day.HasClass = true
		}
		schedule[date] = day
	}
	return schedule, nil
}

func (r *postgresScheduleRepository) FetchEntry(ctx context.Context, userID uuid.UUID, kind domain.EntryKind, date time.Time) (*domain.ScheduleEntry, error) {
	var entry domain.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND entry_date = ?", userID, kind, domain.DateOnly(date)).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *postgresScheduleRepository) InsertEntry(ctx context.Context, entry *domain.ScheduleEntry) error {
	if entry.UserID == uuid.Nil || entry.RefID == uuid.Nil {
		return errors.New("schedule entry requires userId and refId")
	}
	entry.EntryDate = domain.DateOnly(entry.EntryDate)
	err := r.db.WithContext(ctx).Create(entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Slot (user, date, kind) already occupied.
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *postgresScheduleRepository) DeleteEntry(ctx context.Context, userID uuid.UUID, kind domain.EntryKind, refID uuid.UUID, date time.Time) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND ref_id = ? AND entry_date = ?",
			userID, kind, refID, domain.DateOnly(date)).
		Delete(&domain.ScheduleEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *postgresScheduleRepository) SetEntryCompleted(ctx context.Context, userID uuid.UUID, date time.Time, completed bool) error {
	result := r.db.WithContext(ctx).Model(&domain.ScheduleEntry{}).
		Where("user_id = ? AND kind = ? AND entry_date = ?",
			userID, domain.EntryWorkout, domain.DateOnly(date)).
		Update("completed", completed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *postgresScheduleRepository) CountCompletedWorkouts(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ScheduleEntry{}).
		Where("user_id = ? AND kind = ? AND completed = ?", userID, domain.EntryWorkout, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
