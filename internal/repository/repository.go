package repository

import (
	"context"
	"time"

	"alcyxob/fitness-schedule/internal/domain"

	"github.com/google/uuid"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate entry")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (uuid.UUID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateRank(ctx context.Context, id uuid.UUID, points int, title string) error
}

// WorkoutRepository defines the interface for interacting with workout templates.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Workout, error)
	GetByTrainerID(ctx context.Context, trainerID uuid.UUID) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id uuid.UUID, trainerID uuid.UUID) error // Ensure trainer owns the workout
}

// ClassRepository defines the interface for interacting with class data.
type ClassRepository interface {
	Create(ctx context.Context, class *domain.Class) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Class, error)
	GetByTrainerID(ctx context.Context, trainerID uuid.UUID) ([]domain.Class, error)
	Update(ctx context.Context, class *domain.Class) error
	Delete(ctx context.Context, id uuid.UUID, trainerID uuid.UUID) error
}

// ScheduleRepository is the Schedule Store: per (user, date) at most one
// workout entry and at most one class entry. All dates are midnight UTC.
type ScheduleRepository interface {
	// FetchMonthSchedule returns the schedule facts for every date in
	// [start, end] that has at least one entry. One batched query; dates
	// without entries are simply absent from the map.
	FetchMonthSchedule(ctx context.Context, userID uuid.UUID, start, end time.Time) (map[time.Time]domain.DaySchedule, error)

	// FetchEntry returns the entry occupying the given slot, or ErrNotFound.
	FetchEntry(ctx context.Context, userID uuid.UUID, kind domain.EntryKind, date time.Time) (*domain.ScheduleEntry, error)

	// InsertEntry creates a new entry. Returns ErrDuplicate when the slot is
	// already occupied.
	InsertEntry(ctx context.Context, entry *domain.ScheduleEntry) error

	// DeleteEntry removes the entry identified by its composite key.
	// Returns ErrNotFound when no such entry exists.
	DeleteEntry(ctx context.Context, userID uuid.UUID, kind domain.EntryKind, refID uuid.UUID, date time.Time) error

	// SetEntryCompleted flips the completion flag on a workout entry.
	SetEntryCompleted(ctx context.Context, userID uuid.UUID, date time.Time, completed bool) error

	// CountCompletedWorkouts counts completed workout entries for a user,
	// feeding the rank calculator.
	CountCompletedWorkouts(ctx context.Context, userID uuid.UUID) (int64, error)
}
