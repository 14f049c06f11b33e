package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/fitness-schedule/internal/domain"
	"alcyxob/fitness-schedule/internal/repository"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrPastDateImmutable = errors.New("schedule for past dates is read-only")
	ErrAlreadyAssigned   = errors.New("an entry is already scheduled for this date")
	ErrFutureCompletion  = errors.New("cannot complete a workout scheduled in the future")
)

// ScheduleService is the calendar engine: it builds the month day-grid and
// coordinates workout/class assignment against the Schedule Store.
//
// "today" is an explicit parameter on every call rather than read from the
// wall clock internally, so the past/future boundary is re-evaluated per
// operation and tests can inject fixed dates. Mutations do not return an
// updated grid; after a successful mutation the caller re-invokes BuildGrid
// (pull-based refresh).
type ScheduleService interface {
	// BuildGrid produces the day cells for the month containing monthAnchor,
	// in ascending date order, padded with filler cells to whole 7-day rows.
	BuildGrid(ctx context.Context, userID uuid.UUID, monthAnchor, today time.Time) ([]domain.DayCell, error)

	AssignWorkout(ctx context.Context, userID, workoutID uuid.UUID, date, today time.Time) error
	AssignClass(ctx context.Context, userID, classID uuid.UUID, date, today time.Time) error

	ReplaceWorkout(ctx context.Context, userID, workoutID uuid.UUID, date, today time.Time) error
	ReplaceClass(ctx context.Context, userID, classID uuid.UUID, date, today time.Time) error

	RemoveWorkout(ctx context.Context, userID uuid.UUID, date, today time.Time) error
	RemoveClass(ctx context.Context, userID uuid.UUID, date, today time.Time) error

	// CompleteWorkout marks the workout scheduled on date as done. Completion
	// is recorded history, so it is allowed on today and past dates only.
	CompleteWorkout(ctx context.Context, userID uuid.UUID, date, today time.Time) error
}

// scheduleService implements the ScheduleService interface.
type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	weekStart    time.Weekday
}

// NewScheduleService creates a new instance of scheduleService. weekStart is
// the day of week laid out in grid column 0.
func NewScheduleService(scheduleRepo repository.ScheduleRepository, weekStart time.Weekday) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		weekStart:    weekStart,
	}
}

// === Grid Builder ===

// BuildGrid fetches the month's schedule facts in one batched query and lays
// the cells out on the fixed 7-column grid. A store failure fails the whole
// build; no partial grid is ever returned.
func (s *scheduleService) BuildGrid(ctx context.Context, userID uuid.UUID, monthAnchor, today time.Time) ([]domain.DayCell, error) {
	monthAnchor = domain.DateOnly(monthAnchor)
	today = domain.DateOnly(today)

	start, days := domain.GridRange(monthAnchor, s.weekStart)
	end := start.AddDate(0, 0, days-1)

	schedule, err := s.scheduleRepo.FetchMonthSchedule(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch month schedule: %w", err)
	}

	cells := make([]domain.DayCell, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		inMonth := date.Year() == monthAnchor.Year() && date.Month() == monthAnchor.Month()

		cell := domain.DayCell{
			Date:       date,
			GridRow:    i / domain.DaysPerWeek,
			GridColumn: i % domain.DaysPerWeek,
			IsEnabled:  inMonth,
		}
		if inMonth {
			cell.DayNumber = date.Day()
			cell.IsCurrentDay = date.Equal(today)
			if day, ok := schedule[date]; ok {
				cell.HasWorkout = day.HasWorkout
				cell.HasClass = day.HasClass
				cell.IsWorkoutCompleted = day.WorkoutCompleted
			}
		}
		cells = append(cells, cell)
	}
	return cells, nil
}

// === Assignment Coordinator ===

func (s *scheduleService) AssignWorkout(ctx context.Context, userID, workoutID uuid.UUID, date, today time.Time) error {
	return s.assign(ctx, userID, workoutID, domain.EntryWorkout, date, today)
}

func (s *scheduleService) AssignClass(ctx context.Context, userID, classID uuid.UUID, date, today time.Time) error {
	return s.assign(ctx, userID, classID, domain.EntryClass, date, today)
}

func (s *scheduleService) ReplaceWorkout(ctx context.Context, userID, workoutID uuid.UUID, date, today time.Time) error {
	return s.replace(ctx, userID, workoutID, domain.EntryWorkout, date, today)
}

func (s *scheduleService) ReplaceClass(ctx context.Context, userID, classID uuid.UUID, date, today time.Time) error {
	return s.replace(ctx, userID, classID, domain.EntryClass, date, today)
}

func (s *scheduleService) RemoveWorkout(ctx context.Context, userID uuid.UUID, date, today time.Time) error {
	return s.remove(ctx, userID, domain.EntryWorkout, date, today)
}

func (s *scheduleService) RemoveClass(ctx context.Context, userID uuid.UUID, date, today time.Time) error {
	return s.remove(ctx, userID, domain.EntryClass, date, today)
}

// assign inserts a new entry into the given slot. It never overwrites: an
// occupied slot surfaces ErrAlreadyAssigned and the caller must use replace.
func (s *scheduleService) assign(ctx context.Context, userID, refID uuid.UUID, kind domain.EntryKind, date, today time.Time) error {
	date, today = domain.DateOnly(date), domain.DateOnly(today)
	if date.Before(today) {
		return ErrPastDateImmutable
	}

	entry := &domain.ScheduleEntry{
		UserID:    userID,
		Kind:      kind,
		RefID:     refID,
		EntryDate: date,
	}
	if err := s.scheduleRepo.InsertEntry(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyAssigned
		}
		return fmt.Errorf("insert schedule entry: %w", err)
	}
	return nil
}

// replace swaps the entry occupying the slot for a new one: fetch existing,
// delete it, insert the replacement. The delete is issued strictly before the
// insert and the two steps are not atomic; if the insert fails the slot is
// left unassigned and the caller must retry the full replace.
func (s *scheduleService) replace(ctx context.Context, userID, refID uuid.UUID, kind domain.EntryKind, date, today time.Time) error {
	date, today = domain.DateOnly(date), domain.DateOnly(today)
	if date.Before(today) {
		return ErrPastDateImmutable
	}

	existing, err := s.scheduleRepo.FetchEntry(ctx, userID, kind, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("fetch schedule entry: %w", err)
	}

	if err := s.scheduleRepo.DeleteEntry(ctx, userID, kind, existing.RefID, date); err != nil {
		return fmt.Errorf("delete schedule entry: %w", err)
	}

	entry := &domain.ScheduleEntry{
		UserID:    userID,
		Kind:      kind,
		RefID:     refID,
		EntryDate: date,
	}
	if err := s.scheduleRepo.InsertEntry(ctx, entry); err != nil {
		return fmt.Errorf("insert replacement entry, slot left unassigned: %w", err)
	}
	return nil
}

// remove deletes the entry occupying the slot. An empty slot surfaces
// repository.ErrNotFound, which callers may treat as success.
func (s *scheduleService) remove(ctx context.Context, userID uuid.UUID, kind domain.EntryKind, date, today time.Time) error {
	date, today = domain.DateOnly(date), domain.DateOnly(today)
	if date.Before(today) {
		return ErrPastDateImmutable
	}

	existing, err := s.scheduleRepo.FetchEntry(ctx, userID, kind, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("fetch schedule entry: %w", err)
	}

	if err := s.scheduleRepo.DeleteEntry(ctx, userID, kind, existing.RefID, date); err != nil {
		return fmt.Errorf("delete schedule entry: %w", err)
	}
	return nil
}

func (s *scheduleService) CompleteWorkout(ctx context.Context, userID uuid.UUID, date, today time.Time) error {
	date, today = domain.DateOnly(date), domain.DateOnly(today)
	if date.After(today) {
		return ErrFutureCompletion
	}

	if err := s.scheduleRepo.SetEntryCompleted(ctx, userID, date, true); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("mark workout completed: %w", err)
	}
	return nil
}
