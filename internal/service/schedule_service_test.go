package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"alcyxob/fitness-schedule/internal/domain"
	"alcyxob/fitness-schedule/internal/repository"

	"github.com/google/uuid"
)

// fakeScheduleRepo is an in-memory Schedule Store that counts calls so tests
// can assert which store operations a coordinator action performed.
type fakeScheduleRepo struct {
	entries map[string]domain.ScheduleEntry

	fetchMonthErr error
	insertErr     error
	deleteErr     error

	fetchMonthCalls int
	insertCalls     int
	deleteCalls     int
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{entries: make(map[string]domain.ScheduleEntry)}
}

func slotKey(userID uuid.UUID, kind domain.EntryKind, date time.Time) string {
	return fmt.Sprintf("%s|%s|%s", userID, kind, date.Format("2006-01-02"))
}

func (f *fakeScheduleRepo) FetchMonthSchedule(_ context.Context, userID uuid.UUID, start, end time.Time) (map[time.Time]domain.DaySchedule, error) {
	f.fetchMonthCalls++
	if f.fetchMonthErr != nil {
		return nil, f.fetchMonthErr
	}
	schedule := make(map[time.Time]domain.DaySchedule)
	for _, e := range f.entries {
		if e.UserID != userID || e.EntryDate.Before(start) || e.EntryDate.After(end) {
			continue
		}
		day := schedule[e.EntryDate]
		switch e.Kind {
		case domain.EntryWorkout:
			day.HasWorkout = true
			day.WorkoutCompleted = e.Completed
		case domain.EntryClass:
			day.HasClass = true
		}
		schedule[e.EntryDate] = day
	}
	return schedule, nil
}

func (f *fakeScheduleRepo) FetchEntry(_ context.Context, userID uuid.UUID, kind domain.EntryKind, date time.Time) (*domain.ScheduleEntry, error) {
	e, ok := f.entries[slotKey(userID, kind, domain.DateOnly(date))]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (f *fakeScheduleRepo) InsertEntry(_ context.Context, entry *domain.ScheduleEntry) error {
	f.insertCalls++
	if f.insertErr != nil {
		return f.insertErr
	}
	key := slotKey(entry.UserID, entry.Kind, entry.EntryDate)
	if _, exists := f.entries[key]; exists {
		return repository.ErrDuplicate
	}
	entry.ID = uuid.New()
	f.entries[key] = *entry
	return nil
}

func (f *fakeScheduleRepo) DeleteEntry(_ context.Context, userID uuid.UUID, kind domain.EntryKind, refID uuid.UUID, date time.Time) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	key := slotKey(userID, kind, domain.DateOnly(date))
	e, ok := f.entries[key]
	if !ok || e.RefID != refID {
		return repository.ErrNotFound
	}
	delete(f.entries, key)
	return nil
}

func (f *fakeScheduleRepo) SetEntryCompleted(_ context.Context, userID uuid.UUID, date time.Time, completed bool) error {
	key := slotKey(userID, domain.EntryWorkout, domain.DateOnly(date))
	e, ok := f.entries[key]
	if !ok {
		return repository.ErrNotFound
	}
	e.Completed = completed
	f.entries[key] = e
	return nil
}

func (f *fakeScheduleRepo) CountCompletedWorkouts(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, e := range f.entries {
		if e.UserID == userID && e.Kind == domain.EntryWorkout && e.Completed {
			count++
		}
	}
	return count, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// --- Grid Builder ---

func TestBuildGridMay2025Layout(t *testing.T) {
	// May 2025 starts on a Thursday; Sunday-start grid has 4 leading filler
	// cells (Apr 27-30) and no trailing filler (May 31 is a Saturday).
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, time.Sunday)
	userID := uuid.New()

	cells, err := svc.BuildGrid(context.Background(), userID, day(2025, time.May, 1), day(2025, time.May, 1))
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}

	if len(cells) != 35 {
		t.Fatalf("cell count = %d, want 35", len(cells))
	}
	if repo.fetchMonthCalls != 1 {
		t.Errorf("fetchMonthCalls = %d, want exactly 1 batched fetch", repo.fetchMonthCalls)
	}

	for i := 0; i < 4; i++ {
		if cells[i].IsEnabled {
			t.Errorf("cell %d (%v) is a leading filler, IsEnabled should be false", i, cells[i].Date)
		}
		if cells[i].DayNumber != 0 {
			t.Errorf("filler cell %d has DayNumber %d, want 0", i, cells[i].DayNumber)
		}
	}
	if want := day(2025, time.April, 27); !cells[0].Date.Equal(want) {
		t.Errorf("first cell date = %v, want %v", cells[0].Date, want)
	}
	if !cells[4].IsEnabled || cells[4].DayNumber != 1 {
		t.Errorf("cell 4 should be May 1: enabled=%v dayNumber=%d", cells[4].IsEnabled, cells[4].DayNumber)
	}
	last := cells[len(cells)-1]
	if !last.Date.Equal(day(2025, time.May, 31)) || !last.IsEnabled {
		t.Errorf("last cell = %v enabled=%v, want May 31 in-month", last.Date, last.IsEnabled)
	}
}

func TestBuildGridCellCountMultipleOfSeven(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, time.Monday)
	userID := uuid.New()

	for month := time.January; month <= time.December; month++ {
		cells, err := svc.BuildGrid(context.Background(), userID, day(2025, month, 10), day(2025, time.June, 1))
		if err != nil {
			t.Fatalf("BuildGrid %v: %v", month, err)
		}
		if len(cells) == 0 || len(cells)%7 != 0 {
			t.Errorf("%v: cell count = %d, want positive multiple of 7", month, len(cells))
		}
	}
}

func TestBuildGridOrderingAndPosition(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, time.Sunday)

	cells, err := svc.BuildGrid(context.Background(), uuid.New(), day(2025, time.May, 1), day(2025, time.May, 1))
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}

	for i, cell := range cells {
		if i > 0 && !cells[i-1].Date.Before(cell.Date) {
			t.Fatalf("cells not in strictly ascending date order at index %d", i)
		}
		if cell.GridColumn != i%7 {
			t.Errorf("cell %d GridColumn = %d, want %d", i, cell.GridColumn, i%7)
		}
		if cell.GridRow != i/7 {
			t.Errorf("cell %d GridRow = %d, want %d", i, cell.GridRow, i/7)
		}
		if int(cell.Date.Weekday()) != (int(time.Sunday)+cell.GridColumn)%7 {
			t.Errorf("cell %d weekday %v inconsistent with column %d", i, cell.Date.Weekday(), cell.GridColumn)
		}
	}
}

func TestBuildGridCurrentDay(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, time.Sunday)
	userID := uuid.New()

	t.Run("today inside month", func(t *testing.T) {
		cells, err := svc.BuildGrid(context.Background(), userID, day(2025, time.May, 1), day(2025, time.May, 10))
		if err != nil {
			t.Fatalf("BuildGrid: %v", err)
		}
		current := 0
		for _, cell := range cells {
			if cell.IsCurrentDay {
				current++
				if !cell.Date.Equal(day(2025, time.May, 10)) {
					t.Errorf("current day cell is %v, want May 10", cell.Date)
				}
			}
		}
		if current != 1 {
			t.Errorf("current day cells = %d, want exactly 1", current)
		}
	})

	t.Run("today outside month", func(t *testing.T) {
		cells, err := svc.BuildGrid(context.Background(), userID, day(2025, time.May, 1), day(2025, time.June, 2))
		if err != nil {
			t.Fatalf("BuildGrid: %v", err)
		}
		for _, cell := range cells {
			if cell.IsCurrentDay {
				t.Errorf("cell %v marked current, want none", cell.Date)
			}
		}
	})

	t.Run("today on a filler date", func(t *testing.T) {
		// Apr 28 appears in the May grid as filler; it must not be marked
		// current because today does not fall within the requested month.
		cells, err := svc.BuildGrid(context.Background(), userID, day(2025, time.May, 1), day(2025, time.April, 28))
		if err != nil {
			t.Fatalf("BuildGrid: %v", err)
		}
		for _, cell := range cells {
			if cell.IsCurrentDay {
				t.Errorf("filler date %v marked current", cell.Date)
			}
		}
	})
}

func TestBuildGridScheduleFlags(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, time.Sunday)
	userID := uuid.New()

	repo.entries[slotKey(userID, domain.EntryWorkout, day(2025, time.May, 10))] = domain.ScheduleEntry{
		UserID: userID, Kind: domain.EntryWorkout, RefID: uuid.New(),
		EntryDate: day(2025, time.May, 10), Completed: true,
	}
	repo.entries[slotKey(userID, domain.EntryClass, day(2025, time.May, 10))] = domain.ScheduleEntry{
		UserID: userID, Kind: domain.EntryClass, RefID: uuid.New(),
		EntryDate: day(2025, time.May, 10),
	}
	repo.entries[slotKey(userID, domain.EntryWorkout, day(2025, time.May, 20))] = domain.ScheduleEntry{
		UserID: userID, Kind: domain.EntryWorkout, RefID: uuid.New(),
		EntryDate: day(2025, time.May, 20),
	}

	cells, err := svc.BuildGrid(context.Background(), userID, day(2025, time.May, 1), day(2025, time.May, 1))
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}

	byDate := make(map[time.Time]domain.DayCell)
	for _, cell := range cells {
		byDate[cell.Date] = cell
	}

	c10 := byDate[day(2025, time.May, 10)]
	if !c10.HasWorkout || !c10.HasClass || !c10.IsWorkoutCompleted {
		t.Errorf("May 10 flags = workout:%v class:%v completed:%v, want all true", c10.HasWorkout, c10.HasClass, c10.IsWorkoutCompleted)
	}
	c20 := byDate[day(2025, time.May, 20)]
	if !c20.HasWorkout || c20.IsWorkoutCompleted || c20.HasClass {
		t.Errorf("May 20 flags = workout:%v completed:%v class:%v, want workout only", c20.HasWorkout, c20.IsWorkoutCompleted, c20.HasClass)
	}
	c11 := byDate[day(2025, time.May, 11)]
	if c11.HasWorkout || c11.HasClass {
		t.Errorf("May 11 should have no schedule flags")
	}
}

func TestBuildGridFillerCellsNeverCarryFlags(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, time.Sunday)
	userID := uuid.New()

	// An entry on Apr 28 falls inside the fetched range but belongs to the
	// previous month; the filler cell must stay blank.
	repo.entries[slotKey(userID, domain.EntryWorkout, day(2025, time.April, 28))] = domain.ScheduleEntry{
		UserID: userID, Kind: domain.EntryWorkout, RefID: uuid.New(),
		EntryDate: day(2025, time.April, 28),
	}

	cells, err := svc.BuildGrid(context.Background(), userID, day(2025, time.May, 1), day(2025, time.May, 1))
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	for _, cell := range cells {
		if !cell.IsEnabled && (cell.HasWorkout || cell.HasClass) {
			t.Errorf("filler cell %v carries schedule flags", cell.Date)
		}
	}
}

func TestBuildGridFetchFailure(t *testing.T) {
	repo := newFakeScheduleRepo()
	repo.fetchMonthErr = errors.New("store unreachable")
	svc := NewScheduleService(repo, time.Sunday)

	cells, err := svc.BuildGrid(context.Background(), uuid.New(), day(2025, time.May, 1), day(2025, time.May, 1))
	if err == nil {
		t.Fatal("BuildGrid should fail when the store fetch fails")
	}
	if cells != nil {
		t.Errorf("no partial grid may be returned on failure, got %d cells", len(cells))
	}
}

// --- Assignment Coordinator ---

func TestAssignPastDateRejected(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, time.Sunday)

	err := svc.AssignWorkout(context.Background(), uuid.New(), uuid.New(), day(2025, time.May, 9), day(2025, time.May, 10))
	if !errors.Is(err, ErrPastDateImmutable) {
		t.Fatalf("err = %v, want ErrPastDateImmutable", err)
	}
	if repo.insertCalls != 0 {
		t.Errorf("insertCalls = %d, want 0: rejected mutations must not touch the store", repo.insertCalls)
	}
}

func TestAssignTodayAndFuture(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, time.Sunday)
	userID := uuid.New()
	today := day(2025, time.May, 10)

	if err := svc.AssignWorkout(context.Background(), userID, uuid.New(), today, today); err != nil {
		t.Errorf("assign on today: %v", err)
	}
	if err := svc.AssignClass(context.Background(), userID, uuid.New(), day(2025, time.May, 20), today); err != nil {
		t.Errorf("assign on future date: %v", err)
	}
	if len(repo.entries) != 2 {
		t.Errorf("stored entries = %d, want 2", len(repo.entries))
	}
}

func TestAssignNeverOverwrites(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, time.Sunday)
	userID := uuid.New()
	today := day(2025, time.May, 1)
	target := day(2025, time.May, 10)
	originalWorkout := uuid.New()

	if err := svc.AssignWorkout(context.Background(), userID, originalWorkout, target, today); err != nil {
		t.Fatalf("first assign: %v", err)
	}

	err := svc.AssignWorkout(context.Background(), userID, uuid.New(), target, today)
	if !errors.Is(err, ErrAlreadyAssigned) {
		t.Fatalf("err = %v, want ErrAlreadyAssigned", err)
	}

	// The original assignment must be untouched.
	entry, ferr := repo.FetchEntry(context.Background(), userID, domain.EntryWorkout, target)
	if ferr != nil {
		t.Fatalf("FetchEntry: %v", ferr)
	}
	if entry.RefID != originalWorkout {
		t.Errorf("stored refID = %v, want original %v", entry.RefID, originalWorkout)
	}
}

func TestReplaceSwapsExactlyOnce(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, time.Sunday)
	userID := uuid.New()
	today := day(2025, time.May, 1)
	target := day(2025, time.May, 10)

	if err := svc.AssignWorkout(context.Background(), userID, uuid.New(), target, today); err != nil {
		t.Fatalf("assign: %v", err)
	}
	repo.insertCalls, repo.deleteCalls = 0, 0

	replacement := uuid.New()
	if err := svc.ReplaceWorkout(context.Background(), userID, replacement, target, today); err != nil {
		t.Fatalf("replace: %v", err)
	}

	if repo.deleteCalls != 1 || repo.insertCalls != 1 {
		t.Errorf("deleteCalls = %d, insertCalls = %d, want 1 and 1", repo.deleteCalls, repo.insertCalls)
	}
	entry, err := repo.FetchEntry(context.Background(), userID, domain.EntryWorkout, target)
	if err != nil {
		t.Fatalf("FetchEntry: %v", err)
	}
	if entry.RefID != replacement {
		t.Errorf("stored refID = %v, want replacement %v", entry.RefID, replacement)
	}
}

func TestReplacePastDateRejected(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, time.Sunday)

	err := svc.ReplaceWorkout(context.Background(), uuid.New(), uuid.New(), day(2025, time.May, 1), day(2025, time.May, 10))
	if !errors.Is(err, ErrPastDateImmutable) {
		t.Fatalf("err = %v, want ErrPastDateImmutable", err)
	}
}

func TestReplaceMissingEntry(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, time.Sunday)

	err := svc.ReplaceWorkout(context.Background(), uuid.New(), uuid.New(), day(2025, time.May, 10), day(2025, time.May, 1))
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want repository.ErrNotFound", err)
	}
}

func TestReplaceInsertFailureLeavesSlotUnassigned(t *testing.T) {
	// The delete-then-insert pair is not atomic: when the insert fails the
	// slot stays empty and the caller retries the full replace.
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, time.Sunday)
	userID := uuid.New()
	today := day(2025, time.May, 1)
	target := day(2025, time.May, 10)

	if err := svc.AssignWorkout(context.Background(), userID, uuid.New(), target, today); err != nil {
		t.Fatalf("assign: %v", err)
	}
	repo.insertErr = errors.New("store unreachable")

	err := svc.ReplaceWorkout(context.Background(), userID, uuid.New(), target, today)
	if err == nil {
		t.Fatal("replace should surface the insert failure")
	}
	if _, ferr := repo.FetchEntry(context.Background(), userID, domain.EntryWorkout, target); !errors.Is(ferr, repository.ErrNotFound) {
		t.Errorf("slot should be left unassigned after failed replace, got %v", ferr)
	}
}

func TestRemoveUnassignedDate(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, time.Sunday)

	err := svc.RemoveWorkout(context.Background(), uuid.New(), day(2025, time.May, 10), day(2025, time.May, 1))
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want repository.ErrNotFound", err)
	}
	if repo.deleteCalls != 0 {
		t.Errorf("deleteCalls = %d, want 0: nothing to delete", repo.deleteCalls)
	}
}

func TestRemovePastDateRejected(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, time.Sunday)

	err := svc.RemoveClass(context.Background(), uuid.New(), day(2025, time.May, 1), day(2025, time.May, 10))
	if !errors.Is(err, ErrPastDateImmutable) {
		t.Fatalf("err = %v, want ErrPastDateImmutable", err)
	}
}

func TestWorkoutAndClassSlotsAreIndependent(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, time.Sunday)
	userID := uuid.New()
	today := day(2025, time.May, 1)
	target := day(2025, time.May, 10)

	if err := svc.AssignWorkout(context.Background(), userID, uuid.New(), target, today); err != nil {
		t.Fatalf("assign workout: %v", err)
	}
	if err := svc.AssignClass(context.Background(), userID, uuid.New(), target, today); err != nil {
		t.Fatalf("assign class alongside workout: %v", err)
	}

	if err := svc.RemoveClass(context.Background(), userID, target, today); err != nil {
		t.Fatalf("remove class: %v", err)
	}
	if _, err := repo.FetchEntry(context.Background(), userID, domain.EntryWorkout, target); err != nil {
		t.Errorf("workout slot should survive class removal, got %v", err)
	}
}

func TestCompleteWorkout(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, time.Sunday)
	userID := uuid.New()
	today := day(2025, time.May, 10)

	repo.entries[slotKey(userID, domain.EntryWorkout, day(2025, time.May, 9))] = domain.ScheduleEntry{
		UserID: userID, Kind: domain.EntryWorkout, RefID: uuid.New(),
		EntryDate: day(2025, time.May, 9),
	}

	if err := svc.CompleteWorkout(context.Background(), userID, day(2025, time.May, 9), today); err != nil {
		t.Fatalf("complete on past date: %v", err)
	}
	entry, _ := repo.FetchEntry(context.Background(), userID, domain.EntryWorkout, day(2025, time.May, 9))
	if entry == nil || !entry.Completed {
		t.Error("entry should be marked completed")
	}

	err := svc.CompleteWorkout(context.Background(), userID, day(2025, time.May, 11), today)
	if !errors.Is(err, ErrFutureCompletion) {
		t.Errorf("err = %v, want ErrFutureCompletion", err)
	}

	err = svc.CompleteWorkout(context.Background(), userID, day(2025, time.May, 8), today)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("err = %v, want repository.ErrNotFound for empty slot", err)
	}
}

func TestMutationInputsTruncatedToDate(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, time.Sunday)
	userID := uuid.New()

	// A timestamped "date" earlier the same day must not count as past.
	noon := time.Date(2025, time.May, 10, 12, 0, 0, 0, time.UTC)
	lateToday := time.Date(2025, time.May, 10, 23, 30, 0, 0, time.UTC)
	if err := svc.AssignWorkout(context.Background(), userID, uuid.New(), noon, lateToday); err != nil {
		t.Fatalf("same-day assign with timestamps: %v", err)
	}
}
