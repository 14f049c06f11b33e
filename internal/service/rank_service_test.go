package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"alcyxob/fitness-schedule/internal/domain"
	"alcyxob/fitness-schedule/internal/repository"

	"github.com/google/uuid"
)

type rankUpdate struct {
	points int
	title  string
}

type fakeUserRepo struct {
	users         []domain.User
	listErr       error
	updateRankErr map[uuid.UUID]error
	updates       map[uuid.UUID]rankUpdate
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	return &fakeUserRepo{
		users:         users,
		updateRankErr: make(map[uuid.UUID]error),
		updates:       make(map[uuid.UUID]rankUpdate),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (uuid.UUID, error) {
	user.ID = uuid.New()
	f.users = append(f.users, *user)
	return user.ID, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.users, nil
}

func (f *fakeUserRepo) UpdateRank(_ context.Context, id uuid.UUID, points int, title string) error {
	if err := f.updateRankErr[id]; err != nil {
		return err
	}
	f.updates[id] = rankUpdate{points: points, title: title}
	return nil
}

func seedCompletedWorkouts(repo *fakeScheduleRepo, userID uuid.UUID, count int) {
	for i := 0; i < count; i++ {
		d := day(2025, time.January, 1).AddDate(0, 0, i)
		repo.entries[slotKey(userID, domain.EntryWorkout, d)] = domain.ScheduleEntry{
			UserID: userID, Kind: domain.EntryWorkout, RefID: uuid.New(),
			EntryDate: d, Completed: true,
		}
	}
}

func TestRecalculateUser(t *testing.T) {
	userID := uuid.New()
	userRepo := newFakeUserRepo(domain.User{ID: userID})
	scheduleRepo := newFakeScheduleRepo()
	seedCompletedWorkouts(scheduleRepo, userID, 12)

	svc := NewRankService(userRepo, scheduleRepo)

	points, title, err := svc.RecalculateUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("RecalculateUser: %v", err)
	}
	if points != 120 || title != domain.RankIntermediate {
		t.Errorf("got %d points, title %q; want 120, %q", points, title, domain.RankIntermediate)
	}
	if got := userRepo.updates[userID]; got.points != 120 || got.title != domain.RankIntermediate {
		t.Errorf("persisted rank = %+v, want 120 / %q", got, domain.RankIntermediate)
	}
}

func TestRecalculateAllContinuesPastFailures(t *testing.T) {
	failing := domain.User{ID: uuid.New()}
	healthy := domain.User{ID: uuid.New()}
	userRepo := newFakeUserRepo(failing, healthy)
	userRepo.updateRankErr[failing.ID] = errors.New("store unreachable")

	scheduleRepo := newFakeScheduleRepo()
	seedCompletedWorkouts(scheduleRepo, healthy.ID, 3)

	svc := NewRankService(userRepo, scheduleRepo)

	if err := svc.RecalculateAll(context.Background()); err != nil {
		t.Fatalf("RecalculateAll should not fail on a per-user error: %v", err)
	}
	if _, ok := userRepo.updates[failing.ID]; ok {
		t.Error("failing user should not have a recorded update")
	}
	if got := userRepo.updates[healthy.ID]; got.points != 30 || got.title != domain.RankBeginner {
		t.Errorf("healthy user rank = %+v, want 30 / %q", got, domain.RankBeginner)
	}
}

func TestRecalculateAllListFailure(t *testing.T) {
	userRepo := newFakeUserRepo()
	userRepo.listErr = errors.New("store unreachable")

	svc := NewRankService(userRepo, newFakeScheduleRepo())

	if err := svc.RecalculateAll(context.Background()); err == nil {
		t.Fatal("RecalculateAll should surface a List failure")
	}
}
