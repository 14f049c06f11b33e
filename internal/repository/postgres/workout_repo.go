package postgres

import (
	"context"
	"errors"

	"alcyxob/fitness-schedule/internal/domain"
	"alcyxob/fitness-schedule/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// postgresWorkoutRepository implements repository.WorkoutRepository.
type postgresWorkoutRepository struct {
	db *gorm.DB
}

// NewWorkoutRepository creates a new Workout repository backed by Postgres.
func NewWorkoutRepository(db *gorm.DB) repository.WorkoutRepository {
	return &postgresWorkoutRepository{db: db}
}

func (r *postgresWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (uuid.UUID, error) {
	if workout.TrainerID == uuid.Nil {
		return uuid.Nil, errors.New("workout requires a trainerId")
	}
	if err := r.db.WithContext(ctx).Create(workout).Error; err != nil {
		return uuid.Nil, err
	}
	return workout.ID, nil
}

func (r *postgresWorkoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&workout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

func (r *postgresWorkoutRepository) GetByTrainerID(ctx context.Context, trainerID uuid.UUID) ([]domain.Workout, error) {
	var workouts []domain.Workout
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("created_at DESC").
		Find(&workouts).Error
	if err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *postgresWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	if workout.ID == uuid.Nil {
		return errors.New("workout ID is required for update")
	}
	result := r.db.WithContext(ctx).Model(&domain.Workout{}).
		Where("id = ? AND trainer_id = ?", workout.ID, workout.TrainerID).
		Updates(map[string]interface{}{
			"name":             workout.Name,
			"description":      workout.Description,
			"muscle_group":     workout.MuscleGroup,
			"difficulty":       workout.Difficulty,
			"media_object_key": workout.MediaObjectKey,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *postgresWorkoutRepository) Delete(ctx context.Context, id uuid.UUID, trainerID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND trainer_id = ?", id, trainerID).
		Delete(&domain.Workout{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
