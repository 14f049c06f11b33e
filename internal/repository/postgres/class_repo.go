package postgres

import (
	"context"
	"errors"

	"alcyxob/fitness-schedule/internal/domain"
	"alcyxob/fitness-schedule/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// postgresClassRepository implements repository.ClassRepository.
type postgresClassRepository struct {
	db *gorm.DB
}

// NewClassRepository creates a new Class repository backed by Postgres.
func NewClassRepository(db *gorm.DB) repository.ClassRepository {
	return &postgresClassRepository{db: db}
}

func (r *postgresClassRepository) Create(ctx context.Context, class *domain.Class) (uuid.UUID, error) {
	if class.TrainerID == uuid.Nil {
		return uuid.Nil, errors.New("class requires a trainerId")
	}
	if err := r.db.WithContext(ctx).Create(class).Error; err != nil {
		return uuid.Nil, err
	}
	return class.ID, nil
}

func (r *postgresClassRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Class, error) {
	var class domain.Class
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&class).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &class, nil
}

func (r *postgresClassRepository) GetByTrainerID(ctx context.Context, trainerID uuid.UUID) ([]domain.Class, error) {
	var classes []domain.Class
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("created_at DESC").
		Find(&classes).Error
	if err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *postgresClassRepository) Update(ctx context.Context, class *domain.Class) error {
	if class.ID == uuid.Nil {
		return errors.New("class ID is required for update")
	}
	result := r.db.WithContext(ctx).Model(&domain.Class{}).
		Where("id = ? AND trainer_id = ?", class.ID, class.TrainerID).
		Updates(map[string]interface{}{
			"name":        class.Name,
			"description": class.Description,
			"capacity":    class.Capacity,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *postgresClassRepository) Delete(ctx context.Context, id uuid.UUID, trainerID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND trainer_id = ?", id, trainerID).
		Delete(&domain.Class{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
