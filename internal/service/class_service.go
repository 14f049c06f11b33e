package service

import (
	"context"
	"errors"
	"fmt"

	"alcyxob/fitness-schedule/internal/domain"
	"alcyxob/fitness-schedule/internal/repository"

	"github.com/google/uuid"
)

var ErrClassNotFound = errors.New("class not found")

type ClassService interface {
	CreateClass(ctx context.Context, trainerID uuid.UUID, name, description string, capacity int) (*domain.Class, error)
	GetClass(ctx context.Context, id uuid.UUID) (*domain.Class, error)
	GetClassesByTrainer(ctx context.Context, trainerID uuid.UUID) ([]domain.Class, error)
	UpdateClass(ctx context.Context, trainerID uuid.UUID, class *domain.Class) error
	DeleteClass(ctx context.Context, trainerID, id uuid.UUID) error
}

// classService implements the ClassService interface.
type classService struct {
	classRepo repository.ClassRepository
}

// NewClassService creates a new instance of classService.
func NewClassService(classRepo repository.ClassRepository) ClassService {
	return &classService{classRepo: classRepo}
}

func (s *classService) CreateClass(ctx context.Context, trainerID uuid.UUID, name, description string, capacity int) (*domain.Class, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: class name is required", ErrValidationFailed)
	}
	if capacity < 0 {
		return nil, fmt.Errorf("%w: capacity cannot be negative", ErrValidationFailed)
	}

	class := &domain.Class{
		TrainerID:   trainerID,
		Name:        name,
		Description: description,
		Capacity:    capacity,
	}
	id, err := s.classRepo.Create(ctx, class)
	if err != nil {
		return nil, err
	}
	class.ID = id
	return class, nil
}

func (s *classService) GetClass(ctx context.Context, id uuid.UUID) (*domain.Class, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return class, nil
}

func (s *classService) GetClassesByTrainer(ctx context.Context, trainerID uuid.UUID) ([]domain.Class, error) {
	return s.classRepo.GetByTrainerID(ctx, trainerID)
}

func (s *classService) UpdateClass(ctx context.Context, trainerID uuid.UUID, class *domain.Class) error {
	if class.Name == "" {
		return fmt.Errorf("%w: class name is required", ErrValidationFailed)
	}
	class.TrainerID = trainerID
	err := s.classRepo.Update(ctx, class)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrClassNotFound
	}
	return err
}

func (s *classService) DeleteClass(ctx context.Context, trainerID, id uuid.UUID) error {
	err := s.classRepo.Delete(ctx, id, trainerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrClassNotFound
	}
	return err
}
