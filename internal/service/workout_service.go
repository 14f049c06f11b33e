package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"alcyxob/fitness-schedule/internal/domain"
	"alcyxob/fitness-schedule/internal/repository"
	"alcyxob/fitness-schedule/internal/storage"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrNotWorkoutOwner  = errors.New("workout does not belong to this trainer")
	ErrMediaMissing     = errors.New("workout has no demo media")
	ErrMediaURLError    = errors.New("failed to generate media URL")
	ErrInvalidMediaType = errors.New("invalid or missing video content type")
)

// MediaUploadURLResponse carries the presigned URL and the object key the
// trainer reports back on confirm.
type MediaUploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type WorkoutService interface {
	CreateWorkout(ctx context.Context, trainerID uuid.UUID, name, description, muscleGroup, difficulty string) (*domain.Workout, error)
	GetWorkout(ctx context.Context, id uuid.UUID) (*domain.Workout, error)
	GetWorkoutsByTrainer(ctx context.Context, trainerID uuid.UUID) ([]domain.Workout, error)
	UpdateWorkout(ctx context.Context, trainerID uuid.UUID, workout *domain.Workout) error
	DeleteWorkout(ctx context.Context, trainerID, id uuid.UUID) error

	// Demo media upload flow: request a presigned PUT URL, upload directly to
	// object storage, then confirm with the object key.
	RequestMediaUploadURL(ctx context.Context, trainerID, workoutID uuid.UUID, contentType string) (*MediaUploadURLResponse, error)
	ConfirmMediaUpload(ctx context.Context, trainerID, workoutID uuid.UUID, objectKey string) error
	GetMediaDownloadURL(ctx context.Context, workoutID uuid.UUID) (string, error)
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo repository.WorkoutRepository
	fileStorage storage.FileStorage
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, fileStorage storage.FileStorage) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
		fileStorage: fileStorage,
	}
}

func (s *workoutService) CreateWorkout(ctx context.Context, trainerID uuid.UUID, name, description, muscleGroup, difficulty string) (*domain.Workout, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: workout name is required", ErrValidationFailed)
	}

	workout := &domain.Workout{
		TrainerID:   trainerID,
		Name:        name,
		Description: description,
		MuscleGroup: muscleGroup,
		Difficulty:  difficulty,
	}
	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = id
	return workout, nil
}

func (s *workoutService) GetWorkout(ctx context.Context, id uuid.UUID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) GetWorkoutsByTrainer(ctx context.Context, trainerID uuid.UUID) ([]domain.Workout, error) {
	return s.workoutRepo.GetByTrainerID(ctx, trainerID)
}

func (s *workoutService) UpdateWorkout(ctx context.Context, trainerID uuid.UUID, workout *domain.Workout) error {
	if workout.Name == "" {
		return fmt.Errorf("%w: workout name is required", ErrValidationFailed)
	}

	// Preserve the media key; the edit surface does not carry it.
	existing, err := s.workoutRepo.GetByID(ctx, workout.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	if existing.TrainerID != trainerID {
		return ErrNotWorkoutOwner
	}
	workout.TrainerID = trainerID
	workout.MediaObjectKey = existing.MediaObjectKey

	err = s.workoutRepo.Update(ctx, workout)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWorkoutNotFound
	}
	return err
}

func (s *workoutService) DeleteWorkout(ctx context.Context, trainerID, id uuid.UUID) error {
	err := s.workoutRepo.Delete(ctx, id, trainerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWorkoutNotFound
	}
	return err
}

// === Media Upload Flow ===

// RequestMediaUploadURL generates a presigned URL for uploading a demo video.
func (s *workoutService) RequestMediaUploadURL(ctx context.Context, trainerID, workoutID uuid.UUID, contentType string) (*MediaUploadURLResponse, error) {
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "video/") {
		return nil, ErrInvalidMediaType
	}

	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.TrainerID != trainerID {
		return nil, ErrNotWorkoutOwner
	}

	fileExtension := ""
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("workout-media", trainerID.String(), workoutID.String(),
		fmt.Sprintf("%s.%s", uuid.NewString(), fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrMediaURLError
	}

	return &MediaUploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmMediaUpload records the uploaded object key on the workout. Called
// after the trainer has PUT the file to object storage. The previous object,
// if any, is deleted best effort.
func (s *workoutService) ConfirmMediaUpload(ctx context.Context, trainerID, workoutID uuid.UUID, objectKey string) error {
	if objectKey == "" {
		return fmt.Errorf("%w: object key is required", ErrValidationFailed)
	}

	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	if workout.TrainerID != trainerID {
		return ErrNotWorkoutOwner
	}

	previousKey := workout.MediaObjectKey
	workout.MediaObjectKey = objectKey
	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return err
	}

	if previousKey != "" && previousKey != objectKey {
		_ = s.fileStorage.DeleteObject(ctx, previousKey)
	}
	return nil
}

// GetMediaDownloadURL generates a temporary URL for viewing the demo video.
func (s *workoutService) GetMediaDownloadURL(ctx context.Context, workoutID uuid.UUID) (string, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrWorkoutNotFound
		}
		return "", err
	}
	if workout.MediaObjectKey == "" {
		return "", ErrMediaMissing
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, workout.MediaObjectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrMediaURLError
	}
	return downloadURL, nil
}
