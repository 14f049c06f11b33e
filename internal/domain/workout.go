package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workout is a reusable workout template created by a trainer.
// Members schedule workouts onto calendar days via schedule entries.
type Workout struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TrainerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"trainerId"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`

	MuscleGroup string `gorm:"size:50" json:"muscleGroup,omitempty"` // e.g. "Chest", "Legs", "Back"
	Difficulty  string `gorm:"size:20" json:"difficulty,omitempty"`  // e.g. "Novice", "Medium", "Advanced"

	// Object key of the demo video in S3-compatible storage, empty when none
	// has been uploaded yet. Clients get at it through presigned URLs only.
	MediaObjectKey string `gorm:"size:512" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Workout) TableName() string {
	return "workouts"
}
