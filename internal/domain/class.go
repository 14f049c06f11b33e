package domain

import (
	"time"

	"github.com/google/uuid"
)

// Class is a group session (yoga, spinning, ...) members can put on their
// calendar. Capacity is informational; enrollment limits are not enforced.
type Class struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TrainerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"trainerId"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Capacity    int       `gorm:"not null;default:0" json:"capacity"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Class) TableName() string {
	return "classes"
}
