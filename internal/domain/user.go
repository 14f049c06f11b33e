package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role type to distinguish between user roles.
type Role string

const (
	RoleTrainer Role = "trainer"
	RoleMember  Role = "member"
)

// User represents a user in the system (either a Trainer or a Member).
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"` // Never expose this via JSON
	Role         Role      `gorm:"size:16;not null" json:"role"`

	// Progression state, recomputed by the nightly rank job.
	RankPoints int    `gorm:"not null;default:0" json:"rankPoints"`
	RankTitle  string `gorm:"size:32;not null;default:'Beginner'" json:"rankTitle"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}
