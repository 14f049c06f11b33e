package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntryKind distinguishes the two independent schedule slots a date has:
// one workout slot and one class slot.
type EntryKind string

const (
	EntryWorkout EntryKind = "workout"
	EntryClass   EntryKind = "class"
)

// ScheduleEntry links a user to a workout or class on a specific calendar day.
// At most one entry per (user, date, kind) exists; the unique index enforces
// the one-slot rule at the store boundary.
type ScheduleEntry struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_schedule_user_date_kind" json:"userId"`
	Kind   EntryKind `gorm:"size:16;not null;uniqueIndex:idx_schedule_user_date_kind" json:"kind"`

	// RefID points at a Workout or a Class depending on Kind.
	RefID uuid.UUID `gorm:"type:uuid;not null" json:"refId"`

	// EntryDate is stored at date granularity (midnight UTC).
	EntryDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_schedule_user_date_kind" json:"entryDate"`

	// Completed is meaningful for workout entries only.
	Completed bool `gorm:"not null;default:false" json:"completed"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ScheduleEntry) TableName() string {
	return "schedule_entries"
}

// DaySchedule is the per-date result of the batched month fetch: which slots
// are occupied and whether the workout, if any, was completed.
type DaySchedule struct {
	HasWorkout       bool
	WorkoutCompleted bool
	HasClass         bool
}

// DateOnly truncates t to midnight UTC. Schedule entries and all grid math
// operate at date granularity in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
