package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job statuses. Pending jobs live in the scheduler working set; the other
// three are terminal.
const (
	JobStatusPending   = "pending"
	JobStatusCompleted = "completed"
	JobStatusCancelled = "cancelled"
	JobStatusFailed    = "failed"
)

// ScheduledJob is a persisted future delivery of an embed to one or more
// channels, optionally recurring on a weekly day-of-week set.
type ScheduledJob struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	EmbedID        string    `gorm:"not null;index;column:embed_id" json:"embed_id"`
	Name           string    `json:"name"`
	ScheduledTime  time.Time `gorm:"not null;index;column:scheduled_time" json:"scheduled_time"`
	Recurrence     string    `gorm:"type:text" json:"recurrence"`               // JSON array of weekday tags (MON..SUN), empty for one-shot
	TargetChannels string    `gorm:"type:text;not null" json:"target_channels"` // JSON array of channel IDs
	Status         string    `gorm:"default:pending;index" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (sj *ScheduledJob) BeforeCreate(tx *gorm.DB) error {
	if sj.ID == "" {
		sj.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for GORM
func (ScheduledJob) TableName() string {
	return "scheduled_jobs"
}
