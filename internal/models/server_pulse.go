package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServerPulse is a periodic server-status embed posted to one channel. The
// same message is edited in place on every run; a fresh message is only sent
// when the previous one is gone.
type ServerPulse struct {
	ID              string     `gorm:"primaryKey" json:"id"`
	GuildID         string     `gorm:"not null;index;column:guild_id" json:"guild_id"`
	ChannelID       string     `gorm:"not null;uniqueIndex;column:channel_id" json:"channel_id"`
	IntervalMinutes int        `gorm:"default:120;column:interval_minutes" json:"interval_minutes"`
	Config          string     `gorm:"type:text" json:"config"` // JSON EmbedConfig overrides (title, color, image)
	LastMessageID   string     `gorm:"column:last_message_id" json:"last_message_id"`
	LastRun         *time.Time `gorm:"column:last_run" json:"last_run"`
	IsActive        bool       `gorm:"default:true;column:is_active" json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (p *ServerPulse) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for GORM
func (ServerPulse) TableName() string {
	return "server_pulses"
}
