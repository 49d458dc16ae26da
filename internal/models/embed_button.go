package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Button styles as stored in the database.
const (
	ButtonStylePrimary   = "PRIMARY"
	ButtonStyleSecondary = "SECONDARY"
	ButtonStyleSuccess   = "SUCCESS"
	ButtonStyleDanger    = "DANGER"
	ButtonStyleLink      = "LINK"
)

// EmbedButton is one button attached to an embed. Buttons are grouped into
// rows by RowIndex (max 5 per row) and ordered by Position within a row.
type EmbedButton struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	EmbedID   string    `gorm:"not null;index;column:embed_id" json:"embed_id"`
	Label     string    `gorm:"not null" json:"label"`
	Style     string    `gorm:"default:PRIMARY" json:"style"`
	URL       string    `json:"url"`
	Emoji     string    `json:"emoji"`
	CustomID  string    `gorm:"column:custom_id" json:"custom_id"`
	RowIndex  int       `gorm:"default:0;column:row_index" json:"row_index"`
	Position  int       `gorm:"default:0" json:"position"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (b *EmbedButton) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for GORM
func (EmbedButton) TableName() string {
	return "embed_buttons"
}
