package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmbedTemplate is a reusable embed configuration saved per guild, with
// optional recurrence and target-channel presets.
type EmbedTemplate struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	GuildID        string    `gorm:"not null;index;column:guild_id" json:"guild_id"`
	Name           string    `gorm:"not null" json:"name"`
	Category       string    `json:"category"`
	Config         string    `gorm:"type:text;not null" json:"config"` // JSON EmbedConfig
	Content        string    `gorm:"type:text" json:"content"`
	MessageType    string    `gorm:"default:embed;column:message_type" json:"message_type"`
	Recurrence     string    `gorm:"type:text" json:"recurrence"`
	TargetChannels string    `gorm:"type:text;column:target_channels" json:"target_channels"`
	CreatedBy      string    `gorm:"column:created_by" json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (t *EmbedTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for GORM
func (EmbedTemplate) TableName() string {
	return "embed_templates"
}

// TemplateButton is one button preset attached to a template.
type TemplateButton struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	TemplateID string    `gorm:"not null;index;column:template_id" json:"template_id"`
	Label      string    `gorm:"not null" json:"label"`
	Style      string    `gorm:"default:PRIMARY" json:"style"`
	URL        string    `json:"url"`
	Emoji      string    `json:"emoji"`
	RowIndex   int       `gorm:"default:0;column:row_index" json:"row_index"`
	Position   int       `gorm:"default:0" json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (b *TemplateButton) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for GORM
func (TemplateButton) TableName() string {
	return "template_buttons"
}
