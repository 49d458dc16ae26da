package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Embed is a stored message card configuration. The Config column holds the
// serialized EmbedConfig; MessageID is filled in after the first delivery so
// the message can be edited later.
type Embed struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	GuildID   string    `gorm:"not null;index;column:guild_id" json:"guild_id"`
	ChannelID string    `gorm:"not null;column:channel_id" json:"channel_id"` // primary channel
	Config    string    `gorm:"type:text;not null" json:"config"`             // JSON EmbedConfig
	Content   string    `gorm:"type:text" json:"content"`                     // plain text above the embed
	MessageID string    `gorm:"column:message_id;index" json:"message_id"`
	IsSent    bool      `gorm:"default:false" json:"is_sent"`
	CreatedBy string    `gorm:"column:created_by" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating record
func (e *Embed) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for GORM
func (Embed) TableName() string {
	return "embeds"
}

// EmbedConfig is the visual configuration of an embed. All fields are
// optional; validation happens at the store boundary, not in the dispatcher.
type EmbedConfig struct {
	Title        string       `json:"title,omitempty"`
	Description  string       `json:"description,omitempty"`
	Color        string       `json:"color,omitempty"` // hex string, e.g. "#FF69B4"
	URL          string       `json:"url,omitempty"`
	Author       string       `json:"author,omitempty"`
	AuthorIcon   string       `json:"author_icon,omitempty"`
	Thumbnail    string       `json:"thumbnail,omitempty"`
	Image        string       `json:"image,omitempty"`
	Footer       string       `json:"footer,omitempty"`
	FooterIcon   string       `json:"footer_icon,omitempty"`
	Header       string       `json:"header,omitempty"` // bold banner field at the top
	Fields       []EmbedField `json:"fields,omitempty"`
	Timestamp    *time.Time   `json:"timestamp,omitempty"`
	AddTimestamp bool         `json:"add_timestamp,omitempty"` // stamp with "now" at render time
}

// EmbedField is one name/value pair inside an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}
