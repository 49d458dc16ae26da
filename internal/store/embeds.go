package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kitschlabs/kitschbot/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// EmbedStore persists embed configurations and their buttons. Implements
// scheduler.ContentStore.
type EmbedStore struct {
	db *gorm.DB
}

// NewEmbedStore creates an embed store backed by db.
func NewEmbedStore(db *gorm.DB) *EmbedStore {
	return &EmbedStore{db: db}
}

// CreateEmbed persists a new embed configuration and returns its id.
func (s *EmbedStore) CreateEmbed(guildID, channelID, createdBy, content string, cfg *models.EmbedConfig) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal embed config: %w", err)
	}

	rec := &models.Embed{
		GuildID:   guildID,
		ChannelID: channelID,
		Config:    string(data),
		Content:   content,
		CreatedBy: createdBy,
	}
	if err := s.db.Create(rec).Error; err != nil {
		return "", fmt.Errorf("failed to create embed: %w", err)
	}
	return rec.ID, nil
}

// GetEmbed resolves the typed config and plain content for an embed. The
// loose JSON column is decoded and validated here, at the store boundary;
// callers always see a well-formed struct.
func (s *EmbedStore) GetEmbed(embedID string) (*models.EmbedConfig, string, error) {
	var rec models.Embed
	if err := s.db.First(&rec, "id = ?", embedID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("embed %s: %w", embedID, ErrNotFound)
		}
		return nil, "", fmt.Errorf("failed to load embed %s: %w", embedID, err)
	}

	var cfg models.EmbedConfig
	if rec.Config != "" {
		if err := json.Unmarshal([]byte(rec.Config), &cfg); err != nil {
			return nil, "", fmt.Errorf("malformed config for embed %s: %w", embedID, err)
		}
	}
	return &cfg, rec.Content, nil
}

// GetButtons returns an embed's buttons in row/position order.
func (s *EmbedStore) GetButtons(embedID string) ([]models.EmbedButton, error) {
	var buttons []models.EmbedButton
	err := s.db.
		Where("embed_id = ?", embedID).
		Order("row_index ASC, position ASC").
		Find(&buttons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load buttons for embed %s: %w", embedID, err)
	}
	return buttons, nil
}

// CreateButtons attaches buttons to an embed, replacing position order with
// the given slice order.
func (s *EmbedStore) CreateButtons(embedID string, buttons []models.EmbedButton) error {
	for i := range buttons {
		buttons[i].EmbedID = embedID
		buttons[i].Position = i
	}
	if len(buttons) == 0 {
		return nil
	}
	if err := s.db.Create(&buttons).Error; err != nil {
		return fmt.Errorf("failed to create buttons: %w", err)
	}
	return nil
}

// DeleteButtons removes every button attached to an embed.
func (s *EmbedStore) DeleteButtons(embedID string) error {
	if err := s.db.Delete(&models.EmbedButton{}, "embed_id = ?", embedID).Error; err != nil {
		return fmt.Errorf("failed to delete buttons: %w", err)
	}
	return nil
}

// RecordMessageID stores the delivered message id after a successful send so
// the message can be edited later.
func (s *EmbedStore) RecordMessageID(embedID, messageID string) error {
	err := s.db.Model(&models.Embed{}).
		Where("id = ?", embedID).
		Updates(map[string]interface{}{
			"message_id": messageID,
			"is_sent":    true,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to record message id: %w", err)
	}
	return nil
}

// UpdateConfig rewrites an embed's configuration.
func (s *EmbedStore) UpdateConfig(embedID string, cfg *models.EmbedConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal embed config: %w", err)
	}
	err = s.db.Model(&models.Embed{}).
		Where("id = ?", embedID).
		Update("config", string(data)).Error
	if err != nil {
		return fmt.Errorf("failed to update embed config: %w", err)
	}
	return nil
}

// DeleteEmbed removes an embed and its buttons. Pending jobs referencing it
// are cancelled by the caller via the scheduler, not here.
func (s *EmbedStore) DeleteEmbed(embedID string) error {
	if err := s.DeleteButtons(embedID); err != nil {
		return err
	}
	if err := s.db.Delete(&models.Embed{}, "id = ?", embedID).Error; err != nil {
		return fmt.Errorf("failed to delete embed: %w", err)
	}
	return nil
}
