package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kitschlabs/kitschbot/internal/models"
)

// PulseStore persists server pulse configurations.
type PulseStore struct {
	db *gorm.DB
}

// NewPulseStore creates a pulse store backed by db.
func NewPulseStore(db *gorm.DB) *PulseStore {
	return &PulseStore{db: db}
}

// Upsert creates or replaces the pulse configured for a channel.
func (s *PulseStore) Upsert(pulse *models.ServerPulse) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "channel_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"guild_id", "interval_minutes", "config", "is_active", "updated_at",
		}),
	}).Create(pulse).Error
	if err != nil {
		return fmt.Errorf("failed to upsert pulse: %w", err)
	}
	return nil
}

// ListActive returns every active pulse.
func (s *PulseStore) ListActive() ([]models.ServerPulse, error) {
	var pulses []models.ServerPulse
	if err := s.db.Where("is_active = ?", true).Find(&pulses).Error; err != nil {
		return nil, fmt.Errorf("failed to list pulses: %w", err)
	}
	return pulses, nil
}

// GetByChannel returns the pulse configured for a channel, if any.
func (s *PulseStore) GetByChannel(channelID string) (*models.ServerPulse, error) {
	var pulse models.ServerPulse
	if err := s.db.First(&pulse, "channel_id = ?", channelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pulse for channel %s: %w", channelID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load pulse: %w", err)
	}
	return &pulse, nil
}

// UpdateMessageID stores the id of the status message being edited in place.
func (s *PulseStore) UpdateMessageID(id, messageID string) error {
	err := s.db.Model(&models.ServerPulse{}).
		Where("id = ?", id).
		Update("last_message_id", messageID).Error
	if err != nil {
		return fmt.Errorf("failed to update pulse message id: %w", err)
	}
	return nil
}

// UpdateLastRun stamps the pulse with its most recent run time.
func (s *PulseStore) UpdateLastRun(id string, t time.Time) error {
	err := s.db.Model(&models.ServerPulse{}).
		Where("id = ?", id).
		Update("last_run", t).Error
	if err != nil {
		return fmt.Errorf("failed to update pulse last run: %w", err)
	}
	return nil
}

// DeleteByChannel removes the pulse configured for a channel.
func (s *PulseStore) DeleteByChannel(channelID string) error {
	if err := s.db.Delete(&models.ServerPulse{}, "channel_id = ?", channelID).Error; err != nil {
		return fmt.Errorf("failed to delete pulse: %w", err)
	}
	return nil
}
