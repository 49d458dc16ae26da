package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kitschlabs/kitschbot/internal/models"
)

// TemplateStore persists reusable embed templates per guild.
type TemplateStore struct {
	db *gorm.DB
}

// NewTemplateStore creates a template store backed by db.
func NewTemplateStore(db *gorm.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// CreateTemplate saves a named template and returns its id.
func (s *TemplateStore) CreateTemplate(tpl *models.EmbedTemplate, cfg *models.EmbedConfig) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal template config: %w", err)
	}
	tpl.Config = string(data)

	if err := s.db.Create(tpl).Error; err != nil {
		return "", fmt.Errorf("failed to create template: %w", err)
	}
	return tpl.ID, nil
}

// ListTemplates returns all templates for a guild, newest first.
func (s *TemplateStore) ListTemplates(guildID string) ([]models.EmbedTemplate, error) {
	var templates []models.EmbedTemplate
	err := s.db.
		Where("guild_id = ?", guildID).
		Order("created_at DESC").
		Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// GetTemplate loads one template with its decoded config.
func (s *TemplateStore) GetTemplate(id string) (*models.EmbedTemplate, *models.EmbedConfig, error) {
	var tpl models.EmbedTemplate
	if err := s.db.First(&tpl, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("template %s: %w", id, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("failed to load template %s: %w", id, err)
	}

	var cfg models.EmbedConfig
	if tpl.Config != "" {
		if err := json.Unmarshal([]byte(tpl.Config), &cfg); err != nil {
			return nil, nil, fmt.Errorf("malformed config for template %s: %w", id, err)
		}
	}
	return &tpl, &cfg, nil
}

// CreateTemplateButtons attaches button presets to a template.
func (s *TemplateStore) CreateTemplateButtons(templateID string, buttons []models.TemplateButton) error {
	if len(buttons) == 0 {
		return nil
	}
	for i := range buttons {
		buttons[i].TemplateID = templateID
		buttons[i].Position = i
	}
	if err := s.db.Create(&buttons).Error; err != nil {
		return fmt.Errorf("failed to create template buttons: %w", err)
	}
	return nil
}

// GetTemplateButtons returns a template's buttons in row/position order.
func (s *TemplateStore) GetTemplateButtons(templateID string) ([]models.TemplateButton, error) {
	var buttons []models.TemplateButton
	err := s.db.
		Where("template_id = ?", templateID).
		Order("row_index ASC, position ASC").
		Find(&buttons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load template buttons: %w", err)
	}
	return buttons, nil
}

// DeleteTemplate removes a template and its button presets.
func (s *TemplateStore) DeleteTemplate(id string) error {
	if err := s.db.Delete(&models.TemplateButton{}, "template_id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete template buttons: %w", err)
	}
	if err := s.db.Delete(&models.EmbedTemplate{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}
