package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitschlabs/kitschbot/internal/models"
)

func TestTemplateStore(t *testing.T) {
	t.Run("Should round-trip a template with its config", func(t *testing.T) {
		s := NewTemplateStore(newTestDB(t))

		id, err := s.CreateTemplate(&models.EmbedTemplate{
			GuildID:   "guild-1",
			Name:      "weekly digest",
			Category:  "announcements",
			Content:   "@everyone",
			CreatedBy: "user-1",
		}, &models.EmbedConfig{Title: "Digest", Color: "#5865F2"})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		tpl, cfg, err := s.GetTemplate(id)
		require.NoError(t, err)
		assert.Equal(t, "weekly digest", tpl.Name)
		assert.Equal(t, "announcements", tpl.Category)
		assert.Equal(t, "@everyone", tpl.Content)
		assert.Equal(t, "Digest", cfg.Title)
		assert.Equal(t, "#5865F2", cfg.Color)
	})

	t.Run("Should return ErrNotFound for a missing template", func(t *testing.T) {
		s := NewTemplateStore(newTestDB(t))

		_, _, err := s.GetTemplate("nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Should list only the guild's templates newest first", func(t *testing.T) {
		s := NewTemplateStore(newTestDB(t))
		base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

		older, err := s.CreateTemplate(&models.EmbedTemplate{
			GuildID: "guild-1", Name: "older", CreatedAt: base,
		}, &models.EmbedConfig{})
		require.NoError(t, err)
		newer, err := s.CreateTemplate(&models.EmbedTemplate{
			GuildID: "guild-1", Name: "newer", CreatedAt: base.Add(time.Hour),
		}, &models.EmbedConfig{})
		require.NoError(t, err)
		_, err = s.CreateTemplate(&models.EmbedTemplate{
			GuildID: "guild-2", Name: "elsewhere", CreatedAt: base,
		}, &models.EmbedConfig{})
		require.NoError(t, err)

		templates, err := s.ListTemplates("guild-1")
		require.NoError(t, err)
		require.Len(t, templates, 2)
		assert.Equal(t, newer, templates[0].ID)
		assert.Equal(t, older, templates[1].ID)
	})

	t.Run("Should keep button presets in row and position order", func(t *testing.T) {
		s := NewTemplateStore(newTestDB(t))
		id, err := s.CreateTemplate(&models.EmbedTemplate{
			GuildID: "guild-1", Name: "with buttons",
		}, &models.EmbedConfig{})
		require.NoError(t, err)

		require.NoError(t, s.CreateTemplateButtons(id, []models.TemplateButton{
			{Label: "First", Style: models.ButtonStylePrimary, RowIndex: 0},
			{Label: "Second", Style: models.ButtonStyleLink, URL: "https://example.com", RowIndex: 1},
		}))

		buttons, err := s.GetTemplateButtons(id)
		require.NoError(t, err)
		require.Len(t, buttons, 2)
		assert.Equal(t, "First", buttons[0].Label)
		assert.Equal(t, "Second", buttons[1].Label)
		assert.Equal(t, id, buttons[0].TemplateID)
	})

	t.Run("Should delete a template together with its buttons", func(t *testing.T) {
		s := NewTemplateStore(newTestDB(t))
		id, err := s.CreateTemplate(&models.EmbedTemplate{
			GuildID: "guild-1", Name: "doomed",
		}, &models.EmbedConfig{})
		require.NoError(t, err)
		require.NoError(t, s.CreateTemplateButtons(id, []models.TemplateButton{
			{Label: "Go", Style: models.ButtonStylePrimary},
		}))

		require.NoError(t, s.DeleteTemplate(id))

		_, _, err = s.GetTemplate(id)
		assert.ErrorIs(t, err, ErrNotFound)
		buttons, err := s.GetTemplateButtons(id)
		require.NoError(t, err)
		assert.Empty(t, buttons)
	})
}
