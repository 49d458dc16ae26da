package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitschlabs/kitschbot/internal/models"
)

func TestBuildEmbed(t *testing.T) {
	t.Run("Should map basic fields onto the wire shape", func(t *testing.T) {
		e := BuildEmbed(&models.EmbedConfig{
			Title:       "Release notes",
			Description: "Everything new this week",
			Color:       "#5865F2",
			URL:         "https://example.com/notes",
		})

		assert.Equal(t, "Release notes", e.Title)
		assert.Equal(t, "Everything new this week", e.Description)
		assert.Equal(t, 0x5865F2, e.Color)
		assert.Equal(t, "https://example.com/notes", e.URL)
		assert.Nil(t, e.Author)
		assert.Nil(t, e.Footer)
	})

	t.Run("Should parse colors with and without hash", func(t *testing.T) {
		assert.Equal(t, 0xFF69B4, BuildEmbed(&models.EmbedConfig{Color: "FF69B4"}).Color)
		assert.Equal(t, 0xFF69B4, BuildEmbed(&models.EmbedConfig{Color: "#ff69b4"}).Color)
	})

	t.Run("Should fall back to white for bad colors", func(t *testing.T) {
		assert.Equal(t, defaultColor, BuildEmbed(&models.EmbedConfig{}).Color)
		assert.Equal(t, defaultColor, BuildEmbed(&models.EmbedConfig{Color: "not-a-color"}).Color)
	})

	t.Run("Should pin header field above custom fields", func(t *testing.T) {
		e := BuildEmbed(&models.EmbedConfig{
			Header: "Weekly Digest",
			Fields: []models.EmbedField{
				{Name: "When", Value: "Friday", Inline: true},
			},
		})

		require.Len(t, e.Fields, 2)
		assert.Equal(t, "**Weekly Digest**", e.Fields[0].Value)
		assert.Equal(t, "When", e.Fields[1].Name)
		assert.True(t, e.Fields[1].Inline)
	})

	t.Run("Should format explicit timestamp as RFC3339 UTC", func(t *testing.T) {
		ts := time.Date(2024, 6, 15, 14, 30, 0, 0, time.FixedZone("UTC+2", 2*3600))
		e := BuildEmbed(&models.EmbedConfig{Timestamp: &ts})

		assert.Equal(t, "2024-06-15T12:30:00Z", e.Timestamp)
	})

	t.Run("Should stamp render time when asked", func(t *testing.T) {
		e := BuildEmbed(&models.EmbedConfig{AddTimestamp: true})
		got, err := time.Parse(time.RFC3339, e.Timestamp)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), got, time.Minute)
	})

	t.Run("Should wrap media and named parts only when set", func(t *testing.T) {
		e := BuildEmbed(&models.EmbedConfig{
			Author:     "kitschbot",
			AuthorIcon: "https://example.com/icon.png",
			Thumbnail:  "https://example.com/thumb.png",
			Footer:     "see you next week",
		})

		require.NotNil(t, e.Author)
		assert.Equal(t, "kitschbot", e.Author.Name)
		assert.Equal(t, "https://example.com/icon.png", e.Author.IconURL)
		require.NotNil(t, e.Thumbnail)
		assert.Equal(t, "https://example.com/thumb.png", e.Thumbnail.URL)
		require.NotNil(t, e.Footer)
		assert.Equal(t, "see you next week", e.Footer.Text)
		assert.Nil(t, e.Image)
	})
}

func TestBuildButtons(t *testing.T) {
	t.Run("Should return nil for no buttons", func(t *testing.T) {
		assert.Nil(t, BuildButtons(nil))
	})

	t.Run("Should group buttons by row index", func(t *testing.T) {
		rows := BuildButtons([]models.EmbedButton{
			{ID: "a", Label: "One", Style: models.ButtonStylePrimary, RowIndex: 0},
			{ID: "b", Label: "Two", Style: models.ButtonStyleSecondary, RowIndex: 0},
			{ID: "c", Label: "Three", Style: models.ButtonStyleDanger, RowIndex: 1},
		})

		require.Len(t, rows, 2)
		assert.Equal(t, componentTypeActionRow, rows[0].Type)
		require.Len(t, rows[0].Components, 2)
		require.Len(t, rows[1].Components, 1)
		assert.Equal(t, buttonStyleDanger, rows[1].Components[0].Style)
	})

	t.Run("Should split a row past five buttons", func(t *testing.T) {
		var buttons []models.EmbedButton
		for i := 0; i < 7; i++ {
			buttons = append(buttons, models.EmbedButton{
				ID:    string(rune('a' + i)),
				Label: "Go",
				Style: models.ButtonStylePrimary,
			})
		}

		rows := BuildButtons(buttons)
		require.Len(t, rows, 2)
		assert.Len(t, rows[0].Components, 5)
		assert.Len(t, rows[1].Components, 2)
	})

	t.Run("Should cap at five rows", func(t *testing.T) {
		var buttons []models.EmbedButton
		for i := 0; i < 6; i++ {
			buttons = append(buttons, models.EmbedButton{
				ID:       string(rune('a' + i)),
				Label:    "Go",
				Style:    models.ButtonStylePrimary,
				RowIndex: i,
			})
		}

		assert.Len(t, BuildButtons(buttons), maxRows)
	})

	t.Run("Should pass through valid link buttons", func(t *testing.T) {
		rows := BuildButtons([]models.EmbedButton{
			{ID: "a", Label: "Docs", Style: models.ButtonStyleLink, URL: "https://example.com/docs"},
		})

		require.Len(t, rows, 1)
		btn := rows[0].Components[0]
		assert.Equal(t, buttonStyleLink, btn.Style)
		assert.Equal(t, "https://example.com/docs", btn.URL)
		assert.Empty(t, btn.CustomID)
	})

	t.Run("Should degrade link buttons with broken URLs", func(t *testing.T) {
		rows := BuildButtons([]models.EmbedButton{
			{ID: "a", Label: "Docs", Style: models.ButtonStyleLink, URL: "not a url"},
		})

		btn := rows[0].Components[0]
		assert.Equal(t, buttonStylePrimary, btn.Style)
		assert.Equal(t, "btn_invalid_a", btn.CustomID)
		assert.Equal(t, "Docs (Invalid URL)", btn.Label)
		assert.True(t, btn.Disabled)
		assert.Empty(t, btn.URL)
	})

	t.Run("Should synthesize custom ids when missing", func(t *testing.T) {
		rows := BuildButtons([]models.EmbedButton{
			{ID: "xyz", Label: "Click", Style: models.ButtonStyleSuccess},
			{ID: "q", Label: "Keep", Style: models.ButtonStylePrimary, CustomID: "keep_me"},
		})

		assert.Equal(t, "btn_xyz", rows[0].Components[0].CustomID)
		assert.Equal(t, "keep_me", rows[0].Components[1].CustomID)
	})

	t.Run("Should attach emoji when present", func(t *testing.T) {
		rows := BuildButtons([]models.EmbedButton{
			{ID: "a", Label: "Party", Style: models.ButtonStylePrimary, Emoji: "🎉"},
		})

		require.NotNil(t, rows[0].Components[0].Emoji)
		assert.Equal(t, "🎉", rows[0].Components[0].Emoji.Name)
	})
}

func TestBuildMessage(t *testing.T) {
	t.Run("Should assemble content, embed, and components", func(t *testing.T) {
		msg := BuildMessage(
			&models.EmbedConfig{Title: "Hi"},
			"@everyone",
			[]models.EmbedButton{{ID: "a", Label: "Go", Style: models.ButtonStylePrimary}},
		)

		assert.Equal(t, "@everyone", msg.Content)
		require.Len(t, msg.Embeds, 1)
		assert.Equal(t, "Hi", msg.Embeds[0].Title)
		require.Len(t, msg.Components, 1)
	})
}
