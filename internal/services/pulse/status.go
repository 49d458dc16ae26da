package pulse

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kitschlabs/kitschbot/internal/discord"
	"github.com/kitschlabs/kitschbot/internal/models"
	"github.com/kitschlabs/kitschbot/internal/render"
)

const (
	defaultTitle = "💓 Server Pulse"
	defaultColor = "#FF69B4"

	vibrantMemberThreshold = 100
	livelyOnlineThreshold  = 10
)

// buildStatusMessage renders the pulse embed for the current guild metrics.
// Config overrides (title, color, image) come from the stored pulse record.
func buildStatusMessage(pulse *models.ServerPulse, guild *discord.Guild, now time.Time) *render.Message {
	var overrides models.EmbedConfig
	if pulse.Config != "" {
		// Unknown/corrupt overrides degrade to defaults rather than failing
		// the run.
		_ = json.Unmarshal([]byte(pulse.Config), &overrides)
	}

	cfg := models.EmbedConfig{
		Title:       overrides.Title,
		Color:       overrides.Color,
		Image:       overrides.Image,
		Description: fmt.Sprintf("**%s** is currently: `%s`", guild.Name, vitality(guild)),
		Footer:      "Kitsch Bot • Real-time Vitality Monitoring",
		Fields: []models.EmbedField{
			{Name: "👥 Total Members", Value: fmt.Sprintf("`%d`", guild.ApproximateMemberCount), Inline: true},
			{Name: "🟢 Online Now", Value: onlineValue(guild.ApproximatePresenceCount), Inline: true},
			{Name: "🗓️ Last Updated", Value: fmt.Sprintf("<t:%d:R>", now.Unix())},
		},
	}
	if cfg.Title == "" {
		cfg.Title = defaultTitle
	}
	if cfg.Color == "" {
		cfg.Color = defaultColor
	}
	if guild.Icon != "" {
		cfg.Thumbnail = fmt.Sprintf("https://cdn.discordapp.com/icons/%s/%s.png", guild.ID, guild.Icon)
	}

	return &render.Message{Embeds: []render.Embed{render.BuildEmbed(&cfg)}}
}

func vitality(guild *discord.Guild) string {
	switch {
	case guild.ApproximatePresenceCount > livelyOnlineThreshold:
		return "✨ Lively"
	case guild.ApproximateMemberCount > vibrantMemberThreshold:
		return "💖 Vibrant"
	default:
		return "💓 Peaceful"
	}
}

func onlineValue(online int) string {
	if online > 0 {
		return fmt.Sprintf("`%d`", online)
	}
	return "`Hiding...`"
}
