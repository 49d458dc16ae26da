package render

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kitschlabs/kitschbot/internal/models"
)

const (
	defaultColor     = 0xFFFFFF
	maxButtonsPerRow = 5
	maxRows          = 5
)

// BuildMessage assembles the full outbound payload for an embed and its
// buttons.
func BuildMessage(cfg *models.EmbedConfig, content string, buttons []models.EmbedButton) *Message {
	return &Message{
		Content:    content,
		Embeds:     []Embed{BuildEmbed(cfg)},
		Components: BuildButtons(buttons),
	}
}

// BuildEmbed maps an EmbedConfig onto the Discord embed wire shape.
func BuildEmbed(cfg *models.EmbedConfig) Embed {
	e := Embed{
		Title:       cfg.Title,
		Description: cfg.Description,
		URL:         cfg.URL,
		Color:       parseColor(cfg.Color),
	}

	if cfg.Author != "" {
		e.Author = &EmbedNamed{Name: cfg.Author, IconURL: cfg.AuthorIcon}
	}
	if cfg.Thumbnail != "" {
		e.Thumbnail = &EmbedMedia{URL: cfg.Thumbnail}
	}
	if cfg.Image != "" {
		e.Image = &EmbedMedia{URL: cfg.Image}
	}
	if cfg.Footer != "" {
		e.Footer = &EmbedNamed{Text: cfg.Footer, IconURL: cfg.FooterIcon}
	}

	// Header renders as a bold field pinned above the custom fields, with a
	// zero-width space for the name.
	if cfg.Header != "" {
		e.Fields = append(e.Fields, Field{
			Name:  "​",
			Value: fmt.Sprintf("**%s**", cfg.Header),
		})
	}
	for _, f := range cfg.Fields {
		e.Fields = append(e.Fields, Field{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}

	if cfg.Timestamp != nil {
		e.Timestamp = cfg.Timestamp.UTC().Format(time.RFC3339)
	} else if cfg.AddTimestamp {
		e.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	return e
}

// BuildButtons groups buttons into action rows: a new row starts when the
// stored row index changes or the current row is full. At most five rows.
func BuildButtons(buttons []models.EmbedButton) []ActionRow {
	if len(buttons) == 0 {
		return nil
	}

	var rows []ActionRow
	var current []Button
	currentRowIndex := 0

	for _, btn := range buttons {
		if btn.RowIndex != currentRowIndex || len(current) >= maxButtonsPerRow {
			if len(current) > 0 {
				rows = append(rows, ActionRow{Type: componentTypeActionRow, Components: current})
			}
			current = nil
			currentRowIndex = btn.RowIndex
		}
		current = append(current, buildButton(btn))
	}
	if len(current) > 0 {
		rows = append(rows, ActionRow{Type: componentTypeActionRow, Components: current})
	}

	if len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	return rows
}

func buildButton(btn models.EmbedButton) Button {
	b := Button{
		Type:     componentTypeButton,
		Style:    buttonStyle(btn.Style),
		Label:    btn.Label,
		Disabled: btn.Disabled,
	}

	if btn.Style == models.ButtonStyleLink && isValidURL(btn.URL) {
		b.URL = btn.URL
	} else if btn.Style == models.ButtonStyleLink {
		// Link button with a broken URL would be rejected by the API; degrade
		// to a disabled placeholder instead of dropping the whole message.
		b.Style = buttonStylePrimary
		b.CustomID = "btn_invalid_" + btn.ID
		b.Label = btn.Label + " (Invalid URL)"
		b.Disabled = true
	} else {
		b.CustomID = btn.CustomID
		if b.CustomID == "" {
			b.CustomID = "btn_" + btn.ID
		}
	}

	if btn.Emoji != "" {
		b.Emoji = &Emoji{Name: btn.Emoji}
	}
	return b
}

func buttonStyle(style string) int {
	switch style {
	case models.ButtonStyleSecondary:
		return buttonStyleSecondary
	case models.ButtonStyleSuccess:
		return buttonStyleSuccess
	case models.ButtonStyleDanger:
		return buttonStyleDanger
	case models.ButtonStyleLink:
		return buttonStyleLink
	default:
		return buttonStylePrimary
	}
}

// parseColor accepts "#RRGGBB" or "RRGGBB"; anything unparseable falls back
// to the default white.
func parseColor(c string) int {
	if c == "" {
		return defaultColor
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(c, "#"), 16, 32)
	if err != nil {
		return defaultColor
	}
	return int(v)
}

func isValidURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
