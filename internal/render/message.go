// Package render turns stored embed configurations into Discord message
// payloads. Everything here is pure: no I/O, no clock reads beyond the
// optional render-time timestamp.
package render

// Discord component type and button style constants (API wire values).
const (
	componentTypeActionRow = 1
	componentTypeButton    = 2

	buttonStylePrimary   = 1
	buttonStyleSecondary = 2
	buttonStyleSuccess   = 3
	buttonStyleDanger    = 4
	buttonStyleLink      = 5
)

// Message is an outbound Discord message create/edit payload.
type Message struct {
	Content    string      `json:"content,omitempty"`
	Embeds     []Embed     `json:"embeds,omitempty"`
	Components []ActionRow `json:"components,omitempty"`
}

// Embed is the Discord embed wire object.
type Embed struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	URL         string      `json:"url,omitempty"`
	Color       int         `json:"color,omitempty"`
	Timestamp   string      `json:"timestamp,omitempty"` // ISO8601
	Author      *EmbedNamed `json:"author,omitempty"`
	Footer      *EmbedNamed `json:"footer,omitempty"`
	Thumbnail   *EmbedMedia `json:"thumbnail,omitempty"`
	Image       *EmbedMedia `json:"image,omitempty"`
	Fields      []Field     `json:"fields,omitempty"`
}

// EmbedNamed covers the author ({name, icon_url, url}) and footer
// ({text, icon_url}) shapes; unused keys are omitted.
type EmbedNamed struct {
	Name    string `json:"name,omitempty"`
	Text    string `json:"text,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
	URL     string `json:"url,omitempty"`
}

// EmbedMedia is an image or thumbnail reference.
type EmbedMedia struct {
	URL string `json:"url"`
}

// Field is one embed field.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// ActionRow groups up to five buttons.
type ActionRow struct {
	Type       int      `json:"type"`
	Components []Button `json:"components"`
}

// Button is the Discord button component wire object.
type Button struct {
	Type     int    `json:"type"`
	Style    int    `json:"style"`
	Label    string `json:"label"`
	CustomID string `json:"custom_id,omitempty"`
	URL      string `json:"url,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
	Emoji    *Emoji `json:"emoji,omitempty"`
}

// Emoji is a unicode emoji attached to a button.
type Emoji struct {
	Name string `json:"name"`
}
