// Package discord is a minimal REST client for the endpoints the bot needs:
// sending and editing channel messages, and fetching guild counts.
package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/kitschlabs/kitschbot/internal/render"
)

const defaultBaseURL = "https://discord.com/api/v10"

// Client talks to the Discord REST API with bot-token auth.
type Client struct {
	http *resty.Client
	log  *zap.SugaredLogger
}

// Message is the subset of the Discord message object the bot reads back.
type Message struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
}

// Guild carries the counts used by the pulse service. Approximate counts are
// only present when the guild is fetched with_counts.
type Guild struct {
	ID                       string `json:"id"`
	Name                     string `json:"name"`
	Icon                     string `json:"icon"`
	ApproximateMemberCount   int    `json:"approximate_member_count"`
	ApproximatePresenceCount int    `json:"approximate_presence_count"`
}

// NewClient creates a Discord REST client.
func NewClient(token string, log *zap.SugaredLogger) *Client {
	http := resty.New().
		SetBaseURL(defaultBaseURL).
		SetAuthScheme("Bot").
		SetAuthToken(token).
		SetHeader("User-Agent", "DiscordBot (https://github.com/kitschlabs/kitschbot, 1.0)").
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Retry on rate limits and transient server errors
			return r.StatusCode() == 429 || (r.StatusCode() >= 500 && r.StatusCode() <= 504)
		})

	return &Client{http: http, log: log}
}

// SendMessage posts a message to a channel and returns the created message
// id. Implements scheduler.Sender.
func (c *Client) SendMessage(ctx context.Context, channelID string, msg *render.Message) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(msg).
		Post(fmt.Sprintf("/channels/%s/messages", channelID))
	if err != nil {
		return "", fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("send to channel %s rejected: %s: %s", channelID, resp.Status(), resp.String())
	}

	var created Message
	if err := json.Unmarshal(resp.Body(), &created); err != nil {
		return "", fmt.Errorf("failed to parse message response: %w", err)
	}
	return created.ID, nil
}

// EditMessage replaces the content of an existing message.
func (c *Client) EditMessage(ctx context.Context, channelID, messageID string, msg *render.Message) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(msg).
		Patch(fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID))
	if err != nil {
		return "", fmt.Errorf("failed to edit message %s: %w", messageID, err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("edit of message %s rejected: %s: %s", messageID, resp.Status(), resp.String())
	}

	var edited Message
	if err := json.Unmarshal(resp.Body(), &edited); err != nil {
		return "", fmt.Errorf("failed to parse message response: %w", err)
	}
	return edited.ID, nil
}

// GetGuild fetches a guild with approximate member and presence counts.
func (c *Client) GetGuild(ctx context.Context, guildID string) (*Guild, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("with_counts", "true").
		Get(fmt.Sprintf("/guilds/%s", guildID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guild %s: %w", guildID, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("guild %s fetch rejected: %s", guildID, resp.Status())
	}

	var guild Guild
	if err := json.Unmarshal(resp.Body(), &guild); err != nil {
		return nil, fmt.Errorf("failed to parse guild response: %w", err)
	}
	return &guild, nil
}
