// Package pulse posts a periodically refreshed server-status embed to
// configured channels. Each run edits the previous status message in place;
// a fresh message is only sent when the old one is gone.
package pulse

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/kitschlabs/kitschbot/internal/discord"
	"github.com/kitschlabs/kitschbot/internal/models"
	"github.com/kitschlabs/kitschbot/internal/render"
)

// Platform is the slice of the chat client the pulse service needs.
type Platform interface {
	GetGuild(ctx context.Context, guildID string) (*discord.Guild, error)
	SendMessage(ctx context.Context, channelID string, msg *render.Message) (string, error)
	EditMessage(ctx context.Context, channelID, messageID string, msg *render.Message) (string, error)
}

// Store is the persistence contract for pulse records.
type Store interface {
	ListActive() ([]models.ServerPulse, error)
	UpdateMessageID(id, messageID string) error
	UpdateLastRun(id string, t time.Time) error
}

// Service schedules and executes server pulses.
type Service struct {
	ctx      context.Context
	store    Store
	platform Platform
	log      *zap.SugaredLogger
	cron     *cron.Cron

	entriesMu sync.Mutex
	entries   map[string]cron.EntryID // pulse ID -> cron entry
}

// NewService creates a pulse service.
func NewService(ctx context.Context, store Store, platform Platform, log *zap.SugaredLogger) *Service {
	return &Service{
		ctx:      ctx,
		store:    store,
		platform: platform,
		log:      log,
		cron:     cron.New(),
		entries:  make(map[string]cron.EntryID),
	}
}

// Start loads all active pulses, schedules each, and begins the cron loop.
func (s *Service) Start() error {
	if err := s.Refresh(); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("pulse service started")
	return nil
}

// Stop halts the cron loop and waits for in-flight runs.
func (s *Service) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("pulse service stopped")
}

// Refresh drops all scheduled pulses and reschedules from the store.
func (s *Service) Refresh() error {
	s.entriesMu.Lock()
	for _, entryID := range s.entries {
		s.cron.Remove(entryID)
	}
	s.entries = make(map[string]cron.EntryID)
	s.entriesMu.Unlock()

	pulses, err := s.store.ListActive()
	if err != nil {
		return fmt.Errorf("failed to load pulses: %w", err)
	}

	for i := range pulses {
		if err := s.schedule(pulses[i]); err != nil {
			s.log.Warnw("failed to schedule pulse", "pulse_id", pulses[i].ID, "error", err)
		}
	}
	s.log.Infow("pulses scheduled", "count", len(pulses))
	return nil
}

// cronSpec converts a pulse interval to its cron expression. Intervals round
// down to whole hours, minimum one hour.
func cronSpec(intervalMinutes int) string {
	hours := intervalMinutes / 60
	if hours < 1 {
		hours = 1
	}
	return fmt.Sprintf("0 */%d * * *", hours)
}

// schedule registers one pulse with the cron loop and fires it once right
// away so a fresh process shows current numbers immediately.
func (s *Service) schedule(pulse models.ServerPulse) error {
	expr := cronSpec(pulse.IntervalMinutes)

	go s.run(pulse)

	entryID, err := s.cron.AddFunc(expr, func() {
		s.run(pulse)
	})
	if err != nil {
		return fmt.Errorf("failed to add pulse cron entry: %w", err)
	}

	s.entriesMu.Lock()
	s.entries[pulse.ID] = entryID
	s.entriesMu.Unlock()
	return nil
}

// run gathers guild metrics and updates the status message.
func (s *Service) run(pulse models.ServerPulse) {
	guild, err := s.platform.GetGuild(s.ctx, pulse.GuildID)
	if err != nil {
		s.log.Errorw("pulse guild fetch failed", "pulse_id", pulse.ID, "error", err)
		return
	}

	msg := buildStatusMessage(&pulse, guild, time.Now())

	messageID, err := s.deliver(&pulse, msg)
	if err != nil {
		s.log.Errorw("pulse delivery failed", "pulse_id", pulse.ID, "error", err)
		return
	}

	if messageID != pulse.LastMessageID {
		if err := s.store.UpdateMessageID(pulse.ID, messageID); err != nil {
			s.log.Errorw("failed to store pulse message id", "pulse_id", pulse.ID, "error", err)
		}
	}
	if err := s.store.UpdateLastRun(pulse.ID, time.Now()); err != nil {
		s.log.Errorw("failed to store pulse run time", "pulse_id", pulse.ID, "error", err)
	}
}

// deliver edits the previous status message when one is recorded, falling
// back to a fresh send when the edit fails (message deleted, channel purge).
func (s *Service) deliver(pulse *models.ServerPulse, msg *render.Message) (string, error) {
	if pulse.LastMessageID != "" {
		id, err := s.platform.EditMessage(s.ctx, pulse.ChannelID, pulse.LastMessageID, msg)
		if err == nil {
			return id, nil
		}
		s.log.Debugw("pulse edit failed, sending fresh message", "pulse_id", pulse.ID, "error", err)
	}
	return s.platform.SendMessage(s.ctx, pulse.ChannelID, msg)
}
