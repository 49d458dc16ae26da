package scheduler

import (
	"fmt"
	"sync"

	"github.com/kitschlabs/kitschbot/internal/render"
)

// Schedule persists a new job and hands it to the working set. The returned
// id is the store-assigned one; the job struct is updated in place.
func (s *Service) Schedule(job *Job) (string, error) {
	if len(job.TargetChannels) == 0 {
		return "", fmt.Errorf("job requires at least one target channel")
	}

	id, err := s.store.Create(job)
	if err != nil {
		return "", fmt.Errorf("failed to create job: %w", err)
	}
	job.ID = id
	s.Add(job)
	return id, nil
}

type sendResult struct {
	channelID string
	messageID string
	err       error
}

// dispatch executes one due job end to end: resolve the embed, fan out to
// every target channel, record the primary message id, then either re-arm
// (recurring) or mark the job complete. The job has already been removed
// from the working set; re-arming puts it back with its next occurrence.
//
// Dispatch never lets a failure escape into the tick loop: content or
// primary-send failures mark the job failed, and a panic anywhere in the
// pipeline is converted to the same terminal state.
func (s *Service) dispatch(job *Job) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorw("panic while dispatching job", "job_id", job.ID, "panic", r)
			s.markStatus(job.ID, StatusFailed)
		}
	}()

	cfg, content, err := s.content.GetEmbed(job.EmbedID)
	if err != nil {
		s.log.Errorw("embed missing for job", "job_id", job.ID, "embed_id", job.EmbedID, "error", err)
		s.markStatus(job.ID, StatusFailed)
		return
	}
	buttons, err := s.content.GetButtons(job.EmbedID)
	if err != nil {
		s.log.Errorw("failed to load buttons for job", "job_id", job.ID, "error", err)
		s.markStatus(job.ID, StatusFailed)
		return
	}

	msg := render.BuildMessage(cfg, content, buttons)
	results := s.fanOut(dedupe(job.TargetChannels), msg)

	for _, r := range results {
		if r.err != nil {
			s.log.Warnw("send failed for channel", "job_id", job.ID, "channel_id", r.channelID, "error", r.err)
		}
	}

	// The first target is the primary destination: its outcome gates the
	// job's status, and its message id is kept for later edits.
	primary := results[0]
	if primary.err != nil {
		s.markStatus(job.ID, StatusFailed)
		return
	}
	if err := s.content.RecordMessageID(job.EmbedID, primary.messageID); err != nil {
		s.log.Errorw("failed to record delivered message id", "job_id", job.ID, "error", err)
	}

	if job.Recurring() {
		s.rearm(job)
		return
	}
	s.markStatus(job.ID, StatusCompleted)
	s.log.Infow("job completed", "job_id", job.ID, "message_id", primary.messageID)
}

// fanOut sends the message to every channel concurrently. Channels fail
// independently; one rejection never blocks the rest.
func (s *Service) fanOut(channels []string, msg *render.Message) []sendResult {
	results := make([]sendResult, len(channels))

	var wg sync.WaitGroup
	for i, ch := range channels {
		wg.Add(1)
		go func(i int, ch string) {
			defer wg.Done()
			id, err := s.sender.SendMessage(s.ctx, ch, msg)
			results[i] = sendResult{channelID: ch, messageID: id, err: err}
		}(i, ch)
	}
	wg.Wait()

	return results
}

// rearm advances a recurring job to its next occurrence, persists the new
// schedule, and re-inserts it. Status stays pending throughout. A store
// failure here leaves the job out of the working set; it comes back on the
// next bootstrap.
func (s *Service) rearm(job *Job) {
	next := NextOccurrence(job.ScheduledTime.In(s.loc), job.Recurrence)

	if err := s.store.UpdateSchedule(job.ID, next, job.Recurrence, job.TargetChannels, job.Name); err != nil {
		s.log.Errorw("failed to persist recurrence", "job_id", job.ID, "error", err)
		return
	}

	job.ScheduledTime = next
	s.Add(job)
	s.log.Infow("job re-armed", "job_id", job.ID, "next", next)
}

// dedupe keeps the first occurrence of each channel, preserving order so
// the primary destination stays first.
func dedupe(channels []string) []string {
	seen := make(map[string]bool, len(channels))
	out := make([]string, 0, len(channels))
	for _, ch := range channels {
		if seen[ch] {
			continue
		}
		seen[ch] = true
		out = append(out, ch)
	}
	return out
}
