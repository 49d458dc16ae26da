package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Service owns the in-memory working set of pending jobs and drives their
// execution from a once-a-minute tick. All working-set mutation happens via
// Bootstrap, Add, Remove, CancelByEmbed and the tick itself; consecutive
// ticks are serialized so a slow dispatch never races a second scan.
type Service struct {
	ctx     context.Context
	store   JobStore
	content ContentStore
	sender  Sender
	loc     *time.Location
	log     *zap.SugaredLogger

	cron *cron.Cron
	now  func() time.Time

	jobsMu sync.Mutex
	jobs   map[string]*Job
}

// NewService creates a scheduler service. loc is the process-wide timezone
// used for recurrence wall-clock arithmetic.
func NewService(ctx context.Context, store JobStore, content ContentStore, sender Sender, loc *time.Location, log *zap.SugaredLogger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		ctx:     ctx,
		store:   store,
		content: content,
		sender:  sender,
		loc:     loc,
		log:     log,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		now:     time.Now,
		jobs:    make(map[string]*Job),
	}
}

// Start restores pending jobs from the store and begins the minute tick.
func (s *Service) Start() error {
	if err := s.Bootstrap(); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc("* * * * *", s.Tick); err != nil {
		return fmt.Errorf("failed to register tick: %w", err)
	}
	s.cron.Start()
	s.log.Info("scheduler started")
	return nil
}

// Stop halts the tick and waits for an in-flight tick to finish.
func (s *Service) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

// Bootstrap clears the working set and reloads every pending job from the
// store. Jobs already past due (due while the process was offline) are
// dispatched right away instead of waiting for the first tick.
func (s *Service) Bootstrap() error {
	jobs, err := s.store.ListPending()
	if err != nil {
		return fmt.Errorf("failed to load pending jobs: %w", err)
	}

	s.jobsMu.Lock()
	s.jobs = make(map[string]*Job, len(jobs))
	s.jobsMu.Unlock()

	s.log.Infow("restoring pending jobs", "count", len(jobs))
	for _, job := range jobs {
		s.Add(job)
	}
	return nil
}

// Add inserts a job into the working set. A job whose due time has already
// passed is dispatched immediately. Jobs without a single target channel are
// never accepted; they are marked failed so no tick can pick them up.
func (s *Service) Add(job *Job) {
	if len(job.TargetChannels) == 0 {
		s.log.Warnw("rejecting job with no target channels", "job_id", job.ID)
		s.markStatus(job.ID, StatusFailed)
		return
	}

	if !job.ScheduledTime.After(s.now()) {
		s.dispatch(job)
		return
	}

	s.jobsMu.Lock()
	s.jobs[job.ID] = job
	s.jobsMu.Unlock()
	s.log.Infow("job scheduled", "job_id", job.ID, "at", job.ScheduledTime)
}

// Remove drops a job from the working set without touching the store.
func (s *Service) Remove(id string) {
	s.jobsMu.Lock()
	delete(s.jobs, id)
	s.jobsMu.Unlock()
}

// CancelByEmbed cancels every pending job referencing an embed: removed from
// the working set synchronously, marked cancelled in the store so a restart
// cannot resurrect it. Cancelling an embed with no live jobs is a no-op.
func (s *Service) CancelByEmbed(embedID string) error {
	s.jobsMu.Lock()
	for id, job := range s.jobs {
		if job.EmbedID == embedID {
			delete(s.jobs, id)
		}
	}
	s.jobsMu.Unlock()

	if err := s.store.CancelByEmbed(embedID); err != nil {
		return fmt.Errorf("failed to cancel jobs for embed %s: %w", embedID, err)
	}
	return nil
}

// Pending returns a snapshot of the working set. Used by the listing
// surface; the scheduler itself never iterates this copy.
func (s *Service) Pending() []*Job {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	out := make([]*Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		out = append(out, job)
	}
	return out
}

// Tick scans the working set for due jobs and dispatches each one. Due jobs
// are snapshotted and removed before any dispatch runs, so a recurring job
// re-inserting itself can never be picked up twice in the same tick.
func (s *Service) Tick() {
	now := s.now()

	s.jobsMu.Lock()
	var due []*Job
	for _, job := range s.jobs {
		if !job.ScheduledTime.After(now) {
			due = append(due, job)
		}
	}
	for _, job := range due {
		delete(s.jobs, job.ID)
	}
	s.jobsMu.Unlock()

	for _, job := range due {
		s.log.Infow("executing scheduled job", "job_id", job.ID)
		s.dispatch(job)
	}
}

func (s *Service) markStatus(id string, status Status) {
	if err := s.store.UpdateStatus(id, status); err != nil {
		s.log.Errorw("failed to update job status", "job_id", id, "status", status, "error", err)
	}
}
