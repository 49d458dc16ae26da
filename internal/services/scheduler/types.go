package scheduler

import (
	"context"
	"time"

	"github.com/kitschlabs/kitschbot/internal/models"
	"github.com/kitschlabs/kitschbot/internal/render"
)

// Weekday is a recurrence day tag as stored in the database (MON..SUN).
type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
	Sunday    Weekday = "SUN"
)

// Status is a job's lifecycle state. Only StatusPending jobs are eligible
// for dispatch; the rest are terminal.
type Status string

const (
	StatusPending   Status = models.JobStatusPending
	StatusCompleted Status = models.JobStatusCompleted
	StatusCancelled Status = models.JobStatusCancelled
	StatusFailed    Status = models.JobStatusFailed
)

// Job is the scheduler's working-set view of a scheduled delivery.
// ScheduledTime is always an absolute instant; recurrence and target
// channels are decoded from their stored JSON form.
type Job struct {
	ID             string
	EmbedID        string
	Name           string
	ScheduledTime  time.Time
	Recurrence     []Weekday
	TargetChannels []string
}

// Recurring reports whether the job re-arms after each execution.
func (j *Job) Recurring() bool {
	return len(j.Recurrence) > 0
}

// JobStore is the persistence contract the scheduler depends on. Every
// method is synchronous; a returned error aborts handling of that one job
// only.
type JobStore interface {
	// Create persists a new pending job and returns its id.
	Create(job *Job) (string, error)
	// ListPending returns all pending jobs ordered by scheduled time ascending.
	ListPending() ([]*Job, error)
	// UpdateStatus transitions a job's status.
	UpdateStatus(id string, status Status) error
	// UpdateSchedule rewrites the mutable fields of a job. Used both for
	// user edits and for recurrence re-arming.
	UpdateSchedule(id string, scheduledTime time.Time, recurrence []Weekday, targetChannels []string, name string) error
	// CancelByEmbed marks all still-pending jobs for an embed as cancelled.
	CancelByEmbed(embedID string) error
}

// ContentStore resolves the embed payload a job references and records the
// delivered message id of the primary destination.
type ContentStore interface {
	GetEmbed(embedID string) (*models.EmbedConfig, string, error)
	GetButtons(embedID string) ([]models.EmbedButton, error)
	RecordMessageID(embedID, messageID string) error
}

// Sender delivers a rendered message to one channel and returns the created
// message id.
type Sender interface {
	SendMessage(ctx context.Context, channelID string, msg *render.Message) (string, error)
}
