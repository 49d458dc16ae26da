// Package store provides the gorm-backed persistence used by the scheduler
// and pulse services.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kitschlabs/kitschbot/internal/models"
	"github.com/kitschlabs/kitschbot/internal/services/scheduler"
)

// JobStore persists scheduled jobs. Implements scheduler.JobStore.
type JobStore struct {
	db *gorm.DB
}

// NewJobStore creates a job store backed by db.
func NewJobStore(db *gorm.DB) *JobStore {
	return &JobStore{db: db}
}

// Create persists a new pending job and returns its id.
func (s *JobStore) Create(job *scheduler.Job) (string, error) {
	rec, err := toRecord(job)
	if err != nil {
		return "", err
	}
	rec.Status = models.JobStatusPending

	if err := s.db.Create(rec).Error; err != nil {
		return "", fmt.Errorf("failed to create scheduled job: %w", err)
	}
	return rec.ID, nil
}

// ListPending returns every pending job ordered by scheduled time ascending.
func (s *JobStore) ListPending() ([]*scheduler.Job, error) {
	var records []models.ScheduledJob
	err := s.db.
		Where("status = ?", models.JobStatusPending).
		Order("scheduled_time ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending jobs: %w", err)
	}

	jobs := make([]*scheduler.Job, 0, len(records))
	for i := range records {
		job, err := fromRecord(&records[i])
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// UpdateStatus transitions a job's status.
func (s *JobStore) UpdateStatus(id string, status scheduler.Status) error {
	err := s.db.Model(&models.ScheduledJob{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	return nil
}

// UpdateSchedule rewrites the mutable fields of a job.
func (s *JobStore) UpdateSchedule(id string, scheduledTime time.Time, recurrence []scheduler.Weekday, targetChannels []string, name string) error {
	rec, targets, err := encodeScheduleFields(recurrence, targetChannels)
	if err != nil {
		return err
	}

	err = s.db.Model(&models.ScheduledJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"scheduled_time":  scheduledTime,
			"recurrence":      rec,
			"target_channels": targets,
			"name":            name,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update job schedule: %w", err)
	}
	return nil
}

// CancelByEmbed marks all still-pending jobs referencing an embed as
// cancelled.
func (s *JobStore) CancelByEmbed(embedID string) error {
	err := s.db.Model(&models.ScheduledJob{}).
		Where("embed_id = ? AND status = ?", embedID, models.JobStatusPending).
		Update("status", models.JobStatusCancelled).Error
	if err != nil {
		return fmt.Errorf("failed to cancel jobs for embed: %w", err)
	}
	return nil
}

func toRecord(job *scheduler.Job) (*models.ScheduledJob, error) {
	rec, targets, err := encodeScheduleFields(job.Recurrence, job.TargetChannels)
	if err != nil {
		return nil, err
	}
	return &models.ScheduledJob{
		ID:             job.ID,
		EmbedID:        job.EmbedID,
		Name:           job.Name,
		ScheduledTime:  job.ScheduledTime,
		Recurrence:     rec,
		TargetChannels: targets,
	}, nil
}

func fromRecord(rec *models.ScheduledJob) (*scheduler.Job, error) {
	job := &scheduler.Job{
		ID:            rec.ID,
		EmbedID:       rec.EmbedID,
		Name:          rec.Name,
		ScheduledTime: rec.ScheduledTime,
	}
	if rec.Recurrence != "" {
		if err := json.Unmarshal([]byte(rec.Recurrence), &job.Recurrence); err != nil {
			return nil, fmt.Errorf("malformed recurrence for job %s: %w", rec.ID, err)
		}
	}
	if rec.TargetChannels != "" {
		if err := json.Unmarshal([]byte(rec.TargetChannels), &job.TargetChannels); err != nil {
			return nil, fmt.Errorf("malformed target channels for job %s: %w", rec.ID, err)
		}
	}
	return job, nil
}

// encodeScheduleFields serializes recurrence and targets to their stored
// JSON form. An empty recurrence is stored as the empty string (one-shot).
func encodeScheduleFields(recurrence []scheduler.Weekday, targetChannels []string) (string, string, error) {
	var rec string
	if len(recurrence) > 0 {
		data, err := json.Marshal(recurrence)
		if err != nil {
			return "", "", fmt.Errorf("failed to marshal recurrence: %w", err)
		}
		rec = string(data)
	}

	data, err := json.Marshal(targetChannels)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal target channels: %w", err)
	}
	return rec, string(data), nil
}
