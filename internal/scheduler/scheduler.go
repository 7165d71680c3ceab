package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"mail-triage-go/internal/config"
	"mail-triage-go/internal/model"
	"mail-triage-go/internal/triage"
)

// Scheduler periodically re-runs the triage pipeline over non-final emails
// so the age term of their priority stays current. Re-processing is an
// idempotent metadata upsert plus an appended draft, so a cycle only
// refreshes derived values.
type Scheduler struct {
	cron      *cron.Cron
	entryID   cron.EntryID
	config    *config.SchedulerConfig
	db        *gorm.DB
	pipeline  *triage.Pipeline
	wg        sync.WaitGroup
	isRunning bool
	mu        sync.RWMutex
}

// NewScheduler creates a new re-score scheduler
func NewScheduler(cfg *config.SchedulerConfig, db *gorm.DB, pipeline *triage.Pipeline) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		config:   cfg,
		db:       db,
		pipeline: pipeline,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	schedule := fmt.Sprintf("0 */%d * * * *", s.config.IntervalMinutes)

	entryID, err := s.cron.AddFunc(schedule, s.scheduledCycle)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.entryID = entryID
	s.cron.Start()
	s.isRunning = true

	logrus.Infof("Re-score scheduler started with interval: %d minutes", s.config.IntervalMinutes)
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	ctx := s.cron.Stop()

	select {
	case <-ctx.Done():
		logrus.Info("Scheduler stopped gracefully")
	case <-time.After(30 * time.Second):
		logrus.Warn("Scheduler stop timeout, forcing shutdown")
	}

	s.cron = cron.New(cron.WithSeconds())
	s.isRunning = false
	return nil
}

// IsRunning returns whether the scheduler is running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// scheduledCycle is the cron entry point; it skips work once Stop has begun.
func (s *Scheduler) scheduledCycle() {
	if !s.IsRunning() {
		logrus.Info("Scheduler not running, skipping re-score cycle")
		return
	}
	s.rescoreCycle()
}

// rescoreCycle re-processes every email that has not reached a final status.
func (s *Scheduler) rescoreCycle() {
	s.wg.Add(1)
	defer s.wg.Done()

	startTime := time.Now()
	logrus.Info("Starting re-score cycle")

	var emails []model.Email
	err := s.db.
		Joins("LEFT JOIN email_meta ON email_meta.email_id = emails.id").
		Where("email_meta.status IS NULL OR email_meta.status IN ?",
			[]string{model.StatusPending, model.StatusDrafted}).
		Find(&emails).Error
	if err != nil {
		logrus.Errorf("Failed to load emails for re-scoring: %v", err)
		return
	}

	for i := range emails {
		if _, err := s.pipeline.Process(&emails[i]); err != nil {
			logrus.Errorf("Failed to re-score email %s: %v", emails[i].ID, err)
		}
	}

	logrus.Infof("Re-score cycle completed for %d emails in %v", len(emails), time.Since(startTime))
}

// RunOnce runs a re-score cycle immediately (for manual triggering)
func (s *Scheduler) RunOnce() error {
	logrus.Info("Running re-score cycle once")
	s.rescoreCycle()
	return nil
}

// GetNextRun returns the time of the next scheduled run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isRunning {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// GetLastRun returns the time of the last run
func (s *Scheduler) GetLastRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isRunning {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Prev
}

// Wait waits for any in-flight cycle to finish
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
