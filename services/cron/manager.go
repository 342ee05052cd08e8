package cron

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/robfig/cron/v3"
	"github.com/sahilchouksey/actividades-api/model"
	"github.com/sahilchouksey/actividades-api/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const jobTimeout = 5 * time.Minute

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron      *cron.Cron
	db        *gorm.DB
	log       *utils.Logger
	retention time.Duration
}

// NewCronManager creates a new cron manager. Audit logs older than
// retentionDays are purged by the daily cleanup.
func NewCronManager(db *gorm.DB, log *utils.Logger, retentionDays int) *CronManager {
	if retentionDays <= 0 {
		retentionDays = 30
	}

	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:      c,
		db:        db,
		log:       log.With("component", "cron"),
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	m.log.Info("starting cron jobs")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	m.log.Info("cron jobs started", "entries", len(m.cron.Entries()))
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	m.log.Info("stopping cron jobs")
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.log.Info("cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Daily at 3 AM: purge old audit and job logs
	_, err := m.cron.AddFunc("0 0 3 * * *", func() {
		m.run("cleanup_audit_logs", m.cleanupJob)
	})
	if err != nil {
		return err
	}

	// Every hour: log entity and link counts
	_, err = m.cron.AddFunc("0 0 * * * *", func() {
		m.run("collect_statistics", m.statisticsJob)
	})
	if err != nil {
		return err
	}

	return nil
}

type jobFunc func(ctx context.Context) (string, map[string]interface{}, error)

// run records a CronJobLog row around fn
func (m *CronManager) run(jobName string, fn jobFunc) *model.CronJobLog {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	m.log.Info("cron job started", "job", jobName)

	entry := &model.CronJobLog{
		JobName:   jobName,
		Status:    model.CronJobRunning,
		StartedAt: time.Now(),
	}
	if err := m.db.WithContext(ctx).Create(entry).Error; err != nil {
		m.log.Warn("cron job log not recorded", "job", jobName, "error", err)
	}

	message, metadata, err := fn(ctx)

	completed := time.Now()
	entry.CompletedAt = &completed
	entry.Duration = completed.Sub(entry.StartedAt).Milliseconds()
	entry.Message = message
	if metadata != nil {
		if raw, mErr := sonic.Marshal(metadata); mErr == nil {
			entry.Metadata = datatypes.JSON(raw)
		}
	}

	if err != nil {
		entry.Status = model.CronJobFailed
		entry.ErrorMsg = err.Error()
		m.log.Error("cron job failed", "job", jobName, "error", err)
	} else {
		entry.Status = model.CronJobCompleted
		m.log.Info("cron job completed", "job", jobName, "message", message, "duration_ms", entry.Duration)
	}

	if entry.ID != 0 {
		if saveErr := m.db.WithContext(ctx).Save(entry).Error; saveErr != nil {
			m.log.Warn("cron job log not updated", "job", jobName, "error", saveErr)
		}
	}
	return entry
}
