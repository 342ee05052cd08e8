package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilchouksey/actividades-api/model"
	"github.com/sahilchouksey/actividades-api/services"
)

// CleanupAuditLogs deletes audit and cron logs older than the retention window
func (m *CronManager) CleanupAuditLogs(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-m.retention)

	res := m.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.AuditLog{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete audit logs: %w", res.Error)
	}
	deleted := res.RowsAffected

	res = m.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.CronJobLog{})
	if res.Error != nil {
		return deleted, fmt.Errorf("delete cron job logs: %w", res.Error)
	}

	return deleted + res.RowsAffected, nil
}

// CollectStatistics takes the hourly snapshot of table sizes
func (m *CronManager) CollectStatistics(ctx context.Context) (*services.Statistics, error) {
	return services.NewStatisticsService(m.db).Collect(ctx)
}

func (m *CronManager) cleanupJob(ctx context.Context) (string, map[string]interface{}, error) {
	deleted, err := m.CleanupAuditLogs(ctx)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("Deleted %d old log rows", deleted), map[string]interface{}{
		"deleted":        deleted,
		"retention_days": int(m.retention.Hours() / 24),
	}, nil
}

func (m *CronManager) statisticsJob(ctx context.Context) (string, map[string]interface{}, error) {
	stats, err := m.CollectStatistics(ctx)
	if err != nil {
		return "", nil, err
	}
	m.log.Info("statistics snapshot",
		"actividades", stats.Activities,
		"categorias", stats.Categories,
		"alumnos", stats.Students,
		"links", stats.Links,
		"solicitudes", stats.Enrollments,
		"products", stats.Products,
		"books", stats.Books,
	)
	return "Statistics collected", map[string]interface{}{
		"actividades": stats.Activities,
		"categorias":  stats.Categories,
		"alumnos":     stats.Students,
		"links":       stats.Links,
		"solicitudes": stats.Enrollments,
		"products":    stats.Products,
		"books":       stats.Books,
		"writes":      stats.WritesToday,
	}, nil
}
