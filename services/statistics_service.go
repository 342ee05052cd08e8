package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilchouksey/actividades-api/model"
	"gorm.io/gorm"
)

// Statistics is a snapshot of table sizes and recent write traffic
type Statistics struct {
	Activities  int64            `json:"actividades"`
	Categories  int64            `json:"categorias"`
	Students    int64            `json:"alumnos"`
	Links       int64            `json:"actividad_pertence"`
	Enrollments map[string]int64 `json:"solicitudes"`
	Products    int64            `json:"products"`
	Books       int64            `json:"books"`
	WritesToday int64            `json:"writes_last_24h"`
}

type StatisticsService struct {
	db *gorm.DB
}

func NewStatisticsService(db *gorm.DB) *StatisticsService {
	return &StatisticsService{db: db}
}

// Collect counts the rows of every domain table
func (s *StatisticsService) Collect(ctx context.Context) (*Statistics, error) {
	db := s.db.WithContext(ctx)
	stats := &Statistics{Enrollments: map[string]int64{}}

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&model.Activity{}, &stats.Activities},
		{&model.Category{}, &stats.Categories},
		{&model.Student{}, &stats.Students},
		{&model.ActivityCategory{}, &stats.Links},
		{&model.Product{}, &stats.Products},
		{&model.Book{}, &stats.Books},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("count %T: %w", c.model, err)
		}
	}

	var rows []struct {
		Status string `gorm:"column:estado"`
		Total  int64  `gorm:"column:total"`
	}
	err := db.Model(&model.EnrollmentRequest{}).
		Select("estado, COUNT(*) AS total").
		Group("estado").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count enrollment requests: %w", err)
	}
	for _, r := range rows {
		stats.Enrollments[r.Status] = r.Total
	}

	err = db.Model(&model.AuditLog{}).
		Where("created_at >= ?", time.Now().Add(-24*time.Hour)).
		Count(&stats.WritesToday).Error
	if err != nil {
		return nil, fmt.Errorf("count audit logs: %w", err)
	}

	return stats, nil
}
