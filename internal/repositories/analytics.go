package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hireflow/resume-screener/internal/models"
)

type AnalyticsRepository interface {
	Record(event *models.AnalyticsEvent) error
	ListRecent(companyID uuid.UUID, limit int) ([]models.AnalyticsEvent, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Record(event *models.AnalyticsEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("failed to record analytics event: %w", err)
	}
	return nil
}

func (r *analyticsRepository) ListRecent(companyID uuid.UUID, limit int) ([]models.AnalyticsEvent, error) {
	var events []models.AnalyticsEvent
	err := r.db.
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list analytics events: %w", err)
	}
	return events, nil
}
