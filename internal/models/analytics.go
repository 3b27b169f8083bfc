package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalyticsEvent struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CompanyID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	EventType        string     `gorm:"type:text;not null" json:"event_type"`
	DocumentID       *uuid.UUID `gorm:"type:uuid" json:"document_id,omitempty"`
	JobRequirementID *uuid.UUID `gorm:"type:uuid" json:"job_requirement_id,omitempty"`
	JobTitle         string     `gorm:"type:text" json:"job_title"`
	OverallScore     *int       `gorm:"type:integer" json:"overall_score,omitempty"`
	FitScore         *int       `gorm:"type:integer" json:"fit_score,omitempty"`
	CreatedAt        time.Time  `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}
