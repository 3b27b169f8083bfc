package models

import (
	"time"

	"github.com/google/uuid"
)

type ScreeningStatus string

const (
	StatusQueued     ScreeningStatus = "queued"
	StatusProcessing ScreeningStatus = "processing"
	StatusCompleted  ScreeningStatus = "completed"
	StatusFailed     ScreeningStatus = "failed"
)

type Screening struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CompanyID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	DocumentID       uuid.UUID       `gorm:"type:uuid;not null" json:"document_id"`
	JobRequirementID *uuid.UUID      `gorm:"type:uuid" json:"job_requirement_id,omitempty"`
	Status           ScreeningStatus `gorm:"not null;default:'queued'" json:"status"`
	OverallScore     *int            `gorm:"type:integer" json:"overall_score,omitempty"`
	FitScore         *int            `gorm:"type:integer" json:"fit_score,omitempty"`
	Summary          *string         `gorm:"type:text" json:"summary,omitempty"`
	ResultJSON       *string         `gorm:"type:text" json:"-"`
	ErrorMessage     *string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Document Document `gorm:"foreignKey:DocumentID" json:"-"`
}

func (Screening) TableName() string {
	return "screenings"
}
