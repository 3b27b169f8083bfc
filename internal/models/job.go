package models

import (
	"time"

	"github.com/google/uuid"
)

type JobRequirement struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CompanyID       uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Title           string    `gorm:"type:text" json:"title"`
	RequiredSkills  []string  `gorm:"type:text;serializer:json" json:"required_skills"`
	ExperienceLevel string    `gorm:"type:text" json:"experience_level"`
	Education       string    `gorm:"type:text" json:"education"`
	Keywords        []string  `gorm:"type:text;serializer:json" json:"keywords"`
	Description     string    `gorm:"type:text" json:"description"`
	CreatedAt       time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (JobRequirement) TableName() string {
	return "job_requirements"
}
