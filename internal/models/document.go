package models

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CompanyID        uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Filename         string    `gorm:"type:text" json:"filename"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	FilePath         string    `gorm:"type:text" json:"file_path"`
	PageCount        int       `gorm:"type:integer" json:"page_count"`
	WordCount        int       `gorm:"type:integer" json:"word_count"`
	CharCount        int       `gorm:"type:integer" json:"char_count"`
	CleanText        string    `gorm:"type:text" json:"-"`
	RawText          string    `gorm:"type:text" json:"-"`
	CandidateName    *string   `gorm:"type:text" json:"candidate_name,omitempty"`
	Email            *string   `gorm:"type:text" json:"email,omitempty"`
	Phone            *string   `gorm:"type:text" json:"phone,omitempty"`
	Location         *string   `gorm:"type:text" json:"location,omitempty"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (d *Document) TableName() string {
	return "documents"
}

// BasicInfo carries the identity fields recovered heuristically from one
// resume. Every field is optional; a nil field means the pattern did not
// match, which is a normal outcome.
type BasicInfo struct {
	CandidateName *string `json:"candidate_name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Location      *string `json:"location"`
}

// BasicInfo rebuilds the heuristic identity fields stored on the document.
func (d *Document) BasicInfo() BasicInfo {
	return BasicInfo{
		CandidateName: d.CandidateName,
		Email:         d.Email,
		Phone:         d.Phone,
		Location:      d.Location,
	}
}
