package models

import (
	"time"

	"github.com/google/uuid"
)

// TokenBalance gates processing per company. Each screened document costs
// one token.
type TokenBalance struct {
	CompanyID uuid.UUID `gorm:"type:uuid;primary_key" json:"company_id"`
	Balance   int64     `gorm:"type:bigint;not null;default:0" json:"balance"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (TokenBalance) TableName() string {
	return "token_balances"
}
