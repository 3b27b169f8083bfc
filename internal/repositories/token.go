package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hireflow/resume-screener/internal/models"
)

// ErrInsufficientBalance is returned when a decrement would take a
// company's balance below zero. The handler maps it to 402.
var ErrInsufficientBalance = errors.New("insufficient token balance")

type TokenBalanceRepository interface {
	Get(companyID uuid.UUID) (*models.TokenBalance, error)
	Credit(companyID uuid.UUID, amount int64) error
	Decrement(companyID uuid.UUID, amount int64) error
}

type tokenBalanceRepository struct {
	db *gorm.DB
}

func NewTokenBalanceRepository(db *gorm.DB) TokenBalanceRepository {
	return &tokenBalanceRepository{db: db}
}

func (r *tokenBalanceRepository) Get(companyID uuid.UUID) (*models.TokenBalance, error) {
	var balance models.TokenBalance
	if err := r.db.Where("company_id = ?", companyID).First(&balance).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &models.TokenBalance{CompanyID: companyID, Balance: 0}, nil
		}
		return nil, fmt.Errorf("failed to get token balance: %w", err)
	}
	return &balance, nil
}

func (r *tokenBalanceRepository) Credit(companyID uuid.UUID, amount int64) error {
	balance := models.TokenBalance{CompanyID: companyID, Balance: amount}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"balance": gorm.Expr("token_balances.balance + ?", amount)}),
	}).Create(&balance).Error
	if err != nil {
		return fmt.Errorf("failed to credit tokens: %w", err)
	}
	return nil
}

// Decrement spends tokens atomically: the conditional update only succeeds
// when the balance covers the amount, so concurrent screenings cannot
// overspend.
func (r *tokenBalanceRepository) Decrement(companyID uuid.UUID, amount int64) error {
	result := r.db.Model(&models.TokenBalance{}).
		Where("company_id = ? AND balance >= ?", companyID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))

	if result.Error != nil {
		return fmt.Errorf("failed to decrement tokens: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrInsufficientBalance
	}

	return nil
}
