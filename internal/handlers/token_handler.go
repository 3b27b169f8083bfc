package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hireflow/resume-screener/internal/repositories"
)

type TokenHandler struct {
	tokenRepo repositories.TokenBalanceRepository
}

func NewTokenHandler(tokenRepo repositories.TokenBalanceRepository) *TokenHandler {
	return &TokenHandler{
		tokenRepo: tokenRepo,
	}
}

// HandleGetBalance handles GET /tokens/balance.
func (h *TokenHandler) HandleGetBalance(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Query("company_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "valid company_id query parameter is required",
		})
	}

	balance, err := h.tokenRepo.Get(companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to get token balance",
		})
	}

	return c.JSON(fiber.Map{
		"company_id": balance.CompanyID.String(),
		"balance":    balance.Balance,
	})
}

type creditRequest struct {
	CompanyID string `json:"company_id"`
	Amount    int64  `json:"amount"`
}

// HandleCredit handles POST /tokens/credit: adds tokens to a company's
// balance, creating the balance row when it does not exist yet.
func (h *TokenHandler) HandleCredit(c *fiber.Ctx) error {
	var req creditRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "valid company_id is required",
		})
	}

	if req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "amount must be positive",
		})
	}

	if err := h.tokenRepo.Credit(companyID, req.Amount); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to credit tokens",
		})
	}

	balance, err := h.tokenRepo.Get(companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to get token balance",
		})
	}

	return c.JSON(fiber.Map{
		"company_id": balance.CompanyID.String(),
		"balance":    balance.Balance,
	})
}
