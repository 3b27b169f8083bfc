package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hireflow/resume-screener/internal/models"
	"hireflow/resume-screener/internal/repositories"
	"hireflow/resume-screener/internal/services"
)

type ScreenHandler struct {
	screeningRepo repositories.ScreeningRepository
	docRepo       repositories.DocumentRepository
	jobRepo       repositories.JobRequirementRepository
	tokenRepo     repositories.TokenBalanceRepository
	scorer        services.ScorerService
	worker        services.Worker
}

func NewScreenHandler(
	screeningRepo repositories.ScreeningRepository,
	docRepo repositories.DocumentRepository,
	jobRepo repositories.JobRequirementRepository,
	tokenRepo repositories.TokenBalanceRepository,
	scorer services.ScorerService,
	worker services.Worker,
) *ScreenHandler {
	return &ScreenHandler{
		screeningRepo: screeningRepo,
		docRepo:       docRepo,
		jobRepo:       jobRepo,
		tokenRepo:     tokenRepo,
		scorer:        scorer,
		worker:        worker,
	}
}

// HandleScreen handles POST /screen: charges one token, queues the
// screening and returns immediately with its id.
func (h *ScreenHandler) HandleScreen(c *fiber.Ctx) error {
	var req models.ScreenRequest
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

	docID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid document_id format",
		})
	}

	if _, err := h.docRepo.FindByID(docID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "document not found",
		})
	}

	var jobID *uuid.UUID
	if req.JobRequirementID != "" {
		parsed, err := uuid.Parse(req.JobRequirementID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid job_requirement_id format",
			})
		}
		if _, err := h.jobRepo.FindByID(parsed); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "job requirement not found",
			})
		}
		jobID = &parsed
	}

	if err := h.tokenRepo.Decrement(companyID, 1); err != nil {
		if errors.Is(err, repositories.ErrInsufficientBalance) {
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
				"error": "insufficient token balance",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to charge tokens",
		})
	}

	screening := &models.Screening{
		ID:               uuid.New(),
		CompanyID:        companyID,
		DocumentID:       docID,
		JobRequirementID: jobID,
		Status:           models.StatusQueued,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.screeningRepo.Create(screening); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create screening job",
		})
	}

	h.worker.EnqueueJob(screening.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.ScreenResponse{
		ID:     screening.ID.String(),
		Status: string(models.StatusQueued),
	})
}

// HandleBatchScreen handles POST /screen/batch: charges one token per
// document, scores them sequentially with pacing, and returns one outcome
// per requested document — failed items are reported, never dropped.
func (h *ScreenHandler) HandleBatchScreen(c *fiber.Ctx) error {
	var req models.BatchScreenRequest
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

	if len(req.DocumentIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "document_ids is required",
		})
	}

	docIDs := make([]uuid.UUID, 0, len(req.DocumentIDs))
	for _, raw := range req.DocumentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid document id: " + raw,
			})
		}
		docIDs = append(docIDs, id)
	}

	var job *models.JobRequirement
	if req.JobRequirementID != "" {
		jobID, err := uuid.Parse(req.JobRequirementID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid job_requirement_id format",
			})
		}
		job, err = h.jobRepo.FindByID(jobID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "job requirement not found",
			})
		}
	}

	docs, err := h.docRepo.FindByIDs(docIDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load documents",
		})
	}
	byID := make(map[uuid.UUID]models.Document, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
	}

	if err := h.tokenRepo.Decrement(companyID, int64(len(docIDs))); err != nil {
		if errors.Is(err, repositories.ErrInsufficientBalance) {
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
				"error": "insufficient token balance",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to charge tokens",
		})
	}

	// Missing documents become failed outcomes up front so the response
	// still covers every requested id.
	batch := make([]services.BatchDocument, 0, len(docIDs))
	missing := make(map[string]bool)
	for _, id := range docIDs {
		doc, ok := byID[id]
		if !ok {
			missing[id.String()] = true
			continue
		}
		batch = append(batch, services.BatchDocument{
			ID:    doc.ID.String(),
			Text:  doc.CleanText,
			Basic: doc.BasicInfo(),
		})
	}

	scored := h.scorer.ScoreBatch(c.Context(), batch, job)
	scoredByID := make(map[string]models.BatchItemResult, len(scored))
	for _, outcome := range scored {
		scoredByID[outcome.ID] = outcome
	}

	results := make([]models.BatchItemResult, 0, len(docIDs))
	for _, id := range docIDs {
		key := id.String()
		if missing[key] {
			results = append(results, models.BatchItemResult{
				ID:           key,
				Success:      false,
				ErrorMessage: "document not found",
			})
			continue
		}
		results = append(results, scoredByID[key])
	}

	return c.JSON(fiber.Map{
		"results": results,
	})
}
