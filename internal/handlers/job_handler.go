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

type JobHandler struct {
	jobRepo  repositories.JobRequirementRepository
	insights services.InsightsService
}

func NewJobHandler(
	jobRepo repositories.JobRequirementRepository,
	insights services.InsightsService,
) *JobHandler {
	return &JobHandler{
		jobRepo:  jobRepo,
		insights: insights,
	}
}

// HandleAnalyze handles POST /jobs/analyze: runs the description through
// the model and returns structured requirement fields without persisting.
func (h *JobHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}

	if req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "description is required",
		})
	}

	analysis, err := h.insights.AnalyzeJobDescription(c.Context(), req.Description)
	if err != nil {
		if errors.Is(err, services.ErrExternalService) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "analysis service unavailable",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to analyze job description",
		})
	}

	return c.JSON(analysis)
}

// HandleCreate handles POST /jobs: persists a job requirement record.
func (h *JobHandler) HandleCreate(c *fiber.Ctx) error {
	var job models.JobRequirement
	if err := c.BodyParser(&job); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}

	if job.CompanyID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "company_id is required",
		})
	}
	if job.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	job.ID = uuid.New()
	job.CreatedAt = time.Now()
	job.UpdatedAt = time.Now()

	if err := h.jobRepo.Create(&job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create job requirement",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleList handles GET /jobs?company_id=...
func (h *JobHandler) HandleList(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Query("company_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "valid company_id query parameter is required",
		})
	}

	jobs, err := h.jobRepo.ListByCompany(companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list job requirements",
		})
	}

	return c.JSON(fiber.Map{
		"jobs": jobs,
	})
}

// HandleGet handles GET /jobs/:id.
func (h *JobHandler) HandleGet(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job requirement ID format",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "job requirement not found",
		})
	}

	return c.JSON(job)
}
