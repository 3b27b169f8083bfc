package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hireflow/resume-screener/internal/models"
	"hireflow/resume-screener/internal/repositories"
	"hireflow/resume-screener/internal/services"
)

type SimilarHandler struct {
	docRepo  repositories.DocumentRepository
	embedder services.Embedder
	index    services.SimilarityIndex
}

func NewSimilarHandler(
	docRepo repositories.DocumentRepository,
	embedder services.Embedder,
	index services.SimilarityIndex,
) *SimilarHandler {
	return &SimilarHandler{
		docRepo:  docRepo,
		embedder: embedder,
		index:    index,
	}
}

// HandleGetSimilar handles GET /similar/:id: returns previously screened
// candidates whose resumes are closest to the given document's.
func (h *SimilarHandler) HandleGetSimilar(c *fiber.Ctx) error {
	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid document ID format",
		})
	}

	doc, err := h.docRepo.FindByID(docID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "document not found",
		})
	}

	embedding, err := h.embedder.GenerateEmbedding(c.Context(), doc.CleanText)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "embedding service unavailable",
		})
	}

	matches, err := h.index.SearchSimilar(c.Context(), embedding, doc.CompanyID.String(), doc.ID.String(), 5)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "similarity search unavailable",
		})
	}

	candidates := make([]models.SimilarCandidate, 0, len(matches))
	for _, match := range matches {
		candidates = append(candidates, models.SimilarCandidate{
			DocumentID: match.DocumentID,
			Score:      match.Score,
		})
	}

	return c.JSON(fiber.Map{
		"document_id": doc.ID.String(),
		"similar":     candidates,
	})
}
