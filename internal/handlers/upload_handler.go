package handlers

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hireflow/resume-screener/internal/models"
	"hireflow/resume-screener/internal/repositories"
	"hireflow/resume-screener/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	parser         services.DocumentParserService
	extractor      services.FieldExtractor
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	parser services.DocumentParserService,
	extractor services.FieldExtractor,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		parser:         parser,
		extractor:      extractor,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /upload: stores the original file, extracts
// text and basic info, and persists the document record. Extraction
// failures are returned with their classification so the caller can tell
// an encrypted file from a corrupt one.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.FormValue("company_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "valid company_id is required",
		})
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	extracted, err := h.parser.ExtractDocument(data, fileHeader.Filename)
	if err != nil {
		return c.Status(extractionStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
			"kind":  extractionKind(err),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(fileHeader)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save file: %v", err),
		})
	}

	basic := h.extractor.ExtractBasicInfo(extracted.CleanText)

	doc := models.Document{
		ID:               uuid.New(),
		CompanyID:        companyID,
		Filename:         filename,
		OriginalFileName: fileHeader.Filename,
		FilePath:         filePath,
		PageCount:        extracted.PageCount,
		WordCount:        extracted.WordCount,
		CharCount:        extracted.CharCount,
		CleanText:        extracted.CleanText,
		RawText:          extracted.RawText,
		CandidateName:    basic.CandidateName,
		Email:            basic.Email,
		Phone:            basic.Phone,
		Location:         basic.Location,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup stored file if database insert fails
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save document record",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		ID:            doc.ID.String(),
		Filename:      doc.Filename,
		OriginalName:  doc.OriginalFileName,
		PageCount:     doc.PageCount,
		WordCount:     doc.WordCount,
		CandidateName: doc.CandidateName,
	})
}

func extractionStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidFormat),
		errors.Is(err, services.ErrEncrypted),
		errors.Is(err, services.ErrCorrupt),
		errors.Is(err, services.ErrNoText):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func extractionKind(err error) string {
	switch {
	case errors.Is(err, services.ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, services.ErrEncrypted):
		return "encrypted"
	case errors.Is(err, services.ErrNoText):
		return "no_text"
	case errors.Is(err, services.ErrCorrupt):
		return "corrupt"
	default:
		return "internal"
	}
}
