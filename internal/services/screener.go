package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"hireflow/resume-screener/internal/models"
	"hireflow/resume-screener/internal/repositories"
)

// ScreeningProcessor drives one queued screening end to end: load the
// document and job requirements, score the resume, persist the result,
// record the analytics event and index the resume for similarity lookups.
type ScreeningProcessor interface {
	ProcessScreening(ctx context.Context, screeningID uuid.UUID) error
}

type screeningProcessor struct {
	screeningRepo repositories.ScreeningRepository
	docRepo       repositories.DocumentRepository
	jobRepo       repositories.JobRequirementRepository
	analyticsRepo repositories.AnalyticsRepository
	scorer        ScorerService
	embedder      Embedder
	index         SimilarityIndex
}

func NewScreeningProcessor(
	screeningRepo repositories.ScreeningRepository,
	docRepo repositories.DocumentRepository,
	jobRepo repositories.JobRequirementRepository,
	analyticsRepo repositories.AnalyticsRepository,
	scorer ScorerService,
	embedder Embedder,
	index SimilarityIndex,
) ScreeningProcessor {
	return &screeningProcessor{
		screeningRepo: screeningRepo,
		docRepo:       docRepo,
		jobRepo:       jobRepo,
		analyticsRepo: analyticsRepo,
		scorer:        scorer,
		embedder:      embedder,
		index:         index,
	}
}

func (p *screeningProcessor) ProcessScreening(ctx context.Context, screeningID uuid.UUID) error {
	if err := p.screeningRepo.UpdateStatus(screeningID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	screening, err := p.screeningRepo.FindByID(screeningID)
	if err != nil {
		p.screeningRepo.UpdateError(screeningID, err.Error())
		return fmt.Errorf("failed to get screening: %w", err)
	}

	doc, err := p.docRepo.FindByID(screening.DocumentID)
	if err != nil {
		p.screeningRepo.UpdateError(screeningID, fmt.Sprintf("document not found: %v", err))
		return fmt.Errorf("failed to get document: %w", err)
	}

	var job *models.JobRequirement
	if screening.JobRequirementID != nil {
		job, err = p.jobRepo.FindByID(*screening.JobRequirementID)
		if err != nil {
			p.screeningRepo.UpdateError(screeningID, fmt.Sprintf("job requirement not found: %v", err))
			return fmt.Errorf("failed to get job requirement: %w", err)
		}
	}

	result, err := p.scorer.ScoreResume(ctx, doc.CleanText, job, doc.BasicInfo())
	if err != nil {
		p.screeningRepo.UpdateError(screeningID, err.Error())
		return fmt.Errorf("failed to score resume: %w", err)
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		p.screeningRepo.UpdateError(screeningID, err.Error())
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	resultStr := string(resultJSON)

	updateData := &repositories.ScreeningUpdateData{
		OverallScore: &result.OverallScore,
		FitScore:     &result.FitScore,
		Summary:      &result.Summary,
		ResultJSON:   &resultStr,
	}
	if err := p.screeningRepo.UpdateResult(screeningID, updateData); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	p.recordEvent(screening, job, result)

	// Similarity indexing is best-effort; the screening result stands even
	// when the index is unavailable.
	if err := p.indexResume(ctx, doc); err != nil {
		log.Printf("failed to index resume %s for similarity: %v", doc.ID, err)
	}

	log.Printf("screening %s completed (overall=%d fit=%d)", screeningID, result.OverallScore, result.FitScore)
	return nil
}

func (p *screeningProcessor) recordEvent(screening *models.Screening, job *models.JobRequirement, result *models.ScoringResult) {
	event := &models.AnalyticsEvent{
		CompanyID:        screening.CompanyID,
		EventType:        "resume_screened",
		DocumentID:       &screening.DocumentID,
		JobRequirementID: screening.JobRequirementID,
		OverallScore:     &result.OverallScore,
		FitScore:         &result.FitScore,
	}
	if job != nil {
		event.JobTitle = job.Title
	}
	if err := p.analyticsRepo.Record(event); err != nil {
		log.Printf("failed to record analytics event for screening %s: %v", screening.ID, err)
	}
}

func (p *screeningProcessor) indexResume(ctx context.Context, doc *models.Document) error {
	chunks := ChunkResumeText(doc.CleanText, 4000, 200)
	if len(chunks) == 0 {
		return nil
	}

	embeddings := make([][]float32, 0, len(chunks))
	for _, chunk := range chunks {
		embedding, err := p.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk: %w", err)
		}
		embeddings = append(embeddings, embedding)
	}

	return p.index.IndexResume(ctx, doc.ID.String(), doc.CompanyID.String(), chunks, embeddings)
}
