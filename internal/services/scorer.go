package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"hireflow/resume-screener/internal/models"
)

// BatchDocument is one already-extracted resume queued for batch scoring.
type BatchDocument struct {
	ID    string
	Text  string
	Basic models.BasicInfo
}

// ScorerService sequences prompt construction, the model call and response
// coercion. Batch scoring runs sequentially with a minimum interval between
// calls: the upstream API is rate limited, and that pacing is policy, not
// an accident.
type ScorerService interface {
	ScoreResume(ctx context.Context, text string, job *models.JobRequirement, basic models.BasicInfo) (*models.ScoringResult, error)
	ScoreBatch(ctx context.Context, docs []BatchDocument, job *models.JobRequirement) []models.BatchItemResult
}

type scorerService struct {
	llm           TextGenerator
	promptBuilder *PromptBuilder
	pacing        time.Duration
}

func NewScorerService(llm TextGenerator, pacing time.Duration) ScorerService {
	return &scorerService{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
		pacing:        pacing,
	}
}

// ScoreResume scores one resume. A failed model call is fatal for the
// document and surfaced as ErrExternalService; a malformed-but-returned
// reply is absorbed by the coercer into a valid result.
func (s *scorerService) ScoreResume(ctx context.Context, text string, job *models.JobRequirement, basic models.BasicInfo) (*models.ScoringResult, error) {
	prompt := s.promptBuilder.BuildScoringPrompt(text, job, basic)

	raw, err := s.llm.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: scoring call: %v", ErrExternalService, err)
	}

	result := CoerceScoringResult(raw, basic)
	return &result, nil
}

// ScoreBatch scores documents one at a time, pausing at least the pacing
// interval between successive calls. One document failing is recorded in
// its outcome entry and never aborts the rest; the result list always has
// one entry per requested document, in order.
func (s *scorerService) ScoreBatch(ctx context.Context, docs []BatchDocument, job *models.JobRequirement) []models.BatchItemResult {
	outcomes := make([]models.BatchItemResult, 0, len(docs))

	for i, doc := range docs {
		if i > 0 && s.pacing > 0 {
			select {
			case <-ctx.Done():
				outcomes = append(outcomes, models.BatchItemResult{
					ID:           doc.ID,
					Success:      false,
					ErrorMessage: ctx.Err().Error(),
				})
				continue
			case <-time.After(s.pacing):
			}
		}

		result, err := s.ScoreResume(ctx, doc.Text, job, doc.Basic)
		if err != nil {
			log.Printf("batch scoring failed for document %s: %v", doc.ID, err)
			outcomes = append(outcomes, models.BatchItemResult{
				ID:           doc.ID,
				Success:      false,
				ErrorMessage: err.Error(),
			})
			continue
		}

		outcomes = append(outcomes, models.BatchItemResult{
			ID:      doc.ID,
			Success: true,
			Result:  result,
		})
	}

	return outcomes
}
