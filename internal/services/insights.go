package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"hireflow/resume-screener/internal/models"
)

// JobAnalysis is the structured form of a free-text job description.
type JobAnalysis struct {
	Title           string   `json:"title"`
	RequiredSkills  []string `json:"required_skills"`
	ExperienceLevel string   `json:"experience_level"`
	Education       string   `json:"education"`
	Keywords        []string `json:"keywords"`
}

// InsightsService covers the two analysis surfaces that share the scoring
// call pattern: turning a job description into requirement fields and
// summarizing screening analytics.
type InsightsService interface {
	AnalyzeJobDescription(ctx context.Context, description string) (*JobAnalysis, error)
	GenerateInsights(ctx context.Context, rows []models.AnalyticsEvent) models.InsightsReport
}

// Job analysis tolerates a couple of transient call failures; it is an
// interactive endpoint with no pacing constraint, unlike scoring which
// stays single-shot.
const jobAnalysisMaxAttempts = 3

// insightsTemperature is the plain-mode temperature for insight summaries.
const insightsTemperature = 0.7

type insightsService struct {
	llm           TextGenerator
	promptBuilder *PromptBuilder
}

func NewInsightsService(llm TextGenerator) InsightsService {
	return &insightsService{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
	}
}

// AnalyzeJobDescription extracts structured requirement fields from a job
// description. A failed model call is retried a bounded number of times
// and surfaced as ErrExternalService when every attempt fails; a malformed
// reply degrades to a best-effort analysis carrying only the description.
func (s *insightsService) AnalyzeJobDescription(ctx context.Context, description string) (*JobAnalysis, error) {
	prompt := s.promptBuilder.BuildJobAnalysisPrompt(description)

	raw, err := s.generateJSONWithRetry(ctx, prompt, jobAnalysisMaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("%w: job analysis call: %v", ErrExternalService, err)
	}

	var analysis JobAnalysis
	if err := json.Unmarshal([]byte(extractJSON(raw)), &analysis); err != nil {
		return &JobAnalysis{
			Title:          firstLine(description),
			RequiredSkills: []string{},
			Keywords:       []string{},
		}, nil
	}

	if analysis.RequiredSkills == nil {
		analysis.RequiredSkills = []string{}
	}
	if analysis.Keywords == nil {
		analysis.Keywords = []string{}
	}
	return &analysis, nil
}

// GenerateInsights summarizes analytics rows into hiring insights. Never
// fails: an empty input or an unavailable model yields a canned payload.
func (s *insightsService) GenerateInsights(ctx context.Context, rows []models.AnalyticsEvent) models.InsightsReport {
	if len(rows) == 0 {
		return models.InsightsReport{
			Insights:        []string{"Not enough screening data to generate insights yet."},
			Trends:          []string{},
			Recommendations: []string{"Screen more resumes to unlock hiring insights."},
		}
	}

	prompt := s.promptBuilder.BuildInsightsPrompt(rows)

	// Plain mode: the summary benefits from a warmer temperature, and the
	// prompt pins the reply to JSON which extractJSON recovers from prose.
	raw, err := s.llm.GenerateText(ctx, prompt, insightsTemperature)
	if err != nil {
		return unavailableInsights()
	}

	var report models.InsightsReport
	if err := json.Unmarshal([]byte(extractJSON(raw)), &report); err != nil {
		return unavailableInsights()
	}

	if report.Insights == nil {
		report.Insights = []string{}
	}
	if report.Trends == nil {
		report.Trends = []string{}
	}
	if report.Recommendations == nil {
		report.Recommendations = []string{}
	}
	return report
}

// generateJSONWithRetry retries failed calls up to maxAttempts, bailing out
// early when the context is cancelled. The last error is returned when every
// attempt fails.
func (s *insightsService) generateJSONWithRetry(ctx context.Context, prompt string, maxAttempts int) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := s.llm.GenerateJSON(ctx, prompt)
		if err == nil {
			return result, nil
		}

		lastErr = err

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if attempt < maxAttempts {
			log.Printf("job analysis attempt %d failed: %v, retrying", attempt, err)
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}

func unavailableInsights() models.InsightsReport {
	return models.InsightsReport{
		Insights:        []string{"Insights are temporarily unavailable."},
		Trends:          []string{},
		Recommendations: []string{"Try again later."},
	}
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return strings.TrimSpace(line)
}
