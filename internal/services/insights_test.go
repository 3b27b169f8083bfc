package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hireflow/resume-screener/internal/models"
)

func TestAnalyzeJobDescription_ParsesReply(t *testing.T) {
	llm := &fakeTextGenerator{replies: []string{`{
		"title": "Backend Engineer",
		"required_skills": ["Go", "PostgreSQL"],
		"experience_level": "senior",
		"education": "BSc",
		"keywords": ["microservices"]
	}`}}
	svc := NewInsightsService(llm)

	analysis, err := svc.AnalyzeJobDescription(context.Background(), "We need a backend engineer.")

	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", analysis.Title)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, analysis.RequiredSkills)
	assert.Equal(t, "senior", analysis.ExperienceLevel)
	assert.Equal(t, []string{"microservices"}, analysis.Keywords)
}

func TestAnalyzeJobDescription_AllAttemptsFail(t *testing.T) {
	llm := &fakeTextGenerator{errs: []error{
		errors.New("timeout"),
		errors.New("timeout"),
		errors.New("timeout"),
	}}
	svc := NewInsightsService(llm)

	analysis, err := svc.AnalyzeJobDescription(context.Background(), "anything")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExternalService))
	assert.Nil(t, analysis)
	assert.Equal(t, 3, llm.calls)
}

func TestAnalyzeJobDescription_RetriesTransientFailure(t *testing.T) {
	llm := &fakeTextGenerator{
		replies: []string{"", `{"title": "Backend Engineer"}`},
		errs:    []error{errors.New("quota exceeded"), nil},
	}
	svc := NewInsightsService(llm)

	analysis, err := svc.AnalyzeJobDescription(context.Background(), "We need a backend engineer.")

	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", analysis.Title)
	assert.Equal(t, 2, llm.calls)
}

func TestAnalyzeJobDescription_CancelledContextStopsRetrying(t *testing.T) {
	llm := &fakeTextGenerator{errs: []error{
		errors.New("timeout"),
		errors.New("timeout"),
		errors.New("timeout"),
	}}
	svc := NewInsightsService(llm)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	analysis, err := svc.AnalyzeJobDescription(ctx, "anything")

	require.Error(t, err)
	assert.Nil(t, analysis)
	assert.Equal(t, 1, llm.calls)
}

func TestAnalyzeJobDescription_MalformedReplyDegrades(t *testing.T) {
	llm := &fakeTextGenerator{replies: []string{"sorry, cannot comply"}}
	svc := NewInsightsService(llm)

	analysis, err := svc.AnalyzeJobDescription(context.Background(), "Platform Engineer\nBuild the platform.")

	require.NoError(t, err)
	assert.Equal(t, "Platform Engineer", analysis.Title)
	assert.Empty(t, analysis.RequiredSkills)
	assert.Empty(t, analysis.Keywords)
}

func TestGenerateInsights_EmptyRows(t *testing.T) {
	svc := NewInsightsService(&fakeTextGenerator{})

	report := svc.GenerateInsights(context.Background(), nil)

	assert.Equal(t, []string{"Not enough screening data to generate insights yet."}, report.Insights)
	assert.Empty(t, report.Trends)
	assert.Equal(t, []string{"Screen more resumes to unlock hiring insights."}, report.Recommendations)
}

func TestGenerateInsights_CallFailureYieldsCannedReport(t *testing.T) {
	llm := &fakeTextGenerator{errs: []error{errors.New("unavailable")}}
	svc := NewInsightsService(llm)

	report := svc.GenerateInsights(context.Background(), []models.AnalyticsEvent{{EventType: "resume_screened"}})

	assert.Equal(t, []string{"Insights are temporarily unavailable."}, report.Insights)
	assert.Equal(t, []string{"Try again later."}, report.Recommendations)
}

func TestGenerateInsights_ParsesReply(t *testing.T) {
	llm := &fakeTextGenerator{replies: []string{`{
		"insights": ["candidate quality is rising"],
		"trends": ["more Go applicants"],
		"recommendations": ["widen the funnel"]
	}`}}
	svc := NewInsightsService(llm)

	report := svc.GenerateInsights(context.Background(), []models.AnalyticsEvent{{EventType: "resume_screened"}})

	assert.Equal(t, []string{"candidate quality is rising"}, report.Insights)
	assert.Equal(t, []string{"more Go applicants"}, report.Trends)
	assert.Equal(t, []string{"widen the funnel"}, report.Recommendations)
}

func TestGenerateInsights_UsesPlainTextMode(t *testing.T) {
	llm := &fakeTextGenerator{replies: []string{`The summary: {"insights": ["one"], "trends": [], "recommendations": []}`}}
	svc := NewInsightsService(llm)

	report := svc.GenerateInsights(context.Background(), []models.AnalyticsEvent{{EventType: "resume_screened"}})

	// Insights go through the plain-text path and tolerate prose around
	// the JSON payload.
	require.Equal(t, []float32{0.7}, llm.temperatures)
	assert.Equal(t, []string{"one"}, report.Insights)
}

func TestGenerateInsights_NormalizesMissingLists(t *testing.T) {
	llm := &fakeTextGenerator{replies: []string{`{"insights": ["one"]}`}}
	svc := NewInsightsService(llm)

	report := svc.GenerateInsights(context.Background(), []models.AnalyticsEvent{{EventType: "resume_screened"}})

	assert.Equal(t, []string{"one"}, report.Insights)
	assert.NotNil(t, report.Trends)
	assert.NotNil(t, report.Recommendations)
}
