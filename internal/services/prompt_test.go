package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hireflow/resume-screener/internal/models"
)

func TestBuildScoringPrompt_Deterministic(t *testing.T) {
	pb := NewPromptBuilder()
	job := &models.JobRequirement{
		Title:           "Backend Engineer",
		RequiredSkills:  []string{"Go", "PostgreSQL"},
		ExperienceLevel: "senior",
		Education:       "BSc or equivalent",
		Keywords:        []string{"microservices", "gRPC"},
		Description:     "Build and run backend services.",
	}
	basic := models.BasicInfo{CandidateName: strPtr("Jane Roe"), Email: strPtr("jane@example.com")}

	first := pb.BuildScoringPrompt("resume body", job, basic)
	second := pb.BuildScoringPrompt("resume body", job, basic)

	assert.Equal(t, first, second)
}

func TestBuildScoringPrompt_IncludesJobAndResume(t *testing.T) {
	pb := NewPromptBuilder()
	job := &models.JobRequirement{
		Title:          "Backend Engineer",
		RequiredSkills: []string{"Go", "PostgreSQL"},
	}

	prompt := pb.BuildScoringPrompt("ten years herding goroutines", job, models.BasicInfo{})

	assert.Contains(t, prompt, "Title: Backend Engineer")
	assert.Contains(t, prompt, "Required skills: Go, PostgreSQL")
	assert.Contains(t, prompt, "ten years herding goroutines")
	assert.Contains(t, prompt, `"overall_score"`)
	assert.Contains(t, prompt, `"fit_score"`)
}

func TestBuildScoringPrompt_PlaceholdersForMissingFields(t *testing.T) {
	pb := NewPromptBuilder()
	job := &models.JobRequirement{Title: "Backend Engineer"}

	prompt := pb.BuildScoringPrompt("resume body", job, models.BasicInfo{})

	assert.Contains(t, prompt, "Experience level: Not specified")
	assert.Contains(t, prompt, "Education: Not specified")
	assert.Contains(t, prompt, "Name: Not extracted")
	assert.Contains(t, prompt, "Email: Not found")
	assert.Contains(t, prompt, "Location: Not extracted")
}

func TestBuildScoringPrompt_GeneralModeWithoutJob(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildScoringPrompt("resume body", nil, models.BasicInfo{})

	assert.Contains(t, prompt, "No specific job requirements were provided.")
	assert.NotContains(t, prompt, "Title:")
}

func TestBuildJobAnalysisPrompt_IncludesDescription(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildJobAnalysisPrompt("We need a platform engineer.")

	assert.Contains(t, prompt, "We need a platform engineer.")
	assert.Contains(t, prompt, `"required_skills"`)
	assert.Contains(t, prompt, `"experience_level"`)
}

func TestBuildInsightsPrompt_ListsEvents(t *testing.T) {
	pb := NewPromptBuilder()
	overall := 81
	fit := 74
	rows := []models.AnalyticsEvent{
		{EventType: "resume_screened", JobTitle: "Backend Engineer", OverallScore: &overall, FitScore: &fit},
		{EventType: "resume_screened", JobTitle: "Data Engineer"},
	}

	prompt := pb.BuildInsightsPrompt(rows)

	assert.Contains(t, prompt, `1. type=resume_screened job="Backend Engineer" overall=81 fit=74`)
	assert.Contains(t, prompt, `2. type=resume_screened job="Data Engineer"`)
	assert.Contains(t, prompt, `"insights"`)
}
