package services

import (
	"fmt"
	"strings"

	"hireflow/resume-screener/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

const notSpecified = "Not specified"
const notExtracted = "Not extracted"

// scoringResponseShape is the literal example of the JSON the model must
// return. The response coercer treats this shape as the contract.
const scoringResponseShape = `{
  "overall_score": <0-100>,
  "breakdown": {
    "skills": <0-100>,
    "experience": <0-100>,
    "education": <0-100>,
    "relevance": <0-100>
  },
  "strengths": ["<strength>", "..."],
  "weaknesses": ["<weakness>", "..."],
  "keyword_matches": ["<matched keyword>", "..."],
  "experience_years": <integer estimate>,
  "summary": "<2-3 sentence summary>",
  "recommendations": ["<recommendation>", "..."],
  "red_flags": ["<red flag>", "..."],
  "fit_score": <0-100>
}`

// BuildScoringPrompt renders the evaluation prompt. Pure and deterministic:
// identical arguments produce byte-for-byte identical output.
func (pb *PromptBuilder) BuildScoringPrompt(resumeText string, job *models.JobRequirement, basic models.BasicInfo) string {
	var sb strings.Builder

	sb.WriteString("You are an expert technical recruiter screening a resume.\n\n")

	if job != nil {
		sb.WriteString("JOB REQUIREMENTS:\n")
		sb.WriteString(fmt.Sprintf("Title: %s\n", orPlaceholder(job.Title, notSpecified)))
		sb.WriteString(fmt.Sprintf("Required skills: %s\n", orPlaceholder(strings.Join(job.RequiredSkills, ", "), notSpecified)))
		sb.WriteString(fmt.Sprintf("Experience level: %s\n", orPlaceholder(job.ExperienceLevel, notSpecified)))
		sb.WriteString(fmt.Sprintf("Education: %s\n", orPlaceholder(job.Education, notSpecified)))
		sb.WriteString(fmt.Sprintf("Keywords: %s\n", orPlaceholder(strings.Join(job.Keywords, ", "), notSpecified)))
		sb.WriteString(fmt.Sprintf("Description: %s\n", orPlaceholder(job.Description, notSpecified)))
	} else {
		sb.WriteString("JOB REQUIREMENTS:\n")
		sb.WriteString("No specific job requirements were provided. Evaluate the resume generally for overall professional quality and employability.\n")
	}

	sb.WriteString("\nCANDIDATE RESUME:\n")
	sb.WriteString(resumeText)
	sb.WriteString("\n\nEXTRACTED CANDIDATE FACTS:\n")
	sb.WriteString(fmt.Sprintf("Name: %s\n", orNilPlaceholder(basic.CandidateName, notExtracted)))
	sb.WriteString(fmt.Sprintf("Email: %s\n", orNilPlaceholder(basic.Email, "Not found")))
	sb.WriteString(fmt.Sprintf("Phone: %s\n", orNilPlaceholder(basic.Phone, "Not found")))
	sb.WriteString(fmt.Sprintf("Location: %s\n", orNilPlaceholder(basic.Location, notExtracted)))

	sb.WriteString("\nReturn your evaluation as JSON in exactly this shape:\n")
	sb.WriteString(scoringResponseShape)
	sb.WriteString("\n\nSCORING CRITERIA:\n")
	sb.WriteString("- overall_score, breakdown.skills, breakdown.experience, breakdown.education and breakdown.relevance are integers from 0 to 100\n")
	sb.WriteString("- experience_years is your integer estimate of total relevant years\n")
	sb.WriteString("- keyword_matches lists the job keywords actually evidenced in the resume\n")
	sb.WriteString("- red_flags lists concrete concerns (gaps, inconsistencies, mismatches)\n")
	sb.WriteString("- fit_score is the overall job-fit integer from 0 to 100\n\n")
	sb.WriteString("Respond with JSON only, no markdown fences, no commentary.")

	return sb.String()
}

// BuildJobAnalysisPrompt renders the prompt that turns a free-text job
// description into structured requirement fields.
func (pb *PromptBuilder) BuildJobAnalysisPrompt(description string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert HR analyst. Extract structured requirements from the following job description.\n\n")
	sb.WriteString("JOB DESCRIPTION:\n")
	sb.WriteString(description)
	sb.WriteString("\n\nReturn JSON in exactly this shape:\n")
	sb.WriteString(`{
  "title": "<job title>",
  "required_skills": ["<skill>", "..."],
  "experience_level": "<junior|mid|senior|lead or years>",
  "education": "<education requirement>",
  "keywords": ["<keyword>", "..."]
}`)
	sb.WriteString("\n\nRespond with JSON only, no markdown fences, no commentary.")

	return sb.String()
}

// BuildInsightsPrompt renders the prompt summarizing screening analytics
// into hiring insights.
func (pb *PromptBuilder) BuildInsightsPrompt(rows []models.AnalyticsEvent) string {
	var sb strings.Builder

	sb.WriteString("You are a hiring analytics assistant. Summarize the screening activity below.\n\n")
	sb.WriteString("SCREENING EVENTS (most recent first):\n")
	for i, row := range rows {
		sb.WriteString(fmt.Sprintf("%d. type=%s job=%q", i+1, row.EventType, row.JobTitle))
		if row.OverallScore != nil {
			sb.WriteString(fmt.Sprintf(" overall=%d", *row.OverallScore))
		}
		if row.FitScore != nil {
			sb.WriteString(fmt.Sprintf(" fit=%d", *row.FitScore))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\nReturn JSON in exactly this shape:\n")
	sb.WriteString(`{
  "insights": ["<observation about candidate quality>", "..."],
  "trends": ["<trend across screenings>", "..."],
  "recommendations": ["<actionable recommendation>", "..."]
}`)
	sb.WriteString("\n\nRespond with JSON only, no markdown fences, no commentary.")

	return sb.String()
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

func orNilPlaceholder(value *string, placeholder string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return placeholder
	}
	return *value
}
