package services

import (
	"encoding/json"
	"strings"

	"hireflow/resume-screener/internal/models"
)

// List caps declared by the result contract.
const (
	maxStrengths       = 10
	maxWeaknesses      = 10
	maxKeywordMatches  = 20
	maxRecommendations = 5
	maxRedFlags        = 5
)

const defaultSummary = "Resume analyzed successfully."

// CoerceScoringResult validates and clamps a raw model reply into a fully
// populated ScoringResult. It never fails: any structural problem in the
// reply collapses into the fixed fallback shape. The candidate name is
// always taken from basic info, never from the model, and keywords_matched
// is recomputed rather than trusted.
func CoerceScoringResult(raw string, basic models.BasicInfo) models.ScoringResult {
	var payload map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil || payload == nil {
		return fallbackResult(basic)
	}

	result := models.ScoringResult{
		OverallScore: clampScore(payload["overall_score"]),
		Breakdown: models.ScoreBreakdown{
			Skills:     clampScore(dig(payload, "breakdown", "skills")),
			Experience: clampScore(dig(payload, "breakdown", "experience")),
			Education:  clampScore(dig(payload, "breakdown", "education")),
			Relevance:  clampScore(dig(payload, "breakdown", "relevance")),
		},
		Strengths:       stringList(payload["strengths"], maxStrengths),
		Weaknesses:      stringList(payload["weaknesses"], maxWeaknesses),
		KeywordMatches:  stringList(payload["keyword_matches"], maxKeywordMatches),
		ExperienceYears: nonNegative(payload["experience_years"]),
		Summary:         stringOr(payload["summary"], defaultSummary),
		Recommendations: stringList(payload["recommendations"], maxRecommendations),
		RedFlags:        stringList(payload["red_flags"], maxRedFlags),
		CandidateName:   basic.CandidateName,
	}

	// fit_score falls back to overall_score when absent.
	if _, ok := payload["fit_score"]; ok {
		result.FitScore = clampScore(payload["fit_score"])
	} else {
		result.FitScore = result.OverallScore
	}

	result.KeywordsMatched = len(result.KeywordMatches)
	return result
}

// fallbackResult is the fixed, always-valid shape substituted when the
// model reply cannot be parsed at all.
func fallbackResult(basic models.BasicInfo) models.ScoringResult {
	return models.ScoringResult{
		OverallScore: 50,
		Breakdown: models.ScoreBreakdown{
			Skills:     50,
			Experience: 50,
			Education:  50,
			Relevance:  50,
		},
		Strengths:       []string{},
		Weaknesses:      []string{},
		KeywordMatches:  []string{},
		ExperienceYears: 0,
		Summary:         "Automatic analysis was unavailable for this resume; manual review recommended.",
		Recommendations: []string{},
		RedFlags:        []string{},
		FitScore:        50,
		CandidateName:   basic.CandidateName,
		KeywordsMatched: 0,
	}
}

// extractJSON strips markdown fences and trims to the outermost JSON
// object or array; models often wrap their reply despite instructions.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")
	if startObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}

	startArr := strings.Index(text, "[")
	endArr := strings.LastIndex(text, "]")
	if startArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}

func dig(payload map[string]any, keys ...string) any {
	var current any = payload
	for _, key := range keys {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = obj[key]
	}
	return current
}

func clampScore(value any) int {
	score := int(asFloat(value))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func nonNegative(value any) float64 {
	years := asFloat(value)
	if years < 0 {
		return 0
	}
	return years
}

func asFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case json.Number:
		f, _ := v.Float64()
		return f
	default:
		return 0
	}
}

func stringOr(value any, fallback string) string {
	if s, ok := value.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// stringList keeps the value only if it is an actual list, dropping
// non-string members, and truncates to the declared cap.
func stringList(value any, limit int) []string {
	items, ok := value.([]any)
	if !ok {
		return []string{}
	}
	result := []string{}
	for _, item := range items {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
		if len(result) == limit {
			break
		}
	}
	return result
}
