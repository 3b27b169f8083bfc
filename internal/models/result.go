package models

// ScoreBreakdown holds the per-dimension scores, each clamped to [0,100].
type ScoreBreakdown struct {
	Skills     int `json:"skills"`
	Experience int `json:"experience"`
	Education  int `json:"education"`
	Relevance  int `json:"relevance"`
}

// ScoringResult is the canonical screening output. Every numeric field is
// clamped into its declared range and every list is capped, regardless of
// what the model returned; the struct is always fully populated.
type ScoringResult struct {
	OverallScore    int            `json:"overall_score"`
	Breakdown       ScoreBreakdown `json:"breakdown"`
	Strengths       []string       `json:"strengths"`
	Weaknesses      []string       `json:"weaknesses"`
	KeywordMatches  []string       `json:"keyword_matches"`
	ExperienceYears float64        `json:"experience_years"`
	Summary         string         `json:"summary"`
	Recommendations []string       `json:"recommendations"`
	RedFlags        []string       `json:"red_flags"`
	FitScore        int            `json:"fit_score"`
	CandidateName   *string        `json:"candidate_name"`
	KeywordsMatched int            `json:"keywords_matched"`
}

type UploadResponse struct {
	ID            string  `json:"id"`
	Filename      string  `json:"filename"`
	OriginalName  string  `json:"original_name"`
	PageCount     int     `json:"page_count"`
	WordCount     int     `json:"word_count"`
	CandidateName *string `json:"candidate_name,omitempty"`
}

type ScreenRequest struct {
	CompanyID        string `json:"company_id"`
	DocumentID       string `json:"document_id"`
	JobRequirementID string `json:"job_requirement_id,omitempty"`
}

type ScreenResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type BatchScreenRequest struct {
	CompanyID        string   `json:"company_id"`
	DocumentIDs      []string `json:"document_ids"`
	JobRequirementID string   `json:"job_requirement_id,omitempty"`
}

// BatchItemResult reports the outcome for one document of a batch. The
// batch never drops a requested document: every id comes back either
// successful with a result or failed with a message.
type BatchItemResult struct {
	ID           string         `json:"id"`
	Success      bool           `json:"success"`
	Result       *ScoringResult `json:"result,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

type ResultResponse struct {
	ID           string         `json:"id"`
	Status       string         `json:"status"`
	Result       *ScoringResult `json:"result,omitempty"`
	ErrorMessage *string        `json:"error_message,omitempty"`
}

type AnalyzeJobRequest struct {
	Description string `json:"description"`
}

// InsightsReport is always fully populated; when there is not enough data
// or the model is unavailable a canned payload is returned instead of an
// error.
type InsightsReport struct {
	Insights        []string `json:"insights"`
	Trends          []string `json:"trends"`
	Recommendations []string `json:"recommendations"`
}

type SimilarCandidate struct {
	DocumentID string  `json:"document_id"`
	Score      float32 `json:"score"`
}
