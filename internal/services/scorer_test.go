package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hireflow/resume-screener/internal/models"
)

// fakeTextGenerator replays scripted replies, one per call, in order. Plain
// text calls additionally record the requested temperature.
type fakeTextGenerator struct {
	replies      []string
	errs         []error
	calls        int
	prompts      []string
	temperatures []float32
}

func (f *fakeTextGenerator) next(prompt string) (string, error) {
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return "", errors.New("no scripted reply")
}

func (f *fakeTextGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return f.next(prompt)
}

func (f *fakeTextGenerator) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.temperatures = append(f.temperatures, temperature)
	return f.next(prompt)
}

func TestScoreResume_Success(t *testing.T) {
	llm := &fakeTextGenerator{replies: []string{`{"overall_score": 88, "summary": "solid"}`}}
	scorer := NewScorerService(llm, 0)

	result, err := scorer.ScoreResume(context.Background(), "resume text", nil, models.BasicInfo{CandidateName: strPtr("Jane Roe")})

	require.NoError(t, err)
	assert.Equal(t, 88, result.OverallScore)
	assert.Equal(t, "solid", result.Summary)
	require.NotNil(t, result.CandidateName)
	assert.Equal(t, "Jane Roe", *result.CandidateName)
}

func TestScoreResume_CallFailureIsExternalServiceError(t *testing.T) {
	llm := &fakeTextGenerator{errs: []error{errors.New("connection refused")}}
	scorer := NewScorerService(llm, 0)

	result, err := scorer.ScoreResume(context.Background(), "resume text", nil, models.BasicInfo{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExternalService))
	assert.Nil(t, result)
}

func TestScoreResume_MalformedReplyStillSucceeds(t *testing.T) {
	llm := &fakeTextGenerator{replies: []string{"I cannot evaluate this resume."}}
	scorer := NewScorerService(llm, 0)

	result, err := scorer.ScoreResume(context.Background(), "resume text", nil, models.BasicInfo{})

	require.NoError(t, err)
	assert.Equal(t, 50, result.OverallScore)
}

func TestScoreBatch_OneOutcomePerDocumentInOrder(t *testing.T) {
	llm := &fakeTextGenerator{
		replies: []string{`{"overall_score": 80}`, "", `{"overall_score": 40}`},
		errs:    []error{nil, errors.New("rate limited"), nil},
	}
	scorer := NewScorerService(llm, 0)

	docs := []BatchDocument{
		{ID: "doc-1", Text: "first resume"},
		{ID: "doc-2", Text: "second resume"},
		{ID: "doc-3", Text: "third resume"},
	}

	outcomes := scorer.ScoreBatch(context.Background(), docs, nil)

	require.Len(t, outcomes, 3)

	assert.Equal(t, "doc-1", outcomes[0].ID)
	assert.True(t, outcomes[0].Success)
	require.NotNil(t, outcomes[0].Result)
	assert.Equal(t, 80, outcomes[0].Result.OverallScore)

	assert.Equal(t, "doc-2", outcomes[1].ID)
	assert.False(t, outcomes[1].Success)
	assert.Nil(t, outcomes[1].Result)
	assert.Contains(t, outcomes[1].ErrorMessage, "rate limited")

	assert.Equal(t, "doc-3", outcomes[2].ID)
	assert.True(t, outcomes[2].Success)
	require.NotNil(t, outcomes[2].Result)
	assert.Equal(t, 40, outcomes[2].Result.OverallScore)
}

func TestScoreBatch_PacesBetweenCalls(t *testing.T) {
	llm := &fakeTextGenerator{
		replies: []string{`{"overall_score": 1}`, `{"overall_score": 2}`, `{"overall_score": 3}`},
	}
	pacing := 30 * time.Millisecond
	scorer := NewScorerService(llm, pacing)

	docs := []BatchDocument{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	start := time.Now()
	outcomes := scorer.ScoreBatch(context.Background(), docs, nil)
	elapsed := time.Since(start)

	require.Len(t, outcomes, 3)
	// Two gaps between three calls; the first call is not delayed.
	assert.GreaterOrEqual(t, elapsed, 2*pacing)
}

func TestScoreBatch_EmptyInput(t *testing.T) {
	scorer := NewScorerService(&fakeTextGenerator{}, 0)

	outcomes := scorer.ScoreBatch(context.Background(), nil, nil)

	assert.Empty(t, outcomes)
}

func TestScoreBatch_CancelledContextFailsRemaining(t *testing.T) {
	llm := &fakeTextGenerator{
		replies: []string{`{"overall_score": 80}`, `{"overall_score": 70}`},
	}
	scorer := NewScorerService(llm, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	docs := []BatchDocument{{ID: "a"}, {ID: "b"}}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	outcomes := scorer.ScoreBatch(ctx, docs, nil)

	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].Success)
	assert.False(t, outcomes[1].Success)
	assert.Contains(t, outcomes[1].ErrorMessage, "context canceled")
}
